// Package codec reads and writes serialized forms and polymorphic envelopes
// as JSON or YAML.
package codec

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/reoring/goidl"
)

// DecodeOpt bundles decoding options.
type DecodeOpt struct {
	// AllowDuplicateKeys lets a repeated object key through (the last one
	// wins). By default duplicates are duplicate_key issues.
	AllowDuplicateKeys bool
	// MaxBytes rejects larger inputs when positive.
	MaxBytes int64
}

// Format is a wire encoding of serialized forms and envelopes.
type Format interface {
	Name() string
	MarshalSerialized(s goidl.Serialized) ([]byte, error)
	UnmarshalSerialized(data []byte, opts ...DecodeOpt) (goidl.Serialized, error)
	MarshalEnvelope(env goidl.Envelope) ([]byte, error)
	// UnmarshalEnvelope rejects documents with zero or several type keys.
	UnmarshalEnvelope(data []byte, opts ...DecodeOpt) (goidl.Envelope, error)
}

var formats = map[string]Format{}

func register(f Format, aliases ...string) {
	formats[f.Name()] = f
	for _, a := range aliases {
		formats[a] = f
	}
}

// ByName returns the format registered under name ("json", "yaml", "yml").
func ByName(name string) (Format, error) {
	if f, ok := formats[strings.ToLower(name)]; ok {
		return f, nil
	}
	return nil, fmt.Errorf("codec: unknown format %q", name)
}

// ForPath picks a format from the file extension, defaulting to JSON.
func ForPath(path string) Format {
	ext := strings.TrimPrefix(filepath.Ext(path), ".")
	if f, err := ByName(ext); err == nil {
		return f
	}
	return JSON
}

// Create decodes an envelope with f and builds its value with r.
func Create[T any](r *goidl.Registry[T], f Format, data []byte, opts ...DecodeOpt) (T, error) {
	env, err := f.UnmarshalEnvelope(data, opts...)
	if err != nil {
		var zero T
		return zero, err
	}
	return r.Create(env)
}

// Encode serializes s as an envelope in format f.
func Encode(f Format, s goidl.Struct) ([]byte, error) {
	env, err := goidl.Wrap(s)
	if err != nil {
		return nil, err
	}
	return f.MarshalEnvelope(env)
}

func optOf(opts []DecodeOpt) DecodeOpt {
	if len(opts) == 0 {
		return DecodeOpt{}
	}
	return opts[0]
}

func checkSize(data []byte, opt DecodeOpt) error {
	if opt.MaxBytes > 0 && int64(len(data)) > opt.MaxBytes {
		return parseIssue(fmt.Errorf("input is %d bytes, limit is %d", len(data), opt.MaxBytes))
	}
	return nil
}

func parseIssue(err error) goidl.Issues {
	it := goidl.NewIssue("/", goidl.CodeParseError, map[string]string{"detail": err.Error()})
	it.Cause = err
	return goidl.Issues{it}
}

func objectIssue(path string, got any) goidl.Issues {
	return goidl.Issues{goidl.NewIssue(path, goidl.CodeInvalidType, map[string]string{
		"field": path, "type": "object", "got": describe(got),
	})}
}

func describe(v any) string {
	switch t := v.(type) {
	case nil:
		return "null"
	case string:
		return strconv.Quote(t)
	case []any:
		return "array"
	}
	return fmt.Sprint(v)
}

// envelopeFrom turns a decoded document into an envelope.
func envelopeFrom(v any) (goidl.Envelope, error) {
	m, ok := v.(map[string]any)
	if !ok {
		return goidl.Envelope{}, objectIssue("/", v)
	}
	return goidl.EnvelopeFromMap(m)
}

// serializedFrom turns a decoded document into a serialized form.
func serializedFrom(v any) (goidl.Serialized, error) {
	m, ok := v.(map[string]any)
	if !ok {
		return nil, objectIssue("/", v)
	}
	return goidl.Serialized(m), nil
}

package codec

import (
	"bytes"
	"errors"
	"io"
	"strconv"

	gojson "github.com/goccy/go-json"

	"github.com/reoring/goidl"
)

// JSON encodes with goccy/go-json. Numbers decode as json.Number so that
// integers beyond 2^53 keep their exact value.
var JSON Format = jsonFormat{}

func init() { register(JSON) }

type jsonFormat struct{}

func (jsonFormat) Name() string { return "json" }

func (jsonFormat) MarshalSerialized(s goidl.Serialized) ([]byte, error) {
	if s == nil {
		s = goidl.Serialized{}
	}
	return gojson.MarshalIndent(map[string]any(s), "", "  ")
}

func (jsonFormat) UnmarshalSerialized(data []byte, opts ...DecodeOpt) (goidl.Serialized, error) {
	v, err := decodeJSON(data, optOf(opts))
	if err != nil {
		return nil, err
	}
	return serializedFrom(v)
}

func (jsonFormat) MarshalEnvelope(env goidl.Envelope) ([]byte, error) {
	return gojson.MarshalIndent(env.Map(), "", "  ")
}

func (jsonFormat) UnmarshalEnvelope(data []byte, opts ...DecodeOpt) (goidl.Envelope, error) {
	v, err := decodeJSON(data, optOf(opts))
	if err != nil {
		return goidl.Envelope{}, err
	}
	return envelopeFrom(v)
}

func decodeJSON(data []byte, opt DecodeOpt) (any, error) {
	if err := checkSize(data, opt); err != nil {
		return nil, err
	}
	dec := gojson.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, parseIssue(err)
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, parseIssue(errors.New("unexpected data after top-level value"))
	}
	if !opt.AllowDuplicateKeys {
		iss, err := DuplicateKeys(data)
		if err != nil {
			return nil, parseIssue(err)
		}
		if len(iss) > 0 {
			return nil, iss
		}
	}
	return v, nil
}

type frame struct {
	object       bool
	keys         map[string]struct{}
	expectingKey bool
	key          string
	index        int
	path         string
}

// DuplicateKeys walks the JSON tokens of data and reports every object key
// that repeats within its object. Issue paths point at the repeated key.
func DuplicateKeys(data []byte) (goidl.Issues, error) {
	dec := gojson.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var iss goidl.Issues
	var stack []*frame
	childPath := func() string {
		if len(stack) == 0 {
			return ""
		}
		top := stack[len(stack)-1]
		if top.object {
			return top.path + goidl.FieldPath(top.key)
		}
		return top.path + "/" + strconv.Itoa(top.index)
	}
	valueDone := func() {
		if len(stack) == 0 {
			return
		}
		top := stack[len(stack)-1]
		if top.object {
			top.expectingKey = true
			return
		}
		top.index++
	}

	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return iss, err
		}
		switch v := tok.(type) {
		case gojson.Delim:
			switch v {
			case '{', '[':
				f := &frame{object: v == '{', expectingKey: v == '{', path: childPath()}
				if f.object {
					f.keys = map[string]struct{}{}
				}
				stack = append(stack, f)
			case '}', ']':
				if len(stack) > 0 {
					stack = stack[:len(stack)-1]
				}
				valueDone()
			}
		case string:
			if n := len(stack); n > 0 && stack[n-1].object && stack[n-1].expectingKey {
				top := stack[n-1]
				if _, dup := top.keys[v]; dup {
					iss = goidl.AppendIssues(iss, goidl.NewIssue(top.path+goidl.FieldPath(v), goidl.CodeDuplicateKey, map[string]string{"key": v}))
				}
				top.keys[v] = struct{}{}
				top.key = v
				top.expectingKey = false
				continue
			}
			valueDone()
		default:
			valueDone()
		}
	}
	return iss, nil
}

package goidl

import (
	"errors"
	"fmt"
	"strings"

	"github.com/reoring/goidl/i18n"
)

// Issue codes.
const (
	CodeRequired          = "required"
	CodeInvalidType       = "invalid_type"
	CodeNotInteger        = "not_integer"
	CodeOverflow          = "overflow"
	CodeUnknownField      = "unknown_field"
	CodeUnset             = "unset"
	CodeUnknownType       = "unknown_type"
	CodeEnvelopeEmpty     = "envelope_empty"
	CodeEnvelopeAmbiguous = "envelope_ambiguous"
	CodeDuplicateKey      = "duplicate_key"
	CodeParseError        = "parse_error"
)

var (
	// ErrInvalidArgument matches (via errors.Is) any Issues value that carries
	// a field level problem: missing, mistyped, non-integral or unset values.
	ErrInvalidArgument = errors.New("goidl: invalid argument")
	// ErrUnknownType matches Issues produced by a registry lookup miss.
	ErrUnknownType = errors.New("goidl: unknown polymorphic type")
	// ErrInvalidEnvelope matches Issues for malformed envelopes and for
	// documents that do not parse or repeat a key.
	ErrInvalidEnvelope = errors.New("goidl: invalid envelope")
)

// Issue is a single validation or lookup failure.
type Issue struct {
	Path    string // JSON Pointer of the offending field ("/bytes"), "/" for the whole value.
	Code    string
	Message string
	// Params carries the values used to render Message ("field", "got", "type", ...).
	Params map[string]string
	Cause  error
}

func (it Issue) sentinel() error {
	switch it.Code {
	case CodeRequired, CodeInvalidType, CodeNotInteger, CodeOverflow, CodeUnknownField, CodeUnset:
		return ErrInvalidArgument
	case CodeUnknownType:
		return ErrUnknownType
	case CodeEnvelopeEmpty, CodeEnvelopeAmbiguous, CodeDuplicateKey, CodeParseError:
		return ErrInvalidEnvelope
	}
	return nil
}

// Issues is a collection of issues that implements error.
type Issues []Issue

// Error renders the first few messages.
func (iss Issues) Error() string {
	if len(iss) == 0 {
		return ""
	}
	const maxShown = 3
	b := &strings.Builder{}
	lim := min(len(iss), maxShown)
	for i := 0; i < lim; i++ {
		if i > 0 {
			b.WriteString("; ")
		}
		it := iss[i]
		if it.Message != "" {
			b.WriteString(it.Message)
		} else {
			fmt.Fprintf(b, "%s at %s", it.Code, it.Path)
		}
	}
	if n := len(iss); n > lim {
		fmt.Fprintf(b, "; ... (total %d)", n)
	}
	return b.String()
}

// Is reports whether any issue in the collection maps to target, which makes
// errors.Is(err, ErrInvalidArgument) and friends work on Issues.
func (iss Issues) Is(target error) bool {
	for _, it := range iss {
		if s := it.sentinel(); s != nil && s == target {
			return true
		}
		if it.Cause != nil && errors.Is(it.Cause, target) {
			return true
		}
	}
	return false
}

// Codes returns the issue codes in order.
func (iss Issues) Codes() []string {
	out := make([]string, 0, len(iss))
	for _, it := range iss {
		out = append(out, it.Code)
	}
	return out
}

// AppendIssues appends issues to dst, initializing it when needed.
func AppendIssues(dst Issues, more ...Issue) Issues {
	if dst == nil {
		dst = Issues{}
	}
	return append(dst, more...)
}

// AsIssues extracts Issues from err using errors.As.
func AsIssues(err error) (Issues, bool) {
	if err == nil {
		return nil, false
	}
	var iss Issues
	if errors.As(err, &iss) {
		return iss, true
	}
	return nil, false
}

// NewIssue builds an Issue whose message is rendered by the i18n package.
func NewIssue(path, code string, params map[string]string) Issue {
	return Issue{Path: path, Code: code, Message: i18n.T(code, params), Params: params}
}

// FieldPath renders the JSON Pointer of a top level field.
func FieldPath(field string) string {
	r := strings.NewReplacer("~", "~0", "/", "~1")
	return "/" + r.Replace(field)
}

// WithPrefix returns a copy of iss with every path nested under prefix.
func (iss Issues) WithPrefix(prefix string) Issues {
	if prefix == "" || prefix == "/" {
		return iss
	}
	out := make(Issues, len(iss))
	for i, it := range iss {
		if it.Path == "/" || it.Path == "" {
			it.Path = prefix
		} else {
			it.Path = prefix + it.Path
		}
		out[i] = it
	}
	return out
}

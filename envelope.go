package goidl

import (
	"sort"
	"strconv"
	"strings"
)

// Envelope is a polymorphic envelope: the full class name of the concrete
// type and its serialized form. On the wire it is the single-key mapping
// {"<full class name>": <serialized form>}.
type Envelope struct {
	Type string
	Data Serialized
}

// Map returns the single-key mapping form of e.
func (e Envelope) Map() map[string]any {
	data := e.Data
	if data == nil {
		data = Serialized{}
	}
	return map[string]any{e.Type: map[string]any(data)}
}

// EnvelopePath is the JSON Pointer of an envelope body.
func EnvelopePath(typeName string) string { return FieldPath(typeName) }

// EnvelopeFromMap validates the raw mapping form. Exactly one key is
// required; its value must be an object, or null for an envelope without
// data (constructors then return an all-unset instance, as Decode(nil) does).
func EnvelopeFromMap(m map[string]any) (Envelope, error) {
	switch len(m) {
	case 0:
		return Envelope{}, Issues{NewIssue("/", CodeEnvelopeEmpty, nil)}
	case 1:
	default:
		keys := make([]string, 0, len(m))
		for k := range m {
			keys = append(keys, k)
		}
		return Envelope{}, AmbiguousEnvelope(keys)
	}
	for k, v := range m {
		data, ok := AsSerialized(v)
		if !ok {
			return Envelope{}, Issues{NewIssue(EnvelopePath(k), CodeInvalidType, map[string]string{
				"field": k, "type": "object", "got": render(v),
			})}
		}
		return Envelope{Type: k, Data: data}, nil
	}
	panic("unreachable")
}

// AmbiguousEnvelope reports an envelope carrying several type keys. keys are
// listed sorted.
func AmbiguousEnvelope(keys []string) Issues {
	sorted := append([]string(nil), keys...)
	sort.Strings(sorted)
	return Issues{NewIssue("/", CodeEnvelopeAmbiguous, map[string]string{
		"count": strconv.Itoa(len(sorted)),
		"keys":  strings.Join(sorted, ", "),
	})}
}

// AsSerialized accepts the map shapes decoders produce for objects. nil is
// accepted and stays a nil form.
func AsSerialized(v any) (Serialized, bool) {
	switch t := v.(type) {
	case nil:
		return nil, true
	case Serialized:
		return t, true
	case map[string]any:
		return Serialized(t), true
	}
	return nil, false
}

// Wrap builds the envelope of s.
func Wrap(s Struct) (Envelope, error) {
	data, err := s.Serialize()
	if err != nil {
		return Envelope{}, err
	}
	return Envelope{Type: s.FullClassName(), Data: data}, nil
}

package codec

import (
	"bytes"
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/reoring/goidl"
)

// YAML encodes with gopkg.in/yaml.v3. Documents are walked node by node so
// duplicate keys are reported with their path instead of failing the whole
// parse.
var YAML Format = yamlFormat{}

func init() { register(YAML, "yml") }

type yamlFormat struct{}

func (yamlFormat) Name() string { return "yaml" }

func (yamlFormat) MarshalSerialized(s goidl.Serialized) ([]byte, error) {
	if s == nil {
		s = goidl.Serialized{}
	}
	return marshalYAML(map[string]any(s))
}

func (yamlFormat) UnmarshalSerialized(data []byte, opts ...DecodeOpt) (goidl.Serialized, error) {
	v, err := decodeYAML(data, optOf(opts))
	if err != nil {
		return nil, err
	}
	return serializedFrom(v)
}

func (yamlFormat) MarshalEnvelope(env goidl.Envelope) ([]byte, error) {
	return marshalYAML(env.Map())
}

func (yamlFormat) UnmarshalEnvelope(data []byte, opts ...DecodeOpt) (goidl.Envelope, error) {
	v, err := decodeYAML(data, optOf(opts))
	if err != nil {
		return goidl.Envelope{}, err
	}
	return envelopeFrom(v)
}

func marshalYAML(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func decodeYAML(data []byte, opt DecodeOpt) (any, error) {
	if err := checkSize(data, opt); err != nil {
		return nil, err
	}
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, parseIssue(err)
	}
	w := &yamlWalker{allowDup: opt.AllowDuplicateKeys, budget: nodeBudget(len(data))}
	v, err := w.value(&doc, "")
	if err != nil {
		return nil, parseIssue(err)
	}
	if len(w.issues) > 0 {
		return nil, w.issues
	}
	return v, nil
}

type yamlWalker struct {
	allowDup bool
	issues   goidl.Issues
	depth    int
	// budget is the number of nodes left to build, aliases counted at every
	// expansion.
	budget int
}

// maxYAMLDepth bounds nesting, including nesting through aliases.
const maxYAMLDepth = 512

// Alias expansion may build at most yamlNodesPerByte nodes per input byte
// (plus minYAMLNodes).
const (
	yamlNodesPerByte = 64
	minYAMLNodes     = 1024
)

func nodeBudget(size int) int { return minYAMLNodes + yamlNodesPerByte*size }

func (w *yamlWalker) value(n *yaml.Node, path string) (any, error) {
	w.depth++
	defer func() { w.depth-- }()
	if w.depth > maxYAMLDepth {
		return nil, fmt.Errorf("document nested deeper than %d levels", maxYAMLDepth)
	}
	w.budget--
	if w.budget < 0 {
		return nil, errors.New("document expands to too many nodes through aliases")
	}
	switch n.Kind {
	case 0:
		return nil, nil
	case yaml.DocumentNode:
		if len(n.Content) == 0 {
			return nil, nil
		}
		return w.value(n.Content[0], path)
	case yaml.AliasNode:
		return w.value(n.Alias, path)
	case yaml.MappingNode:
		out := make(map[string]any, len(n.Content)/2)
		for i := 0; i+1 < len(n.Content); i += 2 {
			kn, vn := n.Content[i], n.Content[i+1]
			var key string
			if err := kn.Decode(&key); err != nil {
				return nil, fmt.Errorf("line %d: mapping key: %w", kn.Line, err)
			}
			child := path + goidl.FieldPath(key)
			if _, dup := out[key]; dup && !w.allowDup {
				w.issues = goidl.AppendIssues(w.issues, goidl.NewIssue(child, goidl.CodeDuplicateKey, map[string]string{"key": key}))
			}
			v, err := w.value(vn, child)
			if err != nil {
				return nil, err
			}
			out[key] = v
		}
		return out, nil
	case yaml.SequenceNode:
		out := make([]any, 0, len(n.Content))
		for i, c := range n.Content {
			v, err := w.value(c, fmt.Sprintf("%s/%d", path, i))
			if err != nil {
				return nil, err
			}
			out = append(out, v)
		}
		return out, nil
	case yaml.ScalarNode:
		var v any
		if err := n.Decode(&v); err != nil {
			return nil, fmt.Errorf("line %d: %w", n.Line, err)
		}
		return v, nil
	}
	return nil, fmt.Errorf("line %d: unsupported node kind %d", n.Line, n.Kind)
}

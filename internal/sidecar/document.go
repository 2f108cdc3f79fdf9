package sidecar

import (
	"fmt"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Document is the ordered key/value tree written to a node's metadata
// sidecar. Keys serialize in insertion order, so sidecar files reproduce the
// curator's column ordering byte-for-byte across runs.
type Document struct {
	pairs []pair
}

type pair struct {
	key   string
	value any
}

// NewDocument returns an empty document.
func NewDocument() *Document {
	return &Document{}
}

// Set appends key with value. Supported value types: string, int, float64,
// []string, and *Document for nested mappings.
func (d *Document) Set(key string, value any) {
	d.pairs = append(d.pairs, pair{key: key, value: value})
}

// Len returns the number of top-level keys.
func (d *Document) Len() int {
	return len(d.pairs)
}

// Get returns the value stored under key, if any. Primarily for tests.
func (d *Document) Get(key string) (any, bool) {
	for _, p := range d.pairs {
		if p.key == key {
			return p.value, true
		}
	}
	return nil, false
}

// Keys returns the top-level keys in insertion order.
func (d *Document) Keys() []string {
	keys := make([]string, len(d.pairs))
	for i, p := range d.pairs {
		keys[i] = p.key
	}
	return keys
}

// MarshalYAML renders the document as an order-preserving mapping node.
func (d *Document) MarshalYAML() (any, error) {
	return d.yamlNode()
}

// Encode serializes the document to YAML text.
func (d *Document) Encode() ([]byte, error) {
	return yaml.Marshal(d)
}

func (d *Document) yamlNode() (*yaml.Node, error) {
	node := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	for _, p := range d.pairs {
		keyNode := &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: p.key}
		valueNode, err := valueToNode(p.value)
		if err != nil {
			return nil, fmt.Errorf("key %q: %w", p.key, err)
		}
		node.Content = append(node.Content, keyNode, valueNode)
	}
	return node, nil
}

func valueToNode(value any) (*yaml.Node, error) {
	switch v := value.(type) {
	case string:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: v}, nil
	case int:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!int", Value: strconv.Itoa(v)}, nil
	case float64:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!float", Value: strconv.FormatFloat(v, 'f', -1, 64)}, nil
	case []string:
		seq := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
		for _, item := range v {
			seq.Content = append(seq.Content, &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: item})
		}
		return seq, nil
	case *Document:
		return v.yamlNode()
	default:
		return nil, fmt.Errorf("unsupported value type %T", value)
	}
}

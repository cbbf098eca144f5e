package config

import (
	"bytes"
	"fmt"

	"gopkg.in/yaml.v3"
)

const (
	nullTag  = "!!null"
	strTag   = "!!str"
	mergeTag = "!!merge"
)

// decodeTree parses YAML text into a value tree. Empty input and an explicit
// null document both yield an empty tree.
func decodeTree(text string) (*Node, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal([]byte(text), &doc); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}
	if doc.Kind == 0 || len(doc.Content) == 0 {
		return NewNode(), nil
	}

	root := resolveAlias(doc.Content[0])
	switch {
	case root.Kind == yaml.MappingNode:
		return mappingToNode(root)
	case root.Kind == yaml.ScalarNode && root.ShortTag() == nullTag:
		return NewNode(), nil
	}
	return nil, fmt.Errorf("%w: found %s at line %d", ErrNotMapping, kindName(root.Kind), root.Line)
}

// ParseValue decodes a single YAML value such as "10", "[a, b]" or
// "{b: 1, a: 2}". Mappings become nodes with their keys in written order.
// Empty input and null yield nil.
func ParseValue(text string) (any, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal([]byte(text), &doc); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}
	if doc.Kind == 0 || len(doc.Content) == 0 {
		return nil, nil
	}
	root := resolveAlias(doc.Content[0])
	if root.Kind == yaml.ScalarNode && root.ShortTag() == nullTag {
		return nil, nil
	}
	return yamlToValue(root)
}

func mappingToNode(m *yaml.Node) (*Node, error) {
	out := NewNode()
	for i := 0; i+1 < len(m.Content); i += 2 {
		keyNode := resolveAlias(m.Content[i])
		valueNode := m.Content[i+1]

		if keyNode.Kind != yaml.ScalarNode {
			return nil, fmt.Errorf("unsupported %s key at line %d", kindName(keyNode.Kind), keyNode.Line)
		}
		if keyNode.ShortTag() == mergeTag {
			if err := mergeInto(out, valueNode); err != nil {
				return nil, err
			}
			continue
		}

		value, err := yamlToValue(valueNode)
		if err != nil {
			return nil, fmt.Errorf("key %q: %w", keyNode.Value, err)
		}
		out.put(keyNode.Value, value)
	}
	return out, nil
}

// mergeInto applies a "<<" merge key. Keys already present win.
func mergeInto(out *Node, src *yaml.Node) error {
	src = resolveAlias(src)
	sources := []*yaml.Node{src}
	if src.Kind == yaml.SequenceNode {
		sources = src.Content
	}
	for _, s := range sources {
		s = resolveAlias(s)
		if s.Kind != yaml.MappingNode {
			return fmt.Errorf("merge value at line %d is not a mapping", s.Line)
		}
		merged, err := mappingToNode(s)
		if err != nil {
			return err
		}
		for _, key := range merged.keys {
			if _, exists := out.values[key]; !exists {
				out.put(key, merged.values[key])
			}
		}
	}
	return nil
}

func yamlToValue(n *yaml.Node) (any, error) {
	n = resolveAlias(n)
	switch n.Kind {
	case yaml.MappingNode:
		return mappingToNode(n)
	case yaml.SequenceNode:
		items := make([]any, 0, len(n.Content))
		for _, item := range n.Content {
			v, err := yamlToValue(item)
			if err != nil {
				return nil, err
			}
			items = append(items, v)
		}
		return items, nil
	case yaml.ScalarNode:
		var v any
		if err := n.Decode(&v); err != nil {
			return nil, fmt.Errorf("failed to decode scalar at line %d: %w", n.Line, err)
		}
		return v, nil
	}
	return nil, fmt.Errorf("unsupported %s at line %d", kindName(n.Kind), n.Line)
}

func resolveAlias(n *yaml.Node) *yaml.Node {
	for n.Kind == yaml.AliasNode && n.Alias != nil {
		n = n.Alias
	}
	return n
}

// encodeTree renders the tree as YAML with the given indentation. An empty
// tree renders as no text at all rather than "{}".
func encodeTree(root *Node, indent int) (string, error) {
	if root.Len() == 0 {
		return "", nil
	}
	node, err := valueToYAML(root)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(indent)
	if err := enc.Encode(node); err != nil {
		return "", fmt.Errorf("failed to encode YAML: %w", err)
	}
	if err := enc.Close(); err != nil {
		return "", fmt.Errorf("failed to encode YAML: %w", err)
	}
	return buf.String(), nil
}

func valueToYAML(v any) (*yaml.Node, error) {
	switch val := v.(type) {
	case *Node:
		m := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
		for _, key := range val.keys {
			child, err := valueToYAML(val.values[key])
			if err != nil {
				return nil, fmt.Errorf("key %q: %w", key, err)
			}
			m.Content = append(m.Content,
				&yaml.Node{Kind: yaml.ScalarNode, Tag: strTag, Value: key},
				child,
			)
		}
		return m, nil
	case []any:
		seq := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
		for _, item := range val {
			child, err := valueToYAML(item)
			if err != nil {
				return nil, err
			}
			seq.Content = append(seq.Content, child)
		}
		return seq, nil
	case nil:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: nullTag, Value: "null"}, nil
	}

	n := &yaml.Node{}
	if err := n.Encode(v); err != nil {
		return nil, fmt.Errorf("failed to encode %T: %w", v, err)
	}
	return n, nil
}

func kindName(k yaml.Kind) string {
	switch k {
	case yaml.DocumentNode:
		return "document"
	case yaml.SequenceNode:
		return "sequence"
	case yaml.MappingNode:
		return "mapping"
	case yaml.ScalarNode:
		return "scalar"
	case yaml.AliasNode:
		return "alias"
	}
	return "empty node"
}

// Package treecodec converts checklist documents between JSON/YAML bytes and
// the ordered raw values the domain classifies.
package treecodec

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"

	"github.com/runoshun/tick/internal/domain"
	"gopkg.in/yaml.v3"
)

// Decode parses a JSON or YAML document into ordered raw values.
// Mapping key order is preserved. Empty input decodes to nil.
func Decode(data []byte) (any, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrMalformedDocument, err)
	}
	if doc.Kind == 0 {
		return nil, nil
	}
	r := &nodeReader{expanding: make(map[*yaml.Node]bool)}
	return r.read(&doc)
}

// DecodeChecklist parses and classifies a document.
func DecodeChecklist(data []byte) (*domain.Checklist, error) {
	raw, err := Decode(data)
	if err != nil {
		return nil, err
	}
	return domain.NewChecklist(raw)
}

// Encode serializes raw values in the given format.
func Encode(root any, format domain.Format) ([]byte, error) {
	switch format {
	case domain.FormatJSON:
		return EncodeJSON(root)
	case domain.FormatYAML:
		return EncodeYAML(root)
	}
	return nil, fmt.Errorf("%w: %q", domain.ErrUnknownFormat, format)
}

// EncodeChecklist serializes a checklist in the given format.
func EncodeChecklist(c *domain.Checklist, format domain.Format) ([]byte, error) {
	return Encode(c.Raw(), format)
}

// EncodeYAML writes raw values as block-style YAML with two-space indentation.
func EncodeYAML(root any) ([]byte, error) {
	node, err := toNode(root)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(node); err != nil {
		return nil, fmt.Errorf("encode yaml: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("encode yaml: %w", err)
	}
	return buf.Bytes(), nil
}

// EncodeJSON writes raw values as indented JSON, keeping mapping order.
func EncodeJSON(root any) ([]byte, error) {
	var buf bytes.Buffer
	if err := writeJSON(&buf, root, ""); err != nil {
		return nil, err
	}
	buf.WriteByte('\n')
	return buf.Bytes(), nil
}

// maxAliasNodes bounds the number of nodes produced by alias expansion.
const maxAliasNodes = 1 << 16

// nodeReader converts a yaml.Node tree, refusing cyclic or exploding aliases.
type nodeReader struct {
	expanding map[*yaml.Node]bool // anchored nodes currently being read
	depth     int                 // alias nesting
	aliased   int                 // nodes read through aliases
}

func (r *nodeReader) read(n *yaml.Node) (any, error) {
	if r.depth > 0 {
		r.aliased++
		if r.aliased > maxAliasNodes {
			return nil, fmt.Errorf("%w: line %d: alias expansion exceeds %d nodes", domain.ErrMalformedDocument, n.Line, maxAliasNodes)
		}
	}
	if n.Anchor != "" && n.Kind != yaml.AliasNode {
		r.expanding[n] = true
		defer delete(r.expanding, n)
	}

	switch n.Kind {
	case yaml.DocumentNode:
		if len(n.Content) == 0 {
			return nil, nil
		}
		return r.read(n.Content[0])
	case yaml.AliasNode:
		if n.Alias == nil {
			return nil, fmt.Errorf("%w: line %d: unknown alias %q", domain.ErrMalformedDocument, n.Line, n.Value)
		}
		if r.expanding[n.Alias] {
			return nil, fmt.Errorf("%w: line %d: alias %q refers to itself", domain.ErrMalformedDocument, n.Line, n.Value)
		}
		r.depth++
		defer func() { r.depth-- }()
		return r.read(n.Alias)
	case yaml.SequenceNode:
		items := make([]any, 0, len(n.Content))
		for _, c := range n.Content {
			v, err := r.read(c)
			if err != nil {
				return nil, err
			}
			items = append(items, v)
		}
		return items, nil
	case yaml.MappingNode:
		obj := make(domain.Object, 0, len(n.Content)/2)
		for i := 0; i+1 < len(n.Content); i += 2 {
			key, err := r.key(n.Content[i])
			if err != nil {
				return nil, err
			}
			v, err := r.read(n.Content[i+1])
			if err != nil {
				return nil, err
			}
			obj = append(obj, domain.Field{Key: key, Value: v})
		}
		return obj, nil
	case yaml.ScalarNode:
		var v any
		if err := n.Decode(&v); err != nil {
			return nil, fmt.Errorf("%w: line %d: %v", domain.ErrMalformedDocument, n.Line, err)
		}
		return v, nil
	}
	return nil, fmt.Errorf("%w: unexpected node kind %d", domain.ErrMalformedDocument, n.Kind)
}

// key decodes a mapping key. Only scalars, or aliases of scalars, are keys.
func (r *nodeReader) key(n *yaml.Node) (string, error) {
	if n.Kind == yaml.AliasNode && n.Alias != nil {
		n = n.Alias
	}
	if n.Kind != yaml.ScalarNode {
		return "", fmt.Errorf("%w: line %d: mapping key must be a scalar", domain.ErrMalformedDocument, n.Line)
	}
	var key string
	if err := n.Decode(&key); err != nil {
		return "", fmt.Errorf("%w: line %d: %v", domain.ErrMalformedDocument, n.Line, err)
	}
	return key, nil
}

func toNode(v any) (*yaml.Node, error) {
	switch x := v.(type) {
	case domain.Object:
		n := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
		for _, f := range x {
			val, err := toNode(f.Value)
			if err != nil {
				return nil, err
			}
			key := &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: f.Key}
			n.Content = append(n.Content, key, val)
		}
		return n, nil
	case map[string]any:
		return toNode(sortedObject(x))
	case []any:
		n := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
		for _, item := range x {
			c, err := toNode(item)
			if err != nil {
				return nil, err
			}
			n.Content = append(n.Content, c)
		}
		return n, nil
	}
	n := &yaml.Node{}
	if err := n.Encode(v); err != nil {
		return nil, fmt.Errorf("encode %T: %w", v, err)
	}
	return n, nil
}

func writeJSON(buf *bytes.Buffer, v any, indent string) error {
	inner := indent + "  "
	switch x := v.(type) {
	case domain.Object:
		if len(x) == 0 {
			buf.WriteString("{}")
			return nil
		}
		buf.WriteString("{\n")
		for i, f := range x {
			key, err := json.Marshal(f.Key)
			if err != nil {
				return err
			}
			buf.WriteString(inner)
			buf.Write(key)
			buf.WriteString(": ")
			if err := writeJSON(buf, f.Value, inner); err != nil {
				return err
			}
			if i < len(x)-1 {
				buf.WriteByte(',')
			}
			buf.WriteByte('\n')
		}
		buf.WriteString(indent + "}")
		return nil
	case map[string]any:
		return writeJSON(buf, sortedObject(x), indent)
	case []any:
		if len(x) == 0 {
			buf.WriteString("[]")
			return nil
		}
		buf.WriteString("[\n")
		for i, item := range x {
			buf.WriteString(inner)
			if err := writeJSON(buf, item, inner); err != nil {
				return err
			}
			if i < len(x)-1 {
				buf.WriteByte(',')
			}
			buf.WriteByte('\n')
		}
		buf.WriteString(indent + "]")
		return nil
	}
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %T: %w", v, err)
	}
	buf.Write(b)
	return nil
}

func sortedObject(m map[string]any) domain.Object {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	obj := make(domain.Object, 0, len(m))
	for _, k := range keys {
		obj = append(obj, domain.Field{Key: k, Value: m[k]})
	}
	return obj
}

// Codec implements domain.DocumentCodec with the package functions.
type Codec struct{}

// Ensure Codec implements domain.DocumentCodec.
var _ domain.DocumentCodec = Codec{}

// Decode parses a JSON or YAML document.
func (Codec) Decode(data []byte) (*domain.Checklist, error) {
	return DecodeChecklist(data)
}

// Encode serializes c in the given format.
func (Codec) Encode(c *domain.Checklist, format domain.Format) ([]byte, error) {
	return EncodeChecklist(c, format)
}

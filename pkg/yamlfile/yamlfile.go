// Package yamlfile inspects YAML documents through gopkg.in/yaml.v3.
//
// The outline walks the decoded node tree so tags survive (an int
// scalar reports as int, not string), and ToJSON gives the usual
// yq-style view of a YAML file as indented JSON. Multi-document
// streams are supported; the outline describes the first document and
// reports how many follow.
package yamlfile

import (
	"encoding/json"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	apperrors "github.com/datapeek/datapeek/pkg/errors"
	"github.com/datapeek/datapeek/pkg/source"
)

// KeyInfo describes one entry of a top-level mapping.
type KeyInfo struct {
	Key  string `json:"key"`
	Kind string `json:"kind"`
	Len  int    `json:"len,omitempty"`
}

// Outline describes the top level of a YAML file.
type Outline struct {
	Documents int       `json:"documents"`
	Kind      string    `json:"kind"`
	Len       int       `json:"len,omitempty"`
	Keys      []KeyInfo `json:"keys,omitempty"`
}

// Keys reports the shape of the first document and the total document
// count of the stream. Mapping keys keep their file order.
func Keys(path string) (*Outline, error) {
	src, err := source.Open(path)
	if err != nil {
		return nil, err
	}
	defer src.Close()

	dec := yaml.NewDecoder(src)

	var first *yaml.Node
	docs := 0
	for {
		var node yaml.Node
		err := dec.Decode(&node)
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, apperrors.Wrap(apperrors.ErrCodeParse, err, "failed to parse %s", path)
		}
		if docs == 0 {
			first = &node
		}
		docs++
	}

	out := &Outline{Documents: docs}
	if first == nil {
		return out, nil
	}

	root := first
	if root.Kind == yaml.DocumentNode && len(root.Content) > 0 {
		root = root.Content[0]
	}
	out.Kind = kindOfNode(root)
	out.Len = lenOfNode(root)

	if root.Kind == yaml.MappingNode {
		for i := 0; i+1 < len(root.Content); i += 2 {
			key, val := root.Content[i], root.Content[i+1]
			out.Keys = append(out.Keys, KeyInfo{
				Key:  key.Value,
				Kind: kindOfNode(val),
				Len:  lenOfNode(val),
			})
		}
	}
	return out, nil
}

// ToJSON converts the file to indented JSON. A single document becomes
// one JSON value; a multi-document stream becomes a JSON array with one
// element per document.
func ToJSON(path string) ([]byte, error) {
	src, err := source.Open(path)
	if err != nil {
		return nil, err
	}
	defer src.Close()

	dec := yaml.NewDecoder(src)

	var docs []any
	for {
		var doc any
		err := dec.Decode(&doc)
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, apperrors.Wrap(apperrors.ErrCodeParse, err, "failed to parse %s", path)
		}
		docs = append(docs, jsonable(doc))
	}

	var out any
	switch len(docs) {
	case 0:
		out = nil
	case 1:
		out = docs[0]
	default:
		out = docs
	}
	return json.MarshalIndent(out, "", "  ")
}

// jsonable rewrites decoded YAML values so they survive json.Marshal.
// yaml.v3 can produce map[any]any for non-string keys; JSON requires
// string keys.
func jsonable(v any) any {
	switch t := v.(type) {
	case map[string]any:
		m := make(map[string]any, len(t))
		for k, val := range t {
			m[k] = jsonable(val)
		}
		return m
	case map[any]any:
		m := make(map[string]any, len(t))
		for k, val := range t {
			m[fmt.Sprint(k)] = jsonable(val)
		}
		return m
	case []any:
		s := make([]any, len(t))
		for i, val := range t {
			s[i] = jsonable(val)
		}
		return s
	default:
		return v
	}
}

func kindOfNode(n *yaml.Node) string {
	switch n.Kind {
	case yaml.MappingNode:
		return "mapping"
	case yaml.SequenceNode:
		return "sequence"
	case yaml.AliasNode:
		return "alias"
	case yaml.ScalarNode:
		switch n.Tag {
		case "!!str":
			return "string"
		case "!!int":
			return "int"
		case "!!float":
			return "float"
		case "!!bool":
			return "bool"
		case "!!null":
			return "null"
		case "!!timestamp":
			return "timestamp"
		default:
			return "scalar"
		}
	default:
		return "unknown"
	}
}

func lenOfNode(n *yaml.Node) int {
	switch n.Kind {
	case yaml.MappingNode:
		return len(n.Content) / 2
	case yaml.SequenceNode:
		return len(n.Content)
	default:
		return 0
	}
}

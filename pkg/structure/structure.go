// Package structure builds shape-of-the-data trees from structured
// files and renders them as Graphviz diagrams.
//
// A structure tree records member names, value kinds, and occurrence
// counts, never the values themselves. Arrays are collapsed: the
// members of every element are merged by name, so a 10k-element array
// of records becomes a single node whose children carry counts.
package structure

import (
	"encoding/json"
	"fmt"
	"maps"
	"path/filepath"
	"slices"
	"sort"
	"time"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	apperrors "github.com/datapeek/datapeek/pkg/errors"
	"github.com/datapeek/datapeek/pkg/filekind"
	"github.com/datapeek/datapeek/pkg/source"
	"github.com/datapeek/datapeek/pkg/xmlfile"
)

// Node is one member of a structure tree.
type Node struct {
	Name     string  `json:"name"`
	Kind     string  `json:"kind"`
	Count    int     `json:"count"`
	Children []*Node `json:"children,omitempty"`
}

// Tree builds the structure tree for a JSON, YAML, TOML, or XML file.
// The root node is named after the file; its children describe the
// top-level value. Members are merged by name with occurrence counts,
// and a member seen with more than one kind is reported as "mixed".
func Tree(path string) (*Node, error) {
	det, err := filekind.Detect(path)
	if err != nil {
		return nil, err
	}

	switch det.Kind {
	case filekind.KindJSON:
		return jsonTree(path)
	case filekind.KindYAML:
		return yamlTree(path)
	case filekind.KindTOML:
		return tomlTree(path)
	case filekind.KindXML:
		return xmlTree(path)
	default:
		return nil, apperrors.New(apperrors.ErrCodeUnsupported,
			"structure view does not support %s files", det.Kind)
	}
}

func jsonTree(path string) (*Node, error) {
	src, err := source.Open(path)
	if err != nil {
		return nil, err
	}
	defer src.Close()

	var v any
	if err := json.NewDecoder(src).Decode(&v); err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCodeParse, err, "failed to parse %s", path)
	}
	return rootNode(path, v), nil
}

func yamlTree(path string) (*Node, error) {
	src, err := source.Open(path)
	if err != nil {
		return nil, err
	}
	defer src.Close()

	var v any
	if err := yaml.NewDecoder(src).Decode(&v); err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCodeParse, err, "failed to parse %s", path)
	}
	return rootNode(path, v), nil
}

func tomlTree(path string) (*Node, error) {
	src, err := source.Open(path)
	if err != nil {
		return nil, err
	}
	defer src.Close()

	var v map[string]any
	if _, err := toml.NewDecoder(src).Decode(&v); err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCodeParse, err, "failed to parse %s", path)
	}
	return rootNode(path, v), nil
}

func xmlTree(path string) (*Node, error) {
	root, err := xmlfile.Outline(path, 0)
	if err != nil {
		return nil, err
	}
	return &Node{
		Name:     filepath.Base(path),
		Kind:     "document",
		Count:    1,
		Children: []*Node{elementNode(root)},
	}, nil
}

func rootNode(path string, v any) *Node {
	n := valueNode(filepath.Base(path), v)
	n.Count = 1
	return n
}

func valueNode(name string, v any) *Node {
	n := &Node{Name: name, Kind: kindOf(v), Count: 1}

	switch t := v.(type) {
	case map[string]any:
		for _, k := range slices.Sorted(maps.Keys(t)) {
			n.Children = append(n.Children, valueNode(k, t[k]))
		}
	case map[any]any:
		return valueNode(name, stringKeyed(t))
	case []map[string]any:
		return valueNode(name, anySlice(t))
	case []any:
		for _, elem := range t {
			mergeChildren(n, valueNode(name, elem).Children)
		}
	}
	return n
}

func elementNode(el *xmlfile.Element) *Node {
	n := &Node{Name: el.Name, Kind: "element", Count: el.Count}
	for _, a := range el.Attrs {
		n.Children = append(n.Children, &Node{Name: "@" + a, Kind: "attribute", Count: 1})
	}
	for _, c := range el.Children {
		n.Children = append(n.Children, elementNode(c))
	}
	sortChildren(n)
	return n
}

// mergeChildren folds src into dst's children, matching by name.
func mergeChildren(dst *Node, src []*Node) {
	for _, s := range src {
		c := childByName(dst, s.Name)
		if c == nil {
			dst.Children = append(dst.Children, s)
			continue
		}
		c.Count += s.Count
		if c.Kind != s.Kind {
			c.Kind = "mixed"
		}
		mergeChildren(c, s.Children)
	}
	sortChildren(dst)
}

func childByName(n *Node, name string) *Node {
	for _, c := range n.Children {
		if c.Name == name {
			return c
		}
	}
	return nil
}

func sortChildren(n *Node) {
	sort.Slice(n.Children, func(i, j int) bool {
		return n.Children[i].Name < n.Children[j].Name
	})
}

func stringKeyed(m map[any]any) map[string]any {
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[fmt.Sprint(k)] = v
	}
	return out
}

func anySlice(s []map[string]any) []any {
	out := make([]any, len(s))
	for i, v := range s {
		out[i] = v
	}
	return out
}

func kindOf(v any) string {
	switch v.(type) {
	case map[string]any, map[any]any:
		return "object"
	case []any, []map[string]any:
		return "array"
	case string:
		return "string"
	case int, int64, uint64:
		return "int"
	case float64, float32:
		return "number"
	case bool:
		return "bool"
	case time.Time:
		return "time"
	case nil:
		return "null"
	default:
		return "unknown"
	}
}

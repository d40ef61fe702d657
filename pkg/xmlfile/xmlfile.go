// Package xmlfile inspects XML documents through encoding/xml.
//
// Both operations work on the token stream, so documents are never held
// in memory as a whole. Outline merges repeated elements by name and
// counts occurrences, which turns a 100k-record export into a readable
// tree of a dozen lines.
//
// The stdlib decoder expands the predefined entities only and never
// fetches external ones, so the classic entity-expansion attacks on
// XML parsers do not apply here. Treat XML from untrusted sources with
// care all the same.
package xmlfile

import (
	"bytes"
	"encoding/xml"
	"io"
	"sort"

	apperrors "github.com/datapeek/datapeek/pkg/errors"
	"github.com/datapeek/datapeek/pkg/source"
)

// Element is one node of the merged outline tree.
type Element struct {
	Name     string     `json:"name"`
	Count    int        `json:"count"`
	Attrs    []string   `json:"attrs,omitempty"`
	Children []*Element `json:"children,omitempty"`
}

// Outline tokenizes the document and returns the element tree, merged
// by element name at every level with occurrence counts. maxDepth
// bounds how deep the recorded tree goes (the root is depth 1);
// maxDepth <= 0 means unlimited.
func Outline(path string, maxDepth int) (*Element, error) {
	src, err := source.Open(path)
	if err != nil {
		return nil, err
	}
	defer src.Close()

	if maxDepth <= 0 {
		maxDepth = int(^uint(0) >> 1)
	}

	type frame struct {
		elem     *Element
		recorded bool
	}

	dec := xml.NewDecoder(src)
	var root *Element
	var stack []frame
	depth := 0

	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, apperrors.Wrap(apperrors.ErrCodeParse, err, "failed to parse %s", path)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			switch {
			case depth == 0:
				root = &Element{Name: t.Name.Local, Count: 1}
				mergeAttrs(root, t.Attr)
				stack = append(stack, frame{elem: root, recorded: true})
			case depth < maxDepth && stack[len(stack)-1].recorded:
				parent := stack[len(stack)-1].elem
				child := childByName(parent, t.Name.Local)
				child.Count++
				mergeAttrs(child, t.Attr)
				stack = append(stack, frame{elem: child, recorded: true})
			default:
				stack = append(stack, frame{})
			}
			depth++
		case xml.EndElement:
			depth--
			stack = stack[:len(stack)-1]
		}
	}

	if root == nil {
		return nil, apperrors.New(apperrors.ErrCodeParse, "no root element in %s", path)
	}
	return root, nil
}

// Pretty re-indents the document by piping the token stream through an
// encoder. Whitespace-only text nodes from the original layout are
// dropped so the new indentation is the only one left.
func Pretty(path string) ([]byte, error) {
	src, err := source.Open(path)
	if err != nil {
		return nil, err
	}
	defer src.Close()

	var buf bytes.Buffer
	dec := xml.NewDecoder(src)
	enc := xml.NewEncoder(&buf)
	enc.Indent("", "  ")

	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, apperrors.Wrap(apperrors.ErrCodeParse, err, "failed to parse %s", path)
		}

		if cd, ok := tok.(xml.CharData); ok && len(bytes.TrimSpace(cd)) == 0 {
			continue
		}
		if err := enc.EncodeToken(tok); err != nil {
			return nil, apperrors.Wrap(apperrors.ErrCodeParse, err, "failed to re-encode %s", path)
		}
	}

	if err := enc.Flush(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func childByName(parent *Element, name string) *Element {
	for _, c := range parent.Children {
		if c.Name == name {
			return c
		}
	}
	c := &Element{Name: name}
	parent.Children = append(parent.Children, c)
	return c
}

func mergeAttrs(e *Element, attrs []xml.Attr) {
	for _, a := range attrs {
		name := a.Name.Local
		i := sort.SearchStrings(e.Attrs, name)
		if i < len(e.Attrs) && e.Attrs[i] == name {
			continue
		}
		e.Attrs = append(e.Attrs, "")
		copy(e.Attrs[i+1:], e.Attrs[i:])
		e.Attrs[i] = name
	}
}

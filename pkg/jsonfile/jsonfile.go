// Package jsonfile inspects JSON documents through encoding/json.
//
// Pretty and Minify re-encode a whole document, Keys reports the
// top-level outline, and HeadArray streams the first elements of a
// top-level array with json.Decoder so large exports never have to fit
// in memory to be previewed.
package jsonfile

import (
	"bytes"
	"encoding/json"
	"io"
	"sort"

	apperrors "github.com/datapeek/datapeek/pkg/errors"
	"github.com/datapeek/datapeek/pkg/source"
)

// Pretty returns the document re-indented with two spaces.
func Pretty(path string) ([]byte, error) {
	data, err := readAll(path)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := json.Indent(&buf, data, "", "  "); err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCodeParse, err, "failed to parse %s", path)
	}
	return buf.Bytes(), nil
}

// Minify returns the document with all insignificant whitespace removed.
func Minify(path string) ([]byte, error) {
	data, err := readAll(path)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := json.Compact(&buf, data); err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCodeParse, err, "failed to parse %s", path)
	}
	return buf.Bytes(), nil
}

// KeyInfo describes one member of a top-level object.
type KeyInfo struct {
	Key  string `json:"key"`
	Kind string `json:"kind"`
	Len  int    `json:"len,omitempty"`
}

// Outline describes the top level of a JSON document.
type Outline struct {
	Kind string    `json:"kind"`
	Len  int       `json:"len,omitempty"`
	Keys []KeyInfo `json:"keys,omitempty"`
}

// Keys parses the document and reports its top-level shape: the value
// kind, the member or element count, and for objects an alphabetical
// outline of member names with their kinds.
func Keys(path string) (*Outline, error) {
	data, err := readAll(path)
	if err != nil {
		return nil, err
	}

	var doc any
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCodeParse, err, "failed to parse %s", path)
	}

	out := &Outline{Kind: kindOf(doc), Len: lenOf(doc)}
	if obj, ok := doc.(map[string]any); ok {
		names := make([]string, 0, len(obj))
		for k := range obj {
			names = append(names, k)
		}
		sort.Strings(names)
		for _, k := range names {
			out.Keys = append(out.Keys, KeyInfo{Key: k, Kind: kindOf(obj[k]), Len: lenOf(obj[k])})
		}
	}
	return out, nil
}

// HeadArray streams the first n elements of a top-level JSON array
// without decoding the rest of the file. Documents whose top-level
// value is not an array are rejected.
func HeadArray(path string, n int) ([]json.RawMessage, error) {
	src, err := source.Open(path)
	if err != nil {
		return nil, err
	}
	defer src.Close()

	dec := json.NewDecoder(src)
	tok, err := dec.Token()
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCodeParse, err, "failed to parse %s", path)
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '[' {
		return nil, apperrors.New(apperrors.ErrCodeInvalidFormat, "top-level value in %s is not an array", path)
	}

	var elems []json.RawMessage
	for dec.More() && len(elems) < n {
		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return nil, apperrors.Wrap(apperrors.ErrCodeParse, err, "failed to parse %s", path)
		}
		elems = append(elems, raw)
	}
	return elems, nil
}

func readAll(path string) ([]byte, error) {
	src, err := source.Open(path)
	if err != nil {
		return nil, err
	}
	defer src.Close()
	return io.ReadAll(src)
}

func kindOf(v any) string {
	switch v.(type) {
	case map[string]any:
		return "object"
	case []any:
		return "array"
	case string:
		return "string"
	case float64, json.Number:
		return "number"
	case bool:
		return "bool"
	case nil:
		return "null"
	default:
		return "unknown"
	}
}

func lenOf(v any) int {
	switch t := v.(type) {
	case map[string]any:
		return len(t)
	case []any:
		return len(t)
	default:
		return 0
	}
}

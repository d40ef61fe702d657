// Package tomlfile inspects TOML documents through BurntSushi/toml.
//
// The decoder's MetaData keeps keys in file order and remembers the
// concrete TOML type of every value, which is exactly what an outline
// needs without re-implementing any parsing.
package tomlfile

import (
	"encoding/json"

	"github.com/BurntSushi/toml"

	apperrors "github.com/datapeek/datapeek/pkg/errors"
	"github.com/datapeek/datapeek/pkg/source"
)

// KeyInfo describes one top-level key.
type KeyInfo struct {
	Key  string `json:"key"`
	Kind string `json:"kind"`
	Len  int    `json:"len,omitempty"`
}

// Outline describes the top level of a TOML file.
type Outline struct {
	Len  int       `json:"len"`
	Keys []KeyInfo `json:"keys,omitempty"`
}

// Keys reports the top-level keys in file order with their TOML types.
func Keys(path string) (*Outline, error) {
	doc, md, err := decode(path)
	if err != nil {
		return nil, err
	}

	out := &Outline{}
	seen := make(map[string]bool)
	for _, key := range md.Keys() {
		// MetaData repeats an array-of-tables key once per [[header]].
		if len(key) != 1 || seen[key[0]] {
			continue
		}
		name := key[0]
		seen[name] = true
		out.Keys = append(out.Keys, KeyInfo{
			Key:  name,
			Kind: kindName(md.Type(name)),
			Len:  lenOf(doc[name]),
		})
	}
	out.Len = len(out.Keys)
	return out, nil
}

// ToJSON converts the file to indented JSON.
func ToJSON(path string) ([]byte, error) {
	doc, _, err := decode(path)
	if err != nil {
		return nil, err
	}
	return json.MarshalIndent(doc, "", "  ")
}

func decode(path string) (map[string]any, toml.MetaData, error) {
	src, err := source.Open(path)
	if err != nil {
		return nil, toml.MetaData{}, err
	}
	defer src.Close()

	var doc map[string]any
	md, err := toml.NewDecoder(src).Decode(&doc)
	if err != nil {
		return nil, toml.MetaData{}, apperrors.Wrap(apperrors.ErrCodeParse, err, "failed to parse %s", path)
	}
	return doc, md, nil
}

// kindName lowercases the TOML type names MetaData reports.
func kindName(tomlType string) string {
	switch tomlType {
	case "Integer":
		return "int"
	case "Float":
		return "float"
	case "Bool":
		return "bool"
	case "String":
		return "string"
	case "Datetime":
		return "timestamp"
	case "Array":
		return "array"
	case "ArrayOfTables":
		return "tables"
	case "Hash":
		return "table"
	default:
		return "unknown"
	}
}

func lenOf(v any) int {
	switch t := v.(type) {
	case map[string]any:
		return len(t)
	case []map[string]any:
		return len(t)
	case []any:
		return len(t)
	default:
		return 0
	}
}

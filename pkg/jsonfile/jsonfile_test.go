package jsonfile

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	apperrors "github.com/datapeek/datapeek/pkg/errors"
)

func writeFixture(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write fixture: %v", err)
	}
	return path
}

func TestPretty(t *testing.T) {
	path := writeFixture(t, t.TempDir(), "doc.json", `{"b":1,"a":[1,2]}`)

	got, err := Pretty(path)
	if err != nil {
		t.Fatalf("Pretty() error = %v", err)
	}
	want := "{\n  \"b\": 1,\n  \"a\": [\n    1,\n    2\n  ]\n}"
	if string(got) != want {
		t.Errorf("Pretty() = %q, want %q", got, want)
	}
}

func TestMinify(t *testing.T) {
	path := writeFixture(t, t.TempDir(), "doc.json", "{\n  \"a\": 1,\n  \"b\": [1, 2]\n}")

	got, err := Minify(path)
	if err != nil {
		t.Fatalf("Minify() error = %v", err)
	}
	want := `{"a":1,"b":[1,2]}`
	if string(got) != want {
		t.Errorf("Minify() = %q, want %q", got, want)
	}
}

func TestPrettyInvalid(t *testing.T) {
	path := writeFixture(t, t.TempDir(), "broken.json", `{"a":`)

	_, err := Pretty(path)
	if !apperrors.Is(err, apperrors.ErrCodeParse) {
		t.Errorf("error code = %v, want %v", apperrors.GetCode(err), apperrors.ErrCodeParse)
	}
}

func TestKeys(t *testing.T) {
	content := `{"name":"x","tags":["a","b","c"],"meta":{"k":1,"j":2},"count":7,"ok":true,"gone":null}`
	path := writeFixture(t, t.TempDir(), "doc.json", content)

	out, err := Keys(path)
	if err != nil {
		t.Fatalf("Keys() error = %v", err)
	}
	if out.Kind != "object" {
		t.Errorf("Kind = %q, want object", out.Kind)
	}
	if out.Len != 6 {
		t.Errorf("Len = %d, want 6", out.Len)
	}

	want := []KeyInfo{
		{Key: "count", Kind: "number"},
		{Key: "gone", Kind: "null"},
		{Key: "meta", Kind: "object", Len: 2},
		{Key: "name", Kind: "string"},
		{Key: "ok", Kind: "bool"},
		{Key: "tags", Kind: "array", Len: 3},
	}
	if len(out.Keys) != len(want) {
		t.Fatalf("Keys = %d entries, want %d", len(out.Keys), len(want))
	}
	for i := range want {
		if out.Keys[i] != want[i] {
			t.Errorf("entry %d = %+v, want %+v", i, out.Keys[i], want[i])
		}
	}
}

func TestKeysTopLevelArray(t *testing.T) {
	path := writeFixture(t, t.TempDir(), "arr.json", `[1,2,3,4]`)

	out, err := Keys(path)
	if err != nil {
		t.Fatalf("Keys() error = %v", err)
	}
	if out.Kind != "array" {
		t.Errorf("Kind = %q, want array", out.Kind)
	}
	if out.Len != 4 {
		t.Errorf("Len = %d, want 4", out.Len)
	}
	if len(out.Keys) != 0 {
		t.Errorf("Keys = %v, want none for an array", out.Keys)
	}
}

func TestHeadArray(t *testing.T) {
	path := writeFixture(t, t.TempDir(), "arr.json", `[{"id":1},{"id":2},{"id":3}]`)

	elems, err := HeadArray(path, 2)
	if err != nil {
		t.Fatalf("HeadArray() error = %v", err)
	}
	if len(elems) != 2 {
		t.Fatalf("HeadArray() returned %d elements, want 2", len(elems))
	}

	var first struct {
		ID int `json:"id"`
	}
	if err := json.Unmarshal(elems[0], &first); err != nil {
		t.Fatalf("failed to decode element: %v", err)
	}
	if first.ID != 1 {
		t.Errorf("first element id = %d, want 1", first.ID)
	}
}

func TestHeadArrayNotAnArray(t *testing.T) {
	path := writeFixture(t, t.TempDir(), "obj.json", `{"a":1}`)

	_, err := HeadArray(path, 5)
	if !apperrors.Is(err, apperrors.ErrCodeInvalidFormat) {
		t.Errorf("error code = %v, want %v", apperrors.GetCode(err), apperrors.ErrCodeInvalidFormat)
	}
}

func TestHeadArrayFewerElements(t *testing.T) {
	path := writeFixture(t, t.TempDir(), "arr.json", `[1]`)

	elems, err := HeadArray(path, 10)
	if err != nil {
		t.Fatalf("HeadArray() error = %v", err)
	}
	if len(elems) != 1 {
		t.Errorf("HeadArray() returned %d elements, want 1", len(elems))
	}
}

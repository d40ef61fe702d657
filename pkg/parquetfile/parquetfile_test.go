package parquetfile

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/parquet-go/parquet-go"

	apperrors "github.com/datapeek/datapeek/pkg/errors"
)

type order struct {
	ID    int64   `parquet:"id"`
	Buyer string  `parquet:"buyer,optional"`
	Total float64 `parquet:"total"`
}

func writeParquet(t *testing.T, dir string, rows []order) string {
	t.Helper()
	path := filepath.Join(dir, "orders.parquet")
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("failed to create fixture: %v", err)
	}
	w := parquet.NewGenericWriter[order](f)
	if _, err := w.Write(rows); err != nil {
		t.Fatalf("failed to write rows: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("failed to close writer: %v", err)
	}
	if err := f.Close(); err != nil {
		t.Fatalf("failed to close fixture: %v", err)
	}
	return path
}

var fixtureRows = []order{
	{ID: 1, Buyer: "alice", Total: 9.5},
	{ID: 2, Buyer: "bob", Total: 12.25},
	{ID: 3, Buyer: "", Total: 3},
}

func TestSchema(t *testing.T) {
	path := writeParquet(t, t.TempDir(), fixtureRows)

	info, err := Schema(path)
	if err != nil {
		t.Fatalf("Schema() error = %v", err)
	}

	if len(info.Columns) != 3 {
		t.Fatalf("Columns = %v, want 3 leaf columns", info.Columns)
	}

	fields := map[string]Field{}
	for _, f := range info.Fields {
		fields[f.Name] = f
	}
	for _, name := range []string{"id", "buyer", "total"} {
		f, ok := fields[name]
		if !ok {
			t.Fatalf("field %q missing from schema", name)
		}
		if f.Type == "" {
			t.Errorf("field %q has no type", name)
		}
	}
	if !fields["buyer"].Optional {
		t.Error("buyer Optional = false, want true")
	}
	if fields["id"].Optional {
		t.Error("id Optional = true, want false")
	}
}

func TestHead(t *testing.T) {
	path := writeParquet(t, t.TempDir(), fixtureRows)

	rows, err := Head(path, 2)
	if err != nil {
		t.Fatalf("Head() error = %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("Head() returned %d rows, want 2", len(rows))
	}

	first := cellMap(rows[0])
	if first["id"] != "1" {
		t.Errorf("row 0 id = %q, want %q", first["id"], "1")
	}
	if first["buyer"] != "alice" {
		t.Errorf("row 0 buyer = %q, want %q", first["buyer"], "alice")
	}
	if first["total"] != "9.5" {
		t.Errorf("row 0 total = %q, want %q", first["total"], "9.5")
	}
}

func TestHeadNullValue(t *testing.T) {
	path := writeParquet(t, t.TempDir(), fixtureRows)

	rows, err := Head(path, 10)
	if err != nil {
		t.Fatalf("Head() error = %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("Head() returned %d rows, want 3", len(rows))
	}

	// The zero value of an optional column is stored as null.
	last := cellMap(rows[2])
	if last["buyer"] != "null" {
		t.Errorf("row 2 buyer = %q, want %q", last["buyer"], "null")
	}
}

func TestHeadFewerRows(t *testing.T) {
	path := writeParquet(t, t.TempDir(), fixtureRows[:1])

	rows, err := Head(path, 100)
	if err != nil {
		t.Fatalf("Head() error = %v", err)
	}
	if len(rows) != 1 {
		t.Errorf("Head() returned %d rows, want 1", len(rows))
	}
}

func TestScan(t *testing.T) {
	path := writeParquet(t, t.TempDir(), fixtureRows)

	stats, err := Scan(path)
	if err != nil {
		t.Fatalf("Scan() error = %v", err)
	}
	if stats.Rows != 3 {
		t.Errorf("Rows = %d, want 3", stats.Rows)
	}
	if stats.RowGroups != 1 {
		t.Errorf("RowGroups = %d, want 1", stats.RowGroups)
	}
	if len(stats.Columns) != 3 {
		t.Errorf("Columns = %d, want 3", len(stats.Columns))
	}
	for _, col := range stats.Columns {
		if col.Type == "" {
			t.Errorf("column %q has no type", col.Path)
		}
	}
}

func TestOpenErrors(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		_, err := Schema(filepath.Join(t.TempDir(), "nope.parquet"))
		if !apperrors.Is(err, apperrors.ErrCodeFileNotFound) {
			t.Errorf("error code = %v, want %v", apperrors.GetCode(err), apperrors.ErrCodeFileNotFound)
		}
	})

	t.Run("not parquet", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "fake.parquet")
		if err := os.WriteFile(path, []byte("this is not parquet data at all"), 0o644); err != nil {
			t.Fatalf("failed to write fixture: %v", err)
		}
		_, err := Schema(path)
		if !apperrors.Is(err, apperrors.ErrCodeParse) {
			t.Errorf("error code = %v, want %v", apperrors.GetCode(err), apperrors.ErrCodeParse)
		}
	})
}

func cellMap(row Row) map[string]string {
	m := make(map[string]string, len(row))
	for _, c := range row {
		m[c.Column] = c.Value
	}
	return m
}

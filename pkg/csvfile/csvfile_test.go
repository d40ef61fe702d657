package csvfile

import (
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

func TestHead(t *testing.T) {
	content := "name,age,city\nalice,30,berlin\nbob,25,paris\ncarol,41,rome\n"
	path := writeFixture(t, t.TempDir(), "people.csv", content)

	table, err := Head(path, 2, Options{})
	if err != nil {
		t.Fatalf("Head() error = %v", err)
	}

	wantCols := []string{"name", "age", "city"}
	if len(table.Columns) != len(wantCols) {
		t.Fatalf("Columns = %v, want %v", table.Columns, wantCols)
	}
	for i := range wantCols {
		if table.Columns[i] != wantCols[i] {
			t.Errorf("column %d = %q, want %q", i, table.Columns[i], wantCols[i])
		}
	}

	if len(table.Rows) != 2 {
		t.Fatalf("Rows = %d, want 2", len(table.Rows))
	}
	if table.Rows[0][0] != "alice" || table.Rows[1][0] != "bob" {
		t.Errorf("rows = %v, want alice then bob", table.Rows)
	}
}

func TestHeadNoHeader(t *testing.T) {
	path := writeFixture(t, t.TempDir(), "bare.csv", "1,2\n3,4\n")

	table, err := Head(path, 10, Options{NoHeader: true})
	if err != nil {
		t.Fatalf("Head() error = %v", err)
	}
	if len(table.Columns) != 2 || table.Columns[0] != "col1" || table.Columns[1] != "col2" {
		t.Errorf("Columns = %v, want [col1 col2]", table.Columns)
	}
	// The first record is data, not a header.
	if len(table.Rows) != 2 {
		t.Fatalf("Rows = %d, want 2", len(table.Rows))
	}
	if table.Rows[0][0] != "1" {
		t.Errorf("first cell = %q, want %q", table.Rows[0][0], "1")
	}
}

func TestHeadTSV(t *testing.T) {
	path := writeFixture(t, t.TempDir(), "data.tsv", "a\tb\n1\t2\n")

	table, err := Head(path, 10, Options{})
	if err != nil {
		t.Fatalf("Head() error = %v", err)
	}
	if len(table.Columns) != 2 {
		t.Fatalf("Columns = %v, want 2 tab-separated columns", table.Columns)
	}
}

func TestHeadEmptyFile(t *testing.T) {
	path := writeFixture(t, t.TempDir(), "empty.csv", "")

	table, err := Head(path, 5, Options{})
	if err != nil {
		t.Fatalf("Head() error = %v", err)
	}
	if len(table.Columns) != 0 || len(table.Rows) != 0 {
		t.Errorf("empty file -> %+v, want no columns and no rows", table)
	}
}

func TestHeadMissingFile(t *testing.T) {
	_, err := Head(filepath.Join(t.TempDir(), "nope.csv"), 5, Options{})
	if !apperrors.Is(err, apperrors.ErrCodeFileNotFound) {
		t.Errorf("error code = %v, want %v", apperrors.GetCode(err), apperrors.ErrCodeFileNotFound)
	}
}

func TestScan(t *testing.T) {
	content := "id,price,active,joined,note\n" +
		"1,9.99,true,2024-01-02,hello\n" +
		"2,12.50,false,2024-02-03,\n" +
		"3,0.25,true,2024-03-04,world\n"
	path := writeFixture(t, t.TempDir(), "orders.csv", content)

	stats, err := Scan(path, Options{})
	if err != nil {
		t.Fatalf("Scan() error = %v", err)
	}
	if stats.Rows != 3 {
		t.Errorf("Rows = %d, want 3", stats.Rows)
	}

	wantTypes := map[string]string{
		"id":     TypeInt,
		"price":  TypeFloat,
		"active": TypeBool,
		"joined": TypeTime,
		"note":   TypeString,
	}
	if len(stats.Columns) != len(wantTypes) {
		t.Fatalf("Columns = %d, want %d", len(stats.Columns), len(wantTypes))
	}
	for _, col := range stats.Columns {
		if got := wantTypes[col.Name]; col.Type != got {
			t.Errorf("column %q type = %q, want %q", col.Name, col.Type, got)
		}
	}
}

func TestScanEmptyCells(t *testing.T) {
	content := "a,b\n1,\n2,x\n,\n"
	path := writeFixture(t, t.TempDir(), "gaps.csv", content)

	stats, err := Scan(path, Options{})
	if err != nil {
		t.Fatalf("Scan() error = %v", err)
	}
	if stats.Rows != 3 {
		t.Errorf("Rows = %d, want 3", stats.Rows)
	}
	if stats.Columns[0].Empty != 1 {
		t.Errorf("column a empty = %d, want 1", stats.Columns[0].Empty)
	}
	if stats.Columns[1].Empty != 2 {
		t.Errorf("column b empty = %d, want 2", stats.Columns[1].Empty)
	}
	// Empty cells do not break int inference.
	if stats.Columns[0].Type != TypeInt {
		t.Errorf("column a type = %q, want %q", stats.Columns[0].Type, TypeInt)
	}
}

func TestScanMalformed(t *testing.T) {
	// An unterminated quote is a parse error in encoding/csv.
	path := writeFixture(t, t.TempDir(), "broken.csv", "a,b\n\"unterminated,1\n")

	_, err := Scan(path, Options{})
	if !apperrors.Is(err, apperrors.ErrCodeParse) {
		t.Errorf("error code = %v, want %v", apperrors.GetCode(err), apperrors.ErrCodeParse)
	}
}

func TestInferNarrowing(t *testing.T) {
	tests := []struct {
		name   string
		values []string
		want   string
	}{
		{"ints", []string{"1", "-2", "30"}, TypeInt},
		{"ints then float", []string{"1", "2.5"}, TypeFloat},
		{"bools", []string{"true", "false", "TRUE"}, TypeBool},
		{"numeric bool stays int", []string{"1", "0"}, TypeInt},
		{"dates", []string{"2024-01-02", "2023-12-31"}, TypeTime},
		{"rfc3339", []string{"2024-01-02T10:30:00Z"}, TypeTime},
		{"mixed", []string{"1", "hello"}, TypeString},
		{"only empty", []string{"", ""}, TypeString},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newInferState()
			for _, v := range tt.values {
				s.observe(v)
			}
			if got := s.result(); got != tt.want {
				t.Errorf("result() = %q, want %q", got, tt.want)
			}
		})
	}
}

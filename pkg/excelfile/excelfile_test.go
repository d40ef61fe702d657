package excelfile

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/xuri/excelize/v2"

	apperrors "github.com/datapeek/datapeek/pkg/errors"
)

// writeWorkbook builds a two-sheet fixture: People with a header and
// two rows, Empty with nothing in it.
func writeWorkbook(t *testing.T, dir string) string {
	t.Helper()

	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", "People"); err != nil {
		t.Fatalf("failed to rename sheet: %v", err)
	}
	cells := map[string]any{
		"A1": "name", "B1": "age",
		"A2": "alice", "B2": 30,
		"A3": "bob", "B3": 25,
	}
	for ref, v := range cells {
		if err := f.SetCellValue("People", ref, v); err != nil {
			t.Fatalf("failed to set cell %s: %v", ref, err)
		}
	}
	if _, err := f.NewSheet("Empty"); err != nil {
		t.Fatalf("failed to add sheet: %v", err)
	}

	path := filepath.Join(dir, "book.xlsx")
	if err := f.SaveAs(path); err != nil {
		t.Fatalf("failed to save workbook: %v", err)
	}
	if err := f.Close(); err != nil {
		t.Fatalf("failed to close workbook: %v", err)
	}
	return path
}

func TestSheets(t *testing.T) {
	path := writeWorkbook(t, t.TempDir())

	sheets, err := Sheets(path)
	if err != nil {
		t.Fatalf("Sheets() error = %v", err)
	}
	if len(sheets) != 2 {
		t.Fatalf("Sheets() returned %d sheets, want 2", len(sheets))
	}

	people := sheets[0]
	if people.Name != "People" {
		t.Errorf("first sheet = %q, want People", people.Name)
	}
	if people.Rows != 3 {
		t.Errorf("People rows = %d, want 3", people.Rows)
	}
	if people.Cols != 2 {
		t.Errorf("People cols = %d, want 2", people.Cols)
	}

	empty := sheets[1]
	if empty.Name != "Empty" || empty.Rows != 0 {
		t.Errorf("second sheet = %+v, want empty sheet named Empty", empty)
	}
}

func TestHead(t *testing.T) {
	path := writeWorkbook(t, t.TempDir())

	table, err := Head(path, "People", 2)
	if err != nil {
		t.Fatalf("Head() error = %v", err)
	}
	if table.Sheet != "People" {
		t.Errorf("Sheet = %q, want People", table.Sheet)
	}
	if len(table.Rows) != 2 {
		t.Fatalf("Rows = %d, want 2", len(table.Rows))
	}
	if table.Rows[0][0] != "name" || table.Rows[1][0] != "alice" {
		t.Errorf("rows = %v, want header then alice", table.Rows)
	}
}

func TestHeadDefaultSheet(t *testing.T) {
	path := writeWorkbook(t, t.TempDir())

	table, err := Head(path, "", 10)
	if err != nil {
		t.Fatalf("Head() error = %v", err)
	}
	if table.Sheet != "People" {
		t.Errorf("default sheet = %q, want People", table.Sheet)
	}
	if len(table.Rows) != 3 {
		t.Errorf("Rows = %d, want 3", len(table.Rows))
	}
}

func TestHeadSheetNotFound(t *testing.T) {
	path := writeWorkbook(t, t.TempDir())

	_, err := Head(path, "Missing", 5)
	if !apperrors.Is(err, apperrors.ErrCodeSheetNotFound) {
		t.Errorf("error code = %v, want %v", apperrors.GetCode(err), apperrors.ErrCodeSheetNotFound)
	}
}

func TestHeadMissingFile(t *testing.T) {
	_, err := Head(filepath.Join(t.TempDir(), "nope.xlsx"), "", 5)
	if !apperrors.Is(err, apperrors.ErrCodeFileNotFound) {
		t.Errorf("error code = %v, want %v", apperrors.GetCode(err), apperrors.ErrCodeFileNotFound)
	}
}

func TestExportCSV(t *testing.T) {
	path := writeWorkbook(t, t.TempDir())

	var buf bytes.Buffer
	n, err := ExportCSV(path, "People", &buf)
	if err != nil {
		t.Fatalf("ExportCSV() error = %v", err)
	}
	if n != 3 {
		t.Errorf("rows written = %d, want 3", n)
	}

	want := "name,age\nalice,30\nbob,25\n"
	if buf.String() != want {
		t.Errorf("csv = %q, want %q", buf.String(), want)
	}
}

func TestSheetNames(t *testing.T) {
	path := writeWorkbook(t, t.TempDir())

	names, err := SheetNames(path)
	if err != nil {
		t.Fatalf("SheetNames() error = %v", err)
	}
	if len(names) != 2 || names[0] != "People" || names[1] != "Empty" {
		t.Errorf("SheetNames() = %v, want [People Empty]", names)
	}
}

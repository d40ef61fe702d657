// Package excelfile inspects xlsx workbooks through excelize.
//
// A workbook is a container of worksheets, so every operation here is
// sheet-scoped: list the sheets, preview one, or stream one out as CSV.
// Row iteration uses the excelize streaming iterator, which reads the
// sheet XML incrementally instead of materializing the whole grid.
package excelfile

import (
	"encoding/csv"
	"errors"
	"io"
	"io/fs"
	"os"

	"github.com/xuri/excelize/v2"

	apperrors "github.com/datapeek/datapeek/pkg/errors"
)

// SheetInfo describes one worksheet.
type SheetInfo struct {
	Name      string `json:"name"`
	Index     int    `json:"index"`
	Rows      int    `json:"rows"`
	Cols      int    `json:"cols"`
	Dimension string `json:"dimension,omitempty"`
}

// Table is a bounded preview of one worksheet.
type Table struct {
	Sheet string     `json:"sheet"`
	Rows  [][]string `json:"rows"`
}

// Sheets lists every worksheet with its used size.
func Sheets(path string) ([]SheetInfo, error) {
	f, err := open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var sheets []SheetInfo
	for i, name := range f.GetSheetList() {
		info := SheetInfo{Name: name, Index: i}

		if dim, err := f.GetSheetDimension(name); err == nil && dim != "A1" {
			info.Dimension = dim
		}

		rows, err := f.Rows(name)
		if err != nil {
			return nil, apperrors.Wrap(apperrors.ErrCodeParse, err, "failed to read sheet %q in %s", name, path)
		}
		for rows.Next() {
			cols, err := rows.Columns()
			if err != nil {
				rows.Close()
				return nil, apperrors.Wrap(apperrors.ErrCodeParse, err, "failed to read sheet %q in %s", name, path)
			}
			info.Rows++
			if len(cols) > info.Cols {
				info.Cols = len(cols)
			}
		}
		if err := rows.Close(); err != nil {
			return nil, apperrors.Wrap(apperrors.ErrCodeParse, err, "failed to read sheet %q in %s", name, path)
		}

		sheets = append(sheets, info)
	}
	return sheets, nil
}

// Head returns the first n rows of the named sheet. An empty sheet name
// selects the first sheet in the workbook.
func Head(path, sheet string, n int) (*Table, error) {
	f, err := open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	sheet, err = resolveSheet(f, sheet, path)
	if err != nil {
		return nil, err
	}

	table := &Table{Sheet: sheet}
	rows, err := f.Rows(sheet)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCodeParse, err, "failed to read sheet %q in %s", sheet, path)
	}
	defer rows.Close()

	for rows.Next() && len(table.Rows) < n {
		cols, err := rows.Columns()
		if err != nil {
			return nil, apperrors.Wrap(apperrors.ErrCodeParse, err, "failed to read sheet %q in %s", sheet, path)
		}
		table.Rows = append(table.Rows, cols)
	}
	return table, nil
}

// ExportCSV streams the named sheet as CSV records into w and returns
// the number of rows written. An empty sheet name selects the first
// sheet.
func ExportCSV(path, sheet string, w io.Writer) (int64, error) {
	f, err := open(path)
	if err != nil {
		return 0, err
	}
	defer f.Close()

	sheet, err = resolveSheet(f, sheet, path)
	if err != nil {
		return 0, err
	}

	rows, err := f.Rows(sheet)
	if err != nil {
		return 0, apperrors.Wrap(apperrors.ErrCodeParse, err, "failed to read sheet %q in %s", sheet, path)
	}
	defer rows.Close()

	cw := csv.NewWriter(w)
	var written int64
	for rows.Next() {
		cols, err := rows.Columns()
		if err != nil {
			return written, apperrors.Wrap(apperrors.ErrCodeParse, err, "failed to read sheet %q in %s", sheet, path)
		}
		if err := cw.Write(cols); err != nil {
			return written, err
		}
		written++
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return written, err
	}
	return written, nil
}

// SheetNames returns just the worksheet names, in workbook order.
func SheetNames(path string) ([]string, error) {
	f, err := open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return f.GetSheetList(), nil
}

func open(path string) (*excelize.File, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) || errors.Is(err, os.ErrNotExist) {
			return nil, apperrors.Wrap(apperrors.ErrCodeFileNotFound, err, "no such file: %s", path)
		}
		return nil, apperrors.Wrap(apperrors.ErrCodeParse, err, "failed to open workbook %s", path)
	}
	return f, nil
}

func resolveSheet(f *excelize.File, sheet, path string) (string, error) {
	if sheet == "" {
		list := f.GetSheetList()
		if len(list) == 0 {
			return "", apperrors.New(apperrors.ErrCodeSheetNotFound, "workbook %s has no sheets", path)
		}
		return list[0], nil
	}

	if err := apperrors.ValidateSheetName(sheet); err != nil {
		return "", err
	}

	idx, err := f.GetSheetIndex(sheet)
	if err != nil || idx < 0 {
		return "", apperrors.New(apperrors.ErrCodeSheetNotFound, "no sheet %q in %s", sheet, path)
	}
	return sheet, nil
}

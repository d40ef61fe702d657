// Package parquetfile inspects Parquet files through parquet-go.
//
// Parquet stores data by column, not by row: all values of one column
// sit together on disk, compressed as a block, with the schema and row
// counts in the file footer. That is why reading the schema or counting
// rows never touches the data pages, and why the preview here has to
// reassemble rows from the column chunks of each row group.
package parquetfile

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"

	"github.com/parquet-go/parquet-go"

	apperrors "github.com/datapeek/datapeek/pkg/errors"
)

// Field describes one node of the schema tree.
type Field struct {
	Name     string  `json:"name"`
	Type     string  `json:"type,omitempty"`
	Optional bool    `json:"optional,omitempty"`
	Repeated bool    `json:"repeated,omitempty"`
	Fields   []Field `json:"fields,omitempty"`
}

// SchemaInfo is the schema of a Parquet file: the field tree plus the
// flat list of leaf column paths in file order.
type SchemaInfo struct {
	Name    string   `json:"name,omitempty"`
	Fields  []Field  `json:"fields"`
	Columns []string `json:"columns"`
}

// Schema reads the file footer and returns the schema without touching
// any data pages.
func Schema(path string) (*SchemaInfo, error) {
	f, closeFile, err := open(path)
	if err != nil {
		return nil, err
	}
	defer closeFile()

	schema := f.Schema()
	info := &SchemaInfo{Name: schema.Name()}
	for _, field := range schema.Fields() {
		info.Fields = append(info.Fields, describeField(field))
	}
	for _, leaf := range schema.Columns() {
		info.Columns = append(info.Columns, strings.Join(leaf, "."))
	}
	return info, nil
}

// Cell is one column value of a previewed row, rendered as text.
type Cell struct {
	Column string `json:"column"`
	Value  string `json:"value"`
}

// Row is an ordered set of cells.
type Row []Cell

// Head reassembles the first n rows from the row groups.
func Head(path string, n int) ([]Row, error) {
	f, closeFile, err := open(path)
	if err != nil {
		return nil, err
	}
	defer closeFile()

	columns := make([]string, 0)
	for _, leaf := range f.Schema().Columns() {
		columns = append(columns, strings.Join(leaf, "."))
	}

	var out []Row
	buf := make([]parquet.Row, 64)
	for _, rg := range f.RowGroups() {
		if len(out) >= n {
			break
		}
		rows := rg.Rows()
		for len(out) < n {
			count, err := rows.ReadRows(buf)
			for _, row := range buf[:count] {
				if len(out) >= n {
					break
				}
				out = append(out, renderRow(row, columns))
			}
			if err == io.EOF {
				break
			}
			if err != nil {
				rows.Close()
				return nil, apperrors.Wrap(apperrors.ErrCodeParse, err, "failed to read rows from %s", path)
			}
		}
		if err := rows.Close(); err != nil {
			return nil, apperrors.Wrap(apperrors.ErrCodeParse, err, "failed to read rows from %s", path)
		}
	}
	return out, nil
}

// ColumnInfo describes one leaf column.
type ColumnInfo struct {
	Path string `json:"path"`
	Type string `json:"type"`
}

// Stats summarizes a Parquet file from its footer metadata.
type Stats struct {
	Rows      int64        `json:"rows"`
	RowGroups int          `json:"row_groups"`
	Columns   []ColumnInfo `json:"columns"`
}

// Scan reports row count, row-group count, and leaf column types. All
// of it comes from the footer, so this is cheap even on huge files.
func Scan(path string) (*Stats, error) {
	f, closeFile, err := open(path)
	if err != nil {
		return nil, err
	}
	defer closeFile()

	stats := &Stats{
		Rows:      f.NumRows(),
		RowGroups: len(f.RowGroups()),
	}

	schema := f.Schema()
	paths := schema.Columns()
	for _, leafPath := range paths {
		leaf, ok := schema.Lookup(leafPath...)
		if !ok {
			continue
		}
		stats.Columns = append(stats.Columns, ColumnInfo{
			Path: strings.Join(leafPath, "."),
			Type: typeName(leaf.Node),
		})
	}
	return stats, nil
}

// open maps the file for random access; Parquet needs a ReaderAt
// because the footer lives at the end.
func open(path string) (*parquet.File, func(), error) {
	osFile, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil, apperrors.Wrap(apperrors.ErrCodeFileNotFound, err, "no such file: %s", path)
		}
		return nil, nil, fmt.Errorf("failed to open %s: %w", path, err)
	}

	info, err := osFile.Stat()
	if err != nil {
		osFile.Close()
		return nil, nil, fmt.Errorf("failed to stat %s: %w", path, err)
	}

	f, err := parquet.OpenFile(osFile, info.Size())
	if err != nil {
		osFile.Close()
		return nil, nil, apperrors.Wrap(apperrors.ErrCodeParse, err, "failed to parse %s", path)
	}
	return f, func() { osFile.Close() }, nil
}

func describeField(field parquet.Field) Field {
	out := Field{
		Name:     field.Name(),
		Optional: field.Optional(),
		Repeated: field.Repeated(),
	}
	if field.Leaf() {
		out.Type = typeName(field)
		return out
	}
	for _, sub := range field.Fields() {
		out.Fields = append(out.Fields, describeField(sub))
	}
	return out
}

func typeName(node parquet.Node) string {
	return strings.ToLower(node.Type().String())
}

func renderRow(row parquet.Row, columns []string) Row {
	out := make(Row, 0, len(row))
	for _, v := range row {
		col := ""
		if idx := v.Column(); idx >= 0 && idx < len(columns) {
			col = columns[idx]
		}
		out = append(out, Cell{Column: col, Value: renderValue(v)})
	}
	return out
}

func renderValue(v parquet.Value) string {
	if v.IsNull() {
		return "null"
	}
	return v.String()
}

// Package csvfile reads delimited text files through encoding/csv.
//
// CSV is the plainest on-disk table format there is, so this package
// keeps close to the stdlib reader and adds only what a quick look at a
// file needs: a bounded preview and a single-pass scan that infers a
// type for every column from the values it actually sees.
package csvfile

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	apperrors "github.com/datapeek/datapeek/pkg/errors"
	"github.com/datapeek/datapeek/pkg/source"
)

// Options configures CSV reading.
type Options struct {
	// Delimiter is the field separator. Zero means infer from the file
	// extension: tab for .tsv, comma otherwise.
	Delimiter rune
	// NoHeader treats the first record as data and synthesizes column
	// names col1..colN.
	NoHeader bool
}

// Table is a bounded preview of a delimited file.
type Table struct {
	Columns []string   `json:"columns"`
	Rows    [][]string `json:"rows"`
}

// Head reads the column names and the first n records.
// Files with fewer records yield what they have.
func Head(path string, n int, opts Options) (*Table, error) {
	src, err := source.Open(path)
	if err != nil {
		return nil, err
	}
	defer src.Close()

	r := newReader(src, path, opts)
	table := &Table{}

	columns, first, err := readHeader(r, opts)
	if err == io.EOF {
		return table, nil
	}
	if err != nil {
		return nil, parseErr(path, err)
	}
	table.Columns = columns
	if first != nil {
		table.Rows = append(table.Rows, first)
	}

	for len(table.Rows) < n {
		rec, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, parseErr(path, err)
		}
		table.Rows = append(table.Rows, rec)
	}
	return table, nil
}

// ColumnStat describes one column after a full scan.
type ColumnStat struct {
	Name  string `json:"name"`
	Type  string `json:"type"`
	Empty int64  `json:"empty"`
}

// Stats summarizes a delimited file after one streaming pass.
type Stats struct {
	Rows    int64        `json:"rows"`
	Columns []ColumnStat `json:"columns"`
}

// Scan streams every record once and reports the row count plus a
// per-column inferred type and empty-cell count. The type is the most
// specific one every non-empty value in the column parses as, narrowing
// through int, float, bool, and time before falling back to string.
func Scan(path string, opts Options) (*Stats, error) {
	src, err := source.Open(path)
	if err != nil {
		return nil, err
	}
	defer src.Close()

	r := newReader(src, path, opts)

	columns, first, err := readHeader(r, opts)
	if err == io.EOF {
		return &Stats{}, nil
	}
	if err != nil {
		return nil, parseErr(path, err)
	}

	infers := make([]*inferState, len(columns))
	for i := range infers {
		infers[i] = newInferState()
	}

	stats := &Stats{}
	observe := func(rec []string) {
		stats.Rows++
		for i, cell := range rec {
			if i >= len(infers) {
				break
			}
			infers[i].observe(cell)
		}
	}
	if first != nil {
		observe(first)
	}

	for {
		rec, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, parseErr(path, err)
		}
		observe(rec)
	}

	for i, name := range columns {
		stats.Columns = append(stats.Columns, ColumnStat{
			Name:  name,
			Type:  infers[i].result(),
			Empty: infers[i].empty,
		})
	}
	return stats, nil
}

// newReader builds the csv.Reader with the effective delimiter.
// FieldsPerRecord is left lenient so ragged files still scan.
func newReader(src io.Reader, path string, opts Options) *csv.Reader {
	r := csv.NewReader(src)
	r.Comma = effectiveDelimiter(path, opts)
	r.FieldsPerRecord = -1
	return r
}

func effectiveDelimiter(path string, opts Options) rune {
	if opts.Delimiter != 0 {
		return opts.Delimiter
	}
	name := strings.ToLower(strings.TrimSuffix(path, ".gz"))
	if strings.HasSuffix(name, ".tsv") {
		return '\t'
	}
	return ','
}

// readHeader returns the column names and, when NoHeader is set, the
// already-consumed first record so the caller does not lose it.
func readHeader(r *csv.Reader, opts Options) (columns []string, first []string, err error) {
	rec, err := r.Read()
	if err != nil {
		return nil, nil, err
	}
	if opts.NoHeader {
		columns = make([]string, len(rec))
		for i := range rec {
			columns[i] = fmt.Sprintf("col%d", i+1)
		}
		return columns, rec, nil
	}
	return rec, nil, nil
}

func parseErr(path string, err error) error {
	return apperrors.Wrap(apperrors.ErrCodeParse, err, "failed to parse %s", path)
}

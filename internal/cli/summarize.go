package cli

import (
	"context"

	"github.com/datapeek/datapeek/pkg/csvfile"
	"github.com/datapeek/datapeek/pkg/excelfile"
	"github.com/datapeek/datapeek/pkg/filekind"
	"github.com/datapeek/datapeek/pkg/gobfile"
	"github.com/datapeek/datapeek/pkg/imagefile"
	"github.com/datapeek/datapeek/pkg/inspect"
	"github.com/datapeek/datapeek/pkg/jsonfile"
	"github.com/datapeek/datapeek/pkg/parquetfile"
	"github.com/datapeek/datapeek/pkg/textfile"
	"github.com/datapeek/datapeek/pkg/tomlfile"
	"github.com/datapeek/datapeek/pkg/xmlfile"
	"github.com/datapeek/datapeek/pkg/yamlfile"
)

// xmlSummaryDepth bounds how deep describe walks an XML document.
const xmlSummaryDepth = 3

// summarizers is the registry of per-format summarizers used by the
// describe command and the preview server. Adding support for a new
// file kind means adding an entry here.
var summarizers = []*inspect.Summarizer{
	{Kind: filekind.KindText, Summarize: summarizeText},
	{Kind: filekind.KindCSV, Summarize: summarizeCSV},
	{Kind: filekind.KindJSON, Summarize: summarizeJSON},
	{Kind: filekind.KindYAML, Summarize: summarizeYAML},
	{Kind: filekind.KindTOML, Summarize: summarizeTOML},
	{Kind: filekind.KindXML, Summarize: summarizeXML},
	{Kind: filekind.KindExcel, Summarize: summarizeExcel},
	{Kind: filekind.KindParquet, Summarize: summarizeParquet},
	{Kind: filekind.KindSnapshot, Summarize: summarizeSnapshot},
	{Kind: filekind.KindImage, Summarize: summarizeImage},
}

type textSummary struct {
	Lines int64    `json:"lines"`
	Words int64    `json:"words"`
	Bytes int64    `json:"bytes"`
	Head  []string `json:"head,omitempty"`
}

func summarizeText(_ context.Context, path string, opts inspect.Options) (any, error) {
	count, err := textfile.Count(path)
	if err != nil {
		return nil, err
	}
	head, err := textfile.Head(path, opts.HeadRows)
	if err != nil {
		return nil, err
	}
	return &textSummary{
		Lines: count.Lines,
		Words: count.Words,
		Bytes: count.Bytes,
		Head:  head,
	}, nil
}

type csvSummary struct {
	Rows    int64                `json:"rows"`
	Columns []csvfile.ColumnStat `json:"columns"`
	Head    *csvfile.Table       `json:"head,omitempty"`
}

func summarizeCSV(_ context.Context, path string, opts inspect.Options) (any, error) {
	stats, err := csvfile.Scan(path, csvfile.Options{})
	if err != nil {
		return nil, err
	}
	head, err := csvfile.Head(path, opts.HeadRows, csvfile.Options{})
	if err != nil {
		return nil, err
	}
	return &csvSummary{Rows: stats.Rows, Columns: stats.Columns, Head: head}, nil
}

func summarizeJSON(_ context.Context, path string, _ inspect.Options) (any, error) {
	return jsonfile.Keys(path)
}

func summarizeYAML(_ context.Context, path string, _ inspect.Options) (any, error) {
	return yamlfile.Keys(path)
}

func summarizeTOML(_ context.Context, path string, _ inspect.Options) (any, error) {
	return tomlfile.Keys(path)
}

func summarizeXML(_ context.Context, path string, _ inspect.Options) (any, error) {
	return xmlfile.Outline(path, xmlSummaryDepth)
}

type excelSummary struct {
	Sheets []excelfile.SheetInfo `json:"sheets"`
	Head   *excelfile.Table      `json:"head,omitempty"`
}

func summarizeExcel(_ context.Context, path string, opts inspect.Options) (any, error) {
	sheets, err := excelfile.Sheets(path)
	if err != nil {
		return nil, err
	}
	sum := &excelSummary{Sheets: sheets}
	if opts.Sheet != "" {
		head, err := excelfile.Head(path, opts.Sheet, opts.HeadRows)
		if err != nil {
			return nil, err
		}
		sum.Head = head
	}
	return sum, nil
}

type parquetSummary struct {
	Schema    *parquetfile.SchemaInfo  `json:"schema"`
	Rows      int64                    `json:"rows"`
	RowGroups int                      `json:"row_groups"`
	Columns   []parquetfile.ColumnInfo `json:"columns"`
}

// summarizeParquet reads only the file footer, so it stays cheap even
// for very large files.
func summarizeParquet(_ context.Context, path string, _ inspect.Options) (any, error) {
	schema, err := parquetfile.Schema(path)
	if err != nil {
		return nil, err
	}
	stats, err := parquetfile.Scan(path)
	if err != nil {
		return nil, err
	}
	return &parquetSummary{
		Schema:    schema,
		Rows:      stats.Rows,
		RowGroups: stats.RowGroups,
		Columns:   stats.Columns,
	}, nil
}

type snapshotSummary struct {
	ID        string `json:"id"`
	CreatedAt string `json:"created_at"`
	Path      string `json:"path"`
	Kind      string `json:"kind"`
}

// summarizeSnapshot reports snapshot metadata without re-encoding the
// payload, which may be large.
func summarizeSnapshot(_ context.Context, path string, _ inspect.Options) (any, error) {
	snap, err := gobfile.Load(path)
	if err != nil {
		return nil, err
	}
	return &snapshotSummary{
		ID:        snap.ID,
		CreatedAt: snap.CreatedAt.Format("2006-01-02 15:04:05"),
		Path:      snap.Path,
		Kind:      snap.Kind,
	}, nil
}

func summarizeImage(_ context.Context, path string, _ inspect.Options) (any, error) {
	return imagefile.Describe(path)
}

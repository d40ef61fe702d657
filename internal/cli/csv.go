package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/datapeek/datapeek/pkg/csvfile"
	apperrors "github.com/datapeek/datapeek/pkg/errors"
)

// csvOpts holds the shared flags of the csv subcommands.
type csvOpts struct {
	delimiter string // field delimiter ("tab" and "\t" mean tab)
	noHeader  bool   // treat the first row as data
	rows      int    // number of rows for head
}

// options converts the flag values into csvfile.Options.
func (o *csvOpts) options() (csvfile.Options, error) {
	delim, err := parseDelimiter(o.delimiter)
	if err != nil {
		return csvfile.Options{}, err
	}
	return csvfile.Options{Delimiter: delim, NoHeader: o.noHeader}, nil
}

// parseDelimiter maps the --delimiter flag value to a rune. Empty means
// infer from the file extension. The spellings "tab" and "\t" both
// select a tab, since a literal tab is awkward to pass from a shell.
func parseDelimiter(s string) (rune, error) {
	switch s {
	case "":
		return 0, nil
	case "tab", `\t`:
		return '\t', nil
	}
	if err := apperrors.ValidateDelimiter(s); err != nil {
		return 0, err
	}
	return []rune(s)[0], nil
}

// csvCommand creates the CSV inspection command.
func (c *CLI) csvCommand() *cobra.Command {
	opts := csvOpts{rows: 10}

	cmd := &cobra.Command{
		Use:   "csv",
		Short: "Inspect CSV files",
	}

	cmd.PersistentFlags().StringVarP(&opts.delimiter, "delimiter", "d", "", "field delimiter (default comma, use 'tab' for TSV)")
	cmd.PersistentFlags().BoolVar(&opts.noHeader, "no-header", false, "treat the first row as data")

	cmd.AddCommand(c.csvHeadCommand(&opts))
	cmd.AddCommand(c.csvStatsCommand(&opts))

	return cmd
}

// csvHeadCommand creates the "csv head" subcommand.
func (c *CLI) csvHeadCommand(opts *csvOpts) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "head <file>",
		Short: "Show the first rows as a table",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			o, err := opts.options()
			if err != nil {
				return err
			}

			t, err := csvfile.Head(args[0], opts.rows, o)
			if err != nil {
				return err
			}

			fmt.Println(renderTable(t.Columns, t.Rows))
			printDetail("%d row(s) shown", len(t.Rows))
			return nil
		},
	}

	cmd.Flags().IntVarP(&opts.rows, "rows", "n", opts.rows, "number of rows to show")
	return cmd
}

// csvStatsCommand creates the "csv stats" subcommand.
func (c *CLI) csvStatsCommand(opts *csvOpts) *cobra.Command {
	return &cobra.Command{
		Use:   "stats <file>",
		Short: "Scan the whole file and report per-column statistics",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			o, err := opts.options()
			if err != nil {
				return err
			}

			prog := newProgress(loggerFromContext(cmd.Context()))
			sp := newSpinnerWithContext(cmd.Context(), "Scanning rows")
			sp.Start()
			stats, err := csvfile.Scan(args[0], o)
			sp.Stop()
			if err != nil {
				return err
			}
			prog.done(fmt.Sprintf("Scanned %d rows", stats.Rows))

			rows := make([][]string, len(stats.Columns))
			for i, col := range stats.Columns {
				rows[i] = []string{col.Name, col.Type, strconv.FormatInt(col.Empty, 10)}
			}
			fmt.Println(renderTable([]string{"Column", "Type", "Empty"}, rows))
			printStats(stats.Rows, len(stats.Columns), false)
			return nil
		},
	}
}

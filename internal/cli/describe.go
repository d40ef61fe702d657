package cli

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/datapeek/datapeek/pkg/inspect"
)

// describeOpts holds the command-line flags for the describe command.
type describeOpts struct {
	rows    int    // head rows to include in the summary
	sheet   string // workbook sheet, Excel files only
	refresh bool   // recompute even when a cached summary exists
	noCache bool   // skip the cache entirely
	asJSON  bool   // emit the raw summary as JSON
}

// describeCommand creates the describe command, which detects a file's
// kind and produces a cached summary of it.
func (c *CLI) describeCommand() *cobra.Command {
	opts := describeOpts{rows: inspect.DefaultHeadRows}

	cmd := &cobra.Command{
		Use:   "describe <file>",
		Short: "Detect a file's format and summarize it",
		Long: `Describe detects the format of a file, runs the matching summarizer,
and prints the result. Summaries are cached by content fingerprint, so
describing an unchanged file again is instant.

Examples:
  datapeek describe sales.csv
  datapeek describe big.json --json | jq .details
  datapeek describe report.xlsx --sheet Q3 --rows 5
  datapeek describe sales.csv --refresh`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			runner, err := c.newRunner(opts.noCache)
			if err != nil {
				return err
			}
			defer runner.Close()

			res, err := runner.Describe(cmd.Context(), inspect.Options{
				Path:     args[0],
				HeadRows: opts.rows,
				Sheet:    opts.sheet,
				Refresh:  opts.refresh,
			})
			if err != nil {
				return err
			}

			if opts.asJSON {
				return writeSummaryJSON(res.Summary)
			}

			printSummary(res)
			return nil
		},
	}

	cmd.Flags().IntVarP(&opts.rows, "rows", "n", opts.rows, "rows to include in the summary head")
	cmd.Flags().StringVarP(&opts.sheet, "sheet", "s", "", "sheet to summarize (Excel files)")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "recompute even if cached")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "skip the summary cache")
	cmd.Flags().BoolVar(&opts.asJSON, "json", false, "print the summary as JSON")
	return cmd
}

// printSummary renders the describe result for terminals.
func printSummary(res *inspect.Result) {
	sum := res.Summary

	kind := string(sum.Kind)
	if sum.Compressed {
		kind += " (gzip)"
	}

	printKeyValue("File", sum.Path)
	printKeyValue("Kind", kind)
	printKeyValue("Size", formatSize(sum.SizeBytes))
	printKeyValue("Modified", sum.ModTime.Local().Format(time.DateTime))
	printKeyValue("Fingerprint", shortFingerprint(sum.Fingerprint))

	if len(sum.Details) > 0 {
		printNewline()
		var buf bytes.Buffer
		if err := json.Indent(&buf, sum.Details, "", "  "); err == nil {
			fmt.Println(buf.String())
		}
	}

	printStats(0, 0, res.CacheHit)
}

// writeSummaryJSON emits the full summary on stdout for scripting.
func writeSummaryJSON(sum *inspect.Summary) error {
	out, err := json.MarshalIndent(sum, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(os.Stdout, string(out))
	return err
}

// shortFingerprint trims a content fingerprint for display.
func shortFingerprint(fp string) string {
	if len(fp) > 12 {
		return fp[:12]
	}
	return fp
}

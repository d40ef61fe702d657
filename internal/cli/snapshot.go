package cli

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/datapeek/datapeek/pkg/gobfile"
	"github.com/datapeek/datapeek/pkg/inspect"
)

// Snapshot payload types must be registered before gob can encode or
// decode them.
func init() {
	gobfile.Register(inspect.Summary{})
}

// snapshotCommand creates the snapshot command for saving and reloading
// summaries as native snapshot files.
func (c *CLI) snapshotCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "snapshot",
		Short: "Save and reload summaries as snapshot files",
		Long: `Snapshot persists a file summary in datapeek's native binary format so
it can be reloaded later without touching the source file. Snapshots
are Go-specific working state, not an interchange format; only load
snapshots you wrote yourself.`,
	}

	cmd.AddCommand(c.snapshotSaveCommand())
	cmd.AddCommand(c.snapshotShowCommand())

	return cmd
}

// snapshotSaveCommand creates the "snapshot save" subcommand.
func (c *CLI) snapshotSaveCommand() *cobra.Command {
	var (
		output  string
		rows    int
		sheet   string
		noCache bool
	)

	cmd := &cobra.Command{
		Use:   "save <file>",
		Short: "Describe a file and save the summary as a snapshot",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			runner, err := c.newRunner(noCache)
			if err != nil {
				return err
			}
			defer runner.Close()

			res, err := runner.Describe(cmd.Context(), inspect.Options{
				Path:     args[0],
				HeadRows: rows,
				Sheet:    sheet,
			})
			if err != nil {
				return err
			}

			dest := output
			if dest == "" {
				dest = args[0] + ".peek"
			}

			snap := &gobfile.Snapshot{
				Path:    res.Summary.Path,
				Kind:    string(res.Summary.Kind),
				Payload: *res.Summary,
			}
			if err := gobfile.Save(dest, snap); err != nil {
				return err
			}

			printSuccess("Saved snapshot %s", StyleHighlight.Render(shortFingerprint(snap.ID)))
			printFile(dest)
			printNextStep("Reload it with", fmt.Sprintf("datapeek snapshot show %s", dest))
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "snapshot file (default <file>.peek)")
	cmd.Flags().IntVarP(&rows, "rows", "n", inspect.DefaultHeadRows, "rows to include in the summary head")
	cmd.Flags().StringVarP(&sheet, "sheet", "s", "", "sheet to summarize (Excel files)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "skip the summary cache")
	return cmd
}

// snapshotShowCommand creates the "snapshot show" subcommand.
func (c *CLI) snapshotShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show <snapshot>",
		Short: "Load a snapshot and print what it holds",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			snap, err := gobfile.Load(args[0])
			if err != nil {
				return err
			}

			printKeyValue("ID", snap.ID)
			printKeyValue("Created", snap.CreatedAt.Local().Format(time.DateTime))
			printKeyValue("Source", snap.Path)
			printKeyValue("Kind", snap.Kind)

			sum, ok := snap.Payload.(inspect.Summary)
			if !ok {
				printDetail("Payload type: %T", snap.Payload)
				return nil
			}

			printKeyValue("Size", formatSize(sum.SizeBytes))
			printKeyValue("Fingerprint", shortFingerprint(sum.Fingerprint))
			if len(sum.Details) > 0 {
				printNewline()
				var buf bytes.Buffer
				if err := json.Indent(&buf, sum.Details, "", "  "); err == nil {
					fmt.Println(buf.String())
				}
			}
			return nil
		},
	}
}

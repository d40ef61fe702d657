package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/datapeek/datapeek/pkg/catalog"
	apperrors "github.com/datapeek/datapeek/pkg/errors"
	"github.com/datapeek/datapeek/pkg/filekind"
	"github.com/datapeek/datapeek/pkg/inspect"
)

// catalogOpts holds the backend flags shared by the catalog subcommands.
type catalogOpts struct {
	mongoURI string // MongoDB connection string, empty selects the file backend
	mongoDB  string // MongoDB database name
}

// newStore opens the catalog backend selected by the flags.
func (o *catalogOpts) newStore(ctx context.Context) (catalog.Store, error) {
	if o.mongoURI != "" {
		return catalog.NewMongoStore(ctx, o.mongoURI, o.mongoDB)
	}
	dir, err := dataDir()
	if err != nil {
		return nil, err
	}
	return catalog.NewFileStore(dir)
}

// catalogCommand creates the catalog command for pinning described
// files in a local or MongoDB-backed catalog.
func (c *CLI) catalogCommand() *cobra.Command {
	opts := catalogOpts{mongoDB: appName}

	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "Pin described files in a dataset catalog",
		Long: `Catalog keeps a record of described files: path, kind, fingerprint, and
the summary at the time of adding. Records live in a local directory by
default, or in MongoDB when --mongo is given.

Examples:
  datapeek catalog add sales.csv
  datapeek catalog list
  datapeek catalog show 4f1c2ab0
  datapeek catalog add sales.csv --mongo mongodb://localhost:27017`,
	}

	cmd.PersistentFlags().StringVar(&opts.mongoURI, "mongo", "", "MongoDB URI (default: local file catalog)")
	cmd.PersistentFlags().StringVar(&opts.mongoDB, "mongo-db", opts.mongoDB, "MongoDB database name")

	cmd.AddCommand(c.catalogAddCommand(&opts))
	cmd.AddCommand(c.catalogListCommand(&opts))
	cmd.AddCommand(c.catalogShowCommand(&opts))
	cmd.AddCommand(c.catalogRemoveCommand(&opts))

	return cmd
}

// catalogAddCommand creates the "catalog add" subcommand.
func (c *CLI) catalogAddCommand(opts *catalogOpts) *cobra.Command {
	var (
		rows  int
		sheet string
	)

	cmd := &cobra.Command{
		Use:   "add <file>",
		Short: "Describe a file and add it to the catalog",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := opts.newStore(cmd.Context())
			if err != nil {
				return err
			}
			defer store.Close()

			runner, err := c.newRunner(false)
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

			rec := catalog.NewRecord(res.Summary)
			if err := store.Put(cmd.Context(), rec); err != nil {
				return err
			}

			printSuccess("Cataloged %s", StyleHighlight.Render(rec.Path))
			printDetail("ID: %s", rec.ID)
			printNextStep("Inspect it with", fmt.Sprintf("datapeek catalog show %s", rec.ID))
			return nil
		},
	}

	cmd.Flags().IntVarP(&rows, "rows", "n", inspect.DefaultHeadRows, "rows to include in the summary head")
	cmd.Flags().StringVarP(&sheet, "sheet", "s", "", "sheet to summarize (Excel files)")
	return cmd
}

// catalogListCommand creates the "catalog list" subcommand.
func (c *CLI) catalogListCommand(opts *catalogOpts) *cobra.Command {
	var kind string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List catalog records, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			if kind != "" && !filekind.Valid(kind) {
				return apperrors.New(apperrors.ErrCodeInvalidInput, "unknown kind %q", kind)
			}

			store, err := opts.newStore(cmd.Context())
			if err != nil {
				return err
			}
			defer store.Close()

			recs, err := store.List(cmd.Context())
			if err != nil {
				return err
			}
			if kind != "" {
				kept := recs[:0]
				for _, r := range recs {
					if string(r.Kind) == kind {
						kept = append(kept, r)
					}
				}
				recs = kept
			}
			if len(recs) == 0 {
				if kind != "" {
					printInfo("No %s records in the catalog", kind)
					return nil
				}
				printInfo("Catalog is empty")
				printNextStep("Add a file with", "datapeek catalog add <file>")
				return nil
			}

			rows := make([][]string, len(recs))
			for i, r := range recs {
				rows[i] = []string{
					shortID(r.ID),
					r.Path,
					string(r.Kind),
					formatSize(r.SizeBytes),
					formatAge(r.AddedAt),
				}
			}
			fmt.Println(renderTable([]string{"ID", "Path", "Kind", "Size", "Added"}, rows))
			return nil
		},
	}

	cmd.Flags().StringVar(&kind, "kind", "", "only list records of this kind (e.g. csv, parquet)")
	return cmd
}

// catalogShowCommand creates the "catalog show" subcommand.
func (c *CLI) catalogShowCommand(opts *catalogOpts) *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show one catalog record",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := opts.newStore(cmd.Context())
			if err != nil {
				return err
			}
			defer store.Close()

			rec, err := findRecord(cmd.Context(), store, args[0])
			if err != nil {
				return err
			}

			printKeyValue("ID", rec.ID)
			printKeyValue("Path", rec.Path)
			printKeyValue("Kind", string(rec.Kind))
			printKeyValue("Size", formatSize(rec.SizeBytes))
			printKeyValue("Fingerprint", shortFingerprint(rec.Fingerprint))
			printKeyValue("Added", rec.AddedAt.Local().Format(time.DateTime))

			if len(rec.Summary) > 0 {
				printNewline()
				var buf bytes.Buffer
				if err := json.Indent(&buf, rec.Summary, "", "  "); err == nil {
					fmt.Println(buf.String())
				}
			}
			return nil
		},
	}
}

// catalogRemoveCommand creates the "catalog rm" subcommand.
func (c *CLI) catalogRemoveCommand(opts *catalogOpts) *cobra.Command {
	return &cobra.Command{
		Use:     "rm <id>",
		Aliases: []string{"remove"},
		Short:   "Remove a catalog record",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := opts.newStore(cmd.Context())
			if err != nil {
				return err
			}
			defer store.Close()

			rec, err := findRecord(cmd.Context(), store, args[0])
			if err != nil {
				return err
			}
			if err := store.Delete(cmd.Context(), rec.ID); err != nil {
				return err
			}

			printSuccess("Removed %s", StyleHighlight.Render(rec.Path))
			return nil
		},
	}
}

// findRecord resolves an ID argument to a record. A full UUID hits the
// store directly; a shorter prefix falls back to a list scan so users
// can paste the trimmed IDs shown by "catalog list".
func findRecord(ctx context.Context, store catalog.Store, id string) (*catalog.Record, error) {
	rec, err := store.Get(ctx, id)
	if err == nil {
		return rec, nil
	}

	recs, listErr := store.List(ctx)
	if listErr != nil {
		return nil, err
	}
	for _, r := range recs {
		if len(id) >= 4 && len(id) <= len(r.ID) && r.ID[:len(id)] == id {
			return r, nil
		}
	}
	return nil, err
}

// shortID trims a UUID for table display.
func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

// formatAge renders how long ago t was, falling back to a date for
// anything older than a week.
func formatAge(t time.Time) string {
	diff := time.Since(t)
	switch {
	case diff < time.Minute:
		return "just now"
	case diff < time.Hour:
		return fmt.Sprintf("%dm ago", int(diff.Minutes()))
	case diff < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(diff.Hours()))
	case diff < 7*24*time.Hour:
		return fmt.Sprintf("%dd ago", int(diff.Hours()/24))
	default:
		return t.Format("Jan 2, 2006")
	}
}

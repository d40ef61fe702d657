package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/datapeek/datapeek/pkg/parquetfile"
)

// parquetCommand creates the Parquet inspection command.
func (c *CLI) parquetCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "parquet",
		Short: "Inspect Parquet files",
	}

	cmd.AddCommand(c.parquetSchemaCommand())
	cmd.AddCommand(c.parquetHeadCommand())
	cmd.AddCommand(c.parquetStatsCommand())

	return cmd
}

// parquetSchemaCommand creates the "parquet schema" subcommand.
func (c *CLI) parquetSchemaCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "schema <file>",
		Short: "Show the schema from the file footer",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			schema, err := parquetfile.Schema(args[0])
			if err != nil {
				return err
			}

			if schema.Name != "" {
				fmt.Println(StyleTitle.Render(schema.Name))
			}
			for _, f := range schema.Fields {
				printSchemaField(f, 1)
			}
			return nil
		},
	}
}

// printSchemaField prints one schema field line and recurses into
// nested groups.
func printSchemaField(f parquetfile.Field, depth int) {
	line := strings.Repeat("  ", depth) + StyleValue.Render(f.Name)
	if f.Type != "" {
		line += " " + StyleDim.Render(f.Type)
	}
	switch {
	case f.Repeated:
		line += " " + StyleDim.Render("repeated")
	case f.Optional:
		line += " " + StyleDim.Render("optional")
	}
	fmt.Println(line)

	for _, child := range f.Fields {
		printSchemaField(child, depth+1)
	}
}

// parquetHeadCommand creates the "parquet head" subcommand.
func (c *CLI) parquetHeadCommand() *cobra.Command {
	var rows int

	cmd := &cobra.Command{
		Use:   "head <file>",
		Short: "Show the first rows as a table",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			records, err := parquetfile.Head(args[0], rows)
			if err != nil {
				return err
			}
			if len(records) == 0 {
				printInfo("File has no rows")
				return nil
			}

			headers := make([]string, len(records[0]))
			for i, cell := range records[0] {
				headers[i] = cell.Column
			}

			body := make([][]string, len(records))
			for i, rec := range records {
				body[i] = make([]string, len(rec))
				for j, cell := range rec {
					body[i][j] = cell.Value
				}
			}
			fmt.Println(renderTable(headers, body))
			printDetail("%d row(s) shown", len(records))
			return nil
		},
	}

	cmd.Flags().IntVarP(&rows, "rows", "n", 10, "number of rows to show")
	return cmd
}

// parquetStatsCommand creates the "parquet stats" subcommand.
func (c *CLI) parquetStatsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "stats <file>",
		Short: "Report row and column counts from the footer",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			stats, err := parquetfile.Scan(args[0])
			if err != nil {
				return err
			}

			rows := make([][]string, len(stats.Columns))
			for i, col := range stats.Columns {
				rows[i] = []string{col.Path, col.Type}
			}
			fmt.Println(renderTable([]string{"Column", "Type"}, rows))
			printStats(stats.Rows, len(stats.Columns), false)
			printDetail("%d row group(s)", stats.RowGroups)
			return nil
		},
	}
}

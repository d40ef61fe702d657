package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	apperrors "github.com/datapeek/datapeek/pkg/errors"
	"github.com/datapeek/datapeek/pkg/excelfile"
)

// excelCommand creates the Excel workbook inspection command.
func (c *CLI) excelCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "excel",
		Short: "Inspect Excel workbooks",
	}

	cmd.AddCommand(c.excelSheetsCommand())
	cmd.AddCommand(c.excelHeadCommand())
	cmd.AddCommand(c.excelExportCommand())

	return cmd
}

// excelSheetsCommand creates the "excel sheets" subcommand.
func (c *CLI) excelSheetsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "sheets <file>",
		Short: "List the sheets in a workbook",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sheets, err := excelfile.Sheets(args[0])
			if err != nil {
				return err
			}

			rows := make([][]string, len(sheets))
			for i, sh := range sheets {
				rows[i] = []string{
					strconv.Itoa(sh.Index),
					sh.Name,
					strconv.Itoa(sh.Rows),
					strconv.Itoa(sh.Cols),
					sh.Dimension,
				}
			}
			fmt.Println(renderTable([]string{"#", "Name", "Rows", "Cols", "Dimension"}, rows))
			return nil
		},
	}
}

// excelHeadCommand creates the "excel head" subcommand.
func (c *CLI) excelHeadCommand() *cobra.Command {
	var (
		sheet string
		rows  int
	)

	cmd := &cobra.Command{
		Use:   "head <file>",
		Short: "Show the first rows of a sheet",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name, err := resolveSheet(args[0], sheet)
			if err != nil {
				return err
			}
			if name == "" {
				printDetail("No sheet selected")
				return nil
			}

			t, err := excelfile.Head(args[0], name, rows)
			if err != nil {
				return err
			}
			if len(t.Rows) == 0 {
				printInfo("Sheet %s is empty", StyleHighlight.Render(t.Sheet))
				return nil
			}

			// First row doubles as the header, matching how a
			// spreadsheet is usually read.
			printInfo("Sheet: %s", StyleHighlight.Render(t.Sheet))
			fmt.Println(renderTable(t.Rows[0], t.Rows[1:]))
			return nil
		},
	}

	cmd.Flags().StringVarP(&sheet, "sheet", "s", "", "sheet name (picker shown if the workbook has several)")
	cmd.Flags().IntVarP(&rows, "rows", "n", 10, "number of rows to show")
	return cmd
}

// excelExportCommand creates the "excel export" subcommand.
func (c *CLI) excelExportCommand() *cobra.Command {
	var (
		sheet  string
		output string
	)

	cmd := &cobra.Command{
		Use:   "export <file>",
		Short: "Export a sheet as CSV",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name, err := resolveSheet(args[0], sheet)
			if err != nil {
				return err
			}
			if name == "" {
				printDetail("No sheet selected")
				return nil
			}

			out, err := openOutput(output)
			if err != nil {
				return err
			}
			defer out.Close()

			n, err := excelfile.ExportCSV(args[0], name, out)
			if err != nil {
				return err
			}

			if output != "" {
				printSuccess("Exported %d row(s) from %s", n, StyleHighlight.Render(name))
				printFile(output)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&sheet, "sheet", "s", "", "sheet name (picker shown if the workbook has several)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (stdout if empty)")
	return cmd
}

// resolveSheet decides which sheet to operate on. An explicit flag wins,
// a single-sheet workbook selects itself, and anything else goes through
// the interactive picker. An empty return with nil error means the user
// cancelled the picker.
func resolveSheet(path, flag string) (string, error) {
	if flag != "" {
		if err := apperrors.ValidateSheetName(flag); err != nil {
			return "", err
		}
		return flag, nil
	}

	sheets, err := excelfile.Sheets(path)
	if err != nil {
		return "", err
	}
	if len(sheets) == 1 {
		return sheets[0].Name, nil
	}

	return pickSheet(sheets)
}

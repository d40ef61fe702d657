package cli

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/datapeek/datapeek/pkg/jsonfile"
)

// jsonCommand creates the JSON inspection command.
func (c *CLI) jsonCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "json",
		Short: "Inspect JSON files",
	}

	cmd.AddCommand(c.jsonPrettyCommand())
	cmd.AddCommand(c.jsonMinifyCommand())
	cmd.AddCommand(c.jsonKeysCommand())
	cmd.AddCommand(c.jsonHeadCommand())

	return cmd
}

// jsonPrettyCommand creates the "json pretty" subcommand.
func (c *CLI) jsonPrettyCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "pretty <file>",
		Short: "Reformat a JSON file with indentation",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out, err := jsonfile.Pretty(args[0])
			if err != nil {
				return err
			}
			_, err = os.Stdout.Write(out)
			return err
		},
	}
}

// jsonMinifyCommand creates the "json minify" subcommand.
func (c *CLI) jsonMinifyCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "minify <file>",
		Short: "Strip whitespace from a JSON file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out, err := jsonfile.Minify(args[0])
			if err != nil {
				return err
			}
			_, err = os.Stdout.Write(out)
			return err
		},
	}
}

// jsonKeysCommand creates the "json keys" subcommand.
func (c *CLI) jsonKeysCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "keys <file>",
		Short: "Show the top-level shape of a JSON file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			o, err := jsonfile.Keys(args[0])
			if err != nil {
				return err
			}

			printKeyValue("Kind", o.Kind)
			if o.Kind == "array" {
				printKeyValue("Length", strconv.Itoa(o.Len))
			}
			if len(o.Keys) == 0 {
				return nil
			}

			rows := make([][]string, len(o.Keys))
			for i, k := range o.Keys {
				length := ""
				if k.Kind == "array" || k.Kind == "object" {
					length = strconv.Itoa(k.Len)
				}
				rows[i] = []string{k.Key, k.Kind, length}
			}
			fmt.Println(renderTable([]string{"Key", "Kind", "Len"}, rows))
			return nil
		},
	}
}

// jsonHeadCommand creates the "json head" subcommand.
func (c *CLI) jsonHeadCommand() *cobra.Command {
	var rows int

	cmd := &cobra.Command{
		Use:   "head <file>",
		Short: "Print the first elements of a JSON array",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			elems, err := jsonfile.HeadArray(args[0], rows)
			if err != nil {
				return err
			}
			for _, e := range elems {
				fmt.Println(string(e))
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&rows, "rows", "n", 10, "number of elements to print")
	return cmd
}

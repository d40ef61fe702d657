package cli

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/datapeek/datapeek/pkg/tomlfile"
)

// tomlCommand creates the TOML inspection command.
func (c *CLI) tomlCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "toml",
		Short: "Inspect TOML files",
	}

	cmd.AddCommand(c.tomlKeysCommand())
	cmd.AddCommand(c.tomlToJSONCommand())

	return cmd
}

// tomlKeysCommand creates the "toml keys" subcommand.
func (c *CLI) tomlKeysCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "keys <file>",
		Short: "Show the top-level keys of a TOML file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			o, err := tomlfile.Keys(args[0])
			if err != nil {
				return err
			}
			if len(o.Keys) == 0 {
				printInfo("No top-level keys")
				return nil
			}

			rows := make([][]string, len(o.Keys))
			for i, k := range o.Keys {
				length := ""
				if k.Len > 0 {
					length = strconv.Itoa(k.Len)
				}
				rows[i] = []string{k.Key, k.Kind, length}
			}
			fmt.Println(renderTable([]string{"Key", "Kind", "Len"}, rows))
			return nil
		},
	}
}

// tomlToJSONCommand creates the "toml to-json" subcommand.
func (c *CLI) tomlToJSONCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "to-json <file>",
		Short: "Convert a TOML file to JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out, err := tomlfile.ToJSON(args[0])
			if err != nil {
				return err
			}
			_, err = os.Stdout.Write(out)
			return err
		},
	}
}

package cli

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/datapeek/datapeek/pkg/yamlfile"
)

// yamlCommand creates the YAML inspection command.
func (c *CLI) yamlCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "yaml",
		Short: "Inspect YAML files",
	}

	cmd.AddCommand(c.yamlKeysCommand())
	cmd.AddCommand(c.yamlToJSONCommand())

	return cmd
}

// yamlKeysCommand creates the "yaml keys" subcommand.
func (c *CLI) yamlKeysCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "keys <file>",
		Short: "Show the top-level shape of a YAML file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			o, err := yamlfile.Keys(args[0])
			if err != nil {
				return err
			}

			if o.Documents > 1 {
				printInfo("Stream of %d documents, showing the first", o.Documents)
			}
			printKeyValue("Kind", o.Kind)
			if o.Kind == "sequence" {
				printKeyValue("Length", strconv.Itoa(o.Len))
			}
			if len(o.Keys) == 0 {
				return nil
			}

			rows := make([][]string, len(o.Keys))
			for i, k := range o.Keys {
				length := ""
				if k.Kind == "sequence" || k.Kind == "mapping" {
					length = strconv.Itoa(k.Len)
				}
				rows[i] = []string{k.Key, k.Kind, length}
			}
			fmt.Println(renderTable([]string{"Key", "Kind", "Len"}, rows))
			return nil
		},
	}
}

// yamlToJSONCommand creates the "yaml to-json" subcommand.
func (c *CLI) yamlToJSONCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "to-json <file>",
		Short: "Convert a YAML file to JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out, err := yamlfile.ToJSON(args[0])
			if err != nil {
				return err
			}
			_, err = os.Stdout.Write(out)
			return err
		},
	}
}

package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/datapeek/datapeek/pkg/xmlfile"
)

// xmlCommand creates the XML inspection command.
func (c *CLI) xmlCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "xml",
		Short: "Inspect XML files",
	}

	cmd.AddCommand(c.xmlOutlineCommand())
	cmd.AddCommand(c.xmlPrettyCommand())

	return cmd
}

// xmlOutlineCommand creates the "xml outline" subcommand.
func (c *CLI) xmlOutlineCommand() *cobra.Command {
	var maxDepth int

	cmd := &cobra.Command{
		Use:   "outline <file>",
		Short: "Show the element tree of an XML file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			root, err := xmlfile.Outline(args[0], maxDepth)
			if err != nil {
				return err
			}
			printElement(root, 0)
			return nil
		},
	}

	cmd.Flags().IntVar(&maxDepth, "max-depth", 3, "how deep to walk the tree (0 for unlimited)")
	return cmd
}

// printElement prints one element line and recurses into its children.
// Repeated siblings are shown once with a count.
func printElement(e *xmlfile.Element, depth int) {
	line := strings.Repeat("  ", depth) + StyleValue.Render(e.Name)
	if e.Count > 1 {
		line += " " + StyleDim.Render(fmt.Sprintf("(x%d)", e.Count))
	}
	if len(e.Attrs) > 0 {
		attrs := make([]string, len(e.Attrs))
		for i, a := range e.Attrs {
			attrs[i] = "@" + a
		}
		line += "  " + StyleDim.Render(strings.Join(attrs, " "))
	}
	fmt.Println(line)

	for _, child := range e.Children {
		printElement(child, depth+1)
	}
}

// xmlPrettyCommand creates the "xml pretty" subcommand.
func (c *CLI) xmlPrettyCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "pretty <file>",
		Short: "Reformat an XML file with indentation",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out, err := xmlfile.Pretty(args[0])
			if err != nil {
				return err
			}
			_, err = os.Stdout.Write(out)
			return err
		},
	}
}

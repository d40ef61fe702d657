package cli

import (
	"github.com/spf13/cobra"

	apperrors "github.com/datapeek/datapeek/pkg/errors"
	"github.com/datapeek/datapeek/pkg/structure"
)

// structureCommand creates the structure command, which draws the shape
// of a structured file as a diagram.
func (c *CLI) structureCommand() *cobra.Command {
	var (
		format string
		output string
	)

	cmd := &cobra.Command{
		Use:   "structure <file>",
		Short: "Render the shape of a file as a diagram",
		Long: `Structure parses a JSON, YAML, TOML, or XML file and renders its shape
as a node-link diagram. Arrays are collapsed, so a thousand similar
records draw as one node with a count.

Examples:
  datapeek structure config.yaml                      # DOT to stdout
  datapeek structure api.json -f svg -o api.svg
  datapeek structure catalog.xml -f png -o catalog.png`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			root, err := structure.Tree(args[0])
			if err != nil {
				return err
			}
			dot := structure.ToDOT(root)

			var data []byte
			switch format {
			case "dot":
				data = []byte(dot)
			case "svg", "png":
				sp := newSpinnerWithContext(cmd.Context(), "Rendering diagram")
				sp.Start()
				if format == "svg" {
					data, err = structure.RenderSVG(dot)
				} else {
					data, err = structure.RenderPNG(dot)
				}
				sp.Stop()
				if err != nil {
					return err
				}
			default:
				return apperrors.New(apperrors.ErrCodeInvalidFormat, "unknown format %q (want dot, svg, or png)", format)
			}

			out, err := openOutput(output)
			if err != nil {
				return err
			}
			defer out.Close()

			if _, err := out.Write(data); err != nil {
				return err
			}
			if output != "" {
				printSuccess("Rendered %s structure", format)
				printFile(output)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "dot", "output format: dot, svg, or png")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (stdout if empty)")
	return cmd
}

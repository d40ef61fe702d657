package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/datapeek/datapeek/pkg/imagefile"
)

// imageCommand creates the image inspection command.
func (c *CLI) imageCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "image",
		Short: "Inspect image files",
	}

	cmd.AddCommand(c.imageInfoCommand())

	return cmd
}

// imageInfoCommand creates the "image info" subcommand.
func (c *CLI) imageInfoCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "info <file>",
		Short: "Show format, dimensions, and color model",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			info, err := imagefile.Describe(args[0])
			if err != nil {
				return err
			}
			printKeyValue("Format", info.Format)
			printKeyValue("Size", fmt.Sprintf("%d x %d px", info.Width, info.Height))
			printKeyValue("Colors", info.ColorModel)
			return nil
		},
	}
}

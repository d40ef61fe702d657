package cli

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/datapeek/datapeek/pkg/textfile"
)

// textCommand creates the plain-text inspection command.
func (c *CLI) textCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "text",
		Short: "Inspect plain text files",
	}

	cmd.AddCommand(c.textHeadCommand())
	cmd.AddCommand(c.textTailCommand())
	cmd.AddCommand(c.textCountCommand())
	cmd.AddCommand(c.textFreqCommand())
	cmd.AddCommand(c.textAppendCommand())

	return cmd
}

// textHeadCommand creates the "text head" subcommand.
func (c *CLI) textHeadCommand() *cobra.Command {
	var lines int

	cmd := &cobra.Command{
		Use:   "head <file>",
		Short: "Print the first lines of a text file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			head, err := textfile.Head(args[0], lines)
			if err != nil {
				return err
			}
			for _, line := range head {
				fmt.Println(line)
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&lines, "lines", "n", 10, "number of lines to print")
	return cmd
}

// textTailCommand creates the "text tail" subcommand.
func (c *CLI) textTailCommand() *cobra.Command {
	var lines int

	cmd := &cobra.Command{
		Use:   "tail <file>",
		Short: "Print the last lines of a text file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			tail, err := textfile.Tail(args[0], lines)
			if err != nil {
				return err
			}
			for _, line := range tail {
				fmt.Println(line)
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&lines, "lines", "n", 10, "number of lines to print")
	return cmd
}

// textCountCommand creates the "text count" subcommand.
func (c *CLI) textCountCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "count <file>",
		Short: "Count lines, words, and bytes",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			count, err := textfile.Count(args[0])
			if err != nil {
				return err
			}
			printKeyValue("Lines", strconv.FormatInt(count.Lines, 10))
			printKeyValue("Words", strconv.FormatInt(count.Words, 10))
			printKeyValue("Bytes", strconv.FormatInt(count.Bytes, 10))
			return nil
		},
	}
}

// textFreqCommand creates the "text freq" subcommand.
func (c *CLI) textFreqCommand() *cobra.Command {
	var top int

	cmd := &cobra.Command{
		Use:   "freq <file>",
		Short: "Show the most frequent words",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			words, err := textfile.TopWords(args[0], top)
			if err != nil {
				return err
			}
			if len(words) == 0 {
				printInfo("No words found")
				return nil
			}

			rows := make([][]string, len(words))
			for i, w := range words {
				rows[i] = []string{w.Word, strconv.Itoa(w.Count)}
			}
			fmt.Println(renderTable([]string{"Word", "Count"}, rows))
			return nil
		},
	}

	cmd.Flags().IntVar(&top, "top", 20, "number of words to show")
	return cmd
}

// textAppendCommand creates the "text append" subcommand. With no text
// arguments it appends lines read from stdin.
func (c *CLI) textAppendCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "append <file> [text...]",
		Short: "Append lines to a text file",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			w, err := textfile.Append(args[0])
			if err != nil {
				return err
			}
			defer w.Close()

			count := 0
			if len(args) > 1 {
				if err := w.WriteLine(strings.Join(args[1:], " ")); err != nil {
					return err
				}
				count = 1
			} else {
				sc := bufio.NewScanner(os.Stdin)
				for sc.Scan() {
					if err := w.WriteLine(sc.Text()); err != nil {
						return err
					}
					count++
				}
				if err := sc.Err(); err != nil {
					return err
				}
			}

			if err := w.Close(); err != nil {
				return err
			}
			printSuccess("Appended %d line(s)", count)
			printFile(args[0])
			return nil
		},
	}
}

package cli

import (
	"io"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/datapeek/datapeek/pkg/buildinfo"
	"github.com/datapeek/datapeek/pkg/cache"
	"github.com/datapeek/datapeek/pkg/inspect"
)

// appName is the application name used for directories and display.
const appName = "datapeek"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   "datapeek",
		Short: "Datapeek peeks into structured data files",
		Long: `Datapeek is a CLI toolkit for inspecting data files: plain text, CSV,
Excel, JSON, YAML, TOML, XML, Parquet, and images. It answers "what is
in this file and what shape is it" without opening a notebook.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())

	// Register all subcommands
	root.AddCommand(c.textCommand())
	root.AddCommand(c.csvCommand())
	root.AddCommand(c.excelCommand())
	root.AddCommand(c.jsonCommand())
	root.AddCommand(c.yamlCommand())
	root.AddCommand(c.tomlCommand())
	root.AddCommand(c.xmlCommand())
	root.AddCommand(c.parquetCommand())
	root.AddCommand(c.imageCommand())
	root.AddCommand(c.describeCommand())
	root.AddCommand(c.structureCommand())
	root.AddCommand(c.snapshotCommand())
	root.AddCommand(c.catalogCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// newRunner creates an inspect runner for CLI use with every supported
// summarizer registered.
func (c *CLI) newRunner(noCache bool) (*inspect.Runner, error) {
	cch, err := newCache(noCache)
	if err != nil {
		return nil, err
	}
	return inspect.NewRunner(cch, nil, c.Logger, summarizers...), nil
}

func newCache(noCache bool) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}
	dir, err := cacheDir()
	if err != nil {
		return cache.NewNullCache(), nil
	}
	return cache.NewFileCache(dir)
}

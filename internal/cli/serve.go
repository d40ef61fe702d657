package cli

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/datapeek/datapeek/internal/server"
	"github.com/datapeek/datapeek/pkg/buildinfo"
	"github.com/datapeek/datapeek/pkg/cache"
	"github.com/datapeek/datapeek/pkg/inspect"
)

// serveCommand creates the serve command, which exposes a workspace
// directory over the local preview API.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr      string
		root      string
		redisAddr string
		noCache   bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve a directory over the preview API",
		Long: `Serve starts a local HTTP server that lists the files in a directory
and describes them on request. It binds to localhost and has no
authentication; it is meant for notebooks and editors on the same
machine, not for the open network.

With --redis, summaries are cached in Redis instead of the local cache
directory, so several server instances can share one cache.

Endpoints:
  GET /healthz
  GET /api/files
  GET /api/describe?path=<file>[&rows=N][&sheet=S][&refresh=true]
  GET /api/stats`,
		RunE: func(cmd *cobra.Command, args []string) error {
			runner, err := c.newServeRunner(noCache, redisAddr)
			if err != nil {
				return err
			}
			defer runner.Close()

			srv := server.New(server.Config{
				Addr:   addr,
				Root:   root,
				Runner: runner,
				Logger: c.Logger,
			})

			if !loopbackAddr(addr) {
				printWarning("%s is not a loopback address; the API has no authentication", addr)
			}
			c.Logger.Debugf("datapeek %s", buildinfo.String())
			printInfo("Serving %s on %s", StyleHighlight.Render(root), StyleLink.Render("http://"+addr))
			printDetail("Press Ctrl+C to stop")
			return srv.ListenAndServe(cmd.Context())
		},
	}

	cmd.Flags().StringVar(&addr, "addr", server.DefaultAddr, "listen address")
	cmd.Flags().StringVar(&root, "root", ".", "directory to serve")
	cmd.Flags().StringVar(&redisAddr, "redis", "", "Redis address for a shared summary cache (host:port)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "skip the summary cache")
	return cmd
}

// newServeRunner builds the server's runner. Redis keys are scoped with
// the application name since the instance may be shared.
func (c *CLI) newServeRunner(noCache bool, redisAddr string) (*inspect.Runner, error) {
	if noCache || redisAddr == "" {
		return c.newRunner(noCache)
	}

	cch, err := cache.NewRedisCache(redisAddr)
	if err != nil {
		return nil, err
	}
	keyer := cache.NewScopedKeyer(nil, appName+":")
	return inspect.NewRunner(cch, keyer, c.Logger, summarizers...), nil
}

// loopbackAddr reports whether addr binds to localhost only.
func loopbackAddr(addr string) bool {
	host := addr
	if i := strings.LastIndex(addr, ":"); i >= 0 {
		host = addr[:i]
	}
	switch host {
	case "localhost", "127.0.0.1", "[::1]", "::1":
		return true
	}
	return false
}

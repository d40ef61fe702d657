// Package server implements the datapeek preview server.
//
// The server exposes read-only inspection of one workspace directory
// over HTTP: a file listing with detected kinds, describe runs through
// the shared inspect Runner, and hook counters. It binds localhost by
// default and never writes to the workspace.
package server

import (
	"context"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/datapeek/datapeek/pkg/inspect"
	"github.com/datapeek/datapeek/pkg/observability"
)

// DefaultAddr is the default listen address. Localhost only: the
// server exposes local files and has no authentication.
const DefaultAddr = "127.0.0.1:8787"

// Config configures a preview server.
type Config struct {
	// Addr is the listen address. Defaults to DefaultAddr.
	Addr string

	// Root is the workspace directory being served. Defaults to ".".
	Root string

	// Runner performs describe runs. Required.
	Runner *inspect.Runner

	// Logger receives request logs. Defaults to log.Default().
	Logger *log.Logger
}

// Server serves the preview API for one workspace.
type Server struct {
	addr   string
	root   string
	runner *inspect.Runner
	logger *log.Logger
	stats  *statsHooks
}

// New creates a preview server and installs its counting hooks.
func New(cfg Config) *Server {
	if cfg.Addr == "" {
		cfg.Addr = DefaultAddr
	}
	if cfg.Root == "" {
		cfg.Root = "."
	}
	if cfg.Logger == nil {
		cfg.Logger = log.Default()
	}

	s := &Server{
		addr:   cfg.Addr,
		root:   cfg.Root,
		runner: cfg.Runner,
		logger: cfg.Logger,
		stats:  newStatsHooks(),
	}
	observability.SetDescribeHooks(s.stats)
	observability.SetCacheHooks(s.stats)
	return s
}

// Handler returns the server's HTTP handler, for tests and embedding.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RealIP)
	r.Use(s.logRequests)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.handleHealth)
	r.Route("/api", func(r chi.Router) {
		r.Get("/files", s.handleFiles)
		r.Get("/describe", s.handleDescribe)
		r.Get("/stats", s.handleStats)
	})
	return r
}

// ListenAndServe runs the server until ctx is canceled, then shuts
// down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() { errCh <- srv.ListenAndServe() }()

	s.logger.Info("preview server listening", "addr", s.addr, "root", s.root)

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		s.logger.Info("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"bytes", ww.BytesWritten(),
			"duration", time.Since(start))
	})
}

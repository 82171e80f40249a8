// Package server exposes the layout pipeline over HTTP.
//
// Routes:
//
//	GET  /healthz              liveness probe
//	GET  /version              build information
//	POST /v1/layout            diagram → layout document (JSON)
//	POST /v1/render?format=svg diagram → rendered artifact
//	POST /v1/layout/batch      diagrams → layout documents
//
// Request bodies carry the diagram and an optional partial layout
// configuration. Errors are reported as JSON with the machine-readable code
// of pkg/errors and a matching status.
package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	errs "github.com/matzehuels/classlayout/pkg/errors"
	"github.com/matzehuels/classlayout/pkg/layout"
	"github.com/matzehuels/classlayout/pkg/pipeline"
)

// Defaults for [Config].
const (
	DefaultAddr         = ":8080"
	DefaultMaxBodyBytes = 8 << 20
	DefaultTimeout      = 30 * time.Second
	DefaultBatchJobs    = 4
	DefaultMaxBatch     = 64
)

// Config holds the server settings.
type Config struct {
	Addr string

	// MaxBodyBytes bounds request bodies.
	MaxBodyBytes int64

	// Limits bounds the size of each diagram.
	Limits errs.Limits

	// Timeout bounds the handling of a single request.
	Timeout time.Duration

	// BatchJobs is the number of concurrent layouts per batch request and
	// MaxBatch the number of diagrams a batch may hold.
	BatchJobs int
	MaxBatch  int

	// Layout is the base configuration that request configs are merged onto.
	Layout layout.Config
}

// DefaultConfig returns the standard server configuration.
func DefaultConfig() Config {
	return Config{
		Addr:         DefaultAddr,
		MaxBodyBytes: DefaultMaxBodyBytes,
		Limits:       errs.DefaultLimits,
		Timeout:      DefaultTimeout,
		BatchJobs:    DefaultBatchJobs,
		MaxBatch:     DefaultMaxBatch,
		Layout:       layout.DefaultConfig(),
	}
}

// Server serves the HTTP API.
type Server struct {
	cfg    Config
	runner *pipeline.Runner
	logger *log.Logger
	router chi.Router
}

// New creates a server backed by runner. Zero fields of cfg take their
// defaults.
func New(runner *pipeline.Runner, cfg Config, logger *log.Logger) *Server {
	def := DefaultConfig()
	if cfg.Addr == "" {
		cfg.Addr = def.Addr
	}
	if cfg.MaxBodyBytes <= 0 {
		cfg.MaxBodyBytes = def.MaxBodyBytes
	}
	if cfg.Limits == (errs.Limits{}) {
		cfg.Limits = def.Limits
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = def.Timeout
	}
	if cfg.BatchJobs <= 0 {
		cfg.BatchJobs = def.BatchJobs
	}
	if cfg.MaxBatch <= 0 {
		cfg.MaxBatch = def.MaxBatch
	}
	if cfg.Layout == (layout.Config{}) {
		cfg.Layout = def.Layout
	}
	if logger == nil {
		logger = log.Default()
	}

	s := &Server{cfg: cfg, runner: runner, logger: logger}
	s.router = s.routes()
	return s
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(s.requestID)
	r.Use(s.logRequests)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(s.cfg.Timeout))

	r.Get("/healthz", s.handleHealth)
	r.Get("/version", s.handleVersion)

	r.Route("/v1", func(r chi.Router) {
		r.Post("/layout", s.handleLayout)
		r.Post("/render", s.handleRender)
		r.Post("/layout/batch", s.handleBatch)
	})
	return r
}

// Handler returns the HTTP handler of the API.
func (s *Server) Handler() http.Handler { return s.router }

// ListenAndServe serves until ctx is canceled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.Addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", s.cfg.Addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	s.logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

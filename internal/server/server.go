// Package server exposes the heatmap pipeline over HTTP.
//
// Routes:
//
//	GET  /healthz                 liveness and build version
//	POST /v1/layout               raw treemap layout of weighted items
//	GET  /v1/heatmap              render a heatmap from query parameters
//	POST /v1/renders              render and store artifacts under an ID
//	GET  /v1/renders/{id}.{fmt}   fetch a stored artifact
//
// Errors are written as {"code": ..., "message": ...} with a status derived
// from the error code.
package server

import (
	"context"
	"errors"
	"net/http"
	"slices"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/visarcu/heatmap/pkg/cache"
	errs "github.com/visarcu/heatmap/pkg/errors"
	"github.com/visarcu/heatmap/pkg/pipeline"
)

const (
	// DefaultRequestTimeout bounds a single request, upstream fetches
	// included.
	DefaultRequestTimeout = 30 * time.Second

	// DefaultMaxBodyBytes limits JSON request bodies.
	DefaultMaxBodyBytes = 1 << 20

	shutdownTimeout   = 5 * time.Second
	readHeaderTimeout = 10 * time.Second
)

// Options configures a Server.
type Options struct {
	// Defaults seed every request before its own parameters are applied,
	// typically the configured locale and layout tuning.
	Defaults pipeline.Options

	RequestTimeout time.Duration
	MaxBodyBytes   int64
}

// Server serves heatmaps rendered by a [pipeline.Runner].
type Server struct {
	runner   *pipeline.Runner
	logger   *log.Logger
	defaults pipeline.Options
	timeout  time.Duration
	maxBody  int64
	router   chi.Router
}

// New creates a server around runner. The runner's cache also stores the
// artifacts created through POST /v1/renders.
func New(runner *pipeline.Runner, opts Options) *Server {
	s := &Server{
		runner:   runner,
		logger:   runner.Logger,
		defaults: opts.Defaults,
		timeout:  opts.RequestTimeout,
		maxBody:  opts.MaxBodyBytes,
	}
	if s.timeout <= 0 {
		s.timeout = DefaultRequestTimeout
	}
	if s.maxBody <= 0 {
		s.maxBody = DefaultMaxBodyBytes
	}
	s.router = s.routes()
	return s
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger(s.logger))
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(s.timeout))

	r.Get("/healthz", s.handleHealth)
	r.Route("/v1", func(r chi.Router) {
		r.Post("/layout", s.handleLayout)
		r.Get("/heatmap", s.handleHeatmap)
		r.Post("/renders", s.handleCreateRender)
		r.Get("/renders/{file}", s.handleGetRender)
	})
	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, r, s.logger, errNotFound(r.URL.Path))
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusMethodNotAllowed, errorBody{
			Code:    errs.ErrCodeUnsupported,
			Message: "method " + r.Method + " not allowed",
		})
	})
	return r
}

// ServeHTTP implements [http.Handler].
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s,
		ReadHeaderTimeout: readHeaderTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	s.logger.Info("shutting down")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return <-errCh
}

// options returns a private copy of the configured defaults. Pointer and
// slice fields are cloned so that decoding a request into the copy never
// writes through to the shared defaults.
func (s *Server) options() pipeline.Options {
	opts := s.defaults
	opts.Symbols = slices.Clone(opts.Symbols)
	opts.Formats = slices.Clone(opts.Formats)
	opts.Stocks = nil
	if opts.Padding != nil {
		v := *opts.Padding
		opts.Padding = &v
	}
	if opts.MinSize != nil {
		v := *opts.MinSize
		opts.MinSize = &v
	}
	opts.Logger = s.logger
	return opts
}

func (s *Server) cache() cache.Cache { return s.runner.Cache }

func (s *Server) keyer() cache.Keyer { return s.runner.Keyer }

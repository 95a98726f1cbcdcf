// Package server exposes the analysis pipeline over HTTP.
//
// # Routes
//
//	GET  /healthz                        liveness and build info
//	GET  /v1/pins                        known pin tables
//	POST /v1/analyze                     source text → analysis document
//	POST /v1/render?format=svg           source text → rendered artifact
//	GET  /v1/analyses/{id}               archived analysis (needs a Store)
//	GET  /v1/analyses/{id}/render        re-render an archived analysis
//
// Request bodies are either the raw source text or a JSON object
// {"source": "..."} when the Content-Type is application/json. Errors are
// JSON objects {"code": "...", "message": "..."} with a status derived from
// the error code.
//
// Analyses are request-local: nothing is kept between requests unless a
// [store.Store] is configured, in which case every analysis is archived and
// its ID returned.
package server

import (
	"context"
	stderrors "errors"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/wiregraph/pkg/pipeline"
	"github.com/matzehuels/wiregraph/pkg/store"
)

// DefaultAddr is the listen address used when none is configured.
const DefaultAddr = ":8080"

// shutdownTimeout bounds graceful shutdown.
const shutdownTimeout = 10 * time.Second

// Config configures a Server.
type Config struct {
	Runner *pipeline.Runner // required
	Store  store.Store      // optional analysis archive
	Logger *log.Logger      // defaults to log.Default()
}

// Server serves the HTTP API.
type Server struct {
	runner *pipeline.Runner
	store  store.Store
	logger *log.Logger
	router chi.Router
}

// New creates a server and registers its routes.
func New(cfg Config) *Server {
	logger := cfg.Logger
	if logger == nil {
		logger = log.Default()
	}
	runner := cfg.Runner
	if runner == nil {
		runner = pipeline.NewRunner(nil, nil, nil, logger)
	}
	s := &Server{
		runner: runner,
		store:  cfg.Store,
		logger: logger,
	}
	s.router = s.routes()
	return s
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(requestID)
	r.Use(s.logRequests)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.handleHealth)
	r.Route("/v1", func(r chi.Router) {
		r.Get("/pins", s.handlePins)
		r.With(limitBody).Post("/analyze", s.handleAnalyze)
		r.With(limitBody).Post("/render", s.handleRender)
		r.Get("/analyses/{id}", s.handleGetAnalysis)
		r.Get("/analyses/{id}/render", s.handleRenderAnalysis)
	})
	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, r, notFoundRoute(r))
	})
	return r
}

// Handler returns the server's HTTP handler.
func (s *Server) Handler() http.Handler { return s.router }

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	if addr == "" {
		addr = DefaultAddr
	}
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	s.logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; err != nil && !stderrors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

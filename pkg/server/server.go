// Package server exposes the layout engine over HTTP.
//
// The API is JSON-only:
//
//	POST   /api/layout          compute a layout for a posted schema
//	POST   /api/snapshots       compute a layout and persist it as a snapshot
//	GET    /api/snapshots       list snapshot metadata
//	GET    /api/snapshots/{id}  fetch a stored snapshot
//	DELETE /api/snapshots/{id}  remove a snapshot
//	GET    /healthz             liveness probe
//
// Errors are returned as JSON envelopes carrying the machine-readable codes
// from pkg/errors. Input validation happens here, at the boundary; the layout
// engine itself is total and falls back to defaults for malformed selectors.
package server

import (
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/mhartmann/schemap/pkg/layout"
	"github.com/mhartmann/schemap/pkg/store"
)

// Server wires the layout engine and snapshot store into an HTTP handler.
type Server struct {
	engine *layout.Engine
	store  store.Store
	logger *log.Logger
	router chi.Router
}

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the request logger.
func WithLogger(l *log.Logger) Option {
	return func(s *Server) {
		if l != nil {
			s.logger = l
		}
	}
}

// New creates a Server around the given engine and snapshot store.
func New(engine *layout.Engine, st store.Store, opts ...Option) *Server {
	s := &Server{
		engine: engine,
		store:  st,
		logger: log.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.logRequests)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.handleHealth)
	r.Route("/api", func(r chi.Router) {
		r.Post("/layout", s.handleLayout)
		r.Post("/snapshots", s.handleCreateSnapshot)
		r.Get("/snapshots", s.handleListSnapshots)
		r.Get("/snapshots/{id}", s.handleGetSnapshot)
		r.Delete("/snapshots/{id}", s.handleDeleteSnapshot)
	})
	s.router = r
	return s
}

// Handler returns the routed HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

// logRequests logs one line per request at debug level.
func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		s.logger.Debug("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"bytes", ww.BytesWritten(),
			"elapsed", time.Since(start).Round(time.Microsecond))
	})
}

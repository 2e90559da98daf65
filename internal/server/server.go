package server

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/me/schedopt/internal/config"
	"github.com/me/schedopt/internal/solver"
	"github.com/me/schedopt/pkg/model"
)

const version = "0.1.0"

// Server is the schedopt REST API server.
type Server struct {
	router    chi.Router
	logger    *slog.Logger
	config    config.ServerConfig
	startTime time.Time
	optimizer solver.Optimizer
}

// New creates a Server with all routes registered. optimizer handles
// every /optimize request; pass solver.NewAnnealing for the standard
// behavior or any other Optimizer in tests.
func New(cfg config.ServerConfig, optimizer solver.Optimizer, logger *slog.Logger) *Server {
	s := &Server{
		router:    chi.NewRouter(),
		logger:    logger.With("component", "server"),
		config:    cfg,
		startTime: time.Now(),
		optimizer: optimizer,
	}
	s.routes()
	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// Handler returns the http.Handler for this server.
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) routes() {
	r := s.router

	// Global middleware
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(requestIDMiddleware)
	r.Use(loggingMiddleware(s.logger))

	r.Post("/optimize", s.handleOptimize)
	r.Get("/healthz", s.handleHealth)

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		respondError(w, http.StatusNotFound, model.NewNotFoundError(r.URL.Path))
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		respondError(w, http.StatusMethodNotAllowed, &model.APIError{
			Code:    model.ErrMethodNotAllowed,
			Message: r.Method + " not allowed on " + r.URL.Path,
		})
	})
}

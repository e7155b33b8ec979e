// Package server exposes the payoff calculator and strategy store over HTTP.
package server

import (
	"context"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog"

	"options-payoff/internal/config"
	"options-payoff/internal/logging"
	"options-payoff/internal/store"
)

// Server wires the HTTP routes to the calculation engine and the store.
type Server struct {
	router *mux.Router
	store  store.StrategyStore
	logger zerolog.Logger
	cfg    *config.Config
	http   *http.Server
}

// New creates a Server with all routes registered.
func New(cfg *config.Config, st store.StrategyStore, logger zerolog.Logger) *Server {
	s := &Server{
		router: mux.NewRouter(),
		store:  st,
		logger: logger,
		cfg:    cfg,
	}
	s.routes()

	s.http = &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      s.router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}
	return s
}

func (s *Server) routes() {
	s.router.Use(s.requestLogger)

	api := s.router.PathPrefix("/api").Subrouter()
	api.HandleFunc("/health", s.handleHealth).Methods(http.MethodGet)
	api.HandleFunc("/payoff/calculate", s.handleCalculate).Methods(http.MethodPost)
	api.HandleFunc("/payoff/exit", s.handleExit).Methods(http.MethodPost)
	api.HandleFunc("/strategies", s.handleCreateStrategy).Methods(http.MethodPost)
	api.HandleFunc("/strategies", s.handleListStrategies).Methods(http.MethodGet)
	api.HandleFunc("/strategies/{id:[0-9]+}", s.handleGetStrategy).Methods(http.MethodGet)
	api.HandleFunc("/strategies/{id:[0-9]+}", s.handleUpdateStrategy).Methods(http.MethodPut)
	api.HandleFunc("/strategies/{id:[0-9]+}", s.handleDeleteStrategy).Methods(http.MethodDelete)
}

// Handler returns the router, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

// ListenAndServe starts the HTTP server and blocks until it stops.
func (s *Server) ListenAndServe() error {
	s.logger.Info().Str("addr", s.http.Addr).Msg("HTTP server listening")
	return s.http.ListenAndServe()
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.http.Shutdown(ctx)
}

// statusRecorder captures the response status for the request log.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r.WithContext(logging.WithLogger(r.Context(), s.logger)))
		logging.LogRequest(s.logger, r.Method, r.URL.Path, rec.status, time.Since(start))
	})
}

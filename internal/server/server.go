// Package server exposes the webhook and health endpoints over HTTP.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/edgard/tgidbot/internal/config"
	"github.com/edgard/tgidbot/internal/inbound"
	"github.com/edgard/tgidbot/internal/logger"
)

// UpdateHandler processes a decoded webhook update.
type UpdateHandler interface {
	HandleUpdate(ctx context.Context, u *inbound.Update) error
}

// Server serves the webhook and health endpoints.
type Server struct {
	cfg     config.ServerConfig
	updates UpdateHandler
	logger  *slog.Logger
	router  chi.Router
}

// New builds the HTTP router. updates receives every decoded webhook update.
func New(cfg config.ServerConfig, updates UpdateHandler, log *slog.Logger) *Server {
	if log == nil {
		log = slog.Default()
	}
	s := &Server{
		cfg:     cfg,
		updates: updates,
		logger:  log.With("component", "http_server"),
	}
	s.router = s.routes()
	return s
}

// Handler returns the root HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(logger.HTTPMiddleware(s.logger))
	r.Use(s.recoverer)
	r.Use(allowAnyOrigin)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type"},
	}))

	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		respondError(w, http.StatusMethodNotAllowed, "Method not allowed")
	})
	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		respondError(w, http.StatusNotFound, "Not found")
	})

	for _, path := range []string{"/webhook", "/api/webhook"} {
		r.Post(path, s.webhook)
		r.Options(path, preflight)
	}
	for _, path := range []string{"/", "/health", "/api/health"} {
		r.Get(path, s.health)
		r.Options(path, preflight)
	}

	return r
}

// Run listens on the configured address until ctx is cancelled, then shuts
// down gracefully.
func (s *Server) Run(ctx context.Context) error {
	addr := net.JoinHostPort(s.cfg.Host, strconv.Itoa(s.cfg.Port))
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: s.cfg.ReadHeaderTimeout,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("HTTP server listening", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("http server failed: %w", err)
	case <-ctx.Done():
	}

	s.logger.Info("Shutting down HTTP server...")
	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("http server shutdown failed: %w", err)
	}
	s.logger.Info("HTTP server stopped.")
	return nil
}

// Package server runs the keep-alive HTTP endpoint that hosting platforms
// poll to decide the bot is up. It never touches bag or session state.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	// LivenessText is the body served on /
	LivenessText = "blind bag bot is running"

	shutdownTimeout = 5 * time.Second
)

// Config holds configuration for the keep-alive server
type Config struct {
	// Addr to listen on, for example ":8080"
	Addr string
}

// Server wraps an http.Server with the keep-alive routes
type Server struct {
	httpServer *http.Server
}

// New creates a new keep-alive server
func New(cfg *Config) (*Server, error) {
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}

	if cfg.Addr == "" {
		return nil, errors.New("listen address cannot be empty")
	}

	return &Server{
		httpServer: &http.Server{
			Addr:              cfg.Addr,
			Handler:           NewRouter(),
			ReadHeaderTimeout: 5 * time.Second,
		},
	}, nil
}

// NewRouter returns the keep-alive routes
func NewRouter() http.Handler {
	r := mux.NewRouter()

	r.HandleFunc("/", handleLiveness).Methods(http.MethodGet, http.MethodHead)
	r.HandleFunc("/healthz", handleHealthz).Methods(http.MethodGet, http.MethodHead)
	r.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)

	r.Use(correlationMiddleware)

	return r
}

// Start serves until Shutdown is called
func (s *Server) Start() error {
	slog.Info("keep-alive server listening", slog.String("addr", s.httpServer.Addr))

	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("keep-alive server: %w", err)
	}
	return nil
}

// Shutdown stops the server, waiting briefly for in-flight requests
func (s *Server) Shutdown(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, shutdownTimeout)
	defer cancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("shutdown keep-alive server: %w", err)
	}
	return nil
}

func handleLiveness(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte(LivenessText))
}

func handleHealthz(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte("ok"))
}

// correlationMiddleware echoes X-Correlation-ID, generating one when absent
func correlationMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		corr := r.Header.Get("X-Correlation-ID")
		if corr == "" {
			corr = uuid.New().String()
		}
		w.Header().Set("X-Correlation-ID", corr)

		slog.Debug("keep-alive request",
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.String("corr", corr))

		next.ServeHTTP(w, r)
	})
}

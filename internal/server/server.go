package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/stupside/autocast/internal/app"
	"github.com/stupside/autocast/internal/pipeline"
)

// Server exposes the cast pipeline over HTTP.
type Server struct {
	http            *http.Server
	shutdownTimeout time.Duration
}

func New(cfg app.ServerConfig, p *pipeline.Pipeline, discoveryWindow time.Duration) *Server {
	h := &handler{
		pipeline:        p,
		discoveryWindow: discoveryWindow,
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", h.health)
	mux.HandleFunc("GET /devices", h.devices)
	mux.HandleFunc("GET /devices/discover", h.discover)
	mux.HandleFunc("POST /search", h.search)
	mux.HandleFunc("POST /cast", h.cast)
	mux.HandleFunc("POST /cast/background", h.castBackground)

	return &Server{
		http: &http.Server{
			Addr:    cfg.Addr,
			Handler: mux,
		},
		shutdownTimeout: cfg.ShutdownTimeout,
	}
}

// Run serves until the context is cancelled, then drains in-flight
// requests within the shutdown timeout.
func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)

	go func() {
		slog.InfoContext(ctx, "server listening", "addr", s.http.Addr)
		if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("serving: %w", err)
	case <-ctx.Done():
	}

	slog.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.shutdownTimeout)
	defer cancel()

	if err := s.http.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutting down: %w", err)
	}

	return nil
}

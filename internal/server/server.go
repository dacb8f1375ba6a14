// Package server exposes the diagnosis pipeline over HTTP.
package server

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/avelkin/prognosia/internal/model"
	"github.com/avelkin/prognosia/internal/pipeline"
)

// Server wraps an http.Server with graceful shutdown handling.
type Server struct {
	httpServer      *http.Server
	shutdownTimeout time.Duration
}

// New builds a Server serving the pipeline's API on the configured port.
func New(p *pipeline.Pipeline, cfg model.ServerConfig) *Server {
	router := NewRouter(p, cfg)

	return &Server{
		httpServer: &http.Server{
			Addr:              ":" + cfg.Port,
			Handler:           router,
			ReadHeaderTimeout: 5 * time.Second,
			ReadTimeout:       10 * time.Second,
			WriteTimeout:      15 * time.Second,
			IdleTimeout:       60 * time.Second,
		},
		shutdownTimeout: cfg.ShutdownTimeout,
	}
}

// Run starts the server and blocks until SIGINT or SIGTERM, then drains
// in-flight requests within the shutdown timeout.
func (s *Server) Run() error {
	errCh := make(chan error, 1)
	go func() {
		fmt.Fprintf(os.Stderr, "listening on %s\n", s.httpServer.Addr)
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return fmt.Errorf("server error: %w", err)
	case sig := <-quit:
		fmt.Fprintf(os.Stderr, "received %s, shutting down\n", sig)
	}

	timeout := s.shutdownTimeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

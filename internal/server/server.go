// Package server is the one-page setup server: a small HTTP service on
// the local network where a phone browser saves the observer location
// the clock renders for.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/lunaclock/luna/internal/xhttp/middleware"
	"github.com/lunaclock/luna/internal/xslog"
)

type Server struct {
	addr         string
	locationPath string
	logger       *slog.Logger
}

func New(addr, locationPath string, logger *slog.Logger) *Server {
	return &Server{addr: addr, locationPath: locationPath, logger: logger}
}

func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", s.handleForm)
	mux.HandleFunc("GET /location", s.handleGetLocation)
	mux.HandleFunc("POST /location", s.handleSaveLocation)
	mux.HandleFunc("GET /health", handleHealth)

	return middleware.Chain(mux,
		middleware.Recovery,
		middleware.Logging,
		middleware.Logger(s.logger),
		middleware.ShutdownContext,
		middleware.RequestID(),
		middleware.SecurityHeaders,
	)
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	httpServer := &http.Server{
		Addr:              s.addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.InfoContext(ctx, "starting setup server",
			xslog.Version(),
			slog.String("addr", s.addr),
		)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("setup server: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("setup server shutdown: %w", err)
	}
	s.logger.Info("setup server stopped")
	return nil
}

func handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

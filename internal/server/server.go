// Package server provides the viewgraph HTTP API server.
package server

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"golang.org/x/sync/errgroup"

	"github.com/leapstack-labs/viewgraph/internal/importer"
	"github.com/leapstack-labs/viewgraph/internal/server/router"
	"github.com/leapstack-labs/viewgraph/pkg/core"
)

// Server is the main API server.
type Server struct {
	store    core.Store
	importer *importer.Importer
	port     int
	origins  []string
	logger   *slog.Logger
}

// Config holds configuration for the API server.
type Config struct {
	Store       core.Store
	Importer    *importer.Importer
	Port        int
	CORSOrigins []string
	Logger      *slog.Logger
}

// NewServer creates a new API server instance.
func NewServer(cfg Config) *Server {
	return &Server{
		store:    cfg.Store,
		importer: cfg.Importer,
		port:     cfg.Port,
		origins:  cfg.CORSOrigins,
		logger:   cfg.Logger,
	}
}

// Serve starts the API server and blocks until the context is cancelled.
func (s *Server) Serve(ctx context.Context) error {
	addr := fmt.Sprintf(":%d", s.port)
	s.logger.Info("starting API server", "addr", fmt.Sprintf("http://localhost:%d", s.port))

	eg, egctx := errgroup.WithContext(ctx)

	r := chi.NewMux()
	r.Use(
		middleware.Logger,
		middleware.Recoverer,
		middleware.Compress(5),
		corsMiddleware(s.origins),
	)

	router.SetupRoutes(r, s.store, s.importer)

	srv := &http.Server{
		Addr:    addr,
		Handler: r,
		BaseContext: func(_ net.Listener) context.Context {
			return egctx
		},
		ReadHeaderTimeout: 10 * time.Second,
	}

	eg.Go(func() error {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})

	// Graceful shutdown
	eg.Go(func() error {
		<-egctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		s.logger.Debug("shutting down API server...")
		return srv.Shutdown(shutdownCtx)
	})

	return eg.Wait()
}

// Package api serves a single configuration file over HTTP.
package api

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/httprate"

	"github.com/nauticalab/confstore/internal/auth"
	"github.com/nauticalab/confstore/pkg/config"
)

// Server represents the HTTP API server
type Server struct {
	router  *chi.Mux
	handler *Handler
	addr    string
}

// ServerConfig holds configuration for the API server
type ServerConfig struct {
	Port int
	// File is the configuration served. It should already be loaded.
	File *config.File
	// Token guards the mutating routes when set.
	Token string
	// RateLimit caps mutating requests per client IP and minute; 0 disables it.
	RateLimit int
	Version   string
	GitCommit string
	BuildTime string
	GoVersion string
}

// NewServer creates a new API server with the given configuration
func NewServer(cfg ServerConfig) (*Server, error) {
	if cfg.File == nil {
		return nil, fmt.Errorf("server requires a configuration file")
	}

	handler := NewHandler(
		cfg.File,
		cfg.Version,
		cfg.GitCommit,
		cfg.BuildTime,
		cfg.GoVersion,
	)

	router := chi.NewRouter()
	setupMiddleware(router)
	setupRoutes(router, handler, cfg.Token, cfg.RateLimit)

	return &Server{
		router:  router,
		handler: handler,
		addr:    fmt.Sprintf(":%d", cfg.Port),
	}, nil
}

// Handler returns the HTTP handler of the server
func (s *Server) Handler() http.Handler {
	return s.router
}

// setupMiddleware configures the middleware chain
func setupMiddleware(router *chi.Mux) {
	router.Use(middleware.RequestLogger(&middleware.DefaultLogFormatter{
		Logger:  log.Default(),
		NoColor: true,
	}))
	router.Use(middleware.Recoverer)
	router.Use(middleware.Timeout(60 * time.Second))
}

// setupRoutes configures the API routes
func setupRoutes(router *chi.Mux, handler *Handler, token string, rateLimit int) {
	router.Route("/api/v1", func(r chi.Router) {
		// Read-only endpoints
		r.Get("/health", handler.Health)
		r.Get("/version", handler.Version)
		r.Get("/keys", handler.ListKeys)
		r.Get("/values/{path}", handler.GetValue)
		r.Get("/headers/{path}", handler.GetHeader)

		// Mutating endpoints
		r.Group(func(r chi.Router) {
			if rateLimit > 0 {
				r.Use(httprate.LimitByIP(rateLimit, time.Minute))
			}
			if token != "" {
				r.Use(auth.Middleware(token))
			}
			r.Put("/values/{path}", handler.SetValue)
			r.Delete("/values/{path}", handler.DeleteValue)
			r.Put("/headers/{path}", handler.SetHeader)
			r.Delete("/headers/{path}", handler.DeleteHeader)
			r.Post("/reload", handler.Reload)
			r.Post("/save", handler.Save)
		})
	})
}

// StartWithContext starts the HTTP server with graceful shutdown support
func (s *Server) StartWithContext(ctx context.Context) error {
	log.Printf("Starting API server on %s for %s", s.addr, s.handler.file.Path())

	server := &http.Server{
		Addr:         s.addr,
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	errChan := make(chan error, 1)

	go func() {
		log.Printf("Server listening on %s", s.addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errChan <- err
		}
	}()

	select {
	case <-ctx.Done():
		log.Println("Shutting down server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			log.Printf("Server shutdown error: %v", err)
			return err
		}

		log.Println("Server stopped gracefully")
		return nil

	case err := <-errChan:
		return fmt.Errorf("server error: %w", err)
	}
}

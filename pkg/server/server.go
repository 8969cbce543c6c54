// Package server exposes the generator over HTTP.
package server

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/google/uuid"

	"github.com/arthur-debert/mcgen/pkg/errors"
	"github.com/arthur-debert/mcgen/pkg/generator"
	"github.com/arthur-debert/mcgen/pkg/logging"
)

var log = logging.GetLogger("server")

// RequestIDHeader carries the id assigned to each request.
const RequestIDHeader = "X-Request-ID"

// shutdownGrace bounds how long in-flight requests may finish after the
// serve context is cancelled.
const shutdownGrace = 5 * time.Second

// maxBodyBytes caps request bodies; item textures travel inline.
const maxBodyBytes = 4 << 20

// Server holds the HTTP server dependencies
type Server struct {
	gen    *generator.Generator
	router chi.Router
}

// New creates a new API server
func New(gen *generator.Generator) *Server {
	s := &Server{
		gen:    gen,
		router: chi.NewRouter(),
	}

	s.setupMiddleware()
	s.setupRoutes()

	return s
}

// ServeHTTP implements http.Handler
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) setupMiddleware() {
	origins := s.gen.Config().Server.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}

	s.router.Use(requestID)
	s.router.Use(middleware.Logger)
	s.router.Use(middleware.Recoverer)
	s.router.Use(middleware.RequestSize(maxBodyBytes))
	s.router.Use(middleware.Compress(5))
	s.router.Use(cors.Handler(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		ExposedHeaders: []string{RequestIDHeader},
		MaxAge:         300,
	}))
}

func (s *Server) setupRoutes() {
	s.router.Route("/api", func(r chi.Router) {
		r.Post("/text", s.handleText)
		r.Post("/recipe", s.handleRecipe)
		r.Post("/inventory", s.handleInventory)
		r.Get("/color", s.handleColor)
		r.Get("/overlays", s.handleOverlays)

		// image bodies
		r.Post("/item", s.handleItem)
		r.Post("/head", s.handleHead)
		r.Post("/tooltip", s.handleTooltip)

		r.Get("/health", s.handleHealth)
	})
}

// requestID tags every response with a fresh uuid unless the caller sent one.
func requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(RequestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set(RequestIDHeader, id)
		next.ServeHTTP(w, r)
	})
}

// ListenAndServe serves on addr until ctx is cancelled, then drains open
// requests.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", addr).Msg("Server listening")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != nil && err != http.ErrServerClosed {
			return errors.Wrapf(err, errors.ErrInternal, "server on %s failed", addr)
		}
		return nil
	case <-ctx.Done():
	}

	log.Info().Msg("Shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return errors.Wrap(err, errors.ErrInternal, "server shutdown failed")
	}
	return nil
}

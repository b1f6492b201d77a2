package server

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/meetscribe/scribe/internal/config"
	"github.com/meetscribe/scribe/internal/logger"
	"github.com/meetscribe/scribe/internal/orchestrator"
)

// Server exposes the meeting lifecycle over HTTP for the capture frontend.
type Server struct {
	cfg     *config.Config
	manager *orchestrator.Manager
	logger  logger.Logger
	router  chi.Router
}

func New(cfg *config.Config, manager *orchestrator.Manager, log logger.Logger) *Server {
	s := &Server{
		cfg:     cfg,
		manager: manager,
		logger:  log,
	}

	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(middleware.URLFormat)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	router.Get("/healthz", s.handleHealth)
	router.Route("/api/v1/meetings", func(r chi.Router) {
		r.Post("/", s.handleCreate)
		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", s.handleSnapshot)
			r.Delete("/", s.handleDelete)
			r.Post("/start", s.handleStart)
			r.Post("/pause", s.handlePause)
			r.Post("/resume", s.handleResume)
			r.Post("/stop", s.handleStop)
			r.Post("/process", s.handleProcess)
			r.Put("/speakers", s.handleSpeakers)
			r.Post("/save", s.handleSave)
			r.Post("/reset", s.handleReset)
		})
	})
	s.router = router
	return s
}

// Handler exposes the router, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Run serves until the context is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:    s.cfg.HTTP.Addr,
		Handler: s.router,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info(ctx, "HTTP server listening on %s", s.cfg.HTTP.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		s.logger.Info(shutdownCtx, "HTTP server shutting down")
		return srv.Shutdown(shutdownCtx)
	}
}

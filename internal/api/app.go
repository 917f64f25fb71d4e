package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/handlers"
	"github.com/npezzotti/go-clubs/internal/blob"
	"github.com/npezzotti/go-clubs/internal/config"
	"github.com/npezzotti/go-clubs/internal/server"
	"go.uber.org/zap"
)

type App struct {
	log            *zap.SugaredLogger
	db             Pinger
	svc            Services
	blobs          blob.Store
	hub            *server.Hub
	srv            *http.Server
	allowedOrigins []string
}

func NewApp(r chi.Router, logger *zap.SugaredLogger, hub *server.Hub, db Pinger, svc Services, blobs blob.Store, cfg *config.Config) *App {
	s := &App{
		log:            logger,
		db:             db,
		svc:            svc,
		blobs:          blobs,
		hub:            hub,
		allowedOrigins: cfg.AllowedOrigins,
	}

	r.Get("/healthz", s.healthCheck)
	r.Get("/uploads/{ref}", s.serveUpload)
	r.Get("/ws", s.serveWs)

	r.Route("/api", func(r chi.Router) {
		r.Post("/users", s.upsertUser)
		r.Get("/users/{clerkId}", s.getUser)

		r.Get("/clubs", s.listClubs)
		r.Get("/clubs/{id}", s.getClub)
		r.With(s.requireClerkId).Post("/clubs", s.createClub)
		r.With(s.requireClerkId).Put("/clubs/{id}", s.updateClub)
		r.With(s.requireClerkId).Delete("/clubs/{id}", s.deleteClub)
		r.With(s.requireClerkId).Post("/clubs/{id}/banner", s.updateBanner)

		r.Get("/books", s.listBooks)
		r.Get("/books/{id}", s.getBook)
		r.With(s.requireClerkId).Post("/books", s.createBook)
		r.With(s.requireClerkId).Put("/books/{id}", s.updateBook)
		r.With(s.requireClerkId).Delete("/books/{id}", s.deleteBook)

		r.Get("/messages", s.listMessages)
		r.With(s.requireClerkId).Post("/messages", s.createMessage)
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		errResp := NewNotFoundError()
		s.writeJson(w, errResp.StatusCode, errResp)
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		errResp := NewMethodNotAllowedError()
		s.writeJson(w, errResp.StatusCode, errResp)
	})

	h := handlers.CORS(
		handlers.MaxAge(3600),
		handlers.AllowedOrigins(cfg.AllowedOrigins),
		handlers.AllowedMethods([]string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions}),
		handlers.AllowedHeaders([]string{"Origin", "Content-Type", "Accept"}),
		handlers.AllowCredentials(),
	)(r)

	h = s.errorHandler(h)
	h = LoggingMiddleware(s.log)(h)

	s.srv = &http.Server{
		Addr:    cfg.ServerAddr,
		Handler: h,
	}

	return s
}

func (s *App) Handler() http.Handler {
	return s.srv.Handler
}

func (s *App) Start() error {
	s.log.Infof("starting server on %s", s.srv.Addr)
	return s.srv.ListenAndServe()
}

func (s *App) Shutdown(ctx context.Context) error {
	s.log.Info("shutting down HTTP server...")
	if err := s.srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}

	return nil
}

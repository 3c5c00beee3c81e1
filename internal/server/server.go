// Package server is the composition root: it opens the store, builds the
// services and handlers, mounts the routes and runs the HTTP server.
//
// DEPENDENCY FLOW:
//
//	config.Config → OpenStore → service.CatalogService / FavoriteService
//	             → handler.CatalogHandler / FavoriteHandler → chi routes
//
// Handlers never see the store and services never see HTTP.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/sakif/starwars-api/internal/config"
	"github.com/sakif/starwars-api/internal/handler"
	"github.com/sakif/starwars-api/internal/middleware"
	"github.com/sakif/starwars-api/internal/model"
	"github.com/sakif/starwars-api/internal/service"
)

// Server owns the router and the store. Close releases the store.
type Server struct {
	router *chi.Mux
	config config.Config
	logger *slog.Logger
	store  Store
}

// New opens the configured store and wires every route.
func New(cfg config.Config, logger *slog.Logger) (*Server, error) {
	store, err := OpenStore(cfg.Database, logger)
	if err != nil {
		return nil, err
	}
	return NewWithStore(cfg, store, logger), nil
}

// NewWithStore wires the routes around an already open store. The server
// takes ownership of store.
func NewWithStore(cfg config.Config, store Store, logger *slog.Logger) *Server {
	s := &Server{
		router: chi.NewRouter(),
		config: cfg,
		logger: logger,
		store:  store,
	}
	s.setupRoutes()
	return s
}

// setupRoutes mounts:
//
//	GET    /                                      endpoint index
//	GET    /people, /people/{id}
//	GET    /planets, /planets/{id}
//	GET    /vehicles, /vehicles/{id}
//	GET    /user, /user/{id}
//	GET    /user/{id}/likes, /user/{id}/favorites
//	POST   /user/{user_id}/favorites/{kind}       body: {"<kind column>": id}
//	POST   /likes/{kind}/{user_id}/{<kind column>}
//	DELETE /likes/{kind}/{user_id}/{<kind column>}
//
// Middleware runs in registration order: the request id must exist before
// the logger reads it, and the recoverer sits inside the logger so a
// recovered panic is logged with its 500. CORS answers preflights before
// routing, otherwise OPTIONS would hit the 405 handler. Trailing slashes
// are stripped so /people/ and /people are the same route.
func (s *Server) setupRoutes() {
	s.router.Use(middleware.RequestID)
	s.router.Use(chimiddleware.RealIP)
	s.router.Use(middleware.Logger(s.logger))
	s.router.Use(middleware.Recoverer(s.logger))
	s.router.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type", middleware.RequestIDHeader},
		ExposedHeaders: []string{middleware.RequestIDHeader},
		MaxAge:         300,
	}))
	s.router.Use(chimiddleware.StripSlashes)
	if s.config.App.RateLimit > 0 {
		s.router.Use(middleware.RateLimit(s.config.App.RateLimit, s.config.App.RateBurst))
	}

	s.router.NotFound(handler.NotFound)
	s.router.MethodNotAllowed(handler.MethodNotAllowed)

	catalog := handler.NewCatalogHandler(service.NewCatalogService(s.store, s.logger), s.logger)
	favorites := handler.NewFavoriteHandler(service.NewFavoriteService(s.store, s.logger), s.logger)

	s.router.Get("/", handler.Index(s.router))

	s.router.Get("/people", catalog.HandleListPeople)
	s.router.Get("/people/{id}", catalog.HandleGetPerson)
	s.router.Get("/planets", catalog.HandleListPlanets)
	s.router.Get("/planets/{id}", catalog.HandleGetPlanet)
	s.router.Get("/vehicles", catalog.HandleListVehicles)
	s.router.Get("/vehicles/{id}", catalog.HandleGetVehicle)

	s.router.Route("/user", func(r chi.Router) {
		r.Get("/", catalog.HandleListUsers)
		r.Get("/{id}", catalog.HandleGetUser)
		r.Get("/{id}/likes", catalog.HandleListUserLikes)
		r.Get("/{id}/favorites", catalog.HandleListUserLikes)
		r.Post("/{user_id}/favorites/{kind}", favorites.HandleAddFromBody)
	})

	s.router.Route("/likes", func(r chi.Router) {
		for _, kind := range model.Kinds {
			path := fmt.Sprintf("/%s/{user_id}/{%s}", kind, kind.Column())
			r.Post(path, favorites.HandleAdd(kind))
			r.Delete(path, favorites.HandleRemove(kind))
		}
	})
}

// Handler exposes the router, mainly for httptest.
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) Close() error {
	return s.store.Close()
}

// Start serves until SIGINT/SIGTERM, then drains in-flight requests for up
// to App.ShutdownTimeout seconds and closes the store.
func (s *Server) Start() error {
	defer s.Close()

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", s.config.App.Port),
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(quit)

	serverErrors := make(chan error, 1)
	go func() {
		s.logger.Info("server starting",
			slog.String("app", s.config.App.Name),
			slog.Int("port", s.config.App.Port),
			slog.String("url", fmt.Sprintf("http://localhost:%d", s.config.App.Port)),
		)
		serverErrors <- srv.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}

	case sig := <-quit:
		s.logger.Info("shutdown signal received", slog.String("signal", sig.String()))

		timeout := time.Duration(s.config.App.ShutdownTimeout) * time.Second
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
		s.logger.Info("server stopped gracefully")
	}

	return nil
}

// Package server wires the HTTP router, middleware, and all route
// definitions — the composition root of the application.
//
// main.go loads config and hands it over; New() assembles the whole
// dependency chain in one place:
//
//	sqlite.DB + favorites.Store + generator.Gateway
//	    → AuthService + IdeaService
//	    → AuthHandler + IdeaHandler
//	    → routes
//
// Each layer only receives what it needs: services get repository
// interfaces, handlers get services, and nothing below the handler
// layer ever touches HTTP.
package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/sakif/idea-generator/internal/auth"
	"github.com/sakif/idea-generator/internal/config"
	"github.com/sakif/idea-generator/internal/favorites"
	"github.com/sakif/idea-generator/internal/generator"
	"github.com/sakif/idea-generator/internal/handler"
	"github.com/sakif/idea-generator/internal/middleware"
	sqliteRepo "github.com/sakif/idea-generator/internal/repository/sqlite"
	"github.com/sakif/idea-generator/internal/service"
)

// Server owns the router and the resources that need closing on shutdown.
type Server struct {
	router *chi.Mux
	config *config.Config
	logger *slog.Logger
	db     *sqliteRepo.DB // closed during graceful shutdown
}

// New assembles the full dependency chain and registers every route.
func New(cfg *config.Config, logger *slog.Logger) (*Server, error) {
	db, err := sqliteRepo.New(cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	favs, err := favorites.New(cfg.FavoritesPath, logger)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("opening favorites store: %w", err)
	}

	s := &Server{
		router: chi.NewRouter(),
		config: cfg,
		logger: logger,
		db:     db,
	}

	if err := s.setupRoutes(favs); err != nil {
		db.Close()
		return nil, fmt.Errorf("setting up routes: %w", err)
	}

	return s, nil
}

// setupRoutes configures middleware and handlers.
//
// Route map:
//
//	POST   /auth/signup              → email+password registration
//	POST   /auth/login               → email+password login
//	POST   /auth/logout              → clear the session cookie
//	GET    /auth/google/login        → start the OAuth flow (when configured)
//	GET    /auth/google/callback     → complete the OAuth flow
//	GET    /api/health               → liveness probe
//	POST   /api/generate-idea        → generate an idea for a category
//	GET    /api/ideas                → stored ideas for the caller
//	POST   /api/like                 → like the idea currently displayed
//	POST   /api/ideas/{id}/select    → display a stored idea
//	DELETE /api/ideas/{id}           → delete with title confirmation
//	GET    /api/session              → current session snapshot
//	GET    /api/categories           → the category catalog
//	GET    /api/me                   → the authenticated account
//
// Everything under /api (except health) runs behind OptionalAuth so the
// same endpoints serve both signed-in and anonymous callers; /api/me
// alone requires a session.
func (s *Server) setupRoutes(favs *favorites.Store) error {
	s.router.Use(chimiddleware.RequestID)
	s.router.Use(chimiddleware.RealIP)
	s.router.Use(chimiddleware.Recoverer)
	s.router.Use(middleware.Logger(s.logger))

	tokens, err := auth.NewTokenService(s.config.JWTSecret)
	if err != nil {
		return fmt.Errorf("creating token service: %w", err)
	}
	passwords := auth.NewPasswordService()

	gateway := generator.New(
		s.config.OpenRouterAPIKey,
		s.config.OpenRouterModel,
		s.config.OpenRouterBaseURL,
		s.logger,
	)

	authService := service.NewAuthService(s.db, tokens, passwords, s.logger)
	ideaService := service.NewIdeaService(gateway, s.db, favs, s.logger)

	var google *auth.GoogleProvider
	if s.config.GoogleClientID != "" {
		google = auth.NewGoogleProvider(
			s.config.GoogleClientID,
			s.config.GoogleClientSecret,
			s.config.GoogleCallbackURL,
		)
	} else {
		s.logger.Warn("GOOGLE_CLIENT_ID not set, Google login disabled")
	}

	authHandler := handler.NewAuthHandler(authService, google, s.logger)
	ideaHandler := handler.NewIdeaHandler(ideaService, authService, s.logger)
	healthHandler := handler.NewHealthHandler(s.config.Environment)

	s.router.Route("/auth", func(r chi.Router) {
		r.Post("/signup", authHandler.HandleSignup)
		r.Post("/login", authHandler.HandleLogin)
		r.Post("/logout", authHandler.HandleLogout)
		if google != nil {
			r.Get("/google/login", authHandler.HandleGoogleLogin)
			r.Get("/google/callback", authHandler.HandleGoogleCallback)
		}
	})

	s.router.Get("/api/health", healthHandler.HandleHealth)

	s.router.Group(func(r chi.Router) {
		r.Use(auth.OptionalAuth(tokens))
		r.Post("/api/generate-idea", ideaHandler.HandleGenerate)
		r.Get("/api/ideas", ideaHandler.HandleList)
		r.Post("/api/like", ideaHandler.HandleLike)
		r.Post("/api/ideas/{id}/select", ideaHandler.HandleSelect)
		r.Delete("/api/ideas/{id}", ideaHandler.HandleDelete)
		r.Get("/api/session", ideaHandler.HandleSession)
		r.Get("/api/categories", ideaHandler.HandleCategories)
	})

	s.router.Group(func(r chi.Router) {
		r.Use(auth.RequireAuth(tokens))
		r.Get("/api/me", authHandler.HandleMe)
	})

	return nil
}

// Start runs the HTTP server until SIGINT/SIGTERM, then shuts down
// gracefully: stop accepting connections, give in-flight requests 30
// seconds, and close the database so the WAL is flushed.
func (s *Server) Start() error {
	defer s.db.Close()

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", s.config.Port),
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second, // generation requests can be slow
		IdleTimeout:  60 * time.Second,
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	serverErrors := make(chan error, 1)

	go func() {
		s.logger.Info("server starting",
			slog.Int("port", s.config.Port),
			slog.String("environment", s.config.Environment),
			slog.String("database", s.config.DBPath),
		)
		serverErrors <- srv.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		if err != http.ErrServerClosed {
			return fmt.Errorf("server error: %w", err)
		}

	case sig := <-quit:
		s.logger.Info("shutdown signal received", slog.String("signal", sig.String()))

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
		s.logger.Info("server stopped gracefully")
	}

	return nil
}

// Package server sets up the HTTP server, router, and all route definitions.
//
// This package is the "composition root" — the one place where the entire
// dependency chain is assembled:
//
//	sqlite.DB → theme.Service (with Document applier)
//	github.Client → lookup.Service
//	both services → handlers → routes
//
// Each layer only receives what it needs: the theme service gets the
// repository interface (not the concrete sqlite.DB), handlers get services
// (never the database or the HTTP client). main.go stays minimal — it
// loads config, builds a logger, and starts the server.
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

	"github.com/sakif/devfinder/internal/config"
	"github.com/sakif/devfinder/internal/github"
	"github.com/sakif/devfinder/internal/handler"
	"github.com/sakif/devfinder/internal/lookup"
	"github.com/sakif/devfinder/internal/middleware"
	sqliteRepo "github.com/sakif/devfinder/internal/repository/sqlite"
	"github.com/sakif/devfinder/internal/theme"
)

// Server owns the router and every long-lived resource behind it.
// The database connection is closed during graceful shutdown — skipping
// that can leave the WAL unflushed.
type Server struct {
	router *chi.Mux
	config config.Config
	logger *slog.Logger
	db     *sqliteRepo.DB
}

// New assembles the full dependency chain and returns a ready Server.
func New(cfg config.Config, logger *slog.Logger) (*Server, error) {
	// === STORAGE ===
	db, err := sqliteRepo.New(cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Server{
		router: chi.NewRouter(),
		config: cfg,
		logger: logger,
		db:     db,
	}

	if err := s.setupRoutes(); err != nil {
		db.Close() // Clean up DB if route setup fails
		return nil, fmt.Errorf("setting up routes: %w", err)
	}

	return s, nil
}

// setupRoutes configures all middleware, services, and route handlers.
//
// ROUTE STRUCTURE:
//
//	GET    /                      → Lookup page (HTML)
//	GET    /static/*              → Static files (CSS, JS)
//	GET    /api/users/{username}  → Search a user, return settled state (JSON)
//	GET    /api/state             → Current state snapshot (JSON)
//	DELETE /api/state             → Clear both lookup records
//	GET    /api/theme             → Current theme
//	POST   /api/theme             → Set theme ({"theme":"dark"|"light"})
//	POST   /api/theme/toggle      → Flip theme
func (s *Server) setupRoutes() error {
	// === Global middleware, in order ===
	s.router.Use(chimiddleware.RequestID) // Adds X-Request-ID header
	s.router.Use(chimiddleware.RealIP)    // Extracts real IP from X-Forwarded-For
	s.router.Use(chimiddleware.Recoverer) // Recovers from panics, returns 500
	s.router.Use(middleware.Logger(s.logger))

	// === Static files ===
	fileServer := http.FileServer(http.Dir(s.config.StaticDir))
	s.router.Handle("/static/*", http.StripPrefix("/static/", fileServer))

	// === Theme service ===
	// The Document is the presentation sink the theme service applies its
	// marker class to; the page handler and the JSON API both read it.
	doc := theme.NewDocument()
	themeSvc := theme.New(context.Background(), s.db, doc, s.ambientTheme(), s.logger)
	themeHandler := handler.NewThemeHandler(themeSvc, doc, s.logger)

	// === Lookup service ===
	ghClient := github.New(s.config.GitHubAPIURL, s.config.GitHubToken, s.logger)
	lookupSvc := lookup.New(ghClient, s.logger)
	lookupHandler := handler.NewLookupHandler(lookupSvc, s.logger)

	// === Page routes ===
	pageHandler, err := handler.NewPageHandler(s.config.TemplateDir, doc, s.logger)
	if err != nil {
		return fmt.Errorf("creating page handler: %w", err)
	}
	s.router.Get("/", pageHandler.HandleIndex)

	// === API routes ===
	s.router.Route("/api", func(r chi.Router) {
		r.Get("/users/{username}", lookupHandler.HandleSearch)
		r.Get("/state", lookupHandler.HandleState)
		r.Delete("/state", lookupHandler.HandleClear)
		r.Get("/theme", themeHandler.HandleGet)
		r.Post("/theme", themeHandler.HandleSet)
		r.Post("/theme/toggle", themeHandler.HandleToggle)
	})

	return nil
}

// ambientTheme turns the DEFAULT_THEME config value into the theme
// service's ambient preference hint. An empty or invalid value means "no
// hint" and the service falls through to its compiled-in default.
func (s *Server) ambientTheme() theme.AmbientPreference {
	hint := theme.Theme(s.config.DefaultTheme)
	return func() (theme.Theme, bool) {
		return hint, hint.Valid()
	}
}

// Start starts the HTTP server and blocks until shutdown.
//
// GRACEFUL SHUTDOWN:
// 1. Stop accepting new HTTP connections
// 2. Wait for in-flight requests to finish (30s timeout)
// 3. Close the database connection (flushes WAL, releases file lock)
func (s *Server) Start() error {
	defer s.db.Close()

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", s.config.Port),
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	serverErrors := make(chan error, 1)

	go func() {
		s.logger.Info("server starting",
			slog.Int("port", s.config.Port),
			slog.String("url", fmt.Sprintf("http://localhost:%d", s.config.Port)),
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

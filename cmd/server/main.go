// Package main is the entry point for the devfinder server.
//
// The main package is kept minimal — its job is to:
// 1. Build the structured logger
// 2. Load configuration from the environment
// 3. Create and start the server
//
// All actual logic lives in imported packages (internal/server,
// internal/lookup, internal/theme, ...). This separation keeps the app
// testable and its components reusable.
package main

import (
	"log/slog"
	"os"
	"path/filepath"

	"github.com/sakif/devfinder/internal/config"
	"github.com/sakif/devfinder/internal/server"
)

func main() {
	// slog.NewTextHandler outputs human-readable logs to the terminal.
	// In production you'd raise the level to Info or Warn to reduce noise.
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}))

	cfg, err := config.Load()
	if err != nil {
		logger.Error("failed to load configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Ensure the data directory exists before sqlite tries to create the
	// database file in it (os.MkdirAll is `mkdir -p`).
	if dbDir := filepath.Dir(cfg.DBPath); dbDir != "." {
		if err := os.MkdirAll(dbDir, 0755); err != nil {
			logger.Error("failed to create database directory",
				slog.String("dir", dbDir),
				slog.String("error", err.Error()),
			)
			os.Exit(1)
		}
	}

	if cfg.GitHubToken == "" {
		logger.Warn("GITHUB_TOKEN not set — unauthenticated GitHub requests are limited to 60/hour")
	}

	srv, err := server.New(cfg, logger)
	if err != nil {
		logger.Error("failed to create server", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Start() blocks until the server is shut down (via Ctrl+C or SIGTERM)
	if err := srv.Start(); err != nil {
		logger.Error("server error", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

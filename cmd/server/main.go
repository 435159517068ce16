// Package main implements the entry point for the TaskVault API server,
// a personal task manager with token-authenticated, per-user categories
// and tasks.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"

	"github.com/tmarchetti/taskvault-api/internal/config"
	"github.com/tmarchetti/taskvault-api/internal/platform/logger"
	"github.com/tmarchetti/taskvault-api/internal/redact"
)

func main() {
	migrateCmd := flag.String(
		"migrate",
		"",
		"run a migration command (up, down, status) instead of serving",
	)
	flag.Parse()

	if err := run(*migrateCmd); err != nil {
		log.Fatalf("taskvault-api: %v", err)
	}
}

// run loads configuration, wires the application, and either executes the
// requested migration command or starts the HTTP server.
func run(migrateCmd string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	appLogger, err := logger.Setup(cfg.Server)
	if err != nil {
		return fmt.Errorf("failed to set up logger: %w", err)
	}

	slog.Info("configuration loaded",
		"port", cfg.Server.Port,
		"log_level", cfg.Server.LogLevel,
		"database_url", redact.URL(cfg.Database.URL))

	db, err := openDatabase(context.Background(), cfg.Database.URL)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	if migrateCmd != "" {
		defer closeDatabase(db, appLogger)
		return runMigrations(db, migrateCmd)
	}

	app, err := newApplication(cfg, appLogger, db)
	if err != nil {
		closeDatabase(db, appLogger)
		return fmt.Errorf("failed to initialize application: %w", err)
	}

	if err := runMigrations(db, "up"); err != nil {
		app.cleanup()
		return fmt.Errorf("failed to apply migrations: %w", err)
	}

	return app.startHTTPServer(context.Background(), app.setupRouter())
}

package main

import (
	"database/sql"
	"log/slog"

	"github.com/tmarchetti/taskvault-api/internal/config"
	"github.com/tmarchetti/taskvault-api/internal/platform/postgres"
	"github.com/tmarchetti/taskvault-api/internal/service/auth"
	"github.com/tmarchetti/taskvault-api/internal/store"
)

// application holds the wired dependency graph of the server. Everything is
// constructed once at startup and shared by reference; no component is
// created per-request.
type application struct {
	config *config.Config
	logger *slog.Logger
	db     *sql.DB

	userStore     store.UserStore
	categoryStore store.CategoryStore
	taskStore     store.TaskStore
	tokenStore    store.TokenStore

	jwtService     auth.JWTService
	passwordHasher *auth.BcryptHasher
}

// newApplication wires stores and services over the given database pool.
func newApplication(cfg *config.Config, logger *slog.Logger, db *sql.DB) (*application, error) {
	jwtService, err := auth.NewJWTService(cfg.Auth)
	if err != nil {
		return nil, err
	}

	return &application{
		config:         cfg,
		logger:         logger,
		db:             db,
		userStore:      postgres.NewPostgresUserStore(db, logger),
		categoryStore:  postgres.NewPostgresCategoryStore(db, logger),
		taskStore:      postgres.NewPostgresTaskStore(db, logger),
		tokenStore:     postgres.NewPostgresTokenStore(db, logger),
		jwtService:     jwtService,
		passwordHasher: auth.NewBcryptHasher(),
	}, nil
}

// cleanup releases resources held by the application.
func (app *application) cleanup() {
	closeDatabase(app.db, app.logger)
}

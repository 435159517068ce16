package postgres

import (
	"context"
	"log/slog"
	"time"

	"github.com/tmarchetti/taskvault-api/internal/platform/logger"
	"github.com/tmarchetti/taskvault-api/internal/store"
)

// PostgresTokenStore implements the store.TokenStore interface, persisting
// revoked token IDs so logout is visible across requests and restarts.
type PostgresTokenStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresTokenStore creates a new PostgreSQL implementation of the
// TokenStore interface.
func NewPostgresTokenStore(db store.DBTX, log *slog.Logger) *PostgresTokenStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if log == nil {
		log = slog.Default()
	}

	return &PostgresTokenStore{
		db:     db,
		logger: log.With(slog.String("component", "token_store")),
	}
}

// Ensure PostgresTokenStore implements store.TokenStore interface
var _ store.TokenStore = (*PostgresTokenStore)(nil)

// Revoke implements store.TokenStore.Revoke. ON CONFLICT DO NOTHING makes
// repeated logouts with the same token a no-op.
func (s *PostgresTokenStore) Revoke(ctx context.Context, tokenID string, expiresAt time.Time) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		INSERT INTO revoked_tokens (token_id, expires_at, revoked_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (token_id) DO NOTHING
	`
	if _, err := s.db.ExecContext(ctx, query, tokenID, expiresAt, time.Now().UTC()); err != nil {
		log.Error("failed to revoke token",
			slog.String("error", err.Error()),
			slog.String("token_id", tokenID))
		return MapError(err)
	}

	return nil
}

// IsRevoked implements store.TokenStore.IsRevoked
func (s *PostgresTokenStore) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM revoked_tokens WHERE token_id = $1)`
	var revoked bool
	if err := s.db.QueryRowContext(ctx, query, tokenID).Scan(&revoked); err != nil {
		return false, MapError(err)
	}
	return revoked, nil
}

// PurgeExpired implements store.TokenStore.PurgeExpired
func (s *PostgresTokenStore) PurgeExpired(ctx context.Context, cutoff time.Time) (int64, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `DELETE FROM revoked_tokens WHERE expires_at < $1`
	result, err := s.db.ExecContext(ctx, query, cutoff)
	if err != nil {
		log.Error("failed to purge expired revoked tokens",
			slog.String("error", err.Error()))
		return 0, MapError(err)
	}

	purged, err := result.RowsAffected()
	if err != nil {
		return 0, MapError(err)
	}
	if purged > 0 {
		log.Debug("purged expired revoked tokens", slog.Int64("count", purged))
	}
	return purged, nil
}

package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/tmarchetti/taskvault-api/internal/domain"
	"github.com/tmarchetti/taskvault-api/internal/platform/logger"
	"github.com/tmarchetti/taskvault-api/internal/store"
)

// PostgresCategoryStore implements the store.CategoryStore interface
// using a PostgreSQL database as the storage backend.
type PostgresCategoryStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresCategoryStore creates a new PostgreSQL implementation of the
// CategoryStore interface.
func NewPostgresCategoryStore(db store.DBTX, log *slog.Logger) *PostgresCategoryStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if log == nil {
		log = slog.Default()
	}

	return &PostgresCategoryStore{
		db:     db,
		logger: log.With(slog.String("component", "category_store")),
	}
}

// Ensure PostgresCategoryStore implements store.CategoryStore interface
var _ store.CategoryStore = (*PostgresCategoryStore)(nil)

// Create implements store.CategoryStore.Create
func (s *PostgresCategoryStore) Create(ctx context.Context, category *domain.Category) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := category.Validate(); err != nil {
		log.Warn("category validation failed during create",
			slog.String("error", err.Error()))
		return fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
	}

	query := `
		INSERT INTO categories (user_id, title, created_at, updated_at)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`
	err := s.db.QueryRowContext(
		ctx,
		query,
		category.UserID,
		category.Title,
		category.CreatedAt,
		category.UpdatedAt,
	).Scan(&category.ID)

	if err != nil {
		log.Error("failed to create category",
			slog.String("error", err.Error()),
			slog.Int64("user_id", category.UserID))
		return MapError(err)
	}

	return nil
}

// ListByOwner implements store.CategoryStore.ListByOwner
func (s *PostgresCategoryStore) ListByOwner(ctx context.Context, ownerID int64) ([]domain.Category, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT id, user_id, title, created_at, updated_at
		FROM categories
		WHERE user_id = $1
		ORDER BY id
	`
	rows, err := s.db.QueryContext(ctx, query, ownerID)
	if err != nil {
		log.Error("failed to list categories",
			slog.String("error", err.Error()),
			slog.Int64("user_id", ownerID))
		return nil, MapError(err)
	}
	defer func() { _ = rows.Close() }()

	categories := []domain.Category{}
	for rows.Next() {
		var c domain.Category
		if err := rows.Scan(&c.ID, &c.UserID, &c.Title, &c.CreatedAt, &c.UpdatedAt); err != nil {
			log.Error("failed to scan category row", slog.String("error", err.Error()))
			return nil, MapError(err)
		}
		categories = append(categories, c)
	}
	if err := rows.Err(); err != nil {
		return nil, MapError(err)
	}

	return categories, nil
}

// GetForOwner implements store.CategoryStore.GetForOwner
func (s *PostgresCategoryStore) GetForOwner(ctx context.Context, ownerID, id int64) (*domain.Category, error) {
	// The owner predicate comes before the ID on purpose: a category
	// belonging to someone else must be indistinguishable from one that
	// does not exist.
	query := `
		SELECT id, user_id, title, created_at, updated_at
		FROM categories
		WHERE user_id = $1 AND id = $2
	`
	var c domain.Category
	err := s.db.QueryRowContext(ctx, query, ownerID, id).
		Scan(&c.ID, &c.UserID, &c.Title, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrCategoryNotFound
		}
		s.logger.Error("failed to get category",
			slog.String("error", err.Error()),
			slog.Int64("user_id", ownerID),
			slog.Int64("category_id", id))
		return nil, MapError(err)
	}
	return &c, nil
}

// Update implements store.CategoryStore.Update
func (s *PostgresCategoryStore) Update(ctx context.Context, ownerID, id int64, title string) (*domain.Category, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		UPDATE categories
		SET title = $1, updated_at = $2
		WHERE user_id = $3 AND id = $4
		RETURNING id, user_id, title, created_at, updated_at
	`
	var c domain.Category
	err := s.db.QueryRowContext(ctx, query, title, time.Now().UTC(), ownerID, id).
		Scan(&c.ID, &c.UserID, &c.Title, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrCategoryNotFound
		}
		log.Error("failed to update category",
			slog.String("error", err.Error()),
			slog.Int64("user_id", ownerID),
			slog.Int64("category_id", id))
		return nil, MapError(err)
	}
	return &c, nil
}

// Delete implements store.CategoryStore.Delete
func (s *PostgresCategoryStore) Delete(ctx context.Context, ownerID, id int64) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	// tasks.category_id is declared ON DELETE SET NULL, so referencing
	// tasks survive the delete with their category cleared.
	query := `DELETE FROM categories WHERE user_id = $1 AND id = $2`
	result, err := s.db.ExecContext(ctx, query, ownerID, id)
	if err != nil {
		log.Error("failed to delete category",
			slog.String("error", err.Error()),
			slog.Int64("user_id", ownerID),
			slog.Int64("category_id", id))
		return MapError(err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return MapError(err)
	}
	if affected == 0 {
		return store.ErrCategoryNotFound
	}
	return nil
}

// Exists implements store.CategoryStore.Exists
func (s *PostgresCategoryStore) Exists(ctx context.Context, id int64) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM categories WHERE id = $1)`
	var exists bool
	if err := s.db.QueryRowContext(ctx, query, id).Scan(&exists); err != nil {
		return false, MapError(err)
	}
	return exists, nil
}

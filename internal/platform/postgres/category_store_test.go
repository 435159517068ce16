package postgres

import (
	"context"
	"database/sql"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tmarchetti/taskvault-api/internal/domain"
	"github.com/tmarchetti/taskvault-api/internal/store"
)

func TestCategoryStoreCreate(t *testing.T) {
	t.Parallel()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	category, err := domain.NewCategory(42, "Work")
	require.NoError(t, err)

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO categories")).
		WithArgs(category.UserID, category.Title, category.CreatedAt, category.UpdatedAt).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(7))

	categoryStore := NewPostgresCategoryStore(db, nil)
	require.NoError(t, categoryStore.Create(context.Background(), category))
	assert.Equal(t, int64(7), category.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCategoryStoreListByOwner(t *testing.T) {
	t.Parallel()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	now := time.Now().UTC()
	rows := sqlmock.NewRows([]string{"id", "user_id", "title", "created_at", "updated_at"}).
		AddRow(1, 42, "Work", now, now).
		AddRow(2, 42, "Home", now, now)

	mock.ExpectQuery("SELECT(.|\n)+FROM categories(.|\n)+WHERE user_id = \\$1(.|\n)+ORDER BY id").
		WithArgs(int64(42)).
		WillReturnRows(rows)

	categoryStore := NewPostgresCategoryStore(db, nil)
	categories, err := categoryStore.ListByOwner(context.Background(), 42)
	require.NoError(t, err)

	require.Len(t, categories, 2)
	assert.Equal(t, "Work", categories[0].Title)
	assert.Equal(t, "Home", categories[1].Title)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCategoryStoreGetForOwner(t *testing.T) {
	t.Parallel()

	t.Run("owner predicate precedes the id", func(t *testing.T) {
		t.Parallel()
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer func() { _ = db.Close() }()

		now := time.Now().UTC()
		mock.ExpectQuery("SELECT(.|\n)+WHERE user_id = \\$1 AND id = \\$2").
			WithArgs(int64(42), int64(7)).
			WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "title", "created_at", "updated_at"}).
				AddRow(7, 42, "Work", now, now))

		categoryStore := NewPostgresCategoryStore(db, nil)
		category, err := categoryStore.GetForOwner(context.Background(), 42, 7)
		require.NoError(t, err)
		assert.Equal(t, int64(7), category.ID)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("no row is ErrCategoryNotFound", func(t *testing.T) {
		t.Parallel()
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer func() { _ = db.Close() }()

		mock.ExpectQuery("SELECT(.|\n)+WHERE user_id = \\$1 AND id = \\$2").
			WithArgs(int64(42), int64(7)).
			WillReturnError(sql.ErrNoRows)

		categoryStore := NewPostgresCategoryStore(db, nil)
		_, err = categoryStore.GetForOwner(context.Background(), 42, 7)
		assert.ErrorIs(t, err, store.ErrCategoryNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestCategoryStoreUpdate(t *testing.T) {
	t.Parallel()

	t.Run("returns the updated row", func(t *testing.T) {
		t.Parallel()
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer func() { _ = db.Close() }()

		now := time.Now().UTC()
		mock.ExpectQuery("UPDATE categories(.|\n)+WHERE user_id = \\$3 AND id = \\$4(.|\n)+RETURNING").
			WithArgs("Renamed", sqlmock.AnyArg(), int64(42), int64(7)).
			WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "title", "created_at", "updated_at"}).
				AddRow(7, 42, "Renamed", now, now))

		categoryStore := NewPostgresCategoryStore(db, nil)
		category, err := categoryStore.Update(context.Background(), 42, 7, "Renamed")
		require.NoError(t, err)
		assert.Equal(t, "Renamed", category.Title)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("no row is ErrCategoryNotFound", func(t *testing.T) {
		t.Parallel()
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer func() { _ = db.Close() }()

		mock.ExpectQuery("UPDATE categories").
			WithArgs("Renamed", sqlmock.AnyArg(), int64(42), int64(7)).
			WillReturnError(sql.ErrNoRows)

		categoryStore := NewPostgresCategoryStore(db, nil)
		_, err = categoryStore.Update(context.Background(), 42, 7, "Renamed")
		assert.ErrorIs(t, err, store.ErrCategoryNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestCategoryStoreDelete(t *testing.T) {
	t.Parallel()

	t.Run("zero rows affected is ErrCategoryNotFound", func(t *testing.T) {
		t.Parallel()
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer func() { _ = db.Close() }()

		mock.ExpectExec(regexp.QuoteMeta("DELETE FROM categories WHERE user_id = $1 AND id = $2")).
			WithArgs(int64(42), int64(7)).
			WillReturnResult(sqlmock.NewResult(0, 0))

		categoryStore := NewPostgresCategoryStore(db, nil)
		err = categoryStore.Delete(context.Background(), 42, 7)
		assert.ErrorIs(t, err, store.ErrCategoryNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestCategoryStoreExists(t *testing.T) {
	t.Parallel()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	mock.ExpectQuery(regexp.QuoteMeta("SELECT EXISTS (SELECT 1 FROM categories WHERE id = $1)")).
		WithArgs(int64(7)).
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

	categoryStore := NewPostgresCategoryStore(db, nil)
	exists, err := categoryStore.Exists(context.Background(), 7)
	require.NoError(t, err)
	assert.True(t, exists)
	assert.NoError(t, mock.ExpectationsWereMet())
}

package domain

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCategory(t *testing.T) {
	t.Parallel()

	t.Run("creates valid category", func(t *testing.T) {
		t.Parallel()
		category, err := NewCategory(1, "Work")
		require.NoError(t, err)
		assert.Equal(t, int64(1), category.UserID)
		assert.Equal(t, "Work", category.Title)
		assert.False(t, category.CreatedAt.IsZero())
	})

	t.Run("title length counts characters, not bytes", func(t *testing.T) {
		t.Parallel()
		_, err := NewCategory(1, strings.Repeat("é", 255))
		assert.NoError(t, err)

		_, err = NewCategory(1, strings.Repeat("é", 256))
		assert.ErrorIs(t, err, ErrCategoryTitleTooLong)
	})

	tests := []struct {
		name    string
		userID  int64
		title   string
		wantErr error
	}{
		{"missing owner", 0, "Work", ErrInvalidID},
		{"negative owner", -3, "Work", ErrInvalidID},
		{"empty title", 1, "", ErrEmptyCategoryTitle},
		{"title too long", 1, strings.Repeat("a", 256), ErrCategoryTitleTooLong},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			_, err := NewCategory(tc.userID, tc.title)
			assert.ErrorIs(t, err, tc.wantErr)
		})
	}
}

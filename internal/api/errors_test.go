package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tmarchetti/taskvault-api/internal/api/shared"
	"github.com/tmarchetti/taskvault-api/internal/domain"
	"github.com/tmarchetti/taskvault-api/internal/service/auth"
	"github.com/tmarchetti/taskvault-api/internal/store"
)

func TestMapErrorToStatusCode(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{"invalid token", auth.ErrInvalidToken, http.StatusUnauthorized},
		{"expired token", auth.ErrExpiredToken, http.StatusUnauthorized},
		{"missing token", auth.ErrMissingToken, http.StatusUnauthorized},
		{"refresh expired", auth.ErrRefreshExpired, http.StatusUnauthorized},
		{"unauthorized operation", domain.ErrUnauthorized, http.StatusForbidden},
		{"task not found", store.ErrTaskNotFound, http.StatusNotFound},
		{"category not found", store.ErrCategoryNotFound, http.StatusNotFound},
		{"wrapped not found", fmt.Errorf("loading: %w", store.ErrUserNotFound), http.StatusNotFound},
		{"validation", domain.ErrValidation, http.StatusUnprocessableEntity},
		{"entity sentinel", domain.ErrEmptyTaskTitle, http.StatusUnprocessableEntity},
		{"wrapped entity sentinel", fmt.Errorf("creating: %w", domain.ErrEmptyCategoryTitle), http.StatusUnprocessableEntity},
		{"duplicate", store.ErrEmailExists, http.StatusUnprocessableEntity},
		{"invalid reference", store.ErrInvalidEntity, http.StatusUnprocessableEntity},
		{"unknown error", errors.New("query failed"), http.StatusInternalServerError},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.wantStatus, MapErrorToStatusCode(tc.err))
		})
	}
}

func TestGetSafeErrorMessage(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		err     error
		wantMsg string
	}{
		{"nil", nil, "Server error"},
		{"auth error", auth.ErrExpiredToken, "Unauthenticated"},
		{"not found", store.ErrTaskNotFound, "Resource not found"},
		{"validation", domain.ErrValidation, "Validation failed"},
		{"internal detail is never exposed", errors.New("pq: connection refused"), "Server error"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.wantMsg, GetSafeErrorMessage(tc.err))
		})
	}
}

func TestHandleAPIError(t *testing.T) {
	t.Parallel()

	t.Run("renders per-field body for validation errors", func(t *testing.T) {
		t.Parallel()
		verrs := domain.NewValidationErrors()
		verrs.Add("title", "is required")

		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/tasks", nil)
		HandleAPIError(rec, req, verrs)

		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

		var body shared.ErrorResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Equal(t, "Validation failed", body.Error)
		assert.Equal(t, []string{"is required"}, body.Errors["title"])
	})

	t.Run("hides internal errors behind a generic message", func(t *testing.T) {
		t.Parallel()
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/api/tasks", nil)
		HandleAPIError(rec, req, errors.New("dial tcp: connection refused"))

		assert.Equal(t, http.StatusInternalServerError, rec.Code)

		var body shared.ErrorResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Equal(t, "Server error", body.Error)
		assert.NotContains(t, rec.Body.String(), "connection refused")
	})

	t.Run("owner-scoped miss renders 404", func(t *testing.T) {
		t.Parallel()
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/api/tasks/9", nil)
		HandleAPIError(rec, req, store.ErrTaskNotFound)

		assert.Equal(t, http.StatusNotFound, rec.Code)

		var body shared.ErrorResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Equal(t, "Resource not found", body.Error)
	})
}

package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tmarchetti/taskvault-api/internal/api/shared"
	"github.com/tmarchetti/taskvault-api/internal/domain"
	"github.com/tmarchetti/taskvault-api/internal/mocks"
	"github.com/tmarchetti/taskvault-api/internal/service/auth"
	"github.com/tmarchetti/taskvault-api/internal/store"
)

func newTestUser(t *testing.T, id int64) *domain.User {
	t.Helper()
	user, err := domain.NewUser("Test User", "test@example.com", "hashed-password")
	require.NoError(t, err)
	user.ID = id
	return user
}

func newAuthHandlerForTest(
	users *mocks.MockUserStore,
	tokens *mocks.MockTokenStore,
	jwt *mocks.MockJWTService,
	passwords *mocks.MockPasswordHasher,
) *AuthHandler {
	return NewAuthHandler(users, tokens, jwt, passwords, passwords)
}

func TestRegister(t *testing.T) {
	t.Parallel()

	validBody := map[string]string{
		"name":                  "Test User",
		"email":                 "test@example.com",
		"password":              "password123",
		"password_confirmation": "password123",
	}

	t.Run("creates user and returns token envelope", func(t *testing.T) {
		t.Parallel()
		users := &mocks.MockUserStore{
			CreateFn: func(ctx context.Context, user *domain.User) error {
				user.ID = 42
				return nil
			},
		}
		jwt := &mocks.MockJWTService{Token: "signed-token", Claims: testClaims(42), Lifetime: time.Hour}
		handler := newAuthHandlerForTest(users, &mocks.MockTokenStore{}, jwt, &mocks.MockPasswordHasher{Hashed: "hash"})

		rec := httptest.NewRecorder()
		req := newAuthRequest(t, http.MethodPost, "/api/auth/register", validBody, 0)
		handler.Register(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)

		var resp TokenResponse
		decodeBody(t, rec, &resp)
		assert.Equal(t, "signed-token", resp.AccessToken)
		assert.Equal(t, "bearer", resp.TokenType)
		assert.Equal(t, int64(3600), resp.ExpiresIn)
		require.NotNil(t, resp.User)
		assert.Equal(t, int64(42), resp.User.ID)
		assert.Equal(t, "test@example.com", resp.User.Email)
	})

	t.Run("duplicate email renders field error", func(t *testing.T) {
		t.Parallel()
		users := &mocks.MockUserStore{Err: store.ErrEmailExists}
		handler := newAuthHandlerForTest(users, &mocks.MockTokenStore{}, &mocks.MockJWTService{}, &mocks.MockPasswordHasher{Hashed: "hash"})

		rec := httptest.NewRecorder()
		req := newAuthRequest(t, http.MethodPost, "/api/auth/register", validBody, 0)
		handler.Register(rec, req)

		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

		var body shared.ErrorResponse
		decodeBody(t, rec, &body)
		assert.Equal(t, "Validation failed", body.Error)
		assert.Equal(t, []string{"has already been taken"}, body.Errors["email"])
	})

	t.Run("mismatched confirmation rejected before any store call", func(t *testing.T) {
		t.Parallel()
		users := &mocks.MockUserStore{
			CreateFn: func(ctx context.Context, user *domain.User) error {
				t.Fatal("store should not be called")
				return nil
			},
		}
		handler := newAuthHandlerForTest(users, &mocks.MockTokenStore{}, &mocks.MockJWTService{}, &mocks.MockPasswordHasher{})

		body := map[string]string{
			"name":                  "Test User",
			"email":                 "test@example.com",
			"password":              "password123",
			"password_confirmation": "different1234",
		}
		rec := httptest.NewRecorder()
		req := newAuthRequest(t, http.MethodPost, "/api/auth/register", body, 0)
		handler.Register(rec, req)

		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

		var resp shared.ErrorResponse
		decodeBody(t, rec, &resp)
		assert.Contains(t, resp.Errors, "password_confirmation")
	})

	t.Run("malformed JSON is a 400", func(t *testing.T) {
		t.Parallel()
		handler := newAuthHandlerForTest(&mocks.MockUserStore{}, &mocks.MockTokenStore{}, &mocks.MockJWTService{}, &mocks.MockPasswordHasher{})

		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/auth/register", strings.NewReader("{not json"))
		handler.Register(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestLogin(t *testing.T) {
	t.Parallel()

	validBody := map[string]string{
		"email":    "test@example.com",
		"password": "password123",
	}

	t.Run("valid credentials return token envelope", func(t *testing.T) {
		t.Parallel()
		users := &mocks.MockUserStore{User: newTestUser(t, 42)}
		jwt := &mocks.MockJWTService{Token: "signed-token", Claims: testClaims(42), Lifetime: time.Hour}
		handler := newAuthHandlerForTest(users, &mocks.MockTokenStore{}, jwt, &mocks.MockPasswordHasher{})

		rec := httptest.NewRecorder()
		req := newAuthRequest(t, http.MethodPost, "/api/auth/login", validBody, 0)
		handler.Login(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)

		var resp TokenResponse
		decodeBody(t, rec, &resp)
		assert.Equal(t, "signed-token", resp.AccessToken)
		require.NotNil(t, resp.User)
		assert.Equal(t, int64(42), resp.User.ID)
	})

	t.Run("unknown email and wrong password are indistinguishable", func(t *testing.T) {
		t.Parallel()

		unknownEmail := newAuthHandlerForTest(
			&mocks.MockUserStore{Err: store.ErrUserNotFound},
			&mocks.MockTokenStore{},
			&mocks.MockJWTService{},
			&mocks.MockPasswordHasher{},
		)
		wrongPassword := newAuthHandlerForTest(
			&mocks.MockUserStore{User: newTestUser(t, 42)},
			&mocks.MockTokenStore{},
			&mocks.MockJWTService{},
			&mocks.MockPasswordHasher{CompareErr: assert.AnError},
		)

		recA := httptest.NewRecorder()
		unknownEmail.Login(recA, newAuthRequest(t, http.MethodPost, "/api/auth/login", validBody, 0))
		recB := httptest.NewRecorder()
		wrongPassword.Login(recB, newAuthRequest(t, http.MethodPost, "/api/auth/login", validBody, 0))

		assert.Equal(t, http.StatusUnauthorized, recA.Code)
		assert.Equal(t, http.StatusUnauthorized, recB.Code)

		var bodyA, bodyB shared.ErrorResponse
		decodeBody(t, recA, &bodyA)
		decodeBody(t, recB, &bodyB)
		assert.Equal(t, "Unauthorized", bodyA.Error)
		assert.Equal(t, bodyA.Error, bodyB.Error)
	})
}

func TestMe(t *testing.T) {
	t.Parallel()

	t.Run("returns the authenticated user's profile", func(t *testing.T) {
		t.Parallel()
		users := &mocks.MockUserStore{
			GetByIDFn: func(ctx context.Context, id int64) (*domain.User, error) {
				assert.Equal(t, int64(42), id)
				return newTestUser(t, 42), nil
			},
		}
		handler := newAuthHandlerForTest(users, &mocks.MockTokenStore{}, &mocks.MockJWTService{}, &mocks.MockPasswordHasher{})

		rec := httptest.NewRecorder()
		handler.Me(rec, newAuthRequest(t, http.MethodGet, "/api/auth/me", nil, 42))

		require.Equal(t, http.StatusOK, rec.Code)

		var resp struct {
			Data UserResponse `json:"data"`
		}
		decodeBody(t, rec, &resp)
		assert.Equal(t, int64(42), resp.Data.ID)
		assert.NotContains(t, rec.Body.String(), "hashed-password")
	})

	t.Run("token for a deleted user is unauthenticated", func(t *testing.T) {
		t.Parallel()
		users := &mocks.MockUserStore{Err: store.ErrUserNotFound}
		handler := newAuthHandlerForTest(users, &mocks.MockTokenStore{}, &mocks.MockJWTService{}, &mocks.MockPasswordHasher{})

		rec := httptest.NewRecorder()
		handler.Me(rec, newAuthRequest(t, http.MethodGet, "/api/auth/me", nil, 42))

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}

func TestLogout(t *testing.T) {
	t.Parallel()

	t.Run("revokes the presented token", func(t *testing.T) {
		t.Parallel()
		var revokedID string
		tokens := &mocks.MockTokenStore{
			RevokeFn: func(ctx context.Context, tokenID string, expiresAt time.Time) error {
				revokedID = tokenID
				return nil
			},
		}
		handler := newAuthHandlerForTest(&mocks.MockUserStore{}, tokens, &mocks.MockJWTService{}, &mocks.MockPasswordHasher{})

		rec := httptest.NewRecorder()
		handler.Logout(rec, newAuthRequest(t, http.MethodPost, "/api/auth/logout", nil, 42))

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, testClaims(42).TokenID, revokedID)

		var resp shared.MessageResponse
		decodeBody(t, rec, &resp)
		assert.Equal(t, "Successfully logged out", resp.Message)
	})
}

func TestRefresh(t *testing.T) {
	t.Parallel()

	t.Run("exchanges a token and retires the old one", func(t *testing.T) {
		t.Parallel()
		var revokedID string
		tokens := &mocks.MockTokenStore{
			RevokeFn: func(ctx context.Context, tokenID string, expiresAt time.Time) error {
				revokedID = tokenID
				return nil
			},
		}
		jwt := &mocks.MockJWTService{Token: "fresh-token", Claims: testClaims(42), Lifetime: time.Hour}
		users := &mocks.MockUserStore{User: newTestUser(t, 42)}
		handler := newAuthHandlerForTest(users, tokens, jwt, &mocks.MockPasswordHasher{})

		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/auth/refresh", nil)
		req.Header.Set("Authorization", "Bearer old-token")
		handler.Refresh(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, testClaims(42).TokenID, revokedID)

		var resp TokenResponse
		decodeBody(t, rec, &resp)
		assert.Equal(t, "fresh-token", resp.AccessToken)
		assert.Equal(t, "bearer", resp.TokenType)
		require.NotNil(t, resp.User)
		assert.Equal(t, int64(42), resp.User.ID)
	})

	t.Run("missing bearer token is 401", func(t *testing.T) {
		t.Parallel()
		handler := newAuthHandlerForTest(&mocks.MockUserStore{}, &mocks.MockTokenStore{}, &mocks.MockJWTService{}, &mocks.MockPasswordHasher{})

		rec := httptest.NewRecorder()
		handler.Refresh(rec, httptest.NewRequest(http.MethodPost, "/api/auth/refresh", nil))

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("token past the grace window is 401", func(t *testing.T) {
		t.Parallel()
		jwt := &mocks.MockJWTService{ValidateErr: auth.ErrRefreshExpired}
		handler := newAuthHandlerForTest(&mocks.MockUserStore{}, &mocks.MockTokenStore{}, jwt, &mocks.MockPasswordHasher{})

		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/auth/refresh", nil)
		req.Header.Set("Authorization", "Bearer stale-token")
		handler.Refresh(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("already-refreshed token is 401", func(t *testing.T) {
		t.Parallel()
		jwt := &mocks.MockJWTService{Claims: testClaims(42)}
		tokens := &mocks.MockTokenStore{Revoked: true}
		handler := newAuthHandlerForTest(&mocks.MockUserStore{}, tokens, jwt, &mocks.MockPasswordHasher{})

		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/auth/refresh", nil)
		req.Header.Set("Authorization", "Bearer used-token")
		handler.Refresh(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}

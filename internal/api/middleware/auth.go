package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/tmarchetti/taskvault-api/internal/api/shared"
	"github.com/tmarchetti/taskvault-api/internal/platform/logger"
	"github.com/tmarchetti/taskvault-api/internal/service/auth"
	"github.com/tmarchetti/taskvault-api/internal/store"
)

// AuthMiddleware provides bearer-token authentication for routes.
// It validates the token cryptographically, then checks it against the
// revocation list so logged-out tokens stop working immediately.
type AuthMiddleware struct {
	jwtService auth.JWTService
	tokenStore store.TokenStore
}

// NewAuthMiddleware creates a new AuthMiddleware with the given dependencies.
func NewAuthMiddleware(jwtService auth.JWTService, tokenStore store.TokenStore) *AuthMiddleware {
	return &AuthMiddleware{
		jwtService: jwtService,
		tokenStore: tokenStore,
	}
}

// BearerToken extracts the token from an Authorization header value.
// Returns auth.ErrMissingToken when the header is absent or not in
// "Bearer <token>" form.
func BearerToken(r *http.Request) (string, error) {
	header := r.Header.Get("Authorization")
	if header == "" {
		return "", auth.ErrMissingToken
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || parts[1] == "" {
		return "", auth.ErrMissingToken
	}
	return parts[1], nil
}

// Authenticate validates bearer tokens from the Authorization header and
// adds the token claims to the request context for authorized requests.
// Every failure mode responds 401 with the same generic message; callers
// learn nothing about why authentication failed.
func (m *AuthMiddleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		token, err := BearerToken(r)
		if err != nil {
			shared.RespondWithError(w, r, http.StatusUnauthorized, "Unauthenticated")
			return
		}

		claims, err := m.jwtService.ValidateToken(r.Context(), token)
		if err != nil {
			if !errors.Is(err, auth.ErrExpiredToken) && !errors.Is(err, auth.ErrInvalidToken) &&
				!errors.Is(err, auth.ErrTokenNotYetValid) {
				log.Error("unexpected token validation failure", "error", err)
			}
			shared.RespondWithError(w, r, http.StatusUnauthorized, "Unauthenticated")
			return
		}

		revoked, err := m.tokenStore.IsRevoked(r.Context(), claims.TokenID)
		if err != nil {
			log.Error("failed to check token revocation", "error", err)
			shared.RespondWithError(w, r, http.StatusInternalServerError, "Server error")
			return
		}
		if revoked {
			shared.RespondWithError(w, r, http.StatusUnauthorized, "Unauthenticated")
			return
		}

		ctx := shared.SetAuthClaims(r.Context(), claims)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

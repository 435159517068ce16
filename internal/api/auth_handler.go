package api

import (
	"errors"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/tmarchetti/taskvault-api/internal/api/middleware"
	"github.com/tmarchetti/taskvault-api/internal/api/shared"
	"github.com/tmarchetti/taskvault-api/internal/domain"
	"github.com/tmarchetti/taskvault-api/internal/service/auth"
	"github.com/tmarchetti/taskvault-api/internal/store"
)

// AuthHandler handles authentication endpoints: register, login, the
// current-user lookup, logout, and token refresh.
type AuthHandler struct {
	userStore  store.UserStore
	tokenStore store.TokenStore
	jwtService auth.JWTService
	hasher     auth.PasswordHasher
	verifier   auth.PasswordVerifier
	validate   *validator.Validate
}

// NewAuthHandler creates a new AuthHandler with the given dependencies.
func NewAuthHandler(
	userStore store.UserStore,
	tokenStore store.TokenStore,
	jwtService auth.JWTService,
	hasher auth.PasswordHasher,
	verifier auth.PasswordVerifier,
) *AuthHandler {
	return &AuthHandler{
		userStore:  userStore,
		tokenStore: tokenStore,
		jwtService: jwtService,
		hasher:     hasher,
		verifier:   verifier,
		validate:   newValidator(),
	}
}

// tokenResponse assembles the standard bearer token envelope. Register,
// login, and refresh all include the token's user.
func (h *AuthHandler) tokenResponse(token string, user *domain.User) *TokenResponse {
	return &TokenResponse{
		AccessToken: token,
		TokenType:   "bearer",
		ExpiresIn:   int64(h.jwtService.TokenLifetime().Seconds()),
		User:        NewUserResponse(user),
	}
}

// Register handles POST /api/auth/register.
// Creates a user account and immediately issues a bearer token, so a fresh
// registration needs no follow-up login call.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req RegisterRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request body")
		return
	}
	if verrs := checkRequest(h.validate, &req); verrs != nil {
		shared.RespondWithValidationErrors(w, r, verrs.ByField())
		return
	}

	hashed, err := h.hasher.Hash(req.Password)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}

	user, err := domain.NewUser(req.Name, req.Email, hashed)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}

	if err := h.userStore.Create(ctx, user); err != nil {
		if errors.Is(err, store.ErrEmailExists) {
			// Reported under the email field, same shape as any other
			// validation failure on this endpoint.
			verrs := domain.NewValidationErrors()
			verrs.Add("email", "has already been taken")
			shared.RespondWithValidationErrors(w, r, verrs.ByField())
			return
		}
		HandleAPIError(w, r, err)
		return
	}

	token, _, err := h.jwtService.GenerateToken(ctx, user.ID)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, h.tokenResponse(token, user))
}

// Login handles POST /api/auth/login.
// Unknown email and wrong password produce the same 401; the response never
// reveals which half of the credential pair failed.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req LoginRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request body")
		return
	}
	if verrs := checkRequest(h.validate, &req); verrs != nil {
		shared.RespondWithValidationErrors(w, r, verrs.ByField())
		return
	}

	user, err := h.userStore.GetByEmail(ctx, req.Email)
	if err != nil {
		if store.IsNotFoundError(err) {
			shared.RespondWithError(w, r, http.StatusUnauthorized, "Unauthorized")
			return
		}
		HandleAPIError(w, r, err)
		return
	}

	if err := h.verifier.Compare(user.HashedPassword, req.Password); err != nil {
		shared.RespondWithError(w, r, http.StatusUnauthorized, "Unauthorized")
		return
	}

	token, _, err := h.jwtService.GenerateToken(ctx, user.ID)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, h.tokenResponse(token, user))
}

// Me handles GET /api/auth/me.
// Returns the authenticated user's profile.
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	claims, ok := currentClaims(r)
	if !ok {
		shared.RespondWithError(w, r, http.StatusUnauthorized, "Unauthenticated")
		return
	}

	user, err := h.userStore.GetByID(ctx, claims.UserID)
	if err != nil {
		// The token outlived its user; treat it like any other bad token.
		if store.IsNotFoundError(err) {
			shared.RespondWithError(w, r, http.StatusUnauthorized, "Unauthenticated")
			return
		}
		HandleAPIError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, shared.DataResponse{Data: NewUserResponse(user)})
}

// Logout handles POST /api/auth/logout.
// Revokes the presented token's ID so it stops authenticating immediately,
// even though its signature stays valid until expiry. Revoking an
// already-revoked token succeeds again with the same response.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	claims, ok := currentClaims(r)
	if !ok {
		shared.RespondWithError(w, r, http.StatusUnauthorized, "Unauthenticated")
		return
	}

	if err := h.tokenStore.Revoke(ctx, claims.TokenID, claims.ExpiresAt); err != nil {
		HandleAPIError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, shared.MessageResponse{Message: "Successfully logged out"})
}

// Refresh handles POST /api/auth/refresh.
// Exchanges the presented token for a fresh one and revokes the old token's
// ID, so each token can be refreshed at most once. The endpoint sits outside
// the strict authentication middleware because it accepts tokens that
// expired within the refresh grace window.
func (h *AuthHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	tokenString, err := middleware.BearerToken(r)
	if err != nil {
		shared.RespondWithError(w, r, http.StatusUnauthorized, "Unauthenticated")
		return
	}

	claims, err := h.jwtService.ValidateForRefresh(ctx, tokenString)
	if err != nil {
		shared.RespondWithError(w, r, http.StatusUnauthorized, "Unauthenticated")
		return
	}

	revoked, err := h.tokenStore.IsRevoked(ctx, claims.TokenID)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}
	if revoked {
		shared.RespondWithError(w, r, http.StatusUnauthorized, "Unauthenticated")
		return
	}

	user, err := h.userStore.GetByID(ctx, claims.UserID)
	if err != nil {
		// The token outlived its user; treat it like any other bad token.
		if store.IsNotFoundError(err) {
			shared.RespondWithError(w, r, http.StatusUnauthorized, "Unauthenticated")
			return
		}
		HandleAPIError(w, r, err)
		return
	}

	token, _, err := h.jwtService.GenerateToken(ctx, claims.UserID)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}

	// Retire the old token only after the new one exists, so a failed
	// refresh never strands the client without a usable token.
	if err := h.tokenStore.Revoke(ctx, claims.TokenID, claims.ExpiresAt); err != nil {
		HandleAPIError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, h.tokenResponse(token, user))
}

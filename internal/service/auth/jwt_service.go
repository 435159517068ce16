package auth

import (
	"context"
	"time"
)

// JWTService defines operations for issuing and verifying bearer tokens.
type JWTService interface {
	// GenerateToken creates a signed token for the user and returns the
	// token string along with its parsed claims (the caller needs the
	// token ID and expiry for revocation bookkeeping and responses).
	GenerateToken(ctx context.Context, userID int64) (string, *Claims, error)

	// ValidateToken validates a token string for request authentication
	// and extracts the claims. Returns ErrExpiredToken or ErrInvalidToken
	// on failure. Revocation is checked separately by the caller; the
	// service itself is stateless.
	ValidateToken(ctx context.Context, tokenString string) (*Claims, error)

	// ValidateForRefresh validates a token string for exchange at the
	// refresh endpoint. Unlike ValidateToken it accepts tokens that
	// expired within the refresh grace window; tokens older than that
	// fail with ErrRefreshExpired.
	ValidateForRefresh(ctx context.Context, tokenString string) (*Claims, error)

	// TokenLifetime reports how long issued tokens remain valid.
	TokenLifetime() time.Duration
}

// Claims is the validated content of a bearer token.
type Claims struct {
	// UserID is the unique identifier of the user the token was issued for.
	UserID int64

	// TokenID is the token's unique jti claim, used for revocation.
	TokenID string

	// IssuedAt and ExpiresAt are the token's validity window.
	IssuedAt  time.Time
	ExpiresAt time.Time
}

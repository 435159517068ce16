package store

import (
	"context"
	"time"
)

// TokenStore persists revoked token IDs (JWT jti claims) so that logout is
// visible to every subsequent request. Tokens are otherwise stateless; only
// revocation needs shared state.
type TokenStore interface {
	// Revoke records the token ID as unusable until expiresAt. Revoking an
	// already-revoked token is a no-op, which makes logout idempotent.
	Revoke(ctx context.Context, tokenID string, expiresAt time.Time) error

	// IsRevoked reports whether the token ID has been revoked.
	// Entries past their expiry may be garbage collected at any time;
	// an expired token fails signature-level validation anyway.
	IsRevoked(ctx context.Context, tokenID string) (bool, error)

	// PurgeExpired removes entries whose tokens expired before the cutoff
	// and reports how many were removed. Run periodically to keep the
	// denylist small; a purged entry's token still fails validation on
	// expiry alone.
	PurgeExpired(ctx context.Context, cutoff time.Time) (int64, error)
}

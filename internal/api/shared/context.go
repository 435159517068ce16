package shared

import (
	"context"
	"crypto/rand"
	"encoding/hex"

	"github.com/tmarchetti/taskvault-api/internal/service/auth"
)

// ContextKey is the key type for context values set by the API layer.
type ContextKey string

const (
	// AuthClaimsKey is the context key for the authenticated token claims.
	AuthClaimsKey ContextKey = "authClaims"

	// TraceIDKey is the key for the trace ID in the request context.
	TraceIDKey ContextKey = "traceID"

	// traceIDLength is the number of random bytes in a trace ID.
	traceIDLength = 16 // 32 hex characters
)

// SetTraceID adds a freshly generated trace ID to the context. Used to
// correlate logs and error responses for one request.
func SetTraceID(ctx context.Context) context.Context {
	b := make([]byte, traceIDLength)
	// rand.Read never fails on supported platforms.
	_, _ = rand.Read(b)
	return context.WithValue(ctx, TraceIDKey, hex.EncodeToString(b))
}

// GetTraceID retrieves the trace ID from the context.
// If no trace ID exists, it returns an empty string.
func GetTraceID(ctx context.Context) string {
	traceID, ok := ctx.Value(TraceIDKey).(string)
	if !ok {
		return ""
	}
	return traceID
}

// SetAuthClaims stores the validated token claims in the context.
// Set by the authentication middleware for protected routes.
func SetAuthClaims(ctx context.Context, claims *auth.Claims) context.Context {
	return context.WithValue(ctx, AuthClaimsKey, claims)
}

// GetAuthClaims retrieves the validated token claims from the context.
// Returns nil and false when the request was not authenticated.
func GetAuthClaims(ctx context.Context) (*auth.Claims, bool) {
	claims, ok := ctx.Value(AuthClaimsKey).(*auth.Claims)
	if !ok || claims == nil {
		return nil, false
	}
	return claims, true
}

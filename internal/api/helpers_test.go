package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"

	"github.com/tmarchetti/taskvault-api/internal/api/shared"
	"github.com/tmarchetti/taskvault-api/internal/service/auth"
)

// testClaims returns claims for a fixed authenticated user.
func testClaims(userID int64) *auth.Claims {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	return &auth.Claims{
		UserID:    userID,
		TokenID:   "11111111-2222-3333-4444-555555555555",
		IssuedAt:  now,
		ExpiresAt: now.Add(time.Hour),
	}
}

// newAuthRequest builds a request carrying authenticated claims, an optional
// JSON body, and optional chi URL parameters (given as alternating key,
// value pairs).
func newAuthRequest(t *testing.T, method, target string, body any, userID int64, params ...string) *http.Request {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, target, &buf)
	ctx := shared.SetAuthClaims(req.Context(), testClaims(userID))

	if len(params) > 0 {
		routeCtx := chi.NewRouteContext()
		for i := 0; i+1 < len(params); i += 2 {
			routeCtx.URLParams.Add(params[i], params[i+1])
		}
		ctx = context.WithValue(ctx, chi.RouteCtxKey, routeCtx)
	}

	return req.WithContext(ctx)
}

// decodeBody unmarshals a recorded response body into the given value.
func decodeBody(t *testing.T, rec *httptest.ResponseRecorder, v any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), v))
}

package api

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/tmarchetti/taskvault-api/internal/api/shared"
	"github.com/tmarchetti/taskvault-api/internal/service/auth"
)

// currentClaims extracts the authenticated token claims placed in the
// context by the authentication middleware. The bool is false when the
// request somehow reached a protected handler without them; callers treat
// that as an authentication failure.
func currentClaims(r *http.Request) (*auth.Claims, bool) {
	return shared.GetAuthClaims(r.Context())
}

// pathID extracts a positive integer ID from the named URL path parameter.
// A malformed or non-positive value behaves like an ID that does not exist:
// the caller responds 404, never revealing anything about valid ID shapes.
func pathID(r *http.Request, name string) (int64, bool) {
	raw := chi.URLParam(r, name)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

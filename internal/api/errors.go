package api

import (
	"errors"
	"net/http"

	"github.com/tmarchetti/taskvault-api/internal/api/shared"
	"github.com/tmarchetti/taskvault-api/internal/domain"
	"github.com/tmarchetti/taskvault-api/internal/service/auth"
	"github.com/tmarchetti/taskvault-api/internal/store"
)

// MapErrorToStatusCode maps internal errors to appropriate HTTP status codes
// based on the error type. This prevents leaking internal error types or
// messages to clients.
//
// Note that ownership mismatches never reach this function as a distinct
// error: the stores already collapse "owned by someone else" into their
// not-found errors, so 403 stays unused by design.
func MapErrorToStatusCode(err error) int {
	switch {
	// Authentication errors
	case errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrExpiredToken),
		errors.Is(err, auth.ErrTokenNotYetValid),
		errors.Is(err, auth.ErrMissingToken),
		errors.Is(err, auth.ErrRevokedToken),
		errors.Is(err, auth.ErrRefreshExpired):
		return http.StatusUnauthorized

	// Authorization errors (reserved; the ownership policy prefers 404)
	case errors.Is(err, domain.ErrUnauthorized):
		return http.StatusForbidden

	// Not found errors (including owned-by-another-user lookups)
	case store.IsNotFoundError(err):
		return http.StatusNotFound

	// Validation errors, including uniqueness conflicts surfaced as
	// field errors
	case errors.Is(err, domain.ErrValidation),
		isDomainEntityError(err),
		errors.Is(err, store.ErrInvalidEntity),
		errors.Is(err, store.ErrDuplicate):
		return http.StatusUnprocessableEntity

	// Default: internal server error
	default:
		return http.StatusInternalServerError
	}
}

// isDomainEntityError reports whether the error is one of the entity-level
// validation sentinels. These surface when input slips past request
// validation (a whitespace-only title that trims to empty, for example) and
// still belong in a 422, not a 500.
func isDomainEntityError(err error) bool {
	for _, sentinel := range []error{
		domain.ErrInvalidID,
		domain.ErrInvalidEmail,
		domain.ErrInvalidStatus,
		domain.ErrInvalidPriority,
		domain.ErrEmptyName,
		domain.ErrNameTooLong,
		domain.ErrEmptyEmail,
		domain.ErrPasswordTooShort,
		domain.ErrPasswordTooLong,
		domain.ErrEmptyHashedPassword,
		domain.ErrEmptyCategoryTitle,
		domain.ErrCategoryTitleTooLong,
		domain.ErrEmptyTaskTitle,
		domain.ErrTaskTitleTooLong,
	} {
		if errors.Is(err, sentinel) {
			return true
		}
	}
	return false
}

// GetSafeErrorMessage returns a sanitized, user-facing error message for the
// error type. Internal detail never leaves the server.
func GetSafeErrorMessage(err error) string {
	if err == nil {
		return "Server error"
	}

	switch {
	case errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrExpiredToken),
		errors.Is(err, auth.ErrTokenNotYetValid),
		errors.Is(err, auth.ErrMissingToken),
		errors.Is(err, auth.ErrRevokedToken),
		errors.Is(err, auth.ErrRefreshExpired):
		return "Unauthenticated"

	case errors.Is(err, domain.ErrUnauthorized):
		return "Forbidden"

	case store.IsNotFoundError(err):
		return "Resource not found"

	case errors.Is(err, domain.ErrValidation),
		isDomainEntityError(err),
		errors.Is(err, store.ErrInvalidEntity),
		errors.Is(err, store.ErrDuplicate):
		return "Validation failed"

	default:
		return "Server error"
	}
}

// HandleAPIError translates an internal error into the standard error
// response. Validation errors render the per-field 422 body; everything
// else goes through the status and safe-message mapping, with the raw error
// logged server-side.
func HandleAPIError(w http.ResponseWriter, r *http.Request, err error) {
	var verrs *domain.ValidationErrors
	if errors.As(err, &verrs) {
		shared.RespondWithValidationErrors(w, r, verrs.ByField())
		return
	}

	status := MapErrorToStatusCode(err)
	shared.RespondWithErrorAndLog(w, r, status, GetSafeErrorMessage(err), err)
}

// NotFoundHandler is chi's fallback for unknown routes.
func NotFoundHandler(w http.ResponseWriter, r *http.Request) {
	shared.RespondWithError(w, r, http.StatusNotFound, "Endpoint not found")
}

// MethodNotAllowedHandler is chi's fallback for known routes hit with the
// wrong method.
func MethodNotAllowedHandler(w http.ResponseWriter, r *http.Request) {
	shared.RespondWithError(w, r, http.StatusMethodNotAllowed, "Method not allowed")
}

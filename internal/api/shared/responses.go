package shared

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"

	"github.com/tmarchetti/taskvault-api/internal/redact"
)

// ErrorResponse defines the standard error response structure.
type ErrorResponse struct {
	Error   string              `json:"error"`
	Errors  map[string][]string `json:"errors,omitempty"`
	TraceID string              `json:"trace_id,omitempty"`
}

// DataResponse wraps a single resource in the {data: ...} envelope.
type DataResponse struct {
	Data any `json:"data"`
}

// MessageResponse carries a human-readable confirmation with no resource
// payload, such as the logout acknowledgement.
type MessageResponse struct {
	Message string `json:"message"`
}

// PaginationLinks are the navigation URLs of a paginated listing.
type PaginationLinks struct {
	First string  `json:"first"`
	Last  string  `json:"last"`
	Prev  *string `json:"prev"`
	Next  *string `json:"next"`
}

// PaginationMeta describes the position of a page within its result set.
type PaginationMeta struct {
	CurrentPage int   `json:"current_page"`
	LastPage    int   `json:"last_page"`
	PerPage     int   `json:"per_page"`
	Total       int64 `json:"total"`
}

// PaginatedResponse wraps a page of resources in the
// {data, links, meta} envelope.
type PaginatedResponse struct {
	Data  any             `json:"data"`
	Links PaginationLinks `json:"links"`
	Meta  PaginationMeta  `json:"meta"`
}

// NewPaginatedResponse builds the pagination envelope for one page of data.
// The links reuse the request's path and query, varying only the page
// parameter, so applied filters survive navigation.
func NewPaginatedResponse(requestURL *url.URL, data any, page, lastPage, perPage int, total int64) PaginatedResponse {
	pageURL := func(p int) string {
		q := requestURL.Query()
		q.Set("page", strconv.Itoa(p))
		return requestURL.Path + "?" + q.Encode()
	}

	links := PaginationLinks{
		First: pageURL(1),
		Last:  pageURL(lastPage),
	}
	if page > 1 {
		prev := pageURL(page - 1)
		links.Prev = &prev
	}
	if page < lastPage {
		next := pageURL(page + 1)
		links.Next = &next
	}

	return PaginatedResponse{
		Data:  data,
		Links: links,
		Meta: PaginationMeta{
			CurrentPage: page,
			LastPage:    lastPage,
			PerPage:     perPage,
			Total:       total,
		},
	}
}

// RespondWithJSON writes a JSON response with the given status code and data.
func RespondWithJSON(w http.ResponseWriter, r *http.Request, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(data); err != nil {
		slog.Error("failed to encode JSON response", "error", err)
	}
}

// RespondWithError writes a JSON error response with the given status code
// and message, tagging it with the request's trace ID when available.
func RespondWithError(w http.ResponseWriter, r *http.Request, status int, message string) {
	traceID := GetTraceID(r.Context())

	slog.Debug("sending error response",
		"status_code", status,
		"message", message,
		"trace_id", traceID,
		"path", r.URL.Path,
		"method", r.Method)

	RespondWithJSON(w, r, status, ErrorResponse{
		Error:   message,
		TraceID: traceID,
	})
}

// RespondWithErrorAndLog writes a sanitized JSON error response and logs the
// full error server-side. The raw error never reaches the client.
// 5xx responses log at ERROR, everything else at DEBUG.
func RespondWithErrorAndLog(
	w http.ResponseWriter,
	r *http.Request,
	status int,
	userMessage string,
	err error,
) {
	traceID := GetTraceID(r.Context())

	logAttrs := []slog.Attr{
		slog.String("trace_id", traceID),
		slog.String("path", r.URL.Path),
		slog.String("method", r.Method),
		slog.Int("status_code", status),
		slog.String("user_message", userMessage),
	}
	if err != nil {
		logAttrs = append(logAttrs,
			slog.String("error", redact.String(err.Error())),
			slog.String("error_type", fmt.Sprintf("%T", err)))
	}

	logLevel := slog.LevelDebug
	if status >= http.StatusInternalServerError {
		logLevel = slog.LevelError
	}
	slog.LogAttrs(r.Context(), logLevel, "API error response", logAttrs...)

	RespondWithJSON(w, r, status, ErrorResponse{
		Error:   userMessage,
		TraceID: traceID,
	})
}

// RespondWithValidationErrors writes the 422 response enumerating every
// failing field and its messages.
func RespondWithValidationErrors(w http.ResponseWriter, r *http.Request, fields map[string][]string) {
	RespondWithJSON(w, r, http.StatusUnprocessableEntity, ErrorResponse{
		Error:   "Validation failed",
		Errors:  fields,
		TraceID: GetTraceID(r.Context()),
	})
}

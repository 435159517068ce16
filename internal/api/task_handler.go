package api

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"

	"github.com/tmarchetti/taskvault-api/internal/api/shared"
	"github.com/tmarchetti/taskvault-api/internal/domain"
	"github.com/tmarchetti/taskvault-api/internal/store"
)

// maxSearchLength caps the search criterion so arbitrarily long input never
// reaches the query layer.
const maxSearchLength = 200

// TaskHandler handles the task CRUD and listing endpoints. As with
// categories, every operation is scoped to the authenticated user.
type TaskHandler struct {
	taskStore     store.TaskStore
	categoryStore store.CategoryStore
	validate      *validator.Validate
}

// NewTaskHandler creates a new TaskHandler.
func NewTaskHandler(taskStore store.TaskStore, categoryStore store.CategoryStore) *TaskHandler {
	return &TaskHandler{
		taskStore:     taskStore,
		categoryStore: categoryStore,
		validate:      newValidator(),
	}
}

// parseTaskFilter builds a TaskFilter from list query parameters,
// accumulating a field error for every criterion that fails validation.
// Criteria are independent: a bad status does not stop priority from being
// checked, so the 422 body reports everything wrong at once.
func (h *TaskHandler) parseTaskFilter(ctx context.Context, query url.Values) (store.TaskFilter, *domain.ValidationErrors, error) {
	var filter store.TaskFilter
	verrs := domain.NewValidationErrors()

	if raw := query.Get("search"); raw != "" {
		if utf8.RuneCountInString(raw) > maxSearchLength {
			verrs.Add("search", "must be at most 200 characters")
		} else {
			filter.Search = &raw
		}
	}

	if raw := query.Get("status"); raw != "" {
		status, err := domain.ParseTaskStatus(raw)
		if err != nil {
			verrs.Add("status", "must be one of: pending, done, cancel")
		} else {
			filter.Status = &status
		}
	}

	if raw := query.Get("priority"); raw != "" {
		priority, err := domain.ParseTaskPriority(raw)
		if err != nil {
			verrs.Add("priority", "must be one of: low, medium, high")
		} else {
			filter.Priority = &priority
		}
	}

	if raw := query.Get("category"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || id <= 0 {
			verrs.Add("category", "is invalid")
		} else {
			// Existence only. Filtering by another user's category is
			// valid input that matches nothing, because the owner anchor
			// already excludes every task it could label.
			exists, existsErr := h.categoryStore.Exists(ctx, id)
			switch {
			case existsErr != nil:
				return store.TaskFilter{}, nil, existsErr
			case !exists:
				verrs.Add("category", "is invalid")
			default:
				filter.CategoryID = &id
			}
		}
	}

	if verrs.HasErrors() {
		return store.TaskFilter{}, verrs, nil
	}
	return filter, nil, nil
}

// parsePage reads the page query parameter, defaulting anything absent or
// malformed to the first page.
func parsePage(query url.Values) int {
	raw := query.Get("page")
	page, err := strconv.Atoi(raw)
	if err != nil || page < 1 {
		return 1
	}
	return page
}

// List handles GET /api/tasks.
// Returns one page of the authenticated user's tasks matching the query
// criteria, newest first, in the paginated envelope.
func (h *TaskHandler) List(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	claims, ok := currentClaims(r)
	if !ok {
		shared.RespondWithError(w, r, http.StatusUnauthorized, "Unauthenticated")
		return
	}

	query := r.URL.Query()
	filter, verrs, err := h.parseTaskFilter(ctx, query)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}
	if verrs != nil {
		shared.RespondWithValidationErrors(w, r, verrs.ByField())
		return
	}

	page, err := h.taskStore.List(ctx, claims.UserID, filter, parsePage(query))
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}

	resp := shared.NewPaginatedResponse(
		r.URL,
		NewTaskResponses(page.Tasks),
		page.Page,
		page.LastPage(),
		store.TaskPageSize,
		page.Total,
	)
	shared.RespondWithJSON(w, r, http.StatusOK, resp)
}

// applyTaskRequest copies the present payload fields onto a task, resolving
// the optional enum strings and verifying that any referenced category
// belongs to the requesting user. Fields absent from the payload are no-ops,
// so a partial update keeps the task's stored values. A category owned by
// someone else produces the same field error as one that does not exist.
func (h *TaskHandler) applyTaskRequest(ctx context.Context, ownerID int64, task *domain.Task, req *TaskRequest) (*domain.ValidationErrors, error) {
	task.Title = strings.TrimSpace(req.Title)
	if req.Description != nil {
		task.Description = req.Description
	}
	if req.Deadline != nil {
		task.Deadline = req.Deadline
	}

	if req.Priority != "" {
		priority, err := domain.ParseTaskPriority(req.Priority)
		if err != nil {
			verrs := domain.NewValidationErrors()
			verrs.Add("priority", "must be one of: low, medium, high")
			return verrs, nil
		}
		task.Priority = priority
	}

	if req.Status != "" {
		status, err := domain.ParseTaskStatus(req.Status)
		if err != nil {
			verrs := domain.NewValidationErrors()
			verrs.Add("status", "must be one of: pending, done, cancel")
			return verrs, nil
		}
		task.Status = status
	}

	if req.CategoryID != nil {
		_, err := h.categoryStore.GetForOwner(ctx, ownerID, *req.CategoryID)
		if err != nil {
			if store.IsNotFoundError(err) {
				verrs := domain.NewValidationErrors()
				verrs.Add("category_id", "is invalid")
				return verrs, nil
			}
			return nil, err
		}
		task.CategoryID = req.CategoryID
	}

	return nil, nil
}

// Create handles POST /api/tasks.
func (h *TaskHandler) Create(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	claims, ok := currentClaims(r)
	if !ok {
		shared.RespondWithError(w, r, http.StatusUnauthorized, "Unauthenticated")
		return
	}

	var req TaskRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request body")
		return
	}
	if verrs := checkRequest(h.validate, &req); verrs != nil {
		shared.RespondWithValidationErrors(w, r, verrs.ByField())
		return
	}

	task, err := domain.NewTask(claims.UserID, req.Title)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}

	verrs, err := h.applyTaskRequest(ctx, claims.UserID, task, &req)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}
	if verrs != nil {
		shared.RespondWithValidationErrors(w, r, verrs.ByField())
		return
	}

	if err := task.Validate(); err != nil {
		HandleAPIError(w, r, err)
		return
	}

	if err := h.taskStore.Create(ctx, task); err != nil {
		HandleAPIError(w, r, err)
		return
	}

	created, err := h.taskStore.GetForOwner(ctx, claims.UserID, task.ID)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusCreated, shared.DataResponse{Data: NewTaskResponse(created)})
}

// Get handles GET /api/tasks/{id}.
func (h *TaskHandler) Get(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	claims, ok := currentClaims(r)
	if !ok {
		shared.RespondWithError(w, r, http.StatusUnauthorized, "Unauthenticated")
		return
	}

	id, ok := pathID(r, "id")
	if !ok {
		shared.RespondWithError(w, r, http.StatusNotFound, "Resource not found")
		return
	}

	task, err := h.taskStore.GetForOwner(ctx, claims.UserID, id)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, shared.DataResponse{Data: NewTaskResponse(task)})
}

// Update handles PUT /api/tasks/{id}.
// Applies the request payload over the task's current state; optional fields
// omitted from the payload keep their stored values.
func (h *TaskHandler) Update(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	claims, ok := currentClaims(r)
	if !ok {
		shared.RespondWithError(w, r, http.StatusUnauthorized, "Unauthenticated")
		return
	}

	id, ok := pathID(r, "id")
	if !ok {
		shared.RespondWithError(w, r, http.StatusNotFound, "Resource not found")
		return
	}

	// Ownership check before anything touches the payload, so a foreign
	// task ID 404s even when the payload itself is also questionable.
	task, err := h.taskStore.GetForOwner(ctx, claims.UserID, id)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}

	var req TaskRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request body")
		return
	}
	if verrs := checkRequest(h.validate, &req); verrs != nil {
		shared.RespondWithValidationErrors(w, r, verrs.ByField())
		return
	}

	verrs, err := h.applyTaskRequest(ctx, claims.UserID, task, &req)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}
	if verrs != nil {
		shared.RespondWithValidationErrors(w, r, verrs.ByField())
		return
	}

	if err := task.Validate(); err != nil {
		HandleAPIError(w, r, err)
		return
	}

	updated, err := h.taskStore.Update(ctx, task)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, shared.DataResponse{Data: NewTaskResponse(updated)})
}

// Delete handles DELETE /api/tasks/{id}.
func (h *TaskHandler) Delete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	claims, ok := currentClaims(r)
	if !ok {
		shared.RespondWithError(w, r, http.StatusUnauthorized, "Unauthenticated")
		return
	}

	id, ok := pathID(r, "id")
	if !ok {
		shared.RespondWithError(w, r, http.StatusNotFound, "Resource not found")
		return
	}

	if err := h.taskStore.Delete(ctx, claims.UserID, id); err != nil {
		HandleAPIError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusNoContent, nil)
}

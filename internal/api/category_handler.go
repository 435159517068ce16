package api

import (
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/tmarchetti/taskvault-api/internal/api/shared"
	"github.com/tmarchetti/taskvault-api/internal/domain"
	"github.com/tmarchetti/taskvault-api/internal/store"
)

// CategoryHandler handles the category CRUD endpoints. Every operation is
// scoped to the authenticated user; a category belonging to someone else is
// indistinguishable from one that does not exist.
type CategoryHandler struct {
	categoryStore store.CategoryStore
	validate      *validator.Validate
}

// NewCategoryHandler creates a new CategoryHandler.
func NewCategoryHandler(categoryStore store.CategoryStore) *CategoryHandler {
	return &CategoryHandler{
		categoryStore: categoryStore,
		validate:      newValidator(),
	}
}

// List handles GET /api/categories.
// Returns all of the authenticated user's categories, oldest first.
// Categories are not paginated; a personal list stays small.
func (h *CategoryHandler) List(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	claims, ok := currentClaims(r)
	if !ok {
		shared.RespondWithError(w, r, http.StatusUnauthorized, "Unauthenticated")
		return
	}

	categories, err := h.categoryStore.ListByOwner(ctx, claims.UserID)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, shared.DataResponse{Data: NewCategoryResponses(categories)})
}

// Create handles POST /api/categories.
func (h *CategoryHandler) Create(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	claims, ok := currentClaims(r)
	if !ok {
		shared.RespondWithError(w, r, http.StatusUnauthorized, "Unauthenticated")
		return
	}

	var req CategoryRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request body")
		return
	}
	if verrs := checkRequest(h.validate, &req); verrs != nil {
		shared.RespondWithValidationErrors(w, r, verrs.ByField())
		return
	}

	category, err := domain.NewCategory(claims.UserID, req.Title)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}

	if err := h.categoryStore.Create(ctx, category); err != nil {
		HandleAPIError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusCreated, shared.DataResponse{Data: NewCategoryResponse(category)})
}

// Get handles GET /api/categories/{id}.
func (h *CategoryHandler) Get(w http.ResponseWriter, r *http.Request) {
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

	category, err := h.categoryStore.GetForOwner(ctx, claims.UserID, id)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, shared.DataResponse{Data: NewCategoryResponse(category)})
}

// Update handles PUT /api/categories/{id}.
func (h *CategoryHandler) Update(w http.ResponseWriter, r *http.Request) {
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

	// Resolve the category before validating the payload, so a foreign or
	// unknown ID 404s regardless of what the request body contains.
	if _, err := h.categoryStore.GetForOwner(ctx, claims.UserID, id); err != nil {
		HandleAPIError(w, r, err)
		return
	}

	var req CategoryRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request body")
		return
	}
	if verrs := checkRequest(h.validate, &req); verrs != nil {
		shared.RespondWithValidationErrors(w, r, verrs.ByField())
		return
	}

	category, err := h.categoryStore.Update(ctx, claims.UserID, id, req.Title)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, shared.DataResponse{Data: NewCategoryResponse(category)})
}

// Delete handles DELETE /api/categories/{id}.
// Tasks referencing the deleted category keep existing with their category
// cleared; the schema handles that, not this layer.
func (h *CategoryHandler) Delete(w http.ResponseWriter, r *http.Request) {
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

	if err := h.categoryStore.Delete(ctx, claims.UserID, id); err != nil {
		HandleAPIError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusNoContent, nil)
}

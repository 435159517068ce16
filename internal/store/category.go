package store

import (
	"context"

	"github.com/tmarchetti/taskvault-api/internal/domain"
)

// CategoryStore defines owner-scoped persistence for categories.
//
// Every method that reads or mutates an existing category takes the owner's
// user ID and narrows the query to rows owned by that user before anything
// else. A lookup that misses because the category belongs to someone else is
// reported exactly like a lookup that misses because the ID never existed:
// ErrCategoryNotFound.
type CategoryStore interface {
	// Create saves a new category and fills in the generated ID.
	Create(ctx context.Context, category *domain.Category) error

	// ListByOwner returns all categories owned by the given user,
	// oldest first.
	ListByOwner(ctx context.Context, ownerID int64) ([]domain.Category, error)

	// GetForOwner retrieves one of the owner's categories by ID.
	// Returns ErrCategoryNotFound if no such category exists in the
	// owner's scope.
	GetForOwner(ctx context.Context, ownerID, id int64) (*domain.Category, error)

	// Update changes the title of one of the owner's categories.
	// Returns ErrCategoryNotFound if no such category exists in the
	// owner's scope.
	Update(ctx context.Context, ownerID, id int64, title string) (*domain.Category, error)

	// Delete removes one of the owner's categories. Tasks referencing it
	// survive with their category reference cleared (schema-level
	// ON DELETE SET NULL).
	// Returns ErrCategoryNotFound if no such category exists in the
	// owner's scope.
	Delete(ctx context.Context, ownerID, id int64) error

	// Exists reports whether a category with the given ID exists at all,
	// regardless of owner. Used only for filter-input validation.
	Exists(ctx context.Context, id int64) (bool, error)
}

package store

import (
	"context"

	"github.com/tmarchetti/taskvault-api/internal/domain"
)

// TaskPageSize is the fixed number of tasks per list page.
const TaskPageSize = 20

// TaskFilter holds the optional, independently applicable criteria for
// listing tasks. A nil field means "no constraint from this criterion";
// present criteria combine with logical AND. The owner anchor is not part of
// the filter because it is never optional: List always scopes to its ownerID
// argument first.
//
// Enum values and category existence are validated at the API boundary
// before a filter is built; the store assumes pre-validated input.
type TaskFilter struct {
	// Search matches task titles case-insensitively by substring.
	Search *string

	// Status matches tasks with exactly this status.
	Status *domain.TaskStatus

	// Priority matches tasks with exactly this priority.
	Priority *domain.TaskPriority

	// CategoryID matches tasks assigned to exactly this category.
	CategoryID *int64
}

// TaskPage is one page of an owner's filtered task list.
type TaskPage struct {
	Tasks []domain.Task

	// Total is the number of tasks matching the filter across all pages.
	Total int64

	// Page is the 1-based page number this result represents.
	Page int
}

// LastPage returns the highest valid page number for this result set.
// An empty result set still has one (empty) page.
func (p *TaskPage) LastPage() int {
	last := int((p.Total + TaskPageSize - 1) / TaskPageSize)
	if last < 1 {
		last = 1
	}
	return last
}

// TaskStore defines owner-scoped persistence for tasks.
//
// As with CategoryStore, every read and mutation of an existing task narrows
// to rows owned by the given user before applying anything else, and misses
// inside that scope surface as ErrTaskNotFound regardless of whether the row
// exists for another user.
type TaskStore interface {
	// Create saves a new task and fills in the generated ID.
	Create(ctx context.Context, task *domain.Task) error

	// List returns one page of the owner's tasks matching the filter,
	// newest-created first, with each task's category (if any) eagerly
	// attached in the same query. Pages are numbered from 1 and hold
	// TaskPageSize entries.
	List(ctx context.Context, ownerID int64, filter TaskFilter, page int) (*TaskPage, error)

	// GetForOwner retrieves one of the owner's tasks by ID, with its
	// category eagerly attached.
	// Returns ErrTaskNotFound if no such task exists in the owner's scope.
	GetForOwner(ctx context.Context, ownerID, id int64) (*domain.Task, error)

	// Update overwrites the mutable fields of one of the owner's tasks
	// (title, description, deadline, priority, status, category) and
	// returns the updated row with its category attached.
	// Returns ErrTaskNotFound if no such task exists in the owner's scope.
	Update(ctx context.Context, task *domain.Task) (*domain.Task, error)

	// Delete removes one of the owner's tasks.
	// Returns ErrTaskNotFound if no such task exists in the owner's scope.
	Delete(ctx context.Context, ownerID, id int64) error
}

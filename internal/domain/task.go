package domain

import (
	"errors"
	"time"
	"unicode/utf8"
)

// TaskStatus is the closed set of lifecycle states a task can be in.
type TaskStatus string

// Valid task statuses.
const (
	TaskStatusPending TaskStatus = "pending"
	TaskStatusDone    TaskStatus = "done"
	TaskStatusCancel  TaskStatus = "cancel"
)

// Valid reports whether the status is one of the known values.
func (s TaskStatus) Valid() bool {
	switch s {
	case TaskStatusPending, TaskStatusDone, TaskStatusCancel:
		return true
	}
	return false
}

// ParseTaskStatus converts a wire value into a TaskStatus.
// Returns ErrInvalidStatus for unknown values.
func ParseTaskStatus(s string) (TaskStatus, error) {
	status := TaskStatus(s)
	if !status.Valid() {
		return "", ErrInvalidStatus
	}
	return status, nil
}

// TaskPriority is the closed set of priorities a task can carry.
type TaskPriority string

// Valid task priorities.
const (
	TaskPriorityLow    TaskPriority = "low"
	TaskPriorityMedium TaskPriority = "medium"
	TaskPriorityHigh   TaskPriority = "high"
)

// Valid reports whether the priority is one of the known values.
func (p TaskPriority) Valid() bool {
	switch p {
	case TaskPriorityLow, TaskPriorityMedium, TaskPriorityHigh:
		return true
	}
	return false
}

// ParseTaskPriority converts a wire value into a TaskPriority.
// Returns ErrInvalidPriority for unknown values.
func ParseTaskPriority(s string) (TaskPriority, error) {
	priority := TaskPriority(s)
	if !priority.Valid() {
		return "", ErrInvalidPriority
	}
	return priority, nil
}

// Task-specific validation errors.
var (
	ErrEmptyTaskTitle   = errors.New("task title cannot be empty")
	ErrTaskTitleTooLong = errors.New("task title must be at most 255 characters long")
)

// Task is a single to-do item. Every task belongs to exactly one user; the
// category reference is optional and, when set, must point at a category
// owned by the same user. That cross-entity rule is enforced at request
// validation time, not by a storage constraint.
type Task struct {
	ID          int64        `json:"id"`
	UserID      int64        `json:"user_id"`
	Title       string       `json:"title"`
	Description *string      `json:"description"`
	Deadline    *time.Time   `json:"deadline"`
	Priority    TaskPriority `json:"priority"`
	Status      TaskStatus   `json:"status"`
	CategoryID  *int64       `json:"category_id"`
	CreatedAt   time.Time    `json:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at"`

	// Category is the eagerly loaded category row, when CategoryID is set
	// and the query asked for it. Nil otherwise.
	Category *Category `json:"category,omitempty"`
}

// NewTask creates a Task owned by the given user with defaults applied
// (priority low, status pending) and sets the creation/update timestamps.
// Returns an error if validation fails.
func NewTask(userID int64, title string) (*Task, error) {
	now := time.Now().UTC()
	task := &Task{
		UserID:    userID,
		Title:     title,
		Priority:  TaskPriorityLow,
		Status:    TaskStatusPending,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := task.Validate(); err != nil {
		return nil, err
	}

	return task, nil
}

// Validate checks if the Task has valid data.
func (t *Task) Validate() error {
	if t.UserID <= 0 {
		return ErrInvalidID
	}
	if t.Title == "" {
		return ErrEmptyTaskTitle
	}
	if utf8.RuneCountInString(t.Title) > 255 {
		return ErrTaskTitleTooLong
	}
	if !t.Status.Valid() {
		return ErrInvalidStatus
	}
	if !t.Priority.Valid() {
		return ErrInvalidPriority
	}
	if t.CategoryID != nil && *t.CategoryID <= 0 {
		return ErrInvalidID
	}
	return nil
}

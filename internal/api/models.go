package api

import (
	"time"

	"github.com/tmarchetti/taskvault-api/internal/domain"
)

// Request payloads

// RegisterRequest defines the payload for the user registration endpoint.
type RegisterRequest struct {
	Name                 string `json:"name"                  validate:"required,max=255"`
	Email                string `json:"email"                 validate:"required,email,max=255"`
	Password             string `json:"password"              validate:"required,min=8,max=72"`
	PasswordConfirmation string `json:"password_confirmation" validate:"required,eqfield=Password"`
}

// LoginRequest defines the payload for the user login endpoint.
type LoginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// CategoryRequest defines the payload for category create and update.
type CategoryRequest struct {
	Title string `json:"title" validate:"required,max=255"`
}

// TaskRequest defines the payload for task create and update. Every field
// but the title is optional on the wire; absent fields are not applied, so
// a new task gets the domain defaults (low, pending) and an update leaves
// the stored values alone.
type TaskRequest struct {
	Title       string     `json:"title"       validate:"required,max=255"`
	Description *string    `json:"description" validate:"omitempty"`
	Deadline    *time.Time `json:"deadline"    validate:"omitempty"`
	Priority    string     `json:"priority"    validate:"omitempty,oneof=low medium high"`
	Status      string     `json:"status"      validate:"omitempty,oneof=pending done cancel"`
	CategoryID  *int64     `json:"category_id" validate:"omitempty,gt=0"`
}

// Response shapes. These are the only representations that cross the wire;
// internal fields such as password hashes and owner IDs never appear here.

// UserResponse is the wire representation of a user.
type UserResponse struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

// TokenResponse is the envelope returned by register, login, and refresh.
type TokenResponse struct {
	AccessToken string        `json:"access_token"`
	TokenType   string        `json:"token_type"`
	ExpiresIn   int64         `json:"expires_in"`
	User        *UserResponse `json:"user"`
}

// CategoryResponse is the wire representation of a category.
type CategoryResponse struct {
	ID        int64     `json:"id"`
	Title     string    `json:"title"`
	CreatedAt time.Time `json:"created_at"`
}

// TaskCategoryResponse is the nested category summary inside a task.
type TaskCategoryResponse struct {
	ID    int64  `json:"id"`
	Title string `json:"title"`
}

// TaskResponse is the wire representation of a task.
type TaskResponse struct {
	ID          int64                 `json:"id"`
	Title       string                `json:"title"`
	Description *string               `json:"description"`
	Deadline    *time.Time            `json:"deadline"`
	Priority    domain.TaskPriority   `json:"priority"`
	Status      domain.TaskStatus     `json:"status"`
	Category    *TaskCategoryResponse `json:"category"`
}

// NewUserResponse maps a domain user to its wire representation.
func NewUserResponse(u *domain.User) *UserResponse {
	return &UserResponse{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		CreatedAt: u.CreatedAt,
	}
}

// NewCategoryResponse maps a domain category to its wire representation.
func NewCategoryResponse(c *domain.Category) CategoryResponse {
	return CategoryResponse{
		ID:        c.ID,
		Title:     c.Title,
		CreatedAt: c.CreatedAt,
	}
}

// NewCategoryResponses maps a slice of domain categories.
func NewCategoryResponses(categories []domain.Category) []CategoryResponse {
	out := make([]CategoryResponse, 0, len(categories))
	for i := range categories {
		out = append(out, NewCategoryResponse(&categories[i]))
	}
	return out
}

// NewTaskResponse maps a domain task, with its eagerly loaded category when
// present, to the wire representation.
func NewTaskResponse(t *domain.Task) TaskResponse {
	resp := TaskResponse{
		ID:          t.ID,
		Title:       t.Title,
		Description: t.Description,
		Deadline:    t.Deadline,
		Priority:    t.Priority,
		Status:      t.Status,
	}
	if t.Category != nil {
		resp.Category = &TaskCategoryResponse{
			ID:    t.Category.ID,
			Title: t.Category.Title,
		}
	}
	return resp
}

// NewTaskResponses maps a slice of domain tasks.
func NewTaskResponses(tasks []domain.Task) []TaskResponse {
	out := make([]TaskResponse, 0, len(tasks))
	for i := range tasks {
		out = append(out, NewTaskResponse(&tasks[i]))
	}
	return out
}

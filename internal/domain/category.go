package domain

import (
	"errors"
	"time"
	"unicode/utf8"
)

// Category-specific validation errors.
var (
	ErrEmptyCategoryTitle   = errors.New("category title cannot be empty")
	ErrCategoryTitleTooLong = errors.New("category title must be at most 255 characters long")
)

// Category groups a user's tasks. Categories belong to exactly one user and a
// task may optionally reference one of its owner's categories. Deleting a
// category orphans its tasks (their category reference is cleared) rather
// than deleting them.
type Category struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"user_id"`
	Title     string    `json:"title"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewCategory creates a Category owned by the given user and sets the
// creation/update timestamps. Returns an error if validation fails.
func NewCategory(userID int64, title string) (*Category, error) {
	now := time.Now().UTC()
	category := &Category{
		UserID:    userID,
		Title:     title,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := category.Validate(); err != nil {
		return nil, err
	}

	return category, nil
}

// Validate checks if the Category has valid data.
func (c *Category) Validate() error {
	if c.UserID <= 0 {
		return ErrInvalidID
	}
	if c.Title == "" {
		return ErrEmptyCategoryTitle
	}
	if utf8.RuneCountInString(c.Title) > 255 {
		return ErrCategoryTitleTooLong
	}
	return nil
}

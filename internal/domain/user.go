package domain

import (
	"errors"
	"net/mail"
	"time"
	"unicode/utf8"
)

// User-specific validation errors.
var (
	ErrEmptyName           = errors.New("name cannot be empty")
	ErrNameTooLong         = errors.New("name must be at most 255 characters long")
	ErrEmptyEmail          = errors.New("email cannot be empty")
	ErrPasswordTooShort    = errors.New("password must be at least 8 characters long")
	ErrPasswordTooLong     = errors.New("password must be at most 72 characters long")
	ErrEmptyHashedPassword = errors.New("hashed password cannot be empty")
)

// User represents a registered account. Each user owns their categories and
// tasks exclusively; nothing about another user's data is ever visible to them.
type User struct {
	ID             int64     `json:"id"`
	Name           string    `json:"name"`
	Email          string    `json:"email"`
	HashedPassword string    `json:"-"` // Never expose the password hash in JSON
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// NewUser creates a User with the given name, email and an already-hashed
// password, and sets the creation/update timestamps. The caller is responsible
// for hashing the password before constructing the user; plaintext passwords
// never reach this type.
func NewUser(name, email, hashedPassword string) (*User, error) {
	now := time.Now().UTC()
	user := &User{
		Name:           name,
		Email:          email,
		HashedPassword: hashedPassword,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if err := user.Validate(); err != nil {
		return nil, err
	}

	return user, nil
}

// Validate checks if the User has valid data.
// Returns an error if any field fails validation.
func (u *User) Validate() error {
	if u.Name == "" {
		return ErrEmptyName
	}
	if utf8.RuneCountInString(u.Name) > 255 {
		return ErrNameTooLong
	}
	if u.Email == "" {
		return ErrEmptyEmail
	}
	if !ValidEmail(u.Email) {
		return ErrInvalidEmail
	}
	if u.HashedPassword == "" {
		return ErrEmptyHashedPassword
	}
	return nil
}

// ValidEmail reports whether the address parses as an RFC 5322 address.
func ValidEmail(email string) bool {
	addr, err := mail.ParseAddress(email)
	return err == nil && addr.Address == email
}

// ValidPassword reports whether a plaintext password meets the length
// requirements. The upper bound is bcrypt's practical input limit.
func ValidPassword(password string) bool {
	return len(password) >= 8 && len(password) <= 72
}

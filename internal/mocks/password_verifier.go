package mocks

import "github.com/tmarchetti/taskvault-api/internal/service/auth"

// MockPasswordHasher implements auth.PasswordHasher and auth.PasswordVerifier
// for testing.
type MockPasswordHasher struct {
	HashFn    func(password string) (string, error)
	CompareFn func(hashedPassword, password string) error

	// Defaults used when functions aren't set
	Hashed     string
	HashErr    error
	CompareErr error
}

var (
	_ auth.PasswordHasher   = (*MockPasswordHasher)(nil)
	_ auth.PasswordVerifier = (*MockPasswordHasher)(nil)
)

func (m *MockPasswordHasher) Hash(password string) (string, error) {
	if m.HashFn != nil {
		return m.HashFn(password)
	}
	return m.Hashed, m.HashErr
}

func (m *MockPasswordHasher) Compare(hashedPassword, password string) error {
	if m.CompareFn != nil {
		return m.CompareFn(hashedPassword, password)
	}
	return m.CompareErr
}

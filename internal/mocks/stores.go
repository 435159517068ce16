package mocks

import (
	"context"
	"time"

	"github.com/tmarchetti/taskvault-api/internal/domain"
	"github.com/tmarchetti/taskvault-api/internal/store"
)

// MockUserStore implements store.UserStore for testing.
type MockUserStore struct {
	CreateFn     func(ctx context.Context, user *domain.User) error
	GetByIDFn    func(ctx context.Context, id int64) (*domain.User, error)
	GetByEmailFn func(ctx context.Context, email string) (*domain.User, error)

	// Defaults used when functions aren't set
	User *domain.User
	Err  error
}

var _ store.UserStore = (*MockUserStore)(nil)

func (m *MockUserStore) Create(ctx context.Context, user *domain.User) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, user)
	}
	return m.Err
}

func (m *MockUserStore) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}
	return m.User, m.Err
}

func (m *MockUserStore) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	if m.GetByEmailFn != nil {
		return m.GetByEmailFn(ctx, email)
	}
	return m.User, m.Err
}

// MockCategoryStore implements store.CategoryStore for testing.
type MockCategoryStore struct {
	CreateFn      func(ctx context.Context, category *domain.Category) error
	ListByOwnerFn func(ctx context.Context, ownerID int64) ([]domain.Category, error)
	GetForOwnerFn func(ctx context.Context, ownerID, id int64) (*domain.Category, error)
	UpdateFn      func(ctx context.Context, ownerID, id int64, title string) (*domain.Category, error)
	DeleteFn      func(ctx context.Context, ownerID, id int64) error
	ExistsFn      func(ctx context.Context, id int64) (bool, error)

	// Defaults used when functions aren't set
	Category   *domain.Category
	Categories []domain.Category
	Found      bool
	Err        error
}

var _ store.CategoryStore = (*MockCategoryStore)(nil)

func (m *MockCategoryStore) Create(ctx context.Context, category *domain.Category) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, category)
	}
	return m.Err
}

func (m *MockCategoryStore) ListByOwner(ctx context.Context, ownerID int64) ([]domain.Category, error) {
	if m.ListByOwnerFn != nil {
		return m.ListByOwnerFn(ctx, ownerID)
	}
	return m.Categories, m.Err
}

func (m *MockCategoryStore) GetForOwner(ctx context.Context, ownerID, id int64) (*domain.Category, error) {
	if m.GetForOwnerFn != nil {
		return m.GetForOwnerFn(ctx, ownerID, id)
	}
	return m.Category, m.Err
}

func (m *MockCategoryStore) Update(ctx context.Context, ownerID, id int64, title string) (*domain.Category, error) {
	if m.UpdateFn != nil {
		return m.UpdateFn(ctx, ownerID, id, title)
	}
	return m.Category, m.Err
}

func (m *MockCategoryStore) Delete(ctx context.Context, ownerID, id int64) error {
	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, ownerID, id)
	}
	return m.Err
}

func (m *MockCategoryStore) Exists(ctx context.Context, id int64) (bool, error) {
	if m.ExistsFn != nil {
		return m.ExistsFn(ctx, id)
	}
	return m.Found, m.Err
}

// MockTaskStore implements store.TaskStore for testing.
type MockTaskStore struct {
	CreateFn      func(ctx context.Context, task *domain.Task) error
	ListFn        func(ctx context.Context, ownerID int64, filter store.TaskFilter, page int) (*store.TaskPage, error)
	GetForOwnerFn func(ctx context.Context, ownerID, id int64) (*domain.Task, error)
	UpdateFn      func(ctx context.Context, task *domain.Task) (*domain.Task, error)
	DeleteFn      func(ctx context.Context, ownerID, id int64) error

	// Defaults used when functions aren't set
	Task *domain.Task
	Page *store.TaskPage
	Err  error
}

var _ store.TaskStore = (*MockTaskStore)(nil)

func (m *MockTaskStore) Create(ctx context.Context, task *domain.Task) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, task)
	}
	return m.Err
}

func (m *MockTaskStore) List(ctx context.Context, ownerID int64, filter store.TaskFilter, page int) (*store.TaskPage, error) {
	if m.ListFn != nil {
		return m.ListFn(ctx, ownerID, filter, page)
	}
	return m.Page, m.Err
}

func (m *MockTaskStore) GetForOwner(ctx context.Context, ownerID, id int64) (*domain.Task, error) {
	if m.GetForOwnerFn != nil {
		return m.GetForOwnerFn(ctx, ownerID, id)
	}
	return m.Task, m.Err
}

func (m *MockTaskStore) Update(ctx context.Context, task *domain.Task) (*domain.Task, error) {
	if m.UpdateFn != nil {
		return m.UpdateFn(ctx, task)
	}
	return m.Task, m.Err
}

func (m *MockTaskStore) Delete(ctx context.Context, ownerID, id int64) error {
	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, ownerID, id)
	}
	return m.Err
}

// MockTokenStore implements store.TokenStore for testing.
type MockTokenStore struct {
	RevokeFn       func(ctx context.Context, tokenID string, expiresAt time.Time) error
	IsRevokedFn    func(ctx context.Context, tokenID string) (bool, error)
	PurgeExpiredFn func(ctx context.Context, cutoff time.Time) (int64, error)

	// Defaults used when functions aren't set
	Revoked bool
	Err     error
}

var _ store.TokenStore = (*MockTokenStore)(nil)

func (m *MockTokenStore) Revoke(ctx context.Context, tokenID string, expiresAt time.Time) error {
	if m.RevokeFn != nil {
		return m.RevokeFn(ctx, tokenID, expiresAt)
	}
	return m.Err
}

func (m *MockTokenStore) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	if m.IsRevokedFn != nil {
		return m.IsRevokedFn(ctx, tokenID)
	}
	return m.Revoked, m.Err
}

func (m *MockTokenStore) PurgeExpired(ctx context.Context, cutoff time.Time) (int64, error) {
	if m.PurgeExpiredFn != nil {
		return m.PurgeExpiredFn(ctx, cutoff)
	}
	return 0, m.Err
}

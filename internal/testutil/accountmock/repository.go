package accountmock

import (
	"context"

	domain "coop-ledger-backend/internal/domain/account"
)

// Ensure compile-time compliance
var _ domain.Repository = (*Repo)(nil)

// Repo is a function-backed mock that satisfies domain.Repository.
// The zero value resolves every account, which is what most tests want.
type Repo struct {
	CreateFn         func(ctx context.Context, a *domain.Account) error
	GetByAccountIDFn func(ctx context.Context, accountID string) (*domain.Account, error)
	ListFn           func(ctx context.Context) ([]domain.Account, error)
}

func (m *Repo) Create(ctx context.Context, a *domain.Account) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, a)
	}
	return nil
}

func (m *Repo) GetByAccountID(ctx context.Context, accountID string) (*domain.Account, error) {
	if m.GetByAccountIDFn != nil {
		return m.GetByAccountIDFn(ctx, accountID)
	}
	return &domain.Account{AccountID: accountID, Name: "mock account"}, nil
}

func (m *Repo) List(ctx context.Context) ([]domain.Account, error) {
	if m.ListFn != nil {
		return m.ListFn(ctx)
	}
	return nil, nil
}

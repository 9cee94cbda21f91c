package loantxnmock

import (
	"context"
	"errors"

	domain "coop-ledger-backend/internal/domain/loantxn"
)

// Ensure compile-time compliance
var _ domain.Repository = (*Repo)(nil)

var errUnimplemented = errors.New("loantxnmock: method not implemented")

// Repo is a function-backed mock that satisfies domain.Repository.
// Fill in the function fields a test needs; unfilled ones fail loudly.
type Repo struct {
	CreateFn                      func(ctx context.Context, t *domain.LoanTransaction) error
	SaveFn                        func(ctx context.Context, t *domain.LoanTransaction) error
	GetByIDFn                     func(ctx context.Context, id uint64) (*domain.LoanTransaction, error)
	GetByTransactionIDFn          func(ctx context.Context, transactionID string) (*domain.LoanTransaction, error)
	GetByTransactionIDForUpdateFn func(ctx context.Context, transactionID string) (*domain.LoanTransaction, error)
	AddEntryFn                    func(ctx context.Context, e *domain.Entry) error
	SaveEntryFn                   func(ctx context.Context, e *domain.Entry) error
	DeleteEntryFn                 func(ctx context.Context, e *domain.Entry) error
	GetEntryByEntryIDFn           func(ctx context.Context, entryID string) (*domain.Entry, error)
	DeleteSystemEntriesFn         func(ctx context.Context, loanTransactionID uint64) error
}

func (m *Repo) Create(ctx context.Context, t *domain.LoanTransaction) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, t)
	}
	return nil
}

func (m *Repo) Save(ctx context.Context, t *domain.LoanTransaction) error {
	if m.SaveFn != nil {
		return m.SaveFn(ctx, t)
	}
	return nil
}

func (m *Repo) GetByID(ctx context.Context, id uint64) (*domain.LoanTransaction, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}
	return nil, errUnimplemented
}

func (m *Repo) GetByTransactionID(ctx context.Context, transactionID string) (*domain.LoanTransaction, error) {
	if m.GetByTransactionIDFn != nil {
		return m.GetByTransactionIDFn(ctx, transactionID)
	}
	return nil, errUnimplemented
}

func (m *Repo) GetByTransactionIDForUpdate(ctx context.Context, transactionID string) (*domain.LoanTransaction, error) {
	if m.GetByTransactionIDForUpdateFn != nil {
		return m.GetByTransactionIDForUpdateFn(ctx, transactionID)
	}
	return nil, errUnimplemented
}

func (m *Repo) AddEntry(ctx context.Context, e *domain.Entry) error {
	if m.AddEntryFn != nil {
		return m.AddEntryFn(ctx, e)
	}
	return nil
}

func (m *Repo) SaveEntry(ctx context.Context, e *domain.Entry) error {
	if m.SaveEntryFn != nil {
		return m.SaveEntryFn(ctx, e)
	}
	return nil
}

func (m *Repo) DeleteEntry(ctx context.Context, e *domain.Entry) error {
	if m.DeleteEntryFn != nil {
		return m.DeleteEntryFn(ctx, e)
	}
	return nil
}

func (m *Repo) GetEntryByEntryID(ctx context.Context, entryID string) (*domain.Entry, error) {
	if m.GetEntryByEntryIDFn != nil {
		return m.GetEntryByEntryIDFn(ctx, entryID)
	}
	return nil, errUnimplemented
}

func (m *Repo) DeleteSystemEntries(ctx context.Context, loanTransactionID uint64) error {
	if m.DeleteSystemEntriesFn != nil {
		return m.DeleteSystemEntriesFn(ctx, loanTransactionID)
	}
	return nil
}

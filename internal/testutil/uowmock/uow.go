package uowmock

import (
	"context"
	"errors"

	"coop-ledger-backend/internal/domain/loantxn"
	"coop-ledger-backend/internal/domain/uow"
)

// Ensure compile-time compliance
var _ uow.UnitOfWork = (*UoW)(nil)

var errUnimplemented = errors.New("uowmock: method not implemented")

// UoW is a function-backed mock that satisfies uow.UnitOfWork.
// Fill in the function fields you need in a test; unfilled ones return errUnimplemented.
type UoW struct {
	WithinTxFn                func(ctx context.Context, fn func(r uow.Repos) error) error
	WithinLoanTransactionTxFn func(ctx context.Context, transactionID string, fn func(r uow.Repos, t *loantxn.LoanTransaction) error) error
}

func New() *UoW { return &UoW{} }

// Passthrough wires both tx methods straight through to the given repos
// with no transactional behavior, looking transactions up by id via the
// repo itself. Handy default for usecase tests.
func Passthrough(r uow.Repos) *UoW {
	return &UoW{
		WithinTxFn: func(ctx context.Context, fn func(r uow.Repos) error) error {
			return fn(r)
		},
		WithinLoanTransactionTxFn: func(ctx context.Context, transactionID string, fn func(r uow.Repos, t *loantxn.LoanTransaction) error) error {
			t, err := r.Transactions.GetByTransactionIDForUpdate(ctx, transactionID)
			if err != nil {
				return err
			}
			return fn(r, t)
		},
	}
}

func (m *UoW) Reset() { *m = UoW{} }

// Methods implementing UnitOfWork
func (m *UoW) WithinTx(ctx context.Context, fn func(r uow.Repos) error) error {
	if m.WithinTxFn != nil {
		return m.WithinTxFn(ctx, fn)
	}
	return errUnimplemented
}

func (m *UoW) WithinLoanTransactionTx(ctx context.Context, transactionID string, fn func(r uow.Repos, t *loantxn.LoanTransaction) error) error {
	if m.WithinLoanTransactionTxFn != nil {
		return m.WithinLoanTransactionTxFn(ctx, transactionID, fn)
	}
	return errUnimplemented
}

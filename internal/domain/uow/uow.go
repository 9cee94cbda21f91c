package uow

import (
	"context"

	"coop-ledger-backend/internal/domain/account"
	"coop-ledger-backend/internal/domain/loantxn"
)

type Repos struct {
	Transactions loantxn.Repository
	Accounts     account.Repository
}

type UnitOfWork interface {
	// plain tx
	WithinTx(ctx context.Context, fn func(r Repos) error) error
	// convenience: lock the loan transaction row first, then pass it in
	WithinLoanTransactionTx(ctx context.Context, transactionID string, fn func(r Repos, t *loantxn.LoanTransaction) error) error
}

package mysql

import (
	"context"

	"coop-ledger-backend/internal/domain/loantxn"
	"coop-ledger-backend/internal/domain/uow"

	"gorm.io/gorm"
)

type GormUoW struct{ db *gorm.DB }

func NewGormUoW(db *gorm.DB) *GormUoW { return &GormUoW{db: db} }

func (u *GormUoW) repos(tx *gorm.DB) uow.Repos {
	return uow.Repos{
		Transactions: &LoanTransactionRepository{db: tx},
		Accounts:     &AccountRepository{db: tx},
	}
}

func (u *GormUoW) WithinTx(ctx context.Context, fn func(r uow.Repos) error) error {
	return u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(u.repos(tx))
	})
}

func (u *GormUoW) WithinLoanTransactionTx(ctx context.Context, transactionID string, fn func(r uow.Repos, t *loantxn.LoanTransaction) error) error {
	return u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		r := u.repos(tx)
		// lock the transaction row up-front to prevent races
		t, err := r.Transactions.GetByTransactionIDForUpdate(ctx, transactionID)
		if err != nil {
			return err
		}
		return fn(r, t)
	})
}

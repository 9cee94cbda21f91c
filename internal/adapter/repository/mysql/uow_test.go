package mysql

import (
	"context"
	"errors"
	"testing"

	accountDomain "coop-ledger-backend/internal/domain/account"
	txnDomain "coop-ledger-backend/internal/domain/loantxn"
	"coop-ledger-backend/internal/domain/uow"
	"coop-ledger-backend/pkg/id"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// openUowTestDB migrates all tables, so the UoW can orchestrate both repos.
func openUowTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(&loanTransactionSQLite{}, &txnDomain.Entry{}, &accountDomain.Account{}); err != nil {
		t.Fatalf("auto-migrate: %v", err)
	}
	return db
}

func TestGormUoW_WithinTx_Commit(t *testing.T) {
	db := openUowTestDB(t)
	ctx := context.Background()

	guow := NewGormUoW(db)
	txnRepo := NewLoanTransactionRepository(db)
	acctRepo := NewAccountRepository(db)

	txnID := id.NewID32()
	acctID := id.NewID32()
	err := guow.WithinTx(ctx, func(r uow.Repos) error {
		if err := r.Accounts.Create(ctx, &accountDomain.Account{
			AccountID: acctID,
			Name:      "Cash on Hand",
			Kind:      accountDomain.KindCash,
		}); err != nil {
			return err
		}
		return r.Transactions.Create(ctx, makeTxn(txnID))
	})
	if err != nil {
		t.Fatalf("WithinTx commit err: %v", err)
	}

	// Verify post-commit visibility
	if _, err := txnRepo.GetByTransactionID(ctx, txnID); err != nil {
		t.Fatalf("transaction not visible after commit: %v", err)
	}
	if _, err := acctRepo.GetByAccountID(ctx, acctID); err != nil {
		t.Fatalf("account not visible after commit: %v", err)
	}
}

func TestGormUoW_WithinTx_Rollback(t *testing.T) {
	db := openUowTestDB(t)
	ctx := context.Background()

	guow := NewGormUoW(db)
	txnRepo := NewLoanTransactionRepository(db)
	acctRepo := NewAccountRepository(db)

	sentinel := errors.New("boom")
	txnID := id.NewID32()
	acctID := id.NewID32()

	_ = guow.WithinTx(ctx, func(r uow.Repos) error {
		if err := r.Accounts.Create(ctx, &accountDomain.Account{
			AccountID: acctID,
			Name:      "Cash on Hand",
			Kind:      accountDomain.KindCash,
		}); err != nil {
			return err
		}
		if err := r.Transactions.Create(ctx, makeTxn(txnID)); err != nil {
			return err
		}
		return sentinel // force rollback
	})

	// None should exist after rollback
	if _, err := txnRepo.GetByTransactionID(ctx, txnID); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("expected transaction not found after rollback, got %v", err)
	}
	if _, err := acctRepo.GetByAccountID(ctx, acctID); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("expected account not found after rollback, got %v", err)
	}
}

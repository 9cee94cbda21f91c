package mysql

import (
	"context"
	"errors"
	"testing"
	"time"

	txnDomain "coop-ledger-backend/internal/domain/loantxn"
	"coop-ledger-backend/pkg/id"

	"github.com/shopspring/decimal"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// --- SQLite-friendly schema only for tests (no ENUM) ---

type loanTransactionSQLite struct {
	ID            uint64          `gorm:"primaryKey;column:id"`
	TransactionID string          `gorm:"size:32;column:transaction_id"`
	LoanType      string          `gorm:"type:text;column:loan_type"` // ← no enum
	ModeOfPayment string          `gorm:"size:16;column:mode_of_payment"`
	Terms         int             `gorm:"column:terms"`
	AccountID     string          `gorm:"size:32;column:account_id"`
	Principal     decimal.Decimal `gorm:"column:principal"`
	PrintedDate   *time.Time      `gorm:"column:printed_date"`
	ApprovedDate  *time.Time      `gorm:"column:approved_date"`
	ReleasedDate  *time.Time      `gorm:"column:released_date"`
	TotalDebit    decimal.Decimal `gorm:"column:total_debit"`
	TotalCredit   decimal.Decimal `gorm:"column:total_credit"`
	TotalAddOn    decimal.Decimal `gorm:"column:total_add_on"`
	CreatedAt     time.Time       `gorm:"column:created_at"`
	UpdatedAt     time.Time       `gorm:"column:updated_at"`
	DeletedAt     gorm.DeletedAt  `gorm:"column:deleted_at"`
}

func (loanTransactionSQLite) TableName() string { return "loan_transactions" }

// openTestDB creates an in-memory sqlite DB and migrates the sqlite-safe
// transaction schema plus the entry table, which carries no enum.
func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	// IMPORTANT: migrate the sqlite-safe model, NOT the domain model.
	if err := db.AutoMigrate(&loanTransactionSQLite{}, &txnDomain.Entry{}); err != nil {
		t.Fatalf("auto-migrate: %v", err)
	}
	return db
}

func makeTxn(transactionID string) *txnDomain.LoanTransaction {
	return &txnDomain.LoanTransaction{
		TransactionID: transactionID,
		LoanType:      txnDomain.TypeStandard,
		ModeOfPayment: "monthly",
		Terms:         12,
		AccountID:     "dddddddddddddddddddddddddddddddd",
		Principal:     decimal.NewFromInt(1000),
	}
}

func makeEntry(parentID uint64, position int, typ txnDomain.EntryType) *txnDomain.Entry {
	return &txnDomain.Entry{
		EntryID:           id.NewID32(),
		LoanTransactionID: parentID,
		Position:          position,
		Type:              typ,
		Credit:            decimal.NewFromInt(100),
		AccountID:         "cccccccccccccccccccccccccccccccc",
	}
}

func TestCreateAndGetByTransactionID(t *testing.T) {
	db := openTestDB(t)
	repo := NewLoanTransactionRepository(db)
	ctx := context.Background()

	txnID := id.NewID32()
	txn := makeTxn(txnID)
	txn.Entries = []txnDomain.Entry{
		{EntryID: id.NewID32(), Position: 0, Type: txnDomain.EntryStatic, Credit: decimal.NewFromInt(1000), AccountID: "cccccccccccccccccccccccccccccccc"},
		{EntryID: id.NewID32(), Position: 1, Type: txnDomain.EntryStatic, Debit: decimal.NewFromInt(1000), AccountID: "dddddddddddddddddddddddddddddddd"},
	}

	if err := repo.Create(ctx, txn); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if txn.ID == 0 {
		t.Fatalf("Create did not set auto-increment ID")
	}

	got, err := repo.GetByTransactionID(ctx, txnID)
	if err != nil {
		t.Fatalf("GetByTransactionID: %v", err)
	}
	if got.TransactionID != txnID || len(got.Entries) != 2 {
		t.Fatalf("unexpected transaction: %+v", got)
	}
	if got.Entries[0].Position != 0 || got.Entries[1].Position != 1 {
		t.Errorf("entries not ordered by position: %+v", got.Entries)
	}
}

func TestGetByTransactionID_NotFound(t *testing.T) {
	db := openTestDB(t)
	repo := NewLoanTransactionRepository(db)

	_, err := repo.GetByTransactionID(context.Background(), "eeeeeeeeeeeeeeeeeeeeeeeeeeeeeeee")
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("expected ErrRecordNotFound, got %v", err)
	}
}

func TestSave_DoesNotUpsertEntries(t *testing.T) {
	db := openTestDB(t)
	repo := NewLoanTransactionRepository(db)
	ctx := context.Background()

	txnID := id.NewID32()
	txn := makeTxn(txnID)
	if err := repo.Create(ctx, txn); err != nil {
		t.Fatalf("Create: %v", err)
	}

	// stale in-memory entry must not be written by an aggregate save
	txn.Entries = []txnDomain.Entry{*makeEntry(txn.ID, 0, txnDomain.EntryStatic)}
	txn.Terms = 24
	if err := repo.Save(ctx, txn); err != nil {
		t.Fatalf("Save: %v", err)
	}

	got, err := repo.GetByTransactionID(ctx, txnID)
	if err != nil {
		t.Fatalf("GetByTransactionID: %v", err)
	}
	if got.Terms != 24 {
		t.Errorf("Terms not updated, got=%d", got.Terms)
	}
	if len(got.Entries) != 0 {
		t.Errorf("Save wrote association rows: %+v", got.Entries)
	}
}

func TestEntryLifecycle(t *testing.T) {
	db := openTestDB(t)
	repo := NewLoanTransactionRepository(db)
	ctx := context.Background()

	txn := makeTxn(id.NewID32())
	if err := repo.Create(ctx, txn); err != nil {
		t.Fatalf("Create: %v", err)
	}

	e := makeEntry(txn.ID, 2, txnDomain.EntryDeduction)
	if err := repo.AddEntry(ctx, e); err != nil {
		t.Fatalf("AddEntry: %v", err)
	}
	if e.ID == 0 {
		t.Fatalf("AddEntry did not set auto-increment ID")
	}

	e.Credit = decimal.NewFromInt(250)
	if err := repo.SaveEntry(ctx, e); err != nil {
		t.Fatalf("SaveEntry: %v", err)
	}

	got, err := repo.GetEntryByEntryID(ctx, e.EntryID)
	if err != nil {
		t.Fatalf("GetEntryByEntryID: %v", err)
	}
	if !got.Credit.Equal(decimal.NewFromInt(250)) {
		t.Errorf("Credit not updated, got=%s", got.Credit)
	}

	if err := repo.DeleteEntry(ctx, got); err != nil {
		t.Fatalf("DeleteEntry: %v", err)
	}
	if _, err := repo.GetEntryByEntryID(ctx, e.EntryID); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("expected not found after delete, got %v", err)
	}
}

func TestDeleteSystemEntries_KeepsDeductions(t *testing.T) {
	db := openTestDB(t)
	repo := NewLoanTransactionRepository(db)
	ctx := context.Background()

	txn := makeTxn(id.NewID32())
	if err := repo.Create(ctx, txn); err != nil {
		t.Fatalf("Create: %v", err)
	}

	for i, typ := range []txnDomain.EntryType{
		txnDomain.EntryStatic,
		txnDomain.EntryStatic,
		txnDomain.EntryPrevious,
		txnDomain.EntryDeduction,
		txnDomain.EntryAutomaticDeduction,
	} {
		if err := repo.AddEntry(ctx, makeEntry(txn.ID, i, typ)); err != nil {
			t.Fatalf("AddEntry %d: %v", i, err)
		}
	}

	if err := repo.DeleteSystemEntries(ctx, txn.ID); err != nil {
		t.Fatalf("DeleteSystemEntries: %v", err)
	}

	got, err := repo.GetByID(ctx, txn.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if len(got.Entries) != 2 {
		t.Fatalf("entries after wipe = %d, want the 2 deductions", len(got.Entries))
	}
	for _, e := range got.Entries {
		if e.Type == txnDomain.EntryStatic || e.Type == txnDomain.EntryPrevious {
			t.Errorf("system entry survived: %+v", e)
		}
	}
}

func TestTx_Commit(t *testing.T) {
	db := openTestDB(t)
	repo := NewLoanTransactionRepository(db)
	ctx := context.Background()

	txnID := id.NewID32()
	err := repo.Tx(ctx, func(r txnDomain.Repository) error {
		return r.Create(ctx, makeTxn(txnID))
	})
	if err != nil {
		t.Fatalf("Tx commit: %v", err)
	}

	// Should be visible after commit
	if _, err := repo.GetByTransactionID(ctx, txnID); err != nil {
		t.Fatalf("GetByTransactionID after commit: %v", err)
	}
}

func TestTx_Rollback(t *testing.T) {
	db := openTestDB(t)
	repo := NewLoanTransactionRepository(db)
	ctx := context.Background()

	txnID := id.NewID32()
	wantErr := errors.New("boom")

	_ = repo.Tx(ctx, func(r txnDomain.Repository) error {
		if err := r.Create(ctx, makeTxn(txnID)); err != nil {
			return err
		}
		return wantErr // force rollback
	})

	// Should not exist after rollback
	_, err := repo.GetByTransactionID(ctx, txnID)
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("expected not found after rollback, got %v", err)
	}
}

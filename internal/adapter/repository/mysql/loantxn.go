package mysql

import (
	"context"

	txnDomain "coop-ledger-backend/internal/domain/loantxn"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type LoanTransactionRepository struct{ db *gorm.DB }

func NewLoanTransactionRepository(db *gorm.DB) *LoanTransactionRepository {
	return &LoanTransactionRepository{db: db}
}

// Tx runs fn in a db transaction, passing a repo bound to the tx
func (r *LoanTransactionRepository) Tx(ctx context.Context, fn func(repo txnDomain.Repository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&LoanTransactionRepository{db: tx})
	})
}

func (r *LoanTransactionRepository) Create(ctx context.Context, t *txnDomain.LoanTransaction) error {
	return r.db.WithContext(ctx).Create(t).Error
}

// Save persists the aggregate's own columns only; entries are written
// through the entry methods so totals and rows never upsert each other.
func (r *LoanTransactionRepository) Save(ctx context.Context, t *txnDomain.LoanTransaction) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Save(t).Error
}

func (r *LoanTransactionRepository) GetByID(ctx context.Context, id uint64) (*txnDomain.LoanTransaction, error) {
	var out txnDomain.LoanTransaction
	res := r.db.WithContext(ctx).
		Preload("Entries", func(db *gorm.DB) *gorm.DB { return db.Order("position ASC, id ASC") }).
		First(&out, id)
	return &out, res.Error
}

func (r *LoanTransactionRepository) GetByTransactionID(ctx context.Context, transactionID string) (*txnDomain.LoanTransaction, error) {
	var out txnDomain.LoanTransaction
	res := r.db.WithContext(ctx).
		Preload("Entries", func(db *gorm.DB) *gorm.DB { return db.Order("position ASC, id ASC") }).
		Where("transaction_id = ?", transactionID).
		First(&out)
	return &out, res.Error
}

func (r *LoanTransactionRepository) GetByTransactionIDForUpdate(ctx context.Context, transactionID string) (*txnDomain.LoanTransaction, error) {
	var out txnDomain.LoanTransaction
	res := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Preload("Entries", func(db *gorm.DB) *gorm.DB { return db.Order("position ASC, id ASC") }).
		Where("transaction_id = ?", transactionID).
		First(&out)
	return &out, res.Error
}

func (r *LoanTransactionRepository) AddEntry(ctx context.Context, e *txnDomain.Entry) error {
	return r.db.WithContext(ctx).Create(e).Error
}

func (r *LoanTransactionRepository) SaveEntry(ctx context.Context, e *txnDomain.Entry) error {
	return r.db.WithContext(ctx).Save(e).Error
}

func (r *LoanTransactionRepository) DeleteEntry(ctx context.Context, e *txnDomain.Entry) error {
	return r.db.WithContext(ctx).Delete(&txnDomain.Entry{}, e.ID).Error
}

func (r *LoanTransactionRepository) GetEntryByEntryID(ctx context.Context, entryID string) (*txnDomain.Entry, error) {
	var out txnDomain.Entry
	res := r.db.WithContext(ctx).Where("entry_id = ?", entryID).First(&out)
	return &out, res.Error
}

func (r *LoanTransactionRepository) DeleteSystemEntries(ctx context.Context, loanTransactionID uint64) error {
	return r.db.WithContext(ctx).
		Where("loan_transaction_id = ? AND type IN ?", loanTransactionID,
			[]txnDomain.EntryType{txnDomain.EntryStatic, txnDomain.EntryPrevious}).
		Delete(&txnDomain.Entry{}).Error
}

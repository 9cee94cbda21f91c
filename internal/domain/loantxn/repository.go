package loantxn

import "context"

type Repository interface {
	Create(ctx context.Context, t *LoanTransaction) error
	Save(ctx context.Context, t *LoanTransaction) error
	GetByID(ctx context.Context, id uint64) (*LoanTransaction, error)
	GetByTransactionID(ctx context.Context, transactionID string) (*LoanTransaction, error)
	// Row-locked variant for use inside a transaction.
	GetByTransactionIDForUpdate(ctx context.Context, transactionID string) (*LoanTransaction, error)

	AddEntry(ctx context.Context, e *Entry) error
	SaveEntry(ctx context.Context, e *Entry) error
	// DeleteEntry removes the row outright (plain deductions). Automatic
	// deductions are soft-deleted through SaveEntry instead.
	DeleteEntry(ctx context.Context, e *Entry) error
	GetEntryByEntryID(ctx context.Context, entryID string) (*Entry, error)
	// DeleteSystemEntries clears the server-seeded static/previous entries
	// ahead of a reseed (loan type or principal change).
	DeleteSystemEntries(ctx context.Context, loanTransactionID uint64) error
}

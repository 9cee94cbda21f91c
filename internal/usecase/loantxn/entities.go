package loantxn

import (
	"time"

	"github.com/shopspring/decimal"
)

type CreateInput struct {
	LoanType        string          `json:"loan_type"`
	ModeOfPayment   string          `json:"mode_of_payment"`
	Terms           int             `json:"terms"`
	AccountID       string          `json:"account_id"`
	CashAccountID   string          `json:"cash_account_id"`
	Principal       decimal.Decimal `json:"principal"`
	PreviousBalance decimal.Decimal `json:"previous_balance"`
}

type UpdateInput struct {
	ModeOfPayment string          `json:"mode_of_payment"`
	Terms         int             `json:"terms"`
	Principal     decimal.Decimal `json:"principal"`
}

type AddEntryInput struct {
	Type      string          `json:"type"`
	AccountID string          `json:"account_id"`
	Debit     decimal.Decimal `json:"debit"`
	Credit    decimal.Decimal `json:"credit"`
	IsAddOn   bool            `json:"is_add_on"`
}

type UpdateEntryInput struct {
	AccountID string          `json:"account_id"`
	Debit     decimal.Decimal `json:"debit"`
	Credit    decimal.Decimal `json:"credit"`
	IsAddOn   bool            `json:"is_add_on"`
}

// EntryDTO is one ledger line plus its derived capabilities, so the form
// layer can disable actions without re-deriving anything.
type EntryDTO struct {
	EntryID    string          `json:"entry_id"`
	Position   int             `json:"position"`
	Type       string          `json:"type"`
	IsAddOn    bool            `json:"is_add_on"`
	Debit      decimal.Decimal `json:"debit"`
	Credit     decimal.Decimal `json:"credit"`
	AccountID  string          `json:"account_id"`
	Deleted    bool            `json:"is_automatic_loan_deduction_deleted"`
	CanEdit    bool            `json:"can_edit"`
	CanRemove  bool            `json:"can_remove"`
	CanRestore bool            `json:"can_restore"`
}

// LoanTransactionDTO is the full aggregate every operation returns;
// callers replace, never merge.
type LoanTransactionDTO struct {
	TransactionID   string          `json:"transaction_id"`
	LoanType        string          `json:"loan_type"`
	ModeOfPayment   string          `json:"mode_of_payment"`
	Terms           int             `json:"terms"`
	AccountID       string          `json:"account_id"`
	Principal       decimal.Decimal `json:"principal"`
	PrintedDate     *time.Time      `json:"printed_date"`
	ApprovedDate    *time.Time      `json:"approved_date"`
	ReleasedDate    *time.Time      `json:"released_date"`
	Status          string          `json:"status"`
	ReadOnly        bool            `json:"read_only"`
	CanAddDeduction bool            `json:"can_add_deduction"`
	TotalDebit      decimal.Decimal `json:"total_debit"`
	TotalCredit     decimal.Decimal `json:"total_credit"`
	TotalAddOn      decimal.Decimal `json:"total_add_on"`
	DeductionsTotal decimal.Decimal `json:"deductions_total"`
	Difference      decimal.Decimal `json:"difference"`
	Balanced        bool            `json:"balanced"`
	Entries         []EntryDTO      `json:"entries"`
	CreatedAt       time.Time       `json:"created_at"`
}

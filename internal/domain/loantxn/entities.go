package loantxn

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type LoanType string

const (
	TypeStandard                LoanType = "standard"
	TypeRenewal                 LoanType = "renewal"
	TypeRenewalWithoutDeduction LoanType = "renewal-without-deduction"
	TypeRestructured            LoanType = "restructured"
)

func (t LoanType) Valid() bool {
	switch t {
	case TypeStandard, TypeRenewal, TypeRenewalWithoutDeduction, TypeRestructured:
		return true
	}
	return false
}

// SuppressesDeductions: this variant forbids adding deduction entries outright.
func (t LoanType) SuppressesDeductions() bool { return t == TypeRenewalWithoutDeduction }

// CarriesPreviousBalance: these variants seed a `previous` entry on creation.
func (t LoanType) CarriesPreviousBalance() bool {
	return t == TypeRenewal || t == TypeRestructured
}

type EntryType string

const (
	EntryStatic             EntryType = "static"
	EntryDeduction          EntryType = "deduction"
	EntryAutomaticDeduction EntryType = "automatic-deduction"
	EntryAddOn              EntryType = "add-on"
	EntryPrevious           EntryType = "previous"
)

// Status is derived from the milestone dates, never stored.
type Status string

const (
	StatusDraft    Status = "draft"
	StatusPrinted  Status = "printed"
	StatusApproved Status = "approved"
	StatusReleased Status = "released"
)

var (
	ErrNotFound             = errors.New("loan transaction not found")
	ErrEntryNotFound        = errors.New("entry not found")
	ErrReadOnly             = errors.New("loan transaction is read-only")
	ErrInvalidTransition    = errors.New("invalid milestone transition")
	ErrAlreadyPrinted       = errors.New("loan transaction already printed")
	ErrAlreadyApproved      = errors.New("loan transaction already approved")
	ErrAlreadyReleased      = errors.New("loan transaction already released")
	ErrNoCashEntry          = errors.New("cash account entry does not exist")
	ErrSameAccount          = errors.New("account is already the cash-equivalence account")
	ErrSameLoanType         = errors.New("loan type is unchanged")
	ErrNotEditable          = errors.New("entry is not editable")
	ErrNotRemovable         = errors.New("entry is not removable")
	ErrNotSoftDeleted       = errors.New("entry is not soft-deleted")
	ErrDeductionsSuppressed = errors.New("loan type does not allow deduction entries")
	ErrInvalidEntryType     = errors.New("entry type must be a deduction kind")
	ErrInvalidAmount        = errors.New("exactly one of debit or credit must be set")
	ErrNotConfirmed         = errors.New("operation was not confirmed")
)

type LoanTransaction struct {
	ID            uint64   `gorm:"primaryKey;column:id" json:"-"`
	TransactionID string   `gorm:"size:32;uniqueIndex:ux_loan_transactions_txn_id_active" json:"transaction_id"`
	LoanType      LoanType `gorm:"type:enum('standard','renewal','renewal-without-deduction','restructured');default:'standard'" json:"loan_type"`
	ModeOfPayment string   `gorm:"size:16" json:"mode_of_payment"`
	Terms         int      `gorm:"column:terms" json:"terms"`
	// AccountID is the loan's principal currency-bearing account (public hex32 id).
	AccountID string          `gorm:"size:32;index" json:"account_id"`
	Principal decimal.Decimal `gorm:"type:decimal(18,2)" json:"principal"`

	PrintedDate  *time.Time `gorm:"type:date" json:"printed_date"`
	ApprovedDate *time.Time `gorm:"type:date" json:"approved_date"`
	ReleasedDate *time.Time `gorm:"type:date" json:"released_date"`

	TotalDebit  decimal.Decimal `gorm:"type:decimal(18,2)" json:"total_debit"`
	TotalCredit decimal.Decimal `gorm:"type:decimal(18,2)" json:"total_credit"`
	TotalAddOn  decimal.Decimal `gorm:"type:decimal(18,2)" json:"total_add_on"`

	Entries []Entry `gorm:"foreignKey:LoanTransactionID;references:ID" json:"entries"`

	CreatedAt time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (LoanTransaction) TableName() string { return "loan_transactions" }

// Persisted reports whether the aggregate exists server-side yet.
// Entries cannot be mutated before the parent exists.
func (t *LoanTransaction) Persisted() bool { return t.ID != 0 }

// CashEntry returns the designated cash-equivalence entry (position 0), or nil.
func (t *LoanTransaction) CashEntry() *Entry {
	for i := range t.Entries {
		if t.Entries[i].Position == 0 {
			return &t.Entries[i]
		}
	}
	return nil
}

type Entry struct {
	ID                uint64 `gorm:"primaryKey;column:id" json:"-"`
	EntryID           string `gorm:"size:32;uniqueIndex:ux_entries_entry_id" json:"entry_id"`
	LoanTransactionID uint64 `gorm:"column:loan_transaction_id;index" json:"-"`
	// Position is display order; position 0 is the cash-equivalence entry.
	Position int             `gorm:"column:position" json:"position"`
	Type     EntryType       `gorm:"size:32" json:"type"`
	IsAddOn  bool            `gorm:"column:is_add_on" json:"is_add_on"`
	Debit    decimal.Decimal `gorm:"type:decimal(18,2)" json:"debit"`
	Credit   decimal.Decimal `gorm:"type:decimal(18,2)" json:"credit"`

	AccountID string `gorm:"size:32;index" json:"account_id"`

	// Soft-delete flag for automatic deductions; hidden rows stay in the set
	// until explicitly restored.
	IsAutomaticLoanDeductionDeleted bool `gorm:"column:is_automatic_loan_deduction_deleted" json:"is_automatic_loan_deduction_deleted"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Entry) TableName() string { return "loan_transaction_entries" }

// Amount is the entry's effective magnitude; debit and credit are mutually
// exclusive in practice, so the sum is safe either way.
func (e *Entry) Amount() decimal.Decimal { return e.Debit.Add(e.Credit) }

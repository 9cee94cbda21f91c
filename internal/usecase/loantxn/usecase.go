package loantxn

import (
	"context"
	"errors"
	"fmt"

	domainAccount "coop-ledger-backend/internal/domain/account"
	domain "coop-ledger-backend/internal/domain/loantxn"
	"coop-ledger-backend/internal/domain/uow"
	"coop-ledger-backend/pkg/id"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type Usecase struct {
	repo     domain.Repository
	accounts domainAccount.Repository
	uow      uow.UnitOfWork
	notify   Notifier
}

// NewUsecase: pass both repos and a UoW for tx flows. A nil notifier
// falls back to the standard logger.
func NewUsecase(txns domain.Repository, accounts domainAccount.Repository, tx uow.UnitOfWork, n Notifier) *Usecase {
	if n == nil {
		n = NewLogNotifier()
	}
	return &Usecase{repo: txns, accounts: accounts, uow: tx, notify: n}
}

// seedSystemEntries builds the server-generated entries for a loan type:
// position 0 is always the static cash-equivalence entry; renewal and
// restructured loans additionally carry the previous balance forward.
func seedSystemEntries(t *domain.LoanTransaction, cashAccountID string, previousBalance decimal.Decimal) []domain.Entry {
	entries := []domain.Entry{
		{
			EntryID:   id.NewID32(),
			Position:  0,
			Type:      domain.EntryStatic,
			Credit:    t.Principal,
			AccountID: cashAccountID,
		},
		{
			EntryID:   id.NewID32(),
			Position:  1,
			Type:      domain.EntryStatic,
			Debit:     t.Principal,
			AccountID: t.AccountID,
		},
	}
	if t.LoanType.CarriesPreviousBalance() {
		entries = append(entries, domain.Entry{
			EntryID:   id.NewID32(),
			Position:  2,
			Type:      domain.EntryPrevious,
			Credit:    previousBalance,
			AccountID: t.AccountID,
		})
	}
	return entries
}

func (u *Usecase) Create(ctx context.Context, in CreateInput) (*LoanTransactionDTO, error) {
	lt := domain.LoanType(in.LoanType)
	if !lt.Valid() {
		return nil, fmt.Errorf("unknown loan type %q", in.LoanType)
	}
	if in.Principal.LessThanOrEqual(decimal.Zero) {
		return nil, errors.New("principal must be positive")
	}
	if lt.CarriesPreviousBalance() && in.PreviousBalance.IsNegative() {
		return nil, errors.New("previous balance must not be negative")
	}

	if _, err := u.accounts.GetByAccountID(ctx, in.AccountID); err != nil {
		return nil, fmt.Errorf("principal account: %w", domainAccount.ErrNotFound)
	}
	if _, err := u.accounts.GetByAccountID(ctx, in.CashAccountID); err != nil {
		return nil, fmt.Errorf("cash account: %w", domainAccount.ErrNotFound)
	}

	t := &domain.LoanTransaction{
		TransactionID: id.NewID32(),
		LoanType:      lt,
		ModeOfPayment: in.ModeOfPayment,
		Terms:         in.Terms,
		AccountID:     in.AccountID,
		Principal:     in.Principal,
	}
	t.Entries = seedSystemEntries(t, in.CashAccountID, in.PreviousBalance)
	t.RecomputeTotals()

	if err := u.repo.Create(ctx, t); err != nil {
		return nil, err
	}
	return u.toDTO(t), nil
}

func (u *Usecase) Get(ctx context.Context, transactionID string) (*LoanTransactionDTO, error) {
	t, err := u.repo.GetByTransactionID(ctx, transactionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return u.toDTO(t), nil
}

// Update edits draft metadata. A principal change rewrites the seeded
// system entries so the cash and receivable lines keep matching it.
func (u *Usecase) Update(ctx context.Context, transactionID string, in UpdateInput) (*LoanTransactionDTO, error) {
	var dto *LoanTransactionDTO
	err := u.uow.WithinLoanTransactionTx(ctx, transactionID, func(r uow.Repos, t *domain.LoanTransaction) error {
		if t.ReadOnly(false) {
			return domain.ErrReadOnly
		}
		if in.Principal.LessThanOrEqual(decimal.Zero) {
			return errors.New("principal must be positive")
		}

		t.ModeOfPayment = in.ModeOfPayment
		t.Terms = in.Terms
		principalChanged := !t.Principal.Equal(in.Principal)
		t.Principal = in.Principal

		if principalChanged {
			if err := u.reseedSystemEntries(ctx, r, t, decimal.Zero); err != nil {
				return err
			}
		}
		t.RecomputeTotals()
		if err := r.Transactions.Save(ctx, t); err != nil {
			return err
		}
		dto = u.toDTO(t)
		return nil
	})
	if err != nil {
		return nil, mapNotFound(err)
	}
	return dto, nil
}

// reseedSystemEntries drops the static/previous entries and rebuilds them
// from the aggregate's current loan type and principal. The cash account
// and any carried previous balance are read off the old entries first; a
// positive previousBalance argument overrides the carried one. Deduction
// entries survive, renumbered behind the reseeded block so positions stay
// unique within the transaction.
func (u *Usecase) reseedSystemEntries(ctx context.Context, r uow.Repos, t *domain.LoanTransaction, previousBalance decimal.Decimal) error {
	cashAccountID := t.AccountID
	carried := decimal.Zero
	for i := range t.Entries {
		e := &t.Entries[i]
		switch {
		case e.Position == 0 && e.Type == domain.EntryStatic:
			cashAccountID = e.AccountID
		case e.Type == domain.EntryPrevious:
			carried = e.Credit
		}
	}
	if previousBalance.IsPositive() {
		carried = previousBalance
	}

	if err := r.Transactions.DeleteSystemEntries(ctx, t.ID); err != nil {
		return err
	}
	var kept []domain.Entry
	for _, e := range t.Entries {
		if e.Type == domain.EntryStatic || e.Type == domain.EntryPrevious {
			continue
		}
		kept = append(kept, e)
	}

	t.Entries = t.Entries[:0]
	for _, e := range seedSystemEntries(t, cashAccountID, carried) {
		e.LoanTransactionID = t.ID
		if err := r.Transactions.AddEntry(ctx, &e); err != nil {
			return err
		}
		t.Entries = append(t.Entries, e)
	}
	for _, e := range kept {
		if pos := len(t.Entries); e.Position != pos {
			e.Position = pos
			if err := r.Transactions.SaveEntry(ctx, &e); err != nil {
				return err
			}
		}
		t.Entries = append(t.Entries, e)
	}
	return nil
}

// AddEntry appends a user-created deduction entry.
func (u *Usecase) AddEntry(ctx context.Context, transactionID string, in AddEntryInput) (*LoanTransactionDTO, error) {
	et := domain.EntryType(in.Type)
	if !et.DeductionLike() {
		return nil, domain.ErrInvalidEntryType
	}
	if err := validateEntryAmounts(in.Debit, in.Credit); err != nil {
		return nil, err
	}

	var dto *LoanTransactionDTO
	err := u.uow.WithinLoanTransactionTx(ctx, transactionID, func(r uow.Repos, t *domain.LoanTransaction) error {
		if t.ReadOnly(false) {
			return domain.ErrReadOnly
		}
		if t.LoanType.SuppressesDeductions() {
			return domain.ErrDeductionsSuppressed
		}
		if _, err := r.Accounts.GetByAccountID(ctx, in.AccountID); err != nil {
			return domainAccount.ErrNotFound
		}

		e := domain.Entry{
			EntryID:           id.NewID32(),
			LoanTransactionID: t.ID,
			Position:          len(t.Entries),
			Type:              et,
			IsAddOn:           in.IsAddOn,
			Debit:             in.Debit,
			Credit:            in.Credit,
			AccountID:         in.AccountID,
		}
		if err := r.Transactions.AddEntry(ctx, &e); err != nil {
			return err
		}
		t.Entries = append(t.Entries, e)
		t.RecomputeTotals()
		if err := r.Transactions.Save(ctx, t); err != nil {
			return err
		}
		dto = u.toDTO(t)
		return nil
	})
	if err != nil {
		return nil, mapNotFound(err)
	}
	return dto, nil
}

// UpdateEntry edits a deduction entry in place.
func (u *Usecase) UpdateEntry(ctx context.Context, entryID string, in UpdateEntryInput) (*LoanTransactionDTO, error) {
	if err := validateEntryAmounts(in.Debit, in.Credit); err != nil {
		return nil, err
	}
	var dto *LoanTransactionDTO
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		e, t, err := loadEntryWithParent(ctx, r, entryID)
		if err != nil {
			return err
		}
		if !domain.CanEditEntry(e, t.Guard(false)) {
			if t.MutationsDisabled(false) {
				return domain.ErrReadOnly
			}
			return domain.ErrNotEditable
		}
		if _, err := r.Accounts.GetByAccountID(ctx, in.AccountID); err != nil {
			return domainAccount.ErrNotFound
		}

		e.AccountID = in.AccountID
		e.Debit = in.Debit
		e.Credit = in.Credit
		e.IsAddOn = in.IsAddOn
		if err := r.Transactions.SaveEntry(ctx, e); err != nil {
			return err
		}
		return u.finishEntryMutation(ctx, r, t, &dto)
	})
	if err != nil {
		return nil, mapNotFound(err)
	}
	return dto, nil
}

// RemoveEntry deletes a deduction entry. Plain deductions are removed
// outright; automatic deductions are soft-deleted and stay restorable.
func (u *Usecase) RemoveEntry(ctx context.Context, entryID string) (*LoanTransactionDTO, error) {
	var dto *LoanTransactionDTO
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		e, t, err := loadEntryWithParent(ctx, r, entryID)
		if err != nil {
			return err
		}
		if !domain.CanRemoveEntry(e, t.Guard(false)) {
			if t.MutationsDisabled(false) {
				return domain.ErrReadOnly
			}
			return domain.ErrNotRemovable
		}

		if e.Type == domain.EntryAutomaticDeduction {
			e.IsAutomaticLoanDeductionDeleted = true
			if err := r.Transactions.SaveEntry(ctx, e); err != nil {
				return err
			}
		} else {
			if err := r.Transactions.DeleteEntry(ctx, e); err != nil {
				return err
			}
		}
		return u.finishEntryMutation(ctx, r, t, &dto)
	})
	if err != nil {
		return nil, mapNotFound(err)
	}
	return dto, nil
}

// RestoreEntry brings back a soft-deleted automatic deduction. Restore is
// always reachable for a soft-deleted entry, regardless of the global
// disable conditions.
func (u *Usecase) RestoreEntry(ctx context.Context, entryID string) (*LoanTransactionDTO, error) {
	var dto *LoanTransactionDTO
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		e, t, err := loadEntryWithParent(ctx, r, entryID)
		if err != nil {
			return err
		}
		if !domain.CanRestoreEntry(e) {
			return domain.ErrNotSoftDeleted
		}

		e.IsAutomaticLoanDeductionDeleted = false
		if err := r.Transactions.SaveEntry(ctx, e); err != nil {
			return err
		}
		return u.finishEntryMutation(ctx, r, t, &dto)
	})
	if err != nil {
		return nil, mapNotFound(err)
	}
	return dto, nil
}

func loadEntryWithParent(ctx context.Context, r uow.Repos, entryID string) (*domain.Entry, *domain.LoanTransaction, error) {
	e, err := r.Transactions.GetEntryByEntryID(ctx, entryID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, domain.ErrEntryNotFound
		}
		return nil, nil, err
	}
	t, err := r.Transactions.GetByID(ctx, e.LoanTransactionID)
	if err != nil {
		return nil, nil, err
	}
	return e, t, nil
}

// finishEntryMutation reloads the aggregate so the DTO reflects the rows
// the storage actually holds, then stamps fresh totals.
func (u *Usecase) finishEntryMutation(ctx context.Context, r uow.Repos, t *domain.LoanTransaction, dto **LoanTransactionDTO) error {
	fresh, err := r.Transactions.GetByID(ctx, t.ID)
	if err != nil {
		return err
	}
	fresh.RecomputeTotals()
	if err := r.Transactions.Save(ctx, fresh); err != nil {
		return err
	}
	*dto = u.toDTO(fresh)
	return nil
}

// validateEntryAmounts enforces that exactly one of debit or credit
// carries the entry's magnitude.
func validateEntryAmounts(debit, credit decimal.Decimal) error {
	if debit.IsNegative() || credit.IsNegative() {
		return domain.ErrInvalidAmount
	}
	if debit.IsPositive() == credit.IsPositive() {
		return domain.ErrInvalidAmount
	}
	return nil
}

func mapNotFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.ErrNotFound
	}
	return err
}

func (u *Usecase) toDTO(t *domain.LoanTransaction) *LoanTransactionDTO {
	totals := domain.ComputeTotals(t.Entries)
	guard := t.Guard(false)

	entries := make([]EntryDTO, 0, len(t.Entries))
	for i := range t.Entries {
		e := &t.Entries[i]
		entries = append(entries, EntryDTO{
			EntryID:    e.EntryID,
			Position:   e.Position,
			Type:       string(e.Type),
			IsAddOn:    e.IsAddOn,
			Debit:      e.Debit,
			Credit:     e.Credit,
			AccountID:  e.AccountID,
			Deleted:    e.SoftDeleted(),
			CanEdit:    domain.CanEditEntry(e, guard),
			CanRemove:  domain.CanRemoveEntry(e, guard),
			CanRestore: domain.CanRestoreEntry(e),
		})
	}

	return &LoanTransactionDTO{
		TransactionID:   t.TransactionID,
		LoanType:        string(t.LoanType),
		ModeOfPayment:   t.ModeOfPayment,
		Terms:           t.Terms,
		AccountID:       t.AccountID,
		Principal:       t.Principal,
		PrintedDate:     t.PrintedDate,
		ApprovedDate:    t.ApprovedDate,
		ReleasedDate:    t.ReleasedDate,
		Status:          string(t.Status()),
		ReadOnly:        t.ReadOnly(false),
		CanAddDeduction: t.CanAddDeduction(false),
		TotalDebit:      totals.TotalDebit,
		TotalCredit:     totals.TotalCredit,
		TotalAddOn:      totals.TotalAddOn,
		DeductionsTotal: totals.DeductionsTotal,
		Difference:      totals.Difference,
		Balanced:        totals.Balanced,
		Entries:         entries,
		CreatedAt:       t.CreatedAt,
	}
}

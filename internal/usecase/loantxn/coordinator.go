package loantxn

import (
	"context"
	"errors"

	domainAccount "coop-ledger-backend/internal/domain/account"
	domain "coop-ledger-backend/internal/domain/loantxn"
	"coop-ledger-backend/internal/domain/uow"

	"github.com/shopspring/decimal"
)

// CoordinatorState tracks the cash-equivalence replacement flow. Every
// terminal outcome (applied, cancelled, any failure) lands back on Idle so
// a retry is always a fresh run from scratch.
type CoordinatorState int

const (
	StateIdle CoordinatorState = iota
	StateAccountSelected
	StateConfirmationPending
	StateApplied
	StateCancelled
)

func (s CoordinatorState) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateAccountSelected:
		return "account-selected"
	case StateConfirmationPending:
		return "confirmation-pending"
	case StateApplied:
		return "applied"
	case StateCancelled:
		return "cancelled"
	}
	return "unknown"
}

// Coordinator sequences the two structural mutations that must never be
// applied silently: replacing the cash-equivalence account and changing
// the loan type. One coordinator serves one operation; construct a fresh
// one per request.
type Coordinator struct {
	uc      *Usecase
	confirm ConfirmationPort
	state   CoordinatorState
}

func (u *Usecase) NewCoordinator(confirm ConfirmationPort) *Coordinator {
	return &Coordinator{uc: u, confirm: confirm, state: StateIdle}
}

func (c *Coordinator) State() CoordinatorState { return c.state }

// ChangeCashAccount replaces the cash-equivalence account on entry 0.
// Swapping it changes the computational basis for every downstream
// interest and fines figure, so the flow is staged: precondition checks
// before leaving Idle, a no-op guard before the confirmation, and an
// explicit confirmation before anything is written. Failures leave the
// aggregate untouched and the state on Idle.
func (c *Coordinator) ChangeCashAccount(ctx context.Context, transactionID, newAccountID string) (*LoanTransactionDTO, error) {
	u := c.uc
	c.state = StateIdle

	t, err := u.repo.GetByTransactionID(ctx, transactionID)
	if err != nil {
		return nil, mapNotFound(err)
	}
	if t.ReadOnly(false) {
		u.notify.Warnf("transaction %s is read-only, cash-equivalence account cannot change", transactionID)
		return nil, domain.ErrReadOnly
	}

	cash := t.CashEntry()
	if cash == nil || cash.Type != domain.EntryStatic {
		u.notify.Warnf("cash account entry does not exist on transaction %s", transactionID)
		return nil, domain.ErrNoCashEntry
	}
	if cash.AccountID == newAccountID {
		u.notify.Warnf("account %s is already the cash-equivalence account", newAccountID)
		return nil, domain.ErrSameAccount
	}
	newAcct, err := u.accounts.GetByAccountID(ctx, newAccountID)
	if err != nil {
		return nil, domainAccount.ErrNotFound
	}
	c.state = StateAccountSelected

	c.state = StateConfirmationPending
	ok, err := c.confirm.Confirm(ctx, Prompt{
		Title:       "Change cash-equivalence account",
		Description: "Replacing the cash account changes the basis for all computed interest and fines on this loan. Replace " + cash.AccountID + " with " + newAcct.AccountID + "?",
	})
	if err != nil {
		c.state = StateIdle
		u.notify.Errorf("confirmation failed: %v", err)
		return nil, err
	}
	if !ok {
		c.state = StateCancelled
		u.notify.Infof("cash-equivalence change cancelled for transaction %s", transactionID)
		c.state = StateIdle
		return nil, domain.ErrNotConfirmed
	}

	var dto *LoanTransactionDTO
	err = u.uow.WithinLoanTransactionTx(ctx, transactionID, func(r uow.Repos, locked *domain.LoanTransaction) error {
		// re-check under the row lock; the world may have moved
		if locked.ReadOnly(false) {
			return domain.ErrReadOnly
		}
		cash := locked.CashEntry()
		if cash == nil || cash.Type != domain.EntryStatic {
			return domain.ErrNoCashEntry
		}
		if cash.AccountID == newAccountID {
			return domain.ErrSameAccount
		}
		cash.AccountID = newAccountID
		if err := r.Transactions.SaveEntry(ctx, cash); err != nil {
			return err
		}
		locked.RecomputeTotals()
		if err := r.Transactions.Save(ctx, locked); err != nil {
			return err
		}
		dto = u.toDTO(locked)
		return nil
	})
	if err != nil {
		c.state = StateIdle
		u.notify.Errorf("cash-equivalence change failed for transaction %s: %v", transactionID, err)
		return nil, mapNotFound(err)
	}

	c.state = StateApplied
	u.notify.Infof("cash-equivalence account replaced on transaction %s", transactionID)
	return dto, nil
}

// ChangeLoanType is the simpler confirm-then-apply gate: one warning, one
// decision, then the type is persisted and the system entries reseeded.
// Deliberately not the same staged machine as the cash-equivalence flow;
// the two mutations have different blast radii and different timing.
// previousBalance seeds the carried-forward entry when switching to a
// type that carries one; pass zero to reuse whatever the old entries held.
func (c *Coordinator) ChangeLoanType(ctx context.Context, transactionID string, newType string, previousBalance decimal.Decimal) (*LoanTransactionDTO, error) {
	u := c.uc
	lt := domain.LoanType(newType)
	if !lt.Valid() {
		return nil, errors.New("unknown loan type " + newType)
	}
	if previousBalance.IsNegative() {
		return nil, errors.New("previous balance must not be negative")
	}

	t, err := u.repo.GetByTransactionID(ctx, transactionID)
	if err != nil {
		return nil, mapNotFound(err)
	}
	if t.ReadOnly(false) {
		return nil, domain.ErrReadOnly
	}
	if t.LoanType == lt {
		u.notify.Warnf("loan type of transaction %s is already %s", transactionID, newType)
		return nil, domain.ErrSameLoanType
	}

	ok, err := c.confirm.Confirm(ctx, Prompt{
		Title:       "Change loan type",
		Description: "This action will affect the loan entries. Continue?",
	})
	if err != nil {
		u.notify.Errorf("confirmation failed: %v", err)
		return nil, err
	}
	if !ok {
		u.notify.Infof("loan type change cancelled for transaction %s", transactionID)
		return nil, domain.ErrNotConfirmed
	}

	var dto *LoanTransactionDTO
	err = u.uow.WithinLoanTransactionTx(ctx, transactionID, func(r uow.Repos, locked *domain.LoanTransaction) error {
		if locked.ReadOnly(false) {
			return domain.ErrReadOnly
		}
		locked.LoanType = lt
		if err := u.reseedSystemEntries(ctx, r, locked, previousBalance); err != nil {
			return err
		}
		locked.RecomputeTotals()
		if err := r.Transactions.Save(ctx, locked); err != nil {
			return err
		}
		dto = u.toDTO(locked)
		return nil
	})
	if err != nil {
		u.notify.Errorf("loan type change failed for transaction %s: %v", transactionID, err)
		return nil, mapNotFound(err)
	}
	u.notify.Infof("loan type of transaction %s changed to %s", transactionID, newType)
	return dto, nil
}

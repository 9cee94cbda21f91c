package loantxn

import (
	"context"
	"time"

	domain "coop-ledger-backend/internal/domain/loantxn"
	"coop-ledger-backend/internal/domain/uow"
)

// Milestone workflows advance the lifecycle one step at a time:
// draft → printed → approved → released. The dates drive the derived
// status; because only these workflows write them, the three dates can
// never end up out of chronological order.

func (u *Usecase) Print(ctx context.Context, transactionID string) (*LoanTransactionDTO, error) {
	return u.advance(ctx, transactionID, func(t *domain.LoanTransaction, today time.Time) error {
		switch t.Status() {
		case domain.StatusDraft:
			t.PrintedDate = &today
			return nil
		case domain.StatusPrinted:
			return domain.ErrAlreadyPrinted
		}
		return domain.ErrInvalidTransition
	})
}

func (u *Usecase) Approve(ctx context.Context, transactionID string) (*LoanTransactionDTO, error) {
	return u.advance(ctx, transactionID, func(t *domain.LoanTransaction, today time.Time) error {
		switch t.Status() {
		case domain.StatusPrinted:
			t.ApprovedDate = &today
			return nil
		case domain.StatusApproved:
			return domain.ErrAlreadyApproved
		}
		return domain.ErrInvalidTransition
	})
}

func (u *Usecase) Release(ctx context.Context, transactionID string) (*LoanTransactionDTO, error) {
	return u.advance(ctx, transactionID, func(t *domain.LoanTransaction, today time.Time) error {
		switch t.Status() {
		case domain.StatusApproved:
			t.ReleasedDate = &today
			return nil
		case domain.StatusReleased:
			return domain.ErrAlreadyReleased
		}
		return domain.ErrInvalidTransition
	})
}

func (u *Usecase) advance(ctx context.Context, transactionID string, step func(t *domain.LoanTransaction, today time.Time) error) (*LoanTransactionDTO, error) {
	var dto *LoanTransactionDTO
	err := u.uow.WithinLoanTransactionTx(ctx, transactionID, func(r uow.Repos, t *domain.LoanTransaction) error {
		today := time.Now().UTC().Truncate(24 * time.Hour)
		if err := step(t, today); err != nil {
			return err
		}
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

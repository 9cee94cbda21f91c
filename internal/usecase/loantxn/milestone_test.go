package loantxn

import (
	"context"
	"errors"
	"testing"
	"time"

	domain "coop-ledger-backend/internal/domain/loantxn"
)

func TestMilestone_FullProgression(t *testing.T) {
	txn := fixtureTxn()
	uc, _ := newFixtureUsecase(txn)
	ctx := context.Background()

	dto, err := uc.Print(ctx, fixtureTxnID)
	if err != nil {
		t.Fatalf("Print err: %v", err)
	}
	if dto.Status != "printed" || dto.PrintedDate == nil {
		t.Fatalf("after print: status=%s printed=%v", dto.Status, dto.PrintedDate)
	}
	if !dto.ReadOnly {
		t.Fatal("printed transaction must be read-only")
	}

	dto, err = uc.Approve(ctx, fixtureTxnID)
	if err != nil {
		t.Fatalf("Approve err: %v", err)
	}
	if dto.Status != "approved" || dto.ApprovedDate == nil {
		t.Fatalf("after approve: status=%s approved=%v", dto.Status, dto.ApprovedDate)
	}

	dto, err = uc.Release(ctx, fixtureTxnID)
	if err != nil {
		t.Fatalf("Release err: %v", err)
	}
	if dto.Status != "released" || dto.ReleasedDate == nil {
		t.Fatalf("after release: status=%s released=%v", dto.Status, dto.ReleasedDate)
	}

	// dates only ever advance forward in time
	if txn.ApprovedDate.Before(*txn.PrintedDate) || txn.ReleasedDate.Before(*txn.ApprovedDate) {
		t.Fatal("milestone dates out of order")
	}
}

func TestPrint_AlreadyPrinted(t *testing.T) {
	txn := fixtureTxn()
	printed := time.Now().UTC()
	txn.PrintedDate = &printed
	uc, _ := newFixtureUsecase(txn)

	_, err := uc.Print(context.Background(), fixtureTxnID)
	if !errors.Is(err, domain.ErrAlreadyPrinted) {
		t.Fatalf("err = %v, want ErrAlreadyPrinted", err)
	}
}

func TestApprove_RequiresPrinted(t *testing.T) {
	uc, _ := newFixtureUsecase(fixtureTxn())
	_, err := uc.Approve(context.Background(), fixtureTxnID)
	if !errors.Is(err, domain.ErrInvalidTransition) {
		t.Fatalf("err = %v, want ErrInvalidTransition", err)
	}
}

func TestRelease_RequiresApproved(t *testing.T) {
	txn := fixtureTxn()
	printed := time.Now().UTC()
	txn.PrintedDate = &printed
	uc, _ := newFixtureUsecase(txn)

	_, err := uc.Release(context.Background(), fixtureTxnID)
	if !errors.Is(err, domain.ErrInvalidTransition) {
		t.Fatalf("err = %v, want ErrInvalidTransition", err)
	}
}

func TestRelease_AlreadyReleased(t *testing.T) {
	txn := fixtureTxn()
	released := time.Now().UTC()
	txn.ReleasedDate = &released
	uc, _ := newFixtureUsecase(txn)

	_, err := uc.Release(context.Background(), fixtureTxnID)
	if !errors.Is(err, domain.ErrAlreadyReleased) {
		t.Fatalf("err = %v, want ErrAlreadyReleased", err)
	}
}

func TestMilestone_NotFound(t *testing.T) {
	uc, _ := newFixtureUsecase(fixtureTxn())
	_, err := uc.Print(context.Background(), "00000000000000000000000000000000")
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

package http

import (
	"errors"
	"net/http"
	"strings"

	accountDomain "coop-ledger-backend/internal/domain/account"
	txnDomain "coop-ledger-backend/internal/domain/loantxn"

	"github.com/labstack/echo/v4"
)

// ---- helpers ----

func containsFieldMsg(list []FieldError, field, substr string) bool {
	for _, e := range list {
		if e.Field == field && strings.Contains(e.Message, substr) {
			return true
		}
	}
	return false
}

// writeDomainError maps domain sentinels onto HTTP codes. Precondition
// violations are conflicts, not server errors; anything unrecognized is a
// plain bad request (the usecases validate their own input).
func writeDomainError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, txnDomain.ErrNotFound),
		errors.Is(err, txnDomain.ErrEntryNotFound),
		errors.Is(err, accountDomain.ErrNotFound):
		return c.JSON(http.StatusNotFound, ErrorResponse{Error: err.Error()})
	case errors.Is(err, txnDomain.ErrReadOnly),
		errors.Is(err, txnDomain.ErrNoCashEntry),
		errors.Is(err, txnDomain.ErrSameAccount),
		errors.Is(err, txnDomain.ErrSameLoanType),
		errors.Is(err, txnDomain.ErrNotConfirmed),
		errors.Is(err, txnDomain.ErrNotEditable),
		errors.Is(err, txnDomain.ErrNotRemovable),
		errors.Is(err, txnDomain.ErrNotSoftDeleted),
		errors.Is(err, txnDomain.ErrDeductionsSuppressed),
		errors.Is(err, txnDomain.ErrInvalidTransition),
		errors.Is(err, txnDomain.ErrAlreadyPrinted),
		errors.Is(err, txnDomain.ErrAlreadyApproved),
		errors.Is(err, txnDomain.ErrAlreadyReleased):
		return c.JSON(http.StatusConflict, ErrorResponse{Error: err.Error()})
	case errors.Is(err, txnDomain.ErrInvalidEntryType),
		errors.Is(err, txnDomain.ErrInvalidAmount):
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{Error: err.Error()})
	}
	return c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
}

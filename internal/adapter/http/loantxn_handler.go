package http

import (
	"net/http"

	uc "coop-ledger-backend/internal/usecase/loantxn"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
)

type LoanTransactionHandler struct{ uc *uc.Usecase }

func NewLoanTransactionHandler(u *uc.Usecase) *LoanTransactionHandler {
	return &LoanTransactionHandler{uc: u}
}

type createLoanTransactionReq struct {
	LoanType        string  `json:"loan_type"        validate:"required,loantype"`
	ModeOfPayment   string  `json:"mode_of_payment"  validate:"required,oneof=daily weekly monthly lumpsum"`
	Terms           int     `json:"terms"            validate:"required,gte=1,lte=360"`
	AccountID       string  `json:"account_id"       validate:"required,hex32"`
	CashAccountID   string  `json:"cash_account_id"  validate:"required,hex32"`
	Principal       float64 `json:"principal"        validate:"required,gt=0,dec2"`
	PreviousBalance float64 `json:"previous_balance" validate:"gte=0,dec2"`
}

func (h *LoanTransactionHandler) CreateLoanTransaction(c echo.Context) error {
	var req createLoanTransactionReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
	}
	dto, err := h.uc.Create(c.Request().Context(), uc.CreateInput{
		LoanType:        req.LoanType,
		ModeOfPayment:   req.ModeOfPayment,
		Terms:           req.Terms,
		AccountID:       req.AccountID,
		CashAccountID:   req.CashAccountID,
		Principal:       decimal.NewFromFloat(req.Principal),
		PreviousBalance: decimal.NewFromFloat(req.PreviousBalance),
	})
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(http.StatusCreated, dto)
}

func (h *LoanTransactionHandler) GetLoanTransaction(c echo.Context) error {
	dto, err := h.uc.Get(c.Request().Context(), c.Param("transaction_id"))
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

type updateLoanTransactionReq struct {
	ModeOfPayment string  `json:"mode_of_payment" validate:"required,oneof=daily weekly monthly lumpsum"`
	Terms         int     `json:"terms"           validate:"required,gte=1,lte=360"`
	Principal     float64 `json:"principal"       validate:"required,gt=0,dec2"`
}

func (h *LoanTransactionHandler) UpdateLoanTransaction(c echo.Context) error {
	var req updateLoanTransactionReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
	}
	dto, err := h.uc.Update(c.Request().Context(), c.Param("transaction_id"), uc.UpdateInput{
		ModeOfPayment: req.ModeOfPayment,
		Terms:         req.Terms,
		Principal:     decimal.NewFromFloat(req.Principal),
	})
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

type changeLoanTypeReq struct {
	LoanType        string  `json:"loan_type" validate:"required,loantype"`
	PreviousBalance float64 `json:"previous_balance" validate:"gte=0,dec2"`
	Confirmed       bool    `json:"confirmed"`
}

// ChangeLoanType is confirm-gated: the body's `confirmed` flag answers the
// coordinator's prompt, so an unconfirmed request changes nothing. The
// optional previous_balance seeds the carried-forward entry when switching
// to a renewal or restructured loan.
func (h *LoanTransactionHandler) ChangeLoanType(c echo.Context) error {
	var req changeLoanTypeReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
	}
	coord := h.uc.NewCoordinator(uc.StaticConfirmer(req.Confirmed))
	dto, err := coord.ChangeLoanType(c.Request().Context(), c.Param("transaction_id"), req.LoanType, decimal.NewFromFloat(req.PreviousBalance))
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

type changeCashAccountReq struct {
	AccountID string `json:"account_id" validate:"required,hex32"`
	Confirmed bool   `json:"confirmed"`
}

func (h *LoanTransactionHandler) ChangeCashAccount(c echo.Context) error {
	var req changeCashAccountReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
	}
	coord := h.uc.NewCoordinator(uc.StaticConfirmer(req.Confirmed))
	dto, err := coord.ChangeCashAccount(c.Request().Context(), c.Param("transaction_id"), req.AccountID)
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *LoanTransactionHandler) PrintLoanTransaction(c echo.Context) error {
	dto, err := h.uc.Print(c.Request().Context(), c.Param("transaction_id"))
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *LoanTransactionHandler) ApproveLoanTransaction(c echo.Context) error {
	dto, err := h.uc.Approve(c.Request().Context(), c.Param("transaction_id"))
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *LoanTransactionHandler) ReleaseLoanTransaction(c echo.Context) error {
	dto, err := h.uc.Release(c.Request().Context(), c.Param("transaction_id"))
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

package http

import (
	"net/http"

	uc "coop-ledger-backend/internal/usecase/loantxn"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
)

type EntryHandler struct{ uc *uc.Usecase }

func NewEntryHandler(u *uc.Usecase) *EntryHandler { return &EntryHandler{uc: u} }

type addEntryReq struct {
	Type      string  `json:"type"       validate:"required,deductionkind"`
	AccountID string  `json:"account_id" validate:"required,hex32"`
	Debit     float64 `json:"debit"      validate:"gte=0,dec2"`
	Credit    float64 `json:"credit"     validate:"gte=0,dec2"`
	IsAddOn   bool    `json:"is_add_on"`
}

func (h *EntryHandler) AddEntry(c echo.Context) error {
	var req addEntryReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
	}
	dto, err := h.uc.AddEntry(c.Request().Context(), c.Param("transaction_id"), uc.AddEntryInput{
		Type:      req.Type,
		AccountID: req.AccountID,
		Debit:     decimal.NewFromFloat(req.Debit),
		Credit:    decimal.NewFromFloat(req.Credit),
		IsAddOn:   req.IsAddOn,
	})
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(http.StatusCreated, dto)
}

type updateEntryReq struct {
	AccountID string  `json:"account_id" validate:"required,hex32"`
	Debit     float64 `json:"debit"      validate:"gte=0,dec2"`
	Credit    float64 `json:"credit"     validate:"gte=0,dec2"`
	IsAddOn   bool    `json:"is_add_on"`
}

func (h *EntryHandler) UpdateEntry(c echo.Context) error {
	var req updateEntryReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
	}
	dto, err := h.uc.UpdateEntry(c.Request().Context(), c.Param("entry_id"), uc.UpdateEntryInput{
		AccountID: req.AccountID,
		Debit:     decimal.NewFromFloat(req.Debit),
		Credit:    decimal.NewFromFloat(req.Credit),
		IsAddOn:   req.IsAddOn,
	})
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *EntryHandler) RemoveEntry(c echo.Context) error {
	dto, err := h.uc.RemoveEntry(c.Request().Context(), c.Param("entry_id"))
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *EntryHandler) RestoreEntry(c echo.Context) error {
	dto, err := h.uc.RestoreEntry(c.Request().Context(), c.Param("entry_id"))
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

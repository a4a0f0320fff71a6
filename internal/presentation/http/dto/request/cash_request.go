package request

import (
	"github.com/google/uuid"
	"github.com/sangkips/posledger/internal/domain/entity"
	"github.com/sangkips/posledger/internal/domain/enum"
)

// CreateCashAccountRequest represents a cash account creation request
type CreateCashAccountRequest struct {
	Code           string `json:"code" binding:"required"`
	Name           string `json:"name" binding:"required"`
	OpeningBalance int64  `json:"opening_balance"`
}

// PostingFilterRequest represents cash posting filters
type PostingFilterRequest struct {
	From    string `form:"from"`
	To      string `form:"to"`
	Page    int    `form:"page"`
	PerPage int    `form:"per_page"`
}

// HoldSaleRequest parks a cart as-is
type HoldSaleRequest struct {
	PartyID      *uuid.UUID            `json:"party_id"`
	Items        []entity.HeldSaleItem `json:"items"`
	Discount     int64                 `json:"discount"`
	PaymentMode  enum.PaymentMode      `json:"payment_mode"`
	CashReceived int64                 `json:"cash_received"`
	Note         string                `json:"note"`
}

package request

import (
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/posledger/internal/domain/enum"
)

// LineItemRequest is one requested document line. Money is in cents.
type LineItemRequest struct {
	ProductID uuid.UUID `json:"product_id" binding:"required"`
	Quantity  int64     `json:"quantity"`
	UnitPrice *int64    `json:"unit_price"`
	Discount  int64     `json:"discount"`
}

// CreateSaleRequest represents a sale or sale return request
type CreateSaleRequest struct {
	PartyID      *uuid.UUID        `json:"party_id"`
	Items        []LineItemRequest `json:"items"`
	Discount     int64             `json:"discount"`
	PaymentMode  enum.PaymentMode  `json:"payment_mode"`
	CashReceived int64             `json:"cash_received"`
	IsReturn     bool              `json:"is_return"`
	AccountCode  string            `json:"account_code"`
	Date         *time.Time        `json:"date"`
	Note         string            `json:"note"`
}

// CreatePurchaseRequest represents a purchase or purchase return request
type CreatePurchaseRequest struct {
	PartyID     uuid.UUID         `json:"party_id"`
	Items       []LineItemRequest `json:"items"`
	Discount    int64             `json:"discount"`
	PaymentMode enum.PaymentMode  `json:"payment_mode"`
	CashPaid    int64             `json:"cash_paid"`
	IsReturn    bool              `json:"is_return"`
	AccountCode string            `json:"account_code"`
	Date        *time.Time        `json:"date"`
	Note        string            `json:"note"`
}

// AdjustStockRequest represents a manual stock correction
type AdjustStockRequest struct {
	ProductID uuid.UUID `json:"product_id" binding:"required"`
	Quantity  int64     `json:"quantity"`
	Note      string    `json:"note"`
}

// DocumentFilterRequest represents sale and purchase list filters
type DocumentFilterRequest struct {
	PartyID   string `form:"party_id"`
	Status    string `form:"status"`
	IsReturn  *bool  `form:"is_return"`
	StartDate string `form:"start_date"`
	EndDate   string `form:"end_date"`
	SortOrder string `form:"sort_order"`
	Page      int    `form:"page"`
	PerPage   int    `form:"per_page"`
}

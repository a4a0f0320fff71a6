package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/posledger/internal/domain/enum"
	"gorm.io/gorm"
)

// HeldSaleItem is one cart line as the cashier left it
type HeldSaleItem struct {
	ProductID uuid.UUID `json:"product_id"`
	Quantity  int64     `json:"quantity"`
	UnitPrice int64     `json:"unit_price"`
	Discount  int64     `json:"discount"`
}

// HeldSale is a suspended cart. It has no stock, ledger or cash effect.
type HeldSale struct {
	ID           uuid.UUID        `gorm:"type:uuid;primary_key" json:"id"`
	PartyID      *uuid.UUID       `gorm:"type:uuid;index" json:"party_id,omitempty"`
	Items        []HeldSaleItem   `gorm:"type:text;serializer:json" json:"items"`
	Discount     int64            `gorm:"default:0" json:"discount"`
	PaymentMode  enum.PaymentMode `gorm:"size:20" json:"payment_mode"`
	CashReceived int64            `gorm:"default:0" json:"cash_received"`
	Note         string           `gorm:"type:text" json:"note,omitempty"`
	CreatedAt    time.Time        `json:"created_at"`
}

// BeforeCreate generates a UUID before creating a new held sale
func (h *HeldSale) BeforeCreate(tx *gorm.DB) error {
	if h.ID == uuid.Nil {
		h.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the HeldSale model
func (HeldSale) TableName() string {
	return "held_sales"
}

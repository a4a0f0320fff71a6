package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/posledger/internal/domain/enum"
	"gorm.io/gorm"
)

// Purchase represents a committed purchase from, or return to, a supplier
type Purchase struct {
	ID          uuid.UUID           `gorm:"type:uuid;primary_key" json:"id"`
	PurchaseNo  string              `gorm:"size:100;uniqueIndex;not null" json:"purchase_no"`
	PartyID     *uuid.UUID          `gorm:"type:uuid;index" json:"party_id,omitempty"`
	AccountID   *uuid.UUID          `gorm:"type:uuid;index" json:"account_id,omitempty"`
	Date        time.Time           `gorm:"not null;index" json:"date"`
	IsReturn    bool                `gorm:"default:false" json:"is_return"`
	Status      enum.DocumentStatus `gorm:"default:1;index" json:"status"`
	PaymentMode enum.PaymentMode    `gorm:"size:20;not null" json:"payment_mode"`
	SubTotal    int64               `gorm:"default:0" json:"sub_total"` // Stored in cents
	Discount    int64               `gorm:"default:0" json:"discount"`  // Stored in cents
	Tax         int64               `gorm:"default:0" json:"tax"`       // Stored in cents
	Total       int64               `gorm:"default:0" json:"total"`     // Stored in cents
	Paid        int64               `gorm:"default:0" json:"paid"`      // Stored in cents
	Due         int64               `gorm:"default:0" json:"due"`       // Stored in cents
	Change      int64               `gorm:"default:0" json:"change"`    // Stored in cents
	Collected   int64               `gorm:"default:0" json:"collected"` // Applied to the prior balance, in cents
	Note        string              `gorm:"type:text" json:"note,omitempty"`
	CancelledAt *time.Time          `json:"cancelled_at,omitempty"`
	CreatedAt   time.Time           `json:"created_at"`
	UpdatedAt   time.Time           `json:"updated_at"`

	// Relationships
	Party *Party         `gorm:"foreignKey:PartyID" json:"party,omitempty"`
	Items []PurchaseItem `gorm:"foreignKey:PurchaseID" json:"items,omitempty"`
}

// BeforeCreate generates a UUID before creating a new purchase
func (p *Purchase) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Purchase model
func (Purchase) TableName() string {
	return "purchases"
}

// IsCancelled reports whether the purchase has been reverted
func (p *Purchase) IsCancelled() bool {
	return p.Status == enum.DocumentStatusCancelled
}

// PurchaseItem represents a line item in a purchase
type PurchaseItem struct {
	ID         uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	PurchaseID uuid.UUID `gorm:"type:uuid;not null;index" json:"purchase_id"`
	ProductID  uuid.UUID `gorm:"type:uuid;not null;index" json:"product_id"`
	Line       int       `gorm:"not null" json:"line"`
	Quantity   int64     `gorm:"not null" json:"quantity"`
	UnitCost   int64     `gorm:"not null" json:"unit_cost"` // Stored in cents
	Discount   int64     `gorm:"default:0" json:"discount"` // Stored in cents
	Tax        int64     `gorm:"default:0" json:"tax"`      // Stored in cents
	Total      int64     `gorm:"not null" json:"total"`     // Stored in cents
	CreatedAt  time.Time `json:"created_at"`

	// Relationships
	Product *Product `gorm:"foreignKey:ProductID" json:"product,omitempty"`
}

// BeforeCreate generates a UUID before creating a new purchase item
func (i *PurchaseItem) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the PurchaseItem model
func (PurchaseItem) TableName() string {
	return "purchase_items"
}

package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/posledger/internal/domain/enum"
	"gorm.io/gorm"
)

// InventoryMovement is one signed stock change. Rows are never updated; a reversal
// soft-deletes them together with the rest of their document.
type InventoryMovement struct {
	ID           uuid.UUID         `gorm:"type:uuid;primary_key" json:"id"`
	ProductID    uuid.UUID         `gorm:"type:uuid;not null;index" json:"product_id"`
	Quantity     int64             `gorm:"not null" json:"quantity"`
	UnitCost     int64             `gorm:"not null;default:0" json:"unit_cost"` // Stored in cents
	Kind         enum.MovementKind `gorm:"size:30;not null;index" json:"kind"`
	DocumentType enum.DocumentType `gorm:"size:30;index:idx_movements_document" json:"document_type,omitempty"`
	DocumentRef  *uuid.UUID        `gorm:"type:uuid;index:idx_movements_document" json:"document_ref,omitempty"`
	Note         string            `gorm:"type:text" json:"note,omitempty"`
	CreatedAt    time.Time         `gorm:"index" json:"created_at"`
	DeletedAt    gorm.DeletedAt    `gorm:"index" json:"-"`
}

// BeforeCreate generates a UUID before creating a new movement
func (m *InventoryMovement) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the InventoryMovement model
func (InventoryMovement) TableName() string {
	return "inventory_movements"
}

// IsAdjustment reports whether the movement is its own document
func (m *InventoryMovement) IsAdjustment() bool {
	return m.Kind == enum.MovementKindAdjustment
}

package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/posledger/internal/domain/enum"
	"gorm.io/gorm"
)

// Party is a customer or supplier. Walk-in parties are flagged once at creation
// and never receive ledger postings.
type Party struct {
	ID             uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	Kind           enum.PartyKind `gorm:"size:20;not null;index" json:"kind"`
	Name           string         `gorm:"size:255;not null" json:"name"`
	Email          *string        `gorm:"size:255" json:"email,omitempty"`
	Phone          *string        `gorm:"size:50" json:"phone,omitempty"`
	Address        *string        `gorm:"type:text" json:"address,omitempty"`
	IsWalkIn       bool           `gorm:"default:false" json:"is_walk_in"`
	OpeningBalance int64          `gorm:"default:0" json:"opening_balance"` // Stored in cents
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"-"`
}

// BeforeCreate generates a UUID before creating a new party
func (p *Party) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Party model
func (Party) TableName() string {
	return "parties"
}

// TracksBalance reports whether ledger entries may be posted against this party
func (p *Party) TracksBalance() bool {
	return p != nil && !p.IsWalkIn
}

package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/posledger/internal/domain/enum"
	"gorm.io/gorm"
)

// CashAccount is a named till, drawer or bank account
type CashAccount struct {
	ID             uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	Code           string         `gorm:"size:50;uniqueIndex;not null" json:"code"`
	Name           string         `gorm:"size:255;not null" json:"name"`
	OpeningBalance int64          `gorm:"default:0" json:"opening_balance"` // Stored in cents
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"-"`
}

// BeforeCreate generates a UUID before creating a new cash account
func (a *CashAccount) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the CashAccount model
func (CashAccount) TableName() string {
	return "cash_accounts"
}

// CashPosting is a signed movement of money in (+) or out (-) of an account
type CashPosting struct {
	ID           uuid.UUID         `gorm:"type:uuid;primary_key" json:"id"`
	AccountID    uuid.UUID         `gorm:"type:uuid;not null;index" json:"account_id"`
	Amount       int64             `gorm:"not null" json:"amount"` // Stored in cents
	DocumentType enum.DocumentType `gorm:"size:30;index:idx_cash_document" json:"document_type,omitempty"`
	DocumentRef  *uuid.UUID        `gorm:"type:uuid;index:idx_cash_document" json:"document_ref,omitempty"`
	Description  string            `gorm:"size:255" json:"description"`
	CreatedAt    time.Time         `gorm:"index" json:"created_at"`
	DeletedAt    gorm.DeletedAt    `gorm:"index" json:"-"`
}

// BeforeCreate generates a UUID before creating a new posting
func (p *CashPosting) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the CashPosting model
func (CashPosting) TableName() string {
	return "cash_postings"
}

// CashAccountBalance pairs an account with its derived balance
type CashAccountBalance struct {
	CashAccount
	Balance int64 `json:"balance"`
}

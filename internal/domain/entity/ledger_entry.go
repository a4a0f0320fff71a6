package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/posledger/internal/domain/enum"
	"gorm.io/gorm"
)

// LedgerEntry is one debit or credit against a party. Debits increase what is
// outstanding between the shop and the party, credits decrease it.
type LedgerEntry struct {
	ID           uuid.UUID         `gorm:"type:uuid;primary_key" json:"id"`
	PartyID      uuid.UUID         `gorm:"type:uuid;not null;uniqueIndex:idx_ledger_party_seq" json:"party_id"`
	Seq          int64             `gorm:"not null;uniqueIndex:idx_ledger_party_seq" json:"seq"`
	Date         time.Time         `gorm:"not null;index" json:"date"`
	Debit        int64             `gorm:"not null;default:0" json:"debit"`  // Stored in cents
	Credit       int64             `gorm:"not null;default:0" json:"credit"` // Stored in cents
	DocumentType enum.DocumentType `gorm:"size:30;index:idx_ledger_document" json:"document_type,omitempty"`
	DocumentRef  *uuid.UUID        `gorm:"type:uuid;index:idx_ledger_document" json:"document_ref,omitempty"`
	Description  string            `gorm:"size:255" json:"description"`
	CreatedAt    time.Time         `json:"created_at"`
	DeletedAt    gorm.DeletedAt    `gorm:"index" json:"-"`
}

// BeforeCreate generates a UUID before creating a new ledger entry
func (e *LedgerEntry) BeforeCreate(tx *gorm.DB) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the LedgerEntry model
func (LedgerEntry) TableName() string {
	return "ledger_entries"
}

// Net is the entry's effect on the running balance
func (e *LedgerEntry) Net() int64 {
	return e.Debit - e.Credit
}

// StatementLine is a ledger entry together with the balance after applying it
type StatementLine struct {
	LedgerEntry
	Balance int64 `json:"balance"`
}

// Statement is a party's ledger over a date range
type Statement struct {
	PartyID        uuid.UUID       `json:"party_id"`
	From           *time.Time      `json:"from,omitempty"`
	To             *time.Time      `json:"to,omitempty"`
	OpeningBalance int64           `json:"opening_balance"`
	ClosingBalance int64           `json:"closing_balance"`
	Lines          []StatementLine `json:"lines"`
}

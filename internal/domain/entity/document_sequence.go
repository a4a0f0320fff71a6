package entity

import "fmt"

// DocumentSequence backs sequential, collision-free document numbers
type DocumentSequence struct {
	Name      string `gorm:"primaryKey;size:50"`
	Prefix    string `gorm:"size:20;not null"`
	NextValue int64  `gorm:"not null;default:1"`
}

// TableName returns the table name for DocumentSequence
func (DocumentSequence) TableName() string {
	return "document_sequences"
}

// Format renders a number from this sequence, e.g. INV-000042
func (s *DocumentSequence) Format(value int64) string {
	return fmt.Sprintf("%s-%06d", s.Prefix, value)
}

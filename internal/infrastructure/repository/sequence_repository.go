package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/sangkips/posledger/internal/domain/entity"
	domainRepo "github.com/sangkips/posledger/internal/domain/repository"
	"gorm.io/gorm"
)

// Sequence names used by the order services
const (
	SequenceSale           = "sale"
	SequenceSaleReturn     = "sale_return"
	SequencePurchase       = "purchase"
	SequencePurchaseReturn = "purchase_return"
)

// DefaultSequencePrefixes maps each sequence to its document number prefix
var DefaultSequencePrefixes = map[string]string{
	SequenceSale:           "INV",
	SequenceSaleReturn:     "SRN",
	SequencePurchase:       "PUR",
	SequencePurchaseReturn: "PRN",
}

type sequenceRepository struct {
	db *gorm.DB
}

// NewSequenceRepository creates a new document sequence repository
func NewSequenceRepository(db *gorm.DB) domainRepo.SequenceRepository {
	return &sequenceRepository{db: db}
}

func (r *sequenceRepository) Next(ctx context.Context, name string) (string, error) {
	var seq entity.DocumentSequence
	err := r.db.WithContext(ctx).Scopes(ForUpdate()).First(&seq, "name = ?", name).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		prefix, ok := DefaultSequencePrefixes[name]
		if !ok {
			return "", fmt.Errorf("unknown document sequence %q", name)
		}
		seq = entity.DocumentSequence{Name: name, Prefix: prefix, NextValue: 1}
		if err := r.db.WithContext(ctx).Create(&seq).Error; err != nil {
			return "", fmt.Errorf("create document sequence %q: %w", name, err)
		}
	} else if err != nil {
		return "", fmt.Errorf("lock document sequence %q: %w", name, err)
	}

	value := seq.NextValue
	err = r.db.WithContext(ctx).Model(&entity.DocumentSequence{}).
		Where("name = ?", name).
		Update("next_value", value+1).Error
	if err != nil {
		return "", fmt.Errorf("advance document sequence %q: %w", name, err)
	}
	return seq.Format(value), nil
}

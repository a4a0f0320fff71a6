package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/posledger/internal/domain/entity"
	"github.com/sangkips/posledger/internal/domain/enum"
	domainRepo "github.com/sangkips/posledger/internal/domain/repository"
	"gorm.io/gorm"
)

type ledgerRepository struct {
	db *gorm.DB
}

// NewLedgerRepository creates a new party ledger repository
func NewLedgerRepository(db *gorm.DB) domainRepo.LedgerRepository {
	return &ledgerRepository{db: db}
}

func (r *ledgerRepository) Create(ctx context.Context, entry *entity.LedgerEntry) error {
	var last int64
	// Soft-deleted rows keep their seq so the unique index stays valid
	err := r.db.WithContext(ctx).Unscoped().Model(&entity.LedgerEntry{}).
		Select("COALESCE(MAX(seq), 0)").
		Where("party_id = ?", entry.PartyID).
		Scan(&last).Error
	if err != nil {
		return fmt.Errorf("next ledger seq: %w", err)
	}
	entry.Seq = last + 1
	return r.db.WithContext(ctx).Create(entry).Error
}

func (r *ledgerRepository) ListByParty(ctx context.Context, partyID uuid.UUID, asOf *time.Time) ([]entity.LedgerEntry, error) {
	var entries []entity.LedgerEntry
	query := r.db.WithContext(ctx).Where("party_id = ?", partyID)
	if asOf != nil {
		query = query.Where("date <= ?", *asOf)
	}
	err := query.Order("date ASC, seq ASC").Find(&entries).Error
	return entries, err
}

func (r *ledgerRepository) ListByDocument(ctx context.Context, docType enum.DocumentType, ref uuid.UUID) ([]entity.LedgerEntry, error) {
	var entries []entity.LedgerEntry
	err := r.db.WithContext(ctx).
		Scopes(ByDocument(docType, ref)).
		Order("seq ASC").
		Find(&entries).Error
	return entries, err
}

func (r *ledgerRepository) DeleteByDocument(ctx context.Context, docType enum.DocumentType, ref uuid.UUID) (int64, error) {
	result := r.db.WithContext(ctx).
		Scopes(ByDocument(docType, ref)).
		Delete(&entity.LedgerEntry{})
	return result.RowsAffected, result.Error
}

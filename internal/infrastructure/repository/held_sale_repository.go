package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/sangkips/posledger/internal/domain/entity"
	domainRepo "github.com/sangkips/posledger/internal/domain/repository"
	"gorm.io/gorm"
)

type heldSaleRepository struct {
	db *gorm.DB
}

// NewHeldSaleRepository creates a new held sale repository
func NewHeldSaleRepository(db *gorm.DB) domainRepo.HeldSaleRepository {
	return &heldSaleRepository{db: db}
}

func (r *heldSaleRepository) Create(ctx context.Context, held *entity.HeldSale) error {
	return r.db.WithContext(ctx).Create(held).Error
}

func (r *heldSaleRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.HeldSale, error) {
	var held entity.HeldSale
	err := r.db.WithContext(ctx).First(&held, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &held, err
}

func (r *heldSaleRepository) List(ctx context.Context) ([]entity.HeldSale, error) {
	var held []entity.HeldSale
	err := r.db.WithContext(ctx).Order("created_at DESC").Find(&held).Error
	return held, err
}

func (r *heldSaleRepository) Delete(ctx context.Context, id uuid.UUID) (int64, error) {
	result := r.db.WithContext(ctx).Delete(&entity.HeldSale{}, "id = ?", id)
	return result.RowsAffected, result.Error
}

package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/sangkips/posledger/internal/domain/entity"
)

// HeldSaleRepository stores suspended carts
type HeldSaleRepository interface {
	Create(ctx context.Context, held *entity.HeldSale) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.HeldSale, error)
	List(ctx context.Context) ([]entity.HeldSale, error)
	// Delete returns the number of rows removed so callers can detect a lost race
	Delete(ctx context.Context, id uuid.UUID) (int64, error)
}

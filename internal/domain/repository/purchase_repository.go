package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/posledger/internal/domain/entity"
)

// PurchaseRepository defines the interface for purchase data operations
type PurchaseRepository interface {
	Create(ctx context.Context, purchase *entity.Purchase) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Purchase, error)
	GetWithItems(ctx context.Context, id uuid.UUID) (*entity.Purchase, error)
	LockByID(ctx context.Context, id uuid.UUID) (*entity.Purchase, error)
	List(ctx context.Context, params *DocumentFilterParams) ([]entity.Purchase, int64, error)
	MarkCancelled(ctx context.Context, id uuid.UUID, at time.Time) error
}

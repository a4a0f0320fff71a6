package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/sangkips/posledger/internal/domain/entity"
	"github.com/sangkips/posledger/internal/domain/enum"
	"github.com/sangkips/posledger/pkg/pagination"
)

// MovementRepository is the append-only store of inventory movements
type MovementRepository interface {
	Create(ctx context.Context, movement *entity.InventoryMovement) error
	CreateBatch(ctx context.Context, movements []entity.InventoryMovement) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.InventoryMovement, error)
	// GetByIDUnscoped also returns soft-deleted movements
	GetByIDUnscoped(ctx context.Context, id uuid.UUID) (*entity.InventoryMovement, error)
	// CurrentStock sums the quantity of every surviving movement of the product
	CurrentStock(ctx context.Context, productID uuid.UUID) (int64, error)
	// StockLevels is CurrentStock for many products; an empty id list means all products.
	// Products without movements are absent from the map.
	StockLevels(ctx context.Context, productIDs []uuid.UUID) (map[uuid.UUID]int64, error)
	History(ctx context.Context, productID uuid.UUID, params *pagination.PaginationParams) ([]entity.InventoryMovement, int64, error)
	ListByDocument(ctx context.Context, docType enum.DocumentType, ref uuid.UUID) ([]entity.InventoryMovement, error)
	DeleteByDocument(ctx context.Context, docType enum.DocumentType, ref uuid.UUID) (int64, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

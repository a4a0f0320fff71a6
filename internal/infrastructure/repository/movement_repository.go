package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/sangkips/posledger/internal/domain/entity"
	"github.com/sangkips/posledger/internal/domain/enum"
	domainRepo "github.com/sangkips/posledger/internal/domain/repository"
	"github.com/sangkips/posledger/pkg/pagination"
	"gorm.io/gorm"
)

type movementRepository struct {
	db *gorm.DB
}

// NewMovementRepository creates a new inventory movement repository
func NewMovementRepository(db *gorm.DB) domainRepo.MovementRepository {
	return &movementRepository{db: db}
}

func (r *movementRepository) Create(ctx context.Context, movement *entity.InventoryMovement) error {
	return r.db.WithContext(ctx).Create(movement).Error
}

func (r *movementRepository) CreateBatch(ctx context.Context, movements []entity.InventoryMovement) error {
	if len(movements) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&movements).Error
}

func (r *movementRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.InventoryMovement, error) {
	var movement entity.InventoryMovement
	err := r.db.WithContext(ctx).First(&movement, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &movement, err
}

func (r *movementRepository) GetByIDUnscoped(ctx context.Context, id uuid.UUID) (*entity.InventoryMovement, error) {
	var movement entity.InventoryMovement
	err := r.db.WithContext(ctx).Unscoped().First(&movement, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &movement, err
}

func (r *movementRepository) CurrentStock(ctx context.Context, productID uuid.UUID) (int64, error) {
	var stock int64
	err := r.db.WithContext(ctx).Model(&entity.InventoryMovement{}).
		Select("COALESCE(SUM(quantity), 0)").
		Where("product_id = ?", productID).
		Scan(&stock).Error
	return stock, err
}

type stockRow struct {
	ProductID uuid.UUID
	Stock     int64
}

func (r *movementRepository) StockLevels(ctx context.Context, productIDs []uuid.UUID) (map[uuid.UUID]int64, error) {
	var rows []stockRow
	query := r.db.WithContext(ctx).Model(&entity.InventoryMovement{}).
		Select("product_id, COALESCE(SUM(quantity), 0) AS stock").
		Group("product_id")
	if len(productIDs) > 0 {
		query = query.Where("product_id IN ?", productIDs)
	}
	if err := query.Scan(&rows).Error; err != nil {
		return nil, err
	}

	levels := make(map[uuid.UUID]int64, len(rows))
	for _, row := range rows {
		levels[row.ProductID] = row.Stock
	}
	return levels, nil
}

func (r *movementRepository) History(ctx context.Context, productID uuid.UUID, params *pagination.PaginationParams) ([]entity.InventoryMovement, int64, error) {
	var movements []entity.InventoryMovement
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.InventoryMovement{}).
		Where("product_id = ?", productID)

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.Scopes(Paginate(params)).
		Order("created_at ASC, id ASC").
		Find(&movements).Error
	return movements, total, err
}

func (r *movementRepository) ListByDocument(ctx context.Context, docType enum.DocumentType, ref uuid.UUID) ([]entity.InventoryMovement, error) {
	var movements []entity.InventoryMovement
	err := r.db.WithContext(ctx).
		Scopes(ByDocument(docType, ref)).
		Order("created_at ASC").
		Find(&movements).Error
	return movements, err
}

func (r *movementRepository) DeleteByDocument(ctx context.Context, docType enum.DocumentType, ref uuid.UUID) (int64, error) {
	result := r.db.WithContext(ctx).
		Scopes(ByDocument(docType, ref)).
		Delete(&entity.InventoryMovement{})
	return result.RowsAffected, result.Error
}

func (r *movementRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&entity.InventoryMovement{}, "id = ?", id).Error
}

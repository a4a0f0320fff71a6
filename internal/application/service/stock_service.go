package service

import (
	"context"
	"sort"

	"github.com/google/uuid"
	"github.com/sangkips/posledger/internal/domain/entity"
	"github.com/sangkips/posledger/internal/domain/repository"
	"github.com/sangkips/posledger/pkg/apperror"
	"github.com/sangkips/posledger/pkg/pagination"
)

// StockService answers stock questions by folding the movement log
type StockService struct {
	productRepo  repository.ProductRepository
	movementRepo repository.MovementRepository
}

// NewStockService creates a new stock service
func NewStockService(productRepo repository.ProductRepository, movementRepo repository.MovementRepository) *StockService {
	return &StockService{
		productRepo:  productRepo,
		movementRepo: movementRepo,
	}
}

// CurrentStock returns the product's derived stock level
func (s *StockService) CurrentStock(ctx context.Context, productID uuid.UUID) (*entity.ProductStock, error) {
	product, err := s.productRepo.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, apperror.NewNotFoundError("Product")
	}

	stock, err := s.movementRepo.CurrentStock(ctx, productID)
	if err != nil {
		return nil, err
	}
	return &entity.ProductStock{
		Product:  *product,
		Stock:    stock,
		LowStock: product.IsLowStock(stock),
	}, nil
}

// History lists the product's surviving movements oldest first
func (s *StockService) History(ctx context.Context, productID uuid.UUID, params *pagination.PaginationParams) (*pagination.PaginatedResult[entity.InventoryMovement], error) {
	product, err := s.productRepo.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, apperror.NewNotFoundError("Product")
	}

	params = pagination.Normalize(params)
	movements, total, err := s.movementRepo.History(ctx, productID, params)
	if err != nil {
		return nil, err
	}

	return pagination.Result(movements, params, total), nil
}

// StockLevels returns every product with its derived stock, ordered by name
func (s *StockService) StockLevels(ctx context.Context) ([]entity.ProductStock, error) {
	products, err := s.productRepo.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	levels, err := s.movementRepo.StockLevels(ctx, nil)
	if err != nil {
		return nil, err
	}

	out := make([]entity.ProductStock, 0, len(products))
	for _, p := range products {
		stock := levels[p.ID]
		out = append(out, entity.ProductStock{Product: p, Stock: stock, LowStock: p.IsLowStock(stock)})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

// LowStock returns the products whose stock is at or below their alert level
func (s *StockService) LowStock(ctx context.Context) ([]entity.ProductStock, error) {
	levels, err := s.StockLevels(ctx)
	if err != nil {
		return nil, err
	}

	low := make([]entity.ProductStock, 0)
	for _, level := range levels {
		if level.LowStock {
			low = append(low, level)
		}
	}
	return low, nil
}

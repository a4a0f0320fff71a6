package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/sangkips/posledger/internal/domain/entity"
	"github.com/sangkips/posledger/internal/domain/repository"
	"github.com/sangkips/posledger/pkg/apperror"
	"github.com/sangkips/posledger/pkg/pagination"
)

// DocumentService reads committed sales and purchases
type DocumentService struct {
	saleRepo  repository.SaleRepository
	purchRepo repository.PurchaseRepository
}

// NewDocumentService creates a new document service
func NewDocumentService(saleRepo repository.SaleRepository, purchRepo repository.PurchaseRepository) *DocumentService {
	return &DocumentService{
		saleRepo:  saleRepo,
		purchRepo: purchRepo,
	}
}

// GetSale retrieves a sale with its lines
func (s *DocumentService) GetSale(ctx context.Context, id uuid.UUID) (*entity.Sale, error) {
	sale, err := s.saleRepo.GetWithItems(ctx, id)
	if err != nil {
		return nil, err
	}
	if sale == nil {
		return nil, apperror.NewNotFoundError("Sale")
	}
	return sale, nil
}

// ListSales lists sales with filtering
func (s *DocumentService) ListSales(ctx context.Context, params *repository.DocumentFilterParams) (*pagination.PaginatedResult[entity.Sale], error) {
	params = normalizeDocumentFilter(params)
	sales, total, err := s.saleRepo.List(ctx, params)
	if err != nil {
		return nil, err
	}

	return pagination.Result(sales, params.Pagination, total), nil
}

// GetPurchase retrieves a purchase with its lines
func (s *DocumentService) GetPurchase(ctx context.Context, id uuid.UUID) (*entity.Purchase, error) {
	purchase, err := s.purchRepo.GetWithItems(ctx, id)
	if err != nil {
		return nil, err
	}
	if purchase == nil {
		return nil, apperror.NewNotFoundError("Purchase")
	}
	return purchase, nil
}

// ListPurchases lists purchases with filtering
func (s *DocumentService) ListPurchases(ctx context.Context, params *repository.DocumentFilterParams) (*pagination.PaginatedResult[entity.Purchase], error) {
	params = normalizeDocumentFilter(params)
	purchases, total, err := s.purchRepo.List(ctx, params)
	if err != nil {
		return nil, err
	}

	return pagination.Result(purchases, params.Pagination, total), nil
}

func normalizeDocumentFilter(params *repository.DocumentFilterParams) *repository.DocumentFilterParams {
	if params == nil {
		params = &repository.DocumentFilterParams{}
	}
	params.Pagination = pagination.Normalize(params.Pagination)
	return params
}

package service

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sangkips/posledger/internal/domain/entity"
	"github.com/sangkips/posledger/internal/domain/enum"
	"github.com/sangkips/posledger/internal/domain/repository"
	"github.com/sangkips/posledger/pkg/apperror"
	"github.com/sangkips/posledger/pkg/pagination"
)

// ProductService handles product-related operations
type ProductService struct {
	uow          repository.UnitOfWork
	productRepo  repository.ProductRepository
	movementRepo repository.MovementRepository
}

// NewProductService creates a new product service
func NewProductService(
	uow repository.UnitOfWork,
	productRepo repository.ProductRepository,
	movementRepo repository.MovementRepository,
) *ProductService {
	return &ProductService{
		uow:          uow,
		productRepo:  productRepo,
		movementRepo: movementRepo,
	}
}

// CreateProductInput represents the create product input. Money is in cents.
type CreateProductInput struct {
	Name         string `validate:"required,max=255"`
	SKU          string `validate:"required,max=100"`
	UnitCost     int64  `validate:"gte=0,lte=1000000000000000"`
	SalePrice    int64  `validate:"gte=0,lte=1000000000000000"`
	MinStock     int64  `validate:"gte=0,lte=1000000000"`
	TaxRate      decimal.Decimal
	OpeningStock int64 `validate:"gte=0,lte=1000000000"`
}

// Create adds a product and records its opening stock in the same transaction
func (s *ProductService) Create(ctx context.Context, input *CreateProductInput) (*entity.ProductStock, error) {
	if err := validateStruct(input); err != nil {
		return nil, err
	}
	if input.TaxRate.IsNegative() || input.TaxRate.GreaterThan(decimal.NewFromInt(100)) {
		return nil, apperror.NewFieldError("tax_rate", "must be between 0 and 100")
	}

	sku := strings.TrimSpace(input.SKU)
	existing, err := s.productRepo.GetBySKU(ctx, sku)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperror.NewConflictError("Product SKU already exists")
	}

	product := &entity.Product{
		Name:      strings.TrimSpace(input.Name),
		SKU:       sku,
		UnitCost:  input.UnitCost,
		SalePrice: input.SalePrice,
		MinStock:  input.MinStock,
		TaxRate:   input.TaxRate,
	}

	err = s.uow.Execute(ctx, func(repos repository.TransactionalRepositories) error {
		if err := repos.Products().Create(ctx, product); err != nil {
			return err
		}
		if input.OpeningStock == 0 {
			return nil
		}
		id := uuid.New()
		return repos.Movements().Create(ctx, &entity.InventoryMovement{
			ID:           id,
			ProductID:    product.ID,
			Quantity:     input.OpeningStock,
			UnitCost:     product.UnitCost,
			Kind:         enum.MovementKindOpening,
			DocumentType: enum.DocumentTypeOpening,
			DocumentRef:  &id,
			Note:         "Opening stock",
		})
	})
	if err != nil {
		return nil, commitError("product", err)
	}

	return &entity.ProductStock{
		Product:  *product,
		Stock:    input.OpeningStock,
		LowStock: product.IsLowStock(input.OpeningStock),
	}, nil
}

// Get retrieves a product with its derived stock
func (s *ProductService) Get(ctx context.Context, id uuid.UUID) (*entity.ProductStock, error) {
	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, apperror.NewNotFoundError("Product")
	}

	stock, err := s.movementRepo.CurrentStock(ctx, id)
	if err != nil {
		return nil, err
	}
	return &entity.ProductStock{Product: *product, Stock: stock, LowStock: product.IsLowStock(stock)}, nil
}

// List lists products with their derived stock
func (s *ProductService) List(ctx context.Context, params *repository.ProductFilterParams) (*pagination.PaginatedResult[entity.ProductStock], error) {
	if params == nil {
		params = &repository.ProductFilterParams{}
	}
	params.Pagination = pagination.Normalize(params.Pagination)

	products, total, err := s.productRepo.List(ctx, params)
	if err != nil {
		return nil, err
	}

	// Batch the stock lookup for the page (prevents N+1)
	ids := make([]uuid.UUID, len(products))
	for i := range products {
		ids[i] = products[i].ID
	}
	levels := map[uuid.UUID]int64{}
	if len(ids) > 0 {
		levels, err = s.movementRepo.StockLevels(ctx, ids)
		if err != nil {
			return nil, err
		}
	}

	items := make([]entity.ProductStock, 0, len(products))
	for _, p := range products {
		stock := levels[p.ID]
		items = append(items, entity.ProductStock{Product: p, Stock: stock, LowStock: p.IsLowStock(stock)})
	}

	return pagination.Result(items, params.Pagination, total), nil
}

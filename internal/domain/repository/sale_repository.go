package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/posledger/internal/domain/entity"
	"github.com/sangkips/posledger/internal/domain/enum"
	"github.com/sangkips/posledger/pkg/pagination"
)

// SaleRepository defines the interface for sale data operations
type SaleRepository interface {
	// Create inserts the header and its items
	Create(ctx context.Context, sale *entity.Sale) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Sale, error)
	GetWithItems(ctx context.Context, id uuid.UUID) (*entity.Sale, error)
	// LockByID selects the header FOR UPDATE
	LockByID(ctx context.Context, id uuid.UUID) (*entity.Sale, error)
	List(ctx context.Context, params *DocumentFilterParams) ([]entity.Sale, int64, error)
	MarkCancelled(ctx context.Context, id uuid.UUID, at time.Time) error
}

// DocumentFilterParams contains filtering parameters for sale and purchase queries
type DocumentFilterParams struct {
	Pagination *pagination.PaginationParams
	PartyID    *uuid.UUID
	Status     *enum.DocumentStatus
	IsReturn   *bool
	StartDate  *time.Time
	EndDate    *time.Time
	SortOrder  string
}

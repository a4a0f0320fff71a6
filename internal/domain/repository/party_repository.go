package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/sangkips/posledger/internal/domain/entity"
	"github.com/sangkips/posledger/internal/domain/enum"
	"github.com/sangkips/posledger/pkg/pagination"
)

// PartyRepository defines the interface for customer and supplier data operations
type PartyRepository interface {
	Create(ctx context.Context, party *entity.Party) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Party, error)
	List(ctx context.Context, params *PartyFilterParams) ([]entity.Party, int64, error)
	// LockByID selects the party row FOR UPDATE
	LockByID(ctx context.Context, id uuid.UUID) (*entity.Party, error)
}

// PartyFilterParams contains filtering parameters for party queries
type PartyFilterParams struct {
	Pagination *pagination.PaginationParams
	Kind       *enum.PartyKind
	Search     string
}

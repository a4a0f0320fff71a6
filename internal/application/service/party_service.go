package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/sangkips/posledger/internal/domain/entity"
	"github.com/sangkips/posledger/internal/domain/enum"
	"github.com/sangkips/posledger/internal/domain/repository"
	"github.com/sangkips/posledger/pkg/apperror"
	"github.com/sangkips/posledger/pkg/pagination"
)

// PartyService handles customers and suppliers
type PartyService struct {
	partyRepo  repository.PartyRepository
	ledgerRepo repository.LedgerRepository
}

// NewPartyService creates a new party service
func NewPartyService(partyRepo repository.PartyRepository, ledgerRepo repository.LedgerRepository) *PartyService {
	return &PartyService{
		partyRepo:  partyRepo,
		ledgerRepo: ledgerRepo,
	}
}

// CreatePartyInput represents the create party input
type CreatePartyInput struct {
	Kind           enum.PartyKind `validate:"required"`
	Name           string         `validate:"required,max=255"`
	Email          *string        `validate:"omitempty,email"`
	Phone          *string        `validate:"omitempty,max=50"`
	Address        *string
	IsWalkIn       bool
	OpeningBalance int64 `validate:"gte=-1000000000000000,lte=1000000000000000"`
}

// PartyBalance pairs a party with its derived ledger balance
type PartyBalance struct {
	Party   *entity.Party `json:"party"`
	Balance int64         `json:"balance"`
}

// Create registers a customer or supplier
func (s *PartyService) Create(ctx context.Context, input *CreatePartyInput) (*entity.Party, error) {
	if err := validateStruct(input); err != nil {
		return nil, err
	}
	if !input.Kind.IsValid() {
		return nil, apperror.NewFieldError("kind", fmt.Sprintf("unsupported party kind %q", input.Kind))
	}
	if input.IsWalkIn && input.OpeningBalance != 0 {
		return nil, apperror.NewFieldError("opening_balance", "walk-in parties cannot carry a balance")
	}

	party := &entity.Party{
		Kind:           input.Kind,
		Name:           strings.TrimSpace(input.Name),
		Email:          input.Email,
		Phone:          input.Phone,
		Address:        input.Address,
		IsWalkIn:       input.IsWalkIn,
		OpeningBalance: input.OpeningBalance,
	}
	if err := s.partyRepo.Create(ctx, party); err != nil {
		return nil, err
	}
	return party, nil
}

// Get retrieves a party by ID
func (s *PartyService) Get(ctx context.Context, id uuid.UUID) (*entity.Party, error) {
	party, err := s.partyRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if party == nil {
		return nil, apperror.NewNotFoundError("Party")
	}
	return party, nil
}

// List lists parties with filtering
func (s *PartyService) List(ctx context.Context, params *repository.PartyFilterParams) (*pagination.PaginatedResult[entity.Party], error) {
	if params == nil {
		params = &repository.PartyFilterParams{}
	}
	params.Pagination = pagination.Normalize(params.Pagination)

	parties, total, err := s.partyRepo.List(ctx, params)
	if err != nil {
		return nil, err
	}

	return pagination.Result(parties, params.Pagination, total), nil
}

// Balance returns the party's current ledger balance
func (s *PartyService) Balance(ctx context.Context, id uuid.UUID) (*PartyBalance, error) {
	party, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	entries, err := s.ledgerRepo.ListByParty(ctx, id, nil)
	if err != nil {
		return nil, err
	}
	return &PartyBalance{Party: party, Balance: foldBalance(party.OpeningBalance, entries)}, nil
}

package service

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/sangkips/posledger/internal/domain/entity"
	"github.com/sangkips/posledger/internal/domain/repository"
	"github.com/sangkips/posledger/pkg/apperror"
	"github.com/sangkips/posledger/pkg/pagination"
)

// CashService manages cash accounts and reports their positions
type CashService struct {
	cashRepo repository.CashRepository
}

// NewCashService creates a new cash service
func NewCashService(cashRepo repository.CashRepository) *CashService {
	return &CashService{cashRepo: cashRepo}
}

// CreateAccountInput represents the create cash account input
type CreateAccountInput struct {
	Code           string `validate:"required,max=50"`
	Name           string `validate:"required,max=255"`
	OpeningBalance int64  `validate:"gte=0,lte=1000000000000000"`
}

// CreateAccount creates a named account
func (s *CashService) CreateAccount(ctx context.Context, input *CreateAccountInput) (*entity.CashAccount, error) {
	if err := validateStruct(input); err != nil {
		return nil, err
	}

	code := strings.ToUpper(strings.TrimSpace(input.Code))
	existing, err := s.cashRepo.GetAccountByCode(ctx, code)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperror.NewConflictError("Cash account code already exists")
	}

	account := &entity.CashAccount{
		Code:           code,
		Name:           input.Name,
		OpeningBalance: input.OpeningBalance,
	}
	if err := s.cashRepo.CreateAccount(ctx, account); err != nil {
		return nil, err
	}
	return account, nil
}

// Balance returns the account with opening balance plus every surviving posting
func (s *CashService) Balance(ctx context.Context, accountID uuid.UUID) (*entity.CashAccountBalance, error) {
	account, err := s.cashRepo.GetAccountByID(ctx, accountID)
	if err != nil {
		return nil, err
	}
	if account == nil {
		return nil, apperror.NewNotFoundError("Cash account")
	}
	return s.withBalance(ctx, *account)
}

// ListAccounts returns every account with its current balance
func (s *CashService) ListAccounts(ctx context.Context) ([]entity.CashAccountBalance, error) {
	accounts, err := s.cashRepo.ListAccounts(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]entity.CashAccountBalance, 0, len(accounts))
	for _, account := range accounts {
		balance, err := s.withBalance(ctx, account)
		if err != nil {
			return nil, err
		}
		out = append(out, *balance)
	}
	return out, nil
}

// Postings lists an account's postings, oldest first
func (s *CashService) Postings(ctx context.Context, accountID uuid.UUID, params *repository.PostingFilterParams) (*pagination.PaginatedResult[entity.CashPosting], error) {
	account, err := s.cashRepo.GetAccountByID(ctx, accountID)
	if err != nil {
		return nil, err
	}
	if account == nil {
		return nil, apperror.NewNotFoundError("Cash account")
	}

	if params == nil {
		params = &repository.PostingFilterParams{}
	}
	params.Pagination = pagination.Normalize(params.Pagination)

	postings, total, err := s.cashRepo.ListPostings(ctx, accountID, params)
	if err != nil {
		return nil, err
	}

	return pagination.Result(postings, params.Pagination, total), nil
}

func (s *CashService) withBalance(ctx context.Context, account entity.CashAccount) (*entity.CashAccountBalance, error) {
	sum, err := s.cashRepo.SumPostings(ctx, account.ID)
	if err != nil {
		return nil, err
	}
	return &entity.CashAccountBalance{
		CashAccount: account,
		Balance:     account.OpeningBalance + sum,
	}, nil
}

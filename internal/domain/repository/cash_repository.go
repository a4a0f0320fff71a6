package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/posledger/internal/domain/entity"
	"github.com/sangkips/posledger/internal/domain/enum"
	"github.com/sangkips/posledger/pkg/pagination"
)

// CashRepository stores cash accounts and their postings
type CashRepository interface {
	CreateAccount(ctx context.Context, account *entity.CashAccount) error
	GetAccountByID(ctx context.Context, id uuid.UUID) (*entity.CashAccount, error)
	GetAccountByCode(ctx context.Context, code string) (*entity.CashAccount, error)
	ListAccounts(ctx context.Context) ([]entity.CashAccount, error)
	// LockAccount selects the account row FOR UPDATE
	LockAccount(ctx context.Context, id uuid.UUID) (*entity.CashAccount, error)

	CreatePosting(ctx context.Context, posting *entity.CashPosting) error
	// SumPostings totals the surviving postings of an account
	SumPostings(ctx context.Context, accountID uuid.UUID) (int64, error)
	ListPostings(ctx context.Context, accountID uuid.UUID, params *PostingFilterParams) ([]entity.CashPosting, int64, error)
	ListByDocument(ctx context.Context, docType enum.DocumentType, ref uuid.UUID) ([]entity.CashPosting, error)
	DeleteByDocument(ctx context.Context, docType enum.DocumentType, ref uuid.UUID) (int64, error)
}

// PostingFilterParams contains filtering parameters for posting queries
type PostingFilterParams struct {
	Pagination *pagination.PaginationParams
	From       *time.Time
	To         *time.Time
}

package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/sangkips/posledger/internal/domain/entity"
	"github.com/sangkips/posledger/internal/domain/enum"
	domainRepo "github.com/sangkips/posledger/internal/domain/repository"
	"gorm.io/gorm"
)

type cashRepository struct {
	db *gorm.DB
}

// NewCashRepository creates a new cash account repository
func NewCashRepository(db *gorm.DB) domainRepo.CashRepository {
	return &cashRepository{db: db}
}

func (r *cashRepository) CreateAccount(ctx context.Context, account *entity.CashAccount) error {
	return r.db.WithContext(ctx).Create(account).Error
}

func (r *cashRepository) GetAccountByID(ctx context.Context, id uuid.UUID) (*entity.CashAccount, error) {
	var account entity.CashAccount
	err := r.db.WithContext(ctx).First(&account, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &account, err
}

func (r *cashRepository) GetAccountByCode(ctx context.Context, code string) (*entity.CashAccount, error) {
	var account entity.CashAccount
	err := r.db.WithContext(ctx).First(&account, "code = ?", code).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &account, err
}

func (r *cashRepository) ListAccounts(ctx context.Context) ([]entity.CashAccount, error) {
	var accounts []entity.CashAccount
	err := r.db.WithContext(ctx).Order("code ASC").Find(&accounts).Error
	return accounts, err
}

func (r *cashRepository) LockAccount(ctx context.Context, id uuid.UUID) (*entity.CashAccount, error) {
	var account entity.CashAccount
	err := r.db.WithContext(ctx).Scopes(ForUpdate()).First(&account, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &account, err
}

func (r *cashRepository) CreatePosting(ctx context.Context, posting *entity.CashPosting) error {
	return r.db.WithContext(ctx).Create(posting).Error
}

func (r *cashRepository) SumPostings(ctx context.Context, accountID uuid.UUID) (int64, error) {
	var total int64
	err := r.db.WithContext(ctx).Model(&entity.CashPosting{}).
		Select("COALESCE(SUM(amount), 0)").
		Where("account_id = ?", accountID).
		Scan(&total).Error
	return total, err
}

func (r *cashRepository) ListPostings(ctx context.Context, accountID uuid.UUID, params *domainRepo.PostingFilterParams) ([]entity.CashPosting, int64, error) {
	var postings []entity.CashPosting
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.CashPosting{}).
		Where("account_id = ?", accountID)
	if params.From != nil {
		query = query.Where("created_at >= ?", *params.From)
	}
	if params.To != nil {
		query = query.Where("created_at <= ?", *params.To)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.Scopes(Paginate(params.Pagination)).
		Order("created_at ASC, id ASC").
		Find(&postings).Error
	return postings, total, err
}

func (r *cashRepository) ListByDocument(ctx context.Context, docType enum.DocumentType, ref uuid.UUID) ([]entity.CashPosting, error) {
	var postings []entity.CashPosting
	err := r.db.WithContext(ctx).
		Scopes(ByDocument(docType, ref)).
		Find(&postings).Error
	return postings, err
}

func (r *cashRepository) DeleteByDocument(ctx context.Context, docType enum.DocumentType, ref uuid.UUID) (int64, error) {
	result := r.db.WithContext(ctx).
		Scopes(ByDocument(docType, ref)).
		Delete(&entity.CashPosting{})
	return result.RowsAffected, result.Error
}

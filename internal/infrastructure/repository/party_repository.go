package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/sangkips/posledger/internal/domain/entity"
	domainRepo "github.com/sangkips/posledger/internal/domain/repository"
	"gorm.io/gorm"
)

type partyRepository struct {
	db *gorm.DB
}

// NewPartyRepository creates a new party repository
func NewPartyRepository(db *gorm.DB) domainRepo.PartyRepository {
	return &partyRepository{db: db}
}

func (r *partyRepository) Create(ctx context.Context, party *entity.Party) error {
	return r.db.WithContext(ctx).Create(party).Error
}

func (r *partyRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Party, error) {
	var party entity.Party
	err := r.db.WithContext(ctx).First(&party, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &party, err
}

func (r *partyRepository) List(ctx context.Context, params *domainRepo.PartyFilterParams) ([]entity.Party, int64, error) {
	var parties []entity.Party
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.Party{}).
		Scopes(Search(params.Search, "name", "phone", "email"))
	if params.Kind != nil {
		query = query.Where("kind = ?", *params.Kind)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.Scopes(Paginate(params.Pagination)).
		Order("name ASC").
		Find(&parties).Error

	return parties, total, err
}

func (r *partyRepository) LockByID(ctx context.Context, id uuid.UUID) (*entity.Party, error) {
	var party entity.Party
	err := r.db.WithContext(ctx).Scopes(ForUpdate()).First(&party, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &party, err
}

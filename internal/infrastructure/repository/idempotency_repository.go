package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/posledger/internal/domain/entity"
	domainRepo "github.com/sangkips/posledger/internal/domain/repository"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// claimAttempts bounds the insert and take-over loop when the holding row
// expires or is released between statements
const claimAttempts = 3

type idempotencyRepository struct {
	db *gorm.DB
}

// NewIdempotencyRepository creates a new idempotency repository
func NewIdempotencyRepository(db *gorm.DB) domainRepo.IdempotencyRepository {
	return &idempotencyRepository{db: db}
}

func (r *idempotencyRepository) GetByKey(ctx context.Context, key, clientID string) (*entity.IdempotencyKey, error) {
	var ikey entity.IdempotencyKey
	err := r.db.WithContext(ctx).
		Where("key = ? AND client_id = ?", key, clientID).
		First(&ikey).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &ikey, err
}

// Claim relies on the (key, client_id) unique index: only one insert wins,
// and only one conditional update can take over an expired row.
func (r *idempotencyRepository) Claim(ctx context.Context, ikey *entity.IdempotencyKey) (*entity.IdempotencyKey, error) {
	if ikey.ID == uuid.Nil {
		ikey.ID = uuid.New()
	}
	db := r.db.WithContext(ctx)

	for attempt := 0; attempt < claimAttempts; attempt++ {
		result := db.Clauses(clause.OnConflict{DoNothing: true}).Create(ikey)
		if result.Error != nil {
			return nil, result.Error
		}
		if result.RowsAffected == 1 {
			return nil, nil
		}

		now := time.Now()
		result = db.Model(&entity.IdempotencyKey{}).
			Where("key = ? AND client_id = ? AND expires_at < ?", ikey.Key, ikey.ClientID, now).
			Updates(map[string]interface{}{
				"id":            ikey.ID,
				"endpoint":      ikey.Endpoint,
				"request_hash":  ikey.RequestHash,
				"response_code": ikey.ResponseCode,
				"response_body": ikey.ResponseBody,
				"created_at":    now,
				"expires_at":    ikey.ExpiresAt,
			})
		if result.Error != nil {
			return nil, result.Error
		}
		if result.RowsAffected == 1 {
			return nil, nil
		}

		existing, err := r.GetByKey(ctx, ikey.Key, ikey.ClientID)
		if err != nil {
			return nil, err
		}
		if existing != nil && !existing.IsExpired() {
			return existing, nil
		}
	}
	return nil, errors.New("idempotency key could not be claimed")
}

func (r *idempotencyRepository) Complete(ctx context.Context, id uuid.UUID, code int, body string) error {
	return r.db.WithContext(ctx).Model(&entity.IdempotencyKey{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"response_code": code,
			"response_body": body,
		}).Error
}

func (r *idempotencyRepository) Release(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&entity.IdempotencyKey{}).Error
}

func (r *idempotencyRepository) DeleteExpired(ctx context.Context) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("expires_at < ?", time.Now()).
		Delete(&entity.IdempotencyKey{})
	return result.RowsAffected, result.Error
}

package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/sangkips/posledger/internal/domain/entity"
)

// IdempotencyRepository defines the interface for idempotency key operations
type IdempotencyRepository interface {
	// GetByKey retrieves an idempotency key by its key string and client
	GetByKey(ctx context.Context, key, clientID string) (*entity.IdempotencyKey, error)
	// Claim stores ikey as pending unless a live row already holds the same
	// key for the client, in which case that row is returned. An expired row
	// is taken over in place.
	Claim(ctx context.Context, ikey *entity.IdempotencyKey) (*entity.IdempotencyKey, error)
	// Complete records the response for a claimed key
	Complete(ctx context.Context, id uuid.UUID, code int, body string) error
	// Release drops a claimed key so the request can be retried
	Release(ctx context.Context, id uuid.UUID) error
	// DeleteExpired removes expired idempotency keys and reports how many went
	DeleteExpired(ctx context.Context) (int64, error)
}

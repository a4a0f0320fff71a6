package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/posledger/internal/domain/entity"
	"github.com/sangkips/posledger/internal/domain/enum"
)

// LedgerRepository is the append-only store of party ledger entries
type LedgerRepository interface {
	// Create assigns the next per-party sequence number before inserting.
	// Callers must hold the party lock.
	Create(ctx context.Context, entry *entity.LedgerEntry) error
	// ListByParty returns surviving entries ordered by (date, seq), optionally
	// only those dated at or before asOf.
	ListByParty(ctx context.Context, partyID uuid.UUID, asOf *time.Time) ([]entity.LedgerEntry, error)
	ListByDocument(ctx context.Context, docType enum.DocumentType, ref uuid.UUID) ([]entity.LedgerEntry, error)
	DeleteByDocument(ctx context.Context, docType enum.DocumentType, ref uuid.UUID) (int64, error)
}

package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/posledger/internal/domain/entity"
	"github.com/sangkips/posledger/internal/domain/repository"
	"github.com/sangkips/posledger/pkg/apperror"
)

// LedgerService derives party balances and statements from the ledger
type LedgerService struct {
	partyRepo  repository.PartyRepository
	ledgerRepo repository.LedgerRepository
}

// NewLedgerService creates a new ledger service
func NewLedgerService(partyRepo repository.PartyRepository, ledgerRepo repository.LedgerRepository) *LedgerService {
	return &LedgerService{
		partyRepo:  partyRepo,
		ledgerRepo: ledgerRepo,
	}
}

// RunningBalance returns the party's balance including every entry dated at or
// before asOf, or all entries when asOf is nil.
func (s *LedgerService) RunningBalance(ctx context.Context, partyID uuid.UUID, asOf *time.Time) (int64, error) {
	party, err := s.getParty(ctx, partyID)
	if err != nil {
		return 0, err
	}

	entries, err := s.ledgerRepo.ListByParty(ctx, partyID, asOf)
	if err != nil {
		return 0, err
	}
	return foldBalance(party.OpeningBalance, entries), nil
}

// EntriesInRange returns a statement for [from, to]. The opening balance carries
// everything before from; each line shows the balance after it is applied.
func (s *LedgerService) EntriesInRange(ctx context.Context, partyID uuid.UUID, from, to *time.Time) (*entity.Statement, error) {
	if from != nil && to != nil && from.After(*to) {
		return nil, apperror.NewFieldError("from", "must not be after to")
	}

	party, err := s.getParty(ctx, partyID)
	if err != nil {
		return nil, err
	}

	entries, err := s.ledgerRepo.ListByParty(ctx, partyID, to)
	if err != nil {
		return nil, err
	}

	statement := &entity.Statement{
		PartyID:        partyID,
		From:           from,
		To:             to,
		OpeningBalance: party.OpeningBalance,
		Lines:          make([]entity.StatementLine, 0, len(entries)),
	}

	balance := party.OpeningBalance
	for _, entry := range entries {
		balance += entry.Net()
		if from != nil && entry.Date.Before(*from) {
			statement.OpeningBalance = balance
			continue
		}
		statement.Lines = append(statement.Lines, entity.StatementLine{LedgerEntry: entry, Balance: balance})
	}
	statement.ClosingBalance = balance
	return statement, nil
}

func (s *LedgerService) getParty(ctx context.Context, partyID uuid.UUID) (*entity.Party, error) {
	party, err := s.partyRepo.GetByID(ctx, partyID)
	if err != nil {
		return nil, err
	}
	if party == nil {
		return nil, apperror.NewNotFoundError("Party")
	}
	return party, nil
}

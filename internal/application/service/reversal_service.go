package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/posledger/internal/domain/enum"
	"github.com/sangkips/posledger/internal/domain/repository"
	"github.com/sangkips/posledger/internal/infrastructure/lock"
	"github.com/sangkips/posledger/internal/infrastructure/logger"
	"github.com/sangkips/posledger/pkg/apperror"
	"go.uber.org/zap"
)

// ReversalService undoes a whole committed document
type ReversalService struct {
	uow          repository.UnitOfWork
	saleRepo     repository.SaleRepository
	purchRepo    repository.PurchaseRepository
	movementRepo repository.MovementRepository
	locker       lock.KeyLocker
	opts         LedgerOptions
	logger       *zap.Logger
	now          func() time.Time
}

// NewReversalService creates a new reversal service
func NewReversalService(
	uow repository.UnitOfWork,
	saleRepo repository.SaleRepository,
	purchRepo repository.PurchaseRepository,
	movementRepo repository.MovementRepository,
	locker lock.KeyLocker,
	opts LedgerOptions,
	log *zap.Logger,
) *ReversalService {
	return &ReversalService{
		uow:          uow,
		saleRepo:     saleRepo,
		purchRepo:    purchRepo,
		movementRepo: movementRepo,
		locker:       locker,
		opts:         opts,
		logger:       log,
		now:          func() time.Time { return time.Now().UTC() },
	}
}

// ReversalResult reports what a reversal removed
type ReversalResult struct {
	DocumentID    uuid.UUID         `json:"document_id"`
	DocumentType  enum.DocumentType `json:"document_type"`
	DocumentNo    string            `json:"document_no,omitempty"`
	Reverted      bool              `json:"reverted"`
	Movements     int64             `json:"movements"`
	LedgerEntries int64             `json:"ledger_entries"`
	CashPostings  int64             `json:"cash_postings"`
}

// reversalTarget describes the document being reverted
type reversalTarget struct {
	docType    enum.DocumentType
	id         uuid.UUID
	number     string
	productIDs []uuid.UUID
	partyID    *uuid.UUID
	accountID  *uuid.UUID
	// claim locks the header and fails with AlreadyReverted if it is gone
	claim func(ctx context.Context, repos repository.TransactionalRepositories) error
	// finish marks the header cancelled once the effects are removed
	finish func(ctx context.Context, repos repository.TransactionalRepositories, at time.Time) error
}

// DeleteDocument reverts the sale, purchase or standalone stock movement with
// the given id. Every movement, ledger entry and cash posting tagged with the
// document is soft-deleted and the header, if any, is marked cancelled.
func (s *ReversalService) DeleteDocument(ctx context.Context, id uuid.UUID) (*ReversalResult, error) {
	target, err := s.findTarget(ctx, id)
	if err != nil {
		return nil, err
	}

	result := &ReversalResult{
		DocumentID:   target.id,
		DocumentType: target.docType,
		DocumentNo:   target.number,
	}

	err = withRetry(ctx, s.log(ctx), s.opts, "delete_document", func() error {
		return s.revert(ctx, target, result)
	})
	if err != nil {
		return nil, err
	}

	result.Reverted = true
	s.log(ctx).Info("document reverted",
		zap.String("document_id", id.String()),
		zap.String("document_type", target.docType.String()),
		zap.Int64("movements", result.Movements),
		zap.Int64("ledger_entries", result.LedgerEntries),
		zap.Int64("cash_postings", result.CashPostings),
	)
	return result, nil
}

func (s *ReversalService) findTarget(ctx context.Context, id uuid.UUID) (*reversalTarget, error) {
	sale, err := s.saleRepo.GetWithItems(ctx, id)
	if err != nil {
		return nil, err
	}
	if sale != nil {
		if sale.IsCancelled() {
			return nil, apperror.NewAlreadyRevertedError(id.String())
		}
		target := &reversalTarget{
			docType:   enum.DocumentTypeSale,
			id:        sale.ID,
			number:    sale.InvoiceNo,
			partyID:   sale.PartyID,
			accountID: sale.AccountID,
			claim: func(ctx context.Context, repos repository.TransactionalRepositories) error {
				locked, err := repos.Sales().LockByID(ctx, id)
				if err != nil {
					return err
				}
				if locked == nil || locked.IsCancelled() {
					return apperror.NewAlreadyRevertedError(id.String())
				}
				return nil
			},
			finish: func(ctx context.Context, repos repository.TransactionalRepositories, at time.Time) error {
				return repos.Sales().MarkCancelled(ctx, id, at)
			},
		}
		for _, item := range sale.Items {
			target.productIDs = append(target.productIDs, item.ProductID)
		}
		return target, nil
	}

	purchase, err := s.purchRepo.GetWithItems(ctx, id)
	if err != nil {
		return nil, err
	}
	if purchase != nil {
		if purchase.IsCancelled() {
			return nil, apperror.NewAlreadyRevertedError(id.String())
		}
		target := &reversalTarget{
			docType:   enum.DocumentTypePurchase,
			id:        purchase.ID,
			number:    purchase.PurchaseNo,
			partyID:   purchase.PartyID,
			accountID: purchase.AccountID,
			claim: func(ctx context.Context, repos repository.TransactionalRepositories) error {
				locked, err := repos.Purchases().LockByID(ctx, id)
				if err != nil {
					return err
				}
				if locked == nil || locked.IsCancelled() {
					return apperror.NewAlreadyRevertedError(id.String())
				}
				return nil
			},
			finish: func(ctx context.Context, repos repository.TransactionalRepositories, at time.Time) error {
				return repos.Purchases().MarkCancelled(ctx, id, at)
			},
		}
		for _, item := range purchase.Items {
			target.productIDs = append(target.productIDs, item.ProductID)
		}
		return target, nil
	}

	movement, err := s.movementRepo.GetByIDUnscoped(ctx, id)
	if err != nil {
		return nil, err
	}
	if movement == nil {
		return nil, apperror.NewNotFoundError("Document")
	}
	if movement.DocumentType != enum.DocumentTypeAdjustment && movement.DocumentType != enum.DocumentTypeOpening {
		return nil, apperror.NewFieldError("id", "movement belongs to a document, delete the document instead")
	}
	if movement.DeletedAt.Valid {
		return nil, apperror.NewAlreadyRevertedError(id.String())
	}

	return &reversalTarget{
		docType:    movement.DocumentType,
		id:         movement.ID,
		productIDs: []uuid.UUID{movement.ProductID},
		claim: func(ctx context.Context, repos repository.TransactionalRepositories) error {
			current, err := repos.Movements().GetByID(ctx, id)
			if err != nil {
				return err
			}
			if current == nil {
				return apperror.NewAlreadyRevertedError(id.String())
			}
			return nil
		},
		finish: func(context.Context, repository.TransactionalRepositories, time.Time) error {
			return nil
		},
	}, nil
}

func (s *ReversalService) revert(ctx context.Context, target *reversalTarget, result *ReversalResult) error {
	keys := make([]string, 0, len(target.productIDs)+2)
	for _, id := range target.productIDs {
		keys = append(keys, lock.ProductKey(id))
	}
	if target.partyID != nil {
		keys = append(keys, lock.PartyKey(*target.partyID))
	}
	if target.accountID != nil {
		keys = append(keys, lock.AccountKey(*target.accountID))
	}

	release, err := s.locker.Lock(ctx, keys...)
	if err != nil {
		return commitError("reversal", err)
	}
	defer release()

	err = s.uow.Execute(ctx, func(repos repository.TransactionalRepositories) error {
		if err := target.claim(ctx, repos); err != nil {
			return err
		}

		movements, err := repos.Movements().ListByDocument(ctx, target.docType, target.id)
		if err != nil {
			return err
		}

		// Removing incoming stock must not leave a product below zero
		removed := make(map[uuid.UUID]int64, len(movements))
		for _, m := range movements {
			removed[m.ProductID] += m.Quantity
		}
		productIDs := sortedIDs(removed)
		products, err := repos.Products().LockByIDs(ctx, productIDs)
		if err != nil {
			return err
		}
		names := make(map[uuid.UUID]string, len(products))
		for _, p := range products {
			names[p.ID] = p.Name
		}

		if !s.opts.AllowNegativeStock {
			for _, id := range productIDs {
				if removed[id] <= 0 {
					continue
				}
				stock, err := repos.Movements().CurrentStock(ctx, id)
				if err != nil {
					return err
				}
				if stock < removed[id] {
					return apperror.NewInsufficientStockError(id.String(), names[id], removed[id], stock)
				}
			}
		}

		if target.partyID != nil {
			if _, err := repos.Parties().LockByID(ctx, *target.partyID); err != nil {
				return err
			}
		}
		if target.accountID != nil {
			if _, err := repos.Cash().LockAccount(ctx, *target.accountID); err != nil {
				return err
			}
		}

		if result.Movements, err = repos.Movements().DeleteByDocument(ctx, target.docType, target.id); err != nil {
			return err
		}
		if result.LedgerEntries, err = repos.Ledger().DeleteByDocument(ctx, target.docType, target.id); err != nil {
			return err
		}
		if result.CashPostings, err = repos.Cash().DeleteByDocument(ctx, target.docType, target.id); err != nil {
			return err
		}
		return target.finish(ctx, repos, s.now())
	})
	return commitError("reversal", err)
}

func (s *ReversalService) log(ctx context.Context) *zap.Logger {
	return logger.FromContext(ctx, s.logger)
}

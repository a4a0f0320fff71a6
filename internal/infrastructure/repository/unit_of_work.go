package repository

import (
	"context"

	domainRepo "github.com/sangkips/posledger/internal/domain/repository"
	"github.com/sangkips/posledger/pkg/apperror"
	"gorm.io/gorm"
)

// GormUnitOfWork implements UnitOfWork using GORM transactions
type GormUnitOfWork struct {
	db *gorm.DB
}

// NewUnitOfWork creates a new GormUnitOfWork
func NewUnitOfWork(db *gorm.DB) *GormUnitOfWork {
	return &GormUnitOfWork{db: db}
}

// Execute runs fn within a database transaction. Application errors returned by
// fn pass through unchanged; serialization failures become ConcurrencyConflict.
// Any other store error is returned as-is for the caller to wrap.
func (u *GormUnitOfWork) Execute(ctx context.Context, fn func(repos domainRepo.TransactionalRepositories) error) error {
	err := u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&gormTransactionalRepositories{tx: tx})
	})
	if err == nil || apperror.IsAppError(err) {
		return err
	}
	if IsRetryable(err) {
		return apperror.NewConcurrencyConflictError(err)
	}
	return err
}

// gormTransactionalRepositories provides access to all repositories within a transaction
type gormTransactionalRepositories struct {
	tx *gorm.DB
}

func (r *gormTransactionalRepositories) Products() domainRepo.ProductRepository {
	return NewProductRepository(r.tx)
}

func (r *gormTransactionalRepositories) Parties() domainRepo.PartyRepository {
	return NewPartyRepository(r.tx)
}

func (r *gormTransactionalRepositories) Movements() domainRepo.MovementRepository {
	return NewMovementRepository(r.tx)
}

func (r *gormTransactionalRepositories) Ledger() domainRepo.LedgerRepository {
	return NewLedgerRepository(r.tx)
}

func (r *gormTransactionalRepositories) Cash() domainRepo.CashRepository {
	return NewCashRepository(r.tx)
}

func (r *gormTransactionalRepositories) Sales() domainRepo.SaleRepository {
	return NewSaleRepository(r.tx)
}

func (r *gormTransactionalRepositories) Purchases() domainRepo.PurchaseRepository {
	return NewPurchaseRepository(r.tx)
}

func (r *gormTransactionalRepositories) HeldSales() domainRepo.HeldSaleRepository {
	return NewHeldSaleRepository(r.tx)
}

func (r *gormTransactionalRepositories) Sequences() domainRepo.SequenceRepository {
	return NewSequenceRepository(r.tx)
}

// Ensure GormUnitOfWork implements UnitOfWork
var _ domainRepo.UnitOfWork = (*GormUnitOfWork)(nil)

// Ensure gormTransactionalRepositories implements TransactionalRepositories
var _ domainRepo.TransactionalRepositories = (*gormTransactionalRepositories)(nil)

package database

import (
	"errors"
	"fmt"

	"github.com/sangkips/posledger/internal/domain/entity"
	"github.com/sangkips/posledger/internal/domain/enum"
	"github.com/sangkips/posledger/internal/infrastructure/repository"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Models lists every entity managed by AutoMigrate
func Models() []interface{} {
	return []interface{}{
		// Reference data
		&entity.Product{},
		&entity.Party{},
		&entity.CashAccount{},

		// Logs
		&entity.InventoryMovement{},
		&entity.LedgerEntry{},
		&entity.CashPosting{},

		// Documents
		&entity.Sale{},
		&entity.SaleItem{},
		&entity.Purchase{},
		&entity.PurchaseItem{},
		&entity.HeldSale{},
		&entity.DocumentSequence{},

		// System entities
		&entity.IdempotencyKey{},
	}
}

// AutoMigrate runs GORM auto-migration for all entities
func AutoMigrate(db *gorm.DB, log *zap.Logger) error {
	log.Info("running database migrations")
	if err := db.AutoMigrate(Models()...); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	log.Info("database migrations completed")
	return nil
}

// SeedOptions names the default accounts to create
type SeedOptions struct {
	CashAccountCode string
	BankAccountCode string
}

// SeedDefaultData creates the default cash accounts, the walk-in customer and
// the document sequences when they do not exist yet.
func SeedDefaultData(db *gorm.DB, opts SeedOptions, log *zap.Logger) error {
	accounts := []entity.CashAccount{
		{Code: opts.CashAccountCode, Name: "Cash drawer"},
		{Code: opts.BankAccountCode, Name: "Bank account"},
	}
	for i := range accounts {
		if accounts[i].Code == "" {
			continue
		}
		var existing entity.CashAccount
		err := db.Where("code = ?", accounts[i].Code).First(&existing).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			if err := db.Create(&accounts[i]).Error; err != nil {
				return fmt.Errorf("seed cash account %s: %w", accounts[i].Code, err)
			}
			log.Info("seeded cash account", zap.String("code", accounts[i].Code))
		} else if err != nil {
			return err
		}
	}

	var walkIns int64
	if err := db.Model(&entity.Party{}).Where("is_walk_in = ?", true).Count(&walkIns).Error; err != nil {
		return err
	}
	if walkIns == 0 {
		walkIn := entity.Party{Kind: enum.PartyKindCustomer, Name: "Walk-in customer", IsWalkIn: true}
		if err := db.Create(&walkIn).Error; err != nil {
			return fmt.Errorf("seed walk-in customer: %w", err)
		}
	}

	for name, prefix := range repository.DefaultSequencePrefixes {
		seq := entity.DocumentSequence{Name: name, Prefix: prefix, NextValue: 1}
		if err := db.Where("name = ?", name).FirstOrCreate(&seq).Error; err != nil {
			return fmt.Errorf("seed document sequence %s: %w", name, err)
		}
	}
	return nil
}

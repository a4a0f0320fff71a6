package service

import (
	"context"
	"errors"
	"testing"

	"github.com/sangkips/posledger/internal/domain/entity"
	"github.com/sangkips/posledger/internal/domain/enum"
	"github.com/sangkips/posledger/pkg/apperror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

var errDiskFull = errors.New("disk full")

// failCreatesOn makes every insert into table fail until the returned func runs
func failCreatesOn(t *testing.T, db *gorm.DB, table string) func() {
	t.Helper()
	name := "test:fail_" + table
	require.NoError(t, db.Callback().Create().Before("gorm:create").Register(name, func(tx *gorm.DB) {
		if tx.Statement.Table == table {
			_ = tx.AddError(errDiskFull)
		}
	}))
	removed := false
	restore := func() {
		if !removed {
			removed = true
			require.NoError(t, db.Callback().Create().Remove(name))
		}
	}
	t.Cleanup(restore)
	return restore
}

type stubLocker struct {
	err error
}

func (l stubLocker) Lock(context.Context, ...string) (func(), error) {
	return nil, l.err
}

func TestCreateSale_StoreFailureRollsBackEverything(t *testing.T) {
	env := newTestEnv(t)
	widget := env.product("Widget", 100, 1000, 5)
	customer := env.party(enum.PartyKindCustomer, "Dara", 0)
	movementsBefore := env.count(&entity.InventoryMovement{})

	restore := failCreatesOn(t, env.db, "cash_postings")

	// Header, movements and ledger entry are written before the posting fails
	_, err := env.Orders.CreateSale(env.ctx, &CreateSaleInput{
		PartyID:      &customer.ID,
		Items:        []LineItemInput{line(widget.ID, 2)},
		PaymentMode:  enum.PaymentModeCash,
		CashReceived: 500,
	})
	require.Error(t, err)
	assert.True(t, apperror.IsKind(err, apperror.KindCommitFailed))
	assert.ErrorIs(t, err, errDiskFull)

	assert.Equal(t, int64(5), env.stock(widget.ID))
	assert.Equal(t, int64(0), env.balance(customer.ID))
	assert.Equal(t, int64(0), env.cash("CASH"))
	assert.Equal(t, int64(0), env.count(&entity.Sale{}))
	assert.Equal(t, movementsBefore, env.count(&entity.InventoryMovement{}))
	assert.Equal(t, int64(0), env.count(&entity.LedgerEntry{}))
	assert.Equal(t, int64(0), env.count(&entity.CashPosting{}))

	restore()

	result, err := env.Orders.CreateSale(env.ctx, &CreateSaleInput{
		PartyID:      &customer.ID,
		Items:        []LineItemInput{line(widget.ID, 2)},
		PaymentMode:  enum.PaymentModeCash,
		CashReceived: 500,
	})
	require.NoError(t, err)
	assert.Equal(t, "INV-000001", result.Sale.InvoiceNo)
	assert.Equal(t, int64(3), env.stock(widget.ID))
	assert.Equal(t, int64(1500), env.balance(customer.ID))
	assert.Equal(t, int64(500), env.cash("CASH"))
}

func TestCreatePurchase_StoreFailureRollsBackEverything(t *testing.T) {
	env := newTestEnv(t)
	widget := env.product("Widget", 100, 300, 0)
	supplier := env.party(enum.PartyKindSupplier, "Acme Supplies", 0)
	movementsBefore := env.count(&entity.InventoryMovement{})

	failCreatesOn(t, env.db, "ledger_entries")

	_, err := env.Orders.CreatePurchase(env.ctx, &CreatePurchaseInput{
		PartyID:     supplier.ID,
		Items:       []LineItemInput{line(widget.ID, 4)},
		PaymentMode: enum.PaymentModeCredit,
	})
	require.Error(t, err)
	assert.True(t, apperror.IsKind(err, apperror.KindCommitFailed))

	assert.Equal(t, int64(0), env.stock(widget.ID))
	assert.Equal(t, int64(0), env.balance(supplier.ID))
	assert.Equal(t, int64(0), env.count(&entity.Purchase{}))
	assert.Equal(t, movementsBefore, env.count(&entity.InventoryMovement{}))
	assert.Equal(t, int64(0), env.count(&entity.LedgerEntry{}))
	assert.Equal(t, int64(0), env.count(&entity.CashPosting{}))
}

func TestLockFailureIsCommitFailed(t *testing.T) {
	env := newTestEnv(t)
	widget := env.product("Widget", 100, 1000, 5)

	sale, err := env.Orders.CreateSale(env.ctx, &CreateSaleInput{
		Items:        []LineItemInput{line(widget.ID, 1)},
		PaymentMode:  enum.PaymentModeCash,
		CashReceived: 1000,
	})
	require.NoError(t, err)

	env.Orders.locker = stubLocker{err: context.Canceled}
	env.Reversals.locker = stubLocker{err: context.Canceled}

	t.Run("sale", func(t *testing.T) {
		_, err := env.Orders.CreateSale(env.ctx, &CreateSaleInput{
			Items:        []LineItemInput{line(widget.ID, 1)},
			PaymentMode:  enum.PaymentModeCash,
			CashReceived: 1000,
		})
		require.Error(t, err)
		assert.True(t, apperror.IsKind(err, apperror.KindCommitFailed))
		assert.ErrorIs(t, err, context.Canceled)
	})

	t.Run("adjustment", func(t *testing.T) {
		_, err := env.Orders.AdjustStock(env.ctx, &AdjustStockInput{ProductID: widget.ID, Quantity: 1})
		require.Error(t, err)
		assert.True(t, apperror.IsKind(err, apperror.KindCommitFailed))
	})

	t.Run("reversal", func(t *testing.T) {
		_, err := env.Reversals.DeleteDocument(env.ctx, sale.Sale.ID)
		require.Error(t, err)
		assert.True(t, apperror.IsKind(err, apperror.KindCommitFailed))
	})

	t.Run("conflict passes through", func(t *testing.T) {
		opts := DefaultLedgerOptions()
		opts.MaxRetries = 0
		env.Orders.opts = opts
		env.Orders.locker = stubLocker{err: apperror.NewConcurrencyConflictError(errors.New("lock not obtained"))}

		_, err := env.Orders.AdjustStock(env.ctx, &AdjustStockInput{ProductID: widget.ID, Quantity: 1})
		require.Error(t, err)
		assert.True(t, apperror.IsKind(err, apperror.KindConcurrencyConflict))
	})

	assert.Equal(t, int64(4), env.stock(widget.ID))
	assert.Equal(t, int64(1), env.count(&entity.Sale{}))
}

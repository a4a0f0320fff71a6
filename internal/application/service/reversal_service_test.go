package service

import (
	"testing"

	"github.com/google/uuid"
	"github.com/sangkips/posledger/internal/domain/entity"
	"github.com/sangkips/posledger/internal/domain/enum"
	"github.com/sangkips/posledger/pkg/apperror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeleteDocument_SaleIsTrueInverse(t *testing.T) {
	env := newTestEnv(t)
	widget := env.product("Widget", 100, 300, 10)
	gadget := env.product("Gadget", 50, 120, 4)
	customer := env.party(enum.PartyKindCustomer, "Amina", 500)

	stockBefore := []int64{env.stock(widget.ID), env.stock(gadget.ID)}
	balanceBefore := env.balance(customer.ID)
	cashBefore := env.cash("CASH")

	result, err := env.Orders.CreateSale(env.ctx, &CreateSaleInput{
		PartyID:      &customer.ID,
		Items:        []LineItemInput{line(widget.ID, 2), line(gadget.ID, 3)},
		PaymentMode:  enum.PaymentModeCash,
		CashReceived: 1500,
	})
	require.NoError(t, err)
	require.NotEqual(t, cashBefore, env.cash("CASH"))
	require.NotEqual(t, balanceBefore, env.balance(customer.ID))

	reversal, err := env.Reversals.DeleteDocument(env.ctx, result.Sale.ID)
	require.NoError(t, err)
	assert.True(t, reversal.Reverted)
	assert.Equal(t, enum.DocumentTypeSale, reversal.DocumentType)
	assert.Equal(t, result.Sale.InvoiceNo, reversal.DocumentNo)
	assert.Equal(t, int64(2), reversal.Movements)
	assert.Equal(t, int64(1), reversal.LedgerEntries)
	assert.Equal(t, int64(1), reversal.CashPostings)

	assert.Equal(t, stockBefore, []int64{env.stock(widget.ID), env.stock(gadget.ID)})
	assert.Equal(t, balanceBefore, env.balance(customer.ID))
	assert.Equal(t, cashBefore, env.cash("CASH"))

	sale, err := env.Documents.GetSale(env.ctx, result.Sale.ID)
	require.NoError(t, err)
	assert.True(t, sale.IsCancelled())
	assert.NotNil(t, sale.CancelledAt)

	_, err = env.Reversals.DeleteDocument(env.ctx, result.Sale.ID)
	require.Error(t, err)
	assert.True(t, apperror.IsKind(err, apperror.KindAlreadyReverted))
}

func TestDeleteDocument_PurchaseIsTrueInverse(t *testing.T) {
	env := newTestEnv(t)
	widget := env.product("Widget", 100, 300, 0)
	supplier := env.party(enum.PartyKindSupplier, "Acme Supplies", 0)

	result, err := env.Orders.CreatePurchase(env.ctx, &CreatePurchaseInput{
		PartyID:     supplier.ID,
		Items:       []LineItemInput{line(widget.ID, 6)},
		PaymentMode: enum.PaymentModeCash,
		CashPaid:    200,
	})
	require.NoError(t, err)
	require.Equal(t, int64(400), env.balance(supplier.ID))

	_, err = env.Reversals.DeleteDocument(env.ctx, result.Purchase.ID)
	require.NoError(t, err)

	assert.Equal(t, int64(0), env.stock(widget.ID))
	assert.Equal(t, int64(0), env.balance(supplier.ID))
	assert.Equal(t, int64(0), env.cash("CASH"))

	purchase, err := env.Documents.GetPurchase(env.ctx, result.Purchase.ID)
	require.NoError(t, err)
	assert.Equal(t, enum.DocumentStatusCancelled, purchase.Status)
}

func TestDeleteDocument_PurchaseOfResoldGoods(t *testing.T) {
	env := newTestEnv(t)
	widget := env.product("Widget", 100, 300, 0)
	supplier := env.party(enum.PartyKindSupplier, "Acme Supplies", 0)

	purchase, err := env.Orders.CreatePurchase(env.ctx, &CreatePurchaseInput{
		PartyID:     supplier.ID,
		Items:       []LineItemInput{line(widget.ID, 3)},
		PaymentMode: enum.PaymentModeCredit,
	})
	require.NoError(t, err)

	_, err = env.Orders.CreateSale(env.ctx, &CreateSaleInput{
		Items:        []LineItemInput{line(widget.ID, 2)},
		PaymentMode:  enum.PaymentModeCash,
		CashReceived: 600,
	})
	require.NoError(t, err)

	_, err = env.Reversals.DeleteDocument(env.ctx, purchase.Purchase.ID)
	require.Error(t, err)
	assert.True(t, apperror.IsKind(err, apperror.KindInsufficientStock))

	assert.Equal(t, int64(1), env.stock(widget.ID))
	assert.Equal(t, int64(300), env.balance(supplier.ID))
}

func TestDeleteDocument_SaleReturnAfterResale(t *testing.T) {
	env := newTestEnv(t)
	widget := env.product("Widget", 100, 300, 1)
	env.account("TILL", 1000)

	sale, err := env.Orders.CreateSale(env.ctx, &CreateSaleInput{
		Items:        []LineItemInput{line(widget.ID, 1)},
		PaymentMode:  enum.PaymentModeCash,
		CashReceived: 300,
		AccountCode:  "TILL",
	})
	require.NoError(t, err)

	ret, err := env.Orders.CreateSale(env.ctx, &CreateSaleInput{
		Items:       []LineItemInput{line(widget.ID, 1)},
		PaymentMode: enum.PaymentModeCash,
		IsReturn:    true,
		AccountCode: "TILL",
	})
	require.NoError(t, err)

	_, err = env.Orders.CreateSale(env.ctx, &CreateSaleInput{
		Items:        []LineItemInput{line(widget.ID, 1)},
		PaymentMode:  enum.PaymentModeCash,
		CashReceived: 300,
		AccountCode:  "TILL",
	})
	require.NoError(t, err)
	require.Equal(t, int64(0), env.stock(widget.ID))

	_, err = env.Reversals.DeleteDocument(env.ctx, ret.Sale.ID)
	require.Error(t, err)
	assert.True(t, apperror.IsKind(err, apperror.KindInsufficientStock))

	// Cancelling the original sale brings a unit back so the return can go
	_, err = env.Reversals.DeleteDocument(env.ctx, sale.Sale.ID)
	require.NoError(t, err)
	_, err = env.Reversals.DeleteDocument(env.ctx, ret.Sale.ID)
	require.NoError(t, err)

	assert.Equal(t, int64(0), env.stock(widget.ID))
	assert.Equal(t, int64(1300), env.cash("TILL"))
}

func TestDeleteDocument_Adjustment(t *testing.T) {
	env := newTestEnv(t)
	widget := env.product("Widget", 100, 300, 5)

	adjustment, err := env.Orders.AdjustStock(env.ctx, &AdjustStockInput{ProductID: widget.ID, Quantity: -2})
	require.NoError(t, err)
	require.Equal(t, int64(3), env.stock(widget.ID))

	result, err := env.Reversals.DeleteDocument(env.ctx, adjustment.Movement.ID)
	require.NoError(t, err)
	assert.Equal(t, enum.DocumentTypeAdjustment, result.DocumentType)
	assert.Equal(t, int64(1), result.Movements)
	assert.Equal(t, int64(5), env.stock(widget.ID))

	_, err = env.Reversals.DeleteDocument(env.ctx, adjustment.Movement.ID)
	require.Error(t, err)
	assert.True(t, apperror.IsKind(err, apperror.KindAlreadyReverted))
}

func TestDeleteDocument_Rejections(t *testing.T) {
	env := newTestEnv(t)
	widget := env.product("Widget", 100, 300, 5)

	_, err := env.Reversals.DeleteDocument(env.ctx, uuid.New())
	require.Error(t, err)
	assert.True(t, apperror.IsKind(err, apperror.KindNotFound))

	sale, err := env.Orders.CreateSale(env.ctx, &CreateSaleInput{
		Items:        []LineItemInput{line(widget.ID, 1)},
		PaymentMode:  enum.PaymentModeCash,
		CashReceived: 300,
	})
	require.NoError(t, err)

	var movement entity.InventoryMovement
	require.NoError(t, env.db.Where("document_ref = ? AND kind = ?", sale.Sale.ID, enum.MovementKindSale).First(&movement).Error)

	_, err = env.Reversals.DeleteDocument(env.ctx, movement.ID)
	require.Error(t, err)
	assert.True(t, apperror.IsKind(err, apperror.KindValidation))
	assert.Equal(t, int64(4), env.stock(widget.ID))
}

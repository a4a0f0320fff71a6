package service

import (
	"testing"

	"github.com/sangkips/posledger/internal/domain/entity"
	"github.com/sangkips/posledger/internal/domain/enum"
	"github.com/sangkips/posledger/pkg/apperror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHeldSale_HoldResumeCommit(t *testing.T) {
	env := newTestEnv(t)
	widget := env.product("Widget", 100, 300, 5)

	held, err := env.Held.Hold(env.ctx, &HoldSaleInput{
		Items: []entity.HeldSaleItem{
			{ProductID: widget.ID, Quantity: 2},
		},
		PaymentMode:  enum.PaymentModeCash,
		CashReceived: 1000,
		Note:         "customer went to the ATM",
	})
	require.NoError(t, err)

	// Holding has no stock effect
	assert.Equal(t, int64(5), env.stock(widget.ID))

	list, err := env.Held.List(env.ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, held.ID, list[0].ID)
	require.Len(t, list[0].Items, 1)
	assert.Equal(t, int64(2), list[0].Items[0].Quantity)

	resumed, err := env.Held.Resume(env.ctx, held.ID)
	require.NoError(t, err)
	assert.Equal(t, "customer went to the ATM", resumed.Note)

	_, err = env.Held.Resume(env.ctx, held.ID)
	require.Error(t, err)
	assert.True(t, apperror.IsKind(err, apperror.KindNotFound))

	result, err := env.Orders.CreateSale(env.ctx, SaleInputFromHeld(resumed))
	require.NoError(t, err)
	assert.Equal(t, int64(600), result.Sale.Total)
	assert.Equal(t, int64(400), result.Change)
	assert.Equal(t, int64(3), env.stock(widget.ID))
}

func TestHeldSale_HoldsInvalidCartsAndDeletes(t *testing.T) {
	env := newTestEnv(t)

	held, err := env.Held.Hold(env.ctx, &HoldSaleInput{})
	require.NoError(t, err)
	assert.NotNil(t, held.Items)

	require.NoError(t, env.Held.Delete(env.ctx, held.ID))
	err = env.Held.Delete(env.ctx, held.ID)
	assert.True(t, apperror.IsKind(err, apperror.KindNotFound))
}

func TestSaleInputFromHeld(t *testing.T) {
	held := &entity.HeldSale{
		Items: []entity.HeldSaleItem{
			{Quantity: 1, UnitPrice: 0},
			{Quantity: 2, UnitPrice: 450, Discount: 50},
		},
		Discount: 10,
	}

	input := SaleInputFromHeld(held)
	require.Len(t, input.Items, 2)
	assert.Nil(t, input.Items[0].UnitPrice)
	require.NotNil(t, input.Items[1].UnitPrice)
	assert.Equal(t, int64(450), *input.Items[1].UnitPrice)
	assert.Equal(t, int64(50), input.Items[1].Discount)
	assert.Equal(t, enum.PaymentModeCash, input.PaymentMode)
	assert.Equal(t, int64(10), input.Discount)
}

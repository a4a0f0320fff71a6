package service

import (
	"testing"

	"github.com/sangkips/posledger/internal/domain/entity"
	"github.com/sangkips/posledger/pkg/apperror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSettlePayment(t *testing.T) {
	tests := []struct {
		name     string
		total    int64
		received int64
		prior    int64
		tracked  bool
		want     settlement
	}{
		{
			name: "exact payment", total: 300, received: 300, prior: 0, tracked: true,
			want: settlement{Total: 300, Paid: 300, Cash: 300},
		},
		{
			name: "excess settles prior balance first", total: 300, received: 1000, prior: 500, tracked: true,
			want: settlement{Total: 300, Paid: 300, Collected: 500, Change: 200, Cash: 800, Credit: 500},
		},
		{
			name: "excess smaller than prior balance", total: 300, received: 400, prior: 500, tracked: true,
			want: settlement{Total: 300, Paid: 300, Collected: 100, Cash: 400, Credit: 100},
		},
		{
			name: "negative prior balance is not reduced", total: 300, received: 500, prior: -50, tracked: true,
			want: settlement{Total: 300, Paid: 300, Change: 200, Cash: 300},
		},
		{
			name: "shortfall is debited", total: 300, received: 100, prior: 500, tracked: true,
			want: settlement{Total: 300, Paid: 100, Due: 200, Cash: 100, Debit: 200},
		},
		{
			name: "credit sale debits the whole bill", total: 300, received: 0, prior: 0, tracked: true,
			want: settlement{Total: 300, Due: 300, Debit: 300},
		},
		{
			name: "walk-in gets change", total: 300, received: 500, prior: 0, tracked: false,
			want: settlement{Total: 300, Paid: 300, Change: 200, Cash: 300},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := settlePayment(tt.total, tt.received, tt.prior, tt.tracked)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, got.Total-got.Paid, got.Due)
			assert.Equal(t, tt.received-got.Change, got.Cash)
			assert.Equal(t, got.Paid+got.Collected, got.Cash)
		})
	}
}

func TestSettlePayment_WalkInShortfall(t *testing.T) {
	_, err := settlePayment(300, 299, 0, false)
	require.Error(t, err)
	assert.True(t, apperror.IsKind(err, apperror.KindValidation))
}

func TestSettleReturn(t *testing.T) {
	assert.Equal(t, settlement{Total: 150, Paid: 150, Cash: 150}, settleReturn(150, false))
	assert.Equal(t, settlement{Total: 150, Paid: 150, Credit: 150}, settleReturn(150, true))
}

func TestFoldBalance(t *testing.T) {
	entries := []entity.LedgerEntry{
		{Debit: 300},
		{Credit: 120},
		{Debit: 50},
		{Credit: 500},
	}
	assert.Equal(t, int64(100-270), foldBalance(100, entries))
	assert.Equal(t, int64(42), foldBalance(42, nil))
}

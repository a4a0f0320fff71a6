package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/sangkips/posledger/pkg/apperror"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestWithRetry(t *testing.T) {
	conflict := apperror.NewConcurrencyConflictError(errors.New("could not serialize access"))
	storeErr := errors.New("connection reset")

	tests := []struct {
		name       string
		maxRetries int
		results    []error // one per attempt, the last repeats
		wantCalls  int
		wantErr    error
		wantKind   apperror.Kind
	}{
		{
			name:       "succeeds first time",
			maxRetries: 3,
			results:    []error{nil},
			wantCalls:  1,
		},
		{
			name:       "conflict then success",
			maxRetries: 3,
			results:    []error{conflict, nil},
			wantCalls:  2,
		},
		{
			name:       "conflict past max retries",
			maxRetries: 2,
			results:    []error{conflict},
			wantCalls:  3,
			wantKind:   apperror.KindConcurrencyConflict,
		},
		{
			name:       "no retries configured",
			maxRetries: 0,
			results:    []error{conflict},
			wantCalls:  1,
			wantKind:   apperror.KindConcurrencyConflict,
		},
		{
			name:       "other errors return at once",
			maxRetries: 3,
			results:    []error{storeErr},
			wantCalls:  1,
			wantErr:    storeErr,
		},
		{
			name:       "validation is not retried",
			maxRetries: 3,
			results:    []error{apperror.NewFieldError("items", "is required")},
			wantCalls:  1,
			wantKind:   apperror.KindValidation,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := DefaultLedgerOptions()
			opts.MaxRetries = tt.maxRetries
			opts.RetryBackoff = time.Millisecond

			calls := 0
			err := withRetry(context.Background(), zap.NewNop(), opts, "test", func() error {
				i := calls
				if i >= len(tt.results) {
					i = len(tt.results) - 1
				}
				calls++
				return tt.results[i]
			})

			assert.Equal(t, tt.wantCalls, calls)
			switch {
			case tt.wantErr != nil:
				assert.ErrorIs(t, err, tt.wantErr)
			case tt.wantKind != "":
				assert.True(t, apperror.IsKind(err, tt.wantKind), "got %v", err)
			default:
				assert.NoError(t, err)
			}
		})
	}
}

func TestWithRetry_StopsWhenContextIsDone(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	opts := DefaultLedgerOptions()
	opts.MaxRetries = 5
	opts.RetryBackoff = time.Hour

	calls := 0
	err := withRetry(ctx, zap.NewNop(), opts, "test", func() error {
		calls++
		cancel()
		return apperror.NewConcurrencyConflictError(errors.New("deadlock detected"))
	})

	assert.Equal(t, 1, calls)
	assert.True(t, apperror.IsKind(err, apperror.KindConcurrencyConflict))
}

func TestCommitError(t *testing.T) {
	assert.NoError(t, commitError("sale", nil))

	stock := apperror.NewInsufficientStockError("p1", "Widget", 3, 1)
	assert.Same(t, stock, commitError("sale", stock))

	err := commitError("sale", context.Canceled)
	assert.True(t, apperror.IsKind(err, apperror.KindCommitFailed))
	assert.ErrorIs(t, err, context.Canceled)
}

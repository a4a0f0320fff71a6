package apperror

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKindsAndStatus(t *testing.T) {
	tests := []struct {
		name   string
		err    *AppError
		kind   Kind
		status int
	}{
		{"validation", NewFieldError("items", "must not be empty"), KindValidation, http.StatusUnprocessableEntity},
		{"not found", NewNotFoundError("Product"), KindNotFound, http.StatusNotFound},
		{"stock", NewInsufficientStockError("p1", "Widget", 3, 1), KindInsufficientStock, http.StatusConflict},
		{"cash", NewInsufficientCashError("a1", "CASH", 500, 100), KindInsufficientCash, http.StatusConflict},
		{"conflict", NewConcurrencyConflictError(errors.New("40001")), KindConcurrencyConflict, http.StatusConflict},
		{"reverted", NewAlreadyRevertedError("d1"), KindAlreadyReverted, http.StatusConflict},
		{"commit", NewCommitFailedError("sale", errors.New("disk full")), KindCommitFailed, http.StatusInternalServerError},
		{"status mapped", NewAppError(http.StatusBadRequest, "bad"), KindBadRequest, http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.kind, tt.err.Kind)
			assert.Equal(t, tt.status, tt.err.Code)
			assert.True(t, IsKind(tt.err, tt.kind))
		})
	}
}

func TestWrappingKeepsKind(t *testing.T) {
	cause := errors.New("connection reset")
	err := fmt.Errorf("create sale: %w", NewCommitFailedError("sale", cause))

	assert.True(t, IsAppError(err))
	assert.True(t, IsKind(err, KindCommitFailed))
	assert.ErrorIs(t, err, ErrCommitFailed)
	assert.ErrorIs(t, err, cause)
	assert.NotErrorIs(t, err, ErrNotFound)
	assert.Equal(t, "Failed to commit sale: connection reset", GetAppError(err).Error())
}

func TestDetails(t *testing.T) {
	err := NewInsufficientStockError("p1", "Widget", 3, 1)
	assert.Equal(t, "Insufficient stock for Widget: requested 3, available 1", err.Message)
	assert.Equal(t, map[string]any{
		"product_id":   "p1",
		"product_name": "Widget",
		"requested":    int64(3),
		"available":    int64(1),
	}, err.Details)

	assert.Equal(t, true, NewConcurrencyConflictError(nil).Details["retryable"])
}

func TestGetAppErrorFallsBackToInternal(t *testing.T) {
	appErr := GetAppError(errors.New("boom"))
	assert.Equal(t, KindInternal, appErr.Kind)
	assert.Equal(t, http.StatusInternalServerError, appErr.Code)
	assert.False(t, IsKind(errors.New("boom"), KindInternal))
}

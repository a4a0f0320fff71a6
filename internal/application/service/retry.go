package service

import (
	"context"
	"time"

	"github.com/sangkips/posledger/pkg/apperror"
	"go.uber.org/zap"
)

// withRetry re-runs fn while it fails with a ConcurrencyConflict, up to
// maxRetries extra attempts with linear backoff. Other errors return at once.
func withRetry(ctx context.Context, log *zap.Logger, opts LedgerOptions, operation string, fn func() error) error {
	for attempt := 0; ; attempt++ {
		err := fn()
		if err == nil || !apperror.IsKind(err, apperror.KindConcurrencyConflict) || attempt >= opts.MaxRetries {
			return err
		}

		wait := opts.RetryBackoff * time.Duration(attempt+1)
		log.Warn("retrying after concurrency conflict",
			zap.String("operation", operation),
			zap.Int("attempt", attempt+1),
			zap.Duration("backoff", wait),
			zap.Error(err),
		)

		timer := time.NewTimer(wait)
		select {
		case <-ctx.Done():
			timer.Stop()
			return err
		case <-timer.C:
		}
	}
}

// commitError passes application errors through and wraps store failures
func commitError(operation string, err error) error {
	if err == nil || apperror.IsAppError(err) {
		return err
	}
	return apperror.NewCommitFailedError(operation, err)
}

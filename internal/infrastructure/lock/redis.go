package lock

import (
	"context"
	"errors"
	"time"

	"github.com/bsm/redislock"
	"github.com/redis/go-redis/v9"
	"github.com/sangkips/posledger/pkg/apperror"
	"go.uber.org/zap"
)

// RedisConfig holds settings for the distributed locker
type RedisConfig struct {
	Prefix     string
	TTL        time.Duration
	RetryEvery time.Duration
	MaxRetries int
}

// RedisLocker is a KeyLocker shared by every instance that talks to the same Redis
type RedisLocker struct {
	client *redislock.Client
	cfg    RedisConfig
	logger *zap.Logger
}

// NewRedisLocker creates a RedisLocker on top of an existing client
func NewRedisLocker(rdb redis.UniversalClient, cfg RedisConfig, logger *zap.Logger) *RedisLocker {
	if cfg.TTL <= 0 {
		cfg.TTL = 30 * time.Second
	}
	if cfg.RetryEvery <= 0 {
		cfg.RetryEvery = 50 * time.Millisecond
	}
	if cfg.MaxRetries <= 0 {
		cfg.MaxRetries = 100
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RedisLocker{
		client: redislock.New(rdb),
		cfg:    cfg,
		logger: logger.Named("lock"),
	}
}

// Lock obtains every key in order. A key still held elsewhere after the retry
// budget is spent is reported as a ConcurrencyConflict.
func (l *RedisLocker) Lock(ctx context.Context, keys ...string) (func(), error) {
	keys = normalize(keys)
	held := make([]*redislock.Lock, 0, len(keys))

	release := func() {
		// Release with a fresh context so a cancelled request still frees its keys
		relCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		for i := len(held) - 1; i >= 0; i-- {
			if err := held[i].Release(relCtx); err != nil && !errors.Is(err, redislock.ErrLockNotHeld) {
				l.logger.Warn("failed to release lock", zap.String("key", held[i].Key()), zap.Error(err))
			}
		}
	}

	opts := &redislock.Options{
		RetryStrategy: redislock.LimitRetry(redislock.LinearBackoff(l.cfg.RetryEvery), l.cfg.MaxRetries),
	}

	for _, key := range keys {
		lk, err := l.client.Obtain(ctx, l.cfg.Prefix+key, l.cfg.TTL, opts)
		if errors.Is(err, redislock.ErrNotObtained) {
			release()
			l.logger.Warn("could not obtain lock", zap.String("key", key))
			return nil, apperror.NewConcurrencyConflictError(err)
		}
		if err != nil {
			release()
			return nil, err
		}
		held = append(held, lk)
	}

	return release, nil
}

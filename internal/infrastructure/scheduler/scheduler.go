package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sangkips/posledger/internal/config"
	"github.com/sangkips/posledger/internal/domain/entity"
	"go.uber.org/zap"
)

// ExpiredKeyPurger removes idempotency keys past their expiry
type ExpiredKeyPurger interface {
	DeleteExpired(ctx context.Context) (int64, error)
}

// LowStockLister reports products at or below their alert level
type LowStockLister interface {
	LowStock(ctx context.Context) ([]entity.ProductStock, error)
}

// Scheduler runs housekeeping jobs on cron schedules
type Scheduler struct {
	cron   *cron.Cron
	cfg    config.SchedulerConfig
	keys   ExpiredKeyPurger
	stock  LowStockLister
	logger *zap.Logger
}

// NewScheduler creates a new scheduler instance
func NewScheduler(cfg config.SchedulerConfig, keys ExpiredKeyPurger, stock LowStockLister, logger *zap.Logger) *Scheduler {
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Scheduler{
		cron:   cron.New(cron.WithLocation(time.UTC)),
		cfg:    cfg,
		keys:   keys,
		stock:  stock,
		logger: logger.Named("scheduler"),
	}
}

// Start registers the configured jobs and starts the cron runner
func (s *Scheduler) Start() error {
	if !s.cfg.Enabled {
		s.logger.Info("scheduler disabled")
		return nil
	}

	if s.cfg.IdempotencyCleanup != "" {
		if _, err := s.cron.AddFunc(s.cfg.IdempotencyCleanup, s.purgeIdempotencyKeys); err != nil {
			return fmt.Errorf("schedule idempotency cleanup: %w", err)
		}
	}
	if s.cfg.LowStockReport != "" {
		if _, err := s.cron.AddFunc(s.cfg.LowStockReport, s.reportLowStock); err != nil {
			return fmt.Errorf("schedule low stock report: %w", err)
		}
	}

	s.logger.Info("starting scheduler", zap.Int("jobs", len(s.cron.Entries())))
	s.cron.Start()
	return nil
}

// Stop stops the scheduler and waits for running jobs to finish
func (s *Scheduler) Stop() {
	s.logger.Info("stopping scheduler")
	<-s.cron.Stop().Done()
}

func (s *Scheduler) purgeIdempotencyKeys() {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	removed, err := s.keys.DeleteExpired(ctx)
	if err != nil {
		s.logger.Error("failed to purge idempotency keys", zap.Error(err))
		return
	}
	s.logger.Info("purged idempotency keys", zap.Int64("removed", removed))
}

func (s *Scheduler) reportLowStock() {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	low, err := s.stock.LowStock(ctx)
	if err != nil {
		s.logger.Error("failed to build low stock report", zap.Error(err))
		return
	}
	if len(low) == 0 {
		s.logger.Info("no products below their alert level")
		return
	}

	for _, p := range low {
		s.logger.Warn("low stock",
			zap.String("product_id", p.ID.String()),
			zap.String("sku", p.SKU),
			zap.String("name", p.Name),
			zap.Int64("stock", p.Stock),
			zap.Int64("min_stock", p.MinStock),
		)
	}
	s.logger.Info("low stock report complete", zap.Int("products", len(low)))
}

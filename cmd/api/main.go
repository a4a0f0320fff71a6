package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/sangkips/posledger/internal/application/service"
	"github.com/sangkips/posledger/internal/config"
	"github.com/sangkips/posledger/internal/infrastructure/database"
	"github.com/sangkips/posledger/internal/infrastructure/lock"
	"github.com/sangkips/posledger/internal/infrastructure/logger"
	"github.com/sangkips/posledger/internal/infrastructure/repository"
	"github.com/sangkips/posledger/internal/infrastructure/scheduler"
	"github.com/sangkips/posledger/internal/presentation/http/handler"
	"github.com/sangkips/posledger/internal/presentation/http/routes"
	"github.com/sangkips/posledger/pkg/utils"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	baseLogger := logger.New(&logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	})
	defer func() { _ = baseLogger.Sync() }()

	// Set Gin mode based on environment
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := database.New(&cfg.Database, baseLogger.Named("db"))
	if err != nil {
		baseLogger.Fatal("failed to connect to database", zap.Error(err))
	}

	if err := database.AutoMigrate(db, baseLogger); err != nil {
		baseLogger.Fatal("failed to run migrations", zap.Error(err))
	}
	if err := database.SeedDefaultData(db, database.SeedOptions{
		CashAccountCode: cfg.Ledger.CashAccountCode,
		BankAccountCode: cfg.Ledger.BankAccountCode,
	}, baseLogger); err != nil {
		baseLogger.Fatal("failed to seed default data", zap.Error(err))
	}

	locker, closeLocker := newLocker(cfg, baseLogger)
	defer closeLocker()

	jwtManager := utils.NewJWTManager(cfg.JWT.Secret, cfg.JWT.Issuer)

	// Repositories
	uow := repository.NewUnitOfWork(db)
	productRepo := repository.NewProductRepository(db)
	partyRepo := repository.NewPartyRepository(db)
	movementRepo := repository.NewMovementRepository(db)
	ledgerRepo := repository.NewLedgerRepository(db)
	cashRepo := repository.NewCashRepository(db)
	saleRepo := repository.NewSaleRepository(db)
	purchaseRepo := repository.NewPurchaseRepository(db)
	heldRepo := repository.NewHeldSaleRepository(db)
	idempotencyRepo := repository.NewIdempotencyRepository(db)

	// Services
	opts := service.LedgerOptionsFromConfig(cfg.Ledger)
	orderService := service.NewOrderService(uow, productRepo, partyRepo, cashRepo, saleRepo, purchaseRepo, locker, opts, baseLogger.Named("svc.order"))
	reversalService := service.NewReversalService(uow, saleRepo, purchaseRepo, movementRepo, locker, opts, baseLogger.Named("svc.reversal"))
	stockService := service.NewStockService(productRepo, movementRepo)
	ledgerService := service.NewLedgerService(partyRepo, ledgerRepo)
	cashService := service.NewCashService(cashRepo)
	heldService := service.NewHeldSaleService(uow, heldRepo)
	productService := service.NewProductService(uow, productRepo, movementRepo)
	partyService := service.NewPartyService(partyRepo, ledgerRepo)
	documentService := service.NewDocumentService(saleRepo, purchaseRepo)

	handlers := &routes.Handlers{
		Sale:     handler.NewSaleHandler(orderService, documentService),
		Purchase: handler.NewPurchaseHandler(orderService, documentService),
		Stock:    handler.NewStockHandler(orderService, stockService),
		Document: handler.NewDocumentHandler(reversalService),
		Product:  handler.NewProductHandler(productService),
		Party:    handler.NewPartyHandler(partyService, ledgerService),
		Cash:     handler.NewCashHandler(cashService),
		HeldSale: handler.NewHeldSaleHandler(heldService, orderService),
	}

	router := routes.Setup(handlers, &routes.Deps{
		JWTManager:      jwtManager,
		Cfg:             cfg,
		IdempotencyRepo: idempotencyRepo,
		Logger:          baseLogger.Named("http"),
	})

	sched := scheduler.NewScheduler(cfg.Scheduler, idempotencyRepo, stockService, baseLogger)
	if err := sched.Start(); err != nil {
		baseLogger.Fatal("failed to start scheduler", zap.Error(err))
	}
	defer sched.Stop()

	srv := &http.Server{
		Addr:         ":" + cfg.App.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		baseLogger.Info("server starting",
			zap.String("app", cfg.App.Name),
			zap.String("env", cfg.App.Env),
			zap.String("port", cfg.App.Port),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			baseLogger.Fatal("http server crashed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	baseLogger.Info("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		baseLogger.Error("graceful shutdown failed", zap.Error(err))
	}
}

// newLocker picks the in-process locker or the Redis one shared across instances
func newLocker(cfg *config.Config, log *zap.Logger) (lock.KeyLocker, func()) {
	if cfg.Ledger.LockBackend != "redis" {
		return lock.NewLocalLocker(), func() {}
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		log.Fatal("failed to connect to redis", zap.Error(err))
	}

	log.Info("using redis key locker", zap.String("addr", cfg.Redis.Addr))
	locker := lock.NewRedisLocker(rdb, lock.RedisConfig{
		Prefix: cfg.App.Name + ":lock:",
		TTL:    cfg.Ledger.LockTTL,
	}, log)
	return locker, func() { _ = rdb.Close() }
}

package routes

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sangkips/posledger/internal/config"
	domainRepo "github.com/sangkips/posledger/internal/domain/repository"
	"github.com/sangkips/posledger/internal/infrastructure/logger"
	"github.com/sangkips/posledger/internal/presentation/http/handler"
	"github.com/sangkips/posledger/internal/presentation/http/middleware"
	"github.com/sangkips/posledger/pkg/utils"
	"go.uber.org/zap"
)

// Handlers holds all the HTTP handlers used for route registration.
type Handlers struct {
	Sale     *handler.SaleHandler
	Purchase *handler.PurchaseHandler
	Stock    *handler.StockHandler
	Document *handler.DocumentHandler
	Product  *handler.ProductHandler
	Party    *handler.PartyHandler
	Cash     *handler.CashHandler
	HeldSale *handler.HeldSaleHandler
}

// Deps holds shared dependencies needed by the routes.
type Deps struct {
	JWTManager      *utils.JWTManager
	Cfg             *config.Config
	IdempotencyRepo domainRepo.IdempotencyRepository
	Logger          *zap.Logger
}

// Setup creates the Gin router and registers all routes.
func Setup(h *Handlers, deps *Deps) *gin.Engine {
	router := gin.New()

	// Global middleware
	router.Use(logger.Recovery(deps.Logger))
	router.Use(logger.GinMiddleware(deps.Logger))
	router.Use(middleware.CORSMiddleware(&deps.Cfg.CORS))

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"service": deps.Cfg.App.Name,
		})
	})

	v1 := router.Group("/api/v1")
	v1.Use(middleware.AuthMiddleware(deps.JWTManager))

	// Per-client rate limiter
	rateLimiter := middleware.NewClientRateLimiter(middleware.RateLimiterConfig{
		RequestsPerSecond: float64(deps.Cfg.RateLimit.Requests) / float64(deps.Cfg.RateLimit.Duration),
		BurstSize:         deps.Cfg.RateLimit.Requests,
		CleanupInterval:   5 * time.Minute,
		EntryTTL:          10 * time.Minute,
	})
	v1.Use(rateLimiter.Middleware())

	idempotency := middleware.Idempotency(middleware.IdempotencyConfig{Repo: deps.IdempotencyRepo})

	registerDocumentRoutes(v1, h, idempotency)
	registerStockRoutes(v1, h, idempotency)
	registerReferenceRoutes(v1, h)
	registerHeldSaleRoutes(v1, h, idempotency)

	return router
}

func registerDocumentRoutes(v1 *gin.RouterGroup, h *Handlers, idempotency gin.HandlerFunc) {
	sales := v1.Group("/sales")
	{
		sales.GET("", h.Sale.List)
		sales.POST("", idempotency, h.Sale.Create)
		sales.GET("/:id", h.Sale.Get)
	}

	purchases := v1.Group("/purchases")
	{
		purchases.GET("", h.Purchase.List)
		purchases.POST("", idempotency, h.Purchase.Create)
		purchases.GET("/:id", h.Purchase.Get)
	}

	v1.DELETE("/documents/:id", h.Document.Delete)
}

func registerStockRoutes(v1 *gin.RouterGroup, h *Handlers, idempotency gin.HandlerFunc) {
	stock := v1.Group("/stock")
	{
		stock.POST("/adjustments", idempotency, h.Stock.Adjust)
		stock.GET("/low", h.Stock.LowStock)
	}
}

func registerReferenceRoutes(v1 *gin.RouterGroup, h *Handlers) {
	products := v1.Group("/products")
	{
		products.GET("", h.Product.List)
		products.POST("", h.Product.Create)
		products.GET("/:id", h.Product.Get)
		products.GET("/:id/stock", h.Stock.Current)
		products.GET("/:id/movements", h.Stock.History)
	}

	parties := v1.Group("/parties")
	{
		parties.GET("", h.Party.List)
		parties.POST("", h.Party.Create)
		parties.GET("/:id", h.Party.Get)
		parties.GET("/:id/balance", h.Party.Balance)
		parties.GET("/:id/statement", h.Party.Statement)
	}

	accounts := v1.Group("/cash-accounts")
	{
		accounts.GET("", h.Cash.List)
		accounts.POST("", h.Cash.Create)
		accounts.GET("/:id/postings", h.Cash.Postings)
	}
}

func registerHeldSaleRoutes(v1 *gin.RouterGroup, h *Handlers, idempotency gin.HandlerFunc) {
	held := v1.Group("/held-sales")
	{
		held.GET("", h.HeldSale.List)
		held.POST("", h.HeldSale.Hold)
		held.POST("/:id/resume", idempotency, h.HeldSale.Resume)
		held.DELETE("/:id", h.HeldSale.Delete)
	}
}

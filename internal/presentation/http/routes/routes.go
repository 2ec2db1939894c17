package routes

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/ndtduy/agency-api/internal/config"
	domainRepo "github.com/ndtduy/agency-api/internal/domain/repository"
	"github.com/ndtduy/agency-api/internal/presentation/http/handler"
	"github.com/ndtduy/agency-api/internal/presentation/http/middleware"
)

// Handlers holds all the HTTP handlers used for route registration.
type Handlers struct {
	Agency    *handler.AgencyHandler
	Item      *handler.ItemHandler
	Receipt   *handler.ReceiptHandler
	Issue     *handler.IssueHandler
	Payment   *handler.PaymentHandler
	Inventory *handler.InventoryHandler
	Dashboard *handler.DashboardHandler
}

// Deps holds shared dependencies needed by the routes.
type Deps struct {
	Cfg             *config.Config
	IdempotencyRepo domainRepo.IdempotencyRepository
}

// Setup creates the Gin router and registers all routes.
func Setup(h *Handlers, deps *Deps) *gin.Engine {
	router := gin.New()

	// Global middleware
	router.Use(gin.Recovery())
	router.Use(middleware.LoggerMiddleware())
	router.Use(middleware.CORSMiddleware(&deps.Cfg.CORS))

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"service": deps.Cfg.App.Name,
		})
	})

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		// Per-client rate limiter
		rateLimiter := middleware.NewClientRateLimiter(middleware.RateLimiterConfig{
			RequestsPerSecond: float64(deps.Cfg.RateLimit.Requests) / float64(deps.Cfg.RateLimit.Duration),
			BurstSize:         deps.Cfg.RateLimit.Requests,
			CleanupInterval:   5 * time.Minute,
			EntryTTL:          10 * time.Minute,
		})
		v1.Use(rateLimiter.Middleware())

		registerRoutes(v1, h, deps)
	}

	return router
}

func registerRoutes(v1 *gin.RouterGroup, h *Handlers, deps *Deps) {
	idempotency := middleware.IdempotencyConfig{Repo: deps.IdempotencyRepo}

	// Dashboard
	v1.GET("/dashboard", h.Dashboard.GetStats)

	// Inventory version and reconciliation
	inventory := v1.Group("/inventory")
	{
		inventory.GET("/version", h.Inventory.GetVersion)
		inventory.GET("/watch", h.Inventory.Watch)
		inventory.GET("/reconciliation", h.Inventory.Reconcile)
	}

	// Agencies
	agencies := v1.Group("/agencies")
	{
		agencies.GET("", h.Agency.List)
		agencies.POST("", h.Agency.Create)
		agencies.GET("/:id", h.Agency.Get)
		agencies.PUT("/:id", h.Agency.Update)
		agencies.DELETE("/:id", h.Agency.Delete)
	}

	// Agency types
	agencyTypes := v1.Group("/agency-types")
	{
		agencyTypes.GET("", h.Agency.ListTypes)
		agencyTypes.POST("", h.Agency.CreateType)
	}

	// Items
	items := v1.Group("/items")
	{
		items.GET("", h.Item.List)
		items.POST("", h.Item.Create)
		items.GET("/low-stock", h.Item.GetLowStock)
		items.GET("/:id", h.Item.Get)
		items.PUT("/:id", h.Item.Update)
		items.DELETE("/:id", h.Item.Delete)
		items.PUT("/:id/stock", h.Item.SetStock)
	}

	// Receipts: creation is stock-mutating, so a key is required
	receipts := v1.Group("/receipts")
	{
		receipts.GET("", h.Receipt.List)
		receipts.POST("", middleware.IdempotencyRequired(idempotency), h.Receipt.Create)
		receipts.GET("/:id", h.Receipt.Get)
		receipts.DELETE("/:id", h.Receipt.Delete)
	}

	// Issues
	issues := v1.Group("/issues")
	{
		issues.GET("", h.Issue.List)
		issues.POST("", middleware.IdempotencyRequired(idempotency), h.Issue.Create)
		issues.GET("/:id", h.Issue.Get)
		issues.DELETE("/:id", h.Issue.Delete)
		issues.GET("/:id/stock-check", h.Issue.CheckStock)
		issues.POST("/:id/confirm", middleware.Idempotency(idempotency), h.Issue.Confirm)
		issues.POST("/:id/deliver", h.Issue.Deliver)
		issues.POST("/:id/postpone", h.Issue.Postpone)
	}

	// Payments
	payments := v1.Group("/payments")
	{
		payments.GET("", h.Payment.List)
		payments.POST("", middleware.Idempotency(idempotency), h.Payment.Create)
		payments.GET("/:id", h.Payment.Get)
		payments.DELETE("/:id", h.Payment.Delete)
	}
}

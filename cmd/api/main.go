package main

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/ndtduy/agency-api/internal/application/service"
	"github.com/ndtduy/agency-api/internal/config"
	"github.com/ndtduy/agency-api/internal/infrastructure/database"
	"github.com/ndtduy/agency-api/internal/infrastructure/repository"
	"github.com/ndtduy/agency-api/internal/inventory"
	"github.com/ndtduy/agency-api/internal/presentation/http/handler"
	"github.com/ndtduy/agency-api/internal/presentation/http/routes"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Set Gin mode based on environment
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Connect to database
	db, err := database.NewPostgresDB(&cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Run auto-migrations
	if err := database.AutoMigrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Seed default data
	if err := database.SeedDefaultData(db); err != nil {
		log.Printf("Warning: Failed to seed default data: %v", err)
	}

	// Initialize repositories
	agencyRepo := repository.NewAgencyRepository(db)
	agencyTypeRepo := repository.NewAgencyTypeRepository(db)
	itemRepo := repository.NewItemRepository(db)
	receiptRepo := repository.NewReceiptRepository(db)
	receiptDetailRepo := repository.NewReceiptDetailRepository(db)
	issueRepo := repository.NewIssueRepository(db)
	issueDetailRepo := repository.NewIssueDetailRepository(db)
	paymentRepo := repository.NewPaymentRepository(db)
	idempotencyRepo := repository.NewIdempotencyRepository(db)

	// Sweep expired idempotency keys in the background
	go func() {
		ticker := time.NewTicker(time.Hour)
		defer ticker.Stop()
		for range ticker.C {
			if err := idempotencyRepo.DeleteExpired(context.Background()); err != nil {
				log.Printf("Warning: failed to clean up expired idempotency keys: %v", err)
			}
		}
	}()

	// Inventory version broadcaster, shared by every stock-mutating service
	broadcaster := inventory.NewBroadcaster()

	// Initialize services
	agencyService := service.NewAgencyService(agencyRepo, agencyTypeRepo)
	itemService := service.NewItemService(itemRepo, broadcaster)
	receiptService := service.NewReceiptService(receiptRepo, receiptDetailRepo, itemRepo, agencyRepo, broadcaster)
	issueService := service.NewIssueService(issueRepo, issueDetailRepo, itemRepo, agencyRepo, broadcaster)
	paymentService := service.NewPaymentService(paymentRepo, agencyRepo)
	reconciliationService := service.NewReconciliationService(
		itemRepo, issueRepo, receiptRepo,
		inventory.DefaultLedgerPolicy(),
		cfg.Inventory.ReconcileTolerance,
	)
	reportService := service.NewReportService(agencyRepo, itemRepo, issueRepo, receiptRepo)

	// Initialize handlers
	handlers := &routes.Handlers{
		Agency:    handler.NewAgencyHandler(agencyService),
		Item:      handler.NewItemHandler(itemService),
		Receipt:   handler.NewReceiptHandler(receiptService),
		Issue:     handler.NewIssueHandler(issueService),
		Payment:   handler.NewPaymentHandler(paymentService),
		Inventory: handler.NewInventoryHandler(broadcaster, reconciliationService),
		Dashboard: handler.NewDashboardHandler(reportService),
	}

	// Setup routes
	router := routes.Setup(handlers, &routes.Deps{
		Cfg:             cfg,
		IdempotencyRepo: idempotencyRepo,
	})

	// Get port from environment or use default
	port := cfg.App.Port
	if port == "" {
		port = "8080"
	}

	log.Printf("Starting %s server on port %s...", cfg.App.Name, port)
	log.Printf("Environment: %s", cfg.App.Env)

	if err := router.Run(":" + port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
		os.Exit(1)
	}
}

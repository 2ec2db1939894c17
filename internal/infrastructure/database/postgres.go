package database

import (
	"fmt"
	"log"

	"github.com/ndtduy/agency-api/internal/config"
	"github.com/ndtduy/agency-api/internal/domain/entity"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewPostgresDB creates a new PostgreSQL database connection
func NewPostgresDB(cfg *config.DatabaseConfig) (*gorm.DB, error) {
	logLevel := logger.Info

	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN:                  cfg.DSN(),
		PreferSimpleProtocol: true, // disables implicit prepared statement usage
	}), &gorm.Config{
		Logger: logger.Default.LogMode(logLevel),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Get underlying SQL DB to set connection pool settings
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	// Set connection pool settings
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)

	log.Println("Successfully connected to PostgreSQL database")
	return db, nil
}

// AutoMigrate runs GORM auto-migration for all entities
func AutoMigrate(db *gorm.DB) error {
	log.Println("Running database migrations...")

	err := db.AutoMigrate(
		// Agency entities
		&entity.AgencyType{},
		&entity.Agency{},

		// Inventory entities
		&entity.Item{},

		// Document entities
		&entity.Receipt{},
		&entity.ReceiptDetail{},
		&entity.Issue{},
		&entity.IssueDetail{},
		&entity.Payment{},

		// System entities
		&entity.IdempotencyKey{},
	)

	if err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	log.Println("Database migrations completed successfully")
	return nil
}

// SeedDefaultData seeds the database with the default agency types
func SeedDefaultData(db *gorm.DB) error {
	log.Println("Seeding default data...")

	agencyTypes := []entity.AgencyType{
		{Name: "Level 1", MaxDebt: 2_000_000_00},
		{Name: "Level 2", MaxDebt: 1_000_000_00},
		{Name: "Level 3", MaxDebt: 500_000_00},
	}

	for i := range agencyTypes {
		var existing entity.AgencyType
		if err := db.Where("name = ?", agencyTypes[i].Name).First(&existing).Error; err != nil {
			if err := db.Create(&agencyTypes[i]).Error; err != nil {
				log.Printf("Warning: failed to create agency type %s: %v", agencyTypes[i].Name, err)
			}
		}
	}

	log.Println("Default data seeding completed")
	return nil
}

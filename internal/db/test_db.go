package db

import (
	"fmt"
	"log"

	"github.com/yhkang/stylehub-backend/internal/app/model"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// SetupTestDB creates an in-memory SQLite database for testing
func SetupTestDB() (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to test database: %w", err)
	}

	// Run migrations
	err = db.AutoMigrate(
		&model.Attribute{},
		&model.AttributeValue{},
		&model.ProductType{},
		&model.ProductTypeVariantAttribute{},
		&model.Product{},
		&model.ProductChannelListing{},
		&model.Channel{},
		&model.ProductVariant{},
		&model.VariantAttributeValue{},
		&model.VariantChannelListing{},
		&model.Warehouse{},
		&model.Stock{},
		&model.Order{},
		&model.OrderLine{},
	)
	if err != nil {
		return nil, fmt.Errorf("failed to migrate test database: %w", err)
	}

	return db, nil
}

// CleanupTestDB cleans up the test database
func CleanupTestDB(db *gorm.DB) {
	sqlDB, err := db.DB()
	if err != nil {
		log.Printf("Failed to get DB instance: %v", err)
		return
	}
	sqlDB.Close()
}

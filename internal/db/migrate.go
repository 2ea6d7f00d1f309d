package db

import (
	"github.com/yhkang/stylehub-backend/internal/app/model"
	"github.com/yhkang/stylehub-backend/pkg/logger"
)

// Migrate runs database migrations
func Migrate() error {
	logger.Info("Running database migrations...")

	models := []interface{}{
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
	}

	if err := DB.AutoMigrate(models...); err != nil {
		logger.Error("Failed to run migrations", err)
		return err
	}

	logger.Info("Database migrations completed successfully", map[string]interface{}{
		"models_count": len(models),
	})
	return nil
}

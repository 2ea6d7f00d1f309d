package repository

import (
	"errors"

	"github.com/yhkang/stylehub-backend/internal/app/model"
	"github.com/yhkang/stylehub-backend/pkg/logger"
	"gorm.io/gorm"
)

type ListingRepository interface {
	Upsert(listing *model.VariantChannelListing) error
	FindByVariant(variantID string) ([]model.VariantChannelListing, error)
}

type listingRepository struct {
	db *gorm.DB
}

func NewListingRepository(db *gorm.DB) ListingRepository {
	return &listingRepository{db: db}
}

// Upsert creates or replaces the (variant, channel) price row.
func (r *listingRepository) Upsert(listing *model.VariantChannelListing) error {
	var existing model.VariantChannelListing
	err := r.db.Where("variant_id = ? AND channel_id = ?", listing.VariantID, listing.ChannelID).
		First(&existing).Error
	if err == nil {
		return r.db.Model(&existing).Updates(map[string]interface{}{
			"price":    listing.Price,
			"currency": listing.Currency,
		}).Error
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	if err := r.db.Create(listing).Error; err != nil {
		logger.Error("Failed to create variant channel listing", err, map[string]interface{}{
			"variant_id": listing.VariantID,
			"channel_id": listing.ChannelID,
		})
		return err
	}
	return nil
}

func (r *listingRepository) FindByVariant(variantID string) ([]model.VariantChannelListing, error) {
	var listings []model.VariantChannelListing
	err := r.db.Preload("Channel").
		Where("variant_id = ?", variantID).
		Order("created_at").
		Find(&listings).Error
	if err != nil {
		return nil, err
	}
	return listings, nil
}

package repository

import (
	"github.com/yhkang/stylehub-backend/internal/app/model"
	"github.com/yhkang/stylehub-backend/pkg/logger"
	"gorm.io/gorm"
)

type ProductRepository interface {
	Create(product *model.Product) error
	FindByID(id string) (*model.Product, error)
	FindByIDWithVariants(id string) (*model.Product, error)
	FindAll() ([]model.Product, error)
	VariantSelectionAttributes(productID string) ([]model.Attribute, error)
	ChannelIDs(productID string) ([]string, error)
	AddChannelListing(listing *model.ProductChannelListing) error
}

type productRepository struct {
	db *gorm.DB
}

func NewProductRepository(db *gorm.DB) ProductRepository {
	return &productRepository{db: db}
}

func (r *productRepository) Create(product *model.Product) error {
	logger.Debug("Creating product in database", map[string]interface{}{
		"name":            product.Name,
		"product_type_id": product.ProductTypeID,
	})

	if err := r.db.Create(product).Error; err != nil {
		logger.Error("Failed to create product in database", err, map[string]interface{}{
			"name": product.Name,
		})
		return err
	}
	return nil
}

func (r *productRepository) FindByID(id string) (*model.Product, error) {
	var product model.Product
	if err := r.db.First(&product, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *productRepository) FindByIDWithVariants(id string) (*model.Product, error) {
	var product model.Product
	err := r.db.
		Preload("Variants.AttributeValues.Attribute").
		Preload("Variants.AttributeValues.Value").
		Preload("Variants.Stocks.Warehouse").
		Preload("Variants.ChannelListings.Channel").
		Preload("ChannelListings.Channel").
		First(&product, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *productRepository) FindAll() ([]model.Product, error) {
	var products []model.Product
	if err := r.db.Order("created_at").Find(&products).Error; err != nil {
		logger.Error("Failed to list products", err)
		return nil, err
	}
	return products, nil
}

// VariantSelectionAttributes returns the product type's variant-selection
// attributes in their configured order. Only these attributes participate in
// variant differentiation.
func (r *productRepository) VariantSelectionAttributes(productID string) ([]model.Attribute, error) {
	var rows []model.ProductTypeVariantAttribute
	err := r.db.
		Joins("JOIN products ON products.product_type_id = product_type_variant_attributes.product_type_id").
		Where("products.id = ?", productID).
		Order("product_type_variant_attributes.sort_order").
		Preload("Attribute").
		Find(&rows).Error
	if err != nil {
		logger.Error("Failed to load variant-selection attributes", err, map[string]interface{}{
			"product_id": productID,
		})
		return nil, err
	}

	attributes := make([]model.Attribute, 0, len(rows))
	for _, row := range rows {
		attributes = append(attributes, row.Attribute)
	}
	return attributes, nil
}

// ChannelIDs returns the channels the product carries a listing on.
func (r *productRepository) ChannelIDs(productID string) ([]string, error) {
	var ids []string
	err := r.db.Model(&model.ProductChannelListing{}).
		Where("product_id = ?", productID).
		Pluck("channel_id", &ids).Error
	if err != nil {
		logger.Error("Failed to load product channel assignments", err, map[string]interface{}{
			"product_id": productID,
		})
		return nil, err
	}
	return ids, nil
}

func (r *productRepository) AddChannelListing(listing *model.ProductChannelListing) error {
	if err := r.db.Create(listing).Error; err != nil {
		logger.Error("Failed to assign product to channel", err, map[string]interface{}{
			"product_id": listing.ProductID,
			"channel_id": listing.ChannelID,
		})
		return err
	}
	return nil
}

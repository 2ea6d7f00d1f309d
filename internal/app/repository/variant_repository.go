package repository

import (
	"errors"

	"github.com/yhkang/stylehub-backend/internal/app/model"
	"github.com/yhkang/stylehub-backend/pkg/logger"
	"gorm.io/gorm"
)

// AttributeValuePair is one (attribute, value) element of a variant's
// resolved assignment.
type AttributeValuePair struct {
	AttributeID string
	ValueID     string
}

// VariantAssignment is the resolved assignment of one persisted variant,
// used by conflict detection.
type VariantAssignment struct {
	VariantID string
	Pairs     []AttributeValuePair
}

type VariantRepository interface {
	Create(variant *model.ProductVariant) error
	FindByID(id string) (*model.ProductVariant, error)
	FindBySKU(sku string) (*model.ProductVariant, error)
	FindByProduct(productID string) ([]model.ProductVariant, error)
	FindAll() ([]model.ProductVariant, error)
	FindAssignments(productID string, excludeVariantID string) ([]VariantAssignment, error)
	Update(variant *model.ProductVariant) error
	ReplaceAssignments(variantID string, rows []model.VariantAttributeValue) error
	SKUExists(sku string, excludeVariantID string) (bool, error)
}

type variantRepository struct {
	db *gorm.DB
}

func NewVariantRepository(db *gorm.DB) VariantRepository {
	return &variantRepository{db: db}
}

// Create persists the variant together with its nested assignment, stock and
// listing rows in a single transaction (gorm cascades the associations).
func (r *variantRepository) Create(variant *model.ProductVariant) error {
	logger.Debug("Creating product variant", map[string]interface{}{
		"product_id": variant.ProductID,
		"sku":        variant.SKU,
	})

	if err := r.db.Create(variant).Error; err != nil {
		logger.Error("Failed to create product variant", err, map[string]interface{}{
			"product_id": variant.ProductID,
			"sku":        variant.SKU,
		})
		return err
	}
	return nil
}

func (r *variantRepository) preloaded() *gorm.DB {
	return r.db.
		Preload("AttributeValues", func(db *gorm.DB) *gorm.DB {
			return db.Order("variant_attribute_values.sort_order")
		}).
		Preload("AttributeValues.Attribute").
		Preload("AttributeValues.Value").
		Preload("Stocks.Warehouse").
		Preload("ChannelListings.Channel")
}

func (r *variantRepository) FindByID(id string) (*model.ProductVariant, error) {
	var variant model.ProductVariant
	if err := r.preloaded().First(&variant, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &variant, nil
}

func (r *variantRepository) FindBySKU(sku string) (*model.ProductVariant, error) {
	var variant model.ProductVariant
	if err := r.db.First(&variant, "sku = ?", sku).Error; err != nil {
		return nil, err
	}
	return &variant, nil
}

func (r *variantRepository) FindByProduct(productID string) ([]model.ProductVariant, error) {
	var variants []model.ProductVariant
	err := r.preloaded().
		Where("product_id = ?", productID).
		Order("created_at").
		Find(&variants).Error
	if err != nil {
		logger.Error("Failed to list product variants", err, map[string]interface{}{
			"product_id": productID,
		})
		return nil, err
	}
	return variants, nil
}

func (r *variantRepository) FindAll() ([]model.ProductVariant, error) {
	var variants []model.ProductVariant
	if err := r.preloaded().Preload("Product").Order("created_at").Find(&variants).Error; err != nil {
		logger.Error("Failed to list variants", err)
		return nil, err
	}
	return variants, nil
}

// FindAssignments returns the resolved assignments of the product's
// persisted variants, excluding excludeVariantID when non-empty (the variant
// being updated must not conflict with itself).
func (r *variantRepository) FindAssignments(productID string, excludeVariantID string) ([]VariantAssignment, error) {
	query := r.db.Model(&model.ProductVariant{}).Where("product_id = ?", productID)
	if excludeVariantID != "" {
		query = query.Where("id <> ?", excludeVariantID)
	}

	var variantIDs []string
	if err := query.Pluck("id", &variantIDs).Error; err != nil {
		return nil, err
	}
	if len(variantIDs) == 0 {
		return nil, nil
	}

	var rows []model.VariantAttributeValue
	if err := r.db.Where("variant_id IN ?", variantIDs).Find(&rows).Error; err != nil {
		logger.Error("Failed to load variant assignments", err, map[string]interface{}{
			"product_id": productID,
		})
		return nil, err
	}

	byVariant := make(map[string][]AttributeValuePair, len(variantIDs))
	for _, row := range rows {
		byVariant[row.VariantID] = append(byVariant[row.VariantID], AttributeValuePair{
			AttributeID: row.AttributeID,
			ValueID:     row.AttributeValueID,
		})
	}

	assignments := make([]VariantAssignment, 0, len(byVariant))
	for _, id := range variantIDs {
		if pairs, ok := byVariant[id]; ok {
			assignments = append(assignments, VariantAssignment{VariantID: id, Pairs: pairs})
		}
	}
	return assignments, nil
}

func (r *variantRepository) Update(variant *model.ProductVariant) error {
	if err := r.db.Omit("AttributeValues", "Stocks", "ChannelListings").Save(variant).Error; err != nil {
		logger.Error("Failed to update product variant", err, map[string]interface{}{
			"variant_id": variant.ID,
		})
		return err
	}
	return nil
}

// ReplaceAssignments swaps the variant's full attribute assignment in one
// transaction. Updates touching attributes always carry the complete set.
func (r *variantRepository) ReplaceAssignments(variantID string, rows []model.VariantAttributeValue) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("variant_id = ?", variantID).Delete(&model.VariantAttributeValue{}).Error; err != nil {
			return err
		}
		for i := range rows {
			rows[i].VariantID = variantID
		}
		if len(rows) == 0 {
			return nil
		}
		return tx.Create(&rows).Error
	})
}

func (r *variantRepository) SKUExists(sku string, excludeVariantID string) (bool, error) {
	query := r.db.Model(&model.ProductVariant{}).Where("sku = ?", sku)
	if excludeVariantID != "" {
		query = query.Where("id <> ?", excludeVariantID)
	}

	var count int64
	if err := query.Count(&count).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, err
	}
	return count > 0, nil
}

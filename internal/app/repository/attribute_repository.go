package repository

import (
	"errors"
	"strings"

	"github.com/yhkang/stylehub-backend/internal/app/model"
	"github.com/yhkang/stylehub-backend/pkg/logger"
	"github.com/yhkang/stylehub-backend/pkg/util"
	"gorm.io/gorm"
)

type AttributeRepository interface {
	Create(attribute *model.Attribute) error
	FindByID(id string) (*model.Attribute, error)
	FindAll() ([]model.Attribute, error)
	FindValue(attributeID, slug string) (*model.AttributeValue, error)
	ResolveOrCreateValue(attributeID, name string) (*model.AttributeValue, error)
	CountValues(attributeID string) (int64, error)
	DeleteOrphanValues() (int64, error)
}

type attributeRepository struct {
	db *gorm.DB
}

func NewAttributeRepository(db *gorm.DB) AttributeRepository {
	return &attributeRepository{db: db}
}

func (r *attributeRepository) Create(attribute *model.Attribute) error {
	if err := r.db.Create(attribute).Error; err != nil {
		logger.Error("Failed to create attribute", err, map[string]interface{}{
			"name": attribute.Name,
		})
		return err
	}
	return nil
}

func (r *attributeRepository) FindByID(id string) (*model.Attribute, error) {
	var attribute model.Attribute
	if err := r.db.Preload("Values").First(&attribute, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &attribute, nil
}

func (r *attributeRepository) FindAll() ([]model.Attribute, error) {
	var attributes []model.Attribute
	if err := r.db.Preload("Values").Order("name").Find(&attributes).Error; err != nil {
		logger.Error("Failed to list attributes", err)
		return nil, err
	}
	return attributes, nil
}

func (r *attributeRepository) FindValue(attributeID, slug string) (*model.AttributeValue, error) {
	var value model.AttributeValue
	err := r.db.Where("attribute_id = ? AND slug = ?", attributeID, slug).First(&value).Error
	if err != nil {
		return nil, err
	}
	return &value, nil
}

// ResolveOrCreateValue maps a value name (or slug) to the attribute's
// canonical value, creating and persisting a new one when no value with the
// slugified name exists. Persisting immediately keeps the value visible to
// conflict-detection queries later in the same request. Repeated calls with
// the same name resolve to the same row.
func (r *attributeRepository) ResolveOrCreateValue(attributeID, name string) (*model.AttributeValue, error) {
	slug := util.Slugify(name)

	value, err := r.FindValue(attributeID, slug)
	if err == nil {
		return value, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	created := &model.AttributeValue{
		AttributeID: attributeID,
		Name:        strings.TrimSpace(name),
		Slug:        slug,
	}
	if err := r.db.Create(created).Error; err != nil {
		// Lost a race against a concurrent request creating the same value;
		// the existing row is the canonical one.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return r.FindValue(attributeID, slug)
		}
		logger.Error("Failed to create attribute value", err, map[string]interface{}{
			"attribute_id": attributeID,
			"slug":         slug,
		})
		return nil, err
	}

	logger.Debug("Attribute value created", map[string]interface{}{
		"attribute_id": attributeID,
		"value_id":     created.ID,
		"slug":         slug,
	})
	return created, nil
}

func (r *attributeRepository) CountValues(attributeID string) (int64, error) {
	var count int64
	err := r.db.Model(&model.AttributeValue{}).
		Where("attribute_id = ?", attributeID).
		Count(&count).Error
	return count, err
}

// DeleteOrphanValues removes lazily created values no longer referenced by
// any variant assignment. Run by the maintenance scheduler.
func (r *attributeRepository) DeleteOrphanValues() (int64, error) {
	result := r.db.
		Where("id NOT IN (?)", r.db.Model(&model.VariantAttributeValue{}).Select("attribute_value_id")).
		Delete(&model.AttributeValue{})
	if result.Error != nil {
		logger.Error("Failed to delete orphan attribute values", result.Error)
		return 0, result.Error
	}
	return result.RowsAffected, nil
}

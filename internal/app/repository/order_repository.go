package repository

import (
	"github.com/yhkang/stylehub-backend/internal/app/model"
	"github.com/yhkang/stylehub-backend/pkg/logger"
	"gorm.io/gorm"
)

type OrderRepository interface {
	Create(order *model.Order) error
	CreateLine(line *model.OrderLine) error
	FindLineByID(id string) (*model.OrderLine, error)
	FindDraftLinesReferencing(variantID string) ([]model.OrderLine, error)
	DeleteLines(ids []string) error
	DetachVariant(variantID string) error
}

type orderRepository struct {
	db *gorm.DB
}

func NewOrderRepository(db *gorm.DB) OrderRepository {
	return &orderRepository{db: db}
}

func (r *orderRepository) Create(order *model.Order) error {
	return r.db.Create(order).Error
}

func (r *orderRepository) CreateLine(line *model.OrderLine) error {
	return r.db.Create(line).Error
}

func (r *orderRepository) FindLineByID(id string) (*model.OrderLine, error) {
	var line model.OrderLine
	if err := r.db.First(&line, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &line, nil
}

// FindDraftLinesReferencing returns the order lines that reference the
// variant and belong to orders still in draft state. Only these may be
// removed when the variant is deleted.
func (r *orderRepository) FindDraftLinesReferencing(variantID string) ([]model.OrderLine, error) {
	var lines []model.OrderLine
	err := r.db.
		Joins("JOIN orders ON orders.id = order_lines.order_id").
		Where("order_lines.variant_id = ? AND orders.status = ?", variantID, model.OrderStatusDraft).
		Find(&lines).Error
	if err != nil {
		logger.Error("Failed to find draft order lines", err, map[string]interface{}{
			"variant_id": variantID,
		})
		return nil, err
	}
	return lines, nil
}

func (r *orderRepository) DeleteLines(ids []string) error {
	if len(ids) == 0 {
		return nil
	}
	if err := r.db.Where("id IN ?", ids).Delete(&model.OrderLine{}).Error; err != nil {
		logger.Error("Failed to delete order lines", err, map[string]interface{}{
			"count": len(ids),
		})
		return err
	}
	return nil
}

// DetachVariant clears the variant reference on the remaining (non-draft)
// lines. The snapshot columns keep those lines renderable.
func (r *orderRepository) DetachVariant(variantID string) error {
	return r.db.Model(&model.OrderLine{}).
		Where("variant_id = ?", variantID).
		Update("variant_id", nil).Error
}

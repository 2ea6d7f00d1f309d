package repository

import (
	"github.com/yhkang/stylehub-backend/internal/app/model"
	"github.com/yhkang/stylehub-backend/pkg/logger"
	"gorm.io/gorm"
)

type StockRepository interface {
	CreateBulk(stocks []model.Stock) error
	FindByVariant(variantID string) ([]model.Stock, error)
	WarehouseIDsForVariant(variantID string) ([]string, error)
	Upsert(stock *model.Stock) error
	DeleteByWarehouses(variantID string, warehouseIDs []string) error
}

type stockRepository struct {
	db *gorm.DB
}

func NewStockRepository(db *gorm.DB) StockRepository {
	return &stockRepository{db: db}
}

func (r *stockRepository) CreateBulk(stocks []model.Stock) error {
	if len(stocks) == 0 {
		return nil
	}
	if err := r.db.Create(&stocks).Error; err != nil {
		logger.Error("Failed to create stock records", err, map[string]interface{}{
			"count": len(stocks),
		})
		return err
	}
	return nil
}

func (r *stockRepository) FindByVariant(variantID string) ([]model.Stock, error) {
	var stocks []model.Stock
	err := r.db.Preload("Warehouse").
		Where("variant_id = ?", variantID).
		Order("created_at").
		Find(&stocks).Error
	if err != nil {
		logger.Error("Failed to list stocks", err, map[string]interface{}{
			"variant_id": variantID,
		})
		return nil, err
	}
	return stocks, nil
}

func (r *stockRepository) WarehouseIDsForVariant(variantID string) ([]string, error) {
	var ids []string
	err := r.db.Model(&model.Stock{}).
		Where("variant_id = ?", variantID).
		Pluck("warehouse_id", &ids).Error
	return ids, err
}

// Upsert updates the quantity of the (variant, warehouse) row, creating it
// when absent. QuantityAllocated is never touched here.
func (r *stockRepository) Upsert(stock *model.Stock) error {
	var existing model.Stock
	err := r.db.Where("variant_id = ? AND warehouse_id = ?", stock.VariantID, stock.WarehouseID).
		First(&existing).Error
	if err == nil {
		return r.db.Model(&existing).Update("quantity", stock.Quantity).Error
	}
	if err != gorm.ErrRecordNotFound {
		return err
	}
	return r.db.Create(stock).Error
}

func (r *stockRepository) DeleteByWarehouses(variantID string, warehouseIDs []string) error {
	if len(warehouseIDs) == 0 {
		return nil
	}
	err := r.db.Where("variant_id = ? AND warehouse_id IN ?", variantID, warehouseIDs).
		Delete(&model.Stock{}).Error
	if err != nil {
		logger.Error("Failed to delete stock records", err, map[string]interface{}{
			"variant_id": variantID,
		})
	}
	return err
}

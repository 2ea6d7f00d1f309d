package repository

import (
	"github.com/yhkang/stylehub-backend/internal/app/model"
	"gorm.io/gorm"
)

type WarehouseRepository interface {
	Create(warehouse *model.Warehouse) error
	FindByID(id string) (*model.Warehouse, error)
	FindByIDs(ids []string) ([]model.Warehouse, error)
	FindAll() ([]model.Warehouse, error)
}

type warehouseRepository struct {
	db *gorm.DB
}

func NewWarehouseRepository(db *gorm.DB) WarehouseRepository {
	return &warehouseRepository{db: db}
}

func (r *warehouseRepository) Create(warehouse *model.Warehouse) error {
	return r.db.Create(warehouse).Error
}

func (r *warehouseRepository) FindByID(id string) (*model.Warehouse, error) {
	var warehouse model.Warehouse
	if err := r.db.First(&warehouse, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &warehouse, nil
}

func (r *warehouseRepository) FindByIDs(ids []string) ([]model.Warehouse, error) {
	var warehouses []model.Warehouse
	if len(ids) == 0 {
		return warehouses, nil
	}
	if err := r.db.Where("id IN ?", ids).Find(&warehouses).Error; err != nil {
		return nil, err
	}
	return warehouses, nil
}

func (r *warehouseRepository) FindAll() ([]model.Warehouse, error) {
	var warehouses []model.Warehouse
	if err := r.db.Order("name").Find(&warehouses).Error; err != nil {
		return nil, err
	}
	return warehouses, nil
}

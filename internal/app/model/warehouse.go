package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Warehouse struct {
	ID        string    `gorm:"type:uuid;primarykey" json:"id"`
	Name      string    `gorm:"not null" json:"name"`
	Slug      string    `gorm:"uniqueIndex;not null" json:"slug"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Warehouse) TableName() string {
	return "warehouses"
}

func (w *Warehouse) BeforeCreate(tx *gorm.DB) error {
	if w.ID == "" {
		w.ID = uuid.NewString()
	}
	return nil
}

// Stock holds the on-hand quantity of a variant in one warehouse.
// At most one row per (variant, warehouse) pair.
type Stock struct {
	ID                string    `gorm:"type:uuid;primarykey" json:"id"`
	VariantID         string    `gorm:"type:uuid;not null;uniqueIndex:idx_stocks_variant_warehouse" json:"variant_id"`
	WarehouseID       string    `gorm:"type:uuid;not null;uniqueIndex:idx_stocks_variant_warehouse" json:"warehouse_id"`
	Quantity          int       `gorm:"default:0" json:"quantity"`
	QuantityAllocated int       `gorm:"default:0" json:"quantity_allocated"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`

	Warehouse Warehouse `gorm:"foreignKey:WarehouseID" json:"warehouse,omitempty"`
}

func (Stock) TableName() string {
	return "stocks"
}

func (s *Stock) BeforeCreate(tx *gorm.DB) error {
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	return nil
}

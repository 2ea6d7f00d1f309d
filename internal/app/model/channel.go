package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Channel is a sales context (storefront, region) with its own currency.
type Channel struct {
	ID           string    `gorm:"type:uuid;primarykey" json:"id"`
	Name         string    `gorm:"not null" json:"name"`
	Slug         string    `gorm:"uniqueIndex;not null" json:"slug"`
	CurrencyCode string    `gorm:"type:varchar(3);not null" json:"currency_code"`
	IsActive     bool      `gorm:"default:true" json:"is_active"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func (Channel) TableName() string {
	return "channels"
}

func (c *Channel) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	return nil
}

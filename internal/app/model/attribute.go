package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Attribute is a named axis of variation (e.g. Color, Size). Whether it
// participates in variant differentiation is decided per product type
// (ProductTypeVariantAttribute).
type Attribute struct {
	ID        string    `gorm:"type:uuid;primarykey" json:"id"`
	Name      string    `gorm:"not null" json:"name"`
	Slug      string    `gorm:"uniqueIndex;not null" json:"slug"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Values []AttributeValue `gorm:"foreignKey:AttributeID;constraint:OnDelete:CASCADE" json:"values,omitempty"`
}

func (Attribute) TableName() string {
	return "attributes"
}

func (a *Attribute) BeforeCreate(tx *gorm.DB) error {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	return nil
}

// AttributeValue is one permitted value of an attribute. Values are created
// lazily when a variant assignment supplies an unknown name. The slug is
// unique within the owning attribute, not globally.
type AttributeValue struct {
	ID          string    `gorm:"type:uuid;primarykey" json:"id"`
	AttributeID string    `gorm:"type:uuid;not null;uniqueIndex:idx_attribute_values_attribute_slug" json:"attribute_id"`
	Name        string    `gorm:"not null" json:"name"`
	Slug        string    `gorm:"not null;uniqueIndex:idx_attribute_values_attribute_slug" json:"slug"`
	CreatedAt   time.Time `json:"created_at"`

	Attribute Attribute `gorm:"foreignKey:AttributeID" json:"-"`
}

func (AttributeValue) TableName() string {
	return "attribute_values"
}

func (v *AttributeValue) BeforeCreate(tx *gorm.DB) error {
	if v.ID == "" {
		v.ID = uuid.NewString()
	}
	return nil
}

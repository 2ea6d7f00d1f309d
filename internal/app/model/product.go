package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ProductType groups products sharing the same set of variant-selection
// attributes (e.g. "T-Shirt" varies by color and size).
type ProductType struct {
	ID        string    `gorm:"type:uuid;primarykey" json:"id"`
	Name      string    `gorm:"not null" json:"name"`
	Slug      string    `gorm:"uniqueIndex;not null" json:"slug"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	VariantAttributes []ProductTypeVariantAttribute `gorm:"foreignKey:ProductTypeID;constraint:OnDelete:CASCADE" json:"variant_attributes,omitempty"`
}

func (ProductType) TableName() string {
	return "product_types"
}

func (t *ProductType) BeforeCreate(tx *gorm.DB) error {
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	return nil
}

// ProductTypeVariantAttribute marks an attribute as variant-selecting for a
// product type. SortOrder fixes the display order of the assignment.
type ProductTypeVariantAttribute struct {
	ID            string `gorm:"type:uuid;primarykey" json:"id"`
	ProductTypeID string `gorm:"type:uuid;not null;uniqueIndex:idx_product_type_variant_attrs" json:"product_type_id"`
	AttributeID   string `gorm:"type:uuid;not null;uniqueIndex:idx_product_type_variant_attrs" json:"attribute_id"`
	SortOrder     int    `gorm:"default:0" json:"sort_order"`

	Attribute Attribute `gorm:"foreignKey:AttributeID" json:"attribute"`
}

func (ProductTypeVariantAttribute) TableName() string {
	return "product_type_variant_attributes"
}

func (a *ProductTypeVariantAttribute) BeforeCreate(tx *gorm.DB) error {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	return nil
}

type Product struct {
	ID            string    `gorm:"type:uuid;primarykey" json:"id"`
	ProductTypeID string    `gorm:"type:uuid;index;not null" json:"product_type_id"`
	Name          string    `gorm:"not null" json:"name"`
	Slug          string    `gorm:"uniqueIndex;not null" json:"slug"`
	Description   string    `gorm:"type:text" json:"description"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`

	ProductType     ProductType             `gorm:"foreignKey:ProductTypeID" json:"-"`
	Variants        []ProductVariant        `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE" json:"variants,omitempty"`
	ChannelListings []ProductChannelListing `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE" json:"channel_listings,omitempty"`
}

func (Product) TableName() string {
	return "products"
}

func (p *Product) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return nil
}

// ProductChannelListing is the product's publication state on a channel.
// A variant can only be listed on channels its parent product carries.
type ProductChannelListing struct {
	ID          string    `gorm:"type:uuid;primarykey" json:"id"`
	ProductID   string    `gorm:"type:uuid;not null;uniqueIndex:idx_product_channel_listings" json:"product_id"`
	ChannelID   string    `gorm:"type:uuid;not null;uniqueIndex:idx_product_channel_listings" json:"channel_id"`
	IsPublished bool      `gorm:"default:true" json:"is_published"`
	CreatedAt   time.Time `json:"created_at"`

	Channel Channel `gorm:"foreignKey:ChannelID" json:"channel,omitempty"`
}

func (ProductChannelListing) TableName() string {
	return "product_channel_listings"
}

func (l *ProductChannelListing) BeforeCreate(tx *gorm.DB) error {
	if l.ID == "" {
		l.ID = uuid.NewString()
	}
	return nil
}

package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ProductVariant is a sellable combination of attribute values for a
// product. SKU is unique across all variants system-wide.
type ProductVariant struct {
	ID             string    `gorm:"type:uuid;primarykey" json:"id"`
	ProductID      string    `gorm:"type:uuid;index;not null" json:"product_id"`
	SKU            string    `gorm:"uniqueIndex;not null" json:"sku"`
	Name           string    `json:"name"`
	Weight         *float64  `json:"weight,omitempty"` // kg, non-negative
	TrackInventory bool      `gorm:"default:true" json:"track_inventory"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`

	Product         Product                 `gorm:"foreignKey:ProductID" json:"-"`
	AttributeValues []VariantAttributeValue `gorm:"foreignKey:VariantID;constraint:OnDelete:CASCADE" json:"attribute_values,omitempty"`
	Stocks          []Stock                 `gorm:"foreignKey:VariantID;constraint:OnDelete:CASCADE" json:"stocks,omitempty"`
	ChannelListings []VariantChannelListing `gorm:"foreignKey:VariantID;constraint:OnDelete:CASCADE" json:"channel_listings,omitempty"`
}

func (ProductVariant) TableName() string {
	return "product_variants"
}

func (v *ProductVariant) BeforeCreate(tx *gorm.DB) error {
	if v.ID == "" {
		v.ID = uuid.NewString()
	}
	return nil
}

// VariantAttributeValue binds one attribute of the variant's product type to
// exactly one value. A variant carries one row per variant-selection
// attribute, no more, no fewer.
type VariantAttributeValue struct {
	ID               string `gorm:"type:uuid;primarykey" json:"id"`
	VariantID        string `gorm:"type:uuid;not null;uniqueIndex:idx_variant_attribute" json:"variant_id"`
	AttributeID      string `gorm:"type:uuid;not null;uniqueIndex:idx_variant_attribute" json:"attribute_id"`
	AttributeValueID string `gorm:"type:uuid;not null" json:"attribute_value_id"`
	SortOrder        int    `gorm:"default:0" json:"sort_order"`

	Attribute Attribute      `gorm:"foreignKey:AttributeID" json:"attribute"`
	Value     AttributeValue `gorm:"foreignKey:AttributeValueID" json:"value"`
}

func (VariantAttributeValue) TableName() string {
	return "variant_attribute_values"
}

func (a *VariantAttributeValue) BeforeCreate(tx *gorm.DB) error {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	return nil
}

// VariantChannelListing is the variant's price on one channel. The price
// respects the channel currency's minor-unit precision.
type VariantChannelListing struct {
	ID        string          `gorm:"type:uuid;primarykey" json:"id"`
	VariantID string          `gorm:"type:uuid;not null;uniqueIndex:idx_variant_channel_listings" json:"variant_id"`
	ChannelID string          `gorm:"type:uuid;not null;uniqueIndex:idx_variant_channel_listings" json:"channel_id"`
	Price     decimal.Decimal `gorm:"type:numeric(12,3);not null" json:"price"`
	Currency  string          `gorm:"type:varchar(3);not null" json:"currency"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`

	Channel Channel `gorm:"foreignKey:ChannelID" json:"channel,omitempty"`
}

func (VariantChannelListing) TableName() string {
	return "variant_channel_listings"
}

func (l *VariantChannelListing) BeforeCreate(tx *gorm.DB) error {
	if l.ID == "" {
		l.ID = uuid.NewString()
	}
	return nil
}

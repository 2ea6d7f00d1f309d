package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type OrderStatus string

const (
	OrderStatusDraft       OrderStatus = "draft"       // still editable, lines may be restructured freely
	OrderStatusUnconfirmed OrderStatus = "unconfirmed" // placed, awaiting confirmation
	OrderStatusUnfulfilled OrderStatus = "unfulfilled"
	OrderStatusFulfilled   OrderStatus = "fulfilled"
	OrderStatusCanceled    OrderStatus = "canceled"
)

type Order struct {
	ID        string      `gorm:"type:uuid;primarykey" json:"id"`
	Number    string      `gorm:"uniqueIndex;not null" json:"number"`
	Status    OrderStatus `gorm:"type:varchar(20);default:'draft'" json:"status"`
	CreatedAt time.Time   `json:"created_at"`
	UpdatedAt time.Time   `json:"updated_at"`

	Lines []OrderLine `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"lines,omitempty"`
}

func (Order) TableName() string {
	return "orders"
}

func (o *Order) BeforeCreate(tx *gorm.DB) error {
	if o.ID == "" {
		o.ID = uuid.NewString()
	}
	return nil
}

// OrderLine references a variant while it exists. The variant reference is
// nullable: deleting a variant detaches lines of non-draft orders instead of
// deleting them, so order history survives catalog changes. The snapshot
// columns keep the line renderable after detachment.
type OrderLine struct {
	ID          string          `gorm:"type:uuid;primarykey" json:"id"`
	OrderID     string          `gorm:"type:uuid;index;not null" json:"order_id"`
	VariantID   *string         `gorm:"type:uuid;index" json:"variant_id,omitempty"`
	ProductName string          `gorm:"not null" json:"product_name"`
	VariantName string          `json:"variant_name"`
	SKU         string          `json:"sku"`
	Quantity    int             `gorm:"not null" json:"quantity"`
	UnitPrice   decimal.Decimal `gorm:"type:numeric(12,3)" json:"unit_price"`
	Currency    string          `gorm:"type:varchar(3)" json:"currency"`
	CreatedAt   time.Time       `json:"created_at"`

	Order   Order           `gorm:"foreignKey:OrderID" json:"-"`
	Variant *ProductVariant `gorm:"foreignKey:VariantID;constraint:OnDelete:SET NULL" json:"-"`
}

func (OrderLine) TableName() string {
	return "order_lines"
}

func (l *OrderLine) BeforeCreate(tx *gorm.DB) error {
	if l.ID == "" {
		l.ID = uuid.NewString()
	}
	return nil
}

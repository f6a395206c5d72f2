package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// InventoryItem is one stock line. InventoryValue and SalesValue are derived
// from Price and are rewritten on every create and update.
type InventoryItem struct {
	ID             uint            `gorm:"column:id;primaryKey;autoIncrement"`
	BrandName      string          `gorm:"column:brand_name;type:varchar(255);not null"`
	Type           string          `gorm:"column:type;type:varchar(255);not null;index"`
	QuantityOnHand int             `gorm:"column:quantity_on_hand;not null"`
	Price          decimal.Decimal `gorm:"column:price;type:numeric(12,2);not null"`
	ProductsSold   int             `gorm:"column:products_sold;not null"`
	InventoryValue decimal.Decimal `gorm:"column:inventory_value;type:numeric(20,2);not null"`
	SalesValue     decimal.Decimal `gorm:"column:sales_value;type:numeric(20,2);not null"`
	CreatedAt      time.Time       `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt      time.Time       `gorm:"column:updated_at;autoUpdateTime"`
	DeletedAt      gorm.DeletedAt  `gorm:"column:deleted_at;index"`
}

func (InventoryItem) TableName() string {
	return "inventory"
}

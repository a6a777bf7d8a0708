package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Part is a stocked inventory item. BuyingPrice is only rewritten by goods
// receipt; checkout decrements Stock with a guarded update so it cannot go
// negative under concurrent carts.
type Part struct {
	ID          uuid.UUID       `gorm:"column:id;type:text;primaryKey"`
	PartName    string          `gorm:"column:part_name;not null;index"`
	PartNumber  string          `gorm:"column:part_number;not null;index"`
	Category    string          `gorm:"column:category;not null"`
	Price       decimal.Decimal `gorm:"column:price;type:numeric;not null"`
	BuyingPrice decimal.Decimal `gorm:"column:buying_price;type:numeric;not null"`
	Stock       int             `gorm:"column:stock;not null;default:0"`
	CreatedAt   time.Time       `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time       `gorm:"column:updated_at;autoUpdateTime"`
}

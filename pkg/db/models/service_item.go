package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ServiceItem is a priced labour entry; services carry no cost and count as
// full margin at checkout.
type ServiceItem struct {
	ID        uuid.UUID       `gorm:"column:id;type:text;primaryKey"`
	Name      string          `gorm:"column:name;not null;index"`
	Cost      decimal.Decimal `gorm:"column:cost;type:numeric;not null"`
	CreatedAt time.Time       `gorm:"column:created_at;autoCreateTime"`
}

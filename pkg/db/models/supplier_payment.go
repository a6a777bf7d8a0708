package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// SupplierPayment records money handed to a supplier. The amount is allocated
// against that supplier's unpaid goods-received notes, oldest note first.
type SupplierPayment struct {
	ID         uuid.UUID       `gorm:"column:id;type:text;primaryKey"`
	SupplierID uuid.UUID       `gorm:"column:supplier_id;type:text;not null;index"`
	Amount     decimal.Decimal `gorm:"column:amount;type:numeric;not null"`
	Note       string          `gorm:"column:note;not null"`
	UserID     uuid.UUID       `gorm:"column:user_id;type:text;not null"`
	PaidAt     time.Time       `gorm:"column:paid_at;not null;index"`
}

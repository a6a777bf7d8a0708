package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DayEndReport is the immutable reconciliation record for one closed session.
// The unique SessionID index guarantees a session can only ever be reconciled
// once.
type DayEndReport struct {
	ID          uuid.UUID       `gorm:"column:id;type:text;primaryKey"`
	SessionID   uuid.UUID       `gorm:"column:session_id;type:text;not null;uniqueIndex"`
	UserID      uuid.UUID       `gorm:"column:user_id;type:text;not null"`
	Float       decimal.Decimal `gorm:"column:float;type:numeric;not null"`
	CashSales   decimal.Decimal `gorm:"column:cash_sales;type:numeric;not null"`
	CreditSales decimal.Decimal `gorm:"column:credit_sales;type:numeric;not null"`
	TotalSales  decimal.Decimal `gorm:"column:total_sales;type:numeric;not null"`
	GrossProfit decimal.Decimal `gorm:"column:gross_profit;type:numeric;not null"`
	Expenses    decimal.Decimal `gorm:"column:expenses;type:numeric;not null"`
	Expected    decimal.Decimal `gorm:"column:expected;type:numeric;not null"`
	CashInHand  decimal.Decimal `gorm:"column:cash_in_hand;type:numeric;not null"`
	Variance    decimal.Decimal `gorm:"column:variance;type:numeric;not null"`
	NetProfit   decimal.Decimal `gorm:"column:net_profit;type:numeric;not null"`
	GeneratedAt time.Time       `gorm:"column:generated_at;not null"`
}

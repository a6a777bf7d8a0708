package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Expense is a cash outflow for a calendar day. Day-end reconciliation sums
// expenses by Date, not by session.
type Expense struct {
	ID          uuid.UUID       `gorm:"column:id;type:text;primaryKey"`
	Date        string          `gorm:"column:date;not null;index"`
	Category    string          `gorm:"column:category;not null"`
	Description string          `gorm:"column:description;not null"`
	Amount      decimal.Decimal `gorm:"column:amount;type:numeric;not null"`
	UserID      uuid.UUID       `gorm:"column:user_id;type:text;not null"`
	CreatedAt   time.Time       `gorm:"column:created_at;autoCreateTime"`
}

package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/garagemaster/backend/pkg/enums"
)

// Session is one user's open-to-closed business-day window. It owns the
// shift-scoped invoice counter and the opening float; CashInHand is written
// exactly once, at close.
type Session struct {
	ID             uuid.UUID           `gorm:"column:id;type:text;primaryKey"`
	UserID         uuid.UUID           `gorm:"column:user_id;type:text;not null;index"`
	StartTime      time.Time           `gorm:"column:start_time;not null"`
	EndTime        *time.Time          `gorm:"column:end_time"`
	FloatCash      decimal.Decimal     `gorm:"column:float_cash;type:numeric;not null"`
	CashInHand     decimal.Decimal     `gorm:"column:cash_in_hand;type:numeric;not null"`
	Status         enums.SessionStatus `gorm:"column:status;type:text;not null;default:'open';index"`
	InvoiceCounter int                 `gorm:"column:invoice_counter;not null;default:0"`
	CreatedAt      time.Time           `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt      time.Time           `gorm:"column:updated_at;autoUpdateTime"`
}

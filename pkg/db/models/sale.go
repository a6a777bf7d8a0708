package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/garagemaster/backend/pkg/enums"
)

// Sale is the immutable record of a completed checkout. InvoiceNo is scoped to
// the session that produced it; (session_id, invoice_no) is the real unique
// key. IsPaid is the only field that may change after commit, and only from
// false to true.
type Sale struct {
	ID            uuid.UUID           `gorm:"column:id;type:text;primaryKey"`
	InvoiceNo     int                 `gorm:"column:invoice_no;not null;uniqueIndex:idx_sales_session_invoice"`
	SessionID     uuid.UUID           `gorm:"column:session_id;type:text;not null;uniqueIndex:idx_sales_session_invoice;index"`
	UserID        uuid.UUID           `gorm:"column:user_id;type:text;not null"`
	VehicleNo     string              `gorm:"column:vehicle_no;not null;index"`
	CustomerName  string              `gorm:"column:customer_name;not null"`
	CustomerPhone string              `gorm:"column:customer_phone;not null;index"`
	Mileage       int                 `gorm:"column:mileage;not null;default:0"`
	Subtotal      decimal.Decimal     `gorm:"column:subtotal;type:numeric;not null"`
	Discount      decimal.Decimal     `gorm:"column:discount;type:numeric;not null"`
	Total         decimal.Decimal     `gorm:"column:total;type:numeric;not null"`
	CashReceived  decimal.Decimal     `gorm:"column:cash_received;type:numeric;not null"`
	Balance       decimal.Decimal     `gorm:"column:balance;type:numeric;not null"`
	Profit        decimal.Decimal     `gorm:"column:profit;type:numeric;not null"`
	PaymentMethod enums.PaymentMethod `gorm:"column:payment_method;type:text;not null"`
	IsPaid        bool                `gorm:"column:is_paid;not null;index"`
	SoldAt        time.Time           `gorm:"column:sold_at;not null;index"`
	Lines         []SaleLine          `gorm:"foreignKey:SaleID;constraint:OnDelete:CASCADE"`
	CreatedAt     time.Time           `gorm:"column:created_at;autoCreateTime"`
}

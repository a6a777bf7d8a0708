package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// GRN is a goods-received note. Creating one increases stock and rewrites the
// buying price of each received part; PaidAmount grows as supplier payments
// are allocated against it, oldest note first.
type GRN struct {
	ID         uuid.UUID       `gorm:"column:id;type:text;primaryKey"`
	SupplierID uuid.UUID       `gorm:"column:supplier_id;type:text;not null;index"`
	Supplier   string          `gorm:"column:supplier;not null"`
	Reference  string          `gorm:"column:reference;not null"`
	Total      decimal.Decimal `gorm:"column:total;type:numeric;not null"`
	PaidAmount decimal.Decimal `gorm:"column:paid_amount;type:numeric;not null"`
	UserID     uuid.UUID       `gorm:"column:user_id;type:text;not null"`
	ReceivedAt time.Time       `gorm:"column:received_at;not null;index"`
	Lines      []GRNLine       `gorm:"foreignKey:GRNID;constraint:OnDelete:CASCADE"`
	CreatedAt  time.Time       `gorm:"column:created_at;autoCreateTime"`
}

// GRNLine snapshots one received part with the quantity and unit cost at the
// time of delivery.
type GRNLine struct {
	ID         uuid.UUID       `gorm:"column:id;type:text;primaryKey"`
	GRNID      uuid.UUID       `gorm:"column:grn_id;type:text;not null;index"`
	PartID     uuid.UUID       `gorm:"column:part_id;type:text;not null"`
	PartName   string          `gorm:"column:part_name;not null"`
	PartNumber string          `gorm:"column:part_number;not null"`
	Qty        int             `gorm:"column:qty;not null"`
	UnitCost   decimal.Decimal `gorm:"column:unit_cost;type:numeric;not null"`
}

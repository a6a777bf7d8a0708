package models

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/garagemaster/backend/pkg/enums"
)

// SaleLine is the persisted snapshot of one cart line at commit time. Name,
// price and cost are copied from the catalog so later price edits never
// rewrite history. SettledSaleIDs is populated only on credit settlement
// lines and records which old invoices the line paid off.
type SaleLine struct {
	ID             uuid.UUID          `gorm:"column:id;type:text;primaryKey"`
	SaleID         uuid.UUID          `gorm:"column:sale_id;type:text;not null;index"`
	Kind           enums.SaleLineKind `gorm:"column:kind;type:text;not null"`
	PartID         *uuid.UUID         `gorm:"column:part_id;type:text"`
	ServiceID      *uuid.UUID         `gorm:"column:service_id;type:text"`
	Name           string             `gorm:"column:name;not null"`
	Qty            int                `gorm:"column:qty;not null"`
	UnitPrice      decimal.Decimal    `gorm:"column:unit_price;type:numeric;not null"`
	UnitCost       decimal.Decimal    `gorm:"column:unit_cost;type:numeric;not null"`
	SettledSaleIDs []uuid.UUID        `gorm:"column:settled_sale_ids;type:text;serializer:json"`
}

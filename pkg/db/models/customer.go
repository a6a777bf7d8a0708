package models

import (
	"time"

	"github.com/google/uuid"
)

// Customer is the loyalty ledger, keyed by phone number. Points never drop
// below zero; VehicleNo tracks the most recent vehicle seen at checkout.
type Customer struct {
	ID        uuid.UUID `gorm:"column:id;type:text;primaryKey"`
	Name      string    `gorm:"column:name;not null"`
	Phone     string    `gorm:"column:phone;not null;uniqueIndex"`
	VehicleNo string    `gorm:"column:vehicle_no;not null"`
	Points    int       `gorm:"column:points;not null;default:0"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

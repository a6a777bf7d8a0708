package models

import (
	"time"

	"github.com/google/uuid"
)

// Vehicle is the registry entry the POS autofills customer details from.
type Vehicle struct {
	ID            uuid.UUID `gorm:"column:id;type:text;primaryKey"`
	VehicleNo     string    `gorm:"column:vehicle_no;not null;uniqueIndex"`
	CustomerPhone string    `gorm:"column:customer_phone;not null;index"`
	Model         string    `gorm:"column:model;not null"`
	Year          int       `gorm:"column:year;not null;default:0"`
	Engine        string    `gorm:"column:engine;not null"`
	Chassis       string    `gorm:"column:chassis;not null"`
	Notes         string    `gorm:"column:notes;not null"`
	CreatedAt     time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt     time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

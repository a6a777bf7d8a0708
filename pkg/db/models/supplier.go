package models

import (
	"time"

	"github.com/google/uuid"
)

// Supplier is a goods source; Name is the natural key the GRN form selects by.
type Supplier struct {
	ID        uuid.UUID `gorm:"column:id;type:text;primaryKey"`
	Name      string    `gorm:"column:name;not null;uniqueIndex"`
	Phone     string    `gorm:"column:phone;not null"`
	Address   string    `gorm:"column:address;not null"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
}

package models

import (
	"time"

	"github.com/google/uuid"
)

// JournalEntry is an append-only text block mirroring till activity: sale
// receipts, day starts, day ends. Best-effort; never part of a business
// transaction.
type JournalEntry struct {
	ID        uuid.UUID `gorm:"column:id;type:text;primaryKey"`
	Kind      string    `gorm:"column:kind;not null;index"`
	Content   string    `gorm:"column:content;not null"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime;index"`
}

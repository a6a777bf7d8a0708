package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/garagemaster/backend/pkg/enums"
)

// User is a till operator. PasswordHash holds the encoded Argon2id string.
type User struct {
	ID           uuid.UUID      `gorm:"column:id;type:text;primaryKey"`
	Username     string         `gorm:"column:username;not null;uniqueIndex"`
	PasswordHash string         `gorm:"column:password_hash;not null"`
	Role         enums.UserRole `gorm:"column:role;type:text;not null"`
	CreatedAt    time.Time      `gorm:"column:created_at;autoCreateTime"`
}

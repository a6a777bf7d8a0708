package journal

import (
	"context"

	"gorm.io/gorm"

	"github.com/garagemaster/backend/pkg/db/models"
)

// Repository persists the append-only journal.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, entry *models.JournalEntry) error
	List(ctx context.Context, kind string, limit int) ([]models.JournalEntry, error)
}

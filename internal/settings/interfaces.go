package settings

import (
	"context"

	"github.com/garagemaster/backend/pkg/db/models"
)

// Repository persists shop-level key-value settings.
type Repository interface {
	Upsert(ctx context.Context, setting *models.Setting) error
	Find(ctx context.Context, key string) (*models.Setting, error)
	List(ctx context.Context) ([]models.Setting, error)
}

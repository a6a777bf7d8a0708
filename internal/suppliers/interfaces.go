package suppliers

import (
	"context"

	"github.com/google/uuid"

	"github.com/garagemaster/backend/pkg/db/models"
)

// Repository persists the supplier register.
type Repository interface {
	Create(ctx context.Context, supplier *models.Supplier) error
	Update(ctx context.Context, supplier *models.Supplier) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.Supplier, error)
	List(ctx context.Context) ([]models.Supplier, error)
}

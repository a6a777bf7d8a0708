package vehicles

import (
	"context"

	"github.com/google/uuid"

	"github.com/garagemaster/backend/pkg/db/models"
)

// Repository persists the vehicle register and reads sale history for it.
type Repository interface {
	Create(ctx context.Context, vehicle *models.Vehicle) error
	Update(ctx context.Context, vehicle *models.Vehicle) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.Vehicle, error)
	FindByNumber(ctx context.Context, vehicleNo string) (*models.Vehicle, error)
	Search(ctx context.Context, query string) ([]models.Vehicle, error)
	LastSaleByVehicle(ctx context.Context, vehicleNo string) (*models.Sale, error)
	SalesByVehicle(ctx context.Context, vehicleNo string, limit int) ([]models.Sale, error)
}

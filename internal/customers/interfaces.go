package customers

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/garagemaster/backend/pkg/db/models"
)

// Repository reads the loyalty ledger and the credit book derived from sales.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Search(ctx context.Context, query string) ([]models.Customer, error)
	FindByPhone(ctx context.Context, phone string) (*models.Customer, error)
	SalesByPhone(ctx context.Context, phone string) ([]models.Sale, error)
	OutstandingByPhone(ctx context.Context, phone string) ([]models.Sale, error)
	OutstandingByVehicle(ctx context.Context, vehicleNo string) ([]models.Sale, error)
	MarkSalePaid(ctx context.Context, saleID uuid.UUID) error
}

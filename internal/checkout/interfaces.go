package checkout

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/garagemaster/backend/pkg/db/models"
)

// Repository bundles the persistence the checkout transaction touches:
// the session counter, parts stock, the customer ledger and the sale itself.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	FindOpenSessionByUser(ctx context.Context, userID uuid.UUID) (*models.Session, error)
	NextInvoiceNo(ctx context.Context, sessionID uuid.UUID) (int, error)
	FindPart(ctx context.Context, id uuid.UUID) (*models.Part, error)
	DecrementStock(ctx context.Context, partID uuid.UUID, qty int) error
	FindServiceItem(ctx context.Context, id uuid.UUID) (*models.ServiceItem, error)
	FindCustomerByPhone(ctx context.Context, phone string) (*models.Customer, error)
	SaveCustomer(ctx context.Context, customer *models.Customer) error
	FindUnpaidCreditSales(ctx context.Context, ids []uuid.UUID) ([]models.Sale, error)
	MarkSalesPaid(ctx context.Context, ids []uuid.UUID) (int64, error)
	CreateSale(ctx context.Context, sale *models.Sale) error
	UpsertVehicle(ctx context.Context, vehicleNo, customerPhone string) error
}

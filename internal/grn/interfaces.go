package grn

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/garagemaster/backend/pkg/db/models"
)

// Repository persists goods-received notes, the stock/cost side effects on
// parts, and supplier payments.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	FindSupplier(ctx context.Context, id uuid.UUID) (*models.Supplier, error)
	FindPart(ctx context.Context, id uuid.UUID) (*models.Part, error)
	ReceiveStock(ctx context.Context, partID uuid.UUID, qty int, unitCost decimal.Decimal) error
	CreateGRN(ctx context.Context, grn *models.GRN) error
	FindGRN(ctx context.Context, id uuid.UUID) (*models.GRN, error)
	ListGRNs(ctx context.Context, supplierID uuid.UUID, limit int) ([]models.GRN, error)
	UnpaidGRNsOldestFirst(ctx context.Context, supplierID uuid.UUID) ([]models.GRN, error)
	AddGRNPayment(ctx context.Context, grnID uuid.UUID, amount decimal.Decimal) error
	CreatePayment(ctx context.Context, payment *models.SupplierPayment) error
	PaymentsBySupplier(ctx context.Context, supplierID uuid.UUID) ([]models.SupplierPayment, error)
}

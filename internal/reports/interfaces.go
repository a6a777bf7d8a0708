package reports

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/garagemaster/backend/pkg/db/models"
)

// Repository reads across sales, expenses and deliveries for reporting.
type Repository interface {
	FindOpenSessionByUser(ctx context.Context, userID uuid.UUID) (*models.Session, error)
	SalesBySession(ctx context.Context, sessionID uuid.UUID) ([]models.Sale, error)
	SalesBetween(ctx context.Context, from, to time.Time) ([]models.Sale, error)
	ExpensesBetween(ctx context.Context, fromDate, toDate string) ([]models.Expense, error)
	GRNsBetween(ctx context.Context, from, to time.Time) ([]models.GRN, error)
}

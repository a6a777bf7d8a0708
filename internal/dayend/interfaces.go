package dayend

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/garagemaster/backend/pkg/db/models"
)

// Repository covers everything the reconciliation transaction reads and
// writes: the session being closed, its sales, the day's expenses and the
// resulting report row.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	FindOpenSessionByUser(ctx context.Context, userID uuid.UUID) (*models.Session, error)
	SalesBySession(ctx context.Context, sessionID uuid.UUID) ([]models.Sale, error)
	ExpensesByDate(ctx context.Context, date string) ([]models.Expense, error)
	CloseSession(ctx context.Context, sessionID uuid.UUID, cashInHand decimal.Decimal, endedAt time.Time) error
	CreateReport(ctx context.Context, report *models.DayEndReport) error
	FindReportBySession(ctx context.Context, sessionID uuid.UUID) (*models.DayEndReport, error)
	ListReports(ctx context.Context, limit int) ([]models.DayEndReport, error)
}

package sessions

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/garagemaster/backend/pkg/db/models"
)

// Repository persists till sessions.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, session *models.Session) error
	FindOpenByUser(ctx context.Context, userID uuid.UUID) (*models.Session, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.Session, error)
	NextInvoiceNo(ctx context.Context, sessionID uuid.UUID) (int, error)
	Close(ctx context.Context, sessionID uuid.UUID, cashInHand decimal.Decimal, endedAt time.Time) error
}

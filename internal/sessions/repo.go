package sessions

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/garagemaster/backend/pkg/db/models"
	"github.com/garagemaster/backend/pkg/enums"
)

type repository struct {
	db *gorm.DB
}

// NewRepository builds a sessions repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) Create(ctx context.Context, session *models.Session) error {
	return r.db.WithContext(ctx).Create(session).Error
}

func (r *repository) FindOpenByUser(ctx context.Context, userID uuid.UUID) (*models.Session, error) {
	var session models.Session
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND status = ?", userID, enums.SessionStatusOpen).
		First(&session).Error
	if err != nil {
		return nil, err
	}
	return &session, nil
}

func (r *repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Session, error) {
	var session models.Session
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&session).Error
	if err != nil {
		return nil, err
	}
	return &session, nil
}

// NextInvoiceNo claims the next shift-scoped invoice number. The guarded
// update means a closed session hands out nothing and concurrent checkouts
// never share a number.
func (r *repository) NextInvoiceNo(ctx context.Context, sessionID uuid.UUID) (int, error) {
	res := r.db.WithContext(ctx).Exec(`
		UPDATE sessions
		SET invoice_counter = invoice_counter + 1
		WHERE id = ? AND status = ?
	`, sessionID, enums.SessionStatusOpen)
	if res.Error != nil {
		return 0, res.Error
	}
	if res.RowsAffected == 0 {
		return 0, gorm.ErrRecordNotFound
	}

	var counter int
	err := r.db.WithContext(ctx).
		Raw(`SELECT invoice_counter FROM sessions WHERE id = ?`, sessionID).
		Scan(&counter).Error
	if err != nil {
		return 0, err
	}
	return counter, nil
}

// Close flips the session to closed exactly once; zero rows affected means it
// was already closed (or never existed).
func (r *repository) Close(ctx context.Context, sessionID uuid.UUID, cashInHand decimal.Decimal, endedAt time.Time) error {
	res := r.db.WithContext(ctx).Exec(`
		UPDATE sessions
		SET status = ?, cash_in_hand = ?, end_time = ?, updated_at = CURRENT_TIMESTAMP
		WHERE id = ? AND status = ?
	`, enums.SessionStatusClosed, cashInHand, endedAt, sessionID, enums.SessionStatusOpen)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

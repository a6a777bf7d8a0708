package dayend

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

// NewRepository builds a day-end repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) FindOpenSessionByUser(ctx context.Context, userID uuid.UUID) (*models.Session, error) {
	var session models.Session
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND status = ?", userID, enums.SessionStatusOpen).
		First(&session).Error
	if err != nil {
		return nil, err
	}
	return &session, nil
}

// SalesBySession loads the full sales list; aggregation happens in Go with
// decimal math so amounts stored as numeric text never go through float.
func (r *repository) SalesBySession(ctx context.Context, sessionID uuid.UUID) ([]models.Sale, error) {
	var sales []models.Sale
	err := r.db.WithContext(ctx).
		Where("session_id = ?", sessionID).
		Order("invoice_no ASC").
		Find(&sales).Error
	if err != nil {
		return nil, err
	}
	return sales, nil
}

func (r *repository) ExpensesByDate(ctx context.Context, date string) ([]models.Expense, error) {
	var expenses []models.Expense
	err := r.db.WithContext(ctx).
		Where("date = ?", date).
		Find(&expenses).Error
	if err != nil {
		return nil, err
	}
	return expenses, nil
}

func (r *repository) CloseSession(ctx context.Context, sessionID uuid.UUID, cashInHand decimal.Decimal, endedAt time.Time) error {
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

func (r *repository) CreateReport(ctx context.Context, report *models.DayEndReport) error {
	return r.db.WithContext(ctx).Create(report).Error
}

func (r *repository) FindReportBySession(ctx context.Context, sessionID uuid.UUID) (*models.DayEndReport, error) {
	var report models.DayEndReport
	err := r.db.WithContext(ctx).
		Where("session_id = ?", sessionID).
		First(&report).Error
	if err != nil {
		return nil, err
	}
	return &report, nil
}

func (r *repository) ListReports(ctx context.Context, limit int) ([]models.DayEndReport, error) {
	var reports []models.DayEndReport
	q := r.db.WithContext(ctx).Order("generated_at DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	if err := q.Find(&reports).Error; err != nil {
		return nil, err
	}
	return reports, nil
}

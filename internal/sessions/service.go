package sessions

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/garagemaster/backend/pkg/db/models"
	"github.com/garagemaster/backend/pkg/enums"
	pkgerrors "github.com/garagemaster/backend/pkg/errors"
)

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

type journalRecorder interface {
	RecordDayStart(ctx context.Context, session *models.Session)
}

// Service owns the business-day lifecycle: opening a session with a float and
// resuming the open one after a restart. Closing happens in day-end
// reconciliation.
type Service interface {
	StartDay(ctx context.Context, input StartDayInput) (*models.Session, error)
	Active(ctx context.Context, userID uuid.UUID) (*models.Session, error)
}

// StartDayInput captures the opening declaration for a new business day.
type StartDayInput struct {
	UserID    uuid.UUID
	FloatCash decimal.Decimal
}

type service struct {
	repo    Repository
	tx      txRunner
	journal journalRecorder
}

// NewService builds a sessions service with the required dependencies.
func NewService(repo Repository, tx txRunner, journal journalRecorder) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("sessions repository required")
	}
	if tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	if journal == nil {
		return nil, fmt.Errorf("journal recorder required")
	}
	return &service{repo: repo, tx: tx, journal: journal}, nil
}

func (s *service) StartDay(ctx context.Context, input StartDayInput) (*models.Session, error) {
	if input.UserID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "user identity missing")
	}
	if input.FloatCash.IsNegative() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "opening float cannot be negative")
	}

	session := &models.Session{
		ID:         uuid.New(),
		UserID:     input.UserID,
		StartTime:  time.Now().UTC(),
		FloatCash:  input.FloatCash,
		CashInHand: decimal.Zero,
		Status:     enums.SessionStatusOpen,
	}

	// Check-and-insert in one transaction so two rapid start calls cannot
	// both open a day.
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		existing, err := repo.FindOpenByUser(ctx, input.UserID)
		if err != nil && err != gorm.ErrRecordNotFound {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "check open session")
		}
		if existing != nil {
			return pkgerrors.New(pkgerrors.CodeStateConflict, "a business day is already open").
				WithDetails(map[string]any{"session_id": existing.ID})
		}
		if err := repo.Create(ctx, session); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create session")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.journal.RecordDayStart(ctx, session)
	return session, nil
}

// Active returns the caller's open session, or nil when no day is open so the
// UI can show the start-day prompt instead of an error page.
func (s *service) Active(ctx context.Context, userID uuid.UUID) (*models.Session, error) {
	if userID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "user identity missing")
	}

	session, err := s.repo.FindOpenByUser(ctx, userID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load open session")
	}
	return session, nil
}

package sessions

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/garagemaster/backend/pkg/db/models"
	pkgerrors "github.com/garagemaster/backend/pkg/errors"
)

type stubSessionsRepo struct {
	open    *models.Session
	created *models.Session
}

func (s *stubSessionsRepo) WithTx(tx *gorm.DB) Repository {
	return s
}

func (s *stubSessionsRepo) Create(ctx context.Context, session *models.Session) error {
	s.created = session
	return nil
}

func (s *stubSessionsRepo) FindOpenByUser(ctx context.Context, userID uuid.UUID) (*models.Session, error) {
	if s.open == nil || s.open.UserID != userID {
		return nil, gorm.ErrRecordNotFound
	}
	return s.open, nil
}

func (s *stubSessionsRepo) FindByID(ctx context.Context, id uuid.UUID) (*models.Session, error) {
	panic("not implemented")
}

func (s *stubSessionsRepo) NextInvoiceNo(ctx context.Context, sessionID uuid.UUID) (int, error) {
	panic("not implemented")
}

func (s *stubSessionsRepo) Close(ctx context.Context, sessionID uuid.UUID, cashInHand decimal.Decimal, endedAt time.Time) error {
	panic("not implemented")
}

type stubTxRunner struct{}

func (stubTxRunner) WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return fn(nil)
}

type stubJournal struct {
	dayStarts int
}

func (s *stubJournal) RecordDayStart(ctx context.Context, session *models.Session) {
	s.dayStarts++
}

func TestStartDay(t *testing.T) {
	repo := &stubSessionsRepo{}
	journal := &stubJournal{}
	svc, err := NewService(repo, stubTxRunner{}, journal)
	if err != nil {
		t.Fatalf("service constructor failed: %v", err)
	}

	userID := uuid.New()
	session, err := svc.StartDay(context.Background(), StartDayInput{
		UserID:    userID,
		FloatCash: decimal.NewFromInt(5000),
	})
	if err != nil {
		t.Fatalf("expected success got %v", err)
	}
	if session.UserID != userID {
		t.Fatalf("unexpected user id %s", session.UserID)
	}
	if !session.FloatCash.Equal(decimal.NewFromInt(5000)) {
		t.Fatalf("unexpected float %s", session.FloatCash)
	}
	if session.InvoiceCounter != 0 {
		t.Fatalf("expected zero invoice counter, got %d", session.InvoiceCounter)
	}
	if repo.created == nil {
		t.Fatal("expected session persisted")
	}
	if journal.dayStarts != 1 {
		t.Fatalf("expected day start journaled, got %d", journal.dayStarts)
	}
}

func TestStartDayRejectsSecondOpenSession(t *testing.T) {
	userID := uuid.New()
	repo := &stubSessionsRepo{
		open: &models.Session{ID: uuid.New(), UserID: userID},
	}
	svc, _ := NewService(repo, stubTxRunner{}, &stubJournal{})

	_, err := svc.StartDay(context.Background(), StartDayInput{
		UserID:    userID,
		FloatCash: decimal.NewFromInt(1000),
	})
	if err == nil {
		t.Fatal("expected state conflict")
	}
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeStateConflict {
		t.Fatalf("unexpected error %v", err)
	}
}

func TestStartDayRejectsNegativeFloat(t *testing.T) {
	svc, _ := NewService(&stubSessionsRepo{}, stubTxRunner{}, &stubJournal{})

	_, err := svc.StartDay(context.Background(), StartDayInput{
		UserID:    uuid.New(),
		FloatCash: decimal.NewFromInt(-1),
	})
	if err == nil {
		t.Fatal("expected validation error")
	}
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("unexpected error %v", err)
	}
}

func TestActiveReturnsNilWhenNoOpenSession(t *testing.T) {
	svc, _ := NewService(&stubSessionsRepo{}, stubTxRunner{}, &stubJournal{})

	session, err := svc.Active(context.Background(), uuid.New())
	if err != nil {
		t.Fatalf("expected success got %v", err)
	}
	if session != nil {
		t.Fatalf("expected nil session, got %+v", session)
	}
}

func TestActiveReturnsOpenSession(t *testing.T) {
	userID := uuid.New()
	open := &models.Session{ID: uuid.New(), UserID: userID}
	svc, _ := NewService(&stubSessionsRepo{open: open}, stubTxRunner{}, &stubJournal{})

	session, err := svc.Active(context.Background(), userID)
	if err != nil {
		t.Fatalf("expected success got %v", err)
	}
	if session == nil || session.ID != open.ID {
		t.Fatalf("unexpected session %+v", session)
	}
}

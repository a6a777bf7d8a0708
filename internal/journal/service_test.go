package journal

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/garagemaster/backend/pkg/config"
	"github.com/garagemaster/backend/pkg/db/models"
	"github.com/garagemaster/backend/pkg/enums"
	"github.com/garagemaster/backend/pkg/logger"
)

type stubJournalRepo struct {
	entries []*models.JournalEntry
	err     error
}

func (s *stubJournalRepo) WithTx(tx *gorm.DB) Repository {
	return s
}

func (s *stubJournalRepo) Create(ctx context.Context, entry *models.JournalEntry) error {
	if s.err != nil {
		return s.err
	}
	s.entries = append(s.entries, entry)
	return nil
}

func (s *stubJournalRepo) List(ctx context.Context, kind string, limit int) ([]models.JournalEntry, error) {
	var out []models.JournalEntry
	for _, e := range s.entries {
		if kind == "" || e.Kind == kind {
			out = append(out, *e)
		}
	}
	return out, nil
}

func newTestLogger() *logger.Logger {
	return logger.New(logger.Options{ServiceName: "test", Level: zerolog.ErrorLevel, Output: io.Discard})
}

func TestRecordSaleWritesEntryAndFile(t *testing.T) {
	dir := t.TempDir()
	repo := &stubJournalRepo{}
	svc, err := NewService(repo, newTestLogger(), dir, config.ShopConfig{Name: "GARAGE MASTER"})
	if err != nil {
		t.Fatalf("service constructor failed: %v", err)
	}

	sale := &models.Sale{
		ID:            uuid.New(),
		InvoiceNo:     7,
		CustomerName:  "Nimal",
		VehicleNo:     "CAB-1234",
		Subtotal:      decimal.NewFromInt(5000),
		Discount:      decimal.NewFromInt(500),
		Total:         decimal.NewFromInt(4500),
		CashReceived:  decimal.NewFromInt(5000),
		Balance:       decimal.NewFromInt(500),
		PaymentMethod: enums.PaymentMethodCash,
		SoldAt:        time.Now(),
		Lines: []models.SaleLine{
			{Name: "Oil filter", Qty: 2, UnitPrice: decimal.NewFromInt(1500)},
		},
	}
	svc.RecordSale(context.Background(), sale)

	if len(repo.entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(repo.entries))
	}
	entry := repo.entries[0]
	if entry.Kind != KindSale {
		t.Fatalf("unexpected kind %s", entry.Kind)
	}
	if !strings.Contains(entry.Content, "INVOICE #7") {
		t.Fatalf("invoice number missing from content:\n%s", entry.Content)
	}
	if !strings.Contains(entry.Content, "Oil filter") {
		t.Fatalf("line missing from content:\n%s", entry.Content)
	}

	name := "journal-" + time.Now().Format("2006-01-02") + ".txt"
	data, err := os.ReadFile(filepath.Join(dir, name))
	if err != nil {
		t.Fatalf("read journal file: %v", err)
	}
	if !strings.Contains(string(data), "INVOICE #7") {
		t.Fatal("file mirror missing the sale block")
	}
}

func TestRecordDayEnd(t *testing.T) {
	repo := &stubJournalRepo{}
	svc, _ := NewService(repo, newTestLogger(), "", config.ShopConfig{})

	svc.RecordDayEnd(context.Background(), &models.DayEndReport{
		TotalSales:  decimal.NewFromInt(16000),
		CashSales:   decimal.NewFromInt(10000),
		CreditSales: decimal.NewFromInt(6000),
		Variance:    decimal.NewFromInt(-500),
		GeneratedAt: time.Now(),
	})

	if len(repo.entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(repo.entries))
	}
	if repo.entries[0].Kind != KindDayEnd {
		t.Fatalf("unexpected kind %s", repo.entries[0].Kind)
	}
	if !strings.Contains(repo.entries[0].Content, "Variance -500.00") {
		t.Fatalf("variance missing:\n%s", repo.entries[0].Content)
	}
}

func TestRecordNeverPanicsOnRepoFailure(t *testing.T) {
	repo := &stubJournalRepo{err: gorm.ErrInvalidDB}
	svc, _ := NewService(repo, newTestLogger(), "", config.ShopConfig{})

	// Must swallow the failure; journal writes are best-effort.
	svc.RecordDayStart(context.Background(), &models.Session{
		StartTime: time.Now(),
		FloatCash: decimal.NewFromInt(1000),
	})
}

package reports

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/garagemaster/backend/pkg/db/models"
	"github.com/garagemaster/backend/pkg/enums"
	pkgerrors "github.com/garagemaster/backend/pkg/errors"
)

func setupReportsTest(t *testing.T) (*gorm.DB, Service) {
	t.Helper()

	dsn := fmt.Sprintf("file:reports_%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.Session{},
		&models.Sale{},
		&models.SaleLine{},
		&models.Expense{},
		&models.GRN{},
		&models.GRNLine{},
	))

	svc, err := NewService(NewRepository(db))
	require.NoError(t, err)
	return db, svc
}

var seededInvoiceNo int

func seedReportSale(t *testing.T, db *gorm.DB, sessionID uuid.UUID, total, profit int64, method enums.PaymentMethod, paid bool, soldAt time.Time) {
	t.Helper()
	seededInvoiceNo++
	require.NoError(t, db.Create(&models.Sale{
		ID:            uuid.New(),
		InvoiceNo:     seededInvoiceNo,
		SessionID:     sessionID,
		UserID:        uuid.New(),
		CustomerName:  "-",
		Subtotal:      decimal.NewFromInt(total),
		Total:         decimal.NewFromInt(total),
		Profit:        decimal.NewFromInt(profit),
		PaymentMethod: method,
		IsPaid:        paid,
		SoldAt:        soldAt,
	}).Error)
}

func TestTodaySummary(t *testing.T) {
	db, svc := setupReportsTest(t)
	ctx := context.Background()
	userID := uuid.New()

	session := &models.Session{
		ID:         uuid.New(),
		UserID:     userID,
		StartTime:  time.Now(),
		FloatCash:  decimal.NewFromInt(5000),
		CashInHand: decimal.Zero,
		Status:     enums.SessionStatusOpen,
	}
	require.NoError(t, db.Create(session).Error)

	seedReportSale(t, db, session.ID, 4000, 1000, enums.PaymentMethodCash, true, time.Now())
	seedReportSale(t, db, session.ID, 3000, 700, enums.PaymentMethodCredit, false, time.Now())
	seedReportSale(t, db, session.ID, 2000, 500, enums.PaymentMethodCredit, true, time.Now())

	summary, err := svc.Today(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, 3, summary.InvoiceCount)
	assert.True(t, summary.TotalSales.Equal(decimal.NewFromInt(9000)))
	assert.True(t, summary.CashSales.Equal(decimal.NewFromInt(4000)))
	assert.True(t, summary.CreditSales.Equal(decimal.NewFromInt(5000)))
	assert.True(t, summary.GrossProfit.Equal(decimal.NewFromInt(2200)))
	assert.True(t, summary.CreditOutstanding.Equal(decimal.NewFromInt(3000)))
}

func TestTodayNoOpenSession(t *testing.T) {
	_, svc := setupReportsTest(t)

	_, err := svc.Today(context.Background(), uuid.New())
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeNotFound, typed.Code())
}

func TestSalesReportWindowIsHalfOpen(t *testing.T) {
	db, svc := setupReportsTest(t)

	base := time.Date(2026, 8, 10, 9, 0, 0, 0, time.UTC)
	sessionID := uuid.New()
	seedReportSale(t, db, sessionID, 1000, 200, enums.PaymentMethodCash, true, base)
	seedReportSale(t, db, sessionID, 2000, 400, enums.PaymentMethodCash, true, base.AddDate(0, 0, 1))
	seedReportSale(t, db, sessionID, 4000, 800, enums.PaymentMethodCash, true, base.AddDate(0, 0, 5))

	report, err := svc.Sales(context.Background(), Period{
		From: base.Truncate(24 * time.Hour),
		To:   base.Truncate(24 * time.Hour).AddDate(0, 0, 2),
	})
	require.NoError(t, err)
	assert.Len(t, report.Sales, 2)
	assert.True(t, report.Total.Equal(decimal.NewFromInt(3000)))
	assert.True(t, report.GrossProfit.Equal(decimal.NewFromInt(600)))
}

func TestExpenseReport(t *testing.T) {
	db, svc := setupReportsTest(t)
	userID := uuid.New()

	for _, row := range []struct {
		date   string
		amount int64
	}{
		{"2026-08-10", 500},
		{"2026-08-11", 700},
		{"2026-08-20", 900},
	} {
		require.NoError(t, db.Create(&models.Expense{
			ID:       uuid.New(),
			Date:     row.date,
			Category: "misc",
			Amount:   decimal.NewFromInt(row.amount),
			UserID:   userID,
		}).Error)
	}

	report, err := svc.Expenses(context.Background(), Period{
		From: time.Date(2026, 8, 10, 0, 0, 0, 0, time.UTC),
		To:   time.Date(2026, 8, 12, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)
	assert.Len(t, report.Expenses, 2)
	assert.True(t, report.Total.Equal(decimal.NewFromInt(1200)))
}

func TestPurchaseReport(t *testing.T) {
	db, svc := setupReportsTest(t)

	supplierID := uuid.New()
	require.NoError(t, db.Create(&models.GRN{
		ID:         uuid.New(),
		SupplierID: supplierID,
		Supplier:   "Lanka Auto Parts",
		Total:      decimal.NewFromInt(10000),
		PaidAmount: decimal.NewFromInt(4000),
		UserID:     uuid.New(),
		ReceivedAt: time.Date(2026, 8, 15, 10, 0, 0, 0, time.UTC),
	}).Error)

	report, err := svc.Purchases(context.Background(), Period{
		From: time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC),
		To:   time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)
	assert.Len(t, report.GRNs, 1)
	assert.True(t, report.Total.Equal(decimal.NewFromInt(10000)))
	assert.True(t, report.Outstanding.Equal(decimal.NewFromInt(6000)))
}

func TestPeriodValidation(t *testing.T) {
	_, svc := setupReportsTest(t)

	_, err := svc.Sales(context.Background(), Period{})
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeValidation, typed.Code())
}

package dayend

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
	RecordDayEnd(ctx context.Context, report *models.DayEndReport)
}

type posMetrics interface {
	IncDayEnd(withVariance bool)
}

// Service reconciles and closes the caller's business day: counted cash
// against expected drawer cash, gross profit against the day's expenses.
// Closing the session and writing the report happen in one transaction so a
// session is reconciled exactly once.
type Service interface {
	Reconcile(ctx context.Context, input ReconcileInput) (*Result, error)
	ReportForSession(ctx context.Context, sessionID uuid.UUID) (*models.DayEndReport, error)
	History(ctx context.Context, limit int) ([]models.DayEndReport, error)
}

// ReconcileInput is the closing declaration: who is closing and how much
// cash they counted in the drawer.
type ReconcileInput struct {
	UserID     uuid.UUID
	CashInHand decimal.Decimal
}

// Result bundles the persisted report with the sales snapshot the till
// renders on the closing summary.
type Result struct {
	Report *models.DayEndReport
	Sales  []models.Sale
}

type service struct {
	repo    Repository
	tx      txRunner
	journal journalRecorder
	metrics posMetrics
}

// NewService builds a day-end service with the required dependencies.
func NewService(repo Repository, tx txRunner, journal journalRecorder, metrics posMetrics) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("dayend repository required")
	}
	if tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	if journal == nil {
		return nil, fmt.Errorf("journal recorder required")
	}
	if metrics == nil {
		return nil, fmt.Errorf("metrics required")
	}
	return &service{repo: repo, tx: tx, journal: journal, metrics: metrics}, nil
}

func (s *service) Reconcile(ctx context.Context, input ReconcileInput) (*Result, error) {
	if input.UserID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "user identity missing")
	}
	if input.CashInHand.IsNegative() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "counted cash cannot be negative")
	}

	var report *models.DayEndReport
	var sales []models.Sale

	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)

		session, err := repo.FindOpenSessionByUser(ctx, input.UserID)
		if err != nil {
			if err == gorm.ErrRecordNotFound {
				return pkgerrors.New(pkgerrors.CodeStateConflict, "no open business day to close")
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load open session")
		}

		sales, err = repo.SalesBySession(ctx, session.ID)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load session sales")
		}

		cashSales := decimal.Zero
		creditSales := decimal.Zero
		grossProfit := decimal.Zero
		for _, sale := range sales {
			if sale.PaymentMethod == enums.PaymentMethodCash {
				cashSales = cashSales.Add(sale.Total)
			} else {
				creditSales = creditSales.Add(sale.Total)
			}
			grossProfit = grossProfit.Add(sale.Profit)
		}
		totalSales := cashSales.Add(creditSales)

		// Expenses are scoped to the calendar day, not the session. A day
		// that straddles midnight reconciles against the closing date.
		today := time.Now().Format("2006-01-02")
		expenses, err := repo.ExpensesByDate(ctx, today)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load expenses")
		}
		expenseTotal := decimal.Zero
		for _, expense := range expenses {
			expenseTotal = expenseTotal.Add(expense.Amount)
		}

		expected := session.FloatCash.Add(cashSales).Sub(expenseTotal)
		variance := input.CashInHand.Sub(expected)
		netProfit := grossProfit.Sub(expenseTotal)

		now := time.Now().UTC()
		if err := repo.CloseSession(ctx, session.ID, input.CashInHand, now); err != nil {
			if err == gorm.ErrRecordNotFound {
				return pkgerrors.New(pkgerrors.CodeStateConflict, "business day already closed")
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "close session")
		}

		report = &models.DayEndReport{
			ID:          uuid.New(),
			SessionID:   session.ID,
			UserID:      input.UserID,
			Float:       session.FloatCash,
			CashSales:   cashSales,
			CreditSales: creditSales,
			TotalSales:  totalSales,
			GrossProfit: grossProfit,
			Expenses:    expenseTotal,
			Expected:    expected,
			CashInHand:  input.CashInHand,
			Variance:    variance,
			NetProfit:   netProfit,
			GeneratedAt: now,
		}
		if err := repo.CreateReport(ctx, report); err != nil {
			if pkgerrors.IsUniqueViolation(err) {
				return pkgerrors.New(pkgerrors.CodeStateConflict, "business day already reconciled")
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "persist day-end report")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.metrics.IncDayEnd(!report.Variance.IsZero())
	s.journal.RecordDayEnd(ctx, report)

	return &Result{Report: report, Sales: sales}, nil
}

func (s *service) ReportForSession(ctx context.Context, sessionID uuid.UUID) (*models.DayEndReport, error) {
	if sessionID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "session id required")
	}
	report, err := s.repo.FindReportBySession(ctx, sessionID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "day-end report not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load day-end report")
	}
	return report, nil
}

func (s *service) History(ctx context.Context, limit int) ([]models.DayEndReport, error) {
	reports, err := s.repo.ListReports(ctx, limit)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list day-end reports")
	}
	return reports, nil
}

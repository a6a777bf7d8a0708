package reports

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/garagemaster/backend/pkg/db/models"
	"github.com/garagemaster/backend/pkg/enums"
	pkgerrors "github.com/garagemaster/backend/pkg/errors"
)

// TodaySummary is the live counter dashboard for the open business day.
type TodaySummary struct {
	Session           *models.Session
	InvoiceCount      int
	TotalSales        decimal.Decimal
	CashSales         decimal.Decimal
	CreditSales       decimal.Decimal
	GrossProfit       decimal.Decimal
	CreditOutstanding decimal.Decimal
}

// Period bounds a reporting window. From is inclusive, To exclusive.
type Period struct {
	From time.Time
	To   time.Time
}

// SalesReport is the invoice list for a period plus its totals.
type SalesReport struct {
	Sales       []models.Sale
	Total       decimal.Decimal
	GrossProfit decimal.Decimal
}

// ExpenseReport is the expense list for a period plus its total.
type ExpenseReport struct {
	Expenses []models.Expense
	Total    decimal.Decimal
}

// PurchaseReport is the deliveries list for a period plus totals.
type PurchaseReport struct {
	GRNs        []models.GRN
	Total       decimal.Decimal
	Outstanding decimal.Decimal
}

// Service produces management views over the books.
type Service interface {
	Today(ctx context.Context, userID uuid.UUID) (*TodaySummary, error)
	Sales(ctx context.Context, period Period) (*SalesReport, error)
	Expenses(ctx context.Context, period Period) (*ExpenseReport, error)
	Purchases(ctx context.Context, period Period) (*PurchaseReport, error)
}

type service struct {
	repo Repository
}

// NewService builds a reports service with the required dependencies.
func NewService(repo Repository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("reports repository required")
	}
	return &service{repo: repo}, nil
}

func (s *service) Today(ctx context.Context, userID uuid.UUID) (*TodaySummary, error) {
	if userID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "user identity missing")
	}

	session, err := s.repo.FindOpenSessionByUser(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "no open business day")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load open session")
	}

	sales, err := s.repo.SalesBySession(ctx, session.ID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load session sales")
	}

	summary := &TodaySummary{
		Session:           session,
		InvoiceCount:      len(sales),
		TotalSales:        decimal.Zero,
		CashSales:         decimal.Zero,
		CreditSales:       decimal.Zero,
		GrossProfit:       decimal.Zero,
		CreditOutstanding: decimal.Zero,
	}
	for _, sale := range sales {
		summary.TotalSales = summary.TotalSales.Add(sale.Total)
		summary.GrossProfit = summary.GrossProfit.Add(sale.Profit)
		if sale.PaymentMethod == enums.PaymentMethodCash {
			summary.CashSales = summary.CashSales.Add(sale.Total)
			continue
		}
		summary.CreditSales = summary.CreditSales.Add(sale.Total)
		if !sale.IsPaid {
			summary.CreditOutstanding = summary.CreditOutstanding.Add(sale.Total)
		}
	}
	return summary, nil
}

func (s *service) Sales(ctx context.Context, period Period) (*SalesReport, error) {
	if err := validatePeriod(period); err != nil {
		return nil, err
	}

	sales, err := s.repo.SalesBetween(ctx, period.From, period.To)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load sales")
	}

	report := &SalesReport{Sales: sales, Total: decimal.Zero, GrossProfit: decimal.Zero}
	for _, sale := range sales {
		report.Total = report.Total.Add(sale.Total)
		report.GrossProfit = report.GrossProfit.Add(sale.Profit)
	}
	return report, nil
}

func (s *service) Expenses(ctx context.Context, period Period) (*ExpenseReport, error) {
	if err := validatePeriod(period); err != nil {
		return nil, err
	}

	// Expenses key on calendar day, so the window collapses to date strings.
	from := period.From.Format("2006-01-02")
	to := period.To.Add(-time.Nanosecond).Format("2006-01-02")

	expenses, err := s.repo.ExpensesBetween(ctx, from, to)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load expenses")
	}

	report := &ExpenseReport{Expenses: expenses, Total: decimal.Zero}
	for _, e := range expenses {
		report.Total = report.Total.Add(e.Amount)
	}
	return report, nil
}

func (s *service) Purchases(ctx context.Context, period Period) (*PurchaseReport, error) {
	if err := validatePeriod(period); err != nil {
		return nil, err
	}

	grns, err := s.repo.GRNsBetween(ctx, period.From, period.To)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load grns")
	}

	report := &PurchaseReport{GRNs: grns, Total: decimal.Zero, Outstanding: decimal.Zero}
	for _, note := range grns {
		report.Total = report.Total.Add(note.Total)
		report.Outstanding = report.Outstanding.Add(note.Total.Sub(note.PaidAmount))
	}
	return report, nil
}

func validatePeriod(period Period) error {
	if period.From.IsZero() || period.To.IsZero() {
		return pkgerrors.New(pkgerrors.CodeValidation, "period bounds required")
	}
	if !period.To.After(period.From) {
		return pkgerrors.New(pkgerrors.CodeValidation, "period end must be after start")
	}
	return nil
}

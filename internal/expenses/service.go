package expenses

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/garagemaster/backend/pkg/db/models"
	pkgerrors "github.com/garagemaster/backend/pkg/errors"
)

// DateLayout is the calendar-day key expenses are booked under.
const DateLayout = "2006-01-02"

// Input records one cash outflow.
type Input struct {
	Date        string
	Category    string
	Description string
	Amount      decimal.Decimal
	UserID      uuid.UUID
}

// DaySheet is one day's expenses plus their sum.
type DaySheet struct {
	Date     string
	Expenses []models.Expense
	Total    decimal.Decimal
}

// Service keeps the expense book. Expenses belong to a calendar day, which
// is also how reconciliation picks them up.
type Service interface {
	Create(ctx context.Context, input Input) (*models.Expense, error)
	Delete(ctx context.Context, id uuid.UUID) error
	ForDate(ctx context.Context, date string) (*DaySheet, error)
	Today(ctx context.Context) (*DaySheet, error)
}

type service struct {
	repo Repository
}

// NewService builds an expenses service with the required dependencies.
func NewService(repo Repository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("expenses repository required")
	}
	return &service{repo: repo}, nil
}

func (s *service) Create(ctx context.Context, input Input) (*models.Expense, error) {
	input.Category = strings.TrimSpace(input.Category)
	input.Description = strings.TrimSpace(input.Description)
	input.Date = strings.TrimSpace(input.Date)

	if input.UserID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "user identity missing")
	}
	if input.Category == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "expense category required")
	}
	if !input.Amount.IsPositive() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "expense amount must be positive")
	}
	if input.Date == "" {
		input.Date = time.Now().Format(DateLayout)
	} else if _, err := time.Parse(DateLayout, input.Date); err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "date must be YYYY-MM-DD")
	}

	expense := &models.Expense{
		ID:          uuid.New(),
		Date:        input.Date,
		Category:    input.Category,
		Description: input.Description,
		Amount:      input.Amount,
		UserID:      input.UserID,
	}
	if err := s.repo.Create(ctx, expense); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create expense")
	}
	return expense, nil
}

func (s *service) Delete(ctx context.Context, id uuid.UUID) error {
	if id == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "expense id required")
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		if err == gorm.ErrRecordNotFound {
			return pkgerrors.New(pkgerrors.CodeNotFound, "expense not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete expense")
	}
	return nil
}

func (s *service) ForDate(ctx context.Context, date string) (*DaySheet, error) {
	date = strings.TrimSpace(date)
	if _, err := time.Parse(DateLayout, date); err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "date must be YYYY-MM-DD")
	}

	expenses, err := s.repo.ListByDate(ctx, date)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list expenses")
	}

	total := decimal.Zero
	for _, e := range expenses {
		total = total.Add(e.Amount)
	}
	return &DaySheet{Date: date, Expenses: expenses, Total: total}, nil
}

func (s *service) Today(ctx context.Context) (*DaySheet, error) {
	return s.ForDate(ctx, time.Now().Format(DateLayout))
}

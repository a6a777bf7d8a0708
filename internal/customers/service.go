package customers

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/garagemaster/backend/pkg/db/models"
	pkgerrors "github.com/garagemaster/backend/pkg/errors"
)

// Profile is the counter view of one customer: their ledger entry, full sale
// history and what they still owe.
type Profile struct {
	Customer    *models.Customer
	Sales       []models.Sale
	Outstanding []models.Sale
	OwedTotal   decimal.Decimal
}

// Outstanding lists unpaid credit invoices plus their sum.
type Outstanding struct {
	Sales []models.Sale
	Total decimal.Decimal
}

// Service serves the customer ledger and the credit book.
type Service interface {
	Search(ctx context.Context, query string) ([]models.Customer, error)
	Profile(ctx context.Context, phone string) (*Profile, error)
	OutstandingByVehicle(ctx context.Context, vehicleNo string) (*Outstanding, error)
	MarkPaid(ctx context.Context, saleID uuid.UUID) error
}

type service struct {
	repo Repository
}

// NewService builds a customers service with the required dependencies.
func NewService(repo Repository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("customers repository required")
	}
	return &service{repo: repo}, nil
}

func (s *service) Search(ctx context.Context, query string) ([]models.Customer, error) {
	customers, err := s.repo.Search(ctx, query)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "search customers")
	}
	return customers, nil
}

func (s *service) Profile(ctx context.Context, phone string) (*Profile, error) {
	phone = strings.TrimSpace(phone)
	if phone == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "customer phone required")
	}

	customer, err := s.repo.FindByPhone(ctx, phone)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "customer not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load customer")
	}

	sales, err := s.repo.SalesByPhone(ctx, phone)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load customer sales")
	}

	outstanding, err := s.repo.OutstandingByPhone(ctx, phone)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load outstanding sales")
	}

	owed := decimal.Zero
	for _, sale := range outstanding {
		owed = owed.Add(sale.Total)
	}

	return &Profile{
		Customer:    customer,
		Sales:       sales,
		Outstanding: outstanding,
		OwedTotal:   owed,
	}, nil
}

func (s *service) OutstandingByVehicle(ctx context.Context, vehicleNo string) (*Outstanding, error) {
	vehicleNo = strings.TrimSpace(vehicleNo)
	if vehicleNo == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "vehicle number required")
	}

	sales, err := s.repo.OutstandingByVehicle(ctx, vehicleNo)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load outstanding sales")
	}

	total := decimal.Zero
	for _, sale := range sales {
		total = total.Add(sale.Total)
	}
	return &Outstanding{Sales: sales, Total: total}, nil
}

func (s *service) MarkPaid(ctx context.Context, saleID uuid.UUID) error {
	if saleID == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "sale id required")
	}
	if err := s.repo.MarkSalePaid(ctx, saleID); err != nil {
		if err == gorm.ErrRecordNotFound {
			return pkgerrors.New(pkgerrors.CodeConflict, "credit invoice already settled or unknown")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "mark sale paid")
	}
	return nil
}

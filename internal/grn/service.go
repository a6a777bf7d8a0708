package grn

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

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// LineInput is one delivered part on a goods-received note.
type LineInput struct {
	PartID   uuid.UUID
	Qty      int
	UnitCost decimal.Decimal
}

// CreateInput captures a delivery from a supplier.
type CreateInput struct {
	SupplierID uuid.UUID
	Reference  string
	UserID     uuid.UUID
	Lines      []LineInput
}

// PaymentInput records money handed to a supplier.
type PaymentInput struct {
	SupplierID uuid.UUID
	Amount     decimal.Decimal
	Note       string
	UserID     uuid.UUID
}

// Allocation shows how much of a payment landed on one note.
type Allocation struct {
	GRNID     uuid.UUID
	Reference string
	Amount    decimal.Decimal
}

// PaymentResult is the persisted payment plus its oldest-first allocation.
type PaymentResult struct {
	Payment     *models.SupplierPayment
	Allocations []Allocation
}

// Ledger is the supplier statement: every note, every payment, and the
// outstanding balance.
type Ledger struct {
	Supplier    *models.Supplier
	GRNs        []models.GRN
	Payments    []models.SupplierPayment
	Outstanding decimal.Decimal
}

// Service handles goods receipt and supplier settlement. Receiving stock and
// allocating payments are transactional units.
type Service interface {
	Create(ctx context.Context, input CreateInput) (*models.GRN, error)
	Get(ctx context.Context, id uuid.UUID) (*models.GRN, error)
	List(ctx context.Context, supplierID uuid.UUID, limit int) ([]models.GRN, error)
	RecordPayment(ctx context.Context, input PaymentInput) (*PaymentResult, error)
	SupplierLedger(ctx context.Context, supplierID uuid.UUID) (*Ledger, error)
}

type service struct {
	repo Repository
	tx   txRunner
}

// NewService builds a GRN service with the required dependencies.
func NewService(repo Repository, tx txRunner) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("grn repository required")
	}
	if tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	return &service{repo: repo, tx: tx}, nil
}

func (s *service) Create(ctx context.Context, input CreateInput) (*models.GRN, error) {
	if input.SupplierID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "supplier id required")
	}
	if input.UserID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "user identity missing")
	}
	if len(input.Lines) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "a delivery needs at least one line")
	}
	for _, line := range input.Lines {
		if line.PartID == uuid.Nil {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "part id required on every line")
		}
		if line.Qty <= 0 {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "quantity must be positive")
		}
		if line.UnitCost.IsNegative() {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "unit cost cannot be negative")
		}
	}

	var grn *models.GRN
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)

		supplier, err := repo.FindSupplier(ctx, input.SupplierID)
		if err != nil {
			if err == gorm.ErrRecordNotFound {
				return pkgerrors.New(pkgerrors.CodeNotFound, "supplier not found")
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load supplier")
		}

		grnID := uuid.New()
		total := decimal.Zero
		lines := make([]models.GRNLine, 0, len(input.Lines))
		for _, in := range input.Lines {
			part, err := repo.FindPart(ctx, in.PartID)
			if err != nil {
				if err == gorm.ErrRecordNotFound {
					return pkgerrors.New(pkgerrors.CodeNotFound, "part not found")
				}
				return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load part")
			}
			if err := repo.ReceiveStock(ctx, part.ID, in.Qty, in.UnitCost); err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "receive stock")
			}
			lines = append(lines, models.GRNLine{
				ID:         uuid.New(),
				GRNID:      grnID,
				PartID:     part.ID,
				PartName:   part.PartName,
				PartNumber: part.PartNumber,
				Qty:        in.Qty,
				UnitCost:   in.UnitCost,
			})
			total = total.Add(in.UnitCost.Mul(decimal.NewFromInt(int64(in.Qty))))
		}

		grn = &models.GRN{
			ID:         grnID,
			SupplierID: supplier.ID,
			Supplier:   supplier.Name,
			Reference:  strings.TrimSpace(input.Reference),
			Total:      total,
			PaidAmount: decimal.Zero,
			UserID:     input.UserID,
			ReceivedAt: time.Now().UTC(),
			Lines:      lines,
		}
		if err := repo.CreateGRN(ctx, grn); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create grn")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return grn, nil
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (*models.GRN, error) {
	if id == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "grn id required")
	}
	grn, err := s.repo.FindGRN(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "grn not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load grn")
	}
	return grn, nil
}

func (s *service) List(ctx context.Context, supplierID uuid.UUID, limit int) ([]models.GRN, error) {
	grns, err := s.repo.ListGRNs(ctx, supplierID, limit)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list grns")
	}
	return grns, nil
}

// RecordPayment allocates the amount across the supplier's unpaid notes,
// oldest first. Paying more than the supplier is owed is rejected rather
// than carried as an advance.
func (s *service) RecordPayment(ctx context.Context, input PaymentInput) (*PaymentResult, error) {
	if input.SupplierID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "supplier id required")
	}
	if input.UserID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "user identity missing")
	}
	if !input.Amount.IsPositive() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "payment amount must be positive")
	}

	var result *PaymentResult
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)

		if _, err := repo.FindSupplier(ctx, input.SupplierID); err != nil {
			if err == gorm.ErrRecordNotFound {
				return pkgerrors.New(pkgerrors.CodeNotFound, "supplier not found")
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load supplier")
		}

		unpaid, err := repo.UnpaidGRNsOldestFirst(ctx, input.SupplierID)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load unpaid grns")
		}

		remaining := input.Amount
		allocations := make([]Allocation, 0, len(unpaid))
		for _, note := range unpaid {
			if !remaining.IsPositive() {
				break
			}
			outstanding := note.Total.Sub(note.PaidAmount)
			portion := decimal.Min(outstanding, remaining)
			if err := repo.AddGRNPayment(ctx, note.ID, portion); err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "allocate payment")
			}
			allocations = append(allocations, Allocation{
				GRNID:     note.ID,
				Reference: note.Reference,
				Amount:    portion,
			})
			remaining = remaining.Sub(portion)
		}
		if remaining.IsPositive() {
			return pkgerrors.New(pkgerrors.CodeValidation, "payment exceeds outstanding balance").
				WithDetails(map[string]any{"unallocated": remaining.String()})
		}

		payment := &models.SupplierPayment{
			ID:         uuid.New(),
			SupplierID: input.SupplierID,
			Amount:     input.Amount,
			Note:       strings.TrimSpace(input.Note),
			UserID:     input.UserID,
			PaidAt:     time.Now().UTC(),
		}
		if err := repo.CreatePayment(ctx, payment); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create supplier payment")
		}

		result = &PaymentResult{Payment: payment, Allocations: allocations}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (s *service) SupplierLedger(ctx context.Context, supplierID uuid.UUID) (*Ledger, error) {
	if supplierID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "supplier id required")
	}

	supplier, err := s.repo.FindSupplier(ctx, supplierID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "supplier not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load supplier")
	}

	grns, err := s.repo.ListGRNs(ctx, supplierID, 0)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list grns")
	}
	payments, err := s.repo.PaymentsBySupplier(ctx, supplierID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list payments")
	}

	outstanding := decimal.Zero
	for _, note := range grns {
		outstanding = outstanding.Add(note.Total.Sub(note.PaidAmount))
	}

	return &Ledger{
		Supplier:    supplier,
		GRNs:        grns,
		Payments:    payments,
		Outstanding: outstanding,
	}, nil
}

package checkout

import (
	"context"
	"fmt"
	"strings"
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
	RecordSale(ctx context.Context, sale *models.Sale)
}

type posMetrics interface {
	IncCheckout(method string)
	ObserveCheckoutDuration(duration time.Duration)
}

// Service commits carts against the caller's open session. Everything that
// bears an invariant (invoice number, stock, loyalty points, settlement)
// happens inside one transaction.
type Service interface {
	Commit(ctx context.Context, input CheckoutInput) (*CheckoutResult, error)
}

type service struct {
	repo        Repository
	tx          txRunner
	journal     journalRecorder
	metrics     posMetrics
	earnDivisor int64
}

// NewService builds a checkout service with the required dependencies.
func NewService(repo Repository, tx txRunner, journal journalRecorder, metrics posMetrics, earnDivisor int) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("checkout repository required")
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
	if earnDivisor <= 0 {
		return nil, fmt.Errorf("loyalty earn divisor must be positive")
	}
	return &service{
		repo:        repo,
		tx:          tx,
		journal:     journal,
		metrics:     metrics,
		earnDivisor: int64(earnDivisor),
	}, nil
}

func (s *service) Commit(ctx context.Context, input CheckoutInput) (*CheckoutResult, error) {
	started := time.Now()

	if err := validateInput(input); err != nil {
		return nil, err
	}

	phone := strings.TrimSpace(input.CustomerPhone)
	customerName := strings.TrimSpace(input.CustomerName)
	if customerName == "" {
		customerName = "-"
	}

	var sale *models.Sale
	var earned, customerPoints int

	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)

		session, err := repo.FindOpenSessionByUser(ctx, input.UserID)
		if err != nil {
			if err == gorm.ErrRecordNotFound {
				return pkgerrors.New(pkgerrors.CodeStateConflict, "no open business day")
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load open session")
		}

		lines, subtotal, costTotal, err := s.buildLines(ctx, repo, input.Lines)
		if err != nil {
			return err
		}

		var customer *models.Customer
		if phone != "" {
			customer, err = repo.FindCustomerByPhone(ctx, phone)
			if err != nil && err != gorm.ErrRecordNotFound {
				return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load customer")
			}
			if customer == nil {
				customer = &models.Customer{ID: uuid.New(), Phone: phone}
			}
		}

		redeem := input.RedeemPoints
		if redeem > 0 {
			if customer == nil {
				return pkgerrors.New(pkgerrors.CodeValidation, "redeeming points requires a customer phone")
			}
			if redeem > customer.Points {
				return pkgerrors.New(pkgerrors.CodeValidation, "not enough loyalty points").
					WithDetails(map[string]any{"available": customer.Points})
			}
		}

		discount := input.Discount.Add(decimal.NewFromInt(int64(redeem)))
		if discount.GreaterThan(subtotal) {
			return pkgerrors.New(pkgerrors.CodeValidation, "discount exceeds subtotal")
		}

		total := subtotal.Sub(discount)
		profit := total.Sub(costTotal)

		cashReceived := decimal.Zero
		balance := total
		isPaid := false
		if input.PaymentMethod == enums.PaymentMethodCash {
			// Balance may go negative. A till shortage is recorded on the
			// invoice, not rejected at the counter.
			cashReceived = input.CashReceived
			balance = cashReceived.Sub(total)
			isPaid = true
		}

		invoiceNo, err := repo.NextInvoiceNo(ctx, session.ID)
		if err != nil {
			if err == gorm.ErrRecordNotFound {
				return pkgerrors.New(pkgerrors.CodeStateConflict, "business day was closed during checkout")
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "claim invoice number")
		}

		if customer != nil {
			earned = int(total.Div(decimal.NewFromInt(s.earnDivisor)).Floor().IntPart())
			points := customer.Points - redeem + earned
			if points < 0 {
				points = 0
			}
			customer.Points = points
			if customerName != "-" {
				customer.Name = customerName
			}
			if input.VehicleNo != "" {
				customer.VehicleNo = input.VehicleNo
			}
			if err := repo.SaveCustomer(ctx, customer); err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "save customer")
			}
			customerPoints = customer.Points

			if input.VehicleNo != "" {
				if err := repo.UpsertVehicle(ctx, input.VehicleNo, phone); err != nil {
					return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "upsert vehicle")
				}
			}
		}

		sale = &models.Sale{
			ID:            uuid.New(),
			InvoiceNo:     invoiceNo,
			SessionID:     session.ID,
			UserID:        input.UserID,
			VehicleNo:     input.VehicleNo,
			CustomerName:  customerName,
			CustomerPhone: phone,
			Mileage:       input.Mileage,
			Subtotal:      subtotal,
			Discount:      discount,
			Total:         total,
			CashReceived:  cashReceived,
			Balance:       balance,
			Profit:        profit,
			PaymentMethod: input.PaymentMethod,
			IsPaid:        isPaid,
			SoldAt:        time.Now().UTC(),
			Lines:         lines,
		}
		if err := repo.CreateSale(ctx, sale); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create sale")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.metrics.IncCheckout(string(input.PaymentMethod))
	s.metrics.ObserveCheckoutDuration(time.Since(started))
	s.journal.RecordSale(ctx, sale)

	return &CheckoutResult{
		Sale:           sale,
		EarnedPoints:   earned,
		CustomerPoints: customerPoints,
	}, nil
}

// buildLines resolves each cart line against the catalog, decrements part
// stock and settles referenced credit invoices. Returns the persisted line
// snapshots plus the subtotal and cost aggregates.
func (s *service) buildLines(ctx context.Context, repo Repository, inputs []CartLineInput) ([]models.SaleLine, decimal.Decimal, decimal.Decimal, error) {
	lines := make([]models.SaleLine, 0, len(inputs))
	subtotal := decimal.Zero
	costTotal := decimal.Zero

	for _, in := range inputs {
		switch in.Kind {
		case enums.SaleLineKindPart:
			part, err := repo.FindPart(ctx, *in.PartID)
			if err != nil {
				if err == gorm.ErrRecordNotFound {
					return nil, decimal.Zero, decimal.Zero, pkgerrors.New(pkgerrors.CodeNotFound, "part not found")
				}
				return nil, decimal.Zero, decimal.Zero, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load part")
			}
			if err := repo.DecrementStock(ctx, part.ID, in.Qty); err != nil {
				if err == gorm.ErrRecordNotFound {
					return nil, decimal.Zero, decimal.Zero, pkgerrors.New(pkgerrors.CodeStateConflict, "insufficient stock").
						WithDetails(map[string]any{"part_id": part.ID, "requested": in.Qty, "available": part.Stock})
				}
				return nil, decimal.Zero, decimal.Zero, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "decrement stock")
			}
			partID := part.ID
			lines = append(lines, models.SaleLine{
				ID:        uuid.New(),
				Kind:      enums.SaleLineKindPart,
				PartID:    &partID,
				Name:      part.PartName,
				Qty:       in.Qty,
				UnitPrice: part.Price,
				UnitCost:  part.BuyingPrice,
			})
			qty := decimal.NewFromInt(int64(in.Qty))
			subtotal = subtotal.Add(part.Price.Mul(qty))
			costTotal = costTotal.Add(part.BuyingPrice.Mul(qty))

		case enums.SaleLineKindService:
			item, err := repo.FindServiceItem(ctx, *in.ServiceID)
			if err != nil {
				if err == gorm.ErrRecordNotFound {
					return nil, decimal.Zero, decimal.Zero, pkgerrors.New(pkgerrors.CodeNotFound, "service not found")
				}
				return nil, decimal.Zero, decimal.Zero, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load service item")
			}
			serviceID := item.ID
			lines = append(lines, models.SaleLine{
				ID:        uuid.New(),
				Kind:      enums.SaleLineKindService,
				ServiceID: &serviceID,
				Name:      item.Name,
				Qty:       in.Qty,
				UnitPrice: item.Cost,
				UnitCost:  decimal.Zero,
			})
			subtotal = subtotal.Add(item.Cost.Mul(decimal.NewFromInt(int64(in.Qty))))

		case enums.SaleLineKindCustom:
			lines = append(lines, models.SaleLine{
				ID:        uuid.New(),
				Kind:      enums.SaleLineKindCustom,
				Name:      in.Name,
				Qty:       in.Qty,
				UnitPrice: in.UnitPrice,
				UnitCost:  decimal.Zero,
			})
			subtotal = subtotal.Add(in.UnitPrice.Mul(decimal.NewFromInt(int64(in.Qty))))

		case enums.SaleLineKindCreditSettlement:
			settled, err := repo.FindUnpaidCreditSales(ctx, in.SettledSaleIDs)
			if err != nil {
				return nil, decimal.Zero, decimal.Zero, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load credit sales")
			}
			if len(settled) != len(in.SettledSaleIDs) {
				return nil, decimal.Zero, decimal.Zero, pkgerrors.New(pkgerrors.CodeConflict, "credit invoice already settled or unknown")
			}
			amount := decimal.Zero
			for _, old := range settled {
				amount = amount.Add(old.Total)
			}
			affected, err := repo.MarkSalesPaid(ctx, in.SettledSaleIDs)
			if err != nil {
				return nil, decimal.Zero, decimal.Zero, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "settle credit sales")
			}
			if affected != int64(len(in.SettledSaleIDs)) {
				return nil, decimal.Zero, decimal.Zero, pkgerrors.New(pkgerrors.CodeConflict, "credit invoice already settled or unknown")
			}
			// Cost mirrors price so a settlement never counts as margin;
			// the profit was recorded when the credit sale was made.
			lines = append(lines, models.SaleLine{
				ID:             uuid.New(),
				Kind:           enums.SaleLineKindCreditSettlement,
				Name:           "Credit settlement",
				Qty:            1,
				UnitPrice:      amount,
				UnitCost:       amount,
				SettledSaleIDs: in.SettledSaleIDs,
			})
			subtotal = subtotal.Add(amount)
			costTotal = costTotal.Add(amount)
		}
	}

	return lines, subtotal, costTotal, nil
}

func validateInput(input CheckoutInput) error {
	if input.UserID == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeUnauthorized, "user identity missing")
	}
	if !input.PaymentMethod.IsValid() {
		return pkgerrors.New(pkgerrors.CodeValidation, "payment method must be cash or credit")
	}
	if strings.TrimSpace(input.VehicleNo) == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "vehicle number is required")
	}
	if len(input.Lines) == 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "cart is empty")
	}
	if input.Discount.IsNegative() {
		return pkgerrors.New(pkgerrors.CodeValidation, "discount cannot be negative")
	}
	if input.RedeemPoints < 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "redeemed points cannot be negative")
	}
	if input.PaymentMethod == enums.PaymentMethodCredit && strings.TrimSpace(input.CustomerPhone) == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "credit sales require a customer phone")
	}

	for i, line := range input.Lines {
		if !line.Kind.IsValid() {
			return lineErr(i, "unknown line kind")
		}
		switch line.Kind {
		case enums.SaleLineKindPart:
			if line.PartID == nil || *line.PartID == uuid.Nil {
				return lineErr(i, "part id required")
			}
			if line.Qty <= 0 {
				return lineErr(i, "quantity must be positive")
			}
		case enums.SaleLineKindService:
			if line.ServiceID == nil || *line.ServiceID == uuid.Nil {
				return lineErr(i, "service id required")
			}
			if line.Qty <= 0 {
				return lineErr(i, "quantity must be positive")
			}
		case enums.SaleLineKindCustom:
			if strings.TrimSpace(line.Name) == "" {
				return lineErr(i, "custom line needs a name")
			}
			if line.Qty <= 0 {
				return lineErr(i, "quantity must be positive")
			}
			if line.UnitPrice.IsNegative() {
				return lineErr(i, "price cannot be negative")
			}
		case enums.SaleLineKindCreditSettlement:
			if len(line.SettledSaleIDs) == 0 {
				return lineErr(i, "settlement line needs invoice ids")
			}
		}
	}
	return nil
}

func lineErr(index int, message string) error {
	return pkgerrors.New(pkgerrors.CodeValidation, message).
		WithDetails(map[string]any{"line": index})
}

package checkout

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/garagemaster/backend/pkg/db/models"
	"github.com/garagemaster/backend/pkg/enums"
)

// CartLineInput is one line of the cart as submitted by the till. The Kind
// tag decides which fields matter: part lines reference a Part, service lines
// a ServiceItem, custom lines carry their own name and price, and credit
// settlement lines name the unpaid invoices being folded into this bill.
type CartLineInput struct {
	Kind           enums.SaleLineKind
	PartID         *uuid.UUID
	ServiceID      *uuid.UUID
	Name           string
	Qty            int
	UnitPrice      decimal.Decimal
	SettledSaleIDs []uuid.UUID
}

// CheckoutInput is the full checkout request for the caller's open session.
type CheckoutInput struct {
	UserID        uuid.UUID
	VehicleNo     string
	CustomerName  string
	CustomerPhone string
	Mileage       int
	Lines         []CartLineInput
	Discount      decimal.Decimal
	RedeemPoints  int
	PaymentMethod enums.PaymentMethod
	CashReceived  decimal.Decimal
}

// CheckoutResult carries the committed sale plus the loyalty movement so the
// till can print both on the receipt.
type CheckoutResult struct {
	Sale           *models.Sale
	EarnedPoints   int
	CustomerPoints int
}

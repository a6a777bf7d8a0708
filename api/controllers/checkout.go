package controllers

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/garagemaster/backend/api/responses"
	"github.com/garagemaster/backend/api/validators"
	checkoutsvc "github.com/garagemaster/backend/internal/checkout"
	"github.com/garagemaster/backend/pkg/enums"
	pkgerrors "github.com/garagemaster/backend/pkg/errors"
	"github.com/garagemaster/backend/pkg/logger"
)

type cartLineRequest struct {
	Kind           string   `json:"kind" validate:"required,oneof=part service custom credit_settlement"`
	PartID         *string  `json:"part_id,omitempty"`
	ServiceID      *string  `json:"service_id,omitempty"`
	Name           string   `json:"name,omitempty"`
	Qty            int      `json:"qty,omitempty"`
	UnitPrice      string   `json:"unit_price,omitempty"`
	SettledSaleIDs []string `json:"settled_sale_ids,omitempty"`
}

type checkoutRequest struct {
	VehicleNo     string            `json:"vehicle_no" validate:"required"`
	CustomerName  string            `json:"customer_name,omitempty"`
	CustomerPhone string            `json:"customer_phone,omitempty"`
	Mileage       int               `json:"mileage,omitempty" validate:"omitempty,min=0"`
	Lines         []cartLineRequest `json:"lines" validate:"required,min=1,dive"`
	Discount      string            `json:"discount,omitempty"`
	RedeemPoints  int               `json:"redeem_points,omitempty" validate:"omitempty,min=0"`
	PaymentMethod string            `json:"payment_method" validate:"required,oneof=cash credit"`
	CashReceived  string            `json:"cash_received,omitempty"`
}

func (req checkoutRequest) toInput(userID uuid.UUID) (checkoutsvc.CheckoutInput, error) {
	input := checkoutsvc.CheckoutInput{
		UserID:        userID,
		VehicleNo:     validators.SanitizeString(req.VehicleNo, 20),
		CustomerName:  validators.SanitizeString(req.CustomerName, 120),
		CustomerPhone: validators.SanitizeString(req.CustomerPhone, 20),
		Mileage:       req.Mileage,
		RedeemPoints:  req.RedeemPoints,
	}

	method, err := enums.ParsePaymentMethod(req.PaymentMethod)
	if err != nil {
		return input, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid payment method")
	}
	input.PaymentMethod = method

	input.Discount, err = parseOptionalAmount(req.Discount)
	if err != nil {
		return input, pkgerrors.New(pkgerrors.CodeValidation, "discount must be a decimal amount")
	}
	input.CashReceived, err = parseOptionalAmount(req.CashReceived)
	if err != nil {
		return input, pkgerrors.New(pkgerrors.CodeValidation, "cash_received must be a decimal amount")
	}

	input.Lines = make([]checkoutsvc.CartLineInput, 0, len(req.Lines))
	for i, raw := range req.Lines {
		line, err := raw.toInput()
		if err != nil {
			typed := pkgerrors.As(err)
			if typed != nil {
				return input, typed.WithDetails(map[string]any{"line": i})
			}
			return input, err
		}
		input.Lines = append(input.Lines, line)
	}
	return input, nil
}

func (req cartLineRequest) toInput() (checkoutsvc.CartLineInput, error) {
	kind, err := enums.ParseSaleLineKind(req.Kind)
	if err != nil {
		return checkoutsvc.CartLineInput{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid line kind")
	}

	line := checkoutsvc.CartLineInput{
		Kind: kind,
		Name: validators.SanitizeString(req.Name, 200),
		Qty:  req.Qty,
	}

	if req.PartID != nil {
		id, err := uuid.Parse(*req.PartID)
		if err != nil {
			return line, pkgerrors.New(pkgerrors.CodeValidation, "part_id must be a uuid")
		}
		line.PartID = &id
	}
	if req.ServiceID != nil {
		id, err := uuid.Parse(*req.ServiceID)
		if err != nil {
			return line, pkgerrors.New(pkgerrors.CodeValidation, "service_id must be a uuid")
		}
		line.ServiceID = &id
	}
	for _, raw := range req.SettledSaleIDs {
		id, err := uuid.Parse(raw)
		if err != nil {
			return line, pkgerrors.New(pkgerrors.CodeValidation, "settled_sale_ids must be uuids")
		}
		line.SettledSaleIDs = append(line.SettledSaleIDs, id)
	}

	line.UnitPrice, err = parseOptionalAmount(req.UnitPrice)
	if err != nil {
		return line, pkgerrors.New(pkgerrors.CodeValidation, "unit_price must be a decimal amount")
	}
	return line, nil
}

type checkoutResponse struct {
	Sale           any `json:"sale"`
	EarnedPoints   int `json:"earned_points"`
	CustomerPoints int `json:"customer_points"`
}

// Checkout commits the cart as one invoice in the caller's open session.
func Checkout(svc checkoutsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := requireUserID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload checkoutRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		input, err := payload.toInput(userID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.Commit(r.Context(), input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, checkoutResponse{
			Sale:           result.Sale,
			EarnedPoints:   result.EarnedPoints,
			CustomerPoints: result.CustomerPoints,
		})
	}
}

func parseOptionalAmount(raw string) (decimal.Decimal, error) {
	if raw == "" {
		return decimal.Zero, nil
	}
	return decimal.NewFromString(raw)
}

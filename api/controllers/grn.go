package controllers

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/garagemaster/backend/api/responses"
	"github.com/garagemaster/backend/api/validators"
	grnsvc "github.com/garagemaster/backend/internal/grn"
	pkgerrors "github.com/garagemaster/backend/pkg/errors"
	"github.com/garagemaster/backend/pkg/logger"
)

type grnLineRequest struct {
	PartID   string `json:"part_id" validate:"required"`
	Qty      int    `json:"qty" validate:"required,min=1"`
	UnitCost string `json:"unit_cost" validate:"required"`
}

type grnRequest struct {
	SupplierID string           `json:"supplier_id" validate:"required"`
	Reference  string           `json:"reference,omitempty"`
	Lines      []grnLineRequest `json:"lines" validate:"required,min=1,dive"`
}

// ReceiveGRN books a supplier delivery and its stock side effects. Admin only.
func ReceiveGRN(svc grnsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := requireUserID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload grnRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		supplierID, err := uuid.Parse(payload.SupplierID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w,
				pkgerrors.New(pkgerrors.CodeValidation, "supplier_id must be a uuid"))
			return
		}

		input := grnsvc.CreateInput{
			SupplierID: supplierID,
			Reference:  validators.SanitizeString(payload.Reference, 100),
			UserID:     userID,
		}
		for _, raw := range payload.Lines {
			partID, err := uuid.Parse(raw.PartID)
			if err != nil {
				responses.WriteError(r.Context(), logg, w,
					pkgerrors.New(pkgerrors.CodeValidation, "part_id must be a uuid"))
				return
			}
			unitCost, err := decimal.NewFromString(raw.UnitCost)
			if err != nil {
				responses.WriteError(r.Context(), logg, w,
					pkgerrors.New(pkgerrors.CodeValidation, "unit_cost must be a decimal amount"))
				return
			}
			input.Lines = append(input.Lines, grnsvc.LineInput{
				PartID:   partID,
				Qty:      raw.Qty,
				UnitCost: unitCost,
			})
		}

		grn, err := svc.Create(r.Context(), input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, grn)
	}
}

// GetGRN fetches one goods-received note with its lines.
func GetGRN(svc grnsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.ParseUUIDParam(r, "grnId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		grn, err := svc.Get(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, grn)
	}
}

// ListGRNs lists deliveries, optionally for one supplier.
func ListGRNs(svc grnsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		limit, err := validators.ParseQueryInt(r, "limit", 50, 1, 500)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		supplierID := uuid.Nil
		if raw := validators.SanitizeString(r.URL.Query().Get("supplier_id"), 40); raw != "" {
			supplierID, err = uuid.Parse(raw)
			if err != nil {
				responses.WriteError(r.Context(), logg, w,
					pkgerrors.New(pkgerrors.CodeValidation, "supplier_id must be a uuid"))
				return
			}
		}

		grns, err := svc.List(r.Context(), supplierID, limit)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, grns)
	}
}

type supplierPaymentRequest struct {
	Amount string `json:"amount" validate:"required"`
	Note   string `json:"note,omitempty"`
}

// RecordSupplierPayment allocates a payment across a supplier's unpaid
// notes, oldest first. Admin only.
func RecordSupplierPayment(svc grnsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := requireUserID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		supplierID, err := validators.ParseUUIDParam(r, "supplierId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload supplierPaymentRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		amount, err := decimal.NewFromString(payload.Amount)
		if err != nil {
			responses.WriteError(r.Context(), logg, w,
				pkgerrors.New(pkgerrors.CodeValidation, "amount must be a decimal amount"))
			return
		}

		result, err := svc.RecordPayment(r.Context(), grnsvc.PaymentInput{
			SupplierID: supplierID,
			Amount:     amount,
			Note:       validators.SanitizeString(payload.Note, 200),
			UserID:     userID,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, result)
	}
}

// SupplierLedger returns the full statement for one supplier.
func SupplierLedger(svc grnsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		supplierID, err := validators.ParseUUIDParam(r, "supplierId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		ledger, err := svc.SupplierLedger(r.Context(), supplierID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, ledger)
	}
}

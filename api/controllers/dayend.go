package controllers

import (
	"net/http"

	"github.com/shopspring/decimal"

	"github.com/garagemaster/backend/api/responses"
	"github.com/garagemaster/backend/api/validators"
	dayendsvc "github.com/garagemaster/backend/internal/dayend"
	pkgerrors "github.com/garagemaster/backend/pkg/errors"
	"github.com/garagemaster/backend/pkg/logger"
)

type reconcileRequest struct {
	CashInHand string `json:"cash_in_hand" validate:"required"`
}

// Reconcile closes the caller's business day against the counted drawer.
func Reconcile(svc dayendsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := requireUserID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload reconcileRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		cashInHand, err := decimal.NewFromString(payload.CashInHand)
		if err != nil {
			responses.WriteError(r.Context(), logg, w,
				pkgerrors.New(pkgerrors.CodeValidation, "cash_in_hand must be a decimal amount"))
			return
		}

		result, err := svc.Reconcile(r.Context(), dayendsvc.ReconcileInput{
			UserID:     userID,
			CashInHand: cashInHand,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, result)
	}
}

// DayEndReport fetches the persisted report for one session.
func DayEndReport(svc dayendsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sessionID, err := validators.ParseUUIDParam(r, "sessionId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		report, err := svc.ReportForSession(r.Context(), sessionID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, report)
	}
}

// DayEndHistory lists past day-end reports, newest first.
func DayEndHistory(svc dayendsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		limit, err := validators.ParseQueryInt(r, "limit", 30, 1, 365)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		reports, err := svc.History(r.Context(), limit)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, reports)
	}
}

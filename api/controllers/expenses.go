package controllers

import (
	"net/http"
	"time"

	"github.com/shopspring/decimal"

	"github.com/garagemaster/backend/api/responses"
	"github.com/garagemaster/backend/api/validators"
	expensesvc "github.com/garagemaster/backend/internal/expenses"
	pkgerrors "github.com/garagemaster/backend/pkg/errors"
	"github.com/garagemaster/backend/pkg/logger"
)

type expenseRequest struct {
	Date        string `json:"date,omitempty"`
	Category    string `json:"category" validate:"required"`
	Description string `json:"description,omitempty"`
	Amount      string `json:"amount" validate:"required"`
}

// CreateExpense books a cash outflow against a calendar day.
func CreateExpense(svc expensesvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := requireUserID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload expenseRequest
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

		expense, err := svc.Create(r.Context(), expensesvc.Input{
			Date:        validators.SanitizeString(payload.Date, 10),
			Category:    validators.SanitizeString(payload.Category, 100),
			Description: validators.SanitizeString(payload.Description, 300),
			Amount:      amount,
			UserID:      userID,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, expense)
	}
}

// DeleteExpense removes a booked expense. Admin only.
func DeleteExpense(svc expensesvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.ParseUUIDParam(r, "expenseId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if err := svc.Delete(r.Context(), id); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "deleted"})
	}
}

// ExpensesForDate returns the day sheet for the requested date, defaulting
// to today.
func ExpensesForDate(svc expensesvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		date := validators.SanitizeString(r.URL.Query().Get("date"), 10)
		if date == "" {
			date = time.Now().Format(expensesvc.DateLayout)
		}

		sheet, err := svc.ForDate(r.Context(), date)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, sheet)
	}
}

package controllers

import (
	"net/http"
	"time"

	"github.com/garagemaster/backend/api/responses"
	"github.com/garagemaster/backend/api/validators"
	reportsvc "github.com/garagemaster/backend/internal/reports"
	"github.com/garagemaster/backend/pkg/logger"
)

// TodayReport returns the live dashboard for the caller's open day.
func TodayReport(svc reportsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := requireUserID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		summary, err := svc.Today(r.Context(), userID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, summary)
	}
}

// periodFromQuery reads from/to date parameters; the default window is the
// last 30 days and To is exclusive of the following midnight.
func periodFromQuery(r *http.Request) (reportsvc.Period, error) {
	now := time.Now()
	defaultFrom := now.AddDate(0, 0, -30)

	from, err := validators.ParseQueryDate(r, "from", defaultFrom)
	if err != nil {
		return reportsvc.Period{}, err
	}
	to, err := validators.ParseQueryDate(r, "to", now)
	if err != nil {
		return reportsvc.Period{}, err
	}
	return reportsvc.Period{From: from, To: to.AddDate(0, 0, 1)}, nil
}

// SalesReport lists invoices for a period with totals. Admin only.
func SalesReport(svc reportsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		period, err := periodFromQuery(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		report, err := svc.Sales(r.Context(), period)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, report)
	}
}

// ExpensesReport lists expenses for a period with totals. Admin only.
func ExpensesReport(svc reportsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		period, err := periodFromQuery(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		report, err := svc.Expenses(r.Context(), period)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, report)
	}
}

// PurchasesReport lists deliveries for a period with totals. Admin only.
func PurchasesReport(svc reportsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		period, err := periodFromQuery(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		report, err := svc.Purchases(r.Context(), period)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, report)
	}
}

package controllers

import (
	"net/http"

	"github.com/garagemaster/backend/api/responses"
	"github.com/garagemaster/backend/api/validators"
	customersvc "github.com/garagemaster/backend/internal/customers"
	"github.com/garagemaster/backend/pkg/logger"
)

// SearchCustomers finds customers by name, phone or vehicle number.
func SearchCustomers(svc customersvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		query := validators.SanitizeString(r.URL.Query().Get("q"), 120)

		customers, err := svc.Search(r.Context(), query)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, customers)
	}
}

// CustomerProfile returns one customer's ledger, history and credit book.
func CustomerProfile(svc customersvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		phone := validators.SanitizeString(r.URL.Query().Get("phone"), 20)

		profile, err := svc.Profile(r.Context(), phone)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, profile)
	}
}

// OutstandingByVehicle lists unpaid credit invoices for one vehicle.
func OutstandingByVehicle(svc customersvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		vehicleNo := validators.SanitizeString(r.URL.Query().Get("vehicle_no"), 20)

		outstanding, err := svc.OutstandingByVehicle(r.Context(), vehicleNo)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, outstanding)
	}
}

// SettleCreditSale marks a single credit invoice as paid.
func SettleCreditSale(svc customersvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		saleID, err := validators.ParseUUIDParam(r, "saleId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if err := svc.MarkPaid(r.Context(), saleID); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "settled"})
	}
}

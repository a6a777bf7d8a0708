package controllers

import (
	"net/http"

	"github.com/garagemaster/backend/api/responses"
	"github.com/garagemaster/backend/api/validators"
	vehiclesvc "github.com/garagemaster/backend/internal/vehicles"
	"github.com/garagemaster/backend/pkg/logger"
)

type vehicleRequest struct {
	VehicleNo     string `json:"vehicle_no" validate:"required"`
	CustomerPhone string `json:"customer_phone,omitempty"`
	Model         string `json:"model,omitempty"`
	Year          int    `json:"year,omitempty" validate:"omitempty,min=1900,max=2100"`
	Engine        string `json:"engine,omitempty"`
	Chassis       string `json:"chassis,omitempty"`
	Notes         string `json:"notes,omitempty"`
}

func (req vehicleRequest) toInput() vehiclesvc.Input {
	return vehiclesvc.Input{
		VehicleNo:     validators.SanitizeString(req.VehicleNo, 20),
		CustomerPhone: validators.SanitizeString(req.CustomerPhone, 20),
		Model:         validators.SanitizeString(req.Model, 100),
		Year:          req.Year,
		Engine:        validators.SanitizeString(req.Engine, 100),
		Chassis:       validators.SanitizeString(req.Chassis, 100),
		Notes:         validators.SanitizeString(req.Notes, 500),
	}
}

// CreateVehicle registers a vehicle.
func CreateVehicle(svc vehiclesvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload vehicleRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		vehicle, err := svc.Create(r.Context(), payload.toInput())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, vehicle)
	}
}

// UpdateVehicle rewrites a vehicle's register entry.
func UpdateVehicle(svc vehiclesvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.ParseUUIDParam(r, "vehicleId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload vehicleRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		vehicle, err := svc.Update(r.Context(), id, payload.toInput())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, vehicle)
	}
}

// DeleteVehicle removes a vehicle from the register. Admin only.
func DeleteVehicle(svc vehiclesvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.ParseUUIDParam(r, "vehicleId")
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

// SearchVehicles finds vehicles by number, phone or model.
func SearchVehicles(svc vehiclesvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		query := validators.SanitizeString(r.URL.Query().Get("q"), 100)

		vehicles, err := svc.Search(r.Context(), query)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, vehicles)
	}
}

// LookupVehicle answers the POS autofill: register entry plus last invoice.
func LookupVehicle(svc vehiclesvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		vehicleNo := validators.SanitizeString(r.URL.Query().Get("vehicle_no"), 20)

		lookup, err := svc.LookupByNumber(r.Context(), vehicleNo)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, lookup)
	}
}

// VehicleHistory lists past invoices for one vehicle.
func VehicleHistory(svc vehiclesvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		vehicleNo := validators.SanitizeString(r.URL.Query().Get("vehicle_no"), 20)
		limit, err := validators.ParseQueryInt(r, "limit", 20, 1, 200)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		sales, err := svc.History(r.Context(), vehicleNo, limit)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, sales)
	}
}

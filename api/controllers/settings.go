package controllers

import (
	"net/http"

	"github.com/garagemaster/backend/api/responses"
	"github.com/garagemaster/backend/api/validators"
	settingsvc "github.com/garagemaster/backend/internal/settings"
	"github.com/garagemaster/backend/pkg/logger"
)

type settingRequest struct {
	Key   string `json:"key" validate:"required"`
	Value string `json:"value"`
}

// PutSetting upserts one shop preference. Admin only.
func PutSetting(svc settingsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload settingRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		key := validators.SanitizeString(payload.Key, 100)
		if err := svc.Put(r.Context(), key, payload.Value); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"key": key, "value": payload.Value})
	}
}

// AllSettings returns every shop preference as a flat map.
func AllSettings(svc settingsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		settings, err := svc.All(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, settings)
	}
}

package controllers

import (
	"net/http"

	"github.com/garagemaster/backend/api/responses"
	"github.com/garagemaster/backend/api/validators"
	journalsvc "github.com/garagemaster/backend/internal/journal"
	"github.com/garagemaster/backend/pkg/logger"
)

// JournalEntries lists the audit trail, newest first, optionally by kind.
func JournalEntries(svc journalsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		kind := validators.SanitizeString(r.URL.Query().Get("kind"), 40)
		limit, err := validators.ParseQueryInt(r, "limit", 100, 1, 1000)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		entries, err := svc.List(r.Context(), kind, limit)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, entries)
	}
}

package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/garagemaster/backend/api/responses"
	"github.com/garagemaster/backend/pkg/config"
	"github.com/garagemaster/backend/pkg/logger"
)

// Pinger is the reachability probe the readiness check runs.
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthLive reports process liveness.
func HealthLive(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		responses.WriteSuccess(w, map[string]string{
			"status": "ok",
			"env":    cfg.App.Env,
		})
	}
}

// HealthReady verifies the database answers before reporting ready.
func HealthReady(cfg *config.Config, logg *logger.Logger, db Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		status := map[string]string{"status": "ok", "db": "ok"}
		code := http.StatusOK
		if db == nil {
			status["status"] = "degraded"
			status["db"] = "not configured"
			code = http.StatusServiceUnavailable
		} else if err := db.Ping(ctx); err != nil {
			if logg != nil {
				logg.Error(ctx, "readiness db ping failed", err)
			}
			status["status"] = "degraded"
			status["db"] = "unreachable"
			code = http.StatusServiceUnavailable
		}

		responses.WriteSuccessStatus(w, code, status)
	}
}

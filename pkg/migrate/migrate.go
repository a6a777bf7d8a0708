package migrate

import (
	"context"
	"fmt"

	"github.com/garagemaster/backend/pkg/config"
	"github.com/garagemaster/backend/pkg/db"
	"github.com/garagemaster/backend/pkg/db/models"
	"github.com/garagemaster/backend/pkg/logger"
)

// MaybeRun migrates the SQLite schema on boot when the feature flag is
// enabled. The shop till owns its database file, so schema management
// lives in the binary rather than in an external migration step.
func MaybeRun(ctx context.Context, cfg *config.Config, logg *logger.Logger, client *db.Client) error {
	if !cfg.DB.AutoMigrate {
		return nil
	}

	ctx = logg.WithFields(ctx, map[string]any{"env": cfg.App.Env, "db_path": cfg.DB.Path})
	logg.Info(ctx, "running schema migration")

	if err := client.DB().WithContext(ctx).AutoMigrate(models.All()...); err != nil {
		return fmt.Errorf("migrating schema: %w", err)
	}

	logg.Info(ctx, "schema migration completed")
	return nil
}

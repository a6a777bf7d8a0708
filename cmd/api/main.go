package main

import (
	"context"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/garagemaster/backend/api/routes"
	"github.com/garagemaster/backend/internal/auth"
	"github.com/garagemaster/backend/internal/catalog"
	"github.com/garagemaster/backend/internal/checkout"
	"github.com/garagemaster/backend/internal/customers"
	"github.com/garagemaster/backend/internal/dayend"
	"github.com/garagemaster/backend/internal/expenses"
	"github.com/garagemaster/backend/internal/grn"
	"github.com/garagemaster/backend/internal/journal"
	"github.com/garagemaster/backend/internal/reports"
	"github.com/garagemaster/backend/internal/sessions"
	"github.com/garagemaster/backend/internal/settings"
	"github.com/garagemaster/backend/internal/suppliers"
	"github.com/garagemaster/backend/internal/vehicles"
	"github.com/garagemaster/backend/pkg/config"
	"github.com/garagemaster/backend/pkg/db"
	"github.com/garagemaster/backend/pkg/logger"
	"github.com/garagemaster/backend/pkg/metrics"
	"github.com/garagemaster/backend/pkg/migrate"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	dbClient, err := db.New(context.Background(), cfg.DB, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap database", err)
		os.Exit(1)
	}
	defer func() {
		if err := dbClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing database", err)
		}
	}()

	if err := migrate.MaybeRun(context.Background(), cfg, logg, dbClient); err != nil {
		logg.Error(context.Background(), "failed to migrate schema", err)
		os.Exit(1)
	}

	conn := dbClient.DB()
	txRunner := db.NewTxRunner(conn)

	registry := prometheus.NewRegistry()
	posMetrics := metrics.NewPOSMetrics(registry)

	authService, err := auth.NewService(auth.ServiceParams{
		Repo:           auth.NewRepository(conn),
		JWTConfig:      cfg.JWT,
		PasswordConfig: cfg.Password,
		Logger:         logg,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create auth service", err)
		os.Exit(1)
	}

	if cfg.DB.SeedOnFirstBoot {
		if err := authService.SeedAdmin(context.Background()); err != nil {
			logg.Error(context.Background(), "failed to seed admin account", err)
			os.Exit(1)
		}
	}

	journalService, err := journal.NewService(journal.NewRepository(conn), logg, cfg.Journal.Dir, cfg.Shop)
	if err != nil {
		logg.Error(context.Background(), "failed to create journal service", err)
		os.Exit(1)
	}

	sessionService, err := sessions.NewService(sessions.NewRepository(conn), txRunner, journalService)
	if err != nil {
		logg.Error(context.Background(), "failed to create session service", err)
		os.Exit(1)
	}

	checkoutService, err := checkout.NewService(
		checkout.NewRepository(conn), txRunner, journalService, posMetrics, cfg.Loyalty.EarnDivisor)
	if err != nil {
		logg.Error(context.Background(), "failed to create checkout service", err)
		os.Exit(1)
	}

	dayEndService, err := dayend.NewService(dayend.NewRepository(conn), txRunner, journalService, posMetrics)
	if err != nil {
		logg.Error(context.Background(), "failed to create day-end service", err)
		os.Exit(1)
	}

	catalogService, err := catalog.NewService(catalog.NewRepository(conn))
	if err != nil {
		logg.Error(context.Background(), "failed to create catalog service", err)
		os.Exit(1)
	}

	customerService, err := customers.NewService(customers.NewRepository(conn))
	if err != nil {
		logg.Error(context.Background(), "failed to create customer service", err)
		os.Exit(1)
	}

	vehicleService, err := vehicles.NewService(vehicles.NewRepository(conn))
	if err != nil {
		logg.Error(context.Background(), "failed to create vehicle service", err)
		os.Exit(1)
	}

	supplierService, err := suppliers.NewService(suppliers.NewRepository(conn))
	if err != nil {
		logg.Error(context.Background(), "failed to create supplier service", err)
		os.Exit(1)
	}

	grnService, err := grn.NewService(grn.NewRepository(conn), txRunner)
	if err != nil {
		logg.Error(context.Background(), "failed to create grn service", err)
		os.Exit(1)
	}

	expenseService, err := expenses.NewService(expenses.NewRepository(conn))
	if err != nil {
		logg.Error(context.Background(), "failed to create expense service", err)
		os.Exit(1)
	}

	reportService, err := reports.NewService(reports.NewRepository(conn))
	if err != nil {
		logg.Error(context.Background(), "failed to create report service", err)
		os.Exit(1)
	}

	settingService, err := settings.NewService(settings.NewRepository(conn))
	if err != nil {
		logg.Error(context.Background(), "failed to create settings service", err)
		os.Exit(1)
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":  cfg.App.Env,
		"addr": addr,
	})
	logg.Info(ctx, "starting api server")

	server := &http.Server{
		Addr: addr,
		Handler: routes.NewRouter(cfg, logg, dbClient, registry, routes.Services{
			Auth:      authService,
			Sessions:  sessionService,
			Checkout:  checkoutService,
			DayEnd:    dayEndService,
			Catalog:   catalogService,
			Customers: customerService,
			Vehicles:  vehicleService,
			Suppliers: supplierService,
			GRN:       grnService,
			Expenses:  expenseService,
			Reports:   reportService,
			Journal:   journalService,
			Settings:  settingService,
		}),
	}

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logg.Error(ctx, "api server stopped unexpectedly", err)
		os.Exit(1)
	}
}

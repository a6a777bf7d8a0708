package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/garagemaster/backend/api/controllers"
	"github.com/garagemaster/backend/api/middleware"
	authsvc "github.com/garagemaster/backend/internal/auth"
	catalogsvc "github.com/garagemaster/backend/internal/catalog"
	checkoutsvc "github.com/garagemaster/backend/internal/checkout"
	customersvc "github.com/garagemaster/backend/internal/customers"
	dayendsvc "github.com/garagemaster/backend/internal/dayend"
	expensesvc "github.com/garagemaster/backend/internal/expenses"
	grnsvc "github.com/garagemaster/backend/internal/grn"
	journalsvc "github.com/garagemaster/backend/internal/journal"
	reportsvc "github.com/garagemaster/backend/internal/reports"
	sessionsvc "github.com/garagemaster/backend/internal/sessions"
	settingsvc "github.com/garagemaster/backend/internal/settings"
	suppliersvc "github.com/garagemaster/backend/internal/suppliers"
	vehiclesvc "github.com/garagemaster/backend/internal/vehicles"
	"github.com/garagemaster/backend/pkg/config"
	"github.com/garagemaster/backend/pkg/enums"
	"github.com/garagemaster/backend/pkg/logger"
)

// Services bundles everything the router wires to handlers.
type Services struct {
	Auth      authsvc.Service
	Sessions  sessionsvc.Service
	Checkout  checkoutsvc.Service
	DayEnd    dayendsvc.Service
	Catalog   catalogsvc.Service
	Customers customersvc.Service
	Vehicles  vehiclesvc.Service
	Suppliers suppliersvc.Service
	GRN       grnsvc.Service
	Expenses  expensesvc.Service
	Reports   reportsvc.Service
	Journal   journalsvc.Service
	Settings  settingsvc.Service
}

// NewRouter assembles the full HTTP surface of the till.
func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	db controllers.Pinger,
	registry *prometheus.Registry,
	svcs Services,
) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, db))
	})

	if registry != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
	}

	r.Route("/api/v1/auth", func(r chi.Router) {
		r.Post("/login", controllers.Login(svcs.Auth, logg))
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWT, logg))

		r.Post("/auth/change-password", controllers.ChangePassword(svcs.Auth, logg))

		r.Route("/sessions", func(r chi.Router) {
			r.Post("/start", controllers.StartDay(svcs.Sessions, logg))
			r.Get("/active", controllers.ActiveSession(svcs.Sessions, logg))
		})

		r.Post("/checkout", controllers.Checkout(svcs.Checkout, logg))

		r.Route("/day-end", func(r chi.Router) {
			r.Post("/", controllers.Reconcile(svcs.DayEnd, logg))
			r.Get("/", controllers.DayEndHistory(svcs.DayEnd, logg))
			r.Get("/{sessionId}", controllers.DayEndReport(svcs.DayEnd, logg))
		})

		r.Route("/parts", func(r chi.Router) {
			r.Get("/", controllers.SearchParts(svcs.Catalog, logg))
			r.Get("/low-stock", controllers.LowStock(svcs.Catalog, logg))
			r.Get("/{partId}", controllers.GetPart(svcs.Catalog, logg))
		})
		r.Get("/services", controllers.ListServiceItems(svcs.Catalog, logg))

		r.Route("/customers", func(r chi.Router) {
			r.Get("/", controllers.SearchCustomers(svcs.Customers, logg))
			r.Get("/profile", controllers.CustomerProfile(svcs.Customers, logg))
			r.Get("/outstanding", controllers.OutstandingByVehicle(svcs.Customers, logg))
			r.Post("/sales/{saleId}/settle", controllers.SettleCreditSale(svcs.Customers, logg))
		})

		r.Route("/vehicles", func(r chi.Router) {
			r.Get("/", controllers.SearchVehicles(svcs.Vehicles, logg))
			r.Get("/lookup", controllers.LookupVehicle(svcs.Vehicles, logg))
			r.Get("/history", controllers.VehicleHistory(svcs.Vehicles, logg))
			r.Post("/", controllers.CreateVehicle(svcs.Vehicles, logg))
			r.Put("/{vehicleId}", controllers.UpdateVehicle(svcs.Vehicles, logg))
		})

		r.Route("/expenses", func(r chi.Router) {
			r.Post("/", controllers.CreateExpense(svcs.Expenses, logg))
			r.Get("/", controllers.ExpensesForDate(svcs.Expenses, logg))
		})

		r.Get("/reports/today", controllers.TodayReport(svcs.Reports, logg))

		r.Get("/suppliers", controllers.ListSuppliers(svcs.Suppliers, logg))
		r.Get("/settings", controllers.AllSettings(svcs.Settings, logg))
	})

	r.Route("/api/admin/v1", func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWT, logg))
		r.Use(middleware.RequireRole(string(enums.UserRoleAdmin), logg))

		r.Route("/users", func(r chi.Router) {
			r.Get("/", controllers.ListUsers(svcs.Auth, logg))
			r.Post("/", controllers.CreateUser(svcs.Auth, logg))
			r.Post("/{userId}/reset-password", controllers.ResetUserPassword(svcs.Auth, logg))
		})

		r.Route("/parts", func(r chi.Router) {
			r.Post("/", controllers.CreatePart(svcs.Catalog, logg))
			r.Put("/{partId}", controllers.UpdatePart(svcs.Catalog, logg))
			r.Delete("/{partId}", controllers.DeletePart(svcs.Catalog, logg))
		})
		r.Route("/services", func(r chi.Router) {
			r.Post("/", controllers.CreateServiceItem(svcs.Catalog, logg))
			r.Put("/{serviceId}", controllers.UpdateServiceItem(svcs.Catalog, logg))
			r.Delete("/{serviceId}", controllers.DeleteServiceItem(svcs.Catalog, logg))
		})

		r.Route("/suppliers", func(r chi.Router) {
			r.Post("/", controllers.CreateSupplier(svcs.Suppliers, logg))
			r.Put("/{supplierId}", controllers.UpdateSupplier(svcs.Suppliers, logg))
			r.Delete("/{supplierId}", controllers.DeleteSupplier(svcs.Suppliers, logg))
			r.Get("/{supplierId}/ledger", controllers.SupplierLedger(svcs.GRN, logg))
			r.Post("/{supplierId}/payments", controllers.RecordSupplierPayment(svcs.GRN, logg))
		})

		r.Route("/grns", func(r chi.Router) {
			r.Post("/", controllers.ReceiveGRN(svcs.GRN, logg))
			r.Get("/", controllers.ListGRNs(svcs.GRN, logg))
			r.Get("/{grnId}", controllers.GetGRN(svcs.GRN, logg))
		})

		r.Delete("/expenses/{expenseId}", controllers.DeleteExpense(svcs.Expenses, logg))
		r.Delete("/vehicles/{vehicleId}", controllers.DeleteVehicle(svcs.Vehicles, logg))

		r.Route("/reports", func(r chi.Router) {
			r.Get("/sales", controllers.SalesReport(svcs.Reports, logg))
			r.Get("/expenses", controllers.ExpensesReport(svcs.Reports, logg))
			r.Get("/purchases", controllers.PurchasesReport(svcs.Reports, logg))
		})

		r.Get("/journal", controllers.JournalEntries(svcs.Journal, logg))
		r.Post("/settings", controllers.PutSetting(svcs.Settings, logg))
	})

	return r
}

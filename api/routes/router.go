package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/omc-erp/omc-backend/api/controllers"
	"github.com/omc-erp/omc-backend/api/middleware"
	"github.com/omc-erp/omc-backend/pkg/config"
	"github.com/omc-erp/omc-backend/pkg/db"
	"github.com/omc-erp/omc-backend/pkg/logger"
	"github.com/omc-erp/omc-backend/pkg/redis"
)

// NewRouter assembles the HTTP surface: health probes and metrics stay open,
// everything under /api/v1 requires a tenant header.
func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	dbP db.Pinger,
	redisP redis.Pinger,
	engine controllers.TransactionEngine,
	ledger controllers.InventoryReader,
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
		r.Get("/ready", controllers.HealthReady(cfg, logg, dbP, redisP))
	})
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.TenantContext(logg))

		r.Route("/transactions", func(r chi.Router) {
			r.Post("/", controllers.TransactionCreate(engine, logg))
			r.Get("/", controllers.TransactionList(engine, logg))
			r.Get("/summary/daily", controllers.TransactionDailySummary(engine, logg))
			r.Get("/{transactionId}", controllers.TransactionDetail(engine, logg))
			r.Post("/{transactionId}/complete", controllers.TransactionComplete(engine, logg))
			r.Post("/{transactionId}/cancel", controllers.TransactionCancel(engine, logg))
			r.Post("/{transactionId}/refund", controllers.TransactionRefund(engine, logg))
		})

		r.Route("/stations", func(r chi.Router) {
			r.Get("/{stationId}/transactions", controllers.StationTransactions(engine, logg))
		})

		r.Route("/customers", func(r chi.Router) {
			r.Get("/{customerId}/transactions", controllers.CustomerTransactions(engine, logg))
		})

		r.Route("/tanks", func(r chi.Router) {
			r.Get("/{tankId}/level", controllers.TankLevel(ledger, logg))
			r.Get("/{tankId}/movements", controllers.TankMovements(ledger, logg))
		})
	})

	return r
}

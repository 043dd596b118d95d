package main

import (
	"context"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/omc-erp/omc-backend/api/routes"
	"github.com/omc-erp/omc-backend/internal/customers"
	"github.com/omc-erp/omc-backend/internal/inventory"
	"github.com/omc-erp/omc-backend/internal/payments"
	"github.com/omc-erp/omc-backend/internal/pricing"
	"github.com/omc-erp/omc-backend/internal/stations"
	"github.com/omc-erp/omc-backend/internal/transactions"
	"github.com/omc-erp/omc-backend/pkg/config"
	"github.com/omc-erp/omc-backend/pkg/db"
	"github.com/omc-erp/omc-backend/pkg/logger"
	"github.com/omc-erp/omc-backend/pkg/metrics"
	"github.com/omc-erp/omc-backend/pkg/migrate"
	"github.com/omc-erp/omc-backend/pkg/outbox"
	"github.com/omc-erp/omc-backend/pkg/redis"
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

	if err := migrate.MaybeRunDev(context.Background(), cfg, logg, dbClient); err != nil {
		logg.Error(context.Background(), "failed to run dev migrations", err)
		os.Exit(1)
	}

	redisClient, err := redis.New(context.Background(), cfg.Redis, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap redis", err)
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing redis", err)
		}
	}()

	collector := metrics.NewTransactionMetrics(prometheus.DefaultRegisterer)
	outboxSvc := outbox.NewService(outbox.NewRepository(dbClient.DB()), logg)

	ledger, err := inventory.NewService(inventory.NewRepository(dbClient.DB()), outboxSvc, collector)
	if err != nil {
		logg.Error(context.Background(), "failed to create inventory service", err)
		os.Exit(1)
	}

	gateway, err := payments.NewGateway(cfg.Gateway)
	if err != nil {
		logg.Error(context.Background(), "failed to create payment gateway", err)
		os.Exit(1)
	}

	receipts, err := transactions.NewReceiptGenerator(redisClient)
	if err != nil {
		logg.Error(context.Background(), "failed to create receipt generator", err)
		os.Exit(1)
	}

	engine, err := transactions.NewService(
		transactions.NewRepository(dbClient.DB()),
		dbClient,
		stations.NewRepository(dbClient.DB()),
		customers.NewRepository(dbClient.DB()),
		ledger,
		gateway,
		pricing.NewCalculator(cfg.Pricing),
		receipts,
		outboxSvc,
		collector,
		logg,
		cfg.Gateway,
	)
	if err != nil {
		logg.Error(context.Background(), "failed to create transaction engine", err)
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
		Addr:    addr,
		Handler: routes.NewRouter(cfg, logg, dbClient, redisClient, engine, ledger),
	}

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logg.Error(ctx, "api server stopped unexpectedly", err)
		os.Exit(1)
	}
}

package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/omc-erp/omc-backend/api/responses"
	"github.com/omc-erp/omc-backend/pkg/config"
	"github.com/omc-erp/omc-backend/pkg/db"
	"github.com/omc-erp/omc-backend/pkg/logger"
	"github.com/omc-erp/omc-backend/pkg/redis"
)

const readinessTimeout = 5 * time.Second

func HealthLive(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-OMC-Env", cfg.App.Env)
		responses.WriteSuccess(w, map[string]string{"status": "live"})
	}
}

// HealthReady pings every hard dependency. A single failing check flips the
// endpoint to 503 so the load balancer stops routing here.
func HealthReady(cfg *config.Config, logg *logger.Logger, dbP db.Pinger, redisP redis.Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-OMC-Env", cfg.App.Env)

		ctx, cancel := context.WithTimeout(r.Context(), readinessTimeout)
		defer cancel()

		checks := map[string]string{}
		healthy := true

		checks["database"] = pingStatus(ctx, logg, "database", dbP)
		if checks["database"] != "ok" {
			healthy = false
		}
		checks["redis"] = pingStatus(ctx, logg, "redis", redisP)
		if checks["redis"] != "ok" {
			healthy = false
		}

		status := "ready"
		code := http.StatusOK
		if !healthy {
			status = "degraded"
			code = http.StatusServiceUnavailable
		}
		responses.WriteSuccessStatus(w, code, map[string]any{
			"status": status,
			"checks": checks,
		})
	}
}

type pinger interface {
	Ping(ctx context.Context) error
}

func pingStatus(ctx context.Context, logg *logger.Logger, name string, p pinger) string {
	if p == nil {
		return "skipped"
	}
	if err := p.Ping(ctx); err != nil {
		if logg != nil {
			logg.Error(logg.WithField(ctx, "dependency", name), "readiness check failed", err)
		}
		return "failed"
	}
	return "ok"
}

package controllers

import (
	"context"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/omc-erp/omc-backend/api/middleware"
	"github.com/omc-erp/omc-backend/api/responses"
	"github.com/omc-erp/omc-backend/api/validators"
	"github.com/omc-erp/omc-backend/internal/inventory"
	pkgerrors "github.com/omc-erp/omc-backend/pkg/errors"
	"github.com/omc-erp/omc-backend/pkg/logger"
	"github.com/omc-erp/omc-backend/pkg/pagination"
)

// InventoryReader is the read-only ledger surface the tank controllers use.
type InventoryReader interface {
	GetTankLevel(ctx context.Context, tankID, tenantID uuid.UUID) (*inventory.LevelSnapshot, error)
	GetMovements(ctx context.Context, tankID, tenantID uuid.UUID, limit int) ([]inventory.MovementRecord, error)
}

// TankLevel reports the tank's current, reserved, and dispensable volume.
func TankLevel(svc InventoryReader, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "inventory service unavailable"))
			return
		}
		tenantID, ok := middleware.TenantIDFromContext(r.Context())
		if !ok {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "tenant context missing"))
			return
		}
		tankID, err := tankIDParam(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		snapshot, err := svc.GetTankLevel(r.Context(), tankID, tenantID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, snapshot)
	}
}

// TankMovements returns the tank's most recent ledger entries.
func TankMovements(svc InventoryReader, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "inventory service unavailable"))
			return
		}
		tenantID, ok := middleware.TenantIDFromContext(r.Context())
		if !ok {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "tenant context missing"))
			return
		}
		tankID, err := tankIDParam(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		limit, err := validators.ParseQueryInt(r, "limit", pagination.DefaultLimit, 1, pagination.MaxLimit)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		movements, err := svc.GetMovements(r.Context(), tankID, tenantID, limit)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]any{"movements": movements})
	}
}

func tankIDParam(r *http.Request) (uuid.UUID, error) {
	raw := strings.TrimSpace(chi.URLParam(r, "tankId"))
	if raw == "" {
		return uuid.Nil, pkgerrors.New(pkgerrors.CodeValidation, "tank id is required")
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid tank id")
	}
	return id, nil
}

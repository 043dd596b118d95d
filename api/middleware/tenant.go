package middleware

import (
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/omc-erp/omc-backend/api/responses"
	pkgerrors "github.com/omc-erp/omc-backend/pkg/errors"
	"github.com/omc-erp/omc-backend/pkg/logger"
)

const tenantIDHeader = "X-Tenant-Id"

// TenantContext resolves the tenant from the request header and injects it
// into the request context. Every route behind it is tenant-scoped.
func TenantContext(logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw := strings.TrimSpace(r.Header.Get(tenantIDHeader))
			if raw == "" {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "tenant id header is required"))
				return
			}
			tenantID, err := uuid.Parse(raw)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid tenant id"))
				return
			}

			ctx := WithTenantID(r.Context(), tenantID)
			if logg != nil {
				ctx = logg.WithTenantID(ctx, tenantID.String())
			}
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

package middleware

import (
	"context"

	"github.com/google/uuid"
)

type contextKey string

const ctxTenantID contextKey = "tenant_id"

// TenantIDFromContext returns the tenant bound to the request, if any.
func TenantIDFromContext(ctx context.Context) (uuid.UUID, bool) {
	if ctx == nil {
		return uuid.Nil, false
	}
	if v, ok := ctx.Value(ctxTenantID).(uuid.UUID); ok && v != uuid.Nil {
		return v, true
	}
	return uuid.Nil, false
}

// WithTenantID injects the tenant identifier for downstream handlers.
func WithTenantID(ctx context.Context, tenantID uuid.UUID) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, ctxTenantID, tenantID)
}

package tenant

import (
	"context"
	"strings"
)

type contextKey string

const tenantContextKey contextKey = "tenant.id"

// WithTenant stores the store identifier inside the context.
func WithTenant(ctx context.Context, storeID string) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, tenantContextKey, storeID)
}

// FromContext extracts the store identifier from the context if available.
func FromContext(ctx context.Context) (string, bool) {
	if ctx == nil {
		return "", false
	}
	storeID, ok := ctx.Value(tenantContextKey).(string)
	if !ok {
		return "", false
	}
	storeID = strings.TrimSpace(storeID)
	if storeID == "" {
		return "", false
	}
	return storeID, true
}

// With stores tenant identifier into the provided context.
func With(ctx context.Context, id string) context.Context {
	return WithTenant(ctx, id)
}

// From exposes the tenant identifier retrieval helper.
func From(ctx context.Context) (string, bool) {
	return FromContext(ctx)
}

package middleware

import (
	"context"

	"github.com/propertyflow/propertyflow/internal/auth"
)

type contextKey string

const (
	ContextKeyIdentity contextKey = "identity"
	ContextKeyTenantID contextKey = "tenant_id"
)

func IdentityFromContext(ctx context.Context) (*auth.Identity, bool) {
	v, ok := ctx.Value(ContextKeyIdentity).(*auth.Identity)
	return v, ok
}

// TenantIDFromContext returns the resolved tenant for the request. The empty
// string means the resolver ran and found none; callers must not substitute a
// default.
func TenantIDFromContext(ctx context.Context) (string, bool) {
	v, ok := ctx.Value(ContextKeyTenantID).(string)
	return v, ok
}

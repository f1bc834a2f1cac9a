package middleware

import (
	"context"
	"net/http"

	"github.com/google/uuid"

	"github.com/propertyflow/propertyflow/internal/auth"
)

// Resolver is the subset of tenant.Resolver the middleware needs.
type Resolver interface {
	ResolveTenantID(ctx context.Context, userID uuid.UUID, email string, payload *auth.TokenPayload) string
}

// ResolveTenant resolves the caller's tenant and stores it in the request
// context. An unresolved tenant is stored as "" rather than rejected here so
// endpoints that tolerate tenantless callers can still run; pair with
// RequireTenant for tenant-scoped routes.
func ResolveTenant(resolver Resolver) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ident, ok := IdentityFromContext(r.Context())
			if !ok {
				http.Error(w, `{"title":"Unauthorized","status":401,"detail":"missing or invalid credentials"}`, http.StatusUnauthorized)
				return
			}

			tid := resolver.ResolveTenantID(r.Context(), ident.UserID, ident.Email, ident.Payload)
			ctx := context.WithValue(r.Context(), ContextKeyTenantID, tid)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireTenant rejects requests whose tenant could not be resolved.
func RequireTenant() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tid, ok := TenantIDFromContext(r.Context())
			if !ok || tid == "" {
				http.Error(w, `{"title":"Forbidden","status":403,"detail":"user not associated with a tenant"}`, http.StatusForbidden)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

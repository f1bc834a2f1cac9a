package v1

import (
	"context"

	"github.com/google/uuid"

	"github.com/propertyflow/propertyflow/internal/auth"
	"github.com/propertyflow/propertyflow/internal/domain"
)

// DataStore abstracts the repository accessor pattern for handler testing.
// *postgres.Store satisfies this interface.
type DataStore interface {
	Users() domain.UserRepository
	Properties() domain.PropertyRepository
	Departments() domain.DepartmentRepository
	SmartViews() domain.SmartViewRepository
	Permissions() domain.PermissionRepository
}

// AuthService abstracts credential operations for handler testing.
// *auth.Service satisfies this interface.
type AuthService interface {
	Login(ctx context.Context, email, password string) (accessToken, refreshToken string, err error)
	RefreshToken(ctx context.Context, refreshToken string) (string, error)
}

// TenantResolver abstracts tenant resolution for handler testing.
// *tenant.Resolver satisfies this interface.
type TenantResolver interface {
	ResolveTenantID(ctx context.Context, userID uuid.UUID, email string, payload *auth.TokenPayload) string
}

// RevenueProvider abstracts the cached revenue lookup for handler testing.
// *revenue.Cache satisfies this interface.
type RevenueProvider interface {
	GetRevenueSummary(ctx context.Context, propertyID, tenantID string) (*domain.RevenueSummary, error)
}

package domain

import (
	"context"
	"time"
)

// Property is a rentable unit owned by exactly one tenant. Timezone is an
// IANA zone name used for month-boundary revenue queries; Currency is the
// ISO 4217 code all reservation amounts for the property are denominated in.
type Property struct {
	ID        string
	TenantID  string
	Name      string
	Timezone  string
	Currency  string
	CreatedAt time.Time
	UpdatedAt time.Time
}

type PropertyRepository interface {
	// GetByID is scoped by both ids; a property under a different tenant is
	// ErrNotFound, indistinguishable from a nonexistent one.
	GetByID(ctx context.Context, tenantID, id string) (*Property, error)

	// ExistsInTenant reports whether the property/tenant pair exists.
	ExistsInTenant(ctx context.Context, id, tenantID string) (bool, error)
}

package domain

import (
	"context"

	"github.com/google/uuid"
)

// SmartView is a named saved filter that can be assigned to a user as a read
// grant. Assignments live in a tenant-and-user-scoped junction table.
type SmartView struct {
	ID       uuid.UUID
	TenantID string
	Name     string
	IsActive bool
}

type SmartViewRepository interface {
	// ListAssigned returns the active smart views assigned to a user within a
	// tenant. Inactive views are filtered out.
	ListAssigned(ctx context.Context, tenantID string, userID uuid.UUID) ([]*SmartView, error)
}

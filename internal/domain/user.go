package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// User is an authenticated account. TenantID may be empty for accounts that
// have not been assigned to a tenant yet; tenant resolution falls back to the
// metadata namespaces in that case.
type User struct {
	ID           uuid.UUID
	TenantID     string
	Email        string
	PasswordHash string // argon2id
	Name         string
	IsAdmin      bool
	Cities       []string
	UserMetadata map[string]any
	AppMetadata  map[string]any
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Permission is a single grantable capability, e.g. {reservations, read}.
type Permission struct {
	Section string `json:"section"`
	Action  string `json:"action"`
}

type UserRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)

	// LookupTenantByIdentity returns the tenant recorded for a user, matched
	// by id or email. An empty string (with nil error) means no tenant is
	// recorded; it is not an error.
	LookupTenantByIdentity(ctx context.Context, userID uuid.UUID, email string) (string, error)

	// UpdateTenantMetadata persists a resolved tenant back onto the user
	// record so future resolutions take the fast path.
	UpdateTenantMetadata(ctx context.Context, userID uuid.UUID, tenantID string) error
}

type PermissionRepository interface {
	ListByUser(ctx context.Context, userID uuid.UUID) ([]Permission, error)
}

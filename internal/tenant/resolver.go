// Package tenant owns tenant resolution: mapping a verified identity to the
// single tenant its request is scoped to, or to a definitive "unresolved".
package tenant

import (
	"context"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/propertyflow/propertyflow/internal/auth"
	"github.com/propertyflow/propertyflow/internal/domain"
)

// IdentityLookup is the fallback identity-to-tenant source consulted when the
// token payload carries no tenant. The production implementation queries the
// user table; tests inject a static lookup. Literal identity-to-tenant
// mappings never belong in the resolver itself.
type IdentityLookup interface {
	LookupTenantByIdentity(ctx context.Context, userID uuid.UUID, email string) (string, error)
}

// MetadataUpdater persists a fallback-resolved tenant back onto the user
// record so future resolutions take the token fast path. Fire and forget:
// failures are logged and never fail resolution.
type MetadataUpdater interface {
	UpdateTenantMetadata(ctx context.Context, userID uuid.UUID, tenantID string) error
}

// Resolver resolves the tenant for a request. It performs no I/O beyond the
// injected lookup and the optional metadata-update hook.
type Resolver struct {
	lookup  IdentityLookup
	updater MetadataUpdater // optional
}

// NewResolver creates a resolver. updater may be nil.
func NewResolver(lookup IdentityLookup, updater MetadataUpdater) *Resolver {
	return &Resolver{lookup: lookup, updater: updater}
}

// ResolveTenantID resolves a user's tenant, consulting the token payload
// first and the fallback lookup second. An empty string means unresolved;
// callers must treat that as "cannot authorize tenant-scoped action", never
// as an implicit default tenant.
func (r *Resolver) ResolveTenantID(ctx context.Context, userID uuid.UUID, email string, payload *auth.TokenPayload) string {
	if payload != nil {
		if tid := ResolveFromToken(payload); tid != "" {
			log.Debug().Str("tenant_id", tid).Str("email", email).Msg("tenant: resolved from token")
			return tid
		}
	}

	if r.lookup != nil {
		tid, err := r.lookup.LookupTenantByIdentity(ctx, userID, email)
		if err != nil {
			log.Error().Err(err).Str("email", email).Msg("tenant: identity lookup failed")
			return ""
		}
		if tid != "" {
			if r.updater != nil {
				if uerr := r.updater.UpdateTenantMetadata(ctx, userID, tid); uerr != nil {
					log.Warn().Err(uerr).Str("user_id", userID.String()).Msg("tenant: metadata update failed")
				}
			}
			return tid
		}
	}

	log.Warn().Str("email", email).Msg("tenant: could not resolve tenant")
	return ""
}

// ResolveFromToken extracts a tenant id from a verified token payload.
// Namespace priority is fixed: user_metadata, then app_metadata, then the
// root-level claim. The first non-empty match wins.
func ResolveFromToken(p *auth.TokenPayload) string {
	if p == nil {
		return ""
	}
	if tid := metadataTenantID(p.UserMetadata); tid != "" {
		return tid
	}
	if tid := metadataTenantID(p.AppMetadata); tid != "" {
		return tid
	}
	return p.TenantID
}

// ResolveFromUser extracts a tenant id from an already-fetched user record.
// User records check the root-level column first, then the metadata
// namespaces; the shape differs from a token payload so the order does too.
func ResolveFromUser(u *domain.User) string {
	if u == nil {
		return ""
	}
	if u.TenantID != "" {
		return u.TenantID
	}
	if tid := metadataTenantID(u.UserMetadata); tid != "" {
		return tid
	}
	return metadataTenantID(u.AppMetadata)
}

func metadataTenantID(m map[string]any) string {
	if m == nil {
		return ""
	}
	tid, _ := m["tenant_id"].(string)
	return tid
}

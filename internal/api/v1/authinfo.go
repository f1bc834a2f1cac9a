package v1

import (
	"context"
	"net/http"
	"strings"

	"github.com/danielgtaylor/huma/v2"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/propertyflow/propertyflow/internal/auth"
	"github.com/propertyflow/propertyflow/internal/domain"
	"github.com/propertyflow/propertyflow/internal/server/middleware"
)

type MeInput struct {
	Authorization string `header:"Authorization" doc:"Bearer credential"`
	Refresh       bool   `query:"refresh" doc:"Evict the cached auth artifact for this credential before responding"`
}

type MeOutput struct {
	Body MeResponse
}

// MeResponse consolidates everything the frontend needs about the caller so
// it never queries auth data directly.
type MeResponse struct {
	ID           string               `json:"id"`
	Email        string               `json:"email"`
	IsAdmin      bool                 `json:"is_admin"`
	TenantID     string               `json:"tenant_id"`
	Permissions  []domain.Permission  `json:"permissions"`
	Cities       []string             `json:"cities"`
	Departments  []*domain.Department `json:"departments"`
	UserMetadata map[string]any       `json:"user_metadata"`
	AppMetadata  map[string]any       `json:"app_metadata"`
}

type UserDepartmentsInput struct {
	UserID string `path:"user_id" doc:"User id (UUID)"`
}

type UserDepartmentsOutput struct {
	Body struct {
		DepartmentIDs []uuid.UUID `json:"department_ids"`
	}
}

// RegisterAuthInfoRoutes wires the authenticated /auth endpoints. authCache
// may be nil when identity caching is disabled.
func RegisterAuthInfoRoutes(api huma.API, store DataStore, resolver TenantResolver, authCache *auth.Cache) {
	huma.Register(api, huma.Operation{
		OperationID: "get-current-user-info",
		Method:      http.MethodGet,
		Path:        "/auth/me",
		Summary:     "Return the caller's identity, permissions, and tenant context",
		Tags:        []string{"Auth"},
	}, func(ctx context.Context, input *MeInput) (*MeOutput, error) {
		ident, ok := middleware.IdentityFromContext(ctx)
		if !ok {
			return nil, huma.Error401Unauthorized("missing or invalid credentials")
		}

		// Eager eviction of the cached auth artifact, keyed by the credential
		// hash, never the raw credential.
		if input.Refresh && authCache != nil {
			if tok := bearerFromHeader(input.Authorization); tok != "" {
				authCache.Invalidate(auth.TokenHash(tok))
				log.Info().Str("email", ident.Email).Msg("auth/me: evicted cached identity on refresh")
			}
		}

		// Metadata, departments, and permissions are independent lookups;
		// fetch them concurrently, each degrading to empty on failure.
		var (
			user        *domain.User
			departments []*domain.Department
			perms       []domain.Permission
		)

		g, gctx := errgroup.WithContext(ctx)
		g.Go(func() error {
			u, err := store.Users().GetByID(gctx, ident.UserID)
			if err != nil {
				log.Warn().Err(err).Str("user_id", ident.UserID.String()).Msg("auth/me: metadata load failed")
				return nil
			}
			user = u
			return nil
		})
		g.Go(func() error {
			d, err := store.Departments().ListByUser(gctx, ident.UserID)
			if err != nil {
				log.Warn().Err(err).Str("user_id", ident.UserID.String()).Msg("auth/me: department load failed")
				return nil
			}
			departments = d
			return nil
		})
		g.Go(func() error {
			p, err := store.Permissions().ListByUser(gctx, ident.UserID)
			if err != nil {
				log.Warn().Err(err).Str("user_id", ident.UserID.String()).Msg("auth/me: permission load failed")
				return nil
			}
			perms = p
			return nil
		})
		_ = g.Wait()

		tenantID := resolver.ResolveTenantID(ctx, ident.UserID, ident.Email, ident.Payload)

		permissions := perms
		if permissions == nil {
			permissions = []domain.Permission{}
		}

		// Smart-view read grants apply only to non-admin callers with a
		// resolved tenant; admins already see everything.
		if tenantID != "" && !ident.IsAdmin {
			views, err := store.SmartViews().ListAssigned(ctx, tenantID, ident.UserID)
			if err != nil {
				log.Error().Err(err).Str("tenant_id", tenantID).Msg("auth/me: smart view load failed")
			}
			for _, v := range views {
				permissions = append(permissions, domain.Permission{
					Section: "smart_view_" + v.ID.String(),
					Action:  "read",
				})
			}
		}

		resp := MeResponse{
			ID:          ident.UserID.String(),
			Email:       ident.Email,
			IsAdmin:     ident.IsAdmin,
			TenantID:    tenantID,
			Permissions: permissions,
			Cities:      []string{},
			Departments: departments,
		}
		if resp.Departments == nil {
			resp.Departments = []*domain.Department{}
		}
		if user != nil {
			resp.Cities = user.Cities
			resp.UserMetadata = user.UserMetadata
			resp.AppMetadata = user.AppMetadata
		}
		if resp.Cities == nil {
			resp.Cities = []string{}
		}

		return &MeOutput{Body: resp}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "get-user-departments",
		Method:      http.MethodGet,
		Path:        "/auth/departments/{user_id}",
		Summary:     "List department ids for a user",
		Tags:        []string{"Auth"},
	}, func(ctx context.Context, input *UserDepartmentsInput) (*UserDepartmentsOutput, error) {
		if _, ok := middleware.IdentityFromContext(ctx); !ok {
			return nil, huma.Error401Unauthorized("missing or invalid credentials")
		}

		userID, err := uuid.Parse(input.UserID)
		if err != nil {
			return nil, huma.Error422UnprocessableEntity("user_id must be a UUID")
		}

		departments, err := store.Departments().ListByUser(ctx, userID)
		if err != nil {
			return nil, huma.Error500InternalServerError("failed to fetch user departments", err)
		}

		ids := make([]uuid.UUID, 0, len(departments))
		for _, d := range departments {
			ids = append(ids, d.ID)
		}

		out := &UserDepartmentsOutput{}
		out.Body.DepartmentIDs = ids
		return out, nil
	})
}

func bearerFromHeader(header string) string {
	if len(header) > 7 && strings.EqualFold(header[:7], "bearer ") {
		return header[7:]
	}
	return ""
}

package v1_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/danielgtaylor/huma/v2/humatest"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	v1 "github.com/propertyflow/propertyflow/internal/api/v1"
	"github.com/propertyflow/propertyflow/internal/auth"
	"github.com/propertyflow/propertyflow/internal/domain"
)

// ---------------------------------------------------------------------------
// GET /auth/me
// ---------------------------------------------------------------------------

func meStore(ident *auth.Identity, user *domain.User) *mockDataStore {
	return &mockDataStore{
		users: &mockUserRepo{
			getByIDFunc: func(_ context.Context, id uuid.UUID) (*domain.User, error) {
				if user != nil && id == ident.UserID {
					return user, nil
				}
				return nil, domain.ErrNotFound
			},
		},
		departments: &mockDepartmentRepo{
			listByUserFunc: func(_ context.Context, _ uuid.UUID) ([]*domain.Department, error) {
				return nil, nil
			},
		},
		permissions: &mockPermissionRepo{
			listByUserFunc: func(_ context.Context, _ uuid.UUID) ([]domain.Permission, error) {
				return nil, nil
			},
		},
		smartViews: &mockSmartViewRepo{
			listAssignedFunc: func(_ context.Context, _ string, _ uuid.UUID) ([]*domain.SmartView, error) {
				return nil, nil
			},
		},
	}
}

func staticTenantResolver(tenantID string) *mockResolver {
	return &mockResolver{
		resolveFunc: func(_ context.Context, _ uuid.UUID, _ string, _ *auth.TokenPayload) string {
			return tenantID
		},
	}
}

func TestGetCurrentUserInfo(t *testing.T) {
	t.Parallel()

	t.Run("happy_path", func(t *testing.T) {
		t.Parallel()

		ident := testIdentity("tenant-a")
		user := &domain.User{
			ID:           ident.UserID,
			TenantID:     "tenant-a",
			Email:        ident.Email,
			Cities:       []string{"Lisbon", "Porto"},
			UserMetadata: map[string]any{"tenant_id": "tenant-a"},
			AppMetadata:  map[string]any{"plan": "pro"},
		}

		_, api := humatest.New(t)
		store := meStore(ident, user)
		store.departments = &mockDepartmentRepo{
			listByUserFunc: func(_ context.Context, id uuid.UUID) ([]*domain.Department, error) {
				require.Equal(t, ident.UserID, id)
				return []*domain.Department{{ID: uuid.New(), Name: "Operations"}}, nil
			},
		}
		store.permissions = &mockPermissionRepo{
			listByUserFunc: func(_ context.Context, _ uuid.UUID) ([]domain.Permission, error) {
				return []domain.Permission{{Section: "reservations", Action: "read"}}, nil
			},
		}

		v1.RegisterAuthInfoRoutes(api, store, staticTenantResolver("tenant-a"), nil)

		resp := api.GetCtx(identCtx(ident), "/auth/me")

		require.Equal(t, http.StatusOK, resp.Code)

		var body struct {
			ID           string              `json:"id"`
			Email        string              `json:"email"`
			TenantID     string              `json:"tenant_id"`
			Permissions  []domain.Permission `json:"permissions"`
			Cities       []string            `json:"cities"`
			Departments  []*domain.Department `json:"departments"`
			UserMetadata map[string]any      `json:"user_metadata"`
		}
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
		assert.Equal(t, ident.UserID.String(), body.ID)
		assert.Equal(t, ident.Email, body.Email)
		assert.Equal(t, "tenant-a", body.TenantID)
		assert.Equal(t, []string{"Lisbon", "Porto"}, body.Cities)
		require.Len(t, body.Departments, 1)
		assert.Equal(t, "Operations", body.Departments[0].Name)
		assert.Contains(t, body.Permissions, domain.Permission{Section: "reservations", Action: "read"})
		assert.Equal(t, "tenant-a", body.UserMetadata["tenant_id"])
	})

	t.Run("smart_view_grants_appended_for_tenant_users", func(t *testing.T) {
		t.Parallel()

		ident := testIdentity("tenant-a")
		viewID := uuid.New()

		_, api := humatest.New(t)
		store := meStore(ident, nil)
		store.smartViews = &mockSmartViewRepo{
			listAssignedFunc: func(_ context.Context, tenantID string, userID uuid.UUID) ([]*domain.SmartView, error) {
				require.Equal(t, "tenant-a", tenantID)
				require.Equal(t, ident.UserID, userID)
				return []*domain.SmartView{{ID: viewID, TenantID: tenantID, Name: "Arrivals", IsActive: true}}, nil
			},
		}

		v1.RegisterAuthInfoRoutes(api, store, staticTenantResolver("tenant-a"), nil)

		resp := api.GetCtx(identCtx(ident), "/auth/me")

		require.Equal(t, http.StatusOK, resp.Code)

		var body struct {
			Permissions []domain.Permission `json:"permissions"`
		}
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
		assert.Contains(t, body.Permissions, domain.Permission{
			Section: "smart_view_" + viewID.String(),
			Action:  "read",
		})
	})

	t.Run("admin_skips_smart_view_grants", func(t *testing.T) {
		t.Parallel()

		ident := testIdentity("tenant-a")
		ident.IsAdmin = true

		_, api := humatest.New(t)
		store := meStore(ident, nil)
		store.smartViews = &mockSmartViewRepo{
			listAssignedFunc: func(_ context.Context, _ string, _ uuid.UUID) ([]*domain.SmartView, error) {
				t.Fatal("smart views must not be consulted for admins")
				return nil, nil
			},
		}

		v1.RegisterAuthInfoRoutes(api, store, staticTenantResolver("tenant-a"), nil)

		resp := api.GetCtx(identCtx(ident), "/auth/me")
		assert.Equal(t, http.StatusOK, resp.Code)
	})

	t.Run("unresolved_tenant_yields_empty_tenant_id", func(t *testing.T) {
		t.Parallel()

		ident := testIdentity("")

		_, api := humatest.New(t)
		v1.RegisterAuthInfoRoutes(api, meStore(ident, nil), staticTenantResolver(""), nil)

		resp := api.GetCtx(identCtx(ident), "/auth/me")

		require.Equal(t, http.StatusOK, resp.Code)

		var body struct {
			TenantID    string              `json:"tenant_id"`
			Permissions []domain.Permission `json:"permissions"`
			Cities      []string            `json:"cities"`
		}
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
		assert.Empty(t, body.TenantID)
		assert.NotNil(t, body.Permissions, "empty list, never null")
		assert.NotNil(t, body.Cities, "empty list, never null")
	})

	t.Run("lookup_failures_degrade_to_empty", func(t *testing.T) {
		t.Parallel()

		ident := testIdentity("tenant-a")

		_, api := humatest.New(t)
		store := &mockDataStore{
			users: &mockUserRepo{
				getByIDFunc: func(_ context.Context, _ uuid.UUID) (*domain.User, error) {
					return nil, errors.New("pg: connection refused")
				},
			},
			departments: &mockDepartmentRepo{
				listByUserFunc: func(_ context.Context, _ uuid.UUID) ([]*domain.Department, error) {
					return nil, errors.New("pg: connection refused")
				},
			},
			permissions: &mockPermissionRepo{
				listByUserFunc: func(_ context.Context, _ uuid.UUID) ([]domain.Permission, error) {
					return nil, errors.New("pg: connection refused")
				},
			},
			smartViews: &mockSmartViewRepo{
				listAssignedFunc: func(_ context.Context, _ string, _ uuid.UUID) ([]*domain.SmartView, error) {
					return nil, errors.New("pg: connection refused")
				},
			},
		}

		v1.RegisterAuthInfoRoutes(api, store, staticTenantResolver("tenant-a"), nil)

		resp := api.GetCtx(identCtx(ident), "/auth/me")

		// Identity comes from the verified credential; store trouble must not
		// turn an authenticated request into an error.
		require.Equal(t, http.StatusOK, resp.Code)

		var body struct {
			ID          string              `json:"id"`
			Permissions []domain.Permission `json:"permissions"`
			Cities      []string            `json:"cities"`
		}
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
		assert.Equal(t, ident.UserID.String(), body.ID)
		assert.Empty(t, body.Permissions)
		assert.Empty(t, body.Cities)
	})

	t.Run("refresh_evicts_cached_identity", func(t *testing.T) {
		t.Parallel()

		ident := testIdentity("tenant-a")

		cache, err := auth.NewCache(100, time.Minute)
		require.NoError(t, err)
		defer cache.Close()

		const token = "bearer-credential"
		cache.Set(auth.TokenHash(token), ident)
		cache.Wait()

		_, api := humatest.New(t)
		v1.RegisterAuthInfoRoutes(api, meStore(ident, nil), staticTenantResolver("tenant-a"), cache)

		resp := api.GetCtx(identCtx(ident), "/auth/me?refresh=true", "Authorization: Bearer "+token)

		require.Equal(t, http.StatusOK, resp.Code)
		cache.Wait()
		_, ok := cache.Get(auth.TokenHash(token))
		assert.False(t, ok, "cached identity must be evicted on refresh")
	})

	t.Run("no_identity_is_401", func(t *testing.T) {
		t.Parallel()

		_, api := humatest.New(t)
		v1.RegisterAuthInfoRoutes(api, &mockDataStore{}, staticTenantResolver(""), nil)

		resp := api.Get("/auth/me")
		assert.Equal(t, http.StatusUnauthorized, resp.Code)
	})
}

// ---------------------------------------------------------------------------
// GET /auth/departments/{user_id}
// ---------------------------------------------------------------------------

func TestGetUserDepartments(t *testing.T) {
	t.Parallel()

	t.Run("happy_path", func(t *testing.T) {
		t.Parallel()

		ident := testIdentity("tenant-a")
		targetID := uuid.New()
		deptID := uuid.New()

		_, api := humatest.New(t)
		store := &mockDataStore{
			departments: &mockDepartmentRepo{
				listByUserFunc: func(_ context.Context, userID uuid.UUID) ([]*domain.Department, error) {
					require.Equal(t, targetID, userID)
					return []*domain.Department{{ID: deptID, Name: "Housekeeping"}}, nil
				},
			},
		}

		v1.RegisterAuthInfoRoutes(api, store, staticTenantResolver("tenant-a"), nil)

		resp := api.GetCtx(identCtx(ident), "/auth/departments/"+targetID.String())

		require.Equal(t, http.StatusOK, resp.Code)

		var body struct {
			DepartmentIDs []uuid.UUID `json:"department_ids"`
		}
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
		assert.Equal(t, []uuid.UUID{deptID}, body.DepartmentIDs)
	})

	t.Run("invalid_uuid_is_422", func(t *testing.T) {
		t.Parallel()

		_, api := humatest.New(t)
		v1.RegisterAuthInfoRoutes(api, &mockDataStore{}, staticTenantResolver(""), nil)

		resp := api.GetCtx(identCtx(testIdentity("tenant-a")), "/auth/departments/not-a-uuid")
		assert.Equal(t, http.StatusUnprocessableEntity, resp.Code)
	})

	t.Run("no_identity_is_401", func(t *testing.T) {
		t.Parallel()

		_, api := humatest.New(t)
		v1.RegisterAuthInfoRoutes(api, &mockDataStore{}, staticTenantResolver(""), nil)

		resp := api.Get("/auth/departments/" + uuid.New().String())
		assert.Equal(t, http.StatusUnauthorized, resp.Code)
	})
}

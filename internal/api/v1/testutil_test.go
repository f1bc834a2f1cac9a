package v1_test

import (
	"context"

	"github.com/google/uuid"

	"github.com/propertyflow/propertyflow/internal/auth"
	"github.com/propertyflow/propertyflow/internal/domain"
	"github.com/propertyflow/propertyflow/internal/server/middleware"
)

// ---------------------------------------------------------------------------
// Context helpers — inject identity/tenant into context for GetCtx
// ---------------------------------------------------------------------------

func identCtx(ident *auth.Identity) context.Context {
	return context.WithValue(context.Background(), middleware.ContextKeyIdentity, ident)
}

func tenantCtx(ident *auth.Identity, tenantID string) context.Context {
	return context.WithValue(identCtx(ident), middleware.ContextKeyTenantID, tenantID)
}

func testIdentity(tenantID string) *auth.Identity {
	return &auth.Identity{
		UserID: uuid.New(),
		Email:  "manager@example.com",
		Payload: &auth.TokenPayload{
			UserMetadata: map[string]any{"tenant_id": tenantID},
		},
	}
}

// ---------------------------------------------------------------------------
// Mock DataStore
// ---------------------------------------------------------------------------

type mockDataStore struct {
	users       domain.UserRepository
	properties  domain.PropertyRepository
	departments domain.DepartmentRepository
	smartViews  domain.SmartViewRepository
	permissions domain.PermissionRepository
}

func (m *mockDataStore) Users() domain.UserRepository             { return m.users }
func (m *mockDataStore) Properties() domain.PropertyRepository    { return m.properties }
func (m *mockDataStore) Departments() domain.DepartmentRepository { return m.departments }
func (m *mockDataStore) SmartViews() domain.SmartViewRepository   { return m.smartViews }
func (m *mockDataStore) Permissions() domain.PermissionRepository { return m.permissions }

// ---------------------------------------------------------------------------
// Mock UserRepository
// ---------------------------------------------------------------------------

type mockUserRepo struct {
	getByIDFunc              func(ctx context.Context, id uuid.UUID) (*domain.User, error)
	getByEmailFunc           func(ctx context.Context, email string) (*domain.User, error)
	lookupTenantFunc         func(ctx context.Context, userID uuid.UUID, email string) (string, error)
	updateTenantMetadataFunc func(ctx context.Context, userID uuid.UUID, tenantID string) error
}

func (m *mockUserRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	return m.getByIDFunc(ctx, id)
}

func (m *mockUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return m.getByEmailFunc(ctx, email)
}

func (m *mockUserRepo) LookupTenantByIdentity(ctx context.Context, userID uuid.UUID, email string) (string, error) {
	return m.lookupTenantFunc(ctx, userID, email)
}

func (m *mockUserRepo) UpdateTenantMetadata(ctx context.Context, userID uuid.UUID, tenantID string) error {
	return m.updateTenantMetadataFunc(ctx, userID, tenantID)
}

// ---------------------------------------------------------------------------
// Mock PropertyRepository
// ---------------------------------------------------------------------------

type mockPropertyRepo struct {
	getByIDFunc        func(ctx context.Context, tenantID, id string) (*domain.Property, error)
	existsInTenantFunc func(ctx context.Context, id, tenantID string) (bool, error)
}

func (m *mockPropertyRepo) GetByID(ctx context.Context, tenantID, id string) (*domain.Property, error) {
	return m.getByIDFunc(ctx, tenantID, id)
}

func (m *mockPropertyRepo) ExistsInTenant(ctx context.Context, id, tenantID string) (bool, error) {
	return m.existsInTenantFunc(ctx, id, tenantID)
}

// ---------------------------------------------------------------------------
// Mock DepartmentRepository
// ---------------------------------------------------------------------------

type mockDepartmentRepo struct {
	listByUserFunc func(ctx context.Context, userID uuid.UUID) ([]*domain.Department, error)
}

func (m *mockDepartmentRepo) ListByUser(ctx context.Context, userID uuid.UUID) ([]*domain.Department, error) {
	return m.listByUserFunc(ctx, userID)
}

// ---------------------------------------------------------------------------
// Mock SmartViewRepository
// ---------------------------------------------------------------------------

type mockSmartViewRepo struct {
	listAssignedFunc func(ctx context.Context, tenantID string, userID uuid.UUID) ([]*domain.SmartView, error)
}

func (m *mockSmartViewRepo) ListAssigned(ctx context.Context, tenantID string, userID uuid.UUID) ([]*domain.SmartView, error) {
	return m.listAssignedFunc(ctx, tenantID, userID)
}

// ---------------------------------------------------------------------------
// Mock PermissionRepository
// ---------------------------------------------------------------------------

type mockPermissionRepo struct {
	listByUserFunc func(ctx context.Context, userID uuid.UUID) ([]domain.Permission, error)
}

func (m *mockPermissionRepo) ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.Permission, error) {
	return m.listByUserFunc(ctx, userID)
}

// ---------------------------------------------------------------------------
// Mock AuthService
// ---------------------------------------------------------------------------

type mockAuthService struct {
	loginFunc        func(ctx context.Context, email, password string) (string, string, error)
	refreshTokenFunc func(ctx context.Context, refreshToken string) (string, error)
}

func (m *mockAuthService) Login(ctx context.Context, email, password string) (accessToken, refreshToken string, err error) {
	return m.loginFunc(ctx, email, password)
}

func (m *mockAuthService) RefreshToken(ctx context.Context, refreshToken string) (string, error) {
	return m.refreshTokenFunc(ctx, refreshToken)
}

// ---------------------------------------------------------------------------
// Mock TenantResolver
// ---------------------------------------------------------------------------

type mockResolver struct {
	resolveFunc func(ctx context.Context, userID uuid.UUID, email string, payload *auth.TokenPayload) string
}

func (m *mockResolver) ResolveTenantID(ctx context.Context, userID uuid.UUID, email string, payload *auth.TokenPayload) string {
	return m.resolveFunc(ctx, userID, email, payload)
}

// ---------------------------------------------------------------------------
// Mock RevenueProvider
// ---------------------------------------------------------------------------

type mockRevenueProvider struct {
	getSummaryFunc func(ctx context.Context, propertyID, tenantID string) (*domain.RevenueSummary, error)
}

func (m *mockRevenueProvider) GetRevenueSummary(ctx context.Context, propertyID, tenantID string) (*domain.RevenueSummary, error) {
	return m.getSummaryFunc(ctx, propertyID, tenantID)
}

package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/propertyflow/propertyflow/internal/domain"
)

type UserRepo struct {
	pool *pgxpool.Pool
}

func NewUserRepo(pool *pgxpool.Pool) *UserRepo {
	return &UserRepo{pool: pool}
}

func (r *UserRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	var u domain.User

	err := r.pool.QueryRow(ctx,
		`SELECT id, COALESCE(tenant_id, ''), email, password_hash, name, is_admin,
		        COALESCE(cities, '{}'), user_metadata, app_metadata, created_at, updated_at
		 FROM users WHERE id = $1`,
		id,
	).Scan(&u.ID, &u.TenantID, &u.Email, &u.PasswordHash, &u.Name, &u.IsAdmin,
		&u.Cities, &u.UserMetadata, &u.AppMetadata, &u.CreatedAt, &u.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("userRepo.GetByID: %w", domain.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("userRepo.GetByID: %w", err)
	}

	return &u, nil
}

func (r *UserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	var u domain.User

	err := r.pool.QueryRow(ctx,
		`SELECT id, COALESCE(tenant_id, ''), email, password_hash, name, is_admin,
		        COALESCE(cities, '{}'), user_metadata, app_metadata, created_at, updated_at
		 FROM users WHERE email = $1`,
		email,
	).Scan(&u.ID, &u.TenantID, &u.Email, &u.PasswordHash, &u.Name, &u.IsAdmin,
		&u.Cities, &u.UserMetadata, &u.AppMetadata, &u.CreatedAt, &u.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("userRepo.GetByEmail: %w", domain.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("userRepo.GetByEmail: %w", err)
	}

	return &u, nil
}

// LookupTenantByIdentity is the resolver's fallback source. No rows is not an
// error: an unassigned user is a valid, distinct outcome.
func (r *UserRepo) LookupTenantByIdentity(ctx context.Context, userID uuid.UUID, email string) (string, error) {
	var tenantID string

	err := r.pool.QueryRow(ctx,
		`SELECT COALESCE(tenant_id, '')
		 FROM users WHERE id = $1 OR email = $2
		 LIMIT 1`,
		userID, email,
	).Scan(&tenantID)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("userRepo.LookupTenantByIdentity: %w", err)
	}

	return tenantID, nil
}

// UpdateTenantMetadata writes a resolved tenant onto both the tenant column
// and the user_metadata namespace so token issuance picks it up.
func (r *UserRepo) UpdateTenantMetadata(ctx context.Context, userID uuid.UUID, tenantID string) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE users
		 SET tenant_id = $2,
		     user_metadata = jsonb_set(COALESCE(user_metadata, '{}'::jsonb), '{tenant_id}', to_jsonb($2::text)),
		     updated_at = now()
		 WHERE id = $1`,
		userID, tenantID,
	)
	if err != nil {
		return fmt.Errorf("userRepo.UpdateTenantMetadata: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("userRepo.UpdateTenantMetadata: %w", domain.ErrNotFound)
	}

	return nil
}

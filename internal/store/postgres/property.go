package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/propertyflow/propertyflow/internal/domain"
)

type PropertyRepo struct {
	pool *pgxpool.Pool
}

func NewPropertyRepo(pool *pgxpool.Pool) *PropertyRepo {
	return &PropertyRepo{pool: pool}
}

// GetByID filters by both tenant and property id. A property that exists
// under a different tenant is ErrNotFound, same as a nonexistent one.
func (r *PropertyRepo) GetByID(ctx context.Context, tenantID, id string) (*domain.Property, error) {
	var p domain.Property

	err := r.pool.QueryRow(ctx,
		`SELECT id, tenant_id, name, timezone, currency, created_at, updated_at
		 FROM properties WHERE id = $1 AND tenant_id = $2`,
		id, tenantID,
	).Scan(&p.ID, &p.TenantID, &p.Name, &p.Timezone, &p.Currency, &p.CreatedAt, &p.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("propertyRepo.GetByID: %w", domain.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("propertyRepo.GetByID: %w", err)
	}

	return &p, nil
}

func (r *PropertyRepo) ExistsInTenant(ctx context.Context, id, tenantID string) (bool, error) {
	var exists bool

	err := r.pool.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM properties WHERE id = $1 AND tenant_id = $2)`,
		id, tenantID,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("propertyRepo.ExistsInTenant: %w", err)
	}

	return exists, nil
}

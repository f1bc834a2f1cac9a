package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/propertyflow/propertyflow/internal/domain"
)

type PermissionRepo struct {
	pool *pgxpool.Pool
}

func NewPermissionRepo(pool *pgxpool.Pool) *PermissionRepo {
	return &PermissionRepo{pool: pool}
}

func (r *PermissionRepo) ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.Permission, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT section, action
		 FROM user_permissions
		 WHERE user_id = $1
		 ORDER BY section, action`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("permissionRepo.ListByUser: %w", err)
	}
	defer rows.Close()

	var perms []domain.Permission
	for rows.Next() {
		var p domain.Permission

		err = rows.Scan(&p.Section, &p.Action)
		if err != nil {
			return nil, fmt.Errorf("permissionRepo.ListByUser: scan: %w", err)
		}

		perms = append(perms, p)
	}
	err = rows.Err()
	if err != nil {
		return nil, fmt.Errorf("permissionRepo.ListByUser: rows: %w", err)
	}

	return perms, nil
}

package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/propertyflow/propertyflow/internal/domain"
)

type DepartmentRepo struct {
	pool *pgxpool.Pool
}

func NewDepartmentRepo(pool *pgxpool.Pool) *DepartmentRepo {
	return &DepartmentRepo{pool: pool}
}

func (r *DepartmentRepo) ListByUser(ctx context.Context, userID uuid.UUID) ([]*domain.Department, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT d.id, d.name, d.created_at
		 FROM departments d
		 JOIN user_departments ud ON ud.department_id = d.id
		 WHERE ud.user_id = $1
		 ORDER BY d.name`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("departmentRepo.ListByUser: %w", err)
	}
	defer rows.Close()

	var departments []*domain.Department
	for rows.Next() {
		var d domain.Department

		err = rows.Scan(&d.ID, &d.Name, &d.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("departmentRepo.ListByUser: scan: %w", err)
		}

		departments = append(departments, &d)
	}
	err = rows.Err()
	if err != nil {
		return nil, fmt.Errorf("departmentRepo.ListByUser: rows: %w", err)
	}

	return departments, nil
}

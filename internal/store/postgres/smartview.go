package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/propertyflow/propertyflow/internal/domain"
)

type SmartViewRepo struct {
	pool *pgxpool.Pool
}

func NewSmartViewRepo(pool *pgxpool.Pool) *SmartViewRepo {
	return &SmartViewRepo{pool: pool}
}

// ListAssigned joins the tenant-and-user-scoped junction table against the
// view table, keeping only active views.
func (r *SmartViewRepo) ListAssigned(ctx context.Context, tenantID string, userID uuid.UUID) ([]*domain.SmartView, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT sv.id, sv.tenant_id, sv.name, sv.is_active
		 FROM smart_views sv
		 JOIN user_smart_views usv ON usv.smart_view_id = sv.id
		 WHERE usv.user_id = $1 AND usv.tenant_id = $2 AND sv.is_active = TRUE
		 ORDER BY sv.name`,
		userID, tenantID,
	)
	if err != nil {
		return nil, fmt.Errorf("smartViewRepo.ListAssigned: %w", err)
	}
	defer rows.Close()

	var views []*domain.SmartView
	for rows.Next() {
		var v domain.SmartView

		err = rows.Scan(&v.ID, &v.TenantID, &v.Name, &v.IsActive)
		if err != nil {
			return nil, fmt.Errorf("smartViewRepo.ListAssigned: scan: %w", err)
		}

		views = append(views, &v)
	}
	err = rows.Err()
	if err != nil {
		return nil, fmt.Errorf("smartViewRepo.ListAssigned: rows: %w", err)
	}

	return views, nil
}

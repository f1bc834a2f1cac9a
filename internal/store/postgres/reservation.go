package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/propertyflow/propertyflow/internal/domain"
)

type ReservationRepo struct {
	pool *pgxpool.Pool
}

func NewReservationRepo(pool *pgxpool.Pool) *ReservationRepo {
	return &ReservationRepo{pool: pool}
}

var _ domain.ReservationRepository = (*ReservationRepo)(nil)

// SumByProperty totals reservation amounts for one property within one
// tenant. The numeric total is scanned as text and parsed into an exact
// decimal; it never passes through float64.
func (r *ReservationRepo) SumByProperty(ctx context.Context, propertyID, tenantID string) (decimal.Decimal, int64, error) {
	var (
		totalText string
		count     int64
	)

	err := r.pool.QueryRow(ctx,
		`SELECT COALESCE(SUM(total_amount), 0)::text, COUNT(*)
		 FROM reservations
		 WHERE property_id = $1 AND tenant_id = $2`,
		propertyID, tenantID,
	).Scan(&totalText, &count)
	if err != nil {
		return decimal.Decimal{}, 0, fmt.Errorf("reservationRepo.SumByProperty: %w", err)
	}

	total, err := decimal.NewFromString(totalText)
	if err != nil {
		return decimal.Decimal{}, 0, fmt.Errorf("reservationRepo.SumByProperty: parse total %q: %w", totalText, err)
	}

	return total, count, nil
}

// SumByPropertyBetween totals reservations with check-in in [start, end),
// both bounds in UTC. Callers own the local-midnight-then-UTC conversion.
func (r *ReservationRepo) SumByPropertyBetween(ctx context.Context, propertyID, tenantID string, start, end time.Time) (decimal.Decimal, error) {
	var totalText string

	err := r.pool.QueryRow(ctx,
		`SELECT COALESCE(SUM(total_amount), 0)::text
		 FROM reservations
		 WHERE property_id = $1 AND tenant_id = $2
		   AND check_in_date >= $3 AND check_in_date < $4`,
		propertyID, tenantID, start, end,
	).Scan(&totalText)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("reservationRepo.SumByPropertyBetween: %w", err)
	}

	total, err := decimal.NewFromString(totalText)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("reservationRepo.SumByPropertyBetween: parse total %q: %w", totalText, err)
	}

	return total, nil
}

package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Reservation is a booking contributing revenue to a property. CheckInDate is
// stored in UTC.
type Reservation struct {
	ID          uuid.UUID
	PropertyID  string
	TenantID    string
	GuestName   string
	TotalAmount decimal.Decimal
	CheckInDate time.Time
	CreatedAt   time.Time
}

// ReservationRepository aggregates reservation revenue. Every query filters by
// both property and tenant; a repository method without a tenant filter is a
// defect, not an option.
type ReservationRepository interface {
	// SumByProperty returns the revenue total and reservation count for one
	// property within one tenant. Zero matching rows yields (0, 0, nil).
	SumByProperty(ctx context.Context, propertyID, tenantID string) (decimal.Decimal, int64, error)

	// SumByPropertyBetween totals reservations whose check-in falls in the
	// half-open UTC interval [start, end).
	SumByPropertyBetween(ctx context.Context, propertyID, tenantID string, start, end time.Time) (decimal.Decimal, error)
}

// Package revenue computes and caches per-property revenue summaries. All
// monetary totals are exact decimals end to end; binary floats appear only in
// the explicitly labeled display convenience field of HTTP responses.
package revenue

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/propertyflow/propertyflow/internal/domain"
)

// ErrStoreUnavailable marks aggregation failures caused by the reservation
// store. It is deliberately loud: the aggregator never substitutes synthetic
// data for a broken revenue figure.
var ErrStoreUnavailable = errors.New("revenue: reservation store unavailable")

const defaultCurrency = "USD"

// Aggregator computes revenue totals from the reservation store.
type Aggregator struct {
	reservations domain.ReservationRepository
	properties   domain.PropertyRepository
}

// NewAggregator creates an aggregator over the given repositories.
func NewAggregator(reservations domain.ReservationRepository, properties domain.PropertyRepository) *Aggregator {
	return &Aggregator{reservations: reservations, properties: properties}
}

// CalculateTotalRevenue computes the all-time revenue summary for a property
// within a tenant. Zero matching reservations yields total 0.00 and count 0,
// not an error.
func (a *Aggregator) CalculateTotalRevenue(ctx context.Context, propertyID, tenantID string) (*domain.RevenueSummary, error) {
	prop, err := a.properties.GetByID(ctx, tenantID, propertyID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, fmt.Errorf("revenue.CalculateTotalRevenue: property %s: %w", propertyID, err)
		}
		return nil, fmt.Errorf("revenue.CalculateTotalRevenue: %w: %s", ErrStoreUnavailable, err)
	}

	total, count, err := a.reservations.SumByProperty(ctx, propertyID, tenantID)
	if err != nil {
		return nil, fmt.Errorf("revenue.CalculateTotalRevenue: %w: %s", ErrStoreUnavailable, err)
	}

	currency := prop.Currency
	if currency == "" {
		currency = defaultCurrency
	}

	log.Debug().
		Str("property_id", propertyID).
		Str("tenant_id", tenantID).
		Str("total", total.StringFixed(2)).
		Int64("count", count).
		Msg("revenue: aggregated")

	return &domain.RevenueSummary{
		PropertyID: propertyID,
		TenantID:   tenantID,
		Total:      domain.NewMoney(total),
		Currency:   currency,
		Count:      count,
	}, nil
}

// CalculateMonthlyRevenue totals a property's reservations for one calendar
// month. The month interval is computed at local midnight in the property's
// timezone and only then converted to UTC; computing it directly in UTC would
// shift month boundaries for any non-UTC property.
func (a *Aggregator) CalculateMonthlyRevenue(ctx context.Context, propertyID string, month, year int, tenantID, propertyTimezone string) (domain.Money, error) {
	if propertyTimezone == "" {
		prop, err := a.properties.GetByID(ctx, tenantID, propertyID)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return domain.Money{}, fmt.Errorf("revenue.CalculateMonthlyRevenue: property %s: %w", propertyID, err)
			}
			return domain.Money{}, fmt.Errorf("revenue.CalculateMonthlyRevenue: %w: %s", ErrStoreUnavailable, err)
		}
		propertyTimezone = prop.Timezone
	}

	start, end, err := monthRange(year, month, propertyTimezone)
	if err != nil {
		return domain.Money{}, fmt.Errorf("revenue.CalculateMonthlyRevenue: %w", err)
	}

	total, err := a.reservations.SumByPropertyBetween(ctx, propertyID, tenantID, start, end)
	if err != nil {
		return domain.Money{}, fmt.Errorf("revenue.CalculateMonthlyRevenue: %w: %s", ErrStoreUnavailable, err)
	}

	return domain.NewMoney(total), nil
}

// monthRange returns the half-open UTC interval [start, end) covering one
// calendar month, anchored at local midnight on the 1st in the given zone.
// December rolls the end boundary into January of the following year.
func monthRange(year, month int, tzName string) (time.Time, time.Time, error) {
	if month < 1 || month > 12 {
		return time.Time{}, time.Time{}, fmt.Errorf("month %d out of range", month)
	}

	loc, err := time.LoadLocation(tzName)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("loading timezone %q: %w", tzName, err)
	}

	start := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, loc)

	var end time.Time
	if month == 12 {
		end = time.Date(year+1, time.January, 1, 0, 0, 0, 0, loc)
	} else {
		end = time.Date(year, time.Month(month+1), 1, 0, 0, 0, 0, loc)
	}

	return start.UTC(), end.UTC(), nil
}

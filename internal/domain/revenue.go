package domain

import (
	"fmt"
	"strconv"

	"github.com/shopspring/decimal"
)

// Money is an exact monetary amount rendered with exactly two decimal places
// at every boundary: String, JSON, and anything persisted from either. The
// underlying decimal's String trims trailing zeros, so a plain decimal would
// serialize 1234.50 as "1234.5" and zero as "0".
type Money struct {
	decimal.Decimal
}

// NewMoney wraps an exact decimal amount.
func NewMoney(d decimal.Decimal) Money {
	return Money{Decimal: d}
}

func (m Money) String() string {
	return m.Decimal.StringFixed(2)
}

func (m Money) MarshalJSON() ([]byte, error) {
	return []byte(strconv.Quote(m.Decimal.StringFixed(2))), nil
}

func (m *Money) UnmarshalJSON(data []byte) error {
	s, err := strconv.Unquote(string(data))
	if err != nil {
		// Bare JSON number.
		s = string(data)
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return fmt.Errorf("domain: parsing money %q: %w", s, err)
	}
	m.Decimal = d
	return nil
}

// RevenueSummary is the computed revenue for one property within one tenant.
// Total is exact; it marshals to JSON as a quoted fixed two-decimal string and
// must never pass through a binary float on any persistence or transport path.
type RevenueSummary struct {
	PropertyID string `json:"property_id"`
	TenantID   string `json:"tenant_id"`
	Total      Money  `json:"total"`
	Currency   string `json:"currency"`
	Count      int64  `json:"count"`
}

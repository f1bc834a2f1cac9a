package v1

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/rs/zerolog/log"

	"github.com/propertyflow/propertyflow/internal/server/middleware"
)

type DashboardSummaryInput struct {
	PropertyID string `query:"property_id" required:"true" minLength:"1" doc:"Property id"`
}

type DashboardSummaryOutput struct {
	Body DashboardSummaryResponse
}

// DashboardSummaryResponse exposes revenue twice: TotalRevenue is the
// authoritative exact-decimal string; TotalRevenueFloat is an approximate
// convenience value for charting only.
type DashboardSummaryResponse struct {
	PropertyID        string  `json:"property_id"`
	TotalRevenue      string  `json:"total_revenue" doc:"Authoritative exact decimal"`
	TotalRevenueFloat float64 `json:"total_revenue_float" doc:"Approximate, for charts only"`
	Currency          string  `json:"currency"`
	ReservationsCount int64   `json:"reservations_count"`
}

func RegisterDashboardRoutes(api huma.API, store DataStore, revenue RevenueProvider) {
	huma.Register(api, huma.Operation{
		OperationID: "get-dashboard-summary",
		Method:      http.MethodGet,
		Path:        "/dashboard/summary",
		Summary:     "Revenue summary for one property",
		Tags:        []string{"Dashboard"},
	}, func(ctx context.Context, input *DashboardSummaryInput) (*DashboardSummaryOutput, error) {
		tenantID, ok := middleware.TenantIDFromContext(ctx)
		if !ok || tenantID == "" {
			return nil, huma.Error403Forbidden("user not associated with a tenant")
		}

		// Scoped by both ids. A property under another tenant gets the same
		// 404 as a nonexistent one; the response must not disclose which.
		exists, err := store.Properties().ExistsInTenant(ctx, input.PropertyID, tenantID)
		if err != nil {
			log.Error().Err(err).Str("property_id", input.PropertyID).Msg("dashboard: property check failed")
			return nil, huma.Error500InternalServerError("error validating property access")
		}
		if !exists {
			log.Warn().Str("property_id", input.PropertyID).Str("tenant_id", tenantID).Msg("dashboard: property not in tenant")
			return nil, huma.Error404NotFound("property not found or access denied")
		}

		summary, err := revenue.GetRevenueSummary(ctx, input.PropertyID, tenantID)
		if err != nil {
			log.Error().Err(err).Str("property_id", input.PropertyID).Str("tenant_id", tenantID).Msg("dashboard: revenue lookup failed")
			return nil, huma.Error500InternalServerError("failed to compute revenue summary")
		}

		return &DashboardSummaryOutput{Body: DashboardSummaryResponse{
			PropertyID:        summary.PropertyID,
			TotalRevenue:      summary.Total.StringFixed(2),
			TotalRevenueFloat: summary.Total.InexactFloat64(),
			Currency:          summary.Currency,
			ReservationsCount: summary.Count,
		}}, nil
	})
}

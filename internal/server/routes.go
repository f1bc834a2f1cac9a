package server

import (
	"github.com/danielgtaylor/huma/v2"

	v1 "github.com/propertyflow/propertyflow/internal/api/v1"
	"github.com/propertyflow/propertyflow/internal/auth"
	"github.com/propertyflow/propertyflow/internal/revenue"
	"github.com/propertyflow/propertyflow/internal/store/postgres"
	"github.com/propertyflow/propertyflow/internal/tenant"
)

func registerAuthRoutes(api huma.API, authSvc *auth.Service) {
	v1.RegisterAuthRoutes(api, authSvc)
}

func registerAuthInfoRoutes(api huma.API, store *postgres.Store, resolver *tenant.Resolver, authCache *auth.Cache) {
	v1.RegisterAuthInfoRoutes(api, store, resolver, authCache)
}

func registerDashboardRoutes(api huma.API, store *postgres.Store, revenueCache *revenue.Cache) {
	v1.RegisterDashboardRoutes(api, store, revenueCache)
}

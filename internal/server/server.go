package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/cors"

	"github.com/propertyflow/propertyflow/internal/auth"
	"github.com/propertyflow/propertyflow/internal/config"
	"github.com/propertyflow/propertyflow/internal/revenue"
	"github.com/propertyflow/propertyflow/internal/server/middleware"
	"github.com/propertyflow/propertyflow/internal/store/postgres"
	"github.com/propertyflow/propertyflow/internal/tenant"
)

// Server is the HTTP server that wires all application routes and middleware.
type Server struct {
	router     chi.Router
	httpServer *http.Server
	store      *postgres.Store
	auth       *auth.Service
	authCache  *auth.Cache
	resolver   *tenant.Resolver
	revenue    *revenue.Cache
	cfg        *config.Config
}

// New creates a Server with all routes wired. ctx bounds the lifetime of the
// rate limiter cleanup goroutines.
func New(ctx context.Context, cfg *config.Config, store *postgres.Store, authSvc *auth.Service, authCache *auth.Cache, resolver *tenant.Resolver, revenueCache *revenue.Cache) *Server {
	router := chi.NewRouter()

	// Global middleware stack.
	router.Use(chimw.RequestID)
	router.Use(chimw.RealIP)
	router.Use(chimw.Logger)
	router.Use(chimw.Recoverer)
	router.Use(cors.New(cors.Options{
		AllowedOrigins:   cfg.Server.CORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
		ExposedHeaders:   []string{"X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           300,
	}).Handler)

	s := &Server{
		router:    router,
		store:     store,
		auth:      authSvc,
		authCache: authCache,
		resolver:  resolver,
		revenue:   revenueCache,
		cfg:       cfg,
		httpServer: &http.Server{
			Addr:         cfg.Server.Addr,
			Handler:      router,
			ReadTimeout:  cfg.Server.ReadTimeout,
			WriteTimeout: cfg.Server.WriteTimeout,
		},
	}

	// Mount API routes on /api/v1 with three sub-groups:
	// 1. Unauthenticated credential routes (login, refresh), per-IP limited.
	// 2. Authenticated auth-info routes (tenant optional: /auth/me reports
	//    an unresolved tenant rather than rejecting it).
	// 3. Tenant-scoped dashboard routes (tenant required).
	router.Route("/api/v1", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			r.Use(middleware.RateLimitByIP(ctx, 5, 10))

			loginConfig := huma.DefaultConfig("PropertyFlow Auth API", "1.0.0")
			loginConfig.Servers = []*huma.Server{
				{URL: "/api/v1"},
			}
			loginAPI := humachi.New(r, loginConfig)
			registerAuthRoutes(loginAPI, authSvc)
		})

		r.Group(func(r chi.Router) {
			r.Use(middleware.Auth(cfg.JWT.Secret, authCache))

			infoConfig := huma.DefaultConfig("PropertyFlow User API", "1.0.0")
			infoConfig.Servers = []*huma.Server{
				{URL: "/api/v1"},
			}
			infoAPI := humachi.New(r, infoConfig)
			registerAuthInfoRoutes(infoAPI, store, resolver, authCache)
		})

		r.Group(func(r chi.Router) {
			r.Use(middleware.Auth(cfg.JWT.Secret, authCache))
			r.Use(middleware.ResolveTenant(resolver))
			r.Use(middleware.RequireTenant())
			r.Use(middleware.RateLimit(ctx, 100, 200))

			apiConfig := huma.DefaultConfig("PropertyFlow API", "1.0.0")
			apiConfig.Servers = []*huma.Server{
				{URL: "/api/v1"},
			}
			api := humachi.New(r, apiConfig)
			registerDashboardRoutes(api, store, revenueCache)
		})
	})

	// Health check (unauthenticated).
	router.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	return s
}

// Start begins listening for HTTP requests.
func (s *Server) Start(_ context.Context) error {
	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("server.Start: %w", err)
	}
	return nil
}

// Shutdown gracefully stops the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("server.Shutdown: %w", err)
	}
	return nil
}

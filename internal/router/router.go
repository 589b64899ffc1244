package router // package router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4" // Echo web framework for routing
	"github.com/redis/go-redis/v9"

	"github.com/edurelief/edurelief-backend/internal/config"
	"github.com/edurelief/edurelief-backend/internal/handler"
	"github.com/edurelief/edurelief-backend/internal/middleware"
	"github.com/edurelief/edurelief-backend/internal/model"
)

// RegisterRoutes registers routes that do not require authentication on the
// provided Echo instance.  Currently it exposes only a health check used by
// load balancers and monitoring systems.
func RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", handler.Health)
}

// RegisterAuth wires the authentication endpoints.  Register and login live
// under /v1/auth and are rate limited to slow down credential stuffing;
// /v1/me sits behind the JWT middleware and echoes the resolved identity.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler, cfg config.Config, rdb *redis.Client) {
	limiter := middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb)

	g := e.Group("/v1/auth", limiter)
	g.POST("/register", a.Register)
	g.POST("/login", a.Login)

	auth := e.Group("/v1")
	auth.Use(middleware.JWTAuth(cfg.JWTSecret))
	auth.GET("/me", a.Me)
}

// RegisterCampaigns wires the campaign endpoints.  Mutating owner routes
// (create, list-mine, delete) are restricted to students and parents via the
// JWT + role middleware chain.  Browsing and donating are public: the
// listing and detail responses are served through the Redis response cache,
// and donate goes through the rate limiter since it accepts anonymous
// traffic.
func RegisterCampaigns(e *echo.Echo, owner *handler.OwnerHandler, public *handler.PublicHandler, cfg config.Config, rdb *redis.Client) {
	limiter := middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb)
	cache := middleware.NewRedisCache(config.LoadCacheConfig(), rdb)

	// Owner routes: any valid claim resolves, then the role set is checked.
	owned := e.Group("/v1/campaigns")
	owned.Use(middleware.JWTAuth(cfg.JWTSecret))
	owned.Use(middleware.RequireRole(model.CampaignOwnerRoles...))
	owned.POST("", owner.Create)
	owned.GET("/me", owner.ListMine)
	owned.DELETE("/:id", owner.Delete)

	// Public routes: no authentication of any kind.  The cached listing and
	// detail bodies can lag a goal-reaching donation by up to the cache TTL;
	// donate itself always reads the live row under lock, so a stale
	// is_active here never lets money past a closed campaign.
	e.GET("/v1/campaigns", public.List, cache)
	e.GET("/v1/campaigns/:id", public.Get, cache)
	e.POST("/v1/campaigns/:id/donate", public.Donate, limiter)
}

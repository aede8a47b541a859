package router // router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/verbalate/careers-api/internal/config"
	"github.com/verbalate/careers-api/internal/handler"
	"github.com/verbalate/careers-api/internal/middleware"
)

// RegisterPublic registers the unauthenticated careers surface: the job
// listing (Redis-cached), individual postings and the live jobs stream the
// careers page subscribes to.  No JWT or role middleware applies here.
func RegisterPublic(e *echo.Echo, p *handler.PublicHandler, w *handler.WatchHandler, cacheCfg config.CacheConfig, rdb *redis.Client) {
	cached := middleware.NewRedisCache(cacheCfg, rdb)

	e.GET("/v1/jobs", p.ListJobs, cached)
	e.GET("/v1/jobs/:id", p.GetJob, cached)
	// The stream is long-lived and per-connection; it bypasses the cache.
	e.GET("/v1/watch/jobs", w.WatchJobs)
}

// RegisterApply registers the authenticated submission endpoint.  Any
// logged-in visitor may apply, admins included, but the token must carry a
// known role; the rate limiter throttles re-submission loops per user and
// route.
func RegisterApply(e *echo.Echo, a *handler.ApplyHandler, jwtSecret string, rlCfg config.RateLimitConfig, rdb *redis.Client) {
	e.POST("/v1/jobs/:id/apply", a.Apply,
		middleware.JWTAuth(jwtSecret),
		middleware.RequireRole("user", "admin"),
		middleware.NewTokenBucket(rlCfg, rdb),
	)
}

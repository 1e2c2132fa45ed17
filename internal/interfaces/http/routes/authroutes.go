package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/munziralyafie/subscription-billing-api/internal/infrastructure/ratelimit"
	"github.com/munziralyafie/subscription-billing-api/internal/interfaces/http/handlers"
	"github.com/munziralyafie/subscription-billing-api/internal/interfaces/http/middleware"
)

// AuthRouteConfig holds dependencies for authentication routes.
type AuthRouteConfig struct {
	AuthHandler    *handlers.AuthHandler
	AuthMiddleware *middleware.AuthMiddleware
	RateLimit      *middleware.RateLimitMiddleware
}

// loginRateLimit throttles credential guessing per client IP.
var loginRateLimit = ratelimit.RateLimitConfig{
	RequestsPerMinute: 10,
	RequestsPerHour:   100,
}

func SetupAuthRoutes(engine *gin.Engine, cfg *AuthRouteConfig) {
	auth := engine.Group("/auth")
	{
		auth.POST("/register", cfg.RateLimit.Limit("auth", loginRateLimit), cfg.AuthHandler.Register)
		auth.POST("/login", cfg.RateLimit.Limit("auth", loginRateLimit), cfg.AuthHandler.Login)
		auth.POST("/refresh", cfg.AuthHandler.Refresh)
		auth.POST("/logout", cfg.AuthMiddleware.RequireAuth(), cfg.AuthHandler.Logout)
		auth.GET("/me", cfg.AuthMiddleware.RequireAuth(), cfg.AuthHandler.Me)
	}
}

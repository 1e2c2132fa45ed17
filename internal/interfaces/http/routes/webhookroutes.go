package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/munziralyafie/subscription-billing-api/internal/infrastructure/ratelimit"
	"github.com/munziralyafie/subscription-billing-api/internal/interfaces/http/handlers"
	"github.com/munziralyafie/subscription-billing-api/internal/interfaces/http/middleware"
)

type WebhookRouteConfig struct {
	WebhookHandler *handlers.WebhookHandler
	RateLimit      *middleware.RateLimitMiddleware
}

// webhookRateLimit is deliberately generous: PayPal retries aggressively
// and a throttled delivery just retries later.
var webhookRateLimit = ratelimit.RateLimitConfig{
	RequestsPerMinute: 120,
	RequestsPerHour:   2000,
}

func SetupWebhookRoutes(engine *gin.Engine, cfg *WebhookRouteConfig) {
	engine.POST("/webhooks/paypal",
		cfg.RateLimit.Limit("webhook", webhookRateLimit),
		cfg.WebhookHandler.HandlePayPalWebhook,
	)
}

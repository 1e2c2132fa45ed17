package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/munziralyafie/subscription-billing-api/internal/interfaces/http/handlers"
	"github.com/munziralyafie/subscription-billing-api/internal/interfaces/http/middleware"
)

type SubscriptionRouteConfig struct {
	SubscriptionHandler  *handlers.SubscriptionHandler
	AuthMiddleware       *middleware.AuthMiddleware
	SubscriberMiddleware *middleware.SubscriberMiddleware
}

func SetupSubscriptionRoutes(engine *gin.Engine, cfg *SubscriptionRouteConfig) {
	subscriptions := engine.Group("/subscriptions")
	subscriptions.Use(cfg.AuthMiddleware.RequireAuth())
	{
		subscriptions.POST("/checkout", cfg.SubscriptionHandler.Checkout)
		subscriptions.GET("/me", cfg.SubscriptionHandler.GetCurrent)
		subscriptions.GET("/report",
			cfg.SubscriberMiddleware.RequireActiveSubscription(),
			cfg.SubscriptionHandler.Report,
		)
	}
}

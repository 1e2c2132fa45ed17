package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/munziralyafie/subscription-billing-api/internal/interfaces/http/handlers"
	"github.com/munziralyafie/subscription-billing-api/internal/interfaces/http/middleware"
	"github.com/munziralyafie/subscription-billing-api/internal/shared/authorization"
)

type PlanRouteConfig struct {
	PlanHandler    *handlers.PlanHandler
	UserHandler    *handlers.UserHandler
	PayPalHandler  *handlers.PayPalHandler
	AuthMiddleware *middleware.AuthMiddleware
}

func SetupPlanRoutes(engine *gin.Engine, cfg *PlanRouteConfig) {
	engine.GET("/plans", cfg.PlanHandler.List)

	admin := engine.Group("/admin")
	admin.Use(cfg.AuthMiddleware.RequireAuth(), authorization.RequireAdmin())
	{
		admin.GET("/plans", cfg.PlanHandler.ListAll)
		admin.POST("/plans", cfg.PlanHandler.Create)
		admin.PUT("/plans/:id", cfg.PlanHandler.Update)
		admin.DELETE("/plans/:id", cfg.PlanHandler.Deactivate)

		admin.POST("/users", cfg.UserHandler.Create)
		admin.POST("/paypal/product", cfg.PayPalHandler.InitProduct)
	}
}

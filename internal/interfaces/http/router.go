package http

import (
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	subscriptionUC "github.com/munziralyafie/subscription-billing-api/internal/application/subscription/usecases"
	userUC "github.com/munziralyafie/subscription-billing-api/internal/application/user/usecases"
	"github.com/munziralyafie/subscription-billing-api/internal/infrastructure/auth"
	"github.com/munziralyafie/subscription-billing-api/internal/infrastructure/paypal"
	"github.com/munziralyafie/subscription-billing-api/internal/infrastructure/ratelimit"
	"github.com/munziralyafie/subscription-billing-api/internal/infrastructure/repository"
	"github.com/munziralyafie/subscription-billing-api/internal/interfaces/http/handlers"
	"github.com/munziralyafie/subscription-billing-api/internal/interfaces/http/middleware"
	"github.com/munziralyafie/subscription-billing-api/internal/interfaces/http/routes"
	sharedConfig "github.com/munziralyafie/subscription-billing-api/internal/shared/config"
	"github.com/munziralyafie/subscription-billing-api/internal/shared/logger"
	"github.com/munziralyafie/subscription-billing-api/internal/shared/utils"
)

// Router wires repositories, use cases, and handlers into a gin engine.
type Router struct {
	engine       *gin.Engine
	db           *gorm.DB
	redisClient  *redis.Client
	paypalClient *paypal.Client
	cfg          *sharedConfig.Config
	logger       logger.Interface
}

func NewRouter(
	db *gorm.DB,
	redisClient *redis.Client,
	paypalClient *paypal.Client,
	cfg *sharedConfig.Config,
	logger logger.Interface,
) *Router {
	return &Router{
		engine:       gin.New(),
		db:           db,
		redisClient:  redisClient,
		paypalClient: paypalClient,
		cfg:          cfg,
		logger:       logger,
	}
}

func (r *Router) Engine() *gin.Engine {
	return r.engine
}

func (r *Router) SetupRoutes() {
	utils.RegisterJSONTagNames()

	r.engine.Use(
		middleware.Recovery(r.logger),
		middleware.RequestID(),
		middleware.Logger(r.logger),
	)

	r.engine.GET("/health", func(c *gin.Context) {
		utils.SuccessResponse(c, 200, "ok", gin.H{"name": r.cfg.App.Name})
	})

	// Repositories
	userRepo := repository.NewUserRepository(r.db)
	planRepo := repository.NewPlanRepository(r.db)
	subscriptionRepo := repository.NewSubscriptionRepository(r.db)
	webhookEventRepo := repository.NewWebhookEventRepository(r.db)

	// Infrastructure services
	jwtService := auth.NewJWTService(
		r.cfg.Auth.JWT.Secret,
		r.cfg.Auth.JWT.AccessExpMinutes,
		r.cfg.Auth.JWT.RefreshExpDays,
	)
	tokenService := auth.NewTokenServiceAdapter(jwtService)
	digester := auth.NewSHA256TokenDigester()
	hasher := auth.NewBcryptPasswordHasher(r.cfg.Auth.Password.BcryptCost)
	gateway := paypal.NewGateway(r.paypalClient)
	limiter := ratelimit.NewRedisRateLimiter(r.redisClient)

	// Use cases
	registerUC := userUC.NewRegisterUserUseCase(userRepo, hasher, tokenService, digester, r.logger)
	loginUC := userUC.NewLoginUserUseCase(userRepo, hasher, tokenService, digester, r.logger)
	refreshUC := userUC.NewRefreshTokenUseCase(userRepo, tokenService, digester, r.logger)
	logoutUC := userUC.NewLogoutUserUseCase(userRepo, r.logger)
	createUserUC := userUC.NewCreateUserUseCase(userRepo, hasher, r.logger)

	createPlanUC := subscriptionUC.NewCreatePlanUseCase(planRepo, gateway, r.logger)
	updatePlanUC := subscriptionUC.NewUpdatePlanUseCase(planRepo, gateway, r.logger)
	listPlansUC := subscriptionUC.NewListPlansUseCase(planRepo, r.logger)
	deactivatePlanUC := subscriptionUC.NewDeactivatePlanUseCase(planRepo, r.logger)

	checkoutUC := subscriptionUC.NewCheckoutUseCase(planRepo, subscriptionRepo, gateway, r.logger)
	getSubscriptionUC := subscriptionUC.NewGetSubscriptionUseCase(subscriptionRepo, planRepo, r.logger)
	reportUC := subscriptionUC.NewSubscriptionReportUseCase(subscriptionRepo, planRepo, r.logger)
	processWebhookUC := subscriptionUC.NewProcessWebhookEventUseCase(gateway, subscriptionRepo, webhookEventRepo, r.logger)
	initProductUC := subscriptionUC.NewInitProductUseCase(gateway, r.logger)

	// Middleware
	authMiddleware := middleware.NewAuthMiddleware(jwtService, r.logger)
	subscriberMiddleware := middleware.NewSubscriberMiddleware(subscriptionRepo, r.logger)
	rateLimitMiddleware := middleware.NewRateLimitMiddleware(limiter, r.logger)

	// Handlers
	authHandler := handlers.NewAuthHandler(
		registerUC, loginUC, refreshUC, logoutUC,
		userRepo, r.cfg.Auth.Cookie, r.cfg.Auth.JWT.RefreshExpDays, r.logger,
	)
	userHandler := handlers.NewUserHandler(createUserUC, r.logger)
	planHandler := handlers.NewPlanHandler(createPlanUC, updatePlanUC, listPlansUC, deactivatePlanUC, r.logger)
	subscriptionHandler := handlers.NewSubscriptionHandler(checkoutUC, getSubscriptionUC, reportUC, r.logger)
	webhookHandler := handlers.NewWebhookHandler(processWebhookUC, r.logger)
	paypalHandler := handlers.NewPayPalHandler(initProductUC, r.logger)

	routes.SetupAuthRoutes(r.engine, &routes.AuthRouteConfig{
		AuthHandler:    authHandler,
		AuthMiddleware: authMiddleware,
		RateLimit:      rateLimitMiddleware,
	})
	routes.SetupPlanRoutes(r.engine, &routes.PlanRouteConfig{
		PlanHandler:    planHandler,
		UserHandler:    userHandler,
		PayPalHandler:  paypalHandler,
		AuthMiddleware: authMiddleware,
	})
	routes.SetupSubscriptionRoutes(r.engine, &routes.SubscriptionRouteConfig{
		SubscriptionHandler:  subscriptionHandler,
		AuthMiddleware:       authMiddleware,
		SubscriberMiddleware: subscriberMiddleware,
	})
	routes.SetupWebhookRoutes(r.engine, &routes.WebhookRouteConfig{
		WebhookHandler: webhookHandler,
		RateLimit:      rateLimitMiddleware,
	})
}

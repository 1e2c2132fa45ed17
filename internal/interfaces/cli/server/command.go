package server

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"

	subscriptionUC "github.com/munziralyafie/subscription-billing-api/internal/application/subscription/usecases"
	"github.com/munziralyafie/subscription-billing-api/internal/infrastructure/config"
	"github.com/munziralyafie/subscription-billing-api/internal/infrastructure/database"
	"github.com/munziralyafie/subscription-billing-api/internal/infrastructure/migration"
	"github.com/munziralyafie/subscription-billing-api/internal/infrastructure/paypal"
	"github.com/munziralyafie/subscription-billing-api/internal/infrastructure/repository"
	"github.com/munziralyafie/subscription-billing-api/internal/infrastructure/scheduler"
	httpRouter "github.com/munziralyafie/subscription-billing-api/internal/interfaces/http"
	"github.com/munziralyafie/subscription-billing-api/internal/shared/logger"
)

var (
	env         string
	autoMigrate bool
)

func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "server",
		Short: "Start the HTTP server",
		RunE:  run,
	}

	cmd.Flags().StringVarP(&env, "env", "e", "development", "Environment (development, test, production)")
	cmd.Flags().BoolVar(&autoMigrate, "auto-migrate", false, "Run database migrations on startup")

	return cmd
}

func run(cmd *cobra.Command, args []string) error {
	if envVar := os.Getenv("ENV"); envVar != "" {
		env = envVar
	}

	cfg, err := config.Load(env)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if err := logger.Init(cfg.Logger); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	log := logger.NewLogger()

	log.Infow("starting server", "environment", env, "auto_migrate", autoMigrate)

	gin.SetMode(mapEnvToGinMode(env))
	gin.DefaultWriter = io.Discard

	if err := database.Init(cfg.Database); err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer database.Close()

	if autoMigrate {
		if cfg.App.IsProduction() {
			log.Warnw("auto-migration enabled in production")
		}
		if err := migration.NewManager().Migrate(database.Get()); err != nil {
			return fmt.Errorf("auto-migration failed: %w", err)
		}
		log.Infow("auto-migration completed")
	}

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.GetAddr(),
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	defer redisClient.Close()

	pingCtx, cancelPing := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelPing()
	if err := redisClient.Ping(pingCtx).Err(); err != nil {
		// Rate limiting fails open, so a missing Redis degrades rather
		// than blocks startup.
		log.Warnw("redis unavailable, rate limiting degraded", "error", err)
	}

	paypalClient := paypal.NewClient(cfg.PayPal, log)

	router := httpRouter.NewRouter(database.Get(), redisClient, paypalClient, cfg, log)
	router.SetupRoutes()

	sweepCtx, cancelSweep := context.WithCancel(context.Background())
	defer cancelSweep()
	reconcilePendingUC := subscriptionUC.NewReconcilePendingUseCase(
		repository.NewSubscriptionRepository(database.Get()),
		paypal.NewGateway(paypalClient),
		log,
	)
	sweeper := scheduler.NewReconciliationScheduler(reconcilePendingUC, log)
	sweeper.Start(sweepCtx)
	defer sweeper.Stop()

	srv := &http.Server{
		Addr:         cfg.Server.GetAddr(),
		Handler:      router.Engine(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Infow("server listening", "address", cfg.Server.GetAddr())
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Errorw("server failed", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Infow("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Errorw("server forced to shutdown", "error", err)
		return err
	}

	log.Infow("server exited gracefully")
	return nil
}

func mapEnvToGinMode(environment string) string {
	switch environment {
	case "production":
		return gin.ReleaseMode
	case "test":
		return gin.TestMode
	default:
		return gin.DebugMode
	}
}

package seed

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	userUC "github.com/munziralyafie/subscription-billing-api/internal/application/user/usecases"
	"github.com/munziralyafie/subscription-billing-api/internal/infrastructure/auth"
	"github.com/munziralyafie/subscription-billing-api/internal/infrastructure/config"
	"github.com/munziralyafie/subscription-billing-api/internal/infrastructure/database"
	"github.com/munziralyafie/subscription-billing-api/internal/infrastructure/repository"
	"github.com/munziralyafie/subscription-billing-api/internal/shared/authorization"
	apperrors "github.com/munziralyafie/subscription-billing-api/internal/shared/errors"
	"github.com/munziralyafie/subscription-billing-api/internal/shared/logger"
)

var (
	env      string
	email    string
	name     string
	password string
)

// NewCommand creates the seed command, which provisions the initial
// admin account. Credentials come from flags or the BILLING_ADMIN_*
// environment variables.
func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Create the initial admin account",
		RunE:  run,
	}

	cmd.Flags().StringVarP(&env, "env", "e", "development", "Environment (development, test, production)")
	cmd.Flags().StringVar(&email, "email", "", "Admin email (or BILLING_ADMIN_EMAIL)")
	cmd.Flags().StringVar(&name, "name", "Administrator", "Admin display name")
	cmd.Flags().StringVar(&password, "password", "", "Admin password (or BILLING_ADMIN_PASSWORD)")

	return cmd
}

func run(cmd *cobra.Command, args []string) error {
	if envVar := os.Getenv("ENV"); envVar != "" {
		env = envVar
	}
	if email == "" {
		email = os.Getenv("BILLING_ADMIN_EMAIL")
	}
	if password == "" {
		password = os.Getenv("BILLING_ADMIN_PASSWORD")
	}
	if email == "" || password == "" {
		return fmt.Errorf("admin email and password are required")
	}

	cfg, err := config.Load(env)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if err := logger.Init(cfg.Logger); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	log := logger.NewLogger()

	if err := database.Init(cfg.Database); err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer database.Close()

	userRepo := repository.NewUserRepository(database.Get())
	hasher := auth.NewBcryptPasswordHasher(cfg.Auth.Password.BcryptCost)
	createUserUC := userUC.NewCreateUserUseCase(userRepo, hasher, log)

	created, err := createUserUC.Execute(context.Background(), userUC.CreateUserCommand{
		Email:    email,
		Name:     name,
		Password: password,
		Role:     authorization.RoleAdmin.String(),
	})
	if err != nil {
		if appErr := apperrors.GetAppError(err); appErr != nil && appErr.Type == apperrors.ErrorTypeConflict {
			log.Infow("admin account already exists", "email", email)
			return nil
		}
		return fmt.Errorf("failed to seed admin: %w", err)
	}

	log.Infow("admin account created", "user_id", created.ID(), "email", email)
	return nil
}

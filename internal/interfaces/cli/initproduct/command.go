package initproduct

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	subscriptionUC "github.com/munziralyafie/subscription-billing-api/internal/application/subscription/usecases"
	"github.com/munziralyafie/subscription-billing-api/internal/infrastructure/config"
	"github.com/munziralyafie/subscription-billing-api/internal/infrastructure/paypal"
	"github.com/munziralyafie/subscription-billing-api/internal/shared/logger"
)

var (
	env         string
	name        string
	description string
)

// NewCommand creates the one-shot setup command that registers the
// PayPal catalog product all billing plans attach to. The printed
// product id belongs in configuration as paypal.product_id.
func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init-product",
		Short: "Register the PayPal catalog product for billing plans",
		RunE:  run,
	}

	cmd.Flags().StringVarP(&env, "env", "e", "development", "Environment (development, test, production)")
	cmd.Flags().StringVar(&name, "name", "", "Product name shown in the PayPal catalog")
	cmd.Flags().StringVar(&description, "description", "", "Product description")

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

	if name == "" {
		name = cfg.App.Name
	}

	gateway := paypal.NewGateway(paypal.NewClient(cfg.PayPal, log))
	initProductUC := subscriptionUC.NewInitProductUseCase(gateway, log)

	result, err := initProductUC.Execute(context.Background(), subscriptionUC.InitProductCommand{
		Name:        name,
		Description: description,
	})
	if err != nil {
		return fmt.Errorf("failed to create product: %w", err)
	}

	fmt.Printf("paypal product created: %s\n", result.ProviderProductID)
	fmt.Println("set paypal.product_id (or BILLING_PAYPAL_PRODUCT_ID) to this value")
	return nil
}

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/munziralyafie/subscription-billing-api/internal/interfaces/cli/initproduct"
	"github.com/munziralyafie/subscription-billing-api/internal/interfaces/cli/migrate"
	"github.com/munziralyafie/subscription-billing-api/internal/interfaces/cli/seed"
	"github.com/munziralyafie/subscription-billing-api/internal/interfaces/cli/server"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "billing",
		Short: "Subscription billing API",
		Long:  "Subscription billing backend with PayPal integration.",
	}

	rootCmd.AddCommand(server.NewCommand())
	rootCmd.AddCommand(migrate.NewCommand())
	rootCmd.AddCommand(seed.NewCommand())
	rootCmd.AddCommand(initproduct.NewCommand())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

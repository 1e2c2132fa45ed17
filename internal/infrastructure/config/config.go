package config

import (
	"fmt"
	"strings"
	"sync"

	"github.com/spf13/viper"

	sharedConfig "github.com/munziralyafie/subscription-billing-api/internal/shared/config"
)

var (
	appConfig   *sharedConfig.Config
	appConfigMu sync.RWMutex
)

// Load loads configuration from file and environment variables.
// Environment variables use the BILLING_ prefix, e.g. BILLING_PAYPAL_CLIENT_ID.
func Load(env string) (*sharedConfig.Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("./configs")
	viper.AddConfigPath("../configs")
	viper.AddConfigPath("../../configs")

	viper.SetEnvPrefix("BILLING")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		// A missing file is fine; env vars and defaults still apply.
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	if env != "" && env != "default" {
		viper.Set("app.environment", env)
	}

	var config sharedConfig.Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	appConfigMu.Lock()
	appConfig = &config
	appConfigMu.Unlock()

	return &config, nil
}

// Get returns the loaded configuration
func Get() *sharedConfig.Config {
	appConfigMu.RLock()
	defer appConfigMu.RUnlock()
	return appConfig
}

// setDefaults sets default configuration values
func setDefaults() {
	// App defaults
	viper.SetDefault("app.name", "subscription-billing-api")
	viper.SetDefault("app.environment", "development")

	// Server defaults
	viper.SetDefault("server.host", "0.0.0.0")
	viper.SetDefault("server.port", 8080)

	// Database defaults
	viper.SetDefault("database.host", "localhost")
	viper.SetDefault("database.port", 3306)
	viper.SetDefault("database.user", "root")
	viper.SetDefault("database.password", "password")
	viper.SetDefault("database.name", "billing_dev")
	viper.SetDefault("database.charset", "utf8mb4")

	// Redis defaults
	viper.SetDefault("redis.host", "localhost")
	viper.SetDefault("redis.port", 6379)
	viper.SetDefault("redis.password", "")
	viper.SetDefault("redis.db", 0)

	// Logger defaults
	viper.SetDefault("logger.level", "info")
	viper.SetDefault("logger.format", "console")

	// Auth defaults
	viper.SetDefault("auth.password.bcrypt_cost", 12)
	viper.SetDefault("auth.jwt.secret", "change-me-in-production")
	viper.SetDefault("auth.jwt.access_exp_minutes", 15)
	viper.SetDefault("auth.jwt.refresh_exp_days", 7)
	viper.SetDefault("auth.cookie.domain", "")
	viper.SetDefault("auth.cookie.path", "/")
	viper.SetDefault("auth.cookie.secure", false)

	// PayPal defaults (sandbox; credentials must be configured)
	viper.SetDefault("paypal.base_url", "https://api-m.sandbox.paypal.com")
	viper.SetDefault("paypal.client_id", "")
	viper.SetDefault("paypal.client_secret", "")
	viper.SetDefault("paypal.webhook_id", "")
	viper.SetDefault("paypal.product_id", "")
	viper.SetDefault("paypal.currency", "USD")
	viper.SetDefault("paypal.brand_name", "Subscription Billing")
	viper.SetDefault("paypal.return_url", "http://localhost:8080/checkout/success")
	viper.SetDefault("paypal.cancel_url", "http://localhost:8080/checkout/cancel")
	viper.SetDefault("paypal.timeout_seconds", 15)
}

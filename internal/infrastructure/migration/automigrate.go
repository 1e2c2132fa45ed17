package migration

import (
	"github.com/munziralyafie/subscription-billing-api/internal/infrastructure/persistence/models"
)

// AutoMigrateModels lists every persistence model the schema carries.
func AutoMigrateModels() []interface{} {
	return []interface{}{
		&models.UserModel{},
		&models.PlanModel{},
		&models.SubscriptionModel{},
		&models.WebhookEventModel{},
	}
}

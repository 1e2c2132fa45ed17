// Package migration runs schema migrations against the configured
// database.
package migration

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/munziralyafie/subscription-billing-api/internal/shared/logger"
)

// Manager applies the schema to the database.
type Manager struct {
	logger logger.Interface
}

func NewManager() *Manager {
	return &Manager{
		logger: logger.NewLogger().With("component", "migration"),
	}
}

// Migrate applies gorm AutoMigrate for every registered model.
func (m *Manager) Migrate(db *gorm.DB) error {
	models := AutoMigrateModels()
	m.logger.Infow("running schema migration", "models", len(models))

	if err := db.AutoMigrate(models...); err != nil {
		return fmt.Errorf("auto migration failed: %w", err)
	}

	m.logger.Infow("schema migration completed")
	return nil
}

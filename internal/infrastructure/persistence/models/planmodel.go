package models

import "time"

// PlanModel is the persistence model for subscription plans. Price is
// stored in minor currency units.
type PlanModel struct {
	ID              uint   `gorm:"primarykey"`
	Name            string `gorm:"not null;size:100"`
	Description     string `gorm:"size:500"`
	Price           uint64 `gorm:"not null;default:0"`
	Currency        string `gorm:"not null;size:3"`
	BillingInterval string `gorm:"not null;size:10"`
	ProviderPlanID  *string `gorm:"size:50;index"`
	Status          string `gorm:"not null;size:20;default:active;index"`
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// TableName specifies the table name for GORM
func (PlanModel) TableName() string {
	return "plans"
}

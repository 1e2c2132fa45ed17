package models

import "time"

// SubscriptionModel is the persistence model for subscriptions. Each
// user has at most one row; checkout upserts on the user_id key. The
// provider subscription id is the key webhook reconciliation updates by.
type SubscriptionModel struct {
	ID                   uint    `gorm:"primarykey"`
	UserID               uint    `gorm:"uniqueIndex;not null"`
	PlanID               uint    `gorm:"not null;index"`
	PaypalSubscriptionID *string `gorm:"uniqueIndex;size:50"`
	Status               string  `gorm:"not null;size:20;index"`
	PeriodStart          *time.Time
	PeriodEnd            *time.Time
	CancelledAt          *time.Time
	CreatedAt            time.Time
	UpdatedAt            time.Time
}

// TableName specifies the table name for GORM
func (SubscriptionModel) TableName() string {
	return "subscriptions"
}

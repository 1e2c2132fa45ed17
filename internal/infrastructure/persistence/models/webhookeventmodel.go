package models

import (
	"time"

	"gorm.io/datatypes"
)

// WebhookEventModel is the idempotency ledger for provider webhook
// events. The unique event_id index is what makes duplicate deliveries
// collapse into a single processed row.
type WebhookEventModel struct {
	ID          uint           `gorm:"primarykey"`
	EventID     string         `gorm:"uniqueIndex;not null;size:64"`
	EventType   string         `gorm:"not null;size:100;index"`
	Payload     datatypes.JSON `gorm:"type:json"`
	ProcessedAt time.Time      `gorm:"not null"`
}

// TableName specifies the table name for GORM
func (WebhookEventModel) TableName() string {
	return "webhook_events"
}

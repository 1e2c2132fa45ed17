package subscription

import (
	"fmt"
	"time"
)

// WebhookEvent is a ledger entry recording that a provider event has
// been fully processed. The event id is unique; a second insert for the
// same id fails and marks the delivery as a duplicate.
type WebhookEvent struct {
	id          uint
	eventID     string
	eventType   string
	payload     []byte
	processedAt time.Time
}

func NewWebhookEvent(eventID, eventType string, payload []byte, processedAt time.Time) (*WebhookEvent, error) {
	if eventID == "" {
		return nil, fmt.Errorf("event ID is required")
	}
	return &WebhookEvent{
		eventID:     eventID,
		eventType:   eventType,
		payload:     payload,
		processedAt: processedAt.UTC(),
	}, nil
}

// ReconstructWebhookEvent rebuilds a ledger entry from persistence.
func ReconstructWebhookEvent(id uint, eventID, eventType string, payload []byte, processedAt time.Time) (*WebhookEvent, error) {
	if id == 0 {
		return nil, fmt.Errorf("webhook event ID cannot be zero")
	}
	if eventID == "" {
		return nil, fmt.Errorf("event ID is required")
	}
	return &WebhookEvent{
		id:          id,
		eventID:     eventID,
		eventType:   eventType,
		payload:     payload,
		processedAt: processedAt,
	}, nil
}

func (e *WebhookEvent) ID() uint { return e.id }

func (e *WebhookEvent) EventID() string { return e.eventID }

func (e *WebhookEvent) EventType() string { return e.eventType }

func (e *WebhookEvent) Payload() []byte { return e.payload }

func (e *WebhookEvent) ProcessedAt() time.Time { return e.processedAt }

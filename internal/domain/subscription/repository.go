package subscription

import (
	"context"
	"time"
)

// PlanRepository defines persistence operations for plans.
type PlanRepository interface {
	Create(ctx context.Context, p *Plan) error
	FindByID(ctx context.Context, id uint) (*Plan, error)
	ListActive(ctx context.Context) ([]*Plan, error)
	List(ctx context.Context) ([]*Plan, error)
	Update(ctx context.Context, p *Plan) error
}

// Repository defines persistence operations for subscriptions.
type Repository interface {
	// Upsert writes the user's single subscription row, replacing any
	// previous subscription for the same user.
	Upsert(ctx context.Context, s *Subscription) error
	FindByUserID(ctx context.Context, userID uint) (*Subscription, error)
	FindByProviderSubscriptionID(ctx context.Context, providerSubscriptionID string) (*Subscription, error)

	// ApplyStatusUpdate applies a reconciled status update as one atomic
	// write keyed by the provider subscription id. It reports whether a
	// matching subscription row exists.
	ApplyStatusUpdate(ctx context.Context, providerSubscriptionID string, update StatusUpdate) (found bool, err error)

	// ListStalePending returns provider-linked subscriptions still
	// pending after olderThan, for webhook-miss recovery sweeps.
	ListStalePending(ctx context.Context, olderThan time.Time, limit int) ([]*Subscription, error)
}

// WebhookEventRepository is the idempotency ledger for provider events.
type WebhookEventRepository interface {
	// Record inserts a ledger entry. Inserting an event id that is
	// already present returns a duplicate error.
	Record(ctx context.Context, e *WebhookEvent) error
	Exists(ctx context.Context, eventID string) (bool, error)
}

package subscription

import (
	"strings"
	"time"

	vo "github.com/munziralyafie/subscription-billing-api/internal/domain/subscription/valueobjects"
)

// StatusUpdate is the outcome of reconciling a provider subscription
// snapshot into local state. It is applied as a single atomic update
// keyed by the provider subscription id.
type StatusUpdate struct {
	Status vo.SubscriptionStatus

	// PeriodStart carries the provider's start time when the
	// subscription is active, nil otherwise. A non-active subscription
	// must not keep a stale active-period start.
	PeriodStart *time.Time

	// PeriodEnd always carries the provider's next billing time, even
	// when nil, so a vanished billing date clears the local value.
	PeriodEnd *time.Time

	// CancelledAt is set exactly when the mapped status is cancelled.
	CancelledAt *time.Time
}

// ReconcileProviderStatus maps an authoritative provider snapshot onto
// local subscription fields. The mapping is total: any status outside
// the known set falls back to pending. Replaying the same snapshot
// yields the same update regardless of when it is processed; only
// cancelledAt depends on the local clock.
func ReconcileProviderStatus(providerStatus string, startTime, nextBillingTime *time.Time, now time.Time) StatusUpdate {
	update := StatusUpdate{PeriodEnd: nextBillingTime}

	switch strings.ToUpper(strings.TrimSpace(providerStatus)) {
	case "ACTIVE":
		update.Status = vo.StatusActive
		if startTime != nil {
			start := startTime.UTC()
			update.PeriodStart = &start
		}
	case "CANCELLED":
		update.Status = vo.StatusCancelled
		cancelled := now.UTC()
		update.CancelledAt = &cancelled
	case "EXPIRED", "SUSPENDED":
		update.Status = vo.StatusExpired
	default:
		update.Status = vo.StatusPending
	}

	return update
}

package subscription

import (
	"fmt"
	"time"

	vo "github.com/munziralyafie/subscription-billing-api/internal/domain/subscription/valueobjects"
)

// Subscription represents a user's single subscription row. Each user
// has at most one; checkout upserts it in place.
type Subscription struct {
	id                     uint
	userID                 uint
	planID                 uint
	providerSubscriptionID *string
	status                 vo.SubscriptionStatus
	periodStart            *time.Time
	periodEnd              *time.Time
	cancelledAt            *time.Time
	createdAt              time.Time
	updatedAt              time.Time
}

// NewPendingSubscription starts a paid checkout: the provider side has
// been created and the local row waits for webhook confirmation.
func NewPendingSubscription(userID, planID uint, providerSubscriptionID string) (*Subscription, error) {
	if userID == 0 {
		return nil, fmt.Errorf("user ID cannot be zero")
	}
	if planID == 0 {
		return nil, fmt.Errorf("plan ID cannot be zero")
	}
	if providerSubscriptionID == "" {
		return nil, fmt.Errorf("provider subscription ID is required")
	}

	now := time.Now().UTC()
	return &Subscription{
		userID:                 userID,
		planID:                 planID,
		providerSubscriptionID: &providerSubscriptionID,
		status:                 vo.StatusPending,
		createdAt:              now,
		updatedAt:              now,
	}, nil
}

// NewFreeSubscription activates a free plan immediately. No provider
// record exists, so the provider subscription id stays nil.
func NewFreeSubscription(userID, planID uint, now time.Time) (*Subscription, error) {
	if userID == 0 {
		return nil, fmt.Errorf("user ID cannot be zero")
	}
	if planID == 0 {
		return nil, fmt.Errorf("plan ID cannot be zero")
	}

	start := now.UTC()
	return &Subscription{
		userID:      userID,
		planID:      planID,
		status:      vo.StatusActive,
		periodStart: &start,
		createdAt:   start,
		updatedAt:   start,
	}, nil
}

// ReconstructSubscription rebuilds a subscription from persistence.
func ReconstructSubscription(
	id, userID, planID uint,
	providerSubscriptionID *string,
	status vo.SubscriptionStatus,
	periodStart, periodEnd, cancelledAt *time.Time,
	createdAt, updatedAt time.Time,
) (*Subscription, error) {
	if id == 0 {
		return nil, fmt.Errorf("subscription ID cannot be zero")
	}
	if !status.IsValid() {
		return nil, fmt.Errorf("invalid subscription status: %s", status)
	}
	return &Subscription{
		id:                     id,
		userID:                 userID,
		planID:                 planID,
		providerSubscriptionID: providerSubscriptionID,
		status:                 status,
		periodStart:            periodStart,
		periodEnd:              periodEnd,
		cancelledAt:            cancelledAt,
		createdAt:              createdAt,
		updatedAt:              updatedAt,
	}, nil
}

func (s *Subscription) ID() uint { return s.id }

func (s *Subscription) UserID() uint { return s.userID }

func (s *Subscription) PlanID() uint { return s.planID }

func (s *Subscription) ProviderSubscriptionID() *string { return s.providerSubscriptionID }

func (s *Subscription) Status() vo.SubscriptionStatus { return s.status }

func (s *Subscription) PeriodStart() *time.Time { return s.periodStart }

func (s *Subscription) PeriodEnd() *time.Time { return s.periodEnd }

func (s *Subscription) CancelledAt() *time.Time { return s.cancelledAt }

func (s *Subscription) CreatedAt() time.Time { return s.createdAt }

func (s *Subscription) UpdatedAt() time.Time { return s.updatedAt }

func (s *Subscription) IsActive() bool { return s.status.IsActive() }

package usecases

import (
	"context"
	"fmt"
	"time"

	"github.com/munziralyafie/subscription-billing-api/internal/domain/subscription"
	"github.com/munziralyafie/subscription-billing-api/internal/shared/biztime"
	"github.com/munziralyafie/subscription-billing-api/internal/shared/logger"
)

const (
	// pendingGracePeriod is how long a checkout may sit unapproved
	// before the sweep asks the provider about it.
	pendingGracePeriod = 15 * time.Minute

	pendingSweepBatchSize = 50
)

// ReconcilePendingUseCase recovers from missed webhooks. Subscriptions
// stuck in pending past the grace period are re-checked against the
// provider's authoritative state, the same way webhook processing does.
type ReconcilePendingUseCase struct {
	subscriptionRepo subscription.Repository
	gateway          BillingGateway
	logger           logger.Interface
}

func NewReconcilePendingUseCase(
	subscriptionRepo subscription.Repository,
	gateway BillingGateway,
	logger logger.Interface,
) *ReconcilePendingUseCase {
	return &ReconcilePendingUseCase{
		subscriptionRepo: subscriptionRepo,
		gateway:          gateway,
		logger:           logger,
	}
}

// Execute sweeps one batch and returns how many subscriptions changed
// state. Per-subscription failures are logged and skipped so one flaky
// provider call does not stall the whole sweep.
func (uc *ReconcilePendingUseCase) Execute(ctx context.Context) (int, error) {
	now := biztime.NowUTC()
	stale, err := uc.subscriptionRepo.ListStalePending(ctx, now.Add(-pendingGracePeriod), pendingSweepBatchSize)
	if err != nil {
		return 0, fmt.Errorf("failed to list stale pending subscriptions: %w", err)
	}

	updated := 0
	for _, sub := range stale {
		providerID := sub.ProviderSubscriptionID()
		if providerID == nil || *providerID == "" {
			continue
		}

		snapshot, err := uc.gateway.GetSubscription(ctx, *providerID)
		if err != nil {
			uc.logger.Warnw("failed to fetch provider subscription during sweep",
				"error", err,
				"provider_subscription_id", *providerID,
			)
			continue
		}

		update := subscription.ReconcileProviderStatus(snapshot.Status, snapshot.StartTime, snapshot.NextBillingTime, now)
		if update.Status == sub.Status() {
			continue
		}

		if _, err := uc.subscriptionRepo.ApplyStatusUpdate(ctx, *providerID, update); err != nil {
			uc.logger.Errorw("failed to apply status update during sweep",
				"error", err,
				"provider_subscription_id", *providerID,
			)
			continue
		}

		uc.logger.Infow("stale pending subscription reconciled",
			"provider_subscription_id", *providerID,
			"status", update.Status.String(),
		)
		updated++
	}

	return updated, nil
}

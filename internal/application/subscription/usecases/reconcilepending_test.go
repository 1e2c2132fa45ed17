package usecases

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/munziralyafie/subscription-billing-api/internal/domain/subscription"
	vo "github.com/munziralyafie/subscription-billing-api/internal/domain/subscription/valueobjects"
	"github.com/munziralyafie/subscription-billing-api/internal/shared/logger"
)

func stalePendingSubscription(t *testing.T, id uint, providerID string) *subscription.Subscription {
	t.Helper()
	old := time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC)
	sub, err := subscription.ReconstructSubscription(
		id, id, 1, &providerID, vo.StatusPending, nil, nil, nil, old, old,
	)
	require.NoError(t, err)
	return sub
}

func TestReconcilePending_ActivatesApprovedSubscriptions(t *testing.T) {
	subRepo := &mockSubscriptionRepository{
		ListStalePendingFunc: func(ctx context.Context, olderThan time.Time, limit int) ([]*subscription.Subscription, error) {
			return []*subscription.Subscription{
				stalePendingSubscription(t, 1, "I-APPROVED"),
				stalePendingSubscription(t, 2, "I-STILL-PENDING"),
			}, nil
		},
	}
	var appliedIDs []string
	subRepo.ApplyStatusUpdateFunc = func(ctx context.Context, id string, update subscription.StatusUpdate) (bool, error) {
		appliedIDs = append(appliedIDs, id)
		return true, nil
	}
	gateway := &mockBillingGateway{
		GetSubscriptionFunc: func(ctx context.Context, id string) (*ProviderSubscription, error) {
			if id == "I-APPROVED" {
				return &ProviderSubscription{ID: id, Status: "ACTIVE"}, nil
			}
			return &ProviderSubscription{ID: id, Status: "APPROVAL_PENDING"}, nil
		},
	}
	uc := NewReconcilePendingUseCase(subRepo, gateway, logger.NewLogger())

	updated, err := uc.Execute(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 1, updated)
	assert.Equal(t, []string{"I-APPROVED"}, appliedIDs,
		"unchanged subscriptions must not be rewritten")
}

func TestReconcilePending_SkipsFailedFetches(t *testing.T) {
	subRepo := &mockSubscriptionRepository{
		ListStalePendingFunc: func(ctx context.Context, olderThan time.Time, limit int) ([]*subscription.Subscription, error) {
			return []*subscription.Subscription{
				stalePendingSubscription(t, 1, "I-BROKEN"),
				stalePendingSubscription(t, 2, "I-OK"),
			}, nil
		},
	}
	var applied int
	subRepo.ApplyStatusUpdateFunc = func(ctx context.Context, id string, update subscription.StatusUpdate) (bool, error) {
		applied++
		return true, nil
	}
	gateway := &mockBillingGateway{
		GetSubscriptionFunc: func(ctx context.Context, id string) (*ProviderSubscription, error) {
			if id == "I-BROKEN" {
				return nil, assert.AnError
			}
			return &ProviderSubscription{ID: id, Status: "CANCELLED"}, nil
		},
	}
	uc := NewReconcilePendingUseCase(subRepo, gateway, logger.NewLogger())

	updated, err := uc.Execute(context.Background())

	require.NoError(t, err, "one failed fetch must not fail the sweep")
	assert.Equal(t, 1, updated)
	assert.Equal(t, 1, applied)
}

func TestReconcilePending_EmptyBacklog(t *testing.T) {
	uc := NewReconcilePendingUseCase(&mockSubscriptionRepository{}, &mockBillingGateway{}, logger.NewLogger())

	updated, err := uc.Execute(context.Background())

	require.NoError(t, err)
	assert.Zero(t, updated)
}

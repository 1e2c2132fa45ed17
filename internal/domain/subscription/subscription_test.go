package subscription

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	vo "github.com/munziralyafie/subscription-billing-api/internal/domain/subscription/valueobjects"
)

func TestNewPendingSubscription(t *testing.T) {
	sub, err := NewPendingSubscription(1, 2, "I-ABC123")
	require.NoError(t, err)

	assert.Equal(t, vo.StatusPending, sub.Status())
	require.NotNil(t, sub.ProviderSubscriptionID())
	assert.Equal(t, "I-ABC123", *sub.ProviderSubscriptionID())
	assert.Nil(t, sub.PeriodStart())
	assert.Nil(t, sub.PeriodEnd())
}

func TestNewPendingSubscription_Invalid(t *testing.T) {
	_, err := NewPendingSubscription(0, 2, "I-ABC123")
	assert.Error(t, err)

	_, err = NewPendingSubscription(1, 2, "")
	assert.Error(t, err)
}

func TestNewFreeSubscription(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	sub, err := NewFreeSubscription(1, 2, now)
	require.NoError(t, err)

	assert.Equal(t, vo.StatusActive, sub.Status())
	assert.Nil(t, sub.ProviderSubscriptionID())
	require.NotNil(t, sub.PeriodStart())
	assert.Equal(t, now, *sub.PeriodStart())
	assert.Nil(t, sub.PeriodEnd())
}

func TestReconstructSubscription_RejectsUnknownStatus(t *testing.T) {
	now := time.Now().UTC()
	_, err := ReconstructSubscription(1, 1, 1, nil, vo.SubscriptionStatus("bogus"), nil, nil, nil, now, now)
	assert.Error(t, err)
}

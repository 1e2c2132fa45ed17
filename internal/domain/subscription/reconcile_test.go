package subscription

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	vo "github.com/munziralyafie/subscription-billing-api/internal/domain/subscription/valueobjects"
)

func TestReconcileProviderStatus_Mapping(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	start := time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC)
	next := time.Date(2025, 7, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name           string
		providerStatus string
		wantStatus     vo.SubscriptionStatus
	}{
		{"active", "ACTIVE", vo.StatusActive},
		{"active lowercase", "active", vo.StatusActive},
		{"active mixed case", "AcTiVe", vo.StatusActive},
		{"active padded", "  ACTIVE ", vo.StatusActive},
		{"cancelled", "CANCELLED", vo.StatusCancelled},
		{"expired", "EXPIRED", vo.StatusExpired},
		{"suspended maps to expired", "SUSPENDED", vo.StatusExpired},
		{"approval pending falls back", "APPROVAL_PENDING", vo.StatusPending},
		{"unknown falls back", "SOMETHING_NEW", vo.StatusPending},
		{"empty falls back", "", vo.StatusPending},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			update := ReconcileProviderStatus(tt.providerStatus, &start, &next, now)
			assert.Equal(t, tt.wantStatus, update.Status)
		})
	}
}

func TestReconcileProviderStatus_PeriodStartFromProviderStartTime(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	start := time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC)

	active := ReconcileProviderStatus("ACTIVE", &start, nil, now)
	require.NotNil(t, active.PeriodStart)
	assert.Equal(t, start, *active.PeriodStart, "period start must be the provider start time, not the processing time")

	// Snapshot without a start time carries none.
	withoutStart := ReconcileProviderStatus("ACTIVE", nil, nil, now)
	assert.Nil(t, withoutStart.PeriodStart)

	for _, status := range []string{"CANCELLED", "EXPIRED", "SUSPENDED", "UNKNOWN"} {
		update := ReconcileProviderStatus(status, &start, nil, now)
		assert.Nil(t, update.PeriodStart, "period start must stay nil for %s", status)
	}
}

func TestReconcileProviderStatus_PeriodEndAlwaysMirrorsProvider(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	start := time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC)
	next := time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC)

	withNext := ReconcileProviderStatus("ACTIVE", &start, &next, now)
	require.NotNil(t, withNext.PeriodEnd)
	assert.Equal(t, next, *withNext.PeriodEnd)

	// A snapshot without a billing date must clear the local value, not
	// preserve it.
	withoutNext := ReconcileProviderStatus("ACTIVE", &start, nil, now)
	assert.Nil(t, withoutNext.PeriodEnd)

	cancelled := ReconcileProviderStatus("CANCELLED", nil, &next, now)
	require.NotNil(t, cancelled.PeriodEnd)
	assert.Equal(t, next, *cancelled.PeriodEnd)
}

func TestReconcileProviderStatus_CancelledAtOnlyWhenCancelled(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	start := time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC)

	cancelled := ReconcileProviderStatus("cancelled", nil, nil, now)
	require.NotNil(t, cancelled.CancelledAt)
	assert.Equal(t, now, *cancelled.CancelledAt)

	for _, status := range []string{"ACTIVE", "EXPIRED", "SUSPENDED", "UNKNOWN"} {
		update := ReconcileProviderStatus(status, &start, nil, now)
		assert.Nil(t, update.CancelledAt, "cancelledAt must stay nil for %s", status)
	}
}

func TestReconcileProviderStatus_RedeliveryIsIdempotent(t *testing.T) {
	start := time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC)
	next := time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC)

	// The same active snapshot processed hours apart must produce the
	// same update; period start comes from the provider, not the clock.
	first := ReconcileProviderStatus("ACTIVE", &start, &next, time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC))
	second := ReconcileProviderStatus("ACTIVE", &start, &next, time.Date(2025, 6, 1, 18, 30, 0, 0, time.UTC))
	assert.Equal(t, first, second)
}

package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/munziralyafie/subscription-billing-api/internal/domain/subscription"
	vo "github.com/munziralyafie/subscription-billing-api/internal/domain/subscription/valueobjects"
	"github.com/munziralyafie/subscription-billing-api/internal/infrastructure/persistence/models"
)

func setupTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&models.UserModel{},
		&models.PlanModel{},
		&models.SubscriptionModel{},
		&models.WebhookEventModel{},
	)
	require.NoError(t, err)

	return db
}

func TestSubscriptionRepository_UpsertReplacesUserRow(t *testing.T) {
	db := setupTestDB(t)
	repo := NewSubscriptionRepository(db)
	ctx := context.Background()

	first, err := subscription.NewPendingSubscription(1, 10, "I-FIRST")
	require.NoError(t, err)
	require.NoError(t, repo.Upsert(ctx, first))

	second, err := subscription.NewPendingSubscription(1, 20, "I-SECOND")
	require.NoError(t, err)
	require.NoError(t, repo.Upsert(ctx, second))

	var count int64
	require.NoError(t, db.Model(&models.SubscriptionModel{}).Count(&count).Error)
	assert.Equal(t, int64(1), count, "upsert must keep one row per user")

	found, err := repo.FindByUserID(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, uint(20), found.PlanID())
	require.NotNil(t, found.ProviderSubscriptionID())
	assert.Equal(t, "I-SECOND", *found.ProviderSubscriptionID())
}

func TestSubscriptionRepository_FindByUserID_NotFound(t *testing.T) {
	db := setupTestDB(t)
	repo := NewSubscriptionRepository(db)

	_, err := repo.FindByUserID(context.Background(), 99)
	assert.ErrorIs(t, err, subscription.ErrSubscriptionNotFound)
}

func TestSubscriptionRepository_ApplyStatusUpdate(t *testing.T) {
	db := setupTestDB(t)
	repo := NewSubscriptionRepository(db)
	ctx := context.Background()

	sub, err := subscription.NewPendingSubscription(1, 10, "I-ABC")
	require.NoError(t, err)
	require.NoError(t, repo.Upsert(ctx, sub))

	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	start := time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC)
	next := time.Date(2025, 7, 1, 12, 0, 0, 0, time.UTC)

	update := subscription.ReconcileProviderStatus("ACTIVE", &start, &next, now)
	found, err := repo.ApplyStatusUpdate(ctx, "I-ABC", update)
	require.NoError(t, err)
	assert.True(t, found)

	stored, err := repo.FindByProviderSubscriptionID(ctx, "I-ABC")
	require.NoError(t, err)
	assert.Equal(t, vo.StatusActive, stored.Status())
	require.NotNil(t, stored.PeriodStart())
	assert.True(t, start.Equal(*stored.PeriodStart()), "period start must come from the provider snapshot")
	require.NotNil(t, stored.PeriodEnd())
	assert.True(t, next.Equal(*stored.PeriodEnd()))
	assert.Nil(t, stored.CancelledAt())
}

func TestSubscriptionRepository_ApplyStatusUpdate_ClearsPeriodEnd(t *testing.T) {
	db := setupTestDB(t)
	repo := NewSubscriptionRepository(db)
	ctx := context.Background()

	sub, err := subscription.NewPendingSubscription(1, 10, "I-ABC")
	require.NoError(t, err)
	require.NoError(t, repo.Upsert(ctx, sub))

	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	start := time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC)
	next := now.AddDate(0, 1, 0)

	_, err = repo.ApplyStatusUpdate(ctx, "I-ABC", subscription.ReconcileProviderStatus("ACTIVE", &start, &next, now))
	require.NoError(t, err)

	// A later snapshot without a billing date must clear the column.
	_, err = repo.ApplyStatusUpdate(ctx, "I-ABC", subscription.ReconcileProviderStatus("CANCELLED", nil, nil, now))
	require.NoError(t, err)

	stored, err := repo.FindByProviderSubscriptionID(ctx, "I-ABC")
	require.NoError(t, err)
	assert.Equal(t, vo.StatusCancelled, stored.Status())
	assert.Nil(t, stored.PeriodEnd())
	require.NotNil(t, stored.CancelledAt())
}

func TestSubscriptionRepository_ApplyStatusUpdate_RecomputesAllFields(t *testing.T) {
	db := setupTestDB(t)
	repo := NewSubscriptionRepository(db)
	ctx := context.Background()

	sub, err := subscription.NewPendingSubscription(1, 10, "I-ABC")
	require.NoError(t, err)
	require.NoError(t, repo.Upsert(ctx, sub))

	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	start := time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC)
	next := time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC)

	_, err = repo.ApplyStatusUpdate(ctx, "I-ABC", subscription.ReconcileProviderStatus("ACTIVE", &start, &next, now))
	require.NoError(t, err)

	// Active to cancelled must not keep the old active-period start.
	_, err = repo.ApplyStatusUpdate(ctx, "I-ABC", subscription.ReconcileProviderStatus("CANCELLED", nil, nil, now))
	require.NoError(t, err)

	stored, err := repo.FindByProviderSubscriptionID(ctx, "I-ABC")
	require.NoError(t, err)
	assert.Equal(t, vo.StatusCancelled, stored.Status())
	assert.Nil(t, stored.PeriodStart(), "non-active status must clear period_start")
	require.NotNil(t, stored.CancelledAt())

	// Cancelled back to active must not keep the old cancellation time.
	_, err = repo.ApplyStatusUpdate(ctx, "I-ABC", subscription.ReconcileProviderStatus("ACTIVE", &start, &next, now))
	require.NoError(t, err)

	stored, err = repo.FindByProviderSubscriptionID(ctx, "I-ABC")
	require.NoError(t, err)
	assert.Equal(t, vo.StatusActive, stored.Status())
	require.NotNil(t, stored.PeriodStart())
	assert.True(t, start.Equal(*stored.PeriodStart()))
	assert.Nil(t, stored.CancelledAt(), "reactivation must clear cancelled_at")
}

func TestSubscriptionRepository_ApplyStatusUpdate_MissingRow(t *testing.T) {
	db := setupTestDB(t)
	repo := NewSubscriptionRepository(db)

	now := time.Now().UTC()
	update := subscription.ReconcileProviderStatus("ACTIVE", nil, nil, now)

	found, err := repo.ApplyStatusUpdate(context.Background(), "I-MISSING", update)
	require.NoError(t, err)
	assert.False(t, found, "missing row is not an error, just not found")
}

func TestSubscriptionRepository_ApplyStatusUpdate_UnchangedRowStillFound(t *testing.T) {
	db := setupTestDB(t)
	repo := NewSubscriptionRepository(db)
	ctx := context.Background()

	sub, err := subscription.NewPendingSubscription(1, 10, "I-ABC")
	require.NoError(t, err)
	require.NoError(t, repo.Upsert(ctx, sub))

	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	update := subscription.ReconcileProviderStatus("ACTIVE", nil, nil, now)

	found, err := repo.ApplyStatusUpdate(ctx, "I-ABC", update)
	require.NoError(t, err)
	assert.True(t, found)

	// Replaying the identical update changes nothing but must still
	// report the row as present.
	found, err = repo.ApplyStatusUpdate(ctx, "I-ABC", update)
	require.NoError(t, err)
	assert.True(t, found)
}

func TestSubscriptionRepository_ListStalePending(t *testing.T) {
	db := setupTestDB(t)
	repo := NewSubscriptionRepository(db)
	ctx := context.Background()

	stale, err := subscription.NewPendingSubscription(1, 10, "I-STALE")
	require.NoError(t, err)
	require.NoError(t, repo.Upsert(ctx, stale))

	fresh, err := subscription.NewPendingSubscription(2, 10, "I-FRESH")
	require.NoError(t, err)
	require.NoError(t, repo.Upsert(ctx, fresh))

	active, err := subscription.NewPendingSubscription(3, 10, "I-ACTIVE")
	require.NoError(t, err)
	require.NoError(t, repo.Upsert(ctx, active))
	now := time.Now().UTC()
	_, err = repo.ApplyStatusUpdate(ctx, "I-ACTIVE", subscription.ReconcileProviderStatus("ACTIVE", nil, nil, now))
	require.NoError(t, err)

	// Backdate the stale row past the cutoff.
	past := now.Add(-1 * time.Hour)
	require.NoError(t, db.Model(&models.SubscriptionModel{}).
		Where("paypal_subscription_id = ?", "I-STALE").
		Update("updated_at", past).Error)

	cutoff := now.Add(-30 * time.Minute)
	got, err := repo.ListStalePending(ctx, cutoff, 10)
	require.NoError(t, err)

	require.Len(t, got, 1)
	require.NotNil(t, got[0].ProviderSubscriptionID())
	assert.Equal(t, "I-STALE", *got[0].ProviderSubscriptionID())
	assert.Equal(t, vo.StatusPending, got[0].Status())
}

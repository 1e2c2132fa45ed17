package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/munziralyafie/subscription-billing-api/internal/domain/subscription"
	"github.com/munziralyafie/subscription-billing-api/internal/infrastructure/persistence/mappers"
	"github.com/munziralyafie/subscription-billing-api/internal/infrastructure/persistence/models"
	"github.com/munziralyafie/subscription-billing-api/internal/shared/biztime"
)

type SubscriptionRepository struct {
	db     *gorm.DB
	mapper mappers.SubscriptionMapper
}

func NewSubscriptionRepository(db *gorm.DB) *SubscriptionRepository {
	return &SubscriptionRepository{
		db:     db,
		mapper: mappers.NewSubscriptionMapper(),
	}
}

var _ subscription.Repository = (*SubscriptionRepository)(nil)

// Upsert writes the user's single subscription row. A conflict on the
// user_id unique index replaces the previous subscription in place, so
// re-checkout never leaves two rows for one user.
func (r *SubscriptionRepository) Upsert(ctx context.Context, s *subscription.Subscription) error {
	model, err := r.mapper.ToModel(s)
	if err != nil {
		return fmt.Errorf("failed to map subscription: %w", err)
	}

	err = r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"plan_id",
			"paypal_subscription_id",
			"status",
			"period_start",
			"period_end",
			"cancelled_at",
			"updated_at",
		}),
	}).Create(model).Error
	if err != nil {
		return fmt.Errorf("failed to upsert subscription: %w", err)
	}
	return nil
}

func (r *SubscriptionRepository) FindByUserID(ctx context.Context, userID uint) (*subscription.Subscription, error) {
	var model models.SubscriptionModel
	err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, subscription.ErrSubscriptionNotFound
		}
		return nil, fmt.Errorf("failed to find subscription by user: %w", err)
	}
	return r.mapper.ToEntity(&model)
}

func (r *SubscriptionRepository) FindByProviderSubscriptionID(ctx context.Context, providerSubscriptionID string) (*subscription.Subscription, error) {
	var model models.SubscriptionModel
	err := r.db.WithContext(ctx).
		Where("paypal_subscription_id = ?", providerSubscriptionID).
		First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, subscription.ErrSubscriptionNotFound
		}
		return nil, fmt.Errorf("failed to find subscription by provider id: %w", err)
	}
	return r.mapper.ToEntity(&model)
}

// ApplyStatusUpdate applies a reconciled update as one UPDATE statement
// keyed by the provider subscription id. Every reconciled column is
// written, nil included: each reconciliation recomputes the full state,
// so a transition away from active clears period_start and a
// transition away from cancelled clears cancelled_at.
//
// MySQL reports zero affected rows when an update changes nothing, so a
// zero result is followed by an existence check to distinguish "row
// missing" from "row already in this state".
func (r *SubscriptionRepository) ApplyStatusUpdate(ctx context.Context, providerSubscriptionID string, update subscription.StatusUpdate) (bool, error) {
	if providerSubscriptionID == "" {
		return false, fmt.Errorf("provider subscription ID is required")
	}

	fields := map[string]interface{}{
		"status":       update.Status.String(),
		"period_start": update.PeriodStart,
		"period_end":   update.PeriodEnd,
		"cancelled_at": update.CancelledAt,
		"updated_at":   biztime.NowUTC(),
	}

	result := r.db.WithContext(ctx).
		Model(&models.SubscriptionModel{}).
		Where("paypal_subscription_id = ?", providerSubscriptionID).
		Updates(fields)
	if result.Error != nil {
		return false, fmt.Errorf("failed to apply status update: %w", result.Error)
	}

	if result.RowsAffected > 0 {
		return true, nil
	}

	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.SubscriptionModel{}).
		Where("paypal_subscription_id = ?", providerSubscriptionID).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to check subscription existence: %w", err)
	}
	return count > 0, nil
}

// ListStalePending returns provider-linked subscriptions that have sat
// in pending since before olderThan. Oldest first, so repeated sweeps
// drain the backlog.
func (r *SubscriptionRepository) ListStalePending(ctx context.Context, olderThan time.Time, limit int) ([]*subscription.Subscription, error) {
	var modelList []*models.SubscriptionModel
	err := r.db.WithContext(ctx).
		Where("status = ?", "pending").
		Where("paypal_subscription_id IS NOT NULL").
		Where("updated_at < ?", olderThan).
		Order("updated_at ASC").
		Limit(limit).
		Find(&modelList).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list stale pending subscriptions: %w", err)
	}

	entities := make([]*subscription.Subscription, 0, len(modelList))
	for _, model := range modelList {
		entity, err := r.mapper.ToEntity(model)
		if err != nil {
			return nil, fmt.Errorf("failed to map subscription: %w", err)
		}
		entities = append(entities, entity)
	}
	return entities, nil
}

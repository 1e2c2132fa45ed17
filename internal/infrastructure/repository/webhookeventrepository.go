package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/munziralyafie/subscription-billing-api/internal/domain/subscription"
	"github.com/munziralyafie/subscription-billing-api/internal/infrastructure/persistence/mappers"
	"github.com/munziralyafie/subscription-billing-api/internal/infrastructure/persistence/models"
	apperrors "github.com/munziralyafie/subscription-billing-api/internal/shared/errors"
)

type WebhookEventRepository struct {
	db     *gorm.DB
	mapper mappers.WebhookEventMapper
}

func NewWebhookEventRepository(db *gorm.DB) *WebhookEventRepository {
	return &WebhookEventRepository{
		db:     db,
		mapper: mappers.NewWebhookEventMapper(),
	}
}

var _ subscription.WebhookEventRepository = (*WebhookEventRepository)(nil)

// Record inserts a ledger entry. The unique event_id index turns a
// concurrent duplicate delivery into ErrDuplicateWebhookEvent, which
// callers treat as already-processed.
func (r *WebhookEventRepository) Record(ctx context.Context, e *subscription.WebhookEvent) error {
	model, err := r.mapper.ToModel(e)
	if err != nil {
		return fmt.Errorf("failed to map webhook event: %w", err)
	}

	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		if apperrors.IsDuplicateError(err) {
			return subscription.ErrDuplicateWebhookEvent
		}
		return fmt.Errorf("failed to record webhook event: %w", err)
	}
	return nil
}

func (r *WebhookEventRepository) Exists(ctx context.Context, eventID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.WebhookEventModel{}).
		Where("event_id = ?", eventID).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to check webhook event: %w", err)
	}
	return count > 0, nil
}

package mappers

import (
	"gorm.io/datatypes"

	"github.com/munziralyafie/subscription-billing-api/internal/domain/subscription"
	"github.com/munziralyafie/subscription-billing-api/internal/infrastructure/persistence/models"
)

// WebhookEventMapper handles conversion between ledger entries and their
// persistence model.
type WebhookEventMapper interface {
	ToEntity(model *models.WebhookEventModel) (*subscription.WebhookEvent, error)
	ToModel(entity *subscription.WebhookEvent) (*models.WebhookEventModel, error)
}

type webhookEventMapper struct{}

func NewWebhookEventMapper() WebhookEventMapper {
	return &webhookEventMapper{}
}

func (m *webhookEventMapper) ToEntity(model *models.WebhookEventModel) (*subscription.WebhookEvent, error) {
	if model == nil {
		return nil, nil
	}
	return subscription.ReconstructWebhookEvent(
		model.ID,
		model.EventID,
		model.EventType,
		model.Payload,
		model.ProcessedAt,
	)
}

func (m *webhookEventMapper) ToModel(entity *subscription.WebhookEvent) (*models.WebhookEventModel, error) {
	if entity == nil {
		return nil, nil
	}
	return &models.WebhookEventModel{
		ID:          entity.ID(),
		EventID:     entity.EventID(),
		EventType:   entity.EventType(),
		Payload:     datatypes.JSON(entity.Payload()),
		ProcessedAt: entity.ProcessedAt(),
	}, nil
}

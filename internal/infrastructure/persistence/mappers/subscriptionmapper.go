package mappers

import (
	"github.com/munziralyafie/subscription-billing-api/internal/domain/subscription"
	vo "github.com/munziralyafie/subscription-billing-api/internal/domain/subscription/valueobjects"
	"github.com/munziralyafie/subscription-billing-api/internal/infrastructure/persistence/models"
)

// SubscriptionMapper handles conversion between the subscription
// aggregate and its persistence model.
type SubscriptionMapper interface {
	ToEntity(model *models.SubscriptionModel) (*subscription.Subscription, error)
	ToModel(entity *subscription.Subscription) (*models.SubscriptionModel, error)
}

type subscriptionMapper struct{}

func NewSubscriptionMapper() SubscriptionMapper {
	return &subscriptionMapper{}
}

func (m *subscriptionMapper) ToEntity(model *models.SubscriptionModel) (*subscription.Subscription, error) {
	if model == nil {
		return nil, nil
	}

	return subscription.ReconstructSubscription(
		model.ID,
		model.UserID,
		model.PlanID,
		model.PaypalSubscriptionID,
		vo.SubscriptionStatus(model.Status),
		model.PeriodStart,
		model.PeriodEnd,
		model.CancelledAt,
		model.CreatedAt,
		model.UpdatedAt,
	)
}

func (m *subscriptionMapper) ToModel(entity *subscription.Subscription) (*models.SubscriptionModel, error) {
	if entity == nil {
		return nil, nil
	}

	return &models.SubscriptionModel{
		ID:                   entity.ID(),
		UserID:               entity.UserID(),
		PlanID:               entity.PlanID(),
		PaypalSubscriptionID: entity.ProviderSubscriptionID(),
		Status:               entity.Status().String(),
		PeriodStart:          entity.PeriodStart(),
		PeriodEnd:            entity.PeriodEnd(),
		CancelledAt:          entity.CancelledAt(),
		CreatedAt:            entity.CreatedAt(),
		UpdatedAt:            entity.UpdatedAt(),
	}, nil
}

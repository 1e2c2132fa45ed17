package mappers

import (
	"fmt"

	"github.com/munziralyafie/subscription-billing-api/internal/domain/subscription"
	vo "github.com/munziralyafie/subscription-billing-api/internal/domain/subscription/valueobjects"
	"github.com/munziralyafie/subscription-billing-api/internal/infrastructure/persistence/models"
)

// PlanMapper handles conversion between the plan aggregate and its
// persistence model.
type PlanMapper interface {
	ToEntity(model *models.PlanModel) (*subscription.Plan, error)
	ToModel(entity *subscription.Plan) (*models.PlanModel, error)
	ToEntities(models []*models.PlanModel) ([]*subscription.Plan, error)
}

type planMapper struct{}

func NewPlanMapper() PlanMapper {
	return &planMapper{}
}

func (m *planMapper) ToEntity(model *models.PlanModel) (*subscription.Plan, error) {
	if model == nil {
		return nil, nil
	}

	interval, err := vo.ParseBillingInterval(model.BillingInterval)
	if err != nil {
		return nil, fmt.Errorf("stored plan %d: %w", model.ID, err)
	}

	return subscription.ReconstructPlan(
		model.ID,
		model.Name,
		model.Description,
		model.Price,
		model.Currency,
		interval,
		model.ProviderPlanID,
		subscription.PlanStatus(model.Status),
		model.CreatedAt,
		model.UpdatedAt,
	)
}

func (m *planMapper) ToModel(entity *subscription.Plan) (*models.PlanModel, error) {
	if entity == nil {
		return nil, nil
	}

	return &models.PlanModel{
		ID:              entity.ID(),
		Name:            entity.Name(),
		Description:     entity.Description(),
		Price:           entity.Price(),
		Currency:        entity.Currency(),
		BillingInterval: entity.BillingInterval().String(),
		ProviderPlanID:  entity.ProviderPlanID(),
		Status:          string(entity.Status()),
		CreatedAt:       entity.CreatedAt(),
		UpdatedAt:       entity.UpdatedAt(),
	}, nil
}

func (m *planMapper) ToEntities(planModels []*models.PlanModel) ([]*subscription.Plan, error) {
	entities := make([]*subscription.Plan, 0, len(planModels))
	for _, model := range planModels {
		entity, err := m.ToEntity(model)
		if err != nil {
			return nil, err
		}
		entities = append(entities, entity)
	}
	return entities, nil
}

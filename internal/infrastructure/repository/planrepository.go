package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/munziralyafie/subscription-billing-api/internal/domain/subscription"
	"github.com/munziralyafie/subscription-billing-api/internal/infrastructure/persistence/mappers"
	"github.com/munziralyafie/subscription-billing-api/internal/infrastructure/persistence/models"
)

type PlanRepository struct {
	db     *gorm.DB
	mapper mappers.PlanMapper
}

func NewPlanRepository(db *gorm.DB) *PlanRepository {
	return &PlanRepository{
		db:     db,
		mapper: mappers.NewPlanMapper(),
	}
}

var _ subscription.PlanRepository = (*PlanRepository)(nil)

func (r *PlanRepository) Create(ctx context.Context, p *subscription.Plan) error {
	model, err := r.mapper.ToModel(p)
	if err != nil {
		return fmt.Errorf("failed to map plan: %w", err)
	}

	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return fmt.Errorf("failed to create plan: %w", err)
	}
	return nil
}

func (r *PlanRepository) FindByID(ctx context.Context, id uint) (*subscription.Plan, error) {
	var model models.PlanModel
	if err := r.db.WithContext(ctx).First(&model, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, subscription.ErrPlanNotFound
		}
		return nil, fmt.Errorf("failed to find plan: %w", err)
	}
	return r.mapper.ToEntity(&model)
}

func (r *PlanRepository) ListActive(ctx context.Context) ([]*subscription.Plan, error) {
	var planModels []*models.PlanModel
	err := r.db.WithContext(ctx).
		Where("status = ?", string(subscription.PlanStatusActive)).
		Order("price ASC").
		Find(&planModels).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list active plans: %w", err)
	}
	return r.mapper.ToEntities(planModels)
}

func (r *PlanRepository) List(ctx context.Context) ([]*subscription.Plan, error) {
	var planModels []*models.PlanModel
	if err := r.db.WithContext(ctx).Order("id ASC").Find(&planModels).Error; err != nil {
		return nil, fmt.Errorf("failed to list plans: %w", err)
	}
	return r.mapper.ToEntities(planModels)
}

func (r *PlanRepository) Update(ctx context.Context, p *subscription.Plan) error {
	model, err := r.mapper.ToModel(p)
	if err != nil {
		return fmt.Errorf("failed to map plan: %w", err)
	}

	result := r.db.WithContext(ctx).
		Model(&models.PlanModel{}).
		Where("id = ?", model.ID).
		Updates(map[string]interface{}{
			"name":             model.Name,
			"description":      model.Description,
			"price":            model.Price,
			"currency":         model.Currency,
			"billing_interval": model.BillingInterval,
			"provider_plan_id": model.ProviderPlanID,
			"status":           model.Status,
			"updated_at":       model.UpdatedAt,
		})
	if result.Error != nil {
		return fmt.Errorf("failed to update plan: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		var count int64
		if err := r.db.WithContext(ctx).Model(&models.PlanModel{}).
			Where("id = ?", model.ID).Count(&count).Error; err != nil {
			return fmt.Errorf("failed to check plan existence: %w", err)
		}
		if count == 0 {
			return subscription.ErrPlanNotFound
		}
	}
	return nil
}

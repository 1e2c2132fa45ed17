package usecases

import (
	"context"
	"fmt"

	"github.com/munziralyafie/subscription-billing-api/internal/domain/subscription"
	"github.com/munziralyafie/subscription-billing-api/internal/shared/logger"
)

// ListPlansUseCase returns plans for display. The public listing only
// shows active plans; the admin listing includes retired ones.
type ListPlansUseCase struct {
	planRepo subscription.PlanRepository
	logger   logger.Interface
}

func NewListPlansUseCase(planRepo subscription.PlanRepository, logger logger.Interface) *ListPlansUseCase {
	return &ListPlansUseCase{
		planRepo: planRepo,
		logger:   logger,
	}
}

func (uc *ListPlansUseCase) Execute(ctx context.Context, includeInactive bool) ([]*subscription.Plan, error) {
	var plans []*subscription.Plan
	var err error
	if includeInactive {
		plans, err = uc.planRepo.List(ctx)
	} else {
		plans, err = uc.planRepo.ListActive(ctx)
	}
	if err != nil {
		uc.logger.Errorw("failed to list plans", "error", err)
		return nil, fmt.Errorf("failed to list plans: %w", err)
	}
	return plans, nil
}

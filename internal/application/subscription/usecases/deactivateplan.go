package usecases

import (
	"context"
	"errors"
	"fmt"

	"github.com/munziralyafie/subscription-billing-api/internal/domain/subscription"
	apperrors "github.com/munziralyafie/subscription-billing-api/internal/shared/errors"
	"github.com/munziralyafie/subscription-billing-api/internal/shared/logger"
)

type DeactivatePlanCommand struct {
	PlanID uint
}

// DeactivatePlanUseCase soft-retires a plan. Existing subscriptions are
// untouched; the plan just disappears from public listings and refuses
// new checkouts.
type DeactivatePlanUseCase struct {
	planRepo subscription.PlanRepository
	logger   logger.Interface
}

func NewDeactivatePlanUseCase(planRepo subscription.PlanRepository, logger logger.Interface) *DeactivatePlanUseCase {
	return &DeactivatePlanUseCase{
		planRepo: planRepo,
		logger:   logger,
	}
}

func (uc *DeactivatePlanUseCase) Execute(ctx context.Context, cmd DeactivatePlanCommand) error {
	plan, err := uc.planRepo.FindByID(ctx, cmd.PlanID)
	if err != nil {
		if errors.Is(err, subscription.ErrPlanNotFound) {
			return apperrors.NewNotFoundError("plan not found")
		}
		return fmt.Errorf("failed to load plan: %w", err)
	}

	plan.Deactivate()
	if err := uc.planRepo.Update(ctx, plan); err != nil {
		uc.logger.Errorw("failed to deactivate plan", "error", err, "plan_id", cmd.PlanID)
		return fmt.Errorf("failed to deactivate plan: %w", err)
	}

	uc.logger.Infow("plan deactivated", "plan_id", cmd.PlanID)
	return nil
}

package usecases

import (
	"context"
	"errors"
	"fmt"

	"github.com/munziralyafie/subscription-billing-api/internal/domain/subscription"
	vo "github.com/munziralyafie/subscription-billing-api/internal/domain/subscription/valueobjects"
	apperrors "github.com/munziralyafie/subscription-billing-api/internal/shared/errors"
	"github.com/munziralyafie/subscription-billing-api/internal/shared/logger"
)

type UpdatePlanCommand struct {
	PlanID          uint
	Name            string
	Description     string
	Price           uint64
	BillingInterval string
}

// UpdatePlanUseCase edits the local plan definition. Provider-side plan
// pricing is immutable, so a price or interval change on a paid plan
// creates a fresh provider plan and relinks.
type UpdatePlanUseCase struct {
	planRepo subscription.PlanRepository
	gateway  BillingGateway
	logger   logger.Interface
}

func NewUpdatePlanUseCase(
	planRepo subscription.PlanRepository,
	gateway BillingGateway,
	logger logger.Interface,
) *UpdatePlanUseCase {
	return &UpdatePlanUseCase{
		planRepo: planRepo,
		gateway:  gateway,
		logger:   logger,
	}
}

func (uc *UpdatePlanUseCase) Execute(ctx context.Context, cmd UpdatePlanCommand) (*subscription.Plan, error) {
	interval, err := vo.ParseBillingInterval(cmd.BillingInterval)
	if err != nil {
		return nil, apperrors.NewValidationError(err.Error())
	}

	plan, err := uc.planRepo.FindByID(ctx, cmd.PlanID)
	if err != nil {
		if errors.Is(err, subscription.ErrPlanNotFound) {
			return nil, apperrors.NewNotFoundError("plan not found")
		}
		return nil, fmt.Errorf("failed to load plan: %w", err)
	}

	needsNewProviderPlan := !plan.IsFree() &&
		(plan.Price() != cmd.Price || plan.BillingInterval() != interval || plan.ProviderPlanID() == nil)

	if err := plan.Update(cmd.Name, cmd.Description, cmd.Price, interval); err != nil {
		return nil, apperrors.NewValidationError(err.Error())
	}

	if needsNewProviderPlan && !plan.IsFree() {
		providerPlanID, err := uc.gateway.CreatePlan(ctx, plan.Name(), plan.Description(), plan.PriceDecimal(), interval)
		if err != nil {
			uc.logger.Errorw("failed to create provider plan", "error", err, "plan_id", plan.ID())
			return nil, apperrors.NewUpstreamError("billing provider request failed")
		}
		if err := plan.LinkProviderPlan(providerPlanID); err != nil {
			return nil, apperrors.NewInternalError(err.Error())
		}
	}

	if err := uc.planRepo.Update(ctx, plan); err != nil {
		if errors.Is(err, subscription.ErrPlanNotFound) {
			return nil, apperrors.NewNotFoundError("plan not found")
		}
		uc.logger.Errorw("failed to update plan", "error", err, "plan_id", plan.ID())
		return nil, fmt.Errorf("failed to update plan: %w", err)
	}

	uc.logger.Infow("plan updated", "plan_id", plan.ID())
	return plan, nil
}

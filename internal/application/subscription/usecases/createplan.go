package usecases

import (
	"context"
	"fmt"

	"github.com/munziralyafie/subscription-billing-api/internal/domain/subscription"
	vo "github.com/munziralyafie/subscription-billing-api/internal/domain/subscription/valueobjects"
	apperrors "github.com/munziralyafie/subscription-billing-api/internal/shared/errors"
	"github.com/munziralyafie/subscription-billing-api/internal/shared/logger"
)

type CreatePlanCommand struct {
	Name            string
	Description     string
	Price           uint64
	Currency        string
	BillingInterval string
}

// CreatePlanUseCase creates a plan locally and, for paid plans, mirrors
// it at the billing provider so checkout can sell it right away. Free
// plans never touch the provider.
type CreatePlanUseCase struct {
	planRepo subscription.PlanRepository
	gateway  BillingGateway
	logger   logger.Interface
}

func NewCreatePlanUseCase(
	planRepo subscription.PlanRepository,
	gateway BillingGateway,
	logger logger.Interface,
) *CreatePlanUseCase {
	return &CreatePlanUseCase{
		planRepo: planRepo,
		gateway:  gateway,
		logger:   logger,
	}
}

func (uc *CreatePlanUseCase) Execute(ctx context.Context, cmd CreatePlanCommand) (*subscription.Plan, error) {
	interval, err := vo.ParseBillingInterval(cmd.BillingInterval)
	if err != nil {
		return nil, apperrors.NewValidationError(err.Error())
	}

	plan, err := subscription.NewPlan(cmd.Name, cmd.Description, cmd.Price, cmd.Currency, interval)
	if err != nil {
		return nil, apperrors.NewValidationError(err.Error())
	}

	if !plan.IsFree() {
		providerPlanID, err := uc.gateway.CreatePlan(ctx, plan.Name(), plan.Description(), plan.PriceDecimal(), interval)
		if err != nil {
			uc.logger.Errorw("failed to create provider plan", "error", err, "plan_name", plan.Name())
			return nil, apperrors.NewUpstreamError("billing provider request failed")
		}
		if err := plan.LinkProviderPlan(providerPlanID); err != nil {
			return nil, apperrors.NewInternalError(err.Error())
		}
	}

	if err := uc.planRepo.Create(ctx, plan); err != nil {
		uc.logger.Errorw("failed to store plan", "error", err, "plan_name", plan.Name())
		return nil, fmt.Errorf("failed to store plan: %w", err)
	}

	uc.logger.Infow("plan created",
		"plan_name", plan.Name(),
		"price", plan.Price(),
		"interval", interval.String(),
	)
	return plan, nil
}

package usecases

import (
	"context"
	"errors"
	"fmt"

	"github.com/munziralyafie/subscription-billing-api/internal/domain/subscription"
	apperrors "github.com/munziralyafie/subscription-billing-api/internal/shared/errors"
	"github.com/munziralyafie/subscription-billing-api/internal/shared/logger"
)

type GetSubscriptionResult struct {
	Subscription *subscription.Subscription
	Plan         *subscription.Plan
}

// GetSubscriptionUseCase loads the caller's subscription together with
// its plan.
type GetSubscriptionUseCase struct {
	subscriptionRepo subscription.Repository
	planRepo         subscription.PlanRepository
	logger           logger.Interface
}

func NewGetSubscriptionUseCase(
	subscriptionRepo subscription.Repository,
	planRepo subscription.PlanRepository,
	logger logger.Interface,
) *GetSubscriptionUseCase {
	return &GetSubscriptionUseCase{
		subscriptionRepo: subscriptionRepo,
		planRepo:         planRepo,
		logger:           logger,
	}
}

func (uc *GetSubscriptionUseCase) Execute(ctx context.Context, userID uint) (*GetSubscriptionResult, error) {
	sub, err := uc.subscriptionRepo.FindByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, subscription.ErrSubscriptionNotFound) {
			return nil, apperrors.NewNotFoundError("no subscription found")
		}
		uc.logger.Errorw("failed to load subscription", "error", err, "user_id", userID)
		return nil, fmt.Errorf("failed to load subscription: %w", err)
	}

	plan, err := uc.planRepo.FindByID(ctx, sub.PlanID())
	if err != nil && !errors.Is(err, subscription.ErrPlanNotFound) {
		uc.logger.Errorw("failed to load plan", "error", err, "plan_id", sub.PlanID())
		return nil, fmt.Errorf("failed to load plan: %w", err)
	}

	return &GetSubscriptionResult{Subscription: sub, Plan: plan}, nil
}

package usecases

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/munziralyafie/subscription-billing-api/internal/domain/subscription"
	"github.com/munziralyafie/subscription-billing-api/internal/shared/biztime"
	apperrors "github.com/munziralyafie/subscription-billing-api/internal/shared/errors"
	"github.com/munziralyafie/subscription-billing-api/internal/shared/logger"
)

type CheckoutCommand struct {
	UserID uint
	PlanID uint
}

type CheckoutResult struct {
	// Free is true when the plan activated immediately without the
	// provider.
	Free bool

	Status                 string
	ProviderSubscriptionID string
	ApprovalURL            string
}

// CheckoutUseCase starts a subscription purchase. Paid plans talk to
// the billing provider before any local write, so a provider failure
// leaves the user's existing subscription row untouched.
type CheckoutUseCase struct {
	planRepo         subscription.PlanRepository
	subscriptionRepo subscription.Repository
	gateway          BillingGateway
	logger           logger.Interface
}

func NewCheckoutUseCase(
	planRepo subscription.PlanRepository,
	subscriptionRepo subscription.Repository,
	gateway BillingGateway,
	logger logger.Interface,
) *CheckoutUseCase {
	return &CheckoutUseCase{
		planRepo:         planRepo,
		subscriptionRepo: subscriptionRepo,
		gateway:          gateway,
		logger:           logger,
	}
}

func (uc *CheckoutUseCase) Execute(ctx context.Context, cmd CheckoutCommand) (*CheckoutResult, error) {
	plan, err := uc.planRepo.FindByID(ctx, cmd.PlanID)
	if err != nil {
		if errors.Is(err, subscription.ErrPlanNotFound) {
			return nil, apperrors.NewNotFoundError("plan not found")
		}
		uc.logger.Errorw("failed to load plan", "error", err, "plan_id", cmd.PlanID)
		return nil, fmt.Errorf("failed to load plan: %w", err)
	}
	if !plan.IsActive() {
		return nil, apperrors.NewNotFoundError("plan not found")
	}

	if plan.IsFree() {
		return uc.checkoutFree(ctx, cmd.UserID, plan)
	}
	return uc.checkoutPaid(ctx, cmd.UserID, plan)
}

func (uc *CheckoutUseCase) checkoutFree(ctx context.Context, userID uint, plan *subscription.Plan) (*CheckoutResult, error) {
	sub, err := subscription.NewFreeSubscription(userID, plan.ID(), biztime.NowUTC())
	if err != nil {
		return nil, apperrors.NewValidationError(err.Error())
	}

	if err := uc.subscriptionRepo.Upsert(ctx, sub); err != nil {
		uc.logger.Errorw("failed to store free subscription", "error", err, "user_id", userID)
		return nil, fmt.Errorf("failed to store subscription: %w", err)
	}

	uc.logger.Infow("free plan activated", "user_id", userID, "plan_id", plan.ID())
	return &CheckoutResult{
		Free:   true,
		Status: sub.Status().String(),
	}, nil
}

func (uc *CheckoutUseCase) checkoutPaid(ctx context.Context, userID uint, plan *subscription.Plan) (*CheckoutResult, error) {
	providerPlanID := plan.ProviderPlanID()
	if providerPlanID == nil || *providerPlanID == "" {
		return nil, apperrors.NewFailedPreconditionError("plan is not linked to the billing provider")
	}

	// Provider first, local state second. On failure nothing local has
	// changed yet. The user id travels as the provider custom id so the
	// subscription stays attributable on the provider side.
	session, err := uc.gateway.CreateSubscription(ctx, *providerPlanID, strconv.FormatUint(uint64(userID), 10))
	if err != nil {
		uc.logger.Errorw("failed to create provider subscription",
			"error", err,
			"user_id", userID,
			"plan_id", plan.ID(),
		)
		return nil, apperrors.NewUpstreamError("billing provider request failed")
	}

	sub, err := subscription.NewPendingSubscription(userID, plan.ID(), session.ProviderSubscriptionID)
	if err != nil {
		return nil, apperrors.NewValidationError(err.Error())
	}

	if err := uc.subscriptionRepo.Upsert(ctx, sub); err != nil {
		uc.logger.Errorw("failed to store pending subscription",
			"error", err,
			"user_id", userID,
			"provider_subscription_id", session.ProviderSubscriptionID,
		)
		return nil, fmt.Errorf("failed to store subscription: %w", err)
	}

	uc.logger.Infow("checkout started",
		"user_id", userID,
		"plan_id", plan.ID(),
		"provider_subscription_id", session.ProviderSubscriptionID,
	)
	return &CheckoutResult{
		Status:                 sub.Status().String(),
		ProviderSubscriptionID: session.ProviderSubscriptionID,
		ApprovalURL:            session.ApprovalURL,
	}, nil
}

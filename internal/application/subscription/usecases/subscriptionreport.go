package usecases

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/munziralyafie/subscription-billing-api/internal/domain/subscription"
	"github.com/munziralyafie/subscription-billing-api/internal/shared/biztime"
	apperrors "github.com/munziralyafie/subscription-billing-api/internal/shared/errors"
	"github.com/munziralyafie/subscription-billing-api/internal/shared/logger"
)

type SubscriptionReport struct {
	PlanName        string
	Status          string
	PeriodStart     *time.Time
	PeriodEnd       *time.Time
	DaysRemaining   *int
	BillingInterval string
}

// SubscriptionReportUseCase builds the subscriber-only usage report.
// Callers are expected to pass the guard that requires an active
// subscription, but the use case re-checks anyway.
type SubscriptionReportUseCase struct {
	subscriptionRepo subscription.Repository
	planRepo         subscription.PlanRepository
	logger           logger.Interface
}

func NewSubscriptionReportUseCase(
	subscriptionRepo subscription.Repository,
	planRepo subscription.PlanRepository,
	logger logger.Interface,
) *SubscriptionReportUseCase {
	return &SubscriptionReportUseCase{
		subscriptionRepo: subscriptionRepo,
		planRepo:         planRepo,
		logger:           logger,
	}
}

func (uc *SubscriptionReportUseCase) Execute(ctx context.Context, userID uint) (*SubscriptionReport, error) {
	sub, err := uc.subscriptionRepo.FindByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, subscription.ErrSubscriptionNotFound) {
			return nil, apperrors.NewForbiddenError("active subscription required")
		}
		uc.logger.Errorw("failed to load subscription", "error", err, "user_id", userID)
		return nil, fmt.Errorf("failed to load subscription: %w", err)
	}
	if !sub.IsActive() {
		return nil, apperrors.NewForbiddenError("active subscription required")
	}

	report := &SubscriptionReport{
		Status:      sub.Status().String(),
		PeriodStart: sub.PeriodStart(),
		PeriodEnd:   sub.PeriodEnd(),
	}

	if sub.PeriodEnd() != nil {
		days := int(sub.PeriodEnd().Sub(biztime.NowUTC()).Hours() / 24)
		if days < 0 {
			days = 0
		}
		report.DaysRemaining = &days
	}

	plan, err := uc.planRepo.FindByID(ctx, sub.PlanID())
	if err == nil && plan != nil {
		report.PlanName = plan.Name()
		report.BillingInterval = plan.BillingInterval().String()
	}

	return report, nil
}

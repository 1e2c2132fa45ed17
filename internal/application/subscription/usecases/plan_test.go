package usecases

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/munziralyafie/subscription-billing-api/internal/domain/subscription"
	vo "github.com/munziralyafie/subscription-billing-api/internal/domain/subscription/valueobjects"
	apperrors "github.com/munziralyafie/subscription-billing-api/internal/shared/errors"
	"github.com/munziralyafie/subscription-billing-api/internal/shared/logger"
)

func TestCreatePlan_PaidPlanMirroredAtProvider(t *testing.T) {
	var stored *subscription.Plan
	planRepo := &mockPlanRepository{
		CreateFunc: func(ctx context.Context, p *subscription.Plan) error {
			stored = p
			return nil
		},
	}
	var gotPrice string
	gateway := &mockBillingGateway{
		CreatePlanFunc: func(ctx context.Context, name, description, priceDecimal string, interval vo.BillingInterval) (string, error) {
			gotPrice = priceDecimal
			return "P-CREATED", nil
		},
	}
	uc := NewCreatePlanUseCase(planRepo, gateway, logger.NewLogger())

	plan, err := uc.Execute(context.Background(), CreatePlanCommand{
		Name:            "pro",
		Description:     "all features",
		Price:           1999,
		Currency:        "USD",
		BillingInterval: "monthly",
	})

	require.NoError(t, err)
	assert.Equal(t, "19.99", gotPrice)
	require.NotNil(t, plan.ProviderPlanID())
	assert.Equal(t, "P-CREATED", *plan.ProviderPlanID())
	assert.Same(t, plan, stored)
}

func TestCreatePlan_FreePlanSkipsProvider(t *testing.T) {
	var gatewayCalled bool
	gateway := &mockBillingGateway{
		CreatePlanFunc: func(ctx context.Context, name, description, priceDecimal string, interval vo.BillingInterval) (string, error) {
			gatewayCalled = true
			return "P-UNEXPECTED", nil
		},
	}
	uc := NewCreatePlanUseCase(&mockPlanRepository{}, gateway, logger.NewLogger())

	plan, err := uc.Execute(context.Background(), CreatePlanCommand{
		Name:            "free",
		Price:           0,
		Currency:        "USD",
		BillingInterval: "monthly",
	})

	require.NoError(t, err)
	assert.False(t, gatewayCalled)
	assert.Nil(t, plan.ProviderPlanID())
}

func TestCreatePlan_InvalidInterval(t *testing.T) {
	uc := NewCreatePlanUseCase(&mockPlanRepository{}, &mockBillingGateway{}, logger.NewLogger())

	_, err := uc.Execute(context.Background(), CreatePlanCommand{
		Name:            "pro",
		Price:           999,
		Currency:        "USD",
		BillingInterval: "weekly",
	})

	require.Error(t, err)
	appErr := apperrors.GetAppError(err)
	require.NotNil(t, appErr)
	assert.Equal(t, apperrors.ErrorTypeValidation, appErr.Type)
}

func TestCreatePlan_ProviderFailureLeavesNoLocalPlan(t *testing.T) {
	var created bool
	planRepo := &mockPlanRepository{
		CreateFunc: func(ctx context.Context, p *subscription.Plan) error {
			created = true
			return nil
		},
	}
	gateway := &mockBillingGateway{
		CreatePlanFunc: func(ctx context.Context, name, description, priceDecimal string, interval vo.BillingInterval) (string, error) {
			return "", assert.AnError
		},
	}
	uc := NewCreatePlanUseCase(planRepo, gateway, logger.NewLogger())

	_, err := uc.Execute(context.Background(), CreatePlanCommand{
		Name:            "pro",
		Price:           999,
		Currency:        "USD",
		BillingInterval: "yearly",
	})

	require.Error(t, err)
	appErr := apperrors.GetAppError(err)
	require.NotNil(t, appErr)
	assert.Equal(t, apperrors.ErrorTypeUpstream, appErr.Type)
	assert.False(t, created)
}

func TestUpdatePlan_PriceChangeRelinksProviderPlan(t *testing.T) {
	oldProviderPlanID := "P-OLD"
	planRepo := &mockPlanRepository{
		FindByIDFunc: func(ctx context.Context, id uint) (*subscription.Plan, error) {
			return testPlan(t, id, "pro", 999, &oldProviderPlanID, subscription.PlanStatusActive), nil
		},
	}
	gateway := &mockBillingGateway{
		CreatePlanFunc: func(ctx context.Context, name, description, priceDecimal string, interval vo.BillingInterval) (string, error) {
			return "P-NEW", nil
		},
	}
	uc := NewUpdatePlanUseCase(planRepo, gateway, logger.NewLogger())

	plan, err := uc.Execute(context.Background(), UpdatePlanCommand{
		PlanID:          2,
		Name:            "pro",
		Price:           1499,
		BillingInterval: "monthly",
	})

	require.NoError(t, err)
	require.NotNil(t, plan.ProviderPlanID())
	assert.Equal(t, "P-NEW", *plan.ProviderPlanID())
	assert.Equal(t, uint64(1499), plan.Price())
}

func TestUpdatePlan_UnchangedPriceKeepsProviderPlan(t *testing.T) {
	providerPlanID := "P-KEEP"
	planRepo := &mockPlanRepository{
		FindByIDFunc: func(ctx context.Context, id uint) (*subscription.Plan, error) {
			return testPlan(t, id, "pro", 999, &providerPlanID, subscription.PlanStatusActive), nil
		},
	}
	var gatewayCalled bool
	gateway := &mockBillingGateway{
		CreatePlanFunc: func(ctx context.Context, name, description, priceDecimal string, interval vo.BillingInterval) (string, error) {
			gatewayCalled = true
			return "P-UNEXPECTED", nil
		},
	}
	uc := NewUpdatePlanUseCase(planRepo, gateway, logger.NewLogger())

	plan, err := uc.Execute(context.Background(), UpdatePlanCommand{
		PlanID:          2,
		Name:            "pro renamed",
		Description:     "new copy",
		Price:           999,
		BillingInterval: "monthly",
	})

	require.NoError(t, err)
	assert.False(t, gatewayCalled, "a cosmetic edit must not mint a new provider plan")
	require.NotNil(t, plan.ProviderPlanID())
	assert.Equal(t, "P-KEEP", *plan.ProviderPlanID())
	assert.Equal(t, "pro renamed", plan.Name())
}

func TestUpdatePlan_NotFound(t *testing.T) {
	uc := NewUpdatePlanUseCase(&mockPlanRepository{}, &mockBillingGateway{}, logger.NewLogger())

	_, err := uc.Execute(context.Background(), UpdatePlanCommand{
		PlanID:          42,
		Name:            "pro",
		Price:           999,
		BillingInterval: "monthly",
	})

	require.Error(t, err)
	appErr := apperrors.GetAppError(err)
	require.NotNil(t, appErr)
	assert.Equal(t, apperrors.ErrorTypeNotFound, appErr.Type)
}

func TestDeactivatePlan(t *testing.T) {
	providerPlanID := "P-1"
	var updated *subscription.Plan
	planRepo := &mockPlanRepository{
		FindByIDFunc: func(ctx context.Context, id uint) (*subscription.Plan, error) {
			return testPlan(t, id, "pro", 999, &providerPlanID, subscription.PlanStatusActive), nil
		},
		UpdateFunc: func(ctx context.Context, p *subscription.Plan) error {
			updated = p
			return nil
		},
	}
	uc := NewDeactivatePlanUseCase(planRepo, logger.NewLogger())

	err := uc.Execute(context.Background(), DeactivatePlanCommand{PlanID: 2})

	require.NoError(t, err)
	require.NotNil(t, updated)
	assert.False(t, updated.IsActive())
}

func TestListPlans_ActiveOnlyByDefault(t *testing.T) {
	var listedActive, listedAll bool
	planRepo := &mockPlanRepository{
		ListActiveFunc: func(ctx context.Context) ([]*subscription.Plan, error) {
			listedActive = true
			return []*subscription.Plan{testPlan(t, 1, "free", 0, nil, subscription.PlanStatusActive)}, nil
		},
		ListFunc: func(ctx context.Context) ([]*subscription.Plan, error) {
			listedAll = true
			return nil, nil
		},
	}
	uc := NewListPlansUseCase(planRepo, logger.NewLogger())

	plans, err := uc.Execute(context.Background(), false)

	require.NoError(t, err)
	require.Len(t, plans, 1)
	assert.True(t, listedActive)
	assert.False(t, listedAll)
}

func TestListPlans_IncludeInactive(t *testing.T) {
	planRepo := &mockPlanRepository{
		ListFunc: func(ctx context.Context) ([]*subscription.Plan, error) {
			return []*subscription.Plan{
				testPlan(t, 1, "free", 0, nil, subscription.PlanStatusActive),
				testPlan(t, 2, "legacy", 499, nil, subscription.PlanStatusInactive),
			}, nil
		},
	}
	uc := NewListPlansUseCase(planRepo, logger.NewLogger())

	plans, err := uc.Execute(context.Background(), true)

	require.NoError(t, err)
	assert.Len(t, plans, 2)
}

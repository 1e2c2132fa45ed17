package usecases

import (
	"context"
	"time"

	"github.com/munziralyafie/subscription-billing-api/internal/domain/subscription"
	vo "github.com/munziralyafie/subscription-billing-api/internal/domain/subscription/valueobjects"
)

type mockPlanRepository struct {
	CreateFunc     func(ctx context.Context, p *subscription.Plan) error
	FindByIDFunc   func(ctx context.Context, id uint) (*subscription.Plan, error)
	ListActiveFunc func(ctx context.Context) ([]*subscription.Plan, error)
	ListFunc       func(ctx context.Context) ([]*subscription.Plan, error)
	UpdateFunc     func(ctx context.Context, p *subscription.Plan) error
}

func (m *mockPlanRepository) Create(ctx context.Context, p *subscription.Plan) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, p)
	}
	return nil
}

func (m *mockPlanRepository) FindByID(ctx context.Context, id uint) (*subscription.Plan, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id)
	}
	return nil, subscription.ErrPlanNotFound
}

func (m *mockPlanRepository) ListActive(ctx context.Context) ([]*subscription.Plan, error) {
	if m.ListActiveFunc != nil {
		return m.ListActiveFunc(ctx)
	}
	return nil, nil
}

func (m *mockPlanRepository) List(ctx context.Context) ([]*subscription.Plan, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx)
	}
	return nil, nil
}

func (m *mockPlanRepository) Update(ctx context.Context, p *subscription.Plan) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, p)
	}
	return nil
}

type mockSubscriptionRepository struct {
	UpsertFunc                       func(ctx context.Context, s *subscription.Subscription) error
	FindByUserIDFunc                 func(ctx context.Context, userID uint) (*subscription.Subscription, error)
	FindByProviderSubscriptionIDFunc func(ctx context.Context, id string) (*subscription.Subscription, error)
	ApplyStatusUpdateFunc            func(ctx context.Context, id string, update subscription.StatusUpdate) (bool, error)
	ListStalePendingFunc             func(ctx context.Context, olderThan time.Time, limit int) ([]*subscription.Subscription, error)
}

func (m *mockSubscriptionRepository) Upsert(ctx context.Context, s *subscription.Subscription) error {
	if m.UpsertFunc != nil {
		return m.UpsertFunc(ctx, s)
	}
	return nil
}

func (m *mockSubscriptionRepository) FindByUserID(ctx context.Context, userID uint) (*subscription.Subscription, error) {
	if m.FindByUserIDFunc != nil {
		return m.FindByUserIDFunc(ctx, userID)
	}
	return nil, subscription.ErrSubscriptionNotFound
}

func (m *mockSubscriptionRepository) FindByProviderSubscriptionID(ctx context.Context, id string) (*subscription.Subscription, error) {
	if m.FindByProviderSubscriptionIDFunc != nil {
		return m.FindByProviderSubscriptionIDFunc(ctx, id)
	}
	return nil, subscription.ErrSubscriptionNotFound
}

func (m *mockSubscriptionRepository) ApplyStatusUpdate(ctx context.Context, id string, update subscription.StatusUpdate) (bool, error) {
	if m.ApplyStatusUpdateFunc != nil {
		return m.ApplyStatusUpdateFunc(ctx, id, update)
	}
	return false, nil
}

func (m *mockSubscriptionRepository) ListStalePending(ctx context.Context, olderThan time.Time, limit int) ([]*subscription.Subscription, error) {
	if m.ListStalePendingFunc != nil {
		return m.ListStalePendingFunc(ctx, olderThan, limit)
	}
	return nil, nil
}

type mockWebhookEventRepository struct {
	RecordFunc func(ctx context.Context, e *subscription.WebhookEvent) error
	ExistsFunc func(ctx context.Context, eventID string) (bool, error)
}

func (m *mockWebhookEventRepository) Record(ctx context.Context, e *subscription.WebhookEvent) error {
	if m.RecordFunc != nil {
		return m.RecordFunc(ctx, e)
	}
	return nil
}

func (m *mockWebhookEventRepository) Exists(ctx context.Context, eventID string) (bool, error) {
	if m.ExistsFunc != nil {
		return m.ExistsFunc(ctx, eventID)
	}
	return false, nil
}

type mockBillingGateway struct {
	VerifyWebhookSignatureFunc func(ctx context.Context, sig WebhookSignature, rawBody []byte) (bool, error)
	GetSubscriptionFunc        func(ctx context.Context, id string) (*ProviderSubscription, error)
	CreateSubscriptionFunc     func(ctx context.Context, providerPlanID, customID string) (*CheckoutSession, error)
	CreateProductFunc          func(ctx context.Context, name, description string) (string, error)
	CreatePlanFunc             func(ctx context.Context, name, description, priceDecimal string, interval vo.BillingInterval) (string, error)
}

func (m *mockBillingGateway) VerifyWebhookSignature(ctx context.Context, sig WebhookSignature, rawBody []byte) (bool, error) {
	if m.VerifyWebhookSignatureFunc != nil {
		return m.VerifyWebhookSignatureFunc(ctx, sig, rawBody)
	}
	return true, nil
}

func (m *mockBillingGateway) GetSubscription(ctx context.Context, id string) (*ProviderSubscription, error) {
	if m.GetSubscriptionFunc != nil {
		return m.GetSubscriptionFunc(ctx, id)
	}
	return &ProviderSubscription{ID: id, Status: "ACTIVE"}, nil
}

func (m *mockBillingGateway) CreateSubscription(ctx context.Context, providerPlanID, customID string) (*CheckoutSession, error) {
	if m.CreateSubscriptionFunc != nil {
		return m.CreateSubscriptionFunc(ctx, providerPlanID, customID)
	}
	return &CheckoutSession{ProviderSubscriptionID: "I-MOCK", ApprovalURL: "http://paypal/approve"}, nil
}

func (m *mockBillingGateway) CreateProduct(ctx context.Context, name, description string) (string, error) {
	if m.CreateProductFunc != nil {
		return m.CreateProductFunc(ctx, name, description)
	}
	return "PROD-MOCK", nil
}

func (m *mockBillingGateway) CreatePlan(ctx context.Context, name, description, priceDecimal string, interval vo.BillingInterval) (string, error) {
	if m.CreatePlanFunc != nil {
		return m.CreatePlanFunc(ctx, name, description, priceDecimal, interval)
	}
	return "P-MOCK", nil
}

package paypal

import (
	"context"

	"github.com/munziralyafie/subscription-billing-api/internal/application/subscription/usecases"
	vo "github.com/munziralyafie/subscription-billing-api/internal/domain/subscription/valueobjects"
)

// Gateway adapts the PayPal client to the application's billing port.
type Gateway struct {
	client *Client
}

var _ usecases.BillingGateway = (*Gateway)(nil)

func NewGateway(client *Client) *Gateway {
	return &Gateway{client: client}
}

func (g *Gateway) VerifyWebhookSignature(ctx context.Context, sig usecases.WebhookSignature, rawBody []byte) (bool, error) {
	return g.client.VerifyWebhookSignature(ctx, WebhookHeaders{
		TransmissionID:   sig.TransmissionID,
		TransmissionTime: sig.TransmissionTime,
		TransmissionSig:  sig.TransmissionSig,
		CertURL:          sig.CertURL,
		AuthAlgo:         sig.AuthAlgo,
	}, rawBody)
}

func (g *Gateway) GetSubscription(ctx context.Context, providerSubscriptionID string) (*usecases.ProviderSubscription, error) {
	resource, err := g.client.GetSubscription(ctx, providerSubscriptionID)
	if err != nil {
		return nil, err
	}
	return &usecases.ProviderSubscription{
		ID:              resource.ID,
		Status:          resource.Status,
		StartTime:       resource.StartTime,
		NextBillingTime: resource.BillingInfo.NextBillingTime,
	}, nil
}

func (g *Gateway) CreateSubscription(ctx context.Context, providerPlanID, customID string) (*usecases.CheckoutSession, error) {
	created, err := g.client.CreateSubscription(ctx, providerPlanID, customID)
	if err != nil {
		return nil, err
	}
	return &usecases.CheckoutSession{
		ProviderSubscriptionID: created.ID,
		ApprovalURL:            created.ApprovalURL,
	}, nil
}

func (g *Gateway) CreateProduct(ctx context.Context, name, description string) (string, error) {
	return g.client.CreateProduct(ctx, name, description)
}

func (g *Gateway) CreatePlan(ctx context.Context, name, description, priceDecimal string, interval vo.BillingInterval) (string, error) {
	return g.client.CreatePlan(ctx, name, description, priceDecimal, interval)
}

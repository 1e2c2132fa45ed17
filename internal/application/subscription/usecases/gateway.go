package usecases

import (
	"context"
	"time"

	vo "github.com/munziralyafie/subscription-billing-api/internal/domain/subscription/valueobjects"
)

// ProviderSubscription is the authoritative subscription snapshot
// fetched from the billing provider. Webhook processing reconciles from
// this snapshot, never from the event payload itself.
type ProviderSubscription struct {
	ID              string
	Status          string
	StartTime       *time.Time
	NextBillingTime *time.Time
}

// CheckoutSession is a provider-side subscription awaiting buyer
// approval.
type CheckoutSession struct {
	ProviderSubscriptionID string
	ApprovalURL            string
}

// WebhookSignature carries the transmission headers of a webhook
// delivery for verification.
type WebhookSignature struct {
	TransmissionID   string
	TransmissionTime string
	TransmissionSig  string
	CertURL          string
	AuthAlgo         string
}

// Complete reports whether every verification header is present.
func (s WebhookSignature) Complete() bool {
	return s.TransmissionID != "" &&
		s.TransmissionTime != "" &&
		s.TransmissionSig != "" &&
		s.CertURL != "" &&
		s.AuthAlgo != ""
}

// BillingGateway is the outbound port to the billing provider.
type BillingGateway interface {
	VerifyWebhookSignature(ctx context.Context, sig WebhookSignature, rawBody []byte) (bool, error)
	GetSubscription(ctx context.Context, providerSubscriptionID string) (*ProviderSubscription, error)
	CreateSubscription(ctx context.Context, providerPlanID, customID string) (*CheckoutSession, error)
	CreateProduct(ctx context.Context, name, description string) (string, error)
	CreatePlan(ctx context.Context, name, description, priceDecimal string, interval vo.BillingInterval) (string, error)
}

package paypal

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
)

// GetSubscription fetches the authoritative subscription state. Webhook
// reconciliation always trusts this snapshot over the event payload.
func (c *Client) GetSubscription(ctx context.Context, subscriptionID string) (*SubscriptionResource, error) {
	if subscriptionID == "" {
		return nil, fmt.Errorf("subscription ID is required")
	}

	var resource SubscriptionResource
	if err := c.doJSON(ctx, http.MethodGet, "/v1/billing/subscriptions/"+subscriptionID, nil, &resource); err != nil {
		return nil, fmt.Errorf("failed to fetch subscription %s: %w", subscriptionID, err)
	}
	return &resource, nil
}

// CreateSubscription creates a provider subscription for a plan and
// returns the approval URL the browser must be redirected to. The
// provider publishes the URL under rel "approve", with "payer-action"
// as a fallback. customID ties the provider subscription back to the
// local user.
func (c *Client) CreateSubscription(ctx context.Context, providerPlanID, customID string) (*CreateSubscriptionResult, error) {
	if providerPlanID == "" {
		return nil, fmt.Errorf("provider plan ID is required")
	}

	payload := createSubscriptionRequest{
		PlanID:   providerPlanID,
		CustomID: customID,
		ApplicationContext: applicationContext{
			BrandName:          c.cfg.BrandName,
			UserAction:         "SUBSCRIBE_NOW",
			ShippingPreference: "NO_SHIPPING",
			ReturnURL:          c.cfg.ReturnURL,
			CancelURL:          c.cfg.CancelURL,
		},
	}

	var resp createSubscriptionResponse
	if err := c.doJSON(ctx, http.MethodPost, "/v1/billing/subscriptions", payload, &resp); err != nil {
		return nil, fmt.Errorf("failed to create subscription: %w", err)
	}
	if resp.ID == "" {
		return nil, fmt.Errorf("provider returned subscription without id")
	}

	result := &CreateSubscriptionResult{
		ID:     resp.ID,
		Status: resp.Status,
	}
	for _, l := range resp.Links {
		if l.Rel == "approve" {
			result.ApprovalURL = l.Href
			break
		}
		if l.Rel == "payer-action" && result.ApprovalURL == "" {
			result.ApprovalURL = l.Href
		}
	}
	if result.ApprovalURL == "" {
		return nil, fmt.Errorf("provider returned subscription %s without approval link", resp.ID)
	}
	return result, nil
}

// VerifyWebhookSignature asks the provider to confirm a webhook delivery
// was genuinely signed by it.
func (c *Client) VerifyWebhookSignature(ctx context.Context, headers WebhookHeaders, rawBody []byte) (bool, error) {
	if !headers.Complete() {
		return false, fmt.Errorf("missing webhook transmission headers")
	}

	payload := verifyWebhookRequest{
		TransmissionID:   headers.TransmissionID,
		TransmissionTime: headers.TransmissionTime,
		TransmissionSig:  headers.TransmissionSig,
		CertURL:          headers.CertURL,
		AuthAlgo:         headers.AuthAlgo,
		WebhookID:        c.cfg.WebhookID,
		WebhookEvent:     json.RawMessage(rawBody),
	}

	var resp verifyWebhookResponse
	if err := c.doJSON(ctx, http.MethodPost, "/v1/notifications/verify-webhook-signature", payload, &resp); err != nil {
		return false, fmt.Errorf("failed to verify webhook signature: %w", err)
	}
	return resp.VerificationStatus == "SUCCESS", nil
}

package paypal

import (
	"context"
	"fmt"
	"net/http"

	vo "github.com/munziralyafie/subscription-billing-api/internal/domain/subscription/valueobjects"
)

// CreateProduct registers the catalog product that all billing plans
// hang off. Run once during setup; the resulting id goes into config.
func (c *Client) CreateProduct(ctx context.Context, name, description string) (string, error) {
	if name == "" {
		return "", fmt.Errorf("product name is required")
	}

	payload := createProductRequest{
		Name:        name,
		Description: description,
		Type:        "SERVICE",
		Category:    "SOFTWARE",
	}

	var resp createProductResponse
	if err := c.doJSON(ctx, http.MethodPost, "/v1/catalogs/products", payload, &resp); err != nil {
		return "", fmt.Errorf("failed to create product: %w", err)
	}
	if resp.ID == "" {
		return "", fmt.Errorf("provider returned product without id")
	}
	return resp.ID, nil
}

// CreatePlan creates the provider-side billing plan for a local plan.
// The cycle bills indefinitely (total_cycles 0) and suspends after
// three consecutive payment failures.
func (c *Client) CreatePlan(ctx context.Context, name, description, priceDecimal string, interval vo.BillingInterval) (string, error) {
	if name == "" {
		return "", fmt.Errorf("plan name is required")
	}
	if c.cfg.ProductID == "" {
		return "", fmt.Errorf("provider product ID is not configured")
	}

	payload := createPlanRequest{
		ProductID:   c.cfg.ProductID,
		Name:        name,
		Description: description,
		Status:      "ACTIVE",
		BillingCycles: []billingCycle{
			{
				Frequency: frequency{
					IntervalUnit:  interval.ProviderUnit(),
					IntervalCount: 1,
				},
				TenureType:  "REGULAR",
				Sequence:    1,
				TotalCycles: 0,
				PricingScheme: pricingScheme{
					FixedPrice: money{
						Value:        priceDecimal,
						CurrencyCode: c.cfg.Currency,
					},
				},
			},
		},
		PaymentPreferences: paymentPreferences{
			AutoBillOutstanding:     true,
			SetupFeeFailureAction:   "CONTINUE",
			PaymentFailureThreshold: 3,
		},
	}

	var resp createPlanResponse
	if err := c.doJSON(ctx, http.MethodPost, "/v1/billing/plans", payload, &resp); err != nil {
		return "", fmt.Errorf("failed to create plan: %w", err)
	}
	if resp.ID == "" {
		return "", fmt.Errorf("provider returned plan without id")
	}
	return resp.ID, nil
}

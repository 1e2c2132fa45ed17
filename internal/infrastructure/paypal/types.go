package paypal

import (
	"encoding/json"
	"time"
)

// SubscriptionResource is the authoritative subscription snapshot
// returned by GET /v1/billing/subscriptions/{id}.
type SubscriptionResource struct {
	ID          string      `json:"id"`
	Status      string      `json:"status"`
	PlanID      string      `json:"plan_id"`
	StartTime   *time.Time  `json:"start_time"`
	BillingInfo BillingInfo `json:"billing_info"`
}

type BillingInfo struct {
	NextBillingTime *time.Time `json:"next_billing_time"`
}

// WebhookHeaders are the transmission headers PayPal attaches to every
// webhook delivery. All five are required for signature verification.
type WebhookHeaders struct {
	TransmissionID   string
	TransmissionTime string
	TransmissionSig  string
	CertURL          string
	AuthAlgo         string
}

// Complete reports whether every verification header is present.
func (h WebhookHeaders) Complete() bool {
	return h.TransmissionID != "" &&
		h.TransmissionTime != "" &&
		h.TransmissionSig != "" &&
		h.CertURL != "" &&
		h.AuthAlgo != ""
}

// CreateSubscriptionResult carries what checkout needs from a newly
// created provider subscription.
type CreateSubscriptionResult struct {
	ID          string
	Status      string
	ApprovalURL string
}

type link struct {
	Href string `json:"href"`
	Rel  string `json:"rel"`
}

type createSubscriptionResponse struct {
	ID     string `json:"id"`
	Status string `json:"status"`
	Links  []link `json:"links"`
}

type verifyWebhookRequest struct {
	TransmissionID   string          `json:"transmission_id"`
	TransmissionTime string          `json:"transmission_time"`
	TransmissionSig  string          `json:"transmission_sig"`
	CertURL          string          `json:"cert_url"`
	AuthAlgo         string          `json:"auth_algo"`
	WebhookID        string          `json:"webhook_id"`
	WebhookEvent     json.RawMessage `json:"webhook_event"`
}

type verifyWebhookResponse struct {
	VerificationStatus string `json:"verification_status"`
}

type createProductRequest struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Type        string `json:"type"`
	Category    string `json:"category,omitempty"`
}

type createProductResponse struct {
	ID string `json:"id"`
}

type billingCycle struct {
	Frequency     frequency     `json:"frequency"`
	TenureType    string        `json:"tenure_type"`
	Sequence      int           `json:"sequence"`
	TotalCycles   int           `json:"total_cycles"`
	PricingScheme pricingScheme `json:"pricing_scheme"`
}

type frequency struct {
	IntervalUnit  string `json:"interval_unit"`
	IntervalCount int    `json:"interval_count"`
}

type pricingScheme struct {
	FixedPrice money `json:"fixed_price"`
}

type money struct {
	Value        string `json:"value"`
	CurrencyCode string `json:"currency_code"`
}

type paymentPreferences struct {
	AutoBillOutstanding     bool   `json:"auto_bill_outstanding"`
	SetupFeeFailureAction   string `json:"setup_fee_failure_action"`
	PaymentFailureThreshold int    `json:"payment_failure_threshold"`
}

type createPlanRequest struct {
	ProductID          string             `json:"product_id"`
	Name               string             `json:"name"`
	Description        string             `json:"description,omitempty"`
	Status             string             `json:"status"`
	BillingCycles      []billingCycle     `json:"billing_cycles"`
	PaymentPreferences paymentPreferences `json:"payment_preferences"`
}

type createPlanResponse struct {
	ID string `json:"id"`
}

type applicationContext struct {
	BrandName          string `json:"brand_name,omitempty"`
	UserAction         string `json:"user_action"`
	ShippingPreference string `json:"shipping_preference"`
	ReturnURL          string `json:"return_url"`
	CancelURL          string `json:"cancel_url"`
}

type createSubscriptionRequest struct {
	PlanID             string             `json:"plan_id"`
	CustomID           string             `json:"custom_id,omitempty"`
	ApplicationContext applicationContext `json:"application_context"`
}

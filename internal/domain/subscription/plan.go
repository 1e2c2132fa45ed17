// Package subscription holds the plan and subscription aggregates and
// the provider-status reconciliation rules.
package subscription

import (
	"fmt"
	"strings"
	"time"

	vo "github.com/munziralyafie/subscription-billing-api/internal/domain/subscription/valueobjects"
)

type PlanStatus string

const (
	PlanStatusActive   PlanStatus = "active"
	PlanStatusInactive PlanStatus = "inactive"
)

// Plan represents a purchasable subscription plan. Price is stored in
// minor currency units (cents).
type Plan struct {
	id              uint
	name            string
	description     string
	price           uint64
	currency        string
	billingInterval vo.BillingInterval
	providerPlanID  *string
	status          PlanStatus
	createdAt       time.Time
	updatedAt       time.Time
}

func NewPlan(name, description string, price uint64, currency string, interval vo.BillingInterval) (*Plan, error) {
	if name == "" {
		return nil, fmt.Errorf("plan name is required")
	}
	if currency == "" {
		return nil, fmt.Errorf("currency is required")
	}
	if !interval.IsValid() {
		return nil, fmt.Errorf("invalid billing interval: %s", interval)
	}

	now := time.Now().UTC()
	return &Plan{
		name:            name,
		description:     description,
		price:           price,
		currency:        strings.ToUpper(currency),
		billingInterval: interval,
		status:          PlanStatusActive,
		createdAt:       now,
		updatedAt:       now,
	}, nil
}

// ReconstructPlan rebuilds a plan from persistence.
func ReconstructPlan(
	id uint,
	name, description string,
	price uint64,
	currency string,
	interval vo.BillingInterval,
	providerPlanID *string,
	status PlanStatus,
	createdAt, updatedAt time.Time,
) (*Plan, error) {
	if id == 0 {
		return nil, fmt.Errorf("plan ID cannot be zero")
	}
	return &Plan{
		id:              id,
		name:            name,
		description:     description,
		price:           price,
		currency:        currency,
		billingInterval: interval,
		providerPlanID:  providerPlanID,
		status:          status,
		createdAt:       createdAt,
		updatedAt:       updatedAt,
	}, nil
}

func (p *Plan) ID() uint { return p.id }

func (p *Plan) Name() string { return p.name }

func (p *Plan) Description() string { return p.description }

func (p *Plan) Price() uint64 { return p.price }

func (p *Plan) Currency() string { return p.currency }

func (p *Plan) BillingInterval() vo.BillingInterval { return p.billingInterval }

func (p *Plan) ProviderPlanID() *string { return p.providerPlanID }

func (p *Plan) Status() PlanStatus { return p.status }

func (p *Plan) CreatedAt() time.Time { return p.createdAt }

func (p *Plan) UpdatedAt() time.Time { return p.updatedAt }

func (p *Plan) IsActive() bool { return p.status == PlanStatusActive }

// IsFree reports whether checkout can skip the billing provider. A plan
// is free when it costs nothing or is literally named "free".
func (p *Plan) IsFree() bool {
	return p.price == 0 || strings.EqualFold(p.name, "free")
}

// PriceDecimal renders the price the way the provider wants it on the
// wire, e.g. 1999 -> "19.99".
func (p *Plan) PriceDecimal() string {
	return fmt.Sprintf("%d.%02d", p.price/100, p.price%100)
}

// LinkProviderPlan records the provider-side plan id after the plan has
// been created at the billing provider.
func (p *Plan) LinkProviderPlan(providerPlanID string) error {
	if providerPlanID == "" {
		return fmt.Errorf("provider plan ID is required")
	}
	p.providerPlanID = &providerPlanID
	p.updatedAt = time.Now().UTC()
	return nil
}

// Update applies admin edits to the local plan definition.
func (p *Plan) Update(name, description string, price uint64, interval vo.BillingInterval) error {
	if name == "" {
		return fmt.Errorf("plan name is required")
	}
	if !interval.IsValid() {
		return fmt.Errorf("invalid billing interval: %s", interval)
	}
	p.name = name
	p.description = description
	p.price = price
	p.billingInterval = interval
	p.updatedAt = time.Now().UTC()
	return nil
}

// Deactivate soft-retires the plan so new checkouts stop seeing it.
// Existing subscriptions keep running.
func (p *Plan) Deactivate() {
	p.status = PlanStatusInactive
	p.updatedAt = time.Now().UTC()
}

func (p *Plan) Activate() {
	p.status = PlanStatusActive
	p.updatedAt = time.Now().UTC()
}

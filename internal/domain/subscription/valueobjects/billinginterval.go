package valueobjects

import (
	"fmt"
	"strings"
)

// BillingInterval is the cadence a plan bills on.
type BillingInterval string

const (
	IntervalMonthly BillingInterval = "monthly"
	IntervalYearly  BillingInterval = "yearly"
)

func (b BillingInterval) String() string {
	return string(b)
}

func (b BillingInterval) IsValid() bool {
	return b == IntervalMonthly || b == IntervalYearly
}

// ProviderUnit maps the interval to the unit string the billing provider
// expects in plan definitions.
func (b BillingInterval) ProviderUnit() string {
	if b == IntervalYearly {
		return "YEAR"
	}
	return "MONTH"
}

// ParseBillingInterval validates and normalizes an interval string.
func ParseBillingInterval(s string) (BillingInterval, error) {
	b := BillingInterval(strings.ToLower(strings.TrimSpace(s)))
	if !b.IsValid() {
		return "", fmt.Errorf("invalid billing interval: %s", s)
	}
	return b, nil
}

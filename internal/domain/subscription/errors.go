package subscription

import "errors"

var (
	ErrPlanNotFound          = errors.New("plan not found")
	ErrSubscriptionNotFound  = errors.New("subscription not found")
	ErrDuplicateWebhookEvent = errors.New("webhook event already recorded")
)

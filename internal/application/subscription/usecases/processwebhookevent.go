package usecases

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/munziralyafie/subscription-billing-api/internal/domain/subscription"
	"github.com/munziralyafie/subscription-billing-api/internal/shared/biztime"
	apperrors "github.com/munziralyafie/subscription-billing-api/internal/shared/errors"
	"github.com/munziralyafie/subscription-billing-api/internal/shared/logger"
)

// subscriptionEventPrefix marks event types whose resource IS the
// subscription, so resource.id can stand in for the subscription id.
const subscriptionEventPrefix = "BILLING.SUBSCRIPTION."

type ProcessWebhookEventCommand struct {
	Signature WebhookSignature
	RawBody   []byte
}

type ProcessWebhookEventResult struct {
	// AlreadyProcessed means the event id was found in the ledger; the
	// delivery is acknowledged without touching any state.
	AlreadyProcessed bool

	// Ignored means no subscription id could be resolved from the event.
	// The delivery is acknowledged but nothing is recorded, so a future
	// redelivery gets another chance.
	Ignored bool

	EventType              string
	ProviderSubscriptionID string
	Status                 string
	FoundSubscription      bool
}

// webhookEnvelope is the slice of the provider event payload the
// pipeline needs. Everything else is carried opaquely into the ledger.
type webhookEnvelope struct {
	ID           string          `json:"id"`
	EventType    string          `json:"event_type"`
	Resource     webhookResource `json:"resource"`
}

type webhookResource struct {
	ID                 string `json:"id"`
	BillingAgreementID string `json:"billing_agreement_id"`
}

// ProcessWebhookEventUseCase is the webhook reconciliation pipeline:
// verify the delivery, short-circuit duplicates via the ledger, fetch
// the authoritative subscription state, reconcile it into the local
// row, and record the event. The ledger insert comes last so a crash
// mid-pipeline leads to a retried event, never a lost one.
type ProcessWebhookEventUseCase struct {
	gateway          BillingGateway
	subscriptionRepo subscription.Repository
	eventRepo        subscription.WebhookEventRepository
	logger           logger.Interface
}

func NewProcessWebhookEventUseCase(
	gateway BillingGateway,
	subscriptionRepo subscription.Repository,
	eventRepo subscription.WebhookEventRepository,
	logger logger.Interface,
) *ProcessWebhookEventUseCase {
	return &ProcessWebhookEventUseCase{
		gateway:          gateway,
		subscriptionRepo: subscriptionRepo,
		eventRepo:        eventRepo,
		logger:           logger,
	}
}

func (uc *ProcessWebhookEventUseCase) Execute(ctx context.Context, cmd ProcessWebhookEventCommand) (*ProcessWebhookEventResult, error) {
	if !cmd.Signature.Complete() {
		return nil, apperrors.NewValidationError("missing webhook transmission headers")
	}

	verified, err := uc.gateway.VerifyWebhookSignature(ctx, cmd.Signature, cmd.RawBody)
	if err != nil {
		uc.logger.Errorw("webhook signature verification failed", "error", err)
		return nil, apperrors.NewUpstreamError("failed to verify webhook signature")
	}
	if !verified {
		uc.logger.Warnw("rejected webhook with invalid signature")
		return nil, apperrors.NewValidationError("webhook signature verification failed")
	}

	var event webhookEnvelope
	if err := json.Unmarshal(cmd.RawBody, &event); err != nil {
		return nil, apperrors.NewValidationError("malformed webhook payload")
	}
	if event.ID == "" {
		return nil, apperrors.NewValidationError("webhook event has no id")
	}

	processed, err := uc.eventRepo.Exists(ctx, event.ID)
	if err != nil {
		uc.logger.Errorw("failed to check webhook ledger", "error", err, "event_id", event.ID)
		return nil, fmt.Errorf("failed to check webhook ledger: %w", err)
	}
	if processed {
		uc.logger.Infow("webhook event already processed", "event_id", event.ID)
		return &ProcessWebhookEventResult{
			AlreadyProcessed: true,
			EventType:        event.EventType,
		}, nil
	}

	providerSubscriptionID := resolveSubscriptionID(event)
	if providerSubscriptionID == "" {
		// Nothing to reconcile. Acknowledge without a ledger write so a
		// later, resolvable redelivery still goes through.
		uc.logger.Infow("ignoring webhook event without subscription reference",
			"event_id", event.ID,
			"event_type", event.EventType,
		)
		return &ProcessWebhookEventResult{
			Ignored:   true,
			EventType: event.EventType,
		}, nil
	}

	snapshot, err := uc.gateway.GetSubscription(ctx, providerSubscriptionID)
	if err != nil {
		uc.logger.Errorw("failed to fetch provider subscription",
			"error", err,
			"event_id", event.ID,
			"provider_subscription_id", providerSubscriptionID,
		)
		return nil, apperrors.NewUpstreamError("failed to fetch subscription from provider")
	}

	now := biztime.NowUTC()
	update := subscription.ReconcileProviderStatus(snapshot.Status, snapshot.StartTime, snapshot.NextBillingTime, now)

	found, err := uc.subscriptionRepo.ApplyStatusUpdate(ctx, providerSubscriptionID, update)
	if err != nil {
		uc.logger.Errorw("failed to apply status update",
			"error", err,
			"event_id", event.ID,
			"provider_subscription_id", providerSubscriptionID,
		)
		return nil, fmt.Errorf("failed to apply status update: %w", err)
	}
	if !found {
		// Provider knows a subscription we have no row for. Still record
		// the event as processed; the checkout that creates the row will
		// fetch fresh state anyway.
		uc.logger.Warnw("webhook for unknown subscription",
			"event_id", event.ID,
			"provider_subscription_id", providerSubscriptionID,
		)
	}

	ledgerEntry, err := subscription.NewWebhookEvent(event.ID, event.EventType, cmd.RawBody, now)
	if err != nil {
		return nil, fmt.Errorf("failed to build ledger entry: %w", err)
	}
	if err := uc.eventRepo.Record(ctx, ledgerEntry); err != nil {
		if errors.Is(err, subscription.ErrDuplicateWebhookEvent) {
			// A concurrent delivery won the insert race. The update was
			// idempotent, so acknowledging as already-processed is safe.
			uc.logger.Infow("concurrent webhook delivery detected", "event_id", event.ID)
			return &ProcessWebhookEventResult{
				AlreadyProcessed: true,
				EventType:        event.EventType,
			}, nil
		}
		uc.logger.Errorw("failed to record webhook event", "error", err, "event_id", event.ID)
		return nil, fmt.Errorf("failed to record webhook event: %w", err)
	}

	uc.logger.Infow("webhook event processed",
		"event_id", event.ID,
		"event_type", event.EventType,
		"provider_subscription_id", providerSubscriptionID,
		"status", update.Status.String(),
		"found_subscription", found,
	)
	return &ProcessWebhookEventResult{
		EventType:              event.EventType,
		ProviderSubscriptionID: providerSubscriptionID,
		Status:                 update.Status.String(),
		FoundSubscription:      found,
	}, nil
}

// resolveSubscriptionID extracts the provider subscription id from an
// event. Payment events reference it as billing_agreement_id; on
// subscription lifecycle events the resource itself is the
// subscription.
func resolveSubscriptionID(event webhookEnvelope) string {
	if event.Resource.BillingAgreementID != "" {
		return event.Resource.BillingAgreementID
	}
	if strings.HasPrefix(event.EventType, subscriptionEventPrefix) {
		return event.Resource.ID
	}
	return ""
}

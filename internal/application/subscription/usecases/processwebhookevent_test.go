package usecases

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/munziralyafie/subscription-billing-api/internal/domain/subscription"
	vo "github.com/munziralyafie/subscription-billing-api/internal/domain/subscription/valueobjects"
	apperrors "github.com/munziralyafie/subscription-billing-api/internal/shared/errors"
	"github.com/munziralyafie/subscription-billing-api/internal/shared/logger"
)

func validSignature() WebhookSignature {
	return WebhookSignature{
		TransmissionID:   "tid",
		TransmissionTime: "2025-06-01T12:00:00Z",
		TransmissionSig:  "sig",
		CertURL:          "https://api.paypal.com/cert",
		AuthAlgo:         "SHA256withRSA",
	}
}

func newWebhookUseCase(gateway *mockBillingGateway, subRepo *mockSubscriptionRepository, eventRepo *mockWebhookEventRepository) *ProcessWebhookEventUseCase {
	return NewProcessWebhookEventUseCase(gateway, subRepo, eventRepo, logger.NewLogger())
}

func TestProcessWebhookEvent_MissingHeaders(t *testing.T) {
	var verifyCalled, ledgerTouched bool
	gateway := &mockBillingGateway{
		VerifyWebhookSignatureFunc: func(ctx context.Context, sig WebhookSignature, rawBody []byte) (bool, error) {
			verifyCalled = true
			return true, nil
		},
	}
	eventRepo := &mockWebhookEventRepository{
		RecordFunc: func(ctx context.Context, e *subscription.WebhookEvent) error {
			ledgerTouched = true
			return nil
		},
	}
	uc := newWebhookUseCase(gateway, &mockSubscriptionRepository{}, eventRepo)

	_, err := uc.Execute(context.Background(), ProcessWebhookEventCommand{
		Signature: WebhookSignature{TransmissionID: "tid"},
		RawBody:   []byte(`{"id":"WH-1"}`),
	})

	require.Error(t, err)
	appErr := apperrors.GetAppError(err)
	require.NotNil(t, appErr)
	assert.Equal(t, apperrors.ErrorTypeValidation, appErr.Type)
	assert.False(t, verifyCalled, "incomplete headers must fail before calling the provider")
	assert.False(t, ledgerTouched)
}

func TestProcessWebhookEvent_FailedVerification(t *testing.T) {
	var stateTouched bool
	gateway := &mockBillingGateway{
		VerifyWebhookSignatureFunc: func(ctx context.Context, sig WebhookSignature, rawBody []byte) (bool, error) {
			return false, nil
		},
	}
	subRepo := &mockSubscriptionRepository{
		ApplyStatusUpdateFunc: func(ctx context.Context, id string, update subscription.StatusUpdate) (bool, error) {
			stateTouched = true
			return true, nil
		},
	}
	uc := newWebhookUseCase(gateway, subRepo, &mockWebhookEventRepository{})

	_, err := uc.Execute(context.Background(), ProcessWebhookEventCommand{
		Signature: validSignature(),
		RawBody:   []byte(`{"id":"WH-1","event_type":"BILLING.SUBSCRIPTION.ACTIVATED","resource":{"id":"I-1"}}`),
	})

	require.Error(t, err)
	appErr := apperrors.GetAppError(err)
	require.NotNil(t, appErr)
	assert.Equal(t, apperrors.ErrorTypeValidation, appErr.Type)
	assert.False(t, stateTouched)
}

func TestProcessWebhookEvent_MissingEventID(t *testing.T) {
	uc := newWebhookUseCase(&mockBillingGateway{}, &mockSubscriptionRepository{}, &mockWebhookEventRepository{})

	_, err := uc.Execute(context.Background(), ProcessWebhookEventCommand{
		Signature: validSignature(),
		RawBody:   []byte(`{"event_type":"BILLING.SUBSCRIPTION.ACTIVATED","resource":{"id":"I-1"}}`),
	})

	require.Error(t, err)
	appErr := apperrors.GetAppError(err)
	require.NotNil(t, appErr)
	assert.Equal(t, apperrors.ErrorTypeValidation, appErr.Type)
}

func TestProcessWebhookEvent_AlreadyProcessed(t *testing.T) {
	var fetched bool
	gateway := &mockBillingGateway{
		GetSubscriptionFunc: func(ctx context.Context, id string) (*ProviderSubscription, error) {
			fetched = true
			return nil, nil
		},
	}
	eventRepo := &mockWebhookEventRepository{
		ExistsFunc: func(ctx context.Context, eventID string) (bool, error) {
			return eventID == "WH-1", nil
		},
	}
	uc := newWebhookUseCase(gateway, &mockSubscriptionRepository{}, eventRepo)

	result, err := uc.Execute(context.Background(), ProcessWebhookEventCommand{
		Signature: validSignature(),
		RawBody:   []byte(`{"id":"WH-1","event_type":"BILLING.SUBSCRIPTION.ACTIVATED","resource":{"id":"I-1"}}`),
	})

	require.NoError(t, err)
	assert.True(t, result.AlreadyProcessed)
	assert.False(t, fetched, "duplicate delivery must not refetch provider state")
}

func TestProcessWebhookEvent_SubscriptionIDResolution(t *testing.T) {
	tests := []struct {
		name    string
		rawBody string
		wantID  string
	}{
		{
			name:    "billing_agreement_id takes priority",
			rawBody: `{"id":"WH-1","event_type":"PAYMENT.SALE.COMPLETED","resource":{"id":"SALE-9","billing_agreement_id":"I-AGREEMENT"}}`,
			wantID:  "I-AGREEMENT",
		},
		{
			name:    "subscription event uses resource id",
			rawBody: `{"id":"WH-2","event_type":"BILLING.SUBSCRIPTION.CANCELLED","resource":{"id":"I-RESOURCE"}}`,
			wantID:  "I-RESOURCE",
		},
		{
			name:    "billing_agreement_id wins even on subscription events",
			rawBody: `{"id":"WH-3","event_type":"BILLING.SUBSCRIPTION.ACTIVATED","resource":{"id":"I-RES","billing_agreement_id":"I-BA"}}`,
			wantID:  "I-BA",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var fetchedID string
			gateway := &mockBillingGateway{
				GetSubscriptionFunc: func(ctx context.Context, id string) (*ProviderSubscription, error) {
					fetchedID = id
					return &ProviderSubscription{ID: id, Status: "ACTIVE"}, nil
				},
			}
			subRepo := &mockSubscriptionRepository{
				ApplyStatusUpdateFunc: func(ctx context.Context, id string, update subscription.StatusUpdate) (bool, error) {
					return true, nil
				},
			}
			uc := newWebhookUseCase(gateway, subRepo, &mockWebhookEventRepository{})

			result, err := uc.Execute(context.Background(), ProcessWebhookEventCommand{
				Signature: validSignature(),
				RawBody:   []byte(tt.rawBody),
			})

			require.NoError(t, err)
			assert.Equal(t, tt.wantID, fetchedID)
			assert.Equal(t, tt.wantID, result.ProviderSubscriptionID)
		})
	}
}

func TestProcessWebhookEvent_UnresolvableEventIgnoredWithoutLedgerWrite(t *testing.T) {
	var recorded bool
	eventRepo := &mockWebhookEventRepository{
		RecordFunc: func(ctx context.Context, e *subscription.WebhookEvent) error {
			recorded = true
			return nil
		},
	}
	uc := newWebhookUseCase(&mockBillingGateway{}, &mockSubscriptionRepository{}, eventRepo)

	result, err := uc.Execute(context.Background(), ProcessWebhookEventCommand{
		Signature: validSignature(),
		RawBody:   []byte(`{"id":"WH-1","event_type":"PAYMENT.SALE.COMPLETED","resource":{"id":"SALE-9"}}`),
	})

	require.NoError(t, err)
	assert.True(t, result.Ignored)
	assert.False(t, recorded, "ignored events must stay out of the ledger so redeliveries get retried")
}

func TestProcessWebhookEvent_ActivationUsesProviderStartTime(t *testing.T) {
	start := time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC)
	next := time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC)

	gateway := &mockBillingGateway{
		GetSubscriptionFunc: func(ctx context.Context, id string) (*ProviderSubscription, error) {
			return &ProviderSubscription{ID: id, Status: "ACTIVE", StartTime: &start, NextBillingTime: &next}, nil
		},
	}
	var applied subscription.StatusUpdate
	subRepo := &mockSubscriptionRepository{
		ApplyStatusUpdateFunc: func(ctx context.Context, id string, update subscription.StatusUpdate) (bool, error) {
			applied = update
			return true, nil
		},
	}
	eventRepo := &mockWebhookEventRepository{}
	uc := newWebhookUseCase(gateway, subRepo, eventRepo)

	result, err := uc.Execute(context.Background(), ProcessWebhookEventCommand{
		Signature: validSignature(),
		RawBody:   []byte(`{"id":"WH-1","event_type":"BILLING.SUBSCRIPTION.ACTIVATED","resource":{"id":"I-1"}}`),
	})

	require.NoError(t, err)
	assert.Equal(t, vo.StatusActive, applied.Status)
	require.NotNil(t, applied.PeriodStart, "activation must carry a period start")
	assert.Equal(t, start, *applied.PeriodStart, "period start must be the provider start time, not the processing time")
	require.NotNil(t, applied.PeriodEnd)
	assert.Equal(t, next, *applied.PeriodEnd)
	assert.Nil(t, applied.CancelledAt)

	assert.Equal(t, "active", result.Status)
	assert.True(t, result.FoundSubscription)
}

func TestProcessWebhookEvent_ReconcilesFromAuthoritativeFetch(t *testing.T) {
	next := time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC)

	gateway := &mockBillingGateway{
		GetSubscriptionFunc: func(ctx context.Context, id string) (*ProviderSubscription, error) {
			// The event claims ACTIVATED but the authoritative state is
			// cancelled; the fetch wins.
			return &ProviderSubscription{ID: id, Status: "CANCELLED", NextBillingTime: &next}, nil
		},
	}

	var applied subscription.StatusUpdate
	subRepo := &mockSubscriptionRepository{
		ApplyStatusUpdateFunc: func(ctx context.Context, id string, update subscription.StatusUpdate) (bool, error) {
			applied = update
			return true, nil
		},
	}
	var recordedEvent *subscription.WebhookEvent
	eventRepo := &mockWebhookEventRepository{
		RecordFunc: func(ctx context.Context, e *subscription.WebhookEvent) error {
			recordedEvent = e
			return nil
		},
	}
	uc := newWebhookUseCase(gateway, subRepo, eventRepo)

	result, err := uc.Execute(context.Background(), ProcessWebhookEventCommand{
		Signature: validSignature(),
		RawBody:   []byte(`{"id":"WH-1","event_type":"BILLING.SUBSCRIPTION.ACTIVATED","resource":{"id":"I-1"}}`),
	})

	require.NoError(t, err)
	assert.Equal(t, vo.StatusCancelled, applied.Status)
	require.NotNil(t, applied.CancelledAt)
	require.NotNil(t, applied.PeriodEnd)
	assert.Equal(t, next, *applied.PeriodEnd)

	assert.Equal(t, "cancelled", result.Status)
	assert.True(t, result.FoundSubscription)

	require.NotNil(t, recordedEvent)
	assert.Equal(t, "WH-1", recordedEvent.EventID())
}

func TestProcessWebhookEvent_UnknownSubscriptionStillRecorded(t *testing.T) {
	subRepo := &mockSubscriptionRepository{
		ApplyStatusUpdateFunc: func(ctx context.Context, id string, update subscription.StatusUpdate) (bool, error) {
			return false, nil
		},
	}
	var recorded bool
	eventRepo := &mockWebhookEventRepository{
		RecordFunc: func(ctx context.Context, e *subscription.WebhookEvent) error {
			recorded = true
			return nil
		},
	}
	uc := newWebhookUseCase(&mockBillingGateway{}, subRepo, eventRepo)

	result, err := uc.Execute(context.Background(), ProcessWebhookEventCommand{
		Signature: validSignature(),
		RawBody:   []byte(`{"id":"WH-1","event_type":"BILLING.SUBSCRIPTION.ACTIVATED","resource":{"id":"I-GHOST"}}`),
	})

	require.NoError(t, err)
	assert.False(t, result.FoundSubscription)
	assert.True(t, recorded)
}

func TestProcessWebhookEvent_FetchFailureIsUpstreamError(t *testing.T) {
	gateway := &mockBillingGateway{
		GetSubscriptionFunc: func(ctx context.Context, id string) (*ProviderSubscription, error) {
			return nil, assert.AnError
		},
	}
	var recorded bool
	eventRepo := &mockWebhookEventRepository{
		RecordFunc: func(ctx context.Context, e *subscription.WebhookEvent) error {
			recorded = true
			return nil
		},
	}
	uc := newWebhookUseCase(gateway, &mockSubscriptionRepository{}, eventRepo)

	_, err := uc.Execute(context.Background(), ProcessWebhookEventCommand{
		Signature: validSignature(),
		RawBody:   []byte(`{"id":"WH-1","event_type":"BILLING.SUBSCRIPTION.ACTIVATED","resource":{"id":"I-1"}}`),
	})

	require.Error(t, err)
	appErr := apperrors.GetAppError(err)
	require.NotNil(t, appErr)
	assert.Equal(t, apperrors.ErrorTypeUpstream, appErr.Type)
	assert.False(t, recorded, "a failed fetch must leave the ledger untouched for retry")
}

func TestProcessWebhookEvent_ConcurrentDuplicateInsertIsSuccess(t *testing.T) {
	subRepo := &mockSubscriptionRepository{
		ApplyStatusUpdateFunc: func(ctx context.Context, id string, update subscription.StatusUpdate) (bool, error) {
			return true, nil
		},
	}
	eventRepo := &mockWebhookEventRepository{
		RecordFunc: func(ctx context.Context, e *subscription.WebhookEvent) error {
			return subscription.ErrDuplicateWebhookEvent
		},
	}
	uc := newWebhookUseCase(&mockBillingGateway{}, subRepo, eventRepo)

	result, err := uc.Execute(context.Background(), ProcessWebhookEventCommand{
		Signature: validSignature(),
		RawBody:   []byte(`{"id":"WH-1","event_type":"BILLING.SUBSCRIPTION.ACTIVATED","resource":{"id":"I-1"}}`),
	})

	require.NoError(t, err)
	assert.True(t, result.AlreadyProcessed)
}

package handlers

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/munziralyafie/subscription-billing-api/internal/application/subscription/usecases"
	"github.com/munziralyafie/subscription-billing-api/internal/shared/constants"
	"github.com/munziralyafie/subscription-billing-api/internal/shared/logger"
	"github.com/munziralyafie/subscription-billing-api/internal/shared/utils"
)

// maxWebhookBody caps webhook payload reads. PayPal events are a few KB.
const maxWebhookBody = 1 << 20

type WebhookHandler struct {
	processWebhookUC *usecases.ProcessWebhookEventUseCase
	logger           logger.Interface
}

func NewWebhookHandler(processWebhookUC *usecases.ProcessWebhookEventUseCase, logger logger.Interface) *WebhookHandler {
	return &WebhookHandler{
		processWebhookUC: processWebhookUC,
		logger:           logger,
	}
}

// HandlePayPalWebhook receives provider event deliveries. The raw body
// is passed through untouched because signature verification covers the
// exact bytes sent.
func (h *WebhookHandler) HandlePayPalWebhook(c *gin.Context) {
	rawBody, err := io.ReadAll(io.LimitReader(c.Request.Body, maxWebhookBody))
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "failed to read request body")
		return
	}

	result, err := h.processWebhookUC.Execute(c.Request.Context(), usecases.ProcessWebhookEventCommand{
		Signature: usecases.WebhookSignature{
			TransmissionID:   c.GetHeader(constants.HeaderPayPalTransmissionID),
			TransmissionTime: c.GetHeader(constants.HeaderPayPalTransmissionTime),
			TransmissionSig:  c.GetHeader(constants.HeaderPayPalTransmissionSig),
			CertURL:          c.GetHeader(constants.HeaderPayPalCertURL),
			AuthAlgo:         c.GetHeader(constants.HeaderPayPalAuthAlgo),
		},
		RawBody: rawBody,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	switch {
	case result.AlreadyProcessed:
		utils.SuccessResponse(c, http.StatusOK, "event already processed", gin.H{
			"event_type": result.EventType,
		})
	case result.Ignored:
		utils.SuccessResponse(c, http.StatusOK, "event ignored", gin.H{
			"event_type": result.EventType,
		})
	default:
		utils.SuccessResponse(c, http.StatusOK, "event processed", gin.H{
			"event_type":             result.EventType,
			"paypal_subscription_id": result.ProviderSubscriptionID,
			"status":                 result.Status,
			"found_subscription":     result.FoundSubscription,
		})
	}
}

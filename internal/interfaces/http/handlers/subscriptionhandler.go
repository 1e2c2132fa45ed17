package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/munziralyafie/subscription-billing-api/internal/application/subscription/usecases"
	"github.com/munziralyafie/subscription-billing-api/internal/interfaces/http/middleware"
	"github.com/munziralyafie/subscription-billing-api/internal/shared/biztime"
	"github.com/munziralyafie/subscription-billing-api/internal/shared/logger"
	"github.com/munziralyafie/subscription-billing-api/internal/shared/utils"
)

type SubscriptionHandler struct {
	checkoutUC        *usecases.CheckoutUseCase
	getSubscriptionUC *usecases.GetSubscriptionUseCase
	reportUC          *usecases.SubscriptionReportUseCase
	logger            logger.Interface
}

func NewSubscriptionHandler(
	checkoutUC *usecases.CheckoutUseCase,
	getSubscriptionUC *usecases.GetSubscriptionUseCase,
	reportUC *usecases.SubscriptionReportUseCase,
	logger logger.Interface,
) *SubscriptionHandler {
	return &SubscriptionHandler{
		checkoutUC:        checkoutUC,
		getSubscriptionUC: getSubscriptionUC,
		reportUC:          reportUC,
		logger:            logger,
	}
}

type CheckoutRequest struct {
	PlanID uint `json:"plan_id" binding:"required"`
}

type CheckoutResponse struct {
	Free                 bool   `json:"free"`
	Status               string `json:"status"`
	PaypalSubscriptionID string `json:"paypal_subscription_id,omitempty"`
	ApprovalURL          string `json:"approval_url,omitempty"`
}

type SubscriptionResponse struct {
	PlanID               uint    `json:"plan_id"`
	PlanName             string  `json:"plan_name,omitempty"`
	Status               string  `json:"status"`
	PaypalSubscriptionID *string `json:"paypal_subscription_id,omitempty"`
	PeriodStart          *string `json:"period_start,omitempty"`
	PeriodEnd            *string `json:"period_end,omitempty"`
	CancelledAt          *string `json:"cancelled_at,omitempty"`
}

type ReportResponse struct {
	PlanName        string  `json:"plan_name"`
	Status          string  `json:"status"`
	BillingInterval string  `json:"billing_interval,omitempty"`
	PeriodStart     *string `json:"period_start,omitempty"`
	PeriodEnd       *string `json:"period_end,omitempty"`
	DaysRemaining   *int    `json:"days_remaining,omitempty"`
}

func formatTime(t *time.Time) *string {
	if t == nil {
		return nil
	}
	formatted := biztime.FormatAPITime(*t)
	return &formatted
}

func (h *SubscriptionHandler) Checkout(c *gin.Context) {
	userID, ok := middleware.UserIDFromContext(c)
	if !ok {
		utils.ErrorResponse(c, http.StatusUnauthorized, "authentication required")
		return
	}

	var req CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, utils.BindingErrorMessage(err))
		return
	}

	result, err := h.checkoutUC.Execute(c.Request.Context(), usecases.CheckoutCommand{
		UserID: userID,
		PlanID: req.PlanID,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "checkout started", CheckoutResponse{
		Free:                 result.Free,
		Status:               result.Status,
		PaypalSubscriptionID: result.ProviderSubscriptionID,
		ApprovalURL:          result.ApprovalURL,
	})
}

func (h *SubscriptionHandler) GetCurrent(c *gin.Context) {
	userID, ok := middleware.UserIDFromContext(c)
	if !ok {
		utils.ErrorResponse(c, http.StatusUnauthorized, "authentication required")
		return
	}

	result, err := h.getSubscriptionUC.Execute(c.Request.Context(), userID)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	response := SubscriptionResponse{
		PlanID:               result.Subscription.PlanID(),
		Status:               result.Subscription.Status().String(),
		PaypalSubscriptionID: result.Subscription.ProviderSubscriptionID(),
		PeriodStart:          formatTime(result.Subscription.PeriodStart()),
		PeriodEnd:            formatTime(result.Subscription.PeriodEnd()),
		CancelledAt:          formatTime(result.Subscription.CancelledAt()),
	}
	if result.Plan != nil {
		response.PlanName = result.Plan.Name()
	}

	utils.SuccessResponse(c, http.StatusOK, "", response)
}

func (h *SubscriptionHandler) Report(c *gin.Context) {
	userID, ok := middleware.UserIDFromContext(c)
	if !ok {
		utils.ErrorResponse(c, http.StatusUnauthorized, "authentication required")
		return
	}

	report, err := h.reportUC.Execute(c.Request.Context(), userID)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", ReportResponse{
		PlanName:        report.PlanName,
		Status:          report.Status,
		BillingInterval: report.BillingInterval,
		PeriodStart:     formatTime(report.PeriodStart),
		PeriodEnd:       formatTime(report.PeriodEnd),
		DaysRemaining:   report.DaysRemaining,
	})
}

package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/munziralyafie/subscription-billing-api/internal/application/subscription/usecases"
	"github.com/munziralyafie/subscription-billing-api/internal/domain/subscription"
	"github.com/munziralyafie/subscription-billing-api/internal/shared/errors"
	"github.com/munziralyafie/subscription-billing-api/internal/shared/logger"
	"github.com/munziralyafie/subscription-billing-api/internal/shared/utils"
)

type PlanHandler struct {
	createPlanUC     *usecases.CreatePlanUseCase
	updatePlanUC     *usecases.UpdatePlanUseCase
	listPlansUC      *usecases.ListPlansUseCase
	deactivatePlanUC *usecases.DeactivatePlanUseCase
	logger           logger.Interface
}

func NewPlanHandler(
	createPlanUC *usecases.CreatePlanUseCase,
	updatePlanUC *usecases.UpdatePlanUseCase,
	listPlansUC *usecases.ListPlansUseCase,
	deactivatePlanUC *usecases.DeactivatePlanUseCase,
	logger logger.Interface,
) *PlanHandler {
	return &PlanHandler{
		createPlanUC:     createPlanUC,
		updatePlanUC:     updatePlanUC,
		listPlansUC:      listPlansUC,
		deactivatePlanUC: deactivatePlanUC,
		logger:           logger,
	}
}

type CreatePlanRequest struct {
	Name            string `json:"name" binding:"required"`
	Description     string `json:"description"`
	Price           uint64 `json:"price"`
	Currency        string `json:"currency" binding:"required,len=3"`
	BillingInterval string `json:"billing_interval" binding:"required,oneof=monthly yearly"`
}

type UpdatePlanRequest struct {
	Name            string `json:"name" binding:"required"`
	Description     string `json:"description"`
	Price           uint64 `json:"price"`
	BillingInterval string `json:"billing_interval" binding:"required,oneof=monthly yearly"`
}

type PlanResponse struct {
	ID              uint    `json:"id"`
	Name            string  `json:"name"`
	Description     string  `json:"description,omitempty"`
	Price           uint64  `json:"price"`
	Currency        string  `json:"currency"`
	BillingInterval string  `json:"billing_interval"`
	Status          string  `json:"status"`
	ProviderPlanID  *string `json:"paypal_plan_id,omitempty"`
}

func toPlanResponse(p *subscription.Plan) PlanResponse {
	return PlanResponse{
		ID:              p.ID(),
		Name:            p.Name(),
		Description:     p.Description(),
		Price:           p.Price(),
		Currency:        p.Currency(),
		BillingInterval: p.BillingInterval().String(),
		Status:          string(p.Status()),
		ProviderPlanID:  p.ProviderPlanID(),
	}
}

// List returns active plans only. Retired plans stay hidden from the
// public catalog.
func (h *PlanHandler) List(c *gin.Context) {
	h.list(c, false)
}

// ListAll includes deactivated plans. Admin endpoints only.
func (h *PlanHandler) ListAll(c *gin.Context) {
	h.list(c, true)
}

func (h *PlanHandler) list(c *gin.Context, includeInactive bool) {
	plans, err := h.listPlansUC.Execute(c.Request.Context(), includeInactive)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	responses := make([]PlanResponse, 0, len(plans))
	for _, p := range plans {
		responses = append(responses, toPlanResponse(p))
	}
	utils.SuccessResponse(c, http.StatusOK, "", responses)
}

func (h *PlanHandler) Create(c *gin.Context) {
	var req CreatePlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for create plan", "error", err)
		utils.ErrorResponse(c, http.StatusBadRequest, utils.BindingErrorMessage(err))
		return
	}

	plan, err := h.createPlanUC.Execute(c.Request.Context(), usecases.CreatePlanCommand{
		Name:            req.Name,
		Description:     req.Description,
		Price:           req.Price,
		Currency:        req.Currency,
		BillingInterval: req.BillingInterval,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.CreatedResponse(c, toPlanResponse(plan), "plan created")
}

func (h *PlanHandler) Update(c *gin.Context) {
	planID, err := parsePlanID(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req UpdatePlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, utils.BindingErrorMessage(err))
		return
	}

	plan, err := h.updatePlanUC.Execute(c.Request.Context(), usecases.UpdatePlanCommand{
		PlanID:          planID,
		Name:            req.Name,
		Description:     req.Description,
		Price:           req.Price,
		BillingInterval: req.BillingInterval,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "plan updated", toPlanResponse(plan))
}

func (h *PlanHandler) Deactivate(c *gin.Context) {
	planID, err := parsePlanID(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	if err := h.deactivatePlanUC.Execute(c.Request.Context(), usecases.DeactivatePlanCommand{PlanID: planID}); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "plan deactivated", nil)
}

func parsePlanID(c *gin.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil || id == 0 {
		return 0, errors.NewValidationError("invalid plan id")
	}
	return uint(id), nil
}

package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/munziralyafie/subscription-billing-api/internal/application/subscription/usecases"
	"github.com/munziralyafie/subscription-billing-api/internal/shared/logger"
	"github.com/munziralyafie/subscription-billing-api/internal/shared/utils"
)

// PayPalHandler exposes one-shot provider setup operations for admins.
type PayPalHandler struct {
	initProductUC *usecases.InitProductUseCase
	logger        logger.Interface
}

func NewPayPalHandler(initProductUC *usecases.InitProductUseCase, logger logger.Interface) *PayPalHandler {
	return &PayPalHandler{
		initProductUC: initProductUC,
		logger:        logger,
	}
}

type InitProductRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
}

type InitProductResponse struct {
	ProviderProductID string `json:"paypal_product_id"`
}

// InitProduct creates the provider catalog product that billing plans
// attach to. The returned id must be copied into configuration before
// paid plans can be created.
func (h *PayPalHandler) InitProduct(c *gin.Context) {
	var req InitProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for product init", "error", err)
		utils.ErrorResponse(c, http.StatusBadRequest, utils.BindingErrorMessage(err))
		return
	}

	result, err := h.initProductUC.Execute(c.Request.Context(), usecases.InitProductCommand{
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.CreatedResponse(c, InitProductResponse{ProviderProductID: result.ProviderProductID}, "provider product created")
}

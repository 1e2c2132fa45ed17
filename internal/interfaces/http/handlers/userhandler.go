package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/munziralyafie/subscription-billing-api/internal/application/user/usecases"
	"github.com/munziralyafie/subscription-billing-api/internal/shared/logger"
	"github.com/munziralyafie/subscription-billing-api/internal/shared/utils"
)

type UserHandler struct {
	createUserUC *usecases.CreateUserUseCase
	logger       logger.Interface
}

func NewUserHandler(createUserUC *usecases.CreateUserUseCase, logger logger.Interface) *UserHandler {
	return &UserHandler{
		createUserUC: createUserUC,
		logger:       logger,
	}
}

type CreateUserRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Name     string `json:"name" binding:"required"`
	Password string `json:"password" binding:"required,min=8"`
	Role     string `json:"role" binding:"required,oneof=admin user"`
}

// Create is the admin path for provisioning accounts, including other
// admins.
func (h *UserHandler) Create(c *gin.Context) {
	var req CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, utils.BindingErrorMessage(err))
		return
	}

	created, err := h.createUserUC.Execute(c.Request.Context(), usecases.CreateUserCommand{
		Email:    req.Email,
		Name:     req.Name,
		Password: req.Password,
		Role:     req.Role,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.CreatedResponse(c, toUserResponse(created), "user created")
}

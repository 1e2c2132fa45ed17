package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/munziralyafie/subscription-billing-api/internal/application/user/usecases"
	"github.com/munziralyafie/subscription-billing-api/internal/domain/user"
	"github.com/munziralyafie/subscription-billing-api/internal/interfaces/http/middleware"
	sharedConfig "github.com/munziralyafie/subscription-billing-api/internal/shared/config"
	"github.com/munziralyafie/subscription-billing-api/internal/shared/logger"
	"github.com/munziralyafie/subscription-billing-api/internal/shared/utils"
)

type AuthHandler struct {
	registerUC    *usecases.RegisterUserUseCase
	loginUC       *usecases.LoginUserUseCase
	refreshUC     *usecases.RefreshTokenUseCase
	logoutUC      *usecases.LogoutUserUseCase
	userRepo      user.Repository
	cookieConfig  sharedConfig.CookieConfig
	refreshMaxAge int
	logger        logger.Interface
}

func NewAuthHandler(
	registerUC *usecases.RegisterUserUseCase,
	loginUC *usecases.LoginUserUseCase,
	refreshUC *usecases.RefreshTokenUseCase,
	logoutUC *usecases.LogoutUserUseCase,
	userRepo user.Repository,
	cookieConfig sharedConfig.CookieConfig,
	refreshExpDays int,
	logger logger.Interface,
) *AuthHandler {
	return &AuthHandler{
		registerUC:    registerUC,
		loginUC:       loginUC,
		refreshUC:     refreshUC,
		logoutUC:      logoutUC,
		userRepo:      userRepo,
		cookieConfig:  cookieConfig,
		refreshMaxAge: refreshExpDays * 24 * int(time.Hour/time.Second),
		logger:        logger,
	}
}

type RegisterRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Name     string `json:"name" binding:"required"`
	Password string `json:"password" binding:"required,min=8"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

type UserResponse struct {
	ID    uint   `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
	Role  string `json:"role"`
}

type TokenResponse struct {
	AccessToken string `json:"access_token"`
	ExpiresIn   int64  `json:"expires_in"`
}

func toUserResponse(u *user.User) UserResponse {
	return UserResponse{
		ID:    u.ID(),
		Email: u.Email().String(),
		Name:  u.Name(),
		Role:  u.Role().String(),
	}
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, utils.BindingErrorMessage(err))
		return
	}

	result, err := h.registerUC.Execute(c.Request.Context(), usecases.RegisterUserCommand{
		Email:    req.Email,
		Name:     req.Name,
		Password: req.Password,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SetRefreshTokenCookie(c, h.cookieConfig, result.Tokens.RefreshToken, h.refreshMaxAge)
	utils.CreatedResponse(c, gin.H{
		"user": toUserResponse(result.User),
		"tokens": TokenResponse{
			AccessToken: result.Tokens.AccessToken,
			ExpiresIn:   result.Tokens.ExpiresIn,
		},
	}, "registration successful")
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, utils.BindingErrorMessage(err))
		return
	}

	result, err := h.loginUC.Execute(c.Request.Context(), usecases.LoginUserCommand{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SetRefreshTokenCookie(c, h.cookieConfig, result.Tokens.RefreshToken, h.refreshMaxAge)
	utils.SuccessResponse(c, http.StatusOK, "login successful", gin.H{
		"user": toUserResponse(result.User),
		"tokens": TokenResponse{
			AccessToken: result.Tokens.AccessToken,
			ExpiresIn:   result.Tokens.ExpiresIn,
		},
	})
}

// Refresh rotates the session. The token comes from the HttpOnly cookie
// set at login; a JSON body works for non-browser clients.
func (h *AuthHandler) Refresh(c *gin.Context) {
	refreshToken := utils.GetRefreshTokenFromCookie(c)
	if refreshToken == "" {
		var req RefreshRequest
		if err := c.ShouldBindJSON(&req); err == nil {
			refreshToken = req.RefreshToken
		}
	}

	result, err := h.refreshUC.Execute(c.Request.Context(), usecases.RefreshTokenCommand{
		RefreshToken: refreshToken,
	})
	if err != nil {
		utils.ClearRefreshTokenCookie(c, h.cookieConfig)
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SetRefreshTokenCookie(c, h.cookieConfig, result.Tokens.RefreshToken, h.refreshMaxAge)
	utils.SuccessResponse(c, http.StatusOK, "token refreshed", TokenResponse{
		AccessToken: result.Tokens.AccessToken,
		ExpiresIn:   result.Tokens.ExpiresIn,
	})
}

func (h *AuthHandler) Logout(c *gin.Context) {
	userID, ok := middleware.UserIDFromContext(c)
	if !ok {
		utils.ErrorResponse(c, http.StatusUnauthorized, "authentication required")
		return
	}

	if err := h.logoutUC.Execute(c.Request.Context(), usecases.LogoutUserCommand{UserID: userID}); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.ClearRefreshTokenCookie(c, h.cookieConfig)
	utils.SuccessResponse(c, http.StatusOK, "logout successful", nil)
}

func (h *AuthHandler) Me(c *gin.Context) {
	userID, ok := middleware.UserIDFromContext(c)
	if !ok {
		utils.ErrorResponse(c, http.StatusUnauthorized, "authentication required")
		return
	}

	u, err := h.userRepo.FindByID(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			utils.ErrorResponse(c, http.StatusNotFound, "user not found")
			return
		}
		h.logger.Errorw("failed to load current user", "error", err, "user_id", userID)
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", toUserResponse(u))
}

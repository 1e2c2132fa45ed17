package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/munziralyafie/subscription-billing-api/internal/domain/subscription"
	"github.com/munziralyafie/subscription-billing-api/internal/shared/logger"
	"github.com/munziralyafie/subscription-billing-api/internal/shared/utils"
)

type SubscriberMiddleware struct {
	subscriptionRepo subscription.Repository
	logger           logger.Interface
}

func NewSubscriberMiddleware(subscriptionRepo subscription.Repository, logger logger.Interface) *SubscriberMiddleware {
	return &SubscriberMiddleware{
		subscriptionRepo: subscriptionRepo,
		logger:           logger,
	}
}

// RequireActiveSubscription gates a route on the caller holding an
// active subscription. Must run after RequireAuth.
func (m *SubscriberMiddleware) RequireActiveSubscription() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := UserIDFromContext(c)
		if !ok {
			utils.ErrorResponse(c, http.StatusUnauthorized, "authentication required")
			c.Abort()
			return
		}

		sub, err := m.subscriptionRepo.FindByUserID(c.Request.Context(), userID)
		if err != nil {
			if errors.Is(err, subscription.ErrSubscriptionNotFound) {
				utils.ErrorResponse(c, http.StatusForbidden, "active subscription required")
				c.Abort()
				return
			}
			m.logger.Errorw("failed to load subscription for guard", "error", err, "user_id", userID)
			utils.ErrorResponse(c, http.StatusInternalServerError, "failed to check subscription")
			c.Abort()
			return
		}

		if !sub.IsActive() {
			utils.ErrorResponse(c, http.StatusForbidden, "active subscription required")
			c.Abort()
			return
		}

		c.Next()
	}
}

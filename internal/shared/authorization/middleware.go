package authorization

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/munziralyafie/subscription-billing-api/internal/shared/constants"
)

// RequireAdmin aborts the request unless the authenticated user carries
// the admin role. It must run after the authentication middleware.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		role := c.GetString(constants.ContextKeyUserRole)
		if role != string(RoleAdmin) {
			c.JSON(http.StatusForbidden, gin.H{
				"error": "admin access required",
			})
			c.Abort()
			return
		}
		c.Next()
	}
}

// CanAccessResourceByOwnerID reports whether a user may touch a resource
// owned by resourceOwnerID. Admins can touch everything.
func CanAccessResourceByOwnerID(userID uint, role UserRole, resourceOwnerID uint) bool {
	if role.IsAdmin() {
		return true
	}
	return userID == resourceOwnerID
}

package utils

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/munziralyafie/subscription-billing-api/internal/shared/config"
)

const RefreshTokenCookie = "refresh_token"

// SetRefreshTokenCookie stores the refresh token as an HttpOnly strict
// cookie so browser scripts cannot read it.
func SetRefreshTokenCookie(c *gin.Context, cookieConfig config.CookieConfig, refreshToken string, maxAge int) {
	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie(
		RefreshTokenCookie,
		refreshToken,
		maxAge,
		cookieConfig.Path,
		cookieConfig.Domain,
		cookieConfig.Secure,
		true, // HttpOnly
	)
}

// ClearRefreshTokenCookie removes the refresh token cookie.
func ClearRefreshTokenCookie(c *gin.Context, cookieConfig config.CookieConfig) {
	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie(
		RefreshTokenCookie,
		"",
		-1,
		cookieConfig.Path,
		cookieConfig.Domain,
		cookieConfig.Secure,
		true, // HttpOnly
	)
}

// GetRefreshTokenFromCookie retrieves the refresh token cookie, falling
// back to the request body handled by the caller when absent.
func GetRefreshTokenFromCookie(c *gin.Context) string {
	token, err := c.Cookie(RefreshTokenCookie)
	if err != nil {
		return ""
	}
	return token
}

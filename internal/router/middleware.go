package router

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/velora-shop/storefront-api/pkg/global"
)

// RequireUser extracts the identity provider's stable user id, which the
// edge proxy injects after session verification. Handlers behind this
// middleware can trust c.GetString("userId") to be non-empty.
func RequireUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetHeader("X-User-Id")
		if userID == "" {
			c.JSON(http.StatusUnauthorized, global.ErrorResponse("missing user identity", []global.ValidationError{
				{Field: "X-User-Id", Message: "user identity header is required", Code: "required"},
			}))
			c.Abort()
			return
		}

		c.Set("userId", userID)
		c.Next()
	}
}

package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"leadcrm/internal/modules/auth"
)

// Auth resolves the bearer token through the identity provider and stores
// the request's session context (user_id, user_email, access_token) on the
// gin context. Requests without a valid session are rejected.
func Auth(provider auth.Provider) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c)
		if token == "" {
			abortUnauthorized(c, "Missing or malformed Authorization header")
			return
		}

		identity, err := provider.CurrentUser(c.Request.Context(), token)
		if err != nil {
			abortUnauthorized(c, "Invalid or expired token")
			return
		}

		c.Set("user_id", identity.ID)
		c.Set("user_email", identity.Email)
		c.Set("access_token", token)

		c.Next()
	}
}

func bearerToken(c *gin.Context) string {
	h := c.GetHeader("Authorization")
	if !strings.HasPrefix(h, "Bearer ") {
		return ""
	}
	return strings.TrimSpace(strings.TrimPrefix(h, "Bearer "))
}

func abortUnauthorized(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
		"success": false,
		"error": gin.H{
			"code":    "UNAUTHORIZED",
			"message": message,
		},
	})
}

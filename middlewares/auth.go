package middlewares

import (
	"errors"
	"net/http"
	"strings"

	"roga/utils"

	"github.com/gin-gonic/gin"
)

// AuthMiddleware verifies the Bearer JWT and sets user_id in the context.
// With required false, requests without a token pass through anonymously,
// but a token that is present must still be valid.
func AuthMiddleware(required bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			if required {
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Missing Authorization token"})
				return
			}
			c.Next()
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid Authorization token format"})
			return
		}

		claims, err := utils.ParseJWTToken(parts[1])
		if err != nil {
			msg := "Invalid or expired token"
			if errors.Is(err, utils.ErrNoJWTSecret) {
				msg = "Authentication is not configured"
			}
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": msg})
			return
		}

		c.Set("user_id", claims.UserID)
		if claims.Email != "" {
			c.Set("userEmail", claims.Email)
		}
		c.Next()
	}
}

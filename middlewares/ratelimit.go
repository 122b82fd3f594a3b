package middlewares

import (
	"net/http"

	"roga/internal/ratelimit"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// RateLimit rejects requests over the limiter's budget with 429. Callers are
// keyed by user_id when authenticated, else by client IP. Redis errors fail
// open.
func RateLimit(limiter *ratelimit.Limiter, log *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !limiter.Enabled() {
			c.Next()
			return
		}

		key := "ip:" + c.ClientIP()
		if userID := c.GetString("user_id"); userID != "" {
			key = "user:" + userID
		}

		allowed, err := limiter.Allow(c.Request.Context(), key)
		if err != nil {
			log.WithError(err).WithField("key", key).Warn("rate limiter unavailable")
			c.Next()
			return
		}
		if !allowed {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "Rate limit exceeded, try again shortly"})
			return
		}
		c.Next()
	}
}

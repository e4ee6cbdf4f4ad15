package middleware

import (
	"fmt"
	"log"
	"net/http"

	"office-backend/pkg/ratelimit"

	"github.com/gin-gonic/gin"
)

// AuthRateLimit throttles the public auth endpoints per client IP. When the
// limiter backend is unreachable the request goes through: locking everyone
// out of login because redis blipped would be worse than a brute-force
// window.
func AuthRateLimit(limiter *ratelimit.Limiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := c.ClientIP()

		allowed, retryAfter, err := limiter.Allow(c.Request.Context(), key)
		if err != nil {
			log.Printf("Rate limiter unavailable: %v", err)
			c.Next()
			return
		}

		if !allowed {
			c.Header("Retry-After", fmt.Sprintf("%d", int(retryAfter.Seconds())))
			c.JSON(http.StatusTooManyRequests, gin.H{
				"error": "Trop de tentatives, reessayez plus tard",
			})
			c.Abort()
			return
		}

		c.Next()
	}
}

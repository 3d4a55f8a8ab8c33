package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// ConfigGuard answers 503 on every request while required settings are missing.
// With nothing missing it is a no-op.
func ConfigGuard(missing []string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if len(missing) == 0 {
			c.Next()
			return
		}
		c.AbortWithStatusJSON(http.StatusServiceUnavailable, gin.H{
			"error":   "configuration error",
			"missing": missing,
		})
	}
}

package middleware

import (
	"log/slog"
	"net/http"

	"github.com/SscSPs/dental_clinic_app/internal/core/domain"
	"github.com/gin-gonic/gin"
)

// RequireRoles lets through only callers whose profile role is one of roles.
// It must run after AuthMiddleware.
func RequireRoles(roles ...domain.Role) gin.HandlerFunc {
	allowed := make(map[domain.Role]struct{}, len(roles))
	for _, r := range roles {
		allowed[r] = struct{}{}
	}
	return func(c *gin.Context) {
		actor, ok := GetActorFromContext(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		if _, ok := allowed[actor.Role]; !ok {
			GetLoggerFromCtx(c.Request.Context()).Warn("Role not allowed for route",
				slog.String("route", c.FullPath()))
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Insufficient permissions"})
			return
		}
		c.Next()
	}
}

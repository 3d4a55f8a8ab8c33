package middleware

import (
	"context"

	"github.com/SscSPs/dental_clinic_app/internal/core/domain"
	"github.com/gin-gonic/gin"
)

const (
	// userIDKey is the key used to store the authenticated user's ID.
	userIDKey  = contextKey("userID")
	sessionKey = contextKey("session")
)

// WithSession stores the authenticated session in ctx.
func WithSession(ctx context.Context, session *domain.Session) context.Context {
	ctx = context.WithValue(ctx, userIDKey, session.Profile.UserID)
	return context.WithValue(ctx, sessionKey, session)
}

// GetSessionFromContext retrieves the authenticated session from the request context.
func GetSessionFromContext(c *gin.Context) (*domain.Session, bool) {
	session, ok := c.Request.Context().Value(sessionKey).(*domain.Session)
	return session, ok && session != nil
}

// GetUserIDFromContext retrieves the authenticated user ID from the request context.
// It returns the user ID and a boolean indicating if it was found.
func GetUserIDFromContext(c *gin.Context) (string, bool) {
	userID, ok := c.Request.Context().Value(userIDKey).(string)
	return userID, ok && userID != ""
}

// GetActorFromContext returns who is performing the request.
func GetActorFromContext(c *gin.Context) (domain.Actor, bool) {
	session, ok := GetSessionFromContext(c)
	if !ok {
		return domain.Actor{}, false
	}
	return session.Actor(), true
}

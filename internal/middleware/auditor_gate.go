package middleware

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/SscSPs/dental_clinic_app/internal/apperrors"
	"github.com/SscSPs/dental_clinic_app/internal/core/domain"
	portssvc "github.com/SscSPs/dental_clinic_app/internal/core/ports/services"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// AuditorGate enforces audit-session rules for auditors: an active session is
// required on every request, only reads are allowed, and each request is
// written to the audit log. Other roles pass through untouched.
func AuditorGate(gate portssvc.AuditGateSvc) gin.HandlerFunc {
	return func(c *gin.Context) {
		actor, ok := GetActorFromContext(c)
		if !ok || actor.Role != domain.RoleAuditor {
			c.Next()
			return
		}
		logger := GetLoggerFromCtx(c.Request.Context())

		session, err := gate.ActiveSession(c.Request.Context(), actor.UserID)
		if err != nil {
			if errors.Is(err, apperrors.ErrAuditSessionExpired) || errors.Is(err, apperrors.ErrNotFound) {
				logger.Warn("Auditor without active audit session")
				c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Audit session expired"})
				return
			}
			logger.Error("Failed to check audit session", slog.String("error", err.Error()))
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Failed to check audit session"})
			return
		}

		if c.Request.Method != http.MethodGet && c.Request.Method != http.MethodHead {
			logger.Warn("Auditor attempted a write", slog.String("audit_session_id", session.AuditSessionID))
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Audit sessions are read-only"})
			return
		}

		c.Next()

		entry := domain.AuditLog{
			AuditLogID:     uuid.NewString(),
			AuditSessionID: session.AuditSessionID,
			UserID:         actor.UserID,
			Method:         c.Request.Method,
			Path:           c.Request.URL.RequestURI(),
			Status:         c.Writer.Status(),
			CreatedAt:      time.Now().UTC(),
		}
		// Detached from the request context, which may already be cancelled by a closed stream.
		if err := gate.RecordAccess(context.WithoutCancel(c.Request.Context()), entry); err != nil {
			logger.Error("Failed to record audit access", slog.String("error", err.Error()))
		}
	}
}

package handlers

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/SscSPs/dental_clinic_app/internal/core/domain"
	portssvc "github.com/SscSPs/dental_clinic_app/internal/core/ports/services"
	"github.com/SscSPs/dental_clinic_app/internal/dto"
	"github.com/SscSPs/dental_clinic_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// auditHandler handles audit session administration.
type auditHandler struct {
	auditService portssvc.AuditSvcFacade
}

func newAuditHandler(as portssvc.AuditSvcFacade) *auditHandler {
	return &auditHandler{auditService: as}
}

// registerAuditRoutes registers routes related to audit sessions.
func registerAuditRoutes(rg *gin.RouterGroup, as portssvc.AuditSvcFacade) {
	h := newAuditHandler(as)
	adminOnly := middleware.RequireRoles(domain.RoleAdmin)

	sessions := rg.Group("/audit-sessions")
	{
		sessions.POST("", adminOnly, h.grantAuditSession)
		sessions.GET("", middleware.RequireRoles(domain.RoleAdmin, domain.RoleAuditor), h.listAuditSessions)
		sessions.POST("/:id/revoke", adminOnly, h.revokeAuditSession)
		sessions.GET("/:id/logs", adminOnly, h.listAuditLogs)
	}
}

func toAuditSessionResponses(sessions []domain.AuditSession, now time.Time) []dto.AuditSessionResponse {
	res := make([]dto.AuditSessionResponse, len(sessions))
	for i := range sessions {
		res[i] = dto.ToAuditSessionResponse(&sessions[i], now)
	}
	return res
}

// grantAuditSession godoc
// @Summary Grant an audit session
// @Description Opens a time-boxed, read-only window for an auditor profile.
// @Tags audit
// @Accept json
// @Produce json
// @Param request body dto.GrantAuditSessionRequest true "Grant"
// @Success 201 {object} dto.AuditSessionResponse
// @Failure 400 {object} ErrorResponse "Invalid input"
// @Failure 403 {object} ErrorResponse "Insufficient permissions"
// @Failure 404 {object} ErrorResponse "Auditor not found"
// @Failure 500 {object} ErrorResponse "Failed to grant audit session"
// @Security BearerAuth
// @Router /audit-sessions [post]
func (h *auditHandler) grantAuditSession(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	actor, ok := middleware.GetActorFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req dto.GrantAuditSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindingError(c, logger, err)
		return
	}

	session, err := h.auditService.GrantAuditSession(c.Request.Context(), req, actor)
	if err != nil {
		respondError(c, logger, err, "Failed to grant audit session")
		return
	}
	logger.Info("Audit session granted", slog.String("audit_session_id", session.AuditSessionID))
	c.JSON(http.StatusCreated, dto.ToAuditSessionResponse(session, time.Now()))
}

// listAuditSessions godoc
// @Summary List audit sessions
// @Description Admins see every session, optionally filtered by auditor. Auditors see their own.
// @Tags audit
// @Produce json
// @Param auditorID query string false "Auditor filter"
// @Success 200 {array} dto.AuditSessionResponse
// @Failure 403 {object} ErrorResponse "Insufficient permissions"
// @Failure 500 {object} ErrorResponse "Failed to list audit sessions"
// @Security BearerAuth
// @Router /audit-sessions [get]
func (h *auditHandler) listAuditSessions(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	actor, ok := middleware.GetActorFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var params dto.ListAuditSessionsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		bindingError(c, logger, err)
		return
	}

	sessions, err := h.auditService.ListAuditSessions(c.Request.Context(), params.AuditorID, actor)
	if err != nil {
		respondError(c, logger, err, "Failed to list audit sessions")
		return
	}
	c.JSON(http.StatusOK, toAuditSessionResponses(sessions, time.Now()))
}

// revokeAuditSession godoc
// @Summary Revoke an audit session
// @Tags audit
// @Produce json
// @Param id path string true "Audit session ID"
// @Success 200 {object} dto.AuditSessionResponse
// @Failure 403 {object} ErrorResponse "Insufficient permissions"
// @Failure 404 {object} ErrorResponse "Audit session not found"
// @Failure 409 {object} ErrorResponse "Already revoked"
// @Failure 500 {object} ErrorResponse "Failed to revoke audit session"
// @Security BearerAuth
// @Router /audit-sessions/{id}/revoke [post]
func (h *auditHandler) revokeAuditSession(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	actor, ok := middleware.GetActorFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	id, ok := uuidParam(c, logger, "id", "Audit session not found")
	if !ok {
		return
	}
	session, err := h.auditService.RevokeAuditSession(c.Request.Context(), id, actor)
	if err != nil {
		respondError(c, logger, err, "Failed to revoke audit session")
		return
	}
	c.JSON(http.StatusOK, dto.ToAuditSessionResponse(session, time.Now()))
}

// listAuditLogs godoc
// @Summary List requests made during an audit session
// @Tags audit
// @Produce json
// @Param id path string true "Audit session ID"
// @Param limit query int false "Maximum entries" default(100)
// @Success 200 {array} domain.AuditLog
// @Failure 403 {object} ErrorResponse "Insufficient permissions"
// @Failure 404 {object} ErrorResponse "Audit session not found"
// @Failure 500 {object} ErrorResponse "Failed to list audit logs"
// @Security BearerAuth
// @Router /audit-sessions/{id}/logs [get]
func (h *auditHandler) listAuditLogs(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	actor, ok := middleware.GetActorFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var params dto.ListAuditLogsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		bindingError(c, logger, err)
		return
	}

	id, ok := uuidParam(c, logger, "id", "Audit session not found")
	if !ok {
		return
	}
	logs, err := h.auditService.ListAuditLogs(c.Request.Context(), id, params.Limit, actor)
	if err != nil {
		respondError(c, logger, err, "Failed to list audit logs")
		return
	}
	c.JSON(http.StatusOK, logs)
}

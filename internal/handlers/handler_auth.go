package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/SscSPs/dental_clinic_app/internal/apperrors"
	"github.com/SscSPs/dental_clinic_app/internal/core/domain"
	portssvc "github.com/SscSPs/dental_clinic_app/internal/core/ports/services"
	"github.com/SscSPs/dental_clinic_app/internal/dto"
	"github.com/SscSPs/dental_clinic_app/internal/middleware"
	"github.com/gin-gonic/gin"
	"github.com/ulule/limiter/v3"
)

// authHandler handles sign-up, sign-in, session and sign-out requests.
type authHandler struct {
	authService  portssvc.AuthSvcFacade
	auditService portssvc.AuditGateSvc
}

func newAuthHandler(as portssvc.AuthSvcFacade, audit portssvc.AuditGateSvc) *authHandler {
	return &authHandler{authService: as, auditService: audit}
}

// registerAuthRoutes sets up the public authentication routes. Sign-in is rate limited per client IP.
func registerAuthRoutes(rg *gin.RouterGroup, loginLimiter *limiter.Limiter, services *portssvc.ServiceContainer) {
	h := newAuthHandler(services.Auth, services.Audit)

	auth := rg.Group("/auth")
	{
		auth.POST("/sign-up", h.signUp)
		if loginLimiter != nil {
			auth.POST("/sign-in", middleware.RateLimit(loginLimiter), h.signIn)
		} else {
			auth.POST("/sign-in", h.signIn)
		}
	}
}

// registerSessionRoutes sets up the routes that need a valid token but stay open to auditors
// whose audit session has lapsed, so they can still see why and sign out.
func registerSessionRoutes(rg *gin.RouterGroup, services *portssvc.ServiceContainer) {
	h := newAuthHandler(services.Auth, services.Audit)

	auth := rg.Group("/auth")
	{
		auth.GET("/session", h.getSession)
		auth.POST("/sign-out", h.signOut)
	}
}

// signUp godoc
// @Summary Create a staff account
// @Description Registers a profile with email and password. The first profile ever created becomes admin; later ones start as receptionist.
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.SignUpRequest true "Sign-up details"
// @Success 201 {object} dto.ProfileResponse
// @Failure 400 {object} ErrorResponse "Invalid input"
// @Failure 409 {object} ErrorResponse "Email already registered"
// @Failure 500 {object} ErrorResponse "Failed to sign up"
// @Router /auth/sign-up [post]
func (h *authHandler) signUp(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.SignUpRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindingError(c, logger, err)
		return
	}

	profile, err := h.authService.SignUp(c.Request.Context(), req)
	if err != nil {
		respondError(c, logger, err, "Failed to sign up")
		return
	}

	logger.Info("Profile signed up", slog.String("user_id", profile.UserID), slog.String("role", string(profile.Role)))
	c.JSON(http.StatusCreated, dto.ToProfileResponse(profile))
}

// signIn godoc
// @Summary Sign in
// @Description Checks email and password and returns a bearer token.
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.SignInRequest true "Credentials"
// @Success 200 {object} dto.SignInResponse
// @Failure 400 {object} ErrorResponse "Invalid input"
// @Failure 401 {object} ErrorResponse "Invalid email or password"
// @Failure 429 {object} ErrorResponse "Too many requests"
// @Failure 500 {object} ErrorResponse "Failed to sign in"
// @Router /auth/sign-in [post]
func (h *authHandler) signIn(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.SignInRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindingError(c, logger, err)
		return
	}

	resp, err := h.authService.SignIn(c.Request.Context(), req)
	if err != nil {
		respondError(c, logger, err, "Failed to sign in")
		return
	}

	logger.Info("Signed in", slog.String("user_id", resp.Profile.UserID))
	c.JSON(http.StatusOK, resp)
}

// getSession godoc
// @Summary Current session
// @Description Returns the caller's profile, token expiry and, for auditors, the active audit session.
// @Tags auth
// @Produce json
// @Success 200 {object} dto.SessionResponse
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 500 {object} ErrorResponse "Failed to load session"
// @Security BearerAuth
// @Router /auth/session [get]
func (h *authHandler) getSession(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	session, ok := middleware.GetSessionFromContext(c)
	if !ok {
		logger.Error("Session not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	resp := dto.SessionResponse{
		Profile:   dto.ToProfileResponse(&session.Profile),
		ExpiresAt: session.ExpiresAt,
	}
	if session.Profile.Role == domain.RoleAuditor {
		auditSession, err := h.auditService.ActiveSession(c.Request.Context(), session.Profile.UserID)
		switch {
		case err == nil:
			s := dto.ToAuditSessionResponse(auditSession, time.Now())
			resp.AuditSession = &s
		case errors.Is(err, apperrors.ErrAuditSessionExpired):
			// No active session: the auditor still sees their profile.
		default:
			respondError(c, logger, err, "Failed to load session")
			return
		}
	}

	c.JSON(http.StatusOK, resp)
}

// signOut godoc
// @Summary Sign out
// @Description Revokes the bearer token used for this request.
// @Tags auth
// @Success 204 "Signed out"
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 500 {object} ErrorResponse "Failed to sign out"
// @Security BearerAuth
// @Router /auth/sign-out [post]
func (h *authHandler) signOut(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	session, ok := middleware.GetSessionFromContext(c)
	if !ok {
		logger.Error("Session not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	if err := h.authService.SignOut(c.Request.Context(), *session); err != nil {
		respondError(c, logger, err, "Failed to sign out")
		return
	}
	c.Status(http.StatusNoContent)
}

package handlers

import (
	"log/slog"
	"net/http"

	"github.com/SscSPs/dental_clinic_app/internal/core/domain"
	portssvc "github.com/SscSPs/dental_clinic_app/internal/core/ports/services"
	"github.com/SscSPs/dental_clinic_app/internal/dto"
	"github.com/SscSPs/dental_clinic_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// profileHandler handles staff profile administration.
type profileHandler struct {
	profileService portssvc.ProfileSvcFacade
}

func newProfileHandler(ps portssvc.ProfileSvcFacade) *profileHandler {
	return &profileHandler{profileService: ps}
}

// registerProfileRoutes registers routes related to staff profiles.
func registerProfileRoutes(rg *gin.RouterGroup, ps portssvc.ProfileSvcFacade) {
	h := newProfileHandler(ps)
	adminOnly := middleware.RequireRoles(domain.RoleAdmin)

	profiles := rg.Group("/profiles")
	{
		profiles.GET("", middleware.RequireRoles(domain.RoleAdmin, domain.RoleAuditor), h.listProfiles)
		profiles.GET("/:id", h.getProfile)
		profiles.PUT("/:id/role", adminOnly, h.updateProfileRole)
		profiles.PUT("/:id/active", adminOnly, h.updateProfileActive)
	}
}

// listProfiles godoc
// @Summary List staff profiles
// @Tags profiles
// @Produce json
// @Param limit query int false "Page size" default(50)
// @Param offset query int false "Offset" default(0)
// @Success 200 {object} dto.ListProfilesResponse
// @Failure 400 {object} ErrorResponse "Invalid query"
// @Failure 403 {object} ErrorResponse "Insufficient permissions"
// @Failure 500 {object} ErrorResponse "Failed to list profiles"
// @Security BearerAuth
// @Router /profiles [get]
func (h *profileHandler) listProfiles(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	actor, ok := middleware.GetActorFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var params dto.ListProfilesParams
	if err := c.ShouldBindQuery(&params); err != nil {
		bindingError(c, logger, err)
		return
	}

	profiles, err := h.profileService.ListProfiles(c.Request.Context(), params.Limit, params.Offset, actor)
	if err != nil {
		respondError(c, logger, err, "Failed to list profiles")
		return
	}
	c.JSON(http.StatusOK, dto.ToListProfilesResponse(profiles))
}

// getProfile godoc
// @Summary Get a staff profile
// @Description Staff can read their own profile; admins and auditors can read any.
// @Tags profiles
// @Produce json
// @Param id path string true "User ID"
// @Success 200 {object} dto.ProfileResponse
// @Failure 403 {object} ErrorResponse "Insufficient permissions"
// @Failure 404 {object} ErrorResponse "Profile not found"
// @Failure 500 {object} ErrorResponse "Failed to retrieve profile"
// @Security BearerAuth
// @Router /profiles/{id} [get]
func (h *profileHandler) getProfile(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	actor, ok := middleware.GetActorFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	id, ok := uuidParam(c, logger, "id", "Profile not found")
	if !ok {
		return
	}
	profile, err := h.profileService.GetProfile(c.Request.Context(), id, actor)
	if err != nil {
		respondError(c, logger, err, "Failed to retrieve profile")
		return
	}
	c.JSON(http.StatusOK, dto.ToProfileResponse(profile))
}

// updateProfileRole godoc
// @Summary Change a staff member's role
// @Tags profiles
// @Accept json
// @Produce json
// @Param id path string true "User ID"
// @Param request body dto.UpdateProfileRoleRequest true "New role"
// @Success 200 {object} dto.ProfileResponse
// @Failure 400 {object} ErrorResponse "Invalid input or own role"
// @Failure 403 {object} ErrorResponse "Insufficient permissions"
// @Failure 404 {object} ErrorResponse "Profile not found"
// @Failure 500 {object} ErrorResponse "Failed to update profile"
// @Security BearerAuth
// @Router /profiles/{id}/role [put]
func (h *profileHandler) updateProfileRole(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	actor, ok := middleware.GetActorFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req dto.UpdateProfileRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindingError(c, logger, err)
		return
	}

	id, ok := uuidParam(c, logger, "id", "Profile not found")
	if !ok {
		return
	}
	profile, err := h.profileService.UpdateProfileRole(c.Request.Context(), id, req.Role, actor)
	if err != nil {
		respondError(c, logger, err, "Failed to update profile")
		return
	}
	logger.Info("Profile role updated", slog.String("target_user_id", profile.UserID), slog.String("role", string(profile.Role)))
	c.JSON(http.StatusOK, dto.ToProfileResponse(profile))
}

// updateProfileActive godoc
// @Summary Enable or disable a staff member
// @Tags profiles
// @Accept json
// @Produce json
// @Param id path string true "User ID"
// @Param request body dto.UpdateProfileActiveRequest true "Active flag"
// @Success 200 {object} dto.ProfileResponse
// @Failure 400 {object} ErrorResponse "Invalid input"
// @Failure 403 {object} ErrorResponse "Insufficient permissions"
// @Failure 404 {object} ErrorResponse "Profile not found"
// @Failure 500 {object} ErrorResponse "Failed to update profile"
// @Security BearerAuth
// @Router /profiles/{id}/active [put]
func (h *profileHandler) updateProfileActive(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	actor, ok := middleware.GetActorFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req dto.UpdateProfileActiveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindingError(c, logger, err)
		return
	}

	id, ok := uuidParam(c, logger, "id", "Profile not found")
	if !ok {
		return
	}
	profile, err := h.profileService.SetProfileActive(c.Request.Context(), id, *req.IsActive, actor)
	if err != nil {
		respondError(c, logger, err, "Failed to update profile")
		return
	}
	c.JSON(http.StatusOK, dto.ToProfileResponse(profile))
}

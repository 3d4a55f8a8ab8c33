package handlers

import (
	"net/http"

	"github.com/SscSPs/dental_clinic_app/internal/core/domain"
	portssvc "github.com/SscSPs/dental_clinic_app/internal/core/ports/services"
	"github.com/SscSPs/dental_clinic_app/internal/dto"
	"github.com/SscSPs/dental_clinic_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// reportingHandler handles HTTP requests related to reports.
type reportingHandler struct {
	reportingService portssvc.ReportingService
}

func newReportingHandler(rs portssvc.ReportingService) *reportingHandler {
	return &reportingHandler{reportingService: rs}
}

// registerReportingRoutes registers routes related to reports.
func registerReportingRoutes(rg *gin.RouterGroup, rs portssvc.ReportingService) {
	h := newReportingHandler(rs)

	reports := rg.Group("/reports", middleware.RequireRoles(domain.RoleAdmin, domain.RoleAuditor))
	{
		reports.GET("/cash-summary", h.getCashSummary)
	}
}

// getCashSummary godoc
// @Summary Cash summary
// @Description Per-day totals of approved shifts in an inclusive date range, plus shift counts by status.
// @Tags reports
// @Produce json
// @Param from query string true "First day (YYYY-MM-DD)"
// @Param to query string true "Last day (YYYY-MM-DD)"
// @Success 200 {object} domain.CashSummaryReport
// @Failure 400 {object} ErrorResponse "Invalid query"
// @Failure 403 {object} ErrorResponse "Insufficient permissions"
// @Failure 500 {object} ErrorResponse "Failed to generate cash summary"
// @Security BearerAuth
// @Router /reports/cash-summary [get]
func (h *reportingHandler) getCashSummary(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	actor, ok := middleware.GetActorFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var params dto.CashSummaryParams
	if err := c.ShouldBindQuery(&params); err != nil {
		bindingError(c, logger, err)
		return
	}
	from, errFrom := domain.ParseCivilDate(params.From)
	to, errTo := domain.ParseCivilDate(params.To)
	if errFrom != nil || errTo != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "from and to must be YYYY-MM-DD"})
		return
	}

	report, err := h.reportingService.CashSummary(c.Request.Context(), from, to, actor)
	if err != nil {
		respondError(c, logger, err, "Failed to generate cash summary")
		return
	}
	c.JSON(http.StatusOK, report)
}

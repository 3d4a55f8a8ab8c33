package handlers

import (
	"log/slog"
	"net/http"

	"github.com/SscSPs/dental_clinic_app/internal/core/domain"
	portssvc "github.com/SscSPs/dental_clinic_app/internal/core/ports/services"
	"github.com/SscSPs/dental_clinic_app/internal/dto"
	"github.com/SscSPs/dental_clinic_app/internal/middleware"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// cashRegisterHandler handles HTTP requests related to cash register shifts.
type cashRegisterHandler struct {
	cashRegisterService portssvc.CashRegisterSvcFacade
	tolerance           decimal.Decimal
}

// newCashRegisterHandler creates a new cashRegisterHandler.
func newCashRegisterHandler(crs portssvc.CashRegisterSvcFacade, tolerance decimal.Decimal) *cashRegisterHandler {
	return &cashRegisterHandler{
		cashRegisterService: crs,
		tolerance:           tolerance,
	}
}

// registerCashRegisterRoutes registers routes related to cash registers.
func registerCashRegisterRoutes(rg *gin.RouterGroup, crs portssvc.CashRegisterSvcFacade, tolerance decimal.Decimal) {
	h := newCashRegisterHandler(crs, tolerance)
	review := middleware.RequireRoles(domain.RoleAdmin)

	cashRegisters := rg.Group("/cash-registers")
	{
		cashRegisters.POST("", middleware.RequireRoles(domain.RoleAdmin, domain.RoleReceptionist, domain.RoleCashier), h.submitCashRegister)
		cashRegisters.GET("", h.listCashRegisters)
		cashRegisters.GET("/current", h.getCurrentCashRegister)
		cashRegisters.GET("/events", h.streamEvents)
		cashRegisters.GET("/:id", h.getCashRegister)
		cashRegisters.GET("/:id/expected", middleware.RequireRoles(domain.RoleAdmin, domain.RoleAuditor), h.getExpectedTotal)
		cashRegisters.POST("/:id/approve", review, h.approveCashRegister)
		cashRegisters.POST("/:id/reject", review, h.rejectCashRegister)
		cashRegisters.POST("/:id/void", review, h.voidCashRegister)
	}
}

// submitCashRegister godoc
// @Summary Submit a cash register shift
// @Description Declares the caller's end-of-day figures. Totals and the closing balance are computed by the server. One non-voided shift per cashier and day.
// @Tags cash-registers
// @Accept json
// @Produce json
// @Param request body dto.SubmitCashRegisterRequest true "Shift figures"
// @Success 201 {object} dto.CashRegisterResponse
// @Failure 400 {object} ErrorResponse "Invalid input"
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 403 {object} ErrorResponse "Insufficient permissions"
// @Failure 409 {object} ErrorResponse "A cash register for this day already exists"
// @Failure 500 {object} ErrorResponse "Error submitting cash register"
// @Security BearerAuth
// @Router /cash-registers [post]
func (h *cashRegisterHandler) submitCashRegister(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	actor, ok := middleware.GetActorFromContext(c)
	if !ok {
		logger.Error("Actor not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req dto.SubmitCashRegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindingError(c, logger, err)
		return
	}

	cr, err := h.cashRegisterService.SubmitCashRegister(c.Request.Context(), req, actor)
	if err != nil {
		respondError(c, logger, err, "Error submitting cash register")
		return
	}

	logger.Info("Cash register submitted", slog.String("cash_register_id", cr.CashRegisterID))
	c.JSON(http.StatusCreated, dto.ToCashRegisterResponse(cr, h.tolerance))
}

// listCashRegisters godoc
// @Summary List cash register shifts
// @Description Lists shifts newest first. Cashiers only see their own; admins and auditors see all.
// @Tags cash-registers
// @Produce json
// @Param from query string false "First shift date (YYYY-MM-DD)"
// @Param to query string false "Last shift date (YYYY-MM-DD)"
// @Param status query string false "Status filter" Enums(pending, approved, rejected, voided)
// @Param cashierID query string false "Cashier filter (admins and auditors)"
// @Param limit query int false "Page size" default(20)
// @Param nextToken query string false "Token from the previous page"
// @Success 200 {object} dto.ListCashRegistersResponse
// @Failure 400 {object} ErrorResponse "Invalid query"
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 500 {object} ErrorResponse "Failed to list cash registers"
// @Security BearerAuth
// @Router /cash-registers [get]
func (h *cashRegisterHandler) listCashRegisters(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	actor, ok := middleware.GetActorFromContext(c)
	if !ok {
		logger.Error("Actor not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var params dto.ListCashRegistersParams
	if err := c.ShouldBindQuery(&params); err != nil {
		bindingError(c, logger, err)
		return
	}

	crs, next, err := h.cashRegisterService.ListCashRegisters(c.Request.Context(), params, actor)
	if err != nil {
		respondError(c, logger, err, "Failed to list cash registers")
		return
	}
	c.JSON(http.StatusOK, dto.ToListCashRegistersResponse(crs, next, h.tolerance))
}

// getCurrentCashRegister godoc
// @Summary Today's shift of the caller
// @Description Returns the caller's non-voided shift for the current clinic day.
// @Tags cash-registers
// @Produce json
// @Success 200 {object} dto.CashRegisterResponse
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 404 {object} ErrorResponse "No cash register submitted today"
// @Failure 500 {object} ErrorResponse "Failed to retrieve cash register"
// @Security BearerAuth
// @Router /cash-registers/current [get]
func (h *cashRegisterHandler) getCurrentCashRegister(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	actor, ok := middleware.GetActorFromContext(c)
	if !ok {
		logger.Error("Actor not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	cr, err := h.cashRegisterService.GetCurrentCashRegister(c.Request.Context(), actor)
	if err != nil {
		respondError(c, logger, err, "Failed to retrieve cash register")
		return
	}
	c.JSON(http.StatusOK, dto.ToCashRegisterResponse(cr, h.tolerance))
}

// getCashRegister godoc
// @Summary Get a cash register shift
// @Description Returns a shift with its expenses and withdrawals.
// @Tags cash-registers
// @Produce json
// @Param id path string true "Cash register ID"
// @Success 200 {object} dto.CashRegisterResponse
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 404 {object} ErrorResponse "Cash register not found"
// @Failure 500 {object} ErrorResponse "Failed to retrieve cash register"
// @Security BearerAuth
// @Router /cash-registers/{id} [get]
func (h *cashRegisterHandler) getCashRegister(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	actor, ok := middleware.GetActorFromContext(c)
	if !ok {
		logger.Error("Actor not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	id, ok := uuidParam(c, logger, "id", "Cash register not found")
	if !ok {
		return
	}
	cr, err := h.cashRegisterService.GetCashRegister(c.Request.Context(), id, actor)
	if err != nil {
		respondError(c, logger, err, "Failed to retrieve cash register")
		return
	}
	c.JSON(http.StatusOK, dto.ToCashRegisterResponse(cr, h.tolerance))
}

// getExpectedTotal godoc
// @Summary Payments-based expected total
// @Description Sums completed payments of the shift date and compares them with the declared closing balance.
// @Tags cash-registers
// @Produce json
// @Param id path string true "Cash register ID"
// @Success 200 {object} dto.ExpectedTotalResponse
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 403 {object} ErrorResponse "Insufficient permissions"
// @Failure 404 {object} ErrorResponse "Cash register not found"
// @Failure 500 {object} ErrorResponse "Failed to compute expected total"
// @Security BearerAuth
// @Router /cash-registers/{id}/expected [get]
func (h *cashRegisterHandler) getExpectedTotal(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	actor, ok := middleware.GetActorFromContext(c)
	if !ok {
		logger.Error("Actor not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	id, ok := uuidParam(c, logger, "id", "Cash register not found")
	if !ok {
		return
	}
	cr, err := h.cashRegisterService.GetCashRegister(c.Request.Context(), id, actor)
	if err != nil {
		respondError(c, logger, err, "Failed to compute expected total")
		return
	}
	totals, err := h.cashRegisterService.ComputeExpected(c.Request.Context(), id, actor)
	if err != nil {
		respondError(c, logger, err, "Failed to compute expected total")
		return
	}
	c.JSON(http.StatusOK, dto.ToExpectedTotalResponse(cr, totals, h.tolerance))
}

// approveCashRegister godoc
// @Summary Approve a pending shift
// @Description Records the expected total (typed manually or taken from payments) and the difference with the declared closing balance.
// @Tags cash-registers
// @Accept json
// @Produce json
// @Param id path string true "Cash register ID"
// @Param request body dto.ApproveCashRegisterRequest true "Review"
// @Success 200 {object} dto.CashRegisterResponse
// @Failure 400 {object} ErrorResponse "Invalid input"
// @Failure 403 {object} ErrorResponse "Insufficient permissions"
// @Failure 404 {object} ErrorResponse "Cash register not found"
// @Failure 409 {object} ErrorResponse "Status does not allow approval"
// @Failure 500 {object} ErrorResponse "Failed to approve cash register"
// @Security BearerAuth
// @Router /cash-registers/{id}/approve [post]
func (h *cashRegisterHandler) approveCashRegister(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	actor, ok := middleware.GetActorFromContext(c)
	if !ok {
		logger.Error("Actor not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req dto.ApproveCashRegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindingError(c, logger, err)
		return
	}

	id, ok := uuidParam(c, logger, "id", "Cash register not found")
	if !ok {
		return
	}
	cr, err := h.cashRegisterService.ApproveCashRegister(c.Request.Context(), id, req, actor)
	if err != nil {
		respondError(c, logger, err, "Failed to approve cash register")
		return
	}
	c.JSON(http.StatusOK, dto.ToCashRegisterResponse(cr, h.tolerance))
}

// rejectCashRegister godoc
// @Summary Reject a pending shift
// @Description Marks the shift rejected. Notes are required so the cashier knows what to fix.
// @Tags cash-registers
// @Accept json
// @Produce json
// @Param id path string true "Cash register ID"
// @Param request body dto.RejectCashRegisterRequest true "Review"
// @Success 200 {object} dto.CashRegisterResponse
// @Failure 400 {object} ErrorResponse "Invalid input"
// @Failure 403 {object} ErrorResponse "Insufficient permissions"
// @Failure 404 {object} ErrorResponse "Cash register not found"
// @Failure 409 {object} ErrorResponse "Status does not allow rejection"
// @Failure 500 {object} ErrorResponse "Failed to reject cash register"
// @Security BearerAuth
// @Router /cash-registers/{id}/reject [post]
func (h *cashRegisterHandler) rejectCashRegister(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	actor, ok := middleware.GetActorFromContext(c)
	if !ok {
		logger.Error("Actor not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req dto.RejectCashRegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindingError(c, logger, err)
		return
	}

	id, ok := uuidParam(c, logger, "id", "Cash register not found")
	if !ok {
		return
	}
	cr, err := h.cashRegisterService.RejectCashRegister(c.Request.Context(), id, req, actor)
	if err != nil {
		respondError(c, logger, err, "Failed to reject cash register")
		return
	}
	c.JSON(http.StatusOK, dto.ToCashRegisterResponse(cr, h.tolerance))
}

// voidCashRegister godoc
// @Summary Void a shift
// @Description Voids a pending or rejected shift so the cashier can submit the day again.
// @Tags cash-registers
// @Accept json
// @Produce json
// @Param id path string true "Cash register ID"
// @Param request body dto.VoidCashRegisterRequest true "Reason"
// @Success 200 {object} dto.CashRegisterResponse
// @Failure 400 {object} ErrorResponse "Invalid input"
// @Failure 403 {object} ErrorResponse "Insufficient permissions"
// @Failure 404 {object} ErrorResponse "Cash register not found"
// @Failure 409 {object} ErrorResponse "Status does not allow voiding"
// @Failure 500 {object} ErrorResponse "Failed to void cash register"
// @Security BearerAuth
// @Router /cash-registers/{id}/void [post]
func (h *cashRegisterHandler) voidCashRegister(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	actor, ok := middleware.GetActorFromContext(c)
	if !ok {
		logger.Error("Actor not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req dto.VoidCashRegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindingError(c, logger, err)
		return
	}

	id, ok := uuidParam(c, logger, "id", "Cash register not found")
	if !ok {
		return
	}
	cr, err := h.cashRegisterService.VoidCashRegister(c.Request.Context(), id, req, actor)
	if err != nil {
		respondError(c, logger, err, "Failed to void cash register")
		return
	}
	c.JSON(http.StatusOK, dto.ToCashRegisterResponse(cr, h.tolerance))
}

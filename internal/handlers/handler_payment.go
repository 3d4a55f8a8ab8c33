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

// paymentHandler handles patient payment requests.
type paymentHandler struct {
	paymentService portssvc.PaymentSvcFacade
	location       *time.Location
}

func newPaymentHandler(ps portssvc.PaymentSvcFacade, loc *time.Location) *paymentHandler {
	return &paymentHandler{paymentService: ps, location: loc}
}

// registerPaymentRoutes registers routes related to payments.
func registerPaymentRoutes(rg *gin.RouterGroup, ps portssvc.PaymentSvcFacade, loc *time.Location) {
	h := newPaymentHandler(ps, loc)

	payments := rg.Group("/payments")
	{
		payments.POST("", middleware.RequireRoles(domain.RoleAdmin, domain.RoleReceptionist, domain.RoleCashier), h.recordPayment)
		payments.GET("", h.listPayments)
	}
}

// recordPayment godoc
// @Summary Record a patient payment
// @Tags payments
// @Accept json
// @Produce json
// @Param request body dto.RecordPaymentRequest true "Payment"
// @Success 201 {object} domain.Payment
// @Failure 400 {object} ErrorResponse "Invalid input"
// @Failure 403 {object} ErrorResponse "Insufficient permissions"
// @Failure 500 {object} ErrorResponse "Failed to record payment"
// @Security BearerAuth
// @Router /payments [post]
func (h *paymentHandler) recordPayment(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	actor, ok := middleware.GetActorFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req dto.RecordPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindingError(c, logger, err)
		return
	}

	payment, err := h.paymentService.RecordPayment(c.Request.Context(), req, actor)
	if err != nil {
		respondError(c, logger, err, "Failed to record payment")
		return
	}
	logger.Info("Payment recorded", slog.String("payment_id", payment.PaymentID))
	c.JSON(http.StatusCreated, payment)
}

// listPayments godoc
// @Summary List payments of a day
// @Description Lists the payments of a clinic day (today when omitted) with the completed totals by method.
// @Tags payments
// @Produce json
// @Param date query string false "Day (YYYY-MM-DD)"
// @Success 200 {object} dto.ListPaymentsResponse
// @Failure 400 {object} ErrorResponse "Invalid query"
// @Failure 403 {object} ErrorResponse "Insufficient permissions"
// @Failure 500 {object} ErrorResponse "Failed to list payments"
// @Security BearerAuth
// @Router /payments [get]
func (h *paymentHandler) listPayments(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	actor, ok := middleware.GetActorFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var params dto.ListPaymentsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		bindingError(c, logger, err)
		return
	}
	date := domain.CivilDate(time.Now(), h.location)
	if params.Date != "" {
		d, err := domain.ParseCivilDate(params.Date)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "date must be YYYY-MM-DD"})
			return
		}
		date = d
	}

	payments, err := h.paymentService.ListPayments(c.Request.Context(), date, actor)
	if err != nil {
		respondError(c, logger, err, "Failed to list payments")
		return
	}
	totals, err := h.paymentService.DailyTotals(c.Request.Context(), date)
	if err != nil {
		respondError(c, logger, err, "Failed to list payments")
		return
	}
	c.JSON(http.StatusOK, dto.ListPaymentsResponse{Payments: payments, Totals: *totals})
}

package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/SscSPs/dental_clinic_app/internal/apperrors"
	"github.com/SscSPs/dental_clinic_app/internal/core/domain"
	portsrepo "github.com/SscSPs/dental_clinic_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/dental_clinic_app/internal/core/ports/services"
	"github.com/SscSPs/dental_clinic_app/internal/dto"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// paymentService implements PaymentSvcFacade
type paymentService struct {
	BaseService
	paymentRepo portsrepo.PaymentRepositoryFacade
	location    *time.Location
}

// NewPaymentService creates a new payment service. loc decides the calendar day
// of payments recorded without an explicit date.
func NewPaymentService(repo portsrepo.PaymentRepositoryFacade, loc *time.Location) portssvc.PaymentSvcFacade {
	if loc == nil {
		loc = time.UTC
	}
	return &paymentService{paymentRepo: repo, location: loc}
}

var _ portssvc.PaymentSvcFacade = (*paymentService)(nil)

func (s *paymentService) RecordPayment(ctx context.Context, req dto.RecordPaymentRequest, actor domain.Actor) (*domain.Payment, error) {
	if err := s.Authorize(ctx, actor, actor.Role.CanSubmitCashRegisters(), "record payments"); err != nil {
		return nil, err
	}
	if !req.Amount.IsPositive() {
		return nil, apperrors.NewValidationFailedError("amount must be greater than zero")
	}
	switch req.Method {
	case domain.PaymentCash, domain.PaymentCard, domain.PaymentTransfer:
	default:
		return nil, apperrors.NewValidationFailedError("method must be cash, card or transfer")
	}
	status := req.Status
	if status == "" {
		status = domain.PaymentCompleted
	}
	switch status {
	case domain.PaymentPending, domain.PaymentCompleted, domain.PaymentCancelled:
	default:
		return nil, apperrors.NewValidationFailedError("status must be pending, completed or cancelled")
	}

	now := s.CurrentTime()
	paymentDate := domain.CivilDate(now, s.location)
	if req.PaymentDate != "" {
		d, err := domain.ParseCivilDate(req.PaymentDate)
		if err != nil {
			return nil, apperrors.NewValidationFailedError("paymentDate must be YYYY-MM-DD")
		}
		paymentDate = d
	}

	payment := domain.Payment{
		PaymentID:   uuid.NewString(),
		PatientID:   req.PatientID,
		TreatmentID: req.TreatmentID,
		Amount:      req.Amount,
		Method:      req.Method,
		Status:      status,
		PaymentDate: paymentDate,
		Notes:       strings.TrimSpace(req.Notes),
		AuditFields: domain.NewAuditFields(actor.UserID, now),
	}
	if err := s.paymentRepo.SavePayment(ctx, payment); err != nil {
		s.LogError(ctx, err, "Failed to save payment", slog.String("patient_id", req.PatientID))
		return nil, fmt.Errorf("failed to save payment: %w", err)
	}
	s.LogInfo(ctx, "Payment recorded",
		slog.String("payment_id", payment.PaymentID),
		slog.String("method", string(payment.Method)),
		slog.String("amount", payment.Amount.String()))
	return &payment, nil
}

func (s *paymentService) ListPayments(ctx context.Context, date time.Time, actor domain.Actor) ([]domain.Payment, error) {
	allowed := actor.Role.CanSubmitCashRegisters() || actor.Role.CanSeeAllCashRegisters()
	if err := s.Authorize(ctx, actor, allowed, "list payments"); err != nil {
		return nil, err
	}
	payments, err := s.paymentRepo.ListPaymentsByDate(ctx, date)
	if err != nil {
		s.LogError(ctx, err, "Failed to list payments", slog.String("date", date.Format(domain.CivilDateLayout)))
		return nil, fmt.Errorf("failed to list payments: %w", err)
	}
	if payments == nil {
		payments = []domain.Payment{}
	}
	return payments, nil
}

func (s *paymentService) DailyTotals(ctx context.Context, date time.Time) (*domain.PaymentTotals, error) {
	totals, err := s.paymentRepo.SumCompletedPayments(ctx, date)
	if err != nil {
		return nil, fmt.Errorf("failed to sum completed payments: %w", err)
	}
	if totals == nil {
		totals = &domain.PaymentTotals{Date: date, Cash: decimal.Zero, Card: decimal.Zero, Transfer: decimal.Zero, Total: decimal.Zero}
	}
	return totals, nil
}

package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
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

// cashRegisterService implements the CashRegisterSvcFacade interface
type cashRegisterService struct {
	BaseService
	repo       portsrepo.CashRegisterRepositoryFacade
	payments   portssvc.PaymentReaderSvc
	publisher  portssvc.EventPublisher
	subscriber portssvc.EventSubscriber
	location   *time.Location
}

// CashRegisterOption is a functional option for configuring the cash register service
type CashRegisterOption func(*cashRegisterService)

// WithPaymentReader sets where payments-based expected totals come from.
func WithPaymentReader(payments portssvc.PaymentReaderSvc) CashRegisterOption {
	return func(s *cashRegisterService) {
		s.payments = payments
	}
}

// WithEventPublisher sets where status changes are announced.
func WithEventPublisher(publisher portssvc.EventPublisher) CashRegisterOption {
	return func(s *cashRegisterService) {
		s.publisher = publisher
	}
}

// WithEventSubscriber sets the source of realtime events.
func WithEventSubscriber(subscriber portssvc.EventSubscriber) CashRegisterOption {
	return func(s *cashRegisterService) {
		s.subscriber = subscriber
	}
}

// WithClinicLocation sets the timezone that decides which calendar day a shift belongs to.
func WithClinicLocation(loc *time.Location) CashRegisterOption {
	return func(s *cashRegisterService) {
		s.location = loc
	}
}

// WithClock overrides the wall clock.
func WithClock(now func() time.Time) CashRegisterOption {
	return func(s *cashRegisterService) {
		s.Now = now
	}
}

// NewCashRegisterService creates a new cash register service with the provided options
func NewCashRegisterService(repo portsrepo.CashRegisterRepositoryFacade, options ...CashRegisterOption) portssvc.CashRegisterSvcFacade {
	svc := &cashRegisterService{
		repo:     repo,
		location: time.UTC,
	}
	for _, option := range options {
		option(svc)
	}
	return svc
}

var _ portssvc.CashRegisterSvcFacade = (*cashRegisterService)(nil)

func (s *cashRegisterService) today() time.Time {
	return domain.CivilDate(s.CurrentTime(), s.location)
}

func (s *cashRegisterService) SubmitCashRegister(ctx context.Context, req dto.SubmitCashRegisterRequest, actor domain.Actor) (*domain.CashRegister, error) {
	if err := s.Authorize(ctx, actor, actor.Role.CanSubmitCashRegisters(), "submit cash registers"); err != nil {
		return nil, err
	}
	if err := validateSubmission(req); err != nil {
		return nil, err
	}

	shiftDate := s.today()
	current, err := s.repo.FindCurrentCashRegister(ctx, actor.UserID, shiftDate)
	if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		s.LogError(ctx, err, "Failed to check current cash register", slog.String("cashier_id", actor.UserID))
		return nil, fmt.Errorf("failed to check current cash register: %w", err)
	}
	// Voided shifts never block a new submission for the same day.
	if err == nil && current.IsCurrentFor(shiftDate) {
		s.LogInfo(ctx, "Cash register already submitted for today",
			slog.String("cash_register_id", current.CashRegisterID),
			slog.String("status", string(current.Status)))
		return nil, apperrors.NewAppError(http.StatusConflict, "a cash register for today already exists", apperrors.ErrShiftAlreadyOpen)
	}

	now := s.CurrentTime()
	cr := domain.CashRegister{
		CashRegisterID: uuid.NewString(),
		CashierID:      actor.UserID,
		ShiftDate:      shiftDate,
		OpeningBalance: req.OpeningBalance,
		Income: domain.ChannelIncome{
			ServicesCash:     req.ServicesCash,
			ServicesCard:     req.ServicesCard,
			ServicesTransfer: req.ServicesTransfer,
			ProductsCash:     req.ProductsCash,
			ProductsCard:     req.ProductsCard,
			ProductsTransfer: req.ProductsTransfer,
		},
		OtherIncome:     req.OtherIncome,
		OtherIncomeNote: strings.TrimSpace(req.OtherIncomeNote),
		CashierNotes:    strings.TrimSpace(req.CashierNotes),
		Expenses:        make([]domain.DailyExpense, 0, len(req.Expenses)),
		Withdrawals:     make([]domain.CashWithdrawal, 0, len(req.Withdrawals)),
		Status:          domain.CashRegisterPending,
		AuditFields:     domain.NewAuditFields(actor.UserID, now),
	}
	for _, e := range req.Expenses {
		cr.Expenses = append(cr.Expenses, domain.DailyExpense{
			ExpenseID:      uuid.NewString(),
			CashRegisterID: cr.CashRegisterID,
			Description:    strings.TrimSpace(e.Description),
			Amount:         e.Amount,
			Category:       strings.TrimSpace(e.Category),
			CreatedAt:      now,
		})
	}
	for _, w := range req.Withdrawals {
		cr.Withdrawals = append(cr.Withdrawals, domain.CashWithdrawal{
			WithdrawalID:   uuid.NewString(),
			CashRegisterID: cr.CashRegisterID,
			Description:    strings.TrimSpace(w.Description),
			Amount:         w.Amount,
			AuthorizedBy:   strings.TrimSpace(w.AuthorizedBy),
			CreatedAt:      now,
		})
	}
	cr.Recalculate()

	if err := s.repo.SaveCashRegister(ctx, cr); err != nil {
		s.LogError(ctx, err, "Failed to save cash register",
			slog.String("cash_register_id", cr.CashRegisterID),
			slog.String("cashier_id", actor.UserID))
		return nil, fmt.Errorf("failed to save cash register: %w", err)
	}

	s.LogInfo(ctx, "Cash register submitted",
		slog.String("cash_register_id", cr.CashRegisterID),
		slog.String("closing_balance", cr.ClosingBalance.String()))
	s.publish(ctx, domain.EventCashRegisterSubmitted, cr, actor)
	return &cr, nil
}

// validateSubmission re-checks what request binding already enforces, for callers that skip it.
func validateSubmission(req dto.SubmitCashRegisterRequest) error {
	amounts := map[string]decimal.Decimal{
		"openingBalance":   req.OpeningBalance,
		"servicesCash":     req.ServicesCash,
		"servicesCard":     req.ServicesCard,
		"servicesTransfer": req.ServicesTransfer,
		"productsCash":     req.ProductsCash,
		"productsCard":     req.ProductsCard,
		"productsTransfer": req.ProductsTransfer,
		"otherIncome":      req.OtherIncome,
	}
	for field, amount := range amounts {
		if amount.IsNegative() {
			return apperrors.NewValidationFailedError(field + " must not be negative")
		}
	}
	for i, e := range req.Expenses {
		if strings.TrimSpace(e.Description) == "" {
			return apperrors.NewValidationFailedError(fmt.Sprintf("expenses[%d]: description is required", i))
		}
		if !e.Amount.IsPositive() {
			return apperrors.NewValidationFailedError(fmt.Sprintf("expenses[%d]: amount must be greater than zero", i))
		}
	}
	for i, w := range req.Withdrawals {
		if strings.TrimSpace(w.Description) == "" {
			return apperrors.NewValidationFailedError(fmt.Sprintf("withdrawals[%d]: description is required", i))
		}
		if !w.Amount.IsPositive() {
			return apperrors.NewValidationFailedError(fmt.Sprintf("withdrawals[%d]: amount must be greater than zero", i))
		}
		if strings.TrimSpace(w.AuthorizedBy) == "" {
			return apperrors.NewValidationFailedError(fmt.Sprintf("withdrawals[%d]: authorizedBy is required", i))
		}
	}
	return nil
}

func (s *cashRegisterService) GetCurrentCashRegister(ctx context.Context, actor domain.Actor) (*domain.CashRegister, error) {
	cr, err := s.repo.FindCurrentCashRegister(ctx, actor.UserID, s.today())
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewNotFoundError("no cash register submitted today")
		}
		s.LogError(ctx, err, "Failed to find current cash register", slog.String("cashier_id", actor.UserID))
		return nil, fmt.Errorf("failed to find current cash register: %w", err)
	}
	return cr, nil
}

func (s *cashRegisterService) GetCashRegister(ctx context.Context, cashRegisterID string, actor domain.Actor) (*domain.CashRegister, error) {
	cr, err := s.repo.FindCashRegisterByID(ctx, cashRegisterID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewNotFoundError("cash register " + cashRegisterID + " not found")
		}
		s.LogError(ctx, err, "Failed to find cash register", slog.String("cash_register_id", cashRegisterID))
		return nil, fmt.Errorf("failed to find cash register: %w", err)
	}
	// Other cashiers' shifts are reported as missing rather than forbidden.
	if !actor.Role.CanSeeAllCashRegisters() && cr.CashierID != actor.UserID {
		return nil, apperrors.NewNotFoundError("cash register " + cashRegisterID + " not found")
	}
	return cr, nil
}

func (s *cashRegisterService) ListCashRegisters(ctx context.Context, params dto.ListCashRegistersParams, actor domain.Actor) ([]domain.CashRegister, *string, error) {
	filter := portsrepo.CashRegisterFilter{CashierID: params.CashierID}
	if !actor.Role.CanSeeAllCashRegisters() {
		filter.CashierID = actor.UserID
	}
	if params.From != "" {
		from, err := domain.ParseCivilDate(params.From)
		if err != nil {
			return nil, nil, apperrors.NewValidationFailedError("from must be YYYY-MM-DD")
		}
		filter.From = &from
	}
	if params.To != "" {
		to, err := domain.ParseCivilDate(params.To)
		if err != nil {
			return nil, nil, apperrors.NewValidationFailedError("to must be YYYY-MM-DD")
		}
		filter.To = &to
	}
	if filter.From != nil && filter.To != nil && filter.From.After(*filter.To) {
		return nil, nil, apperrors.NewValidationFailedError("from must not be after to")
	}
	if params.Status != "" {
		status := domain.CashRegisterStatus(params.Status)
		if !status.IsValid() {
			return nil, nil, apperrors.NewValidationFailedError("unknown status " + params.Status)
		}
		filter.Status = &status
	}
	limit := params.Limit
	if limit <= 0 {
		limit = 20
	}

	crs, next, err := s.repo.ListCashRegisters(ctx, filter, limit, params.NextToken)
	if err != nil {
		s.LogError(ctx, err, "Failed to list cash registers", slog.String("cashier_filter", filter.CashierID))
		return nil, nil, fmt.Errorf("failed to list cash registers: %w", err)
	}
	if crs == nil {
		crs = []domain.CashRegister{}
	}
	s.LogDebug(ctx, "Listed cash registers",
		slog.String("cashier_filter", filter.CashierID),
		slog.Int("count", len(crs)),
		slog.Bool("has_more", next != nil))
	return crs, next, nil
}

func (s *cashRegisterService) ComputeExpected(ctx context.Context, cashRegisterID string, actor domain.Actor) (*domain.PaymentTotals, error) {
	if err := s.Authorize(ctx, actor, actor.Role.CanSeeAllCashRegisters(), "compute expected totals"); err != nil {
		return nil, err
	}
	cr, err := s.GetCashRegister(ctx, cashRegisterID, actor)
	if err != nil {
		return nil, err
	}
	return s.paymentTotals(ctx, cr.ShiftDate)
}

func (s *cashRegisterService) paymentTotals(ctx context.Context, date time.Time) (*domain.PaymentTotals, error) {
	if s.payments == nil {
		return nil, apperrors.NewValidationFailedError("payments-based expected totals are not available")
	}
	totals, err := s.payments.DailyTotals(ctx, date)
	if err != nil {
		s.LogError(ctx, err, "Failed to sum payments", slog.String("date", date.Format(domain.CivilDateLayout)))
		return nil, fmt.Errorf("failed to sum payments: %w", err)
	}
	return totals, nil
}

// loadForTransition fetches a shift and checks the lifecycle allows moving it to next.
func (s *cashRegisterService) loadForTransition(ctx context.Context, cashRegisterID string, next domain.CashRegisterStatus, actor domain.Actor) (*domain.CashRegister, error) {
	cr, err := s.GetCashRegister(ctx, cashRegisterID, actor)
	if err != nil {
		return nil, err
	}
	if !cr.Status.CanTransitionTo(next) {
		s.LogInfo(ctx, "Rejected cash register status change",
			slog.String("cash_register_id", cashRegisterID),
			slog.String("from", string(cr.Status)),
			slog.String("to", string(next)))
		return nil, apperrors.NewAppError(http.StatusConflict,
			fmt.Sprintf("cannot change a %s cash register to %s", cr.Status, next), apperrors.ErrInvalidTransition)
	}
	return cr, nil
}

func (s *cashRegisterService) saveTransition(ctx context.Context, cr *domain.CashRegister, from domain.CashRegisterStatus, eventType domain.CashRegisterEventType, actor domain.Actor) error {
	if err := s.repo.UpdateCashRegisterStatus(ctx, *cr, from); err != nil {
		s.LogError(ctx, err, "Failed to update cash register status",
			slog.String("cash_register_id", cr.CashRegisterID),
			slog.String("status", string(cr.Status)))
		if errors.Is(err, apperrors.ErrConflict) {
			return apperrors.NewAppError(http.StatusConflict, "cash register was changed by someone else", err)
		}
		return fmt.Errorf("failed to update cash register status: %w", err)
	}
	s.LogInfo(ctx, "Cash register status changed",
		slog.String("cash_register_id", cr.CashRegisterID),
		slog.String("from", string(from)),
		slog.String("to", string(cr.Status)))
	s.publish(ctx, eventType, *cr, actor)
	return nil
}

func (s *cashRegisterService) markReviewed(cr *domain.CashRegister, status domain.CashRegisterStatus, actor domain.Actor) {
	now := s.CurrentTime()
	reviewer := actor.UserID
	cr.Status = status
	cr.ReviewedBy = &reviewer
	cr.ReviewedAt = &now
	cr.Touch(actor.UserID, now)
}

func (s *cashRegisterService) ApproveCashRegister(ctx context.Context, cashRegisterID string, req dto.ApproveCashRegisterRequest, actor domain.Actor) (*domain.CashRegister, error) {
	if err := s.Authorize(ctx, actor, actor.Role.CanReviewCashRegisters(), "approve cash registers"); err != nil {
		return nil, err
	}
	switch req.ExpectedSource {
	case domain.ExpectedSourceManual:
		if req.ExpectedTotal == nil {
			return nil, apperrors.NewValidationFailedError("expectedTotal is required when expectedSource is manual")
		}
		if req.ExpectedTotal.IsNegative() {
			return nil, apperrors.NewValidationFailedError("expectedTotal must not be negative")
		}
	case domain.ExpectedSourcePayments:
	default:
		return nil, apperrors.NewValidationFailedError("expectedSource must be manual or payments")
	}

	cr, err := s.loadForTransition(ctx, cashRegisterID, domain.CashRegisterApproved, actor)
	if err != nil {
		return nil, err
	}

	var expected decimal.Decimal
	if req.ExpectedSource == domain.ExpectedSourceManual {
		expected = *req.ExpectedTotal
	} else {
		totals, err := s.paymentTotals(ctx, cr.ShiftDate)
		if err != nil {
			return nil, err
		}
		expected = totals.Total
	}

	from := cr.Status
	source := req.ExpectedSource
	diff := domain.Difference(cr.ClosingBalance, expected)
	cr.ExpectedTotal = &expected
	cr.ExpectedSource = &source
	cr.Difference = &diff
	cr.ReviewNotes = strings.TrimSpace(req.Notes)
	s.markReviewed(cr, domain.CashRegisterApproved, actor)

	if err := s.saveTransition(ctx, cr, from, domain.EventCashRegisterApproved, actor); err != nil {
		return nil, err
	}
	return cr, nil
}

func (s *cashRegisterService) RejectCashRegister(ctx context.Context, cashRegisterID string, req dto.RejectCashRegisterRequest, actor domain.Actor) (*domain.CashRegister, error) {
	if err := s.Authorize(ctx, actor, actor.Role.CanReviewCashRegisters(), "reject cash registers"); err != nil {
		return nil, err
	}
	notes := strings.TrimSpace(req.Notes)
	if notes == "" {
		return nil, apperrors.NewValidationFailedError("notes are required to reject a cash register")
	}

	cr, err := s.loadForTransition(ctx, cashRegisterID, domain.CashRegisterRejected, actor)
	if err != nil {
		return nil, err
	}

	from := cr.Status
	cr.ReviewNotes = notes
	s.markReviewed(cr, domain.CashRegisterRejected, actor)

	if err := s.saveTransition(ctx, cr, from, domain.EventCashRegisterRejected, actor); err != nil {
		return nil, err
	}
	return cr, nil
}

func (s *cashRegisterService) VoidCashRegister(ctx context.Context, cashRegisterID string, req dto.VoidCashRegisterRequest, actor domain.Actor) (*domain.CashRegister, error) {
	if err := s.Authorize(ctx, actor, actor.Role == domain.RoleAdmin, "void cash registers"); err != nil {
		return nil, err
	}
	reason := strings.TrimSpace(req.Reason)
	if reason == "" {
		return nil, apperrors.NewValidationFailedError("reason is required to void a cash register")
	}

	cr, err := s.loadForTransition(ctx, cashRegisterID, domain.CashRegisterVoided, actor)
	if err != nil {
		return nil, err
	}

	from := cr.Status
	voidNote := "voided: " + reason
	if cr.ReviewNotes != "" {
		cr.ReviewNotes = cr.ReviewNotes + "\n" + voidNote
	} else {
		cr.ReviewNotes = voidNote
	}
	s.markReviewed(cr, domain.CashRegisterVoided, actor)

	if err := s.saveTransition(ctx, cr, from, domain.EventCashRegisterVoided, actor); err != nil {
		return nil, err
	}
	return cr, nil
}

func (s *cashRegisterService) publish(ctx context.Context, eventType domain.CashRegisterEventType, cr domain.CashRegister, actor domain.Actor) {
	if s.publisher == nil {
		return
	}
	event := domain.CashRegisterEvent{
		EventID:        uuid.NewString(),
		Type:           eventType,
		CashRegisterID: cr.CashRegisterID,
		CashierID:      cr.CashierID,
		Status:         cr.Status,
		ActorID:        actor.UserID,
		OccurredAt:     s.CurrentTime(),
	}
	if err := s.publisher.Publish(ctx, event); err != nil {
		s.LogError(ctx, err, "Failed to publish cash register event",
			slog.String("event_type", string(eventType)),
			slog.String("cash_register_id", cr.CashRegisterID))
	}
}

func (s *cashRegisterService) SubscribeEvents(ctx context.Context, actor domain.Actor) (<-chan domain.CashRegisterEvent, func()) {
	if s.subscriber == nil {
		ch := make(chan domain.CashRegisterEvent)
		close(ch)
		return ch, func() {}
	}
	events, cancel := s.subscriber.Subscribe(ctx)
	if actor.Role.CanSeeAllCashRegisters() {
		return events, cancel
	}

	// Cashiers only hear about their own shifts.
	own := make(chan domain.CashRegisterEvent, cap(events))
	go func() {
		defer close(own)
		for event := range events {
			if event.CashierID != actor.UserID {
				continue
			}
			select {
			case own <- event:
			default:
			}
		}
	}()
	return own, cancel
}

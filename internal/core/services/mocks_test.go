package services_test

import (
	"context"
	"sync"
	"time"

	"github.com/SscSPs/dental_clinic_app/internal/core/domain"
	portsrepo "github.com/SscSPs/dental_clinic_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/dental_clinic_app/internal/core/ports/services"
	"github.com/stretchr/testify/mock"
)

// --- Mock CashRegisterRepository ---
type MockCashRegisterRepository struct {
	mock.Mock
}

var _ portsrepo.CashRegisterRepositoryFacade = (*MockCashRegisterRepository)(nil)

func (m *MockCashRegisterRepository) FindCashRegisterByID(ctx context.Context, cashRegisterID string) (*domain.CashRegister, error) {
	args := m.Called(ctx, cashRegisterID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CashRegister), args.Error(1)
}

func (m *MockCashRegisterRepository) FindCurrentCashRegister(ctx context.Context, cashierID string, shiftDate time.Time) (*domain.CashRegister, error) {
	args := m.Called(ctx, cashierID, shiftDate)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CashRegister), args.Error(1)
}

func (m *MockCashRegisterRepository) ListCashRegisters(ctx context.Context, filter portsrepo.CashRegisterFilter, limit int, nextToken *string) ([]domain.CashRegister, *string, error) {
	args := m.Called(ctx, filter, limit, nextToken)
	var crs []domain.CashRegister
	if args.Get(0) != nil {
		crs = args.Get(0).([]domain.CashRegister)
	}
	var next *string
	if args.Get(1) != nil {
		next = args.Get(1).(*string)
	}
	return crs, next, args.Error(2)
}

func (m *MockCashRegisterRepository) SaveCashRegister(ctx context.Context, cashRegister domain.CashRegister) error {
	args := m.Called(ctx, cashRegister)
	return args.Error(0)
}

func (m *MockCashRegisterRepository) UpdateCashRegisterStatus(ctx context.Context, cashRegister domain.CashRegister, fromStatus domain.CashRegisterStatus) error {
	args := m.Called(ctx, cashRegister, fromStatus)
	return args.Error(0)
}

// --- Mock ProfileRepository ---
type MockProfileRepository struct {
	mock.Mock
}

var _ portsrepo.ProfileRepositoryFacade = (*MockProfileRepository)(nil)

func (m *MockProfileRepository) FindProfileByID(ctx context.Context, userID string) (*domain.Profile, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Profile), args.Error(1)
}

func (m *MockProfileRepository) FindProfileByEmail(ctx context.Context, email string) (*domain.Profile, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Profile), args.Error(1)
}

func (m *MockProfileRepository) ListProfiles(ctx context.Context, limit int, offset int) ([]domain.Profile, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Profile), args.Error(1)
}

func (m *MockProfileRepository) CountProfiles(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

func (m *MockProfileRepository) SaveProfile(ctx context.Context, profile domain.Profile) error {
	args := m.Called(ctx, profile)
	return args.Error(0)
}

func (m *MockProfileRepository) UpdateProfileRole(ctx context.Context, userID string, role domain.Role, updatedBy string, updatedAt time.Time) error {
	args := m.Called(ctx, userID, role, updatedBy, updatedAt)
	return args.Error(0)
}

func (m *MockProfileRepository) UpdateProfileActive(ctx context.Context, userID string, isActive bool, updatedBy string, updatedAt time.Time) error {
	args := m.Called(ctx, userID, isActive, updatedBy, updatedAt)
	return args.Error(0)
}

func (m *MockProfileRepository) TouchLastSignIn(ctx context.Context, userID string, at time.Time) error {
	args := m.Called(ctx, userID, at)
	return args.Error(0)
}

func (m *MockProfileRepository) SaveRevokedToken(ctx context.Context, token domain.RevokedToken) error {
	args := m.Called(ctx, token)
	return args.Error(0)
}

func (m *MockProfileRepository) IsTokenRevoked(ctx context.Context, tokenID string) (bool, error) {
	args := m.Called(ctx, tokenID)
	return args.Bool(0), args.Error(1)
}

// --- Mock AuditRepository ---
type MockAuditRepository struct {
	mock.Mock
}

var _ portsrepo.AuditRepositoryFacade = (*MockAuditRepository)(nil)

func (m *MockAuditRepository) FindAuditSessionByID(ctx context.Context, auditSessionID string) (*domain.AuditSession, error) {
	args := m.Called(ctx, auditSessionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AuditSession), args.Error(1)
}

func (m *MockAuditRepository) FindActiveAuditSession(ctx context.Context, auditorID string, now time.Time) (*domain.AuditSession, error) {
	args := m.Called(ctx, auditorID, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AuditSession), args.Error(1)
}

func (m *MockAuditRepository) ListAuditSessions(ctx context.Context, auditorID string, limit int) ([]domain.AuditSession, error) {
	args := m.Called(ctx, auditorID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.AuditSession), args.Error(1)
}

func (m *MockAuditRepository) SaveAuditSession(ctx context.Context, session domain.AuditSession) error {
	args := m.Called(ctx, session)
	return args.Error(0)
}

func (m *MockAuditRepository) RevokeAuditSession(ctx context.Context, auditSessionID string, revokedBy string, revokedAt time.Time) error {
	args := m.Called(ctx, auditSessionID, revokedBy, revokedAt)
	return args.Error(0)
}

func (m *MockAuditRepository) SaveAuditLog(ctx context.Context, entry domain.AuditLog) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockAuditRepository) ListAuditLogs(ctx context.Context, auditSessionID string, limit int) ([]domain.AuditLog, error) {
	args := m.Called(ctx, auditSessionID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.AuditLog), args.Error(1)
}

// --- Mock PaymentRepository ---
type MockPaymentRepository struct {
	mock.Mock
}

var _ portsrepo.PaymentRepositoryFacade = (*MockPaymentRepository)(nil)

func (m *MockPaymentRepository) SavePayment(ctx context.Context, payment domain.Payment) error {
	args := m.Called(ctx, payment)
	return args.Error(0)
}

func (m *MockPaymentRepository) ListPaymentsByDate(ctx context.Context, date time.Time) ([]domain.Payment, error) {
	args := m.Called(ctx, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Payment), args.Error(1)
}

func (m *MockPaymentRepository) SumCompletedPayments(ctx context.Context, date time.Time) (*domain.PaymentTotals, error) {
	args := m.Called(ctx, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PaymentTotals), args.Error(1)
}

// --- Mock ReportingRepository ---
type MockReportingRepository struct {
	mock.Mock
}

var _ portsrepo.ReportingRepository = (*MockReportingRepository)(nil)

func (m *MockReportingRepository) ApprovedCashByDay(ctx context.Context, from, to time.Time) ([]domain.CashSummaryDay, error) {
	args := m.Called(ctx, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.CashSummaryDay), args.Error(1)
}

func (m *MockReportingRepository) CountCashRegistersByStatus(ctx context.Context, from, to time.Time) (map[domain.CashRegisterStatus]int, error) {
	args := m.Called(ctx, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[domain.CashRegisterStatus]int), args.Error(1)
}

// --- Mock PaymentReader ---
type MockPaymentReader struct {
	mock.Mock
}

var _ portssvc.PaymentReaderSvc = (*MockPaymentReader)(nil)

func (m *MockPaymentReader) DailyTotals(ctx context.Context, date time.Time) (*domain.PaymentTotals, error) {
	args := m.Called(ctx, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PaymentTotals), args.Error(1)
}

func (m *MockPaymentReader) ListPayments(ctx context.Context, date time.Time, actor domain.Actor) ([]domain.Payment, error) {
	args := m.Called(ctx, date, actor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Payment), args.Error(1)
}

// recordingPublisher keeps every published event.
type recordingPublisher struct {
	mu     sync.Mutex
	events []domain.CashRegisterEvent
}

func (p *recordingPublisher) Publish(_ context.Context, event domain.CashRegisterEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)
	return nil
}

func (p *recordingPublisher) Events() []domain.CashRegisterEvent {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]domain.CashRegisterEvent(nil), p.events...)
}

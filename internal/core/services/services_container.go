package services

import (
	portsrepo "github.com/SscSPs/dental_clinic_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/dental_clinic_app/internal/core/ports/services"
	"github.com/SscSPs/dental_clinic_app/internal/platform/config"
)

// NewServiceContainer creates a new service container with properly initialized dependencies.
// publisher and subscriber may be nil, in which case no realtime events are produced.
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider, publisher portssvc.EventPublisher, subscriber portssvc.EventSubscriber) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	// Payments first: the cash register review reads their totals.
	container.Payment = NewPaymentService(repos.PaymentRepo, cfg.ClinicLocation)

	options := []CashRegisterOption{
		WithPaymentReader(container.Payment),
		WithClinicLocation(cfg.ClinicLocation),
	}
	if publisher != nil {
		options = append(options, WithEventPublisher(publisher))
	}
	if subscriber != nil {
		options = append(options, WithEventSubscriber(subscriber))
	}
	container.CashRegister = NewCashRegisterService(repos.CashRegisterRepo, options...)

	container.Auth = NewAuthService(cfg, repos.ProfileRepo)
	container.Profile = NewProfileService(repos.ProfileRepo)
	container.Audit = NewAuditService(repos.AuditRepo, repos.ProfileRepo)
	container.Reporting = NewReportingService(repos.ReportingRepo)

	return container
}

// Helper to check interface implementations at compile time
var (
	_ portssvc.CashRegisterSvcFacade = (*cashRegisterService)(nil)
	_ portssvc.AuthSvcFacade         = (*authService)(nil)
	_ portssvc.AuditSvcFacade        = (*auditService)(nil)
	_ portssvc.ProfileSvcFacade      = (*profileService)(nil)
	_ portssvc.PaymentSvcFacade      = (*paymentService)(nil)
	_ portssvc.ReportingService      = (*reportingService)(nil)
)

package pgsql

import (
	portsrepo "github.com/SscSPs/dental_clinic_app/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		CashRegisterRepo: newPgxCashRegisterRepository(dbPool),
		ProfileRepo:      newPgxProfileRepository(dbPool),
		AuditRepo:        newPgxAuditRepository(dbPool),
		PaymentRepo:      newPgxPaymentRepository(dbPool),
		ReportingRepo:    newReportingRepository(dbPool),
	}
}

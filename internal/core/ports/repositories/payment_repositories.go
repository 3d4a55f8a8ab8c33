package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/dental_clinic_app/internal/core/domain"
)

// PaymentRepositoryFacade defines the payment operations the cash register review relies on.
type PaymentRepositoryFacade interface {
	SavePayment(ctx context.Context, payment domain.Payment) error
	ListPaymentsByDate(ctx context.Context, date time.Time) ([]domain.Payment, error)

	// SumCompletedPayments totals completed payments for a civil date, split by method.
	SumCompletedPayments(ctx context.Context, date time.Time) (*domain.PaymentTotals, error)
}

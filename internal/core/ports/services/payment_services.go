package services

import (
	"context"
	"time"

	"github.com/SscSPs/dental_clinic_app/internal/core/domain"
	"github.com/SscSPs/dental_clinic_app/internal/dto"
)

// PaymentReaderSvc exposes payment totals used as the system expected figure.
type PaymentReaderSvc interface {
	DailyTotals(ctx context.Context, date time.Time) (*domain.PaymentTotals, error)
	ListPayments(ctx context.Context, date time.Time, actor domain.Actor) ([]domain.Payment, error)
}

// PaymentSvcFacade combines payment recording and reads.
type PaymentSvcFacade interface {
	PaymentReaderSvc
	RecordPayment(ctx context.Context, req dto.RecordPaymentRequest, actor domain.Actor) (*domain.Payment, error)
}

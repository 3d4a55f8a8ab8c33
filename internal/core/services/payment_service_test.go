package services_test

import (
	"context"
	"testing"

	"github.com/SscSPs/dental_clinic_app/internal/apperrors"
	"github.com/SscSPs/dental_clinic_app/internal/core/domain"
	"github.com/SscSPs/dental_clinic_app/internal/core/services"
	"github.com/SscSPs/dental_clinic_app/internal/dto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestRecordPayment_DefaultsToCompleted(t *testing.T) {
	ctx := context.Background()
	repo := new(MockPaymentRepository)
	svc := services.NewPaymentService(repo, clinicTZ)

	repo.On("SavePayment", ctx, mock.MatchedBy(func(p domain.Payment) bool {
		return p.Status == domain.PaymentCompleted && p.Method == domain.PaymentCard &&
			p.PaymentDate.Equal(shiftDate) && p.Amount.Equal(dec("120.50"))
	})).Return(nil).Once()

	payment, err := svc.RecordPayment(ctx, dto.RecordPaymentRequest{
		PatientID:   "patient-1",
		Amount:      dec("120.50"),
		Method:      domain.PaymentCard,
		PaymentDate: "2026-03-14",
	}, cashier)

	require.NoError(t, err)
	assert.NotEmpty(t, payment.PaymentID)
	repo.AssertExpectations(t)
}

func TestRecordPayment_Validation(t *testing.T) {
	svc := services.NewPaymentService(new(MockPaymentRepository), nil)

	_, err := svc.RecordPayment(context.Background(), dto.RecordPaymentRequest{
		PatientID: "patient-1", Amount: dec("0"), Method: domain.PaymentCash,
	}, cashier)
	assert.ErrorIs(t, err, apperrors.ErrValidation)

	_, err = svc.RecordPayment(context.Background(), dto.RecordPaymentRequest{
		PatientID: "patient-1", Amount: dec("10"), Method: "cheque",
	}, cashier)
	assert.ErrorIs(t, err, apperrors.ErrValidation)

	_, err = svc.RecordPayment(context.Background(), dto.RecordPaymentRequest{
		PatientID: "patient-1", Amount: dec("10"), Method: domain.PaymentCash,
	}, auditor)
	assert.ErrorIs(t, err, apperrors.ErrForbidden)
}

func TestDailyTotals_EmptyDay(t *testing.T) {
	ctx := context.Background()
	repo := new(MockPaymentRepository)
	svc := services.NewPaymentService(repo, nil)
	repo.On("SumCompletedPayments", ctx, shiftDate).Return(nil, nil).Once()

	totals, err := svc.DailyTotals(ctx, shiftDate)

	require.NoError(t, err)
	assert.True(t, totals.Total.IsZero())
	assert.Equal(t, 0, totals.Count)
}

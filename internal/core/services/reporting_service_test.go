package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/SscSPs/dental_clinic_app/internal/apperrors"
	"github.com/SscSPs/dental_clinic_app/internal/core/domain"
	"github.com/SscSPs/dental_clinic_app/internal/core/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCashSummary(t *testing.T) {
	ctx := context.Background()
	repo := new(MockReportingRepository)
	svc := services.NewReportingService(repo)

	from := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, 3, 31, 0, 0, 0, 0, time.UTC)
	repo.On("ApprovedCashByDay", ctx, from, to).Return([]domain.CashSummaryDay{
		{Date: from, Shifts: 2, TotalCash: dec("700"), ClosingBalance: dec("1600"), ExpectedTotal: dec("1550"), Difference: dec("50")},
		{Date: from.AddDate(0, 0, 1), Shifts: 1, TotalCash: dec("300"), ClosingBalance: dec("400"), ExpectedTotal: dec("410"), Difference: dec("-10")},
	}, nil).Once()
	repo.On("CountCashRegistersByStatus", ctx, from, to).Return(map[domain.CashRegisterStatus]int{
		domain.CashRegisterApproved: 3,
		domain.CashRegisterPending:  1,
	}, nil).Once()

	report, err := svc.CashSummary(ctx, from, to, auditor)

	require.NoError(t, err)
	assert.Len(t, report.Days, 2)
	assert.Equal(t, 3, report.Totals.Shifts)
	assert.Equal(t, "1000", report.Totals.TotalCash.String())
	assert.Equal(t, "2000", report.Totals.ClosingBalance.String())
	assert.Equal(t, "40", report.Totals.Difference.String())
	assert.Equal(t, 1, report.StatusCounts[domain.CashRegisterPending])
	repo.AssertExpectations(t)
}

func TestCashSummary_Validation(t *testing.T) {
	svc := services.NewReportingService(new(MockReportingRepository))
	from := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

	_, err := svc.CashSummary(context.Background(), from, from.AddDate(0, 0, -1), admin)
	assert.ErrorIs(t, err, apperrors.ErrValidation)

	_, err = svc.CashSummary(context.Background(), from, from.AddDate(2, 0, 0), admin)
	assert.ErrorIs(t, err, apperrors.ErrValidation)

	_, err = svc.CashSummary(context.Background(), from, from, cashier)
	assert.ErrorIs(t, err, apperrors.ErrForbidden)
}

package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/SscSPs/dental_clinic_app/internal/apperrors"
	"github.com/SscSPs/dental_clinic_app/internal/core/domain"
	portsrepo "github.com/SscSPs/dental_clinic_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/dental_clinic_app/internal/core/ports/services"
	"github.com/shopspring/decimal"
)

// maxReportDays bounds the date range of a single cash summary.
const maxReportDays = 366

// reportingService implements the ReportingService interface
type reportingService struct {
	BaseService
	reportingRepo portsrepo.ReportingRepository
}

// NewReportingService creates a new reporting service
func NewReportingService(repo portsrepo.ReportingRepository) portssvc.ReportingService {
	return &reportingService{
		reportingRepo: repo,
	}
}

// Ensure reportingService implements the ReportingService interface
var _ portssvc.ReportingService = (*reportingService)(nil)

// CashSummary aggregates approved shifts per day for the inclusive date range
func (s *reportingService) CashSummary(ctx context.Context, from, to time.Time, actor domain.Actor) (*domain.CashSummaryReport, error) {
	if err := s.Authorize(ctx, actor, actor.Role.CanSeeAllCashRegisters(), "view cash reports"); err != nil {
		return nil, err
	}
	if from.After(to) {
		return nil, apperrors.NewValidationFailedError("from must not be after to")
	}
	if to.Sub(from) > maxReportDays*24*time.Hour {
		return nil, apperrors.NewValidationFailedError(fmt.Sprintf("date range must not exceed %d days", maxReportDays))
	}

	days, err := s.reportingRepo.ApprovedCashByDay(ctx, from, to)
	if err != nil {
		s.LogError(ctx, err, "Failed to retrieve approved cash by day",
			slog.String("from", from.Format(domain.CivilDateLayout)),
			slog.String("to", to.Format(domain.CivilDateLayout)))
		return nil, fmt.Errorf("failed to retrieve approved cash by day: %w", err)
	}

	counts, err := s.reportingRepo.CountCashRegistersByStatus(ctx, from, to)
	if err != nil {
		s.LogError(ctx, err, "Failed to count cash registers by status")
		return nil, fmt.Errorf("failed to count cash registers by status: %w", err)
	}

	report := &domain.CashSummaryReport{
		From:         from,
		To:           to,
		Days:         days,
		Totals:       sumDays(days),
		StatusCounts: counts,
	}
	if report.Days == nil {
		report.Days = []domain.CashSummaryDay{}
	}
	if report.StatusCounts == nil {
		report.StatusCounts = map[domain.CashRegisterStatus]int{}
	}

	s.LogInfo(ctx, "Cash summary report generated",
		slog.String("from", from.Format(domain.CivilDateLayout)),
		slog.String("to", to.Format(domain.CivilDateLayout)),
		slog.Int("day_count", len(days)))
	return report, nil
}

func sumDays(days []domain.CashSummaryDay) domain.CashSummaryDay {
	total := domain.CashSummaryDay{
		TotalCash:        decimal.Zero,
		TotalCard:        decimal.Zero,
		TotalTransfer:    decimal.Zero,
		TotalExpenses:    decimal.Zero,
		TotalWithdrawals: decimal.Zero,
		ClosingBalance:   decimal.Zero,
		ExpectedTotal:    decimal.Zero,
		Difference:       decimal.Zero,
	}
	for _, d := range days {
		total.Shifts += d.Shifts
		total.TotalCash = total.TotalCash.Add(d.TotalCash)
		total.TotalCard = total.TotalCard.Add(d.TotalCard)
		total.TotalTransfer = total.TotalTransfer.Add(d.TotalTransfer)
		total.TotalExpenses = total.TotalExpenses.Add(d.TotalExpenses)
		total.TotalWithdrawals = total.TotalWithdrawals.Add(d.TotalWithdrawals)
		total.ClosingBalance = total.ClosingBalance.Add(d.ClosingBalance)
		total.ExpectedTotal = total.ExpectedTotal.Add(d.ExpectedTotal)
		total.Difference = total.Difference.Add(d.Difference)
	}
	return total
}

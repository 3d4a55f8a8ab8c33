package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/dental_clinic_app/internal/core/domain"
)

// ReportingRepository defines the aggregate queries behind the reports.
type ReportingRepository interface {
	// ApprovedCashByDay aggregates approved shifts per civil date in [from, to].
	ApprovedCashByDay(ctx context.Context, from, to time.Time) ([]domain.CashSummaryDay, error)

	// CountCashRegistersByStatus counts shifts per status in [from, to].
	CountCashRegistersByStatus(ctx context.Context, from, to time.Time) (map[domain.CashRegisterStatus]int, error)
}

package services

import (
	"context"
	"time"

	"github.com/SscSPs/dental_clinic_app/internal/core/domain"
)

// ReportingService defines operations for generating cash reports
type ReportingService interface {
	// CashSummary aggregates approved shifts per day for the inclusive date range.
	CashSummary(ctx context.Context, from, to time.Time, actor domain.Actor) (*domain.CashSummaryReport, error)
}

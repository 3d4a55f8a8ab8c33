package pgsql

import (
	"context"
	"time"

	"github.com/SscSPs/dental_clinic_app/internal/core/domain"
	portsrepo "github.com/SscSPs/dental_clinic_app/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

// reportingRepository implements the ReportingRepository interface
type reportingRepository struct {
	BaseRepository
}

// newReportingRepository creates a new reporting repository
func newReportingRepository(pool *pgxpool.Pool) portsrepo.ReportingRepository {
	return &reportingRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.ReportingRepository = (*reportingRepository)(nil)

// ApprovedCashByDay aggregates approved shifts per shift date in [from, to]
func (r *reportingRepository) ApprovedCashByDay(ctx context.Context, from, to time.Time) ([]domain.CashSummaryDay, error) {
	query := `
		SELECT shift_date,
		       COUNT(*),
		       SUM(total_cash),
		       SUM(total_card),
		       SUM(total_transfer),
		       SUM(total_expenses),
		       SUM(total_withdrawals),
		       SUM(closing_balance),
		       COALESCE(SUM(expected_total), 0),
		       COALESCE(SUM(difference), 0)
		FROM cash_registers
		WHERE status = 'approved' AND shift_date BETWEEN $1 AND $2
		GROUP BY shift_date
		ORDER BY shift_date;
	`
	rows, err := r.Pool.Query(ctx, query, from, to)
	if err != nil {
		return nil, internalError("failed to query approved cash by day", err)
	}
	defer rows.Close()

	days := []domain.CashSummaryDay{}
	for rows.Next() {
		var d domain.CashSummaryDay
		if err := rows.Scan(
			&d.Date,
			&d.Shifts,
			&d.TotalCash,
			&d.TotalCard,
			&d.TotalTransfer,
			&d.TotalExpenses,
			&d.TotalWithdrawals,
			&d.ClosingBalance,
			&d.ExpectedTotal,
			&d.Difference,
		); err != nil {
			return nil, internalError("failed to scan cash summary row", err)
		}
		days = append(days, d)
	}
	if err := rows.Err(); err != nil {
		return nil, internalError("error iterating cash summary rows", err)
	}
	return days, nil
}

// CountCashRegistersByStatus counts shifts per status in [from, to]
func (r *reportingRepository) CountCashRegistersByStatus(ctx context.Context, from, to time.Time) (map[domain.CashRegisterStatus]int, error) {
	rows, err := r.Pool.Query(ctx, `
		SELECT status, COUNT(*)
		FROM cash_registers
		WHERE shift_date BETWEEN $1 AND $2
		GROUP BY status;
	`, from, to)
	if err != nil {
		return nil, internalError("failed to count cash registers by status", err)
	}
	defer rows.Close()

	counts := map[domain.CashRegisterStatus]int{}
	for rows.Next() {
		var status string
		var count int
		if err := rows.Scan(&status, &count); err != nil {
			return nil, internalError("failed to scan status count row", err)
		}
		counts[domain.CashRegisterStatus(status)] = count
	}
	if err := rows.Err(); err != nil {
		return nil, internalError("error iterating status count rows", err)
	}
	return counts, nil
}

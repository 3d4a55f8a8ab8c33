package pgsql

import (
	"context"
	"time"

	"github.com/SscSPs/dental_clinic_app/internal/core/domain"
	portsrepo "github.com/SscSPs/dental_clinic_app/internal/core/ports/repositories"
	"github.com/SscSPs/dental_clinic_app/internal/models"
	"github.com/SscSPs/dental_clinic_app/internal/utils/mapping"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxPaymentRepository struct {
	BaseRepository
}

func newPgxPaymentRepository(pool *pgxpool.Pool) portsrepo.PaymentRepositoryFacade {
	return &PgxPaymentRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.PaymentRepositoryFacade = (*PgxPaymentRepository)(nil)

func (r *PgxPaymentRepository) SavePayment(ctx context.Context, payment domain.Payment) error {
	m := mapping.ToModelPayment(payment)
	_, err := r.Pool.Exec(ctx, `
		INSERT INTO payments (
			payment_id, patient_id, treatment_id, amount, method, status, payment_date, notes,
			created_at, created_by, last_updated_at, last_updated_by
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12);
	`,
		m.PaymentID,
		m.PatientID,
		m.TreatmentID,
		m.Amount,
		m.Method,
		m.Status,
		m.PaymentDate,
		m.Notes,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return internalError("failed to insert payment "+m.PaymentID, err)
	}
	return nil
}

func (r *PgxPaymentRepository) ListPaymentsByDate(ctx context.Context, date time.Time) ([]domain.Payment, error) {
	rows, err := r.Pool.Query(ctx, `
		SELECT payment_id, patient_id, treatment_id, amount, method, status, payment_date, notes,
		       created_at, created_by, last_updated_at, last_updated_by
		FROM payments
		WHERE payment_date = $1
		ORDER BY created_at, payment_id;
	`, date)
	if err != nil {
		return nil, internalError("failed to query payments", err)
	}
	defer rows.Close()

	payments := []domain.Payment{}
	for rows.Next() {
		var m models.Payment
		if err := rows.Scan(
			&m.PaymentID,
			&m.PatientID,
			&m.TreatmentID,
			&m.Amount,
			&m.Method,
			&m.Status,
			&m.PaymentDate,
			&m.Notes,
			&m.CreatedAt,
			&m.CreatedBy,
			&m.LastUpdatedAt,
			&m.LastUpdatedBy,
		); err != nil {
			return nil, internalError("failed to scan payment row", err)
		}
		payments = append(payments, mapping.ToDomainPayment(m))
	}
	if err := rows.Err(); err != nil {
		return nil, internalError("error iterating payment rows", err)
	}
	return payments, nil
}

// SumCompletedPayments totals completed payments for date. Pending and cancelled payments are ignored.
func (r *PgxPaymentRepository) SumCompletedPayments(ctx context.Context, date time.Time) (*domain.PaymentTotals, error) {
	totals := domain.PaymentTotals{Date: date}
	err := r.Pool.QueryRow(ctx, `
		SELECT COALESCE(SUM(amount) FILTER (WHERE method = 'cash'), 0),
		       COALESCE(SUM(amount) FILTER (WHERE method = 'card'), 0),
		       COALESCE(SUM(amount) FILTER (WHERE method = 'transfer'), 0),
		       COALESCE(SUM(amount), 0),
		       COUNT(*)
		FROM payments
		WHERE payment_date = $1 AND status = 'completed';
	`, date).Scan(&totals.Cash, &totals.Card, &totals.Transfer, &totals.Total, &totals.Count)
	if err != nil {
		return nil, internalError("failed to sum payments", err)
	}
	return &totals, nil
}

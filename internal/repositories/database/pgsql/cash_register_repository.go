package pgsql

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/SscSPs/dental_clinic_app/internal/apperrors"
	"github.com/SscSPs/dental_clinic_app/internal/core/domain"
	portsrepo "github.com/SscSPs/dental_clinic_app/internal/core/ports/repositories"
	"github.com/SscSPs/dental_clinic_app/internal/models"
	"github.com/SscSPs/dental_clinic_app/internal/utils/mapping"
	"github.com/SscSPs/dental_clinic_app/internal/utils/pagination"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const cashRegisterColumns = `
	cash_register_id, cashier_id, shift_date, opening_balance,
	services_cash, services_card, services_transfer,
	products_cash, products_card, products_transfer,
	other_income, other_income_note, cashier_notes,
	total_cash, total_card, total_transfer, total_expenses, total_withdrawals, closing_balance,
	expected_total, expected_source, difference,
	status, review_notes, reviewed_by, reviewed_at,
	created_at, created_by, last_updated_at, last_updated_by`

type PgxCashRegisterRepository struct {
	BaseRepository
}

// newPgxCashRegisterRepository creates a new repository for cash register shifts and their children.
func newPgxCashRegisterRepository(pool *pgxpool.Pool) portsrepo.CashRegisterRepositoryFacade {
	return &PgxCashRegisterRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.CashRegisterRepositoryFacade = (*PgxCashRegisterRepository)(nil)

func scanCashRegister(row pgx.Row) (models.CashRegister, error) {
	var m models.CashRegister
	err := row.Scan(
		&m.CashRegisterID,
		&m.CashierID,
		&m.ShiftDate,
		&m.OpeningBalance,
		&m.ServicesCash,
		&m.ServicesCard,
		&m.ServicesTransfer,
		&m.ProductsCash,
		&m.ProductsCard,
		&m.ProductsTransfer,
		&m.OtherIncome,
		&m.OtherIncomeNote,
		&m.CashierNotes,
		&m.TotalCash,
		&m.TotalCard,
		&m.TotalTransfer,
		&m.TotalExpenses,
		&m.TotalWithdrawals,
		&m.ClosingBalance,
		&m.ExpectedTotal,
		&m.ExpectedSource,
		&m.Difference,
		&m.Status,
		&m.ReviewNotes,
		&m.ReviewedBy,
		&m.ReviewedAt,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

// SaveCashRegister inserts the shift row first and then its expenses and withdrawals, all in one transaction.
func (r *PgxCashRegisterRepository) SaveCashRegister(ctx context.Context, cashRegister domain.CashRegister) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx) // no-op once committed

	m := mapping.ToModelCashRegister(cashRegister)
	query := `
		INSERT INTO cash_registers (` + cashRegisterColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15,
		        $16, $17, $18, $19, $20, $21, $22, $23, $24, $25, $26, $27, $28, $29, $30);
	`
	_, err = tx.Exec(ctx, query,
		m.CashRegisterID,
		m.CashierID,
		m.ShiftDate,
		m.OpeningBalance,
		m.ServicesCash,
		m.ServicesCard,
		m.ServicesTransfer,
		m.ProductsCash,
		m.ProductsCard,
		m.ProductsTransfer,
		m.OtherIncome,
		m.OtherIncomeNote,
		m.CashierNotes,
		m.TotalCash,
		m.TotalCard,
		m.TotalTransfer,
		m.TotalExpenses,
		m.TotalWithdrawals,
		m.ClosingBalance,
		m.ExpectedTotal,
		m.ExpectedSource,
		m.Difference,
		m.Status,
		m.ReviewNotes,
		m.ReviewedBy,
		m.ReviewedAt,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.NewConflictError("cash register " + m.CashRegisterID + " already exists")
		}
		return internalError("failed to insert cash register "+m.CashRegisterID, err)
	}

	if err := replaceChildren(ctx, tx, cashRegister); err != nil {
		return err
	}

	return r.Commit(ctx, tx)
}

// replaceChildren rewrites the expenses and withdrawals of a shift wholesale inside tx.
func replaceChildren(ctx context.Context, tx pgx.Tx, cashRegister domain.CashRegister) error {
	batch := &pgx.Batch{}
	batch.Queue(`DELETE FROM daily_expenses WHERE cash_register_id = $1;`, cashRegister.CashRegisterID)
	batch.Queue(`DELETE FROM cash_withdrawals WHERE cash_register_id = $1;`, cashRegister.CashRegisterID)

	expenseQuery := `
		INSERT INTO daily_expenses (expense_id, cash_register_id, description, amount, category, created_at)
		VALUES ($1, $2, $3, $4, $5, $6);
	`
	for _, e := range cashRegister.Expenses {
		me := mapping.ToModelDailyExpense(e)
		batch.Queue(expenseQuery, me.ExpenseID, me.CashRegisterID, me.Description, me.Amount, me.Category, me.CreatedAt)
	}
	withdrawalQuery := `
		INSERT INTO cash_withdrawals (withdrawal_id, cash_register_id, description, amount, authorized_by, created_at)
		VALUES ($1, $2, $3, $4, $5, $6);
	`
	for _, w := range cashRegister.Withdrawals {
		mw := mapping.ToModelCashWithdrawal(w)
		batch.Queue(withdrawalQuery, mw.WithdrawalID, mw.CashRegisterID, mw.Description, mw.Amount, mw.AuthorizedBy, mw.CreatedAt)
	}

	// Closing the batch surfaces the first failed statement.
	if err := tx.SendBatch(ctx, batch).Close(); err != nil {
		return internalError("failed to write children of cash register "+cashRegister.CashRegisterID, err)
	}
	return nil
}

// FindCashRegisterByID retrieves a shift together with its expenses and withdrawals.
func (r *PgxCashRegisterRepository) FindCashRegisterByID(ctx context.Context, cashRegisterID string) (*domain.CashRegister, error) {
	query := `SELECT ` + cashRegisterColumns + ` FROM cash_registers WHERE cash_register_id = $1;`
	m, err := scanCashRegister(r.Pool.QueryRow(ctx, query, cashRegisterID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError("cash register " + cashRegisterID + " not found")
		}
		return nil, internalError("failed to find cash register "+cashRegisterID, err)
	}

	cr := mapping.ToDomainCashRegister(m)
	if err := r.loadChildren(ctx, &cr); err != nil {
		return nil, err
	}
	return &cr, nil
}

func (r *PgxCashRegisterRepository) loadChildren(ctx context.Context, cr *domain.CashRegister) error {
	rows, err := r.Pool.Query(ctx, `
		SELECT expense_id, cash_register_id, description, amount, category, created_at
		FROM daily_expenses WHERE cash_register_id = $1 ORDER BY created_at, expense_id;
	`, cr.CashRegisterID)
	if err != nil {
		return internalError("failed to query expenses for cash register "+cr.CashRegisterID, err)
	}
	for rows.Next() {
		var e models.DailyExpense
		if err := rows.Scan(&e.ExpenseID, &e.CashRegisterID, &e.Description, &e.Amount, &e.Category, &e.CreatedAt); err != nil {
			rows.Close()
			return internalError("failed to scan expense row", err)
		}
		cr.Expenses = append(cr.Expenses, mapping.ToDomainDailyExpense(e))
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return internalError("error iterating expense rows", err)
	}

	rows, err = r.Pool.Query(ctx, `
		SELECT withdrawal_id, cash_register_id, description, amount, authorized_by, created_at
		FROM cash_withdrawals WHERE cash_register_id = $1 ORDER BY created_at, withdrawal_id;
	`, cr.CashRegisterID)
	if err != nil {
		return internalError("failed to query withdrawals for cash register "+cr.CashRegisterID, err)
	}
	defer rows.Close()
	for rows.Next() {
		var w models.CashWithdrawal
		if err := rows.Scan(&w.WithdrawalID, &w.CashRegisterID, &w.Description, &w.Amount, &w.AuthorizedBy, &w.CreatedAt); err != nil {
			return internalError("failed to scan withdrawal row", err)
		}
		cr.Withdrawals = append(cr.Withdrawals, mapping.ToDomainCashWithdrawal(w))
	}
	if err := rows.Err(); err != nil {
		return internalError("error iterating withdrawal rows", err)
	}
	return nil
}

// FindCurrentCashRegister returns the newest non-voided shift of a cashier for shiftDate.
func (r *PgxCashRegisterRepository) FindCurrentCashRegister(ctx context.Context, cashierID string, shiftDate time.Time) (*domain.CashRegister, error) {
	query := `
		SELECT ` + cashRegisterColumns + `
		FROM cash_registers
		WHERE cashier_id = $1 AND shift_date = $2 AND status <> 'voided'
		ORDER BY created_at DESC
		LIMIT 1;
	`
	m, err := scanCashRegister(r.Pool.QueryRow(ctx, query, cashierID, shiftDate))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError("no current cash register for cashier " + cashierID)
		}
		return nil, internalError("failed to find current cash register for cashier "+cashierID, err)
	}

	cr := mapping.ToDomainCashRegister(m)
	if err := r.loadChildren(ctx, &cr); err != nil {
		return nil, err
	}
	return &cr, nil
}

// ListCashRegisters pages through shifts ordered by (shift_date, created_at, cash_register_id) descending.
func (r *PgxCashRegisterRepository) ListCashRegisters(ctx context.Context, filter portsrepo.CashRegisterFilter, limit int, nextToken *string) ([]domain.CashRegister, *string, error) {
	if limit <= 0 {
		limit = 20
	}
	// One extra row tells us whether another page exists.
	fetchLimit := limit + 1

	conditions := []string{"TRUE"}
	args := []interface{}{}
	addArg := func(v interface{}) string {
		args = append(args, v)
		return "$" + strconv.Itoa(len(args))
	}

	if filter.CashierID != "" {
		conditions = append(conditions, "cashier_id = "+addArg(filter.CashierID))
	}
	if filter.From != nil {
		conditions = append(conditions, "shift_date >= "+addArg(*filter.From))
	}
	if filter.To != nil {
		conditions = append(conditions, "shift_date <= "+addArg(*filter.To))
	}
	if filter.Status != nil {
		conditions = append(conditions, "status = "+addArg(string(*filter.Status)))
	}
	if nextToken != nil && *nextToken != "" {
		cursor, err := pagination.DecodeToken(*nextToken)
		if err != nil {
			return nil, nil, apperrors.NewAppError(http.StatusBadRequest, "invalid nextToken", errors.Join(apperrors.ErrValidation, err))
		}
		conditions = append(conditions, "(shift_date, created_at, cash_register_id) < ("+
			addArg(cursor.Date)+"::date, "+addArg(cursor.CreatedAt)+", "+addArg(cursor.ID)+"::uuid)")
	}

	query := `SELECT ` + cashRegisterColumns + `
		FROM cash_registers
		WHERE ` + strings.Join(conditions, " AND ") + `
		ORDER BY shift_date DESC, created_at DESC, cash_register_id DESC
		LIMIT ` + addArg(fetchLimit) + `;`

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, internalError("failed to query cash registers", err)
	}
	defer rows.Close()

	ms := make([]models.CashRegister, 0, fetchLimit)
	for rows.Next() {
		m, err := scanCashRegister(rows)
		if err != nil {
			return nil, nil, internalError("failed to scan cash register row", err)
		}
		ms = append(ms, m)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, internalError("error iterating cash register rows", err)
	}

	var next *string
	if len(ms) > limit {
		ms = ms[:limit]
		last := ms[limit-1]
		token := pagination.EncodeToken(pagination.Cursor{Date: last.ShiftDate, CreatedAt: last.CreatedAt, ID: last.CashRegisterID})
		next = &token
	}
	return mapping.ToDomainCashRegisterSlice(ms), next, nil
}

// UpdateCashRegisterStatus writes the review outcome only while the stored status equals fromStatus.
func (r *PgxCashRegisterRepository) UpdateCashRegisterStatus(ctx context.Context, cashRegister domain.CashRegister, fromStatus domain.CashRegisterStatus) error {
	m := mapping.ToModelCashRegister(cashRegister)
	query := `
		UPDATE cash_registers
		SET status = $1,
		    expected_total = $2,
		    expected_source = $3,
		    difference = $4,
		    review_notes = $5,
		    reviewed_by = $6,
		    reviewed_at = $7,
		    last_updated_at = $8,
		    last_updated_by = $9
		WHERE cash_register_id = $10 AND status = $11;
	`
	cmdTag, err := r.Pool.Exec(ctx, query,
		m.Status,
		m.ExpectedTotal,
		m.ExpectedSource,
		m.Difference,
		m.ReviewNotes,
		m.ReviewedBy,
		m.ReviewedAt,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
		m.CashRegisterID,
		string(fromStatus),
	)
	if err != nil {
		return internalError("failed to update status of cash register "+m.CashRegisterID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.NewAppError(http.StatusConflict, "cash register "+m.CashRegisterID+" is no longer "+string(fromStatus), apperrors.ErrConflict)
	}
	return nil
}

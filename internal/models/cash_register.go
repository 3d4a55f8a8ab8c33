package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// CashRegister is a row of the cash_registers table.
type CashRegister struct {
	CashRegisterID   string              `db:"cash_register_id"`
	CashierID        string              `db:"cashier_id"`
	ShiftDate        time.Time           `db:"shift_date"`
	OpeningBalance   decimal.Decimal     `db:"opening_balance"`
	ServicesCash     decimal.Decimal     `db:"services_cash"`
	ServicesCard     decimal.Decimal     `db:"services_card"`
	ServicesTransfer decimal.Decimal     `db:"services_transfer"`
	ProductsCash     decimal.Decimal     `db:"products_cash"`
	ProductsCard     decimal.Decimal     `db:"products_card"`
	ProductsTransfer decimal.Decimal     `db:"products_transfer"`
	OtherIncome      decimal.Decimal     `db:"other_income"`
	OtherIncomeNote  string              `db:"other_income_note"`
	CashierNotes     string              `db:"cashier_notes"`
	TotalCash        decimal.Decimal     `db:"total_cash"`
	TotalCard        decimal.Decimal     `db:"total_card"`
	TotalTransfer    decimal.Decimal     `db:"total_transfer"`
	TotalExpenses    decimal.Decimal     `db:"total_expenses"`
	TotalWithdrawals decimal.Decimal     `db:"total_withdrawals"`
	ClosingBalance   decimal.Decimal     `db:"closing_balance"`
	ExpectedTotal    decimal.NullDecimal `db:"expected_total"`
	ExpectedSource   *string             `db:"expected_source"` // Nullable
	Difference       decimal.NullDecimal `db:"difference"`
	Status           string              `db:"status"`
	ReviewNotes      string              `db:"review_notes"`
	ReviewedBy       *string             `db:"reviewed_by"` // Nullable
	ReviewedAt       *time.Time          `db:"reviewed_at"` // Nullable
	AuditFields
}

// DailyExpense is a row of the daily_expenses table.
type DailyExpense struct {
	ExpenseID      string          `db:"expense_id"`
	CashRegisterID string          `db:"cash_register_id"`
	Description    string          `db:"description"`
	Amount         decimal.Decimal `db:"amount"`
	Category       string          `db:"category"`
	CreatedAt      time.Time       `db:"created_at"`
}

// CashWithdrawal is a row of the cash_withdrawals table.
type CashWithdrawal struct {
	WithdrawalID   string          `db:"withdrawal_id"`
	CashRegisterID string          `db:"cash_register_id"`
	Description    string          `db:"description"`
	Amount         decimal.Decimal `db:"amount"`
	AuthorizedBy   string          `db:"authorized_by"`
	CreatedAt      time.Time       `db:"created_at"`
}

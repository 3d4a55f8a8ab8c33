package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// CashRegisterStatus is the lifecycle state of a cash register shift.
type CashRegisterStatus string

const (
	CashRegisterPending  CashRegisterStatus = "pending"
	CashRegisterApproved CashRegisterStatus = "approved"
	CashRegisterRejected CashRegisterStatus = "rejected"
	CashRegisterVoided   CashRegisterStatus = "voided"
)

// ExpectedSource records where the reviewer took the expected total from.
type ExpectedSource string

const (
	// ExpectedSourceManual is a figure typed by the reviewer, e.g. copied from the legacy system.
	ExpectedSourceManual ExpectedSource = "manual"
	// ExpectedSourcePayments is the sum of completed payments for the shift date.
	ExpectedSourcePayments ExpectedSource = "payments"
)

// DifferenceLabel is the display classification of a declared-vs-expected difference.
type DifferenceLabel string

const (
	DifferenceBalanced DifferenceLabel = "cuadrado"
	DifferenceSurplus  DifferenceLabel = "sobrante"
	DifferenceShortage DifferenceLabel = "faltante"
)

var cashRegisterTransitions = map[CashRegisterStatus][]CashRegisterStatus{
	CashRegisterPending:  {CashRegisterApproved, CashRegisterRejected, CashRegisterVoided},
	CashRegisterRejected: {CashRegisterVoided},
}

// IsValid reports whether s is a known status.
func (s CashRegisterStatus) IsValid() bool {
	switch s {
	case CashRegisterPending, CashRegisterApproved, CashRegisterRejected, CashRegisterVoided:
		return true
	}
	return false
}

// CanTransitionTo reports whether the lifecycle allows moving from s to next.
// Approved and voided are terminal.
func (s CashRegisterStatus) CanTransitionTo(next CashRegisterStatus) bool {
	for _, allowed := range cashRegisterTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// ChannelIncome is the declared income split by line of business and payment channel.
type ChannelIncome struct {
	ServicesCash     decimal.Decimal `json:"servicesCash"`
	ServicesCard     decimal.Decimal `json:"servicesCard"`
	ServicesTransfer decimal.Decimal `json:"servicesTransfer"`
	ProductsCash     decimal.Decimal `json:"productsCash"`
	ProductsCard     decimal.Decimal `json:"productsCard"`
	ProductsTransfer decimal.Decimal `json:"productsTransfer"`
}

// DailyExpense is an expense paid out of the drawer during the shift.
type DailyExpense struct {
	ExpenseID      string          `json:"expenseID"`
	CashRegisterID string          `json:"cashRegisterID"`
	Description    string          `json:"description"`
	Amount         decimal.Decimal `json:"amount"`
	Category       string          `json:"category"`
	CreatedAt      time.Time       `json:"createdAt"`
}

// CashWithdrawal is money taken out of the drawer with someone's authorization.
type CashWithdrawal struct {
	WithdrawalID   string          `json:"withdrawalID"`
	CashRegisterID string          `json:"cashRegisterID"`
	Description    string          `json:"description"`
	Amount         decimal.Decimal `json:"amount"`
	AuthorizedBy   string          `json:"authorizedBy"`
	CreatedAt      time.Time       `json:"createdAt"`
}

// CashTotals is the derived part of a shift, computed from declared figures.
type CashTotals struct {
	TotalCash        decimal.Decimal `json:"totalCash"`
	TotalCard        decimal.Decimal `json:"totalCard"`
	TotalTransfer    decimal.Decimal `json:"totalTransfer"`
	TotalExpenses    decimal.Decimal `json:"totalExpenses"`
	TotalWithdrawals decimal.Decimal `json:"totalWithdrawals"`
	ClosingBalance   decimal.Decimal `json:"closingBalance"`
}

// CashRegister is one cashier's end-of-day reconciliation for a calendar day.
type CashRegister struct {
	CashRegisterID  string           `json:"cashRegisterID"`
	CashierID       string           `json:"cashierID"`
	ShiftDate       time.Time        `json:"shiftDate"` // civil date, midnight UTC
	OpeningBalance  decimal.Decimal  `json:"openingBalance"`
	Income          ChannelIncome    `json:"income"`
	OtherIncome     decimal.Decimal  `json:"otherIncome"`
	OtherIncomeNote string           `json:"otherIncomeNote"`
	CashierNotes    string           `json:"cashierNotes"`
	Expenses        []DailyExpense   `json:"expenses"`
	Withdrawals     []CashWithdrawal `json:"withdrawals"`
	CashTotals
	ExpectedTotal  *decimal.Decimal   `json:"expectedTotal"`
	ExpectedSource *ExpectedSource    `json:"expectedSource"`
	Difference     *decimal.Decimal   `json:"difference"`
	Status         CashRegisterStatus `json:"status"`
	ReviewNotes    string             `json:"reviewNotes"`
	ReviewedBy     *string            `json:"reviewedBy"`
	ReviewedAt     *time.Time         `json:"reviewedAt"`
	AuditFields
}

// ComputeTotals applies the closing formula:
// closing = opening + servicesCash + productsCash + otherIncome - Σexpenses - Σwithdrawals.
// Card and transfer income never reach the drawer, so they only feed their own totals.
func ComputeTotals(opening decimal.Decimal, income ChannelIncome, otherIncome decimal.Decimal, expenses []DailyExpense, withdrawals []CashWithdrawal) CashTotals {
	totals := CashTotals{
		TotalCash:        income.ServicesCash.Add(income.ProductsCash).Add(otherIncome),
		TotalCard:        income.ServicesCard.Add(income.ProductsCard),
		TotalTransfer:    income.ServicesTransfer.Add(income.ProductsTransfer),
		TotalExpenses:    decimal.Zero,
		TotalWithdrawals: decimal.Zero,
	}
	for _, e := range expenses {
		totals.TotalExpenses = totals.TotalExpenses.Add(e.Amount)
	}
	for _, w := range withdrawals {
		totals.TotalWithdrawals = totals.TotalWithdrawals.Add(w.Amount)
	}
	totals.ClosingBalance = opening.Add(totals.TotalCash).Sub(totals.TotalExpenses).Sub(totals.TotalWithdrawals)
	return totals
}

// Recalculate refreshes the derived totals from the declared figures.
func (c *CashRegister) Recalculate() {
	c.CashTotals = ComputeTotals(c.OpeningBalance, c.Income, c.OtherIncome, c.Expenses, c.Withdrawals)
}

// Difference returns declared - expected. Positive means more money than expected.
func Difference(declared, expected decimal.Decimal) decimal.Decimal {
	return declared.Sub(expected)
}

// IsDiscrepancy reports whether |diff| exceeds tolerance. Only used for display.
func IsDiscrepancy(diff, tolerance decimal.Decimal) bool {
	return diff.Abs().GreaterThan(tolerance)
}

// ClassifyDifference labels diff for display; anything within tolerance counts as balanced.
func ClassifyDifference(diff, tolerance decimal.Decimal) DifferenceLabel {
	switch {
	case !IsDiscrepancy(diff, tolerance):
		return DifferenceBalanced
	case diff.IsPositive():
		return DifferenceSurplus
	default:
		return DifferenceShortage
	}
}

// IsCurrentFor reports whether c blocks a new submission by the same cashier on day.
func (c *CashRegister) IsCurrentFor(day time.Time) bool {
	return c.Status != CashRegisterVoided && c.ShiftDate.Equal(day)
}

package domain_test

import (
	"testing"
	"time"

	"github.com/SscSPs/dental_clinic_app/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestComputeTotals(t *testing.T) {
	tests := []struct {
		name        string
		opening     decimal.Decimal
		income      domain.ChannelIncome
		other       decimal.Decimal
		expenses    []domain.DailyExpense
		withdrawals []domain.CashWithdrawal
		want        domain.CashTotals
	}{
		{
			name:    "cash only with one expense",
			opening: d("1000"),
			income:  domain.ChannelIncome{ServicesCash: d("500"), ProductsCash: d("200")},
			other:   decimal.Zero,
			expenses: []domain.DailyExpense{
				{Description: "supplies", Amount: d("100")},
			},
			want: domain.CashTotals{
				TotalCash:        d("700"),
				TotalCard:        decimal.Zero,
				TotalTransfer:    decimal.Zero,
				TotalExpenses:    d("100"),
				TotalWithdrawals: decimal.Zero,
				ClosingBalance:   d("1600"),
			},
		},
		{
			name:    "card and transfer do not reach the drawer",
			opening: d("50"),
			income: domain.ChannelIncome{
				ServicesCash:     d("10.50"),
				ServicesCard:     d("300"),
				ServicesTransfer: d("120"),
				ProductsCash:     d("4.25"),
				ProductsCard:     d("80"),
				ProductsTransfer: d("15"),
			},
			other: d("5"),
			withdrawals: []domain.CashWithdrawal{
				{Description: "bank deposit", Amount: d("20"), AuthorizedBy: "Dr. Ruiz"},
				{Description: "change", Amount: d("5.75"), AuthorizedBy: "Dr. Ruiz"},
			},
			want: domain.CashTotals{
				TotalCash:        d("19.75"),
				TotalCard:        d("380"),
				TotalTransfer:    d("135"),
				TotalExpenses:    decimal.Zero,
				TotalWithdrawals: d("25.75"),
				ClosingBalance:   d("44"),
			},
		},
		{
			name:    "closing may go negative",
			opening: decimal.Zero,
			expenses: []domain.DailyExpense{
				{Description: "lunch", Amount: d("12")},
			},
			want: domain.CashTotals{
				TotalCash:        decimal.Zero,
				TotalCard:        decimal.Zero,
				TotalTransfer:    decimal.Zero,
				TotalExpenses:    d("12"),
				TotalWithdrawals: decimal.Zero,
				ClosingBalance:   d("-12"),
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := domain.ComputeTotals(tt.opening, tt.income, tt.other, tt.expenses, tt.withdrawals)
			assert.True(t, tt.want.TotalCash.Equal(got.TotalCash), "total cash: got %s", got.TotalCash)
			assert.True(t, tt.want.TotalCard.Equal(got.TotalCard), "total card: got %s", got.TotalCard)
			assert.True(t, tt.want.TotalTransfer.Equal(got.TotalTransfer), "total transfer: got %s", got.TotalTransfer)
			assert.True(t, tt.want.TotalExpenses.Equal(got.TotalExpenses), "total expenses: got %s", got.TotalExpenses)
			assert.True(t, tt.want.TotalWithdrawals.Equal(got.TotalWithdrawals), "total withdrawals: got %s", got.TotalWithdrawals)
			assert.True(t, tt.want.ClosingBalance.Equal(got.ClosingBalance), "closing: got %s", got.ClosingBalance)
		})
	}
}

func TestCashRegister_Recalculate(t *testing.T) {
	cr := domain.CashRegister{
		OpeningBalance: d("1000"),
		Income:         domain.ChannelIncome{ServicesCash: d("500"), ProductsCash: d("200")},
		Expenses:       []domain.DailyExpense{{Description: "gauze", Amount: d("100")}},
	}
	cr.Recalculate()
	assert.Equal(t, "1600", cr.ClosingBalance.String())
}

func TestStatusTransitions(t *testing.T) {
	tests := []struct {
		from domain.CashRegisterStatus
		to   domain.CashRegisterStatus
		want bool
	}{
		{domain.CashRegisterPending, domain.CashRegisterApproved, true},
		{domain.CashRegisterPending, domain.CashRegisterRejected, true},
		{domain.CashRegisterPending, domain.CashRegisterVoided, true},
		{domain.CashRegisterRejected, domain.CashRegisterVoided, true},
		{domain.CashRegisterRejected, domain.CashRegisterApproved, false},
		{domain.CashRegisterRejected, domain.CashRegisterPending, false},
		{domain.CashRegisterApproved, domain.CashRegisterRejected, false},
		{domain.CashRegisterApproved, domain.CashRegisterVoided, false},
		{domain.CashRegisterApproved, domain.CashRegisterPending, false},
		{domain.CashRegisterVoided, domain.CashRegisterPending, false},
		{domain.CashRegisterPending, domain.CashRegisterPending, false},
	}
	for _, tt := range tests {
		t.Run(string(tt.from)+"->"+string(tt.to), func(t *testing.T) {
			assert.Equal(t, tt.want, tt.from.CanTransitionTo(tt.to))
		})
	}
}

func TestClassifyDifference(t *testing.T) {
	tolerance := d("1.00")

	diff := domain.Difference(d("1600"), d("1550"))
	assert.Equal(t, "50", diff.String())
	assert.Equal(t, domain.DifferenceSurplus, domain.ClassifyDifference(diff, tolerance))
	assert.True(t, domain.IsDiscrepancy(diff, tolerance))

	short := domain.Difference(d("1500"), d("1550"))
	assert.Equal(t, domain.DifferenceShortage, domain.ClassifyDifference(short, tolerance))

	within := domain.Difference(d("1550.60"), d("1550"))
	assert.Equal(t, domain.DifferenceBalanced, domain.ClassifyDifference(within, tolerance))
	assert.False(t, domain.IsDiscrepancy(within, tolerance))

	edge := domain.Difference(d("1549"), d("1550"))
	assert.Equal(t, domain.DifferenceBalanced, domain.ClassifyDifference(edge, tolerance))
}

func TestCashRegister_IsCurrentFor(t *testing.T) {
	today := time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC)
	yesterday := today.AddDate(0, 0, -1)

	assert.True(t, (&domain.CashRegister{ShiftDate: today, Status: domain.CashRegisterPending}).IsCurrentFor(today))
	assert.True(t, (&domain.CashRegister{ShiftDate: today, Status: domain.CashRegisterRejected}).IsCurrentFor(today))
	assert.False(t, (&domain.CashRegister{ShiftDate: today, Status: domain.CashRegisterVoided}).IsCurrentFor(today))
	assert.False(t, (&domain.CashRegister{ShiftDate: yesterday, Status: domain.CashRegisterPending}).IsCurrentFor(today))
}

func TestCivilDate(t *testing.T) {
	lima, err := time.LoadLocation("America/Lima")
	if err != nil {
		t.Skip("timezone database unavailable")
	}
	// 02:30 UTC on the 15th is still the evening of the 14th in Lima (UTC-5).
	instant := time.Date(2026, 3, 15, 2, 30, 0, 0, time.UTC)
	assert.Equal(t, time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC), domain.CivilDate(instant, lima))
	assert.Equal(t, time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC), domain.CivilDate(instant, nil))
}

func TestAuditSession_IsActive(t *testing.T) {
	start := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	s := domain.AuditSession{StartsAt: start, ExpiresAt: start.Add(2 * time.Hour)}

	assert.False(t, s.IsActive(start.Add(-time.Minute)))
	assert.True(t, s.IsActive(start))
	assert.True(t, s.IsActive(start.Add(time.Hour)))
	assert.False(t, s.IsActive(start.Add(2*time.Hour)))

	revokedAt := start.Add(10 * time.Minute)
	s.RevokedAt = &revokedAt
	assert.False(t, s.IsActive(start.Add(time.Hour)))
}

func TestRolePermissions(t *testing.T) {
	assert.True(t, domain.RoleCashier.CanSubmitCashRegisters())
	assert.True(t, domain.RoleReceptionist.CanSubmitCashRegisters())
	assert.False(t, domain.RoleDoctor.CanSubmitCashRegisters())
	assert.False(t, domain.RoleAuditor.CanSubmitCashRegisters())

	assert.True(t, domain.RoleAdmin.CanReviewCashRegisters())
	assert.False(t, domain.RoleCashier.CanReviewCashRegisters())
	assert.False(t, domain.RoleAuditor.CanReviewCashRegisters())

	assert.True(t, domain.RoleAuditor.CanSeeAllCashRegisters())
	assert.True(t, domain.RoleAuditor.IsReadOnly())
	assert.False(t, domain.Role("owner").IsValid())
}

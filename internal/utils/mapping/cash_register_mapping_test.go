package mapping

import (
	"testing"
	"time"

	"github.com/SscSPs/dental_clinic_app/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCashRegisterMapping_ReviewFields(t *testing.T) {
	expected := decimal.RequireFromString("1550")
	diff := decimal.RequireFromString("50")
	src := domain.ExpectedSourceManual
	reviewer := "admin-1"
	reviewedAt := time.Date(2026, 3, 15, 9, 0, 0, 0, time.UTC)

	d := domain.CashRegister{
		CashRegisterID: "cr-1",
		CashierID:      "cashier-1",
		ShiftDate:      time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC),
		OpeningBalance: decimal.RequireFromString("1000"),
		Income:         domain.ChannelIncome{ServicesCash: decimal.RequireFromString("500")},
		ExpectedTotal:  &expected,
		ExpectedSource: &src,
		Difference:     &diff,
		Status:         domain.CashRegisterApproved,
		ReviewedBy:     &reviewer,
		ReviewedAt:     &reviewedAt,
	}

	m := ToModelCashRegister(d)
	assert.True(t, m.ExpectedTotal.Valid)
	require.NotNil(t, m.ExpectedSource)
	assert.Equal(t, "manual", *m.ExpectedSource)
	assert.Equal(t, "approved", m.Status)

	back := ToDomainCashRegister(m)
	require.NotNil(t, back.ExpectedTotal)
	assert.True(t, expected.Equal(*back.ExpectedTotal))
	require.NotNil(t, back.ExpectedSource)
	assert.Equal(t, domain.ExpectedSourceManual, *back.ExpectedSource)
	assert.Equal(t, "500", back.Income.ServicesCash.String())
	assert.NotNil(t, back.Expenses)
	assert.NotNil(t, back.Withdrawals)
}

func TestCashRegisterMapping_PendingHasNoReview(t *testing.T) {
	m := ToModelCashRegister(domain.CashRegister{Status: domain.CashRegisterPending})
	assert.False(t, m.ExpectedTotal.Valid)
	assert.False(t, m.Difference.Valid)
	assert.Nil(t, m.ExpectedSource)

	back := ToDomainCashRegister(m)
	assert.Nil(t, back.ExpectedTotal)
	assert.Nil(t, back.Difference)
	assert.Nil(t, back.ExpectedSource)
}

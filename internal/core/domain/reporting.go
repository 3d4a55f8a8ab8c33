package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// CashSummaryDay aggregates approved shifts for one calendar day.
type CashSummaryDay struct {
	Date             time.Time       `json:"date"`
	Shifts           int             `json:"shifts"`
	TotalCash        decimal.Decimal `json:"totalCash"`
	TotalCard        decimal.Decimal `json:"totalCard"`
	TotalTransfer    decimal.Decimal `json:"totalTransfer"`
	TotalExpenses    decimal.Decimal `json:"totalExpenses"`
	TotalWithdrawals decimal.Decimal `json:"totalWithdrawals"`
	ClosingBalance   decimal.Decimal `json:"closingBalance"`
	ExpectedTotal    decimal.Decimal `json:"expectedTotal"`
	Difference       decimal.Decimal `json:"difference"`
}

// CashSummaryReport is the cash summary for a date range.
type CashSummaryReport struct {
	From         time.Time                  `json:"from"`
	To           time.Time                  `json:"to"`
	Days         []CashSummaryDay           `json:"days"`
	Totals       CashSummaryDay             `json:"totals"`
	StatusCounts map[CashRegisterStatus]int `json:"statusCounts"`
}

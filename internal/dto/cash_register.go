package dto

import (
	"time"

	"github.com/SscSPs/dental_clinic_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// ExpenseRequest is one expense line item in a submission.
type ExpenseRequest struct {
	Description string          `json:"description" binding:"required,max=255"`
	Amount      decimal.Decimal `json:"amount" binding:"gt=0"`
	Category    string          `json:"category" binding:"max=64"`
}

// WithdrawalRequest is one withdrawal line item in a submission.
type WithdrawalRequest struct {
	Description  string          `json:"description" binding:"required,max=255"`
	Amount       decimal.Decimal `json:"amount" binding:"gt=0"`
	AuthorizedBy string          `json:"authorizedBy" binding:"required,max=128"`
}

// SubmitCashRegisterRequest is the cashier's end-of-day declaration.
type SubmitCashRegisterRequest struct {
	OpeningBalance   decimal.Decimal     `json:"openingBalance" binding:"gte=0"`
	ServicesCash     decimal.Decimal     `json:"servicesCash" binding:"gte=0"`
	ServicesCard     decimal.Decimal     `json:"servicesCard" binding:"gte=0"`
	ServicesTransfer decimal.Decimal     `json:"servicesTransfer" binding:"gte=0"`
	ProductsCash     decimal.Decimal     `json:"productsCash" binding:"gte=0"`
	ProductsCard     decimal.Decimal     `json:"productsCard" binding:"gte=0"`
	ProductsTransfer decimal.Decimal     `json:"productsTransfer" binding:"gte=0"`
	OtherIncome      decimal.Decimal     `json:"otherIncome" binding:"gte=0"`
	OtherIncomeNote  string              `json:"otherIncomeNote" binding:"max=255"`
	CashierNotes     string              `json:"cashierNotes" binding:"max=1000"`
	Expenses         []ExpenseRequest    `json:"expenses" binding:"dive"`
	Withdrawals      []WithdrawalRequest `json:"withdrawals" binding:"dive"`
}

// ApproveCashRegisterRequest carries the reviewer's chosen expected figure.
// ExpectedTotal is required when ExpectedSource is manual and ignored otherwise.
type ApproveCashRegisterRequest struct {
	ExpectedSource domain.ExpectedSource `json:"expectedSource" binding:"required,oneof=manual payments"`
	ExpectedTotal  *decimal.Decimal      `json:"expectedTotal" binding:"omitempty,gte=0"`
	Notes          string                `json:"notes" binding:"max=1000"`
}

// RejectCashRegisterRequest must explain the rejection.
type RejectCashRegisterRequest struct {
	Notes string `json:"notes" binding:"required,max=1000"`
}

// VoidCashRegisterRequest records why a shift is being discarded.
type VoidCashRegisterRequest struct {
	Reason string `json:"reason" binding:"required,max=1000"`
}

// ListCashRegistersParams defines query parameters for listing shifts.
type ListCashRegistersParams struct {
	From      string  `form:"from" binding:"omitempty,datetime=2006-01-02"`
	To        string  `form:"to" binding:"omitempty,datetime=2006-01-02"`
	Status    string  `form:"status" binding:"omitempty,oneof=pending approved rejected voided"`
	CashierID string  `form:"cashierID" binding:"omitempty,uuid"`
	Limit     int     `form:"limit,default=20" binding:"min=1,max=100"`
	NextToken *string `form:"nextToken"`
}

// ExpenseResponse mirrors domain.DailyExpense.
type ExpenseResponse struct {
	ExpenseID   string          `json:"expenseID"`
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
	Category    string          `json:"category"`
}

// WithdrawalResponse mirrors domain.CashWithdrawal.
type WithdrawalResponse struct {
	WithdrawalID string          `json:"withdrawalID"`
	Description  string          `json:"description"`
	Amount       decimal.Decimal `json:"amount"`
	AuthorizedBy string          `json:"authorizedBy"`
}

// CashRegisterResponse defines the data returned for a shift.
type CashRegisterResponse struct {
	CashRegisterID   string                 `json:"cashRegisterID"`
	CashierID        string                 `json:"cashierID"`
	ShiftDate        string                 `json:"shiftDate"`
	Status           string                 `json:"status"`
	OpeningBalance   decimal.Decimal        `json:"openingBalance"`
	Income           domain.ChannelIncome   `json:"income"`
	OtherIncome      decimal.Decimal        `json:"otherIncome"`
	OtherIncomeNote  string                 `json:"otherIncomeNote"`
	CashierNotes     string                 `json:"cashierNotes"`
	Expenses         []ExpenseResponse      `json:"expenses"`
	Withdrawals      []WithdrawalResponse   `json:"withdrawals"`
	TotalCash        decimal.Decimal        `json:"totalCash"`
	TotalCard        decimal.Decimal        `json:"totalCard"`
	TotalTransfer    decimal.Decimal        `json:"totalTransfer"`
	TotalExpenses    decimal.Decimal        `json:"totalExpenses"`
	TotalWithdrawals decimal.Decimal        `json:"totalWithdrawals"`
	ClosingBalance   decimal.Decimal        `json:"closingBalance"`
	ExpectedTotal    *decimal.Decimal       `json:"expectedTotal"`
	ExpectedSource   *domain.ExpectedSource `json:"expectedSource"`
	Difference       *decimal.Decimal       `json:"difference"`
	DifferenceLabel  *string                `json:"differenceLabel"`
	Discrepancy      bool                   `json:"discrepancy"`
	ReviewNotes      string                 `json:"reviewNotes"`
	ReviewedBy       *string                `json:"reviewedBy"`
	ReviewedAt       *time.Time             `json:"reviewedAt"`
	CreatedAt        time.Time              `json:"createdAt"`
	LastUpdatedAt    time.Time              `json:"lastUpdatedAt"`
}

// ListCashRegistersResponse wraps a page of shifts.
type ListCashRegistersResponse struct {
	CashRegisters []CashRegisterResponse `json:"cashRegisters"`
	NextToken     *string                `json:"nextToken,omitempty"`
}

// ExpectedTotalResponse is the payments-based expected figure for a shift.
type ExpectedTotalResponse struct {
	CashRegisterID  string          `json:"cashRegisterID"`
	ShiftDate       string          `json:"shiftDate"`
	Cash            decimal.Decimal `json:"cash"`
	Card            decimal.Decimal `json:"card"`
	Transfer        decimal.Decimal `json:"transfer"`
	Total           decimal.Decimal `json:"total"`
	PaymentCount    int             `json:"paymentCount"`
	DeclaredClosing decimal.Decimal `json:"declaredClosing"`
	Difference      decimal.Decimal `json:"difference"`
	DifferenceLabel string          `json:"differenceLabel"`
	Discrepancy     bool            `json:"discrepancy"`
}

// ToCashRegisterResponse converts a domain.CashRegister to its DTO.
// tolerance only drives the discrepancy flag and label.
func ToCashRegisterResponse(cr *domain.CashRegister, tolerance decimal.Decimal) CashRegisterResponse {
	resp := CashRegisterResponse{
		CashRegisterID:   cr.CashRegisterID,
		CashierID:        cr.CashierID,
		ShiftDate:        cr.ShiftDate.Format(domain.CivilDateLayout),
		Status:           string(cr.Status),
		OpeningBalance:   cr.OpeningBalance,
		Income:           cr.Income,
		OtherIncome:      cr.OtherIncome,
		OtherIncomeNote:  cr.OtherIncomeNote,
		CashierNotes:     cr.CashierNotes,
		Expenses:         make([]ExpenseResponse, len(cr.Expenses)),
		Withdrawals:      make([]WithdrawalResponse, len(cr.Withdrawals)),
		TotalCash:        cr.TotalCash,
		TotalCard:        cr.TotalCard,
		TotalTransfer:    cr.TotalTransfer,
		TotalExpenses:    cr.TotalExpenses,
		TotalWithdrawals: cr.TotalWithdrawals,
		ClosingBalance:   cr.ClosingBalance,
		ExpectedTotal:    cr.ExpectedTotal,
		ExpectedSource:   cr.ExpectedSource,
		Difference:       cr.Difference,
		ReviewNotes:      cr.ReviewNotes,
		ReviewedBy:       cr.ReviewedBy,
		ReviewedAt:       cr.ReviewedAt,
		CreatedAt:        cr.CreatedAt,
		LastUpdatedAt:    cr.LastUpdatedAt,
	}
	for i, e := range cr.Expenses {
		resp.Expenses[i] = ExpenseResponse{ExpenseID: e.ExpenseID, Description: e.Description, Amount: e.Amount, Category: e.Category}
	}
	for i, w := range cr.Withdrawals {
		resp.Withdrawals[i] = WithdrawalResponse{WithdrawalID: w.WithdrawalID, Description: w.Description, Amount: w.Amount, AuthorizedBy: w.AuthorizedBy}
	}
	if cr.Difference != nil {
		label := string(domain.ClassifyDifference(*cr.Difference, tolerance))
		resp.DifferenceLabel = &label
		resp.Discrepancy = domain.IsDiscrepancy(*cr.Difference, tolerance)
	}
	return resp
}

// ToListCashRegistersResponse converts a page of shifts to its DTO.
func ToListCashRegistersResponse(crs []domain.CashRegister, nextToken *string, tolerance decimal.Decimal) ListCashRegistersResponse {
	res := make([]CashRegisterResponse, len(crs))
	for i := range crs {
		res[i] = ToCashRegisterResponse(&crs[i], tolerance)
	}
	return ListCashRegistersResponse{CashRegisters: res, NextToken: nextToken}
}

// ToExpectedTotalResponse compares a shift's declared closing with payments-based totals.
func ToExpectedTotalResponse(cr *domain.CashRegister, totals *domain.PaymentTotals, tolerance decimal.Decimal) ExpectedTotalResponse {
	diff := domain.Difference(cr.ClosingBalance, totals.Total)
	return ExpectedTotalResponse{
		CashRegisterID:  cr.CashRegisterID,
		ShiftDate:       cr.ShiftDate.Format(domain.CivilDateLayout),
		Cash:            totals.Cash,
		Card:            totals.Card,
		Transfer:        totals.Transfer,
		Total:           totals.Total,
		PaymentCount:    totals.Count,
		DeclaredClosing: cr.ClosingBalance,
		Difference:      diff,
		DifferenceLabel: string(domain.ClassifyDifference(diff, tolerance)),
		Discrepancy:     domain.IsDiscrepancy(diff, tolerance),
	}
}

package mapping

import (
	"github.com/SscSPs/dental_clinic_app/internal/core/domain"
	"github.com/SscSPs/dental_clinic_app/internal/models"
	"github.com/shopspring/decimal"
)

// ToModelCashRegister converts a domain CashRegister to a model CashRegister.
// Children are mapped separately.
func ToModelCashRegister(d domain.CashRegister) models.CashRegister {
	m := models.CashRegister{
		CashRegisterID:   d.CashRegisterID,
		CashierID:        d.CashierID,
		ShiftDate:        d.ShiftDate,
		OpeningBalance:   d.OpeningBalance,
		ServicesCash:     d.Income.ServicesCash,
		ServicesCard:     d.Income.ServicesCard,
		ServicesTransfer: d.Income.ServicesTransfer,
		ProductsCash:     d.Income.ProductsCash,
		ProductsCard:     d.Income.ProductsCard,
		ProductsTransfer: d.Income.ProductsTransfer,
		OtherIncome:      d.OtherIncome,
		OtherIncomeNote:  d.OtherIncomeNote,
		CashierNotes:     d.CashierNotes,
		TotalCash:        d.TotalCash,
		TotalCard:        d.TotalCard,
		TotalTransfer:    d.TotalTransfer,
		TotalExpenses:    d.TotalExpenses,
		TotalWithdrawals: d.TotalWithdrawals,
		ClosingBalance:   d.ClosingBalance,
		ExpectedTotal:    toNullDecimal(d.ExpectedTotal),
		Difference:       toNullDecimal(d.Difference),
		Status:           string(d.Status),
		ReviewNotes:      d.ReviewNotes,
		ReviewedBy:       d.ReviewedBy,
		ReviewedAt:       d.ReviewedAt,
		AuditFields:      ToModelAuditFields(d.AuditFields),
	}
	if d.ExpectedSource != nil {
		src := string(*d.ExpectedSource)
		m.ExpectedSource = &src
	}
	return m
}

// ToDomainCashRegister converts a model CashRegister to a domain CashRegister
// with empty expense and withdrawal lists.
func ToDomainCashRegister(m models.CashRegister) domain.CashRegister {
	d := domain.CashRegister{
		CashRegisterID: m.CashRegisterID,
		CashierID:      m.CashierID,
		ShiftDate:      m.ShiftDate,
		OpeningBalance: m.OpeningBalance,
		Income: domain.ChannelIncome{
			ServicesCash:     m.ServicesCash,
			ServicesCard:     m.ServicesCard,
			ServicesTransfer: m.ServicesTransfer,
			ProductsCash:     m.ProductsCash,
			ProductsCard:     m.ProductsCard,
			ProductsTransfer: m.ProductsTransfer,
		},
		OtherIncome:     m.OtherIncome,
		OtherIncomeNote: m.OtherIncomeNote,
		CashierNotes:    m.CashierNotes,
		Expenses:        []domain.DailyExpense{},
		Withdrawals:     []domain.CashWithdrawal{},
		CashTotals: domain.CashTotals{
			TotalCash:        m.TotalCash,
			TotalCard:        m.TotalCard,
			TotalTransfer:    m.TotalTransfer,
			TotalExpenses:    m.TotalExpenses,
			TotalWithdrawals: m.TotalWithdrawals,
			ClosingBalance:   m.ClosingBalance,
		},
		ExpectedTotal: fromNullDecimal(m.ExpectedTotal),
		Difference:    fromNullDecimal(m.Difference),
		Status:        domain.CashRegisterStatus(m.Status),
		ReviewNotes:   m.ReviewNotes,
		ReviewedBy:    m.ReviewedBy,
		ReviewedAt:    m.ReviewedAt,
		AuditFields:   ToDomainAuditFields(m.AuditFields),
	}
	if m.ExpectedSource != nil {
		src := domain.ExpectedSource(*m.ExpectedSource)
		d.ExpectedSource = &src
	}
	return d
}

// ToDomainCashRegisterSlice converts a slice of model CashRegisters to domain CashRegisters
func ToDomainCashRegisterSlice(ms []models.CashRegister) []domain.CashRegister {
	ds := make([]domain.CashRegister, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainCashRegister(m)
	}
	return ds
}

// ToModelDailyExpense converts a domain DailyExpense to a model DailyExpense
func ToModelDailyExpense(d domain.DailyExpense) models.DailyExpense {
	return models.DailyExpense{
		ExpenseID:      d.ExpenseID,
		CashRegisterID: d.CashRegisterID,
		Description:    d.Description,
		Amount:         d.Amount,
		Category:       d.Category,
		CreatedAt:      d.CreatedAt,
	}
}

// ToDomainDailyExpense converts a model DailyExpense to a domain DailyExpense
func ToDomainDailyExpense(m models.DailyExpense) domain.DailyExpense {
	return domain.DailyExpense{
		ExpenseID:      m.ExpenseID,
		CashRegisterID: m.CashRegisterID,
		Description:    m.Description,
		Amount:         m.Amount,
		Category:       m.Category,
		CreatedAt:      m.CreatedAt,
	}
}

// ToModelCashWithdrawal converts a domain CashWithdrawal to a model CashWithdrawal
func ToModelCashWithdrawal(d domain.CashWithdrawal) models.CashWithdrawal {
	return models.CashWithdrawal{
		WithdrawalID:   d.WithdrawalID,
		CashRegisterID: d.CashRegisterID,
		Description:    d.Description,
		Amount:         d.Amount,
		AuthorizedBy:   d.AuthorizedBy,
		CreatedAt:      d.CreatedAt,
	}
}

// ToDomainCashWithdrawal converts a model CashWithdrawal to a domain CashWithdrawal
func ToDomainCashWithdrawal(m models.CashWithdrawal) domain.CashWithdrawal {
	return domain.CashWithdrawal{
		WithdrawalID:   m.WithdrawalID,
		CashRegisterID: m.CashRegisterID,
		Description:    m.Description,
		Amount:         m.Amount,
		AuthorizedBy:   m.AuthorizedBy,
		CreatedAt:      m.CreatedAt,
	}
}

func toNullDecimal(d *decimal.Decimal) decimal.NullDecimal {
	if d == nil {
		return decimal.NullDecimal{}
	}
	return decimal.NullDecimal{Decimal: *d, Valid: true}
}

func fromNullDecimal(n decimal.NullDecimal) *decimal.Decimal {
	if !n.Valid {
		return nil
	}
	d := n.Decimal
	return &d
}

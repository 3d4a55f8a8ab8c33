package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/dental_clinic_app/internal/core/domain"
)

// CashRegisterFilter narrows a cash register listing. Zero values mean "no filter".
type CashRegisterFilter struct {
	CashierID string
	From      *time.Time
	To        *time.Time
	Status    *domain.CashRegisterStatus
}

// CashRegisterReader defines read operations for cash register data
type CashRegisterReader interface {
	// FindCashRegisterByID retrieves a shift together with its expenses and withdrawals.
	FindCashRegisterByID(ctx context.Context, cashRegisterID string) (*domain.CashRegister, error)

	// FindCurrentCashRegister returns the most recent non-voided shift of a cashier for the given civil date.
	// Returns apperrors.ErrNotFound when the cashier may start a new shift.
	FindCurrentCashRegister(ctx context.Context, cashierID string, shiftDate time.Time) (*domain.CashRegister, error)

	// ListCashRegisters retrieves shifts newest first using token-based pagination.
	// Children are not loaded.
	ListCashRegisters(ctx context.Context, filter CashRegisterFilter, limit int, nextToken *string) ([]domain.CashRegister, *string, error)
}

// CashRegisterWriter defines write operations for cash register data
type CashRegisterWriter interface {
	// SaveCashRegister inserts the shift and then its children within one database transaction.
	SaveCashRegister(ctx context.Context, cashRegister domain.CashRegister) error

	// UpdateCashRegisterStatus persists a status change and the review fields, only if the stored
	// status still equals fromStatus. Returns apperrors.ErrConflict otherwise.
	UpdateCashRegisterStatus(ctx context.Context, cashRegister domain.CashRegister, fromStatus domain.CashRegisterStatus) error
}

// CashRegisterRepositoryFacade combines all cash register repository interfaces
type CashRegisterRepositoryFacade interface {
	CashRegisterReader
	CashRegisterWriter
}

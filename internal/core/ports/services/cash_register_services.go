package services

import (
	"context"

	"github.com/SscSPs/dental_clinic_app/internal/core/domain"
	"github.com/SscSPs/dental_clinic_app/internal/dto"
)

// CashRegisterSubmitterSvc defines the cashier side of the shift lifecycle
type CashRegisterSubmitterSvc interface {
	// SubmitCashRegister computes the totals and persists a pending shift with its children.
	SubmitCashRegister(ctx context.Context, req dto.SubmitCashRegisterRequest, actor domain.Actor) (*domain.CashRegister, error)

	// GetCurrentCashRegister returns the caller's non-voided shift for today.
	GetCurrentCashRegister(ctx context.Context, actor domain.Actor) (*domain.CashRegister, error)
}

// CashRegisterReaderSvc defines read operations for shifts
type CashRegisterReaderSvc interface {
	GetCashRegister(ctx context.Context, cashRegisterID string, actor domain.Actor) (*domain.CashRegister, error)
	ListCashRegisters(ctx context.Context, params dto.ListCashRegistersParams, actor domain.Actor) ([]domain.CashRegister, *string, error)
}

// CashRegisterReviewerSvc defines the reviewer side of the shift lifecycle
type CashRegisterReviewerSvc interface {
	// ComputeExpected sums completed payments for the shift date.
	ComputeExpected(ctx context.Context, cashRegisterID string, actor domain.Actor) (*domain.PaymentTotals, error)

	ApproveCashRegister(ctx context.Context, cashRegisterID string, req dto.ApproveCashRegisterRequest, actor domain.Actor) (*domain.CashRegister, error)
	RejectCashRegister(ctx context.Context, cashRegisterID string, req dto.RejectCashRegisterRequest, actor domain.Actor) (*domain.CashRegister, error)

	// VoidCashRegister discards a pending or rejected shift so the cashier may submit again that day.
	VoidCashRegister(ctx context.Context, cashRegisterID string, req dto.VoidCashRegisterRequest, actor domain.Actor) (*domain.CashRegister, error)
}

// CashRegisterNotifierSvc exposes realtime status changes
type CashRegisterNotifierSvc interface {
	// SubscribeEvents streams status changes visible to actor until cancel is called or ctx ends.
	SubscribeEvents(ctx context.Context, actor domain.Actor) (events <-chan domain.CashRegisterEvent, cancel func())
}

// CashRegisterSvcFacade combines all cash register service interfaces
type CashRegisterSvcFacade interface {
	CashRegisterSubmitterSvc
	CashRegisterReaderSvc
	CashRegisterReviewerSvc
	CashRegisterNotifierSvc
}

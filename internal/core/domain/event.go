package domain

import "time"

// CashRegisterEventType names what happened to a cash register.
type CashRegisterEventType string

const (
	EventCashRegisterSubmitted CashRegisterEventType = "cash_register.submitted"
	EventCashRegisterApproved  CashRegisterEventType = "cash_register.approved"
	EventCashRegisterRejected  CashRegisterEventType = "cash_register.rejected"
	EventCashRegisterVoided    CashRegisterEventType = "cash_register.voided"
)

// CashRegisterEvent is pushed to subscribers whenever a shift changes status.
type CashRegisterEvent struct {
	EventID        string                `json:"eventID"`
	Type           CashRegisterEventType `json:"type"`
	CashRegisterID string                `json:"cashRegisterID"`
	CashierID      string                `json:"cashierID"`
	Status         CashRegisterStatus    `json:"status"`
	ActorID        string                `json:"actorID"`
	OccurredAt     time.Time             `json:"occurredAt"`
}

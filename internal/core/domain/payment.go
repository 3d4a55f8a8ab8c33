package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// PaymentMethod is the channel a patient paid through.
type PaymentMethod string

const (
	PaymentCash     PaymentMethod = "cash"
	PaymentCard     PaymentMethod = "card"
	PaymentTransfer PaymentMethod = "transfer"
)

// PaymentStatus is the state of a patient payment.
type PaymentStatus string

const (
	PaymentPending   PaymentStatus = "pending"
	PaymentCompleted PaymentStatus = "completed"
	PaymentCancelled PaymentStatus = "cancelled"
)

// Payment is a patient payment recorded at the front desk.
type Payment struct {
	PaymentID   string          `json:"paymentID"`
	PatientID   string          `json:"patientID"`
	TreatmentID *string         `json:"treatmentID,omitempty"`
	Amount      decimal.Decimal `json:"amount"`
	Method      PaymentMethod   `json:"method"`
	Status      PaymentStatus   `json:"status"`
	PaymentDate time.Time       `json:"paymentDate"` // civil date, midnight UTC
	Notes       string          `json:"notes"`
	AuditFields
}

// PaymentTotals is the sum of completed payments for a day, split by method.
type PaymentTotals struct {
	Date     time.Time       `json:"date"`
	Cash     decimal.Decimal `json:"cash"`
	Card     decimal.Decimal `json:"card"`
	Transfer decimal.Decimal `json:"transfer"`
	Total    decimal.Decimal `json:"total"`
	Count    int             `json:"count"`
}

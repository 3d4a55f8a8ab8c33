package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Payment is a row of the payments table.
type Payment struct {
	PaymentID   string          `db:"payment_id"`
	PatientID   string          `db:"patient_id"`
	TreatmentID *string         `db:"treatment_id"` // Nullable
	Amount      decimal.Decimal `db:"amount"`
	Method      string          `db:"method"`
	Status      string          `db:"status"`
	PaymentDate time.Time       `db:"payment_date"`
	Notes       string          `db:"notes"`
	AuditFields
}

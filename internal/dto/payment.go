package dto

import (
	"github.com/SscSPs/dental_clinic_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// RecordPaymentRequest defines a patient payment taken at the front desk.
type RecordPaymentRequest struct {
	PatientID   string               `json:"patientID" binding:"required,uuid"`
	TreatmentID *string              `json:"treatmentID" binding:"omitempty,uuid"`
	Amount      decimal.Decimal      `json:"amount" binding:"gt=0"`
	Method      domain.PaymentMethod `json:"method" binding:"required,oneof=cash card transfer"`
	Status      domain.PaymentStatus `json:"status" binding:"omitempty,oneof=pending completed cancelled"`
	PaymentDate string               `json:"paymentDate" binding:"omitempty,datetime=2006-01-02"`
	Notes       string               `json:"notes" binding:"max=500"`
}

// ListPaymentsParams selects the day to list.
type ListPaymentsParams struct {
	Date string `form:"date" binding:"omitempty,datetime=2006-01-02"`
}

// ListPaymentsResponse wraps a day's payments and their completed totals.
type ListPaymentsResponse struct {
	Payments []domain.Payment     `json:"payments"`
	Totals   domain.PaymentTotals `json:"totals"`
}

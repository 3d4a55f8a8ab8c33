package mapping

import (
	"github.com/SscSPs/dental_clinic_app/internal/core/domain"
	"github.com/SscSPs/dental_clinic_app/internal/models"
)

// ToModelPayment converts a domain Payment to a model Payment
func ToModelPayment(d domain.Payment) models.Payment {
	return models.Payment{
		PaymentID:   d.PaymentID,
		PatientID:   d.PatientID,
		TreatmentID: d.TreatmentID,
		Amount:      d.Amount,
		Method:      string(d.Method),
		Status:      string(d.Status),
		PaymentDate: d.PaymentDate,
		Notes:       d.Notes,
		AuditFields: ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainPayment converts a model Payment to a domain Payment
func ToDomainPayment(m models.Payment) domain.Payment {
	return domain.Payment{
		PaymentID:   m.PaymentID,
		PatientID:   m.PatientID,
		TreatmentID: m.TreatmentID,
		Amount:      m.Amount,
		Method:      domain.PaymentMethod(m.Method),
		Status:      domain.PaymentStatus(m.Status),
		PaymentDate: m.PaymentDate,
		Notes:       m.Notes,
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
}

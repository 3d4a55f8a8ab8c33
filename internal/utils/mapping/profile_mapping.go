package mapping

import (
	"github.com/SscSPs/dental_clinic_app/internal/core/domain"
	"github.com/SscSPs/dental_clinic_app/internal/models"
)

// ToModelProfile converts a domain Profile to a model Profile
func ToModelProfile(d domain.Profile) models.Profile {
	return models.Profile{
		UserID:       d.UserID,
		Email:        d.Email,
		FullName:     d.FullName,
		Phone:        d.Phone,
		Role:         string(d.Role),
		IsActive:     d.IsActive,
		PasswordHash: d.PasswordHash,
		LastSignInAt: d.LastSignInAt,
		AuditFields:  ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainProfile converts a model Profile to a domain Profile
func ToDomainProfile(m models.Profile) domain.Profile {
	return domain.Profile{
		UserID:       m.UserID,
		Email:        m.Email,
		FullName:     m.FullName,
		Phone:        m.Phone,
		Role:         domain.Role(m.Role),
		IsActive:     m.IsActive,
		PasswordHash: m.PasswordHash,
		LastSignInAt: m.LastSignInAt,
		AuditFields:  ToDomainAuditFields(m.AuditFields),
	}
}

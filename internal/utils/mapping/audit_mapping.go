package mapping

import (
	"github.com/SscSPs/dental_clinic_app/internal/core/domain"
	"github.com/SscSPs/dental_clinic_app/internal/models"
)

// ToModelAuditSession converts a domain AuditSession to a model AuditSession
func ToModelAuditSession(d domain.AuditSession) models.AuditSession {
	return models.AuditSession{
		AuditSessionID: d.AuditSessionID,
		AuditorID:      d.AuditorID,
		GrantedBy:      d.GrantedBy,
		Reason:         d.Reason,
		StartsAt:       d.StartsAt,
		ExpiresAt:      d.ExpiresAt,
		RevokedAt:      d.RevokedAt,
		RevokedBy:      d.RevokedBy,
	}
}

// ToDomainAuditSession converts a model AuditSession to a domain AuditSession
func ToDomainAuditSession(m models.AuditSession) domain.AuditSession {
	return domain.AuditSession{
		AuditSessionID: m.AuditSessionID,
		AuditorID:      m.AuditorID,
		GrantedBy:      m.GrantedBy,
		Reason:         m.Reason,
		StartsAt:       m.StartsAt,
		ExpiresAt:      m.ExpiresAt,
		RevokedAt:      m.RevokedAt,
		RevokedBy:      m.RevokedBy,
	}
}

// ToDomainAuditLog converts a model AuditLog to a domain AuditLog
func ToDomainAuditLog(m models.AuditLog) domain.AuditLog {
	return domain.AuditLog{
		AuditLogID:     m.AuditLogID,
		AuditSessionID: m.AuditSessionID,
		UserID:         m.UserID,
		Method:         m.Method,
		Path:           m.Path,
		Status:         m.Status,
		CreatedAt:      m.CreatedAt,
	}
}

package dto

import (
	"time"

	"github.com/SscSPs/dental_clinic_app/internal/core/domain"
)

// GrantAuditSessionRequest opens a time-boxed read-only window for an auditor.
type GrantAuditSessionRequest struct {
	AuditorID string `json:"auditorID" binding:"required,uuid"`
	Duration  string `json:"duration" binding:"required"` // Go duration, e.g. "4h"
	Reason    string `json:"reason" binding:"required,max=500"`
}

// AuditSessionResponse defines the data returned for an audit session.
type AuditSessionResponse struct {
	AuditSessionID string     `json:"auditSessionID"`
	AuditorID      string     `json:"auditorID"`
	GrantedBy      string     `json:"grantedBy"`
	Reason         string     `json:"reason"`
	StartsAt       time.Time  `json:"startsAt"`
	ExpiresAt      time.Time  `json:"expiresAt"`
	RevokedAt      *time.Time `json:"revokedAt,omitempty"`
	Active         bool       `json:"active"`
}

// ListAuditSessionsParams filters the audit session listing.
type ListAuditSessionsParams struct {
	AuditorID string `form:"auditorID" binding:"omitempty,uuid"`
}

// ListAuditLogsParams limits the audit log listing.
type ListAuditLogsParams struct {
	Limit int `form:"limit,default=100" binding:"min=1,max=1000"`
}

// ToAuditSessionResponse converts a domain.AuditSession evaluated at now.
func ToAuditSessionResponse(s *domain.AuditSession, now time.Time) AuditSessionResponse {
	return AuditSessionResponse{
		AuditSessionID: s.AuditSessionID,
		AuditorID:      s.AuditorID,
		GrantedBy:      s.GrantedBy,
		Reason:         s.Reason,
		StartsAt:       s.StartsAt,
		ExpiresAt:      s.ExpiresAt,
		RevokedAt:      s.RevokedAt,
		Active:         s.IsActive(now),
	}
}

package domain

import "time"

// AuditSession is a time-boxed grant that lets an auditor profile read the system.
type AuditSession struct {
	AuditSessionID string     `json:"auditSessionID"`
	AuditorID      string     `json:"auditorID"`
	GrantedBy      string     `json:"grantedBy"`
	Reason         string     `json:"reason"`
	StartsAt       time.Time  `json:"startsAt"`
	ExpiresAt      time.Time  `json:"expiresAt"`
	RevokedAt      *time.Time `json:"revokedAt,omitempty"`
	RevokedBy      *string    `json:"revokedBy,omitempty"`
}

// IsActive reports whether the session grants access at now.
func (s AuditSession) IsActive(now time.Time) bool {
	if s.RevokedAt != nil {
		return false
	}
	return !now.Before(s.StartsAt) && now.Before(s.ExpiresAt)
}

// AuditLog is one request made by an auditor during a session.
type AuditLog struct {
	AuditLogID     string    `json:"auditLogID"`
	AuditSessionID string    `json:"auditSessionID"`
	UserID         string    `json:"userID"`
	Method         string    `json:"method"`
	Path           string    `json:"path"`
	Status         int       `json:"status"`
	CreatedAt      time.Time `json:"createdAt"`
}

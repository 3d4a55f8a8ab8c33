package models

import "time"

// AuditSession is a row of the audit_sessions table.
type AuditSession struct {
	AuditSessionID string     `db:"audit_session_id"`
	AuditorID      string     `db:"auditor_id"`
	GrantedBy      string     `db:"granted_by"`
	Reason         string     `db:"reason"`
	StartsAt       time.Time  `db:"starts_at"`
	ExpiresAt      time.Time  `db:"expires_at"`
	RevokedAt      *time.Time `db:"revoked_at"` // Nullable
	RevokedBy      *string    `db:"revoked_by"` // Nullable
}

// AuditLog is a row of the audit_logs table.
type AuditLog struct {
	AuditLogID     string    `db:"audit_log_id"`
	AuditSessionID string    `db:"audit_session_id"`
	UserID         string    `db:"user_id"`
	Method         string    `db:"method"`
	Path           string    `db:"path"`
	Status         int       `db:"status"`
	CreatedAt      time.Time `db:"created_at"`
}

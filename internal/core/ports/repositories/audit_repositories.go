package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/dental_clinic_app/internal/core/domain"
)

// AuditSessionReader defines read operations for audit sessions
type AuditSessionReader interface {
	FindAuditSessionByID(ctx context.Context, auditSessionID string) (*domain.AuditSession, error)

	// FindActiveAuditSession returns the active session for an auditor at now, or apperrors.ErrNotFound.
	FindActiveAuditSession(ctx context.Context, auditorID string, now time.Time) (*domain.AuditSession, error)

	// ListAuditSessions lists sessions newest first. An empty auditorID lists all.
	ListAuditSessions(ctx context.Context, auditorID string, limit int) ([]domain.AuditSession, error)
}

// AuditSessionWriter defines write operations for audit sessions
type AuditSessionWriter interface {
	SaveAuditSession(ctx context.Context, session domain.AuditSession) error
	RevokeAuditSession(ctx context.Context, auditSessionID string, revokedBy string, revokedAt time.Time) error
}

// AuditLogStore appends and lists auditor access logs
type AuditLogStore interface {
	SaveAuditLog(ctx context.Context, entry domain.AuditLog) error
	ListAuditLogs(ctx context.Context, auditSessionID string, limit int) ([]domain.AuditLog, error)
}

// AuditRepositoryFacade combines all audit-related repository interfaces
type AuditRepositoryFacade interface {
	AuditSessionReader
	AuditSessionWriter
	AuditLogStore
}

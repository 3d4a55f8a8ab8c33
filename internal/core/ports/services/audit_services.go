package services

import (
	"context"

	"github.com/SscSPs/dental_clinic_app/internal/core/domain"
	"github.com/SscSPs/dental_clinic_app/internal/dto"
)

// AuditGateSvc is what the auditor gate middleware needs on every request.
type AuditGateSvc interface {
	// ActiveSession returns the auditor's active session or apperrors.ErrAuditSessionExpired.
	ActiveSession(ctx context.Context, auditorID string) (*domain.AuditSession, error)

	// RecordAccess appends an access log entry.
	RecordAccess(ctx context.Context, entry domain.AuditLog) error
}

// AuditSvcFacade manages auditor sessions and their logs.
type AuditSvcFacade interface {
	AuditGateSvc

	GrantAuditSession(ctx context.Context, req dto.GrantAuditSessionRequest, actor domain.Actor) (*domain.AuditSession, error)
	RevokeAuditSession(ctx context.Context, auditSessionID string, actor domain.Actor) (*domain.AuditSession, error)
	ListAuditSessions(ctx context.Context, auditorID string, actor domain.Actor) ([]domain.AuditSession, error)
	ListAuditLogs(ctx context.Context, auditSessionID string, limit int, actor domain.Actor) ([]domain.AuditLog, error)
}

package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/SscSPs/dental_clinic_app/internal/apperrors"
	"github.com/SscSPs/dental_clinic_app/internal/core/domain"
	portsrepo "github.com/SscSPs/dental_clinic_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/dental_clinic_app/internal/core/ports/services"
	"github.com/SscSPs/dental_clinic_app/internal/dto"
	"github.com/google/uuid"
)

const (
	minAuditSessionDuration = time.Minute
	maxAuditSessionDuration = 30 * 24 * time.Hour
	auditSessionListLimit   = 200
)

// auditService implements AuditSvcFacade
type auditService struct {
	BaseService
	auditRepo portsrepo.AuditRepositoryFacade
	profiles  portsrepo.ProfileReader
}

// NewAuditService creates a new audit service
func NewAuditService(auditRepo portsrepo.AuditRepositoryFacade, profiles portsrepo.ProfileReader) portssvc.AuditSvcFacade {
	return &auditService{
		auditRepo: auditRepo,
		profiles:  profiles,
	}
}

var _ portssvc.AuditSvcFacade = (*auditService)(nil)

func (s *auditService) GrantAuditSession(ctx context.Context, req dto.GrantAuditSessionRequest, actor domain.Actor) (*domain.AuditSession, error) {
	if err := s.Authorize(ctx, actor, actor.Role == domain.RoleAdmin, "grant audit sessions"); err != nil {
		return nil, err
	}
	duration, err := time.ParseDuration(req.Duration)
	if err != nil {
		return nil, apperrors.NewValidationFailedError("duration must be a duration such as 4h or 90m")
	}
	if duration < minAuditSessionDuration || duration > maxAuditSessionDuration {
		return nil, apperrors.NewValidationFailedError("duration must be between 1m and 720h")
	}
	reason := strings.TrimSpace(req.Reason)
	if reason == "" {
		return nil, apperrors.NewValidationFailedError("reason is required")
	}

	auditor, err := s.profiles.FindProfileByID(ctx, req.AuditorID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewNotFoundError("auditor profile " + req.AuditorID + " not found")
		}
		s.LogError(ctx, err, "Failed to load auditor profile", slog.String("auditor_id", req.AuditorID))
		return nil, fmt.Errorf("failed to load auditor profile: %w", err)
	}
	if auditor.Role != domain.RoleAuditor {
		return nil, apperrors.NewValidationFailedError("audit sessions can only be granted to auditor profiles")
	}
	if !auditor.IsActive {
		return nil, apperrors.NewValidationFailedError("auditor profile is disabled")
	}

	now := s.CurrentTime()
	session := domain.AuditSession{
		AuditSessionID: uuid.NewString(),
		AuditorID:      auditor.UserID,
		GrantedBy:      actor.UserID,
		Reason:         reason,
		StartsAt:       now,
		ExpiresAt:      now.Add(duration),
	}
	if err := s.auditRepo.SaveAuditSession(ctx, session); err != nil {
		s.LogError(ctx, err, "Failed to save audit session", slog.String("auditor_id", auditor.UserID))
		return nil, fmt.Errorf("failed to save audit session: %w", err)
	}

	s.LogInfo(ctx, "Audit session granted",
		slog.String("audit_session_id", session.AuditSessionID),
		slog.String("auditor_id", auditor.UserID),
		slog.Duration("duration", duration))
	return &session, nil
}

func (s *auditService) RevokeAuditSession(ctx context.Context, auditSessionID string, actor domain.Actor) (*domain.AuditSession, error) {
	if err := s.Authorize(ctx, actor, actor.Role == domain.RoleAdmin, "revoke audit sessions"); err != nil {
		return nil, err
	}
	session, err := s.auditRepo.FindAuditSessionByID(ctx, auditSessionID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewNotFoundError("audit session " + auditSessionID + " not found")
		}
		s.LogError(ctx, err, "Failed to load audit session", slog.String("audit_session_id", auditSessionID))
		return nil, fmt.Errorf("failed to load audit session: %w", err)
	}
	if session.RevokedAt != nil {
		return nil, apperrors.NewAppError(http.StatusConflict, "audit session is already revoked", apperrors.ErrConflict)
	}

	now := s.CurrentTime()
	if err := s.auditRepo.RevokeAuditSession(ctx, auditSessionID, actor.UserID, now); err != nil {
		s.LogError(ctx, err, "Failed to revoke audit session", slog.String("audit_session_id", auditSessionID))
		return nil, fmt.Errorf("failed to revoke audit session: %w", err)
	}
	revokedBy := actor.UserID
	session.RevokedAt = &now
	session.RevokedBy = &revokedBy

	s.LogInfo(ctx, "Audit session revoked", slog.String("audit_session_id", auditSessionID))
	return session, nil
}

func (s *auditService) ListAuditSessions(ctx context.Context, auditorID string, actor domain.Actor) ([]domain.AuditSession, error) {
	switch actor.Role {
	case domain.RoleAdmin:
	case domain.RoleAuditor:
		auditorID = actor.UserID
	default:
		return nil, s.Authorize(ctx, actor, false, "list audit sessions")
	}
	sessions, err := s.auditRepo.ListAuditSessions(ctx, auditorID, auditSessionListLimit)
	if err != nil {
		s.LogError(ctx, err, "Failed to list audit sessions")
		return nil, fmt.Errorf("failed to list audit sessions: %w", err)
	}
	if sessions == nil {
		sessions = []domain.AuditSession{}
	}
	return sessions, nil
}

func (s *auditService) ListAuditLogs(ctx context.Context, auditSessionID string, limit int, actor domain.Actor) ([]domain.AuditLog, error) {
	if err := s.Authorize(ctx, actor, actor.Role == domain.RoleAdmin, "read audit logs"); err != nil {
		return nil, err
	}
	if _, err := s.auditRepo.FindAuditSessionByID(ctx, auditSessionID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewNotFoundError("audit session " + auditSessionID + " not found")
		}
		return nil, fmt.Errorf("failed to load audit session: %w", err)
	}
	logs, err := s.auditRepo.ListAuditLogs(ctx, auditSessionID, limit)
	if err != nil {
		s.LogError(ctx, err, "Failed to list audit logs", slog.String("audit_session_id", auditSessionID))
		return nil, fmt.Errorf("failed to list audit logs: %w", err)
	}
	if logs == nil {
		logs = []domain.AuditLog{}
	}
	return logs, nil
}

func (s *auditService) ActiveSession(ctx context.Context, auditorID string) (*domain.AuditSession, error) {
	session, err := s.auditRepo.FindActiveAuditSession(ctx, auditorID, s.CurrentTime())
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.ErrAuditSessionExpired
		}
		return nil, fmt.Errorf("failed to find active audit session: %w", err)
	}
	return session, nil
}

func (s *auditService) RecordAccess(ctx context.Context, entry domain.AuditLog) error {
	if err := s.auditRepo.SaveAuditLog(ctx, entry); err != nil {
		return fmt.Errorf("failed to save audit log: %w", err)
	}
	return nil
}

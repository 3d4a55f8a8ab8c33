package pgsql

import (
	"context"
	"errors"
	"time"

	"github.com/SscSPs/dental_clinic_app/internal/apperrors"
	"github.com/SscSPs/dental_clinic_app/internal/core/domain"
	portsrepo "github.com/SscSPs/dental_clinic_app/internal/core/ports/repositories"
	"github.com/SscSPs/dental_clinic_app/internal/models"
	"github.com/SscSPs/dental_clinic_app/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const auditSessionColumns = `audit_session_id, auditor_id, granted_by, reason, starts_at, expires_at, revoked_at, revoked_by`

type PgxAuditRepository struct {
	BaseRepository
}

func newPgxAuditRepository(pool *pgxpool.Pool) portsrepo.AuditRepositoryFacade {
	return &PgxAuditRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.AuditRepositoryFacade = (*PgxAuditRepository)(nil)

func scanAuditSession(row pgx.Row) (models.AuditSession, error) {
	var m models.AuditSession
	err := row.Scan(&m.AuditSessionID, &m.AuditorID, &m.GrantedBy, &m.Reason, &m.StartsAt, &m.ExpiresAt, &m.RevokedAt, &m.RevokedBy)
	return m, err
}

func (r *PgxAuditRepository) FindAuditSessionByID(ctx context.Context, auditSessionID string) (*domain.AuditSession, error) {
	query := `SELECT ` + auditSessionColumns + ` FROM audit_sessions WHERE audit_session_id = $1;`
	m, err := scanAuditSession(r.Pool.QueryRow(ctx, query, auditSessionID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, internalError("failed to find audit session "+auditSessionID, err)
	}
	s := mapping.ToDomainAuditSession(m)
	return &s, nil
}

func (r *PgxAuditRepository) FindActiveAuditSession(ctx context.Context, auditorID string, now time.Time) (*domain.AuditSession, error) {
	query := `
		SELECT ` + auditSessionColumns + `
		FROM audit_sessions
		WHERE auditor_id = $1 AND revoked_at IS NULL AND starts_at <= $2 AND expires_at > $2
		ORDER BY expires_at DESC
		LIMIT 1;
	`
	m, err := scanAuditSession(r.Pool.QueryRow(ctx, query, auditorID, now))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, internalError("failed to find active audit session", err)
	}
	s := mapping.ToDomainAuditSession(m)
	return &s, nil
}

func (r *PgxAuditRepository) ListAuditSessions(ctx context.Context, auditorID string, limit int) ([]domain.AuditSession, error) {
	query := `
		SELECT ` + auditSessionColumns + `
		FROM audit_sessions
		WHERE ($1 = '' OR auditor_id::text = $1)
		ORDER BY starts_at DESC
		LIMIT $2;
	`
	rows, err := r.Pool.Query(ctx, query, auditorID, limit)
	if err != nil {
		return nil, internalError("failed to query audit sessions", err)
	}
	defer rows.Close()

	sessions := []domain.AuditSession{}
	for rows.Next() {
		m, err := scanAuditSession(rows)
		if err != nil {
			return nil, internalError("failed to scan audit session row", err)
		}
		sessions = append(sessions, mapping.ToDomainAuditSession(m))
	}
	if err := rows.Err(); err != nil {
		return nil, internalError("error iterating audit session rows", err)
	}
	return sessions, nil
}

func (r *PgxAuditRepository) SaveAuditSession(ctx context.Context, session domain.AuditSession) error {
	m := mapping.ToModelAuditSession(session)
	_, err := r.Pool.Exec(ctx, `
		INSERT INTO audit_sessions (`+auditSessionColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8);
	`, m.AuditSessionID, m.AuditorID, m.GrantedBy, m.Reason, m.StartsAt, m.ExpiresAt, m.RevokedAt, m.RevokedBy)
	if err != nil {
		return internalError("failed to insert audit session "+m.AuditSessionID, err)
	}
	return nil
}

func (r *PgxAuditRepository) RevokeAuditSession(ctx context.Context, auditSessionID string, revokedBy string, revokedAt time.Time) error {
	cmdTag, err := r.Pool.Exec(ctx, `
		UPDATE audit_sessions SET revoked_at = $1, revoked_by = $2
		WHERE audit_session_id = $3 AND revoked_at IS NULL;
	`, revokedAt, revokedBy, auditSessionID)
	if err != nil {
		return internalError("failed to revoke audit session "+auditSessionID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrConflict
	}
	return nil
}

func (r *PgxAuditRepository) SaveAuditLog(ctx context.Context, entry domain.AuditLog) error {
	_, err := r.Pool.Exec(ctx, `
		INSERT INTO audit_logs (audit_log_id, audit_session_id, user_id, method, path, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7);
	`, entry.AuditLogID, entry.AuditSessionID, entry.UserID, entry.Method, entry.Path, entry.Status, entry.CreatedAt)
	if err != nil {
		return internalError("failed to insert audit log", err)
	}
	return nil
}

func (r *PgxAuditRepository) ListAuditLogs(ctx context.Context, auditSessionID string, limit int) ([]domain.AuditLog, error) {
	rows, err := r.Pool.Query(ctx, `
		SELECT audit_log_id, audit_session_id, user_id, method, path, status, created_at
		FROM audit_logs
		WHERE audit_session_id = $1
		ORDER BY created_at DESC
		LIMIT $2;
	`, auditSessionID, limit)
	if err != nil {
		return nil, internalError("failed to query audit logs", err)
	}
	defer rows.Close()

	logs := []domain.AuditLog{}
	for rows.Next() {
		var m models.AuditLog
		if err := rows.Scan(&m.AuditLogID, &m.AuditSessionID, &m.UserID, &m.Method, &m.Path, &m.Status, &m.CreatedAt); err != nil {
			return nil, internalError("failed to scan audit log row", err)
		}
		logs = append(logs, mapping.ToDomainAuditLog(m))
	}
	if err := rows.Err(); err != nil {
		return nil, internalError("error iterating audit log rows", err)
	}
	return logs, nil
}

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

const profileColumns = `user_id, email, full_name, phone, role, is_active, password_hash, last_sign_in_at,
	created_at, created_by, last_updated_at, last_updated_by`

type PgxProfileRepository struct {
	BaseRepository
}

func newPgxProfileRepository(pool *pgxpool.Pool) portsrepo.ProfileRepositoryFacade {
	return &PgxProfileRepository{BaseRepository: BaseRepository{Pool: pool}}
}

// Ensure PgxProfileRepository implements portsrepo.ProfileRepositoryFacade
var _ portsrepo.ProfileRepositoryFacade = (*PgxProfileRepository)(nil)

func scanProfile(row pgx.Row) (models.Profile, error) {
	var m models.Profile
	err := row.Scan(
		&m.UserID,
		&m.Email,
		&m.FullName,
		&m.Phone,
		&m.Role,
		&m.IsActive,
		&m.PasswordHash,
		&m.LastSignInAt,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

func (r *PgxProfileRepository) findOne(ctx context.Context, where string, arg interface{}) (*domain.Profile, error) {
	query := `SELECT ` + profileColumns + ` FROM profiles WHERE ` + where + `;`
	m, err := scanProfile(r.Pool.QueryRow(ctx, query, arg))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, internalError("failed to find profile", err)
	}
	p := mapping.ToDomainProfile(m)
	return &p, nil
}

func (r *PgxProfileRepository) FindProfileByID(ctx context.Context, userID string) (*domain.Profile, error) {
	return r.findOne(ctx, "user_id = $1", userID)
}

func (r *PgxProfileRepository) FindProfileByEmail(ctx context.Context, email string) (*domain.Profile, error) {
	return r.findOne(ctx, "email = $1", email)
}

func (r *PgxProfileRepository) ListProfiles(ctx context.Context, limit int, offset int) ([]domain.Profile, error) {
	query := `SELECT ` + profileColumns + ` FROM profiles ORDER BY full_name, user_id LIMIT $1 OFFSET $2;`
	rows, err := r.Pool.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, internalError("failed to query profiles", err)
	}
	defer rows.Close()

	profiles := []domain.Profile{}
	for rows.Next() {
		m, err := scanProfile(rows)
		if err != nil {
			return nil, internalError("failed to scan profile row", err)
		}
		profiles = append(profiles, mapping.ToDomainProfile(m))
	}
	if err := rows.Err(); err != nil {
		return nil, internalError("error iterating profile rows", err)
	}
	return profiles, nil
}

func (r *PgxProfileRepository) CountProfiles(ctx context.Context) (int, error) {
	var count int
	if err := r.Pool.QueryRow(ctx, `SELECT COUNT(*) FROM profiles;`).Scan(&count); err != nil {
		return 0, internalError("failed to count profiles", err)
	}
	return count, nil
}

func (r *PgxProfileRepository) SaveProfile(ctx context.Context, profile domain.Profile) error {
	m := mapping.ToModelProfile(profile)
	query := `
		INSERT INTO profiles (` + profileColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.UserID,
		m.Email,
		m.FullName,
		m.Phone,
		m.Role,
		m.IsActive,
		m.PasswordHash,
		m.LastSignInAt,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.ErrDuplicate
		}
		return internalError("failed to insert profile "+m.UserID, err)
	}
	return nil
}

func (r *PgxProfileRepository) update(ctx context.Context, userID, set string, value interface{}, updatedBy string, updatedAt time.Time) error {
	query := `UPDATE profiles SET ` + set + ` = $1, last_updated_by = $2, last_updated_at = $3 WHERE user_id = $4;`
	cmdTag, err := r.Pool.Exec(ctx, query, value, updatedBy, updatedAt, userID)
	if err != nil {
		return internalError("failed to update profile "+userID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PgxProfileRepository) UpdateProfileRole(ctx context.Context, userID string, role domain.Role, updatedBy string, updatedAt time.Time) error {
	return r.update(ctx, userID, "role", string(role), updatedBy, updatedAt)
}

func (r *PgxProfileRepository) UpdateProfileActive(ctx context.Context, userID string, isActive bool, updatedBy string, updatedAt time.Time) error {
	return r.update(ctx, userID, "is_active", isActive, updatedBy, updatedAt)
}

func (r *PgxProfileRepository) TouchLastSignIn(ctx context.Context, userID string, at time.Time) error {
	_, err := r.Pool.Exec(ctx, `UPDATE profiles SET last_sign_in_at = $1 WHERE user_id = $2;`, at, userID)
	if err != nil {
		return internalError("failed to record sign-in for profile "+userID, err)
	}
	return nil
}

// SaveRevokedToken stores a signed-out token and prunes tokens that have expired anyway.
func (r *PgxProfileRepository) SaveRevokedToken(ctx context.Context, token domain.RevokedToken) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	_, err = tx.Exec(ctx, `
		INSERT INTO revoked_tokens (token_id, user_id, revoked_at, expires_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (token_id) DO NOTHING;
	`, token.TokenID, token.UserID, token.RevokedAt, token.ExpiresAt)
	if err != nil {
		return internalError("failed to revoke token", err)
	}
	if _, err := tx.Exec(ctx, `DELETE FROM revoked_tokens WHERE expires_at < $1;`, token.RevokedAt); err != nil {
		return internalError("failed to prune revoked tokens", err)
	}
	return r.Commit(ctx, tx)
}

func (r *PgxProfileRepository) IsTokenRevoked(ctx context.Context, tokenID string) (bool, error) {
	var revoked bool
	err := r.Pool.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM revoked_tokens WHERE token_id = $1);`, tokenID).Scan(&revoked)
	if err != nil {
		return false, internalError("failed to check revoked token", err)
	}
	return revoked, nil
}

package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/dental_clinic_app/internal/core/domain"
)

// ProfileReader defines read operations for profile data
type ProfileReader interface {
	// FindProfileByID retrieves a profile by user ID.
	FindProfileByID(ctx context.Context, userID string) (*domain.Profile, error)

	// FindProfileByEmail retrieves a profile by its normalized email.
	FindProfileByEmail(ctx context.Context, email string) (*domain.Profile, error)

	// ListProfiles retrieves a paginated list of profiles ordered by name.
	ListProfiles(ctx context.Context, limit int, offset int) ([]domain.Profile, error)

	// CountProfiles returns the number of profiles.
	CountProfiles(ctx context.Context) (int, error)
}

// ProfileWriter defines write operations for profile data
type ProfileWriter interface {
	// SaveProfile persists a new profile. Returns apperrors.ErrDuplicate when the email is taken.
	SaveProfile(ctx context.Context, profile domain.Profile) error

	// UpdateProfileRole changes the role of a profile.
	UpdateProfileRole(ctx context.Context, userID string, role domain.Role, updatedBy string, updatedAt time.Time) error

	// UpdateProfileActive enables or disables a profile.
	UpdateProfileActive(ctx context.Context, userID string, isActive bool, updatedBy string, updatedAt time.Time) error

	// TouchLastSignIn records a successful sign-in.
	TouchLastSignIn(ctx context.Context, userID string, at time.Time) error
}

// TokenRevocationStore keeps signed-out token IDs until they expire.
type TokenRevocationStore interface {
	SaveRevokedToken(ctx context.Context, token domain.RevokedToken) error
	IsTokenRevoked(ctx context.Context, tokenID string) (bool, error)
}

// ProfileRepositoryFacade combines all profile-related repository interfaces
type ProfileRepositoryFacade interface {
	ProfileReader
	ProfileWriter
	TokenRevocationStore
}

package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/SscSPs/dental_clinic_app/internal/apperrors"
	"github.com/SscSPs/dental_clinic_app/internal/core/domain"
	portsrepo "github.com/SscSPs/dental_clinic_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/dental_clinic_app/internal/core/ports/services"
	"github.com/SscSPs/dental_clinic_app/internal/dto"
	"github.com/SscSPs/dental_clinic_app/internal/platform/config"
	"github.com/SscSPs/dental_clinic_app/internal/utils"
	"github.com/google/uuid"
)

const minPasswordLength = 8

// authService implements AuthSvcFacade for email/password accounts.
// It requires the signing configuration and the profile store.
type authService struct {
	BaseService
	cfg      *config.Config
	profiles portsrepo.ProfileRepositoryFacade
}

// NewAuthService creates a new instance of authService.
func NewAuthService(cfg *config.Config, profiles portsrepo.ProfileRepositoryFacade) portssvc.AuthSvcFacade {
	return &authService{
		cfg:      cfg,
		profiles: profiles,
	}
}

var _ portssvc.AuthSvcFacade = (*authService)(nil)

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (s *authService) SignUp(ctx context.Context, req dto.SignUpRequest) (*domain.Profile, error) {
	email := normalizeEmail(req.Email)
	fullName := strings.TrimSpace(req.FullName)
	if email == "" || fullName == "" {
		return nil, apperrors.NewValidationFailedError("email and fullName are required")
	}
	if len(req.Password) < minPasswordLength {
		return nil, apperrors.NewValidationFailedError(fmt.Sprintf("password must be at least %d characters", minPasswordLength))
	}

	_, err := s.profiles.FindProfileByEmail(ctx, email)
	if err == nil {
		return nil, apperrors.NewConflictError("email is already registered")
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		s.LogError(ctx, err, "Failed to look up profile by email")
		return nil, fmt.Errorf("failed to look up profile: %w", err)
	}

	count, err := s.profiles.CountProfiles(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to count profiles")
		return nil, fmt.Errorf("failed to count profiles: %w", err)
	}
	role := domain.RoleReceptionist
	if count == 0 {
		role = domain.RoleAdmin
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		s.LogError(ctx, err, "Failed to hash password")
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	now := s.CurrentTime()
	userID := uuid.NewString()
	profile := domain.Profile{
		UserID:       userID,
		Email:        email,
		FullName:     fullName,
		Phone:        strings.TrimSpace(req.Phone),
		Role:         role,
		IsActive:     true,
		PasswordHash: hash,
		AuditFields:  domain.NewAuditFields(userID, now),
	}
	if err := s.profiles.SaveProfile(ctx, profile); err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			return nil, apperrors.NewConflictError("email is already registered")
		}
		s.LogError(ctx, err, "Failed to save profile", slog.String("user_id", userID))
		return nil, fmt.Errorf("failed to save profile: %w", err)
	}

	s.LogInfo(ctx, "Profile signed up", slog.String("user_id", userID), slog.String("role", string(role)))
	return &profile, nil
}

func (s *authService) SignIn(ctx context.Context, req dto.SignInRequest) (*dto.SignInResponse, error) {
	invalid := apperrors.NewAppError(http.StatusUnauthorized, "invalid email or password", apperrors.ErrUnauthorized)

	profile, err := s.profiles.FindProfileByEmail(ctx, normalizeEmail(req.Email))
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, invalid
		}
		s.LogError(ctx, err, "Failed to look up profile for sign-in")
		return nil, fmt.Errorf("failed to look up profile: %w", err)
	}
	if !utils.PasswordMatches(profile.PasswordHash, req.Password) {
		s.LogInfo(ctx, "Sign-in with wrong password", slog.String("user_id", profile.UserID))
		return nil, invalid
	}
	if !profile.IsActive {
		s.LogInfo(ctx, "Sign-in for disabled profile", slog.String("user_id", profile.UserID))
		return nil, apperrors.NewAppError(http.StatusUnauthorized, "account is disabled", apperrors.ErrUnauthorized)
	}

	token, expiresAt, err := utils.GenerateJWT(profile.UserID, uuid.NewString(), s.cfg.JWTSecret, s.cfg.JWTExpiryDuration, s.cfg.JWTIssuer)
	if err != nil {
		s.LogError(ctx, err, "Failed to generate access token", slog.String("user_id", profile.UserID))
		return nil, fmt.Errorf("failed to generate access token: %w", err)
	}

	now := s.CurrentTime()
	if err := s.profiles.TouchLastSignIn(ctx, profile.UserID, now); err != nil {
		s.LogError(ctx, err, "Failed to record last sign-in", slog.String("user_id", profile.UserID))
	} else {
		profile.LastSignInAt = &now
	}

	return &dto.SignInResponse{
		Token:     token,
		ExpiresAt: expiresAt,
		Profile:   dto.ToProfileResponse(profile),
	}, nil
}

func (s *authService) Authenticate(ctx context.Context, rawToken string) (*domain.Session, error) {
	claims, err := utils.ParseAndValidateJWT(rawToken, s.cfg.JWTSecret, s.cfg.JWTIssuer)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", apperrors.ErrUnauthorized, err)
	}
	if claims.Subject == "" || claims.ID == "" || claims.ExpiresAt == nil {
		return nil, fmt.Errorf("%w: token is missing required claims", apperrors.ErrUnauthorized)
	}

	revoked, err := s.profiles.IsTokenRevoked(ctx, claims.ID)
	if err != nil {
		s.LogError(ctx, err, "Failed to check token revocation")
		return nil, fmt.Errorf("failed to check token revocation: %w", err)
	}
	if revoked {
		return nil, fmt.Errorf("%w: token has been revoked", apperrors.ErrUnauthorized)
	}

	// The role always comes from the profile row, never from the token.
	profile, err := s.profiles.FindProfileByID(ctx, claims.Subject)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: profile no longer exists", apperrors.ErrUnauthorized)
		}
		s.LogError(ctx, err, "Failed to load profile for token", slog.String("user_id", claims.Subject))
		return nil, fmt.Errorf("failed to load profile: %w", err)
	}
	if !profile.IsActive {
		return nil, fmt.Errorf("%w: profile is disabled", apperrors.ErrForbidden)
	}

	return &domain.Session{
		TokenID:   claims.ID,
		ExpiresAt: claims.ExpiresAt.Time,
		Profile:   *profile,
	}, nil
}

func (s *authService) SignOut(ctx context.Context, session domain.Session) error {
	err := s.profiles.SaveRevokedToken(ctx, domain.RevokedToken{
		TokenID:   session.TokenID,
		UserID:    session.Profile.UserID,
		RevokedAt: s.CurrentTime(),
		ExpiresAt: session.ExpiresAt,
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to revoke token", slog.String("user_id", session.Profile.UserID))
		return fmt.Errorf("failed to revoke token: %w", err)
	}
	s.LogInfo(ctx, "Signed out", slog.String("user_id", session.Profile.UserID))
	return nil
}

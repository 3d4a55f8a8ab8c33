package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/SscSPs/dental_clinic_app/internal/apperrors"
	"github.com/SscSPs/dental_clinic_app/internal/core/domain"
	portsrepo "github.com/SscSPs/dental_clinic_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/dental_clinic_app/internal/core/ports/services"
)

// profileService implements ProfileSvcFacade
type profileService struct {
	BaseService
	profileRepo portsrepo.ProfileRepositoryFacade
}

// NewProfileService creates a new profile service
func NewProfileService(repo portsrepo.ProfileRepositoryFacade) portssvc.ProfileSvcFacade {
	return &profileService{profileRepo: repo}
}

var _ portssvc.ProfileSvcFacade = (*profileService)(nil)

func (s *profileService) ListProfiles(ctx context.Context, limit int, offset int, actor domain.Actor) ([]domain.Profile, error) {
	if err := s.Authorize(ctx, actor, actor.Role.CanSeeAllCashRegisters(), "list profiles"); err != nil {
		return nil, err
	}
	profiles, err := s.profileRepo.ListProfiles(ctx, limit, offset)
	if err != nil {
		s.LogError(ctx, err, "Failed to list profiles")
		return nil, fmt.Errorf("failed to list profiles: %w", err)
	}
	if profiles == nil {
		profiles = []domain.Profile{}
	}
	return profiles, nil
}

func (s *profileService) GetProfile(ctx context.Context, userID string, actor domain.Actor) (*domain.Profile, error) {
	if userID != actor.UserID {
		if err := s.Authorize(ctx, actor, actor.Role.CanSeeAllCashRegisters(), "view other profiles"); err != nil {
			return nil, err
		}
	}
	return s.find(ctx, userID)
}

func (s *profileService) find(ctx context.Context, userID string) (*domain.Profile, error) {
	profile, err := s.profileRepo.FindProfileByID(ctx, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewNotFoundError("profile " + userID + " not found")
		}
		s.LogError(ctx, err, "Failed to find profile", slog.String("user_id", userID))
		return nil, fmt.Errorf("failed to find profile: %w", err)
	}
	return profile, nil
}

func (s *profileService) UpdateProfileRole(ctx context.Context, userID string, role domain.Role, actor domain.Actor) (*domain.Profile, error) {
	if err := s.Authorize(ctx, actor, actor.Role == domain.RoleAdmin, "change roles"); err != nil {
		return nil, err
	}
	if !role.IsValid() {
		return nil, apperrors.NewValidationFailedError("unknown role " + string(role))
	}
	if userID == actor.UserID {
		return nil, apperrors.NewValidationFailedError("admins cannot change their own role")
	}

	profile, err := s.find(ctx, userID)
	if err != nil {
		return nil, err
	}
	if profile.Role == role {
		return profile, nil
	}

	now := s.CurrentTime()
	if err := s.profileRepo.UpdateProfileRole(ctx, userID, role, actor.UserID, now); err != nil {
		s.LogError(ctx, err, "Failed to update profile role", slog.String("user_id", userID))
		return nil, fmt.Errorf("failed to update profile role: %w", err)
	}
	s.LogInfo(ctx, "Profile role changed",
		slog.String("user_id", userID),
		slog.String("from", string(profile.Role)),
		slog.String("to", string(role)))

	profile.Role = role
	profile.Touch(actor.UserID, now)
	return profile, nil
}

func (s *profileService) SetProfileActive(ctx context.Context, userID string, isActive bool, actor domain.Actor) (*domain.Profile, error) {
	if err := s.Authorize(ctx, actor, actor.Role == domain.RoleAdmin, "enable or disable profiles"); err != nil {
		return nil, err
	}
	if userID == actor.UserID && !isActive {
		return nil, apperrors.NewValidationFailedError("admins cannot disable themselves")
	}

	profile, err := s.find(ctx, userID)
	if err != nil {
		return nil, err
	}

	now := s.CurrentTime()
	if err := s.profileRepo.UpdateProfileActive(ctx, userID, isActive, actor.UserID, now); err != nil {
		s.LogError(ctx, err, "Failed to update profile status", slog.String("user_id", userID))
		return nil, fmt.Errorf("failed to update profile status: %w", err)
	}
	s.LogInfo(ctx, "Profile status changed", slog.String("user_id", userID), slog.Bool("is_active", isActive))

	profile.IsActive = isActive
	profile.Touch(actor.UserID, now)
	return profile, nil
}

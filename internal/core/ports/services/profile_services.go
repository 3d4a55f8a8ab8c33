package services

import (
	"context"

	"github.com/SscSPs/dental_clinic_app/internal/core/domain"
)

// ProfileSvcFacade defines staff administration.
type ProfileSvcFacade interface {
	ListProfiles(ctx context.Context, limit int, offset int, actor domain.Actor) ([]domain.Profile, error)
	GetProfile(ctx context.Context, userID string, actor domain.Actor) (*domain.Profile, error)
	UpdateProfileRole(ctx context.Context, userID string, role domain.Role, actor domain.Actor) (*domain.Profile, error)
	SetProfileActive(ctx context.Context, userID string, isActive bool, actor domain.Actor) (*domain.Profile, error)
}

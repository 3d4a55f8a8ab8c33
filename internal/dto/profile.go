package dto

import (
	"time"

	"github.com/SscSPs/dental_clinic_app/internal/core/domain"
)

// ProfileResponse defines the data returned for a staff profile.
type ProfileResponse struct {
	UserID       string      `json:"userID"`
	Email        string      `json:"email"`
	FullName     string      `json:"fullName"`
	Phone        string      `json:"phone"`
	Role         domain.Role `json:"role"`
	IsActive     bool        `json:"isActive"`
	LastSignInAt *time.Time  `json:"lastSignInAt,omitempty"`
	CreatedAt    time.Time   `json:"createdAt"`
}

// UpdateProfileRoleRequest changes a staff member's role.
type UpdateProfileRoleRequest struct {
	Role domain.Role `json:"role" binding:"required,oneof=admin doctor receptionist cashier auditor"`
}

// UpdateProfileActiveRequest enables or disables a staff member.
type UpdateProfileActiveRequest struct {
	IsActive *bool `json:"isActive" binding:"required"`
}

// ListProfilesParams defines query parameters for listing profiles.
type ListProfilesParams struct {
	Limit  int `form:"limit,default=50" binding:"min=1,max=200"`
	Offset int `form:"offset,default=0" binding:"min=0"`
}

// ListProfilesResponse wraps the list of profiles.
type ListProfilesResponse struct {
	Profiles []ProfileResponse `json:"profiles"`
}

// ToProfileResponse converts a domain.Profile to ProfileResponse DTO
func ToProfileResponse(p *domain.Profile) ProfileResponse {
	return ProfileResponse{
		UserID:       p.UserID,
		Email:        p.Email,
		FullName:     p.FullName,
		Phone:        p.Phone,
		Role:         p.Role,
		IsActive:     p.IsActive,
		LastSignInAt: p.LastSignInAt,
		CreatedAt:    p.CreatedAt,
	}
}

// ToListProfilesResponse converts a slice of domain.Profile to ListProfilesResponse DTO
func ToListProfilesResponse(profiles []domain.Profile) ListProfilesResponse {
	res := make([]ProfileResponse, len(profiles))
	for i := range profiles {
		res[i] = ToProfileResponse(&profiles[i])
	}
	return ListProfilesResponse{Profiles: res}
}

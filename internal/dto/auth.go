package dto

import "time"

// SignUpRequest defines the data needed to create a staff account.
type SignUpRequest struct {
	Email    string `json:"email" binding:"required,email,max=254"`
	Password string `json:"password" binding:"required,min=8,max=72"`
	FullName string `json:"fullName" binding:"required,max=128"`
	Phone    string `json:"phone" binding:"omitempty,phone"`
}

// SignInRequest defines email/password credentials.
type SignInRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// SignInResponse is returned on successful sign-in.
type SignInResponse struct {
	Token     string          `json:"token"`
	ExpiresAt time.Time       `json:"expiresAt"`
	Profile   ProfileResponse `json:"profile"`
}

// SessionResponse describes the current session.
type SessionResponse struct {
	Profile      ProfileResponse       `json:"profile"`
	ExpiresAt    time.Time             `json:"expiresAt"`
	AuditSession *AuditSessionResponse `json:"auditSession,omitempty"`
}

package services

import (
	"context"

	"github.com/SscSPs/dental_clinic_app/internal/core/domain"
	"github.com/SscSPs/dental_clinic_app/internal/dto"
)

// AuthenticatorSvc validates access tokens on every protected request.
type AuthenticatorSvc interface {
	// Authenticate parses the raw bearer token, rejects revoked tokens and loads the profile row
	// the token was issued for. Errors wrap apperrors.ErrUnauthorized.
	Authenticate(ctx context.Context, rawToken string) (*domain.Session, error)
}

// AuthSvcFacade defines email/password sign-up, sign-in, session retrieval and sign-out.
type AuthSvcFacade interface {
	AuthenticatorSvc

	// SignUp creates a profile. The very first profile becomes admin.
	SignUp(ctx context.Context, req dto.SignUpRequest) (*domain.Profile, error)

	// SignIn checks credentials and issues an access token.
	SignIn(ctx context.Context, req dto.SignInRequest) (*dto.SignInResponse, error)

	// SignOut revokes the token of the given session.
	SignOut(ctx context.Context, session domain.Session) error
}

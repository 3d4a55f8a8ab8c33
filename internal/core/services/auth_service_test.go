package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/SscSPs/dental_clinic_app/internal/apperrors"
	"github.com/SscSPs/dental_clinic_app/internal/core/domain"
	portssvc "github.com/SscSPs/dental_clinic_app/internal/core/ports/services"
	"github.com/SscSPs/dental_clinic_app/internal/core/services"
	"github.com/SscSPs/dental_clinic_app/internal/dto"
	"github.com/SscSPs/dental_clinic_app/internal/platform/config"
	"github.com/SscSPs/dental_clinic_app/internal/utils"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type AuthServiceTestSuite struct {
	suite.Suite
	cfg      *config.Config
	profiles *MockProfileRepository
	service  portssvc.AuthSvcFacade
}

func (suite *AuthServiceTestSuite) SetupTest() {
	suite.cfg = &config.Config{
		JWTSecret:         "test-secret",
		JWTIssuer:         "dental-clinic-app",
		JWTExpiryDuration: time.Hour,
	}
	suite.profiles = new(MockProfileRepository)
	suite.service = services.NewAuthService(suite.cfg, suite.profiles)
}

func (suite *AuthServiceTestSuite) activeProfile(password string) *domain.Profile {
	hash, err := utils.HashPassword(password)
	suite.Require().NoError(err)
	return &domain.Profile{
		UserID:       "user-1",
		Email:        "ana@clinic.example",
		FullName:     "Ana Quispe",
		Role:         domain.RoleCashier,
		IsActive:     true,
		PasswordHash: hash,
	}
}

// --- SignUp ---

func (suite *AuthServiceTestSuite) TestSignUp_FirstProfileBecomesAdmin() {
	ctx := context.Background()
	suite.profiles.On("FindProfileByEmail", ctx, "ana@clinic.example").Return(nil, apperrors.ErrNotFound).Once()
	suite.profiles.On("CountProfiles", ctx).Return(0, nil).Once()
	suite.profiles.On("SaveProfile", ctx, mock.MatchedBy(func(p domain.Profile) bool {
		return p.Role == domain.RoleAdmin && p.Email == "ana@clinic.example" && p.PasswordHash != "" && p.PasswordHash != "password123"
	})).Return(nil).Once()

	profile, err := suite.service.SignUp(ctx, dto.SignUpRequest{
		Email: "  Ana@Clinic.Example ", Password: "password123", FullName: "Ana Quispe",
	})

	suite.Require().NoError(err)
	suite.Equal(domain.RoleAdmin, profile.Role)
	suite.True(profile.IsActive)
	suite.NotEmpty(profile.UserID)
	suite.profiles.AssertExpectations(suite.T())
}

func (suite *AuthServiceTestSuite) TestSignUp_LaterProfilesAreReceptionists() {
	ctx := context.Background()
	suite.profiles.On("FindProfileByEmail", ctx, "luis@clinic.example").Return(nil, apperrors.ErrNotFound).Once()
	suite.profiles.On("CountProfiles", ctx).Return(3, nil).Once()
	suite.profiles.On("SaveProfile", ctx, mock.AnythingOfType("domain.Profile")).Return(nil).Once()

	profile, err := suite.service.SignUp(ctx, dto.SignUpRequest{
		Email: "luis@clinic.example", Password: "password123", FullName: "Luis",
	})

	suite.Require().NoError(err)
	suite.Equal(domain.RoleReceptionist, profile.Role)
}

func (suite *AuthServiceTestSuite) TestSignUp_DuplicateEmail() {
	ctx := context.Background()
	suite.profiles.On("FindProfileByEmail", ctx, "ana@clinic.example").Return(suite.activeProfile("x"), nil).Once()

	_, err := suite.service.SignUp(ctx, dto.SignUpRequest{
		Email: "ana@clinic.example", Password: "password123", FullName: "Ana",
	})

	suite.ErrorIs(err, apperrors.ErrDuplicate)
	suite.profiles.AssertNotCalled(suite.T(), "SaveProfile", mock.Anything, mock.Anything)
}

func (suite *AuthServiceTestSuite) TestSignUp_ShortPassword() {
	_, err := suite.service.SignUp(context.Background(), dto.SignUpRequest{
		Email: "ana@clinic.example", Password: "short", FullName: "Ana",
	})
	suite.ErrorIs(err, apperrors.ErrValidation)
}

// --- SignIn ---

func (suite *AuthServiceTestSuite) TestSignIn_Success() {
	ctx := context.Background()
	suite.profiles.On("FindProfileByEmail", ctx, "ana@clinic.example").Return(suite.activeProfile("password123"), nil).Once()
	suite.profiles.On("TouchLastSignIn", ctx, "user-1", mock.AnythingOfType("time.Time")).Return(nil).Once()

	resp, err := suite.service.SignIn(ctx, dto.SignInRequest{Email: "ana@clinic.example", Password: "password123"})

	suite.Require().NoError(err)
	suite.NotEmpty(resp.Token)
	suite.Equal("user-1", resp.Profile.UserID)
	suite.NotNil(resp.Profile.LastSignInAt)

	claims, err := utils.ParseAndValidateJWT(resp.Token, suite.cfg.JWTSecret, suite.cfg.JWTIssuer)
	suite.Require().NoError(err)
	suite.Equal("user-1", claims.Subject)
	suite.NotEmpty(claims.ID)
}

func (suite *AuthServiceTestSuite) TestSignIn_WrongPassword() {
	ctx := context.Background()
	suite.profiles.On("FindProfileByEmail", ctx, "ana@clinic.example").Return(suite.activeProfile("password123"), nil).Once()

	_, err := suite.service.SignIn(ctx, dto.SignInRequest{Email: "ana@clinic.example", Password: "nope"})

	suite.ErrorIs(err, apperrors.ErrUnauthorized)
	suite.profiles.AssertNotCalled(suite.T(), "TouchLastSignIn", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *AuthServiceTestSuite) TestSignIn_DisabledProfile() {
	ctx := context.Background()
	disabled := suite.activeProfile("password123")
	disabled.IsActive = false
	suite.profiles.On("FindProfileByEmail", ctx, "ana@clinic.example").Return(disabled, nil).Once()

	_, err := suite.service.SignIn(ctx, dto.SignInRequest{Email: "ana@clinic.example", Password: "password123"})
	suite.ErrorIs(err, apperrors.ErrUnauthorized)
}

func (suite *AuthServiceTestSuite) TestSignIn_UnknownEmail() {
	ctx := context.Background()
	suite.profiles.On("FindProfileByEmail", ctx, "ghost@clinic.example").Return(nil, apperrors.ErrNotFound).Once()

	_, err := suite.service.SignIn(ctx, dto.SignInRequest{Email: "ghost@clinic.example", Password: "password123"})
	suite.ErrorIs(err, apperrors.ErrUnauthorized)
}

// --- Authenticate ---

func (suite *AuthServiceTestSuite) token(userID, tokenID string, ttl time.Duration) string {
	tok, _, err := utils.GenerateJWT(userID, tokenID, suite.cfg.JWTSecret, ttl, suite.cfg.JWTIssuer)
	suite.Require().NoError(err)
	return tok
}

func (suite *AuthServiceTestSuite) TestAuthenticate_Success() {
	ctx := context.Background()
	suite.profiles.On("IsTokenRevoked", ctx, "jti-1").Return(false, nil).Once()
	suite.profiles.On("FindProfileByID", ctx, "user-1").Return(suite.activeProfile("x"), nil).Once()

	session, err := suite.service.Authenticate(ctx, suite.token("user-1", "jti-1", time.Hour))

	suite.Require().NoError(err)
	suite.Equal("jti-1", session.TokenID)
	suite.Equal(domain.RoleCashier, session.Actor().Role)
}

func (suite *AuthServiceTestSuite) TestAuthenticate_Expired() {
	_, err := suite.service.Authenticate(context.Background(), suite.token("user-1", "jti-1", -time.Minute))

	suite.ErrorIs(err, apperrors.ErrUnauthorized)
	suite.ErrorIs(err, jwt.ErrTokenExpired)
	suite.profiles.AssertNotCalled(suite.T(), "IsTokenRevoked", mock.Anything, mock.Anything)
}

func (suite *AuthServiceTestSuite) TestAuthenticate_Revoked() {
	ctx := context.Background()
	suite.profiles.On("IsTokenRevoked", ctx, "jti-1").Return(true, nil).Once()

	_, err := suite.service.Authenticate(ctx, suite.token("user-1", "jti-1", time.Hour))

	suite.ErrorIs(err, apperrors.ErrUnauthorized)
	suite.profiles.AssertNotCalled(suite.T(), "FindProfileByID", mock.Anything, mock.Anything)
}

func (suite *AuthServiceTestSuite) TestAuthenticate_DisabledProfile() {
	ctx := context.Background()
	disabled := suite.activeProfile("x")
	disabled.IsActive = false
	suite.profiles.On("IsTokenRevoked", ctx, "jti-1").Return(false, nil).Once()
	suite.profiles.On("FindProfileByID", ctx, "user-1").Return(disabled, nil).Once()

	_, err := suite.service.Authenticate(ctx, suite.token("user-1", "jti-1", time.Hour))
	suite.ErrorIs(err, apperrors.ErrForbidden)
}

func (suite *AuthServiceTestSuite) TestSignOut_RevokesToken() {
	ctx := context.Background()
	expiresAt := time.Now().Add(time.Hour)
	suite.profiles.On("SaveRevokedToken", ctx, mock.MatchedBy(func(tok domain.RevokedToken) bool {
		return tok.TokenID == "jti-1" && tok.UserID == "user-1" && tok.ExpiresAt.Equal(expiresAt)
	})).Return(nil).Once()

	err := suite.service.SignOut(ctx, domain.Session{TokenID: "jti-1", ExpiresAt: expiresAt, Profile: domain.Profile{UserID: "user-1"}})

	suite.Require().NoError(err)
	suite.profiles.AssertExpectations(suite.T())
}

func (suite *AuthServiceTestSuite) TestSignOut_StoreError() {
	ctx := context.Background()
	suite.profiles.On("SaveRevokedToken", ctx, mock.Anything).Return(assert.AnError).Once()

	err := suite.service.SignOut(ctx, domain.Session{TokenID: "jti-1", Profile: domain.Profile{UserID: "user-1"}})
	suite.ErrorIs(err, assert.AnError)
}

func TestAuthServiceTestSuite(t *testing.T) {
	suite.Run(t, new(AuthServiceTestSuite))
}

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
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type AuditServiceTestSuite struct {
	suite.Suite
	auditRepo *MockAuditRepository
	profiles  *MockProfileRepository
	service   portssvc.AuditSvcFacade
}

func (suite *AuditServiceTestSuite) SetupTest() {
	suite.auditRepo = new(MockAuditRepository)
	suite.profiles = new(MockProfileRepository)
	suite.service = services.NewAuditService(suite.auditRepo, suite.profiles)
}

func (suite *AuditServiceTestSuite) TestGrant_Success() {
	ctx := context.Background()
	suite.profiles.On("FindProfileByID", ctx, "auditor-1").
		Return(&domain.Profile{UserID: "auditor-1", Role: domain.RoleAuditor, IsActive: true}, nil).Once()
	suite.auditRepo.On("SaveAuditSession", ctx, mock.MatchedBy(func(s domain.AuditSession) bool {
		return s.AuditorID == "auditor-1" && s.GrantedBy == admin.UserID &&
			s.ExpiresAt.Sub(s.StartsAt) == 4*time.Hour && s.Reason == "year-end review"
	})).Return(nil).Once()

	session, err := suite.service.GrantAuditSession(ctx, dto.GrantAuditSessionRequest{
		AuditorID: "auditor-1", Duration: "4h", Reason: "year-end review",
	}, admin)

	suite.Require().NoError(err)
	suite.NotEmpty(session.AuditSessionID)
	suite.auditRepo.AssertExpectations(suite.T())
}

func (suite *AuditServiceTestSuite) TestGrant_TargetMustBeAuditor() {
	ctx := context.Background()
	suite.profiles.On("FindProfileByID", ctx, "cashier-1").
		Return(&domain.Profile{UserID: "cashier-1", Role: domain.RoleCashier, IsActive: true}, nil).Once()

	_, err := suite.service.GrantAuditSession(ctx, dto.GrantAuditSessionRequest{
		AuditorID: "cashier-1", Duration: "4h", Reason: "x",
	}, admin)

	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.auditRepo.AssertNotCalled(suite.T(), "SaveAuditSession", mock.Anything, mock.Anything)
}

func (suite *AuditServiceTestSuite) TestGrant_DurationBounds() {
	for _, d := range []string{"30s", "721h", "soon"} {
		_, err := suite.service.GrantAuditSession(context.Background(), dto.GrantAuditSessionRequest{
			AuditorID: "auditor-1", Duration: d, Reason: "x",
		}, admin)
		suite.ErrorIs(err, apperrors.ErrValidation, d)
	}
}

func (suite *AuditServiceTestSuite) TestGrant_OnlyAdmins() {
	_, err := suite.service.GrantAuditSession(context.Background(), dto.GrantAuditSessionRequest{
		AuditorID: "auditor-1", Duration: "1h", Reason: "x",
	}, auditor)
	suite.ErrorIs(err, apperrors.ErrForbidden)
}

func (suite *AuditServiceTestSuite) TestRevoke() {
	ctx := context.Background()
	suite.auditRepo.On("FindAuditSessionByID", ctx, "as-1").Return(&domain.AuditSession{AuditSessionID: "as-1"}, nil).Once()
	suite.auditRepo.On("RevokeAuditSession", ctx, "as-1", admin.UserID, mock.AnythingOfType("time.Time")).Return(nil).Once()

	session, err := suite.service.RevokeAuditSession(ctx, "as-1", admin)

	suite.Require().NoError(err)
	suite.NotNil(session.RevokedAt)
	suite.False(session.IsActive(time.Now()))
}

func (suite *AuditServiceTestSuite) TestRevoke_AlreadyRevoked() {
	ctx := context.Background()
	revokedAt := time.Now().Add(-time.Hour)
	suite.auditRepo.On("FindAuditSessionByID", ctx, "as-1").
		Return(&domain.AuditSession{AuditSessionID: "as-1", RevokedAt: &revokedAt}, nil).Once()

	_, err := suite.service.RevokeAuditSession(ctx, "as-1", admin)

	suite.ErrorIs(err, apperrors.ErrConflict)
	suite.auditRepo.AssertNotCalled(suite.T(), "RevokeAuditSession", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *AuditServiceTestSuite) TestActiveSession_Expired() {
	ctx := context.Background()
	suite.auditRepo.On("FindActiveAuditSession", ctx, "auditor-1", mock.AnythingOfType("time.Time")).
		Return(nil, apperrors.ErrNotFound).Once()

	_, err := suite.service.ActiveSession(ctx, "auditor-1")
	suite.ErrorIs(err, apperrors.ErrAuditSessionExpired)
}

func (suite *AuditServiceTestSuite) TestListAuditSessions_AuditorSeesOwn() {
	ctx := context.Background()
	suite.auditRepo.On("ListAuditSessions", ctx, auditor.UserID, 200).Return(nil, nil).Once()

	sessions, err := suite.service.ListAuditSessions(ctx, "someone-else", auditor)

	suite.Require().NoError(err)
	suite.NotNil(sessions)
	suite.auditRepo.AssertExpectations(suite.T())

	_, err = suite.service.ListAuditSessions(ctx, "", cashier)
	suite.ErrorIs(err, apperrors.ErrForbidden)
}

func TestAuditServiceTestSuite(t *testing.T) {
	suite.Run(t, new(AuditServiceTestSuite))
}

package services_test

import (
	"context"
	"testing"

	"github.com/SscSPs/dental_clinic_app/internal/apperrors"
	"github.com/SscSPs/dental_clinic_app/internal/core/domain"
	portssvc "github.com/SscSPs/dental_clinic_app/internal/core/ports/services"
	"github.com/SscSPs/dental_clinic_app/internal/core/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type ProfileServiceTestSuite struct {
	suite.Suite
	repo    *MockProfileRepository
	service portssvc.ProfileSvcFacade
}

func (suite *ProfileServiceTestSuite) SetupTest() {
	suite.repo = new(MockProfileRepository)
	suite.service = services.NewProfileService(suite.repo)
}

func (suite *ProfileServiceTestSuite) TestUpdateRole_Success() {
	ctx := context.Background()
	suite.repo.On("FindProfileByID", ctx, "user-2").
		Return(&domain.Profile{UserID: "user-2", Role: domain.RoleReceptionist}, nil).Once()
	suite.repo.On("UpdateProfileRole", ctx, "user-2", domain.RoleCashier, admin.UserID, mock.AnythingOfType("time.Time")).
		Return(nil).Once()

	profile, err := suite.service.UpdateProfileRole(ctx, "user-2", domain.RoleCashier, admin)

	suite.Require().NoError(err)
	suite.Equal(domain.RoleCashier, profile.Role)
	suite.repo.AssertExpectations(suite.T())
}

func (suite *ProfileServiceTestSuite) TestUpdateRole_CannotChangeOwnRole() {
	_, err := suite.service.UpdateProfileRole(context.Background(), admin.UserID, domain.RoleCashier, admin)

	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.repo.AssertNotCalled(suite.T(), "UpdateProfileRole", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *ProfileServiceTestSuite) TestUpdateRole_UnknownRole() {
	_, err := suite.service.UpdateProfileRole(context.Background(), "user-2", domain.Role("owner"), admin)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *ProfileServiceTestSuite) TestUpdateRole_NotAdmin() {
	_, err := suite.service.UpdateProfileRole(context.Background(), "user-2", domain.RoleAdmin, cashier)
	suite.ErrorIs(err, apperrors.ErrForbidden)
}

func (suite *ProfileServiceTestSuite) TestSetActive_CannotDisableSelf() {
	_, err := suite.service.SetProfileActive(context.Background(), admin.UserID, false, admin)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *ProfileServiceTestSuite) TestGetProfile() {
	ctx := context.Background()
	suite.repo.On("FindProfileByID", ctx, cashier.UserID).Return(&domain.Profile{UserID: cashier.UserID}, nil).Once()

	profile, err := suite.service.GetProfile(ctx, cashier.UserID, cashier)
	suite.Require().NoError(err)
	suite.Equal(cashier.UserID, profile.UserID)

	_, err = suite.service.GetProfile(ctx, "user-2", cashier)
	suite.ErrorIs(err, apperrors.ErrForbidden)
}

func (suite *ProfileServiceTestSuite) TestListProfiles_RepoError() {
	ctx := context.Background()
	suite.repo.On("ListProfiles", ctx, 50, 0).Return(nil, assert.AnError).Once()

	profiles, err := suite.service.ListProfiles(ctx, 50, 0, admin)

	suite.Require().Error(err)
	suite.Nil(profiles)
	suite.Contains(err.Error(), "failed to list profiles")
	suite.ErrorIs(err, assert.AnError)
}

func TestProfileServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ProfileServiceTestSuite))
}

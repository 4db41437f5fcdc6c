package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/sahajbooks/gst_books_app/internal/apperrors"
	"github.com/sahajbooks/gst_books_app/internal/core/domain"
	portssvc "github.com/sahajbooks/gst_books_app/internal/core/ports/services"
	"github.com/sahajbooks/gst_books_app/internal/core/services"
	"github.com/sahajbooks/gst_books_app/internal/dto"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type WorkspaceServiceTestSuite struct {
	suite.Suite
	mockRepo         *MockWorkspaceRepository
	mockCurrencyRepo *MockCurrencyReader
	service          portssvc.WorkspaceSvcFacade

	workspaceID string
	userID      string
}

func (suite *WorkspaceServiceTestSuite) SetupTest() {
	suite.mockRepo = new(MockWorkspaceRepository)
	suite.mockCurrencyRepo = new(MockCurrencyReader)
	suite.service = services.NewWorkspaceService(suite.mockRepo, suite.mockCurrencyRepo)

	suite.workspaceID = uuid.NewString()
	suite.userID = uuid.NewString()
}

func (suite *WorkspaceServiceTestSuite) membership(role domain.UserWorkspaceRole) *domain.UserWorkspace {
	return &domain.UserWorkspace{
		UserID:      suite.userID,
		WorkspaceID: suite.workspaceID,
		Role:        role,
		JoinedAt:    time.Now(),
	}
}

func (suite *WorkspaceServiceTestSuite) TestCreateWorkspace_Success() {
	ctx := context.Background()
	req := dto.CreateWorkspaceRequest{
		Name:                "Mehta Traders",
		GSTIN:               "27ABCDE1234F1Z5",
		PAN:                 "ABCDE1234F",
		DefaultCurrencyCode: "INR",
	}

	suite.mockCurrencyRepo.On("FindCurrencyByCode", ctx, "INR").Return(&domain.Currency{CurrencyCode: "INR", Symbol: "₹", Name: "Indian Rupee"}, nil)

	var savedWorkspace domain.Workspace
	suite.mockRepo.On("SaveWorkspace", ctx, mock.AnythingOfType("domain.Workspace")).
		Run(func(args mock.Arguments) {
			savedWorkspace = args.Get(1).(domain.Workspace)
		}).Return(nil)

	var savedMembership domain.UserWorkspace
	suite.mockRepo.On("AddUserToWorkspace", ctx, mock.AnythingOfType("domain.UserWorkspace")).
		Run(func(args mock.Arguments) {
			savedMembership = args.Get(1).(domain.UserWorkspace)
		}).Return(nil)

	workspace, err := suite.service.CreateWorkspace(ctx, req, suite.userID)

	suite.Require().NoError(err)
	suite.Require().NotNil(workspace)
	suite.NotEmpty(workspace.WorkspaceID)
	suite.Equal("Mehta Traders", workspace.Name)
	suite.Equal("27ABCDE1234F1Z5", workspace.GSTIN)
	suite.True(workspace.IsActive)
	suite.Require().NotNil(workspace.DefaultCurrencyCode)
	suite.Equal("INR", *workspace.DefaultCurrencyCode)

	suite.Equal(workspace.WorkspaceID, savedWorkspace.WorkspaceID)
	suite.Equal(int64(1), savedWorkspace.Version)

	suite.Equal(suite.userID, savedMembership.UserID)
	suite.Equal(workspace.WorkspaceID, savedMembership.WorkspaceID)
	suite.Equal(domain.RoleAdmin, savedMembership.Role, "the creator becomes the workspace admin")

	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *WorkspaceServiceTestSuite) TestCreateWorkspace_UnknownCurrency() {
	ctx := context.Background()
	req := dto.CreateWorkspaceRequest{
		Name:                "Mehta Traders",
		DefaultCurrencyCode: "XXX",
	}

	suite.mockCurrencyRepo.On("FindCurrencyByCode", ctx, "XXX").Return(nil, apperrors.ErrNotFound)

	workspace, err := suite.service.CreateWorkspace(ctx, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.Nil(workspace)
	suite.mockRepo.AssertNotCalled(suite.T(), "SaveWorkspace", mock.Anything, mock.Anything)
}

func (suite *WorkspaceServiceTestSuite) TestAuthorizeUserAction_RoleHierarchy() {
	ctx := context.Background()

	suite.mockRepo.On("FindUserWorkspaceRole", ctx, suite.userID, suite.workspaceID).Return(suite.membership(domain.RoleMember), nil)

	suite.NoError(suite.service.AuthorizeUserAction(ctx, suite.userID, suite.workspaceID, domain.RoleReadOnly))
	suite.NoError(suite.service.AuthorizeUserAction(ctx, suite.userID, suite.workspaceID, domain.RoleMember))

	err := suite.service.AuthorizeUserAction(ctx, suite.userID, suite.workspaceID, domain.RoleAdmin)
	suite.ErrorIs(err, apperrors.ErrForbidden)
}

func (suite *WorkspaceServiceTestSuite) TestAuthorizeUserAction_NotAMember() {
	ctx := context.Background()

	suite.mockRepo.On("FindUserWorkspaceRole", ctx, suite.userID, suite.workspaceID).Return(nil, apperrors.ErrNotFound)

	err := suite.service.AuthorizeUserAction(ctx, suite.userID, suite.workspaceID, domain.RoleReadOnly)
	suite.ErrorIs(err, apperrors.ErrNotFound, "non-members see not-found, not forbidden")
}

func (suite *WorkspaceServiceTestSuite) TestRemoveUserFromWorkspace_SelfRemoval() {
	ctx := context.Background()

	suite.mockRepo.On("FindUserWorkspaceRole", ctx, suite.userID, suite.workspaceID).Return(suite.membership(domain.RoleAdmin), nil)

	err := suite.service.RemoveUserFromWorkspace(ctx, suite.userID, suite.userID, suite.workspaceID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockRepo.AssertNotCalled(suite.T(), "RemoveUserFromWorkspace", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *WorkspaceServiceTestSuite) TestUpdateUserWorkspaceRole_Success() {
	ctx := context.Background()
	targetUserID := uuid.NewString()

	suite.mockRepo.On("FindUserWorkspaceRole", ctx, suite.userID, suite.workspaceID).Return(suite.membership(domain.RoleAdmin), nil)
	suite.mockRepo.On("UpdateUserWorkspaceRole", ctx, targetUserID, suite.workspaceID, domain.RoleMember).Return(nil)

	err := suite.service.UpdateUserWorkspaceRole(ctx, suite.userID, targetUserID, suite.workspaceID, domain.RoleMember)

	suite.Require().NoError(err)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *WorkspaceServiceTestSuite) TestDeactivateWorkspace_AlreadyInactive() {
	ctx := context.Background()

	suite.mockRepo.On("FindUserWorkspaceRole", ctx, suite.userID, suite.workspaceID).Return(suite.membership(domain.RoleAdmin), nil)
	suite.mockRepo.On("FindWorkspaceByID", ctx, suite.workspaceID).Return(&domain.Workspace{
		WorkspaceID: suite.workspaceID,
		IsActive:    false,
	}, nil)

	err := suite.service.DeactivateWorkspace(ctx, suite.workspaceID, suite.userID)

	suite.Require().NoError(err)
	suite.mockRepo.AssertNotCalled(suite.T(), "UpdateWorkspaceStatus", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestWorkspaceServiceTestSuite(t *testing.T) {
	suite.Run(t, new(WorkspaceServiceTestSuite))
}

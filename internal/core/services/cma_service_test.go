package services_test

import (
	"context"
	"testing"

	"github.com/sahajbooks/gst_books_app/internal/apperrors"
	"github.com/sahajbooks/gst_books_app/internal/core/domain"
	portssvc "github.com/sahajbooks/gst_books_app/internal/core/ports/services"
	"github.com/sahajbooks/gst_books_app/internal/core/services"
	"github.com/sahajbooks/gst_books_app/internal/dto"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

type CMAServiceTestSuite struct {
	suite.Suite
	mockAuthorizer *MockWorkspaceAuthorizer
	service        portssvc.CMAService

	workspaceID string
	userID      string
}

func (suite *CMAServiceTestSuite) SetupTest() {
	suite.mockAuthorizer = new(MockWorkspaceAuthorizer)
	suite.service = services.NewCMAService(suite.mockAuthorizer)
	suite.workspaceID = uuid.NewString()
	suite.userID = uuid.NewString()
}

func (suite *CMAServiceTestSuite) TestProjectCMA_RequiresHistory() {
	ctx := context.Background()
	req := dto.CMAReportRequest{
		Assumptions: []dto.CMAAssumptionRequest{{}},
	}

	suite.mockAuthorizer.On("AuthorizeUserAction", ctx, suite.userID, suite.workspaceID, domain.RoleReadOnly).Return(nil)

	report, err := suite.service.ProjectCMA(ctx, suite.workspaceID, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.Nil(report)
}

func (suite *CMAServiceTestSuite) TestProjectCMA_RequiresAssumptions() {
	ctx := context.Background()
	req := dto.CMAReportRequest{
		History: []dto.CMAHistoricalYearRequest{{}},
	}

	suite.mockAuthorizer.On("AuthorizeUserAction", ctx, suite.userID, suite.workspaceID, domain.RoleReadOnly).Return(nil)

	report, err := suite.service.ProjectCMA(ctx, suite.workspaceID, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.Nil(report)
}

func (suite *CMAServiceTestSuite) TestLoanSchedule_Success() {
	ctx := context.Background()
	req := dto.LoanScheduleRequest{
		Principal:     decimal.NewFromInt(1200000),
		AnnualRatePct: decimal.NewFromInt(12),
		TermMonths:    24,
	}

	schedule, err := suite.service.LoanSchedule(ctx, req)

	suite.Require().NoError(err)
	suite.Require().NotNil(schedule)
	suite.Equal(24, schedule.TermMonths)
	suite.True(schedule.EMI.IsPositive())
	suite.Len(schedule.Installments, 24)
}

func (suite *CMAServiceTestSuite) TestLoanSchedule_RejectsZeroTerm() {
	ctx := context.Background()
	req := dto.LoanScheduleRequest{
		Principal:     decimal.NewFromInt(100000),
		AnnualRatePct: decimal.NewFromInt(10),
		TermMonths:    0,
	}

	schedule, err := suite.service.LoanSchedule(ctx, req)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.Nil(schedule)
}

func TestCMAServiceTestSuite(t *testing.T) {
	suite.Run(t, new(CMAServiceTestSuite))
}

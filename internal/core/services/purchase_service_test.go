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
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type PurchaseServiceTestSuite struct {
	suite.Suite
	mockPurchaseRepo *MockPurchaseRepository
	mockVoucherRepo  *MockVoucherRepository
	mockAccountRepo  *MockAccountRepository
	mockAccountSvc   *MockAccountService
	mockWorkspaceSvc *MockWorkspaceService
	service          portssvc.PurchaseBillSvcFacade

	workspaceID string
	userID      string

	vendorAccID    string
	purchasesAccID string
	inputGSTAccID  string
	tdsAccID       string
}

func (suite *PurchaseServiceTestSuite) SetupTest() {
	suite.mockPurchaseRepo = new(MockPurchaseRepository)
	suite.mockVoucherRepo = new(MockVoucherRepository)
	suite.mockAccountRepo = new(MockAccountRepository)
	suite.mockAccountSvc = new(MockAccountService)
	suite.mockWorkspaceSvc = new(MockWorkspaceService)
	suite.service = services.NewPurchaseService(suite.mockPurchaseRepo, suite.mockVoucherRepo, suite.mockAccountRepo, suite.mockAccountSvc, suite.mockWorkspaceSvc)

	suite.workspaceID = uuid.NewString()
	suite.userID = uuid.NewString()

	suite.vendorAccID = uuid.NewString()
	suite.purchasesAccID = uuid.NewString()
	suite.inputGSTAccID = uuid.NewString()
	suite.tdsAccID = uuid.NewString()
}

func (suite *PurchaseServiceTestSuite) account(id string, accType domain.AccountType) domain.Account {
	return domain.Account{
		AccountID:    id,
		WorkspaceID:  suite.workspaceID,
		AccountType:  accType,
		CurrencyCode: "INR",
		IsActive:     true,
	}
}

func (suite *PurchaseServiceTestSuite) expectPostingPath(ctx context.Context) {
	cur := "INR"
	suite.mockWorkspaceSvc.On("AuthorizeUserAction", ctx, suite.userID, suite.workspaceID, domain.RoleMember).Return(nil)
	suite.mockWorkspaceSvc.On("FindWorkspaceByID", ctx, suite.workspaceID).Return(&domain.Workspace{
		WorkspaceID:         suite.workspaceID,
		DefaultCurrencyCode: &cur,
		IsActive:            true,
	}, nil)
	suite.mockAccountRepo.On("GetSystemAccountMap", ctx, suite.workspaceID).Return(map[string]string{
		domain.CodePurchases:  suite.purchasesAccID,
		domain.CodeInputGST:   suite.inputGSTAccID,
		domain.CodeTDSPayable: suite.tdsAccID,
	}, nil)
	suite.mockVoucherRepo.On("VoucherExists", ctx, mock.AnythingOfType("string")).Return(false, nil)
	suite.mockAccountSvc.On("GetAccountByIDs", ctx, suite.workspaceID, mock.AnythingOfType("[]string"), suite.userID).Return(map[string]domain.Account{
		suite.vendorAccID:    suite.account(suite.vendorAccID, domain.Liability),
		suite.purchasesAccID: suite.account(suite.purchasesAccID, domain.Expense),
		suite.inputGSTAccID:  suite.account(suite.inputGSTAccID, domain.Asset),
		suite.tdsAccID:       suite.account(suite.tdsAccID, domain.Liability),
	}, nil)
}

func (suite *PurchaseServiceTestSuite) billRequest() dto.CreatePurchaseBillRequest {
	return dto.CreatePurchaseBillRequest{
		BillNumber:      "B-100",
		BillDate:        time.Date(2025, 7, 2, 0, 0, 0, 0, time.UTC),
		VendorAccountID: suite.vendorAccID,
		VendorName:      "Sharma Transport",
		VendorGSTIN:     "27KLMNO9876P1Z2",
		TaxableValue:    decimal.NewFromInt(100000),
		GSTAmount:       decimal.NewFromInt(18000),
	}
}

func (suite *PurchaseServiceTestSuite) TestCreatePurchaseBill_WithTDS() {
	ctx := context.Background()
	req := suite.billRequest()
	req.TDSSection = "194C"
	req.TDSAmount = decimal.NewFromInt(2000)

	suite.expectPostingPath(ctx)
	suite.mockPurchaseRepo.On("BillNumberExists", ctx, suite.workspaceID, "Sharma Transport", "B-100").Return(false, nil)
	suite.mockPurchaseRepo.On("SavePurchaseBill", ctx, mock.AnythingOfType("domain.PurchaseBill")).Return(nil, nil)

	var postedEntries []domain.VoucherEntry
	suite.mockVoucherRepo.On("SaveVoucher", ctx, mock.AnythingOfType("domain.Voucher"), mock.AnythingOfType("[]domain.VoucherEntry"), mock.Anything).
		Run(func(args mock.Arguments) {
			postedEntries = args.Get(2).([]domain.VoucherEntry)
		}).Return(nil)

	bill, err := suite.service.CreatePurchaseBill(ctx, suite.workspaceID, req, suite.userID)

	suite.Require().NoError(err)
	suite.Require().NotNil(bill)
	suite.True(bill.TotalAmount.Equal(decimal.NewFromInt(118000)))
	suite.Equal(domain.DocumentPosted, bill.Status)

	suite.Require().Len(postedEntries, 4)
	byAccount := make(map[string]domain.VoucherEntry, len(postedEntries))
	for _, e := range postedEntries {
		byAccount[e.AccountID] = e
	}
	suite.Equal(domain.Debit, byAccount[suite.purchasesAccID].Side)
	suite.True(byAccount[suite.purchasesAccID].Amount.Equal(decimal.NewFromInt(100000)))
	suite.True(byAccount[suite.inputGSTAccID].Amount.Equal(decimal.NewFromInt(18000)))
	suite.Equal(domain.Credit, byAccount[suite.tdsAccID].Side)
	suite.True(byAccount[suite.tdsAccID].Amount.Equal(decimal.NewFromInt(2000)))
	suite.Equal(domain.Credit, byAccount[suite.vendorAccID].Side)
	suite.True(byAccount[suite.vendorAccID].Amount.Equal(decimal.NewFromInt(116000)), "vendor credit is net of the TDS deduction")
}

func (suite *PurchaseServiceTestSuite) TestCreatePurchaseBill_WithoutTDS() {
	ctx := context.Background()
	req := suite.billRequest()

	suite.expectPostingPath(ctx)
	suite.mockPurchaseRepo.On("BillNumberExists", ctx, suite.workspaceID, "Sharma Transport", "B-100").Return(false, nil)
	suite.mockPurchaseRepo.On("SavePurchaseBill", ctx, mock.AnythingOfType("domain.PurchaseBill")).Return(nil, nil)

	var postedEntries []domain.VoucherEntry
	suite.mockVoucherRepo.On("SaveVoucher", ctx, mock.AnythingOfType("domain.Voucher"), mock.AnythingOfType("[]domain.VoucherEntry"), mock.Anything).
		Run(func(args mock.Arguments) {
			postedEntries = args.Get(2).([]domain.VoucherEntry)
		}).Return(nil)

	bill, err := suite.service.CreatePurchaseBill(ctx, suite.workspaceID, req, suite.userID)

	suite.Require().NoError(err)
	suite.Require().NotNil(bill)
	suite.Require().Len(postedEntries, 3)

	byAccount := make(map[string]domain.VoucherEntry, len(postedEntries))
	for _, e := range postedEntries {
		byAccount[e.AccountID] = e
	}
	suite.True(byAccount[suite.vendorAccID].Amount.Equal(decimal.NewFromInt(118000)))
}

func (suite *PurchaseServiceTestSuite) TestCreatePurchaseBill_TDSWithoutSection() {
	ctx := context.Background()
	req := suite.billRequest()
	req.TDSAmount = decimal.NewFromInt(2000)

	suite.mockWorkspaceSvc.On("AuthorizeUserAction", ctx, suite.userID, suite.workspaceID, domain.RoleMember).Return(nil)

	bill, err := suite.service.CreatePurchaseBill(ctx, suite.workspaceID, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.Nil(bill)
	suite.mockPurchaseRepo.AssertNotCalled(suite.T(), "SavePurchaseBill", mock.Anything, mock.Anything)
}

func (suite *PurchaseServiceTestSuite) TestCreatePurchaseBill_DuplicateBillNumber() {
	ctx := context.Background()
	req := suite.billRequest()

	suite.mockWorkspaceSvc.On("AuthorizeUserAction", ctx, suite.userID, suite.workspaceID, domain.RoleMember).Return(nil)
	suite.mockPurchaseRepo.On("BillNumberExists", ctx, suite.workspaceID, "Sharma Transport", "B-100").Return(true, nil)

	bill, err := suite.service.CreatePurchaseBill(ctx, suite.workspaceID, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrDuplicate)
	suite.Nil(bill)
	suite.mockPurchaseRepo.AssertNotCalled(suite.T(), "SavePurchaseBill", mock.Anything, mock.Anything)
}

func (suite *PurchaseServiceTestSuite) TestCreatePurchaseBill_NonPositiveTaxable() {
	ctx := context.Background()
	req := suite.billRequest()
	req.TaxableValue = decimal.Zero

	suite.mockWorkspaceSvc.On("AuthorizeUserAction", ctx, suite.userID, suite.workspaceID, domain.RoleMember).Return(nil)

	bill, err := suite.service.CreatePurchaseBill(ctx, suite.workspaceID, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.Nil(bill)
}

func TestPurchaseServiceTestSuite(t *testing.T) {
	suite.Run(t, new(PurchaseServiceTestSuite))
}

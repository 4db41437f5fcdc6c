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

type InvoiceServiceTestSuite struct {
	suite.Suite
	mockInvoiceRepo  *MockInvoiceRepository
	mockVoucherRepo  *MockVoucherRepository
	mockAccountRepo  *MockAccountRepository
	mockAccountSvc   *MockAccountService
	mockWorkspaceSvc *MockWorkspaceService
	service          portssvc.InvoiceSvcFacade

	workspaceID string
	userID      string
	sellerGSTIN string

	customerAccID string
	salesAccID    string
	cgstAccID     string
	sgstAccID     string
	igstAccID     string
}

func (suite *InvoiceServiceTestSuite) SetupTest() {
	suite.mockInvoiceRepo = new(MockInvoiceRepository)
	suite.mockVoucherRepo = new(MockVoucherRepository)
	suite.mockAccountRepo = new(MockAccountRepository)
	suite.mockAccountSvc = new(MockAccountService)
	suite.mockWorkspaceSvc = new(MockWorkspaceService)
	suite.service = services.NewInvoiceService(suite.mockInvoiceRepo, suite.mockVoucherRepo, suite.mockAccountRepo, suite.mockAccountSvc, suite.mockWorkspaceSvc)

	suite.workspaceID = uuid.NewString()
	suite.userID = uuid.NewString()
	suite.sellerGSTIN = "27ABCDE1234F1Z5"

	suite.customerAccID = uuid.NewString()
	suite.salesAccID = uuid.NewString()
	suite.cgstAccID = uuid.NewString()
	suite.sgstAccID = uuid.NewString()
	suite.igstAccID = uuid.NewString()
}

func (suite *InvoiceServiceTestSuite) chart() map[string]string {
	return map[string]string{
		domain.CodeSales:      suite.salesAccID,
		domain.CodeOutputCGST: suite.cgstAccID,
		domain.CodeOutputSGST: suite.sgstAccID,
		domain.CodeOutputIGST: suite.igstAccID,
	}
}

func (suite *InvoiceServiceTestSuite) account(id string, accType domain.AccountType) domain.Account {
	return domain.Account{
		AccountID:    id,
		WorkspaceID:  suite.workspaceID,
		AccountType:  accType,
		CurrencyCode: "INR",
		IsActive:     true,
	}
}

func (suite *InvoiceServiceTestSuite) ledgerAccounts() map[string]domain.Account {
	return map[string]domain.Account{
		suite.customerAccID: suite.account(suite.customerAccID, domain.Asset),
		suite.salesAccID:    suite.account(suite.salesAccID, domain.Income),
		suite.cgstAccID:     suite.account(suite.cgstAccID, domain.Liability),
		suite.sgstAccID:     suite.account(suite.sgstAccID, domain.Liability),
		suite.igstAccID:     suite.account(suite.igstAccID, domain.Liability),
	}
}

// expectWorkspace wires the authorization and workspace lookups every
// posting path performs.
func (suite *InvoiceServiceTestSuite) expectWorkspace(ctx context.Context) {
	cur := "INR"
	suite.mockWorkspaceSvc.On("AuthorizeUserAction", ctx, suite.userID, suite.workspaceID, domain.RoleMember).Return(nil)
	suite.mockWorkspaceSvc.On("FindWorkspaceByID", ctx, suite.workspaceID).Return(&domain.Workspace{
		WorkspaceID:         suite.workspaceID,
		GSTIN:               suite.sellerGSTIN,
		DefaultCurrencyCode: &cur,
		IsActive:            true,
	}, nil)
}

func (suite *InvoiceServiceTestSuite) invoiceRequest(customerGSTIN string) dto.CreateInvoiceRequest {
	return dto.CreateInvoiceRequest{
		InvoiceNumber:     "INV-001",
		InvoiceDate:       time.Date(2025, 7, 14, 0, 0, 0, 0, time.UTC),
		CustomerAccountID: suite.customerAccID,
		CustomerName:      "Mehta Traders",
		CustomerGSTIN:     customerGSTIN,
		Lines: []dto.InvoiceLineRequest{
			{
				Description: "Steel rods",
				HSNCode:     "7214",
				Quantity:    decimal.NewFromInt(10),
				UnitPrice:   decimal.NewFromInt(100),
				GSTRate:     decimal.NewFromInt(18),
			},
		},
	}
}

func (suite *InvoiceServiceTestSuite) TestCreateInvoice_IntrastateSplitsCGSTSGST() {
	ctx := context.Background()
	req := suite.invoiceRequest("27FGHIJ5678K1Z3")

	suite.expectWorkspace(ctx)
	suite.mockInvoiceRepo.On("InvoiceNumberExists", ctx, suite.workspaceID, "INV-001").Return(false, nil)
	suite.mockInvoiceRepo.On("SaveInvoice", ctx, mock.AnythingOfType("domain.Invoice")).Return(nil, nil)
	suite.mockAccountRepo.On("GetSystemAccountMap", ctx, suite.workspaceID).Return(suite.chart(), nil)
	suite.mockVoucherRepo.On("VoucherExists", ctx, mock.AnythingOfType("string")).Return(false, nil)
	suite.mockAccountSvc.On("GetAccountByIDs", ctx, suite.workspaceID, mock.AnythingOfType("[]string"), suite.userID).Return(suite.ledgerAccounts(), nil)

	var postedEntries []domain.VoucherEntry
	suite.mockVoucherRepo.On("SaveVoucher", ctx, mock.AnythingOfType("domain.Voucher"), mock.AnythingOfType("[]domain.VoucherEntry"), mock.Anything).
		Run(func(args mock.Arguments) {
			postedEntries = args.Get(2).([]domain.VoucherEntry)
		}).Return(nil)

	invoice, err := suite.service.CreateInvoice(ctx, suite.workspaceID, req, suite.userID)

	suite.Require().NoError(err)
	suite.Require().NotNil(invoice)
	suite.True(invoice.TaxableValue.Equal(decimal.NewFromInt(1000)), "taxable value %s", invoice.TaxableValue)
	suite.True(invoice.CGST.Equal(decimal.NewFromInt(90)), "cgst %s", invoice.CGST)
	suite.True(invoice.SGST.Equal(decimal.NewFromInt(90)), "sgst %s", invoice.SGST)
	suite.True(invoice.IGST.IsZero(), "igst %s", invoice.IGST)
	suite.True(invoice.TotalAmount.Equal(decimal.NewFromInt(1180)), "total %s", invoice.TotalAmount)
	suite.Equal("27", invoice.PlaceOfSupply)

	suite.Require().Len(postedEntries, 4)
	byAccount := make(map[string]domain.VoucherEntry, len(postedEntries))
	debits, credits := decimal.Zero, decimal.Zero
	for _, e := range postedEntries {
		byAccount[e.AccountID] = e
		if e.Side == domain.Debit {
			debits = debits.Add(e.Amount)
		} else {
			credits = credits.Add(e.Amount)
		}
	}
	suite.True(debits.Equal(credits), "voucher must balance: %s vs %s", debits, credits)
	suite.Equal(domain.Debit, byAccount[suite.customerAccID].Side)
	suite.True(byAccount[suite.customerAccID].Amount.Equal(decimal.NewFromInt(1180)))
	suite.True(byAccount[suite.salesAccID].Amount.Equal(decimal.NewFromInt(1000)))
	suite.True(byAccount[suite.cgstAccID].Amount.Equal(decimal.NewFromInt(90)))
	suite.True(byAccount[suite.sgstAccID].Amount.Equal(decimal.NewFromInt(90)))

	suite.mockVoucherRepo.AssertExpectations(suite.T())
	suite.mockInvoiceRepo.AssertExpectations(suite.T())
}

func (suite *InvoiceServiceTestSuite) TestCreateInvoice_InterstateChargesIGST() {
	ctx := context.Background()
	req := suite.invoiceRequest("29FGHIJ5678K1Z3")

	suite.expectWorkspace(ctx)
	suite.mockInvoiceRepo.On("InvoiceNumberExists", ctx, suite.workspaceID, "INV-001").Return(false, nil)
	suite.mockInvoiceRepo.On("SaveInvoice", ctx, mock.AnythingOfType("domain.Invoice")).Return(nil, nil)
	suite.mockAccountRepo.On("GetSystemAccountMap", ctx, suite.workspaceID).Return(suite.chart(), nil)
	suite.mockVoucherRepo.On("VoucherExists", ctx, mock.AnythingOfType("string")).Return(false, nil)
	suite.mockAccountSvc.On("GetAccountByIDs", ctx, suite.workspaceID, mock.AnythingOfType("[]string"), suite.userID).Return(suite.ledgerAccounts(), nil)
	suite.mockVoucherRepo.On("SaveVoucher", ctx, mock.AnythingOfType("domain.Voucher"), mock.AnythingOfType("[]domain.VoucherEntry"), mock.Anything).Return(nil)

	invoice, err := suite.service.CreateInvoice(ctx, suite.workspaceID, req, suite.userID)

	suite.Require().NoError(err)
	suite.Require().NotNil(invoice)
	suite.True(invoice.IGST.Equal(decimal.NewFromInt(180)), "igst %s", invoice.IGST)
	suite.True(invoice.CGST.IsZero())
	suite.True(invoice.SGST.IsZero())
	suite.True(invoice.TotalAmount.Equal(decimal.NewFromInt(1180)))
	suite.Equal("29", invoice.PlaceOfSupply, "place of supply defaults from the customer GSTIN")
}

func (suite *InvoiceServiceTestSuite) TestCreateInvoice_ConsumerSaleIsIntrastate() {
	ctx := context.Background()
	req := suite.invoiceRequest("")

	suite.expectWorkspace(ctx)
	suite.mockInvoiceRepo.On("InvoiceNumberExists", ctx, suite.workspaceID, "INV-001").Return(false, nil)
	suite.mockInvoiceRepo.On("SaveInvoice", ctx, mock.AnythingOfType("domain.Invoice")).Return(nil, nil)
	suite.mockAccountRepo.On("GetSystemAccountMap", ctx, suite.workspaceID).Return(suite.chart(), nil)
	suite.mockVoucherRepo.On("VoucherExists", ctx, mock.AnythingOfType("string")).Return(false, nil)
	suite.mockAccountSvc.On("GetAccountByIDs", ctx, suite.workspaceID, mock.AnythingOfType("[]string"), suite.userID).Return(suite.ledgerAccounts(), nil)
	suite.mockVoucherRepo.On("SaveVoucher", ctx, mock.AnythingOfType("domain.Voucher"), mock.AnythingOfType("[]domain.VoucherEntry"), mock.Anything).Return(nil)

	invoice, err := suite.service.CreateInvoice(ctx, suite.workspaceID, req, suite.userID)

	suite.Require().NoError(err)
	suite.True(invoice.CGST.Equal(decimal.NewFromInt(90)))
	suite.True(invoice.SGST.Equal(decimal.NewFromInt(90)))
	suite.True(invoice.IGST.IsZero())
	suite.Equal("27", invoice.PlaceOfSupply, "place of supply falls back to the seller state")
}

func (suite *InvoiceServiceTestSuite) TestCreateInvoice_DuplicateNumber() {
	ctx := context.Background()
	req := suite.invoiceRequest("27FGHIJ5678K1Z3")

	suite.expectWorkspace(ctx)
	suite.mockInvoiceRepo.On("InvoiceNumberExists", ctx, suite.workspaceID, "INV-001").Return(true, nil)

	invoice, err := suite.service.CreateInvoice(ctx, suite.workspaceID, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrDuplicate)
	suite.Nil(invoice)
	suite.mockInvoiceRepo.AssertNotCalled(suite.T(), "SaveInvoice", mock.Anything, mock.Anything)
	suite.mockVoucherRepo.AssertNotCalled(suite.T(), "SaveVoucher", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *InvoiceServiceTestSuite) TestCreateInvoice_NonPositiveQuantity() {
	ctx := context.Background()
	req := suite.invoiceRequest("27FGHIJ5678K1Z3")
	req.Lines[0].Quantity = decimal.Zero

	suite.expectWorkspace(ctx)
	suite.mockInvoiceRepo.On("InvoiceNumberExists", ctx, suite.workspaceID, "INV-001").Return(false, nil)

	invoice, err := suite.service.CreateInvoice(ctx, suite.workspaceID, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.Nil(invoice)
	suite.mockInvoiceRepo.AssertNotCalled(suite.T(), "SaveInvoice", mock.Anything, mock.Anything)
}

func (suite *InvoiceServiceTestSuite) TestCreateInvoice_Forbidden() {
	ctx := context.Background()
	req := suite.invoiceRequest("27FGHIJ5678K1Z3")

	suite.mockWorkspaceSvc.On("AuthorizeUserAction", ctx, suite.userID, suite.workspaceID, domain.RoleMember).Return(apperrors.ErrForbidden)

	invoice, err := suite.service.CreateInvoice(ctx, suite.workspaceID, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrForbidden)
	suite.Nil(invoice)
	suite.mockInvoiceRepo.AssertNotCalled(suite.T(), "InvoiceNumberExists", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *InvoiceServiceTestSuite) TestGetInvoiceByID_NotFound() {
	ctx := context.Background()
	invoiceID := uuid.NewString()

	suite.mockWorkspaceSvc.On("AuthorizeUserAction", ctx, suite.userID, suite.workspaceID, domain.RoleReadOnly).Return(nil)
	suite.mockInvoiceRepo.On("FindInvoiceByID", ctx, suite.workspaceID, invoiceID).Return(nil, apperrors.ErrNotFound)

	invoice, err := suite.service.GetInvoiceByID(ctx, suite.workspaceID, invoiceID, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.Nil(invoice)
}

func TestInvoiceServiceTestSuite(t *testing.T) {
	suite.Run(t, new(InvoiceServiceTestSuite))
}

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
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Mock AccountRepository ---
type MockAccountRepository struct {
	mock.Mock
}

func (m *MockAccountRepository) SaveAccount(ctx context.Context, account domain.Account) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

func (m *MockAccountRepository) UpdateAccount(ctx context.Context, account domain.Account) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

func (m *MockAccountRepository) DeactivateAccount(ctx context.Context, accountID string, userID string, now time.Time) error {
	args := m.Called(ctx, accountID, userID, now)
	return args.Error(0)
}

func (m *MockAccountRepository) FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountRepository) FindAccountBySystemCode(ctx context.Context, workspaceID string, systemCode string) (*domain.Account, error) {
	args := m.Called(ctx, workspaceID, systemCode)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountRepository) GetSystemAccountMap(ctx context.Context, workspaceID string) (map[string]string, error) {
	args := m.Called(ctx, workspaceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]string), args.Error(1)
}

func (m *MockAccountRepository) FindAccountsByIDs(ctx context.Context, accountIDs []string) (map[string]domain.Account, error) {
	args := m.Called(ctx, accountIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]domain.Account), args.Error(1)
}

func (m *MockAccountRepository) ListAccounts(ctx context.Context, workspaceID string, limit int, offset int) ([]domain.Account, error) {
	args := m.Called(ctx, workspaceID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Account), args.Error(1)
}

func (m *MockAccountRepository) FindAccountsByIDsForUpdate(ctx context.Context, tx pgx.Tx, accountIDs []string) (map[string]domain.Account, error) {
	args := m.Called(ctx, tx, accountIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]domain.Account), args.Error(1)
}

func (m *MockAccountRepository) UpdateAccountBalancesInTx(ctx context.Context, tx pgx.Tx, balanceChanges map[string]decimal.Decimal, userID string, now time.Time) error {
	args := m.Called(ctx, tx, balanceChanges, userID, now)
	return args.Error(0)
}

// --- Mock WorkspaceAuthorizer ---
type MockWorkspaceAuthorizer struct {
	mock.Mock
}

func (m *MockWorkspaceAuthorizer) AuthorizeUserAction(ctx context.Context, userID, workspaceID string, requiredRole domain.UserWorkspaceRole) error {
	args := m.Called(ctx, userID, workspaceID, requiredRole)
	return args.Error(0)
}

// --- Mock CurrencyReader ---
type MockCurrencyReader struct {
	mock.Mock
}

func (m *MockCurrencyReader) FindCurrencyByCode(ctx context.Context, currencyCode string) (*domain.Currency, error) {
	args := m.Called(ctx, currencyCode)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Currency), args.Error(1)
}

func (m *MockCurrencyReader) ListCurrencies(ctx context.Context) ([]domain.Currency, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Currency), args.Error(1)
}

// --- Test Suite ---
type AccountServiceTestSuite struct {
	suite.Suite
	mockRepo         *MockAccountRepository
	mockCurrencyRepo *MockCurrencyReader
	mockAuthorizer   *MockWorkspaceAuthorizer
	service          portssvc.AccountSvcFacade

	workspaceID string
	userID      string
}

func (suite *AccountServiceTestSuite) SetupTest() {
	suite.mockRepo = new(MockAccountRepository)
	suite.mockCurrencyRepo = new(MockCurrencyReader)
	suite.mockAuthorizer = new(MockWorkspaceAuthorizer)
	suite.service = services.NewAccountService(suite.mockRepo, suite.mockCurrencyRepo, suite.mockAuthorizer)
	suite.workspaceID = uuid.NewString()
	suite.userID = uuid.NewString()
}

// --- CreateAccount ---

func (suite *AccountServiceTestSuite) TestCreateAccount_Success() {
	ctx := context.Background()
	req := dto.CreateAccountRequest{
		Name:         "Office Rent",
		AccountType:  domain.Expense,
		Placement:    domain.PlacementIndirect,
		CurrencyCode: "INR",
	}

	suite.mockAuthorizer.On("AuthorizeUserAction", ctx, suite.userID, suite.workspaceID, domain.RoleMember).Return(nil).Once()
	suite.mockCurrencyRepo.On("FindCurrencyByCode", ctx, "INR").Return(&domain.Currency{CurrencyCode: "INR"}, nil).Once()
	suite.mockRepo.On("SaveAccount", ctx, mock.MatchedBy(func(acc domain.Account) bool {
		return acc.Name == req.Name &&
			acc.WorkspaceID == suite.workspaceID &&
			acc.AccountType == domain.Expense &&
			acc.Placement == domain.PlacementIndirect &&
			acc.PartyType == domain.PartyNone &&
			acc.IsActive &&
			acc.AccountID != ""
	})).Return(nil).Once()

	account, err := suite.service.CreateAccount(ctx, suite.workspaceID, req, suite.userID)

	suite.Require().NoError(err)
	suite.Require().NotNil(account)
	suite.Equal(req.Name, account.Name)
	suite.Equal(suite.workspaceID, account.WorkspaceID)
	suite.True(account.IsActive)
	suite.mockRepo.AssertExpectations(suite.T())
	suite.mockAuthorizer.AssertExpectations(suite.T())
}

func (suite *AccountServiceTestSuite) TestCreateAccount_Unauthorized() {
	ctx := context.Background()
	req := dto.CreateAccountRequest{Name: "Sales", AccountType: domain.Income, CurrencyCode: "INR"}

	suite.mockAuthorizer.On("AuthorizeUserAction", ctx, suite.userID, suite.workspaceID, domain.RoleMember).Return(apperrors.ErrForbidden).Once()

	account, err := suite.service.CreateAccount(ctx, suite.workspaceID, req, suite.userID)

	suite.Require().Error(err)
	suite.Nil(account)
	suite.ErrorIs(err, apperrors.ErrForbidden)
	suite.mockRepo.AssertNotCalled(suite.T(), "SaveAccount", mock.Anything, mock.Anything)
}

func (suite *AccountServiceTestSuite) TestCreateAccount_PlacementOnBalanceSheetAccount() {
	ctx := context.Background()
	req := dto.CreateAccountRequest{
		Name:         "Machinery",
		AccountType:  domain.Asset,
		Placement:    domain.PlacementDirect,
		CurrencyCode: "INR",
	}

	suite.mockAuthorizer.On("AuthorizeUserAction", ctx, suite.userID, suite.workspaceID, domain.RoleMember).Return(nil).Once()
	suite.mockCurrencyRepo.On("FindCurrencyByCode", ctx, "INR").Return(&domain.Currency{CurrencyCode: "INR"}, nil).Once()

	account, err := suite.service.CreateAccount(ctx, suite.workspaceID, req, suite.userID)

	suite.Require().Error(err)
	suite.Nil(account)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockRepo.AssertNotCalled(suite.T(), "SaveAccount", mock.Anything, mock.Anything)
}

func (suite *AccountServiceTestSuite) TestCreateAccount_GSTINRequiresPartyType() {
	ctx := context.Background()
	req := dto.CreateAccountRequest{
		Name:         "Misc",
		AccountType:  domain.Asset,
		GSTIN:        "27ABCDE1234F1Z5",
		CurrencyCode: "INR",
	}

	suite.mockAuthorizer.On("AuthorizeUserAction", ctx, suite.userID, suite.workspaceID, domain.RoleMember).Return(nil).Once()
	suite.mockCurrencyRepo.On("FindCurrencyByCode", ctx, "INR").Return(&domain.Currency{CurrencyCode: "INR"}, nil).Once()

	account, err := suite.service.CreateAccount(ctx, suite.workspaceID, req, suite.userID)

	suite.Require().Error(err)
	suite.Nil(account)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *AccountServiceTestSuite) TestCreateAccount_CustomerWithGSTIN() {
	ctx := context.Background()
	req := dto.CreateAccountRequest{
		Name:         "Acme Traders",
		AccountType:  domain.Asset,
		PartyType:    domain.PartyCustomer,
		GSTIN:        "27ABCDE1234F1Z5",
		CurrencyCode: "INR",
	}

	suite.mockAuthorizer.On("AuthorizeUserAction", ctx, suite.userID, suite.workspaceID, domain.RoleMember).Return(nil).Once()
	suite.mockCurrencyRepo.On("FindCurrencyByCode", ctx, "INR").Return(&domain.Currency{CurrencyCode: "INR"}, nil).Once()
	suite.mockRepo.On("SaveAccount", ctx, mock.MatchedBy(func(acc domain.Account) bool {
		return acc.PartyType == domain.PartyCustomer && acc.GSTIN == req.GSTIN
	})).Return(nil).Once()

	account, err := suite.service.CreateAccount(ctx, suite.workspaceID, req, suite.userID)

	suite.Require().NoError(err)
	suite.Equal(domain.PartyCustomer, account.PartyType)
	suite.mockRepo.AssertExpectations(suite.T())
}

// --- EnsureDefaultChart ---

func (suite *AccountServiceTestSuite) TestEnsureDefaultChart_SeedsMissingAccounts() {
	ctx := context.Background()

	// Workspace already has sales and purchases; the rest must be seeded.
	existing := map[string]string{
		domain.CodeSales:     uuid.NewString(),
		domain.CodePurchases: uuid.NewString(),
	}

	suite.mockAuthorizer.On("AuthorizeUserAction", ctx, suite.userID, suite.workspaceID, domain.RoleMember).Return(nil).Once()
	suite.mockRepo.On("GetSystemAccountMap", ctx, suite.workspaceID).Return(existing, nil).Once()

	seeded := map[string]bool{}
	suite.mockRepo.On("SaveAccount", ctx, mock.MatchedBy(func(acc domain.Account) bool {
		if acc.SystemCode == "" || acc.CurrencyCode != "INR" || !acc.IsActive {
			return false
		}
		seeded[acc.SystemCode] = true
		return true
	})).Return(nil).Times(11)

	err := suite.service.EnsureDefaultChart(ctx, suite.workspaceID, suite.userID)

	suite.Require().NoError(err)
	suite.False(seeded[domain.CodeSales])
	suite.False(seeded[domain.CodePurchases])
	suite.True(seeded[domain.CodeOutputCGST])
	suite.True(seeded[domain.CodeTDSPayable])
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *AccountServiceTestSuite) TestEnsureDefaultChart_AlreadySeeded() {
	ctx := context.Background()

	existing := map[string]string{}
	for _, code := range []string{
		domain.CodeSales, domain.CodePurchases, domain.CodeStock, domain.CodeCash,
		domain.CodeBank, domain.CodeReceivables, domain.CodePayables, domain.CodeCapital,
		domain.CodeOutputCGST, domain.CodeOutputSGST, domain.CodeOutputIGST,
		domain.CodeInputGST, domain.CodeTDSPayable,
	} {
		existing[code] = uuid.NewString()
	}

	suite.mockAuthorizer.On("AuthorizeUserAction", ctx, suite.userID, suite.workspaceID, domain.RoleMember).Return(nil).Once()
	suite.mockRepo.On("GetSystemAccountMap", ctx, suite.workspaceID).Return(existing, nil).Once()

	err := suite.service.EnsureDefaultChart(ctx, suite.workspaceID, suite.userID)

	suite.Require().NoError(err)
	suite.mockRepo.AssertNotCalled(suite.T(), "SaveAccount", mock.Anything, mock.Anything)
}

// --- GetAccountByID ---

func (suite *AccountServiceTestSuite) TestGetAccountByID_Success() {
	ctx := context.Background()
	accountID := uuid.NewString()
	expected := &domain.Account{AccountID: accountID, WorkspaceID: suite.workspaceID, Name: "Cash in Hand"}

	suite.mockAuthorizer.On("AuthorizeUserAction", ctx, suite.userID, suite.workspaceID, domain.RoleReadOnly).Return(nil).Once()
	suite.mockRepo.On("FindAccountByID", ctx, accountID).Return(expected, nil).Once()

	account, err := suite.service.GetAccountByID(ctx, suite.workspaceID, accountID, suite.userID)

	suite.Require().NoError(err)
	suite.Equal(expected, account)
}

func (suite *AccountServiceTestSuite) TestGetAccountByID_WrongWorkspaceReturnsNotFound() {
	ctx := context.Background()
	accountID := uuid.NewString()
	otherWorkspace := uuid.NewString()
	found := &domain.Account{AccountID: accountID, WorkspaceID: otherWorkspace}

	suite.mockAuthorizer.On("AuthorizeUserAction", ctx, suite.userID, suite.workspaceID, domain.RoleReadOnly).Return(nil).Once()
	suite.mockRepo.On("FindAccountByID", ctx, accountID).Return(found, nil).Once()

	account, err := suite.service.GetAccountByID(ctx, suite.workspaceID, accountID, suite.userID)

	suite.Require().Error(err)
	suite.Nil(account)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

// --- ListAccounts ---

func (suite *AccountServiceTestSuite) TestListAccounts_EmptyReturnsNonNil() {
	ctx := context.Background()

	suite.mockRepo.On("ListAccounts", ctx, suite.workspaceID, 20, 0).Return([]domain.Account(nil), nil).Once()

	accounts, err := suite.service.ListAccounts(ctx, suite.workspaceID, 20, 0)

	suite.Require().NoError(err)
	suite.NotNil(accounts)
	suite.Empty(accounts)
}

// --- UpdateAccount ---

func (suite *AccountServiceTestSuite) TestUpdateAccount_Success() {
	ctx := context.Background()
	accountID := uuid.NewString()
	existing := &domain.Account{
		AccountID:   accountID,
		WorkspaceID: suite.workspaceID,
		Name:        "Old Name",
		AccountType: domain.Expense,
		Placement:   domain.PlacementDirect,
	}
	newName := "New Name"
	newPlacement := domain.PlacementIndirect
	req := dto.UpdateAccountRequest{Name: &newName, Placement: &newPlacement}

	suite.mockAuthorizer.On("AuthorizeUserAction", ctx, suite.userID, suite.workspaceID, domain.RoleMember).Return(nil).Once()
	suite.mockAuthorizer.On("AuthorizeUserAction", ctx, suite.userID, suite.workspaceID, domain.RoleReadOnly).Return(nil).Once()
	suite.mockRepo.On("FindAccountByID", ctx, accountID).Return(existing, nil).Once()
	suite.mockRepo.On("UpdateAccount", ctx, mock.MatchedBy(func(acc domain.Account) bool {
		return acc.Name == newName && acc.Placement == domain.PlacementIndirect && acc.LastUpdatedBy == suite.userID
	})).Return(nil).Once()

	account, err := suite.service.UpdateAccount(ctx, suite.workspaceID, accountID, req, suite.userID)

	suite.Require().NoError(err)
	suite.Equal(newName, account.Name)
	suite.Equal(domain.PlacementIndirect, account.Placement)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *AccountServiceTestSuite) TestUpdateAccount_PlacementRejectedForAsset() {
	ctx := context.Background()
	accountID := uuid.NewString()
	existing := &domain.Account{
		AccountID:   accountID,
		WorkspaceID: suite.workspaceID,
		Name:        "Bank",
		AccountType: domain.Asset,
	}
	newPlacement := domain.PlacementDirect
	req := dto.UpdateAccountRequest{Placement: &newPlacement}

	suite.mockAuthorizer.On("AuthorizeUserAction", ctx, suite.userID, suite.workspaceID, domain.RoleMember).Return(nil).Once()
	suite.mockAuthorizer.On("AuthorizeUserAction", ctx, suite.userID, suite.workspaceID, domain.RoleReadOnly).Return(nil).Once()
	suite.mockRepo.On("FindAccountByID", ctx, accountID).Return(existing, nil).Once()

	account, err := suite.service.UpdateAccount(ctx, suite.workspaceID, accountID, req, suite.userID)

	suite.Require().Error(err)
	suite.Nil(account)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockRepo.AssertNotCalled(suite.T(), "UpdateAccount", mock.Anything, mock.Anything)
}

// --- DeactivateAccount ---

func (suite *AccountServiceTestSuite) TestDeactivateAccount_Success() {
	ctx := context.Background()
	accountID := uuid.NewString()
	existing := &domain.Account{AccountID: accountID, WorkspaceID: suite.workspaceID, IsActive: true}

	suite.mockAuthorizer.On("AuthorizeUserAction", ctx, suite.userID, suite.workspaceID, domain.RoleMember).Return(nil).Once()
	suite.mockAuthorizer.On("AuthorizeUserAction", ctx, suite.userID, suite.workspaceID, domain.RoleReadOnly).Return(nil).Once()
	suite.mockRepo.On("FindAccountByID", ctx, accountID).Return(existing, nil).Once()
	suite.mockRepo.On("DeactivateAccount", ctx, accountID, suite.userID, mock.AnythingOfType("time.Time")).Return(nil).Once()

	err := suite.service.DeactivateAccount(ctx, suite.workspaceID, accountID, suite.userID)

	suite.Require().NoError(err)
	suite.mockRepo.AssertExpectations(suite.T())
}

// --- CalculateAccountBalance ---

func (suite *AccountServiceTestSuite) TestCalculateAccountBalance_ReturnsStoredBalance() {
	ctx := context.Background()
	accountID := uuid.NewString()
	existing := &domain.Account{
		AccountID:   accountID,
		WorkspaceID: suite.workspaceID,
		Balance:     decimal.RequireFromString("1234.56"),
	}

	suite.mockAuthorizer.On("AuthorizeUserAction", ctx, suite.userID, suite.workspaceID, domain.RoleReadOnly).Return(nil).Once()
	suite.mockRepo.On("FindAccountByID", ctx, accountID).Return(existing, nil).Once()

	balance, err := suite.service.CalculateAccountBalance(ctx, suite.workspaceID, accountID, suite.userID)

	suite.Require().NoError(err)
	suite.True(balance.Equal(decimal.RequireFromString("1234.56")))
}

// --- Run Suite ---
func TestAccountService(t *testing.T) {
	suite.Run(t, new(AccountServiceTestSuite))
}

package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/sahajbooks/gst_books_app/internal/apperrors"
	"github.com/sahajbooks/gst_books_app/internal/core/domain"
	portssvc "github.com/sahajbooks/gst_books_app/internal/core/ports/services"
	"github.com/sahajbooks/gst_books_app/internal/dto"
	"github.com/sahajbooks/gst_books_app/internal/handlers"
	"github.com/sahajbooks/gst_books_app/internal/middleware"
)

// --- Mock AccountService ---
type MockAccountService struct {
	mock.Mock
}

func (m *MockAccountService) CreateAccount(ctx context.Context, workspaceID string, req dto.CreateAccountRequest, userID string) (*domain.Account, error) {
	args := m.Called(ctx, workspaceID, req, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}
func (m *MockAccountService) GetAccountByID(ctx context.Context, workspaceID string, accountID string, userID string) (*domain.Account, error) {
	args := m.Called(ctx, workspaceID, accountID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}
func (m *MockAccountService) GetAccountBySystemCode(ctx context.Context, workspaceID string, systemCode string, userID string) (*domain.Account, error) {
	args := m.Called(ctx, workspaceID, systemCode, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}
func (m *MockAccountService) GetAccountByIDs(ctx context.Context, workspaceID string, accountIDs []string, userID string) (map[string]domain.Account, error) {
	args := m.Called(ctx, workspaceID, accountIDs, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]domain.Account), args.Error(1)
}
func (m *MockAccountService) ListAccounts(ctx context.Context, workspaceID string, limit int, offset int) ([]domain.Account, error) {
	args := m.Called(ctx, workspaceID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Account), args.Error(1)
}
func (m *MockAccountService) UpdateAccount(ctx context.Context, workspaceID string, accountID string, req dto.UpdateAccountRequest, userID string) (*domain.Account, error) {
	args := m.Called(ctx, workspaceID, accountID, req, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}
func (m *MockAccountService) DeactivateAccount(ctx context.Context, workspaceID string, accountID string, userID string) error {
	args := m.Called(ctx, workspaceID, accountID, userID)
	return args.Error(0)
}
func (m *MockAccountService) EnsureDefaultChart(ctx context.Context, workspaceID string, userID string) error {
	args := m.Called(ctx, workspaceID, userID)
	return args.Error(0)
}
func (m *MockAccountService) CalculateAccountBalance(ctx context.Context, workspaceID string, accountID string, userID string) (decimal.Decimal, error) {
	args := m.Called(ctx, workspaceID, accountID, userID)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

var _ portssvc.AccountSvcFacade = (*MockAccountService)(nil)

// --- Mock VoucherService ---
type MockVoucherService struct {
	mock.Mock
}

func (m *MockVoucherService) CreateVoucher(ctx context.Context, workspaceID string, req dto.CreateVoucherRequest, creatorUserID string) (*domain.Voucher, error) {
	args := m.Called(ctx, workspaceID, req, creatorUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Voucher), args.Error(1)
}
func (m *MockVoucherService) GetVoucherByID(ctx context.Context, workspaceID string, voucherID string, requestingUserID string) (*domain.Voucher, error) {
	args := m.Called(ctx, workspaceID, voucherID, requestingUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Voucher), args.Error(1)
}
func (m *MockVoucherService) ListVouchers(ctx context.Context, workspaceID string, userID string, params dto.ListVouchersParams) (*dto.ListVouchersResponse, error) {
	args := m.Called(ctx, workspaceID, userID, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.ListVouchersResponse), args.Error(1)
}
func (m *MockVoucherService) UpdateVoucher(ctx context.Context, workspaceID string, voucherID string, req dto.UpdateVoucherRequest, requestingUserID string) (*domain.Voucher, error) {
	args := m.Called(ctx, workspaceID, voucherID, req, requestingUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Voucher), args.Error(1)
}
func (m *MockVoucherService) ReverseVoucher(ctx context.Context, workspaceID string, voucherID string, userID string) (*domain.Voucher, error) {
	args := m.Called(ctx, workspaceID, voucherID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Voucher), args.Error(1)
}
func (m *MockVoucherService) PostPaymentReceived(ctx context.Context, workspaceID string, req dto.PostPaymentRequest, userID string) (*dto.PostingResponse, error) {
	args := m.Called(ctx, workspaceID, req, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.PostingResponse), args.Error(1)
}
func (m *MockVoucherService) PostPaymentMade(ctx context.Context, workspaceID string, req dto.PostPaymentRequest, userID string) (*dto.PostingResponse, error) {
	args := m.Called(ctx, workspaceID, req, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.PostingResponse), args.Error(1)
}
func (m *MockVoucherService) PostCreditNote(ctx context.Context, workspaceID string, req dto.PostNoteRequest, userID string) (*dto.PostingResponse, error) {
	args := m.Called(ctx, workspaceID, req, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.PostingResponse), args.Error(1)
}
func (m *MockVoucherService) PostDebitNote(ctx context.Context, workspaceID string, req dto.PostNoteRequest, userID string) (*dto.PostingResponse, error) {
	args := m.Called(ctx, workspaceID, req, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.PostingResponse), args.Error(1)
}
func (m *MockVoucherService) ListEntriesByAccount(ctx context.Context, workspaceID string, accountID string, userID string, params dto.ListEntriesParams) (*dto.ListEntriesResponse, error) {
	args := m.Called(ctx, workspaceID, accountID, userID, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.ListEntriesResponse), args.Error(1)
}
func (m *MockVoucherService) CalculateAccountBalance(ctx context.Context, workspaceID string, accountID string) (decimal.Decimal, error) {
	args := m.Called(ctx, workspaceID, accountID)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

var _ portssvc.VoucherSvcFacade = (*MockVoucherService)(nil)

// --- Test Suite ---
type AccountHandlerTestSuite struct {
	suite.Suite
	router             *gin.Engine
	mockAccountService *MockAccountService
	mockVoucherService *MockVoucherService
	jwtSecret          string
}

// generateTestToken creates a dummy JWT for testing.
func (suite *AccountHandlerTestSuite) generateTestToken(userID string) string {
	claims := jwt.RegisteredClaims{
		Issuer:    "gba-test",
		Subject:   userID,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(1 * time.Hour)),
		IssuedAt:  jwt.NewNumericDate(time.Now()),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signedString, err := token.SignedString([]byte(suite.jwtSecret))
	if err != nil {
		suite.FailNow("Failed to sign test token", err.Error())
	}
	return signedString
}

func (suite *AccountHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	suite.router = gin.New()
	suite.jwtSecret = "test-secret-key-that-is-long-enough"

	suite.router.Use(middleware.AuthMiddleware(suite.jwtSecret))

	suite.mockAccountService = new(MockAccountService)
	suite.mockVoucherService = new(MockVoucherService)

	v1 := suite.router.Group("/api/v1/workspaces/:workspace_id")
	handlers.RegisterAccountRoutes(v1, suite.mockAccountService, suite.mockVoucherService)
}

func (suite *AccountHandlerTestSuite) doRequest(method, url, userID string, body []byte) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	} else {
		reader = bytes.NewReader(nil)
	}
	req, _ := http.NewRequest(method, url, reader)
	req.Header.Set("Authorization", "Bearer "+suite.generateTestToken(userID))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

// --- Test Cases ---

func (suite *AccountHandlerTestSuite) TestCreateAccount_Success() {
	workspaceID := uuid.NewString()
	userID := uuid.NewString()

	reqBody := dto.CreateAccountRequest{
		Name:         "Office Rent",
		AccountType:  domain.Expense,
		Placement:    domain.PlacementIndirect,
		CurrencyCode: "INR",
	}
	created := &domain.Account{
		AccountID:    uuid.NewString(),
		WorkspaceID:  workspaceID,
		Name:         reqBody.Name,
		AccountType:  domain.Expense,
		Placement:    domain.PlacementIndirect,
		CurrencyCode: "INR",
		IsActive:     true,
	}

	suite.mockAccountService.On("CreateAccount",
		mock.Anything,
		workspaceID,
		mock.MatchedBy(func(r dto.CreateAccountRequest) bool { return r.Name == "Office Rent" }),
		userID,
	).Return(created, nil).Once()

	payload, _ := json.Marshal(reqBody)
	w := suite.doRequest(http.MethodPost, fmt.Sprintf("/api/v1/workspaces/%s/accounts", workspaceID), userID, payload)

	suite.Equal(http.StatusCreated, w.Code)
	var resp dto.AccountResponse
	suite.NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal(created.AccountID, resp.AccountID)
	suite.Equal("Office Rent", resp.Name)
	suite.mockAccountService.AssertExpectations(suite.T())
}

func (suite *AccountHandlerTestSuite) TestGetAccount_NotFound() {
	workspaceID := uuid.NewString()
	accountID := uuid.NewString()
	userID := uuid.NewString()

	suite.mockAccountService.On("GetAccountByID",
		mock.Anything, workspaceID, accountID, userID,
	).Return(nil, apperrors.ErrNotFound).Once()

	w := suite.doRequest(http.MethodGet, fmt.Sprintf("/api/v1/workspaces/%s/accounts/%s", workspaceID, accountID), userID, nil)

	suite.Equal(http.StatusNotFound, w.Code)
	suite.mockAccountService.AssertExpectations(suite.T())
}

func (suite *AccountHandlerTestSuite) TestListEntriesByAccount_Success() {
	workspaceID := uuid.NewString()
	accountID := uuid.NewString()
	userID := uuid.NewString()
	limit := 10

	expected := &dto.ListEntriesResponse{
		Entries: []dto.EntryResponse{
			{
				EntryID:        uuid.NewString(),
				AccountID:      accountID,
				Amount:         decimal.NewFromInt(5000),
				Side:           string(domain.Debit),
				RunningBalance: decimal.NewFromInt(5000),
			},
			{
				EntryID:        uuid.NewString(),
				AccountID:      accountID,
				Amount:         decimal.NewFromInt(1800),
				Side:           string(domain.Credit),
				RunningBalance: decimal.NewFromInt(3200),
			},
		},
	}

	suite.mockVoucherService.On("ListEntriesByAccount",
		mock.Anything,
		workspaceID,
		accountID,
		userID,
		mock.MatchedBy(func(p dto.ListEntriesParams) bool { return p.Limit == limit }),
	).Return(expected, nil).Once()

	url := fmt.Sprintf("/api/v1/workspaces/%s/accounts/%s/entries?limit=%d", workspaceID, accountID, limit)
	w := suite.doRequest(http.MethodGet, url, userID, nil)

	suite.Equal(http.StatusOK, w.Code)
	var resp dto.ListEntriesResponse
	suite.NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Len(resp.Entries, 2)
	suite.Equal(expected.Entries[0].EntryID, resp.Entries[0].EntryID)
	suite.True(resp.Entries[1].RunningBalance.Equal(decimal.NewFromInt(3200)))

	suite.mockVoucherService.AssertExpectations(suite.T())
	suite.mockAccountService.AssertNotCalled(suite.T(), "ListAccounts")
}

func (suite *AccountHandlerTestSuite) TestGetAccountBalance_Success() {
	workspaceID := uuid.NewString()
	accountID := uuid.NewString()
	userID := uuid.NewString()

	suite.mockAccountService.On("CalculateAccountBalance",
		mock.Anything, workspaceID, accountID, userID,
	).Return(decimal.NewFromInt(12345), nil).Once()

	url := fmt.Sprintf("/api/v1/workspaces/%s/accounts/%s/balance", workspaceID, accountID)
	w := suite.doRequest(http.MethodGet, url, userID, nil)

	suite.Equal(http.StatusOK, w.Code)
	var resp dto.AccountBalanceResponse
	suite.NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal(accountID, resp.AccountID)
	suite.True(resp.Balance.Equal(decimal.NewFromInt(12345)))
	suite.mockAccountService.AssertExpectations(suite.T())
}

func (suite *AccountHandlerTestSuite) TestDeactivateAccount_AlreadyInactive() {
	workspaceID := uuid.NewString()
	accountID := uuid.NewString()
	userID := uuid.NewString()

	suite.mockAccountService.On("DeactivateAccount",
		mock.Anything, workspaceID, accountID, userID,
	).Return(apperrors.ErrValidation).Once()

	url := fmt.Sprintf("/api/v1/workspaces/%s/accounts/%s", workspaceID, accountID)
	w := suite.doRequest(http.MethodDelete, url, userID, nil)

	suite.Equal(http.StatusConflict, w.Code)
	suite.mockAccountService.AssertExpectations(suite.T())
}

func (suite *AccountHandlerTestSuite) TestRequestWithoutToken_Unauthorized() {
	req, _ := http.NewRequest(http.MethodGet, "/api/v1/workspaces/ws/accounts", nil)
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	suite.Equal(http.StatusUnauthorized, w.Code)
}

// --- Run Test Suite ---
func TestAccountHandler(t *testing.T) {
	suite.Run(t, new(AccountHandlerTestSuite))
}

package services_test

import (
	"context"
	"time"

	"github.com/sahajbooks/gst_books_app/internal/core/domain"
	"github.com/sahajbooks/gst_books_app/internal/dto"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

// Shared mocks for the document and reporting service suites. The account
// repository, currency and user mocks live next to their own suites.

// --- Mock WorkspaceService ---
type MockWorkspaceService struct {
	mock.Mock
}

func (m *MockWorkspaceService) FindWorkspaceByID(ctx context.Context, workspaceID string) (*domain.Workspace, error) {
	args := m.Called(ctx, workspaceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Workspace), args.Error(1)
}

func (m *MockWorkspaceService) ListUserWorkspaces(ctx context.Context, userID string, includeDisabled bool) ([]domain.Workspace, error) {
	args := m.Called(ctx, userID, includeDisabled)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Workspace), args.Error(1)
}

func (m *MockWorkspaceService) ListWorkspaceUsers(ctx context.Context, workspaceID string, requestingUserID string) ([]domain.UserWorkspace, error) {
	args := m.Called(ctx, workspaceID, requestingUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.UserWorkspace), args.Error(1)
}

func (m *MockWorkspaceService) CreateWorkspace(ctx context.Context, req dto.CreateWorkspaceRequest, creatorUserID string) (*domain.Workspace, error) {
	args := m.Called(ctx, req, creatorUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Workspace), args.Error(1)
}

func (m *MockWorkspaceService) DeactivateWorkspace(ctx context.Context, workspaceID string, requestingUserID string) error {
	args := m.Called(ctx, workspaceID, requestingUserID)
	return args.Error(0)
}

func (m *MockWorkspaceService) ActivateWorkspace(ctx context.Context, workspaceID string, requestingUserID string) error {
	args := m.Called(ctx, workspaceID, requestingUserID)
	return args.Error(0)
}

func (m *MockWorkspaceService) AddUserToWorkspace(ctx context.Context, addingUserID, targetUserID, workspaceID string, role domain.UserWorkspaceRole) error {
	args := m.Called(ctx, addingUserID, targetUserID, workspaceID, role)
	return args.Error(0)
}

func (m *MockWorkspaceService) RemoveUserFromWorkspace(ctx context.Context, requestingUserID, targetUserID, workspaceID string) error {
	args := m.Called(ctx, requestingUserID, targetUserID, workspaceID)
	return args.Error(0)
}

func (m *MockWorkspaceService) UpdateUserWorkspaceRole(ctx context.Context, requestingUserID, targetUserID, workspaceID string, newRole domain.UserWorkspaceRole) error {
	args := m.Called(ctx, requestingUserID, targetUserID, workspaceID, newRole)
	return args.Error(0)
}

func (m *MockWorkspaceService) AuthorizeUserAction(ctx context.Context, userID, workspaceID string, requiredRole domain.UserWorkspaceRole) error {
	args := m.Called(ctx, userID, workspaceID, requiredRole)
	return args.Error(0)
}

// --- Mock AccountService ---
type MockAccountService struct {
	mock.Mock
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

func (m *MockAccountService) CreateAccount(ctx context.Context, workspaceID string, req dto.CreateAccountRequest, userID string) (*domain.Account, error) {
	args := m.Called(ctx, workspaceID, req, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
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

// --- Mock VoucherRepository ---
type MockVoucherRepository struct {
	mock.Mock
}

func (m *MockVoucherRepository) FindVoucherByID(ctx context.Context, voucherID string) (*domain.Voucher, error) {
	args := m.Called(ctx, voucherID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Voucher), args.Error(1)
}

func (m *MockVoucherRepository) VoucherExists(ctx context.Context, voucherID string) (bool, error) {
	args := m.Called(ctx, voucherID)
	return args.Bool(0), args.Error(1)
}

func (m *MockVoucherRepository) ListVouchersByWorkspace(ctx context.Context, workspaceID string, limit int, nextToken *string, includeReversals bool) ([]domain.Voucher, *string, error) {
	args := m.Called(ctx, workspaceID, limit, nextToken, includeReversals)
	var vouchers []domain.Voucher
	if args.Get(0) != nil {
		vouchers = args.Get(0).([]domain.Voucher)
	}
	var token *string
	if args.Get(1) != nil {
		token = args.Get(1).(*string)
	}
	return vouchers, token, args.Error(2)
}

func (m *MockVoucherRepository) ListVouchersByDateRange(ctx context.Context, workspaceID string, upTo time.Time) ([]domain.Voucher, error) {
	args := m.Called(ctx, workspaceID, upTo)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Voucher), args.Error(1)
}

func (m *MockVoucherRepository) SaveVoucher(ctx context.Context, voucher domain.Voucher, entries []domain.VoucherEntry, balanceChanges map[string]decimal.Decimal) error {
	args := m.Called(ctx, voucher, entries, balanceChanges)
	return args.Error(0)
}

func (m *MockVoucherRepository) UpdateVoucherStatusAndLinks(ctx context.Context, voucherID string, status domain.VoucherStatus, reversingVoucherID *string, originalVoucherID *string, updatedByUserID string, updatedAt time.Time) error {
	args := m.Called(ctx, voucherID, status, reversingVoucherID, originalVoucherID, updatedByUserID, updatedAt)
	return args.Error(0)
}

func (m *MockVoucherRepository) UpdateVoucher(ctx context.Context, voucher domain.Voucher) error {
	args := m.Called(ctx, voucher)
	return args.Error(0)
}

func (m *MockVoucherRepository) FindEntriesByVoucherID(ctx context.Context, voucherID string) ([]domain.VoucherEntry, error) {
	args := m.Called(ctx, voucherID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.VoucherEntry), args.Error(1)
}

func (m *MockVoucherRepository) FindEntriesByVoucherIDs(ctx context.Context, voucherIDs []string) (map[string][]domain.VoucherEntry, error) {
	args := m.Called(ctx, voucherIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string][]domain.VoucherEntry), args.Error(1)
}

func (m *MockVoucherRepository) ListEntriesByAccountID(ctx context.Context, workspaceID, accountID string, limit int, nextToken *string) ([]domain.VoucherEntry, *string, error) {
	args := m.Called(ctx, workspaceID, accountID, limit, nextToken)
	var entries []domain.VoucherEntry
	if args.Get(0) != nil {
		entries = args.Get(0).([]domain.VoucherEntry)
	}
	var token *string
	if args.Get(1) != nil {
		token = args.Get(1).(*string)
	}
	return entries, token, args.Error(2)
}

func (m *MockVoucherRepository) Begin(ctx context.Context) (pgx.Tx, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(pgx.Tx), args.Error(1)
}

func (m *MockVoucherRepository) Commit(ctx context.Context, tx pgx.Tx) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

func (m *MockVoucherRepository) Rollback(ctx context.Context, tx pgx.Tx) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

// --- Mock InvoiceRepository ---
type MockInvoiceRepository struct {
	mock.Mock
}

func (m *MockInvoiceRepository) FindInvoiceByID(ctx context.Context, workspaceID string, invoiceID string) (domain.Invoice, error) {
	args := m.Called(ctx, workspaceID, invoiceID)
	if args.Get(0) == nil {
		return domain.Invoice{}, args.Error(1)
	}
	return args.Get(0).(domain.Invoice), args.Error(1)
}

func (m *MockInvoiceRepository) InvoiceNumberExists(ctx context.Context, workspaceID string, number string) (bool, error) {
	args := m.Called(ctx, workspaceID, number)
	return args.Bool(0), args.Error(1)
}

func (m *MockInvoiceRepository) ListInvoicesByWorkspace(ctx context.Context, workspaceID string, limit int, lastInvoiceID *string) ([]domain.Invoice, error) {
	args := m.Called(ctx, workspaceID, limit, lastInvoiceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Invoice), args.Error(1)
}

func (m *MockInvoiceRepository) ListInvoicesByDateRange(ctx context.Context, workspaceID string, from time.Time, to time.Time) ([]domain.Invoice, error) {
	args := m.Called(ctx, workspaceID, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Invoice), args.Error(1)
}

// SaveInvoice echoes the document back when the expectation returns nil, so
// tests keep asserting on the derived fields without restating them.
func (m *MockInvoiceRepository) SaveInvoice(ctx context.Context, invoice domain.Invoice) (domain.Invoice, error) {
	args := m.Called(ctx, invoice)
	if args.Get(0) == nil {
		return invoice, args.Error(1)
	}
	return args.Get(0).(domain.Invoice), args.Error(1)
}

func (m *MockInvoiceRepository) UpdateInvoiceStatus(ctx context.Context, workspaceID string, invoiceID string, status domain.DocumentStatus, userID string) error {
	args := m.Called(ctx, workspaceID, invoiceID, status, userID)
	return args.Error(0)
}

// --- Mock PurchaseRepository ---
type MockPurchaseRepository struct {
	mock.Mock
}

func (m *MockPurchaseRepository) FindPurchaseBillByID(ctx context.Context, workspaceID string, billID string) (domain.PurchaseBill, error) {
	args := m.Called(ctx, workspaceID, billID)
	if args.Get(0) == nil {
		return domain.PurchaseBill{}, args.Error(1)
	}
	return args.Get(0).(domain.PurchaseBill), args.Error(1)
}

func (m *MockPurchaseRepository) ListPurchaseBillsByWorkspace(ctx context.Context, workspaceID string, limit int, lastBillID *string) ([]domain.PurchaseBill, error) {
	args := m.Called(ctx, workspaceID, limit, lastBillID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.PurchaseBill), args.Error(1)
}

func (m *MockPurchaseRepository) ListPurchaseBillsByDateRange(ctx context.Context, workspaceID string, from time.Time, to time.Time) ([]domain.PurchaseBill, error) {
	args := m.Called(ctx, workspaceID, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.PurchaseBill), args.Error(1)
}

func (m *MockPurchaseRepository) BillNumberExists(ctx context.Context, workspaceID string, vendorName string, billNumber string) (bool, error) {
	args := m.Called(ctx, workspaceID, vendorName, billNumber)
	return args.Bool(0), args.Error(1)
}

func (m *MockPurchaseRepository) SavePurchaseBill(ctx context.Context, bill domain.PurchaseBill) (domain.PurchaseBill, error) {
	args := m.Called(ctx, bill)
	if args.Get(0) == nil {
		return bill, args.Error(1)
	}
	return args.Get(0).(domain.PurchaseBill), args.Error(1)
}

func (m *MockPurchaseRepository) UpdatePurchaseBillStatus(ctx context.Context, workspaceID string, billID string, status domain.DocumentStatus, userID string) error {
	args := m.Called(ctx, workspaceID, billID, status, userID)
	return args.Error(0)
}

// --- Mock WorkspaceRepository ---
type MockWorkspaceRepository struct {
	mock.Mock
}

func (m *MockWorkspaceRepository) FindWorkspaceByID(ctx context.Context, workspaceID string) (*domain.Workspace, error) {
	args := m.Called(ctx, workspaceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Workspace), args.Error(1)
}

func (m *MockWorkspaceRepository) ListWorkspacesByUserID(ctx context.Context, userID string, includeDisabled bool, role *domain.UserWorkspaceRole) ([]domain.Workspace, error) {
	args := m.Called(ctx, userID, includeDisabled, role)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Workspace), args.Error(1)
}

func (m *MockWorkspaceRepository) SaveWorkspace(ctx context.Context, workspace domain.Workspace) error {
	args := m.Called(ctx, workspace)
	return args.Error(0)
}

func (m *MockWorkspaceRepository) UpdateWorkspaceStatus(ctx context.Context, workspace *domain.Workspace, isActive bool, updatedByUserID string) error {
	args := m.Called(ctx, workspace, isActive, updatedByUserID)
	return args.Error(0)
}

func (m *MockWorkspaceRepository) AddUserToWorkspace(ctx context.Context, membership domain.UserWorkspace) error {
	args := m.Called(ctx, membership)
	return args.Error(0)
}

func (m *MockWorkspaceRepository) FindUserWorkspaceRole(ctx context.Context, userID, workspaceID string) (*domain.UserWorkspace, error) {
	args := m.Called(ctx, userID, workspaceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.UserWorkspace), args.Error(1)
}

func (m *MockWorkspaceRepository) ListUsersByWorkspaceID(ctx context.Context, workspaceID string, includeRemoved ...bool) ([]domain.UserWorkspace, error) {
	callArgs := []interface{}{ctx, workspaceID}
	for _, v := range includeRemoved {
		callArgs = append(callArgs, v)
	}
	args := m.Called(callArgs...)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.UserWorkspace), args.Error(1)
}

func (m *MockWorkspaceRepository) RemoveUserFromWorkspace(ctx context.Context, userID, workspaceID string) error {
	args := m.Called(ctx, userID, workspaceID)
	return args.Error(0)
}

func (m *MockWorkspaceRepository) UpdateUserWorkspaceRole(ctx context.Context, userID, workspaceID string, newRole domain.UserWorkspaceRole) error {
	args := m.Called(ctx, userID, workspaceID, newRole)
	return args.Error(0)
}

// --- Mock ReportingRepository ---
type MockReportingRepository struct {
	mock.Mock
}

func (m *MockReportingRepository) FetchPostedVouchers(ctx context.Context, workspaceID string, upTo time.Time) ([]domain.Voucher, error) {
	args := m.Called(ctx, workspaceID, upTo)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Voucher), args.Error(1)
}

func (m *MockReportingRepository) FetchAccounts(ctx context.Context, workspaceID string) ([]domain.Account, error) {
	args := m.Called(ctx, workspaceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Account), args.Error(1)
}

// --- Mock TrialBalanceUploadRepository ---
type MockTrialBalanceUploadRepository struct {
	mock.Mock
}

func (m *MockTrialBalanceUploadRepository) SaveUpload(ctx context.Context, workspaceID string, asOf time.Time, rows []domain.TrialBalanceRow, userID string) error {
	args := m.Called(ctx, workspaceID, asOf, rows, userID)
	return args.Error(0)
}

func (m *MockTrialBalanceUploadRepository) FindUpload(ctx context.Context, workspaceID string, asOf time.Time) ([]domain.TrialBalanceRow, error) {
	args := m.Called(ctx, workspaceID, asOf)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.TrialBalanceRow), args.Error(1)
}

package services

import (
	"context"

	"github.com/sahajbooks/gst_books_app/internal/core/domain"
	"github.com/sahajbooks/gst_books_app/internal/dto"
	"github.com/shopspring/decimal"
)

// AccountReaderSvc defines read operations for account data
type AccountReaderSvc interface {
	// GetAccountByID retrieves a specific account by its unique identifier.
	GetAccountByID(ctx context.Context, workspaceID string, accountID string, userID string) (*domain.Account, error)

	// GetAccountBySystemCode retrieves the account bound to a well known role
	// such as sales or output-cgst.
	GetAccountBySystemCode(ctx context.Context, workspaceID string, systemCode string, userID string) (*domain.Account, error)

	// GetAccountByIDs retrieves multiple accounts by their IDs.
	GetAccountByIDs(ctx context.Context, workspaceID string, accountIDs []string, userID string) (map[string]domain.Account, error)

	// ListAccounts retrieves a paginated list of accounts for a given workspace.
	ListAccounts(ctx context.Context, workspaceID string, limit int, offset int) ([]domain.Account, error)
}

// AccountWriterSvc defines write operations for account data
type AccountWriterSvc interface {
	// CreateAccount persists a new account.
	CreateAccount(ctx context.Context, workspaceID string, req dto.CreateAccountRequest, userID string) (*domain.Account, error)

	// UpdateAccount updates an existing account's details.
	UpdateAccount(ctx context.Context, workspaceID string, accountID string, req dto.UpdateAccountRequest, userID string) (*domain.Account, error)

	// DeactivateAccount marks an account as inactive.
	DeactivateAccount(ctx context.Context, workspaceID string, accountID string, userID string) error

	// EnsureDefaultChart seeds the standard chart of accounts for a new
	// workspace. Accounts that already exist are left untouched.
	EnsureDefaultChart(ctx context.Context, workspaceID string, userID string) error
}

// AccountCalculatorSvc defines calculation operations for account data
type AccountCalculatorSvc interface {
	// CalculateAccountBalance calculates the current balance of an account.
	CalculateAccountBalance(ctx context.Context, workspaceID string, accountID string, userID string) (decimal.Decimal, error)
}

// AccountSvcFacade combines all account-related service interfaces
// This is a facade for clients that need access to all operations
type AccountSvcFacade interface {
	AccountReaderSvc
	AccountWriterSvc
	AccountCalculatorSvc
}

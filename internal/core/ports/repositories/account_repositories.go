package repositories

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/sahajbooks/gst_books_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// AccountReader reads ledger accounts.
type AccountReader interface {
	FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error)

	// FindAccountBySystemCode retrieves the workspace account carrying a
	// well-known system code (sales, output-cgst, receivables, ...).
	FindAccountBySystemCode(ctx context.Context, workspaceID string, systemCode string) (*domain.Account, error)

	// GetSystemAccountMap returns the workspace's system account IDs keyed
	// by system code.
	GetSystemAccountMap(ctx context.Context, workspaceID string) (map[string]string, error)

	// FindAccountsByIDs retrieves multiple accounts keyed by ID.
	FindAccountsByIDs(ctx context.Context, accountIDs []string) (map[string]domain.Account, error)

	// ListAccounts returns a page of a workspace's accounts.
	ListAccounts(ctx context.Context, workspaceID string, limit int, offset int) ([]domain.Account, error)
}

// AccountWriter persists ledger accounts.
type AccountWriter interface {
	SaveAccount(ctx context.Context, account domain.Account) error
	UpdateAccount(ctx context.Context, account domain.Account) error

	// DeactivateAccount marks an account inactive without deleting its
	// posting history.
	DeactivateAccount(ctx context.Context, accountID string, userID string, now time.Time) error
}

// AccountTransactionSupport covers the balance updates that must run inside
// a voucher posting transaction.
type AccountTransactionSupport interface {
	// FindAccountsByIDsForUpdate selects accounts with row locks held for
	// the duration of the transaction.
	FindAccountsByIDsForUpdate(ctx context.Context, tx pgx.Tx, accountIDs []string) (map[string]domain.Account, error)

	// UpdateAccountBalancesInTx applies signed balance deltas to multiple
	// accounts within the transaction.
	UpdateAccountBalancesInTx(ctx context.Context, tx pgx.Tx, balanceChanges map[string]decimal.Decimal, userID string, now time.Time) error
}

// AccountRepositoryFacade bundles the full account repository surface.
type AccountRepositoryFacade interface {
	AccountReader
	AccountWriter
	AccountTransactionSupport
}

// AccountRepositoryWithTx adds transaction control to the facade.
type AccountRepositoryWithTx interface {
	AccountRepositoryFacade
	TransactionManager
}

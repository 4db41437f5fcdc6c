package repositories

import (
	"context"
	"time"

	"github.com/sahajbooks/gst_books_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// VoucherReader defines read operations for voucher data
type VoucherReader interface {
	// FindVoucherByID retrieves a specific voucher by its unique identifier.
	FindVoucherByID(ctx context.Context, voucherID string) (*domain.Voucher, error)

	// VoucherExists reports whether a voucher with the given ID has been persisted.
	// Document posting uses this to make replays of the same source a no-op.
	VoucherExists(ctx context.Context, voucherID string) (bool, error)

	// ListVouchersByWorkspace retrieves a paginated list of vouchers for a given workspace using token-based pagination.
	// It returns the vouchers, a token for the next page, and an error.
	ListVouchersByWorkspace(ctx context.Context, workspaceID string, limit int, nextToken *string, includeReversals bool) ([]domain.Voucher, *string, error)

	// ListVouchersByDateRange retrieves every posted voucher dated on or before the cutoff.
	// Report derivation reduces these in memory.
	ListVouchersByDateRange(ctx context.Context, workspaceID string, upTo time.Time) ([]domain.Voucher, error)
}

// VoucherWriter defines write operations for voucher data
type VoucherWriter interface {
	// SaveVoucher persists a voucher and its entries, updating account balances within a transaction.
	SaveVoucher(ctx context.Context, voucher domain.Voucher, entries []domain.VoucherEntry, balanceChanges map[string]decimal.Decimal) error

	// UpdateVoucherStatusAndLinks updates the status and reversal linkage (original/reversing IDs) of a voucher.
	UpdateVoucherStatusAndLinks(ctx context.Context, voucherID string, status domain.VoucherStatus, reversingVoucherID *string, originalVoucherID *string, updatedByUserID string, updatedAt time.Time) error

	// UpdateVoucher updates non-status fields of a voucher (like narration, date).
	UpdateVoucher(ctx context.Context, voucher domain.Voucher) error
}

// EntryReader defines read operations for voucher entry data
type EntryReader interface {
	// FindEntriesByVoucherID retrieves all entries associated with a single voucher ID.
	FindEntriesByVoucherID(ctx context.Context, voucherID string) ([]domain.VoucherEntry, error)

	// FindEntriesByVoucherIDs retrieves entries for multiple voucher IDs, grouped by voucher ID.
	FindEntriesByVoucherIDs(ctx context.Context, voucherIDs []string) (map[string][]domain.VoucherEntry, error)

	// ListEntriesByAccountID retrieves a paginated list of entries for a specific account using token-based pagination.
	// It returns the entries, a token for the next page, and an error.
	ListEntriesByAccountID(ctx context.Context, workspaceID, accountID string, limit int, nextToken *string) ([]domain.VoucherEntry, *string, error)
}

// VoucherRepositoryFacade combines all voucher-related repository interfaces
// This is a facade for clients that need access to all operations
type VoucherRepositoryFacade interface {
	VoucherReader
	VoucherWriter
	EntryReader
}

// VoucherRepositoryWithTx extends VoucherRepositoryFacade with transaction capabilities
type VoucherRepositoryWithTx interface {
	VoucherRepositoryFacade
	TransactionManager
}

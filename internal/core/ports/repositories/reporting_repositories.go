package repositories

import (
	"context"
	"time"

	"github.com/sahajbooks/gst_books_app/internal/core/domain"
)

// ReportingRepository defines the data access reports derive from. The
// reduction itself happens in memory so every report shares one pipeline;
// the repository only fetches raw vouchers, entries and account metadata.
type ReportingRepository interface {
	// FetchPostedVouchers retrieves posted vouchers with their entries,
	// dated on or before the cutoff.
	FetchPostedVouchers(ctx context.Context, workspaceID string, upTo time.Time) ([]domain.Voucher, error)

	// FetchAccounts retrieves every account of the workspace for
	// classification during reduction.
	FetchAccounts(ctx context.Context, workspaceID string) ([]domain.Account, error)
}

// TrialBalanceUploadRepository stores externally prepared trial balance
// snapshots. An upload for a date shadows the derived trial balance.
type TrialBalanceUploadRepository interface {
	// SaveUpload replaces the uploaded rows for a workspace and date.
	SaveUpload(ctx context.Context, workspaceID string, asOf time.Time, rows []domain.TrialBalanceRow, userID string) error

	// FindUpload retrieves the uploaded rows for a workspace and date, or
	// nil when no upload exists.
	FindUpload(ctx context.Context, workspaceID string, asOf time.Time) ([]domain.TrialBalanceRow, error)
}

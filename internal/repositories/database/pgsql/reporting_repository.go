package pgsql

import (
	"context"
	"fmt"
	"time"

	"github.com/sahajbooks/gst_books_app/internal/core/domain"
	portsrepo "github.com/sahajbooks/gst_books_app/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

// reportingRepository fetches the raw material for report derivation. The
// reduction to trial balance rows happens in memory so every statement shares
// one pipeline.
type reportingRepository struct {
	BaseRepository
	voucherRepo portsrepo.VoucherRepositoryFacade
	accountRepo portsrepo.AccountRepositoryFacade
}

// newReportingRepository creates a new reporting repository
func newReportingRepository(db *pgxpool.Pool, voucherRepo portsrepo.VoucherRepositoryFacade, accountRepo portsrepo.AccountRepositoryFacade) portsrepo.ReportingRepository {
	return &reportingRepository{
		BaseRepository: BaseRepository{Pool: db},
		voucherRepo:    voucherRepo,
		accountRepo:    accountRepo,
	}
}

// FetchPostedVouchers retrieves posted vouchers with their entries, dated on or before the cutoff.
func (r *reportingRepository) FetchPostedVouchers(ctx context.Context, workspaceID string, upTo time.Time) ([]domain.Voucher, error) {
	vouchers, err := r.voucherRepo.ListVouchersByDateRange(ctx, workspaceID, upTo)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch posted vouchers for workspace %s: %w", workspaceID, err)
	}
	return vouchers, nil
}

// FetchAccounts retrieves every account of the workspace for classification during reduction.
func (r *reportingRepository) FetchAccounts(ctx context.Context, workspaceID string) ([]domain.Account, error) {
	// Inactive accounts are included: their posted history still belongs in
	// the reports.
	query := `SELECT account_id FROM accounts WHERE workspace_id = $1;`
	rows, err := r.Pool.Query(ctx, query, workspaceID)
	if err != nil {
		return nil, fmt.Errorf("error querying account IDs for workspace %s: %w", workspaceID, err)
	}
	defer rows.Close()

	ids := []string{}
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("error scanning account ID row: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating account ID rows: %w", err)
	}

	accountsMap, err := r.accountRepo.FindAccountsByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("error fetching accounts for workspace %s: %w", workspaceID, err)
	}

	accounts := make([]domain.Account, 0, len(accountsMap))
	for _, id := range ids {
		if acc, ok := accountsMap[id]; ok {
			accounts = append(accounts, acc)
		}
	}
	return accounts, nil
}

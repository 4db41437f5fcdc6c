package pgsql

import (
	"context"
	"database/sql"
	"errors"
	"sort"
	"strconv"
	"time"

	"github.com/sahajbooks/gst_books_app/internal/apperrors"
	"github.com/sahajbooks/gst_books_app/internal/core/domain"
	portsrepo "github.com/sahajbooks/gst_books_app/internal/core/ports/repositories"
	"github.com/sahajbooks/gst_books_app/internal/models"
	"github.com/sahajbooks/gst_books_app/internal/utils/accounting"
	"github.com/sahajbooks/gst_books_app/internal/utils/mapping"
	"github.com/sahajbooks/gst_books_app/internal/utils/pagination"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

type PgxVoucherRepository struct {
	BaseRepository
	accountRepo portsrepo.AccountRepositoryFacade
}

// newPgxVoucherRepository creates a new repository for voucher and entry data.
func newPgxVoucherRepository(pool *pgxpool.Pool, accountRepo portsrepo.AccountRepositoryFacade) portsrepo.VoucherRepositoryWithTx {
	return &PgxVoucherRepository{
		BaseRepository: BaseRepository{Pool: pool},
		accountRepo:    accountRepo,
	}
}

// Ensure PgxVoucherRepository implements portsrepo.VoucherRepositoryWithTx
var _ portsrepo.VoucherRepositoryWithTx = (*PgxVoucherRepository)(nil)

// SaveVoucher saves a voucher, updates account balances, and saves the associated entries within a DB transaction.
func (r *PgxVoucherRepository) SaveVoucher(ctx context.Context, voucher domain.Voucher, entries []domain.VoucherEntry, balanceChanges map[string]decimal.Decimal) error {
	accountRepo := r.accountRepo

	tx, err := r.Begin(ctx)
	if err != nil {
		return apperrors.NewAppError(500, "failed to begin transaction", err)
	}
	// Ignored if the transaction commits successfully
	defer r.Rollback(ctx, tx)

	now := voucher.CreatedAt
	userID := voucher.CreatedBy

	// 1. Insert the voucher header
	modelVoucher := mapping.ToModelVoucher(voucher)
	voucherQuery := `
		INSERT INTO vouchers (
			voucher_id, workspace_id, voucher_date, narration, currency_code, status,
			source, source_id, original_voucher_id, reversing_voucher_id, amount,
			created_at, created_by, last_updated_at, last_updated_by
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15);
	`
	_, err = tx.Exec(ctx, voucherQuery,
		modelVoucher.VoucherID,
		modelVoucher.WorkspaceID,
		modelVoucher.VoucherDate,
		modelVoucher.Narration,
		modelVoucher.CurrencyCode,
		modelVoucher.Status,
		modelVoucher.Source,
		modelVoucher.SourceID,
		modelVoucher.OriginalVoucherID,
		modelVoucher.ReversingVoucherID,
		modelVoucher.Amount,
		modelVoucher.CreatedAt,
		modelVoucher.CreatedBy,
		modelVoucher.LastUpdatedAt,
		modelVoucher.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to insert voucher "+modelVoucher.VoucherID, err)
	}

	// 2. Lock accounts and get current balances
	accountIDs := make([]string, 0, len(balanceChanges))
	for accID := range balanceChanges {
		accountIDs = append(accountIDs, accID)
	}

	lockedAccounts, err := accountRepo.FindAccountsByIDsForUpdate(ctx, tx, accountIDs)
	if err != nil {
		// Error includes ErrNotFound if any account is missing
		return apperrors.NewAppError(500, "failed to lock accounts for update", err)
	}

	// 3. Update account balances using the transaction tx
	if err := accountRepo.UpdateAccountBalancesInTx(ctx, tx, balanceChanges, userID, now); err != nil {
		return apperrors.NewAppError(500, "failed to update account balances", err)
	}

	// 4. Prepare and insert entries with calculated running balances
	batch := &pgx.Batch{}
	entryQuery := `
		INSERT INTO voucher_entries (entry_id, voucher_id, account_id, amount, side, currency_code, notes, created_at, created_by, last_updated_at, last_updated_by, running_balance)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12);
	`
	// Running balance calculation per account within this voucher
	currentRunningBalances := make(map[string]decimal.Decimal)
	for accID, lockedAcc := range lockedAccounts {
		// Start with the balance before this voucher's changes
		currentRunningBalances[accID] = lockedAcc.Balance
	}

	// Sort by EntryID for deterministic order
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].EntryID < entries[j].EntryID
	})

	for _, entry := range entries {
		modelEntry := mapping.ToModelVoucherEntry(entry)
		modelEntry.CreatedAt = now
		modelEntry.LastUpdatedAt = now
		modelEntry.CreatedBy = userID
		modelEntry.LastUpdatedBy = userID

		accountID := entry.AccountID
		lockedAccount, ok := lockedAccounts[accountID]
		if !ok {
			// Should not happen, the locking step finds all accounts
			return apperrors.NewAppError(500, "internal error: locked account "+accountID+" not found during entry processing", nil)
		}

		signedAmount, err := accounting.CalculateSignedAmount(entry, lockedAccount.AccountType)
		if err != nil {
			return apperrors.NewAppError(500, "failed to calculate signed amount for entry "+entry.EntryID, err)
		}

		// Balance fetched before the bulk update, plus the effect of this single leg
		newRunningBalance := currentRunningBalances[accountID].Add(signedAmount)
		modelEntry.RunningBalance = newRunningBalance
		currentRunningBalances[accountID] = newRunningBalance

		batch.Queue(entryQuery,
			modelEntry.EntryID,
			modelEntry.VoucherID,
			modelEntry.AccountID,
			modelEntry.Amount,
			modelEntry.Side,
			modelEntry.CurrencyCode,
			modelEntry.Notes,
			modelEntry.CreatedAt,
			modelEntry.CreatedBy,
			modelEntry.LastUpdatedAt,
			modelEntry.LastUpdatedBy,
			modelEntry.RunningBalance,
		)
	}

	// 5. Send the batch of entry inserts
	br := tx.SendBatch(ctx, batch)
	err = br.Close()
	if err != nil {
		return apperrors.NewAppError(500, "failed to execute entry batch for voucher "+modelVoucher.VoucherID, err)
	}

	if err := r.Commit(ctx, tx); err != nil {
		return apperrors.NewAppError(500, "failed to commit transaction for voucher "+modelVoucher.VoucherID, err)
	}

	return nil
}

// FindVoucherByID retrieves a voucher by its ID.
func (r *PgxVoucherRepository) FindVoucherByID(ctx context.Context, voucherID string) (*domain.Voucher, error) {
	query := `
		SELECT voucher_id, workspace_id, voucher_date, narration, currency_code, status,
		       source, source_id, original_voucher_id, reversing_voucher_id, amount,
		       created_at, created_by, last_updated_at, last_updated_by
		FROM vouchers
		WHERE voucher_id = $1;
	`
	var modelVoucher models.Voucher
	var originalID sql.NullString
	var reversingID sql.NullString

	err := r.Pool.QueryRow(ctx, query, voucherID).Scan(
		&modelVoucher.VoucherID,
		&modelVoucher.WorkspaceID,
		&modelVoucher.VoucherDate,
		&modelVoucher.Narration,
		&modelVoucher.CurrencyCode,
		&modelVoucher.Status,
		&modelVoucher.Source,
		&modelVoucher.SourceID,
		&originalID,
		&reversingID,
		&modelVoucher.Amount,
		&modelVoucher.CreatedAt,
		&modelVoucher.CreatedBy,
		&modelVoucher.LastUpdatedAt,
		&modelVoucher.LastUpdatedBy,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find voucher by ID "+voucherID, err)
	}

	if originalID.Valid {
		modelVoucher.OriginalVoucherID = &originalID.String
	}
	if reversingID.Valid {
		modelVoucher.ReversingVoucherID = &reversingID.String
	}

	domainVoucher := mapping.ToDomainVoucher(modelVoucher)
	return &domainVoucher, nil
}

// VoucherExists reports whether a voucher with the given ID has been persisted.
func (r *PgxVoucherRepository) VoucherExists(ctx context.Context, voucherID string) (bool, error) {
	var exists bool
	err := r.Pool.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM vouchers WHERE voucher_id = $1);`, voucherID).Scan(&exists)
	if err != nil {
		return false, apperrors.NewAppError(500, "failed to check existence of voucher "+voucherID, err)
	}
	return exists, nil
}

// FindEntriesByVoucherID retrieves all entries associated with a specific voucher.
func (r *PgxVoucherRepository) FindEntriesByVoucherID(ctx context.Context, voucherID string) ([]domain.VoucherEntry, error) {
	query := `
		SELECT entry_id, voucher_id, account_id, amount, side, currency_code, notes, created_at, created_by, last_updated_at, last_updated_by, running_balance
		FROM voucher_entries
		WHERE voucher_id = $1
		ORDER BY created_at, entry_id;
	`
	rows, err := r.Pool.Query(ctx, query, voucherID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query entries for voucher "+voucherID, err)
	}
	defer rows.Close()

	entries := []models.VoucherEntry{}
	for rows.Next() {
		var e models.VoucherEntry
		err := rows.Scan(
			&e.EntryID,
			&e.VoucherID,
			&e.AccountID,
			&e.Amount,
			&e.Side,
			&e.CurrencyCode,
			&e.Notes,
			&e.CreatedAt,
			&e.CreatedBy,
			&e.LastUpdatedAt,
			&e.LastUpdatedBy,
			&e.RunningBalance,
		)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan entry row for voucher "+voucherID, err)
		}
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating entry rows for voucher "+voucherID, err)
	}

	return mapping.ToDomainVoucherEntrySlice(entries), nil
}

// ListEntriesByAccountID retrieves a paginated list of entries for a specific account using token-based pagination.
// It returns the entries, a token for the next page, and an error.
func (r *PgxVoucherRepository) ListEntriesByAccountID(ctx context.Context, workspaceID, accountID string, limit int, nextToken *string) ([]domain.VoucherEntry, *string, error) {
	if limit <= 0 {
		limit = 20
	}
	// Fetch one extra item to determine if there's a next page.
	fetchLimit := limit + 1

	baseQuery := `
		SELECT e.entry_id, e.voucher_id, e.account_id, e.amount, e.side, e.currency_code, e.notes,
		       e.created_at, e.created_by, e.last_updated_at, e.last_updated_by, e.running_balance, v.voucher_date, v.narration
		FROM voucher_entries e
		JOIN vouchers v ON e.voucher_id = v.voucher_id
		WHERE e.account_id = $1 AND v.workspace_id = $2 AND v.status = 'POSTED' AND v.original_voucher_id IS NULL
	`
	// Ordering must be stable; voucher_date DESC with created_at DESC as tie-breaker.
	orderByClause := `ORDER BY v.voucher_date DESC, e.created_at DESC`

	var rows pgx.Rows
	var err error
	args := []interface{}{accountID, workspaceID}

	if nextToken != nil && *nextToken != "" {
		lastVoucherDate, lastCreatedAt, decodeErr := pagination.DecodeToken(*nextToken)
		if decodeErr != nil {
			return nil, nil, apperrors.NewAppError(400, "invalid nextToken", decodeErr)
		}

		// Tuple comparison is concise and efficient in Postgres
		cursorClause := `AND (v.voucher_date, e.created_at) < ($3, $4)`
		args = append(args, lastVoucherDate, lastCreatedAt)

		query := baseQuery + " " + cursorClause + " " + orderByClause + " LIMIT $" + strconv.Itoa(len(args)+1) + ";"
		args = append(args, fetchLimit)

		rows, err = r.Pool.Query(ctx, query, args...)
	} else {
		query := baseQuery + " " + orderByClause + " LIMIT $" + strconv.Itoa(len(args)+1) + ";"
		args = append(args, fetchLimit)
		rows, err = r.Pool.Query(ctx, query, args...)
	}

	if err != nil {
		return nil, nil, apperrors.NewAppError(500, "failed to query entries for account "+accountID+" in workspace "+workspaceID, err)
	}
	defer rows.Close()

	modelEntries := make([]models.VoucherEntry, 0, fetchLimit)
	for rows.Next() {
		var e models.VoucherEntry
		err := rows.Scan(
			&e.EntryID,
			&e.VoucherID,
			&e.AccountID,
			&e.Amount,
			&e.Side,
			&e.CurrencyCode,
			&e.Notes,
			&e.CreatedAt,
			&e.CreatedBy,
			&e.LastUpdatedAt,
			&e.LastUpdatedBy,
			&e.RunningBalance,
			&e.VoucherDate,
			&e.VoucherNarration,
		)
		if err != nil {
			return nil, nil, apperrors.NewAppError(500, "failed to scan entry row for account "+accountID, err)
		}
		modelEntries = append(modelEntries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, nil, apperrors.NewAppError(500, "error iterating entry rows for account "+accountID, err)
	}

	var nextTokenVal *string
	results := modelEntries
	if len(modelEntries) > limit {
		// The token points at the last item included in this page; the next
		// query starts after it.
		lastEntry := modelEntries[limit-1]
		token := pagination.EncodeToken(lastEntry.VoucherDate, lastEntry.CreatedAt)
		nextTokenVal = &token
		results = modelEntries[:limit]
	}

	return mapping.ToDomainVoucherEntrySlice(results), nextTokenVal, nil
}

// ListVouchersByWorkspace retrieves a paginated list of vouchers for a specific workspace using token-based pagination.
// It returns the list of vouchers, a token for the next page (if any), and an error.
func (r *PgxVoucherRepository) ListVouchersByWorkspace(ctx context.Context, workspaceID string, limit int, nextToken *string, includeReversals bool) ([]domain.Voucher, *string, error) {
	if limit <= 0 {
		limit = 20
	}
	// Fetch one extra item to determine if there's a next page.
	fetchLimit := limit + 1

	baseQuery := `
		SELECT voucher_id, workspace_id, voucher_date, narration, currency_code, status,
		       source, source_id, original_voucher_id, reversing_voucher_id, amount,
		       created_at, created_by, last_updated_at, last_updated_by
		FROM vouchers
	`
	filterClause := `WHERE workspace_id = $1`
	if !includeReversals {
		filterClause += ` AND status != 'REVERSED' AND reversing_voucher_id IS NULL AND original_voucher_id IS NULL`
	}

	// Ordering must be stable; voucher_date DESC with created_at DESC as tie-breaker.
	orderByClause := `ORDER BY voucher_date DESC, created_at DESC`

	var rows pgx.Rows
	var err error
	args := []interface{}{workspaceID}

	if nextToken != nil && *nextToken != "" {
		lastDate, lastCreatedAt, decodeErr := pagination.DecodeToken(*nextToken)
		if decodeErr != nil {
			return nil, nil, apperrors.NewAppError(400, "invalid nextToken", decodeErr)
		}

		// Tuple comparison is concise and efficient in Postgres
		cursorClause := `AND (voucher_date, created_at) < ($2, $3)`
		args = append(args, lastDate, lastCreatedAt)

		query := baseQuery + " " + filterClause + " " + cursorClause + " " + orderByClause + " LIMIT $" + strconv.Itoa(len(args)+1) + ";"
		args = append(args, fetchLimit)

		rows, err = r.Pool.Query(ctx, query, args...)
	} else {
		query := baseQuery + " " + filterClause + " " + orderByClause + " LIMIT $" + strconv.Itoa(len(args)+1) + ";"
		args = append(args, fetchLimit)
		rows, err = r.Pool.Query(ctx, query, args...)
	}

	if err != nil {
		return nil, nil, apperrors.NewAppError(500, "failed to query vouchers for workspace "+workspaceID, err)
	}
	defer rows.Close()

	modelVouchers := make([]models.Voucher, 0, fetchLimit)
	for rows.Next() {
		m, scanErr := scanVoucherRow(rows)
		if scanErr != nil {
			return nil, nil, apperrors.NewAppError(500, "failed to scan voucher row for workspace "+workspaceID, scanErr)
		}
		modelVouchers = append(modelVouchers, m)
	}

	if err := rows.Err(); err != nil {
		return nil, nil, apperrors.NewAppError(500, "error iterating voucher rows for workspace "+workspaceID, err)
	}

	var nextTokenVal *string
	results := modelVouchers
	if len(modelVouchers) > limit {
		// The token points at the last item included in this page; the next
		// query starts after it.
		lastVoucher := modelVouchers[limit-1]
		newToken := pagination.EncodeToken(lastVoucher.VoucherDate, lastVoucher.CreatedAt)
		nextTokenVal = &newToken
		results = modelVouchers[:limit]
	}

	domainVouchers := make([]domain.Voucher, len(results))
	for i, m := range results {
		domainVouchers[i] = mapping.ToDomainVoucher(m)
	}

	return domainVouchers, nextTokenVal, nil
}

// ListVouchersByDateRange retrieves every posted voucher dated on or before the cutoff,
// entries included. Report derivation reduces these in memory.
func (r *PgxVoucherRepository) ListVouchersByDateRange(ctx context.Context, workspaceID string, upTo time.Time) ([]domain.Voucher, error) {
	query := `
		SELECT voucher_id, workspace_id, voucher_date, narration, currency_code, status,
		       source, source_id, original_voucher_id, reversing_voucher_id, amount,
		       created_at, created_by, last_updated_at, last_updated_by
		FROM vouchers
		WHERE workspace_id = $1 AND status = 'POSTED' AND voucher_date <= $2
		ORDER BY voucher_date, created_at;
	`
	rows, err := r.Pool.Query(ctx, query, workspaceID, upTo)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query vouchers up to cutoff for workspace "+workspaceID, err)
	}
	defer rows.Close()

	modelVouchers := []models.Voucher{}
	for rows.Next() {
		m, scanErr := scanVoucherRow(rows)
		if scanErr != nil {
			return nil, apperrors.NewAppError(500, "failed to scan voucher row for workspace "+workspaceID, scanErr)
		}
		modelVouchers = append(modelVouchers, m)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating voucher rows for workspace "+workspaceID, err)
	}

	voucherIDs := make([]string, len(modelVouchers))
	for i, m := range modelVouchers {
		voucherIDs[i] = m.VoucherID
	}
	entriesMap, err := r.FindEntriesByVoucherIDs(ctx, voucherIDs)
	if err != nil {
		return nil, err
	}

	vouchers := make([]domain.Voucher, len(modelVouchers))
	for i, m := range modelVouchers {
		v := mapping.ToDomainVoucher(m)
		v.Entries = entriesMap[v.VoucherID]
		vouchers[i] = v
	}

	return vouchers, nil
}

// scanVoucherRow scans one voucher header row, normalizing nullable link columns.
func scanVoucherRow(rows pgx.Rows) (models.Voucher, error) {
	var m models.Voucher
	var originalID sql.NullString
	var reversingID sql.NullString

	err := rows.Scan(
		&m.VoucherID,
		&m.WorkspaceID,
		&m.VoucherDate,
		&m.Narration,
		&m.CurrencyCode,
		&m.Status,
		&m.Source,
		&m.SourceID,
		&originalID,
		&reversingID,
		&m.Amount,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		return models.Voucher{}, err
	}

	if originalID.Valid {
		m.OriginalVoucherID = &originalID.String
	}
	if reversingID.Valid {
		m.ReversingVoucherID = &reversingID.String
	}
	return m, nil
}

// FindEntriesByVoucherIDs retrieves all entries for a given list of voucher IDs.
// It returns a map where keys are voucher IDs and values are slices of entries.
func (r *PgxVoucherRepository) FindEntriesByVoucherIDs(ctx context.Context, voucherIDs []string) (map[string][]domain.VoucherEntry, error) {
	if len(voucherIDs) == 0 {
		return map[string][]domain.VoucherEntry{}, nil
	}

	query := `
		SELECT entry_id, voucher_id, account_id, amount, side, currency_code, notes, created_at, created_by, last_updated_at, last_updated_by, running_balance
		FROM voucher_entries
		WHERE voucher_id = ANY($1)
		ORDER BY voucher_id, created_at;
	`

	rows, err := r.Pool.Query(ctx, query, voucherIDs)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query entries for voucher IDs", err)
	}
	defer rows.Close()

	entriesMap := make(map[string][]domain.VoucherEntry)
	for rows.Next() {
		var modelEntry models.VoucherEntry
		var runningBalancePtr *decimal.Decimal

		if err := rows.Scan(
			&modelEntry.EntryID,
			&modelEntry.VoucherID,
			&modelEntry.AccountID,
			&modelEntry.Amount,
			&modelEntry.Side,
			&modelEntry.CurrencyCode,
			&modelEntry.Notes,
			&modelEntry.CreatedAt,
			&modelEntry.CreatedBy,
			&modelEntry.LastUpdatedAt,
			&modelEntry.LastUpdatedBy,
			&runningBalancePtr,
		); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan entry row during batch fetch", err)
		}
		if runningBalancePtr != nil {
			modelEntry.RunningBalance = *runningBalancePtr
		} else {
			modelEntry.RunningBalance = decimal.Zero
		}

		domainEntry := mapping.ToDomainVoucherEntry(modelEntry)
		entriesMap[domainEntry.VoucherID] = append(entriesMap[domainEntry.VoucherID], domainEntry)
	}

	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating entry rows during batch fetch", err)
	}

	// Vouchers with no entries still get an empty slice
	for _, vid := range voucherIDs {
		if _, exists := entriesMap[vid]; !exists {
			entriesMap[vid] = []domain.VoucherEntry{}
		}
	}

	return entriesMap, nil
}

// UpdateVoucherStatusAndLinks updates the status and reversal links for a voucher.
func (r *PgxVoucherRepository) UpdateVoucherStatusAndLinks(ctx context.Context, voucherID string, status domain.VoucherStatus, reversingVoucherID *string, originalVoucherID *string, updatedByUserID string, updatedAt time.Time) error {
	query := `
		UPDATE vouchers
		SET status = $2,
		    reversing_voucher_id = $3,
		    original_voucher_id = $4,
		    last_updated_at = $5,
		    last_updated_by = $6
		WHERE voucher_id = $1;
	`

	cmdTag, err := r.Pool.Exec(ctx, query,
		voucherID,
		status,
		reversingVoucherID,
		originalVoucherID,
		updatedAt,
		updatedByUserID,
	)

	if err != nil {
		return apperrors.NewAppError(500, "failed to update voucher status/links for "+voucherID, err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("voucher " + voucherID + " not found for update")
	}

	return nil
}

// UpdateVoucher updates non-entry details of a voucher.
func (r *PgxVoucherRepository) UpdateVoucher(ctx context.Context, voucher domain.Voucher) error {
	modelVoucher := mapping.ToModelVoucher(voucher)

	query := `
		UPDATE vouchers
		SET voucher_date = $2,
		    narration = $3,
		    last_updated_at = $4,
		    last_updated_by = $5
		WHERE voucher_id = $1;
	`
	// Status, currency and reversal links are not updated here. Status changes
	// go through UpdateVoucherStatusAndLinks.

	cmdTag, err := r.Pool.Exec(ctx, query,
		modelVoucher.VoucherID,
		modelVoucher.VoucherDate,
		modelVoucher.Narration,
		modelVoucher.LastUpdatedAt,
		modelVoucher.LastUpdatedBy,
	)

	if err != nil {
		return apperrors.NewAppError(500, "failed to execute update voucher "+modelVoucher.VoucherID, err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("voucher " + modelVoucher.VoucherID + " not found for update")
	}

	return nil
}

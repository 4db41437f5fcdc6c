package pgsql

import (
	"context"
	"time"

	"github.com/sahajbooks/gst_books_app/internal/apperrors"
	"github.com/sahajbooks/gst_books_app/internal/core/domain"
	portsrepo "github.com/sahajbooks/gst_books_app/internal/core/ports/repositories"
	"github.com/sahajbooks/gst_books_app/internal/models"
	"github.com/sahajbooks/gst_books_app/internal/utils/mapping"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// trialBalanceRepository stores uploaded trial balance snapshots. An upload
// for a date shadows the derived trial balance for that date.
type trialBalanceRepository struct {
	BaseRepository
}

// newTrialBalanceRepository creates a new trial balance upload repository
func newTrialBalanceRepository(pool *pgxpool.Pool) portsrepo.TrialBalanceUploadRepository {
	return &trialBalanceRepository{BaseRepository: BaseRepository{Pool: pool}}
}

// SaveUpload replaces the uploaded rows for a workspace and date.
func (r *trialBalanceRepository) SaveUpload(ctx context.Context, workspaceID string, asOf time.Time, rows []domain.TrialBalanceRow, userID string) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return apperrors.NewAppError(500, "failed to begin transaction", err)
	}
	defer r.Rollback(ctx, tx)

	// Re-uploading for the same date is a full replacement
	deleteQuery := `DELETE FROM trial_balance_uploads WHERE workspace_id = $1 AND as_of = $2;`
	if _, err := tx.Exec(ctx, deleteQuery, workspaceID, asOf); err != nil {
		return apperrors.NewAppError(500, "failed to clear existing trial balance upload", err)
	}

	insertQuery := `
		INSERT INTO trial_balance_uploads (row_id, workspace_id, as_of, account_name, account_type, placement, debit, credit, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12);
	`
	now := time.Now().UTC()
	batch := &pgx.Batch{}
	for _, row := range rows {
		batch.Queue(insertQuery,
			uuid.NewString(),
			workspaceID,
			asOf,
			row.AccountName,
			row.AccountType,
			row.Placement,
			row.Debit,
			row.Credit,
			now,
			userID,
			now,
			userID,
		)
	}

	br := tx.SendBatch(ctx, batch)
	if err := br.Close(); err != nil {
		return apperrors.NewAppError(500, "failed to execute trial balance upload batch", err)
	}

	if err := r.Commit(ctx, tx); err != nil {
		return apperrors.NewAppError(500, "failed to commit trial balance upload", err)
	}

	return nil
}

// FindUpload retrieves the uploaded rows for a workspace and date, or nil when no upload exists.
func (r *trialBalanceRepository) FindUpload(ctx context.Context, workspaceID string, asOf time.Time) ([]domain.TrialBalanceRow, error) {
	query := `
		SELECT row_id, workspace_id, as_of, account_name, account_type, placement, debit, credit, created_at, created_by, last_updated_at, last_updated_by
		FROM trial_balance_uploads
		WHERE workspace_id = $1 AND as_of = $2
		ORDER BY account_name;
	`
	rows, err := r.Pool.Query(ctx, query, workspaceID, asOf)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query trial balance upload", err)
	}
	defer rows.Close()

	var result []domain.TrialBalanceRow
	for rows.Next() {
		var m models.TrialBalanceUploadRow
		if err := rows.Scan(
			&m.RowID,
			&m.WorkspaceID,
			&m.AsOf,
			&m.AccountName,
			&m.AccountType,
			&m.Placement,
			&m.Debit,
			&m.Credit,
			&m.CreatedAt,
			&m.CreatedBy,
			&m.LastUpdatedAt,
			&m.LastUpdatedBy,
		); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan trial balance upload row", err)
		}
		result = append(result, mapping.ToDomainTrialBalanceRow(m))
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating trial balance upload rows", err)
	}

	// nil signals "no upload for this date" to the reporting service
	return result, nil
}

package pgsql

import (
	"context"
	"database/sql"
	"errors"
	"strconv"
	"time"

	"github.com/sahajbooks/gst_books_app/internal/apperrors"
	"github.com/sahajbooks/gst_books_app/internal/core/domain"
	portsrepo "github.com/sahajbooks/gst_books_app/internal/core/ports/repositories"
	"github.com/sahajbooks/gst_books_app/internal/models"
	"github.com/sahajbooks/gst_books_app/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const purchaseBillColumns = `bill_id, workspace_id, bill_number, bill_date, vendor_account_id, vendor_name, vendor_gstin, taxable_value, gst_amount, total_amount, tds_section, tds_amount, status, created_at, created_by, last_updated_at, last_updated_by`

type PgxPurchaseRepository struct {
	BaseRepository
}

// newPgxPurchaseRepository creates a new repository for purchase bill data.
func newPgxPurchaseRepository(pool *pgxpool.Pool) portsrepo.PurchaseBillRepositoryWithTx {
	return &PgxPurchaseRepository{BaseRepository: BaseRepository{Pool: pool}}
}

// Ensure PgxPurchaseRepository implements portsrepo.PurchaseBillRepositoryWithTx
var _ portsrepo.PurchaseBillRepositoryWithTx = (*PgxPurchaseRepository)(nil)

func scanPurchaseBillRow(row pgx.Row) (models.PurchaseBill, error) {
	var m models.PurchaseBill
	var vendorAccountID sql.NullString
	var vendorGSTIN sql.NullString
	var tdsSection sql.NullString

	err := row.Scan(
		&m.BillID,
		&m.WorkspaceID,
		&m.BillNumber,
		&m.BillDate,
		&vendorAccountID,
		&m.VendorName,
		&vendorGSTIN,
		&m.TaxableValue,
		&m.GSTAmount,
		&m.TotalAmount,
		&tdsSection,
		&m.TDSAmount,
		&m.Status,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		return models.PurchaseBill{}, err
	}

	if vendorAccountID.Valid {
		m.VendorAccountID = vendorAccountID.String
	}
	if vendorGSTIN.Valid {
		m.VendorGSTIN = vendorGSTIN.String
	}
	if tdsSection.Valid {
		m.TDSSection = tdsSection.String
	}
	return m, nil
}

// SavePurchaseBill persists a new bill.
func (r *PgxPurchaseRepository) SavePurchaseBill(ctx context.Context, bill domain.PurchaseBill) (domain.PurchaseBill, error) {
	modelBill := mapping.ToModelPurchaseBill(bill)

	query := `
		INSERT INTO purchase_bills (` + purchaseBillColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17);
	`
	var vendorAccountID sql.NullString
	if modelBill.VendorAccountID != "" {
		vendorAccountID = sql.NullString{String: modelBill.VendorAccountID, Valid: true}
	}
	var vendorGSTIN sql.NullString
	if modelBill.VendorGSTIN != "" {
		vendorGSTIN = sql.NullString{String: modelBill.VendorGSTIN, Valid: true}
	}
	var tdsSection sql.NullString
	if modelBill.TDSSection != "" {
		tdsSection = sql.NullString{String: modelBill.TDSSection, Valid: true}
	}

	_, err := r.Pool.Exec(ctx, query,
		modelBill.BillID,
		modelBill.WorkspaceID,
		modelBill.BillNumber,
		modelBill.BillDate,
		vendorAccountID,
		modelBill.VendorName,
		vendorGSTIN,
		modelBill.TaxableValue,
		modelBill.GSTAmount,
		modelBill.TotalAmount,
		tdsSection,
		modelBill.TDSAmount,
		modelBill.Status,
		modelBill.CreatedAt,
		modelBill.CreatedBy,
		modelBill.LastUpdatedAt,
		modelBill.LastUpdatedBy,
	)
	if err != nil {
		return domain.PurchaseBill{}, apperrors.NewAppError(500, "failed to insert purchase bill "+modelBill.BillID, err)
	}

	return bill, nil
}

// BillNumberExists reports whether the vendor already has a bill with this number.
func (r *PgxPurchaseRepository) BillNumberExists(ctx context.Context, workspaceID string, vendorName string, billNumber string) (bool, error) {
	var exists bool
	err := r.Pool.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM purchase_bills WHERE workspace_id = $1 AND vendor_name = $2 AND bill_number = $3);`, workspaceID, vendorName, billNumber).Scan(&exists)
	if err != nil {
		return false, apperrors.NewAppError(500, "failed to check existence of bill number "+billNumber, err)
	}
	return exists, nil
}

// FindPurchaseBillByID retrieves a bill by its ID.
func (r *PgxPurchaseRepository) FindPurchaseBillByID(ctx context.Context, workspaceID string, billID string) (domain.PurchaseBill, error) {
	query := `
		SELECT ` + purchaseBillColumns + `
		FROM purchase_bills
		WHERE workspace_id = $1 AND bill_id = $2;
	`
	modelBill, err := scanPurchaseBillRow(r.Pool.QueryRow(ctx, query, workspaceID, billID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.PurchaseBill{}, apperrors.ErrNotFound
		}
		return domain.PurchaseBill{}, apperrors.NewAppError(500, "failed to find purchase bill by ID "+billID, err)
	}

	return mapping.ToDomainPurchaseBill(modelBill), nil
}

// ListPurchaseBillsByWorkspace retrieves a paginated list of bills using keyset pagination on the bill ID.
func (r *PgxPurchaseRepository) ListPurchaseBillsByWorkspace(ctx context.Context, workspaceID string, limit int, lastBillID *string) ([]domain.PurchaseBill, error) {
	if limit <= 0 {
		limit = 20
	}

	baseQuery := `
		SELECT ` + purchaseBillColumns + `
		FROM purchase_bills
		WHERE workspace_id = $1
	`
	orderByClause := `ORDER BY bill_date DESC, bill_id DESC`

	var rows pgx.Rows
	var err error
	args := []interface{}{workspaceID}

	if lastBillID != nil && *lastBillID != "" {
		cursorClause := `AND (bill_date, bill_id) < (SELECT bill_date, bill_id FROM purchase_bills WHERE bill_id = $2)`
		args = append(args, *lastBillID)
		query := baseQuery + " " + cursorClause + " " + orderByClause + " LIMIT $" + strconv.Itoa(len(args)+1) + ";"
		args = append(args, limit)
		rows, err = r.Pool.Query(ctx, query, args...)
	} else {
		query := baseQuery + " " + orderByClause + " LIMIT $" + strconv.Itoa(len(args)+1) + ";"
		args = append(args, limit)
		rows, err = r.Pool.Query(ctx, query, args...)
	}

	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query purchase bills for workspace "+workspaceID, err)
	}
	defer rows.Close()

	modelBills := []models.PurchaseBill{}
	for rows.Next() {
		m, scanErr := scanPurchaseBillRow(rows)
		if scanErr != nil {
			return nil, apperrors.NewAppError(500, "failed to scan purchase bill row for workspace "+workspaceID, scanErr)
		}
		modelBills = append(modelBills, m)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating purchase bill rows for workspace "+workspaceID, err)
	}

	return mapping.ToDomainPurchaseBillSlice(modelBills), nil
}

// ListPurchaseBillsByDateRange retrieves bills dated within [from, to] inclusive.
func (r *PgxPurchaseRepository) ListPurchaseBillsByDateRange(ctx context.Context, workspaceID string, from time.Time, to time.Time) ([]domain.PurchaseBill, error) {
	query := `
		SELECT ` + purchaseBillColumns + `
		FROM purchase_bills
		WHERE workspace_id = $1 AND bill_date BETWEEN $2 AND $3
		ORDER BY bill_date, bill_number;
	`
	rows, err := r.Pool.Query(ctx, query, workspaceID, from, to)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query purchase bills by date range for workspace "+workspaceID, err)
	}
	defer rows.Close()

	modelBills := []models.PurchaseBill{}
	for rows.Next() {
		m, scanErr := scanPurchaseBillRow(rows)
		if scanErr != nil {
			return nil, apperrors.NewAppError(500, "failed to scan purchase bill row for workspace "+workspaceID, scanErr)
		}
		modelBills = append(modelBills, m)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating purchase bill rows for workspace "+workspaceID, err)
	}

	return mapping.ToDomainPurchaseBillSlice(modelBills), nil
}

// UpdatePurchaseBillStatus moves a bill between document statuses.
func (r *PgxPurchaseRepository) UpdatePurchaseBillStatus(ctx context.Context, workspaceID string, billID string, status domain.DocumentStatus, userID string) error {
	query := `
		UPDATE purchase_bills
		SET status = $3, last_updated_at = NOW(), last_updated_by = $4
		WHERE workspace_id = $1 AND bill_id = $2;
	`
	cmdTag, err := r.Pool.Exec(ctx, query, workspaceID, billID, status, userID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update status for purchase bill "+billID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("purchase bill " + billID + " not found for update")
	}
	return nil
}

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

const invoiceColumns = `invoice_id, workspace_id, invoice_number, invoice_date, customer_account_id, customer_name, customer_gstin, place_of_supply, taxable_value, cgst, sgst, igst, total_amount, status, created_at, created_by, last_updated_at, last_updated_by`

type PgxInvoiceRepository struct {
	BaseRepository
}

// newPgxInvoiceRepository creates a new repository for invoice data.
func newPgxInvoiceRepository(pool *pgxpool.Pool) portsrepo.InvoiceRepositoryWithTx {
	return &PgxInvoiceRepository{BaseRepository: BaseRepository{Pool: pool}}
}

// Ensure PgxInvoiceRepository implements portsrepo.InvoiceRepositoryWithTx
var _ portsrepo.InvoiceRepositoryWithTx = (*PgxInvoiceRepository)(nil)

func scanInvoiceRow(row pgx.Row) (models.Invoice, error) {
	var m models.Invoice
	var customerAccountID sql.NullString
	var customerGSTIN sql.NullString

	err := row.Scan(
		&m.InvoiceID,
		&m.WorkspaceID,
		&m.InvoiceNumber,
		&m.InvoiceDate,
		&customerAccountID,
		&m.CustomerName,
		&customerGSTIN,
		&m.PlaceOfSupply,
		&m.TaxableValue,
		&m.CGST,
		&m.SGST,
		&m.IGST,
		&m.TotalAmount,
		&m.Status,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		return models.Invoice{}, err
	}

	if customerAccountID.Valid {
		m.CustomerAccountID = customerAccountID.String
	}
	if customerGSTIN.Valid {
		m.CustomerGSTIN = customerGSTIN.String
	}
	return m, nil
}

// SaveInvoice persists an invoice header and its lines atomically.
func (r *PgxInvoiceRepository) SaveInvoice(ctx context.Context, invoice domain.Invoice) (domain.Invoice, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return domain.Invoice{}, apperrors.NewAppError(500, "failed to begin transaction", err)
	}
	defer r.Rollback(ctx, tx)

	modelInv := mapping.ToModelInvoice(invoice)

	headerQuery := `
		INSERT INTO invoices (` + invoiceColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18);
	`
	var customerAccountID sql.NullString
	if modelInv.CustomerAccountID != "" {
		customerAccountID = sql.NullString{String: modelInv.CustomerAccountID, Valid: true}
	}
	var customerGSTIN sql.NullString
	if modelInv.CustomerGSTIN != "" {
		customerGSTIN = sql.NullString{String: modelInv.CustomerGSTIN, Valid: true}
	}

	_, err = tx.Exec(ctx, headerQuery,
		modelInv.InvoiceID,
		modelInv.WorkspaceID,
		modelInv.InvoiceNumber,
		modelInv.InvoiceDate,
		customerAccountID,
		modelInv.CustomerName,
		customerGSTIN,
		modelInv.PlaceOfSupply,
		modelInv.TaxableValue,
		modelInv.CGST,
		modelInv.SGST,
		modelInv.IGST,
		modelInv.TotalAmount,
		modelInv.Status,
		modelInv.CreatedAt,
		modelInv.CreatedBy,
		modelInv.LastUpdatedAt,
		modelInv.LastUpdatedBy,
	)
	if err != nil {
		return domain.Invoice{}, apperrors.NewAppError(500, "failed to insert invoice "+modelInv.InvoiceID, err)
	}

	lineQuery := `
		INSERT INTO invoice_lines (line_id, invoice_id, description, hsn_code, quantity, unit_price, gst_rate, taxable_value, cgst, sgst, igst)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);
	`
	batch := &pgx.Batch{}
	for _, line := range invoice.Lines {
		modelLine := mapping.ToModelInvoiceLine(line, invoice.InvoiceID)
		batch.Queue(lineQuery,
			modelLine.LineID,
			modelLine.InvoiceID,
			modelLine.Description,
			modelLine.HSNCode,
			modelLine.Quantity,
			modelLine.UnitPrice,
			modelLine.GSTRate,
			modelLine.TaxableValue,
			modelLine.CGST,
			modelLine.SGST,
			modelLine.IGST,
		)
	}

	br := tx.SendBatch(ctx, batch)
	if err := br.Close(); err != nil {
		return domain.Invoice{}, apperrors.NewAppError(500, "failed to execute line batch for invoice "+modelInv.InvoiceID, err)
	}

	if err := r.Commit(ctx, tx); err != nil {
		return domain.Invoice{}, apperrors.NewAppError(500, "failed to commit transaction for invoice "+modelInv.InvoiceID, err)
	}

	return invoice, nil
}

// FindInvoiceByID retrieves an invoice with its lines.
func (r *PgxInvoiceRepository) FindInvoiceByID(ctx context.Context, workspaceID string, invoiceID string) (domain.Invoice, error) {
	headerQuery := `
		SELECT ` + invoiceColumns + `
		FROM invoices
		WHERE workspace_id = $1 AND invoice_id = $2;
	`
	modelInv, err := scanInvoiceRow(r.Pool.QueryRow(ctx, headerQuery, workspaceID, invoiceID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Invoice{}, apperrors.ErrNotFound
		}
		return domain.Invoice{}, apperrors.NewAppError(500, "failed to find invoice by ID "+invoiceID, err)
	}

	lines, err := r.findLines(ctx, invoiceID)
	if err != nil {
		return domain.Invoice{}, err
	}

	return mapping.ToDomainInvoice(modelInv, lines), nil
}

func (r *PgxInvoiceRepository) findLines(ctx context.Context, invoiceID string) ([]models.InvoiceLine, error) {
	query := `
		SELECT line_id, invoice_id, description, hsn_code, quantity, unit_price, gst_rate, taxable_value, cgst, sgst, igst
		FROM invoice_lines
		WHERE invoice_id = $1
		ORDER BY line_id;
	`
	rows, err := r.Pool.Query(ctx, query, invoiceID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query lines for invoice "+invoiceID, err)
	}
	defer rows.Close()

	lines := []models.InvoiceLine{}
	for rows.Next() {
		var l models.InvoiceLine
		if err := rows.Scan(
			&l.LineID,
			&l.InvoiceID,
			&l.Description,
			&l.HSNCode,
			&l.Quantity,
			&l.UnitPrice,
			&l.GSTRate,
			&l.TaxableValue,
			&l.CGST,
			&l.SGST,
			&l.IGST,
		); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan line row for invoice "+invoiceID, err)
		}
		lines = append(lines, l)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating line rows for invoice "+invoiceID, err)
	}

	return lines, nil
}

// InvoiceNumberExists reports whether a number is already taken in the workspace.
func (r *PgxInvoiceRepository) InvoiceNumberExists(ctx context.Context, workspaceID string, number string) (bool, error) {
	var exists bool
	err := r.Pool.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM invoices WHERE workspace_id = $1 AND invoice_number = $2);`, workspaceID, number).Scan(&exists)
	if err != nil {
		return false, apperrors.NewAppError(500, "failed to check existence of invoice number "+number, err)
	}
	return exists, nil
}

// ListInvoicesByWorkspace retrieves a paginated list of invoices using keyset pagination on the invoice ID.
func (r *PgxInvoiceRepository) ListInvoicesByWorkspace(ctx context.Context, workspaceID string, limit int, lastInvoiceID *string) ([]domain.Invoice, error) {
	if limit <= 0 {
		limit = 20
	}

	baseQuery := `
		SELECT ` + invoiceColumns + `
		FROM invoices
		WHERE workspace_id = $1
	`
	orderByClause := `ORDER BY invoice_date DESC, invoice_id DESC`

	var rows pgx.Rows
	var err error
	args := []interface{}{workspaceID}

	if lastInvoiceID != nil && *lastInvoiceID != "" {
		cursorClause := `AND (invoice_date, invoice_id) < (SELECT invoice_date, invoice_id FROM invoices WHERE invoice_id = $2)`
		args = append(args, *lastInvoiceID)
		query := baseQuery + " " + cursorClause + " " + orderByClause + " LIMIT $" + strconv.Itoa(len(args)+1) + ";"
		args = append(args, limit)
		rows, err = r.Pool.Query(ctx, query, args...)
	} else {
		query := baseQuery + " " + orderByClause + " LIMIT $" + strconv.Itoa(len(args)+1) + ";"
		args = append(args, limit)
		rows, err = r.Pool.Query(ctx, query, args...)
	}

	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query invoices for workspace "+workspaceID, err)
	}
	defer rows.Close()

	invoices := []domain.Invoice{}
	for rows.Next() {
		m, scanErr := scanInvoiceRow(rows)
		if scanErr != nil {
			return nil, apperrors.NewAppError(500, "failed to scan invoice row for workspace "+workspaceID, scanErr)
		}
		invoices = append(invoices, mapping.ToDomainInvoice(m, nil))
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating invoice rows for workspace "+workspaceID, err)
	}

	return invoices, nil
}

// ListInvoicesByDateRange retrieves invoices dated within [from, to] inclusive, lines included.
// GSTR-1 derivation needs the line level rate buckets.
func (r *PgxInvoiceRepository) ListInvoicesByDateRange(ctx context.Context, workspaceID string, from time.Time, to time.Time) ([]domain.Invoice, error) {
	query := `
		SELECT ` + invoiceColumns + `
		FROM invoices
		WHERE workspace_id = $1 AND invoice_date BETWEEN $2 AND $3
		ORDER BY invoice_date, invoice_number;
	`
	rows, err := r.Pool.Query(ctx, query, workspaceID, from, to)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query invoices by date range for workspace "+workspaceID, err)
	}
	defer rows.Close()

	modelInvoices := []models.Invoice{}
	for rows.Next() {
		m, scanErr := scanInvoiceRow(rows)
		if scanErr != nil {
			return nil, apperrors.NewAppError(500, "failed to scan invoice row for workspace "+workspaceID, scanErr)
		}
		modelInvoices = append(modelInvoices, m)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating invoice rows for workspace "+workspaceID, err)
	}

	invoices := make([]domain.Invoice, len(modelInvoices))
	for i, m := range modelInvoices {
		lines, err := r.findLines(ctx, m.InvoiceID)
		if err != nil {
			return nil, err
		}
		invoices[i] = mapping.ToDomainInvoice(m, lines)
	}

	return invoices, nil
}

// UpdateInvoiceStatus moves an invoice between document statuses.
func (r *PgxInvoiceRepository) UpdateInvoiceStatus(ctx context.Context, workspaceID string, invoiceID string, status domain.DocumentStatus, userID string) error {
	query := `
		UPDATE invoices
		SET status = $3, last_updated_at = NOW(), last_updated_by = $4
		WHERE workspace_id = $1 AND invoice_id = $2;
	`
	cmdTag, err := r.Pool.Exec(ctx, query, workspaceID, invoiceID, status, userID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update status for invoice "+invoiceID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("invoice " + invoiceID + " not found for update")
	}
	return nil
}

package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/sahajbooks/gst_books_app/internal/apperrors"
	"github.com/sahajbooks/gst_books_app/internal/core/domain"
	portsrepo "github.com/sahajbooks/gst_books_app/internal/core/ports/repositories"
	portssvc "github.com/sahajbooks/gst_books_app/internal/core/ports/services"
	"github.com/sahajbooks/gst_books_app/internal/dto"
	"github.com/sahajbooks/gst_books_app/internal/middleware"
	"github.com/sahajbooks/gst_books_app/internal/utils/accounting"
	"github.com/sahajbooks/gst_books_app/internal/utils/gst"
	"github.com/shopspring/decimal"
)

var ErrDuplicateInvoiceNumber = fmt.Errorf("%w: invoice number already used in this workspace", apperrors.ErrDuplicate)

// invoiceService implements portssvc.InvoiceSvcFacade. Creating an invoice is
// a two-step write: persist the document, then post its derived voucher to the
// ledger. The deterministic voucher ID means a retry after a partial failure
// converges instead of double-posting.
type invoiceService struct {
	ledgerPoster
	invoiceRepo portsrepo.InvoiceRepositoryFacade
}

// NewInvoiceService creates a new InvoiceService.
func NewInvoiceService(invoiceRepo portsrepo.InvoiceRepositoryFacade, voucherRepo portsrepo.VoucherRepositoryWithTx, accountRepo portsrepo.AccountRepositoryFacade, accountSvc portssvc.AccountSvcFacade, workspaceSvc portssvc.WorkspaceSvcFacade) portssvc.InvoiceSvcFacade {
	return &invoiceService{
		ledgerPoster: ledgerPoster{
			accountSvc:   accountSvc,
			accountRepo:  accountRepo,
			voucherRepo:  voucherRepo,
			workspaceSvc: workspaceSvc,
		},
		invoiceRepo: invoiceRepo,
	}
}

// Ensure invoiceService implements the InvoiceSvcFacade interface
var _ portssvc.InvoiceSvcFacade = (*invoiceService)(nil)

// buildInvoice derives the line-level tax split from the seller and customer
// GSTINs and totals the document.
func buildInvoice(workspaceID string, req dto.CreateInvoiceRequest, sellerGSTIN string, audit domain.AuditFields) (domain.Invoice, error) {
	interstate := gst.IsInterstate(sellerGSTIN, req.CustomerGSTIN)

	placeOfSupply := req.PlaceOfSupply
	if placeOfSupply == "" {
		placeOfSupply = gst.StateCode(req.CustomerGSTIN)
	}
	if placeOfSupply == "" {
		placeOfSupply = gst.StateCode(sellerGSTIN)
	}

	inv := domain.Invoice{
		InvoiceID:         uuid.NewString(),
		WorkspaceID:       workspaceID,
		InvoiceNumber:     req.InvoiceNumber,
		InvoiceDate:       req.InvoiceDate,
		CustomerAccountID: req.CustomerAccountID,
		CustomerName:      req.CustomerName,
		CustomerGSTIN:     req.CustomerGSTIN,
		PlaceOfSupply:     placeOfSupply,
		Status:            domain.DocumentPosted,
		TaxableValue:      decimal.Zero,
		CGST:              decimal.Zero,
		SGST:              decimal.Zero,
		IGST:              decimal.Zero,
		AuditFields:       audit,
	}

	for _, lineReq := range req.Lines {
		if lineReq.Quantity.LessThanOrEqual(decimal.Zero) {
			return domain.Invoice{}, fmt.Errorf("%w: line quantity must be positive", apperrors.ErrValidation)
		}
		if lineReq.UnitPrice.IsNegative() {
			return domain.Invoice{}, fmt.Errorf("%w: line unit price cannot be negative", apperrors.ErrValidation)
		}
		if lineReq.GSTRate.IsNegative() {
			return domain.Invoice{}, fmt.Errorf("%w: line GST rate cannot be negative", apperrors.ErrValidation)
		}

		taxable := lineReq.Quantity.Mul(lineReq.UnitPrice)
		split := gst.SplitTax(taxable, lineReq.GSTRate, interstate)

		inv.Lines = append(inv.Lines, domain.InvoiceLine{
			LineID:       uuid.NewString(),
			Description:  lineReq.Description,
			HSNCode:      lineReq.HSNCode,
			Quantity:     lineReq.Quantity,
			UnitPrice:    lineReq.UnitPrice,
			GSTRate:      lineReq.GSTRate,
			TaxableValue: taxable,
			CGST:         split.CGST,
			SGST:         split.SGST,
			IGST:         split.IGST,
		})

		inv.TaxableValue = inv.TaxableValue.Add(taxable)
		inv.CGST = inv.CGST.Add(split.CGST)
		inv.SGST = inv.SGST.Add(split.SGST)
		inv.IGST = inv.IGST.Add(split.IGST)
	}

	inv.TotalAmount = inv.TaxableValue.Add(inv.TotalTax())
	return inv, nil
}

// CreateInvoice persists an invoice and posts it to the ledger.
func (s *invoiceService) CreateInvoice(ctx context.Context, workspaceID string, req dto.CreateInvoiceRequest, creatorUserID string) (*domain.Invoice, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := s.workspaceSvc.AuthorizeUserAction(ctx, creatorUserID, workspaceID, domain.RoleMember); err != nil {
		logger.Warn("Authorization failed for CreateInvoice", slog.String("user_id", creatorUserID), slog.String("workspace_id", workspaceID))
		return nil, err
	}

	workspace, err := s.workspaceSvc.FindWorkspaceByID(ctx, workspaceID)
	if err != nil {
		return nil, fmt.Errorf("failed to load workspace: %w", err)
	}

	taken, err := s.invoiceRepo.InvoiceNumberExists(ctx, workspaceID, req.InvoiceNumber)
	if err != nil {
		return nil, fmt.Errorf("failed to check invoice number: %w", err)
	}
	if taken {
		return nil, fmt.Errorf("%w: %s", ErrDuplicateInvoiceNumber, req.InvoiceNumber)
	}

	now := time.Now().UTC()
	audit := domain.AuditFields{CreatedAt: now, CreatedBy: creatorUserID, LastUpdatedAt: now, LastUpdatedBy: creatorUserID}

	invoice, err := buildInvoice(workspaceID, req, workspace.GSTIN, audit)
	if err != nil {
		return nil, err
	}

	saved, err := s.invoiceRepo.SaveInvoice(ctx, invoice)
	if err != nil {
		logger.Error("Failed to save invoice", slog.String("error", err.Error()), slog.String("workspace_id", workspaceID), slog.String("invoice_number", req.InvoiceNumber))
		return nil, fmt.Errorf("failed to save invoice: %w", err)
	}

	chart, err := s.chartFor(ctx, workspaceID)
	if err != nil {
		return nil, err
	}

	voucher := accounting.SaleVoucher(saved, chart, s.workspaceCurrency(ctx, workspaceID), audit)
	if _, err := s.postDerivedVoucher(ctx, workspaceID, voucher, creatorUserID); err != nil {
		logger.Error("Failed to post invoice to ledger", slog.String("error", err.Error()), slog.String("invoice_id", saved.InvoiceID))
		return nil, fmt.Errorf("invoice saved but posting failed: %w", err)
	}

	logger.Info("Invoice created and posted",
		slog.String("invoice_id", saved.InvoiceID),
		slog.String("invoice_number", saved.InvoiceNumber),
		slog.String("workspace_id", workspaceID),
		slog.String("total_amount", saved.TotalAmount.String()))
	return &saved, nil
}

// GetInvoiceByID retrieves a specific invoice with its lines.
func (s *invoiceService) GetInvoiceByID(ctx context.Context, workspaceID string, invoiceID string, requestingUserID string) (*domain.Invoice, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := s.workspaceSvc.AuthorizeUserAction(ctx, requestingUserID, workspaceID, domain.RoleReadOnly); err != nil {
		return nil, err
	}

	invoice, err := s.invoiceRepo.FindInvoiceByID(ctx, workspaceID, invoiceID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			logger.Error("Failed to find invoice by ID", slog.String("error", err.Error()), slog.String("invoice_id", invoiceID))
		}
		return nil, err
	}
	return &invoice, nil
}

// ListInvoices retrieves a paginated list of invoices for a workspace.
// When a date range is given the range filter wins over the keyset cursor.
func (s *invoiceService) ListInvoices(ctx context.Context, workspaceID string, userID string, params dto.ListInvoicesParams) (*dto.ListInvoicesResponse, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := s.workspaceSvc.AuthorizeUserAction(ctx, userID, workspaceID, domain.RoleReadOnly); err != nil {
		return nil, err
	}

	limit := params.Limit
	if limit <= 0 {
		limit = 20
	}

	var invoices []domain.Invoice
	var err error
	if params.From != nil && params.To != nil {
		invoices, err = s.invoiceRepo.ListInvoicesByDateRange(ctx, workspaceID, *params.From, *params.To)
	} else {
		invoices, err = s.invoiceRepo.ListInvoicesByWorkspace(ctx, workspaceID, limit, params.LastInvoiceID)
	}
	if err != nil {
		logger.Error("Failed to list invoices", slog.String("error", err.Error()), slog.String("workspace_id", workspaceID))
		return nil, fmt.Errorf("failed to retrieve invoices: %w", err)
	}

	resp := dto.ToListInvoicesResponse(invoices)
	logger.Debug("Invoices listed", slog.Int("count", len(invoices)), slog.String("workspace_id", workspaceID))
	return &resp, nil
}

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
	"github.com/shopspring/decimal"
)

var ErrTDSWithoutSection = fmt.Errorf("%w: tds amount requires a tds section", apperrors.ErrValidation)

// purchaseService implements portssvc.PurchaseBillSvcFacade.
type purchaseService struct {
	ledgerPoster
	purchaseRepo portsrepo.PurchaseBillRepositoryFacade
}

// NewPurchaseService creates a new PurchaseService.
func NewPurchaseService(purchaseRepo portsrepo.PurchaseBillRepositoryFacade, voucherRepo portsrepo.VoucherRepositoryWithTx, accountRepo portsrepo.AccountRepositoryFacade, accountSvc portssvc.AccountSvcFacade, workspaceSvc portssvc.WorkspaceSvcFacade) portssvc.PurchaseBillSvcFacade {
	return &purchaseService{
		ledgerPoster: ledgerPoster{
			accountSvc:   accountSvc,
			accountRepo:  accountRepo,
			voucherRepo:  voucherRepo,
			workspaceSvc: workspaceSvc,
		},
		purchaseRepo: purchaseRepo,
	}
}

// Ensure purchaseService implements the PurchaseBillSvcFacade interface
var _ portssvc.PurchaseBillSvcFacade = (*purchaseService)(nil)

// CreatePurchaseBill records a vendor bill and posts it to the ledger. When
// TDS applies, the vendor credit is reduced by the deduction and TDS payable
// is credited instead.
func (s *purchaseService) CreatePurchaseBill(ctx context.Context, workspaceID string, req dto.CreatePurchaseBillRequest, creatorUserID string) (*domain.PurchaseBill, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := s.workspaceSvc.AuthorizeUserAction(ctx, creatorUserID, workspaceID, domain.RoleMember); err != nil {
		logger.Warn("Authorization failed for CreatePurchaseBill", slog.String("user_id", creatorUserID), slog.String("workspace_id", workspaceID))
		return nil, err
	}

	if req.TaxableValue.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("%w: taxable value must be positive", apperrors.ErrValidation)
	}
	if req.GSTAmount.IsNegative() {
		return nil, fmt.Errorf("%w: gst amount cannot be negative", apperrors.ErrValidation)
	}
	if req.TDSAmount.IsNegative() {
		return nil, fmt.Errorf("%w: tds amount cannot be negative", apperrors.ErrValidation)
	}
	if req.TDSAmount.IsPositive() && req.TDSSection == "" {
		return nil, ErrTDSWithoutSection
	}

	taken, err := s.purchaseRepo.BillNumberExists(ctx, workspaceID, req.VendorName, req.BillNumber)
	if err != nil {
		return nil, fmt.Errorf("failed to check bill number: %w", err)
	}
	if taken {
		return nil, fmt.Errorf("%w: bill %s already recorded for vendor %s", apperrors.ErrDuplicate, req.BillNumber, req.VendorName)
	}

	now := time.Now().UTC()
	audit := domain.AuditFields{CreatedAt: now, CreatedBy: creatorUserID, LastUpdatedAt: now, LastUpdatedBy: creatorUserID}

	bill := domain.PurchaseBill{
		BillID:          uuid.NewString(),
		WorkspaceID:     workspaceID,
		BillNumber:      req.BillNumber,
		BillDate:        req.BillDate,
		VendorAccountID: req.VendorAccountID,
		VendorName:      req.VendorName,
		VendorGSTIN:     req.VendorGSTIN,
		TaxableValue:    req.TaxableValue,
		GSTAmount:       req.GSTAmount,
		TotalAmount:     req.TaxableValue.Add(req.GSTAmount),
		TDSSection:      req.TDSSection,
		TDSAmount:       req.TDSAmount,
		Status:          domain.DocumentPosted,
		AuditFields:     audit,
	}

	saved, err := s.purchaseRepo.SavePurchaseBill(ctx, bill)
	if err != nil {
		logger.Error("Failed to save purchase bill", slog.String("error", err.Error()), slog.String("workspace_id", workspaceID), slog.String("bill_number", req.BillNumber))
		return nil, fmt.Errorf("failed to save purchase bill: %w", err)
	}

	chart, err := s.chartFor(ctx, workspaceID)
	if err != nil {
		return nil, err
	}

	voucher := accounting.PurchaseVoucher(saved, chart, s.workspaceCurrency(ctx, workspaceID), audit)
	if _, err := s.postDerivedVoucher(ctx, workspaceID, voucher, creatorUserID); err != nil {
		logger.Error("Failed to post purchase bill to ledger", slog.String("error", err.Error()), slog.String("bill_id", saved.BillID))
		return nil, fmt.Errorf("purchase bill saved but posting failed: %w", err)
	}

	logger.Info("Purchase bill created and posted",
		slog.String("bill_id", saved.BillID),
		slog.String("bill_number", saved.BillNumber),
		slog.String("workspace_id", workspaceID),
		slog.String("total_amount", saved.TotalAmount.String()))
	return &saved, nil
}

// GetPurchaseBillByID retrieves a specific purchase bill.
func (s *purchaseService) GetPurchaseBillByID(ctx context.Context, workspaceID string, billID string, requestingUserID string) (*domain.PurchaseBill, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := s.workspaceSvc.AuthorizeUserAction(ctx, requestingUserID, workspaceID, domain.RoleReadOnly); err != nil {
		return nil, err
	}

	bill, err := s.purchaseRepo.FindPurchaseBillByID(ctx, workspaceID, billID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			logger.Error("Failed to find purchase bill by ID", slog.String("error", err.Error()), slog.String("bill_id", billID))
		}
		return nil, err
	}
	return &bill, nil
}

// ListPurchaseBills retrieves a paginated list of bills for a workspace.
// When a date range is given the range filter wins over the keyset cursor.
func (s *purchaseService) ListPurchaseBills(ctx context.Context, workspaceID string, userID string, params dto.ListPurchaseBillsParams) (*dto.ListPurchaseBillsResponse, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := s.workspaceSvc.AuthorizeUserAction(ctx, userID, workspaceID, domain.RoleReadOnly); err != nil {
		return nil, err
	}

	limit := params.Limit
	if limit <= 0 {
		limit = 20
	}

	var bills []domain.PurchaseBill
	var err error
	if params.From != nil && params.To != nil {
		bills, err = s.purchaseRepo.ListPurchaseBillsByDateRange(ctx, workspaceID, *params.From, *params.To)
	} else {
		bills, err = s.purchaseRepo.ListPurchaseBillsByWorkspace(ctx, workspaceID, limit, params.LastBillID)
	}
	if err != nil {
		logger.Error("Failed to list purchase bills", slog.String("error", err.Error()), slog.String("workspace_id", workspaceID))
		return nil, fmt.Errorf("failed to retrieve purchase bills: %w", err)
	}

	resp := dto.ToListPurchaseBillsResponse(bills)
	logger.Debug("Purchase bills listed", slog.Int("count", len(bills)), slog.String("workspace_id", workspaceID))
	return &resp, nil
}

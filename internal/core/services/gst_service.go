package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/sahajbooks/gst_books_app/internal/apperrors"
	"github.com/sahajbooks/gst_books_app/internal/core/domain"
	portsrepo "github.com/sahajbooks/gst_books_app/internal/core/ports/repositories"
	portssvc "github.com/sahajbooks/gst_books_app/internal/core/ports/services"
	"github.com/sahajbooks/gst_books_app/internal/dto"
	"github.com/sahajbooks/gst_books_app/internal/middleware"
	"github.com/sahajbooks/gst_books_app/internal/utils/gst"
)

// gstService implements portssvc.GSTReturnService. Returns are assembled
// on demand from the posted documents of the filing period; nothing about a
// return is persisted, so refiling after a correction just re-derives.
type gstService struct {
	invoiceRepo  portsrepo.InvoiceRepositoryFacade
	purchaseRepo portsrepo.PurchaseBillRepositoryFacade
	workspaceSvc portssvc.WorkspaceSvcFacade
}

// NewGSTService creates a new GSTService.
func NewGSTService(invoiceRepo portsrepo.InvoiceRepositoryFacade, purchaseRepo portsrepo.PurchaseBillRepositoryFacade, workspaceSvc portssvc.WorkspaceSvcFacade) portssvc.GSTReturnService {
	return &gstService{
		invoiceRepo:  invoiceRepo,
		purchaseRepo: purchaseRepo,
		workspaceSvc: workspaceSvc,
	}
}

// Ensure gstService implements the GSTReturnService interface
var _ portssvc.GSTReturnService = (*gstService)(nil)

// periodRange returns the first and last day covered by the filing months.
// The handler hands over either a single month or a quarter's three
// consecutive months, so one fetch spans them all.
func periodRange(periods []gst.ReturnPeriod) (time.Time, time.Time) {
	first := periods[0]
	last := periods[len(periods)-1]
	from := time.Date(first.Year, first.Month, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(last.Year, last.Month, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 1, -1)
	return from, to
}

func validatePeriods(periods []gst.ReturnPeriod) error {
	if len(periods) == 0 {
		return fmt.Errorf("%w: at least one filing month is required", apperrors.ErrValidation)
	}
	return nil
}

func (s *gstService) periodInvoices(ctx context.Context, workspaceID string, periods []gst.ReturnPeriod) ([]domain.Invoice, error) {
	from, to := periodRange(periods)
	invoices, err := s.invoiceRepo.ListInvoicesByDateRange(ctx, workspaceID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch invoices for period %s: %w", gst.FilingCode(periods), err)
	}
	return invoices, nil
}

func (s *gstService) periodBills(ctx context.Context, workspaceID string, periods []gst.ReturnPeriod) ([]domain.PurchaseBill, error) {
	from, to := periodRange(periods)
	bills, err := s.purchaseRepo.ListPurchaseBillsByDateRange(ctx, workspaceID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch purchase bills for period %s: %w", gst.FilingCode(periods), err)
	}
	return bills, nil
}

// GSTR1 assembles the outward-supply return for the filing months.
func (s *gstService) GSTR1(ctx context.Context, workspaceID string, periods []gst.ReturnPeriod, userID string) (*domain.GSTR1Return, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := validatePeriods(periods); err != nil {
		return nil, err
	}
	if err := s.workspaceSvc.AuthorizeUserAction(ctx, userID, workspaceID, domain.RoleReadOnly); err != nil {
		logger.Warn("User not authorized to view GSTR-1", slog.String("user_id", userID), slog.String("workspace_id", workspaceID))
		return nil, err
	}

	workspace, err := s.workspaceSvc.FindWorkspaceByID(ctx, workspaceID)
	if err != nil {
		return nil, fmt.Errorf("failed to load workspace: %w", err)
	}

	invoices, err := s.periodInvoices(ctx, workspaceID, periods)
	if err != nil {
		logger.Error("Failed to fetch invoices for GSTR-1", slog.String("error", err.Error()), slog.String("workspace_id", workspaceID), slog.String("period", gst.FilingCode(periods)))
		return nil, err
	}

	ret := gst.BuildGSTR1(workspace.GSTIN, periods, invoices)

	logger.Info("GSTR-1 assembled",
		slog.String("workspace_id", workspaceID),
		slog.String("period", gst.FilingCode(periods)),
		slog.Int("b2b_parties", len(ret.B2B)),
		slog.Int("b2cs_rows", len(ret.B2CS)))
	return &ret, nil
}

// GSTR3B assembles the summary return for the filing months. A non-nil ITC
// override replaces the purchase-derived input credit figures wholesale.
func (s *gstService) GSTR3B(ctx context.Context, workspaceID string, periods []gst.ReturnPeriod, override *dto.ITCOverrideRequest, userID string) (*domain.GSTR3BReturn, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := validatePeriods(periods); err != nil {
		return nil, err
	}
	if err := s.workspaceSvc.AuthorizeUserAction(ctx, userID, workspaceID, domain.RoleReadOnly); err != nil {
		logger.Warn("User not authorized to view GSTR-3B", slog.String("user_id", userID), slog.String("workspace_id", workspaceID))
		return nil, err
	}

	workspace, err := s.workspaceSvc.FindWorkspaceByID(ctx, workspaceID)
	if err != nil {
		return nil, fmt.Errorf("failed to load workspace: %w", err)
	}

	invoices, err := s.periodInvoices(ctx, workspaceID, periods)
	if err != nil {
		logger.Error("Failed to fetch invoices for GSTR-3B", slog.String("error", err.Error()), slog.String("workspace_id", workspaceID), slog.String("period", gst.FilingCode(periods)))
		return nil, err
	}

	var bills []domain.PurchaseBill
	var itc *gst.ITCAmounts
	if override != nil {
		itc = &gst.ITCAmounts{CGST: override.CGST, SGST: override.SGST, IGST: override.IGST}
	} else {
		bills, err = s.periodBills(ctx, workspaceID, periods)
		if err != nil {
			logger.Error("Failed to fetch purchase bills for GSTR-3B", slog.String("error", err.Error()), slog.String("workspace_id", workspaceID), slog.String("period", gst.FilingCode(periods)))
			return nil, err
		}
	}

	ret := gst.BuildGSTR3B(workspace.GSTIN, periods, invoices, bills, itc)

	logger.Info("GSTR-3B assembled",
		slog.String("workspace_id", workspaceID),
		slog.String("period", gst.FilingCode(periods)),
		slog.Bool("itc_overridden", override != nil))
	return &ret, nil
}

// TDSReport aggregates TDS deducted on vendor bills in the filing months,
// grouped by Income Tax Act section.
func (s *gstService) TDSReport(ctx context.Context, workspaceID string, periods []gst.ReturnPeriod, userID string) (*domain.TDSReport, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := validatePeriods(periods); err != nil {
		return nil, err
	}
	if err := s.workspaceSvc.AuthorizeUserAction(ctx, userID, workspaceID, domain.RoleReadOnly); err != nil {
		logger.Warn("User not authorized to view TDS report", slog.String("user_id", userID), slog.String("workspace_id", workspaceID))
		return nil, err
	}

	workspace, err := s.workspaceSvc.FindWorkspaceByID(ctx, workspaceID)
	if err != nil {
		return nil, fmt.Errorf("failed to load workspace: %w", err)
	}

	bills, err := s.periodBills(ctx, workspaceID, periods)
	if err != nil {
		logger.Error("Failed to fetch purchase bills for TDS report", slog.String("error", err.Error()), slog.String("workspace_id", workspaceID), slog.String("period", gst.FilingCode(periods)))
		return nil, err
	}

	report := gst.BuildTDSReport(workspace.PAN, periods, bills)

	logger.Info("TDS report assembled",
		slog.String("workspace_id", workspaceID),
		slog.String("period", gst.FilingCode(periods)),
		slog.Int("sections", len(report.Sections)))
	return &report, nil
}

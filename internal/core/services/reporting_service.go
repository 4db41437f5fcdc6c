package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/sahajbooks/gst_books_app/internal/core/domain"
	portsrepo "github.com/sahajbooks/gst_books_app/internal/core/ports/repositories"
	portssvc "github.com/sahajbooks/gst_books_app/internal/core/ports/services"
	"github.com/sahajbooks/gst_books_app/internal/dto"
	"github.com/sahajbooks/gst_books_app/internal/middleware"
	"github.com/sahajbooks/gst_books_app/internal/utils/accounting"
	"github.com/sahajbooks/gst_books_app/internal/utils/export"
	"github.com/shopspring/decimal"
)

// reportingService implements the ReportingService interface. Every statement
// is derived from the same trial balance reduction, so the trial balance, the
// trading P&L and the balance sheet always agree with each other.
type reportingService struct {
	reportingRepo portsrepo.ReportingRepository
	tbUploadRepo  portsrepo.TrialBalanceUploadRepository
	workspaceSvc  portssvc.WorkspaceAuthorizerSvc
}

// NewReportingService creates a new reporting service.
func NewReportingService(repo portsrepo.ReportingRepository, tbUploadRepo portsrepo.TrialBalanceUploadRepository, workspaceSvc portssvc.WorkspaceAuthorizerSvc) portssvc.ReportingService {
	return &reportingService{
		reportingRepo: repo,
		tbUploadRepo:  tbUploadRepo,
		workspaceSvc:  workspaceSvc,
	}
}

// Ensure reportingService implements the ReportingService interface
var _ portssvc.ReportingService = (*reportingService)(nil)

// financialYearStart returns April 1st of the Indian financial year containing t.
func financialYearStart(t time.Time) time.Time {
	year := t.Year()
	if t.Month() < time.April {
		year--
	}
	return time.Date(year, time.April, 1, 0, 0, 0, 0, t.Location())
}

// trialBalanceAsOf builds the dated trial balance, preferring an uploaded
// snapshot for the exact date over the derivation from posted vouchers.
func (s *reportingService) trialBalanceAsOf(ctx context.Context, workspaceID string, asOf time.Time) (*domain.DatedTrialBalance, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	uploaded, err := s.tbUploadRepo.FindUpload(ctx, workspaceID, asOf)
	if err != nil {
		return nil, fmt.Errorf("failed to check for uploaded trial balance: %w", err)
	}
	if uploaded != nil {
		logger.Debug("Using uploaded trial balance", slog.String("workspace_id", workspaceID), slog.String("asOf", asOf.Format("2006-01-02")))
		return &domain.DatedTrialBalance{
			WorkspaceID: workspaceID,
			Date:        asOf,
			Rows:        uploaded,
			Source:      domain.SourceUpload,
		}, nil
	}

	vouchers, err := s.reportingRepo.FetchPostedVouchers(ctx, workspaceID, asOf)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch vouchers for trial balance: %w", err)
	}

	accounts, err := s.reportingRepo.FetchAccounts(ctx, workspaceID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch accounts for trial balance: %w", err)
	}

	meta := make(map[string]accounting.AccountMeta, len(accounts))
	for _, a := range accounts {
		meta[a.AccountID] = accounting.AccountMeta{
			Name:       a.Name,
			Type:       a.AccountType,
			Placement:  a.Placement,
			SystemCode: a.SystemCode,
		}
	}

	rows := accounting.ReduceTrialBalance(vouchers, asOf, meta)
	return &domain.DatedTrialBalance{
		WorkspaceID: workspaceID,
		Date:        asOf,
		Rows:        rows,
		Source:      domain.SourceTransactional,
	}, nil
}

// TrialBalance generates a trial balance report as of a specific date.
func (s *reportingService) TrialBalance(ctx context.Context, workspaceID string, asOf time.Time, userID string) (*domain.DatedTrialBalance, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := s.workspaceSvc.AuthorizeUserAction(ctx, userID, workspaceID, domain.RoleReadOnly); err != nil {
		logger.Warn("User not authorized to view trial balance report", slog.String("user_id", userID), slog.String("workspace_id", workspaceID))
		return nil, err
	}

	tb, err := s.trialBalanceAsOf(ctx, workspaceID, asOf)
	if err != nil {
		logger.Error("Failed to build trial balance", slog.String("error", err.Error()), slog.String("workspace_id", workspaceID), slog.String("asOf", asOf.Format(time.RFC3339)))
		return nil, err
	}

	logger.Info("Trial balance report generated",
		slog.String("workspace_id", workspaceID),
		slog.String("asOf", asOf.Format("2006-01-02")),
		slog.String("source", string(tb.Source)),
		slog.Int("row_count", len(tb.Rows)),
		slog.Bool("balanced", tb.Balanced()))
	return tb, nil
}

// UploadTrialBalance stores an externally prepared trial balance snapshot.
// Reports for that exact date then derive from the upload instead of the
// posted vouchers; the snapshot is kept even when its columns do not balance.
func (s *reportingService) UploadTrialBalance(ctx context.Context, workspaceID string, req dto.UploadTrialBalanceRequest, userID string) (*domain.DatedTrialBalance, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := s.workspaceSvc.AuthorizeUserAction(ctx, userID, workspaceID, domain.RoleMember); err != nil {
		logger.Warn("User not authorized to upload trial balance", slog.String("user_id", userID), slog.String("workspace_id", workspaceID))
		return nil, err
	}

	rows := make([]domain.TrialBalanceRow, len(req.Rows))
	for i, r := range req.Rows {
		placement := domain.PLPlacement(r.Placement)
		if placement == "" {
			placement = domain.PlacementNone
		}
		rows[i] = domain.TrialBalanceRow{
			AccountName: r.AccountName,
			AccountType: domain.AccountType(r.AccountType),
			Placement:   placement,
			Debit:       r.Debit,
			Credit:      r.Credit,
		}
	}

	if err := s.tbUploadRepo.SaveUpload(ctx, workspaceID, req.AsOf, rows, userID); err != nil {
		logger.Error("Failed to save uploaded trial balance", slog.String("error", err.Error()), slog.String("workspace_id", workspaceID))
		return nil, fmt.Errorf("failed to save uploaded trial balance: %w", err)
	}

	tb := &domain.DatedTrialBalance{
		WorkspaceID: workspaceID,
		Date:        req.AsOf,
		Rows:        rows,
		Source:      domain.SourceUpload,
	}

	if !tb.Balanced() {
		logger.Warn("Uploaded trial balance does not balance",
			slog.String("workspace_id", workspaceID),
			slog.String("asOf", req.AsOf.Format("2006-01-02")),
			slog.String("total_debit", tb.TotalDebit().String()),
			slog.String("total_credit", tb.TotalCredit().String()))
	}

	logger.Info("Trial balance uploaded", slog.String("workspace_id", workspaceID), slog.String("asOf", req.AsOf.Format("2006-01-02")), slog.Int("row_count", len(rows)))
	return tb, nil
}

// TradingPL generates the trading and profit & loss account as of a date.
func (s *reportingService) TradingPL(ctx context.Context, workspaceID string, asOf time.Time, params dto.ClosingStockParams, userID string) (*domain.TradingPLReport, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := s.workspaceSvc.AuthorizeUserAction(ctx, userID, workspaceID, domain.RoleReadOnly); err != nil {
		logger.Warn("User not authorized to view trading P&L report", slog.String("user_id", userID), slog.String("workspace_id", workspaceID))
		return nil, err
	}

	tb, err := s.trialBalanceAsOf(ctx, workspaceID, asOf)
	if err != nil {
		logger.Error("Failed to build trial balance for trading P&L", slog.String("error", err.Error()), slog.String("workspace_id", workspaceID))
		return nil, err
	}

	report := accounting.BuildTradingPL(tb.Rows, params.ClosingStock, financialYearStart(asOf), asOf)

	logger.Info("Trading P&L report generated",
		slog.String("workspace_id", workspaceID),
		slog.String("asOf", asOf.Format("2006-01-02")),
		slog.String("gross_profit", report.GrossProfit.String()),
		slog.String("net_profit", report.NetProfit.String()))
	return &report, nil
}

// withClosingStock swaps the stock row's book value for the period-end
// valuation so the balance sheet shows closing stock, not opening stock.
func withClosingStock(rows []domain.TrialBalanceRow, closingStock decimal.Decimal) []domain.TrialBalanceRow {
	if closingStock.IsZero() {
		return rows
	}
	out := make([]domain.TrialBalanceRow, len(rows))
	copy(out, rows)
	for i := range out {
		if out[i].SystemCode == domain.CodeStock {
			out[i].Debit = closingStock
			out[i].Credit = decimal.Zero
			return out
		}
	}
	out = append(out, domain.TrialBalanceRow{
		AccountName: "Stock in Hand",
		AccountType: domain.Asset,
		Placement:   domain.PlacementNone,
		SystemCode:  domain.CodeStock,
		Debit:       closingStock,
		Credit:      decimal.Zero,
	})
	return out
}

// BalanceSheet generates a balance sheet report as of a specific date. The
// period's net profit is computed from the same trial balance and carried
// into the equity section.
func (s *reportingService) BalanceSheet(ctx context.Context, workspaceID string, asOf time.Time, params dto.ClosingStockParams, userID string) (*domain.BalanceSheetReport, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := s.workspaceSvc.AuthorizeUserAction(ctx, userID, workspaceID, domain.RoleReadOnly); err != nil {
		logger.Warn("User not authorized to view balance sheet report", slog.String("user_id", userID), slog.String("workspace_id", workspaceID))
		return nil, err
	}

	tb, err := s.trialBalanceAsOf(ctx, workspaceID, asOf)
	if err != nil {
		logger.Error("Failed to build trial balance for balance sheet", slog.String("error", err.Error()), slog.String("workspace_id", workspaceID))
		return nil, err
	}

	pl := accounting.BuildTradingPL(tb.Rows, params.ClosingStock, financialYearStart(asOf), asOf)
	report := accounting.BuildBalanceSheet(withClosingStock(tb.Rows, params.ClosingStock), pl.NetProfit, asOf)

	logger.Info("Balance sheet report generated",
		slog.String("workspace_id", workspaceID),
		slog.String("asOf", asOf.Format("2006-01-02")),
		slog.String("total_assets", report.TotalAssets.String()),
		slog.String("total_liabilities", report.TotalLiabilities.String()),
		slog.String("total_equity", report.TotalEquity.String()))
	return &report, nil
}

// ExportTrialBalanceCSV renders the trial balance as CSV bytes.
func (s *reportingService) ExportTrialBalanceCSV(ctx context.Context, workspaceID string, asOf time.Time, userID string) ([]byte, error) {
	tb, err := s.TrialBalance(ctx, workspaceID, asOf, userID)
	if err != nil {
		return nil, err
	}
	return []byte(export.TrialBalanceCSV(*tb)), nil
}

// ExportTrialBalanceXLSX renders the trial balance as an Excel workbook.
func (s *reportingService) ExportTrialBalanceXLSX(ctx context.Context, workspaceID string, asOf time.Time, userID string) ([]byte, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	tb, err := s.TrialBalance(ctx, workspaceID, asOf, userID)
	if err != nil {
		return nil, err
	}

	workbook, err := export.TrialBalanceWorkbook(*tb)
	if err != nil {
		logger.Error("Failed to build trial balance workbook", slog.String("error", err.Error()), slog.String("workspace_id", workspaceID))
		return nil, fmt.Errorf("failed to build trial balance workbook: %w", err)
	}
	defer workbook.Close()

	buf, err := workbook.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to serialize trial balance workbook: %w", err)
	}
	return buf.Bytes(), nil
}

// ExportTradingPLCSV renders the trading and profit & loss account as CSV bytes.
func (s *reportingService) ExportTradingPLCSV(ctx context.Context, workspaceID string, asOf time.Time, params dto.ClosingStockParams, userID string) ([]byte, error) {
	report, err := s.TradingPL(ctx, workspaceID, asOf, params, userID)
	if err != nil {
		return nil, err
	}
	return []byte(export.TradingPLCSV(*report)), nil
}

// ExportBalanceSheetCSV renders the balance sheet as CSV bytes.
func (s *reportingService) ExportBalanceSheetCSV(ctx context.Context, workspaceID string, asOf time.Time, params dto.ClosingStockParams, userID string) ([]byte, error) {
	report, err := s.BalanceSheet(ctx, workspaceID, asOf, params, userID)
	if err != nil {
		return nil, err
	}
	return []byte(export.BalanceSheetCSV(*report)), nil
}

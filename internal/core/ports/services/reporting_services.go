package services

import (
	"context"
	"time"

	"github.com/sahajbooks/gst_books_app/internal/core/domain"
	"github.com/sahajbooks/gst_books_app/internal/dto"
)

// ReportingService defines operations for generating financial statements.
// Every statement derives from the same trial balance reduction, so the
// figures agree with each other by construction.
type ReportingService interface {
	// TrialBalance generates a trial balance as of a date. An uploaded
	// trial balance for that exact date takes precedence over the one
	// derived from vouchers.
	TrialBalance(ctx context.Context, workspaceID string, asOf time.Time, userID string) (*domain.DatedTrialBalance, error)

	// UploadTrialBalance stores an externally prepared trial balance
	// snapshot for a date.
	UploadTrialBalance(ctx context.Context, workspaceID string, req dto.UploadTrialBalanceRequest, userID string) (*domain.DatedTrialBalance, error)

	// TradingPL generates the trading and profit and loss account as of a
	// date, with optional opening and closing stock adjustments.
	TradingPL(ctx context.Context, workspaceID string, asOf time.Time, params dto.ClosingStockParams, userID string) (*domain.TradingPLReport, error)

	// BalanceSheet generates a balance sheet as of a date.
	BalanceSheet(ctx context.Context, workspaceID string, asOf time.Time, params dto.ClosingStockParams, userID string) (*domain.BalanceSheetReport, error)

	// ExportTrialBalanceCSV renders the trial balance as CSV bytes.
	ExportTrialBalanceCSV(ctx context.Context, workspaceID string, asOf time.Time, userID string) ([]byte, error)

	// ExportTrialBalanceXLSX renders the trial balance as an Excel workbook.
	ExportTrialBalanceXLSX(ctx context.Context, workspaceID string, asOf time.Time, userID string) ([]byte, error)

	// ExportTradingPLCSV renders the trading and profit and loss account as CSV bytes.
	ExportTradingPLCSV(ctx context.Context, workspaceID string, asOf time.Time, params dto.ClosingStockParams, userID string) ([]byte, error)

	// ExportBalanceSheetCSV renders the balance sheet as CSV bytes.
	ExportBalanceSheetCSV(ctx context.Context, workspaceID string, asOf time.Time, params dto.ClosingStockParams, userID string) ([]byte, error)
}

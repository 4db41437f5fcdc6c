package dto

import (
	"time"

	"github.com/sahajbooks/gst_books_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// TrialBalanceRowResponse represents a row in the trial balance report response
type TrialBalanceRowResponse struct {
	AccountID   string          `json:"accountID"`
	AccountName string          `json:"accountName"`
	AccountType string          `json:"accountType"`
	Placement   string          `json:"placement"`
	Debit       decimal.Decimal `json:"debit"`
	Credit      decimal.Decimal `json:"credit"`
}

// TrialBalanceResponse represents the trial balance report response
type TrialBalanceResponse struct {
	AsOf     string                    `json:"asOf"`
	Source   string                    `json:"source"` // transactional or upload
	Balanced bool                      `json:"balanced"`
	Rows     []TrialBalanceRowResponse `json:"rows"`
	Totals   struct {
		Debit  decimal.Decimal `json:"debit"`
		Credit decimal.Decimal `json:"credit"`
	} `json:"totals"`
}

// StatementRowResponse is one particulars line of a statement column.
type StatementRowResponse struct {
	Particulars string          `json:"particulars"`
	Amount      decimal.Decimal `json:"amount"`
	IsPlug      bool            `json:"isPlug,omitempty"`
}

// TradingPLResponse represents the two-column trading and P&L account response
type TradingPLResponse struct {
	FromDate      string                 `json:"fromDate"`
	ToDate        string                 `json:"toDate"`
	TradingDebit  []StatementRowResponse `json:"tradingDebit"`
	TradingCredit []StatementRowResponse `json:"tradingCredit"`
	GrossProfit   decimal.Decimal        `json:"grossProfit"`
	PLDebit       []StatementRowResponse `json:"plDebit"`
	PLCredit      []StatementRowResponse `json:"plCredit"`
	NetProfit     decimal.Decimal        `json:"netProfit"`
}

// AccountAmountResponse represents an account with its amount in a financial report
type AccountAmountResponse struct {
	AccountID string          `json:"accountID,omitempty"`
	Name      string          `json:"name"`
	Amount    decimal.Decimal `json:"amount"`
}

// BalanceSheetResponse represents the balance sheet report response
type BalanceSheetResponse struct {
	AsOf        string                  `json:"asOf"`
	Assets      []AccountAmountResponse `json:"assets"`
	Liabilities []AccountAmountResponse `json:"liabilities"`
	Equity      []AccountAmountResponse `json:"equity"`
	Summary     struct {
		TotalAssets      decimal.Decimal `json:"totalAssets"`
		TotalLiabilities decimal.Decimal `json:"totalLiabilities"`
		TotalEquity      decimal.Decimal `json:"totalEquity"`
	} `json:"summary"`
}

// UploadTrialBalanceRowRequest is one row of an externally prepared trial balance.
type UploadTrialBalanceRowRequest struct {
	AccountName string          `json:"accountName" binding:"required"`
	AccountType string          `json:"accountType" binding:"required,oneof=ASSET LIABILITY EQUITY INCOME EXPENSE"`
	Placement   string          `json:"placement" binding:"omitempty,oneof=DIRECT INDIRECT NONE"`
	Debit       decimal.Decimal `json:"debit"`
	Credit      decimal.Decimal `json:"credit"`
}

// UploadTrialBalanceRequest replaces the derived trial balance for a date
// with user-supplied rows. Reports for that date then derive from the upload.
type UploadTrialBalanceRequest struct {
	AsOf time.Time                      `json:"asOf" binding:"required"`
	Rows []UploadTrialBalanceRowRequest `json:"rows" binding:"required,min=1,dive"`
}

// ClosingStockParams carries the inventory valuation statements need.
type ClosingStockParams struct {
	ClosingStock decimal.Decimal `form:"closingStock"`
}

// ToTrialBalanceResponse converts a dated trial balance to a DTO response
func ToTrialBalanceResponse(tb domain.DatedTrialBalance) TrialBalanceResponse {
	response := TrialBalanceResponse{
		AsOf:     tb.Date.Format("2006-01-02"),
		Source:   string(tb.Source),
		Balanced: tb.Balanced(),
		Rows:     make([]TrialBalanceRowResponse, len(tb.Rows)),
	}

	for i, row := range tb.Rows {
		response.Rows[i] = TrialBalanceRowResponse{
			AccountID:   row.AccountID,
			AccountName: row.AccountName,
			AccountType: string(row.AccountType),
			Placement:   string(row.Placement),
			Debit:       row.Debit,
			Credit:      row.Credit,
		}
	}

	response.Totals.Debit = tb.TotalDebit()
	response.Totals.Credit = tb.TotalCredit()

	return response
}

func toStatementRows(rows []domain.StatementRow) []StatementRowResponse {
	out := make([]StatementRowResponse, len(rows))
	for i, r := range rows {
		out[i] = StatementRowResponse{Particulars: r.Particulars, Amount: r.Amount, IsPlug: r.IsPlug}
	}
	return out
}

// ToTradingPLResponse converts a domain trading P&L report to a DTO response
func ToTradingPLResponse(report *domain.TradingPLReport) TradingPLResponse {
	return TradingPLResponse{
		FromDate:      report.From.Format("2006-01-02"),
		ToDate:        report.To.Format("2006-01-02"),
		TradingDebit:  toStatementRows(report.TradingDebit),
		TradingCredit: toStatementRows(report.TradingCredit),
		GrossProfit:   report.GrossProfit,
		PLDebit:       toStatementRows(report.PLDebit),
		PLCredit:      toStatementRows(report.PLCredit),
		NetProfit:     report.NetProfit,
	}
}

// ToBalanceSheetResponse converts a domain balance sheet report to a DTO response
func ToBalanceSheetResponse(report *domain.BalanceSheetReport) BalanceSheetResponse {
	response := BalanceSheetResponse{
		AsOf:        report.AsOf.Format("2006-01-02"),
		Assets:      make([]AccountAmountResponse, len(report.Assets)),
		Liabilities: make([]AccountAmountResponse, len(report.Liabilities)),
		Equity:      make([]AccountAmountResponse, len(report.Equity)),
	}

	for i, asset := range report.Assets {
		response.Assets[i] = AccountAmountResponse{
			AccountID: asset.AccountID,
			Name:      asset.Name,
			Amount:    asset.NetAmount,
		}
	}

	for i, liability := range report.Liabilities {
		response.Liabilities[i] = AccountAmountResponse{
			AccountID: liability.AccountID,
			Name:      liability.Name,
			Amount:    liability.NetAmount,
		}
	}

	for i, equity := range report.Equity {
		response.Equity[i] = AccountAmountResponse{
			AccountID: equity.AccountID,
			Name:      equity.Name,
			Amount:    equity.NetAmount,
		}
	}

	response.Summary.TotalAssets = report.TotalAssets
	response.Summary.TotalLiabilities = report.TotalLiabilities
	response.Summary.TotalEquity = report.TotalEquity

	return response
}

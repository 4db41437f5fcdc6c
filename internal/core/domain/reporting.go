package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// TrialBalanceRow is one account's netted position: exactly one of Debit and
// Credit is non-zero, the other side having been collapsed into it.
type TrialBalanceRow struct {
	AccountID   string          `json:"accountID"`
	AccountName string          `json:"accountName"`
	AccountType AccountType     `json:"accountType"`
	Placement   PLPlacement     `json:"placement"`
	SystemCode  string          `json:"systemCode"`
	Debit       decimal.Decimal `json:"debit"`
	Credit      decimal.Decimal `json:"credit"`
}

// TrialBalanceSource records how a dated trial balance was obtained.
type TrialBalanceSource string

const (
	// SourceTransactional means the rows were reduced from posted vouchers
	// and each row can be drilled down to its entries.
	SourceTransactional TrialBalanceSource = "transactional"
	// SourceUpload means the rows were supplied by the user as an opaque
	// snapshot. No drill-down, and no guarantee the columns balance.
	SourceUpload TrialBalanceSource = "upload"
)

// DatedTrialBalance is a trial balance pinned to a cutoff date.
type DatedTrialBalance struct {
	WorkspaceID string             `json:"workspaceID"`
	Date        time.Time          `json:"date"`
	Rows        []TrialBalanceRow  `json:"rows"`
	Source      TrialBalanceSource `json:"source"`
}

// TotalDebit sums the debit column.
func (tb DatedTrialBalance) TotalDebit() decimal.Decimal {
	total := decimal.Zero
	for _, r := range tb.Rows {
		total = total.Add(r.Debit)
	}
	return total
}

// TotalCredit sums the credit column.
func (tb DatedTrialBalance) TotalCredit() decimal.Decimal {
	total := decimal.Zero
	for _, r := range tb.Rows {
		total = total.Add(r.Credit)
	}
	return total
}

// Balanced reports whether the two columns agree. Uploaded snapshots may not.
func (tb DatedTrialBalance) Balanced() bool {
	return tb.TotalDebit().Equal(tb.TotalCredit())
}

// StatementRow is one "particulars" line of a ledger-style statement column.
type StatementRow struct {
	Particulars string          `json:"particulars"`
	Amount      decimal.Decimal `json:"amount"`
	IsPlug      bool            `json:"isPlug,omitempty"` // Gross/net profit or loss balancing figure
}

// TradingPLReport is the two-column trading and profit & loss account,
// mirroring the manual bookkeeping presentation: debit side carries expenses
// and losses, credit side carries incomes and gains, and each section is
// balanced by inserting the profit/loss figure on whichever side is short.
type TradingPLReport struct {
	From time.Time `json:"from"`
	To   time.Time `json:"to"`
	// Trading section.
	TradingDebit  []StatementRow  `json:"tradingDebit"`
	TradingCredit []StatementRow  `json:"tradingCredit"`
	GrossProfit   decimal.Decimal `json:"grossProfit"` // Negative means gross loss
	// Profit & loss section.
	PLDebit   []StatementRow  `json:"plDebit"`
	PLCredit  []StatementRow  `json:"plCredit"`
	NetProfit decimal.Decimal `json:"netProfit"` // Negative means net loss
}

// AccountAmount represents an account with its net amount for financial reports.
type AccountAmount struct {
	AccountID string          `json:"accountID"`
	Name      string          `json:"name"`
	NetAmount decimal.Decimal `json:"netAmount"`
}

// BalanceSheetReport represents a balance sheet as of a date. Net profit for
// the period is carried into the equity section so the sheet balances.
type BalanceSheetReport struct {
	AsOf             time.Time       `json:"asOf"`
	Assets           []AccountAmount `json:"assets"`
	Liabilities      []AccountAmount `json:"liabilities"`
	Equity           []AccountAmount `json:"equity"`
	TotalAssets      decimal.Decimal `json:"totalAssets"`
	TotalLiabilities decimal.Decimal `json:"totalLiabilities"`
	TotalEquity      decimal.Decimal `json:"totalEquity"`
}

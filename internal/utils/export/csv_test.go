package export_test

import (
	"strings"
	"testing"
	"time"

	"github.com/sahajbooks/gst_books_app/internal/core/domain"
	"github.com/sahajbooks/gst_books_app/internal/utils/export"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleTrialBalance() domain.DatedTrialBalance {
	return domain.DatedTrialBalance{
		WorkspaceID: "ws-1",
		Date:        time.Date(2025, 6, 30, 0, 0, 0, 0, time.UTC),
		Rows: []domain.TrialBalanceRow{
			{AccountName: "Cash", AccountType: domain.Asset, Debit: decimal.NewFromInt(1500), Credit: decimal.Zero},
			{AccountName: `Ravi "RK" Traders`, AccountType: domain.Liability, Debit: decimal.Zero, Credit: decimal.NewFromInt(1500)},
		},
	}
}

func TestTrialBalanceCSV(t *testing.T) {
	out := export.TrialBalanceCSV(sampleTrialBalance())
	lines := strings.Split(strings.TrimSuffix(out, "\n"), "\n")

	require.Len(t, lines, 4)
	assert.Equal(t, `"Account","Type","Debit","Credit"`, lines[0])
	// Strings double-quoted with embedded quotes doubled; amounts bare with
	// two decimals.
	assert.Equal(t, `"Cash","ASSET",1500.00,0.00`, lines[1])
	assert.Equal(t, `"Ravi ""RK"" Traders","LIABILITY",0.00,1500.00`, lines[2])
	assert.Equal(t, `"Total","",1500.00,1500.00`, lines[3])
	assert.True(t, strings.HasSuffix(out, "\n"))
}

func TestTradingPLCSV(t *testing.T) {
	report := domain.TradingPLReport{
		TradingDebit: []domain.StatementRow{
			{Particulars: "Purchases", Amount: decimal.NewFromInt(3000)},
			{Particulars: "Gross Profit c/d", Amount: decimal.NewFromInt(2000), IsPlug: true},
		},
		TradingCredit: []domain.StatementRow{
			{Particulars: "Sales", Amount: decimal.NewFromInt(5000)},
		},
		PLDebit: []domain.StatementRow{
			{Particulars: "Rent", Amount: decimal.NewFromInt(500)},
			{Particulars: "Net Profit", Amount: decimal.NewFromInt(1500), IsPlug: true},
		},
		PLCredit: []domain.StatementRow{
			{Particulars: "Gross Profit b/d", Amount: decimal.NewFromInt(2000)},
		},
	}

	out := export.TradingPLCSV(report)
	lines := strings.Split(strings.TrimSuffix(out, "\n"), "\n")

	require.Len(t, lines, 5)
	assert.Equal(t, `"Particulars","Amount","Particulars","Amount"`, lines[0])
	assert.Equal(t, `"Purchases",3000.00,"Sales",5000.00`, lines[1])
	// The shorter column pads with empty cells.
	assert.Equal(t, `"Gross Profit c/d",2000.00,"",`, lines[2])
	assert.Equal(t, `"Rent",500.00,"Gross Profit b/d",2000.00`, lines[3])
	assert.Equal(t, `"Net Profit",1500.00,"",`, lines[4])
}

func TestBalanceSheetCSV(t *testing.T) {
	report := domain.BalanceSheetReport{
		Assets: []domain.AccountAmount{
			{Name: "Cash", NetAmount: decimal.NewFromInt(2500)},
		},
		Liabilities: []domain.AccountAmount{
			{Name: "Payables", NetAmount: decimal.NewFromInt(1200)},
		},
		Equity: []domain.AccountAmount{
			{Name: "Capital", NetAmount: decimal.NewFromInt(1000)},
			{Name: "Profit & Loss Account", NetAmount: decimal.NewFromInt(300)},
		},
		TotalAssets:      decimal.NewFromInt(2500),
		TotalLiabilities: decimal.NewFromInt(1200),
		TotalEquity:      decimal.NewFromInt(1300),
	}

	out := export.BalanceSheetCSV(report)
	lines := strings.Split(strings.TrimSuffix(out, "\n"), "\n")

	require.Len(t, lines, 7)
	assert.Equal(t, `"Assets","Cash",2500.00`, lines[1])
	assert.Equal(t, `"Equity","Profit & Loss Account",300.00`, lines[4])
	assert.Equal(t, `"Total Assets","",2500.00`, lines[5])
	assert.Equal(t, `"Total Liabilities & Equity","",2500.00`, lines[6])
}

func TestTrialBalanceWorkbook(t *testing.T) {
	f, err := export.TrialBalanceWorkbook(sampleTrialBalance())
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Trial Balance")
	require.NoError(t, err)
	require.GreaterOrEqual(t, len(rows), 3)
	assert.Equal(t, "Account", rows[0][0])
	assert.Equal(t, "Cash", rows[1][0])
}

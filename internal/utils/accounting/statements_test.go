package accounting_test

import (
	"testing"
	"time"

	"github.com/sahajbooks/gst_books_app/internal/core/domain"
	"github.com/sahajbooks/gst_books_app/internal/utils/accounting"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tbRow(name string, typ domain.AccountType, placement domain.PLPlacement, debit, credit int64) domain.TrialBalanceRow {
	return domain.TrialBalanceRow{
		AccountID:   name,
		AccountName: name,
		AccountType: typ,
		Placement:   placement,
		Debit:       decimal.NewFromInt(debit),
		Credit:      decimal.NewFromInt(credit),
	}
}

func statementAmount(rows []domain.StatementRow, particulars string) (decimal.Decimal, bool) {
	for _, r := range rows {
		if r.Particulars == particulars {
			return r.Amount, true
		}
	}
	return decimal.Zero, false
}

func TestBuildTradingPL(t *testing.T) {
	from := time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, 3, 31, 0, 0, 0, 0, time.UTC)

	stock := tbRow("Stock in Hand", domain.Asset, domain.PlacementNone, 200, 0)
	stock.SystemCode = domain.CodeStock

	rows := []domain.TrialBalanceRow{
		tbRow("Sales", domain.Income, domain.PlacementDirect, 0, 5000),
		tbRow("Purchases", domain.Expense, domain.PlacementDirect, 3000, 0),
		stock,
		tbRow("Rent", domain.Expense, domain.PlacementIndirect, 600, 0),
		tbRow("Interest Income", domain.Income, domain.PlacementIndirect, 0, 100),
	}

	report := accounting.BuildTradingPL(rows, decimal.NewFromInt(500), from, to)

	// Gross profit = (5000 + 500) - (3000 + 200) = 2300.
	assert.True(t, report.GrossProfit.Equal(decimal.NewFromInt(2300)), "gross profit %s", report.GrossProfit)
	// Net profit = 2300 + 100 - 600 = 1800.
	assert.True(t, report.NetProfit.Equal(decimal.NewFromInt(1800)), "net profit %s", report.NetProfit)

	opening, ok := statementAmount(report.TradingDebit, "Opening Stock")
	require.True(t, ok)
	assert.True(t, opening.Equal(decimal.NewFromInt(200)))

	closing, ok := statementAmount(report.TradingCredit, "Closing Stock")
	require.True(t, ok)
	assert.True(t, closing.Equal(decimal.NewFromInt(500)))

	carried, ok := statementAmount(report.PLCredit, "Gross Profit b/d")
	require.True(t, ok)
	assert.True(t, carried.Equal(report.GrossProfit))

	_, ok = statementAmount(report.PLDebit, "Net Profit")
	assert.True(t, ok)
}

func TestBuildTradingPL_Loss(t *testing.T) {
	from := time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, 3, 31, 0, 0, 0, 0, time.UTC)

	rows := []domain.TrialBalanceRow{
		tbRow("Sales", domain.Income, domain.PlacementDirect, 0, 1000),
		tbRow("Purchases", domain.Expense, domain.PlacementDirect, 1400, 0),
		tbRow("Salaries", domain.Expense, domain.PlacementIndirect, 300, 0),
	}

	report := accounting.BuildTradingPL(rows, decimal.Zero, from, to)

	assert.True(t, report.GrossProfit.Equal(decimal.NewFromInt(-400)))
	assert.True(t, report.NetProfit.Equal(decimal.NewFromInt(-700)))

	// A gross loss plugs the credit column of trading and is brought down as a
	// P&L debit; the net loss plugs the P&L credit column.
	_, ok := statementAmount(report.TradingCredit, "Gross Loss c/d")
	assert.True(t, ok)
	brought, ok := statementAmount(report.PLDebit, "Gross Loss b/d")
	require.True(t, ok)
	assert.True(t, brought.Equal(decimal.NewFromInt(400)))
	netLoss, ok := statementAmount(report.PLCredit, "Net Loss")
	require.True(t, ok)
	assert.True(t, netLoss.Equal(decimal.NewFromInt(700)))
}

func TestBuildBalanceSheet(t *testing.T) {
	asOf := time.Date(2026, 3, 31, 0, 0, 0, 0, time.UTC)
	rows := []domain.TrialBalanceRow{
		tbRow("Cash", domain.Asset, domain.PlacementNone, 2500, 0),
		tbRow("Receivables", domain.Asset, domain.PlacementNone, 1500, 0),
		tbRow("Payables", domain.Liability, domain.PlacementNone, 0, 1200),
		tbRow("Capital", domain.Equity, domain.PlacementNone, 0, 1000),
		tbRow("Sales", domain.Income, domain.PlacementDirect, 0, 9000), // excluded from the sheet
	}

	report := accounting.BuildBalanceSheet(rows, decimal.NewFromInt(1800), asOf)

	assert.True(t, report.TotalAssets.Equal(decimal.NewFromInt(4000)))
	assert.True(t, report.TotalLiabilities.Equal(decimal.NewFromInt(1200)))
	// Equity includes the period's profit: 1000 + 1800.
	assert.True(t, report.TotalEquity.Equal(decimal.NewFromInt(2800)))
	assert.True(t, report.TotalAssets.Equal(report.TotalLiabilities.Add(report.TotalEquity)))

	require.Len(t, report.Equity, 2)
	assert.Equal(t, "Profit & Loss Account", report.Equity[1].Name)
}

package cma_test

import (
	"testing"

	"github.com/sahajbooks/gst_books_app/internal/core/domain"
	"github.com/sahajbooks/gst_books_app/internal/utils/cma"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func d(v float64) decimal.Decimal { return decimal.NewFromFloat(v) }

func baseRequest() domain.CMARequest {
	return domain.CMARequest{
		WorkspaceID: "ws-1",
		History: []domain.CMAHistoricalYear{
			{
				Label:            "FY2024-25",
				Revenue:          d(1000),
				OperatingExpense: d(700),
				TermLoanBalance:  d(500),
				NetWorth:         d(300),
			},
		},
		Assumptions: []domain.CMAAssumption{
			{RevenueGrowthPct: d(10), ExpenseChangePct: d(5)},
		},
		FixedAssets: []domain.CMAFixedAsset{
			{Name: "Machinery", GrossValue: d(200), DepreciationRate: d(10), AdditionYear: 0},
		},
		LoanInterestRate: d(10),
		LoanRepayment:    d(100),
		TaxRatePct:       d(25),
		CurrentAssetPct:  d(20),
		CurrentLiabPct:   d(10),
	}
}

func TestProject_SingleYear(t *testing.T) {
	report := cma.Project(baseRequest())

	require.Len(t, report.Years, 1)
	y := report.Years[0]

	assert.Equal(t, "FY2025-26", y.Label)
	assert.True(t, y.Revenue.Equal(d(1100)), "revenue %s", y.Revenue)
	assert.True(t, y.OperatingExpense.Equal(d(735)), "expense %s", y.OperatingExpense)
	assert.True(t, y.Depreciation.Equal(d(20)), "depreciation %s", y.Depreciation)
	assert.True(t, y.NetFixedAssets.Equal(d(180)))
	assert.True(t, y.Interest.Equal(d(50)), "interest %s", y.Interest)
	assert.True(t, y.ProfitBeforeTax.Equal(d(295)))
	assert.True(t, y.Tax.Equal(d(73.75)))
	assert.True(t, y.ProfitAfterTax.Equal(d(221.25)))
	assert.True(t, y.TermLoanBalance.Equal(d(400)))
	assert.True(t, y.NetWorth.Equal(d(521.25)))
	assert.True(t, y.CurrentAssets.Equal(d(220)))
	assert.True(t, y.CurrentLiability.Equal(d(110)))

	// Cash is the balancing figure: assets must equal liabilities plus equity.
	assets := y.NetFixedAssets.Add(y.CurrentAssets).Add(y.Cash)
	liabilities := y.CurrentLiability.Add(y.TermLoanBalance).Add(y.NetWorth)
	assert.True(t, assets.Equal(liabilities), "assets %s vs liabilities %s", assets, liabilities)
	assert.True(t, y.Cash.Equal(d(631.25)))
}

func TestProject_Ratios(t *testing.T) {
	report := cma.Project(baseRequest())

	require.Len(t, report.Ratios, 1)
	r := report.Ratios[0]
	assert.Equal(t, "FY2025-26", r.Label)
	assert.Equal(t, "7.74", r.CurrentRatio)
	assert.Equal(t, "1.94", r.DSCR)
	assert.Equal(t, "6.90", r.ICR)
	assert.Equal(t, "0.98", r.TOLTNW)
	assert.Equal(t, "528.44", r.MPBF)
}

func TestProject_MultiYearCompounding(t *testing.T) {
	req := baseRequest()
	req.Assumptions = []domain.CMAAssumption{
		{RevenueGrowthPct: d(10), ExpenseChangePct: d(5)},
		{RevenueGrowthPct: d(10), ExpenseChangePct: d(5)},
	}

	report := cma.Project(req)
	require.Len(t, report.Years, 2)

	y2 := report.Years[1]
	assert.Equal(t, "FY2026-27", y2.Label)
	assert.True(t, y2.Revenue.Equal(d(1210)), "revenue %s", y2.Revenue)
	// Depreciation on written-down value: 10% of 180.
	assert.True(t, y2.Depreciation.Equal(d(18)))
	// Interest on the prior year's closing loan of 400.
	assert.True(t, y2.Interest.Equal(d(40)))
	assert.True(t, y2.TermLoanBalance.Equal(d(300)))

	// The sheet balances every projected year.
	for _, y := range report.Years {
		assets := y.NetFixedAssets.Add(y.CurrentAssets).Add(y.Cash)
		liabilities := y.CurrentLiability.Add(y.TermLoanBalance).Add(y.NetWorth)
		assert.True(t, assets.Equal(liabilities), "%s unbalanced", y.Label)
	}
}

func TestProject_LossYearPaysNoTax(t *testing.T) {
	req := baseRequest()
	req.Assumptions = []domain.CMAAssumption{
		{RevenueGrowthPct: d(-50), ExpenseChangePct: d(20)},
	}

	report := cma.Project(req)
	require.Len(t, report.Years, 1)
	y := report.Years[0]

	assert.True(t, y.ProfitBeforeTax.IsNegative())
	assert.True(t, y.Tax.IsZero())
	assert.True(t, y.ProfitAfterTax.Equal(y.ProfitBeforeTax))
	// The loss eats into net worth.
	assert.True(t, y.NetWorth.LessThan(d(300)))
}

func TestProject_NegativeCashSurfacedAsIs(t *testing.T) {
	req := baseRequest()
	req.CurrentAssetPct = d(200) // working capital requirement far beyond funding

	report := cma.Project(req)
	require.Len(t, report.Years, 1)
	assert.True(t, report.Years[0].Cash.IsNegative())
}

func TestProject_AssetAddedInLaterYear(t *testing.T) {
	req := baseRequest()
	req.Assumptions = []domain.CMAAssumption{
		{RevenueGrowthPct: d(0), ExpenseChangePct: d(0)},
		{RevenueGrowthPct: d(0), ExpenseChangePct: d(0)},
	}
	req.FixedAssets = []domain.CMAFixedAsset{
		{Name: "Vehicle", GrossValue: d(100), DepreciationRate: d(15), AdditionYear: 1},
	}

	report := cma.Project(req)
	require.Len(t, report.Years, 2)
	assert.True(t, report.Years[0].Depreciation.IsZero())
	assert.True(t, report.Years[0].NetFixedAssets.IsZero())
	assert.True(t, report.Years[1].Depreciation.Equal(d(15)))
	assert.True(t, report.Years[1].NetFixedAssets.Equal(d(85)))
}

func TestProject_EmptyHistory(t *testing.T) {
	report := cma.Project(domain.CMARequest{WorkspaceID: "ws-1"})
	assert.Empty(t, report.Years)
	assert.Empty(t, report.Ratios)
}

package cma

import (
	"fmt"

	"github.com/sahajbooks/gst_books_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// Project rolls the operating statement and balance sheet forward one period
// per assumption entry. Cash is solved algebraically as the figure that makes
// the balance sheet balance rather than built from a cash-flow statement; in
// adverse scenarios it can go negative, and that is surfaced as-is.
func Project(req domain.CMARequest) domain.CMAReport {
	report := domain.CMAReport{WorkspaceID: req.WorkspaceID}
	if len(req.History) == 0 {
		return report
	}

	base := req.History[len(req.History)-1]
	prevRevenue := base.Revenue
	prevExpense := base.OperatingExpense
	prevLoan := base.TermLoanBalance
	prevNetWorth := base.NetWorth

	// Written-down values evolve per asset from its addition year onward.
	wdv := make([]decimal.Decimal, len(req.FixedAssets))
	for i, asset := range req.FixedAssets {
		wdv[i] = asset.GrossValue
	}

	baseYear := parseLabelYear(base.Label)

	for yearIdx, assumption := range req.Assumptions {
		revenue := prevRevenue.Mul(decimal.NewFromInt(1).Add(assumption.RevenueGrowthPct.Div(hundred)))
		expense := prevExpense.Mul(decimal.NewFromInt(1).Add(assumption.ExpenseChangePct.Div(hundred)))

		depreciation := decimal.Zero
		netFixedAssets := decimal.Zero
		for i, asset := range req.FixedAssets {
			if asset.AdditionYear > yearIdx {
				continue
			}
			d := wdv[i].Mul(asset.DepreciationRate).Div(hundred)
			wdv[i] = wdv[i].Sub(d)
			depreciation = depreciation.Add(d)
			netFixedAssets = netFixedAssets.Add(wdv[i])
		}

		// Interest accrues on the prior year's closing loan balance.
		interest := prevLoan.Mul(req.LoanInterestRate).Div(hundred)

		pbt := revenue.Sub(expense).Sub(depreciation).Sub(interest)
		tax := decimal.Zero
		if pbt.IsPositive() {
			tax = pbt.Mul(req.TaxRatePct).Div(hundred)
		}
		pat := pbt.Sub(tax)

		loan := prevLoan.Sub(req.LoanRepayment)
		if loan.IsNegative() {
			loan = decimal.Zero
		}
		netWorth := prevNetWorth.Add(pat)

		currentAssets := revenue.Mul(req.CurrentAssetPct).Div(hundred)
		currentLiab := revenue.Mul(req.CurrentLiabPct).Div(hundred)

		// The balancing plug: total liabilities + equity minus every other asset.
		cash := currentLiab.Add(loan).Add(netWorth).Sub(netFixedAssets).Sub(currentAssets)

		report.Years = append(report.Years, domain.CMAProjectedYear{
			Label:            yearLabel(baseYear, yearIdx),
			Revenue:          revenue,
			OperatingExpense: expense,
			Depreciation:     depreciation,
			Interest:         interest,
			ProfitBeforeTax:  pbt,
			Tax:              tax,
			ProfitAfterTax:   pat,
			NetFixedAssets:   netFixedAssets,
			CurrentAssets:    currentAssets,
			Cash:             cash,
			CurrentLiability: currentLiab,
			TermLoanBalance:  loan,
			NetWorth:         netWorth,
		})

		report.Ratios = append(report.Ratios, buildRatios(yearLabel(baseYear, yearIdx), report.Years[len(report.Years)-1], req.LoanRepayment))

		prevRevenue = revenue
		prevExpense = expense
		prevLoan = loan
		prevNetWorth = netWorth
	}

	return report
}

func yearLabel(baseYear, offset int) string {
	start := baseYear + offset + 1
	return fmt.Sprintf("FY%d-%02d", start, (start+1)%100)
}

// parseLabelYear pulls the starting year out of a "FY2024-25" style label so
// projected years can be labelled consecutively. Unparseable labels project
// from year zero, which keeps labels unique if meaningless.
func parseLabelYear(label string) int {
	var year int
	if _, err := fmt.Sscanf(label, "FY%d", &year); err != nil {
		return 0
	}
	return year
}

package cma

import (
	"github.com/sahajbooks/gst_books_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

var mpbfFactor = decimal.NewFromFloat(0.75)

// buildRatios computes the bank-appraisal ratios for one projected year.
// Every figure is rounded to two decimals and rendered as a string for
// display. A zero denominator renders as "0.00" rather than failing the
// report.
func buildRatios(label string, y domain.CMAProjectedYear, loanRepayment decimal.Decimal) domain.CMARatios {
	totalCA := y.CurrentAssets.Add(y.Cash)

	// Current ratio: (current assets incl. cash) / current liabilities.
	currentRatio := safeDiv(totalCA, y.CurrentLiability)

	// DSCR: (PAT + depreciation + interest) / (interest + principal repayment).
	dscr := safeDiv(y.ProfitAfterTax.Add(y.Depreciation).Add(y.Interest), y.Interest.Add(loanRepayment))

	// ICR: (PBT + interest) / interest.
	icr := safeDiv(y.ProfitBeforeTax.Add(y.Interest), y.Interest)

	// TOL/TNW: total outside liabilities over tangible net worth.
	tolTnw := safeDiv(y.CurrentLiability.Add(y.TermLoanBalance), y.NetWorth)

	// MPBF, second method of lending: 75% of current assets less current
	// liabilities.
	mpbf := totalCA.Mul(mpbfFactor).Sub(y.CurrentLiability)

	return domain.CMARatios{
		Label:        label,
		CurrentRatio: currentRatio,
		DSCR:         dscr,
		ICR:          icr,
		TOLTNW:       tolTnw,
		MPBF:         mpbf.Round(2).StringFixed(2),
	}
}

func safeDiv(num, den decimal.Decimal) string {
	if den.IsZero() {
		return "0.00"
	}
	return num.Div(den).Round(2).StringFixed(2)
}

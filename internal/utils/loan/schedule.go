package loan

import (
	"github.com/sahajbooks/gst_books_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

var (
	twelve  = decimal.NewFromInt(12)
	hundred = decimal.NewFromInt(100)
	one     = decimal.NewFromInt(1)
)

// MonthlyEMI computes the fixed equated monthly installment:
// EMI = P·r·(1+r)^n / ((1+r)^n − 1) with monthly rate r over n months.
// A zero rate degrades to straight-line division of the principal.
func MonthlyEMI(principal, annualRatePct decimal.Decimal, termMonths int) decimal.Decimal {
	if termMonths <= 0 {
		return decimal.Zero
	}
	n := decimal.NewFromInt(int64(termMonths))
	if annualRatePct.IsZero() {
		return principal.Div(n).Round(2)
	}
	r := annualRatePct.Div(hundred).Div(twelve)
	factor := one.Add(r).Pow(n)
	emi := principal.Mul(r).Mul(factor).Div(factor.Sub(one))
	return emi.Round(2)
}

// BuildSchedule produces the full amortization table. Each month's interest
// accrues on the opening balance; the final installment's principal is set to
// clear the remaining balance exactly, absorbing the rounding drift of the
// fixed EMI.
func BuildSchedule(principal, annualRatePct decimal.Decimal, termMonths int) domain.LoanSchedule {
	schedule := domain.LoanSchedule{
		Principal:     principal,
		AnnualRatePct: annualRatePct,
		TermMonths:    termMonths,
		EMI:           MonthlyEMI(principal, annualRatePct, termMonths),
		TotalInterest: decimal.Zero,
	}
	if termMonths <= 0 || !principal.IsPositive() {
		return schedule
	}

	r := decimal.Zero
	if !annualRatePct.IsZero() {
		r = annualRatePct.Div(hundred).Div(twelve)
	}

	balance := principal
	for month := 1; month <= termMonths; month++ {
		interest := balance.Mul(r).Round(2)
		principalPart := schedule.EMI.Sub(interest)
		emi := schedule.EMI
		if month == termMonths || principalPart.GreaterThan(balance) {
			// Last installment clears the balance exactly.
			principalPart = balance
			emi = interest.Add(principalPart)
		}
		closing := balance.Sub(principalPart)

		schedule.Installments = append(schedule.Installments, domain.LoanInstallment{
			Month:          month,
			OpeningBalance: balance,
			EMI:            emi,
			Interest:       interest,
			Principal:      principalPart,
			ClosingBalance: closing,
		})
		schedule.TotalInterest = schedule.TotalInterest.Add(interest)
		balance = closing
		if balance.IsZero() {
			break
		}
	}
	return schedule
}

package domain

import "github.com/shopspring/decimal"

// LoanInstallment is one month of a fixed-EMI amortization schedule.
type LoanInstallment struct {
	Month          int             `json:"month"` // 1-based
	OpeningBalance decimal.Decimal `json:"openingBalance"`
	EMI            decimal.Decimal `json:"emi"`
	Interest       decimal.Decimal `json:"interest"`
	Principal      decimal.Decimal `json:"principal"`
	ClosingBalance decimal.Decimal `json:"closingBalance"`
}

// LoanSchedule is the full amortization table for a term loan.
type LoanSchedule struct {
	Principal     decimal.Decimal   `json:"principal"`
	AnnualRatePct decimal.Decimal   `json:"annualRatePct"`
	TermMonths    int               `json:"termMonths"`
	EMI           decimal.Decimal   `json:"emi"`
	TotalInterest decimal.Decimal   `json:"totalInterest"`
	Installments  []LoanInstallment `json:"installments"`
}

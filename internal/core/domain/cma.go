package domain

import "github.com/shopspring/decimal"

// CMA (Credit Monitoring Arrangement) projections roll a business's operating
// statement and balance sheet forward year by year under growth assumptions,
// producing the statements and ratios banks ask for when appraising working
// capital limits.

// CMAHistoricalYear is one audited/estimated year of actuals.
type CMAHistoricalYear struct {
	Label            string          `json:"label"` // e.g. "FY2024-25"
	Revenue          decimal.Decimal `json:"revenue"`
	OperatingExpense decimal.Decimal `json:"operatingExpense"` // Excluding depreciation and interest
	Depreciation     decimal.Decimal `json:"depreciation"`
	Interest         decimal.Decimal `json:"interest"`
	Tax              decimal.Decimal `json:"tax"`
	CurrentAssets    decimal.Decimal `json:"currentAssets"` // Excluding cash
	CurrentLiability decimal.Decimal `json:"currentLiability"`
	Cash             decimal.Decimal `json:"cash"`
	NetWorth         decimal.Decimal `json:"netWorth"`
	TermLoanBalance  decimal.Decimal `json:"termLoanBalance"`
}

// CMAFixedAsset is one asset block depreciated on its own rate from its
// addition year onward.
type CMAFixedAsset struct {
	Name             string          `json:"name"`
	GrossValue       decimal.Decimal `json:"grossValue"`
	DepreciationRate decimal.Decimal `json:"depreciationRate"` // Percent per annum, WDV
	AdditionYear     int             `json:"additionYear"`     // 0-based projected-year index; negative means already held
}

// CMAAssumption holds the per-projected-year assumption percentages.
type CMAAssumption struct {
	RevenueGrowthPct decimal.Decimal `json:"revenueGrowthPct"`
	ExpenseChangePct decimal.Decimal `json:"expenseChangePct"`
}

// CMARequest is the full input to the projection engine.
type CMARequest struct {
	WorkspaceID      string              `json:"workspaceID"`
	History          []CMAHistoricalYear `json:"history"`     // Two years, oldest first
	Assumptions      []CMAAssumption     `json:"assumptions"` // One per projected year
	FixedAssets      []CMAFixedAsset     `json:"fixedAssets"`
	LoanInterestRate decimal.Decimal     `json:"loanInterestRate"` // Flat percent on prior-year balance
	LoanRepayment    decimal.Decimal     `json:"loanRepayment"`    // Principal repaid per projected year
	TaxRatePct       decimal.Decimal     `json:"taxRatePct"`
	CurrentAssetPct  decimal.Decimal     `json:"currentAssetPct"` // Non-cash current assets as % of revenue
	CurrentLiabPct   decimal.Decimal     `json:"currentLiabPct"`  // Current liabilities as % of revenue
}

// CMAProjectedYear is one projected period's operating statement and balance
// sheet. Cash is the algebraic plug that forces the sheet to balance; it is
// deliberately not built from a cash-flow statement and may go negative.
type CMAProjectedYear struct {
	Label            string          `json:"label"`
	Revenue          decimal.Decimal `json:"revenue"`
	OperatingExpense decimal.Decimal `json:"operatingExpense"`
	Depreciation     decimal.Decimal `json:"depreciation"`
	Interest         decimal.Decimal `json:"interest"`
	ProfitBeforeTax  decimal.Decimal `json:"profitBeforeTax"`
	Tax              decimal.Decimal `json:"tax"`
	ProfitAfterTax   decimal.Decimal `json:"profitAfterTax"`
	NetFixedAssets   decimal.Decimal `json:"netFixedAssets"`
	CurrentAssets    decimal.Decimal `json:"currentAssets"`
	Cash             decimal.Decimal `json:"cash"`
	CurrentLiability decimal.Decimal `json:"currentLiability"`
	TermLoanBalance  decimal.Decimal `json:"termLoanBalance"`
	NetWorth         decimal.Decimal `json:"netWorth"`
}

// CMARatios are the appraisal ratios for one projected year, rounded to two
// decimals and rendered as strings for display.
type CMARatios struct {
	Label        string `json:"label"`
	CurrentRatio string `json:"currentRatio"`
	DSCR         string `json:"dscr"`
	ICR          string `json:"icr"`
	TOLTNW       string `json:"tolTnw"`
	MPBF         string `json:"mpbf"` // Second method of lending: 75% of (CA - CL) style computation
}

// CMAReport is the engine's full output.
type CMAReport struct {
	WorkspaceID string             `json:"workspaceID"`
	Years       []CMAProjectedYear `json:"years"`
	Ratios      []CMARatios        `json:"ratios"`
}

package dto

import (
	"github.com/sahajbooks/gst_books_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CMAHistoricalYearRequest is one audited historical year of the borrower.
type CMAHistoricalYearRequest struct {
	Label            string          `json:"label" binding:"required"` // e.g. FY2024-25
	Revenue          decimal.Decimal `json:"revenue" binding:"required"`
	OperatingExpense decimal.Decimal `json:"operatingExpense" binding:"required"`
	TermLoanBalance  decimal.Decimal `json:"termLoanBalance"`
	NetWorth         decimal.Decimal `json:"netWorth"`
}

// CMAAssumptionRequest is one projected year's growth assumptions.
type CMAAssumptionRequest struct {
	RevenueGrowthPct decimal.Decimal `json:"revenueGrowthPct"`
	ExpenseChangePct decimal.Decimal `json:"expenseChangePct"`
}

// CMAFixedAssetRequest is one fixed asset depreciated on written-down value.
type CMAFixedAssetRequest struct {
	Name             string          `json:"name" binding:"required"`
	GrossValue       decimal.Decimal `json:"grossValue" binding:"required"`
	DepreciationRate decimal.Decimal `json:"depreciationRate"` // Percent per year
	AdditionYear     int             `json:"additionYear"`     // 0-based projected year the asset enters service
}

// CMAReportRequest defines the inputs of a CMA projection.
type CMAReportRequest struct {
	History          []CMAHistoricalYearRequest `json:"history" binding:"required,min=1,dive"`
	Assumptions      []CMAAssumptionRequest     `json:"assumptions" binding:"required,min=1,dive"`
	FixedAssets      []CMAFixedAssetRequest     `json:"fixedAssets" binding:"dive"`
	LoanInterestRate decimal.Decimal            `json:"loanInterestRate"`
	LoanRepayment    decimal.Decimal            `json:"loanRepayment"` // Principal repaid per year
	TaxRatePct       decimal.Decimal            `json:"taxRatePct"`
	CurrentAssetPct  decimal.Decimal            `json:"currentAssetPct"` // As percent of revenue
	CurrentLiabPct   decimal.Decimal            `json:"currentLiabPct"`
}

// ToDomainCMARequest converts the request DTO to the domain projection input.
func ToDomainCMARequest(workspaceID string, req CMAReportRequest) domain.CMARequest {
	out := domain.CMARequest{
		WorkspaceID:      workspaceID,
		LoanInterestRate: req.LoanInterestRate,
		LoanRepayment:    req.LoanRepayment,
		TaxRatePct:       req.TaxRatePct,
		CurrentAssetPct:  req.CurrentAssetPct,
		CurrentLiabPct:   req.CurrentLiabPct,
	}
	for _, h := range req.History {
		out.History = append(out.History, domain.CMAHistoricalYear{
			Label:            h.Label,
			Revenue:          h.Revenue,
			OperatingExpense: h.OperatingExpense,
			TermLoanBalance:  h.TermLoanBalance,
			NetWorth:         h.NetWorth,
		})
	}
	for _, a := range req.Assumptions {
		out.Assumptions = append(out.Assumptions, domain.CMAAssumption{
			RevenueGrowthPct: a.RevenueGrowthPct,
			ExpenseChangePct: a.ExpenseChangePct,
		})
	}
	for _, f := range req.FixedAssets {
		out.FixedAssets = append(out.FixedAssets, domain.CMAFixedAsset{
			Name:             f.Name,
			GrossValue:       f.GrossValue,
			DepreciationRate: f.DepreciationRate,
			AdditionYear:     f.AdditionYear,
		})
	}
	return out
}

// LoanScheduleRequest defines the inputs of a loan amortization schedule.
type LoanScheduleRequest struct {
	Principal     decimal.Decimal `json:"principal" binding:"required"`
	AnnualRatePct decimal.Decimal `json:"annualRatePct"`
	TermMonths    int             `json:"termMonths" binding:"required,min=1"`
}

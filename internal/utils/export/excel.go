package export

import (
	"fmt"

	"github.com/sahajbooks/gst_books_app/internal/core/domain"
	"github.com/xuri/excelize/v2"
)

// TrialBalanceWorkbook builds an XLSX workbook with one sheet of trial
// balance rows and a totals line. The caller owns closing the file.
func TrialBalanceWorkbook(tb domain.DatedTrialBalance) (*excelize.File, error) {
	f := excelize.NewFile()
	sheet := "Trial Balance"
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return nil, fmt.Errorf("failed to name sheet: %w", err)
	}

	headers := []interface{}{"Account", "Type", "Debit", "Credit"}
	if err := f.SetSheetRow(sheet, "A1", &headers); err != nil {
		return nil, fmt.Errorf("failed to write header row: %w", err)
	}

	for i, r := range tb.Rows {
		debit, _ := r.Debit.Round(2).Float64()
		credit, _ := r.Credit.Round(2).Float64()
		cell := fmt.Sprintf("A%d", i+2)
		values := []interface{}{r.AccountName, string(r.AccountType), debit, credit}
		if err := f.SetSheetRow(sheet, cell, &values); err != nil {
			return nil, fmt.Errorf("failed to write row %d: %w", i+2, err)
		}
	}

	totalDebit, _ := tb.TotalDebit().Round(2).Float64()
	totalCredit, _ := tb.TotalCredit().Round(2).Float64()
	totalCell := fmt.Sprintf("A%d", len(tb.Rows)+2)
	totals := []interface{}{"Total", "", totalDebit, totalCredit}
	if err := f.SetSheetRow(sheet, totalCell, &totals); err != nil {
		return nil, fmt.Errorf("failed to write totals row: %w", err)
	}

	return f, nil
}

// CMAWorkbook builds an XLSX workbook with the projected operating statement,
// balance sheet and ratios across one column per projected year.
func CMAWorkbook(report domain.CMAReport) (*excelize.File, error) {
	f := excelize.NewFile()
	sheet := "CMA"
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return nil, fmt.Errorf("failed to name sheet: %w", err)
	}

	header := []interface{}{"Particulars"}
	for _, y := range report.Years {
		header = append(header, y.Label)
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return nil, fmt.Errorf("failed to write header row: %w", err)
	}

	lines := []struct {
		label string
		pick  func(domain.CMAProjectedYear) float64
	}{
		{"Revenue", func(y domain.CMAProjectedYear) float64 { v, _ := y.Revenue.Round(2).Float64(); return v }},
		{"Operating Expenses", func(y domain.CMAProjectedYear) float64 { v, _ := y.OperatingExpense.Round(2).Float64(); return v }},
		{"Depreciation", func(y domain.CMAProjectedYear) float64 { v, _ := y.Depreciation.Round(2).Float64(); return v }},
		{"Interest", func(y domain.CMAProjectedYear) float64 { v, _ := y.Interest.Round(2).Float64(); return v }},
		{"Profit Before Tax", func(y domain.CMAProjectedYear) float64 { v, _ := y.ProfitBeforeTax.Round(2).Float64(); return v }},
		{"Tax", func(y domain.CMAProjectedYear) float64 { v, _ := y.Tax.Round(2).Float64(); return v }},
		{"Profit After Tax", func(y domain.CMAProjectedYear) float64 { v, _ := y.ProfitAfterTax.Round(2).Float64(); return v }},
		{"Net Fixed Assets", func(y domain.CMAProjectedYear) float64 { v, _ := y.NetFixedAssets.Round(2).Float64(); return v }},
		{"Current Assets", func(y domain.CMAProjectedYear) float64 { v, _ := y.CurrentAssets.Round(2).Float64(); return v }},
		{"Cash & Bank", func(y domain.CMAProjectedYear) float64 { v, _ := y.Cash.Round(2).Float64(); return v }},
		{"Current Liabilities", func(y domain.CMAProjectedYear) float64 { v, _ := y.CurrentLiability.Round(2).Float64(); return v }},
		{"Term Loan", func(y domain.CMAProjectedYear) float64 { v, _ := y.TermLoanBalance.Round(2).Float64(); return v }},
		{"Net Worth", func(y domain.CMAProjectedYear) float64 { v, _ := y.NetWorth.Round(2).Float64(); return v }},
	}

	rowNum := 2
	for _, line := range lines {
		values := []interface{}{line.label}
		for _, y := range report.Years {
			values = append(values, line.pick(y))
		}
		if err := f.SetSheetRow(sheet, fmt.Sprintf("A%d", rowNum), &values); err != nil {
			return nil, fmt.Errorf("failed to write %s row: %w", line.label, err)
		}
		rowNum++
	}

	ratioLines := []struct {
		label string
		pick  func(domain.CMARatios) string
	}{
		{"Current Ratio", func(r domain.CMARatios) string { return r.CurrentRatio }},
		{"DSCR", func(r domain.CMARatios) string { return r.DSCR }},
		{"ICR", func(r domain.CMARatios) string { return r.ICR }},
		{"TOL/TNW", func(r domain.CMARatios) string { return r.TOLTNW }},
		{"MPBF", func(r domain.CMARatios) string { return r.MPBF }},
	}
	rowNum++ // blank separator row
	for _, line := range ratioLines {
		values := []interface{}{line.label}
		for _, r := range report.Ratios {
			values = append(values, line.pick(r))
		}
		if err := f.SetSheetRow(sheet, fmt.Sprintf("A%d", rowNum), &values); err != nil {
			return nil, fmt.Errorf("failed to write %s row: %w", line.label, err)
		}
		rowNum++
	}

	return f, nil
}

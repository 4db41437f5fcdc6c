package export

import (
	"strings"

	"github.com/sahajbooks/gst_books_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CSV output contract: comma-joined rows terminated by \n, with string fields
// double-quoted (embedded quotes doubled) and numeric fields bare. This exact
// shape is what downstream spreadsheet imports expect, so it is built by hand
// rather than through encoding/csv's quote-only-when-needed behaviour.

func quote(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}

func row(fields ...string) string {
	return strings.Join(fields, ",") + "\n"
}

func amount(d decimal.Decimal) string {
	return d.StringFixed(2)
}

// TrialBalanceCSV renders a dated trial balance with a totals row.
func TrialBalanceCSV(tb domain.DatedTrialBalance) string {
	var b strings.Builder
	b.WriteString(row(quote("Account"), quote("Type"), quote("Debit"), quote("Credit")))
	for _, r := range tb.Rows {
		b.WriteString(row(quote(r.AccountName), quote(string(r.AccountType)), amount(r.Debit), amount(r.Credit)))
	}
	b.WriteString(row(quote("Total"), quote(""), amount(tb.TotalDebit()), amount(tb.TotalCredit())))
	return b.String()
}

// TradingPLCSV renders the two-column trading and P&L account side by side.
func TradingPLCSV(report domain.TradingPLReport) string {
	var b strings.Builder
	b.WriteString(row(quote("Particulars"), quote("Amount"), quote("Particulars"), quote("Amount")))

	writeSection := func(debit, credit []domain.StatementRow) {
		n := len(debit)
		if len(credit) > n {
			n = len(credit)
		}
		for i := 0; i < n; i++ {
			var dName, dAmt, cName, cAmt string
			if i < len(debit) {
				dName, dAmt = debit[i].Particulars, amount(debit[i].Amount)
			}
			if i < len(credit) {
				cName, cAmt = credit[i].Particulars, amount(credit[i].Amount)
			}
			b.WriteString(row(quote(dName), dAmt, quote(cName), cAmt))
		}
	}

	writeSection(report.TradingDebit, report.TradingCredit)
	writeSection(report.PLDebit, report.PLCredit)
	return b.String()
}

// BalanceSheetCSV renders assets against liabilities and equity.
func BalanceSheetCSV(report domain.BalanceSheetReport) string {
	var b strings.Builder
	b.WriteString(row(quote("Section"), quote("Account"), quote("Amount")))
	for _, a := range report.Assets {
		b.WriteString(row(quote("Assets"), quote(a.Name), amount(a.NetAmount)))
	}
	for _, l := range report.Liabilities {
		b.WriteString(row(quote("Liabilities"), quote(l.Name), amount(l.NetAmount)))
	}
	for _, e := range report.Equity {
		b.WriteString(row(quote("Equity"), quote(e.Name), amount(e.NetAmount)))
	}
	b.WriteString(row(quote("Total Assets"), quote(""), amount(report.TotalAssets)))
	b.WriteString(row(quote("Total Liabilities & Equity"), quote(""), amount(report.TotalLiabilities.Add(report.TotalEquity))))
	return b.String()
}

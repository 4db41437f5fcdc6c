package accounting

import (
	"time"

	"github.com/sahajbooks/gst_books_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// netCredit collapses a row to its credit-side magnitude (credit - debit).
func netCredit(r domain.TrialBalanceRow) decimal.Decimal {
	return r.Credit.Sub(r.Debit)
}

// netDebit collapses a row to its debit-side magnitude (debit - credit).
func netDebit(r domain.TrialBalanceRow) decimal.Decimal {
	return r.Debit.Sub(r.Credit)
}

// BuildTradingPL derives the two-column trading and profit & loss account
// from trial balance rows. closingStock comes from inventory valuation, not
// from the trial balance itself.
//
// Gross profit = (sales + closing stock) - (opening stock + purchases + direct
// expenses); net profit = gross profit + indirect incomes - indirect expenses.
// A negative figure is presented as a gross/net loss row on the opposite
// column, balancing each section the way a hand-written ledger would.
func BuildTradingPL(rows []domain.TrialBalanceRow, closingStock decimal.Decimal, from, to time.Time) domain.TradingPLReport {
	report := domain.TradingPLReport{From: from, To: to}

	tradingDebitTotal := decimal.Zero
	tradingCreditTotal := decimal.Zero
	plDebitTotal := decimal.Zero
	plCreditTotal := decimal.Zero

	for _, r := range rows {
		switch r.AccountType {
		case domain.Income:
			amount := netCredit(r)
			row := domain.StatementRow{Particulars: r.AccountName, Amount: amount}
			if r.Placement == domain.PlacementDirect {
				report.TradingCredit = append(report.TradingCredit, row)
				tradingCreditTotal = tradingCreditTotal.Add(amount)
			} else {
				report.PLCredit = append(report.PLCredit, row)
				plCreditTotal = plCreditTotal.Add(amount)
			}
		case domain.Expense:
			amount := netDebit(r)
			row := domain.StatementRow{Particulars: r.AccountName, Amount: amount}
			if r.Placement == domain.PlacementDirect {
				report.TradingDebit = append(report.TradingDebit, row)
				tradingDebitTotal = tradingDebitTotal.Add(amount)
			} else {
				report.PLDebit = append(report.PLDebit, row)
				plDebitTotal = plDebitTotal.Add(amount)
			}
		case domain.Asset:
			// Opening stock sits on the trading debit side.
			if r.SystemCode == domain.CodeStock {
				amount := netDebit(r)
				report.TradingDebit = append(report.TradingDebit, domain.StatementRow{Particulars: "Opening Stock", Amount: amount})
				tradingDebitTotal = tradingDebitTotal.Add(amount)
			}
		}
	}

	if closingStock.IsPositive() {
		report.TradingCredit = append(report.TradingCredit, domain.StatementRow{Particulars: "Closing Stock", Amount: closingStock})
		tradingCreditTotal = tradingCreditTotal.Add(closingStock)
	}

	grossProfit := tradingCreditTotal.Sub(tradingDebitTotal)
	report.GrossProfit = grossProfit
	if grossProfit.IsNegative() {
		// Gross loss: plug on the credit side of trading, carried to P&L debit.
		report.TradingCredit = append(report.TradingCredit, domain.StatementRow{Particulars: "Gross Loss c/d", Amount: grossProfit.Neg(), IsPlug: true})
		report.PLDebit = append(report.PLDebit, domain.StatementRow{Particulars: "Gross Loss b/d", Amount: grossProfit.Neg()})
		plDebitTotal = plDebitTotal.Add(grossProfit.Neg())
	} else {
		report.TradingDebit = append(report.TradingDebit, domain.StatementRow{Particulars: "Gross Profit c/d", Amount: grossProfit, IsPlug: true})
		report.PLCredit = append(report.PLCredit, domain.StatementRow{Particulars: "Gross Profit b/d", Amount: grossProfit})
		plCreditTotal = plCreditTotal.Add(grossProfit)
	}

	netProfit := plCreditTotal.Sub(plDebitTotal)
	report.NetProfit = netProfit
	if netProfit.IsNegative() {
		report.PLCredit = append(report.PLCredit, domain.StatementRow{Particulars: "Net Loss", Amount: netProfit.Neg(), IsPlug: true})
	} else {
		report.PLDebit = append(report.PLDebit, domain.StatementRow{Particulars: "Net Profit", Amount: netProfit, IsPlug: true})
	}

	return report
}

// BuildBalanceSheet derives the balance sheet from trial balance rows,
// carrying the period's net profit into equity so the sheet balances.
func BuildBalanceSheet(rows []domain.TrialBalanceRow, netProfit decimal.Decimal, asOf time.Time) domain.BalanceSheetReport {
	report := domain.BalanceSheetReport{
		AsOf:             asOf,
		TotalAssets:      decimal.Zero,
		TotalLiabilities: decimal.Zero,
		TotalEquity:      decimal.Zero,
	}

	for _, r := range rows {
		switch r.AccountType {
		case domain.Asset:
			amount := netDebit(r)
			report.Assets = append(report.Assets, domain.AccountAmount{AccountID: r.AccountID, Name: r.AccountName, NetAmount: amount})
			report.TotalAssets = report.TotalAssets.Add(amount)
		case domain.Liability:
			amount := netCredit(r)
			report.Liabilities = append(report.Liabilities, domain.AccountAmount{AccountID: r.AccountID, Name: r.AccountName, NetAmount: amount})
			report.TotalLiabilities = report.TotalLiabilities.Add(amount)
		case domain.Equity:
			amount := netCredit(r)
			report.Equity = append(report.Equity, domain.AccountAmount{AccountID: r.AccountID, Name: r.AccountName, NetAmount: amount})
			report.TotalEquity = report.TotalEquity.Add(amount)
		}
	}

	if !netProfit.IsZero() {
		report.Equity = append(report.Equity, domain.AccountAmount{Name: "Profit & Loss Account", NetAmount: netProfit})
		report.TotalEquity = report.TotalEquity.Add(netProfit)
	}

	return report
}

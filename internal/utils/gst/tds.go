package gst

import (
	"sort"

	"github.com/sahajbooks/gst_books_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// BuildTDSReport aggregates TDS deducted on purchase bills in the filing
// months, grouped by the Income Tax Act section the deduction was made under.
func BuildTDSReport(pan string, periods []ReturnPeriod, bills []domain.PurchaseBill) domain.TDSReport {
	type agg struct {
		payees map[string]struct{}
		paid   decimal.Decimal
		tds    decimal.Decimal
	}
	bySection := make(map[string]*agg)
	total := decimal.Zero

	for _, bill := range bills {
		if !PeriodsContain(periods, bill.BillDate) || bill.TDSSection == "" || !bill.TDSAmount.IsPositive() {
			continue
		}
		a, ok := bySection[bill.TDSSection]
		if !ok {
			a = &agg{payees: make(map[string]struct{}), paid: decimal.Zero, tds: decimal.Zero}
			bySection[bill.TDSSection] = a
		}
		payee := bill.VendorAccountID
		if payee == "" {
			payee = bill.VendorName
		}
		a.payees[payee] = struct{}{}
		a.paid = a.paid.Add(bill.TotalAmount)
		a.tds = a.tds.Add(bill.TDSAmount)
		total = total.Add(bill.TDSAmount)
	}

	sections := make([]domain.TDSSectionSummary, 0, len(bySection))
	for section, a := range bySection {
		sections = append(sections, domain.TDSSectionSummary{
			Section:     section,
			PayeeCount:  len(a.payees),
			TotalPaid:   a.paid,
			TDSDeducted: a.tds,
		})
	}
	sort.Slice(sections, func(i, j int) bool { return sections[i].Section < sections[j].Section })

	return domain.TDSReport{
		PAN:      pan,
		Period:   FilingCode(periods),
		Sections: sections,
		Total:    total,
	}
}

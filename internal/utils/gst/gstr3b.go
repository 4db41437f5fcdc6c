package gst

import (
	"github.com/sahajbooks/gst_books_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// ITCAmounts is the eligible input tax credit per head. A non-nil override in
// the request replaces the computed figures wholesale; it is an explicit field
// rather than any ambient accepted-ITC state.
type ITCAmounts struct {
	CGST decimal.Decimal
	SGST decimal.Decimal
	IGST decimal.Decimal
}

// BuildGSTR3B assembles the summary return for the given filing months:
// section 3.1(a) from posted invoices, section 4(A) ITC from purchase bills,
// and the net tax payable per head floored at zero. Excess ITC is carried,
// never surfaced as a refund here.
func BuildGSTR3B(gstin string, periods []ReturnPeriod, invoices []domain.Invoice, bills []domain.PurchaseBill, itcOverride *ITCAmounts) domain.GSTR3BReturn {
	outTxval := decimal.Zero
	outCGST := decimal.Zero
	outSGST := decimal.Zero
	outIGST := decimal.Zero

	for _, inv := range invoices {
		if !PeriodsContain(periods, inv.InvoiceDate) {
			continue
		}
		outTxval = outTxval.Add(inv.TaxableValue)
		outCGST = outCGST.Add(inv.CGST)
		outSGST = outSGST.Add(inv.SGST)
		outIGST = outIGST.Add(inv.IGST)
	}

	itc := ITCAmounts{CGST: decimal.Zero, SGST: decimal.Zero, IGST: decimal.Zero}
	if itcOverride != nil {
		itc = *itcOverride
	} else {
		for _, bill := range bills {
			if !PeriodsContain(periods, bill.BillDate) || !bill.ITCEligible() {
				continue
			}
			// Same state-code heuristic as outward supplies, from the buyer's
			// perspective: an out-of-state vendor charged IGST.
			if IsInterstate(bill.VendorGSTIN, gstin) {
				itc.IGST = itc.IGST.Add(bill.GSTAmount)
			} else {
				half := bill.GSTAmount.Div(two)
				itc.CGST = itc.CGST.Add(half)
				itc.SGST = itc.SGST.Add(half)
			}
		}
	}

	return domain.GSTR3BReturn{
		Gstin:     gstin,
		RetPeriod: FilingCode(periods),
		SupDetails: domain.GSTR3BSupDetails{
			OsupDet: domain.GSTR3BTaxHeads{
				Txval: round2(outTxval),
				Camt:  round2(outCGST),
				Samt:  round2(outSGST),
				Iamt:  round2(outIGST),
			},
		},
		ItcElg: domain.GSTR3BITC{
			ItcAvl: []domain.GSTR3BITCAvail{{
				Ty:   "OTH",
				Camt: round2(itc.CGST),
				Samt: round2(itc.SGST),
				Iamt: round2(itc.IGST),
			}},
		},
		TaxPay: domain.GSTR3BTaxHeads{
			Camt: round2(payable(outCGST, itc.CGST)),
			Samt: round2(payable(outSGST, itc.SGST)),
			Iamt: round2(payable(outIGST, itc.IGST)),
		},
	}
}

// payable nets ITC against outward tax, flooring at zero.
func payable(outward, itc decimal.Decimal) decimal.Decimal {
	net := outward.Sub(itc)
	if net.IsNegative() {
		return decimal.Zero
	}
	return net
}

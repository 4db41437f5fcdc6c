package gst

import "github.com/shopspring/decimal"

var two = decimal.NewFromInt(2)
var hundred = decimal.NewFromInt(100)

// StateCode returns the two-character GST state code of a GSTIN, or the empty
// string for anything shorter.
func StateCode(gstin string) string {
	if len(gstin) < 2 {
		return ""
	}
	return gstin[:2]
}

// IsInterstate applies the state-code heuristic: a supply is interstate when
// both parties carry GSTINs with differing state prefixes. A missing buyer
// GSTIN is treated as an in-state consumer sale.
func IsInterstate(sellerGSTIN, buyerGSTIN string) bool {
	seller := StateCode(sellerGSTIN)
	buyer := StateCode(buyerGSTIN)
	if seller == "" || buyer == "" {
		return false
	}
	return seller != buyer
}

// Split holds the three GST components of one taxable amount.
type Split struct {
	CGST decimal.Decimal
	SGST decimal.Decimal
	IGST decimal.Decimal
}

// Total returns the combined tax of the split.
func (s Split) Total() decimal.Decimal {
	return s.CGST.Add(s.SGST).Add(s.IGST)
}

// SplitTax divides the tax on a taxable value between the GST heads:
// intrastate supplies split the rate 50/50 into CGST and SGST, interstate
// supplies charge the full rate as IGST.
func SplitTax(taxable, ratePct decimal.Decimal, interstate bool) Split {
	tax := taxable.Mul(ratePct).Div(hundred)
	if interstate {
		return Split{CGST: decimal.Zero, SGST: decimal.Zero, IGST: tax}
	}
	half := tax.Div(two)
	return Split{CGST: half, SGST: half, IGST: decimal.Zero}
}

// EffectiveRate computes total-tax/taxable*100. A zero taxable value yields
// rate 0 rather than dividing by zero; such rows land in the 0% bucket.
func EffectiveRate(totalTax, taxable decimal.Decimal) decimal.Decimal {
	if taxable.IsZero() {
		return decimal.Zero
	}
	return totalTax.Div(taxable).Mul(hundred)
}

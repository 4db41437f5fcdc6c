package gst

import (
	"sort"

	"github.com/sahajbooks/gst_books_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// round2 converts a decimal to the two-decimal float the portal schema uses.
func round2(d decimal.Decimal) float64 {
	f, _ := d.Round(2).Float64()
	return f
}

// BuildGSTR1 assembles the outward-supply return for the given filing
// months: one for monthly filers, a quarter's three for quarterly filers.
// B2B invoices (buyer has a GSTIN) are listed invoice by invoice, grouped
// under the buyer's GSTIN; B2C invoices are aggregated into per-rate B2CS
// summary rows keyed on effective rate and supply type.
func BuildGSTR1(gstin string, periods []ReturnPeriod, invoices []domain.Invoice) domain.GSTR1Return {
	ret := domain.GSTR1Return{
		Gstin: gstin,
		Fp:    FilingCode(periods),
		B2B:   []domain.GSTR1B2B{},
		B2CS:  []domain.GSTR1B2CS{},
	}

	b2bByCtin := make(map[string][]domain.GSTR1Invoice)

	type b2csKey struct {
		splyTy string
		pos    string
		rate   string
	}
	type b2csAgg struct {
		rate   decimal.Decimal
		txval  decimal.Decimal
		camt   decimal.Decimal
		samt   decimal.Decimal
		iamt   decimal.Decimal
	}
	b2cs := make(map[b2csKey]*b2csAgg)

	grossTurnover := decimal.Zero

	for _, inv := range invoices {
		if !PeriodsContain(periods, inv.InvoiceDate) {
			continue
		}
		grossTurnover = grossTurnover.Add(inv.TaxableValue)

		if inv.IsB2B() {
			b2bByCtin[inv.CustomerGSTIN] = append(b2bByCtin[inv.CustomerGSTIN], b2bInvoice(inv))
			continue
		}

		splyTy := "INTRA"
		if inv.IGST.IsPositive() {
			splyTy = "INTER"
		}
		rate := EffectiveRate(inv.TotalTax(), inv.TaxableValue).Round(2)
		key := b2csKey{splyTy: splyTy, pos: inv.PlaceOfSupply, rate: rate.String()}
		agg, ok := b2cs[key]
		if !ok {
			agg = &b2csAgg{rate: rate, txval: decimal.Zero, camt: decimal.Zero, samt: decimal.Zero, iamt: decimal.Zero}
			b2cs[key] = agg
		}
		agg.txval = agg.txval.Add(inv.TaxableValue)
		agg.camt = agg.camt.Add(inv.CGST)
		agg.samt = agg.samt.Add(inv.SGST)
		agg.iamt = agg.iamt.Add(inv.IGST)
	}

	for ctin, invs := range b2bByCtin {
		sort.Slice(invs, func(i, j int) bool { return invs[i].Inum < invs[j].Inum })
		ret.B2B = append(ret.B2B, domain.GSTR1B2B{Ctin: ctin, Inv: invs})
	}
	sort.Slice(ret.B2B, func(i, j int) bool { return ret.B2B[i].Ctin < ret.B2B[j].Ctin })

	for key, agg := range b2cs {
		ret.B2CS = append(ret.B2CS, domain.GSTR1B2CS{
			SplyTy: key.splyTy,
			Rt:     round2(agg.rate),
			Typ:    "OE",
			Pos:    key.pos,
			Txval:  round2(agg.txval),
			Camt:   round2(agg.camt),
			Samt:   round2(agg.samt),
			Iamt:   round2(agg.iamt),
		})
	}
	sort.Slice(ret.B2CS, func(i, j int) bool {
		if ret.B2CS[i].SplyTy != ret.B2CS[j].SplyTy {
			return ret.B2CS[i].SplyTy < ret.B2CS[j].SplyTy
		}
		return ret.B2CS[i].Rt < ret.B2CS[j].Rt
	})

	ret.Gt = round2(grossTurnover)
	return ret
}

// b2bInvoice renders one invoice for the B2B section, with its lines
// collapsed into per-rate item buckets.
func b2bInvoice(inv domain.Invoice) domain.GSTR1Invoice {
	type rateAgg struct {
		txval decimal.Decimal
		camt  decimal.Decimal
		samt  decimal.Decimal
		iamt  decimal.Decimal
	}
	byRate := make(map[string]*rateAgg)
	rates := []decimal.Decimal{}

	for _, line := range inv.Lines {
		key := line.GSTRate.Round(2).String()
		agg, ok := byRate[key]
		if !ok {
			agg = &rateAgg{txval: decimal.Zero, camt: decimal.Zero, samt: decimal.Zero, iamt: decimal.Zero}
			byRate[key] = agg
			rates = append(rates, line.GSTRate.Round(2))
		}
		agg.txval = agg.txval.Add(line.TaxableValue)
		agg.camt = agg.camt.Add(line.CGST)
		agg.samt = agg.samt.Add(line.SGST)
		agg.iamt = agg.iamt.Add(line.IGST)
	}

	// An invoice stored without lines still files as a single bucket.
	if len(rates) == 0 {
		rates = append(rates, EffectiveRate(inv.TotalTax(), inv.TaxableValue).Round(2))
		byRate[rates[0].String()] = &rateAgg{txval: inv.TaxableValue, camt: inv.CGST, samt: inv.SGST, iamt: inv.IGST}
	}

	sort.Slice(rates, func(i, j int) bool { return rates[i].LessThan(rates[j]) })

	items := make([]domain.GSTR1Item, 0, len(rates))
	for i, rate := range rates {
		agg := byRate[rate.String()]
		items = append(items, domain.GSTR1Item{
			Num: i + 1,
			ItmDet: domain.GSTR1ItemDetail{
				Rt:    round2(rate),
				Txval: round2(agg.txval),
				Camt:  round2(agg.camt),
				Samt:  round2(agg.samt),
				Iamt:  round2(agg.iamt),
			},
		})
	}

	return domain.GSTR1Invoice{
		Inum:   inv.InvoiceNumber,
		Idt:    inv.InvoiceDate.Format("02-01-2006"),
		Val:    round2(inv.TotalAmount),
		Pos:    inv.PlaceOfSupply,
		RChrg:  "N",
		InvTyp: "R",
		Itms:   items,
	}
}

package gst_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/sahajbooks/gst_books_app/internal/core/domain"
	"github.com/sahajbooks/gst_books_app/internal/utils/gst"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func may2025() []gst.ReturnPeriod {
	return []gst.ReturnPeriod{{Month: time.May, Year: 2025}}
}

func b2bInvoice(num, ctin string, day int, taxable, cgst, sgst, igst int64) domain.Invoice {
	taxableD := decimal.NewFromInt(taxable)
	total := taxableD.Add(decimal.NewFromInt(cgst)).Add(decimal.NewFromInt(sgst)).Add(decimal.NewFromInt(igst))
	return domain.Invoice{
		InvoiceNumber: num,
		InvoiceDate:   time.Date(2025, 5, day, 0, 0, 0, 0, time.UTC),
		CustomerGSTIN: ctin,
		PlaceOfSupply: gst.StateCode(ctin),
		TaxableValue:  taxableD,
		CGST:          decimal.NewFromInt(cgst),
		SGST:          decimal.NewFromInt(sgst),
		IGST:          decimal.NewFromInt(igst),
		TotalAmount:   total,
		Status:        domain.DocumentPosted,
	}
}

func TestBuildGSTR1_B2BGrouping(t *testing.T) {
	invoices := []domain.Invoice{
		b2bInvoice("INV-002", buyerKA, 12, 2000, 180, 180, 0),
		b2bInvoice("INV-001", buyerKA, 5, 1000, 90, 90, 0),
		b2bInvoice("INV-003", buyerMH, 20, 500, 0, 0, 90),
		// Outside the period, must be excluded.
		{
			InvoiceNumber: "INV-APR",
			InvoiceDate:   time.Date(2025, 4, 30, 0, 0, 0, 0, time.UTC),
			CustomerGSTIN: buyerKA,
			TaxableValue:  decimal.NewFromInt(9999),
		},
	}

	ret := gst.BuildGSTR1(sellerKA, may2025(), invoices)

	assert.Equal(t, sellerKA, ret.Gstin)
	assert.Equal(t, "052025", ret.Fp)
	assert.InDelta(t, 3500.0, ret.Gt, 0.001)

	require.Len(t, ret.B2B, 2)
	// Groups sorted by counterparty GSTIN, invoices by number within a group.
	assert.Equal(t, buyerMH, ret.B2B[0].Ctin)
	assert.Equal(t, buyerKA, ret.B2B[1].Ctin)
	require.Len(t, ret.B2B[1].Inv, 2)
	assert.Equal(t, "INV-001", ret.B2B[1].Inv[0].Inum)
	assert.Equal(t, "05-05-2025", ret.B2B[1].Inv[0].Idt)
	assert.InDelta(t, 1180.0, ret.B2B[1].Inv[0].Val, 0.001)
	assert.Equal(t, "N", ret.B2B[1].Inv[0].RChrg)
	assert.Equal(t, "R", ret.B2B[1].Inv[0].InvTyp)

	// A line-less invoice still files one item bucket at its effective rate.
	items := ret.B2B[1].Inv[0].Itms
	require.Len(t, items, 1)
	assert.Equal(t, 1, items[0].Num)
	assert.InDelta(t, 18.0, items[0].ItmDet.Rt, 0.001)
	assert.InDelta(t, 1000.0, items[0].ItmDet.Txval, 0.001)
	assert.InDelta(t, 90.0, items[0].ItmDet.Camt, 0.001)
	assert.InDelta(t, 90.0, items[0].ItmDet.Samt, 0.001)
}

func TestBuildGSTR1_B2BLineBuckets(t *testing.T) {
	inv := domain.Invoice{
		InvoiceNumber: "INV-010",
		InvoiceDate:   time.Date(2025, 5, 8, 0, 0, 0, 0, time.UTC),
		CustomerGSTIN: buyerKA,
		TaxableValue:  decimal.NewFromInt(3000),
		CGST:          decimal.NewFromInt(195),
		SGST:          decimal.NewFromInt(195),
		TotalAmount:   decimal.NewFromInt(3390),
		Lines: []domain.InvoiceLine{
			{GSTRate: decimal.NewFromInt(18), TaxableValue: decimal.NewFromInt(1000), CGST: decimal.NewFromInt(90), SGST: decimal.NewFromInt(90)},
			{GSTRate: decimal.NewFromInt(5), TaxableValue: decimal.NewFromInt(2000), CGST: decimal.NewFromInt(50), SGST: decimal.NewFromInt(50)},
			{GSTRate: decimal.NewFromInt(18), TaxableValue: decimal.NewFromInt(0), CGST: decimal.Zero, SGST: decimal.Zero},
		},
	}

	ret := gst.BuildGSTR1(sellerKA, may2025(), []domain.Invoice{inv})

	require.Len(t, ret.B2B, 1)
	items := ret.B2B[0].Inv[0].Itms
	// Two rate buckets, ascending by rate, numbered from 1.
	require.Len(t, items, 2)
	assert.Equal(t, 1, items[0].Num)
	assert.InDelta(t, 5.0, items[0].ItmDet.Rt, 0.001)
	assert.InDelta(t, 2000.0, items[0].ItmDet.Txval, 0.001)
	assert.Equal(t, 2, items[1].Num)
	assert.InDelta(t, 18.0, items[1].ItmDet.Rt, 0.001)
	assert.InDelta(t, 1000.0, items[1].ItmDet.Txval, 0.001)
	assert.InDelta(t, 90.0, items[1].ItmDet.Camt, 0.001)
}

func TestBuildGSTR1_B2CSAggregation(t *testing.T) {
	consumer := func(num string, day int, taxable, cgst, sgst, igst int64, pos string) domain.Invoice {
		inv := b2bInvoice(num, "", day, taxable, cgst, sgst, igst)
		inv.PlaceOfSupply = pos
		return inv
	}

	invoices := []domain.Invoice{
		consumer("C-1", 3, 1000, 90, 90, 0, "29"),
		consumer("C-2", 9, 500, 45, 45, 0, "29"),
		consumer("C-3", 15, 200, 5, 5, 0, "29"),  // 5% bucket
		consumer("C-4", 21, 800, 0, 0, 144, "27"), // interstate
	}

	ret := gst.BuildGSTR1(sellerKA, may2025(), invoices)

	assert.Empty(t, ret.B2B)
	require.Len(t, ret.B2CS, 3)

	// Sorted by supply type then rate: INTER/18, INTRA/5, INTRA/18.
	assert.Equal(t, "INTER", ret.B2CS[0].SplyTy)
	assert.InDelta(t, 18.0, ret.B2CS[0].Rt, 0.001)
	assert.Equal(t, "27", ret.B2CS[0].Pos)
	assert.InDelta(t, 144.0, ret.B2CS[0].Iamt, 0.001)

	assert.Equal(t, "INTRA", ret.B2CS[1].SplyTy)
	assert.InDelta(t, 5.0, ret.B2CS[1].Rt, 0.001)

	assert.Equal(t, "INTRA", ret.B2CS[2].SplyTy)
	assert.InDelta(t, 18.0, ret.B2CS[2].Rt, 0.001)
	assert.InDelta(t, 1500.0, ret.B2CS[2].Txval, 0.001)
	assert.InDelta(t, 135.0, ret.B2CS[2].Camt, 0.001)
	assert.Equal(t, "OE", ret.B2CS[2].Typ)
}

func TestGSTR1_PortalFieldNames(t *testing.T) {
	ret := gst.BuildGSTR1(sellerKA, may2025(), []domain.Invoice{
		b2bInvoice("INV-001", buyerKA, 5, 1000, 90, 90, 0),
	})

	raw, err := json.Marshal(ret)
	require.NoError(t, err)

	for _, field := range []string{
		`"gstin"`, `"fp"`, `"gt"`, `"b2b"`, `"b2cs"`, `"ctin"`, `"inv"`,
		`"inum"`, `"idt"`, `"val"`, `"pos"`, `"rchrg"`, `"inv_typ"`,
		`"itms"`, `"num"`, `"itm_det"`, `"rt"`, `"txval"`, `"camt"`, `"samt"`, `"iamt"`, `"csamt"`,
	} {
		assert.Contains(t, string(raw), field)
	}
}

func TestBuildGSTR1_QuarterlyFiling(t *testing.T) {
	quarter := gst.PeriodsOfQuarter(2025, 1) // Apr-Jun 2025

	invoices := []domain.Invoice{
		b2bInvoice("INV-001", buyerKA, 5, 1000, 90, 90, 0),
		b2bInvoice("INV-002", buyerKA, 20, 2000, 180, 180, 0),
	}
	invoices[0].InvoiceDate = time.Date(2025, 4, 5, 0, 0, 0, 0, time.UTC)
	invoices[1].InvoiceDate = time.Date(2025, 6, 20, 0, 0, 0, 0, time.UTC)
	// Falls past the quarter, stays out of the return.
	late := b2bInvoice("INV-003", buyerKA, 1, 500, 45, 45, 0)
	late.InvoiceDate = time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC)
	invoices = append(invoices, late)

	ret := gst.BuildGSTR1(sellerKA, quarter, invoices)

	assert.Equal(t, "062025", ret.Fp, "quarterly returns file under the closing month")
	require.Len(t, ret.B2B, 1)
	require.Len(t, ret.B2B[0].Inv, 2)
	assert.Equal(t, "INV-001", ret.B2B[0].Inv[0].Inum)
	assert.Equal(t, "INV-002", ret.B2B[0].Inv[1].Inum)
	assert.InDelta(t, 3000.0, ret.Gt, 0.001)
}

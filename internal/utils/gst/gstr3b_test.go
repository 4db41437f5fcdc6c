package gst_test

import (
	"testing"
	"time"

	"github.com/sahajbooks/gst_books_app/internal/core/domain"
	"github.com/sahajbooks/gst_books_app/internal/utils/gst"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func bill(num, vendorGSTIN string, day int, taxable, gstAmount int64) domain.PurchaseBill {
	return domain.PurchaseBill{
		BillNumber:   num,
		BillDate:     time.Date(2025, 5, day, 0, 0, 0, 0, time.UTC),
		VendorGSTIN:  vendorGSTIN,
		TaxableValue: decimal.NewFromInt(taxable),
		GSTAmount:    decimal.NewFromInt(gstAmount),
		TotalAmount:  decimal.NewFromInt(taxable + gstAmount),
	}
}

func TestBuildGSTR3B(t *testing.T) {
	invoices := []domain.Invoice{
		b2bInvoice("INV-001", buyerKA, 5, 1000, 90, 90, 0),
		b2bInvoice("INV-002", buyerMH, 12, 2000, 0, 0, 360),
	}
	bills := []domain.PurchaseBill{
		bill("B-1", buyerKA, 7, 500, 90),  // in-state vendor: half CGST, half SGST
		bill("B-2", buyerMH, 19, 400, 72), // out-of-state vendor: full IGST
		bill("B-3", buyerKA, 25, 300, 0),  // no GST charged, no ITC
	}

	ret := gst.BuildGSTR3B(sellerKA, may2025(), invoices, bills, nil)

	assert.Equal(t, sellerKA, ret.Gstin)
	assert.Equal(t, "052025", ret.RetPeriod)

	out := ret.SupDetails.OsupDet
	assert.InDelta(t, 3000.0, out.Txval, 0.001)
	assert.InDelta(t, 90.0, out.Camt, 0.001)
	assert.InDelta(t, 90.0, out.Samt, 0.001)
	assert.InDelta(t, 360.0, out.Iamt, 0.001)

	require.Len(t, ret.ItcElg.ItcAvl, 1)
	itc := ret.ItcElg.ItcAvl[0]
	assert.Equal(t, "OTH", itc.Ty)
	assert.InDelta(t, 45.0, itc.Camt, 0.001)
	assert.InDelta(t, 45.0, itc.Samt, 0.001)
	assert.InDelta(t, 72.0, itc.Iamt, 0.001)

	assert.InDelta(t, 45.0, ret.TaxPay.Camt, 0.001)
	assert.InDelta(t, 45.0, ret.TaxPay.Samt, 0.001)
	assert.InDelta(t, 288.0, ret.TaxPay.Iamt, 0.001)
}

func TestBuildGSTR3B_PayableFloorsAtZero(t *testing.T) {
	invoices := []domain.Invoice{
		b2bInvoice("INV-001", buyerKA, 5, 1000, 90, 90, 0),
	}
	// ITC exceeds the outward tax; the excess carries, it never shows as a
	// negative liability.
	bills := []domain.PurchaseBill{
		bill("B-1", buyerKA, 7, 5000, 900),
	}

	ret := gst.BuildGSTR3B(sellerKA, may2025(), invoices, bills, nil)

	assert.InDelta(t, 450.0, ret.ItcElg.ItcAvl[0].Camt, 0.001)
	assert.InDelta(t, 0.0, ret.TaxPay.Camt, 0.001)
	assert.InDelta(t, 0.0, ret.TaxPay.Samt, 0.001)
}

func TestBuildGSTR3B_ITCOverride(t *testing.T) {
	invoices := []domain.Invoice{
		b2bInvoice("INV-001", buyerKA, 5, 1000, 90, 90, 0),
	}
	bills := []domain.PurchaseBill{
		bill("B-1", buyerKA, 7, 5000, 900),
	}
	override := &gst.ITCAmounts{
		CGST: decimal.NewFromInt(30),
		SGST: decimal.NewFromInt(30),
		IGST: decimal.Zero,
	}

	ret := gst.BuildGSTR3B(sellerKA, may2025(), invoices, bills, override)

	// The override replaces the computed figures wholesale.
	assert.InDelta(t, 30.0, ret.ItcElg.ItcAvl[0].Camt, 0.001)
	assert.InDelta(t, 30.0, ret.ItcElg.ItcAvl[0].Samt, 0.001)
	assert.InDelta(t, 60.0, ret.TaxPay.Camt, 0.001)
	assert.InDelta(t, 60.0, ret.TaxPay.Samt, 0.001)
}

func TestBuildTDSReport(t *testing.T) {
	withTDS := func(b domain.PurchaseBill, section string, vendor string, tds int64) domain.PurchaseBill {
		b.TDSSection = section
		b.VendorAccountID = vendor
		b.TDSAmount = decimal.NewFromInt(tds)
		return b
	}

	bills := []domain.PurchaseBill{
		withTDS(bill("B-1", buyerKA, 3, 10000, 1800), "194C", "acc-v1", 100),
		withTDS(bill("B-2", buyerKA, 9, 20000, 3600), "194C", "acc-v2", 200),
		withTDS(bill("B-3", buyerKA, 15, 30000, 5400), "194J", "acc-v1", 3000),
		withTDS(bill("B-4", buyerKA, 20, 5000, 900), "194C", "acc-v1", 50),
		bill("B-5", buyerKA, 22, 1000, 180), // no TDS section
	}

	report := gst.BuildTDSReport("AAAAA0000A", may2025(), bills)

	assert.Equal(t, "AAAAA0000A", report.PAN)
	assert.Equal(t, "052025", report.Period)
	assert.True(t, report.Total.Equal(decimal.NewFromInt(3350)))

	require.Len(t, report.Sections, 2)
	sec194C := report.Sections[0]
	assert.Equal(t, "194C", sec194C.Section)
	assert.Equal(t, 2, sec194C.PayeeCount) // acc-v1 and acc-v2, deduplicated
	assert.True(t, sec194C.TDSDeducted.Equal(decimal.NewFromInt(350)))

	sec194J := report.Sections[1]
	assert.Equal(t, "194J", sec194J.Section)
	assert.Equal(t, 1, sec194J.PayeeCount)
	assert.True(t, sec194J.TDSDeducted.Equal(decimal.NewFromInt(3000)))
}

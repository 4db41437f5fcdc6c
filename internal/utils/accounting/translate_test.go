package accounting_test

import (
	"testing"
	"time"

	"github.com/sahajbooks/gst_books_app/internal/core/domain"
	"github.com/sahajbooks/gst_books_app/internal/utils/accounting"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testChart = accounting.Chart{
	domain.CodeSales:       "acc-sales",
	domain.CodePurchases:   "acc-purchases",
	domain.CodeOutputCGST:  "acc-out-cgst",
	domain.CodeOutputSGST:  "acc-out-sgst",
	domain.CodeOutputIGST:  "acc-out-igst",
	domain.CodeInputGST:    "acc-in-gst",
	domain.CodeCash:        "acc-cash",
	domain.CodeReceivables: "acc-receivables",
	domain.CodePayables:    "acc-payables",
	domain.CodeTDSPayable:  "acc-tds",
}

func sideAmount(entries []domain.VoucherEntry, accountID string) decimal.Decimal {
	for _, e := range entries {
		if e.AccountID == accountID {
			return e.Amount
		}
	}
	return decimal.Zero
}

func TestSaleVoucher_IntrastateScenario(t *testing.T) {
	// Taxable 1000 at 18% between same-state parties: CGST 90, SGST 90, total 1180.
	inv := domain.Invoice{
		InvoiceID:         "inv-1",
		WorkspaceID:       "ws-1",
		InvoiceNumber:     "INV-001",
		InvoiceDate:       time.Date(2025, 5, 10, 0, 0, 0, 0, time.UTC),
		CustomerAccountID: "acc-customer",
		CustomerName:      "Acme Traders",
		TaxableValue:      decimal.NewFromInt(1000),
		CGST:              decimal.NewFromInt(90),
		SGST:              decimal.NewFromInt(90),
		IGST:              decimal.Zero,
		TotalAmount:       decimal.NewFromInt(1180),
	}

	v := accounting.SaleVoucher(inv, testChart, "INR", domain.AuditFields{})

	assert.Equal(t, "JV-INV-inv-1", v.VoucherID)
	assert.Equal(t, domain.SourceInvoice, v.Source)
	assert.Equal(t, "inv-1", v.SourceID)
	require.NoError(t, accounting.ValidateVoucherBalance(v.Entries))

	debits := v.DebitEntries()
	require.Len(t, debits, 1)
	assert.Equal(t, "acc-customer", debits[0].AccountID)
	assert.True(t, debits[0].Amount.Equal(decimal.NewFromInt(1180)))

	credits := v.CreditEntries()
	require.Len(t, credits, 3) // sales, cgst, sgst; no igst leg for zero amount
	assert.True(t, sideAmount(credits, "acc-sales").Equal(decimal.NewFromInt(1000)))
	assert.True(t, sideAmount(credits, "acc-out-cgst").Equal(decimal.NewFromInt(90)))
	assert.True(t, sideAmount(credits, "acc-out-sgst").Equal(decimal.NewFromInt(90)))
	assert.True(t, sideAmount(credits, "acc-out-igst").IsZero())
}

func TestSaleVoucher_MissingCustomerFallsBackToReceivables(t *testing.T) {
	inv := domain.Invoice{
		InvoiceID:    "inv-2",
		TaxableValue: decimal.NewFromInt(500),
		IGST:         decimal.NewFromInt(90),
		TotalAmount:  decimal.NewFromInt(590),
	}

	v := accounting.SaleVoucher(inv, testChart, "INR", domain.AuditFields{})

	debits := v.DebitEntries()
	require.Len(t, debits, 1)
	assert.Equal(t, "acc-receivables", debits[0].AccountID)
	require.NoError(t, accounting.ValidateVoucherBalance(v.Entries))
}

func TestPurchaseVoucher(t *testing.T) {
	tests := []struct {
		name       string
		bill       domain.PurchaseBill
		wantVendor decimal.Decimal
		wantTDS    decimal.Decimal
	}{
		{
			name: "plain bill",
			bill: domain.PurchaseBill{
				BillID:          "bill-1",
				VendorAccountID: "acc-vendor",
				TaxableValue:    decimal.NewFromInt(2000),
				GSTAmount:       decimal.NewFromInt(360),
				TotalAmount:     decimal.NewFromInt(2360),
			},
			wantVendor: decimal.NewFromInt(2360),
			wantTDS:    decimal.Zero,
		},
		{
			name: "bill with TDS deduction",
			bill: domain.PurchaseBill{
				BillID:          "bill-2",
				VendorAccountID: "acc-vendor",
				TaxableValue:    decimal.NewFromInt(10000),
				GSTAmount:       decimal.NewFromInt(1800),
				TotalAmount:     decimal.NewFromInt(11800),
				TDSSection:      "194C",
				TDSAmount:       decimal.NewFromInt(100),
			},
			wantVendor: decimal.NewFromInt(11700),
			wantTDS:    decimal.NewFromInt(100),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := accounting.PurchaseVoucher(tt.bill, testChart, "INR", domain.AuditFields{})

			require.NoError(t, accounting.ValidateVoucherBalance(v.Entries))
			assert.Equal(t, "JV-PUR-"+tt.bill.BillID, v.VoucherID)
			assert.True(t, sideAmount(v.DebitEntries(), "acc-purchases").Equal(tt.bill.TaxableValue))
			assert.True(t, sideAmount(v.DebitEntries(), "acc-in-gst").Equal(tt.bill.GSTAmount))
			assert.True(t, sideAmount(v.CreditEntries(), "acc-vendor").Equal(tt.wantVendor))
			assert.True(t, sideAmount(v.CreditEntries(), "acc-tds").Equal(tt.wantTDS))
		})
	}
}

func TestPaymentVoucher(t *testing.T) {
	received := domain.Payment{
		PaymentID:       "pay-1",
		Kind:            domain.PaymentReceived,
		PartyAccountID:  "acc-customer",
		SettleAccountID: "acc-cash",
		Amount:          decimal.NewFromInt(700),
	}
	v := accounting.PaymentVoucher(received, testChart, "INR", domain.AuditFields{})
	assert.Equal(t, "JV-RCT-pay-1", v.VoucherID)
	assert.True(t, sideAmount(v.DebitEntries(), "acc-cash").Equal(decimal.NewFromInt(700)))
	assert.True(t, sideAmount(v.CreditEntries(), "acc-customer").Equal(decimal.NewFromInt(700)))
	require.NoError(t, accounting.ValidateVoucherBalance(v.Entries))

	made := domain.Payment{
		PaymentID:       "pay-2",
		Kind:            domain.PaymentMade,
		PartyAccountID:  "acc-vendor",
		SettleAccountID: "acc-cash",
		Amount:          decimal.NewFromInt(300),
	}
	v = accounting.PaymentVoucher(made, testChart, "INR", domain.AuditFields{})
	assert.Equal(t, "JV-PMT-pay-2", v.VoucherID)
	assert.True(t, sideAmount(v.DebitEntries(), "acc-vendor").Equal(decimal.NewFromInt(300)))
	assert.True(t, sideAmount(v.CreditEntries(), "acc-cash").Equal(decimal.NewFromInt(300)))
}

func TestNoteVoucher(t *testing.T) {
	credit := domain.Note{
		NoteID:         "crn-1",
		Kind:           domain.NoteCredit,
		PartyAccountID: "acc-customer",
		TaxableValue:   decimal.NewFromInt(100),
		CGST:           decimal.NewFromInt(9),
		SGST:           decimal.NewFromInt(9),
	}
	v := accounting.NoteVoucher(credit, testChart, "INR", domain.AuditFields{})
	assert.Equal(t, "JV-CRN-crn-1", v.VoucherID)
	require.NoError(t, accounting.ValidateVoucherBalance(v.Entries))
	assert.True(t, sideAmount(v.DebitEntries(), "acc-sales").Equal(decimal.NewFromInt(100)))
	assert.True(t, sideAmount(v.CreditEntries(), "acc-customer").Equal(decimal.NewFromInt(118)))

	debit := domain.Note{
		NoteID:         "dbn-1",
		Kind:           domain.NoteDebit,
		PartyAccountID: "acc-vendor",
		TaxableValue:   decimal.NewFromInt(200),
		IGST:           decimal.NewFromInt(36),
	}
	v = accounting.NoteVoucher(debit, testChart, "INR", domain.AuditFields{})
	assert.Equal(t, "JV-DBN-dbn-1", v.VoucherID)
	require.NoError(t, accounting.ValidateVoucherBalance(v.Entries))
	assert.True(t, sideAmount(v.DebitEntries(), "acc-vendor").Equal(decimal.NewFromInt(236)))
	assert.True(t, sideAmount(v.CreditEntries(), "acc-purchases").Equal(decimal.NewFromInt(200)))
	assert.True(t, sideAmount(v.CreditEntries(), "acc-in-gst").Equal(decimal.NewFromInt(36)))
}

func TestValidateVoucherBalance(t *testing.T) {
	balanced := []domain.VoucherEntry{
		{AccountID: "a", Amount: decimal.NewFromInt(100), Side: domain.Debit},
		{AccountID: "b", Amount: decimal.NewFromInt(100), Side: domain.Credit},
	}
	assert.NoError(t, accounting.ValidateVoucherBalance(balanced))

	unbalanced := []domain.VoucherEntry{
		{AccountID: "a", Amount: decimal.NewFromInt(100), Side: domain.Debit},
		{AccountID: "b", Amount: decimal.NewFromInt(90), Side: domain.Credit},
	}
	assert.Error(t, accounting.ValidateVoucherBalance(unbalanced))

	negative := []domain.VoucherEntry{
		{AccountID: "a", Amount: decimal.NewFromInt(-5), Side: domain.Debit},
		{AccountID: "b", Amount: decimal.NewFromInt(-5), Side: domain.Credit},
	}
	assert.Error(t, accounting.ValidateVoucherBalance(negative))

	assert.Error(t, accounting.ValidateVoucherBalance(nil))
}

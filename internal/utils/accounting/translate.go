package accounting

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sahajbooks/gst_books_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// Deterministic voucher IDs guarantee at-most-once posting: re-translating the
// same document yields the same ID, so the repository's existence check makes
// a second posting a no-op.
func InvoiceVoucherID(invoiceID string) string  { return "JV-INV-" + invoiceID }
func PurchaseVoucherID(billID string) string    { return "JV-PUR-" + billID }
func ReceiptVoucherID(paymentID string) string  { return "JV-RCT-" + paymentID }
func PaymentVoucherID(paymentID string) string  { return "JV-PMT-" + paymentID }
func CreditNoteVoucherID(noteID string) string  { return "JV-CRN-" + noteID }
func DebitNoteVoucherID(noteID string) string   { return "JV-DBN-" + noteID }

// Chart maps well-known system account codes to concrete account IDs for a
// workspace. Resolution is tolerant: an unmapped code resolves to itself so a
// mis-seeded chart degrades to a generic bucket instead of failing the posting.
type Chart map[string]string

// Resolve returns the account ID for a system code.
func (c Chart) Resolve(code string) string {
	if id, ok := c[code]; ok && id != "" {
		return id
	}
	return code
}

// Party returns the given party account ID, falling back to the generic
// receivables/payables bucket when the document carries no party reference.
func (c Chart) Party(accountID, fallbackCode string) string {
	if accountID != "" {
		return accountID
	}
	return c.Resolve(fallbackCode)
}

func newEntry(voucherID, accountID string, amount decimal.Decimal, side domain.EntrySide, cur string, audit domain.AuditFields) domain.VoucherEntry {
	return domain.VoucherEntry{
		EntryID:      uuid.NewString(),
		VoucherID:    voucherID,
		AccountID:    accountID,
		Amount:       amount,
		Side:         side,
		CurrencyCode: cur,
		AuditFields:  audit,
	}
}

func newVoucher(id, workspaceID string, date time.Time, narration, cur string, source domain.VoucherSource, sourceID string, entries []domain.VoucherEntry, audit domain.AuditFields) domain.Voucher {
	return domain.Voucher{
		VoucherID:    id,
		WorkspaceID:  workspaceID,
		VoucherDate:  date,
		Narration:    narration,
		CurrencyCode: cur,
		Status:       domain.Posted,
		Source:       source,
		SourceID:     sourceID,
		Amount:       VoucherAmount(entries),
		Entries:      entries,
		AuditFields:  audit,
	}
}

// SaleVoucher translates a sales invoice into its canonical balanced voucher:
// debit the customer for the total, credit sales for the taxable value and
// each output tax account for its non-zero component. The translator honours
// whatever CGST/SGST/IGST split the invoice carries; it never recomputes it.
func SaleVoucher(inv domain.Invoice, chart Chart, cur string, audit domain.AuditFields) domain.Voucher {
	id := InvoiceVoucherID(inv.InvoiceID)
	customer := chart.Party(inv.CustomerAccountID, domain.CodeReceivables)

	entries := []domain.VoucherEntry{
		newEntry(id, customer, inv.TotalAmount, domain.Debit, cur, audit),
		newEntry(id, chart.Resolve(domain.CodeSales), inv.TaxableValue, domain.Credit, cur, audit),
	}
	for _, t := range []struct {
		code   string
		amount decimal.Decimal
	}{
		{domain.CodeOutputCGST, inv.CGST},
		{domain.CodeOutputSGST, inv.SGST},
		{domain.CodeOutputIGST, inv.IGST},
	} {
		if t.amount.IsPositive() {
			entries = append(entries, newEntry(id, chart.Resolve(t.code), t.amount, domain.Credit, cur, audit))
		}
	}

	narration := fmt.Sprintf("Sales invoice %s to %s", inv.InvoiceNumber, inv.CustomerName)
	return newVoucher(id, inv.WorkspaceID, inv.InvoiceDate, narration, cur, domain.SourceInvoice, inv.InvoiceID, entries, audit)
}

// PurchaseVoucher translates a vendor bill: debit purchases for the taxable
// value and input GST for the tax, credit the vendor for the total. When TDS
// applies, the vendor credit is reduced and TDS payable is credited instead.
func PurchaseVoucher(bill domain.PurchaseBill, chart Chart, cur string, audit domain.AuditFields) domain.Voucher {
	id := PurchaseVoucherID(bill.BillID)
	vendor := chart.Party(bill.VendorAccountID, domain.CodePayables)

	entries := []domain.VoucherEntry{
		newEntry(id, chart.Resolve(domain.CodePurchases), bill.TaxableValue, domain.Debit, cur, audit),
	}
	if bill.GSTAmount.IsPositive() {
		entries = append(entries, newEntry(id, chart.Resolve(domain.CodeInputGST), bill.GSTAmount, domain.Debit, cur, audit))
	}
	vendorCredit := bill.TotalAmount
	if bill.TDSAmount.IsPositive() {
		vendorCredit = vendorCredit.Sub(bill.TDSAmount)
		entries = append(entries, newEntry(id, chart.Resolve(domain.CodeTDSPayable), bill.TDSAmount, domain.Credit, cur, audit))
	}
	entries = append(entries, newEntry(id, vendor, vendorCredit, domain.Credit, cur, audit))

	narration := fmt.Sprintf("Purchase bill %s from %s", bill.BillNumber, bill.VendorName)
	return newVoucher(id, bill.WorkspaceID, bill.BillDate, narration, cur, domain.SourcePurchase, bill.BillID, entries, audit)
}

// PaymentVoucher translates money movement. RECEIVED debits the cash/bank
// account and credits the customer; MADE debits the vendor and credits the
// paying account.
func PaymentVoucher(p domain.Payment, chart Chart, cur string, audit domain.AuditFields) domain.Voucher {
	var id string
	var source domain.VoucherSource
	var debitAcc, creditAcc string

	switch p.Kind {
	case domain.PaymentReceived:
		id = ReceiptVoucherID(p.PaymentID)
		source = domain.SourcePaymentReceived
		debitAcc = chart.Party(p.SettleAccountID, domain.CodeCash)
		creditAcc = chart.Party(p.PartyAccountID, domain.CodeReceivables)
	default:
		id = PaymentVoucherID(p.PaymentID)
		source = domain.SourcePaymentMade
		debitAcc = chart.Party(p.PartyAccountID, domain.CodePayables)
		creditAcc = chart.Party(p.SettleAccountID, domain.CodeCash)
	}

	entries := []domain.VoucherEntry{
		newEntry(id, debitAcc, p.Amount, domain.Debit, cur, audit),
		newEntry(id, creditAcc, p.Amount, domain.Credit, cur, audit),
	}
	narration := p.Narration
	if narration == "" {
		narration = fmt.Sprintf("Payment %s", p.PaymentID)
	}
	return newVoucher(id, p.WorkspaceID, p.PaymentDate, narration, cur, source, p.PaymentID, entries, audit)
}

// NoteVoucher translates a credit note (sales return: debit sales and output
// taxes, credit the customer) or debit note (purchase return: debit the
// vendor, credit purchases and input GST).
func NoteVoucher(n domain.Note, chart Chart, cur string, audit domain.AuditFields) domain.Voucher {
	total := n.TotalAmount()

	if n.Kind == domain.NoteCredit {
		id := CreditNoteVoucherID(n.NoteID)
		customer := chart.Party(n.PartyAccountID, domain.CodeReceivables)
		entries := []domain.VoucherEntry{
			newEntry(id, chart.Resolve(domain.CodeSales), n.TaxableValue, domain.Debit, cur, audit),
		}
		for _, t := range []struct {
			code   string
			amount decimal.Decimal
		}{
			{domain.CodeOutputCGST, n.CGST},
			{domain.CodeOutputSGST, n.SGST},
			{domain.CodeOutputIGST, n.IGST},
		} {
			if t.amount.IsPositive() {
				entries = append(entries, newEntry(id, chart.Resolve(t.code), t.amount, domain.Debit, cur, audit))
			}
		}
		entries = append(entries, newEntry(id, customer, total, domain.Credit, cur, audit))
		narration := fmt.Sprintf("Credit note %s", n.NoteID)
		return newVoucher(id, n.WorkspaceID, n.NoteDate, narration, cur, domain.SourceCreditNote, n.NoteID, entries, audit)
	}

	id := DebitNoteVoucherID(n.NoteID)
	vendor := chart.Party(n.PartyAccountID, domain.CodePayables)
	gst := n.CGST.Add(n.SGST).Add(n.IGST)
	entries := []domain.VoucherEntry{
		newEntry(id, vendor, total, domain.Debit, cur, audit),
		newEntry(id, chart.Resolve(domain.CodePurchases), n.TaxableValue, domain.Credit, cur, audit),
	}
	if gst.IsPositive() {
		entries = append(entries, newEntry(id, chart.Resolve(domain.CodeInputGST), gst, domain.Credit, cur, audit))
	}
	narration := fmt.Sprintf("Debit note %s", n.NoteID)
	return newVoucher(id, n.WorkspaceID, n.NoteDate, narration, cur, domain.SourceDebitNote, n.NoteID, entries, audit)
}

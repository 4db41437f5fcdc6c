package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// DocumentStatus tracks whether a business document has been posted to the ledger.
type DocumentStatus string

const (
	DocumentDraft  DocumentStatus = "DRAFT"
	DocumentPosted DocumentStatus = "POSTED"
)

// InvoiceLine is a single billed item on a sales invoice.
type InvoiceLine struct {
	LineID       string          `json:"lineID"`
	Description  string          `json:"description"`
	HSNCode      string          `json:"hsnCode"` // HSN/SAC classification for GST filing
	Quantity     decimal.Decimal `json:"quantity"`
	UnitPrice    decimal.Decimal `json:"unitPrice"`
	GSTRate      decimal.Decimal `json:"gstRate"`      // Percent, e.g. 18
	TaxableValue decimal.Decimal `json:"taxableValue"` // Quantity * UnitPrice
	CGST         decimal.Decimal `json:"cgst"`
	SGST         decimal.Decimal `json:"sgst"`
	IGST         decimal.Decimal `json:"igst"`
}

// Invoice is a sales invoice. Tax amounts are computed at creation time from
// the line GST rates and the seller/buyer state codes; posting derives exactly
// one balanced voucher with ID "JV-INV-<invoiceID>".
type Invoice struct {
	InvoiceID         string          `json:"invoiceID"`   // Primary Key (e.g., UUID)
	WorkspaceID       string          `json:"workspaceID"` // FK -> workspaces.workspace_id
	InvoiceNumber     string          `json:"invoiceNumber"`
	InvoiceDate       time.Time       `json:"invoiceDate"`
	CustomerAccountID string          `json:"customerAccountID"` // Party account; empty falls back to receivables
	CustomerName      string          `json:"customerName"`
	CustomerGSTIN     string          `json:"customerGSTIN"` // Empty for B2C sales
	PlaceOfSupply     string          `json:"placeOfSupply"` // Two-digit state code
	Lines             []InvoiceLine   `json:"lines"`
	TaxableValue      decimal.Decimal `json:"taxableValue"`
	CGST              decimal.Decimal `json:"cgst"`
	SGST              decimal.Decimal `json:"sgst"`
	IGST              decimal.Decimal `json:"igst"`
	TotalAmount       decimal.Decimal `json:"totalAmount"`
	Status            DocumentStatus  `json:"status"`
	AuditFields
}

// IsB2B reports whether the buyer is GST registered. B2B invoices appear
// invoice-by-invoice in GSTR-1; B2C invoices are aggregated by rate.
func (inv Invoice) IsB2B() bool {
	return inv.CustomerGSTIN != ""
}

// TotalTax is the sum of the three GST heads on the invoice.
func (inv Invoice) TotalTax() decimal.Decimal {
	return inv.CGST.Add(inv.SGST).Add(inv.IGST)
}

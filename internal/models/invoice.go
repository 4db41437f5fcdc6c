package models

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

// Invoice is a sales invoice header row.
type Invoice struct {
	InvoiceID         string          `db:"invoice_id"`
	WorkspaceID       string          `db:"workspace_id"`
	InvoiceNumber     string          `db:"invoice_number"`
	InvoiceDate       time.Time       `db:"invoice_date"`
	CustomerAccountID string          `db:"customer_account_id"` // Nullable
	CustomerName      string          `db:"customer_name"`
	CustomerGSTIN     string          `db:"customer_gstin"` // Empty for consumer sales
	PlaceOfSupply     string          `db:"place_of_supply"`
	TaxableValue      decimal.Decimal `db:"taxable_value"`
	CGST              decimal.Decimal `db:"cgst"`
	SGST              decimal.Decimal `db:"sgst"`
	IGST              decimal.Decimal `db:"igst"`
	TotalAmount       decimal.Decimal `db:"total_amount"`
	Status            DocumentStatus  `db:"status"`
	AuditFields
}

// InvoiceLine is one line item of an invoice.
type InvoiceLine struct {
	LineID       string          `db:"line_id"`
	InvoiceID    string          `db:"invoice_id"`
	Description  string          `db:"description"`
	HSNCode      string          `db:"hsn_code"`
	Quantity     decimal.Decimal `db:"quantity"`
	UnitPrice    decimal.Decimal `db:"unit_price"`
	GSTRate      decimal.Decimal `db:"gst_rate"`
	TaxableValue decimal.Decimal `db:"taxable_value"`
	CGST         decimal.Decimal `db:"cgst"`
	SGST         decimal.Decimal `db:"sgst"`
	IGST         decimal.Decimal `db:"igst"`
}

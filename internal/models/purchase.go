package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// PurchaseBill is a vendor bill header row.
type PurchaseBill struct {
	BillID          string          `db:"bill_id"`
	WorkspaceID     string          `db:"workspace_id"`
	BillNumber      string          `db:"bill_number"`
	BillDate        time.Time       `db:"bill_date"`
	VendorAccountID string          `db:"vendor_account_id"` // Nullable
	VendorName      string          `db:"vendor_name"`
	VendorGSTIN     string          `db:"vendor_gstin"`
	TaxableValue    decimal.Decimal `db:"taxable_value"`
	GSTAmount       decimal.Decimal `db:"gst_amount"`
	TotalAmount     decimal.Decimal `db:"total_amount"`
	TDSSection      string          `db:"tds_section"` // Empty when no TDS applies
	TDSAmount       decimal.Decimal `db:"tds_amount"`
	Status          DocumentStatus  `db:"status"`
	AuditFields
}

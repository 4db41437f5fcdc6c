package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// PurchaseBill is a vendor bill. Posting derives a voucher with ID
// "JV-PUR-<billID>" debiting purchases and input GST, crediting the vendor.
type PurchaseBill struct {
	BillID          string          `json:"billID"`      // Primary Key (e.g., UUID)
	WorkspaceID     string          `json:"workspaceID"` // FK -> workspaces.workspace_id
	BillNumber      string          `json:"billNumber"`  // Vendor's bill number
	BillDate        time.Time       `json:"billDate"`
	VendorAccountID string          `json:"vendorAccountID"` // Party account; empty falls back to payables
	VendorName      string          `json:"vendorName"`
	VendorGSTIN     string          `json:"vendorGSTIN"` // Empty for unregistered vendors
	TaxableValue    decimal.Decimal `json:"taxableValue"`
	GSTAmount       decimal.Decimal `json:"gstAmount"` // Total GST charged on the bill
	TotalAmount     decimal.Decimal `json:"totalAmount"`
	// TDS deducted at source on the payment to this vendor, if applicable.
	TDSSection string          `json:"tdsSection"` // e.g. "194C", empty when no TDS applies
	TDSAmount  decimal.Decimal `json:"tdsAmount"`
	Status     DocumentStatus  `json:"status"`
	AuditFields
}

// ITCEligible reports whether the bill carries input tax credit.
func (b PurchaseBill) ITCEligible() bool {
	return b.GSTAmount.IsPositive()
}

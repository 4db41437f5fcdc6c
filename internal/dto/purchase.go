package dto

import (
	"time"

	"github.com/sahajbooks/gst_books_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreatePurchaseBillRequest defines the data needed to record and post a vendor bill.
// GSTAmount is the tax the vendor charged; TDSAmount, when present, is
// deducted from what is owed to the vendor and parked as TDS payable.
type CreatePurchaseBillRequest struct {
	BillNumber      string          `json:"billNumber" binding:"required"`
	BillDate        time.Time       `json:"billDate" binding:"required"`
	VendorAccountID string          `json:"vendorAccountID"` // Optional; falls back to the payables control account
	VendorName      string          `json:"vendorName" binding:"required"`
	VendorGSTIN     string          `json:"vendorGSTIN"`
	TaxableValue    decimal.Decimal `json:"taxableValue" binding:"required"`
	GSTAmount       decimal.Decimal `json:"gstAmount"`
	TDSSection      string          `json:"tdsSection"` // e.g. 194C; empty when no TDS applies
	TDSAmount       decimal.Decimal `json:"tdsAmount"`
}

// PurchaseBillResponse defines the data returned for a purchase bill.
type PurchaseBillResponse struct {
	BillID          string          `json:"billID"`
	BillNumber      string          `json:"billNumber"`
	BillDate        time.Time       `json:"billDate"`
	VendorAccountID string          `json:"vendorAccountID,omitempty"`
	VendorName      string          `json:"vendorName"`
	VendorGSTIN     string          `json:"vendorGSTIN,omitempty"`
	TaxableValue    decimal.Decimal `json:"taxableValue"`
	GSTAmount       decimal.Decimal `json:"gstAmount"`
	TotalAmount     decimal.Decimal `json:"totalAmount"`
	TDSSection      string          `json:"tdsSection,omitempty"`
	TDSAmount       decimal.Decimal `json:"tdsAmount"`
	Status          string          `json:"status"`
	VoucherID       string          `json:"voucherID,omitempty"`
	CreatedAt       time.Time       `json:"createdAt"`
}

// ListPurchaseBillsParams defines query parameters for listing purchase bills.
type ListPurchaseBillsParams struct {
	Limit      int        `form:"limit,default=20"`
	LastBillID *string    `form:"lastBillID"` // Keyset cursor; the last bill of the previous page
	From       *time.Time `form:"from" time_format:"2006-01-02"`
	To         *time.Time `form:"to" time_format:"2006-01-02"`
}

// ListPurchaseBillsResponse wraps the list of purchase bills.
type ListPurchaseBillsResponse struct {
	Bills []PurchaseBillResponse `json:"bills"`
}

// ToPurchaseBillResponse converts a domain.PurchaseBill to PurchaseBillResponse DTO.
func ToPurchaseBillResponse(b *domain.PurchaseBill, voucherID string) PurchaseBillResponse {
	return PurchaseBillResponse{
		BillID:          b.BillID,
		BillNumber:      b.BillNumber,
		BillDate:        b.BillDate,
		VendorAccountID: b.VendorAccountID,
		VendorName:      b.VendorName,
		VendorGSTIN:     b.VendorGSTIN,
		TaxableValue:    b.TaxableValue,
		GSTAmount:       b.GSTAmount,
		TotalAmount:     b.TotalAmount,
		TDSSection:      b.TDSSection,
		TDSAmount:       b.TDSAmount,
		Status:          string(b.Status),
		VoucherID:       voucherID,
		CreatedAt:       b.CreatedAt,
	}
}

// ToListPurchaseBillsResponse converts a slice of domain.PurchaseBill to the list DTO.
func ToListPurchaseBillsResponse(bills []domain.PurchaseBill) ListPurchaseBillsResponse {
	resp := ListPurchaseBillsResponse{Bills: make([]PurchaseBillResponse, len(bills))}
	for i, b := range bills {
		resp.Bills[i] = ToPurchaseBillResponse(&b, "")
	}
	return resp
}

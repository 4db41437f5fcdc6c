package dto

import (
	"time"

	"github.com/sahajbooks/gst_books_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// InvoiceLineRequest defines one line of a sales invoice. Tax amounts are
// derived server-side from the rate and the parties' states; clients never
// send the CGST/SGST/IGST split.
type InvoiceLineRequest struct {
	Description string          `json:"description" binding:"required"`
	HSNCode     string          `json:"hsnCode"`
	Quantity    decimal.Decimal `json:"quantity" binding:"required"`
	UnitPrice   decimal.Decimal `json:"unitPrice" binding:"required"`
	GSTRate     decimal.Decimal `json:"gstRate"` // Percent, e.g. 18
}

// CreateInvoiceRequest defines the data needed to create and post a sales invoice.
type CreateInvoiceRequest struct {
	InvoiceNumber     string               `json:"invoiceNumber" binding:"required"`
	InvoiceDate       time.Time            `json:"invoiceDate" binding:"required"`
	CustomerAccountID string               `json:"customerAccountID"` // Optional; falls back to the receivables control account
	CustomerName      string               `json:"customerName" binding:"required"`
	CustomerGSTIN     string               `json:"customerGSTIN"` // Empty for consumer sales
	PlaceOfSupply     string               `json:"placeOfSupply"` // State code; defaults from the customer GSTIN
	Lines             []InvoiceLineRequest `json:"lines" binding:"required,min=1,dive"`
}

// InvoiceLineResponse defines the data returned for an invoice line.
type InvoiceLineResponse struct {
	LineID       string          `json:"lineID"`
	Description  string          `json:"description"`
	HSNCode      string          `json:"hsnCode,omitempty"`
	Quantity     decimal.Decimal `json:"quantity"`
	UnitPrice    decimal.Decimal `json:"unitPrice"`
	GSTRate      decimal.Decimal `json:"gstRate"`
	TaxableValue decimal.Decimal `json:"taxableValue"`
	CGST         decimal.Decimal `json:"cgst"`
	SGST         decimal.Decimal `json:"sgst"`
	IGST         decimal.Decimal `json:"igst"`
}

// InvoiceResponse defines the data returned for an invoice.
type InvoiceResponse struct {
	InvoiceID         string                `json:"invoiceID"`
	InvoiceNumber     string                `json:"invoiceNumber"`
	InvoiceDate       time.Time             `json:"invoiceDate"`
	CustomerAccountID string                `json:"customerAccountID,omitempty"`
	CustomerName      string                `json:"customerName"`
	CustomerGSTIN     string                `json:"customerGSTIN,omitempty"`
	PlaceOfSupply     string                `json:"placeOfSupply"`
	Lines             []InvoiceLineResponse `json:"lines"`
	TaxableValue      decimal.Decimal       `json:"taxableValue"`
	CGST              decimal.Decimal       `json:"cgst"`
	SGST              decimal.Decimal       `json:"sgst"`
	IGST              decimal.Decimal       `json:"igst"`
	TotalAmount       decimal.Decimal       `json:"totalAmount"`
	Status            string                `json:"status"`
	VoucherID         string                `json:"voucherID,omitempty"` // Ledger voucher the posting produced
	CreatedAt         time.Time             `json:"createdAt"`
}

// ListInvoicesParams defines query parameters for listing invoices.
type ListInvoicesParams struct {
	Limit         int        `form:"limit,default=20"`
	LastInvoiceID *string    `form:"lastInvoiceID"` // Keyset cursor; the last invoice of the previous page
	From          *time.Time `form:"from" time_format:"2006-01-02"`
	To            *time.Time `form:"to" time_format:"2006-01-02"`
}

// ListInvoicesResponse wraps the list of invoices.
type ListInvoicesResponse struct {
	Invoices []InvoiceResponse `json:"invoices"`
}

// ToInvoiceResponse converts a domain.Invoice to InvoiceResponse DTO.
func ToInvoiceResponse(inv *domain.Invoice, voucherID string) InvoiceResponse {
	resp := InvoiceResponse{
		InvoiceID:         inv.InvoiceID,
		InvoiceNumber:     inv.InvoiceNumber,
		InvoiceDate:       inv.InvoiceDate,
		CustomerAccountID: inv.CustomerAccountID,
		CustomerName:      inv.CustomerName,
		CustomerGSTIN:     inv.CustomerGSTIN,
		PlaceOfSupply:     inv.PlaceOfSupply,
		TaxableValue:      inv.TaxableValue,
		CGST:              inv.CGST,
		SGST:              inv.SGST,
		IGST:              inv.IGST,
		TotalAmount:       inv.TotalAmount,
		Status:            string(inv.Status),
		VoucherID:         voucherID,
		CreatedAt:         inv.CreatedAt,
	}
	for _, line := range inv.Lines {
		resp.Lines = append(resp.Lines, InvoiceLineResponse{
			LineID:       line.LineID,
			Description:  line.Description,
			HSNCode:      line.HSNCode,
			Quantity:     line.Quantity,
			UnitPrice:    line.UnitPrice,
			GSTRate:      line.GSTRate,
			TaxableValue: line.TaxableValue,
			CGST:         line.CGST,
			SGST:         line.SGST,
			IGST:         line.IGST,
		})
	}
	return resp
}

// ToListInvoicesResponse converts a slice of domain.Invoice to the list DTO.
func ToListInvoicesResponse(invoices []domain.Invoice) ListInvoicesResponse {
	resp := ListInvoicesResponse{Invoices: make([]InvoiceResponse, len(invoices))}
	for i, inv := range invoices {
		resp.Invoices[i] = ToInvoiceResponse(&inv, "")
	}
	return resp
}

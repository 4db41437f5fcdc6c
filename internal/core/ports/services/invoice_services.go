package services

import (
	"context"

	"github.com/sahajbooks/gst_books_app/internal/core/domain"
	"github.com/sahajbooks/gst_books_app/internal/dto"
)

// InvoiceReaderSvc defines read operations for sales invoices
type InvoiceReaderSvc interface {
	// GetInvoiceByID retrieves a specific invoice by its ID.
	GetInvoiceByID(ctx context.Context, workspaceID string, invoiceID string, requestingUserID string) (*domain.Invoice, error)

	// ListInvoices retrieves a paginated list of invoices in a workspace.
	ListInvoices(ctx context.Context, workspaceID string, userID string, params dto.ListInvoicesParams) (*dto.ListInvoicesResponse, error)
}

// InvoiceWriterSvc defines write operations for sales invoices
type InvoiceWriterSvc interface {
	// CreateInvoice persists an invoice, deriving the tax split of every
	// line from the seller and customer GSTINs, and posts it to the ledger.
	CreateInvoice(ctx context.Context, workspaceID string, req dto.CreateInvoiceRequest, creatorUserID string) (*domain.Invoice, error)
}

// InvoiceSvcFacade combines all invoice-related service interfaces
type InvoiceSvcFacade interface {
	InvoiceReaderSvc
	InvoiceWriterSvc
}

package repositories

import (
	"context"
	"time"

	"github.com/sahajbooks/gst_books_app/internal/core/domain"
)

// InvoiceReader defines read operations for sales invoices.
type InvoiceReader interface {
	// FindInvoiceByID retrieves an invoice with its lines.
	FindInvoiceByID(ctx context.Context, workspaceID string, invoiceID string) (domain.Invoice, error)

	// InvoiceNumberExists reports whether a number is already taken in the workspace.
	InvoiceNumberExists(ctx context.Context, workspaceID string, number string) (bool, error)

	// ListInvoicesByWorkspace retrieves invoices using token based pagination.
	ListInvoicesByWorkspace(ctx context.Context, workspaceID string, limit int, lastInvoiceID *string) ([]domain.Invoice, error)

	// ListInvoicesByDateRange retrieves invoices dated within [from, to] inclusive.
	ListInvoicesByDateRange(ctx context.Context, workspaceID string, from time.Time, to time.Time) ([]domain.Invoice, error)
}

// InvoiceWriter defines write operations for sales invoices.
type InvoiceWriter interface {
	// SaveInvoice persists a new invoice and its lines atomically.
	SaveInvoice(ctx context.Context, invoice domain.Invoice) (domain.Invoice, error)

	// UpdateInvoiceStatus moves an invoice between document statuses.
	UpdateInvoiceStatus(ctx context.Context, workspaceID string, invoiceID string, status domain.DocumentStatus, userID string) error
}

// InvoiceRepositoryFacade combines reader and writer.
type InvoiceRepositoryFacade interface {
	InvoiceReader
	InvoiceWriter
}

// InvoiceRepositoryWithTx adds transaction support to the facade.
type InvoiceRepositoryWithTx interface {
	InvoiceRepositoryFacade
	TransactionManager
}

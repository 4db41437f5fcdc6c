package repositories

import (
	"context"
	"time"

	"github.com/sahajbooks/gst_books_app/internal/core/domain"
)

// PurchaseBillReader defines read operations for purchase bills.
type PurchaseBillReader interface {
	// FindPurchaseBillByID retrieves a bill by its ID.
	FindPurchaseBillByID(ctx context.Context, workspaceID string, billID string) (domain.PurchaseBill, error)

	// ListPurchaseBillsByWorkspace retrieves bills using token based pagination.
	ListPurchaseBillsByWorkspace(ctx context.Context, workspaceID string, limit int, lastBillID *string) ([]domain.PurchaseBill, error)

	// ListPurchaseBillsByDateRange retrieves bills dated within [from, to] inclusive.
	ListPurchaseBillsByDateRange(ctx context.Context, workspaceID string, from time.Time, to time.Time) ([]domain.PurchaseBill, error)

	// BillNumberExists reports whether the vendor already has a bill with this number.
	BillNumberExists(ctx context.Context, workspaceID string, vendorName string, billNumber string) (bool, error)
}

// PurchaseBillWriter defines write operations for purchase bills.
type PurchaseBillWriter interface {
	// SavePurchaseBill persists a new bill.
	SavePurchaseBill(ctx context.Context, bill domain.PurchaseBill) (domain.PurchaseBill, error)

	// UpdatePurchaseBillStatus moves a bill between document statuses.
	UpdatePurchaseBillStatus(ctx context.Context, workspaceID string, billID string, status domain.DocumentStatus, userID string) error
}

// PurchaseBillRepositoryFacade combines reader and writer.
type PurchaseBillRepositoryFacade interface {
	PurchaseBillReader
	PurchaseBillWriter
}

// PurchaseBillRepositoryWithTx adds transaction support to the facade.
type PurchaseBillRepositoryWithTx interface {
	PurchaseBillRepositoryFacade
	TransactionManager
}

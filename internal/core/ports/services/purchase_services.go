package services

import (
	"context"

	"github.com/sahajbooks/gst_books_app/internal/core/domain"
	"github.com/sahajbooks/gst_books_app/internal/dto"
)

// PurchaseBillReaderSvc defines read operations for purchase bills
type PurchaseBillReaderSvc interface {
	// GetPurchaseBillByID retrieves a specific bill by its ID.
	GetPurchaseBillByID(ctx context.Context, workspaceID string, billID string, requestingUserID string) (*domain.PurchaseBill, error)

	// ListPurchaseBills retrieves a paginated list of bills in a workspace.
	ListPurchaseBills(ctx context.Context, workspaceID string, userID string, params dto.ListPurchaseBillsParams) (*dto.ListPurchaseBillsResponse, error)
}

// PurchaseBillWriterSvc defines write operations for purchase bills
type PurchaseBillWriterSvc interface {
	// CreatePurchaseBill persists a bill, derives its tax split and any TDS
	// deduction, and posts it to the ledger.
	CreatePurchaseBill(ctx context.Context, workspaceID string, req dto.CreatePurchaseBillRequest, creatorUserID string) (*domain.PurchaseBill, error)
}

// PurchaseBillSvcFacade combines all purchase-bill-related service interfaces
type PurchaseBillSvcFacade interface {
	PurchaseBillReaderSvc
	PurchaseBillWriterSvc
}

package services

import (
	"context"

	"github.com/sahajbooks/gst_books_app/internal/core/domain"
	"github.com/sahajbooks/gst_books_app/internal/dto"
	"github.com/shopspring/decimal"
)

// VoucherReaderSvc defines read operations for voucher data
type VoucherReaderSvc interface {
	// GetVoucherByID retrieves a specific voucher by its ID.
	GetVoucherByID(ctx context.Context, workspaceID string, voucherID string, requestingUserID string) (*domain.Voucher, error)

	// ListVouchers retrieves a paginated list of vouchers in a workspace.
	ListVouchers(ctx context.Context, workspaceID string, userID string, params dto.ListVouchersParams) (*dto.ListVouchersResponse, error)
}

// VoucherWriterSvc defines write operations for voucher data
type VoucherWriterSvc interface {
	// CreateVoucher persists a new manual voucher with its entries.
	CreateVoucher(ctx context.Context, workspaceID string, req dto.CreateVoucherRequest, creatorUserID string) (*domain.Voucher, error)

	// UpdateVoucher updates voucher details (excluding entries).
	UpdateVoucher(ctx context.Context, workspaceID string, voucherID string, req dto.UpdateVoucherRequest, requestingUserID string) (*domain.Voucher, error)

	// ReverseVoucher creates a reversal voucher for an existing voucher.
	ReverseVoucher(ctx context.Context, workspaceID string, voucherID string, userID string) (*domain.Voucher, error)
}

// PaymentPostingSvc posts money movement and note documents to the ledger.
// Posting is idempotent on the derived voucher ID, so replaying a request
// returns the existing voucher instead of double-booking.
type PaymentPostingSvc interface {
	// PostPaymentReceived books money received from a customer.
	PostPaymentReceived(ctx context.Context, workspaceID string, req dto.PostPaymentRequest, userID string) (*dto.PostingResponse, error)

	// PostPaymentMade books money paid to a vendor.
	PostPaymentMade(ctx context.Context, workspaceID string, req dto.PostPaymentRequest, userID string) (*dto.PostingResponse, error)

	// PostCreditNote books a sales return against a customer.
	PostCreditNote(ctx context.Context, workspaceID string, req dto.PostNoteRequest, userID string) (*dto.PostingResponse, error)

	// PostDebitNote books a purchase return against a vendor.
	PostDebitNote(ctx context.Context, workspaceID string, req dto.PostNoteRequest, userID string) (*dto.PostingResponse, error)
}

// EntryReaderSvc defines read operations for voucher entry data
type EntryReaderSvc interface {
	// ListEntriesByAccount retrieves entries for a specific account.
	ListEntriesByAccount(ctx context.Context, workspaceID string, accountID string, userID string, params dto.ListEntriesParams) (*dto.ListEntriesResponse, error)
}

// VoucherCalculatorSvc defines calculation operations related to vouchers
type VoucherCalculatorSvc interface {
	// CalculateAccountBalance calculates the current balance of an account.
	CalculateAccountBalance(ctx context.Context, workspaceID string, accountID string) (decimal.Decimal, error)
}

// VoucherSvcFacade combines all voucher-related service interfaces
// This is a facade for clients that need access to all operations
type VoucherSvcFacade interface {
	VoucherReaderSvc
	VoucherWriterSvc
	PaymentPostingSvc
	EntryReaderSvc
	VoucherCalculatorSvc
}

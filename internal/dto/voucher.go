package dto

import (
	"time"

	"github.com/sahajbooks/gst_books_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateEntryRequest defines one debit or credit line of a manual voucher.
type CreateEntryRequest struct {
	AccountID string          `json:"accountID" binding:"required"`
	Amount    decimal.Decimal `json:"amount" binding:"required"`
	Side      string          `json:"side" binding:"required,oneof=DEBIT CREDIT"`
	Notes     string          `json:"notes"`
}

// CreateVoucherRequest defines the data needed to create a manual voucher.
// Entries must balance: debit total equals credit total.
type CreateVoucherRequest struct {
	VoucherDate  time.Time            `json:"voucherDate" binding:"required"`
	Narration    string               `json:"narration"`
	CurrencyCode string               `json:"currencyCode" binding:"required"`
	Entries      []CreateEntryRequest `json:"entries" binding:"required,min=2,dive"`
}

// UpdateVoucherRequest defines the data allowed for updating a voucher.
// Entries are immutable once posted; only descriptive fields may change.
type UpdateVoucherRequest struct {
	Narration   *string    `json:"narration"`
	VoucherDate *time.Time `json:"voucherDate"`
}

// ListVouchersParams defines query parameters for listing vouchers.
type ListVouchersParams struct {
	Limit            int     `form:"limit,default=20"`
	NextToken        *string `form:"nextToken"`
	IncludeReversals bool    `form:"includeReversals,default=false"`
}

// EntryResponse defines the data returned for a voucher entry.
type EntryResponse struct {
	EntryID        string          `json:"entryID"`
	AccountID      string          `json:"accountID"`
	Amount         decimal.Decimal `json:"amount"`
	Side           string          `json:"side"`
	Notes          string          `json:"notes,omitempty"`
	RunningBalance decimal.Decimal `json:"runningBalance"`
}

// VoucherResponse defines the data returned for a voucher.
type VoucherResponse struct {
	VoucherID   string          `json:"voucherID"`
	VoucherDate time.Time       `json:"voucherDate"`
	Narration   string          `json:"narration"`
	Status      string          `json:"status"`
	Source      string          `json:"source"`
	SourceID    string          `json:"sourceID,omitempty"`
	Amount      decimal.Decimal `json:"amount"`
	CreatedAt   time.Time       `json:"createdAt"`
	CreatedBy   string          `json:"createdBy"`
}

// GetVoucherResponse defines the combined response for a voucher and its entries.
type GetVoucherResponse struct {
	Voucher VoucherResponse `json:"voucher"`
	Entries []EntryResponse `json:"entries"`
}

// ListVouchersResponse wraps a page of vouchers.
type ListVouchersResponse struct {
	Vouchers  []VoucherResponse `json:"vouchers"`
	NextToken *string           `json:"nextToken,omitempty"`
}

// ListEntriesParams defines query parameters for listing account entries.
type ListEntriesParams struct {
	Limit     int     `form:"limit,default=20"`
	NextToken *string `form:"nextToken"`
}

// ListEntriesResponse wraps a page of account entries (a ledger view).
type ListEntriesResponse struct {
	Entries   []EntryResponse `json:"entries"`
	NextToken *string         `json:"nextToken,omitempty"`
}

// ToEntryResponse converts a domain.VoucherEntry to EntryResponse DTO.
func ToEntryResponse(e *domain.VoucherEntry) EntryResponse {
	return EntryResponse{
		EntryID:        e.EntryID,
		AccountID:      e.AccountID,
		Amount:         e.Amount,
		Side:           string(e.Side),
		Notes:          e.Notes,
		RunningBalance: e.RunningBalance,
	}
}

// ToEntryResponses converts a slice of domain.VoucherEntry to []EntryResponse.
func ToEntryResponses(entries []domain.VoucherEntry) []EntryResponse {
	responses := make([]EntryResponse, len(entries))
	for i, e := range entries {
		responses[i] = ToEntryResponse(&e)
	}
	return responses
}

// ToVoucherResponse converts a domain.Voucher to VoucherResponse DTO.
func ToVoucherResponse(v *domain.Voucher) VoucherResponse {
	return VoucherResponse{
		VoucherID:   v.VoucherID,
		VoucherDate: v.VoucherDate,
		Narration:   v.Narration,
		Status:      string(v.Status),
		Source:      string(v.Source),
		SourceID:    v.SourceID,
		Amount:      v.Amount,
		CreatedAt:   v.CreatedAt,
		CreatedBy:   v.CreatedBy,
	}
}

package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// VoucherStatus indicates the state of a voucher.
type VoucherStatus string

const (
	Posted   VoucherStatus = "POSTED"
	Reversed VoucherStatus = "REVERSED"
)

// Voucher represents a single, balanced financial event composed of multiple entries.
type Voucher struct {
	VoucherID          string          `json:"voucherID"` // Primary Key (UUID or derived document ID)
	WorkspaceID        string          `json:"workspaceID"`
	VoucherDate        time.Time       `json:"voucherDate"` // Date the event occurred
	Narration          string          `json:"narration"`   // Nullable user description
	CurrencyCode       string          `json:"currencyCode"`
	Status             VoucherStatus   `json:"status"` // Default: Posted
	Source             string          `json:"source"` // MANUAL or the originating document kind
	SourceID           string          `json:"sourceID"`
	OriginalVoucherID  *string         `json:"originalVoucherID"`  // Set on reversal vouchers
	ReversingVoucherID *string         `json:"reversingVoucherID"` // Set on reversed vouchers
	Amount             decimal.Decimal `json:"amount"`             // Debit-side total, denormalized for listings
	AuditFields
}

// EntrySide indicates whether an entry line is a Debit or a Credit.
type EntrySide string

const (
	Debit  EntrySide = "DEBIT"
	Credit EntrySide = "CREDIT"
)

// VoucherEntry represents a single line item within a Voucher, affecting one account.
type VoucherEntry struct {
	EntryID      string          `json:"entryID"`   // Primary Key (UUID)
	VoucherID    string          `json:"voucherID"` // FK -> Voucher.voucherID (Not Null)
	AccountID    string          `json:"accountID"` // FK -> Account.accountID (Not Null)
	Amount       decimal.Decimal `json:"amount"`    // Positive value
	Side         EntrySide       `json:"side"`      // DEBIT or CREDIT (Not Null)
	CurrencyCode string          `json:"currencyCode"`
	Notes        string          `json:"notes"` // Nullable
	AuditFields
	RunningBalance   decimal.Decimal `json:"runningBalance"` // Balance after this entry
	VoucherDate      time.Time       `json:"voucherDate"`    // Denormalized from the voucher for ledger views
	VoucherNarration string          `json:"voucherNarration"`
}

package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// VoucherStatus indicates the state of a journal voucher.
type VoucherStatus string

const (
	Posted   VoucherStatus = "POSTED"
	Reversed VoucherStatus = "REVERSED"
)

// VoucherSource identifies the business document a voucher was derived from.
// Manual vouchers carry SourceManual and a UUID voucher ID; document-derived
// vouchers carry a deterministic ID so re-posting the same document is a no-op.
type VoucherSource string

const (
	SourceManual          VoucherSource = "MANUAL"
	SourceInvoice         VoucherSource = "INVOICE"
	SourcePurchase        VoucherSource = "PURCHASE"
	SourcePaymentReceived VoucherSource = "PAYMENT_RECEIVED"
	SourcePaymentMade     VoucherSource = "PAYMENT_MADE"
	SourceCreditNote      VoucherSource = "CREDIT_NOTE"
	SourceDebitNote       VoucherSource = "DEBIT_NOTE"
)

// EntrySide indicates whether a voucher entry is a debit or a credit leg.
type EntrySide string

const (
	Debit  EntrySide = "DEBIT"
	Credit EntrySide = "CREDIT"
)

// VoucherEntry is one leg of a journal voucher, affecting a single account.
// Amount is always positive; the side carries the sign.
type VoucherEntry struct {
	EntryID      string          `json:"entryID"`      // Primary Key (e.g., UUID)
	VoucherID    string          `json:"voucherID"`    // FK -> vouchers.voucher_id (Not Null)
	AccountID    string          `json:"accountID"`    // FK -> accounts.account_id (Not Null)
	Amount       decimal.Decimal `json:"amount"`       // Positive value
	Side         EntrySide       `json:"side"`         // DEBIT or CREDIT (Not Null)
	CurrencyCode string          `json:"currencyCode"` // Must match voucher currency (Not Null)
	Notes        string          `json:"notes"`        // Nullable
	AuditFields
	// Populated on reads that join the voucher header.
	VoucherDate      time.Time       `json:"voucherDate,omitempty"`
	VoucherNarration string          `json:"voucherNarration,omitempty"`
	RunningBalance   decimal.Decimal `json:"runningBalance"` // Balance after this entry
}

// Voucher represents a single, balanced financial event composed of multiple entries.
type Voucher struct {
	VoucherID    string        `json:"voucherID"`   // Primary Key (UUID or deterministic JV-* ID)
	WorkspaceID  string        `json:"workspaceID"` // FK -> workspaces.workspace_id
	VoucherDate  time.Time     `json:"voucherDate"` // Date the event occurred
	Narration    string        `json:"narration"`   // User or translator supplied description
	CurrencyCode string        `json:"currencyCode"`
	Status       VoucherStatus `json:"status"` // Default: POSTED
	Source       VoucherSource `json:"source"`
	SourceID     string        `json:"sourceID"` // Originating document ID, empty for manual entries
	// Reversal linkage. A reversed voucher points at its reversal and vice versa.
	OriginalVoucherID  *string         `json:"originalVoucherID,omitempty"`
	ReversingVoucherID *string         `json:"reversingVoucherID,omitempty"`
	Amount             decimal.Decimal `json:"amount"` // Debit-side total, the economic value of the event
	Entries            []VoucherEntry  `json:"entries,omitempty"`
	AuditFields
}

// DebitEntries returns the debit legs of the voucher.
func (v Voucher) DebitEntries() []VoucherEntry {
	return v.entriesBySide(Debit)
}

// CreditEntries returns the credit legs of the voucher.
func (v Voucher) CreditEntries() []VoucherEntry {
	return v.entriesBySide(Credit)
}

func (v Voucher) entriesBySide(side EntrySide) []VoucherEntry {
	out := make([]VoucherEntry, 0, len(v.Entries))
	for _, e := range v.Entries {
		if e.Side == side {
			out = append(out, e)
		}
	}
	return out
}

package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// PostPaymentRequest records money received from a customer or paid to a
// vendor. Reference is a client-supplied identifier; posting the same
// reference twice is a no-op, which makes retries safe.
type PostPaymentRequest struct {
	Reference       string          `json:"reference" binding:"required"`
	PaymentDate     time.Time       `json:"paymentDate" binding:"required"`
	PartyAccountID  string          `json:"partyAccountID"`  // Optional; falls back to the control account
	SettleAccountID string          `json:"settleAccountID"` // Optional; defaults to cash
	Amount          decimal.Decimal `json:"amount" binding:"required"`
	Narration       string          `json:"narration"`
}

// PostNoteRequest records a credit note (sales return) or debit note
// (purchase return). Like payments, notes post straight to the ledger keyed
// on the client-supplied reference.
type PostNoteRequest struct {
	Reference      string          `json:"reference" binding:"required"`
	NoteDate       time.Time       `json:"noteDate" binding:"required"`
	PartyAccountID string          `json:"partyAccountID"`
	PartyGSTIN     string          `json:"partyGSTIN"`
	TaxableValue   decimal.Decimal `json:"taxableValue" binding:"required"`
	CGST           decimal.Decimal `json:"cgst"`
	SGST           decimal.Decimal `json:"sgst"`
	IGST           decimal.Decimal `json:"igst"`
	Narration      string          `json:"narration"`
}

// PostingResponse reports the outcome of posting a document to the ledger.
type PostingResponse struct {
	VoucherID     string `json:"voucherID"`
	AlreadyPosted bool   `json:"alreadyPosted"` // True when the reference had been posted before
}

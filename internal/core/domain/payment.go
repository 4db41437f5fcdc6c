package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// PaymentKind distinguishes money received from a customer from money paid to a vendor.
type PaymentKind string

const (
	PaymentReceived PaymentKind = "RECEIVED"
	PaymentMade     PaymentKind = "MADE"
)

// Payment records money moving between a party account and a cash/bank account.
// Payments are not stored as documents; posting one translates it directly into
// a voucher with ID "JV-RCT-<id>" or "JV-PMT-<id>".
type Payment struct {
	PaymentID        string          `json:"paymentID"` // Client-supplied reference, drives idempotent posting
	WorkspaceID      string          `json:"workspaceID"`
	Kind             PaymentKind     `json:"kind"`
	PaymentDate      time.Time       `json:"paymentDate"`
	PartyAccountID   string          `json:"partyAccountID"`   // Customer (RECEIVED) or vendor (MADE)
	SettleAccountID  string          `json:"settleAccountID"`  // Cash or bank account
	Amount           decimal.Decimal `json:"amount"`
	Narration        string          `json:"narration"`
}

// NoteKind distinguishes a sales return (credit note) from a purchase return (debit note).
type NoteKind string

const (
	NoteCredit NoteKind = "CREDIT" // Sales return: reverses sale and output tax
	NoteDebit  NoteKind = "DEBIT"  // Purchase return: reverses purchase and input GST
)

// Note is a credit or debit note. Like payments, notes post straight to the
// ledger ("JV-CRN-<id>" / "JV-DBN-<id>") without a separate document store.
type Note struct {
	NoteID         string          `json:"noteID"` // Client-supplied reference, drives idempotent posting
	WorkspaceID    string          `json:"workspaceID"`
	Kind           NoteKind        `json:"kind"`
	NoteDate       time.Time       `json:"noteDate"`
	PartyAccountID string          `json:"partyAccountID"`
	PartyGSTIN     string          `json:"partyGSTIN"`
	TaxableValue   decimal.Decimal `json:"taxableValue"`
	CGST           decimal.Decimal `json:"cgst"`
	SGST           decimal.Decimal `json:"sgst"`
	IGST           decimal.Decimal `json:"igst"`
	Narration      string          `json:"narration"`
}

// TotalAmount is the gross value of the note.
func (n Note) TotalAmount() decimal.Decimal {
	return n.TaxableValue.Add(n.CGST).Add(n.SGST).Add(n.IGST)
}

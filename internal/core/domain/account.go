package domain

import (
	"github.com/shopspring/decimal"
)

// AccountType defines the fundamental accounting type of an account.
type AccountType string

const (
	Asset     AccountType = "ASSET"
	Liability AccountType = "LIABILITY"
	Equity    AccountType = "EQUITY"
	Income    AccountType = "INCOME"
	Expense   AccountType = "EXPENSE"
)

// PLPlacement controls where an income/expense account lands in the
// trading/profit-and-loss statement. DIRECT rows belong to the trading
// section (gross profit), INDIRECT rows to the P&L section (net profit).
// It has no meaning for balance-sheet account types.
type PLPlacement string

const (
	PlacementDirect   PLPlacement = "DIRECT"
	PlacementIndirect PLPlacement = "INDIRECT"
	PlacementNone     PLPlacement = "NONE"
)

// PartyType marks accounts that double as trading counterparties.
// Customer and vendor IDs are ordinary ledger accounts with a party tag,
// so receivables/payables fall out of the same trial balance as everything else.
type PartyType string

const (
	PartyNone     PartyType = "NONE"
	PartyCustomer PartyType = "CUSTOMER"
	PartyVendor   PartyType = "VENDOR"
)

// Well-known system account codes. Voucher translators resolve these by code
// rather than by display name, so renaming an account never breaks posting.
const (
	CodeSales       = "sales"
	CodePurchases   = "purchases"
	CodeOutputCGST  = "output-cgst"
	CodeOutputSGST  = "output-sgst"
	CodeOutputIGST  = "output-igst"
	CodeInputGST    = "input-gst"
	CodeCash        = "cash"
	CodeBank        = "bank"
	CodeReceivables = "receivables"
	CodePayables    = "payables"
	CodeStock       = "stock"
	CodeCapital     = "capital"
	CodeTDSPayable  = "tds-payable"
)

// Account represents a ledger account within the core domain.
// This is the primary representation used by services.
type Account struct {
	AccountID       string          `json:"accountID"`       // Primary Key (e.g., UUID)
	WorkspaceID     string          `json:"workspaceID"`     // FK -> workspaces.workspace_id (NON-NULL)
	Name            string          `json:"name"`            // User-defined name
	AccountType     AccountType     `json:"accountType"`     // ASSET, LIABILITY, etc.
	Placement       PLPlacement     `json:"placement"`       // DIRECT / INDIRECT / NONE
	SystemCode      string          `json:"systemCode"`      // Stable code for system buckets, empty for user accounts
	PartyType       PartyType       `json:"partyType"`       // CUSTOMER / VENDOR / NONE
	GSTIN           string          `json:"gstin"`           // Party GSTIN, empty for unregistered parties
	CurrencyCode    string          `json:"currencyCode"`    // FK -> currencies.code (NON-NULL)
	ParentAccountID string          `json:"parentAccountID"` // Nullable FK -> accounts.account_id (self-referencing)
	Description     string          `json:"description"`     // Nullable user description
	IsActive        bool            `json:"isActive"`        // Soft delete or status flag
	AuditFields                     // Embed CreatedAt, CreatedBy, etc.
	Balance         decimal.Decimal `json:"balance"` // Persisted account balance
}

// IsParty reports whether the account doubles as a customer or vendor.
func (a Account) IsParty() bool {
	return a.PartyType == PartyCustomer || a.PartyType == PartyVendor
}

package models

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

// Account represents a financial account within the ledger.
// Classification columns (placement, system_code, party_type) drive report
// derivation and GST posting; they are typed lookups, never inferred from
// the account name.
type Account struct {
	AccountID       string          `db:"account_id"`
	WorkspaceID     string          `db:"workspace_id"`
	Name            string          `db:"name"`
	AccountType     AccountType     `db:"account_type"`
	Placement       string          `db:"placement"`   // DIRECT / INDIRECT / NONE
	SystemCode      string          `db:"system_code"` // Well-known role, empty for user accounts
	PartyType       string          `db:"party_type"`  // CUSTOMER / VENDOR / NONE
	GSTIN           string          `db:"gstin"`       // Party GSTIN, empty for unregistered
	CurrencyCode    string          `db:"currency_code"`
	ParentAccountID string          `db:"parent_account_id"` // Nullable
	Description     string          `db:"description"`
	IsActive        bool            `db:"is_active"`
	AuditFields
	Balance decimal.Decimal `db:"balance"` // Persisted account balance
}

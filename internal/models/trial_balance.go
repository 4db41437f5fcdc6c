package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// TrialBalanceUploadRow is one account row of an externally prepared trial
// balance uploaded for a workspace and date. When an upload exists for a
// reporting date it takes precedence over the derived figures.
type TrialBalanceUploadRow struct {
	RowID       string          `db:"row_id"`
	WorkspaceID string          `db:"workspace_id"`
	AsOf        time.Time       `db:"as_of"`
	AccountName string          `db:"account_name"`
	AccountType AccountType     `db:"account_type"`
	Placement   string          `db:"placement"`
	Debit       decimal.Decimal `db:"debit"`
	Credit      decimal.Decimal `db:"credit"`
	AuditFields
}

package accounting

import (
	"sort"
	"time"

	"github.com/sahajbooks/gst_books_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// NetEpsilon is the threshold below which a netted account is dropped from
// the trial balance entirely: it nets to nothing and would only clutter the
// report. 0.01 currency units, i.e. one paisa.
var NetEpsilon = decimal.NewFromFloat(0.01)

// AccountMeta carries the classification metadata a trial balance row needs.
type AccountMeta struct {
	Name       string
	Type       domain.AccountType
	Placement  domain.PLPlacement
	SystemCode string
}

// ReduceTrialBalance folds every voucher dated on or before the cutoff into a
// single netted debit-or-credit row per account. Accounts unknown to the meta
// lookup still get a row (classified by whichever side they net to), honouring
// the always-produce-a-report failure semantics.
//
// Given individually balanced vouchers, the emitted debit column total always
// equals the credit column total.
func ReduceTrialBalance(vouchers []domain.Voucher, cutoff time.Time, meta map[string]AccountMeta) []domain.TrialBalanceRow {
	type acc struct {
		debit  decimal.Decimal
		credit decimal.Decimal
	}
	totals := make(map[string]*acc)

	for _, v := range vouchers {
		if v.VoucherDate.After(cutoff) {
			continue
		}
		for _, e := range v.Entries {
			a, ok := totals[e.AccountID]
			if !ok {
				a = &acc{debit: decimal.Zero, credit: decimal.Zero}
				totals[e.AccountID] = a
			}
			if e.Side == domain.Debit {
				a.debit = a.debit.Add(e.Amount)
			} else {
				a.credit = a.credit.Add(e.Amount)
			}
		}
	}

	rows := make([]domain.TrialBalanceRow, 0, len(totals))
	for accountID, a := range totals {
		net := a.debit.Sub(a.credit)
		if net.Abs().LessThan(NetEpsilon) {
			continue
		}

		row := domain.TrialBalanceRow{AccountID: accountID}
		if m, ok := meta[accountID]; ok {
			row.AccountName = m.Name
			row.AccountType = m.Type
			row.Placement = m.Placement
			row.SystemCode = m.SystemCode
		} else {
			row.AccountName = accountID
			row.Placement = domain.PlacementNone
			if net.IsPositive() {
				row.AccountType = domain.Asset
			} else {
				row.AccountType = domain.Liability
			}
		}

		if net.IsPositive() {
			row.Debit = net
			row.Credit = decimal.Zero
		} else {
			row.Debit = decimal.Zero
			row.Credit = net.Neg()
		}
		rows = append(rows, row)
	}

	sort.Slice(rows, func(i, j int) bool { return rows[i].AccountName < rows[j].AccountName })
	return rows
}

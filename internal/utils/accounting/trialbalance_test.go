package accounting_test

import (
	"testing"
	"time"

	"github.com/sahajbooks/gst_books_app/internal/core/domain"
	"github.com/sahajbooks/gst_books_app/internal/utils/accounting"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func voucherOn(date time.Time, entries ...domain.VoucherEntry) domain.Voucher {
	return domain.Voucher{
		VoucherDate: date,
		Entries:     entries,
	}
}

func dr(accountID string, amount int64) domain.VoucherEntry {
	return domain.VoucherEntry{AccountID: accountID, Amount: decimal.NewFromInt(amount), Side: domain.Debit}
}

func cr(accountID string, amount int64) domain.VoucherEntry {
	return domain.VoucherEntry{AccountID: accountID, Amount: decimal.NewFromInt(amount), Side: domain.Credit}
}

func rowFor(rows []domain.TrialBalanceRow, accountID string) (domain.TrialBalanceRow, bool) {
	for _, r := range rows {
		if r.AccountID == accountID {
			return r, true
		}
	}
	return domain.TrialBalanceRow{}, false
}

func TestReduceTrialBalance_NetsPerAccount(t *testing.T) {
	date := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	meta := map[string]accounting.AccountMeta{
		"acc-sales": {Name: "Sales", Type: domain.Income, Placement: domain.PlacementDirect},
		"acc-recv":  {Name: "Receivables", Type: domain.Asset},
	}

	// Two sales postings of 1000 and 500 to the same account net to a single
	// 1500 credit row, not two rows.
	vouchers := []domain.Voucher{
		voucherOn(date, dr("acc-recv", 1000), cr("acc-sales", 1000)),
		voucherOn(date, dr("acc-recv", 500), cr("acc-sales", 500)),
	}

	rows := accounting.ReduceTrialBalance(vouchers, date, meta)
	require.Len(t, rows, 2)

	sales, ok := rowFor(rows, "acc-sales")
	require.True(t, ok)
	assert.True(t, sales.Debit.IsZero())
	assert.True(t, sales.Credit.Equal(decimal.NewFromInt(1500)))
	assert.Equal(t, domain.Income, sales.AccountType)

	recv, ok := rowFor(rows, "acc-recv")
	require.True(t, ok)
	assert.True(t, recv.Debit.Equal(decimal.NewFromInt(1500)))
	assert.True(t, recv.Credit.IsZero())
}

func TestReduceTrialBalance_DebitsEqualCredits(t *testing.T) {
	date := time.Date(2025, 6, 30, 0, 0, 0, 0, time.UTC)
	vouchers := []domain.Voucher{
		voucherOn(date, dr("a", 1180), cr("b", 1000), cr("c", 90), cr("d", 90)),
		voucherOn(date, dr("b", 250), cr("a", 250)),
		voucherOn(date, dr("e", 42), cr("a", 42)),
	}

	rows := accounting.ReduceTrialBalance(vouchers, date, nil)
	tb := domain.DatedTrialBalance{Rows: rows}
	assert.True(t, tb.TotalDebit().Equal(tb.TotalCredit()))
	assert.True(t, tb.Balanced())
}

func TestReduceTrialBalance_CutoffExcludesLaterVouchers(t *testing.T) {
	cutoff := time.Date(2025, 6, 30, 0, 0, 0, 0, time.UTC)
	vouchers := []domain.Voucher{
		voucherOn(cutoff, dr("a", 100), cr("b", 100)),
		voucherOn(cutoff.AddDate(0, 0, 1), dr("a", 999), cr("b", 999)),
	}

	rows := accounting.ReduceTrialBalance(vouchers, cutoff, nil)
	a, ok := rowFor(rows, "a")
	require.True(t, ok)
	assert.True(t, a.Debit.Equal(decimal.NewFromInt(100)))
}

func TestReduceTrialBalance_DropsNearZeroNet(t *testing.T) {
	date := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	// Account "wash" debits and credits the same amount: its net is below the
	// one paisa threshold and it must not appear at all.
	vouchers := []domain.Voucher{
		voucherOn(date, dr("wash", 100), cr("sales", 100)),
		voucherOn(date, dr("cash", 100), cr("wash", 100)),
	}

	rows := accounting.ReduceTrialBalance(vouchers, date, nil)
	_, ok := rowFor(rows, "wash")
	assert.False(t, ok)
	require.Len(t, rows, 2)
}

func TestReduceTrialBalance_UnknownAccountClassifiedBySide(t *testing.T) {
	date := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	vouchers := []domain.Voucher{
		voucherOn(date, dr("mystery-debit", 100), cr("mystery-credit", 100)),
	}

	rows := accounting.ReduceTrialBalance(vouchers, date, map[string]accounting.AccountMeta{})
	d, ok := rowFor(rows, "mystery-debit")
	require.True(t, ok)
	assert.Equal(t, domain.Asset, d.AccountType)
	assert.Equal(t, "mystery-debit", d.AccountName)

	c, ok := rowFor(rows, "mystery-credit")
	require.True(t, ok)
	assert.Equal(t, domain.Liability, c.AccountType)
}

package loan_test

import (
	"testing"

	"github.com/sahajbooks/gst_books_app/internal/utils/loan"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMonthlyEMI(t *testing.T) {
	emi := loan.MonthlyEMI(decimal.NewFromInt(500000), decimal.NewFromInt(10), 60)
	assert.InDelta(t, 10623.52, emi.InexactFloat64(), 0.01)

	// Zero rate degrades to straight-line repayment.
	emi = loan.MonthlyEMI(decimal.NewFromInt(120000), decimal.Zero, 12)
	assert.True(t, emi.Equal(decimal.NewFromInt(10000)))

	assert.True(t, loan.MonthlyEMI(decimal.NewFromInt(100), decimal.NewFromInt(10), 0).IsZero())
}

func TestBuildSchedule(t *testing.T) {
	principal := decimal.NewFromInt(500000)
	schedule := loan.BuildSchedule(principal, decimal.NewFromInt(10), 60)

	require.Len(t, schedule.Installments, 60)
	assert.InDelta(t, 10623.52, schedule.EMI.InexactFloat64(), 0.01)

	first := schedule.Installments[0]
	assert.Equal(t, 1, first.Month)
	assert.True(t, first.OpeningBalance.Equal(principal))
	// First month's interest on the full principal at 10%/12.
	assert.InDelta(t, 4166.67, first.Interest.InexactFloat64(), 0.01)
	assert.True(t, first.ClosingBalance.Equal(first.OpeningBalance.Sub(first.Principal)))

	// The final installment absorbs rounding drift and clears the balance.
	last := schedule.Installments[len(schedule.Installments)-1]
	assert.Equal(t, 60, last.Month)
	assert.True(t, last.ClosingBalance.IsZero(), "closing balance %s", last.ClosingBalance)
	assert.True(t, last.Principal.Equal(last.OpeningBalance))

	// Principal parts sum back to the borrowed amount.
	paid := decimal.Zero
	for _, inst := range schedule.Installments {
		paid = paid.Add(inst.Principal)
	}
	assert.True(t, paid.Equal(principal), "principal repaid %s", paid)

	// Interest declines as the balance amortizes.
	assert.True(t, last.Interest.LessThan(first.Interest))
	assert.True(t, schedule.TotalInterest.IsPositive())
}

func TestBuildSchedule_ZeroRate(t *testing.T) {
	schedule := loan.BuildSchedule(decimal.NewFromInt(120000), decimal.Zero, 12)

	require.Len(t, schedule.Installments, 12)
	assert.True(t, schedule.TotalInterest.IsZero())
	for _, inst := range schedule.Installments {
		assert.True(t, inst.Interest.IsZero())
	}
	assert.True(t, schedule.Installments[11].ClosingBalance.IsZero())
}

func TestBuildSchedule_Degenerate(t *testing.T) {
	schedule := loan.BuildSchedule(decimal.Zero, decimal.NewFromInt(10), 12)
	assert.Empty(t, schedule.Installments)

	schedule = loan.BuildSchedule(decimal.NewFromInt(1000), decimal.NewFromInt(10), 0)
	assert.Empty(t, schedule.Installments)
}

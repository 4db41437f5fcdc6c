package accounting

import (
	"fmt"

	"github.com/sahajbooks/gst_books_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CalculateSignedAmount applies the correct sign to an entry amount based on
// account type and entry side. Used in both services and repositories to keep
// balance arithmetic consistent.
func CalculateSignedAmount(entry domain.VoucherEntry, accountType domain.AccountType) (decimal.Decimal, error) {
	signedAmount := entry.Amount
	isDebit := entry.Side == domain.Debit

	// DEBIT to ASSET/EXPENSE -> Positive (+)
	// CREDIT to ASSET/EXPENSE -> Negative (-)
	// DEBIT to LIABILITY/EQUITY/INCOME -> Negative (-)
	// CREDIT to LIABILITY/EQUITY/INCOME -> Positive (+)
	switch accountType {
	case domain.Asset, domain.Expense:
		if !isDebit {
			signedAmount = signedAmount.Neg()
		}
	case domain.Liability, domain.Equity, domain.Income:
		if isDebit {
			signedAmount = signedAmount.Neg()
		}
	default:
		return decimal.Zero, fmt.Errorf("unknown account type '%s' encountered for account ID %s", accountType, entry.AccountID)
	}
	return signedAmount, nil
}

// ValidateVoucherBalance checks that a voucher's entries are well formed and
// that the debit and credit sides agree. An unbalanced voucher is rejected at
// save time and never re-validated downstream.
func ValidateVoucherBalance(entries []domain.VoucherEntry) error {
	if len(entries) < 2 {
		return fmt.Errorf("voucher must have at least two entries")
	}

	zero := decimal.Zero
	debits := zero
	credits := zero

	for _, e := range entries {
		if e.Amount.LessThanOrEqual(zero) {
			return fmt.Errorf("entry amount must be positive for account %s", e.AccountID)
		}
		if e.Side == domain.Debit {
			debits = debits.Add(e.Amount)
		} else {
			credits = credits.Add(e.Amount)
		}
	}

	if !debits.Equal(credits) {
		return fmt.Errorf("voucher does not balance: debits %s, credits %s", debits.String(), credits.String())
	}
	return nil
}

// VoucherAmount computes the economic value of a balanced voucher, i.e. the
// total of its debit side.
func VoucherAmount(entries []domain.VoucherEntry) decimal.Decimal {
	total := decimal.Zero
	for _, e := range entries {
		if e.Side == domain.Debit {
			total = total.Add(e.Amount)
		}
	}
	return total
}

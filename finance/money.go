package finance

import (
	"github.com/shopspring/decimal"
)

// =============================================================================
// MONEY HELPERS - Rounding policy and derived amounts
// =============================================================================
//
// Amounts stay unrounded through intermediate arithmetic. Rounding happens
// only where the rules say it does: VAT and prorated rent round half-up to
// 2 places at the point of computation, percentages to 4 places; everything
// else rounds at the presentation boundary.

var (
	twelve  = decimal.NewFromInt(12)
	hundred = decimal.NewFromInt(100)

	// DefaultVATPercent is the fallback VAT rate.
	DefaultVATPercent = decimal.NewFromInt(15)
)

// roundMoney rounds half-up to 2 fractional digits. decimal's Round is
// half-away-from-zero, which equals half-up for the non-negative amounts
// used here.
func roundMoney(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}

// roundPercent rounds half-up to 4 fractional digits.
func roundPercent(d decimal.Decimal) decimal.Decimal {
	return d.Round(4)
}

// VATFromPercent computes base x percent / 100, rounded to 2 places.
// A non-positive base yields zero; a non-positive percent falls back to
// DefaultVATPercent.
func VATFromPercent(base, percent decimal.Decimal) decimal.Decimal {
	if base.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero
	}
	if percent.LessThanOrEqual(decimal.Zero) {
		percent = DefaultVATPercent
	}
	return roundMoney(base.Mul(percent).Div(hundred))
}

// RentChange returns the change amount (2 places) and percentage
// (4 places) between two annual rents. A zero old rent yields a zero
// percentage rather than a division error.
func RentChange(oldRent, newRent decimal.Decimal) (amount, percent decimal.Decimal) {
	if oldRent.IsZero() && newRent.IsZero() {
		return decimal.Zero, decimal.Zero
	}
	amount = roundMoney(newRent.Sub(oldRent))
	if oldRent.IsPositive() {
		percent = roundPercent(amount.Div(oldRent).Mul(hundred))
	} else {
		percent = decimal.Zero
	}
	return amount, percent
}

// periodRent converts an annual rent into the rent for one billing period
// of the given length in months. Unrounded.
func periodRent(annualRent decimal.Decimal, periodMonths int) decimal.Decimal {
	return annualRent.Mul(decimal.NewFromInt(int64(periodMonths))).Div(twelve)
}

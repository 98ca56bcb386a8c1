package engine

import (
	"github.com/shopspring/decimal"
)

// ProgressiveTax applies a marginal bracket schedule to a taxable income.
// Each bracket taxes the slice of income between the previous threshold and
// its own; the walk stops once income no longer exceeds the previous
// threshold. Pure, never negative, monotone non-decreasing in income.
//
// Brackets are assumed valid (see validateBrackets); rule sets are checked
// once at load time rather than on every call.
func ProgressiveTax(income decimal.Decimal, brackets []TaxBracket) decimal.Decimal {
	if income.Sign() <= 0 {
		return decimal.Zero
	}

	tax := decimal.Zero
	prev := decimal.Zero
	for _, b := range brackets {
		if !income.GreaterThan(prev) {
			break
		}
		upper := income
		if b.Upper != nil && b.Upper.LessThan(income) {
			upper = *b.Upper
		}
		tax = tax.Add(upper.Sub(prev).Mul(b.Rate))
		if b.Upper == nil {
			break
		}
		prev = *b.Upper
	}
	return tax
}

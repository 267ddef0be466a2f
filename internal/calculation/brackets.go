package calculation

import (
	"github.com/ilsalary/net-salary-calculator/internal/domain"
	"github.com/shopspring/decimal"
)

// CalculateBracketTax applies progressive brackets to a monthly taxable income.
// Brackets must be sorted ascending and contiguous from zero.
func CalculateBracketTax(income decimal.Decimal, brackets []domain.TaxBracket) decimal.Decimal {
	if income.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero
	}

	totalTax := decimal.Zero
	for _, bracket := range brackets {
		if income.LessThanOrEqual(bracket.Min) {
			break
		}
		upper := income
		if !bracket.IsUnbounded() {
			upper = decimal.Min(income, *bracket.Max)
		}
		totalTax = totalTax.Add(upper.Sub(bracket.Min).Mul(bracket.Rate))
		if bracket.IsUnbounded() || income.LessThanOrEqual(*bracket.Max) {
			break
		}
	}
	return totalTax
}

// MarginalRate returns the rate of the bracket the last shekel of income falls in.
func MarginalRate(income decimal.Decimal, brackets []domain.TaxBracket) decimal.Decimal {
	if income.LessThanOrEqual(decimal.Zero) || len(brackets) == 0 {
		return decimal.Zero
	}
	for _, bracket := range brackets {
		if bracket.IsUnbounded() || income.LessThanOrEqual(*bracket.Max) {
			return bracket.Rate
		}
	}
	return brackets[len(brackets)-1].Rate
}

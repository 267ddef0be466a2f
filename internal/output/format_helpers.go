package output

import (
	"strconv"

	"github.com/shopspring/decimal"

	"github.com/ilsalary/net-salary-calculator/internal/domain"
	money "github.com/ilsalary/net-salary-calculator/pkg/decimal"
)

// FormatCurrency formats a decimal as shekels with thousands separators and 2 decimals.
func FormatCurrency(amount decimal.Decimal) string {
	return money.NewMoneyFromDecimal(amount).Format()
}

// FormatPercentage formats a decimal as a percentage with 2 decimals.
func FormatPercentage(amount decimal.Decimal) string { return amount.StringFixed(2) + "%" }

// FormatPoints renders a credit point count with 2 decimals.
func FormatPoints(points decimal.Decimal) string { return points.StringFixed(2) }

func intToString(i int) string { return strconv.Itoa(i) }

func boolToString(b bool) string { return strconv.FormatBool(b) }

// deductionLines splits a ledger into the lines that count toward total deductions
// and the informational ones.
func deductionLines(lines []domain.DeductionBreakdown) (counted, informational []domain.DeductionBreakdown) {
	for _, l := range lines {
		if l.Informational {
			informational = append(informational, l)
			continue
		}
		counted = append(counted, l)
	}
	return counted, informational
}

package decimal

import (
	"strings"

	"github.com/shopspring/decimal"
)

// CurrencySymbol is the New Israeli Shekel sign used for display.
const CurrencySymbol = "₪"

var hundred = decimal.NewFromInt(100)

// Money represents a monetary amount with proper financial precision
type Money struct {
	decimal.Decimal
}

// NewMoneyFromDecimal creates a new Money instance from a decimal.Decimal
func NewMoneyFromDecimal(d decimal.Decimal) Money {
	return Money{d}
}

// Annual converts a monthly amount to annual
func (m Money) Annual() Money {
	return Money{m.Decimal.Mul(decimal.NewFromInt(12))}
}

// Monthly converts an annual amount to monthly
func (m Money) Monthly() Money {
	return Money{m.Decimal.Div(decimal.NewFromInt(12))}
}

// String returns the string representation with two decimal places
func (m Money) String() string {
	return m.Decimal.StringFixed(2)
}

// Format renders the amount with the shekel sign and thousands separators, e.g. ₪12,345.67.
func (m Money) Format() string {
	s := m.Decimal.StringFixed(2)
	sign := ""
	if strings.HasPrefix(s, "-") {
		sign = "-"
		s = s[1:]
	}
	intPart, frac, _ := strings.Cut(s, ".")
	return sign + CurrencySymbol + groupThousands(intPart) + "." + frac
}

func groupThousands(digits string) string {
	if len(digits) <= 3 {
		return digits
	}
	var b strings.Builder
	lead := len(digits) % 3
	if lead > 0 {
		b.WriteString(digits[:lead])
	}
	for i := lead; i < len(digits); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(digits[i : i+3])
	}
	return b.String()
}

// NonNegative clamps a decimal at zero.
func NonNegative(d decimal.Decimal) decimal.Decimal {
	if d.IsNegative() {
		return decimal.Zero
	}
	return d
}

// FromPercent converts a percentage such as 7.5 into a rate such as 0.075.
func FromPercent(p decimal.Decimal) decimal.Decimal {
	return p.Div(hundred)
}

// ToPercent converts a rate such as 0.1 into a percentage such as 10.
func ToPercent(r decimal.Decimal) decimal.Decimal {
	return r.Mul(hundred)
}

package calculation

import (
	"testing"

	"github.com/ilsalary/net-salary-calculator/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

// legacyBrackets are the 2024 monthly brackets.
func legacyBrackets() []domain.TaxBracket {
	return []domain.TaxBracket{
		{Min: d("0"), Max: dp("6790"), Rate: d("0.10")},
		{Min: d("6790"), Max: dp("9730"), Rate: d("0.14")},
		{Min: d("9730"), Max: dp("15620"), Rate: d("0.20")},
		{Min: d("15620"), Max: dp("21710"), Rate: d("0.31")},
		{Min: d("21710"), Max: dp("45180"), Rate: d("0.35")},
		{Min: d("45180"), Max: dp("57880"), Rate: d("0.47")},
		{Min: d("57880"), Max: nil, Rate: d("0.50")},
	}
}

func TestCalculateBracketTax(t *testing.T) {
	tests := []struct {
		name     string
		income   string
		expected string
	}{
		{"zero income", "0", "0"},
		{"negative income", "-500", "0"},
		{"first bracket", "5000", "500"},
		{"exactly at first boundary", "6790", "679"},
		{"second bracket", "8000", "848.4"},
		{"spanning four brackets", "20000", "3626.4"},
		{"top bracket", "100000", "39400"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assertDecimal(t, tt.expected, CalculateBracketTax(d(tt.income), legacyBrackets()))
		})
	}
}

func TestCalculateBracketTax_Monotonic(t *testing.T) {
	brackets := testBrackets()
	previous := decimal.Zero
	for income := int64(0); income <= 80000; income += 250 {
		tax := CalculateBracketTax(decimal.NewFromInt(income), brackets)
		assert.True(t, tax.GreaterThanOrEqual(previous), "tax decreased at income %d", income)
		previous = tax
	}
}

func TestCalculateBracketTax_ContinuousAtBoundaries(t *testing.T) {
	brackets := testBrackets()
	epsilon := d("0.01")
	for _, b := range brackets {
		if b.IsUnbounded() {
			continue
		}
		below := CalculateBracketTax(b.Max.Sub(epsilon), brackets)
		at := CalculateBracketTax(*b.Max, brackets)
		above := CalculateBracketTax(b.Max.Add(epsilon), brackets)

		assert.True(t, at.Sub(below).Equal(epsilon.Mul(b.Rate)), "jump below %s", b.Max)
		assert.True(t, above.Sub(at).LessThanOrEqual(epsilon), "jump above %s", b.Max)
	}
}

func TestMarginalRate(t *testing.T) {
	brackets := testBrackets()
	assertDecimal(t, "0", MarginalRate(d("0"), brackets))
	assertDecimal(t, "0.10", MarginalRate(d("7010"), brackets))
	assertDecimal(t, "0.14", MarginalRate(d("7010.01"), brackets))
	assertDecimal(t, "0.50", MarginalRate(d("100000"), brackets))
	assertDecimal(t, "0", MarginalRate(d("1000"), nil))
}

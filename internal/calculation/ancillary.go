package calculation

import (
	"github.com/ilsalary/net-salary-calculator/internal/domain"
	money "github.com/ilsalary/net-salary-calculator/pkg/decimal"
	"github.com/shopspring/decimal"
)

// CalculateDonationCredit returns the section 46 credit for a monthly donation.
func CalculateDonationCredit(donation decimal.Decimal, cfg domain.DonationsConfig) decimal.Decimal {
	if donation.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero
	}
	return decimal.Min(donation, cfg.MonthlyCap).Mul(cfg.CreditRate)
}

// CalculateDisabilityExemption removes up to the monthly limit from the taxable base.
func CalculateDisabilityExemption(base decimal.Decimal, exempt bool, cfg domain.DisabilityConfig) domain.DisabilityExemptionResult {
	base = money.NonNegative(base)
	if !exempt {
		return domain.DisabilityExemptionResult{Exempted: decimal.Zero, ResidualBase: base}
	}
	exempted := decimal.Min(base, money.NonNegative(cfg.MonthlyLimit))
	return domain.DisabilityExemptionResult{Exempted: exempted, ResidualBase: base.Sub(exempted)}
}

// CalculateFringeBenefits sums benefits in kind; negative entries count as zero.
func CalculateFringeBenefits(f domain.FringeBenefits) decimal.Decimal {
	return money.NonNegative(f.Car).
		Add(money.NonNegative(f.Phone)).
		Add(money.NonNegative(f.Meals)).
		Add(money.NonNegative(f.Other))
}

package calculation

import (
	"github.com/ilsalary/net-salary-calculator/internal/domain"
	money "github.com/ilsalary/net-salary-calculator/pkg/decimal"
	"github.com/shopspring/decimal"
)

// CalculateExpenses returns actual expenses when declared, otherwise the flat expense rate.
func CalculateExpenses(se *domain.SelfEmployedIncome) decimal.Decimal {
	if se == nil {
		return decimal.Zero
	}
	if se.ActualExpenses != nil {
		return *se.ActualExpenses
	}
	return se.Revenue.Mul(money.FromPercent(se.ExpenseRate))
}

// CalculateProfit converts revenue to profit. Profit is never negative.
func CalculateProfit(se *domain.SelfEmployedIncome) decimal.Decimal {
	if se == nil {
		return decimal.Zero
	}
	return money.NonNegative(se.Revenue.Sub(CalculateExpenses(se)))
}

// CalculateVAT returns the VAT a VAT-registered business owes on its revenue.
func CalculateVAT(se *domain.SelfEmployedIncome, cfg domain.SelfEmployedConfig) decimal.Decimal {
	if se == nil || !se.Type.ChargesVAT() {
		return decimal.Zero
	}
	return money.NonNegative(se.Revenue).Mul(cfg.VATRate)
}

// CalculateSelfEmployedTaxBase subtracts the pre-tax deductions from profit.
func CalculateSelfEmployedTaxBase(profit, pension, studyFund, insuranceDeductible decimal.Decimal) decimal.Decimal {
	return money.NonNegative(profit.Sub(pension).Sub(studyFund).Sub(insuranceDeductible))
}

package calculation

import (
	"github.com/ilsalary/net-salary-calculator/internal/domain"
	money "github.com/ilsalary/net-salary-calculator/pkg/decimal"
	"github.com/shopspring/decimal"
)

// pensionTaxCredit is the credit on the employee deposit, capped at the recognized monthly amount.
func pensionTaxCredit(employee decimal.Decimal, cfg domain.PensionConfig) decimal.Decimal {
	return decimal.Min(employee, cfg.MaxRecognizedEmployee7Pct).Mul(cfg.TaxCreditRate)
}

// CalculatePension computes mandatory pension and severance deposits for a salaried employee.
// The override replaces the gross salary as pension base when provided.
func CalculatePension(gross decimal.Decimal, override *decimal.Decimal, cfg domain.PensionConfig) domain.PensionResult {
	base := gross
	if override != nil {
		base = *override
	}
	base = money.NonNegative(base)

	employee := base.Mul(cfg.EmployeeRate)
	result := domain.PensionResult{
		Employee:                 employee,
		EmployerPension:          base.Mul(cfg.EmployerPensionRate),
		EmployerSeverance:        base.Mul(cfg.EmployerSeveranceRate),
		TaxCredit:                pensionTaxCredit(employee, cfg),
		TaxableBenefitToEmployee: decimal.Zero,
	}
	// Employer deposits above the recognized base are imputed as income.
	if cfg.EmployerRecognizedBase.IsPositive() && base.GreaterThan(cfg.EmployerRecognizedBase) {
		result.TaxableBenefitToEmployee = base.Sub(cfg.EmployerRecognizedBase).Mul(cfg.EmployerPensionRate)
	}
	return result
}

// CalculateSelfEmployedPension computes the deposits a business owner makes on their profit.
// There is no employer, so no severance and no imputed benefit.
func CalculateSelfEmployedPension(profit decimal.Decimal, cfg domain.PensionConfig) domain.PensionResult {
	base := money.NonNegative(profit)
	if cfg.SelfEmployedMaxAnnual.IsPositive() {
		base = decimal.Min(base, money.NewMoneyFromDecimal(cfg.SelfEmployedMaxAnnual).Monthly().Decimal)
	}
	employee := base.Mul(cfg.SelfEmployedMinRate)
	return domain.PensionResult{
		Employee:                 employee,
		EmployerPension:          base.Mul(cfg.SelfEmployedEmployerRate),
		EmployerSeverance:        decimal.Zero,
		TaxCredit:                pensionTaxCredit(employee, cfg),
		TaxableBenefitToEmployee: decimal.Zero,
	}
}

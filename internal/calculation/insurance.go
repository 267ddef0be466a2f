package calculation

import (
	"github.com/ilsalary/net-salary-calculator/internal/domain"
	money "github.com/ilsalary/net-salary-calculator/pkg/decimal"
	"github.com/shopspring/decimal"
)

// tierRates is one rate pair over the shared Bituach Leumi thresholds.
type tierRates struct {
	rate1 decimal.Decimal
	rate2 decimal.Decimal
}

func employeeRates(cfg domain.SocialSecurityConfig) tierRates {
	return tierRates{cfg.EmployeeRate1, cfg.EmployeeRate2}
}

func employerRates(cfg domain.SocialSecurityConfig) tierRates {
	return tierRates{cfg.EmployerRate1, cfg.EmployerRate2}
}

func selfEmployedRates(cfg domain.SocialSecurityConfig) tierRates {
	return tierRates{cfg.SelfEmployedRate1, cfg.SelfEmployedRate2}
}

// overlap is the length of [lo, hi] that falls inside [from, to].
func overlap(lo, hi, from, to decimal.Decimal) decimal.Decimal {
	return money.NonNegative(decimal.Min(hi, to).Sub(decimal.Max(lo, from)))
}

// sliceContribution prices the salary slice [lo, hi] of a person's cumulative income.
// Income above threshold 2 contributes nothing.
func sliceContribution(lo, hi decimal.Decimal, cfg domain.SocialSecurityConfig, rates tierRates) decimal.Decimal {
	tier1 := overlap(lo, hi, decimal.Zero, cfg.Threshold1)
	tier2 := overlap(lo, hi, cfg.Threshold1, cfg.Threshold2)
	return tier1.Mul(rates.rate1).Add(tier2.Mul(rates.rate2))
}

func tieredContribution(base decimal.Decimal, cfg domain.SocialSecurityConfig, rates tierRates) decimal.Decimal {
	return sliceContribution(decimal.Zero, money.NonNegative(base), cfg, rates)
}

// CalculateEmployeeInsurance returns the employee's Bituach Leumi and health contribution.
func CalculateEmployeeInsurance(base decimal.Decimal, cfg domain.SocialSecurityConfig) decimal.Decimal {
	return tieredContribution(base, cfg, employeeRates(cfg))
}

// CalculateEmployerInsurance returns the employer's Bituach Leumi contribution.
func CalculateEmployerInsurance(base decimal.Decimal, cfg domain.SocialSecurityConfig) decimal.Decimal {
	return tieredContribution(base, cfg, employerRates(cfg))
}

// CalculateInsurance returns both sides of a salaried contribution.
func CalculateInsurance(base decimal.Decimal, cfg domain.SocialSecurityConfig) domain.InsuranceResult {
	return domain.InsuranceResult{
		Employee: CalculateEmployeeInsurance(base, cfg),
		Employer: CalculateEmployerInsurance(base, cfg),
	}
}

func selfEmployedResult(contribution decimal.Decimal, cfg domain.SocialSecurityConfig) domain.SelfEmployedInsuranceResult {
	return domain.SelfEmployedInsuranceResult{
		Contribution:     contribution,
		DeductibleAmount: contribution.Mul(cfg.SelfEmployedDeductionRate),
	}
}

// CalculateSelfEmployedInsurance prices a business profit, lifting it to the statutory
// minimum income first. Zero profit owes nothing.
func CalculateSelfEmployedInsurance(profit decimal.Decimal, cfg domain.SocialSecurityConfig) domain.SelfEmployedInsuranceResult {
	if profit.LessThanOrEqual(decimal.Zero) {
		return selfEmployedResult(decimal.Zero, cfg)
	}
	base := decimal.Max(profit, cfg.SelfEmployedMinIncome)
	return selfEmployedResult(tieredContribution(base, cfg, selfEmployedRates(cfg)), cfg)
}

// CalculateMultiJobInsurance splits one person's contribution across several jobs.
// Jobs fill the tiers in input order, so a second job starts where the first left off.
// The slices partition one cumulative curve, so they sum to the contribution on the
// combined salary and the ceiling holds without rescaling.
func CalculateMultiJobInsurance(jobs []domain.JobIncome, cfg domain.SocialSecurityConfig) []domain.JobInsurance {
	out := make([]domain.JobInsurance, len(jobs))
	cumulative := decimal.Zero
	for i, job := range jobs {
		lo := cumulative
		hi := lo.Add(money.NonNegative(job.GrossSalary))
		out[i] = domain.JobInsurance{
			JobID:    job.ID,
			Employee: sliceContribution(lo, hi, cfg, employeeRates(cfg)),
			Employer: sliceContribution(lo, hi, cfg, employerRates(cfg)),
		}
		cumulative = hi
	}
	return out
}

// CalculateCombinedInsurance prices a salary plus a business profit. The salary is
// priced normally; the profit only gets the tier room the salary left unused.
func CalculateCombinedInsurance(salary, profit decimal.Decimal, cfg domain.SocialSecurityConfig) (domain.InsuranceResult, domain.SelfEmployedInsuranceResult) {
	employee := CalculateInsurance(salary, cfg)
	lo := money.NonNegative(salary)
	hi := lo.Add(money.NonNegative(profit))
	selfEmployed := selfEmployedResult(sliceContribution(lo, hi, cfg, selfEmployedRates(cfg)), cfg)
	return employee, selfEmployed
}

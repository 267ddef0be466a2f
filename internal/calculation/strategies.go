package calculation

import (
	"github.com/ilsalary/net-salary-calculator/internal/domain"
	money "github.com/ilsalary/net-salary-calculator/pkg/decimal"
	"github.com/shopspring/decimal"
)

// sourceFigures collects what an income strategy contributes before the shared tax steps.
type sourceFigures struct {
	income       decimal.Decimal // salary or profit that net pay is measured from
	taxableGross decimal.Decimal // income plus imputed benefits
	fringe       decimal.Decimal

	insurance           decimal.Decimal
	insuranceEmployer   decimal.Decimal
	insuranceDeductible decimal.Decimal // part of insurance that lowers the taxable base

	pension           domain.PensionResult
	studyFund         decimal.Decimal
	studyFundEmployer decimal.Decimal
	vat               decimal.Decimal
}

// taxableBase is what remains for the bracket calculator before any exemption.
func (f sourceFigures) taxableBase() decimal.Decimal {
	return money.NonNegative(f.taxableGross.Sub(f.insuranceDeductible).Sub(f.pension.Employee).Sub(f.studyFund))
}

// paid is everything deducted from income except income tax.
func (f sourceFigures) paid() decimal.Decimal {
	return f.insurance.Add(f.pension.Employee).Add(f.studyFund).Add(f.vat)
}

// incomeStrategy is the employment-specific part of the pipeline. The pipeline
// calls computeBase, then computePension, then computeInsurance.
type incomeStrategy interface {
	computeBase(in *domain.CalculationInput, rules *domain.RuleTable) (sourceFigures, error)
	computePension(f *sourceFigures, in *domain.CalculationInput, rules *domain.RuleTable)
	computeInsurance(f *sourceFigures, in *domain.CalculationInput, rules *domain.RuleTable)
}

// studyFundRate caps a requested percent at the table's maximum when one is set.
func studyFundRate(requested, max decimal.Decimal) decimal.Decimal {
	if max.IsPositive() && requested.GreaterThan(max) {
		return money.FromPercent(max)
	}
	return money.FromPercent(requested)
}

type employeeStrategy struct{}

func (employeeStrategy) computeBase(in *domain.CalculationInput, rules *domain.RuleTable) (sourceFigures, error) {
	fringe := CalculateFringeBenefits(in.FringeBenefits)
	f := sourceFigures{
		income:       in.GrossSalary,
		fringe:       fringe,
		taxableGross: in.GrossSalary.Add(fringe),
	}
	if in.HasStudyFund {
		f.studyFund = in.GrossSalary.Mul(studyFundRate(in.StudyFundEmployeeRate, rules.StudyFund.EmployeeMaxRate))
		f.studyFundEmployer = in.GrossSalary.Mul(studyFundRate(in.StudyFundEmployerRate, rules.StudyFund.EmployerMaxRate))
	}
	return f, nil
}

func (employeeStrategy) computePension(f *sourceFigures, in *domain.CalculationInput, rules *domain.RuleTable) {
	f.pension = CalculatePension(in.GrossSalary, in.PensionBase, rules.Pension)
	f.taxableGross = f.taxableGross.Add(f.pension.TaxableBenefitToEmployee)
}

func (employeeStrategy) computeInsurance(f *sourceFigures, _ *domain.CalculationInput, rules *domain.RuleTable) {
	ins := CalculateInsurance(f.taxableGross, rules.SocialSecurity)
	f.insurance = ins.Employee
	f.insuranceEmployer = ins.Employer
	f.insuranceDeductible = ins.Employee
}

type selfEmployedStrategy struct{}

func (selfEmployedStrategy) computeBase(in *domain.CalculationInput, rules *domain.RuleTable) (sourceFigures, error) {
	if in.SelfEmployedIncome == nil {
		return sourceFigures{}, ErrMissingSelfEmployedIncome
	}
	profit := CalculateProfit(in.SelfEmployedIncome)
	f := sourceFigures{
		income:       profit,
		taxableGross: profit,
		vat:          CalculateVAT(in.SelfEmployedIncome, rules.SelfEmployed),
	}
	if in.HasStudyFund {
		f.studyFund = profit.Mul(studyFundRate(in.StudyFundEmployeeRate, rules.StudyFund.EmployeeMaxRate))
	}
	return f, nil
}

func (selfEmployedStrategy) computePension(f *sourceFigures, _ *domain.CalculationInput, rules *domain.RuleTable) {
	f.pension = CalculateSelfEmployedPension(f.income, rules.Pension)
}

func (selfEmployedStrategy) computeInsurance(f *sourceFigures, _ *domain.CalculationInput, rules *domain.RuleTable) {
	ins := CalculateSelfEmployedInsurance(f.income, rules.SocialSecurity)
	f.insurance = ins.Contribution
	f.insuranceDeductible = ins.DeductibleAmount
}

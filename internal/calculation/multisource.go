package calculation

import (
	"fmt"

	"github.com/ilsalary/net-salary-calculator/internal/domain"
	money "github.com/ilsalary/net-salary-calculator/pkg/decimal"
	"github.com/shopspring/decimal"
)

// ComputeMultiSourceSalary calculates several income streams that share one pool of credit points.
func (e *Engine) ComputeMultiSourceSalary(in *domain.CalculationInput, rules *domain.RuleTable) (*domain.MultiSourceCalculationResult, error) {
	p, err := e.newPipeline(in, rules)
	if err != nil {
		return nil, err
	}

	credits := SummarizeCreditPoints(CalculateCreditPoints(in, rules, p.asOf), rules.CreditPoints)
	result := &domain.MultiSourceCalculationResult{
		TaxYear:                rules.TaxYear,
		AsOf:                   domain.DateOf(p.asOf),
		EmploymentType:         in.EmploymentType,
		TotalCreditPoints:      credits.TotalPoints,
		TotalCreditPointsValue: credits.MonthlyValue,
		CreditBreakdown:        credits.Breakdown,
	}

	switch in.EmploymentType {
	case domain.EmploymentMultipleEmployers:
		if len(in.Jobs) == 0 {
			return nil, fmt.Errorf("%w: multiple employers requires at least one job", ErrInvalidInput)
		}
		p.allocateJobs(result, credits.MonthlyValue)
	case domain.EmploymentCombined:
		if in.SelfEmployedIncome == nil {
			return nil, ErrMissingSelfEmployedIncome
		}
		p.allocateCombined(result, credits.MonthlyValue)
	default:
		return nil, fmt.Errorf("%w: %q is not a multi-source type", ErrUnsupportedEmploymentType, in.EmploymentType)
	}

	used := decimal.Zero
	for _, src := range result.Sources {
		result.TotalGross = result.TotalGross.Add(src.GrossIncome)
		result.TotalBituachLeumi = result.TotalBituachLeumi.Add(src.BituachLeumi)
		result.TotalPension = result.TotalPension.Add(src.Pension)
		result.TotalTax = result.TotalTax.Add(src.FinalTax)
		result.TotalDeductions = result.TotalDeductions.Add(src.TotalDeductions)
		result.TotalNet = result.TotalNet.Add(src.NetIncome)
		used = used.Add(src.CreditPointsUsed)
	}
	result.CreditValueRemaining = money.NonNegative(credits.MonthlyValue.Sub(used))
	result.CreditPointsRemaining = decimal.Zero
	if rules.CreditPoints.ValuePerPointMonthly.IsPositive() {
		result.CreditPointsRemaining = result.CreditValueRemaining.Div(rules.CreditPoints.ValuePerPointMonthly)
	}

	p.logger.Infof("%s calculation: sources=%d gross=%s tax=%s net=%s", in.EmploymentType, len(result.Sources),
		result.TotalGross.StringFixed(2), result.TotalTax.StringFixed(2), result.TotalNet.StringFixed(2))
	return result, nil
}

// allocateJobs gives each job its declared share of the credit pool. A share larger
// than the job's tax is lost rather than passed to another job.
func (p *pipeline) allocateJobs(result *domain.MultiSourceCalculationResult, pool decimal.Decimal) {
	insurance := CalculateMultiJobInsurance(p.in.Jobs, p.rules.SocialSecurity)

	percentSum := decimal.Zero
	for i, job := range p.in.Jobs {
		percentSum = percentSum.Add(job.CreditPointsPercent)

		gross := money.NonNegative(job.GrossSalary)
		employer := CalculatePension(gross, nil, p.rules.Pension)
		pension := gross.Mul(money.FromPercent(job.PensionRate))
		base := gross.Sub(insurance[i].Employee).Sub(pension)
		allowance := pool.Mul(money.FromPercent(job.CreditPointsPercent))
		tax := p.taxSource(base, taxOptions{creditAllowance: allowance, localityIncome: gross})
		deductions := insurance[i].Employee.Add(pension).Add(tax.finalTax)

		id := job.ID
		if id == "" {
			id = fmt.Sprintf("job_%d", i+1)
		}
		result.Sources = append(result.Sources, domain.IncomeSourceResult{
			SourceID:              id,
			SourceName:            fmt.Sprintf("Job %d", i+1),
			GrossIncome:           gross,
			BituachLeumi:          insurance[i].Employee,
			Pension:               pension,
			EmployerPension:       employer.EmployerPension,
			EmployerSeverance:     employer.EmployerSeverance,
			TaxableBase:           tax.taxableBase,
			TaxBeforeCredits:      tax.taxBefore,
			CreditPointsAllocated: allowance,
			CreditPointsUsed:      tax.creditUsed,
			LocalityDiscount:      tax.locality.Discount,
			FinalTax:              tax.finalTax,
			TotalDeductions:       deductions,
			NetIncome:             gross.Sub(deductions),
		})
		if tax.locality.Warning != "" {
			result.Warnings = appendUnique(result.Warnings, tax.locality.Warning)
		}
	}

	if !percentSum.Equal(hundredPercent) {
		warning := fmt.Sprintf("Credit point percentages across jobs sum to %s%% instead of 100%%", percentSum.String())
		p.logger.Warnf("%s", warning)
		result.Warnings = append(result.Warnings, warning)
	}
}

// allocateCombined applies the whole credit pool to the salary first and passes
// whatever the salary could not absorb to the business income. The salary source
// follows the employee path without fringe benefits, donations or the disability exemption.
func (p *pipeline) allocateCombined(result *domain.MultiSourceCalculationResult, pool decimal.Decimal) {
	salary := money.NonNegative(p.in.GrossSalary)
	profit := CalculateProfit(p.in.SelfEmployedIncome)

	pension := CalculatePension(salary, p.in.PensionBase, p.rules.Pension)
	taxableGross := salary.Add(pension.TaxableBenefitToEmployee)
	studyFund := decimal.Zero
	if p.in.HasStudyFund {
		studyFund = salary.Mul(studyFundRate(p.in.StudyFundEmployeeRate, p.rules.StudyFund.EmployeeMaxRate))
	}
	employeeIns, selfIns := CalculateCombinedInsurance(taxableGross, profit, p.rules.SocialSecurity)

	employeeBase := money.NonNegative(taxableGross.Sub(employeeIns.Employee).Sub(pension.Employee).Sub(studyFund))
	employeeTax := p.taxSource(employeeBase, taxOptions{creditAllowance: pool, localityIncome: salary})
	employeeDeductions := employeeIns.Employee.Add(pension.Employee).Add(studyFund).Add(employeeTax.finalTax)
	remaining := pool.Sub(employeeTax.creditUsed)

	selfPension := CalculateSelfEmployedPension(profit, p.rules.Pension)
	selfBase := CalculateSelfEmployedTaxBase(profit, selfPension.Employee, decimal.Zero, selfIns.DeductibleAmount)
	selfTax := p.taxSource(selfBase, taxOptions{creditAllowance: remaining, localityIncome: profit})
	selfDeductions := selfIns.Contribution.Add(selfPension.Employee).Add(selfTax.finalTax)

	result.Sources = []domain.IncomeSourceResult{
		{
			SourceID:              "employee",
			SourceName:            "Employment",
			GrossIncome:           salary,
			BituachLeumi:          employeeIns.Employee,
			Pension:               pension.Employee,
			EmployerPension:       pension.EmployerPension,
			EmployerSeverance:     pension.EmployerSeverance,
			StudyFund:             studyFund,
			TaxableBase:           employeeTax.taxableBase,
			TaxBeforeCredits:      employeeTax.taxBefore,
			CreditPointsAllocated: pool,
			CreditPointsUsed:      employeeTax.creditUsed,
			LocalityDiscount:      employeeTax.locality.Discount,
			FinalTax:              employeeTax.finalTax,
			TotalDeductions:       employeeDeductions,
			NetIncome:             salary.Sub(employeeDeductions),
		},
		{
			SourceID:              "self_employed",
			SourceName:            "Self-Employment",
			GrossIncome:           profit,
			BituachLeumi:          selfIns.Contribution,
			Pension:               selfPension.Employee,
			EmployerPension:       selfPension.EmployerPension,
			TaxableBase:           selfTax.taxableBase,
			TaxBeforeCredits:      selfTax.taxBefore,
			CreditPointsAllocated: remaining,
			CreditPointsUsed:      selfTax.creditUsed,
			LocalityDiscount:      selfTax.locality.Discount,
			FinalTax:              selfTax.finalTax,
			TotalDeductions:       selfDeductions,
			NetIncome:             profit.Sub(selfDeductions),
		},
	}
	for _, w := range []string{employeeTax.locality.Warning, selfTax.locality.Warning} {
		if w != "" {
			result.Warnings = appendUnique(result.Warnings, w)
		}
	}
}

func appendUnique(list []string, s string) []string {
	for _, existing := range list {
		if existing == s {
			return list
		}
	}
	return append(list, s)
}

package calculation

import (
	"fmt"

	"github.com/ilsalary/net-salary-calculator/internal/domain"
	"github.com/shopspring/decimal"
)

// Engine orchestrates the salary calculations. It holds no per-call state and is
// safe for concurrent use.
type Engine struct {
	Logger Logger
}

// NewEngine creates a new calculation engine with a no-op logger.
func NewEngine() *Engine {
	return &Engine{Logger: NopLogger{}}
}

// SetLogger sets the logger for the calculation engine. If nil is provided, a no-op logger is used.
func (e *Engine) SetLogger(l Logger) {
	e.Logger = loggerOrNop(l)
}

func (e *Engine) newPipeline(in *domain.CalculationInput, rules *domain.RuleTable) (*pipeline, error) {
	if err := ValidateInput(in); err != nil {
		return nil, err
	}
	if rules == nil {
		return nil, fmt.Errorf("%w: rule table is required", ErrInvalidInput)
	}
	return &pipeline{in: in, rules: rules, asOf: resolveAsOf(in), logger: loggerOrNop(e.Logger)}, nil
}

// Calculate dispatches on the input's employment type. An empty type is treated as employee.
func (e *Engine) Calculate(in *domain.CalculationInput, rules *domain.RuleTable) (*domain.Outcome, error) {
	if in == nil {
		return nil, fmt.Errorf("%w: input is required", ErrInvalidInput)
	}
	switch in.EmploymentType {
	case "", domain.EmploymentEmployee:
		r, err := e.ComputeEmployeeSalary(in, rules)
		if err != nil {
			return nil, err
		}
		return &domain.Outcome{Single: r}, nil
	case domain.EmploymentSelfEmployed:
		r, err := e.ComputeSelfEmployedSalary(in, rules)
		if err != nil {
			return nil, err
		}
		return &domain.Outcome{Single: r}, nil
	case domain.EmploymentCombined, domain.EmploymentMultipleEmployers:
		r, err := e.ComputeMultiSourceSalary(in, rules)
		if err != nil {
			return nil, err
		}
		return &domain.Outcome{Multi: r}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedEmploymentType, in.EmploymentType)
	}
}

// ComputeEmployeeSalary calculates net pay for a single salaried job.
func (e *Engine) ComputeEmployeeSalary(in *domain.CalculationInput, rules *domain.RuleTable) (*domain.CalculationResult, error) {
	p, err := e.newPipeline(in, rules)
	if err != nil {
		return nil, err
	}
	return p.computeSingle(employeeStrategy{}, domain.EmploymentEmployee)
}

// ComputeSelfEmployedSalary calculates net income for a business owner.
// It fails with ErrMissingSelfEmployedIncome when no business data is supplied.
func (e *Engine) ComputeSelfEmployedSalary(in *domain.CalculationInput, rules *domain.RuleTable) (*domain.CalculationResult, error) {
	p, err := e.newPipeline(in, rules)
	if err != nil {
		return nil, err
	}
	return p.computeSingle(selfEmployedStrategy{}, domain.EmploymentSelfEmployed)
}

func (p *pipeline) computeSingle(s incomeStrategy, kind domain.EmploymentType) (*domain.CalculationResult, error) {
	f, err := p.runStrategy(s)
	if err != nil {
		return nil, err
	}

	credits := SummarizeCreditPoints(CalculateCreditPoints(p.in, p.rules, p.asOf), p.rules.CreditPoints)
	tax := p.taxSource(f.taxableBase(), taxOptions{
		applyDisability: true,
		applyDonation:   true,
		creditAllowance: credits.MonthlyValue,
		localityIncome:  f.income,
	})

	total := tax.finalTax.Add(f.paid())
	result := &domain.CalculationResult{
		TaxYear:              p.rules.TaxYear,
		AsOf:                 domain.DateOf(p.asOf),
		EmploymentType:       kind,
		GrossSalary:          f.income,
		TaxableBase:          tax.taxableBase,
		TaxBeforeCredits:     tax.taxBefore,
		TaxAfterCredits:      tax.taxAfterCredits,
		FinalTax:             tax.finalTax,
		CreditPoints:         credits.TotalPoints,
		CreditPointsValue:    credits.MonthlyValue,
		CreditBreakdown:      credits.Breakdown,
		BituachLeumiEmployee: f.insurance,
		BituachLeumiEmployer: f.insuranceEmployer,
		Pension:              f.pension,
		StudyFundEmployee:    f.studyFund,
		StudyFundEmployer:    f.studyFundEmployer,
		VAT:                  f.vat,
		DonationCredit:       tax.donationCredit,
		DisabilityExemption:  tax.exemption,
		LocalityDiscount:     tax.locality.Discount,
		Locality:             tax.locality,
		TotalDeductions:      total,
		NetSalary:            f.income.Sub(total),
		EffectiveTaxRate:     effectiveRate(tax.finalTax, f.income),
		MarginalTaxRate:      MarginalRate(tax.taxableBase, p.rules.IncomeTaxBrackets).Mul(hundredPercent),
		Breakdown:            buildBreakdown(kind, f, tax, p.in),
	}
	if tax.locality.Warning != "" {
		result.Warnings = append(result.Warnings, tax.locality.Warning)
	}

	p.logger.Infof("%s calculation: gross=%s tax=%s net=%s", kind,
		result.GrossSalary.StringFixed(2), result.FinalTax.StringFixed(2), result.NetSalary.StringFixed(2))
	return result, nil
}

// effectiveRate is tax as a percentage of income, rounded to two places.
func effectiveRate(tax, income decimal.Decimal) decimal.Decimal {
	if !income.IsPositive() {
		return decimal.Zero
	}
	return tax.Div(income).Mul(hundredPercent).Round(2)
}

func buildBreakdown(kind domain.EmploymentType, f sourceFigures, tax taxOutcome, in *domain.CalculationInput) []domain.DeductionBreakdown {
	selfEmployed := kind == domain.EmploymentSelfEmployed
	lines := []domain.DeductionBreakdown{{
		Category:    domain.CategoryIncomeTax,
		Amount:      tax.finalTax,
		Description: "Progressive income tax after credits and discounts",
	}}

	if selfEmployed {
		lines = append(lines,
			domain.DeductionBreakdown{
				Category:        domain.CategoryInsuranceSelfEmployed,
				Amount:          f.insurance,
				IsTaxDeductible: true,
				Description:     "Self-employed national insurance; " + f.insuranceDeductible.StringFixed(2) + " deductible from profit",
			},
			domain.DeductionBreakdown{
				Category:        domain.CategoryPensionSelfEmployed,
				Amount:          f.pension.Employee,
				IsTaxDeductible: true,
				Description:     "Mandatory self-employed pension deposit",
			})
	} else {
		lines = append(lines,
			domain.DeductionBreakdown{
				Category:        domain.CategoryInsurance,
				Amount:          f.insurance,
				IsTaxDeductible: true,
				Description:     "National insurance and health tax",
			},
			domain.DeductionBreakdown{
				Category:        domain.CategoryPensionEmployee,
				Amount:          f.pension.Employee,
				IsTaxDeductible: true,
				Description:     "Employee pension contribution",
			})
	}

	if f.studyFund.IsPositive() {
		category := domain.CategoryStudyFundEmployee
		if selfEmployed {
			category = domain.CategoryStudyFund
		}
		lines = append(lines, domain.DeductionBreakdown{
			Category:        category,
			Amount:          f.studyFund,
			IsTaxDeductible: true,
			Description:     "Study fund contribution",
		})
	}
	if f.vat.IsPositive() {
		lines = append(lines, domain.DeductionBreakdown{
			Category:    domain.CategoryVAT,
			Amount:      f.vat,
			Description: "VAT collected on revenue",
		})
	}

	// Reported only; the credit is claimed on the annual return, not withheld monthly.
	if f.pension.TaxCredit.IsPositive() {
		lines = append(lines, domain.DeductionBreakdown{
			Category:      domain.CategoryPensionTaxCredit,
			Amount:        f.pension.TaxCredit.Neg(),
			Description:   "Credit on the recognized employee pension deposit",
			Informational: true,
		})
	}
	if in.VoluntaryPension.IsPositive() {
		lines = append(lines, domain.DeductionBreakdown{
			Category:      domain.CategoryVoluntaryPension,
			Amount:        in.VoluntaryPension,
			Description:   "Voluntary pension deposit",
			Informational: true,
		})
	}
	if f.fringe.IsPositive() {
		lines = append(lines, domain.DeductionBreakdown{
			Category:      domain.CategoryFringeBenefits,
			Amount:        f.fringe,
			Description:   "Benefits in kind added to taxable income",
			Informational: true,
		})
	}
	if tax.donationCredit.IsPositive() {
		lines = append(lines, domain.DeductionBreakdown{
			Category:      domain.CategoryDonationCredit,
			Amount:        tax.donationCredit.Neg(),
			Description:   "Credit for donations to approved institutions",
			Informational: true,
		})
	}
	if tax.exemption.IsPositive() {
		lines = append(lines, domain.DeductionBreakdown{
			Category:        domain.CategoryDisabilityExemption,
			Amount:          tax.exemption.Neg(),
			IsTaxDeductible: true,
			Description:     "Income exempt from tax due to disability",
			Informational:   true,
		})
	}
	if tax.locality.Discount.IsPositive() {
		lines = append(lines, domain.DeductionBreakdown{
			Category:      domain.CategoryLocalityDiscount,
			Amount:        tax.locality.Discount.Neg(),
			Description:   tax.locality.LocalityName + " residence discount",
			Informational: true,
		})
	}
	return lines
}

package domain

import (
	"github.com/shopspring/decimal"
)

// Breakdown categories shared by the engines and formatters.
const (
	CategoryIncomeTax             = "Income Tax"
	CategoryInsurance             = "Bituach Leumi & Health"
	CategoryInsuranceSelfEmployed = "Bituach Leumi (Self-Employed)"
	CategoryPensionEmployee       = "Pension (Employee)"
	CategoryPensionSelfEmployed   = "Pension (Self-Employed)"
	CategoryStudyFundEmployee     = "Keren Hishtalmut (Employee)"
	CategoryStudyFund             = "Keren Hishtalmut"
	CategoryVoluntaryPension      = "Voluntary Pension"
	CategoryPensionTaxCredit      = "Pension Tax Credit (§45a)"
	CategoryFringeBenefits        = "Fringe Benefits (Taxable)"
	CategoryDonationCredit        = "Donation Credit (§46)"
	CategoryDisabilityExemption   = "Disability Exemption"
	CategoryLocalityDiscount      = "Locality Discount"
	CategoryVAT                   = "VAT (Osek Murshe)"
)

// CreditPointBreakdown is one credit point line item.
type CreditPointBreakdown struct {
	Category    string          `yaml:"category" json:"category"`
	Points      decimal.Decimal `yaml:"points" json:"points"`
	Description string          `yaml:"description" json:"description"`
}

// CreditPointsSummary totals a credit point list and prices it.
type CreditPointsSummary struct {
	TotalPoints  decimal.Decimal        `yaml:"total_points" json:"total_points"`
	MonthlyValue decimal.Decimal        `yaml:"monthly_value" json:"monthly_value"`
	AnnualValue  decimal.Decimal        `yaml:"annual_value" json:"annual_value"`
	Breakdown    []CreditPointBreakdown `yaml:"breakdown" json:"breakdown"`
}

// DeductionBreakdown is one ledger line. Informational lines describe an adjustment
// already reflected elsewhere and are excluded from the total deductions.
type DeductionBreakdown struct {
	Category        string          `yaml:"category" json:"category"`
	Amount          decimal.Decimal `yaml:"amount" json:"amount"`
	IsTaxDeductible bool            `yaml:"is_tax_deductible" json:"is_tax_deductible"`
	Description     string          `yaml:"description" json:"description"`
	Informational   bool            `yaml:"informational,omitempty" json:"informational,omitempty"`
}

// InsuranceResult is an employee or employer Bituach Leumi contribution.
type InsuranceResult struct {
	Employee decimal.Decimal `yaml:"employee" json:"employee"`
	Employer decimal.Decimal `yaml:"employer" json:"employer"`
}

// SelfEmployedInsuranceResult carries the contribution and the part of it that lowers taxable income.
type SelfEmployedInsuranceResult struct {
	Contribution     decimal.Decimal `yaml:"contribution" json:"contribution"`
	DeductibleAmount decimal.Decimal `yaml:"deductible_amount" json:"deductible_amount"`
}

// JobInsurance is one job's share of a multi-job contribution.
type JobInsurance struct {
	JobID    string          `yaml:"job_id" json:"job_id"`
	Employee decimal.Decimal `yaml:"employee" json:"employee"`
	Employer decimal.Decimal `yaml:"employer" json:"employer"`
}

// PensionResult holds the pension and severance deposits for one month.
type PensionResult struct {
	Employee                 decimal.Decimal `yaml:"employee" json:"employee"`
	EmployerPension          decimal.Decimal `yaml:"employer_pension" json:"employer_pension"`
	EmployerSeverance        decimal.Decimal `yaml:"employer_severance" json:"employer_severance"`
	TaxCredit                decimal.Decimal `yaml:"tax_credit" json:"tax_credit"`
	TaxableBenefitToEmployee decimal.Decimal `yaml:"taxable_benefit_to_employee" json:"taxable_benefit_to_employee"`
}

// DisabilityExemptionResult splits a taxable base into exempt and taxed parts.
type DisabilityExemptionResult struct {
	Exempted     decimal.Decimal `yaml:"exempted" json:"exempted"`
	ResidualBase decimal.Decimal `yaml:"residual_base" json:"residual_base"`
}

// LocalityResult is the outcome of a locality discount lookup.
type LocalityResult struct {
	Discount        decimal.Decimal `yaml:"discount" json:"discount"`
	IsValid         bool            `yaml:"is_valid" json:"is_valid"`
	Warning         string          `yaml:"warning,omitempty" json:"warning,omitempty"`
	DiscountPercent decimal.Decimal `yaml:"discount_percent" json:"discount_percent"` // percent, e.g. 10
	LocalityName    string          `yaml:"locality_name,omitempty" json:"locality_name,omitempty"`
}

// CalculationResult is the full outcome of a single-source calculation.
type CalculationResult struct {
	TaxYear        int            `yaml:"tax_year" json:"tax_year"`
	AsOf           Date           `yaml:"as_of" json:"as_of"`
	EmploymentType EmploymentType `yaml:"employment_type" json:"employment_type"`

	GrossSalary      decimal.Decimal `yaml:"gross_salary" json:"gross_salary"`
	TaxableBase      decimal.Decimal `yaml:"taxable_base" json:"taxable_base"`
	TaxBeforeCredits decimal.Decimal `yaml:"tax_before_credits" json:"tax_before_credits"`
	TaxAfterCredits  decimal.Decimal `yaml:"tax_after_credits" json:"tax_after_credits"`
	FinalTax         decimal.Decimal `yaml:"final_tax" json:"final_tax"`

	CreditPoints      decimal.Decimal        `yaml:"credit_points" json:"credit_points"`
	CreditPointsValue decimal.Decimal        `yaml:"credit_points_value" json:"credit_points_value"`
	CreditBreakdown   []CreditPointBreakdown `yaml:"credit_breakdown" json:"credit_breakdown"`

	BituachLeumiEmployee decimal.Decimal `yaml:"bituach_leumi_employee" json:"bituach_leumi_employee"`
	BituachLeumiEmployer decimal.Decimal `yaml:"bituach_leumi_employer" json:"bituach_leumi_employer"`
	Pension              PensionResult   `yaml:"pension" json:"pension"`
	StudyFundEmployee    decimal.Decimal `yaml:"study_fund_employee" json:"study_fund_employee"`
	StudyFundEmployer    decimal.Decimal `yaml:"study_fund_employer" json:"study_fund_employer"`
	VAT                  decimal.Decimal `yaml:"vat" json:"vat"`

	DonationCredit      decimal.Decimal `yaml:"donation_credit" json:"donation_credit"`
	DisabilityExemption decimal.Decimal `yaml:"disability_exemption" json:"disability_exemption"`
	LocalityDiscount    decimal.Decimal `yaml:"locality_discount" json:"locality_discount"`
	Locality            LocalityResult  `yaml:"locality" json:"locality"`

	TotalDeductions  decimal.Decimal      `yaml:"total_deductions" json:"total_deductions"`
	NetSalary        decimal.Decimal      `yaml:"net_salary" json:"net_salary"`
	EffectiveTaxRate decimal.Decimal      `yaml:"effective_tax_rate" json:"effective_tax_rate"`
	MarginalTaxRate  decimal.Decimal      `yaml:"marginal_tax_rate" json:"marginal_tax_rate"`
	Breakdown        []DeductionBreakdown `yaml:"breakdown" json:"breakdown"`
	Warnings         []string             `yaml:"warnings,omitempty" json:"warnings,omitempty"`
}

// IncomeSourceResult is one income stream inside a multi-source calculation.
// CreditPointsAllocated and CreditPointsUsed are currency values of the pool.
type IncomeSourceResult struct {
	SourceID          string          `yaml:"source_id" json:"source_id"`
	SourceName        string          `yaml:"source_name" json:"source_name"`
	GrossIncome       decimal.Decimal `yaml:"gross_income" json:"gross_income"`
	BituachLeumi      decimal.Decimal `yaml:"bituach_leumi" json:"bituach_leumi"`
	Pension           decimal.Decimal `yaml:"pension" json:"pension"`
	EmployerPension   decimal.Decimal `yaml:"employer_pension" json:"employer_pension"`
	EmployerSeverance decimal.Decimal `yaml:"employer_severance" json:"employer_severance"`
	StudyFund         decimal.Decimal `yaml:"study_fund" json:"study_fund"`

	TaxableBase           decimal.Decimal `yaml:"taxable_base" json:"taxable_base"`
	TaxBeforeCredits      decimal.Decimal `yaml:"tax_before_credits" json:"tax_before_credits"`
	CreditPointsAllocated decimal.Decimal `yaml:"credit_points_allocated" json:"credit_points_allocated"`
	CreditPointsUsed      decimal.Decimal `yaml:"credit_points_used" json:"credit_points_used"`
	LocalityDiscount      decimal.Decimal `yaml:"locality_discount" json:"locality_discount"`
	FinalTax              decimal.Decimal `yaml:"final_tax" json:"final_tax"`

	TotalDeductions decimal.Decimal `yaml:"total_deductions" json:"total_deductions"`
	NetIncome       decimal.Decimal `yaml:"net_income" json:"net_income"`
}

// MultiSourceCalculationResult aggregates several income streams sharing one credit pool.
type MultiSourceCalculationResult struct {
	TaxYear        int            `yaml:"tax_year" json:"tax_year"`
	AsOf           Date           `yaml:"as_of" json:"as_of"`
	EmploymentType EmploymentType `yaml:"employment_type" json:"employment_type"`

	Sources []IncomeSourceResult `yaml:"sources" json:"sources"`

	TotalGross             decimal.Decimal `yaml:"total_gross" json:"total_gross"`
	TotalBituachLeumi      decimal.Decimal `yaml:"total_bituach_leumi" json:"total_bituach_leumi"`
	TotalPension           decimal.Decimal `yaml:"total_pension" json:"total_pension"`
	TotalTax               decimal.Decimal `yaml:"total_tax" json:"total_tax"`
	TotalDeductions        decimal.Decimal `yaml:"total_deductions" json:"total_deductions"`
	TotalNet               decimal.Decimal `yaml:"total_net" json:"total_net"`
	TotalCreditPoints      decimal.Decimal `yaml:"total_credit_points" json:"total_credit_points"`
	TotalCreditPointsValue decimal.Decimal `yaml:"total_credit_points_value" json:"total_credit_points_value"`
	CreditValueRemaining   decimal.Decimal `yaml:"credit_value_remaining" json:"credit_value_remaining"`
	CreditPointsRemaining  decimal.Decimal `yaml:"credit_points_remaining" json:"credit_points_remaining"`

	CreditBreakdown []CreditPointBreakdown `yaml:"credit_breakdown" json:"credit_breakdown"`
	Warnings        []string               `yaml:"warnings,omitempty" json:"warnings,omitempty"`
}

// Outcome holds whichever result shape the employment type produced.
type Outcome struct {
	Single *CalculationResult            `yaml:"single,omitempty" json:"single,omitempty"`
	Multi  *MultiSourceCalculationResult `yaml:"multi,omitempty" json:"multi,omitempty"`
}

// NetSalary returns the net monthly income regardless of result shape.
func (o *Outcome) NetSalary() decimal.Decimal {
	switch {
	case o == nil:
		return decimal.Zero
	case o.Single != nil:
		return o.Single.NetSalary
	case o.Multi != nil:
		return o.Multi.TotalNet
	}
	return decimal.Zero
}

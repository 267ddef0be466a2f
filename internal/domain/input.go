package domain

import (
	"github.com/shopspring/decimal"
)

// EmploymentType selects which orchestration path a calculation takes.
type EmploymentType string

const (
	EmploymentEmployee          EmploymentType = "employee"
	EmploymentSelfEmployed      EmploymentType = "self_employed"
	EmploymentCombined          EmploymentType = "combined"
	EmploymentMultipleEmployers EmploymentType = "multiple_employers"
)

// IsMultiSource reports whether the employment type shares one credit pool across several incomes.
func (e EmploymentType) IsMultiSource() bool {
	return e == EmploymentCombined || e == EmploymentMultipleEmployers
}

// Gender of the taxpayer.
type Gender string

const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
)

// MaritalStatus of the taxpayer.
type MaritalStatus string

const (
	MaritalSingle   MaritalStatus = "single"
	MaritalMarried  MaritalStatus = "married"
	MaritalDivorced MaritalStatus = "divorced"
	MaritalWidowed  MaritalStatus = "widowed"
)

// EducationLevel is the highest qualifying degree or certificate.
type EducationLevel string

const (
	EducationNone         EducationLevel = "none"
	EducationBachelor     EducationLevel = "bachelor"
	EducationMaster       EducationLevel = "master"
	EducationDoctorate    EducationLevel = "doctorate"
	EducationProfessional EducationLevel = "professional"
)

// BusinessType is the VAT registration tier of a self-employed business.
type BusinessType string

const (
	BusinessEsekPatur  BusinessType = "esek_patur"
	BusinessEsekMurshe BusinessType = "esek_murshe"
	BusinessEsekZair   BusinessType = "esek_zair"
)

// ChargesVAT reports whether the business collects VAT on its revenue.
func (b BusinessType) ChargesVAT() bool { return b == BusinessEsekMurshe }

// JobIncome is one employer's monthly salary in a multiple-employers calculation.
type JobIncome struct {
	ID                  string          `yaml:"id" json:"id"`
	GrossSalary         decimal.Decimal `yaml:"gross_salary" json:"gross_salary"`
	PensionRate         decimal.Decimal `yaml:"pension_rate" json:"pension_rate"`                   // percent, e.g. 6
	CreditPointsPercent decimal.Decimal `yaml:"credit_points_percent" json:"credit_points_percent"` // percent of the credit pool
}

// SelfEmployedIncome describes monthly business revenue and expenses.
type SelfEmployedIncome struct {
	Type           BusinessType     `yaml:"type" json:"type"`
	Revenue        decimal.Decimal  `yaml:"revenue" json:"revenue"`
	ExpenseRate    decimal.Decimal  `yaml:"expense_rate" json:"expense_rate"` // percent of revenue
	ActualExpenses *decimal.Decimal `yaml:"actual_expenses,omitempty" json:"actual_expenses,omitempty"`
}

// FringeBenefits are monthly benefits in kind that are taxed but not paid in cash.
type FringeBenefits struct {
	Car   decimal.Decimal `yaml:"car" json:"car"`
	Phone decimal.Decimal `yaml:"phone" json:"phone"`
	Meals decimal.Decimal `yaml:"meals" json:"meals"`
	Other decimal.Decimal `yaml:"other" json:"other"`
}

// CalculationInput is a one-month snapshot of a taxpayer.
type CalculationInput struct {
	EmploymentType     EmploymentType      `yaml:"employment_type" json:"employment_type"`
	GrossSalary        decimal.Decimal     `yaml:"gross_salary" json:"gross_salary"`
	PensionBase        *decimal.Decimal    `yaml:"pension_base,omitempty" json:"pension_base,omitempty"`
	Jobs               []JobIncome         `yaml:"jobs,omitempty" json:"jobs,omitempty"`
	SelfEmployedIncome *SelfEmployedIncome `yaml:"self_employed_income,omitempty" json:"self_employed_income,omitempty"`

	// Personal
	IsResident    bool          `yaml:"is_resident" json:"is_resident"`
	Gender        Gender        `yaml:"gender" json:"gender"`
	BirthDate     Date          `yaml:"birth_date" json:"birth_date"`
	MaritalStatus MaritalStatus `yaml:"marital_status" json:"marital_status"`

	// Family
	ChildrenCount  int   `yaml:"children_count" json:"children_count"`
	ChildAges      []int `yaml:"child_ages,omitempty" json:"child_ages,omitempty"`
	IsSingleParent bool  `yaml:"is_single_parent" json:"is_single_parent"`
	SpouseNoIncome bool  `yaml:"spouse_no_income" json:"spouse_no_income"`

	// Military or national service
	ArmyService       bool `yaml:"army_service" json:"army_service"`
	ArmyServiceMonths int  `yaml:"army_service_months" json:"army_service_months"`
	ArmyDischargeDate Date `yaml:"army_discharge_date,omitempty" json:"army_discharge_date,omitempty"`

	IsNewImmigrant  bool `yaml:"is_new_immigrant" json:"is_new_immigrant"`
	ImmigrationDate Date `yaml:"immigration_date,omitempty" json:"immigration_date,omitempty"`

	// HasDisability drives the dependent credit; HasDisabilityExemption drives the income exemption.
	HasDisability          bool `yaml:"has_disability" json:"has_disability"`
	HasDisabilityExemption bool `yaml:"has_disability_exemption" json:"has_disability_exemption"`

	EducationLevel EducationLevel `yaml:"education_level" json:"education_level"`
	GraduationDate Date           `yaml:"graduation_date,omitempty" json:"graduation_date,omitempty"`

	Locality string `yaml:"locality,omitempty" json:"locality,omitempty"`

	VoluntaryPension decimal.Decimal `yaml:"voluntary_pension" json:"voluntary_pension"`
	FringeBenefits   FringeBenefits  `yaml:"fringe_benefits" json:"fringe_benefits"`
	DonationAmount   decimal.Decimal `yaml:"donation_amount" json:"donation_amount"`

	// Keren hishtalmut (study fund), rates in percent of salary
	HasStudyFund          bool            `yaml:"has_study_fund" json:"has_study_fund"`
	StudyFundEmployeeRate decimal.Decimal `yaml:"study_fund_employee_rate" json:"study_fund_employee_rate"`
	StudyFundEmployerRate decimal.Decimal `yaml:"study_fund_employer_rate" json:"study_fund_employer_rate"`

	// AsOf fixes the evaluation date for age and elapsed-time rules. Absent means today.
	AsOf Date `yaml:"as_of,omitempty" json:"as_of,omitempty"`
}

package domain

import (
	"github.com/shopspring/decimal"
)

// RuleTable holds every statutory parameter for one tax year. It is loaded once
// and shared read-only between calculations.
type RuleTable struct {
	TaxYear             int                  `yaml:"tax_year" json:"tax_year"`
	Description         string               `yaml:"description,omitempty" json:"description,omitempty"`
	IncomeTaxBrackets   []TaxBracket         `yaml:"income_tax_brackets" json:"income_tax_brackets"`
	SocialSecurity      SocialSecurityConfig `yaml:"social_security" json:"social_security"`
	Pension             PensionConfig        `yaml:"pension" json:"pension"`
	CreditPoints        CreditPointsConfig   `yaml:"credit_points" json:"credit_points"`
	Donations           DonationsConfig      `yaml:"donations" json:"donations"`
	DisabilityExemption DisabilityConfig     `yaml:"disability_exemption" json:"disability_exemption"`
	SelfEmployed        SelfEmployedConfig   `yaml:"self_employed" json:"self_employed"`
	StudyFund           StudyFundConfig      `yaml:"study_fund" json:"study_fund"`
	LocalityDiscounts   []LocalityDiscount   `yaml:"locality_discounts" json:"locality_discounts"`
}

// TaxBracket is one progressive band. A nil Max marks the open top bracket.
type TaxBracket struct {
	Min  decimal.Decimal  `yaml:"min" json:"min"`
	Max  *decimal.Decimal `yaml:"max" json:"max"`
	Rate decimal.Decimal  `yaml:"rate" json:"rate"`
}

// IsUnbounded reports whether the bracket has no upper limit.
func (b TaxBracket) IsUnbounded() bool { return b.Max == nil }

// SocialSecurityConfig holds the two-tier Bituach Leumi and health thresholds and rates.
type SocialSecurityConfig struct {
	Threshold1 decimal.Decimal `yaml:"threshold_1" json:"threshold_1"`
	Threshold2 decimal.Decimal `yaml:"threshold_2" json:"threshold_2"`

	EmployeeRate1 decimal.Decimal `yaml:"employee_rate_1" json:"employee_rate_1"`
	EmployeeRate2 decimal.Decimal `yaml:"employee_rate_2" json:"employee_rate_2"`
	EmployerRate1 decimal.Decimal `yaml:"employer_rate_1" json:"employer_rate_1"`
	EmployerRate2 decimal.Decimal `yaml:"employer_rate_2" json:"employer_rate_2"`

	SelfEmployedRate1         decimal.Decimal `yaml:"self_employed_rate_1" json:"self_employed_rate_1"`
	SelfEmployedRate2         decimal.Decimal `yaml:"self_employed_rate_2" json:"self_employed_rate_2"`
	SelfEmployedMinIncome     decimal.Decimal `yaml:"self_employed_min_income" json:"self_employed_min_income"`
	SelfEmployedDeductionRate decimal.Decimal `yaml:"self_employed_deduction_rate" json:"self_employed_deduction_rate"`
}

// PensionConfig holds mandatory pension and severance parameters.
type PensionConfig struct {
	EmployeeRate              decimal.Decimal `yaml:"employee_rate" json:"employee_rate"`
	EmployerPensionRate       decimal.Decimal `yaml:"employer_pension_rate" json:"employer_pension_rate"`
	EmployerSeveranceRate     decimal.Decimal `yaml:"employer_severance_rate" json:"employer_severance_rate"`
	RecognizedWageCeiling     decimal.Decimal `yaml:"recognized_wage_ceiling" json:"recognized_wage_ceiling"`
	EmployerRecognizedBase    decimal.Decimal `yaml:"employer_recognized_base" json:"employer_recognized_base"`
	MaxRecognizedEmployee7Pct decimal.Decimal `yaml:"max_recognized_employee_7pct" json:"max_recognized_employee_7pct"`
	TaxCreditRate             decimal.Decimal `yaml:"tax_credit_rate" json:"tax_credit_rate"`

	SelfEmployedMinRate      decimal.Decimal `yaml:"self_employed_min_rate" json:"self_employed_min_rate"`
	SelfEmployedEmployerRate decimal.Decimal `yaml:"self_employed_employer_rate" json:"self_employed_employer_rate"`
	SelfEmployedMaxRate      decimal.Decimal `yaml:"self_employed_max_rate" json:"self_employed_max_rate"`
	SelfEmployedMaxAnnual    decimal.Decimal `yaml:"self_employed_max_annual" json:"self_employed_max_annual"`
}

// SingleParentPolicy selects how single parents are credited.
type SingleParentPolicy string

const (
	// SingleParentPerChild grants one point for every child.
	SingleParentPerChild SingleParentPolicy = "per_child"
	// SingleParentFlat grants the configured single_parent value once.
	SingleParentFlat SingleParentPolicy = "flat"
)

// ArmyServicePolicy selects how the discharge date gates the service credit.
type ArmyServicePolicy string

const (
	// ArmyDischargeGatedWithFallback requires a recent discharge when the date is known,
	// and grants the credit when it is not.
	ArmyDischargeGatedWithFallback ArmyServicePolicy = "discharge_gated_with_fallback"
	// ArmyDischargeGatedStrict grants the credit only with a recent known discharge date.
	ArmyDischargeGatedStrict ArmyServicePolicy = "discharge_gated_strict"
)

// AgeBucket awards points to children whose age falls in [MinAge, MaxAge].
type AgeBucket struct {
	MinAge int             `yaml:"min_age" json:"min_age"`
	MaxAge int             `yaml:"max_age" json:"max_age"`
	Points decimal.Decimal `yaml:"points" json:"points"`
}

// ChildSchedule applies to children born in [BornFrom, BornTo]; zero bounds are open.
type ChildSchedule struct {
	Name     string      `yaml:"name" json:"name"`
	BornFrom int         `yaml:"born_from,omitempty" json:"born_from,omitempty"`
	BornTo   int         `yaml:"born_to,omitempty" json:"born_to,omitempty"`
	Buckets  []AgeBucket `yaml:"buckets" json:"buckets"`
}

// MonthTier awards points while months since arrival are below UntilMonth.
type MonthTier struct {
	UntilMonth int             `yaml:"until_month" json:"until_month"`
	Points     decimal.Decimal `yaml:"points" json:"points"`
}

// ImmigrantSchedule applies to immigrants who arrived in [ArrivedFrom, ArrivedTo]; zero bounds are open.
type ImmigrantSchedule struct {
	Name        string      `yaml:"name" json:"name"`
	ArrivedFrom int         `yaml:"arrived_from,omitempty" json:"arrived_from,omitempty"`
	ArrivedTo   int         `yaml:"arrived_to,omitempty" json:"arrived_to,omitempty"`
	Tiers       []MonthTier `yaml:"tiers" json:"tiers"`
}

// CreditPointsConfig holds the point unit value and every category's points.
type CreditPointsConfig struct {
	ValuePerPointMonthly decimal.Decimal `yaml:"value_per_point_monthly" json:"value_per_point_monthly"`

	BaseResident   decimal.Decimal `yaml:"base_resident" json:"base_resident"`
	Women          decimal.Decimal `yaml:"women" json:"women"`
	WorkingYouth   decimal.Decimal `yaml:"working_youth" json:"working_youth"`
	SingleParent   decimal.Decimal `yaml:"single_parent" json:"single_parent"`
	SpouseNoIncome decimal.Decimal `yaml:"spouse_no_income" json:"spouse_no_income"`
	DisabledChild  decimal.Decimal `yaml:"disabled_child" json:"disabled_child"`

	ArmyServiceShort          decimal.Decimal `yaml:"army_service_short" json:"army_service_short"`
	ArmyServiceLong           decimal.Decimal `yaml:"army_service_long" json:"army_service_long"`
	ArmyServiceLongMonths     int             `yaml:"army_service_long_months" json:"army_service_long_months"`
	ArmyDischargeWindowMonths int             `yaml:"army_discharge_window_months" json:"army_discharge_window_months"`

	AcademicDegreeAnnual          decimal.Decimal `yaml:"academic_degree_annual" json:"academic_degree_annual"`
	AcademicDegreeYears           int             `yaml:"academic_degree_years" json:"academic_degree_years"`
	MastersDegreeAnnual           decimal.Decimal `yaml:"masters_degree_annual" json:"masters_degree_annual"`
	MastersDegreeYears            int             `yaml:"masters_degree_years" json:"masters_degree_years"`
	DoctorateAdditional           decimal.Decimal `yaml:"doctorate_additional" json:"doctorate_additional"`
	DoctorateYears                int             `yaml:"doctorate_years" json:"doctorate_years"`
	ProfessionalCertificateAnnual decimal.Decimal `yaml:"professional_certificate_annual" json:"professional_certificate_annual"`
	ProfessionalCertificateYears  int             `yaml:"professional_certificate_years" json:"professional_certificate_years"`

	ChildSchedules                   []ChildSchedule     `yaml:"child_schedules" json:"child_schedules"`
	ChildSchoolAgePoints             decimal.Decimal     `yaml:"child_school_age_points" json:"child_school_age_points"`
	ChildSchoolAgePointsSingleParent decimal.Decimal     `yaml:"child_school_age_points_single_parent" json:"child_school_age_points_single_parent"`
	NewImmigrantSchedules            []ImmigrantSchedule `yaml:"new_immigrant_schedules" json:"new_immigrant_schedules"`

	SingleParentPolicy SingleParentPolicy `yaml:"single_parent_policy" json:"single_parent_policy"`
	ArmyServicePolicy  ArmyServicePolicy  `yaml:"army_service_policy" json:"army_service_policy"`
}

// DonationsConfig holds the section 46 donation credit parameters.
type DonationsConfig struct {
	MonthlyCap decimal.Decimal `yaml:"monthly_cap" json:"monthly_cap"`
	CreditRate decimal.Decimal `yaml:"credit_rate" json:"credit_rate"`
}

// DisabilityConfig holds the monthly income exemption for recognized disability.
type DisabilityConfig struct {
	MonthlyLimit decimal.Decimal `yaml:"monthly_limit" json:"monthly_limit"`
}

// SelfEmployedConfig holds parameters specific to businesses.
type SelfEmployedConfig struct {
	VATRate decimal.Decimal `yaml:"vat_rate" json:"vat_rate"`
}

// StudyFundConfig caps the keren hishtalmut contribution rates (percent). Zero means no cap.
type StudyFundConfig struct {
	EmployeeMaxRate decimal.Decimal `yaml:"employee_max_rate" json:"employee_max_rate"`
	EmployerMaxRate decimal.Decimal `yaml:"employer_max_rate" json:"employer_max_rate"`
}

// LocalityDiscount is one settlement eligible for a residence-based income tax discount.
type LocalityDiscount struct {
	Code            string          `yaml:"code" json:"code"`
	Name            string          `yaml:"name" json:"name"`
	NameHe          string          `yaml:"name_he,omitempty" json:"name_he,omitempty"`
	NameRu          string          `yaml:"name_ru,omitempty" json:"name_ru,omitempty"`
	DiscountPercent decimal.Decimal `yaml:"discount_percent" json:"discount_percent"` // rate, e.g. 0.2
	MaxIncome       decimal.Decimal `yaml:"max_income" json:"max_income"`
	ValidFrom       Date            `yaml:"valid_from,omitempty" json:"valid_from,omitempty"`
	ValidTo         Date            `yaml:"valid_to,omitempty" json:"valid_to,omitempty"`
}

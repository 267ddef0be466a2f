package remote

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/ilsalary/net-salary-calculator/internal/calculation"
	"github.com/ilsalary/net-salary-calculator/internal/domain"
	"github.com/ilsalary/net-salary-calculator/pkg/dateutil"
)

const (
	// defaultAge is sent when the birth date is unknown.
	defaultAge = 30
	// defaultPensionRate is the mandatory employee pension percent the API assumes.
	defaultPensionRate = 6
	// unknownChildAge is assumed for every child the flattened request counts without ages.
	unknownChildAge = 6
	// maxChildren bounds the child count a flattened request may carry.
	maxChildren = 30
	// maxAge bounds the age a flattened request may carry.
	maxAge = 120
)

// APIJob is one employer in the flattened request.
type APIJob struct {
	ID                  string  `json:"id"`
	GrossSalary         float64 `json:"gross_salary"`
	PensionRate         float64 `json:"pension_rate"`
	CreditPointsPercent float64 `json:"credit_points_percent"`
}

// APISelfEmployedIncome is the business block of the flattened request.
type APISelfEmployedIncome struct {
	Type           string   `json:"type"`
	Revenue        float64  `json:"revenue"`
	ExpenseRate    float64  `json:"expense_rate"`
	ActualExpenses *float64 `json:"actual_expenses,omitempty"`
}

// APIRequest is the flattened snake_case shape the calculator API accepts.
type APIRequest struct {
	EmploymentType     string                 `json:"employment_type"`
	GrossSalary        float64                `json:"gross_salary"`
	PensionBase        *float64               `json:"pension_base,omitempty"`
	Jobs               []APIJob               `json:"jobs"`
	SelfEmployedIncome *APISelfEmployedIncome `json:"self_employed_income,omitempty"`
	Age                int                    `json:"age"`
	Children           int                    `json:"children"`
	Spouse             bool                   `json:"spouse"`
	SpouseIncome       float64                `json:"spouse_income"`
	Disabled           bool                   `json:"disabled"`
	NewImmigrant       bool                   `json:"new_immigrant"`
	Student            bool                   `json:"student"`
	ReserveDuty        bool                   `json:"reserve_duty"`
	PensionRate        float64                `json:"pension_rate"`
}

// APITaxBreakdown is the deduction block of the API response.
type APITaxBreakdown struct {
	IncomeTax         float64 `json:"income_tax"`
	NationalInsurance float64 `json:"national_insurance"`
	HealthTax         float64 `json:"health_tax"`
	PensionEmployee   float64 `json:"pension_employee"`
	TotalDeductions   float64 `json:"total_deductions"`
}

// APIResponse is the calculation result shape the API returns.
type APIResponse struct {
	GrossSalary      float64         `json:"gross_salary"`
	NetSalary        float64         `json:"net_salary"`
	TaxBreakdown     APITaxBreakdown `json:"tax_breakdown"`
	CreditPoints     float64         `json:"credit_points"`
	EffectiveTaxRate float64         `json:"effective_tax_rate"`
}

// HealthStatus is the body of the health endpoint.
type HealthStatus struct {
	Status   string `json:"status"`
	TaxYears []int  `json:"tax_years,omitempty"`
}

// ToAPIRequest flattens a calculation input. Age is computed at asOf.
func ToAPIRequest(in *domain.CalculationInput, asOf time.Time) APIRequest {
	req := APIRequest{
		EmploymentType: string(in.EmploymentType),
		GrossSalary:    in.GrossSalary.InexactFloat64(),
		Jobs:           make([]APIJob, 0, len(in.Jobs)),
		Age:            defaultAge,
		Children:       in.ChildrenCount,
		Spouse:         in.MaritalStatus != "" && in.MaritalStatus != domain.MaritalSingle,
		Disabled:       in.HasDisability,
		NewImmigrant:   in.IsNewImmigrant,
		Student:        in.EducationLevel != "" && in.EducationLevel != domain.EducationNone,
		ReserveDuty:    in.ArmyService,
		PensionRate:    defaultPensionRate,
	}
	if req.EmploymentType == "" {
		req.EmploymentType = string(domain.EmploymentEmployee)
	}
	if in.BirthDate.IsSet() {
		req.Age = dateutil.Age(in.BirthDate.Time, asOf)
	}
	if in.PensionBase != nil {
		v := in.PensionBase.InexactFloat64()
		req.PensionBase = &v
	}
	if in.VoluntaryPension.IsPositive() {
		req.PensionRate = in.VoluntaryPension.InexactFloat64()
	}
	for _, job := range in.Jobs {
		req.Jobs = append(req.Jobs, APIJob{
			ID:                  job.ID,
			GrossSalary:         job.GrossSalary.InexactFloat64(),
			PensionRate:         job.PensionRate.InexactFloat64(),
			CreditPointsPercent: job.CreditPointsPercent.InexactFloat64(),
		})
	}
	switch in.EmploymentType {
	case domain.EmploymentSelfEmployed, domain.EmploymentCombined:
		if se := in.SelfEmployedIncome; se != nil {
			req.SelfEmployedIncome = &APISelfEmployedIncome{
				Type:        string(se.Type),
				Revenue:     se.Revenue.InexactFloat64(),
				ExpenseRate: se.ExpenseRate.InexactFloat64(),
			}
			if se.ActualExpenses != nil {
				v := se.ActualExpenses.InexactFloat64()
				req.SelfEmployedIncome.ActualExpenses = &v
			}
		}
	}
	return req
}

// FromAPIRequest rebuilds a calculation input from the flattened shape. Fields the
// flattened shape does not carry take neutral values: a resident male born on
// January 1st, children of school age, and a bachelor's degree without a graduation date for students.
// Out of range counts fail with calculation.ErrInvalidInput before anything is allocated.
func FromAPIRequest(req APIRequest, asOf time.Time) (*domain.CalculationInput, error) {
	if req.Children < 0 || req.Children > maxChildren {
		return nil, fmt.Errorf("%w: children must be between 0 and %d, got %d", calculation.ErrInvalidInput, maxChildren, req.Children)
	}
	if req.Age < 0 || req.Age > maxAge {
		return nil, fmt.Errorf("%w: age must be between 0 and %d, got %d", calculation.ErrInvalidInput, maxAge, req.Age)
	}
	in := &domain.CalculationInput{
		EmploymentType: domain.EmploymentType(req.EmploymentType),
		GrossSalary:    decimal.NewFromFloat(req.GrossSalary),
		IsResident:     true,
		Gender:         domain.GenderMale,
		BirthDate:      domain.NewDate(dateutil.BirthYearForAge(req.Age, asOf), time.January, 1),
		MaritalStatus:  domain.MaritalSingle,
		ChildrenCount:  req.Children,
		SpouseNoIncome: req.Spouse && req.SpouseIncome == 0,
		HasDisability:  req.Disabled,
		IsNewImmigrant: req.NewImmigrant,
		ArmyService:    req.ReserveDuty,
		EducationLevel: domain.EducationNone,
		AsOf:           domain.DateOf(asOf),
	}
	if req.Spouse {
		in.MaritalStatus = domain.MaritalMarried
	}
	if req.Student {
		in.EducationLevel = domain.EducationBachelor
	}
	if req.Children > 0 {
		in.ChildAges = make([]int, req.Children)
		for i := range in.ChildAges {
			in.ChildAges[i] = unknownChildAge
		}
	}
	if req.PensionBase != nil {
		v := decimal.NewFromFloat(*req.PensionBase)
		in.PensionBase = &v
	}
	for _, job := range req.Jobs {
		in.Jobs = append(in.Jobs, domain.JobIncome{
			ID:                  job.ID,
			GrossSalary:         decimal.NewFromFloat(job.GrossSalary),
			PensionRate:         decimal.NewFromFloat(job.PensionRate),
			CreditPointsPercent: decimal.NewFromFloat(job.CreditPointsPercent),
		})
	}
	if se := req.SelfEmployedIncome; se != nil {
		in.SelfEmployedIncome = &domain.SelfEmployedIncome{
			Type:        domain.BusinessType(se.Type),
			Revenue:     decimal.NewFromFloat(se.Revenue),
			ExpenseRate: decimal.NewFromFloat(se.ExpenseRate),
		}
		if se.ActualExpenses != nil {
			v := decimal.NewFromFloat(*se.ActualExpenses)
			in.SelfEmployedIncome.ActualExpenses = &v
		}
	}
	return in, nil
}

// ToAPIResponse summarizes either result shape as a tax breakdown. Bituach Leumi
// and health are reported together under national_insurance.
func ToAPIResponse(outcome *domain.Outcome) APIResponse {
	if r := outcome.Single; r != nil {
		return APIResponse{
			GrossSalary: r.GrossSalary.InexactFloat64(),
			NetSalary:   r.NetSalary.InexactFloat64(),
			TaxBreakdown: APITaxBreakdown{
				IncomeTax:         r.FinalTax.InexactFloat64(),
				NationalInsurance: r.BituachLeumiEmployee.InexactFloat64(),
				PensionEmployee:   r.Pension.Employee.InexactFloat64(),
				TotalDeductions:   r.TotalDeductions.InexactFloat64(),
			},
			CreditPoints:     r.CreditPoints.InexactFloat64(),
			EffectiveTaxRate: r.EffectiveTaxRate.InexactFloat64(),
		}
	}
	m := outcome.Multi
	var rate decimal.Decimal
	if m.TotalGross.IsPositive() {
		rate = m.TotalTax.Div(m.TotalGross).Mul(decimal.NewFromInt(100)).Round(2)
	}
	return APIResponse{
		GrossSalary: m.TotalGross.InexactFloat64(),
		NetSalary:   m.TotalNet.InexactFloat64(),
		TaxBreakdown: APITaxBreakdown{
			IncomeTax:         m.TotalTax.InexactFloat64(),
			NationalInsurance: m.TotalBituachLeumi.InexactFloat64(),
			PensionEmployee:   m.TotalPension.InexactFloat64(),
			TotalDeductions:   m.TotalDeductions.InexactFloat64(),
		},
		CreditPoints:     m.TotalCreditPoints.InexactFloat64(),
		EffectiveTaxRate: rate.InexactFloat64(),
	}
}

// FromAPIResponse maps an API response onto a single-source result. The API does not
// report employer contributions, credit value or locality data, so those stay zero.
func FromAPIResponse(resp APIResponse, in *domain.CalculationInput, asOf time.Time) *domain.CalculationResult {
	tax := decimal.NewFromFloat(resp.TaxBreakdown.IncomeTax)
	insurance := decimal.NewFromFloat(resp.TaxBreakdown.NationalInsurance).Add(decimal.NewFromFloat(resp.TaxBreakdown.HealthTax))
	pension := decimal.NewFromFloat(resp.TaxBreakdown.PensionEmployee)
	gross := decimal.NewFromFloat(resp.GrossSalary)

	employment := in.EmploymentType
	if employment == "" {
		employment = domain.EmploymentEmployee
	}
	return &domain.CalculationResult{
		AsOf:                 domain.DateOf(asOf),
		EmploymentType:       employment,
		GrossSalary:          gross,
		TaxableBase:          gross,
		TaxBeforeCredits:     tax,
		TaxAfterCredits:      tax,
		FinalTax:             tax,
		CreditPoints:         decimal.NewFromFloat(resp.CreditPoints),
		BituachLeumiEmployee: insurance,
		Pension:              domain.PensionResult{Employee: pension},
		TotalDeductions:      decimal.NewFromFloat(resp.TaxBreakdown.TotalDeductions),
		NetSalary:            decimal.NewFromFloat(resp.NetSalary),
		EffectiveTaxRate:     decimal.NewFromFloat(resp.EffectiveTaxRate),
		Breakdown: []domain.DeductionBreakdown{
			{Category: domain.CategoryIncomeTax, Amount: tax, Description: "Income tax deduction"},
			{Category: domain.CategoryInsurance, Amount: insurance, IsTaxDeductible: true, Description: "National insurance and health tax"},
			{Category: domain.CategoryPensionEmployee, Amount: pension, IsTaxDeductible: true, Description: "Employee pension contribution"},
		},
		Warnings: []string{"Calculated by the remote calculator; employer contributions and credit values are not reported"},
	}
}

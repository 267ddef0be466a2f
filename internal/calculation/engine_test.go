package calculation

import (
	"fmt"
	"testing"
	"time"

	"github.com/ilsalary/net-salary-calculator/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recordingLogger captures formatted messages by level.
type recordingLogger struct {
	infos    []string
	warnings []string
}

func (l *recordingLogger) Debugf(format string, args ...any) {}
func (l *recordingLogger) Infof(format string, args ...any) {
	l.infos = append(l.infos, fmt.Sprintf(format, args...))
}
func (l *recordingLogger) Warnf(format string, args ...any) {
	l.warnings = append(l.warnings, fmt.Sprintf(format, args...))
}
func (l *recordingLogger) Errorf(format string, args ...any) {}

func ledgerTotal(lines []domain.DeductionBreakdown) decimal.Decimal {
	total := decimal.Zero
	for _, line := range lines {
		if !line.Informational {
			total = total.Add(line.Amount)
		}
	}
	return total
}

func findLine(lines []domain.DeductionBreakdown, category string) (domain.DeductionBreakdown, bool) {
	for _, line := range lines {
		if line.Category == category {
			return line, true
		}
	}
	return domain.DeductionBreakdown{}, false
}

func TestComputeEmployeeSalary_SingleResidentMale(t *testing.T) {
	engine := NewEngine()
	result, err := engine.ComputeEmployeeSalary(residentMale("15000"), testRules())
	require.NoError(t, err)

	assertDecimal(t, "1231.262", result.BituachLeumiEmployee)
	assertDecimal(t, "900", result.Pension.Employee)
	assertDecimal(t, "12868.738", result.TaxableBase)
	assertDecimal(t, "1689.7476", result.TaxBeforeCredits)
	assertDecimal(t, "2.25", result.CreditPoints)
	assertDecimal(t, "544.5", result.CreditPointsValue)
	assertDecimal(t, "1145.2476", result.FinalTax)
	assertDecimal(t, "11723.4904", result.NetSalary)
	assertDecimal(t, "7.63", result.EffectiveTaxRate)
	assertDecimal(t, "20", result.MarginalTaxRate)
	assertDecimal(t, "237.65", result.Pension.TaxCredit)

	assert.True(t, result.NetSalary.IsPositive())
	assert.True(t, result.NetSalary.LessThan(d("15000")))
	sum := result.BituachLeumiEmployee.Add(result.Pension.Employee).Add(result.FinalTax)
	assert.True(t, sum.Equal(result.TotalDeductions), "insurance + pension + tax = %s, total = %s", sum, result.TotalDeductions)
	assert.True(t, ledgerTotal(result.Breakdown).Equal(result.TotalDeductions))

	credit, ok := findLine(result.Breakdown, domain.CategoryPensionTaxCredit)
	require.True(t, ok)
	assert.True(t, credit.Informational)
	assertDecimal(t, "-237.65", credit.Amount)

	assert.Equal(t, 2025, result.TaxYear)
	assert.Equal(t, "2025-06-15", result.AsOf.String())
	assert.Empty(t, result.Warnings)
}

func TestComputeEmployeeSalary_Donation(t *testing.T) {
	in := residentMale("30000")
	in.DonationAmount = d("5000")

	result, err := NewEngine().ComputeEmployeeSalary(in, testRules())
	require.NoError(t, err)

	assertDecimal(t, "1225", result.DonationCredit)
	assert.True(t, result.FinalTax.Equal(result.TaxAfterCredits.Sub(d("1225"))))
	line, ok := findLine(result.Breakdown, domain.CategoryDonationCredit)
	require.True(t, ok)
	assert.True(t, line.Informational)
	assert.True(t, ledgerTotal(result.Breakdown).Equal(result.TotalDeductions))
}

func TestComputeEmployeeSalary_DonationNeverMakesTaxNegative(t *testing.T) {
	in := residentMale("6000")
	in.DonationAmount = d("3500")

	result, err := NewEngine().ComputeEmployeeSalary(in, testRules())
	require.NoError(t, err)
	assert.True(t, result.FinalTax.IsZero())
	assertDecimal(t, "1225", result.DonationCredit)
}

func TestComputeEmployeeSalary_DisabilityExemption(t *testing.T) {
	in := residentMale("15000")
	in.HasDisabilityExemption = true

	result, err := NewEngine().ComputeEmployeeSalary(in, testRules())
	require.NoError(t, err)

	assertDecimal(t, "6120", result.DisabilityExemption)
	assertDecimal(t, "6748.738", result.TaxableBase)
	assertDecimal(t, "130.3738", result.FinalTax)
}

func TestComputeEmployeeSalary_FringeBenefits(t *testing.T) {
	in := residentMale("10000")
	in.FringeBenefits = domain.FringeBenefits{Car: d("2000")}

	result, err := NewEngine().ComputeEmployeeSalary(in, testRules())
	require.NoError(t, err)

	// insurance is charged on the inflated 12000
	assertDecimal(t, "866.162", result.BituachLeumiEmployee)
	assertDecimal(t, "10000", result.GrossSalary)
	line, ok := findLine(result.Breakdown, domain.CategoryFringeBenefits)
	require.True(t, ok)
	assertDecimal(t, "2000", line.Amount)
	assert.True(t, ledgerTotal(result.Breakdown).Equal(result.TotalDeductions))
}

func TestComputeEmployeeSalary_StudyFundIsCapped(t *testing.T) {
	in := residentMale("15000")
	in.HasStudyFund = true
	in.StudyFundEmployeeRate = d("5")
	in.StudyFundEmployerRate = d("7.5")

	result, err := NewEngine().ComputeEmployeeSalary(in, testRules())
	require.NoError(t, err)
	assertDecimal(t, "375", result.StudyFundEmployee)
	assertDecimal(t, "1125", result.StudyFundEmployer)
	assertDecimal(t, "12493.738", result.TaxableBase)
	assert.True(t, ledgerTotal(result.Breakdown).Equal(result.TotalDeductions))
}

func TestComputeEmployeeSalary_Locality(t *testing.T) {
	in := residentMale("15000")
	in.Locality = "Sderot"
	logger := &recordingLogger{}
	engine := NewEngine()
	engine.SetLogger(logger)

	result, err := engine.ComputeEmployeeSalary(in, testRules())
	require.NoError(t, err)
	assertDecimal(t, "229.04952", result.LocalityDiscount)
	assertDecimal(t, "916.19808", result.FinalTax)
	assert.True(t, result.Locality.IsValid)
	assert.NotEmpty(t, logger.infos)

	in.Locality = "Atlantis"
	result, err = engine.ComputeEmployeeSalary(in, testRules())
	require.NoError(t, err)
	assert.True(t, result.LocalityDiscount.IsZero())
	assert.Equal(t, []string{"Locality not found"}, result.Warnings)
	assert.Len(t, logger.warnings, 1)
}

func TestComputeSelfEmployedSalary_VAT(t *testing.T) {
	in := residentMale("0")
	in.EmploymentType = domain.EmploymentSelfEmployed
	in.SelfEmployedIncome = &domain.SelfEmployedIncome{
		Type:        domain.BusinessEsekMurshe,
		Revenue:     d("20000"),
		ExpenseRate: d("30"),
	}

	result, err := NewEngine().ComputeSelfEmployedSalary(in, testRules())
	require.NoError(t, err)

	assertDecimal(t, "14000", result.GrossSalary)
	assertDecimal(t, "3600", result.VAT)
	line, ok := findLine(result.Breakdown, domain.CategoryVAT)
	require.True(t, ok)
	assertDecimal(t, "3600", line.Amount)

	assertDecimal(t, "1624.882", result.BituachLeumiEmployee)
	assertDecimal(t, "623", result.Pension.Employee)
	assertDecimal(t, "12532.06136", result.TaxableBase)
	assertDecimal(t, "1077.912272", result.FinalTax)
	assertDecimal(t, "7074.205728", result.NetSalary)
	assert.True(t, ledgerTotal(result.Breakdown).Equal(result.TotalDeductions))

	in.SelfEmployedIncome.Type = domain.BusinessEsekPatur
	result, err = NewEngine().ComputeSelfEmployedSalary(in, testRules())
	require.NoError(t, err)
	assert.True(t, result.VAT.IsZero())
	_, ok = findLine(result.Breakdown, domain.CategoryVAT)
	assert.False(t, ok)
}

func TestComputeSelfEmployedSalary_MissingIncome(t *testing.T) {
	in := residentMale("0")
	in.EmploymentType = domain.EmploymentSelfEmployed

	_, err := NewEngine().ComputeSelfEmployedSalary(in, testRules())
	assert.ErrorIs(t, err, ErrMissingSelfEmployedIncome)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestEngineCalculate_Dispatch(t *testing.T) {
	engine := NewEngine()
	rules := testRules()

	outcome, err := engine.Calculate(residentMale("15000"), rules)
	require.NoError(t, err)
	require.NotNil(t, outcome.Single)
	assert.Nil(t, outcome.Multi)
	assert.True(t, outcome.NetSalary().Equal(outcome.Single.NetSalary))

	empty := residentMale("15000")
	empty.EmploymentType = ""
	outcome, err = engine.Calculate(empty, rules)
	require.NoError(t, err)
	assert.Equal(t, domain.EmploymentEmployee, outcome.Single.EmploymentType)

	jobs := residentMale("0")
	jobs.EmploymentType = domain.EmploymentMultipleEmployers
	jobs.Jobs = []domain.JobIncome{{ID: "main", GrossSalary: d("10000"), PensionRate: d("6"), CreditPointsPercent: d("100")}}
	outcome, err = engine.Calculate(jobs, rules)
	require.NoError(t, err)
	require.NotNil(t, outcome.Multi)

	unknown := residentMale("15000")
	unknown.EmploymentType = "freelancer"
	_, err = engine.Calculate(unknown, rules)
	assert.ErrorIs(t, err, ErrUnsupportedEmploymentType)

	_, err = engine.Calculate(nil, rules)
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = engine.Calculate(residentMale("15000"), nil)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestEngine_DefaultsAsOfToToday(t *testing.T) {
	t.Cleanup(func() { SetNowFunc(time.Now) })
	SetNowFunc(func() time.Time { return time.Date(2025, time.March, 3, 17, 45, 0, 0, time.UTC) })

	in := residentMale("15000")
	in.AsOf = domain.Date{}
	in.BirthDate = domain.NewDate(2008, time.March, 4)

	first, err := NewEngine().ComputeEmployeeSalary(in, testRules())
	require.NoError(t, err)
	second, err := NewEngine().ComputeEmployeeSalary(in, testRules())
	require.NoError(t, err)

	assert.Equal(t, "2025-03-03", first.AsOf.String())
	assert.True(t, first.NetSalary.Equal(second.NetSalary))
	// aged 16 on the evaluation date, so the youth credit applies
	assertDecimal(t, "3.25", first.CreditPoints)
}

func TestEngine_ZeroIncome(t *testing.T) {
	result, err := NewEngine().ComputeEmployeeSalary(residentMale("0"), testRules())
	require.NoError(t, err)
	assert.True(t, result.FinalTax.IsZero())
	assert.True(t, result.NetSalary.IsZero())
	assert.True(t, result.EffectiveTaxRate.IsZero())
}

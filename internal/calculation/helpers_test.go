package calculation

import (
	"testing"
	"time"

	"github.com/ilsalary/net-salary-calculator/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func dp(s string) *decimal.Decimal {
	v := d(s)
	return &v
}

// assertDecimal compares by value so that 1.50 and 1.5 are equal.
func assertDecimal(t *testing.T, expected string, actual decimal.Decimal, msgAndArgs ...any) {
	t.Helper()
	assert.True(t, d(expected).Equal(actual), append([]any{"expected %s, got %s", expected, actual.String()}, msgAndArgs...)...)
}

var testAsOf = time.Date(2025, time.June, 15, 0, 0, 0, 0, time.UTC)

func testBrackets() []domain.TaxBracket {
	return []domain.TaxBracket{
		{Min: d("0"), Max: dp("7010"), Rate: d("0.10")},
		{Min: d("7010"), Max: dp("10060"), Rate: d("0.14")},
		{Min: d("10060"), Max: dp("16150"), Rate: d("0.20")},
		{Min: d("16150"), Max: dp("22440"), Rate: d("0.31")},
		{Min: d("22440"), Max: dp("46690"), Rate: d("0.35")},
		{Min: d("46690"), Max: dp("60130"), Rate: d("0.47")},
		{Min: d("60130"), Max: nil, Rate: d("0.50")},
	}
}

// testRules is a 2025 rule table built in code so calculation tests do not depend on the loader.
func testRules() *domain.RuleTable {
	return &domain.RuleTable{
		TaxYear:           2025,
		IncomeTaxBrackets: testBrackets(),
		SocialSecurity: domain.SocialSecurityConfig{
			Threshold1:                d("7522"),
			Threshold2:                d("50695"),
			EmployeeRate1:             d("0.0427"),
			EmployeeRate2:             d("0.1217"),
			EmployerRate1:             d("0.0451"),
			EmployerRate2:             d("0.076"),
			SelfEmployedRate1:         d("0.061"),
			SelfEmployedRate2:         d("0.18"),
			SelfEmployedMinIncome:     d("3385"),
			SelfEmployedDeductionRate: d("0.52"),
		},
		Pension: domain.PensionConfig{
			EmployeeRate:              d("0.06"),
			EmployerPensionRate:       d("0.065"),
			EmployerSeveranceRate:     d("0.06"),
			RecognizedWageCeiling:     d("49030"),
			EmployerRecognizedBase:    d("33290"),
			MaxRecognizedEmployee7Pct: d("679"),
			TaxCreditRate:             d("0.35"),
			SelfEmployedMinRate:       d("0.0445"),
			SelfEmployedEmployerRate:  d("0.1255"),
			SelfEmployedMaxRate:       d("0.17"),
			SelfEmployedMaxAnnual:     d("245280"),
		},
		CreditPoints: domain.CreditPointsConfig{
			ValuePerPointMonthly:          d("242"),
			BaseResident:                  d("2.25"),
			Women:                         d("0.5"),
			WorkingYouth:                  d("1"),
			SingleParent:                  d("1"),
			SpouseNoIncome:                d("1"),
			DisabledChild:                 d("2"),
			ArmyServiceShort:              d("1"),
			ArmyServiceLong:               d("2"),
			ArmyServiceLongMonths:         23,
			ArmyDischargeWindowMonths:     36,
			AcademicDegreeAnnual:          d("1"),
			AcademicDegreeYears:           3,
			MastersDegreeAnnual:           d("0.5"),
			MastersDegreeYears:            2,
			DoctorateAdditional:           d("1"),
			DoctorateYears:                2,
			ProfessionalCertificateAnnual: d("1"),
			ProfessionalCertificateYears:  3,
			ChildSchedules: []domain.ChildSchedule{
				{Name: "born 2024 onward", BornFrom: 2024, Buckets: []domain.AgeBucket{
					{MinAge: 0, MaxAge: 0, Points: d("2.5")},
					{MinAge: 1, MaxAge: 2, Points: d("4.5")},
					{MinAge: 3, MaxAge: 3, Points: d("3.5")},
					{MinAge: 4, MaxAge: 5, Points: d("2.5")},
				}},
				{Name: "born 2017-2023", BornFrom: 2017, BornTo: 2023, Buckets: []domain.AgeBucket{
					{MinAge: 0, MaxAge: 0, Points: d("1.5")},
					{MinAge: 1, MaxAge: 5, Points: d("2.5")},
				}},
				{Name: "standard", Buckets: []domain.AgeBucket{
					{MinAge: 0, MaxAge: 0, Points: d("1.5")},
					{MinAge: 1, MaxAge: 17, Points: d("1")},
					{MinAge: 18, MaxAge: 18, Points: d("0.5")},
				}},
			},
			ChildSchoolAgePoints:             d("1"),
			ChildSchoolAgePointsSingleParent: d("2"),
			NewImmigrantSchedules: []domain.ImmigrantSchedule{
				{Name: "arrived 2022 onward", ArrivedFrom: 2022, Tiers: []domain.MonthTier{
					{UntilMonth: 12, Points: d("1")},
					{UntilMonth: 30, Points: d("3")},
					{UntilMonth: 42, Points: d("2")},
					{UntilMonth: 54, Points: d("1")},
				}},
				{Name: "arrived up to 2021", ArrivedTo: 2021, Tiers: []domain.MonthTier{
					{UntilMonth: 18, Points: d("3")},
					{UntilMonth: 30, Points: d("2")},
					{UntilMonth: 42, Points: d("1")},
				}},
			},
			SingleParentPolicy: domain.SingleParentPerChild,
			ArmyServicePolicy:  domain.ArmyDischargeGatedWithFallback,
		},
		Donations:           domain.DonationsConfig{MonthlyCap: d("3500"), CreditRate: d("0.35")},
		DisabilityExemption: domain.DisabilityConfig{MonthlyLimit: d("6120")},
		SelfEmployed:        domain.SelfEmployedConfig{VATRate: d("0.18")},
		StudyFund:           domain.StudyFundConfig{EmployeeMaxRate: d("2.5"), EmployerMaxRate: d("7.5")},
		LocalityDiscounts: []domain.LocalityDiscount{
			{Code: "sderot", Name: "Sderot", NameHe: "שדרות", DiscountPercent: d("0.20"), MaxIncome: d("20000")},
			{Code: "kiryat_shmona", Name: "Kiryat Shmona", NameHe: "קריית שמונה", DiscountPercent: d("0.20"), MaxIncome: d("20000")},
			{Code: "old_town", Name: "Old Town", DiscountPercent: d("0.10"), MaxIncome: d("20000"), ValidTo: domain.NewDate(2020, time.December, 31)},
			{Code: "new_town", Name: "New Town", DiscountPercent: d("0.10"), MaxIncome: d("20000"), ValidFrom: domain.NewDate(2030, time.January, 1)},
		},
	}
}

// residentMale is a 35 year old single resident man with no other credits.
func residentMale(gross string) *domain.CalculationInput {
	return &domain.CalculationInput{
		EmploymentType: domain.EmploymentEmployee,
		GrossSalary:    d(gross),
		IsResident:     true,
		Gender:         domain.GenderMale,
		BirthDate:      domain.NewDate(1990, time.March, 1),
		MaritalStatus:  domain.MaritalSingle,
		AsOf:           domain.DateOf(testAsOf),
	}
}

package calculation

import (
	"fmt"
	"time"

	"github.com/ilsalary/net-salary-calculator/internal/domain"
	"github.com/ilsalary/net-salary-calculator/pkg/dateutil"
	money "github.com/ilsalary/net-salary-calculator/pkg/decimal"
	"github.com/shopspring/decimal"
)

const (
	workingYouthMinAge = 16
	workingYouthMaxAge = 18
	schoolAgeMin       = 6
	schoolAgeMax       = 17
)

// creditList accumulates non-zero credit lines.
type creditList []domain.CreditPointBreakdown

func (l *creditList) add(category string, points decimal.Decimal, description string) {
	if !points.IsPositive() {
		return
	}
	*l = append(*l, domain.CreditPointBreakdown{Category: category, Points: points, Description: description})
}

// CalculateCreditPoints itemizes the credit points a taxpayer earns at asOf.
// Non-residents earn none.
func CalculateCreditPoints(in *domain.CalculationInput, rules *domain.RuleTable, asOf time.Time) []domain.CreditPointBreakdown {
	items := creditList{}
	if in == nil || rules == nil || !in.IsResident {
		return items
	}
	cfg := rules.CreditPoints

	items.add("Israeli Resident", cfg.BaseResident, "Base credit for Israeli residents")

	if in.Gender == domain.GenderFemale {
		items.add("Women", cfg.Women, "Additional credit for women")
	}

	if in.BirthDate.IsSet() {
		age := dateutil.Age(in.BirthDate.Time, asOf)
		if age >= workingYouthMinAge && age <= workingYouthMaxAge {
			items.add("Working Youth", cfg.WorkingYouth, fmt.Sprintf("Working youth aged %d", age))
		}
	}

	if in.IsNewImmigrant && in.ImmigrationDate.IsSet() {
		if pts, desc, ok := immigrantPoints(in.ImmigrationDate.Time, cfg.NewImmigrantSchedules, asOf); ok {
			items.add("New Immigrant", pts, desc)
		}
	}

	if in.MaritalStatus == domain.MaritalMarried && in.SpouseNoIncome {
		items.add("Spouse Without Income", cfg.SpouseNoIncome, "Married with a spouse who has no income")
	}

	for i, age := range in.ChildAges {
		pts, desc := childPoints(age, in.IsSingleParent, cfg, asOf)
		items.add(fmt.Sprintf("Child %d", i+1), pts, desc)
	}

	if in.HasDisability && in.ChildrenCount > 0 {
		items.add("Child With Special Needs", cfg.DisabledChild, "Disability credit for a dependent child")
	}

	if in.IsSingleParent && in.ChildrenCount > 0 {
		pts, desc := singleParentRuleFor(cfg.SingleParentPolicy).points(in, cfg)
		items.add("Single Parent", pts, desc)
	}

	if in.ArmyService {
		if ok, note := armyServiceRuleFor(cfg.ArmyServicePolicy).eligible(in, cfg, asOf); ok {
			pts, desc := armyServicePoints(in.ArmyServiceMonths, cfg)
			if note != "" {
				desc += ", " + note
			}
			items.add("Military/National Service", pts, desc)
		}
	}

	if in.GraduationDate.IsSet() {
		if pts, desc, ok := educationPoints(in.EducationLevel, in.GraduationDate.Time, cfg, asOf); ok {
			items.add("Education", pts, desc)
		}
	}

	return items
}

// SummarizeCreditPoints totals credit lines and prices them at the monthly point value.
func SummarizeCreditPoints(items []domain.CreditPointBreakdown, cfg domain.CreditPointsConfig) domain.CreditPointsSummary {
	total := decimal.Zero
	for _, item := range items {
		total = total.Add(item.Points)
	}
	monthly := total.Mul(cfg.ValuePerPointMonthly)
	return domain.CreditPointsSummary{
		TotalPoints:  total,
		MonthlyValue: monthly,
		AnnualValue:  money.NewMoneyFromDecimal(monthly).Annual().Decimal,
		Breakdown:    items,
	}
}

// childPoints prices one child by age. School-age children follow a fixed rule;
// younger and older children follow the schedule for their birth year.
func childPoints(age int, singleParent bool, cfg domain.CreditPointsConfig, asOf time.Time) (decimal.Decimal, string) {
	if age < 0 {
		return decimal.Zero, ""
	}
	if age >= schoolAgeMin && age <= schoolAgeMax {
		if singleParent {
			return cfg.ChildSchoolAgePointsSingleParent, fmt.Sprintf("Child aged %d, single parent", age)
		}
		return cfg.ChildSchoolAgePoints, fmt.Sprintf("Child aged %d", age)
	}

	birthYear := dateutil.BirthYearForAge(age, asOf)
	for _, schedule := range cfg.ChildSchedules {
		if !yearInRange(birthYear, schedule.BornFrom, schedule.BornTo) {
			continue
		}
		for _, bucket := range schedule.Buckets {
			if age >= bucket.MinAge && age <= bucket.MaxAge {
				return bucket.Points, fmt.Sprintf("Child aged %d (born %d, %s)", age, birthYear, schedule.Name)
			}
		}
		return decimal.Zero, ""
	}
	return decimal.Zero, ""
}

// immigrantPoints finds the monthly points for the arrival year's schedule.
func immigrantPoints(arrival time.Time, schedules []domain.ImmigrantSchedule, asOf time.Time) (decimal.Decimal, string, bool) {
	months := dateutil.MonthsBetween(arrival, asOf)
	if months < 0 {
		return decimal.Zero, "", false
	}
	for _, schedule := range schedules {
		if !yearInRange(arrival.Year(), schedule.ArrivedFrom, schedule.ArrivedTo) {
			continue
		}
		for _, tier := range schedule.Tiers {
			if months < tier.UntilMonth {
				return tier.Points, fmt.Sprintf("New immigrant, month %d since arrival (%s)", months+1, schedule.Name), true
			}
		}
		return decimal.Zero, "", false
	}
	return decimal.Zero, "", false
}

func armyServicePoints(serviceMonths int, cfg domain.CreditPointsConfig) (decimal.Decimal, string) {
	threshold := cfg.ArmyServiceLongMonths
	if threshold <= 0 {
		threshold = defaultArmyLongServiceMonths
	}
	if serviceMonths >= threshold {
		return cfg.ArmyServiceLong, fmt.Sprintf("Service of %d months", serviceMonths)
	}
	return cfg.ArmyServiceShort, fmt.Sprintf("Short service of %d months", serviceMonths)
}

// educationPoints applies the degree credit while the post-graduation window is open.
func educationPoints(level domain.EducationLevel, graduation time.Time, cfg domain.CreditPointsConfig, asOf time.Time) (decimal.Decimal, string, bool) {
	years := dateutil.WholeYearsBetween(graduation, asOf)
	if years < 0 {
		return decimal.Zero, "", false
	}

	var points decimal.Decimal
	var limit int
	var label string
	switch level {
	case domain.EducationBachelor:
		points, limit, label = cfg.AcademicDegreeAnnual, cfg.AcademicDegreeYears, "Bachelor's degree"
	case domain.EducationMaster:
		points, limit, label = cfg.MastersDegreeAnnual, cfg.MastersDegreeYears, "Master's degree"
	case domain.EducationDoctorate:
		points = cfg.AcademicDegreeAnnual.Add(cfg.MastersDegreeAnnual).Add(cfg.DoctorateAdditional)
		limit, label = cfg.DoctorateYears, "Doctorate"
	case domain.EducationProfessional:
		points, limit, label = cfg.ProfessionalCertificateAnnual, cfg.ProfessionalCertificateYears, "Professional certificate"
	default:
		return decimal.Zero, "", false
	}
	if years >= limit {
		return decimal.Zero, "", false
	}
	return points, fmt.Sprintf("%s, year %d of %d after graduation", label, years+1, limit), true
}

// yearInRange treats zero bounds as open.
func yearInRange(year, from, to int) bool {
	if from != 0 && year < from {
		return false
	}
	if to != 0 && year > to {
		return false
	}
	return true
}

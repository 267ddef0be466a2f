package calculation

import (
	"fmt"

	"github.com/ilsalary/net-salary-calculator/internal/domain"
	"github.com/shopspring/decimal"
)

var hundredPercent = decimal.NewFromInt(100)

// ValidateInput checks the structural invariants every engine relies on.
func ValidateInput(in *domain.CalculationInput) error {
	if in == nil {
		return fmt.Errorf("%w: input is required", ErrInvalidInput)
	}
	if in.GrossSalary.IsNegative() {
		return fmt.Errorf("%w: gross salary cannot be negative", ErrInvalidInput)
	}
	if in.PensionBase != nil && in.PensionBase.IsNegative() {
		return fmt.Errorf("%w: pension base cannot be negative", ErrInvalidInput)
	}
	if in.ChildrenCount < 0 {
		return fmt.Errorf("%w: children count cannot be negative", ErrInvalidInput)
	}
	if len(in.ChildAges) != in.ChildrenCount {
		return fmt.Errorf("%w: children count %d does not match %d child ages", ErrInvalidInput, in.ChildrenCount, len(in.ChildAges))
	}
	for i, age := range in.ChildAges {
		if age < 0 || age > 18 {
			return fmt.Errorf("%w: child %d age %d must be between 0 and 18", ErrInvalidInput, i+1, age)
		}
	}
	if in.ArmyServiceMonths < 0 {
		return fmt.Errorf("%w: army service months cannot be negative", ErrInvalidInput)
	}
	if in.DonationAmount.IsNegative() {
		return fmt.Errorf("%w: donation amount cannot be negative", ErrInvalidInput)
	}
	if in.StudyFundEmployeeRate.IsNegative() || in.StudyFundEmployerRate.IsNegative() {
		return fmt.Errorf("%w: study fund rates cannot be negative", ErrInvalidInput)
	}
	if se := in.SelfEmployedIncome; se != nil {
		if err := validateSelfEmployedIncome(se); err != nil {
			return err
		}
	}
	for i, job := range in.Jobs {
		if job.GrossSalary.IsNegative() {
			return fmt.Errorf("%w: job %d gross salary cannot be negative", ErrInvalidInput, i+1)
		}
		if job.PensionRate.IsNegative() || job.PensionRate.GreaterThan(hundredPercent) {
			return fmt.Errorf("%w: job %d pension rate must be between 0 and 100", ErrInvalidInput, i+1)
		}
		if job.CreditPointsPercent.IsNegative() || job.CreditPointsPercent.GreaterThan(hundredPercent) {
			return fmt.Errorf("%w: job %d credit points percent must be between 0 and 100", ErrInvalidInput, i+1)
		}
	}
	return nil
}

func validateSelfEmployedIncome(se *domain.SelfEmployedIncome) error {
	switch se.Type {
	case domain.BusinessEsekPatur, domain.BusinessEsekMurshe, domain.BusinessEsekZair:
	default:
		return fmt.Errorf("%w: unknown self-employed business type %q", ErrInvalidInput, se.Type)
	}
	if se.Revenue.IsNegative() {
		return fmt.Errorf("%w: revenue cannot be negative", ErrInvalidInput)
	}
	if se.ExpenseRate.IsNegative() || se.ExpenseRate.GreaterThan(hundredPercent) {
		return fmt.Errorf("%w: expense rate must be between 0 and 100", ErrInvalidInput)
	}
	if se.ActualExpenses != nil && se.ActualExpenses.IsNegative() {
		return fmt.Errorf("%w: actual expenses cannot be negative", ErrInvalidInput)
	}
	return nil
}

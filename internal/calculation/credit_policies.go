package calculation

import (
	"fmt"
	"time"

	"github.com/ilsalary/net-salary-calculator/internal/domain"
	"github.com/ilsalary/net-salary-calculator/pkg/dateutil"
	"github.com/shopspring/decimal"
)

const (
	defaultArmyLongServiceMonths = 23
	defaultArmyDischargeWindow   = 36
)

// singleParentRule prices the single-parent credit under one statutory variant.
type singleParentRule interface {
	points(in *domain.CalculationInput, cfg domain.CreditPointsConfig) (decimal.Decimal, string)
}

type perChildSingleParent struct{}

func (perChildSingleParent) points(in *domain.CalculationInput, _ domain.CreditPointsConfig) (decimal.Decimal, string) {
	return decimal.NewFromInt(int64(in.ChildrenCount)), fmt.Sprintf("Single parent: 1 point for each of %d children", in.ChildrenCount)
}

type flatSingleParent struct{}

func (flatSingleParent) points(_ *domain.CalculationInput, cfg domain.CreditPointsConfig) (decimal.Decimal, string) {
	return cfg.SingleParent, "Single parent household"
}

func singleParentRuleFor(policy domain.SingleParentPolicy) singleParentRule {
	if policy == domain.SingleParentFlat {
		return flatSingleParent{}
	}
	return perChildSingleParent{}
}

// armyServiceRule decides whether a completed service still earns the credit at asOf.
type armyServiceRule interface {
	eligible(in *domain.CalculationInput, cfg domain.CreditPointsConfig, asOf time.Time) (bool, string)
}

// dischargeGatedRule limits the credit to a window after discharge. Without a
// discharge date it grants the credit unless strict.
type dischargeGatedRule struct {
	strict bool
}

func (r dischargeGatedRule) eligible(in *domain.CalculationInput, cfg domain.CreditPointsConfig, asOf time.Time) (bool, string) {
	if !in.ArmyDischargeDate.IsSet() {
		if r.strict {
			return false, ""
		}
		return true, "discharge date not provided"
	}
	window := cfg.ArmyDischargeWindowMonths
	if window <= 0 {
		window = defaultArmyDischargeWindow
	}
	months := dateutil.MonthsBetween(in.ArmyDischargeDate.Time, asOf)
	if months < 0 || months > window {
		return false, ""
	}
	return true, fmt.Sprintf("discharged %d months ago", months)
}

func armyServiceRuleFor(policy domain.ArmyServicePolicy) armyServiceRule {
	return dischargeGatedRule{strict: policy == domain.ArmyDischargeGatedStrict}
}

package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	gojson "github.com/goccy/go-json"
	"github.com/ilsalary/net-salary-calculator/internal/domain"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// ErrInvalidRuleTable marks a rule table whose shape the engine cannot use.
var ErrInvalidRuleTable = errors.New("invalid rule table")

// LoadRuleTable reads a rule table from a YAML or JSON file and validates it.
func LoadRuleTable(filename string) (*domain.RuleTable, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}
	table, err := ParseRuleTable(data, formatFromPath(filename))
	if err != nil {
		return nil, fmt.Errorf("rule table %s: %w", filename, err)
	}
	return table, nil
}

// ParseRuleTable decodes and validates a rule table. Format is "json" or "yaml".
func ParseRuleTable(data []byte, format string) (*domain.RuleTable, error) {
	var table domain.RuleTable
	if format == "json" {
		if err := gojson.Unmarshal(data, &table); err != nil {
			return nil, fmt.Errorf("failed to parse JSON: %w", err)
		}
	} else {
		if err := yaml.Unmarshal(data, &table); err != nil {
			return nil, fmt.Errorf("failed to parse YAML: %w", err)
		}
	}
	if err := ValidateRuleTable(&table); err != nil {
		return nil, err
	}
	return &table, nil
}

// ValidateRuleTable checks the structural invariants the engine assumes without re-checking.
func ValidateRuleTable(table *domain.RuleTable) error {
	if table == nil {
		return fmt.Errorf("%w: table is nil", ErrInvalidRuleTable)
	}
	if table.TaxYear <= 0 {
		return fmt.Errorf("%w: tax_year must be positive", ErrInvalidRuleTable)
	}
	if err := validateBrackets(table.IncomeTaxBrackets); err != nil {
		return err
	}

	ss := table.SocialSecurity
	if ss.Threshold1.IsNegative() || ss.Threshold1.GreaterThan(ss.Threshold2) {
		return fmt.Errorf("%w: social_security threshold_1 must be between 0 and threshold_2", ErrInvalidRuleTable)
	}
	for name, rate := range map[string]decimal.Decimal{
		"employee_rate_1":              ss.EmployeeRate1,
		"employee_rate_2":              ss.EmployeeRate2,
		"employer_rate_1":              ss.EmployerRate1,
		"employer_rate_2":              ss.EmployerRate2,
		"self_employed_rate_1":         ss.SelfEmployedRate1,
		"self_employed_rate_2":         ss.SelfEmployedRate2,
		"self_employed_deduction_rate": ss.SelfEmployedDeductionRate,
		"pension.employee_rate":        table.Pension.EmployeeRate,
		"donations.credit_rate":        table.Donations.CreditRate,
		"self_employed.vat_rate":       table.SelfEmployed.VATRate,
	} {
		if !isRate(rate) {
			return fmt.Errorf("%w: %s must be between 0 and 1", ErrInvalidRuleTable, name)
		}
	}

	if table.CreditPoints.ValuePerPointMonthly.IsNegative() {
		return fmt.Errorf("%w: credit_points.value_per_point_monthly cannot be negative", ErrInvalidRuleTable)
	}
	switch table.CreditPoints.SingleParentPolicy {
	case "", domain.SingleParentPerChild, domain.SingleParentFlat:
	default:
		return fmt.Errorf("%w: unknown single_parent_policy %q", ErrInvalidRuleTable, table.CreditPoints.SingleParentPolicy)
	}
	switch table.CreditPoints.ArmyServicePolicy {
	case "", domain.ArmyDischargeGatedWithFallback, domain.ArmyDischargeGatedStrict:
	default:
		return fmt.Errorf("%w: unknown army_service_policy %q", ErrInvalidRuleTable, table.CreditPoints.ArmyServicePolicy)
	}

	for i, loc := range table.LocalityDiscounts {
		if strings.TrimSpace(loc.Code) == "" && strings.TrimSpace(loc.Name) == "" {
			return fmt.Errorf("%w: locality %d needs a code or a name", ErrInvalidRuleTable, i+1)
		}
		if !isRate(loc.DiscountPercent) {
			return fmt.Errorf("%w: locality %s discount_percent must be between 0 and 1", ErrInvalidRuleTable, loc.Name)
		}
	}
	return nil
}

func validateBrackets(brackets []domain.TaxBracket) error {
	if len(brackets) == 0 {
		return fmt.Errorf("%w: income_tax_brackets cannot be empty", ErrInvalidRuleTable)
	}
	if !brackets[0].Min.IsZero() {
		return fmt.Errorf("%w: first bracket must start at 0", ErrInvalidRuleTable)
	}
	for i, b := range brackets {
		if !isRate(b.Rate) {
			return fmt.Errorf("%w: bracket %d rate must be between 0 and 1", ErrInvalidRuleTable, i+1)
		}
		if b.IsUnbounded() {
			if i != len(brackets)-1 {
				return fmt.Errorf("%w: only the last bracket may be unbounded", ErrInvalidRuleTable)
			}
			continue
		}
		if b.Max.LessThanOrEqual(b.Min) {
			return fmt.Errorf("%w: bracket %d max must exceed min", ErrInvalidRuleTable, i+1)
		}
		if i+1 < len(brackets) && !brackets[i+1].Min.Equal(*b.Max) {
			return fmt.Errorf("%w: gap between bracket %d and %d", ErrInvalidRuleTable, i+1, i+2)
		}
	}
	return nil
}

func isRate(r decimal.Decimal) bool {
	return !r.IsNegative() && r.LessThanOrEqual(decimal.NewFromInt(1))
}

func formatFromPath(path string) string {
	if strings.EqualFold(filepath.Ext(path), ".json") {
		return "json"
	}
	return "yaml"
}

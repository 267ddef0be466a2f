package config

import (
	"fmt"
	"os"
	"time"

	gojson "github.com/goccy/go-json"
	"github.com/ilsalary/net-salary-calculator/internal/calculation"
	"github.com/ilsalary/net-salary-calculator/internal/domain"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// InputParser handles parsing of calculation input files
type InputParser struct{}

// NewInputParser creates a new input parser
func NewInputParser() *InputParser {
	return &InputParser{}
}

// LoadFromFile loads a calculation input from a YAML or JSON file
func (ip *InputParser) LoadFromFile(filename string) (*domain.CalculationInput, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}
	return ip.Parse(data, formatFromPath(filename))
}

// Parse decodes and validates input bytes. Format is "json" or "yaml".
func (ip *InputParser) Parse(data []byte, format string) (*domain.CalculationInput, error) {
	var input domain.CalculationInput
	if format == "json" {
		if err := gojson.Unmarshal(data, &input); err != nil {
			return nil, fmt.Errorf("failed to parse JSON: %w", err)
		}
	} else {
		if err := yaml.Unmarshal(data, &input); err != nil {
			return nil, fmt.Errorf("failed to parse YAML: %w", err)
		}
	}

	if err := ip.ValidateInput(&input); err != nil {
		return nil, fmt.Errorf("input validation failed: %w", err)
	}
	return &input, nil
}

// ValidateInput checks the engine's structural rules plus what each employment type requires.
func (ip *InputParser) ValidateInput(input *domain.CalculationInput) error {
	if err := calculation.ValidateInput(input); err != nil {
		return err
	}

	switch input.EmploymentType {
	case "", domain.EmploymentEmployee:
	case domain.EmploymentSelfEmployed, domain.EmploymentCombined:
		if input.SelfEmployedIncome == nil {
			return calculation.ErrMissingSelfEmployedIncome
		}
	case domain.EmploymentMultipleEmployers:
		if len(input.Jobs) == 0 {
			return fmt.Errorf("%w: multiple_employers requires at least one job", calculation.ErrInvalidInput)
		}
	default:
		return fmt.Errorf("%w: %q", calculation.ErrUnsupportedEmploymentType, input.EmploymentType)
	}

	switch input.Gender {
	case "", domain.GenderMale, domain.GenderFemale:
	default:
		return fmt.Errorf("%w: unknown gender %q", calculation.ErrInvalidInput, input.Gender)
	}
	switch input.EducationLevel {
	case "", domain.EducationNone, domain.EducationBachelor, domain.EducationMaster,
		domain.EducationDoctorate, domain.EducationProfessional:
	default:
		return fmt.Errorf("%w: unknown education level %q", calculation.ErrInvalidInput, input.EducationLevel)
	}
	return nil
}

// CreateExampleInput creates an example input for a married resident employee
func (ip *InputParser) CreateExampleInput() *domain.CalculationInput {
	today := time.Now()
	return &domain.CalculationInput{
		EmploymentType:    domain.EmploymentEmployee,
		GrossSalary:       decimal.NewFromInt(18000),
		IsResident:        true,
		Gender:            domain.GenderFemale,
		BirthDate:         domain.NewDate(1988, time.April, 12),
		MaritalStatus:     domain.MaritalMarried,
		ChildrenCount:     2,
		ChildAges:         []int{3, 8},
		ArmyService:       true,
		ArmyServiceMonths: 24,
		EducationLevel:    domain.EducationBachelor,
		GraduationDate:    domain.NewDate(today.Year()-1, time.July, 1),
		Locality:          "none",
		FringeBenefits: domain.FringeBenefits{
			Phone: decimal.NewFromInt(100),
		},
		DonationAmount:        decimal.NewFromInt(200),
		HasStudyFund:          true,
		StudyFundEmployeeRate: decimal.NewFromFloat(2.5),
		StudyFundEmployerRate: decimal.NewFromFloat(7.5),
	}
}

// WriteExampleInput writes the example input as YAML
func (ip *InputParser) WriteExampleInput(filename string) error {
	data, err := yaml.Marshal(ip.CreateExampleInput())
	if err != nil {
		return fmt.Errorf("failed to marshal example input: %w", err)
	}
	if err := os.WriteFile(filename, data, 0o644); err != nil {
		return fmt.Errorf("failed to write file %s: %w", filename, err)
	}
	return nil
}

package output

import (
	"gopkg.in/yaml.v3"

	"github.com/ilsalary/net-salary-calculator/internal/domain"
)

// YAMLFormatter serializes the calculation result as YAML, matching the input file format.
type YAMLFormatter struct{}

func (y YAMLFormatter) Name() string { return "yaml" }

func (y YAMLFormatter) Format(outcome *domain.Outcome) ([]byte, error) {
	if err := checkOutcome(outcome); err != nil {
		return nil, err
	}
	if outcome.Single != nil {
		return yaml.Marshal(outcome.Single)
	}
	return yaml.Marshal(outcome.Multi)
}

package output

import (
	"github.com/goccy/go-json"

	"github.com/ilsalary/net-salary-calculator/internal/domain"
)

// JSONFormatter serializes the calculation result as pretty-printed JSON.
type JSONFormatter struct{}

func (j JSONFormatter) Name() string { return "json" }

func (j JSONFormatter) Format(outcome *domain.Outcome) ([]byte, error) {
	if err := checkOutcome(outcome); err != nil {
		return nil, err
	}
	if outcome.Single != nil {
		return json.MarshalIndent(outcome.Single, "", "  ")
	}
	return json.MarshalIndent(outcome.Multi, "", "  ")
}

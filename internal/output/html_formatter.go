package output

import (
	"bytes"
	_ "embed"
	"html/template"

	"github.com/ilsalary/net-salary-calculator/internal/domain"
)

// HTMLFormatter produces a standalone HTML report.
type HTMLFormatter struct{}

func (h HTMLFormatter) Name() string { return "html" }

//go:embed templates/report.html.tmpl
var htmlTemplateSource string

var htmlTemplate = template.Must(template.New("report").Funcs(template.FuncMap{
	"curr":       FormatCurrency,
	"pct":        FormatPercentage,
	"points":     FormatPoints,
	"employment": employmentLabel,
}).Parse(htmlTemplateSource))

func (h HTMLFormatter) Format(outcome *domain.Outcome) ([]byte, error) {
	if err := checkOutcome(outcome); err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	data := struct {
		*domain.Outcome
		Deductions  []domain.DeductionBreakdown
		Adjustments []domain.DeductionBreakdown
	}{Outcome: outcome}
	if outcome.Single != nil {
		data.Deductions, data.Adjustments = deductionLines(outcome.Single.Breakdown)
	}
	if err := htmlTemplate.Execute(&buf, data); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

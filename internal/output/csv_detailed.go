package output

import (
	"bytes"
	"encoding/csv"

	"github.com/ilsalary/net-salary-calculator/internal/domain"
)

// CSVDetailedExporter writes every ledger line and credit point item with a section column.
type CSVDetailedExporter struct{}

func (c CSVDetailedExporter) Name() string { return "detailed-csv" }

func (c CSVDetailedExporter) Format(outcome *domain.Outcome) ([]byte, error) {
	if err := checkOutcome(outcome); err != nil {
		return nil, err
	}
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	if err := w.Write([]string{"Section", "Category", "Amount", "TaxDeductible", "Informational", "Description"}); err != nil {
		return nil, err
	}
	var credits []domain.CreditPointBreakdown
	if r := outcome.Single; r != nil {
		for _, l := range r.Breakdown {
			row := []string{"deduction", l.Category, l.Amount.StringFixed(2), boolToString(l.IsTaxDeductible), boolToString(l.Informational), l.Description}
			if err := w.Write(row); err != nil {
				return nil, err
			}
		}
		credits = r.CreditBreakdown
	} else {
		for i, s := range outcome.Multi.Sources {
			row := []string{"source", s.SourceName, s.FinalTax.StringFixed(2), "false", "false", "source " + intToString(i+1) + " income tax"}
			if err := w.Write(row); err != nil {
				return nil, err
			}
		}
		credits = outcome.Multi.CreditBreakdown
	}
	for _, cp := range credits {
		if err := w.Write([]string{"credit_points", cp.Category, cp.Points.StringFixed(2), "false", "false", cp.Description}); err != nil {
			return nil, err
		}
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}

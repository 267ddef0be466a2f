package output

import (
	"bytes"
	"fmt"

	"github.com/ilsalary/net-salary-calculator/internal/domain"
)

// ConsoleFormatter provides a concise plain-text summary via the formatter interface.
type ConsoleFormatter struct{}

func (c ConsoleFormatter) Name() string { return "console-lite" }

func (c ConsoleFormatter) Format(outcome *domain.Outcome) ([]byte, error) {
	if err := checkOutcome(outcome); err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	fmt.Fprintln(&buf, "NET SALARY SUMMARY")
	fmt.Fprintln(&buf, "================================")
	if r := outcome.Single; r != nil {
		fmt.Fprintf(&buf, "Tax year %d (%s), %s\n", r.TaxYear, r.AsOf, r.EmploymentType)
		fmt.Fprintf(&buf, "Gross:      %s\n", FormatCurrency(r.GrossSalary))
		fmt.Fprintf(&buf, "Income tax: %s\n", FormatCurrency(r.FinalTax))
		fmt.Fprintf(&buf, "Deductions: %s\n", FormatCurrency(r.TotalDeductions))
		fmt.Fprintf(&buf, "Net:        %s\n", FormatCurrency(r.NetSalary))
		fmt.Fprintf(&buf, "Credit points %s, effective rate %s\n", FormatPoints(r.CreditPoints), FormatPercentage(r.EffectiveTaxRate))
		writeWarnings(&buf, r.Warnings)
		return buf.Bytes(), nil
	}
	m := outcome.Multi
	fmt.Fprintf(&buf, "Tax year %d (%s), %s\n", m.TaxYear, m.AsOf, m.EmploymentType)
	for _, s := range m.Sources {
		fmt.Fprintf(&buf, "%s: Gross=%s Tax=%s Net=%s\n", s.SourceName, FormatCurrency(s.GrossIncome), FormatCurrency(s.FinalTax), FormatCurrency(s.NetIncome))
	}
	fmt.Fprintf(&buf, "Total net: %s (tax %s)\n", FormatCurrency(m.TotalNet), FormatCurrency(m.TotalTax))
	fmt.Fprintf(&buf, "Unused credit: %s (%s points)\n", FormatCurrency(m.CreditValueRemaining), FormatPoints(m.CreditPointsRemaining))
	writeWarnings(&buf, m.Warnings)
	return buf.Bytes(), nil
}

func writeWarnings(buf *bytes.Buffer, warnings []string) {
	for _, w := range warnings {
		fmt.Fprintf(buf, "Warning: %s\n", w)
	}
}

package output

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"

	"github.com/ilsalary/net-salary-calculator/internal/domain"
)

var (
	colorPrimary = lipgloss.AdaptiveColor{Light: "#1D4ED8", Dark: "#60A5FA"}
	colorSuccess = lipgloss.AdaptiveColor{Light: "#15803D", Dark: "#4ADE80"}
	colorDanger  = lipgloss.AdaptiveColor{Light: "#B91C1C", Dark: "#F87171"}
	colorMuted   = lipgloss.AdaptiveColor{Light: "#6B7280", Dark: "#9CA3AF"}
	colorBorder  = lipgloss.AdaptiveColor{Light: "#D1D5DB", Dark: "#4B5563"}

	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorPrimary)
	sectionStyle = lipgloss.NewStyle().
			Bold(true).
			Underline(true)
	labelStyle   = lipgloss.NewStyle().Foreground(colorMuted)
	netStyle     = lipgloss.NewStyle().Bold(true).Foreground(colorSuccess)
	warningStyle = lipgloss.NewStyle().Foreground(colorDanger)
	noteStyle    = lipgloss.NewStyle().Foreground(colorMuted).Italic(true)
	boxStyle     = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorBorder).
			Padding(0, 1)
)

const labelWidth = 34

// ConsoleVerboseFormatter renders the full styled report: summary, ledger, credit points and warnings.
type ConsoleVerboseFormatter struct{}

func (c ConsoleVerboseFormatter) Name() string { return "console" }

func (c ConsoleVerboseFormatter) Format(outcome *domain.Outcome) ([]byte, error) {
	if err := checkOutcome(outcome); err != nil {
		return nil, err
	}
	var b strings.Builder
	if outcome.Single != nil {
		writeSingleReport(&b, outcome.Single)
	} else {
		writeMultiReport(&b, outcome.Multi)
	}
	return []byte(b.String()), nil
}

func writeSingleReport(b *strings.Builder, r *domain.CalculationResult) {
	b.WriteString(titleStyle.Render(fmt.Sprintf("NET SALARY REPORT %d", r.TaxYear)))
	b.WriteString("\n")
	b.WriteString(noteStyle.Render(fmt.Sprintf("%s, evaluated as of %s", employmentLabel(r.EmploymentType), r.AsOf)))
	b.WriteString("\n\n")

	summary := []string{
		row("Gross salary", FormatCurrency(r.GrossSalary)),
		row("Taxable base", FormatCurrency(r.TaxableBase)),
		row("Tax before credits", FormatCurrency(r.TaxBeforeCredits)),
		row("Credit points value", FormatCurrency(r.CreditPointsValue)),
		row("Income tax", FormatCurrency(r.FinalTax)),
		row("Total deductions", FormatCurrency(r.TotalDeductions)),
		row("Effective tax rate", FormatPercentage(r.EffectiveTaxRate)),
		row("Marginal tax rate", FormatPercentage(r.MarginalTaxRate)),
		labelStyle.Render(pad("Net salary")) + netStyle.Render(FormatCurrency(r.NetSalary)),
	}
	b.WriteString(boxStyle.Render(strings.Join(summary, "\n")))
	b.WriteString("\n\n")

	counted, informational := deductionLines(r.Breakdown)
	b.WriteString(sectionStyle.Render("DEDUCTIONS"))
	b.WriteString("\n")
	for _, l := range counted {
		b.WriteString(row(l.Category, FormatCurrency(l.Amount)))
		b.WriteString("\n")
	}
	if len(informational) > 0 {
		b.WriteString("\n")
		b.WriteString(sectionStyle.Render("ADJUSTMENTS (included above)"))
		b.WriteString("\n")
		for _, l := range informational {
			b.WriteString(row(l.Category, FormatCurrency(l.Amount)))
			b.WriteString("\n")
			if l.Description != "" {
				b.WriteString(noteStyle.Render("  " + l.Description))
				b.WriteString("\n")
			}
		}
	}
	b.WriteString("\n")

	b.WriteString(sectionStyle.Render("EMPLOYER CONTRIBUTIONS"))
	b.WriteString("\n")
	b.WriteString(row("Bituach Leumi (employer)", FormatCurrency(r.BituachLeumiEmployer)))
	b.WriteString("\n")
	b.WriteString(row("Pension (employer)", FormatCurrency(r.Pension.EmployerPension)))
	b.WriteString("\n")
	b.WriteString(row("Severance (employer)", FormatCurrency(r.Pension.EmployerSeverance)))
	b.WriteString("\n")
	if r.StudyFundEmployer.IsPositive() {
		b.WriteString(row("Keren Hishtalmut (employer)", FormatCurrency(r.StudyFundEmployer)))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	writeCredits(b, r.CreditPoints, r.CreditPointsValue, r.CreditBreakdown)
	writeStyledWarnings(b, r.Warnings)
}

func writeMultiReport(b *strings.Builder, m *domain.MultiSourceCalculationResult) {
	b.WriteString(titleStyle.Render(fmt.Sprintf("NET SALARY REPORT %d", m.TaxYear)))
	b.WriteString("\n")
	b.WriteString(noteStyle.Render(fmt.Sprintf("%s, evaluated as of %s", employmentLabel(m.EmploymentType), m.AsOf)))
	b.WriteString("\n\n")

	for _, s := range m.Sources {
		lines := []string{
			titleStyle.Render(s.SourceName),
			row("Gross income", FormatCurrency(s.GrossIncome)),
			row("Bituach Leumi", FormatCurrency(s.BituachLeumi)),
			row("Pension", FormatCurrency(s.Pension)),
		}
		if s.StudyFund.IsPositive() {
			lines = append(lines, row("Keren Hishtalmut", FormatCurrency(s.StudyFund)))
		}
		lines = append(lines,
			row("Taxable base", FormatCurrency(s.TaxableBase)),
			row("Tax before credits", FormatCurrency(s.TaxBeforeCredits)),
			row("Credit allocated", FormatCurrency(s.CreditPointsAllocated)),
			row("Credit used", FormatCurrency(s.CreditPointsUsed)),
		)
		if s.LocalityDiscount.IsPositive() {
			lines = append(lines, row("Locality discount", FormatCurrency(s.LocalityDiscount)))
		}
		lines = append(lines,
			row("Income tax", FormatCurrency(s.FinalTax)),
			row("Total deductions", FormatCurrency(s.TotalDeductions)),
			labelStyle.Render(pad("Net income"))+netStyle.Render(FormatCurrency(s.NetIncome)),
		)
		if s.EmployerPension.IsPositive() || s.EmployerSeverance.IsPositive() {
			lines = append(lines, noteStyle.Render(fmt.Sprintf("Employer deposits: pension %s, severance %s",
				FormatCurrency(s.EmployerPension), FormatCurrency(s.EmployerSeverance))))
		}
		b.WriteString(boxStyle.Render(strings.Join(lines, "\n")))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	b.WriteString(sectionStyle.Render("TOTALS"))
	b.WriteString("\n")
	for _, line := range []string{
		row("Gross income", FormatCurrency(m.TotalGross)),
		row("Bituach Leumi", FormatCurrency(m.TotalBituachLeumi)),
		row("Pension", FormatCurrency(m.TotalPension)),
		row("Income tax", FormatCurrency(m.TotalTax)),
		row("Total deductions", FormatCurrency(m.TotalDeductions)),
		labelStyle.Render(pad("Net income")) + netStyle.Render(FormatCurrency(m.TotalNet)),
		row("Unused credit", FormatCurrency(m.CreditValueRemaining)+" ("+FormatPoints(m.CreditPointsRemaining)+" points)"),
	} {
		b.WriteString(line)
		b.WriteString("\n")
	}
	b.WriteString("\n")

	writeCredits(b, m.TotalCreditPoints, m.TotalCreditPointsValue, m.CreditBreakdown)
	writeStyledWarnings(b, m.Warnings)
}

func writeCredits(b *strings.Builder, total, value decimal.Decimal, items []domain.CreditPointBreakdown) {
	b.WriteString(sectionStyle.Render(fmt.Sprintf("CREDIT POINTS (%s = %s)", FormatPoints(total), FormatCurrency(value))))
	b.WriteString("\n")
	for _, item := range items {
		b.WriteString(row(item.Category, FormatPoints(item.Points)))
		b.WriteString("\n")
		if item.Description != "" {
			b.WriteString(noteStyle.Render("  " + item.Description))
			b.WriteString("\n")
		}
	}
}

func writeStyledWarnings(b *strings.Builder, warnings []string) {
	if len(warnings) == 0 {
		return
	}
	b.WriteString("\n")
	for _, w := range warnings {
		b.WriteString(warningStyle.Render("⚠ " + w))
		b.WriteString("\n")
	}
}

func row(label, value string) string {
	return labelStyle.Render(pad(label)) + value
}

func pad(label string) string {
	if n := lipgloss.Width(label); n < labelWidth {
		return label + strings.Repeat(" ", labelWidth-n)
	}
	return label + " "
}

func employmentLabel(t domain.EmploymentType) string {
	switch t {
	case domain.EmploymentSelfEmployed:
		return "Self-employed"
	case domain.EmploymentCombined:
		return "Employee and self-employed"
	case domain.EmploymentMultipleEmployers:
		return "Multiple employers"
	default:
		return "Employee"
	}
}

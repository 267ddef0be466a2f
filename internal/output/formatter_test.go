package output

import (
	"encoding/csv"
	"strings"
	"testing"

	"github.com/goccy/go-json"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/ilsalary/net-salary-calculator/internal/domain"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func buildSingleOutcome() *domain.Outcome {
	return &domain.Outcome{Single: &domain.CalculationResult{
		TaxYear:              2025,
		AsOf:                 domain.NewDate(2025, 6, 15),
		EmploymentType:       domain.EmploymentEmployee,
		GrossSalary:          d("15000"),
		TaxableBase:          d("12868.738"),
		TaxBeforeCredits:     d("1689.7476"),
		TaxAfterCredits:      d("1145.2476"),
		FinalTax:             d("1145.2476"),
		CreditPoints:         d("2.25"),
		CreditPointsValue:    d("544.5"),
		CreditBreakdown:      []domain.CreditPointBreakdown{{Category: "Resident", Points: d("2.25"), Description: "Basic resident credit"}},
		BituachLeumiEmployee: d("1231.262"),
		BituachLeumiEmployer: d("907.5702"),
		Pension:              domain.PensionResult{Employee: d("900"), EmployerPension: d("975"), EmployerSeverance: d("900")},
		DonationCredit:       d("70"),
		TotalDeductions:      d("3276.5096"),
		NetSalary:            d("11723.4904"),
		EffectiveTaxRate:     d("7.63"),
		MarginalTaxRate:      d("20"),
		Breakdown: []domain.DeductionBreakdown{
			{Category: domain.CategoryIncomeTax, Amount: d("1145.2476")},
			{Category: domain.CategoryInsurance, Amount: d("1231.262"), IsTaxDeductible: true},
			{Category: domain.CategoryPensionEmployee, Amount: d("900"), IsTaxDeductible: true},
			{Category: domain.CategoryDonationCredit, Amount: d("-70"), Description: "35% of 200", Informational: true},
		},
		Warnings: []string{"Locality atlantis is not eligible for a discount"},
	}}
}

func buildMultiOutcome() *domain.Outcome {
	return &domain.Outcome{Multi: &domain.MultiSourceCalculationResult{
		TaxYear:        2025,
		AsOf:           domain.NewDate(2025, 6, 15),
		EmploymentType: domain.EmploymentMultipleEmployers,
		Sources: []domain.IncomeSourceResult{
			{SourceID: "job_1", SourceName: "Job 1", GrossIncome: d("12000"), FinalTax: d("621.71332"), NetIncome: d("10000"),
				EmployerPension: d("780"), EmployerSeverance: d("720"), TotalDeductions: d("2000")},
			{SourceID: "job_2", SourceName: "Job 2", GrossIncome: d("8000"), FinalTax: d("191.35"), NetIncome: d("7000")},
		},
		TotalGross:             d("20000"),
		TotalTax:               d("813.06332"),
		TotalNet:               d("17000"),
		TotalDeductions:        d("3000"),
		TotalCreditPoints:      d("2.25"),
		TotalCreditPointsValue: d("544.5"),
		CreditBreakdown:        []domain.CreditPointBreakdown{{Category: "Resident", Points: d("2.25")}},
	}}
}

func TestConsoleLiteFormatter(t *testing.T) {
	f := ConsoleFormatter{}
	out, err := f.Format(buildSingleOutcome())
	require.NoError(t, err)
	content := string(out)
	assert.Contains(t, content, "NET SALARY SUMMARY")
	assert.Contains(t, content, "Net:        ₪11,723.49")
	assert.Contains(t, content, "effective rate 7.63%")
	assert.Contains(t, content, "Warning: Locality atlantis")

	out, err = f.Format(buildMultiOutcome())
	require.NoError(t, err)
	assert.Contains(t, string(out), "Job 2: Gross=₪8,000.00 Tax=₪191.35 Net=₪7,000.00")
	assert.Contains(t, string(out), "Total net: ₪17,000.00")
}

func TestConsoleVerboseFormatter(t *testing.T) {
	f := ConsoleVerboseFormatter{}
	out, err := f.Format(buildSingleOutcome())
	require.NoError(t, err)
	content := string(out)
	assert.Contains(t, content, "NET SALARY REPORT 2025")
	assert.Contains(t, content, "evaluated as of 2025-06-15")
	assert.Contains(t, content, "₪11,723.49")
	assert.Contains(t, content, "ADJUSTMENTS")
	assert.Contains(t, content, "CREDIT POINTS (2.25 = ₪544.50)")
	assert.Contains(t, content, "Locality atlantis")
	assert.Contains(t, content, "Marginal tax rate")
	assert.Contains(t, content, "20.00%")

	out, err = f.Format(buildMultiOutcome())
	require.NoError(t, err)
	assert.Contains(t, string(out), "Multiple employers")
	assert.Contains(t, string(out), "Job 1")
	assert.Contains(t, string(out), "Employer deposits: pension ₪780.00, severance ₪720.00")
	assert.Contains(t, string(out), "₪3,000.00")
	assert.Contains(t, string(out), "TOTALS")
}

func TestCSVSummarizer(t *testing.T) {
	tests := []struct {
		name    string
		outcome *domain.Outcome
		rows    int
		first   string
	}{
		{"single", buildSingleOutcome(), 2, "Employee"},
		{"multi", buildMultiOutcome(), 3, "Job 1"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := CSVSummarizer{}.Format(tt.outcome)
			require.NoError(t, err)
			records, err := csv.NewReader(strings.NewReader(string(out))).ReadAll()
			require.NoError(t, err)
			require.Len(t, records, tt.rows)
			assert.Equal(t, "Source", records[0][0])
			assert.Equal(t, tt.first, records[1][0])
		})
	}

	out, err := CSVSummarizer{}.Format(buildSingleOutcome())
	require.NoError(t, err)
	records, err := csv.NewReader(strings.NewReader(string(out))).ReadAll()
	require.NoError(t, err)
	assert.Equal(t, "544.50", records[1][6], "credit used is tax before minus tax after credits")
	assert.Equal(t, "11723.49", records[1][9])
}

func TestCSVDetailedExporter(t *testing.T) {
	out, err := CSVDetailedExporter{}.Format(buildSingleOutcome())
	require.NoError(t, err)
	records, err := csv.NewReader(strings.NewReader(string(out))).ReadAll()
	require.NoError(t, err)
	// header + 4 ledger lines + 1 credit item
	require.Len(t, records, 6)
	assert.Equal(t, []string{"deduction", domain.CategoryDonationCredit, "-70.00", "false", "true", "35% of 200"}, records[4])
	assert.Equal(t, "credit_points", records[5][0])

	out, err = CSVDetailedExporter{}.Format(buildMultiOutcome())
	require.NoError(t, err)
	records, err = csv.NewReader(strings.NewReader(string(out))).ReadAll()
	require.NoError(t, err)
	assert.Len(t, records, 4)
	assert.Equal(t, "source", records[1][0])
}

func TestJSONFormatter(t *testing.T) {
	out, err := JSONFormatter{}.Format(buildSingleOutcome())
	require.NoError(t, err)
	var decoded domain.CalculationResult
	require.NoError(t, json.Unmarshal(out, &decoded))
	assert.True(t, decoded.NetSalary.Equal(d("11723.4904")))
	assert.Equal(t, "2025-06-15", decoded.AsOf.String())
	assert.Contains(t, string(out), "\n  \"tax_year\": 2025")
}

func TestYAMLFormatter(t *testing.T) {
	out, err := YAMLFormatter{}.Format(buildMultiOutcome())
	require.NoError(t, err)
	var decoded domain.MultiSourceCalculationResult
	require.NoError(t, yaml.Unmarshal(out, &decoded))
	require.Len(t, decoded.Sources, 2)
	assert.Equal(t, "job_2", decoded.Sources[1].SourceID)
	assert.True(t, decoded.TotalTax.Equal(d("813.06332")))
}

func TestHTMLFormatter(t *testing.T) {
	out, err := HTMLFormatter{}.Format(buildSingleOutcome())
	require.NoError(t, err)
	content := string(out)
	assert.Contains(t, content, "<h1>Net Salary Report 2025</h1>")
	assert.Contains(t, content, "₪11,723.49")
	assert.Contains(t, content, "<h2>Adjustments</h2>")

	out, err = HTMLFormatter{}.Format(buildMultiOutcome())
	require.NoError(t, err)
	assert.Contains(t, string(out), "<td>Job 2</td>")
	assert.NotContains(t, string(out), "<h2>Deductions</h2>")
}

func TestFormattersRejectEmptyOutcome(t *testing.T) {
	for _, f := range builtInFormatters {
		t.Run(f.Name(), func(t *testing.T) {
			_, err := f.Format(&domain.Outcome{})
			assert.ErrorIs(t, err, ErrEmptyOutcome)
			_, err = f.Format(nil)
			assert.ErrorIs(t, err, ErrEmptyOutcome)
		})
	}
}

func TestFormatterRegistry(t *testing.T) {
	assert.Equal(t, []string{"console", "console-lite", "csv", "detailed-csv", "html", "json", "yaml"}, AvailableFormatterNames())
	tests := []struct {
		name string
		want string
	}{
		{"console", "console"},
		{" JSON ", "json"},
		{"pretty", "console"},
		{"plain", "console-lite"},
		{"yml", "yaml"},
		{"csv-detailed", "detailed-csv"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := GetFormatterByName(tt.name)
			require.NotNil(t, f)
			assert.Equal(t, tt.want, f.Name())
		})
	}
	assert.Nil(t, GetFormatterByName("pdf"))
	assert.Contains(t, AvailableFormatAliases(), "yml")
}

func TestFormatterFunc(t *testing.T) {
	ff := FormatterFunc{ID: "net", F: func(o *domain.Outcome) ([]byte, error) {
		return []byte(o.NetSalary().StringFixed(2)), nil
	}}
	out, err := ff.Format(buildMultiOutcome())
	require.NoError(t, err)
	assert.Equal(t, "17000.00", string(out))
	assert.Equal(t, "net", ff.Name())
}

func TestFileExtension(t *testing.T) {
	assert.Equal(t, "txt", FileExtension("console"))
	assert.Equal(t, "txt", FileExtension("lite"))
	assert.Equal(t, "csv", FileExtension("detailed-csv"))
	assert.Equal(t, "yaml", FileExtension("yml"))
	assert.Equal(t, "html", FileExtension("html"))
}

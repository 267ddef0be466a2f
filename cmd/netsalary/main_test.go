package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	json "github.com/goccy/go-json"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ilsalary/net-salary-calculator/internal/domain"
	"github.com/ilsalary/net-salary-calculator/internal/output"
	"github.com/ilsalary/net-salary-calculator/internal/ruletable"
)

const scenarioOne = `employment_type: employee
gross_salary: 15000
is_resident: true
gender: male
birth_date: "1990-03-01"
marital_status: single
education_level: none
as_of: "2025-06-15"
`

// isolate runs the test in an empty directory with no settings file or NETSALARY_ variables.
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Chdir(dir)
	t.Setenv("HOME", dir)
	for _, key := range []string{"NETSALARY_RULES_DIR", "NETSALARY_TAX_YEAR", "NETSALARY_DEBUG", "NETSALARY_LOG_LEVEL", "PORT"} {
		t.Setenv(key, "")
		require.NoError(t, os.Unsetenv(key))
	}
	return dir
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var buf bytes.Buffer
	cmd.SetOut(&buf)
	cmd.SetErr(&buf)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return buf.String(), err
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestRootCommand(t *testing.T) {
	cmd := newRootCmd()
	assert.Equal(t, "netsalary", cmd.Use)
	assert.NotEmpty(t, cmd.Short)
	assert.NotEmpty(t, cmd.Long)

	names := map[string]bool{}
	for _, c := range cmd.Commands() {
		names[c.Name()] = true
	}
	for _, want := range []string{"calculate", "validate", "rules", "serve", "example", "version"} {
		assert.True(t, names[want], "missing command %s", want)
	}

	out, err := run(t)
	require.NoError(t, err)
	assert.Contains(t, out, "Usage:")
}

func TestVersionCommand(t *testing.T) {
	out, err := run(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "netsalary dev (commit none, built unknown)")
}

func TestCalculateCommand(t *testing.T) {
	dir := isolate(t)
	input := writeFile(t, dir, "input.yaml", scenarioOne)

	out, err := run(t, "calculate", input, "--format", "json")
	require.NoError(t, err)
	var result domain.CalculationResult
	require.NoError(t, json.Unmarshal([]byte(out), &result))
	assert.Equal(t, 2025, result.TaxYear)
	assert.True(t, result.NetSalary.Equal(decimal.RequireFromString("11723.4904")), result.NetSalary.String())

	out, err = run(t, "calculate", input, "-f", "plain")
	require.NoError(t, err)
	assert.Contains(t, out, "Net:        ₪11,723.49")

	out, err = run(t, "calculate", input, "--tax-year", "2024", "--format", "json")
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal([]byte(out), &result))
	assert.Equal(t, 2024, result.TaxYear)
}

func TestCalculateCommandAsOf(t *testing.T) {
	dir := isolate(t)
	input := writeFile(t, dir, "input.yaml", scenarioOne)

	out, err := run(t, "calculate", input, "--as-of", "2025-01-31", "--format", "json")
	require.NoError(t, err)
	var result domain.CalculationResult
	require.NoError(t, json.Unmarshal([]byte(out), &result))
	assert.Equal(t, "2025-01-31", result.AsOf.String())

	_, err = run(t, "calculate", input, "--as-of", "yesterday")
	assert.ErrorContains(t, err, "invalid --as-of date")
}

func TestCalculateCommandRulesFile(t *testing.T) {
	dir := isolate(t)
	input := writeFile(t, dir, "input.yaml", scenarioOne)

	reg, err := ruletable.Default()
	require.NoError(t, err)
	table, err := reg.Get(2025)
	require.NoError(t, err)
	data, err := json.Marshal(table)
	require.NoError(t, err)
	rules := writeFile(t, dir, "2025.json", string(data))

	out, err := run(t, "calculate", input, "--rules", rules, "--format", "json")
	require.NoError(t, err)
	assert.Contains(t, out, `"tax_year": 2025`)

	_, err = run(t, "calculate", input, "--rules", rules, "--tax-year", "2024")
	assert.ErrorIs(t, err, ruletable.ErrUnknownTaxYear)
}

func TestCalculateCommandOutputDir(t *testing.T) {
	dir := isolate(t)
	input := writeFile(t, dir, "input.yaml", scenarioOne)
	reports := filepath.Join(dir, "reports")
	require.NoError(t, os.Mkdir(reports, 0o755))

	out, err := run(t, "calculate", input, "--format", "html", "--output-dir", reports)
	require.NoError(t, err)
	assert.Contains(t, out, "Report written to")
	matches, err := filepath.Glob(filepath.Join(reports, "net_salary_report_*.html"))
	require.NoError(t, err)
	assert.Len(t, matches, 1)
}

func TestCalculateCommandErrors(t *testing.T) {
	dir := isolate(t)
	input := writeFile(t, dir, "input.yaml", scenarioOne)

	tests := []struct {
		name string
		args []string
		want string
	}{
		{"missing file", []string{"calculate", filepath.Join(dir, "nope.yaml")}, "failed to read file"},
		{"unknown format", []string{"calculate", input, "--format", "pdf"}, output.ErrUnsupportedFormat.Error()},
		{"unknown year", []string{"calculate", input, "--tax-year", "1999"}, "unknown tax year"},
		{"missing rules", []string{"calculate", input, "--rules", filepath.Join(dir, "missing")}, "failed to read rules"},
		{"no args", []string{"calculate"}, "accepts 1 arg"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := run(t, tt.args...)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestExampleAndValidateCommands(t *testing.T) {
	dir := isolate(t)
	file := filepath.Join(dir, "sample.yaml")

	out, err := run(t, "example", file)
	require.NoError(t, err)
	assert.Contains(t, out, "Example input written to")

	out, err = run(t, "validate", file)
	require.NoError(t, err)
	assert.Contains(t, out, "is valid")

	bad := writeFile(t, dir, "bad.yaml", "gross_salary: -10\n")
	_, err = run(t, "validate", bad)
	assert.ErrorContains(t, err, "input validation failed")

	out, err = run(t, "calculate", file, "--format", "csv")
	require.NoError(t, err)
	assert.Contains(t, out, "Source,GrossIncome")
}

func TestValidateRuleTable(t *testing.T) {
	dir := isolate(t)
	reg, err := ruletable.Default()
	require.NoError(t, err)
	table, err := reg.Get(2024)
	require.NoError(t, err)
	data, err := json.Marshal(table)
	require.NoError(t, err)
	file := writeFile(t, dir, "2024.json", string(data))

	out, err := run(t, "validate", "--rule-table", file)
	require.NoError(t, err)
	assert.Contains(t, out, "tax year 2024 is valid")

	broken := writeFile(t, dir, "broken.yaml", "tax_year: 2026\nincome_tax_brackets: []\n")
	_, err = run(t, "validate", "--rule-table", broken)
	assert.ErrorContains(t, err, "income_tax_brackets cannot be empty")
}

func TestRulesCommand(t *testing.T) {
	isolate(t)

	out, err := run(t, "rules")
	require.NoError(t, err)
	assert.Contains(t, out, "Available tax years: [2024 2025]")
	assert.Contains(t, out, "TAX YEAR 2025")
	assert.Contains(t, out, "₪7,010.00")
	assert.Contains(t, out, "Credit point value: ₪242.00 per month")

	out, err = run(t, "rules", "--tax-year", "2024")
	require.NoError(t, err)
	assert.Contains(t, out, "TAX YEAR 2024")
	assert.Contains(t, out, "₪6,790.00")

	out, err = run(t, "rules", "--json")
	require.NoError(t, err)
	var table domain.RuleTable
	require.NoError(t, json.Unmarshal([]byte(out), &table))
	assert.Equal(t, 2025, table.TaxYear)
}

func TestResolveRules(t *testing.T) {
	isolate(t)
	table, err := resolveRules("", 0)
	require.NoError(t, err)
	assert.Equal(t, 2025, table.TaxYear)

	table, err = resolveRules("", 2024)
	require.NoError(t, err)
	assert.Equal(t, 2024, table.TaxYear)
}

package output

import (
	"bytes"
	"encoding/csv"

	"github.com/ilsalary/net-salary-calculator/internal/domain"
)

// CSVSummarizer writes one row per income source. A single-source result produces one row.
type CSVSummarizer struct{}

func (c CSVSummarizer) Name() string { return "csv" }

func (c CSVSummarizer) Format(outcome *domain.Outcome) ([]byte, error) {
	if err := checkOutcome(outcome); err != nil {
		return nil, err
	}
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	header := []string{"Source", "GrossIncome", "BituachLeumi", "Pension", "TaxableBase", "TaxBeforeCredits", "CreditUsed", "LocalityDiscount", "FinalTax", "NetIncome"}
	if err := w.Write(header); err != nil {
		return nil, err
	}
	for _, s := range summaryRows(outcome) {
		row := []string{
			s.SourceName,
			s.GrossIncome.StringFixed(2),
			s.BituachLeumi.StringFixed(2),
			s.Pension.StringFixed(2),
			s.TaxableBase.StringFixed(2),
			s.TaxBeforeCredits.StringFixed(2),
			s.CreditPointsUsed.StringFixed(2),
			s.LocalityDiscount.StringFixed(2),
			s.FinalTax.StringFixed(2),
			s.NetIncome.StringFixed(2),
		}
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}

// summaryRows projects either result shape onto per-source rows.
func summaryRows(outcome *domain.Outcome) []domain.IncomeSourceResult {
	if outcome.Multi != nil {
		return outcome.Multi.Sources
	}
	r := outcome.Single
	used := r.TaxBeforeCredits.Sub(r.TaxAfterCredits)
	return []domain.IncomeSourceResult{{
		SourceID:              string(r.EmploymentType),
		SourceName:            employmentLabel(r.EmploymentType),
		GrossIncome:           r.GrossSalary,
		BituachLeumi:          r.BituachLeumiEmployee,
		Pension:               r.Pension.Employee,
		EmployerPension:       r.Pension.EmployerPension,
		EmployerSeverance:     r.Pension.EmployerSeverance,
		StudyFund:             r.StudyFundEmployee,
		TaxableBase:           r.TaxableBase,
		TaxBeforeCredits:      r.TaxBeforeCredits,
		CreditPointsAllocated: r.CreditPointsValue,
		CreditPointsUsed:      used,
		LocalityDiscount:      r.LocalityDiscount,
		FinalTax:              r.FinalTax,
		TotalDeductions:       r.TotalDeductions,
		NetIncome:             r.NetSalary,
	}}
}

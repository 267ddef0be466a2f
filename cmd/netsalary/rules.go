package main

import (
	"fmt"
	"io"
	"os"

	json "github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"github.com/ilsalary/net-salary-calculator/internal/domain"
	"github.com/ilsalary/net-salary-calculator/internal/output"
	"github.com/ilsalary/net-salary-calculator/internal/ruletable"
	money "github.com/ilsalary/net-salary-calculator/pkg/decimal"
)

func rulesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rules",
		Short: "Print the tax brackets and main constants of a tax year",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			settings, err := loadSettings(cmd)
			if err != nil {
				return err
			}
			rulesPath, _ := cmd.Flags().GetString("rules")
			if rulesPath == "" {
				rulesPath = settings.RulesDir
			}
			year, _ := cmd.Flags().GetInt("tax-year")
			if year == 0 {
				year = settings.TaxYear
			}
			table, err := resolveRules(rulesPath, year)
			if err != nil {
				return err
			}
			if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
				data, err := json.MarshalIndent(table, "", "  ")
				if err != nil {
					return err
				}
				_, err = fmt.Fprintln(cmd.OutOrStdout(), string(data))
				return err
			}
			if reg, err := ruletable.LoadDir(dirOnly(rulesPath)); err == nil {
				fmt.Fprintf(cmd.OutOrStdout(), "Available tax years: %v\n", reg.Years())
			}
			printRules(cmd.OutOrStdout(), table)
			return nil
		},
	}
	cmd.Flags().String("rules", "", "rule table file or directory of rule tables (default: built-in tables)")
	cmd.Flags().Int("tax-year", 0, "tax year to print (default: latest available)")
	cmd.Flags().Bool("json", false, "print the full rule table as JSON")
	return cmd
}

func dirOnly(path string) string {
	if path == "" || isDir(path) {
		return path
	}
	return ""
}

func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

func printRules(w io.Writer, t *domain.RuleTable) {
	fmt.Fprintf(w, "TAX YEAR %d\n", t.TaxYear)
	if t.Description != "" {
		fmt.Fprintln(w, t.Description)
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Monthly income tax brackets:")
	for _, b := range t.IncomeTaxBrackets {
		upper := "and above"
		if !b.IsUnbounded() {
			upper = "to " + output.FormatCurrency(*b.Max)
		}
		fmt.Fprintf(w, "  %-14s %-18s %s\n", output.FormatCurrency(b.Min), upper, output.FormatPercentage(money.ToPercent(b.Rate)))
	}
	fmt.Fprintln(w)
	ss := t.SocialSecurity
	fmt.Fprintln(w, "Bituach Leumi & health:")
	fmt.Fprintf(w, "  Reduced rate up to %s, full rate up to %s\n", output.FormatCurrency(ss.Threshold1), output.FormatCurrency(ss.Threshold2))
	fmt.Fprintf(w, "  Employee %s / %s, employer %s / %s\n",
		output.FormatPercentage(money.ToPercent(ss.EmployeeRate1)), output.FormatPercentage(money.ToPercent(ss.EmployeeRate2)),
		output.FormatPercentage(money.ToPercent(ss.EmployerRate1)), output.FormatPercentage(money.ToPercent(ss.EmployerRate2)))
	fmt.Fprintf(w, "  Self-employed %s / %s\n",
		output.FormatPercentage(money.ToPercent(ss.SelfEmployedRate1)), output.FormatPercentage(money.ToPercent(ss.SelfEmployedRate2)))
	fmt.Fprintln(w)
	fmt.Fprintf(w, "Credit point value: %s per month\n", output.FormatCurrency(t.CreditPoints.ValuePerPointMonthly))
	fmt.Fprintf(w, "Pension: employee %s, employer %s + severance %s\n",
		output.FormatPercentage(money.ToPercent(t.Pension.EmployeeRate)),
		output.FormatPercentage(money.ToPercent(t.Pension.EmployerPensionRate)),
		output.FormatPercentage(money.ToPercent(t.Pension.EmployerSeveranceRate)))
	fmt.Fprintf(w, "Locality discounts: %d settlements\n", len(t.LocalityDiscounts))
}

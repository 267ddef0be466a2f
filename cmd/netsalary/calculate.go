package main

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/ilsalary/net-salary-calculator/internal/calculation"
	"github.com/ilsalary/net-salary-calculator/internal/config"
	"github.com/ilsalary/net-salary-calculator/internal/domain"
	"github.com/ilsalary/net-salary-calculator/internal/logging"
	"github.com/ilsalary/net-salary-calculator/internal/output"
	"github.com/ilsalary/net-salary-calculator/internal/remote"
	"github.com/ilsalary/net-salary-calculator/internal/ruletable"
	"github.com/ilsalary/net-salary-calculator/pkg/dateutil"
)

func calculateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "calculate [input-file]",
		Short: "Calculate the monthly net salary for an input file",
		Args:  cobra.ExactArgs(1),
		RunE:  runCalculate,
	}
	cmd.Flags().String("rules", "", "rule table file or directory of rule tables (default: built-in tables)")
	cmd.Flags().Int("tax-year", 0, "tax year to apply (default: latest available)")
	cmd.Flags().StringP("format", "f", "console", "output format: "+strings.Join(output.AvailableFormatterNames(), ", "))
	cmd.Flags().String("as-of", "", "evaluation date YYYY-MM-DD (default: input as_of, then today)")
	cmd.Flags().String("output-dir", "", "write a timestamped report file to this directory instead of stdout")
	cmd.Flags().Bool("remote", false, "send the calculation to the remote calculator API")
	cmd.Flags().Bool("debug", false, "log calculation steps to stderr")
	return cmd
}

func runCalculate(cmd *cobra.Command, args []string) error {
	settings, err := loadSettings(cmd)
	if err != nil {
		return err
	}
	in, err := config.NewInputParser().LoadFromFile(args[0])
	if err != nil {
		return err
	}
	if asOf, _ := cmd.Flags().GetString("as-of"); asOf != "" {
		t, ok := dateutil.ParseDate(asOf)
		if !ok {
			return fmt.Errorf("invalid --as-of date %q", asOf)
		}
		in.AsOf = domain.DateOf(t)
	}

	format, _ := cmd.Flags().GetString("format")
	if output.GetFormatterByName(format) == nil {
		return fmt.Errorf("%w: %q", output.ErrUnsupportedFormat, format)
	}

	var outcome *domain.Outcome
	if useRemote, _ := cmd.Flags().GetBool("remote"); useRemote {
		asOf := time.Now()
		if in.AsOf.IsSet() {
			asOf = in.AsOf.Time
		}
		client := remote.NewClient(settings.Remote.BaseURL, settings.Remote.Timeout)
		outcome, err = client.Calculate(cmd.Context(), in, asOf)
		if err != nil {
			return err
		}
	} else {
		rulesPath, _ := cmd.Flags().GetString("rules")
		year, _ := cmd.Flags().GetInt("tax-year")
		if year == 0 {
			year = settings.TaxYear
		}
		if rulesPath == "" {
			rulesPath = settings.RulesDir
		}
		rules, err := resolveRules(rulesPath, year)
		if err != nil {
			return err
		}

		engine := calculation.NewEngine()
		if debugFlag, _ := cmd.Flags().GetBool("debug"); debugFlag || settings.Debug {
			logger, err := newLogger(settings, true)
			if err != nil {
				return err
			}
			defer func() { _ = logger.Sync() }()
			engine.SetLogger(logging.NewCalculationLogger(logger))
		}
		outcome, err = engine.Calculate(in, rules)
		if err != nil {
			return err
		}
	}

	if dir, _ := cmd.Flags().GetString("output-dir"); dir != "" {
		files, err := output.GenerateReport(outcome, format, dir)
		if err != nil {
			return err
		}
		for _, f := range files {
			fmt.Fprintf(cmd.OutOrStdout(), "Report written to %s\n", f)
		}
		return nil
	}
	return output.Render(cmd.OutOrStdout(), outcome, format)
}

// resolveRules loads a single rule table file, or a directory layered over the built-in tables.
func resolveRules(path string, year int) (*domain.RuleTable, error) {
	if path != "" {
		info, err := os.Stat(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read rules %s: %w", path, err)
		}
		if !info.IsDir() {
			table, err := config.LoadRuleTable(path)
			if err != nil {
				return nil, err
			}
			if year != 0 && table.TaxYear != year {
				return nil, fmt.Errorf("%w: %s holds tax year %d, not %d", ruletable.ErrUnknownTaxYear, path, table.TaxYear, year)
			}
			return table, nil
		}
	}
	reg, err := ruletable.LoadDir(path)
	if err != nil {
		return nil, err
	}
	return reg.Resolve(year)
}

package main

import (
	"fmt"
	"os"
	"runtime/debug"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ilsalary/net-salary-calculator/internal/config"
	"github.com/ilsalary/net-salary-calculator/internal/logging"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "netsalary",
		Short:         "Israeli net salary calculator CLI",
		Long:          "Computes monthly net income from gross salary or business revenue under Israeli income tax, Bituach Leumi and pension rules",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().String("config", "", "settings file (default ./netsalary.yaml or $HOME/.config/netsalary/netsalary.yaml)")

	root.AddCommand(
		calculateCmd(),
		validateCmd(),
		rulesCmd(),
		serveCmd(),
		exampleCmd(),
		versionCmd(),
	)
	return root
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "netsalary %s (commit %s, built %s)\n", version, commit, date)
			if info := buildInfo(); info != "" {
				fmt.Fprintln(cmd.OutOrStdout(), info)
			}
		},
	}
}

func buildInfo() string {
	if bi, ok := debug.ReadBuildInfo(); ok && bi != nil {
		return bi.Main.Path + " " + bi.GoVersion
	}
	return ""
}

func validateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate [input-file]",
		Short: "Validate a calculation input file, or a rule table with --rule-table",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			file := args[0]
			ruleTable, _ := cmd.Flags().GetBool("rule-table")
			if ruleTable {
				table, err := config.LoadRuleTable(file)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Rule table %s for tax year %d is valid\n", file, table.TaxYear)
				return nil
			}
			if _, err := config.NewInputParser().LoadFromFile(file); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Input file %s is valid\n", file)
			return nil
		},
	}
	cmd.Flags().Bool("rule-table", false, "validate the file as a rule table")
	return cmd
}

func exampleCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "example [output-file]",
		Short: "Write a sample calculation input",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			file := "example_input.yaml"
			if len(args) == 1 {
				file = args[0]
			}
			if err := config.NewInputParser().WriteExampleInput(file); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Example input written to %s\n", file)
			return nil
		},
	}
}

func loadSettings(cmd *cobra.Command) (*config.Settings, error) {
	file, _ := cmd.Flags().GetString("config")
	return config.LoadSettings(file)
}

// newLogger builds the process logger; debug forces development output at debug level.
func newLogger(settings *config.Settings, debugFlag bool) (*zap.Logger, error) {
	return logging.New(logging.Config{
		Level: settings.LogLevel,
		Debug: debugFlag || settings.Debug,
	})
}

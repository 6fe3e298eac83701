package cmd

import (
	"os"
	"time"

	"github.com/spf13/cobra"

	"household-budget-engine/cmd/budgetctl/config"
	"household-budget-engine/internal/budget"
	"household-budget-engine/internal/reporter"
	"household-budget-engine/pkg/errors"
)

// Flags for the report command
var (
	reportView   string
	reportMonth  string
	reportFormat string
)

// reportCmd represents the report command
var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Show planned-versus-actual budget performance",
	Long: `Report compares the budget plan against actual transactions.

Month view covers a single calendar month; period view covers everything
since the plan's period start, scaling planned amounts by the number of
elapsed months.

Examples:
  budgetctl report
  budgetctl report --view month --month 2025-3
  budgetctl report --view period --format json`,

	RunE: runReport,
}

func init() {
	rootCmd.AddCommand(reportCmd)

	reportCmd.Flags().StringVar(&reportView, "view", "month", "reporting window: month, period")
	reportCmd.Flags().StringVarP(&reportMonth, "month", "m", "", "calendar month (YYYY-MM, default: current)")
	reportCmd.Flags().StringVarP(&reportFormat, "format", "f", "console", "output format: console, json, csv")
}

func runReport(cmd *cobra.Command, args []string) error {
	mode := budget.ViewMode(reportView)
	if mode != budget.ViewMonth && mode != budget.ViewPeriod {
		return errors.ValidationError(errors.CodeInvalidData, "view", reportView)
	}

	now := time.Now()
	sel := budget.MonthOf(now)
	if reportMonth != "" {
		parsed, err := budget.ParseMonth(reportMonth)
		if err != nil {
			return errors.ValidationError(errors.CodeInvalidDate, "month", reportMonth)
		}
		sel = parsed
	}

	s, err := openStore()
	if err != nil {
		return err
	}

	plan, err := s.LoadPlan()
	if err != nil {
		return err
	}
	if plan.PeriodStart.IsZero() {
		plan.PeriodStart = now
	}

	txs, err := s.LoadTransactions()
	if err != nil {
		return err
	}

	perf := budget.CalculatePerformance(plan, txs, mode, sel, now)

	rep, err := reporter.NewReporter(config.CreateReportConfig(reportFormat))
	if err != nil {
		return err
	}
	return rep.WritePerformance(os.Stdout, perf)
}

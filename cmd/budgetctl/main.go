package main

import (
	"fmt"
	"os"

	"household-budget-engine/cmd/budgetctl/cmd"
	"household-budget-engine/pkg/errors"
)

var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

func main() {
	cmd.SetVersionInfo(version, commit, date)

	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		if budgetErr, ok := errors.AsBudgetError(err); ok {
			os.Exit(budgetErr.GetExitCode())
		}
		os.Exit(1)
	}
}

// Package config builds engine configurations from CLI inputs.
package config

import (
	"household-budget-engine/internal/ingest"
	"household-budget-engine/internal/reporter"
)

// CreateIngestConfig creates the ingestion configuration used by imports.
func CreateIngestConfig() *ingest.Config {
	config := ingest.DefaultConfig()

	// Bank exports routinely pad cells and append blank trailing rows.
	config.TrimCells = true
	config.SkipEmptyRows = true

	return config
}

// CreateReportConfig creates a report configuration for the given output
// format flag.
func CreateReportConfig(format string) *reporter.ReportConfig {
	config := reporter.DefaultReportConfig()
	config.Format = reporter.OutputFormat(format)
	return config
}

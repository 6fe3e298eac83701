// Package reporter renders import summaries and budget performance
// reports in console, JSON, and CSV formats.
package reporter

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"household-budget-engine/internal/budget"
	"household-budget-engine/internal/classify"
	"household-budget-engine/internal/models"
	"household-budget-engine/internal/money"
	"household-budget-engine/pkg/logger"
)

// OutputFormat represents the supported output formats
type OutputFormat string

const (
	FormatConsole OutputFormat = "console"
	FormatJSON    OutputFormat = "json"
	FormatCSV     OutputFormat = "csv"
)

// ReportConfig holds configuration for report generation
type ReportConfig struct {
	Format    OutputFormat
	ShowCents bool
	Symbol    string
}

// DefaultReportConfig returns the standard report configuration
func DefaultReportConfig() *ReportConfig {
	return &ReportConfig{
		Format:    FormatConsole,
		ShowCents: true,
		Symbol:    "$",
	}
}

// Validate checks the report configuration
func (c *ReportConfig) Validate() error {
	switch c.Format {
	case FormatConsole, FormatJSON, FormatCSV:
		return nil
	default:
		return fmt.Errorf("invalid output format: %s", c.Format)
	}
}

// ImportSummary aggregates the outcome of one CSV import.
type ImportSummary struct {
	File            string      `json:"file"`
	Imported        int         `json:"imported"`
	AutoCategorized int         `json:"auto_categorized"`
	NeedsReview     int         `json:"needs_review"`
	Ignored         int         `json:"ignored"`
	TotalAbs        money.Money `json:"total_abs"`
}

// SummarizeImport builds an ImportSummary from freshly classified
// transactions. Ignored entries count separately and are excluded from
// the imported figure.
func SummarizeImport(file string, txs []*models.Transaction) *ImportSummary {
	summary := &ImportSummary{File: file, TotalAbs: money.Zero()}

	for _, tx := range txs {
		if tx.IsIgnored() {
			summary.Ignored++
			continue
		}
		summary.Imported++
		summary.TotalAbs = summary.TotalAbs.Add(tx.Amount.Abs())
		if tx.NeedsReview {
			summary.NeedsReview++
		} else if tx.Category != nil {
			summary.AutoCategorized++
		}
	}

	return summary
}

// Reporter renders reports to a writer.
type Reporter struct {
	config *ReportConfig
	logger logger.Logger
}

// NewReporter creates a reporter with the given configuration.
func NewReporter(config *ReportConfig) (*Reporter, error) {
	if config == nil {
		config = DefaultReportConfig()
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &Reporter{
		config: config,
		logger: logger.WithComponent("reporter"),
	}, nil
}

func (r *Reporter) format(m money.Money) string {
	return m.Format(money.FormatOptions{
		ShowCents: r.config.ShowCents,
		Symbol:    r.config.Symbol,
	})
}

// WriteImportSummary renders an import summary in the configured format.
func (r *Reporter) WriteImportSummary(w io.Writer, summary *ImportSummary) error {
	switch r.config.Format {
	case FormatJSON:
		return writeJSON(w, summary)
	case FormatCSV:
		return writeCSVRows(w,
			[]string{"file", "imported", "auto_categorized", "needs_review", "ignored", "total_abs"},
			[][]string{{
				summary.File,
				strconv.Itoa(summary.Imported),
				strconv.Itoa(summary.AutoCategorized),
				strconv.Itoa(summary.NeedsReview),
				strconv.Itoa(summary.Ignored),
				summary.TotalAbs.String(),
			}})
	default:
		return r.writeImportConsole(w, summary)
	}
}

func (r *Reporter) writeImportConsole(w io.Writer, summary *ImportSummary) error {
	var b strings.Builder
	b.WriteString("Import Summary\n")
	b.WriteString("==============\n")
	fmt.Fprintf(&b, "File:             %s\n", summary.File)
	fmt.Fprintf(&b, "Imported:         %d\n", summary.Imported)
	fmt.Fprintf(&b, "Auto-categorized: %d\n", summary.AutoCategorized)
	fmt.Fprintf(&b, "Needs review:     %d\n", summary.NeedsReview)
	fmt.Fprintf(&b, "Ignored:          %d\n", summary.Ignored)
	fmt.Fprintf(&b, "Total (abs):      %s\n", r.format(summary.TotalAbs))

	_, err := io.WriteString(w, b.String())
	return err
}

// WritePerformance renders a planned-versus-actual report in the
// configured format.
func (r *Reporter) WritePerformance(w io.Writer, perf *budget.Performance) error {
	switch r.config.Format {
	case FormatJSON:
		return writeJSON(w, perf)
	case FormatCSV:
		return writeCSVRows(w,
			[]string{"line", "planned", "actual", "variance"},
			[][]string{
				performanceCSVRow("income", perf.Income),
				performanceCSVRow("expenses", perf.Expenses),
				performanceCSVRow("savings", perf.Savings),
			})
	default:
		return r.writePerformanceConsole(w, perf)
	}
}

func performanceCSVRow(name string, line budget.Line) []string {
	return []string{
		name,
		line.Planned.String(),
		line.Actual.String(),
		line.Variance().String(),
	}
}

func (r *Reporter) writePerformanceConsole(w io.Writer, perf *budget.Performance) error {
	var b strings.Builder
	b.WriteString("Budget Performance\n")
	b.WriteString("==================\n")
	fmt.Fprintf(&b, "Window: %s", perf.Window)
	if perf.Mode == budget.ViewPeriod {
		fmt.Fprintf(&b, " (%d months)", perf.Months)
	}
	b.WriteString("\n\n")

	fmt.Fprintf(&b, "%-10s %14s %14s %14s\n", "", "Planned", "Actual", "Variance")
	r.performanceLine(&b, "Income", perf.Income)
	r.performanceLine(&b, "Expenses", perf.Expenses)
	r.performanceLine(&b, "Savings", perf.Savings)
	fmt.Fprintf(&b, "\nNet: %s\n", r.format(perf.Net()))

	_, err := io.WriteString(w, b.String())
	return err
}

func (r *Reporter) performanceLine(b *strings.Builder, name string, line budget.Line) {
	fmt.Fprintf(b, "%-10s %14s %14s %14s\n",
		name, r.format(line.Planned), r.format(line.Actual), r.format(line.Variance()))
}

// WriteReviewQueue lists the transactions flagged for review with their
// confidence labels.
func (r *Reporter) WriteReviewQueue(w io.Writer, txs []*models.Transaction) error {
	var flagged []*models.Transaction
	for _, tx := range txs {
		if tx.NeedsReview {
			flagged = append(flagged, tx)
		}
	}

	switch r.config.Format {
	case FormatJSON:
		return writeJSON(w, flagged)
	case FormatCSV:
		rows := make([][]string, 0, len(flagged))
		for _, tx := range flagged {
			rows = append(rows, []string{
				tx.ID,
				tx.Date.Format("2006-01-02"),
				tx.Description,
				tx.Amount.String(),
				categoryName(tx.Category),
				classify.ConfidenceLabel(tx.Confidence),
			})
		}
		return writeCSVRows(w,
			[]string{"id", "date", "description", "amount", "category", "confidence"}, rows)
	default:
		return r.writeReviewConsole(w, flagged)
	}
}

func (r *Reporter) writeReviewConsole(w io.Writer, flagged []*models.Transaction) error {
	var b strings.Builder
	fmt.Fprintf(&b, "Needs Review (%d)\n", len(flagged))
	b.WriteString("================\n")

	for _, tx := range flagged {
		fmt.Fprintf(&b, "%s  %-30s %12s  %s (%s)\n",
			tx.Date.Format("2006-01-02"),
			truncate(tx.Description, 30),
			r.format(tx.Amount),
			categoryName(tx.Category),
			classify.ConfidenceLabel(tx.Confidence))
	}

	_, err := io.WriteString(w, b.String())
	return err
}

func categoryName(cat *models.Category) string {
	if cat == nil {
		return "Uncategorized"
	}
	return cat.Name
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-3] + "..."
}

func writeJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func writeCSVRows(w io.Writer, header []string, rows [][]string) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(header); err != nil {
		return err
	}
	for _, row := range rows {
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

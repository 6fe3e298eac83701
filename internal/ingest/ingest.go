// Package ingest turns raw CSV statement exports into typed rows.
//
// Ingestion is a two-phase pipeline: Parse reads the raw text into a header
// row plus data rows without interpreting anything, then Apply uses a
// resolved ColumnMapping to pull the date, description, and amount out of
// each row. Import is all-or-nothing at the parse level: a structurally
// broken file produces an error and no rows, while per-cell problems
// (unparseable amounts or dates) are preserved on the row for review
// rather than aborting the import.
package ingest

import (
	"encoding/csv"
	"io"
	"strings"
	"time"

	"household-budget-engine/internal/models"
	"household-budget-engine/internal/money"
	"household-budget-engine/pkg/errors"
	"household-budget-engine/pkg/logger"
)

// Config holds ingestion options.
type Config struct {
	// TrimCells strips surrounding whitespace from every parsed cell.
	TrimCells bool
	// SkipEmptyRows drops rows whose cells are all empty.
	SkipEmptyRows bool
}

// DefaultConfig returns the standard ingestion configuration.
func DefaultConfig() *Config {
	return &Config{
		TrimCells:     true,
		SkipEmptyRows: true,
	}
}

// RawRow is one data row of the CSV file with its original line number
// for error reporting.
type RawRow struct {
	Line  int
	Cells []string
}

// ParseResult is the outcome of the structural parse phase.
type ParseResult struct {
	Headers []string
	Rows    []RawRow
}

// Ingestor parses CSV statement exports.
type Ingestor struct {
	config *Config
	logger logger.Logger
}

// NewIngestor creates an ingestor with the given configuration.
func NewIngestor(config *Config) *Ingestor {
	if config == nil {
		config = DefaultConfig()
	}
	return &Ingestor{
		config: config,
		logger: logger.WithComponent("ingest"),
	}
}

// Parse reads CSV text into headers and data rows. Quoted fields may
// contain commas and newlines; rows are not required to have equal field
// counts. An empty file or a file with only a header is an error.
func (i *Ingestor) Parse(text string) (*ParseResult, error) {
	reader := csv.NewReader(strings.NewReader(text))
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	var headers []string
	var rows []RawRow
	line := 0

	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			return nil, errors.ParseError(errors.CodeInvalidFormat, line, err.Error(), err)
		}

		if i.config.TrimCells {
			for j := range record {
				record[j] = strings.TrimSpace(record[j])
			}
		}

		if headers == nil {
			if i.config.SkipEmptyRows && isEmptyRow(record) {
				continue
			}
			headers = record
			continue
		}

		if i.config.SkipEmptyRows && isEmptyRow(record) {
			continue
		}
		rows = append(rows, RawRow{Line: line, Cells: record})
	}

	if headers == nil || len(rows) == 0 {
		return nil, errors.ParseError(errors.CodeEmptyFile, 0, "", nil)
	}

	i.logger.WithFields(logger.Fields{
		"columns": len(headers),
		"rows":    len(rows),
	}).Debug("Parsed CSV input")

	return &ParseResult{Headers: headers, Rows: rows}, nil
}

func isEmptyRow(cells []string) bool {
	for _, c := range cells {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

// ImportedRow is one transaction-shaped row produced by Apply. The raw
// cell values are preserved so a failed parse can be shown to the user
// exactly as it appeared in the file.
type ImportedRow struct {
	Date         time.Time
	RawDate      string
	DateParsed   bool
	Description  string
	Amount       money.Money
	RawAmount    string
	AmountParsed bool
	Line         int
}

// Apply extracts typed rows from parsed data using a complete mapping.
// Cells that fail to parse are kept as raw text with the parsed flag
// cleared; the caller decides whether to flag the row for review.
func (i *Ingestor) Apply(result *ParseResult, mapping *ColumnMapping) ([]ImportedRow, error) {
	if err := mapping.Complete(); err != nil {
		return nil, err
	}

	idx, err := mapping.indices(result.Headers)
	if err != nil {
		return nil, err
	}
	flipSign := AmountIsOutflow(mapping.Amount)

	imported := make([]ImportedRow, 0, len(result.Rows))
	for _, row := range result.Rows {
		ir := ImportedRow{Line: row.Line}

		ir.RawDate = cellAt(row.Cells, idx.date)
		if date, err := models.ParseDate(ir.RawDate); err == nil {
			ir.Date = date
			ir.DateParsed = true
		}

		ir.Description = cellAt(row.Cells, idx.description)

		ir.RawAmount = cellAt(row.Cells, idx.amount)
		if amount, err := money.ParseInput(ir.RawAmount); err == nil {
			if flipSign {
				amount = amount.Neg()
			}
			ir.Amount = amount
			ir.AmountParsed = true
		}

		imported = append(imported, ir)
	}

	return imported, nil
}

func cellAt(cells []string, idx int) string {
	if idx < 0 || idx >= len(cells) {
		return ""
	}
	return cells[idx]
}

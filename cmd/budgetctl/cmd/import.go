package cmd

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"household-budget-engine/cmd/budgetctl/config"
	"household-budget-engine/internal/classify"
	"household-budget-engine/internal/ingest"
	"household-budget-engine/internal/models"
	"household-budget-engine/internal/reporter"
	"household-budget-engine/internal/store"
	"household-budget-engine/pkg/errors"
)

// Flags for the import command
var (
	importProfile string
	saveProfile   string
	importFormat  string
)

// importCmd represents the import command
var importCmd = &cobra.Command{
	Use:   "import <file.csv>",
	Short: "Import a bank statement CSV",
	Long: `Import parses a CSV statement export, resolves its column mapping,
classifies each transaction, and appends the results to the ledger.

Column mapping is auto-detected from the header row. A saved profile is
used instead when its headers match the file exactly.

Examples:
  budgetctl import statement.csv
  budgetctl import statement.csv --profile chase
  budgetctl import statement.csv --save-profile chase --format json`,

	Args: cobra.ExactArgs(1),
	RunE: runImport,
}

func init() {
	rootCmd.AddCommand(importCmd)

	importCmd.Flags().StringVarP(&importProfile, "profile", "p", "", "mapping profile to use")
	importCmd.Flags().StringVar(&saveProfile, "save-profile", "", "save the resolved mapping under this name")
	importCmd.Flags().StringVarP(&importFormat, "format", "f", "console", "output format: console, json, csv")
}

func runImport(cmd *cobra.Command, args []string) error {
	path := args[0]

	if !strings.EqualFold(filepath.Ext(path), ".csv") {
		return errors.FileError(errors.CodeNotCSV, path, nil)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return errors.FileError(errors.CodeFileNotFound, path, err)
		}
		return errors.FileError(errors.CodeFileUnreadable, path, err)
	}

	s, err := openStore()
	if err != nil {
		return err
	}

	ingestor := ingest.NewIngestor(config.CreateIngestConfig())
	parsed, err := ingestor.Parse(string(data))
	if err != nil {
		return err
	}

	mapping, err := resolveImportMapping(s, parsed.Headers)
	if err != nil {
		return err
	}

	rows, err := ingestor.Apply(parsed, mapping)
	if err != nil {
		return err
	}

	categories, err := s.LoadCategories()
	if err != nil {
		return err
	}
	mappings, err := s.LoadMerchantMappings()
	if err != nil {
		return err
	}
	classifier := classify.NewClassifier(nil, mappings, categories)

	imported := make([]*models.Transaction, 0, len(rows))
	for _, row := range rows {
		tx := models.NewTransaction(row.Date, row.Description, row.Amount)
		tx.RawAmount = row.RawAmount
		tx.RawDate = row.RawDate

		result := classifier.Classify(row.Description)
		tx.Category = result.Category
		tx.Confidence = result.Confidence
		tx.NeedsReview = result.NeedsReview || !row.DateParsed || !row.AmountParsed

		imported = append(imported, tx)
	}

	existing, err := s.LoadTransactions()
	if err != nil {
		return err
	}
	if err := s.SaveTransactions(append(existing, imported...)); err != nil {
		return err
	}
	if err := s.SaveMerchantMappings(classifier.Mappings()); err != nil {
		return err
	}

	if saveProfile != "" {
		if err := s.SaveProfile(saveProfile, mapping); err != nil {
			return err
		}
	}

	rep, err := reporter.NewReporter(config.CreateReportConfig(importFormat))
	if err != nil {
		return err
	}
	return rep.WriteImportSummary(os.Stdout, reporter.SummarizeImport(path, imported))
}

// resolveImportMapping picks the mapping for this file: the named profile
// when given, any compatible saved profile otherwise, falling back to
// header auto-detection.
func resolveImportMapping(s storeProfiles, headers []string) (*ingest.ColumnMapping, error) {
	if importProfile != "" {
		saved, err := s.LoadProfile(importProfile)
		if err != nil {
			return nil, err
		}
		if !saved.CompatibleWith(headers) {
			return nil, errors.MappingError(errors.CodeIncompleteMapping,
				"profile '"+importProfile+"' does not match this file's headers")
		}
		return saved, nil
	}

	profiles, err := s.LoadProfiles()
	if err != nil {
		return nil, err
	}
	if saved, ok := profiles[store.DefaultProfileName]; ok {
		if mapping, complete := ingest.ResolveMapping(headers, saved); complete {
			return mapping, nil
		}
	}

	mapping, complete := ingest.DetectMapping(headers)
	if !complete {
		return nil, errors.MappingError(errors.CodeIncompleteMapping,
			"could not detect date, description, and amount columns")
	}
	return mapping, nil
}

// storeProfiles is the slice of the store the mapping resolver needs.
type storeProfiles interface {
	LoadProfile(name string) (*ingest.ColumnMapping, error)
	LoadProfiles() (map[string]*ingest.ColumnMapping, error)
}

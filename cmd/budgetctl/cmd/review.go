package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"household-budget-engine/cmd/budgetctl/config"
	"household-budget-engine/internal/classify"
	"household-budget-engine/internal/models"
	"household-budget-engine/internal/reporter"
	"household-budget-engine/internal/store"
	"household-budget-engine/pkg/errors"
)

// Flags for the review command
var (
	reviewFormat string
	assignID     string
	assignCatID  string
)

// reviewCmd represents the review command
var reviewCmd = &cobra.Command{
	Use:   "review",
	Short: "List or resolve transactions flagged for review",
	Long: `Review lists transactions the classifier could not confidently
categorize. Assigning a category confirms the transaction and teaches the
classifier the merchant, so future imports categorize it automatically.

Examples:
  budgetctl review
  budgetctl review --format csv
  budgetctl review --assign <transaction-id> --category groceries`,

	RunE: runReview,
}

func init() {
	rootCmd.AddCommand(reviewCmd)

	reviewCmd.Flags().StringVarP(&reviewFormat, "format", "f", "console", "output format: console, json, csv")
	reviewCmd.Flags().StringVar(&assignID, "assign", "", "transaction ID to assign a category to")
	reviewCmd.Flags().StringVar(&assignCatID, "category", "", "category ID to assign")
}

func runReview(cmd *cobra.Command, args []string) error {
	s, err := openStore()
	if err != nil {
		return err
	}

	txs, err := s.LoadTransactions()
	if err != nil {
		return err
	}

	if assignID != "" {
		return assignCategory(s, txs)
	}

	rep, err := reporter.NewReporter(config.CreateReportConfig(reviewFormat))
	if err != nil {
		return err
	}
	return rep.WriteReviewQueue(os.Stdout, txs)
}

func assignCategory(s *store.Store, txs []*models.Transaction) error {
	categories, err := s.LoadCategories()
	if err != nil {
		return err
	}
	mappings, err := s.LoadMerchantMappings()
	if err != nil {
		return err
	}
	classifier := classify.NewClassifier(nil, mappings, categories)

	for _, tx := range txs {
		if tx.ID != assignID {
			continue
		}
		cat := classifier.IgnoreCategory()
		if assignCatID != cat.ID {
			cat = nil
			for _, c := range categories {
				if c.ID == assignCatID {
					cat = c
					break
				}
			}
			if cat == nil {
				return errors.ValidationError(errors.CodeInvalidData, "category", assignCatID)
			}
		}

		tx.Category = cat
		tx.Confidence = 1.0
		tx.Confirmed = true
		tx.NeedsReview = false
		classifier.Learn(tx.Description, cat.ID)

		if err := s.SaveTransactions(txs); err != nil {
			return err
		}
		return s.SaveMerchantMappings(classifier.Mappings())
	}

	return errors.ReconcileError(errors.CodeTransactionNotFound, assignID)
}

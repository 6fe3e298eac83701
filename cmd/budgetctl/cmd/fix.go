package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"household-budget-engine/internal/models"
	"household-budget-engine/internal/money"
	"household-budget-engine/internal/reconcile"
	"household-budget-engine/pkg/errors"
)

// Flags for the fix subcommands
var (
	splitAmounts []string
	combineWith  []string
	editAmount   string
	editDesc     string
	editDate     string
)

// fixCmd groups the ledger correction commands.
var fixCmd = &cobra.Command{
	Use:   "fix",
	Short: "Correct imported transactions",
	Long: `Fix edits the ledger after import: split one charge into parts,
combine related entries, edit fields, or delete a transaction.

Amounts are magnitudes; pieces keep the original transaction's direction.

Examples:
  budgetctl fix split <id> --amounts 120.00,30.00
  budgetctl fix split <id> --amounts auto:3
  budgetctl fix combine <id> --with <other-id>
  budgetctl fix edit <id> --amount 82.40 --description "Costco groceries"
  budgetctl fix delete <id>`,
}

var splitCmd = &cobra.Command{
	Use:   "split <id>",
	Short: "Split a transaction into parts that sum to the original",
	Args:  cobra.ExactArgs(1),
	RunE:  runSplit,
}

var combineCmd = &cobra.Command{
	Use:   "combine <id>",
	Short: "Combine a transaction with one or more others",
	Args:  cobra.ExactArgs(1),
	RunE:  runCombine,
}

var editCmd = &cobra.Command{
	Use:   "edit <id>",
	Short: "Edit a transaction's date, description, or amount",
	Args:  cobra.ExactArgs(1),
	RunE:  runEdit,
}

var deleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a transaction",
	Args:  cobra.ExactArgs(1),
	RunE:  runDelete,
}

func init() {
	rootCmd.AddCommand(fixCmd)
	fixCmd.AddCommand(splitCmd, combineCmd, editCmd, deleteCmd)

	splitCmd.Flags().StringSliceVar(&splitAmounts, "amounts", nil,
		"comma-separated part amounts, or auto:N for N equal parts")
	combineCmd.Flags().StringSliceVar(&combineWith, "with", nil,
		"comma-separated IDs of transactions to merge in")
	editCmd.Flags().StringVar(&editAmount, "amount", "", "new amount")
	editCmd.Flags().StringVar(&editDesc, "description", "", "new description")
	editCmd.Flags().StringVar(&editDate, "date", "", "new date (YYYY-MM-DD)")
}

func runSplit(cmd *cobra.Command, args []string) error {
	id := args[0]
	if len(splitAmounts) == 0 {
		return errors.ReconcileError(errors.CodeNoParts, "")
	}

	s, err := openStore()
	if err != nil {
		return err
	}
	txs, err := s.LoadTransactions()
	if err != nil {
		return err
	}

	parts, err := buildSplitParts(txs, id)
	if err != nil {
		return err
	}

	updated, err := reconcile.NewReconciler().Split(txs, id, parts)
	if err != nil {
		return err
	}
	if err := s.SaveTransactions(updated); err != nil {
		return err
	}

	fmt.Printf("Split into %d parts.\n", len(parts))
	return nil
}

func buildSplitParts(txs []*models.Transaction, id string) ([]reconcile.SplitPart, error) {
	// auto:N distributes the original amount into N equal parts.
	if len(splitAmounts) == 1 && strings.HasPrefix(splitAmounts[0], "auto:") {
		var n int
		if _, err := fmt.Sscanf(splitAmounts[0], "auto:%d", &n); err != nil || n < 1 {
			return nil, errors.ValidationError(errors.CodeInvalidAmount, "amounts", splitAmounts[0])
		}
		source := findTransaction(txs, id)
		if source == nil {
			return nil, errors.ReconcileError(errors.CodeTransactionNotFound, id)
		}
		amounts := reconcile.AutoDistribute(source.Amount, n)
		parts := make([]reconcile.SplitPart, len(amounts))
		for i, a := range amounts {
			parts[i] = reconcile.SplitPart{Amount: a}
		}
		return parts, nil
	}

	parts := make([]reconcile.SplitPart, 0, len(splitAmounts))
	for _, raw := range splitAmounts {
		amount, err := money.ParseInput(raw)
		if err != nil {
			return nil, errors.ValidationError(errors.CodeInvalidAmount, "amounts", raw)
		}
		parts = append(parts, reconcile.SplitPart{Amount: amount})
	}
	return parts, nil
}

func findTransaction(txs []*models.Transaction, id string) *models.Transaction {
	for _, tx := range txs {
		if tx.ID == id {
			return tx
		}
	}
	return nil
}

func runCombine(cmd *cobra.Command, args []string) error {
	s, err := openStore()
	if err != nil {
		return err
	}
	txs, err := s.LoadTransactions()
	if err != nil {
		return err
	}

	updated, err := reconcile.NewReconciler().Combine(txs, args[0], combineWith)
	if err != nil {
		return err
	}
	if err := s.SaveTransactions(updated); err != nil {
		return err
	}

	fmt.Printf("Combined %d transactions.\n", len(combineWith)+1)
	return nil
}

func runEdit(cmd *cobra.Command, args []string) error {
	var req reconcile.EditRequest

	if editAmount != "" {
		amount, err := money.ParseInput(editAmount)
		if err != nil {
			return errors.ValidationError(errors.CodeInvalidAmount, "amount", editAmount)
		}
		req.Amount = &amount
	}
	if editDesc != "" {
		req.Description = &editDesc
	}
	if editDate != "" {
		date, err := models.ParseDate(editDate)
		if err != nil {
			return errors.ValidationError(errors.CodeInvalidDate, "date", editDate)
		}
		req.Date = &date
	}

	s, err := openStore()
	if err != nil {
		return err
	}
	txs, err := s.LoadTransactions()
	if err != nil {
		return err
	}

	updated, err := reconcile.NewReconciler().Edit(txs, args[0], req)
	if err != nil {
		return err
	}
	if err := s.SaveTransactions(updated); err != nil {
		return err
	}

	fmt.Println("Transaction updated.")
	return nil
}

func runDelete(cmd *cobra.Command, args []string) error {
	s, err := openStore()
	if err != nil {
		return err
	}
	txs, err := s.LoadTransactions()
	if err != nil {
		return err
	}

	updated, err := reconcile.NewReconciler().Delete(txs, args[0])
	if err != nil {
		return err
	}
	if err := s.SaveTransactions(updated); err != nil {
		return err
	}

	fmt.Println("Transaction deleted.")
	return nil
}

// Package reconcile implements corrections to an imported ledger: editing,
// splitting, combining, and deleting transactions.
//
// Every operation takes the current transaction list and returns a fresh
// replacement list; the input slice is never mutated. Splits must balance
// to the cent before they are accepted, and combined or split transactions
// carry Origin lineage so the history of a correction is reconstructable.
package reconcile

import (
	"fmt"
	"strings"
	"time"

	"household-budget-engine/internal/models"
	"household-budget-engine/internal/money"
	"household-budget-engine/pkg/errors"
	"household-budget-engine/pkg/logger"
)

// Reconciler applies corrections to transaction lists.
type Reconciler struct {
	logger logger.Logger
}

// NewReconciler creates a reconciler.
func NewReconciler() *Reconciler {
	return &Reconciler{logger: logger.WithComponent("reconcile")}
}

// EditRequest holds the fields an edit may change. Nil fields are left
// untouched. Amounts are magnitudes: the record's direction is fixed at
// import and an edit never flips an outflow into an inflow.
type EditRequest struct {
	Date        *time.Time
	Description *string
	Amount      *money.Money
}

// Edit applies the requested changes to the transaction with the given ID
// and returns the updated list. An edited transaction counts as reviewed.
func (r *Reconciler) Edit(txs []*models.Transaction, id string, req EditRequest) ([]*models.Transaction, error) {
	idx := indexOf(txs, id)
	if idx < 0 {
		return nil, errors.ReconcileError(errors.CodeTransactionNotFound, id)
	}

	updated := *txs[idx]
	if req.Date != nil {
		updated.Date = *req.Date
	}
	if req.Description != nil {
		if strings.TrimSpace(*req.Description) == "" {
			return nil, errors.ValidationError(errors.CodeMissingField, "description", *req.Description)
		}
		updated.Description = *req.Description
	}
	if req.Amount != nil {
		updated.Amount = withSign(*req.Amount, updated.Amount)
	}
	updated.Confirmed = true
	updated.Confidence = 1.0
	updated.NeedsReview = false

	result := copyList(txs)
	result[idx] = &updated
	return result, nil
}

// withSign returns the magnitude of amount carrying the sign of reference.
func withSign(amount, reference money.Money) money.Money {
	if reference.IsNegative() {
		return amount.Abs().Neg()
	}
	return amount.Abs()
}

// SplitPart describes one piece of a split. Amount is a magnitude; the
// resulting pieces carry the original transaction's sign.
type SplitPart struct {
	Description string
	Amount      money.Money
	Category    *models.Category
}

// BalanceError reports how far split parts are from the original
// magnitude. Delta is the original magnitude minus the sum of part
// magnitudes: positive means the parts are under-allocated.
type BalanceError struct {
	Original money.Money
	Sum      money.Money
	Delta    money.Money
}

func (e *BalanceError) Error() string {
	return fmt.Sprintf("split parts sum to %s, original is %s (delta %s)",
		e.Sum, e.Original, e.Delta)
}

// CheckSplitBalance verifies that the parts sum exactly to the original
// amount. Parts are accepted either as magnitudes summing to the original
// magnitude, or already signed summing to the original amount itself (the
// form auto-distribute produces, where a rounding-overshoot remainder part
// can carry the opposite sign).
func CheckSplitBalance(original money.Money, parts []SplitPart) *BalanceError {
	sum := partSum(parts)
	if sum.Equal(original) || sum.Equal(original.Abs()) {
		return nil
	}
	target := original.Abs()
	return &BalanceError{
		Original: target,
		Sum:      sum.Abs(),
		Delta:    target.Sub(sum.Abs()),
	}
}

func partSum(parts []SplitPart) money.Money {
	sum := money.Zero()
	for _, p := range parts {
		sum = sum.Add(p.Amount)
	}
	return sum
}

// AutoDistribute divides a total into n equal parts. Rounding remainder
// lands on the last part so the parts always sum exactly to the total.
func AutoDistribute(total money.Money, n int) []money.Money {
	if n <= 0 {
		return nil
	}

	each := total.Div(int64(n))
	parts := make([]money.Money, n)
	allocated := money.Zero()
	for i := 0; i < n-1; i++ {
		parts[i] = each
		allocated = allocated.Add(each)
	}
	parts[n-1] = total.Sub(allocated)
	return parts
}

// Split replaces a transaction with the given parts. Parts must balance
// exactly, either as magnitudes or already signed (see CheckSplitBalance);
// at least one part is required. Each piece keeps the original date and
// direction and records its lineage.
func (r *Reconciler) Split(txs []*models.Transaction, id string, parts []SplitPart) ([]*models.Transaction, error) {
	if len(parts) == 0 {
		return nil, errors.ReconcileError(errors.CodeNoParts, "")
	}

	idx := indexOf(txs, id)
	if idx < 0 {
		return nil, errors.ReconcileError(errors.CodeTransactionNotFound, id)
	}
	source := txs[idx]

	if balErr := CheckSplitBalance(source.Amount, parts); balErr != nil {
		return nil, errors.Wrap(balErr, errors.CategoryReconciliation, errors.CodeUnbalancedSplit,
			fmt.Sprintf("split amounts do not sum to the original amount: %s", balErr)).
			WithSuggestion("adjust the split amounts or use auto-distribute").
			WithContext("delta", balErr.Delta.String())
	}

	// Magnitude parts are re-signed to the source's direction; parts that
	// already sum to the signed original pass through unchanged.
	flip := source.Amount.IsNegative() && !partSum(parts).Equal(source.Amount)

	pieces := make([]*models.Transaction, len(parts))
	for i, part := range parts {
		description := part.Description
		if strings.TrimSpace(description) == "" {
			description = source.Description
		}

		amount := part.Amount
		if flip {
			amount = amount.Neg()
		}
		piece := models.NewTransaction(source.Date, description, amount)
		piece.ID = fmt.Sprintf("%s-split-%d", source.ID, i+1)
		piece.Category = part.Category
		piece.Confirmed = part.Category != nil
		if piece.Confirmed {
			piece.Confidence = 1.0
		} else {
			piece.NeedsReview = true
		}
		piece.Origin = &models.Origin{
			Action:   models.ActionSplit,
			SourceID: source.ID,
			Index:    i + 1,
			Total:    len(parts),
		}
		pieces[i] = piece
	}

	r.logger.WithFields(logger.Fields{
		"transaction": source.ID,
		"parts":       len(parts),
	}).Info("Split transaction")

	result := make([]*models.Transaction, 0, len(txs)+len(parts)-1)
	result = append(result, txs[:idx]...)
	result = append(result, pieces...)
	result = append(result, txs[idx+1:]...)
	return result, nil
}

// Combine merges the source transaction with one or more others into a
// single entry. Amounts are summed exactly; descriptions are joined with
// " + "; the merged entry takes the source's date and position and records
// every constituent ID.
func (r *Reconciler) Combine(txs []*models.Transaction, sourceID string, otherIDs []string) ([]*models.Transaction, error) {
	if len(otherIDs) == 0 {
		return nil, errors.ReconcileError(errors.CodeEmptySelection, "")
	}

	sourceIdx := indexOf(txs, sourceID)
	if sourceIdx < 0 {
		return nil, errors.ReconcileError(errors.CodeTransactionNotFound, sourceID)
	}
	source := txs[sourceIdx]

	combined := map[string]bool{sourceID: true}
	total := source.Amount
	descriptions := []string{source.Description}
	ids := []string{sourceID}

	for _, id := range otherIDs {
		if combined[id] {
			continue
		}
		idx := indexOf(txs, id)
		if idx < 0 {
			return nil, errors.ReconcileError(errors.CodeTransactionNotFound, id)
		}
		combined[id] = true
		total = total.Add(txs[idx].Amount)
		descriptions = append(descriptions, txs[idx].Description)
		ids = append(ids, id)
	}

	// Combining is a user action; the merged record counts as reviewed.
	merged := models.NewTransaction(source.Date, strings.Join(descriptions, " + "), total)
	merged.Category = source.Category
	merged.Confirmed = true
	merged.Confidence = 1.0
	merged.NeedsReview = false
	merged.Origin = &models.Origin{
		Action:      models.ActionCombine,
		SourceID:    sourceID,
		CombinedIDs: ids,
	}

	r.logger.WithFields(logger.Fields{
		"transaction": sourceID,
		"merged":      len(ids),
	}).Info("Combined transactions")

	result := make([]*models.Transaction, 0, len(txs))
	for _, tx := range txs {
		if tx.ID == sourceID {
			result = append(result, merged)
			continue
		}
		if combined[tx.ID] {
			continue
		}
		result = append(result, tx)
	}
	return result, nil
}

// Delete removes the transaction with the given ID.
func (r *Reconciler) Delete(txs []*models.Transaction, id string) ([]*models.Transaction, error) {
	idx := indexOf(txs, id)
	if idx < 0 {
		return nil, errors.ReconcileError(errors.CodeTransactionNotFound, id)
	}

	result := make([]*models.Transaction, 0, len(txs)-1)
	result = append(result, txs[:idx]...)
	result = append(result, txs[idx+1:]...)
	return result, nil
}

func indexOf(txs []*models.Transaction, id string) int {
	for i, tx := range txs {
		if tx.ID == id {
			return i
		}
	}
	return -1
}

func copyList(txs []*models.Transaction) []*models.Transaction {
	out := make([]*models.Transaction, len(txs))
	copy(out, txs)
	return out
}

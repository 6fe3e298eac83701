// Package models defines the core data structures shared by the budget
// engine: categories, transactions, planned figures, and the lineage
// metadata left behind by reconciliation actions.
package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"household-budget-engine/internal/money"
)

// CategoryType classifies a category's role in the budget.
type CategoryType string

const (
	TypeIncome  CategoryType = "Income"
	TypeExpense CategoryType = "Expense"
	TypeSavings CategoryType = "Savings"
	TypeSystem  CategoryType = "System"
)

// IgnoreCategoryID identifies the built-in category for transactions that
// should be excluded from all budget math, such as credit card payments
// and account-to-account transfers.
const IgnoreCategoryID = "system-ignore"

// Category represents a budget category a transaction can be assigned to.
type Category struct {
	ID       string       `json:"id"`
	Name     string       `json:"name"`
	Type     CategoryType `json:"type"`
	Keywords []string     `json:"keywords,omitempty"`
	System   bool         `json:"system,omitempty"`
}

// NewIgnoreCategory returns the built-in ignore category. It always exists
// and cannot be deleted by the user.
func NewIgnoreCategory() *Category {
	return &Category{
		ID:     IgnoreCategoryID,
		Name:   "Ignored",
		Type:   TypeSystem,
		System: true,
		Keywords: []string{
			"transfer", "payment thank you", "autopay",
			"credit card payment", "zelle", "venmo",
		},
	}
}

// IsIgnore reports whether the category is the built-in ignore category.
func (c *Category) IsIgnore() bool {
	return c != nil && c.ID == IgnoreCategoryID
}

// Validate checks the category for required fields.
func (c *Category) Validate() error {
	if c.ID == "" {
		return fmt.Errorf("category ID is required")
	}
	if c.Name == "" {
		return fmt.Errorf("category name is required")
	}
	switch c.Type {
	case TypeIncome, TypeExpense, TypeSavings, TypeSystem:
	default:
		return fmt.Errorf("invalid category type: %s", c.Type)
	}
	return nil
}

// ReconcileAction names the reconciliation operation that produced a
// transaction.
type ReconcileAction string

const (
	ActionSplit   ReconcileAction = "split"
	ActionCombine ReconcileAction = "combine"
	ActionManual  ReconcileAction = "manual"
)

// Origin records where a transaction came from when it was not imported
// directly: which action created it and, for splits, its position among
// the parts.
type Origin struct {
	Action      ReconcileAction `json:"action"`
	SourceID    string          `json:"source_id,omitempty"`
	CombinedIDs []string        `json:"combined_ids,omitempty"`
	Index       int             `json:"index,omitempty"`
	Total       int             `json:"total,omitempty"`
}

// Transaction is a single ledger entry. Amount sign carries direction:
// negative is an outflow, positive is an inflow.
type Transaction struct {
	ID          string      `json:"id"`
	Date        time.Time   `json:"date"`
	Description string      `json:"description"`
	Amount      money.Money `json:"amount"`
	Category    *Category   `json:"category,omitempty"`
	Confidence  float64     `json:"confidence"`
	NeedsReview bool        `json:"needs_review"`
	Confirmed   bool        `json:"confirmed"`
	RawAmount   string      `json:"raw_amount,omitempty"`
	RawDate     string      `json:"raw_date,omitempty"`
	ImportedAt  time.Time   `json:"imported_at"`
	Origin      *Origin     `json:"origin,omitempty"`
}

// NewTransaction creates an imported transaction with a fresh ID.
func NewTransaction(date time.Time, description string, amount money.Money) *Transaction {
	return &Transaction{
		ID:          uuid.New().String(),
		Date:        date,
		Description: description,
		Amount:      amount,
		ImportedAt:  time.Now(),
	}
}

// NewManualTransaction creates a hand-entered transaction. Manual entries
// are trusted: fully confident and never flagged for review.
func NewManualTransaction(date time.Time, description string, amount money.Money, category *Category) *Transaction {
	tx := NewTransaction(date, description, amount)
	tx.Category = category
	tx.Confidence = 1.0
	tx.Confirmed = true
	tx.Origin = &Origin{Action: ActionManual}
	return tx
}

// IsIgnored reports whether the transaction is assigned to the built-in
// ignore category.
func (t *Transaction) IsIgnored() bool {
	return t.Category.IsIgnore()
}

// Validate checks the transaction for required fields.
func (t *Transaction) Validate() error {
	if t.ID == "" {
		return fmt.Errorf("transaction ID is required")
	}
	if strings.TrimSpace(t.Description) == "" {
		return fmt.Errorf("transaction description is required")
	}
	if t.Date.IsZero() {
		return fmt.Errorf("transaction date is required")
	}
	return nil
}

// PersistableTransactions filters out ignored transactions. Ignored
// entries are dropped at save time rather than carried forward.
func PersistableTransactions(txs []*Transaction) []*Transaction {
	result := make([]*Transaction, 0, len(txs))
	for _, tx := range txs {
		if !tx.IsIgnored() {
			result = append(result, tx)
		}
	}
	return result
}

// PlannedFigure is a recurring income, expense, or savings line in the
// budget plan. Amount is the per-occurrence value at Frequency.
type PlannedFigure struct {
	Name      string          `json:"name"`
	Amount    money.Money     `json:"amount"`
	Frequency money.Frequency `json:"frequency"`
	Type      CategoryType    `json:"type"`
}

// Monthly returns the figure's monthly equivalent.
func (p *PlannedFigure) Monthly() money.Money {
	return p.Amount.ToMonthly(p.Frequency)
}

// Yearly returns the figure's yearly total.
func (p *PlannedFigure) Yearly() money.Money {
	return p.Amount.ToYearly(p.Frequency)
}

// Validate checks the planned figure for required fields.
func (p *PlannedFigure) Validate() error {
	if strings.TrimSpace(p.Name) == "" {
		return fmt.Errorf("planned figure name is required")
	}
	if !p.Frequency.Valid() {
		return fmt.Errorf("invalid frequency: %s", p.Frequency)
	}
	switch p.Type {
	case TypeIncome, TypeExpense, TypeSavings:
	default:
		return fmt.Errorf("invalid planned figure type: %s", p.Type)
	}
	return nil
}

// Supported date formats, tried in order. Unambiguous ISO forms first,
// then the US-style forms common in bank exports.
var dateFormats = []string{
	"2006-01-02",
	"2006/01/02",
	"01/02/2006",
	"1/2/2006",
	"01-02-2006",
	"02 Jan 2006",
	"Jan 2, 2006",
	"2006-01-02T15:04:05Z07:00",
	"2006-01-02 15:04:05",
}

// ParseDate parses a date string from CSV data, trying each supported
// format in order.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, fmt.Errorf("empty date string")
	}

	for _, format := range dateFormats {
		if t, err := time.Parse(format, s); err == nil {
			return t, nil
		}
	}

	return time.Time{}, fmt.Errorf("unsupported date format: %s", s)
}

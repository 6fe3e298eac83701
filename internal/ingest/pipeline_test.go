package ingest

import (
	"testing"

	"household-budget-engine/internal/classify"
	"household-budget-engine/internal/models"
)

// End-to-end: a debit-style bank export flows through detection, apply,
// and classification.
func TestImportPipelineDebitExport(t *testing.T) {
	text := "Posted Date,Merchant Name,Debit\n" +
		"03/15/2025,COSTCO WHOLESALE #123,82.40\n" +
		"03/16/2025,PAYROLL DEPOSIT,-2500.00\n" +
		"03/17/2025,CREDIT CARD PAYMENT,250.00\n"

	ing := NewIngestor(nil)
	parsed, err := ing.Parse(text)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	mapping, ok := DetectMapping(parsed.Headers)
	if !ok {
		t.Fatalf("Detection incomplete: %+v", mapping)
	}

	rows, err := ing.Apply(parsed, mapping)
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}

	categories := []*models.Category{
		{ID: "income-payroll", Name: "Payroll", Type: models.TypeIncome},
		{ID: "groceries", Name: "Groceries", Type: models.TypeExpense,
			Keywords: []string{"costco"}},
	}
	classifier := classify.NewClassifier(nil, nil, categories)

	var txs []*models.Transaction
	for _, row := range rows {
		tx := models.NewTransaction(row.Date, row.Description, row.Amount)
		result := classifier.Classify(row.Description)
		tx.Category = result.Category
		tx.Confidence = result.Confidence
		tx.NeedsReview = result.NeedsReview
		txs = append(txs, tx)
	}

	if len(txs) != 3 {
		t.Fatalf("Expected 3 transactions, got %d", len(txs))
	}

	// Debit 82.40 becomes an outflow assigned to groceries.
	costco := txs[0]
	if costco.Amount.Units() != -8240 {
		t.Errorf("Costco amount = %s, expected -82.40", costco.Amount)
	}
	if costco.Category == nil || costco.Category.ID != "groceries" {
		t.Errorf("Costco category = %+v", costco.Category)
	}

	// Negative debit becomes an inflow, confidently matched to Payroll.
	payroll := txs[1]
	if payroll.Amount.Units() != 250000 {
		t.Errorf("Payroll amount = %s, expected 2500.00", payroll.Amount)
	}
	if payroll.Category == nil || payroll.Category.ID != "income-payroll" {
		t.Errorf("Payroll category = %+v", payroll.Category)
	}
	if payroll.NeedsReview {
		t.Errorf("Payroll flagged for review at confidence %v", payroll.Confidence)
	}

	// Card payments are money movement and get auto-ignored.
	cardPayment := txs[2]
	if cardPayment.Category == nil || !cardPayment.Category.IsIgnore() {
		t.Errorf("Card payment category = %+v", cardPayment.Category)
	}

	// Ignored entries are dropped at persistence time.
	persisted := models.PersistableTransactions(txs)
	if len(persisted) != 2 {
		t.Errorf("Expected 2 persistable transactions, got %d", len(persisted))
	}
}

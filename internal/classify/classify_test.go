package classify

import (
	"encoding/json"
	"testing"

	"household-budget-engine/internal/models"
)

func TestNormalizeMerchant(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"COSTCO WHOLESALE #123", "costco wholesale"},
		{"COSTCO WHOLESALE #456", "costco wholesale"},
		{"AMAZON 1234567890 SEATTLE", "amazon"},
		{"SQ *COFFEE", "sq *coffee"},
		{"NETFLIX.COM***", "netflix.com"},
		{"  TRADER   JOES  ", "trader joes"},
		{"SHELL OIL 57442889", "shell oil"},
		{"UBER", "uber"},
	}

	for _, tt := range tests {
		if got := NormalizeMerchant(tt.input); got != tt.want {
			t.Errorf("NormalizeMerchant(%q) = %q, expected %q", tt.input, got, tt.want)
		}
	}
}

func TestShouldAutoIgnore(t *testing.T) {
	rules := DefaultRuleSet()

	ignored := []string{
		"PAYMENT THANK YOU",
		"Chase AutoPay",
		"ONLINE PAYMENT - THANK YOU",
		"ZELLE TO JANE DOE",
		"VENMO PAYMENT",
		"INTERNAL TRANSFER TO SAVINGS",
		"CREDIT CARD PAYMENT",
	}
	for _, desc := range ignored {
		if !rules.ShouldAutoIgnore(desc) {
			t.Errorf("Expected %q to be auto-ignored", desc)
		}
	}

	kept := []string{"COSTCO WHOLESALE", "PAYROLL DEPOSIT", "NETFLIX.COM"}
	for _, desc := range kept {
		if rules.ShouldAutoIgnore(desc) {
			t.Errorf("Expected %q not to be auto-ignored", desc)
		}
	}
}

func testCategories() []*models.Category {
	return []*models.Category{
		{ID: "income-payroll", Name: "Payroll", Type: models.TypeIncome},
		{ID: "groceries", Name: "Groceries", Type: models.TypeExpense,
			Keywords: []string{"costco", "safeway", "trader joes"}},
		{ID: "dining", Name: "Dining Out", Type: models.TypeExpense,
			Keywords: []string{"restaurant", "coffee", "doordash"}},
	}
}

func TestClassifyAutoIgnoreWins(t *testing.T) {
	c := NewClassifier(nil, nil, testCategories())

	// Auto-ignore beats keyword scoring even when keywords would match.
	result := c.Classify("GROCERIES CARD PAYMENT")
	if !result.Category.IsIgnore() {
		t.Errorf("Expected ignore category, got %v", result.Category)
	}
	if result.Confidence != 1.0 || result.NeedsReview {
		t.Errorf("Auto-ignore is fully confident: %+v", result)
	}
	if result.Source != SourceAutoIgnore {
		t.Errorf("Expected auto-ignore source, got %s", result.Source)
	}
}

func TestClassifyLearnedMapping(t *testing.T) {
	c := NewClassifier(nil, nil, testCategories())
	c.Learn("COSTCO WHOLESALE #123", "groceries")

	// Different store number, same learned merchant.
	result := c.Classify("COSTCO WHOLESALE #456")
	if result.Category == nil || result.Category.ID != "groceries" {
		t.Fatalf("Expected learned groceries match, got %+v", result)
	}
	if result.Confidence != 1.0 || result.NeedsReview {
		t.Errorf("Learned matches are fully confident: %+v", result)
	}
	if result.Source != SourceLearned {
		t.Errorf("Expected learned source, got %s", result.Source)
	}
}

func TestClassifyStaleMappingRetained(t *testing.T) {
	mappings := NewMerchantMappings()
	mappings.Learn("mystery shop", "deleted-category")
	c := NewClassifier(nil, mappings, testCategories())

	// A mapping to a missing category falls through to keyword scoring.
	result := c.Classify("MYSTERY SHOP")
	if result.Source == SourceLearned {
		t.Error("Expected stale mapping to be ignored")
	}

	// Classification never mutates the mapping store; the entry stays,
	// so restoring the category restores the learned match.
	if cat, ok := mappings.Get("mystery shop"); !ok || cat != "deleted-category" {
		t.Errorf("Expected stale mapping retained, got %q, %v", cat, ok)
	}
	if mappings.Len() != 1 {
		t.Errorf("Expected 1 mapping, got %d", mappings.Len())
	}
}

func TestClassifyKeywordScoring(t *testing.T) {
	c := NewClassifier(nil, nil, testCategories())

	// Category name hit plus a shared income keyword clears the high
	// confidence bar.
	result := c.Classify("PAYROLL DEPOSIT")
	if result.Category == nil || result.Category.ID != "income-payroll" {
		t.Fatalf("Expected payroll match, got %+v", result)
	}
	if result.Confidence < HighConfidenceThreshold {
		t.Errorf("Expected confidence >= %v, got %v", HighConfidenceThreshold, result.Confidence)
	}
	if result.NeedsReview {
		t.Error("High-confidence matches are not flagged for review")
	}

	// A lone keyword hit stays below the bar and is flagged.
	result = c.Classify("SAFEWAY STORE")
	if result.Category == nil || result.Category.ID != "groceries" {
		t.Fatalf("Expected groceries match, got %+v", result)
	}
	if !result.NeedsReview {
		t.Errorf("Confidence %v should be flagged for review", result.Confidence)
	}
}

func TestClassifyNoMatch(t *testing.T) {
	c := NewClassifier(nil, nil, testCategories())

	result := c.Classify("XYZZY UNKNOWN VENDOR")
	if result.Category != nil {
		t.Errorf("Expected no category, got %v", result.Category)
	}
	if !result.NeedsReview {
		t.Error("Unmatched transactions are flagged for review")
	}
	if result.Confidence != 0 {
		t.Errorf("Expected zero confidence, got %v", result.Confidence)
	}
}

func TestClassifyIsDeterministic(t *testing.T) {
	c := NewClassifier(nil, nil, testCategories())

	first := c.Classify("SAFEWAY STORE")
	for i := 0; i < 10; i++ {
		again := c.Classify("SAFEWAY STORE")
		if again.Category != first.Category || again.Confidence != first.Confidence {
			t.Fatalf("Classification changed on call %d: %+v vs %+v", i, again, first)
		}
	}
}

func TestClassifyTieKeepsFirstCategory(t *testing.T) {
	cats := []*models.Category{
		{ID: "a", Name: "Alpha", Type: models.TypeExpense, Keywords: []string{"shared"}},
		{ID: "b", Name: "Beta", Type: models.TypeExpense, Keywords: []string{"shared"}},
	}
	c := NewClassifier(nil, nil, cats)

	result := c.Classify("SHARED VENDOR")
	if result.Category == nil || result.Category.ID != "a" {
		t.Errorf("Expected first category to win ties, got %+v", result.Category)
	}
}

func TestConfidenceLabel(t *testing.T) {
	tests := []struct {
		confidence float64
		want       string
	}{
		{0.95, "High"},
		{0.8, "High"},
		{0.79, "Medium"},
		{0.5, "Medium"},
		{0.49, "Low"},
		{0, "Low"},
	}

	for _, tt := range tests {
		if got := ConfidenceLabel(tt.confidence); got != tt.want {
			t.Errorf("ConfidenceLabel(%v) = %q, expected %q", tt.confidence, got, tt.want)
		}
	}
}

func TestMerchantMappingsJSONRoundTrip(t *testing.T) {
	m := NewMerchantMappings()
	m.Learn("costco wholesale", "groceries")
	m.Learn("netflix.com", "subscriptions")

	data, err := json.Marshal(m)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}

	back := NewMerchantMappings()
	if err := json.Unmarshal(data, back); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}

	if back.Len() != 2 {
		t.Errorf("Expected 2 mappings, got %d", back.Len())
	}
	if cat, _ := back.Get("costco wholesale"); cat != "groceries" {
		t.Errorf("Expected groceries, got %q", cat)
	}
}

package classify

import (
	"strings"

	"household-budget-engine/internal/models"
)

// RuleSet holds the pattern tables driving classification. The defaults
// cover common US bank-export phrasing; callers may extend them.
type RuleSet struct {
	// AutoIgnorePatterns match transactions that are money movement, not
	// budget activity. Matched case-insensitively as substrings.
	AutoIgnorePatterns []string
	// IncomeKeywords extend every Income category's vocabulary.
	IncomeKeywords []string
}

// DefaultRuleSet returns the built-in pattern tables.
func DefaultRuleSet() *RuleSet {
	return &RuleSet{
		AutoIgnorePatterns: []string{
			"payment thank you",
			"autopay",
			"online payment",
			"card payment",
			"credit card payment",
			"balance payment",
			"transfer",
			"zelle",
			"venmo",
			"paypal transfer",
			"internal transfer",
			"account transfer",
			"balance transfer",
		},
		IncomeKeywords: []string{
			"salary",
			"payroll",
			"deposit",
			"direct deposit",
		},
	}
}

// ShouldAutoIgnore reports whether the description matches an auto-ignore
// pattern.
func (r *RuleSet) ShouldAutoIgnore(description string) bool {
	lower := strings.ToLower(description)
	for _, pattern := range r.AutoIgnorePatterns {
		if strings.Contains(lower, pattern) {
			return true
		}
	}
	return false
}

// CategoryKeywords builds the scoring vocabulary for a category: its
// explicit keywords, the words of its name longer than two characters,
// and for Income categories the shared income vocabulary.
func (r *RuleSet) CategoryKeywords(cat *models.Category) []string {
	seen := make(map[string]bool)
	var keywords []string

	add := func(kw string) {
		kw = strings.ToLower(strings.TrimSpace(kw))
		if kw == "" || seen[kw] {
			return
		}
		seen[kw] = true
		keywords = append(keywords, kw)
	}

	for _, kw := range cat.Keywords {
		add(kw)
	}
	for _, word := range strings.Fields(cat.Name) {
		if len(word) > 2 {
			add(word)
		}
	}
	if cat.Type == models.TypeIncome {
		for _, kw := range r.IncomeKeywords {
			add(kw)
		}
	}

	return keywords
}

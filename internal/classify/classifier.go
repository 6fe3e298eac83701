package classify

import (
	"strings"

	"household-budget-engine/internal/models"
	"household-budget-engine/pkg/logger"
)

// Confidence thresholds. A classification at or above the high threshold
// is committed without review; anything below it is flagged.
const (
	HighConfidenceThreshold   = 0.8
	MediumConfidenceThreshold = 0.5
)

// Keyword scoring weights. A hit on the category's own name is the
// strongest signal; each additional keyword hit adds a fixed increment.
const (
	nameMatchWeight    = 0.5
	keywordMatchWeight = 0.3
	maxKeywordScore    = 0.95
)

// Confidence sources, recorded on each result for explainability.
const (
	SourceAutoIgnore = "auto-ignore"
	SourceLearned    = "learned"
	SourceKeyword    = "keyword"
	SourceNone       = "none"
)

// Result is the outcome of classifying one transaction.
type Result struct {
	Category    *models.Category
	Confidence  float64
	NeedsReview bool
	Source      string
}

// Classifier assigns categories using auto-ignore rules, learned merchant
// mappings, and keyword scoring, in that order.
type Classifier struct {
	rules      *RuleSet
	mappings   *MerchantMappings
	categories []*models.Category
	byID       map[string]*models.Category
	ignoreCat  *models.Category
	logger     logger.Logger
}

// NewClassifier creates a classifier over the given user categories. The
// built-in ignore category is always available and need not be passed in.
func NewClassifier(rules *RuleSet, mappings *MerchantMappings, categories []*models.Category) *Classifier {
	if rules == nil {
		rules = DefaultRuleSet()
	}
	if mappings == nil {
		mappings = NewMerchantMappings()
	}

	byID := make(map[string]*models.Category, len(categories)+1)
	ignoreCat := NewIgnoreCategoryFor(categories)
	byID[ignoreCat.ID] = ignoreCat
	for _, cat := range categories {
		byID[cat.ID] = cat
	}

	return &Classifier{
		rules:      rules,
		mappings:   mappings,
		categories: categories,
		byID:       byID,
		ignoreCat:  ignoreCat,
		logger:     logger.WithComponent("classify"),
	}
}

// NewIgnoreCategoryFor returns the existing ignore category if the user
// set already contains one, otherwise the built-in.
func NewIgnoreCategoryFor(categories []*models.Category) *models.Category {
	for _, cat := range categories {
		if cat.IsIgnore() {
			return cat
		}
	}
	return models.NewIgnoreCategory()
}

// Classify determines the category for a transaction description.
func (c *Classifier) Classify(description string) Result {
	if c.rules.ShouldAutoIgnore(description) {
		return Result{
			Category:   c.ignoreCat,
			Confidence: 1.0,
			Source:     SourceAutoIgnore,
		}
	}

	// A mapping to a deleted category is ignored but kept: classification
	// never mutates the mapping store, only Learn does.
	merchant := NormalizeMerchant(description)
	if categoryID, ok := c.mappings.Get(merchant); ok {
		if cat, found := c.byID[categoryID]; found {
			return Result{
				Category:   cat,
				Confidence: 1.0,
				Source:     SourceLearned,
			}
		}
	}

	if cat, score := c.bestKeywordMatch(description); cat != nil {
		return Result{
			Category:    cat,
			Confidence:  score,
			NeedsReview: score < HighConfidenceThreshold,
			Source:      SourceKeyword,
		}
	}

	return Result{NeedsReview: true, Source: SourceNone}
}

// bestKeywordMatch scores every category against the description and
// returns the strict winner. Ties keep the first category scanned, so
// category order is a stable priority.
func (c *Classifier) bestKeywordMatch(description string) (*models.Category, float64) {
	lower := strings.ToLower(description)

	var best *models.Category
	bestScore := 0.0

	for _, cat := range c.categories {
		if cat.IsIgnore() {
			continue
		}
		score := c.scoreCategory(lower, cat)
		if score > bestScore {
			best = cat
			bestScore = score
		}
	}

	return best, bestScore
}

func (c *Classifier) scoreCategory(lowerDescription string, cat *models.Category) float64 {
	nameWords := strings.Fields(strings.ToLower(cat.Name))
	nameHit := false
	for _, word := range nameWords {
		if len(word) > 2 && strings.Contains(lowerDescription, word) {
			nameHit = true
			break
		}
	}

	score := 0.0
	if nameHit {
		score = nameMatchWeight
	}

	for _, kw := range c.rules.CategoryKeywords(cat) {
		if isNameWord(kw, nameWords) {
			continue
		}
		if strings.Contains(lowerDescription, kw) {
			score += keywordMatchWeight
		}
	}

	if score > maxKeywordScore {
		score = maxKeywordScore
	}
	return score
}

func isNameWord(kw string, nameWords []string) bool {
	for _, w := range nameWords {
		if kw == w {
			return true
		}
	}
	return false
}

// Learn records a confirmed merchant-to-category assignment so future
// imports of the same merchant classify with full confidence.
func (c *Classifier) Learn(description, categoryID string) {
	merchant := NormalizeMerchant(description)
	c.mappings.Learn(merchant, categoryID)
	c.logger.WithFields(logger.Fields{
		"merchant": merchant,
		"category": categoryID,
	}).Debug("Learned merchant mapping")
}

// Mappings exposes the learned merchant store for persistence.
func (c *Classifier) Mappings() *MerchantMappings {
	return c.mappings
}

// IgnoreCategory returns the ignore category used by this classifier.
func (c *Classifier) IgnoreCategory() *models.Category {
	return c.ignoreCat
}

// ConfidenceLabel buckets a confidence score for display.
func ConfidenceLabel(confidence float64) string {
	switch {
	case confidence >= HighConfidenceThreshold:
		return "High"
	case confidence >= MediumConfidenceThreshold:
		return "Medium"
	default:
		return "Low"
	}
}

// Package classify assigns categories to imported transactions.
//
// Classification runs a fixed pipeline per transaction: auto-ignore
// patterns first (card payments and transfers are noise, not budget
// activity), then learned merchant mappings from previous user
// confirmations, then keyword scoring against category vocabularies.
// Anything scoring below the high-confidence threshold is flagged for
// review instead of silently committed.
package classify

import (
	"regexp"
	"strings"
)

// Merchant descriptors carry store numbers, reference codes, and card
// suffixes that vary between visits to the same merchant. Normalization
// strips that noise so "COSTCO WHOLESALE #123" and "COSTCO WHOLESALE #456"
// learn and match as one merchant.
var (
	trailingDigitRunRe = regexp.MustCompile(`\s+\d{4,}.*$`)
	storeNumberRe      = regexp.MustCompile(`\s+#\d+`)
	trailingStarsRe    = regexp.MustCompile(`\*+$`)
	whitespaceRunRe    = regexp.MustCompile(`\s+`)
)

// NormalizeMerchant reduces a raw transaction description to a stable
// merchant key: lowercased, with store numbers, long digit runs, trailing
// asterisks, and repeated whitespace removed.
func NormalizeMerchant(description string) string {
	s := strings.TrimSpace(description)
	s = trailingDigitRunRe.ReplaceAllString(s, "")
	s = storeNumberRe.ReplaceAllString(s, "")
	s = trailingStarsRe.ReplaceAllString(s, "")
	s = whitespaceRunRe.ReplaceAllString(s, " ")
	return strings.ToLower(strings.TrimSpace(s))
}

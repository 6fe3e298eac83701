package ingest

import (
	"strings"

	"household-budget-engine/pkg/errors"
)

// ColumnMapping names the CSV headers holding each required field.
type ColumnMapping struct {
	Date        string `json:"date"`
	Description string `json:"description"`
	Amount      string `json:"amount"`
}

// Complete returns an error naming the first unmapped field, or nil if all
// three columns are mapped.
func (m *ColumnMapping) Complete() error {
	if m == nil {
		return errors.MappingError(errors.CodeIncompleteMapping, "no mapping provided")
	}
	switch {
	case m.Date == "":
		return errors.MappingError(errors.CodeIncompleteMapping, "date column is not mapped")
	case m.Description == "":
		return errors.MappingError(errors.CodeIncompleteMapping, "description column is not mapped")
	case m.Amount == "":
		return errors.MappingError(errors.CodeIncompleteMapping, "amount column is not mapped")
	}
	return nil
}

// CompatibleWith reports whether every mapped header appears verbatim in
// the file's header row. A saved profile is only reused on an exact match;
// a close-but-renamed header falls back to fresh detection.
func (m *ColumnMapping) CompatibleWith(headers []string) bool {
	if m == nil || m.Complete() != nil {
		return false
	}
	return containsHeader(headers, m.Date) &&
		containsHeader(headers, m.Description) &&
		containsHeader(headers, m.Amount)
}

func containsHeader(headers []string, name string) bool {
	for _, h := range headers {
		if h == name {
			return true
		}
	}
	return false
}

type columnIndices struct {
	date        int
	description int
	amount      int
}

func (m *ColumnMapping) indices(headers []string) (columnIndices, error) {
	idx := columnIndices{date: -1, description: -1, amount: -1}
	for i, h := range headers {
		switch h {
		case m.Date:
			if idx.date < 0 {
				idx.date = i
			}
		case m.Description:
			if idx.description < 0 {
				idx.description = i
			}
		case m.Amount:
			if idx.amount < 0 {
				idx.amount = i
			}
		}
	}

	if idx.date < 0 || idx.description < 0 || idx.amount < 0 {
		return idx, errors.MappingError(errors.CodeIncompleteMapping,
			"mapped columns not present in file headers")
	}
	return idx, nil
}

// Header keyword lists for auto-detection, in priority order. The first
// header containing a keyword wins for that field.
var (
	dateKeywords        = []string{"date", "posted", "transaction date", "trans date"}
	descriptionKeywords = []string{"description", "merchant", "payee", "details", "name"}
	amountKeywords      = []string{"amount", "value", "debit", "charge", "transaction amount"}
)

// DetectMapping guesses a column mapping from the header row by keyword
// match. Returns the partial mapping and whether it is complete.
func DetectMapping(headers []string) (*ColumnMapping, bool) {
	mapping := &ColumnMapping{}

	for _, h := range headers {
		lower := strings.ToLower(strings.TrimSpace(h))
		if mapping.Date == "" && matchesAny(lower, dateKeywords) {
			mapping.Date = h
			continue
		}
		if mapping.Description == "" && matchesAny(lower, descriptionKeywords) {
			mapping.Description = h
			continue
		}
		if mapping.Amount == "" && matchesAny(lower, amountKeywords) {
			mapping.Amount = h
		}
	}

	return mapping, mapping.Complete() == nil
}

func matchesAny(header string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(header, kw) {
			return true
		}
	}
	return false
}

// AmountIsOutflow reports whether an amount column header names a
// debit-style column. Such columns record outflows as positive numbers,
// so values taken from them are sign-flipped at apply time.
func AmountIsOutflow(header string) bool {
	lower := strings.ToLower(header)
	return strings.Contains(lower, "debit") || strings.Contains(lower, "charge")
}

// ResolveMapping picks the mapping to use for a file: a saved profile if
// every one of its headers is present verbatim, otherwise fresh detection.
// The returned bool reports whether the result is complete enough to
// import with; an incomplete detection is returned for the caller to fill
// in interactively.
func ResolveMapping(headers []string, saved *ColumnMapping) (*ColumnMapping, bool) {
	if saved.CompatibleWith(headers) {
		return saved, true
	}
	return DetectMapping(headers)
}

package classify

import "encoding/json"

// MerchantMappings stores learned merchant-to-category assignments keyed
// by normalized merchant name. It grows as the user confirms or corrects
// categories, so repeat merchants skip keyword scoring entirely.
type MerchantMappings struct {
	byMerchant map[string]string
}

// NewMerchantMappings returns an empty mapping store.
func NewMerchantMappings() *MerchantMappings {
	return &MerchantMappings{byMerchant: make(map[string]string)}
}

// Get returns the learned category ID for a normalized merchant key.
func (m *MerchantMappings) Get(merchant string) (string, bool) {
	categoryID, ok := m.byMerchant[merchant]
	return categoryID, ok
}

// Learn records that the merchant belongs to the category, overwriting
// any earlier assignment. Empty keys are ignored.
func (m *MerchantMappings) Learn(merchant, categoryID string) {
	if merchant == "" || categoryID == "" {
		return
	}
	m.byMerchant[merchant] = categoryID
}

// Len returns the number of learned merchants.
func (m *MerchantMappings) Len() int {
	return len(m.byMerchant)
}

// Snapshot returns a copy of the underlying map.
func (m *MerchantMappings) Snapshot() map[string]string {
	out := make(map[string]string, len(m.byMerchant))
	for k, v := range m.byMerchant {
		out[k] = v
	}
	return out
}

// MarshalJSON encodes the mappings as a flat object of merchant to
// category ID.
func (m *MerchantMappings) MarshalJSON() ([]byte, error) {
	return json.Marshal(m.byMerchant)
}

// UnmarshalJSON decodes a flat merchant-to-category object.
func (m *MerchantMappings) UnmarshalJSON(data []byte) error {
	byMerchant := make(map[string]string)
	if err := json.Unmarshal(data, &byMerchant); err != nil {
		return err
	}
	m.byMerchant = byMerchant
	return nil
}

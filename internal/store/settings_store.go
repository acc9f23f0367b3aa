package store

import "strconv"

// DefaultTaxRate applies when no tax rate has ever been saved.
const DefaultTaxRate = 8.75

// SettingsStore persists the process-wide tax rate percentage as a
// stringified decimal under its own key.
type SettingsStore struct {
	kv KV
}

// NewSettingsStore creates a settings store over the given key-value store.
func NewSettingsStore(kv KV) *SettingsStore {
	return &SettingsStore{kv: kv}
}

// TaxRate reads the saved tax rate, falling back to the default when the
// key is absent or unparsable.
func (s *SettingsStore) TaxRate() (float64, error) {
	raw, ok, err := s.kv.Get(TaxRateKey)
	if err != nil {
		return 0, err
	}
	if !ok {
		return DefaultTaxRate, nil
	}
	rate, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return DefaultTaxRate, nil
	}
	return rate, nil
}

// SetTaxRate overwrites the saved tax rate.
func (s *SettingsStore) SetTaxRate(rate float64) error {
	return s.kv.Set(TaxRateKey, strconv.FormatFloat(rate, 'f', -1, 64))
}

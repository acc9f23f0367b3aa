package service

import (
	"sync"

	"pos-service/internal/store"

	"go.uber.org/zap"
)

// SettingsService owns the process-wide tax rate, read once at startup and
// persisted whenever it is saved.
type SettingsService struct {
	mu      sync.Mutex
	store   *store.SettingsStore
	taxRate float64
	logger  *zap.Logger
}

// NewSettingsService loads the saved tax rate, falling back to the default.
func NewSettingsService(st *store.SettingsStore, log *zap.Logger) (*SettingsService, error) {
	rate, err := st.TaxRate()
	if err != nil {
		return nil, err
	}
	return &SettingsService{store: st, taxRate: rate, logger: log}, nil
}

// TaxRate returns the current tax rate percentage.
func (s *SettingsService) TaxRate() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.taxRate
}

// SetTaxRate saves a new tax rate percentage.
func (s *SettingsService) SetTaxRate(rate float64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.store.SetTaxRate(rate); err != nil {
		s.logger.Error("Failed to persist tax rate", zap.Error(err))
		return err
	}
	s.taxRate = rate
	return nil
}

package store

import (
	"encoding/json"

	"pos-service/internal/model"
)

// HistoryStore persists the payment history, newest first, as a JSON array
// under the payment history key.
type HistoryStore struct {
	kv KV
}

// NewHistoryStore creates a history store over the given key-value store.
func NewHistoryStore(kv KV) *HistoryStore {
	return &HistoryStore{kv: kv}
}

// Load reads the full history. An absent key or malformed JSON yields an
// empty history; a parse failure never propagates.
func (s *HistoryStore) Load() (model.History, error) {
	raw, ok, err := s.kv.Get(HistoryKey)
	if err != nil {
		return nil, err
	}
	if !ok {
		return model.History{}, nil
	}
	var history model.History
	if err := json.Unmarshal([]byte(raw), &history); err != nil {
		return model.History{}, nil
	}
	return history, nil
}

// Save overwrites the persisted history with the given value.
func (s *HistoryStore) Save(history model.History) error {
	raw, err := json.Marshal(history)
	if err != nil {
		return err
	}
	return s.kv.Set(HistoryKey, string(raw))
}

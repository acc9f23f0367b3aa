package service

import (
	"fmt"
	"strings"
	"sync"

	"pos-service/internal/model"
	"pos-service/internal/store"

	"go.uber.org/zap"
)

// DateBucket is one calendar date of the payment history with its derived
// event name, sales total and per-product summary.
type DateBucket struct {
	Date      string               `json:"date"`
	EventName string               `json:"event_name,omitempty"`
	Total     float64              `json:"total"`
	Payments  model.History        `json:"payments"`
	Summary   []model.ProductSales `json:"summary"`
}

// HistoryService owns the loaded payment history. Mutations persist the
// full history before the new state becomes visible.
type HistoryService struct {
	mu      sync.Mutex
	store   *store.HistoryStore
	history model.History
	logger  *zap.Logger
}

// NewHistoryService loads the history from the store.
func NewHistoryService(st *store.HistoryStore, log *zap.Logger) (*HistoryService, error) {
	history, err := st.Load()
	if err != nil {
		return nil, err
	}
	return &HistoryService{store: st, history: history, logger: log}, nil
}

// List returns the full history, newest first.
func (s *HistoryService) List() model.History {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.history.Clone()
}

// ByDate returns the history grouped into date buckets, newest date first,
// each with its event name, sales total and daily summary.
func (s *HistoryService) ByDate() []DateBucket {
	s.mu.Lock()
	history := s.history.Clone()
	s.mu.Unlock()

	grouped, dates := history.GroupByDate()
	buckets := make([]DateBucket, 0, len(dates))
	for _, date := range dates {
		buckets = append(buckets, DateBucket{
			Date:      date,
			EventName: history.EventNameForDate(date),
			Total:     history.TotalForDate(date),
			Payments:  grouped[date],
			Summary:   history.DailySummary(date),
		})
	}
	return buckets
}

// EventNameForDate returns the event name shared by the payments on the
// given date, or an empty string.
func (s *HistoryService) EventNameForDate(date string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.history.EventNameForDate(date)
}

// Prepend inserts a freshly recorded payment at the head of the history
// and persists it.
func (s *HistoryService) Prepend(payment model.Payment) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.commit(s.history.Prepend(payment))
}

// SetEventName sets the event name on every payment sharing the date and
// persists the history.
func (s *HistoryService) SetEventName(date, name string) (model.History, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.commit(s.history.SetEventName(date, name)); err != nil {
		return nil, err
	}
	return s.history.Clone(), nil
}

// Delete removes the payment with the given id, reporting whether it was
// found, and persists the history.
func (s *HistoryService) Delete(id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	next := s.history.Delete(id)
	if len(next) == len(s.history) {
		return false, nil
	}
	return true, s.commit(next)
}

// ExportCSV renders the full history as CSV, one row per payment. Items
// are always quoted; the event name is quoted only when it contains a
// comma; money fields carry exactly two decimals, with the subtotal
// falling back to the total and the tax to zero for older records.
func (s *HistoryService) ExportCSV() string {
	s.mu.Lock()
	history := s.history.Clone()
	s.mu.Unlock()

	var b strings.Builder
	b.WriteString("Date,Event,Time,Items,Subtotal,Tax,Total\n")
	for _, p := range history {
		items := make([]string, len(p.Items))
		for i, item := range p.Items {
			items[i] = fmt.Sprintf("%dx %s", item.Quantity, item.ProductName)
		}

		subtotal := p.Total
		if p.Subtotal != nil {
			subtotal = *p.Subtotal
		}
		tax := "0.00"
		if p.Tax != nil {
			tax = fmt.Sprintf("%.2f", *p.Tax)
		}
		event := p.EventName
		if strings.Contains(event, ",") {
			event = `"` + event + `"`
		}

		b.WriteString(fmt.Sprintf("%s,%s,%s,\"%s\",%.2f,%s,%.2f\n",
			p.Date, event, p.Timestamp, strings.Join(items, "; "), subtotal, tax, p.Total))
	}
	return b.String()
}

// commit persists the next history state and swaps it in. The caller must
// hold the mutex.
func (s *HistoryService) commit(next model.History) error {
	if err := s.store.Save(next); err != nil {
		s.logger.Error("Failed to persist payment history", zap.Error(err))
		return err
	}
	s.history = next
	return nil
}

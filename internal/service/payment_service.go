package service

import (
	"errors"
	"fmt"
	"time"

	"pos-service/internal/model"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ErrEmptyOrder is returned when a payment is recorded with no order value.
var ErrEmptyOrder = errors.New("nothing to record: order value is zero")

// PaymentService turns the current cart into immutable payment records.
// The clock and id generator are injected so recordings are deterministic
// in tests.
type PaymentService struct {
	catalog  *CatalogService
	history  *HistoryService
	settings *SettingsService
	now      func() time.Time
	newID    func() string
	logger   *zap.Logger
}

// NewPaymentService creates a payment service over the given collaborators.
func NewPaymentService(catalog *CatalogService, history *HistoryService, settings *SettingsService, log *zap.Logger) *PaymentService {
	return &PaymentService{
		catalog:  catalog,
		history:  history,
		settings: settings,
		now:      time.Now,
		newID:    uuid.NewString,
		logger:   log,
	}
}

// WithClock overrides the time source, used in tests.
func (s *PaymentService) WithClock(now func() time.Time) *PaymentService {
	s.now = now
	return s
}

// WithIDGenerator overrides the id source, used in tests.
func (s *PaymentService) WithIDGenerator(gen func() string) *PaymentService {
	s.newID = gen
	return s
}

// Summary derives the current order totals and review lines from the cart
// and the saved tax rate.
func (s *PaymentService) Summary(includeTax bool) (model.OrderSummary, []model.OrderLine) {
	catalog := s.catalog.Catalog()
	return model.Summarize(catalog, s.settings.TaxRate(), includeTax), catalog.OrderLines()
}

// RecordPayment snapshots the cart into a new payment, prepends it to the
// history and resets every cart quantity. It fails with ErrEmptyOrder when
// the order value is zero. The history write and the catalog reset are two
// independent persists with no transaction across them; when the catalog
// reset fails the recorded payment is kept and the error is returned.
func (s *PaymentService) RecordPayment(includeTax bool) (*model.Payment, error) {
	catalog := s.catalog.Catalog()
	taxRate := s.settings.TaxRate()

	summary := model.Summarize(catalog, taxRate, includeTax)
	if summary.Subtotal <= 0 {
		return nil, ErrEmptyOrder
	}
	items := catalog.PaymentItems()
	if len(items) == 0 {
		return nil, ErrEmptyOrder
	}

	now := s.now()
	date := formatDate(now)

	payment := model.Payment{
		ID:         s.newID(),
		Date:       date,
		EventName:  s.history.EventNameForDate(date),
		Items:      items,
		Subtotal:   &summary.Subtotal,
		IncludeTax: includeTax,
		Total:      summary.Total,
		Timestamp:  formatTime(now),
	}
	if includeTax {
		payment.Tax = &summary.TaxAmount
		payment.TaxRate = &summary.TaxRate
	}

	if err := s.history.Prepend(payment); err != nil {
		return nil, err
	}
	if _, err := s.catalog.ClearQuantities(); err != nil {
		// The payment is already in the history; the stores have diverged
		// and the caller has to surface that.
		s.logger.Error("Payment recorded but cart reset failed",
			zap.String("payment_id", payment.ID),
			zap.Error(err))
		return &payment, err
	}

	s.logger.Info("Payment recorded",
		zap.String("payment_id", payment.ID),
		zap.String("date", payment.Date),
		zap.Int("items", len(payment.Items)),
		zap.Float64("total", payment.Total))
	return &payment, nil
}

// formatDate renders a calendar date as M/D/YYYY without zero padding.
func formatDate(t time.Time) string {
	return t.Format("1/2/2006")
}

// formatTime renders a time of day the way the history displays it: the
// 24-hour hour, a zero-padded minute and a lower-case am/pm suffix.
func formatTime(t time.Time) string {
	period := "am"
	if t.Hour() >= 12 {
		period = "pm"
	}
	return fmt.Sprintf("%d:%02d %s", t.Hour(), t.Minute(), period)
}

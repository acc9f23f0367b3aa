package service

import (
	"fmt"
	"testing"
	"time"

	"pos-service/internal/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type testServices struct {
	kv       *store.MemoryKV
	catalog  *CatalogService
	history  *HistoryService
	settings *SettingsService
	payments *PaymentService
	clock    *fakeClock
}

type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time { return c.now }

func newTestServices(t *testing.T) *testServices {
	t.Helper()
	kv := store.NewMemoryKV()
	log := zap.NewNop()

	catalog, err := NewCatalogService(store.NewCatalogStore(kv), log)
	require.NoError(t, err)
	catalog.WithIDGenerator(sequentialIDs())

	history, err := NewHistoryService(store.NewHistoryStore(kv), log)
	require.NoError(t, err)

	settings, err := NewSettingsService(store.NewSettingsStore(kv), log)
	require.NoError(t, err)

	clock := &fakeClock{now: time.Date(2026, 6, 1, 10, 5, 0, 0, time.UTC)}
	n := 0
	payments := NewPaymentService(catalog, history, settings, log).
		WithClock(clock.Now).
		WithIDGenerator(func() string {
			n++
			return fmt.Sprintf("pay-%d", n)
		})

	return &testServices{
		kv:       kv,
		catalog:  catalog,
		history:  history,
		settings: settings,
		payments: payments,
		clock:    clock,
	}
}

func TestRecordPaymentScenario(t *testing.T) {
	ts := newTestServices(t)
	require.NoError(t, ts.settings.SetTaxRate(10))

	// Increment "1 key chain" twice.
	_, err := ts.catalog.AdjustQuantity("1", "1-1", 1)
	require.NoError(t, err)
	_, err = ts.catalog.AdjustQuantity("1", "1-1", 1)
	require.NoError(t, err)

	payment, err := ts.payments.RecordPayment(true)
	require.NoError(t, err)

	assert.Equal(t, "pay-1", payment.ID)
	assert.Equal(t, "6/1/2026", payment.Date)
	assert.Equal(t, "10:05 am", payment.Timestamp)
	require.Len(t, payment.Items, 1)
	assert.Equal(t, "1 key chain", payment.Items[0].ProductName)
	assert.Equal(t, "Keychains", payment.Items[0].GroupName)
	assert.Equal(t, 2, payment.Items[0].Quantity)
	assert.Equal(t, 4.0, payment.Items[0].Price)

	require.NotNil(t, payment.Subtotal)
	assert.InDelta(t, 8.0, *payment.Subtotal, 1e-9)
	require.NotNil(t, payment.Tax)
	assert.InDelta(t, 0.8, *payment.Tax, 1e-9)
	require.NotNil(t, payment.TaxRate)
	assert.Equal(t, 10.0, *payment.TaxRate)
	assert.True(t, payment.IncludeTax)
	assert.InDelta(t, 8.8, payment.Total, 1e-9)
}

func TestRecordPaymentResetsQuantities(t *testing.T) {
	ts := newTestServices(t)

	_, err := ts.catalog.AdjustQuantity("1", "1-1", 3)
	require.NoError(t, err)
	_, err = ts.catalog.AdjustQuantity("2", "2-2", 1)
	require.NoError(t, err)

	_, err = ts.payments.RecordPayment(false)
	require.NoError(t, err)

	for _, g := range ts.catalog.Catalog() {
		for _, p := range g.Products {
			assert.Zero(t, p.Quantity)
		}
	}
}

func TestRecordPaymentWithoutTaxOmitsTaxFields(t *testing.T) {
	ts := newTestServices(t)

	_, err := ts.catalog.AdjustQuantity("1", "1-1", 1)
	require.NoError(t, err)

	payment, err := ts.payments.RecordPayment(false)
	require.NoError(t, err)

	assert.Nil(t, payment.Tax)
	assert.Nil(t, payment.TaxRate)
	assert.False(t, payment.IncludeTax)
	assert.InDelta(t, 4.0, payment.Total, 1e-9)
}

func TestRecordPaymentEmptyCartIsRejected(t *testing.T) {
	ts := newTestServices(t)

	payment, err := ts.payments.RecordPayment(true)
	assert.ErrorIs(t, err, ErrEmptyOrder)
	assert.Nil(t, payment)
	assert.Empty(t, ts.history.List())
}

func TestRecordPaymentHistoryIsNewestFirst(t *testing.T) {
	ts := newTestServices(t)

	for i := 0; i < 3; i++ {
		_, err := ts.catalog.AdjustQuantity("1", "1-1", 1)
		require.NoError(t, err)
		_, err = ts.payments.RecordPayment(false)
		require.NoError(t, err)
		ts.clock.now = ts.clock.now.Add(time.Hour)
	}

	history := ts.history.List()
	require.Len(t, history, 3)
	assert.Equal(t, "pay-3", history[0].ID)
	assert.Equal(t, "pay-2", history[1].ID)
	assert.Equal(t, "pay-1", history[2].ID)
}

func TestRecordPaymentPreservesEventNameForDay(t *testing.T) {
	ts := newTestServices(t)

	_, err := ts.catalog.AdjustQuantity("1", "1-1", 1)
	require.NoError(t, err)
	_, err = ts.payments.RecordPayment(false)
	require.NoError(t, err)

	_, err = ts.history.SetEventName("6/1/2026", "Art fair")
	require.NoError(t, err)

	// A later payment on the same day inherits the event name.
	_, err = ts.catalog.AdjustQuantity("2", "2-1", 1)
	require.NoError(t, err)
	payment, err := ts.payments.RecordPayment(false)
	require.NoError(t, err)
	assert.Equal(t, "Art fair", payment.EventName)

	// A payment the next day does not.
	ts.clock.now = ts.clock.now.Add(24 * time.Hour)
	_, err = ts.catalog.AdjustQuantity("3", "3-1", 1)
	require.NoError(t, err)
	payment, err = ts.payments.RecordPayment(false)
	require.NoError(t, err)
	assert.Equal(t, "", payment.EventName)
}

func TestRecordPaymentTimestampFormat(t *testing.T) {
	ts := newTestServices(t)

	for _, tc := range []struct {
		hour, minute int
		want         string
	}{
		{0, 5, "0:05 am"},
		{9, 30, "9:30 am"},
		{12, 0, "12:00 pm"},
		{14, 5, "14:05 pm"},
		{23, 59, "23:59 pm"},
	} {
		ts.clock.now = time.Date(2026, 6, 1, tc.hour, tc.minute, 0, 0, time.UTC)
		_, err := ts.catalog.AdjustQuantity("1", "1-1", 1)
		require.NoError(t, err)
		payment, err := ts.payments.RecordPayment(false)
		require.NoError(t, err)
		assert.Equal(t, tc.want, payment.Timestamp)
	}
}

func TestRecordPaymentCatalogResetFailureDiverges(t *testing.T) {
	kv := store.NewMemoryKV()
	log := zap.NewNop()

	// Catalog writes fail once the order is in the cart, history writes
	// succeed: the documented consistency gap between the two stores.
	failing := &failingKV{KV: kv}
	catalog, err := NewCatalogService(store.NewCatalogStore(failing), log)
	require.NoError(t, err)
	history, err := NewHistoryService(store.NewHistoryStore(kv), log)
	require.NoError(t, err)
	settings, err := NewSettingsService(store.NewSettingsStore(kv), log)
	require.NoError(t, err)

	_, err = catalog.AdjustQuantity("1", "1-1", 2)
	require.NoError(t, err)

	payments := NewPaymentService(catalog, history, settings, log)

	failing.failNext = true
	payment, err := payments.RecordPayment(false)

	// The payment reached the history even though the cart reset failed.
	require.Error(t, err)
	require.NotNil(t, payment)
	require.Len(t, history.List(), 1)
	assert.Equal(t, payment.ID, history.List()[0].ID)

	// The persisted catalog still carries the old quantities.
	reloaded, err := NewCatalogService(store.NewCatalogStore(kv), log)
	require.NoError(t, err)
	assert.Equal(t, 2, reloaded.Catalog()[0].Products[0].Quantity)
}

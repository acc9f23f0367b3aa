package service

import (
	"fmt"
	"testing"

	"pos-service/internal/model"
	"pos-service/internal/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func sequentialIDs() model.IDGenerator {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("id-%d", n)
	}
}

func newTestCatalogService(t *testing.T, kv store.KV) *CatalogService {
	t.Helper()
	svc, err := NewCatalogService(store.NewCatalogStore(kv), zap.NewNop())
	require.NoError(t, err)
	return svc.WithIDGenerator(sequentialIDs())
}

func TestCatalogServiceLoadsDefaults(t *testing.T) {
	svc := newTestCatalogService(t, store.NewMemoryKV())

	catalog := svc.Catalog()
	require.Len(t, catalog, 3)
	assert.Equal(t, "Keychains", catalog[0].Name)
}

func TestCatalogServicePersistsEveryMutation(t *testing.T) {
	kv := store.NewMemoryKV()
	svc := newTestCatalogService(t, kv)

	_, ok, err := svc.AddGroup("Prints", "")
	require.NoError(t, err)
	require.True(t, ok)

	// A fresh service over the same store sees the mutation.
	reloaded := newTestCatalogService(t, kv)
	assert.Len(t, reloaded.Catalog(), 4)
}

func TestCatalogServiceRejectsEmptyGroupName(t *testing.T) {
	svc := newTestCatalogService(t, store.NewMemoryKV())

	catalog, ok, err := svc.AddGroup("   ", "")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Len(t, catalog, 3)
}

func TestCatalogServiceReturnsDisplayOrder(t *testing.T) {
	svc := newTestCatalogService(t, store.NewMemoryKV())

	_, err := svc.ReorderGroup("3", "1")
	require.NoError(t, err)

	catalog := svc.Catalog()
	assert.Equal(t, "Magnets", catalog[0].Name)
	assert.Equal(t, 0, catalog[0].Order)
}

func TestCatalogServiceFailedPersistKeepsState(t *testing.T) {
	kv := &failingKV{KV: store.NewMemoryKV()}
	svc := newTestCatalogService(t, kv)

	kv.failNext = true
	_, _, err := svc.AddGroup("Prints", "")
	require.Error(t, err)

	// The in-memory state was not swapped in.
	assert.Len(t, svc.Catalog(), 3)
}

// failingKV fails Set calls while failNext is on.
type failingKV struct {
	store.KV
	failNext bool
}

func (f *failingKV) Set(key, value string) error {
	if f.failNext {
		return fmt.Errorf("store unavailable")
	}
	return f.KV.Set(key, value)
}

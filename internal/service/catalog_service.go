package service

import (
	"sync"

	"pos-service/internal/model"
	"pos-service/internal/store"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// CatalogService owns the loaded catalog. Every command applies a pure
// model transformation and persists the full catalog before the new state
// becomes visible; a failed persist leaves the previous state in place.
type CatalogService struct {
	mu      sync.Mutex
	store   *store.CatalogStore
	catalog model.Catalog
	gen     model.IDGenerator
	logger  *zap.Logger
}

// NewCatalogService loads the catalog from the store (falling back to the
// built-in defaults) and returns a service ready to accept commands.
func NewCatalogService(st *store.CatalogStore, log *zap.Logger) (*CatalogService, error) {
	catalog, err := st.Load()
	if err != nil {
		return nil, err
	}
	return &CatalogService{
		store:   st,
		catalog: catalog,
		gen:     uuid.NewString,
		logger:  log,
	}, nil
}

// WithIDGenerator overrides the id source, used in tests to make new ids
// deterministic.
func (s *CatalogService) WithIDGenerator(gen model.IDGenerator) *CatalogService {
	s.gen = gen
	return s
}

// Catalog returns a snapshot of the current catalog in display order.
func (s *CatalogService) Catalog() model.Catalog {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.catalog.Sorted()
}

// AddGroup appends a new group. Reports false for empty names.
func (s *CatalogService) AddGroup(name, color string) (model.Catalog, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	next, ok := s.catalog.AddGroup(name, color, s.gen)
	if !ok {
		return s.catalog.Sorted(), false, nil
	}
	return s.commit(next, true)
}

// RenameGroup updates a group's name and color. Reports false for empty
// names or unknown ids.
func (s *CatalogService) RenameGroup(id, name, color string) (model.Catalog, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	next, ok := s.catalog.RenameGroup(id, name, color)
	if !ok {
		return s.catalog.Sorted(), false, nil
	}
	return s.commit(next, true)
}

// DeleteGroup removes a group.
func (s *CatalogService) DeleteGroup(id string) (model.Catalog, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	catalog, _, err := s.commit(s.catalog.DeleteGroup(id), true)
	return catalog, err
}

// ReorderGroup moves a group to the target group's display position.
func (s *CatalogService) ReorderGroup(movedID, targetID string) (model.Catalog, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	catalog, _, err := s.commit(s.catalog.ReorderGroup(movedID, targetID), true)
	return catalog, err
}

// SetGroupOpen updates a group's expansion state.
func (s *CatalogService) SetGroupOpen(id string, open bool) (model.Catalog, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	catalog, _, err := s.commit(s.catalog.SetGroupOpen(id, open), true)
	return catalog, err
}

// AddProduct appends a placeholder product to a group.
func (s *CatalogService) AddProduct(groupID string) (model.Catalog, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	catalog, _, err := s.commit(s.catalog.AddProduct(groupID, s.gen), true)
	return catalog, err
}

// RenameProduct updates a product's name.
func (s *CatalogService) RenameProduct(groupID, productID, name string) (model.Catalog, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	catalog, _, err := s.commit(s.catalog.RenameProduct(groupID, productID, name), true)
	return catalog, err
}

// SetProductPrice updates a product's unit price.
func (s *CatalogService) SetProductPrice(groupID, productID string, price float64) (model.Catalog, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	catalog, _, err := s.commit(s.catalog.SetProductPrice(groupID, productID, price), true)
	return catalog, err
}

// DeleteProduct removes a product from its group.
func (s *CatalogService) DeleteProduct(groupID, productID string) (model.Catalog, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	catalog, _, err := s.commit(s.catalog.DeleteProduct(groupID, productID), true)
	return catalog, err
}

// MoveProduct repositions a product within or across groups.
func (s *CatalogService) MoveProduct(sourceGroupID, sourceProductID, targetGroupID, targetProductID string) (model.Catalog, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	next := s.catalog.MoveProduct(sourceGroupID, sourceProductID, targetGroupID, targetProductID, s.gen)
	catalog, _, err := s.commit(next, true)
	return catalog, err
}

// AdjustQuantity applies a delta to a product's cart quantity, clamped at
// zero.
func (s *CatalogService) AdjustQuantity(groupID, productID string, delta int) (model.Catalog, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	catalog, _, err := s.commit(s.catalog.AdjustQuantity(groupID, productID, delta), true)
	return catalog, err
}

// ClearQuantities resets every cart quantity to zero.
func (s *CatalogService) ClearQuantities() (model.Catalog, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	catalog, _, err := s.commit(s.catalog.ClearQuantities(), true)
	return catalog, err
}

// AddCustomItem adds an ad hoc item to the custom items group. Reports
// false when the name, price or quantity is invalid.
func (s *CatalogService) AddCustomItem(name string, price float64, quantity int) (model.Catalog, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	next, ok := s.catalog.AddCustomItem(name, price, quantity, s.gen)
	if !ok {
		return s.catalog.Sorted(), false, nil
	}
	return s.commit(next, true)
}

// commit persists the next catalog state and swaps it in. The caller must
// hold the mutex.
func (s *CatalogService) commit(next model.Catalog, ok bool) (model.Catalog, bool, error) {
	if err := s.store.Save(next); err != nil {
		s.logger.Error("Failed to persist catalog", zap.Error(err))
		return s.catalog.Sorted(), false, err
	}
	s.catalog = next
	return next.Sorted(), ok, nil
}

package store

import (
	"encoding/json"

	"pos-service/internal/model"
)

// CatalogStore persists the catalog as a JSON array under the catalog key.
type CatalogStore struct {
	kv KV
}

// NewCatalogStore creates a catalog store over the given key-value store.
func NewCatalogStore(kv KV) *CatalogStore {
	return &CatalogStore{kv: kv}
}

// persistedGroup mirrors model.ProductGroup with an optional order field so
// records written before the order field existed can be detected on load.
type persistedGroup struct {
	ID       string          `json:"id"`
	Name     string          `json:"name"`
	Products []model.Product `json:"products"`
	IsOpen   bool            `json:"isOpen"`
	Order    *int            `json:"order"`
	Color    string          `json:"color,omitempty"`
}

// Load reads the catalog. When the key is absent or holds malformed JSON
// the built-in default catalog is returned and persisted immediately.
// Groups missing an order value are assigned their array index.
func (s *CatalogStore) Load() (model.Catalog, error) {
	raw, ok, err := s.kv.Get(CatalogKey)
	if err != nil {
		return nil, err
	}
	if !ok {
		return s.reset()
	}

	var persisted []persistedGroup
	if err := json.Unmarshal([]byte(raw), &persisted); err != nil {
		return s.reset()
	}

	catalog := make(model.Catalog, len(persisted))
	for i, g := range persisted {
		order := i
		if g.Order != nil {
			order = *g.Order
		}
		products := g.Products
		if products == nil {
			products = []model.Product{}
		}
		catalog[i] = model.ProductGroup{
			ID:       g.ID,
			Name:     g.Name,
			Products: products,
			IsOpen:   g.IsOpen,
			Order:    order,
			Color:    g.Color,
		}
	}
	return catalog, nil
}

// Save overwrites the persisted catalog with the given value.
func (s *CatalogStore) Save(catalog model.Catalog) error {
	raw, err := json.Marshal(catalog)
	if err != nil {
		return err
	}
	return s.kv.Set(CatalogKey, string(raw))
}

func (s *CatalogStore) reset() (model.Catalog, error) {
	catalog := model.DefaultCatalog()
	if err := s.Save(catalog); err != nil {
		return nil, err
	}
	return catalog, nil
}

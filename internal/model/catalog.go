package model

import (
	"sort"
	"strings"
)

// CustomGroupName is the group that collects ad hoc items added at the till.
const CustomGroupName = "Custom Items"

// IDGenerator produces unique identifiers for new groups and products.
type IDGenerator func() string

// Product is a sellable item inside a group. Quantity is the transient
// cart state and is reset to zero when a payment is recorded.
type Product struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	Quantity int     `json:"quantity"`
}

// ProductGroup is an ordered collection of products. Order is the display
// rank; IsOpen is the persisted expansion state of the group.
type ProductGroup struct {
	ID       string    `json:"id"`
	Name     string    `json:"name"`
	Products []Product `json:"products"`
	IsOpen   bool      `json:"isOpen"`
	Order    int       `json:"order"`
	Color    string    `json:"color,omitempty"`
}

// Catalog is the full set of product groups.
type Catalog []ProductGroup

// DefaultCatalog returns the built-in starter catalog used when nothing
// has been persisted yet.
func DefaultCatalog() Catalog {
	return Catalog{
		{
			ID:     "1",
			Name:   "Keychains",
			IsOpen: true,
			Order:  0,
			Products: []Product{
				{ID: "1-1", Name: "1 key chain", Price: 4.0},
				{ID: "1-2", Name: "3 key chains", Price: 10.0},
				{ID: "1-3", Name: "5 key chains", Price: 15.0},
			},
		},
		{
			ID:     "2",
			Name:   "Stickers",
			IsOpen: true,
			Order:  1,
			Products: []Product{
				{ID: "2-1", Name: "1 sticker", Price: 4.0},
				{ID: "2-2", Name: "3 stickers", Price: 10.0},
			},
		},
		{
			ID:     "3",
			Name:   "Magnets",
			IsOpen: false,
			Order:  2,
			Products: []Product{
				{ID: "3-1", Name: "1 magnet", Price: 5.0},
			},
		},
	}
}

// Clone returns a deep copy of the catalog. Every command operates on a
// clone so callers never alias the previous state.
func (c Catalog) Clone() Catalog {
	out := make(Catalog, len(c))
	for i, g := range c {
		out[i] = g
		out[i].Products = make([]Product, len(g.Products))
		copy(out[i].Products, g.Products)
	}
	return out
}

// Sorted returns the groups in display order. The sort is stable so groups
// with equal order values keep their insertion order.
func (c Catalog) Sorted() Catalog {
	out := c.Clone()
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Order < out[j].Order
	})
	return out
}

// AddGroup appends a new empty group. Names that trim to empty are
// rejected and the catalog is returned unchanged.
func (c Catalog) AddGroup(name, color string, gen IDGenerator) (Catalog, bool) {
	if strings.TrimSpace(name) == "" {
		return c, false
	}
	out := c.Clone()
	out = append(out, ProductGroup{
		ID:       gen(),
		Name:     name,
		Products: []Product{},
		IsOpen:   true,
		Order:    len(c),
		Color:    color,
	})
	return out, true
}

// RenameGroup updates the name and color of a group, leaving its products
// and order untouched. Names that trim to empty are rejected.
func (c Catalog) RenameGroup(id, name, color string) (Catalog, bool) {
	if strings.TrimSpace(name) == "" {
		return c, false
	}
	out := c.Clone()
	for i := range out {
		if out[i].ID == id {
			out[i].Name = name
			out[i].Color = color
			return out, true
		}
	}
	return c, false
}

// DeleteGroup removes a group. Remaining order values are not renumbered.
func (c Catalog) DeleteGroup(id string) Catalog {
	out := make(Catalog, 0, len(c))
	for _, g := range c.Clone() {
		if g.ID != id {
			out = append(out, g)
		}
	}
	return out
}

// ReorderGroup moves a group to the position currently held by the target
// group (positions taken in ascending order) and renumbers every group's
// order 0..N-1 by its new sequence position.
func (c Catalog) ReorderGroup(movedID, targetID string) Catalog {
	if movedID == targetID {
		return c
	}
	sorted := c.Sorted()
	sourceIndex, targetIndex := -1, -1
	for i, g := range sorted {
		if g.ID == movedID {
			sourceIndex = i
		}
		if g.ID == targetID {
			targetIndex = i
		}
	}
	if sourceIndex < 0 || targetIndex < 0 {
		return c
	}

	moved := sorted[sourceIndex]
	sorted = append(sorted[:sourceIndex], sorted[sourceIndex+1:]...)
	sorted = append(sorted[:targetIndex], append(Catalog{moved}, sorted[targetIndex:]...)...)

	for i := range sorted {
		sorted[i].Order = i
	}
	return sorted
}

// SetGroupOpen updates the persisted expansion state of a group.
func (c Catalog) SetGroupOpen(id string, open bool) Catalog {
	out := c.Clone()
	for i := range out {
		if out[i].ID == id {
			out[i].IsOpen = open
		}
	}
	return out
}

// AddProduct appends a placeholder product to a group. The new product id
// is scoped to the group.
func (c Catalog) AddProduct(groupID string, gen IDGenerator) Catalog {
	out := c.Clone()
	for i := range out {
		if out[i].ID == groupID {
			out[i].Products = append(out[i].Products, Product{
				ID:   groupID + "-" + gen(),
				Name: "New product",
			})
		}
	}
	return out
}

// RenameProduct updates a product's name in place.
func (c Catalog) RenameProduct(groupID, productID, name string) Catalog {
	out := c.Clone()
	for i := range out {
		if out[i].ID != groupID {
			continue
		}
		for j := range out[i].Products {
			if out[i].Products[j].ID == productID {
				out[i].Products[j].Name = name
			}
		}
	}
	return out
}

// SetProductPrice updates a product's unit price in place.
func (c Catalog) SetProductPrice(groupID, productID string, price float64) Catalog {
	out := c.Clone()
	for i := range out {
		if out[i].ID != groupID {
			continue
		}
		for j := range out[i].Products {
			if out[i].Products[j].ID == productID {
				out[i].Products[j].Price = price
			}
		}
	}
	return out
}

// DeleteProduct removes a product from its group.
func (c Catalog) DeleteProduct(groupID, productID string) Catalog {
	out := c.Clone()
	for i := range out {
		if out[i].ID != groupID {
			continue
		}
		products := make([]Product, 0, len(out[i].Products))
		for _, p := range out[i].Products {
			if p.ID != productID {
				products = append(products, p)
			}
		}
		out[i].Products = products
	}
	return out
}

// MoveProduct repositions a product. Within one group the product is
// inserted at the target product's index. Across groups the product is
// removed from the source, given a new id scoped to the target group, and
// inserted immediately after the target product. Unknown ids are a no-op.
func (c Catalog) MoveProduct(sourceGroupID, sourceProductID, targetGroupID, targetProductID string, gen IDGenerator) Catalog {
	if sourceGroupID == targetGroupID && sourceProductID == targetProductID {
		return c
	}
	out := c.Clone()

	sourceGroup := out.findGroup(sourceGroupID)
	targetGroup := out.findGroup(targetGroupID)
	if sourceGroup == nil || targetGroup == nil {
		return c
	}

	sourceIndex := indexOfProduct(sourceGroup.Products, sourceProductID)
	targetIndex := indexOfProduct(targetGroup.Products, targetProductID)
	if sourceIndex < 0 || targetIndex < 0 {
		return c
	}

	if sourceGroupID == targetGroupID {
		products := sourceGroup.Products
		moved := products[sourceIndex]
		products = append(products[:sourceIndex], products[sourceIndex+1:]...)
		products = append(products[:targetIndex], append([]Product{moved}, products[targetIndex:]...)...)
		sourceGroup.Products = products
		return out
	}

	moved := sourceGroup.Products[sourceIndex]
	moved.ID = targetGroupID + "-" + gen()
	sourceGroup.Products = append(sourceGroup.Products[:sourceIndex], sourceGroup.Products[sourceIndex+1:]...)

	insertAt := targetIndex + 1
	products := targetGroup.Products
	products = append(products[:insertAt], append([]Product{moved}, products[insertAt:]...)...)
	targetGroup.Products = products
	return out
}

// AdjustQuantity applies a delta to a product's cart quantity, clamping
// the result at zero.
func (c Catalog) AdjustQuantity(groupID, productID string, delta int) Catalog {
	out := c.Clone()
	for i := range out {
		if out[i].ID != groupID {
			continue
		}
		for j := range out[i].Products {
			if out[i].Products[j].ID == productID {
				q := out[i].Products[j].Quantity + delta
				if q < 0 {
					q = 0
				}
				out[i].Products[j].Quantity = q
			}
		}
	}
	return out
}

// ClearQuantities resets every product's cart quantity to zero.
func (c Catalog) ClearQuantities() Catalog {
	out := c.Clone()
	for i := range out {
		for j := range out[i].Products {
			out[i].Products[j].Quantity = 0
		}
	}
	return out
}

// AddCustomItem adds an ad hoc item to the custom items group, creating
// the group when it does not exist yet. Blank names and non-positive
// prices or quantities are rejected.
func (c Catalog) AddCustomItem(name string, price float64, quantity int, gen IDGenerator) (Catalog, bool) {
	if strings.TrimSpace(name) == "" || price <= 0 || quantity <= 0 {
		return c, false
	}
	out := c.Clone()
	group := out.findGroupByName(CustomGroupName)
	if group == nil {
		out = append(out, ProductGroup{
			ID:       gen(),
			Name:     CustomGroupName,
			Products: []Product{},
			IsOpen:   true,
			Order:    len(out),
		})
		group = &out[len(out)-1]
	}
	group.Products = append(group.Products, Product{
		ID:       group.ID + "-" + gen(),
		Name:     name,
		Price:    price,
		Quantity: quantity,
	})
	return out, true
}

func (c Catalog) findGroup(id string) *ProductGroup {
	for i := range c {
		if c[i].ID == id {
			return &c[i]
		}
	}
	return nil
}

func (c Catalog) findGroupByName(name string) *ProductGroup {
	for i := range c {
		if c[i].Name == name {
			return &c[i]
		}
	}
	return nil
}

func indexOfProduct(products []Product, id string) int {
	for i, p := range products {
		if p.ID == id {
			return i
		}
	}
	return -1
}

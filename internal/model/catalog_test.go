package model

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// sequentialIDs returns a generator yielding "id-1", "id-2", ...
func sequentialIDs() IDGenerator {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("id-%d", n)
	}
}

func TestAddGroupRejectsEmptyName(t *testing.T) {
	catalog := DefaultCatalog()

	for _, name := range []string{"", "   ", "\t\n"} {
		next, ok := catalog.AddGroup(name, "", sequentialIDs())
		assert.False(t, ok)
		assert.Equal(t, catalog, next)
	}
}

func TestAddGroupAppendsWithNextOrder(t *testing.T) {
	catalog := DefaultCatalog()

	next, ok := catalog.AddGroup("Prints", "#ff6b81", sequentialIDs())
	require.True(t, ok)
	require.Len(t, next, 4)

	added := next[3]
	assert.Equal(t, "id-1", added.ID)
	assert.Equal(t, "Prints", added.Name)
	assert.Equal(t, "#ff6b81", added.Color)
	assert.Equal(t, 3, added.Order)
	assert.True(t, added.IsOpen)
	assert.Empty(t, added.Products)

	// The previous value is untouched.
	assert.Len(t, catalog, 3)
}

func TestRenameGroup(t *testing.T) {
	catalog := DefaultCatalog()

	next, ok := catalog.RenameGroup("1", "Key rings", "#64b5f6")
	require.True(t, ok)
	assert.Equal(t, "Key rings", next[0].Name)
	assert.Equal(t, "#64b5f6", next[0].Color)
	assert.Equal(t, catalog[0].Products, next[0].Products)
	assert.Equal(t, 0, next[0].Order)

	_, ok = catalog.RenameGroup("1", "  ", "")
	assert.False(t, ok)

	_, ok = catalog.RenameGroup("missing", "Name", "")
	assert.False(t, ok)
}

func TestDeleteGroupKeepsOrderValues(t *testing.T) {
	catalog := DefaultCatalog()

	next := catalog.DeleteGroup("2")
	require.Len(t, next, 2)
	assert.Equal(t, "1", next[0].ID)
	assert.Equal(t, "3", next[1].ID)
	// Remaining order values are not renumbered.
	assert.Equal(t, 0, next[0].Order)
	assert.Equal(t, 2, next[1].Order)
}

func TestReorderGroupRenumbers(t *testing.T) {
	catalog := DefaultCatalog()

	next := catalog.ReorderGroup("3", "1")
	require.Len(t, next, 3)
	assert.Equal(t, []string{"3", "1", "2"}, groupIDs(next.Sorted()))
	for i, g := range next.Sorted() {
		assert.Equal(t, i, g.Order)
	}
}

func TestReorderGroupToOwnPositionIsIdempotent(t *testing.T) {
	catalog := DefaultCatalog()

	next := catalog.ReorderGroup("2", "2")
	assert.Equal(t, catalog, next)

	next = catalog.ReorderGroup("2", "missing")
	assert.Equal(t, catalog, next)

	next = catalog.ReorderGroup("missing", "2")
	assert.Equal(t, catalog, next)
}

func TestAddProductDefaults(t *testing.T) {
	catalog := DefaultCatalog()

	next := catalog.AddProduct("2", sequentialIDs())
	group := next.findGroup("2")
	require.NotNil(t, group)
	require.Len(t, group.Products, 3)

	added := group.Products[2]
	assert.Equal(t, "2-id-1", added.ID)
	assert.Equal(t, "New product", added.Name)
	assert.Zero(t, added.Price)
	assert.Zero(t, added.Quantity)
}

func TestRenameAndRepriceProduct(t *testing.T) {
	catalog := DefaultCatalog()

	next := catalog.RenameProduct("1", "1-1", "single key chain")
	next = next.SetProductPrice("1", "1-1", 4.5)

	p := next.findGroup("1").Products[0]
	assert.Equal(t, "single key chain", p.Name)
	assert.Equal(t, 4.5, p.Price)
}

func TestDeleteProduct(t *testing.T) {
	catalog := DefaultCatalog()

	next := catalog.DeleteProduct("1", "1-2")
	group := next.findGroup("1")
	require.Len(t, group.Products, 2)
	assert.Equal(t, "1-1", group.Products[0].ID)
	assert.Equal(t, "1-3", group.Products[1].ID)
}

func TestMoveProductWithinGroup(t *testing.T) {
	catalog := DefaultCatalog()

	next := catalog.MoveProduct("1", "1-3", "1", "1-1", sequentialIDs())
	group := next.findGroup("1")
	assert.Equal(t, []string{"1-3", "1-1", "1-2"}, productIDs(group.Products))
}

func TestMoveProductAcrossGroups(t *testing.T) {
	catalog := DefaultCatalog()

	next := catalog.MoveProduct("1", "1-2", "2", "2-1", sequentialIDs())

	source := next.findGroup("1")
	assert.Equal(t, []string{"1-1", "1-3"}, productIDs(source.Products))

	target := next.findGroup("2")
	require.Len(t, target.Products, 3)
	// Inserted immediately after the target product, with a new id scoped
	// to the target group.
	assert.Equal(t, "2-1", target.Products[0].ID)
	assert.Equal(t, "2-id-1", target.Products[1].ID)
	assert.Equal(t, "3 key chains", target.Products[1].Name)
	assert.Equal(t, "2-2", target.Products[2].ID)
}

func TestMoveProductNoOpCases(t *testing.T) {
	catalog := DefaultCatalog()
	empty, ok := catalog.AddGroup("Empty", "", sequentialIDs())
	require.True(t, ok)

	// Target group has no products.
	next := empty.MoveProduct("1", "1-1", "id-1", "anything", sequentialIDs())
	assert.Equal(t, empty, next)

	// Target product not found.
	next = catalog.MoveProduct("1", "1-1", "2", "missing", sequentialIDs())
	assert.Equal(t, catalog, next)

	// Same product as source and target.
	next = catalog.MoveProduct("1", "1-1", "1", "1-1", sequentialIDs())
	assert.Equal(t, catalog, next)
}

func TestAdjustQuantityClampsAtZero(t *testing.T) {
	catalog := DefaultCatalog()

	next := catalog.AdjustQuantity("1", "1-1", 1)
	next = next.AdjustQuantity("1", "1-1", 1)
	assert.Equal(t, 2, next.findGroup("1").Products[0].Quantity)

	// Any sequence of decrements never drops below zero.
	for i := 0; i < 10; i++ {
		next = next.AdjustQuantity("1", "1-1", -1)
	}
	assert.Equal(t, 0, next.findGroup("1").Products[0].Quantity)
}

func TestClearQuantities(t *testing.T) {
	catalog := DefaultCatalog()
	catalog = catalog.AdjustQuantity("1", "1-1", 3)
	catalog = catalog.AdjustQuantity("2", "2-2", 5)

	next := catalog.ClearQuantities()
	for _, g := range next {
		for _, p := range g.Products {
			assert.Zero(t, p.Quantity)
		}
	}
}

func TestAddCustomItemCreatesGroupOnce(t *testing.T) {
	catalog := DefaultCatalog()
	gen := sequentialIDs()

	next, ok := catalog.AddCustomItem("Commission", 20, 1, gen)
	require.True(t, ok)
	require.Len(t, next, 4)

	group := next.findGroupByName(CustomGroupName)
	require.NotNil(t, group)
	assert.Equal(t, 3, group.Order)
	require.Len(t, group.Products, 1)
	assert.Equal(t, 20.0, group.Products[0].Price)
	assert.Equal(t, 1, group.Products[0].Quantity)

	// A second custom item reuses the existing group.
	next, ok = next.AddCustomItem("Sketch", 5, 2, gen)
	require.True(t, ok)
	require.Len(t, next, 4)
	assert.Len(t, next.findGroupByName(CustomGroupName).Products, 2)
}

func TestAddCustomItemRejectsInvalidInput(t *testing.T) {
	catalog := DefaultCatalog()
	gen := sequentialIDs()

	for _, tc := range []struct {
		name     string
		price    float64
		quantity int
	}{
		{"", 5, 1},
		{"  ", 5, 1},
		{"Thing", 0, 1},
		{"Thing", -1, 1},
		{"Thing", 5, 0},
	} {
		next, ok := catalog.AddCustomItem(tc.name, tc.price, tc.quantity, gen)
		assert.False(t, ok)
		assert.Equal(t, catalog, next)
	}
}

func TestCloneDoesNotAlias(t *testing.T) {
	catalog := DefaultCatalog()
	clone := catalog.Clone()

	clone[0].Name = "changed"
	clone[0].Products[0].Quantity = 99

	assert.Equal(t, "Keychains", catalog[0].Name)
	assert.Zero(t, catalog[0].Products[0].Quantity)
}

func TestSetGroupOpen(t *testing.T) {
	catalog := DefaultCatalog()

	next := catalog.SetGroupOpen("3", true)
	assert.True(t, next.findGroup("3").IsOpen)
	assert.False(t, catalog.findGroup("3").IsOpen)
}

func groupIDs(c Catalog) []string {
	ids := make([]string, len(c))
	for i, g := range c {
		ids[i] = g.ID
	}
	return ids
}

func productIDs(products []Product) []string {
	ids := make([]string, len(products))
	for i, p := range products {
		ids[i] = p.ID
	}
	return ids
}

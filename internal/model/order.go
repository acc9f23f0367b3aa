package model

// OrderSummary holds the derived totals for the current cart.
type OrderSummary struct {
	Subtotal   float64 `json:"subtotal"`
	TaxRate    float64 `json:"tax_rate"`
	TaxAmount  float64 `json:"tax_amount"`
	IncludeTax bool    `json:"include_tax"`
	Total      float64 `json:"total"`
}

// OrderLine is one cart position with a quantity above zero, used when
// reviewing an order before it is recorded.
type OrderLine struct {
	ProductName string  `json:"product_name"`
	GroupName   string  `json:"group_name"`
	GroupColor  string  `json:"group_color,omitempty"`
	Quantity    int     `json:"quantity"`
	Price       float64 `json:"price"`
	Total       float64 `json:"total"`
}

// Subtotal sums price times quantity over every product in the catalog.
func (c Catalog) Subtotal() float64 {
	var total float64
	for _, g := range c {
		for _, p := range g.Products {
			total += p.Price * float64(p.Quantity)
		}
	}
	return total
}

// Summarize derives subtotal, tax and total from the current catalog
// quantities and the given tax rate percentage. No rounding is applied;
// rounding to two decimals is a display concern.
func Summarize(c Catalog, taxRate float64, includeTax bool) OrderSummary {
	subtotal := c.Subtotal()
	tax := subtotal * taxRate / 100
	total := subtotal
	if includeTax {
		total += tax
	}
	return OrderSummary{
		Subtotal:   subtotal,
		TaxRate:    taxRate,
		TaxAmount:  tax,
		IncludeTax: includeTax,
		Total:      total,
	}
}

// OrderLines returns the cart positions with quantity above zero, in
// display order (group order, then product order within the group).
func (c Catalog) OrderLines() []OrderLine {
	lines := []OrderLine{}
	for _, g := range c.Sorted() {
		for _, p := range g.Products {
			if p.Quantity <= 0 {
				continue
			}
			lines = append(lines, OrderLine{
				ProductName: p.Name,
				GroupName:   g.Name,
				GroupColor:  g.Color,
				Quantity:    p.Quantity,
				Price:       p.Price,
				Total:       p.Price * float64(p.Quantity),
			})
		}
	}
	return lines
}

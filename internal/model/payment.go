package model

import "sort"

// PaymentItem is an immutable snapshot of one sold cart position. It keeps
// no reference back to the catalog: renaming or deleting a product later
// never alters a recorded item.
type PaymentItem struct {
	ProductName string  `json:"productName"`
	GroupName   string  `json:"groupName"`
	GroupColor  string  `json:"groupColor,omitempty"`
	Quantity    int     `json:"quantity"`
	Price       float64 `json:"price"`
}

// Payment is an immutable record of one completed sale. Only EventName may
// change afterwards, and by convention it is shared across every payment
// recorded on the same date. Subtotal, Tax and TaxRate are pointers because
// records persisted by older versions may lack them.
type Payment struct {
	ID         string        `json:"id"`
	Date       string        `json:"date"`
	EventName  string        `json:"eventName,omitempty"`
	Items      []PaymentItem `json:"items"`
	Subtotal   *float64      `json:"subtotal,omitempty"`
	Tax        *float64      `json:"tax,omitempty"`
	TaxRate    *float64      `json:"taxRate,omitempty"`
	IncludeTax bool          `json:"includeTax"`
	Total      float64       `json:"total"`
	Timestamp  string        `json:"timestamp"`
}

// History is the full sequence of payments, newest first.
type History []Payment

// ProductSales is the aggregated quantity sold for one product name on a
// given date.
type ProductSales struct {
	ProductName   string `json:"product_name"`
	TotalQuantity int    `json:"total_quantity"`
	GroupName     string `json:"group_name"`
	GroupColor    string `json:"group_color,omitempty"`
}

// PaymentItems snapshots every product with a quantity above zero, in
// display order. Returns nil when the cart is empty.
func (c Catalog) PaymentItems() []PaymentItem {
	var items []PaymentItem
	for _, g := range c.Sorted() {
		for _, p := range g.Products {
			if p.Quantity <= 0 {
				continue
			}
			items = append(items, PaymentItem{
				ProductName: p.Name,
				GroupName:   g.Name,
				GroupColor:  g.Color,
				Quantity:    p.Quantity,
				Price:       p.Price,
			})
		}
	}
	return items
}

// GroupByDate buckets payments by calendar date. Each bucket keeps its
// payments in history order (newest first). The returned date slice lists
// the dates in first-encounter order.
func (h History) GroupByDate() (map[string]History, []string) {
	buckets := make(map[string]History)
	var dates []string
	for _, p := range h {
		if _, ok := buckets[p.Date]; !ok {
			dates = append(dates, p.Date)
		}
		buckets[p.Date] = append(buckets[p.Date], p)
	}
	return buckets, dates
}

// EventNameForDate returns the event name of the most recently recorded
// payment on the date, or an empty string. A date's bucket head is
// canonical even if older payments carry a divergent stored name.
func (h History) EventNameForDate(date string) string {
	for _, p := range h {
		if p.Date == date {
			return p.EventName
		}
	}
	return ""
}

// TotalForDate sums the totals of every payment on the date.
func (h History) TotalForDate(date string) float64 {
	var total float64
	for _, p := range h {
		if p.Date == date {
			total += p.Total
		}
	}
	return total
}

// DailySummary aggregates the quantity sold per distinct product name
// across every payment on the date, sorted by quantity descending. Ties
// keep their first-encountered order.
func (h History) DailySummary(date string) []ProductSales {
	var summary []ProductSales
	index := make(map[string]int)
	for _, p := range h {
		if p.Date != date {
			continue
		}
		for _, item := range p.Items {
			if i, ok := index[item.ProductName]; ok {
				summary[i].TotalQuantity += item.Quantity
				continue
			}
			index[item.ProductName] = len(summary)
			summary = append(summary, ProductSales{
				ProductName:   item.ProductName,
				TotalQuantity: item.Quantity,
				GroupName:     item.GroupName,
				GroupColor:    item.GroupColor,
			})
		}
	}
	sort.SliceStable(summary, func(i, j int) bool {
		return summary[i].TotalQuantity > summary[j].TotalQuantity
	})
	return summary
}

// SetEventName sets the event name on every payment sharing the date.
func (h History) SetEventName(date, name string) History {
	out := h.Clone()
	for i := range out {
		if out[i].Date == date {
			out[i].EventName = name
		}
	}
	return out
}

// Delete removes the payment with the given id, leaving the rest intact.
func (h History) Delete(id string) History {
	out := make(History, 0, len(h))
	for _, p := range h.Clone() {
		if p.ID != id {
			out = append(out, p)
		}
	}
	return out
}

// Prepend inserts a payment at the head, keeping the history newest first.
func (h History) Prepend(p Payment) History {
	out := make(History, 0, len(h)+1)
	out = append(out, p)
	return append(out, h.Clone()...)
}

// Clone returns a deep copy of the history.
func (h History) Clone() History {
	out := make(History, len(h))
	for i, p := range h {
		out[i] = p
		out[i].Items = make([]PaymentItem, len(p.Items))
		copy(out[i].Items, p.Items)
		out[i].Subtotal = cloneFloat(p.Subtotal)
		out[i].Tax = cloneFloat(p.Tax)
		out[i].TaxRate = cloneFloat(p.TaxRate)
	}
	return out
}

func cloneFloat(v *float64) *float64 {
	if v == nil {
		return nil
	}
	f := *v
	return &f
}

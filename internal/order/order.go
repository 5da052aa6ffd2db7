// Package order keeps the items selected during a stay.
package order

import (
	"fmt"
	"slices"

	"github.com/hammamikhairi/staytab/internal/domain"
)

// Menu is the subset of the catalog the order needs for validation.
type Menu interface {
	Allows(cat domain.Category, price int) bool
}

// Order is a per-category multiset of unit prices. Alongside the item
// sequence it keeps a per-price count for display; every mutation updates
// both, so they cannot drift apart. Not safe for concurrent use; the
// engine serializes access.
type Order struct {
	menu   Menu
	items  map[domain.Category][]int
	counts map[domain.Category]map[int]int
}

// New creates an empty order validated against menu.
func New(menu Menu) *Order {
	o := &Order{menu: menu}
	o.Clear()
	return o
}

// Add appends one item. Prices that are not on the menu are rejected.
func (o *Order) Add(cat domain.Category, price int) error {
	if !o.menu.Allows(cat, price) {
		return fmt.Errorf("%w: %s %d", domain.ErrUnknownItem, cat, price)
	}
	o.items[cat] = append(o.items[cat], price)
	if o.counts[cat] == nil {
		o.counts[cat] = make(map[int]int)
	}
	o.counts[cat][price]++
	return nil
}

// Remove drops the first item with the given price. It reports false and
// leaves the order untouched when no such item is selected.
func (o *Order) Remove(cat domain.Category, price int) bool {
	if o.counts[cat][price] == 0 {
		return false
	}
	idx := slices.Index(o.items[cat], price)
	if idx < 0 {
		return false
	}
	o.items[cat] = slices.Delete(o.items[cat], idx, idx+1)
	o.counts[cat][price]--
	if o.counts[cat][price] == 0 {
		delete(o.counts[cat], price)
	}
	return true
}

// Count returns how many items of a category are selected.
func (o *Order) Count(cat domain.Category) int {
	return len(o.items[cat])
}

// CountOf returns how many items of a given price are selected.
func (o *Order) CountOf(cat domain.Category, price int) int {
	return o.counts[cat][price]
}

// Counts returns a copy of the per-price counts of a category.
func (o *Order) Counts(cat domain.Category) map[int]int {
	out := make(map[int]int, len(o.counts[cat]))
	for p, n := range o.counts[cat] {
		out[p] = n
	}
	return out
}

// Items returns a copy of the selected prices of a category in the order
// they were added.
func (o *Order) Items(cat domain.Category) []int {
	return slices.Clone(o.items[cat])
}

// Total sums every selected price.
func (o *Order) Total() int {
	total := 0
	for _, prices := range o.items {
		for _, p := range prices {
			total += p
		}
	}
	return total
}

// Empty reports whether nothing is selected.
func (o *Order) Empty() bool {
	for _, prices := range o.items {
		if len(prices) > 0 {
			return false
		}
	}
	return true
}

// Clear removes every item.
func (o *Order) Clear() {
	o.items = make(map[domain.Category][]int, len(domain.Categories))
	o.counts = make(map[domain.Category]map[int]int, len(domain.Categories))
}

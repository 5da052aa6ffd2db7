package domain

import (
	"fmt"
	"strings"
)

// Category groups menu items. The order of the constants is the display
// order.
type Category int

const (
	CategoryDrink Category = iota
	CategoryFood
	CategoryAmuse
)

// Categories lists every category in display order.
var Categories = []Category{CategoryDrink, CategoryFood, CategoryAmuse}

// String returns the category key used in config files and commands.
func (c Category) String() string {
	switch c {
	case CategoryDrink:
		return "drink"
	case CategoryFood:
		return "food"
	case CategoryAmuse:
		return "amuse"
	default:
		return "unknown"
	}
}

// ParseCategory maps a key such as "drink" to its Category.
func ParseCategory(s string) (Category, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "drink", "drinks", "d":
		return CategoryDrink, nil
	case "food", "f":
		return CategoryFood, nil
	case "amuse", "a":
		return CategoryAmuse, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownCategory, s)
	}
}

// MenuSection is the display metadata and allowed prices of one category.
type MenuSection struct {
	Category Category
	Label    string
	Icon     string
	Prices   []int
}

// Allows reports whether price is one of the section's unit prices.
func (m MenuSection) Allows(price int) bool {
	for _, p := range m.Prices {
		if p == price {
			return true
		}
	}
	return false
}

// Cheapest returns the lowest unit price, or 0 for an empty section.
func (m MenuSection) Cheapest() int {
	low := 0
	for i, p := range m.Prices {
		if i == 0 || p < low {
			low = p
		}
	}
	return low
}

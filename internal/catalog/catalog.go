// Package catalog provides the immutable menu the venue sells from.
package catalog

import (
	"fmt"
	"slices"

	"github.com/hammamikhairi/staytab/internal/config"
	"github.com/hammamikhairi/staytab/internal/domain"
	"github.com/hammamikhairi/staytab/internal/logger"
)

// Catalog maps each category to its ordered unit prices and display
// metadata. It is built once and never mutated, so it is safe for
// concurrent reads without locking.
type Catalog struct {
	sections []domain.MenuSection
	index    map[domain.Category]int
}

// New builds a catalog from menu configuration. Sections keep the
// category display order regardless of their order in the file; prices
// keep the order they were configured in.
func New(menu []config.MenuConfig, log *logger.Logger) (*Catalog, error) {
	c := &Catalog{index: make(map[domain.Category]int, len(menu))}

	byCat := make(map[domain.Category]config.MenuConfig, len(menu))
	for _, m := range menu {
		cat, err := domain.ParseCategory(m.Category)
		if err != nil {
			return nil, fmt.Errorf("catalog: %w", err)
		}
		if _, dup := byCat[cat]; dup {
			return nil, fmt.Errorf("catalog: duplicate category %q", cat)
		}
		byCat[cat] = m
	}

	for _, cat := range domain.Categories {
		m, ok := byCat[cat]
		if !ok {
			continue
		}
		label := m.Label
		if label == "" {
			label = cat.String()
		}
		c.index[cat] = len(c.sections)
		c.sections = append(c.sections, domain.MenuSection{
			Category: cat,
			Label:    label,
			Icon:     m.Icon,
			Prices:   slices.Clone(m.Prices),
		})
		log.Debug("catalog: %s has %d prices %v", cat, len(m.Prices), m.Prices)
	}

	return c, nil
}

// Default returns the built-in menu.
func Default() *Catalog {
	c, err := New(config.Default().Menu, logger.New(logger.LevelOff, nil))
	if err != nil {
		panic(fmt.Sprintf("catalog: built-in menu is invalid: %v", err))
	}
	return c
}

// Sections returns every section in display order. The returned slice is
// a copy.
func (c *Catalog) Sections() []domain.MenuSection {
	out := make([]domain.MenuSection, len(c.sections))
	for i, s := range c.sections {
		s.Prices = slices.Clone(s.Prices)
		out[i] = s
	}
	return out
}

// Section returns the section for a category.
func (c *Catalog) Section(cat domain.Category) (domain.MenuSection, bool) {
	i, ok := c.index[cat]
	if !ok {
		return domain.MenuSection{}, false
	}
	s := c.sections[i]
	s.Prices = slices.Clone(s.Prices)
	return s, true
}

// Allows reports whether price is sold in the category.
func (c *Catalog) Allows(cat domain.Category, price int) bool {
	i, ok := c.index[cat]
	return ok && c.sections[i].Allows(price)
}

// Cheapest returns the lowest price of a category, or 0 if the category
// is not on the menu.
func (c *Catalog) Cheapest(cat domain.Category) int {
	i, ok := c.index[cat]
	if !ok {
		return 0
	}
	return c.sections[i].Cheapest()
}

// Label returns the display label and icon of a category.
func (c *Catalog) Label(cat domain.Category) (label, icon string) {
	i, ok := c.index[cat]
	if !ok {
		return cat.String(), ""
	}
	return c.sections[i].Label, c.sections[i].Icon
}

// Package pricing derives the bill of a stay: the time charge, the
// minimum-order top-ups, and the tax.
//
// The calculator is a pure function of its inputs. Calling it twice with
// the same session, order and instant yields the same result, and since
// stays are billed in whole minutes the result is stable within a
// wall-clock minute.
package pricing

import (
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/hammamikhairi/staytab/internal/config"
	"github.com/hammamikhairi/staytab/internal/domain"
)

// Rules are the venue's pricing constants.
type Rules struct {
	BaseCharge       int
	BaseMinutes      int
	ExtensionCharge  int
	ExtensionMinutes int
	TaxRate          decimal.Decimal

	// DrinkMinimum and AmuseMinimum are the top-up prices charged for a
	// missing required drink or amuse item, normally the cheapest item of
	// each category.
	DrinkMinimum int
	AmuseMinimum int
}

// DefaultRules returns the built-in pricing: 800 for the first 60
// minutes, 400 per started 30 minutes after that, 10% tax, top-ups at 600
// (drink) and 1000 (amuse).
func DefaultRules() Rules {
	return Rules{
		BaseCharge:       800,
		BaseMinutes:      60,
		ExtensionCharge:  400,
		ExtensionMinutes: 30,
		TaxRate:          decimal.RequireFromString("0.10"),
		DrinkMinimum:     600,
		AmuseMinimum:     1000,
	}
}

// Menu provides the cheapest price of a category.
type Menu interface {
	Cheapest(cat domain.Category) int
}

// RulesFromConfig builds rules from the house config. The top-up prices
// are the cheapest drink and amuse on the menu.
func RulesFromConfig(cfg config.Config, menu Menu) (Rules, error) {
	rate, err := cfg.TaxRate()
	if err != nil {
		return Rules{}, fmt.Errorf("pricing: %w", err)
	}
	return Rules{
		BaseCharge:       cfg.Pricing.BaseCharge,
		BaseMinutes:      cfg.Pricing.BaseMinutes,
		ExtensionCharge:  cfg.Pricing.ExtensionCharge,
		ExtensionMinutes: cfg.Pricing.ExtensionMinutes,
		TaxRate:          rate,
		DrinkMinimum:     menu.Cheapest(domain.CategoryDrink),
		AmuseMinimum:     menu.Cheapest(domain.CategoryAmuse),
	}, nil
}

// Order is the read side of an order the calculator needs.
type Order interface {
	Count(cat domain.Category) int
	Counts(cat domain.Category) map[int]int
	Total() int
}

// Input is everything a bill depends on.
type Input struct {
	Session domain.Session
	Order   Order
	Now     time.Time
}

// Calculator computes bills under a fixed set of rules.
type Calculator struct {
	rules Rules
}

// New creates a calculator.
func New(rules Rules) *Calculator {
	return &Calculator{rules: rules}
}

// Rules returns the calculator's pricing constants.
func (c *Calculator) Rules() Rules { return c.rules }

// BillingEnd returns the instant billing runs to: the planned exit when it
// is set and not before the entry, otherwise now.
func BillingEnd(s domain.Session, now time.Time) time.Time {
	if s.HasPlannedExit() && !s.PlannedExit.Before(s.EntryTime) {
		return s.PlannedExit
	}
	return now
}

// StayMinutes returns the whole minutes between entry and end, never
// negative.
func StayMinutes(entry, end time.Time) int {
	m := int(end.Sub(entry) / time.Minute)
	return max(0, m)
}

// ExtensionCount returns how many extension units a stay has started.
// Minutes past the base period round up to a whole unit.
func (c *Calculator) ExtensionCount(stayMinutes int) int {
	over := stayMinutes - c.rules.BaseMinutes
	if over <= 0 {
		return 0
	}
	unit := c.rules.ExtensionMinutes
	return (over + unit - 1) / unit
}

// ChargeTotal returns the time charge for a stay.
func (c *Calculator) ChargeTotal(stayMinutes int) int {
	return c.rules.BaseCharge + c.rules.ExtensionCharge*c.ExtensionCount(stayMinutes)
}

// Tax returns the tax due on subtotal, rounded to the nearest yen with
// halves rounded away from zero. Inclusive mode owes nothing on top.
func (c *Calculator) Tax(subtotal int, mode domain.TaxMode) int {
	if mode != domain.TaxExternal {
		return 0
	}
	tax := decimal.NewFromInt(int64(subtotal)).Mul(c.rules.TaxRate).Round(0)
	return int(tax.IntPart())
}

// Calculate computes the bill. Without an entry time the zero result is
// returned.
func (c *Calculator) Calculate(in Input) domain.BillingResult {
	if !in.Session.Active() {
		return domain.BillingResult{TaxMode: in.Session.TaxMode}
	}

	end := BillingEnd(in.Session, in.Now)
	stay := StayMinutes(in.Session.EntryTime, end)
	ext := c.ExtensionCount(stay)

	r := domain.BillingResult{
		Active:         true,
		End:            end,
		StayMinutes:    stay,
		ExtensionCount: ext,
		ChargeTotal:    c.rules.BaseCharge + c.rules.ExtensionCharge*ext,
		MenuTotal:      in.Order.Total(),
		TaxMode:        in.Session.TaxMode,
	}

	drinks := in.Order.Count(domain.CategoryDrink)
	amuse := in.Order.Count(domain.CategoryAmuse)
	r.DrinkShortage = max(0, 1-drinks)
	r.AmuseShortage = max(0, 1-amuse)

	// Every extension unit needs one more drink or amuse beyond the
	// first of each; the two categories are pooled.
	if ext > 0 {
		provided := max(0, drinks-1) + max(0, amuse-1)
		r.OrShortage = max(0, ext-provided)
	}

	r.ForcedDrink = c.rules.DrinkMinimum * r.DrinkShortage
	r.ForcedAmuse = c.rules.AmuseMinimum * r.AmuseShortage
	r.ForcedOr = min(c.rules.DrinkMinimum, c.rules.AmuseMinimum) * r.OrShortage

	r.Subtotal = r.ChargeTotal + r.MenuTotal + r.ForcedDrink + r.ForcedAmuse + r.ForcedOr
	r.Tax = c.Tax(r.Subtotal, in.Session.TaxMode)
	r.Total = r.Subtotal + r.Tax
	return r
}

// Labeler names categories on receipts.
type Labeler interface {
	Label(cat domain.Category) (label, icon string)
}

// Receipt itemises a bill: the base charge, any extensions, the menu items
// grouped by price, and the minimum-order top-ups.
func (c *Calculator) Receipt(in Input, labels Labeler) domain.Receipt {
	r := c.Calculate(in)

	rec := domain.Receipt{
		EntryTime:   in.Session.EntryTime,
		End:         r.End,
		StayMinutes: r.StayMinutes,
		Subtotal:    r.Subtotal,
		Tax:         r.Tax,
		Total:       r.Total,
		TaxMode:     r.TaxMode,
	}

	rec.Lines = append(rec.Lines, domain.ReceiptLine{
		Kind:   domain.LineBase,
		Label:  fmt.Sprintf("Entry charge (%dmin)", c.rules.BaseMinutes),
		Count:  1,
		Unit:   c.rules.BaseCharge,
		Amount: c.rules.BaseCharge,
	})
	if r.ExtensionCount > 0 {
		rec.Lines = append(rec.Lines, domain.ReceiptLine{
			Kind:   domain.LineExtension,
			Label:  fmt.Sprintf("Extension (%dmin)", c.rules.ExtensionMinutes),
			Count:  r.ExtensionCount,
			Unit:   c.rules.ExtensionCharge,
			Amount: c.rules.ExtensionCharge * r.ExtensionCount,
		})
	}

	for _, cat := range domain.Categories {
		counts := in.Order.Counts(cat)
		if len(counts) == 0 {
			continue
		}
		label, _ := labels.Label(cat)
		prices := make([]int, 0, len(counts))
		for p := range counts {
			prices = append(prices, p)
		}
		sort.Ints(prices)
		for _, p := range prices {
			rec.Lines = append(rec.Lines, domain.ReceiptLine{
				Kind:     domain.LineItem,
				Category: cat,
				Label:    label,
				Count:    counts[p],
				Unit:     p,
				Amount:   counts[p] * p,
			})
		}
	}

	forced := []struct {
		label  string
		count  int
		amount int
	}{
		{"Required drink top-up", r.DrinkShortage, r.ForcedDrink},
		{"Required amuse top-up", r.AmuseShortage, r.ForcedAmuse},
		{"Extension top-up", r.OrShortage, r.ForcedOr},
	}
	for _, f := range forced {
		if f.amount <= 0 {
			continue
		}
		rec.Lines = append(rec.Lines, domain.ReceiptLine{
			Kind:   domain.LineForced,
			Label:  f.label,
			Count:  f.count,
			Unit:   f.amount / f.count,
			Amount: f.amount,
		})
	}

	return rec
}

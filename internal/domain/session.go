package domain

import (
	"fmt"
	"strings"
	"time"
)

// Session is the single active stay. A zero EntryTime means nobody has
// been admitted yet.
type Session struct {
	EntryTime   time.Time
	PlannedExit time.Time
	TaxMode     TaxMode
}

// Active reports whether an entry time has been registered.
func (s Session) Active() bool {
	return !s.EntryTime.IsZero()
}

// HasPlannedExit reports whether a planned exit is set.
func (s Session) HasPlannedExit() bool {
	return !s.PlannedExit.IsZero()
}

// TaxMode selects how sales tax is presented on the bill.
type TaxMode int

const (
	// TaxInclusive treats the subtotal as final.
	TaxInclusive TaxMode = iota
	// TaxExternal adds tax on top of the subtotal.
	TaxExternal
)

// String returns the config/CLI spelling of the tax mode.
func (m TaxMode) String() string {
	switch m {
	case TaxInclusive:
		return "inclusive"
	case TaxExternal:
		return "external"
	default:
		return "unknown"
	}
}

// ParseTaxMode accepts "inclusive" or "external" (case-insensitive).
func ParseTaxMode(s string) (TaxMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "inclusive", "in", "incl":
		return TaxInclusive, nil
	case "external", "ex", "excl":
		return TaxExternal, nil
	default:
		return TaxInclusive, fmt.Errorf("%w: %q", ErrUnknownTax, s)
	}
}

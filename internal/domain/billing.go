package domain

import "time"

// BillingResult is the derived snapshot of the current bill. It is
// recomputed on demand and never mutated on its own.
type BillingResult struct {
	Active bool
	End    time.Time // billing end: planned exit or the wall clock

	StayMinutes    int
	ExtensionCount int
	ChargeTotal    int
	MenuTotal      int

	DrinkShortage int
	AmuseShortage int
	OrShortage    int
	ForcedDrink   int
	ForcedAmuse   int
	ForcedOr      int

	Subtotal int
	Tax      int
	Total    int
	TaxMode  TaxMode
}

// Short reports whether any minimum-order requirement is unmet.
func (r BillingResult) Short() bool {
	return r.DrinkShortage > 0 || r.AmuseShortage > 0 || r.OrShortage > 0
}

// LineKind classifies a receipt line.
type LineKind int

const (
	LineBase LineKind = iota
	LineExtension
	LineItem
	LineForced
)

// ReceiptLine is one row of a receipt. Presentation decides how to
// format it.
type ReceiptLine struct {
	Kind     LineKind
	Category Category // LineItem only
	Label    string
	Count    int
	Unit     int
	Amount   int
}

// Receipt is the itemised breakdown of a bill.
type Receipt struct {
	EntryTime   time.Time
	End         time.Time
	StayMinutes int
	Lines       []ReceiptLine
	Subtotal    int
	Tax         int
	Total       int
	TaxMode     TaxMode
}

// SettledReceipt is a receipt that was checked out into the ledger.
type SettledReceipt struct {
	ID        string
	SettledAt time.Time
	Receipt
}

package domain

import "context"

// ReceiptStore keeps settled receipts. The in-memory ledger lives for the
// process lifetime only.
type ReceiptStore interface {
	Save(ctx context.Context, receipt *SettledReceipt) error
	Load(ctx context.Context, id string) (*SettledReceipt, error)
	List(ctx context.Context) ([]*SettledReceipt, error)
}

// CommandParser converts raw user input into structured commands.
type CommandParser interface {
	Parse(ctx context.Context, input string) (*Command, error)
}

// Notifier delivers messages to the user. Implementations can write to
// stdout or a styled terminal UI.
type Notifier interface {
	Notify(ctx context.Context, message string) error
	NotifyUrgent(ctx context.Context, message string) error
}

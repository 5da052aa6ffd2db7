// Package notice composes the two warning channels shown next to the
// bill.
//
// The closed channel carries the business-hours advisory and persists
// across recomputes until an admission or exit decision changes it. The
// shortage channel carries the minimum-order warning, recomputed every
// cycle, or a blocking message from a rejected action. Neither channel
// writes into the other.
package notice

import "strings"

// Level tags a notice.
type Level int

const (
	LevelNone Level = iota
	LevelAdvisory
	LevelBlocking
)

// String returns a human-readable level.
func (l Level) String() string {
	switch l {
	case LevelNone:
		return "none"
	case LevelAdvisory:
		return "advisory"
	case LevelBlocking:
		return "blocking"
	default:
		return "unknown"
	}
}

// Notice is None, Advisory(text) or Blocking(text).
type Notice struct {
	Level Level
	Text  string
}

// None is the empty notice.
func None() Notice { return Notice{} }

// Advisory is an informational notice; the action it is attached to went
// through.
func Advisory(text string) Notice { return Notice{Level: LevelAdvisory, Text: text} }

// Blocking is attached to an action that was refused.
func Blocking(text string) Notice { return Notice{Level: LevelBlocking, Text: text} }

// IsZero reports whether the notice is None.
func (n Notice) IsZero() bool { return n.Level == LevelNone }

// Blocks reports whether the notice is Blocking.
func (n Notice) Blocks() bool { return n.Level == LevelBlocking }

// Notices is a snapshot of both channels.
type Notices struct {
	Closed   Notice
	Shortage Notice
}

// Empty reports whether both channels are clear.
func (n Notices) Empty() bool { return n.Closed.IsZero() && n.Shortage.IsZero() }

// String joins the non-empty channel texts, closed first.
func (n Notices) String() string {
	parts := make([]string, 0, 2)
	for _, c := range []Notice{n.Closed, n.Shortage} {
		if c.Text != "" {
			parts = append(parts, c.Text)
		}
	}
	return strings.Join(parts, " ")
}

// Manager holds the two channels. Not safe for concurrent use; the engine
// serializes access.
type Manager struct {
	closed   Notice
	shortage Notice
}

// NewManager returns a manager with both channels clear.
func NewManager() *Manager { return &Manager{} }

// SetClosed replaces the closed channel.
func (m *Manager) SetClosed(n Notice) { m.closed = n }

// ClearClosed empties the closed channel.
func (m *Manager) ClearClosed() { m.closed = None() }

// SetShortage replaces the shortage channel.
func (m *Manager) SetShortage(n Notice) { m.shortage = n }

// ClearShortage empties the shortage channel.
func (m *Manager) ClearShortage() { m.shortage = None() }

// Block puts a blocking message in the shortage channel, replacing
// whatever was there. With clearClosed the closed channel is emptied too,
// as when a late arrival is turned away.
func (m *Manager) Block(text string, clearClosed bool) Notice {
	n := Blocking(text)
	m.shortage = n
	if clearClosed {
		m.closed = None()
	}
	return n
}

// Unblock drops a blocking message from the shortage channel. The engine
// calls it after every action that went through.
func (m *Manager) Unblock() {
	if m.shortage.Blocks() {
		m.shortage = None()
	}
}

// Refresh recomputes the shortage channel from the current bill; an empty
// text clears it. A blocking message from a refused action is replaced
// too: it is shown until the next recompute. The closed channel is left
// alone.
func (m *Manager) Refresh(shortageText string) {
	if shortageText == "" {
		m.shortage = None()
		return
	}
	m.shortage = Advisory(shortageText)
}

// Idle applies the rule for a recompute without an active session:
// advisories are dropped, a blocking message from the last refused action
// stays until the next action replaces it.
func (m *Manager) Idle() {
	if !m.closed.Blocks() {
		m.closed = None()
	}
	if !m.shortage.Blocks() {
		m.shortage = None()
	}
}

// Clear empties both channels.
func (m *Manager) Clear() {
	m.closed = None()
	m.shortage = None()
}

// Snapshot returns both channels.
func (m *Manager) Snapshot() Notices {
	return Notices{Closed: m.closed, Shortage: m.shortage}
}

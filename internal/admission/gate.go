// Package admission decides whether an entry or exit time is allowed by
// the venue's business hours.
//
// Automatic admission (the "enter" button, using the current instant) is
// lenient: closed hours only attach an advisory. Manual entry-time edits
// are strict: closed hours and the late-admission window both reject the
// edit. Planned exits only ever get an advisory.
package admission

import (
	"fmt"
	"time"

	"github.com/hammamikhairi/staytab/internal/config"
	"github.com/hammamikhairi/staytab/internal/domain"
)

// Window is a [From, Until) range of minutes since midnight. A window
// whose From is after its Until wraps past midnight.
type Window struct {
	From  int
	Until int
}

// Contains reports whether minute falls inside the window.
func (w Window) Contains(minute int) bool {
	if w.From <= w.Until {
		return minute >= w.From && minute < w.Until
	}
	return minute >= w.From || minute < w.Until
}

// String renders the window as "HH:MM-HH:MM".
func (w Window) String() string {
	return domain.FormatClock(w.From) + "-" + domain.FormatClock(w.Until)
}

// Verdict is the outcome of an admission check.
type Verdict int

const (
	Allowed Verdict = iota
	AllowedWithAdvisory
	Rejected
)

// String returns a human-readable verdict.
func (v Verdict) String() string {
	switch v {
	case Allowed:
		return "allowed"
	case AllowedWithAdvisory:
		return "advisory"
	case Rejected:
		return "rejected"
	default:
		return "unknown"
	}
}

// Decision pairs a verdict with the rule that produced it. Reason is
// domain.ErrClosedHours or domain.ErrLateAdmission, or nil when Allowed.
type Decision struct {
	Verdict Verdict
	Reason  error
}

// Gate classifies timestamps against the closed period and the
// late-admission window.
type Gate struct {
	closed        Window
	lastAdmission Window
}

// NewGate builds a gate from configured hours.
func NewGate(h config.HoursConfig) (*Gate, error) {
	closed, err := parseWindow(h.ClosedFrom, h.ClosedUntil)
	if err != nil {
		return nil, fmt.Errorf("admission: closed hours: %w", err)
	}
	late, err := parseWindow(h.LastAdmissionFrom, h.LastAdmissionUntil)
	if err != nil {
		return nil, fmt.Errorf("admission: last admission: %w", err)
	}
	return &Gate{closed: closed, lastAdmission: late}, nil
}

// DefaultGate returns the gate for the built-in hours: closed 05:00-12:00,
// no admission 22:30-23:00.
func DefaultGate() *Gate {
	return &Gate{
		closed:        Window{From: 5 * 60, Until: 12 * 60},
		lastAdmission: Window{From: 22*60 + 30, Until: 23 * 60},
	}
}

func parseWindow(from, until string) (Window, error) {
	f, err := domain.ParseClock(from)
	if err != nil {
		return Window{}, err
	}
	u, err := domain.ParseClock(until)
	if err != nil {
		return Window{}, err
	}
	return Window{From: f, Until: u}, nil
}

// ClosedWindow returns the closed period.
func (g *Gate) ClosedWindow() Window { return g.closed }

// LateWindow returns the late-admission window.
func (g *Gate) LateWindow() Window { return g.lastAdmission }

// MinutesSinceMidnight returns the wall-clock minute of t in [0, 1440).
func MinutesSinceMidnight(t time.Time) int {
	return t.Hour()*60 + t.Minute()
}

// IsClosedPeriod reports whether t falls in closed hours.
func (g *Gate) IsClosedPeriod(t time.Time) bool {
	return g.closed.Contains(MinutesSinceMidnight(t))
}

// IsLateAdmissionBlocked reports whether t falls in the window in which
// new guests are refused.
func (g *Gate) IsLateAdmissionBlocked(t time.Time) bool {
	return g.lastAdmission.Contains(MinutesSinceMidnight(t))
}

// ResolveEntry places an operator-entered time of day on the calendar.
// The business night runs from the end of closed hours past midnight to
// their start, so an evening time typed after midnight belongs to
// yesterday. Any other time stays on today, even when it is later than
// now.
func (g *Gate) ResolveEntry(now time.Time, minute int) time.Time {
	t := domain.OnDay(now, minute)
	c := g.closed
	if c.From <= c.Until && MinutesSinceMidnight(now) < c.From && minute >= c.Until {
		t = t.AddDate(0, 0, -1)
	}
	return t
}

// Admit classifies an automatic admission at t.
func (g *Gate) Admit(t time.Time) Decision {
	switch {
	case g.IsLateAdmissionBlocked(t):
		return Decision{Verdict: Rejected, Reason: domain.ErrLateAdmission}
	case g.IsClosedPeriod(t):
		return Decision{Verdict: AllowedWithAdvisory, Reason: domain.ErrClosedHours}
	default:
		return Decision{Verdict: Allowed}
	}
}

// ManualEntry classifies an operator-entered entry time. Both windows
// reject.
func (g *Gate) ManualEntry(t time.Time) Decision {
	switch {
	case g.IsClosedPeriod(t):
		return Decision{Verdict: Rejected, Reason: domain.ErrClosedHours}
	case g.IsLateAdmissionBlocked(t):
		return Decision{Verdict: Rejected, Reason: domain.ErrLateAdmission}
	default:
		return Decision{Verdict: Allowed}
	}
}

// PlannedExit classifies a planned exit time. Closed hours are advisory;
// the late-admission window does not apply.
func (g *Gate) PlannedExit(t time.Time) Decision {
	if g.IsClosedPeriod(t) {
		return Decision{Verdict: AllowedWithAdvisory, Reason: domain.ErrClosedHours}
	}
	return Decision{Verdict: Allowed}
}

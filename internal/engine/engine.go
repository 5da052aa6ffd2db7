// Package engine implements the billing engine: the single active stay,
// its order, and the notices shown next to the bill.
//
// Every mutation is a method on Engine. The presentation layer calls
// Recompute after each accepted mutation (and on every tick) and renders
// the returned result; Snapshot only reads. Methods are serialized by a mutex, so a recompute
// always observes the mutation that triggered it even though the ticker
// and the UI run on different goroutines.
package engine

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/hammamikhairi/staytab/internal/admission"
	"github.com/hammamikhairi/staytab/internal/catalog"
	"github.com/hammamikhairi/staytab/internal/domain"
	"github.com/hammamikhairi/staytab/internal/logger"
	"github.com/hammamikhairi/staytab/internal/notice"
	"github.com/hammamikhairi/staytab/internal/order"
	"github.com/hammamikhairi/staytab/internal/pricing"
)

// Scheduler is the cancellable repeating task that drives recomputes
// while a stay is running. Start must replace any run already in
// progress; Stop must not wait for a tick in flight.
type Scheduler interface {
	Start(ctx context.Context)
	Stop()
}

// Option configures the engine.
type Option func(*Engine)

// WithScheduler registers the ticker started on admission and stopped on
// reset.
func WithScheduler(s Scheduler) Option {
	return func(e *Engine) {
		e.scheduler = s
	}
}

// WithStore sets the ledger Checkout writes to.
func WithStore(store domain.ReceiptStore) Option {
	return func(e *Engine) {
		e.store = store
	}
}

// WithTaxMode sets the initial tax mode.
func WithTaxMode(m domain.TaxMode) Option {
	return func(e *Engine) {
		e.session.TaxMode = m
	}
}

// Engine owns the session state. It depends only on its collaborators and
// an explicit "now" passed to each call, so it is fully testable without a
// clock.
type Engine struct {
	catalog   *catalog.Catalog
	gate      *admission.Gate
	calc      *pricing.Calculator
	log       *logger.Logger
	scheduler Scheduler
	store     domain.ReceiptStore

	mu      sync.Mutex
	session domain.Session
	order   *order.Order
	notices *notice.Manager

	// closedFromExit is set while the closed channel holds the planned-exit
	// advisory rather than the admission one.
	closedFromExit bool
}

// New creates a billing engine with the given dependencies and options.
func New(cat *catalog.Catalog, gate *admission.Gate, calc *pricing.Calculator, log *logger.Logger, opts ...Option) *Engine {
	e := &Engine{
		catalog: cat,
		gate:    gate,
		calc:    calc,
		log:     log,
		order:   order.New(cat),
		notices: notice.NewManager(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Catalog returns the menu the engine sells from.
func (e *Engine) Catalog() *catalog.Catalog { return e.catalog }

// Admit registers an automatic entry at now. Inside the late-admission
// window the guest is refused: no entry time is set and a blocking notice
// replaces both channels. During closed hours the entry goes through with
// a persistent advisory.
func (e *Engine) Admit(ctx context.Context, now time.Time) (notice.Notice, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	d := e.gate.Admit(now)
	if d.Verdict == admission.Rejected {
		until := e.gate.LateWindow().Until
		n := e.notices.Block(notice.LineLateAdmission(domain.FormatClock(until)), true)
		e.closedFromExit = false
		e.log.Warn("admission refused at %s: %v", clock(now), d.Reason)
		return n, fmt.Errorf("admitting at %s: %w", clock(now), d.Reason)
	}

	e.session.EntryTime = now
	e.closedFromExit = false
	e.notices.Unblock()

	n := notice.None()
	if d.Verdict == admission.AllowedWithAdvisory {
		n = notice.Advisory(notice.LineClosedAdmission())
		e.notices.SetClosed(n)
		e.log.Warn("admitted at %s during closed hours %s", clock(now), e.gate.ClosedWindow())
	} else {
		e.notices.ClearClosed()
		e.log.Info("admitted at %s", clock(now))
	}

	if e.scheduler != nil {
		e.scheduler.Start(ctx)
	}
	return n, nil
}

// SetEntryTime overrides the entry time with an operator-entered "HH:MM".
// Unlike automatic admission, closed hours and the late-admission window
// both refuse the edit. An evening time typed after midnight is taken as
// yesterday.
func (e *Engine) SetEntryTime(input string, now time.Time) (notice.Notice, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if !e.session.Active() {
		return e.refuseNoSession("set entry time")
	}

	minute, err := domain.ParseClock(input)
	if err != nil {
		n := e.notices.Block(notice.LineInvalidTime(input), false)
		return n, fmt.Errorf("setting entry time: %w", err)
	}

	t := e.gate.ResolveEntry(now, minute)

	d := e.gate.ManualEntry(t)
	if d.Verdict == admission.Rejected {
		line := notice.LineManualClosed()
		if errors.Is(d.Reason, domain.ErrLateAdmission) {
			line = notice.LineManualLate()
		}
		n := e.notices.Block(line, false)
		e.log.Info("entry time %s refused: %v", input, d.Reason)
		return n, fmt.Errorf("setting entry time %s: %w", input, d.Reason)
	}

	e.session.EntryTime = t
	e.notices.Unblock()
	if !e.closedFromExit {
		e.notices.ClearClosed()
	}
	e.log.Info("entry time set to %s", t.Format("01-02 15:04"))
	return notice.None(), nil
}

// SetPlannedExit schedules the exit at an operator-entered "HH:MM". A
// time before the entry rolls over to the next day. Closed hours only
// attach an advisory.
func (e *Engine) SetPlannedExit(input string, now time.Time) (notice.Notice, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if !e.session.Active() {
		return e.refuseNoSession("set planned exit")
	}

	minute, err := domain.ParseClock(input)
	if err != nil {
		n := e.notices.Block(notice.LineInvalidTime(input), false)
		return n, fmt.Errorf("setting planned exit: %w", err)
	}

	t := domain.OnDay(now, minute)
	if t.Before(e.session.EntryTime) {
		t = t.AddDate(0, 0, 1)
	}
	e.session.PlannedExit = t
	e.notices.Unblock()

	n := notice.None()
	if e.gate.PlannedExit(t).Verdict == admission.AllowedWithAdvisory {
		n = notice.Advisory(notice.LineClosedExit())
		e.notices.SetClosed(n)
		e.closedFromExit = true
	} else if e.closedFromExit {
		e.notices.ClearClosed()
		e.closedFromExit = false
	}

	e.log.Info("planned exit set to %s", t.Format("01-02 15:04"))
	return n, nil
}

// ClearPlannedExit drops the planned exit; billing runs to the wall clock
// again.
func (e *Engine) ClearPlannedExit() {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.clearExitLocked()
	e.notices.Unblock()
	e.log.Debug("planned exit cleared")
}

func (e *Engine) clearExitLocked() {
	e.session.PlannedExit = time.Time{}
	if e.closedFromExit {
		e.notices.ClearClosed()
		e.closedFromExit = false
	}
}

// AddItem adds one menu item. Prices not on the menu are refused.
func (e *Engine) AddItem(cat domain.Category, price int) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if err := e.order.Add(cat, price); err != nil {
		e.notices.Block(notice.LineUnknownItem(cat.String(), price), false)
		return fmt.Errorf("adding item: %w", err)
	}
	e.notices.Unblock()
	e.log.Debug("added %s %d (now %d)", cat, price, e.order.CountOf(cat, price))
	return nil
}

// RemoveItem removes one item with the given price. It reports false, and
// changes nothing, when no such item is selected.
func (e *Engine) RemoveItem(cat domain.Category, price int) bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	if !e.order.Remove(cat, price) {
		e.log.Debug("remove %s %d ignored: none selected", cat, price)
		return false
	}
	e.notices.Unblock()
	e.log.Debug("removed %s %d (now %d)", cat, price, e.order.CountOf(cat, price))
	return true
}

// SetTaxMode switches how tax is presented.
func (e *Engine) SetTaxMode(m domain.TaxMode) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.session.TaxMode = m
	e.notices.Unblock()
	e.log.Info("tax mode set to %s", m)
}

// Reset clears the session, the order and both notice channels, and
// stops the ticker. The tax mode is kept.
func (e *Engine) Reset() {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.resetLocked()
	e.log.Info("session reset")
}

func (e *Engine) resetLocked() {
	e.session = domain.Session{TaxMode: e.session.TaxMode}
	e.order.Clear()
	e.notices.Clear()
	e.closedFromExit = false
	if e.scheduler != nil {
		e.scheduler.Stop()
	}
}

// Recompute derives the bill at now and refreshes the shortage channel. A
// planned exit found earlier than the entry is discarded first.
func (e *Engine) Recompute(now time.Time) domain.BillingResult {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.recomputeLocked(now)
}

func (e *Engine) recomputeLocked(now time.Time) domain.BillingResult {
	if !e.session.Active() {
		e.notices.Idle()
		return e.calc.Calculate(e.inputLocked(now))
	}

	e.discardStaleExitLocked()
	r := e.calc.Calculate(e.inputLocked(now))
	e.notices.Refresh(notice.ShortageText(r.DrinkShortage, r.AmuseShortage, r.OrShortage))
	return r
}

func (e *Engine) discardStaleExitLocked() {
	s := e.session
	if s.HasPlannedExit() && s.PlannedExit.Before(s.EntryTime) {
		e.log.Debug("discarding planned exit %s before entry %s", clock(s.PlannedExit), clock(s.EntryTime))
		e.clearExitLocked()
	}
}

func (e *Engine) inputLocked(now time.Time) pricing.Input {
	return pricing.Input{Session: e.session, Order: e.order, Now: now}
}

// CurrentNotices returns both notice channels.
func (e *Engine) CurrentNotices() notice.Notices {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.notices.Snapshot()
}

// Session returns a copy of the session state.
func (e *Engine) Session() domain.Session {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.session
}

// Counts returns the per-price item counts of a category, for the menu
// buttons.
func (e *Engine) Counts(cat domain.Category) map[int]int {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.order.Counts(cat)
}

// Receipt itemises the bill at now. It needs an active session.
func (e *Engine) Receipt(now time.Time) (*domain.Receipt, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if !e.session.Active() {
		_, err := e.refuseNoSession("show receipt")
		return nil, err
	}
	e.notices.Unblock()
	e.discardStaleExitLocked()
	rec := e.calc.Receipt(e.inputLocked(now), e.catalog)
	return &rec, nil
}

// Checkout settles the bill at now into the ledger and resets the
// session.
func (e *Engine) Checkout(ctx context.Context, now time.Time) (*domain.SettledReceipt, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.store == nil {
		return nil, fmt.Errorf("checkout: no receipt store configured")
	}
	if !e.session.Active() {
		_, err := e.refuseNoSession("checkout")
		return nil, err
	}

	e.discardStaleExitLocked()
	settled := &domain.SettledReceipt{
		SettledAt: now,
		Receipt:   e.calc.Receipt(e.inputLocked(now), e.catalog),
	}
	if err := e.store.Save(ctx, settled); err != nil {
		return nil, fmt.Errorf("checkout: saving receipt: %w", err)
	}

	e.log.Info("checked out %s: %d min, total %d", settled.ID, settled.StayMinutes, settled.Total)
	e.resetLocked()
	return settled, nil
}

// History lists settled receipts, oldest first.
func (e *Engine) History(ctx context.Context) ([]*domain.SettledReceipt, error) {
	if e.store == nil {
		return nil, nil
	}
	return e.store.List(ctx)
}

// Snapshot is everything a status bar needs in one consistent read.
type Snapshot struct {
	Session domain.Session
	Result  domain.BillingResult
	Notices notice.Notices
	Counts  map[domain.Category]map[int]int
}

// Snapshot returns the bill at now with the session, notices and item
// counts observed under the same lock. It changes nothing: notices are
// the ones left by the last Recompute or action.
func (e *Engine) Snapshot(now time.Time) Snapshot {
	e.mu.Lock()
	defer e.mu.Unlock()

	r := e.calc.Calculate(e.inputLocked(now))
	counts := make(map[domain.Category]map[int]int, len(domain.Categories))
	for _, cat := range domain.Categories {
		counts[cat] = e.order.Counts(cat)
	}
	return Snapshot{
		Session: e.session,
		Result:  r,
		Notices: e.notices.Snapshot(),
		Counts:  counts,
	}
}

func (e *Engine) refuseNoSession(action string) (notice.Notice, error) {
	n := e.notices.Block(notice.LineNoSession(), false)
	e.log.Debug("%s refused: no entry time", action)
	return n, fmt.Errorf("%s: %w", action, domain.ErrNoSession)
}

func clock(t time.Time) string {
	return t.Format("15:04")
}

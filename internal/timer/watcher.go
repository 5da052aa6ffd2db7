package timer

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/hammamikhairi/staytab/internal/domain"
	"github.com/hammamikhairi/staytab/internal/logger"
	"github.com/hammamikhairi/staytab/internal/pricing"
)

// WatcherOption configures the watcher.
type WatcherOption func(*Watcher)

// WithLeadTime sets how long before the next extension unit the watcher
// warns.
func WithLeadTime(d time.Duration) WatcherOption {
	return func(w *Watcher) {
		w.lead = int(d / time.Minute)
	}
}

// Watcher looks at each fresh bill and tells the floor staff when the
// stay rolls into a new extension unit, and once when the next unit is
// close, so they can prompt for an order.
type Watcher struct {
	notifier domain.Notifier
	log      *logger.Logger
	rules    pricing.Rules
	lead     int

	mu       sync.Mutex
	lastExt  int
	warnedAt int
}

// NewWatcher creates a watcher for the given pricing rules.
func NewWatcher(notifier domain.Notifier, rules pricing.Rules, log *logger.Logger, opts ...WatcherOption) *Watcher {
	w := &Watcher{
		notifier: notifier,
		log:      log,
		rules:    rules,
		lead:     5,
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Observe inspects one bill. Inactive bills reset the watcher.
func (w *Watcher) Observe(ctx context.Context, r domain.BillingResult) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if !r.Active {
		w.lastExt, w.warnedAt = 0, 0
		return
	}

	w.log.Debug("watcher: %d min, %d extensions, total %d", r.StayMinutes, r.ExtensionCount, r.Total)

	// The entry time can be moved forward, shrinking the stay.
	if r.ExtensionCount < w.lastExt {
		w.lastExt = r.ExtensionCount
		w.warnedAt = 0
	}

	if r.ExtensionCount > w.lastExt {
		w.lastExt = r.ExtensionCount
		msg := fmt.Sprintf("[Extension] Stay entered extension %d (%d min).", r.ExtensionCount, r.StayMinutes)
		if r.OrShortage > 0 {
			msg += fmt.Sprintf(" %d drink or amuse order(s) missing.", r.OrShortage)
		}
		if err := w.notifier.NotifyUrgent(ctx, msg); err != nil {
			w.log.Error("watcher: notify: %v", err)
		}
		return
	}

	next := r.ExtensionCount + 1
	left := w.MinutesUntil(next, r.StayMinutes)
	if w.lead > 0 && left <= w.lead && w.warnedAt != next {
		w.warnedAt = next
		msg := fmt.Sprintf("[Extension] Extension %d starts in %d min.", next, left)
		if err := w.notifier.Notify(ctx, msg); err != nil {
			w.log.Error("watcher: notify: %v", err)
		}
	}
}

// MinutesUntil returns how many minutes of stay remain before extension
// unit n is charged.
func (w *Watcher) MinutesUntil(n, stayMinutes int) int {
	starts := w.rules.BaseMinutes + (n-1)*w.rules.ExtensionMinutes + 1
	return max(0, starts-stayMinutes)
}

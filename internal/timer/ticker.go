// Package timer drives the bill while a stay is running: a cancellable
// once-a-minute Ticker and a Watcher that calls out extension units.
package timer

import (
	"context"
	"sync"
	"time"

	"github.com/hammamikhairi/staytab/internal/logger"
)

// TickFunc is called on every tick with the tick instant.
type TickFunc func(ctx context.Context, now time.Time)

// Option configures the ticker.
type Option func(*Ticker)

// WithTickInterval sets how often the ticker fires.
func WithTickInterval(d time.Duration) Option {
	return func(t *Ticker) {
		t.interval = d
	}
}

// WithClock replaces time.Now as the source of tick instants.
func WithClock(now func() time.Time) Option {
	return func(t *Ticker) {
		t.now = now
	}
}

// Ticker runs fn in the background on a fixed interval until stopped.
// Starting a running ticker replaces the previous run, so ticks never
// stack.
type Ticker struct {
	fn       TickFunc
	log      *logger.Logger
	interval time.Duration
	now      func() time.Time

	mu      sync.Mutex
	running bool
	cancel  context.CancelFunc
}

// New creates a ticker that calls fn once a minute by default.
func New(fn TickFunc, log *logger.Logger, opts ...Option) *Ticker {
	t := &Ticker{
		fn:       fn,
		log:      log,
		interval: time.Minute,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Start begins the tick loop. Non-blocking.
func (t *Ticker) Start(ctx context.Context) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.running {
		t.cancel()
		t.log.Debug("ticker restarted")
	}

	childCtx, cancel := context.WithCancel(ctx)
	t.cancel = cancel
	t.running = true

	go t.loop(childCtx)

	t.log.Info("ticker started (interval=%s)", t.interval)
}

// Stop cancels the tick loop. It does not wait for a tick in flight.
func (t *Ticker) Stop() {
	t.mu.Lock()
	defer t.mu.Unlock()

	if !t.running {
		return
	}

	t.cancel()
	t.running = false
	t.log.Info("ticker stopped")
}

// Running reports whether the loop is active.
func (t *Ticker) Running() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.running
}

func (t *Ticker) loop(ctx context.Context) {
	ticker := time.NewTicker(t.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			// A stop can race the tick channel.
			if ctx.Err() != nil {
				return
			}
			t.fn(ctx, t.now())
		}
	}
}
